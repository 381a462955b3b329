package controller

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jmalhotra/stitchmart-backend/internal/app/model"
	"github.com/jmalhotra/stitchmart-backend/internal/app/repository"
	"github.com/jmalhotra/stitchmart-backend/internal/app/service"
	apperrors "github.com/jmalhotra/stitchmart-backend/internal/errors"
	"github.com/jmalhotra/stitchmart-backend/internal/middleware"
)

type ProductController struct {
	productService service.ProductService
}

func NewProductController(productService service.ProductService) *ProductController {
	return &ProductController{
		productService: productService,
	}
}

type CreateProductRequest struct {
	Name          string               `json:"name" binding:"required"`
	Description   string               `json:"description"`
	Price         float64              `json:"price" binding:"required,gt=0"`
	DiscountPrice *float64             `json:"discount_price"`
	CountInStock  int                  `json:"count_in_stock"`
	SKU           string               `json:"sku" binding:"required"`
	Category      string               `json:"category" binding:"required"`
	Brand         string               `json:"brand"`
	Material      string               `json:"material"`
	Sizes         []string             `json:"sizes"`
	Colors        []string             `json:"colors"`
	Collections   []string             `json:"collections"`
	Tags          []string             `json:"tags"`
	Gender        string               `json:"gender"`
	Images        []model.ProductImage `json:"images"`
	IsFeatured    bool                 `json:"is_featured"`
	IsPublished   bool                 `json:"is_published"`
	Dimensions    model.Dimensions     `json:"dimensions"`
	Weight        float64              `json:"weight"`
}

type UpdateProductRequest struct {
	Name          *string              `json:"name"`
	Description   *string              `json:"description"`
	Price         *float64             `json:"price"`
	DiscountPrice *float64             `json:"discount_price"`
	CountInStock  *int                 `json:"count_in_stock"`
	SKU           *string              `json:"sku"`
	Category      *string              `json:"category"`
	Brand         *string              `json:"brand"`
	Material      *string              `json:"material"`
	Sizes         []string             `json:"sizes"`
	Colors        []string             `json:"colors"`
	Collections   []string             `json:"collections"`
	Tags          []string             `json:"tags"`
	Gender        *string              `json:"gender"`
	Images        []model.ProductImage `json:"images"`
	IsFeatured    *bool                `json:"is_featured"`
	IsPublished   *bool                `json:"is_published"`
	Dimensions    *model.Dimensions    `json:"dimensions"`
	Weight        *float64             `json:"weight"`
}

// splitCommaList turns "a,b, c" into ["a","b","c"], dropping empties.
func splitCommaList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseFloatQuery(c *gin.Context, key string) *float64 {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}

// ListProducts returns the catalog filtered by query parameters
// GET /api/v1/products
func (ctrl *ProductController) ListProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	filter := repository.ProductFilter{
		Collection: c.Query("collection"),
		Category:   c.Query("category"),
		Materials:  splitCommaList(c.Query("material")),
		Brands:     splitCommaList(c.Query("brand")),
		Sizes:      splitCommaList(c.Query("size")),
		Color:      c.Query("color"),
		Gender:     c.Query("gender"),
		MinPrice:   parseFloatQuery(c, "min_price"),
		MaxPrice:   parseFloatQuery(c, "max_price"),
		Search:     c.Query("search"),
		SortBy:     repository.ProductSort(c.Query("sort_by")),
	}
	if limit := c.Query("limit"); limit != "" {
		if v, err := strconv.Atoi(limit); err == nil && v > 0 {
			filter.Limit = v
		}
	}
	if offset := c.Query("offset"); offset != "" {
		if v, err := strconv.Atoi(offset); err == nil && v > 0 {
			filter.Offset = v
		}
	}

	products, err := ctrl.productService.ListProducts(filter)
	if err != nil {
		log.Error("Failed to fetch products", err)
		apperrors.InternalError(c, "Failed to fetch products")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"count":    len(products),
	})
}

// GetProduct returns one product
// GET /api/v1/products/:id
func (ctrl *ProductController) GetProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	productID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid product id")
		return
	}

	product, err := ctrl.productService.GetProduct(uint(productID))
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to fetch product", err, map[string]interface{}{
			"product_id": productID,
		})
		apperrors.InternalError(c, "Failed to fetch product")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product": product,
	})
}

// GetBestSeller returns the highest rated product
// GET /api/v1/products/best-seller
func (ctrl *ProductController) GetBestSeller(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	product, err := ctrl.productService.GetBestSeller()
	if err != nil {
		if errors.Is(err, service.ErrNoBestSellers) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "No best seller available")
			return
		}
		log.Error("Failed to fetch best seller", err)
		apperrors.InternalError(c, "Failed to fetch best seller")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product": product,
	})
}

// GetNewArrivals returns the most recently added products
// GET /api/v1/products/new-arrivals
func (ctrl *ProductController) GetNewArrivals(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	products, err := ctrl.productService.GetNewArrivals()
	if err != nil {
		log.Error("Failed to fetch new arrivals", err)
		apperrors.InternalError(c, "Failed to fetch new arrivals")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"count":    len(products),
	})
}

// GetSimilarProducts returns products related to the given one
// GET /api/v1/products/similar/:id
func (ctrl *ProductController) GetSimilarProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	productID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid product id")
		return
	}

	products, err := ctrl.productService.GetSimilarProducts(uint(productID))
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to fetch similar products", err, map[string]interface{}{
			"product_id": productID,
		})
		apperrors.InternalError(c, "Failed to fetch similar products")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"count":    len(products),
	})
}

// CreateProduct adds a product to the catalog
// POST /api/v1/products
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid product create request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid product data")
		return
	}

	product, err := ctrl.productService.CreateProduct(userID, service.CreateProductInput{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		DiscountPrice: req.DiscountPrice,
		CountInStock:  req.CountInStock,
		SKU:           req.SKU,
		Category:      req.Category,
		Brand:         req.Brand,
		Material:      req.Material,
		Sizes:         req.Sizes,
		Colors:        req.Colors,
		Collections:   req.Collections,
		Tags:          req.Tags,
		Gender:        req.Gender,
		Images:        req.Images,
		IsFeatured:    req.IsFeatured,
		IsPublished:   req.IsPublished,
		Dimensions:    req.Dimensions,
		Weight:        req.Weight,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidProduct) {
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid product data")
			return
		}
		log.Error("Failed to create product", err, map[string]interface{}{
			"sku": req.SKU,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "create product")
		return
	}

	log.Info("Product created", map[string]interface{}{
		"product_id": product.ID,
		"sku":        product.SKU,
	})

	c.JSON(http.StatusCreated, gin.H{
		"product": product,
	})
}

// UpdateProduct applies a partial update to a product
// PUT /api/v1/products/:id
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	productID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid product id")
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid product update request", map[string]interface{}{
			"product_id": productID,
			"error":      err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid product data")
		return
	}

	product, err := ctrl.productService.UpdateProduct(uint(productID), service.UpdateProductInput{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		DiscountPrice: req.DiscountPrice,
		CountInStock:  req.CountInStock,
		SKU:           req.SKU,
		Category:      req.Category,
		Brand:         req.Brand,
		Material:      req.Material,
		Sizes:         req.Sizes,
		Colors:        req.Colors,
		Collections:   req.Collections,
		Tags:          req.Tags,
		Gender:        req.Gender,
		Images:        req.Images,
		IsFeatured:    req.IsFeatured,
		IsPublished:   req.IsPublished,
		Dimensions:    req.Dimensions,
		Weight:        req.Weight,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
		case errors.Is(err, service.ErrInvalidProduct):
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid product data")
		default:
			log.Error("Failed to update product", err, map[string]interface{}{
				"product_id": productID,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "update product")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product": product,
	})
}

// DeleteProduct removes a product from the catalog
// DELETE /api/v1/products/:id
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	productID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid product id")
		return
	}

	if err := ctrl.productService.DeleteProduct(uint(productID)); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to delete product", err, map[string]interface{}{
			"product_id": productID,
		})
		apperrors.InternalError(c, "Failed to delete product")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product deleted successfully",
	})
}
