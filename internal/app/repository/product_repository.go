package repository

import (
	"strings"

	"github.com/jmalhotra/stitchmart-backend/internal/app/model"
	"github.com/jmalhotra/stitchmart-backend/pkg/logger"
	"gorm.io/gorm"
)

type ProductSort string

const (
	ProductSortPriceAsc   ProductSort = "priceAsc"
	ProductSortPriceDesc  ProductSort = "priceDesc"
	ProductSortPopularity ProductSort = "popularity"
)

// ProductFilter mirrors the storefront's catalog query surface. Comma lists
// (brand, material, size) match any of the given values; size/color match
// against the JSON-encoded variant sets.
type ProductFilter struct {
	Collection string
	Category   string
	Materials  []string
	Brands     []string
	Sizes      []string
	Color      string
	Gender     string
	MinPrice   *float64
	MaxPrice   *float64
	Search     string
	SortBy     ProductSort
	Limit      int
	Offset     int
}

type ProductRepository interface {
	Create(product *model.Product) error
	FindWithFilter(filter ProductFilter) ([]model.Product, error)
	FindByID(id uint) (*model.Product, error)
	FindTopRated(limit int) ([]model.Product, error)
	FindNewArrivals(limit int) ([]model.Product, error)
	FindSimilar(product *model.Product, limit int) ([]model.Product, error)
	Update(product *model.Product) error
	Delete(id uint) error
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(product *model.Product) error {
	logger.Debug("Creating product in database", map[string]interface{}{
		"name":     product.Name,
		"sku":      product.SKU,
		"category": product.Category,
	})

	if err := r.db.Create(product).Error; err != nil {
		logger.Error("Failed to create product in database", err, map[string]interface{}{
			"name": product.Name,
			"sku":  product.SKU,
		})
		return err
	}
	return nil
}

func (r *productRepository) FindWithFilter(filter ProductFilter) ([]model.Product, error) {
	logger.Debug("Finding products with filter", map[string]interface{}{
		"collection": filter.Collection,
		"category":   filter.Category,
		"gender":     filter.Gender,
		"search":     filter.Search,
		"sort_by":    filter.SortBy,
		"limit":      filter.Limit,
		"offset":     filter.Offset,
	})

	query := r.db.Model(&model.Product{})

	if filter.Collection != "" && strings.ToLower(filter.Collection) != "all" {
		query = query.Where("collections LIKE ?", jsonElementPattern(filter.Collection))
	}
	if filter.Category != "" && strings.ToLower(filter.Category) != "all" {
		query = query.Where("category = ?", filter.Category)
	}
	if len(filter.Materials) > 0 {
		query = query.Where("material IN ?", filter.Materials)
	}
	if len(filter.Brands) > 0 {
		query = query.Where("brand IN ?", filter.Brands)
	}
	if len(filter.Sizes) > 0 {
		sizeQuery := r.db
		for _, size := range filter.Sizes {
			sizeQuery = sizeQuery.Or("sizes LIKE ?", jsonElementPattern(size))
		}
		query = query.Where(sizeQuery)
	}
	if filter.Color != "" {
		query = query.Where("colors LIKE ?", jsonElementPattern(filter.Color))
	}
	if filter.Gender != "" {
		query = query.Where("gender = ?", filter.Gender)
	}
	if filter.MinPrice != nil {
		query = query.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("price <= ?", *filter.MaxPrice)
	}
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}

	switch filter.SortBy {
	case ProductSortPriceAsc:
		query = query.Order("price ASC")
	case ProductSortPriceDesc:
		query = query.Order("price DESC")
	case ProductSortPopularity:
		query = query.Order("rating DESC")
	default:
		query = query.Order("created_at DESC")
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var products []model.Product
	if err := query.Find(&products).Error; err != nil {
		logger.Error("Failed to find products with filter", err)
		return nil, err
	}
	return products, nil
}

func (r *productRepository) FindByID(id uint) (*model.Product, error) {
	var product model.Product
	if err := r.db.First(&product, id).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			logger.Error("Failed to find product by ID in database", err, map[string]interface{}{
				"product_id": id,
			})
		}
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) FindTopRated(limit int) ([]model.Product, error) {
	var products []model.Product
	err := r.db.Order("rating DESC").Limit(limit).Find(&products).Error
	if err != nil {
		logger.Error("Failed to find top rated products", err)
		return nil, err
	}
	return products, nil
}

func (r *productRepository) FindNewArrivals(limit int) ([]model.Product, error) {
	var products []model.Product
	err := r.db.Order("created_at DESC").Limit(limit).Find(&products).Error
	if err != nil {
		logger.Error("Failed to find new arrivals", err)
		return nil, err
	}
	return products, nil
}

// FindSimilar returns products sharing the base product's gender or category,
// excluding the product itself.
func (r *productRepository) FindSimilar(product *model.Product, limit int) ([]model.Product, error) {
	var products []model.Product
	err := r.db.
		Where("id <> ?", product.ID).
		Where(r.db.Where("gender = ?", product.Gender).Or("category = ?", product.Category)).
		Limit(limit).
		Find(&products).Error
	if err != nil {
		logger.Error("Failed to find similar products", err, map[string]interface{}{
			"product_id": product.ID,
		})
		return nil, err
	}
	return products, nil
}

func (r *productRepository) Update(product *model.Product) error {
	logger.Debug("Updating product in database", map[string]interface{}{
		"product_id": product.ID,
	})

	if err := r.db.Save(product).Error; err != nil {
		logger.Error("Failed to update product in database", err, map[string]interface{}{
			"product_id": product.ID,
		})
		return err
	}
	return nil
}

func (r *productRepository) Delete(id uint) error {
	logger.Debug("Deleting product from database", map[string]interface{}{
		"product_id": id,
	})

	if err := r.db.Delete(&model.Product{}, id).Error; err != nil {
		logger.Error("Failed to delete product from database", err, map[string]interface{}{
			"product_id": id,
		})
		return err
	}
	return nil
}

// jsonElementPattern builds a LIKE pattern matching one element of a
// JSON-encoded string array column, e.g. ["S","M"] for "M".
func jsonElementPattern(value string) string {
	return `%"` + value + `"%`
}
