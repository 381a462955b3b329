package service

import (
	"errors"

	"github.com/jmalhotra/stitchmart-backend/internal/app/model"
	"github.com/jmalhotra/stitchmart-backend/internal/app/repository"
	"github.com/jmalhotra/stitchmart-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrNoBestSellers  = errors.New("no best seller available")
	ErrInvalidProduct = errors.New("product data is invalid")
)

const (
	newArrivalsLimit     = 8
	similarProductsLimit = 5
)

type CreateProductInput struct {
	Name          string
	Description   string
	Price         float64
	DiscountPrice *float64
	CountInStock  int
	SKU           string
	Category      string
	Brand         string
	Material      string
	Sizes         []string
	Colors        []string
	Collections   []string
	Tags          []string
	Gender        string
	Images        []model.ProductImage
	IsFeatured    bool
	IsPublished   bool
	Dimensions    model.Dimensions
	Weight        float64
}

type UpdateProductInput struct {
	Name          *string
	Description   *string
	Price         *float64
	DiscountPrice *float64
	CountInStock  *int
	SKU           *string
	Category      *string
	Brand         *string
	Material      *string
	Sizes         []string
	Colors        []string
	Collections   []string
	Tags          []string
	Gender        *string
	Images        []model.ProductImage
	IsFeatured    *bool
	IsPublished   *bool
	Dimensions    *model.Dimensions
	Weight        *float64
}

type ProductService interface {
	ListProducts(filter repository.ProductFilter) ([]model.Product, error)
	GetProduct(id uint) (*model.Product, error)
	GetBestSeller() (*model.Product, error)
	GetNewArrivals() ([]model.Product, error)
	GetSimilarProducts(id uint) ([]model.Product, error)
	CreateProduct(userID uint, input CreateProductInput) (*model.Product, error)
	UpdateProduct(id uint, input UpdateProductInput) (*model.Product, error)
	DeleteProduct(id uint) error
}

type productService struct {
	productRepo repository.ProductRepository
}

func NewProductService(productRepo repository.ProductRepository) ProductService {
	return &productService{productRepo: productRepo}
}

func (s *productService) ListProducts(filter repository.ProductFilter) ([]model.Product, error) {
	return s.productRepo.FindWithFilter(filter)
}

func (s *productService) GetProduct(id uint) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

// GetBestSeller returns the single highest rated product.
func (s *productService) GetBestSeller() (*model.Product, error) {
	products, err := s.productRepo.FindTopRated(1)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, ErrNoBestSellers
	}
	return &products[0], nil
}

func (s *productService) GetNewArrivals() ([]model.Product, error) {
	return s.productRepo.FindNewArrivals(newArrivalsLimit)
}

func (s *productService) GetSimilarProducts(id uint) ([]model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return s.productRepo.FindSimilar(product, similarProductsLimit)
}

func (s *productService) CreateProduct(userID uint, input CreateProductInput) (*model.Product, error) {
	logger.Info("Creating product", map[string]interface{}{
		"user_id": userID,
		"name":    input.Name,
		"sku":     input.SKU,
	})

	if input.Name == "" || input.SKU == "" || input.Category == "" || input.Price <= 0 || input.CountInStock < 0 {
		return nil, ErrInvalidProduct
	}
	if input.Gender != "" && !model.ValidGender(input.Gender) {
		return nil, ErrInvalidProduct
	}

	product := &model.Product{
		Name:          input.Name,
		Description:   input.Description,
		Price:         input.Price,
		DiscountPrice: input.DiscountPrice,
		CountInStock:  input.CountInStock,
		SKU:           input.SKU,
		Category:      input.Category,
		Brand:         input.Brand,
		Material:      input.Material,
		Sizes:         input.Sizes,
		Colors:        input.Colors,
		Collections:   input.Collections,
		Tags:          input.Tags,
		Gender:        model.Gender(input.Gender),
		Images:        input.Images,
		IsFeatured:    input.IsFeatured,
		IsPublished:   input.IsPublished,
		Dimensions:    input.Dimensions,
		Weight:        input.Weight,
		UserID:        userID,
	}

	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProduct applies a partial update. Nil fields are left untouched,
// which keeps explicit zero values (price 0 excepted by validation)
// distinguishable from absent ones.
func (s *productService) UpdateProduct(id uint, input UpdateProductInput) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Price != nil {
		if *input.Price <= 0 {
			return nil, ErrInvalidProduct
		}
		product.Price = *input.Price
	}
	if input.DiscountPrice != nil {
		product.DiscountPrice = input.DiscountPrice
	}
	if input.CountInStock != nil {
		if *input.CountInStock < 0 {
			return nil, ErrInvalidProduct
		}
		product.CountInStock = *input.CountInStock
	}
	if input.SKU != nil {
		product.SKU = *input.SKU
	}
	if input.Category != nil {
		product.Category = *input.Category
	}
	if input.Brand != nil {
		product.Brand = *input.Brand
	}
	if input.Material != nil {
		product.Material = *input.Material
	}
	if input.Sizes != nil {
		product.Sizes = input.Sizes
	}
	if input.Colors != nil {
		product.Colors = input.Colors
	}
	if input.Collections != nil {
		product.Collections = input.Collections
	}
	if input.Tags != nil {
		product.Tags = input.Tags
	}
	if input.Gender != nil {
		if !model.ValidGender(*input.Gender) {
			return nil, ErrInvalidProduct
		}
		product.Gender = model.Gender(*input.Gender)
	}
	if input.Images != nil {
		product.Images = input.Images
	}
	if input.IsFeatured != nil {
		product.IsFeatured = *input.IsFeatured
	}
	if input.IsPublished != nil {
		product.IsPublished = *input.IsPublished
	}
	if input.Dimensions != nil {
		product.Dimensions = *input.Dimensions
	}
	if input.Weight != nil {
		product.Weight = *input.Weight
	}

	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *productService) DeleteProduct(id uint) error {
	if _, err := s.productRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	logger.Info("Deleting product", map[string]interface{}{
		"product_id": id,
	})
	return s.productRepo.Delete(id)
}
