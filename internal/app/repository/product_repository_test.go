package repository

import (
	"fmt"
	"testing"

	"github.com/jmalhotra/stitchmart-backend/internal/app/model"
	"github.com/jmalhotra/stitchmart-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupProductRepoTest(t *testing.T) (*gorm.DB, ProductRepository, *model.User) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	repo := NewProductRepository(testDB)

	user := &model.User{
		Name:         "Admin",
		Email:        "product-repo@example.com",
		PasswordHash: "hash",
		Role:         model.RoleAdmin,
	}
	testDB.Create(user)

	return testDB, repo, user
}

func createRepoProduct(t *testing.T, repo ProductRepository, userID uint, i int, mutate func(*model.Product)) *model.Product {
	product := &model.Product{
		Name:         fmt.Sprintf("Product %d", i),
		Description:  "A wardrobe staple",
		Price:        50,
		CountInStock: 10,
		SKU:          fmt.Sprintf("SKU-REPO-%d", i),
		Category:     "Top Wear",
		Gender:       model.GenderUnisex,
		Sizes:        []string{"M"},
		Colors:       []string{"Black"},
		UserID:       userID,
	}
	if mutate != nil {
		mutate(product)
	}
	require.NoError(t, repo.Create(product))
	return product
}

func TestProductRepository_FindWithFilter_SizeMembership(t *testing.T) {
	_, repo, user := setupProductRepoTest(t)

	createRepoProduct(t, repo, user.ID, 1, func(p *model.Product) {
		p.Sizes = []string{"S", "M"}
	})
	createRepoProduct(t, repo, user.ID, 2, func(p *model.Product) {
		p.Sizes = []string{"XL", "XXL"}
	})

	products, err := repo.FindWithFilter(ProductFilter{Sizes: []string{"XL"}})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Product 2", products[0].Name)

	products, err = repo.FindWithFilter(ProductFilter{Sizes: []string{"S"}})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Product 1", products[0].Name)
}

func TestProductRepository_FindWithFilter_LimitOffset(t *testing.T) {
	_, repo, user := setupProductRepoTest(t)

	for i := 1; i <= 5; i++ {
		createRepoProduct(t, repo, user.ID, i, nil)
	}

	page1, err := repo.FindWithFilter(ProductFilter{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, page1, 2)

	page2, err := repo.FindWithFilter(ProductFilter{Limit: 2, Offset: 2})
	require.NoError(t, err)
	assert.Len(t, page2, 2)
	assert.NotEqual(t, page1[0].ID, page2[0].ID)
}

func TestProductRepository_FindTopRated(t *testing.T) {
	_, repo, user := setupProductRepoTest(t)

	createRepoProduct(t, repo, user.ID, 1, func(p *model.Product) { p.Rating = 3.1 })
	createRepoProduct(t, repo, user.ID, 2, func(p *model.Product) { p.Rating = 4.9 })
	createRepoProduct(t, repo, user.ID, 3, func(p *model.Product) { p.Rating = 4.2 })

	products, err := repo.FindTopRated(2)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, 4.9, products[0].Rating)
	assert.Equal(t, 4.2, products[1].Rating)
}

func TestProductRepository_FindSimilar_ExcludesSelf(t *testing.T) {
	_, repo, user := setupProductRepoTest(t)

	base := createRepoProduct(t, repo, user.ID, 1, func(p *model.Product) {
		p.Gender = model.GenderMen
		p.Category = "Bottom Wear"
	})
	createRepoProduct(t, repo, user.ID, 2, func(p *model.Product) {
		p.Gender = model.GenderMen
	})
	createRepoProduct(t, repo, user.ID, 3, func(p *model.Product) {
		p.Gender = model.GenderWomen
		p.Category = "Bottom Wear"
	})
	createRepoProduct(t, repo, user.ID, 4, func(p *model.Product) {
		p.Gender = model.GenderWomen
		p.Category = "Footwear"
	})

	products, err := repo.FindSimilar(base, 5)
	require.NoError(t, err)
	require.Len(t, products, 2)
	for _, p := range products {
		assert.NotEqual(t, base.ID, p.ID)
	}
}

func TestProductRepository_Delete(t *testing.T) {
	_, repo, user := setupProductRepoTest(t)

	product := createRepoProduct(t, repo, user.ID, 1, nil)

	require.NoError(t, repo.Delete(product.ID))

	_, err := repo.FindByID(product.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
