package repository

import (
	"testing"

	"github.com/jmalhotra/stitchmart-backend/internal/app/model"
	"github.com/jmalhotra/stitchmart-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCartRepoTest(t *testing.T) (*gorm.DB, CartRepository, *model.User, *model.Product) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	repo := NewCartRepository(testDB)

	user := &model.User{
		Name:         "Test User",
		Email:        "cart-repo@example.com",
		PasswordHash: "hash",
		Role:         model.RoleUser,
	}
	testDB.Create(user)

	product := &model.Product{
		Name:         "Denim Jacket",
		Price:        80,
		CountInStock: 5,
		SKU:          "SKU-JACKET-1",
		Category:     "Top Wear",
		Gender:       model.GenderUnisex,
		UserID:       user.ID,
	}
	testDB.Create(product)

	return testDB, repo, user, product
}

func newCartLine(productID uint, size string, qty int, price float64) model.CartItem {
	return model.CartItem{
		ProductID: productID,
		Name:      "Denim Jacket",
		Price:     price,
		Size:      size,
		Color:     "Blue",
		Quantity:  qty,
	}
}

func TestCartRepository_CreateAndFindByUserID(t *testing.T) {
	_, repo, user, product := setupCartRepoTest(t)

	cart := &model.Cart{
		UserID: &user.ID,
		Items:  []model.CartItem{newCartLine(product.ID, "M", 2, 80)},
	}
	cart.RecalculateTotal()

	err := repo.Create(cart)
	require.NoError(t, err)
	assert.NotZero(t, cart.ID)

	found, err := repo.FindByUserID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, cart.ID, found.ID)
	require.Len(t, found.Items, 1)
	assert.Equal(t, product.ID, found.Items[0].ProductID)
	assert.Equal(t, 160.0, found.TotalPrice)
}

func TestCartRepository_FindByGuestID(t *testing.T) {
	_, repo, _, product := setupCartRepoTest(t)

	guestID := "guest_fixed-id"
	cart := &model.Cart{
		GuestID: &guestID,
		Items:   []model.CartItem{newCartLine(product.ID, "S", 1, 80)},
	}
	require.NoError(t, repo.Create(cart))

	found, err := repo.FindByGuestID(guestID)
	require.NoError(t, err)
	assert.Equal(t, cart.ID, found.ID)

	_, err = repo.FindByGuestID("guest_unknown")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCartRepository_ReplaceItems_RemovesStaleLines(t *testing.T) {
	testDB, repo, user, product := setupCartRepoTest(t)

	cart := &model.Cart{
		UserID: &user.ID,
		Items: []model.CartItem{
			newCartLine(product.ID, "S", 1, 80),
			newCartLine(product.ID, "M", 2, 80),
		},
	}
	cart.RecalculateTotal()
	require.NoError(t, repo.Create(cart))

	replacement := []model.CartItem{newCartLine(product.ID, "L", 3, 80)}
	cart.Items = replacement
	cart.RecalculateTotal()
	require.NoError(t, repo.ReplaceItems(cart, replacement))

	found, err := repo.FindByUserID(user.ID)
	require.NoError(t, err)
	require.Len(t, found.Items, 1)
	assert.Equal(t, "L", found.Items[0].Size)
	assert.Equal(t, 3, found.Items[0].Quantity)
	assert.Equal(t, 240.0, found.TotalPrice)

	var lineCount int64
	testDB.Model(&model.CartItem{}).Where("cart_id = ?", cart.ID).Count(&lineCount)
	assert.Equal(t, int64(1), lineCount)
}

func TestCartRepository_Delete_RemovesCartAndLines(t *testing.T) {
	testDB, repo, user, product := setupCartRepoTest(t)

	cart := &model.Cart{
		UserID: &user.ID,
		Items:  []model.CartItem{newCartLine(product.ID, "M", 1, 80)},
	}
	require.NoError(t, repo.Create(cart))

	err := repo.Delete(cart.ID)
	require.NoError(t, err)

	_, err = repo.FindByUserID(user.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var lineCount int64
	testDB.Model(&model.CartItem{}).Where("cart_id = ?", cart.ID).Count(&lineCount)
	assert.Equal(t, int64(0), lineCount)
}

func TestCartRepository_DeleteByUserID(t *testing.T) {
	_, repo, user, product := setupCartRepoTest(t)

	cart := &model.Cart{
		UserID: &user.ID,
		Items:  []model.CartItem{newCartLine(product.ID, "M", 1, 80)},
	}
	require.NoError(t, repo.Create(cart))

	require.NoError(t, repo.DeleteByUserID(user.ID))

	_, err := repo.FindByUserID(user.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	err = repo.DeleteByUserID(user.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
