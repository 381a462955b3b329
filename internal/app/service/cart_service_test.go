package service

import (
	"strings"
	"testing"

	"github.com/jmalhotra/stitchmart-backend/internal/app/model"
	"github.com/jmalhotra/stitchmart-backend/internal/app/repository"
	"github.com/jmalhotra/stitchmart-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCartServiceTest(t *testing.T) (CartService, *model.User, *model.Product, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	cartRepo := repository.NewCartRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)
	cartService := NewCartService(cartRepo, productRepo)

	user := &model.User{
		Name:         "Test User",
		Email:        "test@example.com",
		PasswordHash: "hash",
		Role:         model.RoleUser,
	}
	testDB.Create(user)

	product := &model.Product{
		Name:         "Linen Shirt",
		Price:        45,
		CountInStock: 10,
		SKU:          "SKU-SHIRT-1",
		Category:     "Top Wear",
		Sizes:        []string{"S", "M", "L"},
		Colors:       []string{"White", "Blue"},
		Gender:       model.GenderUnisex,
		Images:       model.ImageList{{URL: "https://example.com/shirt.jpg"}},
		UserID:       user.ID,
	}
	testDB.Create(product)

	return cartService, user, product, testDB
}

func userIdentity(userID uint) CartIdentity {
	return CartIdentity{UserID: &userID}
}

func guestIdentity(guestID string) CartIdentity {
	return CartIdentity{GuestID: &guestID}
}

func TestCartService_AddItem_CreatesCartWithSnapshot(t *testing.T) {
	cartService, user, product, _ := setupCartServiceTest(t)

	cart, err := cartService.AddItem(userIdentity(user.ID), AddItemInput{
		ProductID: product.ID,
		Quantity:  2,
		Size:      "M",
		Color:     "Blue",
	})
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)

	item := cart.Items[0]
	assert.Equal(t, product.ID, item.ProductID)
	assert.Equal(t, "Linen Shirt", item.Name)
	assert.Equal(t, "https://example.com/shirt.jpg", item.Image)
	assert.Equal(t, 45.0, item.Price)
	assert.Equal(t, 2, item.Quantity)
	assert.Equal(t, 90.0, cart.TotalPrice)
}

func TestCartService_AddItem_OverwritesQuantity(t *testing.T) {
	cartService, user, product, _ := setupCartServiceTest(t)
	identity := userIdentity(user.ID)

	_, err := cartService.AddItem(identity, AddItemInput{ProductID: product.ID, Quantity: 2, Size: "M", Color: "Blue"})
	require.NoError(t, err)

	// Adding the same variant again replaces the quantity instead of adding.
	cart, err := cartService.AddItem(identity, AddItemInput{ProductID: product.ID, Quantity: 3, Size: "M", Color: "Blue"})
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)
	assert.Equal(t, 135.0, cart.TotalPrice)
}

func TestCartService_AddItem_DistinctVariantsAreSeparateLines(t *testing.T) {
	cartService, user, product, _ := setupCartServiceTest(t)
	identity := userIdentity(user.ID)

	_, err := cartService.AddItem(identity, AddItemInput{ProductID: product.ID, Quantity: 1, Size: "M", Color: "Blue"})
	require.NoError(t, err)

	cart, err := cartService.AddItem(identity, AddItemInput{ProductID: product.ID, Quantity: 1, Size: "L", Color: "Blue"})
	require.NoError(t, err)

	assert.Len(t, cart.Items, 2)
	assert.Equal(t, 90.0, cart.TotalPrice)
}

func TestCartService_AddItem_ProductNotFound(t *testing.T) {
	cartService, user, _, _ := setupCartServiceTest(t)

	_, err := cartService.AddItem(userIdentity(user.ID), AddItemInput{ProductID: 9999, Quantity: 1})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCartService_AddItem_GuestGetsGeneratedID(t *testing.T) {
	cartService, _, product, _ := setupCartServiceTest(t)

	cart, err := cartService.AddItem(CartIdentity{}, AddItemInput{ProductID: product.ID, Quantity: 1})
	require.NoError(t, err)

	require.NotNil(t, cart.GuestID)
	assert.True(t, strings.HasPrefix(*cart.GuestID, "guest_"))
	assert.Nil(t, cart.UserID)
}

func TestCartService_AddItem_UsesDiscountPrice(t *testing.T) {
	cartService, user, product, testDB := setupCartServiceTest(t)

	discount := 30.0
	product.DiscountPrice = &discount
	testDB.Save(product)

	cart, err := cartService.AddItem(userIdentity(user.ID), AddItemInput{ProductID: product.ID, Quantity: 2})
	require.NoError(t, err)

	assert.Equal(t, 30.0, cart.Items[0].Price)
	assert.Equal(t, 60.0, cart.TotalPrice)
}

func TestCartService_UpdateItemQuantity(t *testing.T) {
	cartService, user, product, _ := setupCartServiceTest(t)
	identity := userIdentity(user.ID)

	_, err := cartService.AddItem(identity, AddItemInput{ProductID: product.ID, Quantity: 2, Size: "M"})
	require.NoError(t, err)

	cart, err := cartService.UpdateItemQuantity(identity, product.ID, "M", "", 5)
	require.NoError(t, err)
	assert.Equal(t, 5, cart.Items[0].Quantity)
	assert.Equal(t, 225.0, cart.TotalPrice)
}

func TestCartService_UpdateItemQuantity_ZeroRemovesLine(t *testing.T) {
	cartService, user, product, _ := setupCartServiceTest(t)
	identity := userIdentity(user.ID)

	_, err := cartService.AddItem(identity, AddItemInput{ProductID: product.ID, Quantity: 2, Size: "M"})
	require.NoError(t, err)

	cart, err := cartService.UpdateItemQuantity(identity, product.ID, "M", "", 0)
	require.NoError(t, err)
	assert.Len(t, cart.Items, 0)
	assert.Equal(t, 0.0, cart.TotalPrice)
}

func TestCartService_UpdateItemQuantity_ItemNotFound(t *testing.T) {
	cartService, user, product, _ := setupCartServiceTest(t)
	identity := userIdentity(user.ID)

	_, err := cartService.AddItem(identity, AddItemInput{ProductID: product.ID, Quantity: 1, Size: "M"})
	require.NoError(t, err)

	// Same product but a different variant key.
	_, err = cartService.UpdateItemQuantity(identity, product.ID, "XL", "", 2)
	assert.ErrorIs(t, err, ErrCartItemNotFound)
}

func TestCartService_RemoveItem(t *testing.T) {
	cartService, user, product, _ := setupCartServiceTest(t)
	identity := userIdentity(user.ID)

	_, err := cartService.AddItem(identity, AddItemInput{ProductID: product.ID, Quantity: 2, Size: "M"})
	require.NoError(t, err)
	_, err = cartService.AddItem(identity, AddItemInput{ProductID: product.ID, Quantity: 1, Size: "L"})
	require.NoError(t, err)

	cart, err := cartService.RemoveItem(identity, product.ID, "M", "")
	require.NoError(t, err)
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, "L", cart.Items[0].Size)
	assert.Equal(t, 45.0, cart.TotalPrice)
}

func TestCartService_GetCart_NotFound(t *testing.T) {
	cartService, user, _, _ := setupCartServiceTest(t)

	_, err := cartService.GetCart(userIdentity(user.ID))
	assert.ErrorIs(t, err, ErrCartNotFound)
}

func TestCartService_GetCart_UserTakesPrecedenceOverGuest(t *testing.T) {
	cartService, user, product, _ := setupCartServiceTest(t)

	guestID := "guest_precedence"
	_, err := cartService.AddItem(guestIdentity(guestID), AddItemInput{ProductID: product.ID, Quantity: 1})
	require.NoError(t, err)
	_, err = cartService.AddItem(userIdentity(user.ID), AddItemInput{ProductID: product.ID, Quantity: 3})
	require.NoError(t, err)

	both := CartIdentity{UserID: &user.ID, GuestID: &guestID}
	cart, err := cartService.GetCart(both)
	require.NoError(t, err)
	assert.Equal(t, &user.ID, cart.UserID)
	assert.Equal(t, 3, cart.Items[0].Quantity)
}

func TestCartService_MergeGuestCart_AddsQuantities(t *testing.T) {
	cartService, user, product, _ := setupCartServiceTest(t)

	guestID := "guest_merge_add"
	_, err := cartService.AddItem(guestIdentity(guestID), AddItemInput{ProductID: product.ID, Quantity: 2, Size: "M"})
	require.NoError(t, err)
	_, err = cartService.AddItem(userIdentity(user.ID), AddItemInput{ProductID: product.ID, Quantity: 3, Size: "M"})
	require.NoError(t, err)

	// Merge adds quantities, unlike AddItem which overwrites.
	cart, err := cartService.MergeGuestCart(user.ID, guestID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
	assert.Equal(t, 225.0, cart.TotalPrice)

	// Guest cart is gone afterwards.
	_, err = cartService.GetCart(guestIdentity(guestID))
	assert.ErrorIs(t, err, ErrCartNotFound)
}

func TestCartService_MergeGuestCart_NewLinesAppended(t *testing.T) {
	cartService, user, product, testDB := setupCartServiceTest(t)

	other := &model.Product{
		Name:         "Wool Scarf",
		Price:        25,
		CountInStock: 5,
		SKU:          "SKU-SCARF-1",
		Category:     "Accessories",
		Gender:       model.GenderUnisex,
		UserID:       user.ID,
	}
	testDB.Create(other)

	guestID := "guest_merge_new"
	_, err := cartService.AddItem(guestIdentity(guestID), AddItemInput{ProductID: other.ID, Quantity: 1})
	require.NoError(t, err)
	_, err = cartService.AddItem(userIdentity(user.ID), AddItemInput{ProductID: product.ID, Quantity: 1, Size: "M"})
	require.NoError(t, err)

	cart, err := cartService.MergeGuestCart(user.ID, guestID)
	require.NoError(t, err)
	assert.Len(t, cart.Items, 2)
	assert.Equal(t, 70.0, cart.TotalPrice)
}

func TestCartService_MergeGuestCart_NoUserCartTakesOverGuestCart(t *testing.T) {
	cartService, user, product, _ := setupCartServiceTest(t)

	guestID := "guest_takeover"
	_, err := cartService.AddItem(guestIdentity(guestID), AddItemInput{ProductID: product.ID, Quantity: 2})
	require.NoError(t, err)

	cart, err := cartService.MergeGuestCart(user.ID, guestID)
	require.NoError(t, err)
	require.NotNil(t, cart.UserID)
	assert.Equal(t, user.ID, *cart.UserID)
	assert.Nil(t, cart.GuestID)
	assert.Equal(t, 2, cart.Items[0].Quantity)
}

func TestCartService_MergeGuestCart_GuestCartNotFound(t *testing.T) {
	cartService, user, _, _ := setupCartServiceTest(t)

	_, err := cartService.MergeGuestCart(user.ID, "guest_missing")
	assert.ErrorIs(t, err, ErrGuestCartNotFound)
}

func TestCartService_MergeGuestCart_EmptyGuestCart(t *testing.T) {
	cartService, user, product, _ := setupCartServiceTest(t)

	guestID := "guest_empty"
	identity := guestIdentity(guestID)
	_, err := cartService.AddItem(identity, AddItemInput{ProductID: product.ID, Quantity: 1})
	require.NoError(t, err)
	_, err = cartService.RemoveItem(identity, product.ID, "", "")
	require.NoError(t, err)

	_, err = cartService.MergeGuestCart(user.ID, guestID)
	assert.ErrorIs(t, err, ErrGuestCartEmpty)
}

func TestCartService_TotalAlwaysMatchesLines(t *testing.T) {
	cartService, user, product, _ := setupCartServiceTest(t)
	identity := userIdentity(user.ID)

	_, err := cartService.AddItem(identity, AddItemInput{ProductID: product.ID, Quantity: 4, Size: "S"})
	require.NoError(t, err)
	_, err = cartService.AddItem(identity, AddItemInput{ProductID: product.ID, Quantity: 2, Size: "M"})
	require.NoError(t, err)
	cart, err := cartService.UpdateItemQuantity(identity, product.ID, "S", "", 1)
	require.NoError(t, err)

	var expected float64
	for _, item := range cart.Items {
		expected += item.Price * float64(item.Quantity)
	}
	assert.Equal(t, expected, cart.TotalPrice)
}
