package controller

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jmalhotra/stitchmart-backend/internal/app/model"
	"github.com/jmalhotra/stitchmart-backend/internal/app/repository"
	"github.com/jmalhotra/stitchmart-backend/internal/app/service"
	"github.com/jmalhotra/stitchmart-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCheckoutControllerTest(t *testing.T) (*CheckoutController, *gorm.DB, *model.User, *model.Product) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	cartRepo := repository.NewCartRepository(testDB)
	checkoutRepo := repository.NewCheckoutRepository(testDB)
	orderRepo := repository.NewOrderRepository(testDB)
	checkoutService := service.NewCheckoutService(checkoutRepo, orderRepo, cartRepo)
	checkoutController := NewCheckoutController(checkoutService)

	user := &model.User{
		Name:         "Test User",
		Email:        "checkout-ctrl@example.com",
		PasswordHash: "hash",
		Role:         model.RoleUser,
	}
	testDB.Create(user)

	product := &model.Product{
		Name:         "Denim Jacket",
		Price:        120,
		CountInStock: 5,
		SKU:          "SKU-JACKET-CTRL",
		Category:     "Outerwear",
		Gender:       model.GenderUnisex,
		UserID:       user.ID,
	}
	testDB.Create(product)

	gin.SetMode(gin.TestMode)

	return checkoutController, testDB, user, product
}

func checkoutRouter(ctrl *CheckoutController, pre ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	group := router.Group("/api/v1/checkout", pre...)
	group.POST("", ctrl.CreateCheckout)
	group.GET("/mine", ctrl.ListMyCheckouts)
	group.PUT("/:id/pay", ctrl.PayCheckout)
	group.POST("/:id/finalize", ctrl.FinalizeCheckout)
	return router
}

func checkoutPayload(productID uint) gin.H {
	return gin.H{
		"checkout_items": []gin.H{{
			"product_id": productID,
			"name":       "Denim Jacket",
			"image":      "https://example.com/jacket.jpg",
			"price":      120,
			"size":       "M",
			"quantity":   2,
		}},
		"shipping_address": gin.H{
			"address":     "12 Tailor Lane",
			"city":        "Mumbai",
			"postal_code": "400001",
			"country":     "India",
		},
		"payment_method": "Card",
		"total_price":    240,
	}
}

func createCheckoutSession(t *testing.T, router *gin.Engine, productID uint) uint {
	t.Helper()
	w := doJSON(t, router, "POST", "/api/v1/checkout", checkoutPayload(productID))
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Checkout model.CheckoutSession `json:"checkout"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Checkout.ID
}

func TestCheckoutController_CreateCheckout(t *testing.T) {
	ctrl, _, user, product := setupCheckoutControllerTest(t)
	router := checkoutRouter(ctrl, authAs(user.ID))

	w := doJSON(t, router, "POST", "/api/v1/checkout", checkoutPayload(product.ID))
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Checkout model.CheckoutSession `json:"checkout"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, user.ID, resp.Checkout.UserID)
	assert.Equal(t, model.PaymentStatusPending, resp.Checkout.PaymentStatus)
	assert.False(t, resp.Checkout.IsPaid)
}

func TestCheckoutController_CreateCheckout_RequiresAuth(t *testing.T) {
	ctrl, _, _, product := setupCheckoutControllerTest(t)
	router := checkoutRouter(ctrl)

	w := doJSON(t, router, "POST", "/api/v1/checkout", checkoutPayload(product.ID))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCheckoutController_CreateCheckout_EnumeratesMissingFields(t *testing.T) {
	ctrl, _, user, product := setupCheckoutControllerTest(t)
	router := checkoutRouter(ctrl, authAs(user.ID))

	payload := checkoutPayload(product.ID)
	delete(payload, "payment_method")
	w := doJSON(t, router, "POST", "/api/v1/checkout", payload)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Error  string            `json:"error"`
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "VALIDATION_INVALID_INPUT", resp.Error)
	assert.Equal(t, "required", resp.Fields["PaymentMethod"])
}

func TestCheckoutController_CreateCheckout_EmptyItems(t *testing.T) {
	ctrl, _, user, product := setupCheckoutControllerTest(t)
	router := checkoutRouter(ctrl, authAs(user.ID))

	payload := checkoutPayload(product.ID)
	payload["checkout_items"] = []gin.H{}
	w := doJSON(t, router, "POST", "/api/v1/checkout", payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "CHECKOUT_EMPTY_ITEMS")
}

func TestCheckoutController_PayCheckout(t *testing.T) {
	ctrl, _, user, product := setupCheckoutControllerTest(t)
	router := checkoutRouter(ctrl, authAs(user.ID))

	checkoutID := createCheckoutSession(t, router, product.ID)

	w := doJSON(t, router, "PUT", fmt.Sprintf("/api/v1/checkout/%d/pay", checkoutID), gin.H{
		"payment_status":  "paid",
		"payment_details": gin.H{"transaction_id": "txn_42"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Checkout model.CheckoutSession `json:"checkout"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Checkout.IsPaid)
	assert.Equal(t, model.PaymentStatusPaid, resp.Checkout.PaymentStatus)
}

func TestCheckoutController_PayCheckout_RejectsOtherStatuses(t *testing.T) {
	ctrl, _, user, product := setupCheckoutControllerTest(t)
	router := checkoutRouter(ctrl, authAs(user.ID))

	checkoutID := createCheckoutSession(t, router, product.ID)

	w := doJSON(t, router, "PUT", fmt.Sprintf("/api/v1/checkout/%d/pay", checkoutID), gin.H{
		"payment_status": "Paid",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "CHECKOUT_INVALID_PAYMENT_STATUS")
}

func TestCheckoutController_FinalizeCheckout(t *testing.T) {
	ctrl, _, user, product := setupCheckoutControllerTest(t)
	router := checkoutRouter(ctrl, authAs(user.ID))

	checkoutID := createCheckoutSession(t, router, product.ID)

	w := doJSON(t, router, "PUT", fmt.Sprintf("/api/v1/checkout/%d/pay", checkoutID), gin.H{
		"payment_status": "paid",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, "POST", fmt.Sprintf("/api/v1/checkout/%d/finalize", checkoutID), nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Order model.Order `json:"order"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, model.OrderStatusProcessing, resp.Order.Status)
	assert.Equal(t, model.PaymentStatusPaid, resp.Order.PaymentStatus)
	assert.Equal(t, 240.0, resp.Order.TotalPrice)
}

func TestCheckoutController_FinalizeCheckout_Unpaid(t *testing.T) {
	ctrl, _, user, product := setupCheckoutControllerTest(t)
	router := checkoutRouter(ctrl, authAs(user.ID))

	checkoutID := createCheckoutSession(t, router, product.ID)

	w := doJSON(t, router, "POST", fmt.Sprintf("/api/v1/checkout/%d/finalize", checkoutID), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "CHECKOUT_NOT_PAID")
}

func TestCheckoutController_FinalizeCheckout_TwiceConflicts(t *testing.T) {
	ctrl, _, user, product := setupCheckoutControllerTest(t)
	router := checkoutRouter(ctrl, authAs(user.ID))

	checkoutID := createCheckoutSession(t, router, product.ID)

	w := doJSON(t, router, "PUT", fmt.Sprintf("/api/v1/checkout/%d/pay", checkoutID), gin.H{
		"payment_status": "paid",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, "POST", fmt.Sprintf("/api/v1/checkout/%d/finalize", checkoutID), nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, "POST", fmt.Sprintf("/api/v1/checkout/%d/finalize", checkoutID), nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "CHECKOUT_ALREADY_FINALIZED")
}

func TestCheckoutController_FinalizeCheckout_NotFound(t *testing.T) {
	ctrl, _, user, _ := setupCheckoutControllerTest(t)
	router := checkoutRouter(ctrl, authAs(user.ID))

	w := doJSON(t, router, "POST", "/api/v1/checkout/9999/finalize", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCheckoutController_OtherUsersSessionForbidden(t *testing.T) {
	ctrl, testDB, user, product := setupCheckoutControllerTest(t)
	ownerRouter := checkoutRouter(ctrl, authAs(user.ID))

	checkoutID := createCheckoutSession(t, ownerRouter, product.ID)

	other := &model.User{Name: "Other", Email: "intruder@example.com", PasswordHash: "hash", Role: model.RoleUser}
	testDB.Create(other)
	otherRouter := checkoutRouter(ctrl, authAs(other.ID))

	w := doJSON(t, otherRouter, "PUT", fmt.Sprintf("/api/v1/checkout/%d/pay", checkoutID), gin.H{
		"payment_status": "paid",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCheckoutController_ListMyCheckouts(t *testing.T) {
	ctrl, _, user, product := setupCheckoutControllerTest(t)
	router := checkoutRouter(ctrl, authAs(user.ID))

	createCheckoutSession(t, router, product.ID)
	createCheckoutSession(t, router, product.ID)

	w := doJSON(t, router, "GET", "/api/v1/checkout/mine", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Checkouts []model.CheckoutSession `json:"checkouts"`
		Count     int                     `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)
	assert.Len(t, resp.Checkouts, 2)
}
