package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jmalhotra/stitchmart-backend/internal/app/model"
	"github.com/jmalhotra/stitchmart-backend/internal/app/service"
	apperrors "github.com/jmalhotra/stitchmart-backend/internal/errors"
	"github.com/jmalhotra/stitchmart-backend/internal/middleware"
)

type CheckoutController struct {
	checkoutService service.CheckoutService
}

func NewCheckoutController(checkoutService service.CheckoutService) *CheckoutController {
	return &CheckoutController{
		checkoutService: checkoutService,
	}
}

type CheckoutItemRequest struct {
	ProductID uint    `json:"product_id" binding:"required"`
	Name      string  `json:"name"`
	Image     string  `json:"image"`
	Price     float64 `json:"price"`
	Size      string  `json:"size"`
	Color     string  `json:"color"`
	Quantity  int     `json:"quantity" binding:"required,gt=0"`
}

type CreateCheckoutRequest struct {
	Items           []CheckoutItemRequest `json:"checkout_items" binding:"required"`
	ShippingAddress model.Address         `json:"shipping_address" binding:"required"`
	PaymentMethod   string                `json:"payment_method" binding:"required"`
	TotalPrice      float64               `json:"total_price"`
}

type PayCheckoutRequest struct {
	PaymentStatus  string        `json:"payment_status" binding:"required"`
	PaymentDetails model.JSONMap `json:"payment_details"`
}

// CreateCheckout opens a checkout session from the client's cart snapshot
// POST /api/v1/checkout
func (ctrl *CheckoutController) CreateCheckout(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	var req CreateCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid checkout request", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make(map[string]string, len(verrs))
			for _, fe := range verrs {
				fields[fe.Field()] = fe.Tag()
			}
			apperrors.RespondWithValidationError(c, fields)
			return
		}
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid checkout data")
		return
	}

	input := service.CreateCheckoutInput{
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		TotalPrice:      req.TotalPrice,
	}
	for _, item := range req.Items {
		input.Items = append(input.Items, service.CheckoutItemInput{
			ProductID: item.ProductID,
			Name:      item.Name,
			Image:     item.Image,
			Price:     item.Price,
			Size:      item.Size,
			Color:     item.Color,
			Quantity:  item.Quantity,
		})
	}

	session, err := ctrl.checkoutService.Create(userID, input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCheckoutEmptyItems):
			apperrors.BadRequest(c, apperrors.CheckoutEmptyItems, "Checkout requires at least one item")
		case errors.Is(err, service.ErrCheckoutInvalidItem):
			apperrors.BadRequest(c, apperrors.CheckoutInvalidItem, "Checkout contains an invalid item")
		case errors.Is(err, service.ErrCheckoutInvalidAddress):
			apperrors.BadRequest(c, apperrors.CheckoutInvalidAddress, "Shipping address is incomplete")
		case errors.Is(err, service.ErrCheckoutMissingPaymentWay):
			apperrors.BadRequest(c, apperrors.ValidationRequired, "Payment method is required")
		case errors.Is(err, service.ErrCheckoutInvalidTotal):
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Total price is invalid")
		default:
			log.Error("Failed to create checkout session", err, map[string]interface{}{
				"user_id": userID,
			})
			apperrors.InternalError(c, "Failed to create checkout session")
		}
		return
	}

	log.Info("Checkout session created", map[string]interface{}{
		"user_id":     userID,
		"checkout_id": session.ID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"checkout": session,
	})
}

// PayCheckout records a successful payment on the session
// PUT /api/v1/checkout/:id/pay
func (ctrl *CheckoutController) PayCheckout(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	checkoutID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid checkout id")
		return
	}

	var req PayCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid payment request", map[string]interface{}{
			"checkout_id": checkoutID,
			"error":       err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid payment data")
		return
	}

	session, err := ctrl.checkoutService.MarkPaid(userID, uint(checkoutID), service.PayCheckoutInput{
		PaymentStatus:  req.PaymentStatus,
		PaymentDetails: req.PaymentDetails,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCheckoutNotFound):
			apperrors.NotFound(c, apperrors.CheckoutNotFound, "Checkout session not found")
		case errors.Is(err, service.ErrCheckoutNotOwned):
			apperrors.Forbidden(c, "Checkout session belongs to another user")
		case errors.Is(err, service.ErrInvalidPaymentStatus):
			apperrors.BadRequest(c, apperrors.CheckoutInvalidPayStatus, "Unsupported payment status")
		default:
			log.Error("Failed to update payment", err, map[string]interface{}{
				"checkout_id": checkoutID,
			})
			apperrors.InternalError(c, "Failed to update payment")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"checkout": session,
	})
}

// FinalizeCheckout converts a paid session into an order, exactly once
// POST /api/v1/checkout/:id/finalize
func (ctrl *CheckoutController) FinalizeCheckout(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	checkoutID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid checkout id")
		return
	}

	order, err := ctrl.checkoutService.Finalize(userID, uint(checkoutID))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCheckoutNotFound):
			apperrors.NotFound(c, apperrors.CheckoutNotFound, "Checkout session not found")
		case errors.Is(err, service.ErrCheckoutNotOwned):
			apperrors.Forbidden(c, "Checkout session belongs to another user")
		case errors.Is(err, service.ErrCheckoutAlreadyFinalized):
			apperrors.Conflict(c, apperrors.CheckoutFinalized, "Checkout session already finalized")
		case errors.Is(err, service.ErrCheckoutNotPaid):
			apperrors.BadRequest(c, apperrors.CheckoutNotPaid, "Checkout session is not paid")
		default:
			log.Error("Failed to finalize checkout", err, map[string]interface{}{
				"checkout_id": checkoutID,
			})
			apperrors.InternalError(c, "Failed to finalize checkout")
		}
		return
	}

	log.Info("Checkout finalized", map[string]interface{}{
		"checkout_id": checkoutID,
		"order_id":    order.ID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"order": order,
	})
}

// ListMyCheckouts returns the user's checkout sessions, newest first
// GET /api/v1/checkout/mine
func (ctrl *CheckoutController) ListMyCheckouts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	sessions, err := ctrl.checkoutService.ListMine(userID)
	if err != nil {
		log.Error("Failed to fetch checkout sessions", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "Failed to fetch checkout sessions")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"checkouts": sessions,
		"count":     len(sessions),
	})
}
