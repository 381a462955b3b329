package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmalhotra/stitchmart-backend/internal/app/service"
	apperrors "github.com/jmalhotra/stitchmart-backend/internal/errors"
	"github.com/jmalhotra/stitchmart-backend/internal/middleware"
	"github.com/jmalhotra/stitchmart-backend/pkg/util"
)

type CartController struct {
	cartService service.CartService
}

func NewCartController(cartService service.CartService) *CartController {
	return &CartController{
		cartService: cartService,
	}
}

type AddToCartRequest struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	GuestID   string `json:"guest_id"`
}

type UpdateCartRequest struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Quantity  *int   `json:"quantity" binding:"required"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	GuestID   string `json:"guest_id"`
}

type RemoveCartItemRequest struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	GuestID   string `json:"guest_id"`
}

type MergeCartRequest struct {
	GuestID string `json:"guest_id" binding:"required"`
}

// resolveIdentity builds the cart identity from the (optional) authenticated
// user and the guest id supplied in the request. A logged-in user always wins.
func resolveIdentity(c *gin.Context, guestID string) service.CartIdentity {
	identity := service.CartIdentity{}
	if userID, exists := middleware.GetUserID(c); exists {
		identity.UserID = &userID
		return identity
	}
	if guestID != "" {
		identity.GuestID = &guestID
	}
	return identity
}

// GetCart returns the cart for the current user or guest
// GET /api/v1/cart
func (ctrl *CartController) GetCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	identity := resolveIdentity(c, c.Query("guest_id"))
	if identity.UserID == nil && identity.GuestID == nil {
		apperrors.NotFound(c, apperrors.CartNotFound, "Cart not found")
		return
	}

	cart, err := ctrl.cartService.GetCart(identity)
	if err != nil {
		if errors.Is(err, service.ErrCartNotFound) {
			apperrors.NotFound(c, apperrors.CartNotFound, "Cart not found")
			return
		}
		log.Error("Failed to fetch cart", err)
		apperrors.InternalError(c, "Failed to fetch cart")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cart": cart,
	})
}

// AddToCart puts a product line into the cart, creating the cart (and a
// guest id) when needed
// POST /api/v1/cart
func (ctrl *CartController) AddToCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid add to cart request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	identity := resolveIdentity(c, req.GuestID)

	cart, err := ctrl.cartService.AddItem(identity, service.AddItemInput{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		Size:      req.Size,
		Color:     req.Color,
	})
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			log.Warn("Product not found for cart add", map[string]interface{}{
				"product_id": req.ProductID,
			})
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to add item to cart", err, map[string]interface{}{
			"product_id": req.ProductID,
		})
		apperrors.InternalError(c, "Failed to add item to cart")
		return
	}

	log.Info("Item added to cart", map[string]interface{}{
		"cart_id":    cart.ID,
		"product_id": req.ProductID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"cart": cart,
	})
}

// UpdateCartItem sets a line's quantity; zero or less removes the line
// PUT /api/v1/cart
func (ctrl *CartController) UpdateCartItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req UpdateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid cart update request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	identity := resolveIdentity(c, req.GuestID)

	cart, err := ctrl.cartService.UpdateItemQuantity(identity, req.ProductID, req.Size, req.Color, *req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCartNotFound):
			apperrors.NotFound(c, apperrors.CartNotFound, "Cart not found")
		case errors.Is(err, service.ErrCartItemNotFound):
			apperrors.NotFound(c, apperrors.CartItemNotFound, "Item not found in cart")
		default:
			log.Error("Failed to update cart item", err, map[string]interface{}{
				"product_id": req.ProductID,
			})
			apperrors.InternalError(c, "Failed to update cart item")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cart": cart,
	})
}

// RemoveCartItem deletes a line from the cart
// DELETE /api/v1/cart
func (ctrl *CartController) RemoveCartItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req RemoveCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid cart remove request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	identity := resolveIdentity(c, req.GuestID)

	cart, err := ctrl.cartService.RemoveItem(identity, req.ProductID, req.Size, req.Color)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCartNotFound):
			apperrors.NotFound(c, apperrors.CartNotFound, "Cart not found")
		case errors.Is(err, service.ErrCartItemNotFound):
			apperrors.NotFound(c, apperrors.CartItemNotFound, "Item not found in cart")
		default:
			log.Error("Failed to remove cart item", err, map[string]interface{}{
				"product_id": req.ProductID,
			})
			apperrors.InternalError(c, "Failed to remove cart item")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cart": cart,
	})
}

// MergeCart folds the guest cart into the logged-in user's cart
// POST /api/v1/cart/merge
func (ctrl *CartController) MergeCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	var req MergeCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid cart merge request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Guest id is required")
		return
	}

	if !util.IsGuestID(req.GuestID) {
		log.Warn("Malformed guest id in merge request", map[string]interface{}{
			"user_id":  userID,
			"guest_id": req.GuestID,
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Malformed guest id")
		return
	}

	cart, err := ctrl.cartService.MergeGuestCart(userID, req.GuestID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGuestCartNotFound):
			apperrors.NotFound(c, apperrors.CartGuestNotFound, "Guest cart not found")
		case errors.Is(err, service.ErrGuestCartEmpty):
			apperrors.BadRequest(c, apperrors.CartGuestEmpty, "Guest cart is empty")
		default:
			log.Error("Failed to merge guest cart", err, map[string]interface{}{
				"user_id":  userID,
				"guest_id": req.GuestID,
			})
			apperrors.InternalError(c, "Failed to merge guest cart")
		}
		return
	}

	log.Info("Guest cart merged", map[string]interface{}{
		"user_id":  userID,
		"guest_id": req.GuestID,
		"cart_id":  cart.ID,
	})

	c.JSON(http.StatusOK, gin.H{
		"cart": cart,
	})
}
