package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jmalhotra/stitchmart-backend/internal/app/service"
	apperrors "github.com/jmalhotra/stitchmart-backend/internal/errors"
	"github.com/jmalhotra/stitchmart-backend/internal/middleware"
)

type OrderAdminController struct {
	orderService service.OrderService
}

func NewOrderAdminController(orderService service.OrderService) *OrderAdminController {
	return &OrderAdminController{
		orderService: orderService,
	}
}

type UpdateOrderRequest struct {
	Status      *string `json:"status"`
	IsDelivered *bool   `json:"is_delivered"`
}

// ListOrders returns every order with its owner preloaded
// GET /api/v1/admin/orders
func (ctrl *OrderAdminController) ListOrders(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	orders, err := ctrl.orderService.ListAll()
	if err != nil {
		log.Error("Failed to fetch all orders", err)
		apperrors.InternalError(c, "Failed to fetch orders")
		return
	}

	var total float64
	for _, order := range orders {
		total += order.TotalPrice
	}

	c.JSON(http.StatusOK, gin.H{
		"orders":      orders,
		"count":       len(orders),
		"total_sales": total,
	})
}

// UpdateOrder applies a partial update to an order's status
// PUT /api/v1/admin/orders/:id
func (ctrl *OrderAdminController) UpdateOrder(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid order id")
		return
	}

	var req UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid order update request", map[string]interface{}{
			"order_id": orderID,
			"error":    err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	order, err := ctrl.orderService.UpdateOrder(uint(orderID), service.UpdateOrderInput{
		Status:      req.Status,
		IsDelivered: req.IsDelivered,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			apperrors.NotFound(c, apperrors.OrderNotFound, "Order not found")
		case errors.Is(err, service.ErrInvalidOrderStatus):
			apperrors.BadRequest(c, apperrors.OrderInvalidStatus, "Invalid order status")
		default:
			log.Error("Failed to update order", err, map[string]interface{}{
				"order_id": orderID,
			})
			apperrors.InternalError(c, "Failed to update order")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order": order,
	})
}

// DeleteOrder removes an order permanently
// DELETE /api/v1/admin/orders/:id
func (ctrl *OrderAdminController) DeleteOrder(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid order id")
		return
	}

	if err := ctrl.orderService.DeleteOrder(uint(orderID)); err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			apperrors.NotFound(c, apperrors.OrderNotFound, "Order not found")
			return
		}
		log.Error("Failed to delete order", err, map[string]interface{}{
			"order_id": orderID,
		})
		apperrors.InternalError(c, "Failed to delete order")
		return
	}

	log.Info("Order deleted", map[string]interface{}{
		"order_id": orderID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Order deleted successfully",
	})
}
