package service

import (
	"errors"
	"time"

	"github.com/jmalhotra/stitchmart-backend/internal/app/model"
	"github.com/jmalhotra/stitchmart-backend/internal/app/repository"
	"github.com/jmalhotra/stitchmart-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrOrderNotOwned      = errors.New("order belongs to another user")
	ErrInvalidOrderStatus = errors.New("invalid order status")
)

type UpdateOrderInput struct {
	Status      *string
	IsDelivered *bool
}

type OrderService interface {
	GetUserOrders(userID uint) ([]model.Order, error)
	GetOrderByID(userID, orderID uint) (*model.Order, error)
	ListAll() ([]model.Order, error)
	UpdateOrder(orderID uint, input UpdateOrderInput) (*model.Order, error)
	DeleteOrder(orderID uint) error
}

type orderService struct {
	orderRepo repository.OrderRepository
}

func NewOrderService(orderRepo repository.OrderRepository) OrderService {
	return &orderService{orderRepo: orderRepo}
}

func (s *orderService) GetUserOrders(userID uint) ([]model.Order, error) {
	return s.orderRepo.FindByUserID(userID)
}

func (s *orderService) GetOrderByID(userID, orderID uint) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if order.UserID != userID {
		logger.Warn("Order ownership mismatch", map[string]interface{}{
			"order_id": orderID,
			"owner_id": order.UserID,
			"user_id":  userID,
		})
		return nil, ErrOrderNotOwned
	}
	return order, nil
}

func (s *orderService) ListAll() ([]model.Order, error) {
	return s.orderRepo.FindAllWithUsers()
}

// UpdateOrder applies an admin's partial update. Only fields present in the
// input change; moving to Delivered also stamps the delivery flags.
func (s *orderService) UpdateOrder(orderID uint, input UpdateOrderInput) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	if input.Status != nil {
		if !model.ValidOrderStatus(*input.Status) {
			logger.Warn("Rejected invalid order status", map[string]interface{}{
				"order_id": orderID,
				"status":   *input.Status,
			})
			return nil, ErrInvalidOrderStatus
		}
		order.Status = model.OrderStatus(*input.Status)
		if order.Status == model.OrderStatusDelivered {
			now := time.Now()
			order.IsDelivered = true
			order.DeliveredAt = &now
		}
	}
	if input.IsDelivered != nil {
		order.IsDelivered = *input.IsDelivered
		if *input.IsDelivered && order.DeliveredAt == nil {
			now := time.Now()
			order.DeliveredAt = &now
		}
	}

	if err := s.orderRepo.Save(order); err != nil {
		return nil, err
	}

	logger.Info("Order updated", map[string]interface{}{
		"order_id":     order.ID,
		"status":       order.Status,
		"is_delivered": order.IsDelivered,
	})
	return order, nil
}

func (s *orderService) DeleteOrder(orderID uint) error {
	if _, err := s.orderRepo.FindByID(orderID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		return err
	}
	return s.orderRepo.Delete(orderID)
}
