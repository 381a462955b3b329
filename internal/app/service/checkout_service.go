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
	ErrCheckoutNotFound          = errors.New("checkout session not found")
	ErrCheckoutEmptyItems        = errors.New("checkout requires at least one item")
	ErrCheckoutInvalidItem       = errors.New("checkout item is invalid")
	ErrCheckoutInvalidAddress    = errors.New("shipping address is incomplete")
	ErrCheckoutInvalidTotal      = errors.New("checkout total price is invalid")
	ErrInvalidPaymentStatus      = errors.New("unsupported payment status")
	ErrCheckoutNotPaid           = errors.New("checkout session is not paid")
	ErrCheckoutAlreadyFinalized  = errors.New("checkout session already finalized")
	ErrCheckoutNotOwned          = errors.New("checkout session belongs to another user")
	ErrCheckoutMissingPaymentWay = errors.New("payment method is required")
)

type CheckoutItemInput struct {
	ProductID uint    `json:"product_id"`
	Name      string  `json:"name"`
	Image     string  `json:"image"`
	Price     float64 `json:"price"`
	Size      string  `json:"size"`
	Color     string  `json:"color"`
	Quantity  int     `json:"quantity"`
}

type CreateCheckoutInput struct {
	Items           []CheckoutItemInput
	ShippingAddress model.Address
	PaymentMethod   string
	TotalPrice      float64
}

type PayCheckoutInput struct {
	PaymentStatus  string
	PaymentDetails model.JSONMap
}

type CheckoutService interface {
	Create(userID uint, input CreateCheckoutInput) (*model.CheckoutSession, error)
	MarkPaid(userID, checkoutID uint, input PayCheckoutInput) (*model.CheckoutSession, error)
	Finalize(userID, checkoutID uint) (*model.Order, error)
	ListMine(userID uint) ([]model.CheckoutSession, error)
}

type checkoutService struct {
	checkoutRepo repository.CheckoutRepository
	orderRepo    repository.OrderRepository
	cartRepo     repository.CartRepository
}

func NewCheckoutService(
	checkoutRepo repository.CheckoutRepository,
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
) CheckoutService {
	return &checkoutService{
		checkoutRepo: checkoutRepo,
		orderRepo:    orderRepo,
		cartRepo:     cartRepo,
	}
}

// Create opens a checkout session from the client's cart snapshot. The items
// and total come from the request, validated but not repriced.
func (s *checkoutService) Create(userID uint, input CreateCheckoutInput) (*model.CheckoutSession, error) {
	logger.Info("Creating checkout session", map[string]interface{}{
		"user_id":        userID,
		"item_count":     len(input.Items),
		"payment_method": input.PaymentMethod,
		"total_price":    input.TotalPrice,
	})

	if len(input.Items) == 0 {
		logger.Warn("Checkout rejected: no items", map[string]interface{}{
			"user_id": userID,
		})
		return nil, ErrCheckoutEmptyItems
	}
	for _, item := range input.Items {
		if item.ProductID == 0 || item.Name == "" || item.Image == "" ||
			item.Quantity <= 0 || item.Price < 0 {
			logger.Warn("Checkout rejected: invalid item", map[string]interface{}{
				"user_id":    userID,
				"product_id": item.ProductID,
				"name":       item.Name,
				"quantity":   item.Quantity,
				"price":      item.Price,
			})
			return nil, ErrCheckoutInvalidItem
		}
	}
	if input.ShippingAddress.Address == "" || input.ShippingAddress.City == "" ||
		input.ShippingAddress.PostalCode == "" || input.ShippingAddress.Country == "" {
		return nil, ErrCheckoutInvalidAddress
	}
	if input.PaymentMethod == "" {
		return nil, ErrCheckoutMissingPaymentWay
	}
	if input.TotalPrice < 0 {
		return nil, ErrCheckoutInvalidTotal
	}

	session := &model.CheckoutSession{
		UserID:          userID,
		ShippingAddress: input.ShippingAddress,
		PaymentMethod:   input.PaymentMethod,
		TotalPrice:      input.TotalPrice,
		PaymentStatus:   model.PaymentStatusPending,
	}
	for _, item := range input.Items {
		session.Items = append(session.Items, model.CheckoutItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Image:     item.Image,
			Price:     item.Price,
			Size:      item.Size,
			Color:     item.Color,
			Quantity:  item.Quantity,
		})
	}

	if err := s.checkoutRepo.Create(session); err != nil {
		return nil, err
	}
	return session, nil
}

// MarkPaid records a successful payment on the session. Only the literal
// status "paid" is accepted; anything else is rejected without touching the
// session.
func (s *checkoutService) MarkPaid(userID, checkoutID uint, input PayCheckoutInput) (*model.CheckoutSession, error) {
	session, err := s.findOwnedSession(userID, checkoutID)
	if err != nil {
		return nil, err
	}

	if input.PaymentStatus != model.PaymentStatusPaid {
		logger.Warn("Payment update rejected: unsupported status", map[string]interface{}{
			"checkout_id":    checkoutID,
			"payment_status": input.PaymentStatus,
		})
		return nil, ErrInvalidPaymentStatus
	}

	now := time.Now()
	session.IsPaid = true
	session.PaidAt = &now
	session.PaymentStatus = model.PaymentStatusPaid
	session.PaymentDetails = input.PaymentDetails

	if err := s.checkoutRepo.Save(session); err != nil {
		return nil, err
	}

	logger.Info("Checkout session marked paid", map[string]interface{}{
		"checkout_id": session.ID,
		"user_id":     userID,
	})
	return session, nil
}

// Finalize converts a paid session into an order exactly once. The user's
// cart is deleted afterwards on a best-effort basis.
func (s *checkoutService) Finalize(userID, checkoutID uint) (*model.Order, error) {
	session, err := s.findOwnedSession(userID, checkoutID)
	if err != nil {
		return nil, err
	}

	if session.IsFinalized {
		logger.Warn("Checkout session already finalized", map[string]interface{}{
			"checkout_id": checkoutID,
		})
		return nil, ErrCheckoutAlreadyFinalized
	}
	if !session.IsPaid {
		logger.Warn("Cannot finalize unpaid checkout session", map[string]interface{}{
			"checkout_id": checkoutID,
		})
		return nil, ErrCheckoutNotPaid
	}

	order := &model.Order{
		UserID:          session.UserID,
		ShippingAddress: session.ShippingAddress,
		PaymentMethod:   session.PaymentMethod,
		TotalPrice:      session.TotalPrice,
		IsPaid:          true,
		PaidAt:          session.PaidAt,
		PaymentStatus:   model.PaymentStatusPaid,
		PaymentDetails:  session.PaymentDetails,
		Status:          model.OrderStatusProcessing,
	}
	for _, item := range session.Items {
		order.Items = append(order.Items, model.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Image:     item.Image,
			Price:     item.Price,
			Size:      item.Size,
			Color:     item.Color,
			Quantity:  item.Quantity,
		})
	}

	if err := s.orderRepo.Create(order); err != nil {
		return nil, err
	}

	now := time.Now()
	session.IsFinalized = true
	session.FinalizedAt = &now
	if err := s.checkoutRepo.Save(session); err != nil {
		return nil, err
	}

	if err := s.cartRepo.DeleteByUserID(userID); err != nil {
		logger.Warn("Failed to delete cart after finalize", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
	}

	logger.Info("Checkout session finalized", map[string]interface{}{
		"checkout_id": session.ID,
		"order_id":    order.ID,
		"user_id":     userID,
	})
	return order, nil
}

func (s *checkoutService) ListMine(userID uint) ([]model.CheckoutSession, error) {
	return s.checkoutRepo.FindByUserID(userID)
}

func (s *checkoutService) findOwnedSession(userID, checkoutID uint) (*model.CheckoutSession, error) {
	session, err := s.checkoutRepo.FindByID(checkoutID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCheckoutNotFound
		}
		return nil, err
	}
	if session.UserID != userID {
		logger.Warn("Checkout session ownership mismatch", map[string]interface{}{
			"checkout_id": checkoutID,
			"owner_id":    session.UserID,
			"user_id":     userID,
		})
		return nil, ErrCheckoutNotOwned
	}
	return session, nil
}
