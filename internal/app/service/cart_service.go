package service

import (
	"errors"

	"github.com/jmalhotra/stitchmart-backend/internal/app/model"
	"github.com/jmalhotra/stitchmart-backend/internal/app/repository"
	"github.com/jmalhotra/stitchmart-backend/pkg/logger"
	"github.com/jmalhotra/stitchmart-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrCartNotFound      = errors.New("cart not found")
	ErrCartItemNotFound  = errors.New("cart item not found")
	ErrGuestCartNotFound = errors.New("guest cart not found")
	ErrGuestCartEmpty    = errors.New("guest cart is empty")
	ErrProductNotFound   = errors.New("product not found")
)

// CartIdentity names the owner of a cart. A logged-in user takes precedence
// over a guest id when both are present.
type CartIdentity struct {
	UserID  *uint
	GuestID *string
}

type AddItemInput struct {
	ProductID uint
	Quantity  int
	Size      string
	Color     string
}

type CartService interface {
	GetCart(identity CartIdentity) (*model.Cart, error)
	AddItem(identity CartIdentity, input AddItemInput) (*model.Cart, error)
	UpdateItemQuantity(identity CartIdentity, productID uint, size, color string, quantity int) (*model.Cart, error)
	RemoveItem(identity CartIdentity, productID uint, size, color string) (*model.Cart, error)
	MergeGuestCart(userID uint, guestID string) (*model.Cart, error)
}

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// findCart resolves the cart for an identity, preferring the user over the
// guest id. Returns ErrCartNotFound when neither side has a cart.
func (s *cartService) findCart(identity CartIdentity) (*model.Cart, error) {
	if identity.UserID != nil {
		cart, err := s.cartRepo.FindByUserID(*identity.UserID)
		if err == nil {
			return cart, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}
	if identity.GuestID != nil && *identity.GuestID != "" {
		cart, err := s.cartRepo.FindByGuestID(*identity.GuestID)
		if err == nil {
			return cart, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}
	return nil, ErrCartNotFound
}

func (s *cartService) GetCart(identity CartIdentity) (*model.Cart, error) {
	cart, err := s.findCart(identity)
	if err != nil {
		return nil, err
	}
	return cart, nil
}

// AddItem puts a product line into the cart. If a line with the same
// product, size and color already exists its quantity is overwritten with
// the requested quantity, not incremented.
func (s *cartService) AddItem(identity CartIdentity, input AddItemInput) (*model.Cart, error) {
	if input.Quantity <= 0 {
		input.Quantity = 1
	}

	logger.Info("Adding item to cart", map[string]interface{}{
		"user_id":    identity.UserID,
		"guest_id":   identity.GuestID,
		"product_id": input.ProductID,
		"quantity":   input.Quantity,
		"size":       input.Size,
		"color":      input.Color,
	})

	product, err := s.productRepo.FindByID(input.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Product not found for cart add", map[string]interface{}{
				"product_id": input.ProductID,
			})
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	cart, err := s.findCart(identity)
	if errors.Is(err, ErrCartNotFound) {
		cart, err = s.createCart(identity)
		if err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	item := model.CartItem{
		CartID:    cart.ID,
		ProductID: product.ID,
		Name:      product.Name,
		Image:     product.FirstImageURL(),
		Price:     product.EffectivePrice(),
		Size:      input.Size,
		Color:     input.Color,
		Quantity:  input.Quantity,
	}

	if idx := cart.FindItem(input.ProductID, input.Size, input.Color); idx >= 0 {
		cart.Items[idx].Quantity = input.Quantity
	} else {
		cart.Items = append(cart.Items, item)
	}
	cart.RecalculateTotal()

	if err := s.cartRepo.ReplaceItems(cart, cart.Items); err != nil {
		return nil, err
	}
	return cart, nil
}

// UpdateItemQuantity sets a line's quantity. A quantity of zero or less
// removes the line.
func (s *cartService) UpdateItemQuantity(identity CartIdentity, productID uint, size, color string, quantity int) (*model.Cart, error) {
	cart, err := s.findCart(identity)
	if err != nil {
		return nil, err
	}

	idx := cart.FindItem(productID, size, color)
	if idx < 0 {
		logger.Warn("Cart item not found for update", map[string]interface{}{
			"cart_id":    cart.ID,
			"product_id": productID,
			"size":       size,
			"color":      color,
		})
		return nil, ErrCartItemNotFound
	}

	if quantity > 0 {
		cart.Items[idx].Quantity = quantity
	} else {
		cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)
	}
	cart.RecalculateTotal()

	if err := s.cartRepo.ReplaceItems(cart, cart.Items); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *cartService) RemoveItem(identity CartIdentity, productID uint, size, color string) (*model.Cart, error) {
	cart, err := s.findCart(identity)
	if err != nil {
		return nil, err
	}

	idx := cart.FindItem(productID, size, color)
	if idx < 0 {
		return nil, ErrCartItemNotFound
	}

	cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)
	cart.RecalculateTotal()

	if err := s.cartRepo.ReplaceItems(cart, cart.Items); err != nil {
		return nil, err
	}
	return cart, nil
}

// MergeGuestCart folds a guest cart into the user's cart on login. Unlike
// AddItem, quantities of matching lines are added together. The guest cart
// is deleted afterwards; a failed delete is logged but does not fail the
// merge.
func (s *cartService) MergeGuestCart(userID uint, guestID string) (*model.Cart, error) {
	logger.Info("Merging guest cart", map[string]interface{}{
		"user_id":  userID,
		"guest_id": guestID,
	})

	guestCart, err := s.cartRepo.FindByGuestID(guestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Nothing to merge. The user keeps whatever cart they already have.
			userCart, userErr := s.cartRepo.FindByUserID(userID)
			if userErr == nil {
				return userCart, nil
			}
			if errors.Is(userErr, gorm.ErrRecordNotFound) {
				return nil, ErrGuestCartNotFound
			}
			return nil, userErr
		}
		return nil, err
	}

	if len(guestCart.Items) == 0 {
		logger.Warn("Guest cart is empty, nothing to merge", map[string]interface{}{
			"guest_id": guestID,
		})
		return nil, ErrGuestCartEmpty
	}

	userCart, err := s.cartRepo.FindByUserID(userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		// No user cart yet, take over the guest cart instead of copying it.
		guestCart.UserID = &userID
		guestCart.GuestID = nil
		if err := s.cartRepo.Save(guestCart); err != nil {
			return nil, err
		}
		return guestCart, nil
	}

	for _, guestItem := range guestCart.Items {
		if idx := userCart.FindItem(guestItem.ProductID, guestItem.Size, guestItem.Color); idx >= 0 {
			userCart.Items[idx].Quantity += guestItem.Quantity
		} else {
			item := guestItem
			item.ID = 0
			item.CartID = userCart.ID
			userCart.Items = append(userCart.Items, item)
		}
	}
	userCart.RecalculateTotal()

	if err := s.cartRepo.ReplaceItems(userCart, userCart.Items); err != nil {
		return nil, err
	}

	if err := s.cartRepo.Delete(guestCart.ID); err != nil {
		logger.Warn("Failed to delete guest cart after merge", map[string]interface{}{
			"guest_id": guestID,
			"error":    err.Error(),
		})
	}

	return userCart, nil
}

func (s *cartService) createCart(identity CartIdentity) (*model.Cart, error) {
	cart := &model.Cart{
		UserID: identity.UserID,
	}
	if identity.UserID == nil {
		if identity.GuestID != nil && *identity.GuestID != "" {
			cart.GuestID = identity.GuestID
		} else {
			guestID := util.GenerateGuestID()
			cart.GuestID = &guestID
		}
	}

	logger.Debug("Creating new cart", map[string]interface{}{
		"user_id":  cart.UserID,
		"guest_id": cart.GuestID,
	})

	if err := s.cartRepo.Create(cart); err != nil {
		return nil, err
	}
	return cart, nil
}
