package repository

import (
	"github.com/jmalhotra/stitchmart-backend/internal/app/model"
	"github.com/jmalhotra/stitchmart-backend/pkg/logger"
	"gorm.io/gorm"
)

type CartRepository interface {
	Create(cart *model.Cart) error
	FindByUserID(userID uint) (*model.Cart, error)
	FindByGuestID(guestID string) (*model.Cart, error)
	Save(cart *model.Cart) error
	ReplaceItems(cart *model.Cart, items []model.CartItem) error
	Delete(cartID uint) error
	DeleteByUserID(userID uint) error
}

type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) Create(cart *model.Cart) error {
	logger.Debug("Creating cart in database", map[string]interface{}{
		"user_id":  cart.UserID,
		"guest_id": cart.GuestID,
		"items":    len(cart.Items),
	})

	if err := r.db.Create(cart).Error; err != nil {
		logger.Error("Failed to create cart in database", err, map[string]interface{}{
			"user_id":  cart.UserID,
			"guest_id": cart.GuestID,
		})
		return err
	}

	logger.Debug("Cart created in database", map[string]interface{}{
		"cart_id": cart.ID,
	})
	return nil
}

func (r *cartRepository) FindByUserID(userID uint) (*model.Cart, error) {
	var cart model.Cart
	err := r.db.Where("user_id = ?", userID).
		Preload("Items").
		First(&cart).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			logger.Error("Failed to find cart by user ID in database", err, map[string]interface{}{
				"user_id": userID,
			})
		}
		return nil, err
	}
	return &cart, nil
}

func (r *cartRepository) FindByGuestID(guestID string) (*model.Cart, error) {
	var cart model.Cart
	err := r.db.Where("guest_id = ?", guestID).
		Preload("Items").
		First(&cart).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			logger.Error("Failed to find cart by guest ID in database", err, map[string]interface{}{
				"guest_id": guestID,
			})
		}
		return nil, err
	}
	return &cart, nil
}

// Save persists the cart header and its current lines. GORM's Save with
// FullSaveAssociations updates line rows in place; removed lines are deleted
// via ReplaceItems instead.
func (r *cartRepository) Save(cart *model.Cart) error {
	logger.Debug("Saving cart in database", map[string]interface{}{
		"cart_id":     cart.ID,
		"items":       len(cart.Items),
		"total_price": cart.TotalPrice,
	})

	if err := r.db.Session(&gorm.Session{FullSaveAssociations: true}).Save(cart).Error; err != nil {
		logger.Error("Failed to save cart in database", err, map[string]interface{}{
			"cart_id": cart.ID,
		})
		return err
	}
	return nil
}

// ReplaceItems swaps the cart's line set for items and persists header
// fields. Used whenever lines were removed so no stale rows survive.
func (r *cartRepository) ReplaceItems(cart *model.Cart, items []model.CartItem) error {
	logger.Debug("Replacing cart items in database", map[string]interface{}{
		"cart_id": cart.ID,
		"items":   len(items),
	})

	if err := r.db.Where("cart_id = ?", cart.ID).Delete(&model.CartItem{}).Error; err != nil {
		logger.Error("Failed to clear cart items in database", err, map[string]interface{}{
			"cart_id": cart.ID,
		})
		return err
	}

	cart.Items = items
	for i := range cart.Items {
		cart.Items[i].ID = 0
		cart.Items[i].CartID = cart.ID
	}

	if err := r.db.Session(&gorm.Session{FullSaveAssociations: true}).Save(cart).Error; err != nil {
		logger.Error("Failed to save cart after item replacement", err, map[string]interface{}{
			"cart_id": cart.ID,
		})
		return err
	}
	return nil
}

func (r *cartRepository) Delete(cartID uint) error {
	logger.Debug("Deleting cart from database", map[string]interface{}{
		"cart_id": cartID,
	})

	if err := r.db.Where("cart_id = ?", cartID).Delete(&model.CartItem{}).Error; err != nil {
		logger.Error("Failed to delete cart items from database", err, map[string]interface{}{
			"cart_id": cartID,
		})
		return err
	}
	if err := r.db.Delete(&model.Cart{}, cartID).Error; err != nil {
		logger.Error("Failed to delete cart from database", err, map[string]interface{}{
			"cart_id": cartID,
		})
		return err
	}
	return nil
}

func (r *cartRepository) DeleteByUserID(userID uint) error {
	logger.Debug("Deleting cart by user ID from database", map[string]interface{}{
		"user_id": userID,
	})

	var cart model.Cart
	err := r.db.Where("user_id = ?", userID).First(&cart).Error
	if err != nil {
		return err
	}
	return r.Delete(cart.ID)
}
