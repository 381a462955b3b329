package repository

import (
	"github.com/jmalhotra/stitchmart-backend/internal/app/model"
	"github.com/jmalhotra/stitchmart-backend/pkg/logger"
	"gorm.io/gorm"
)

type CheckoutRepository interface {
	Create(session *model.CheckoutSession) error
	FindByID(id uint) (*model.CheckoutSession, error)
	FindByUserID(userID uint) ([]model.CheckoutSession, error)
	Save(session *model.CheckoutSession) error
}

type checkoutRepository struct {
	db *gorm.DB
}

func NewCheckoutRepository(db *gorm.DB) CheckoutRepository {
	return &checkoutRepository{db: db}
}

func (r *checkoutRepository) Create(session *model.CheckoutSession) error {
	logger.Debug("Creating checkout session in database", map[string]interface{}{
		"user_id":     session.UserID,
		"total_price": session.TotalPrice,
		"item_count":  len(session.Items),
	})

	if err := r.db.Create(session).Error; err != nil {
		logger.Error("Failed to create checkout session in database", err, map[string]interface{}{
			"user_id": session.UserID,
		})
		return err
	}
	return nil
}

func (r *checkoutRepository) FindByID(id uint) (*model.CheckoutSession, error) {
	var session model.CheckoutSession
	if err := r.db.Preload("Items").First(&session, id).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			logger.Error("Failed to find checkout session by ID in database", err, map[string]interface{}{
				"checkout_id": id,
			})
		}
		return nil, err
	}
	return &session, nil
}

func (r *checkoutRepository) FindByUserID(userID uint) ([]model.CheckoutSession, error) {
	var sessions []model.CheckoutSession
	err := r.db.Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&sessions).Error
	if err != nil {
		logger.Error("Failed to find checkout sessions by user in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return sessions, nil
}

func (r *checkoutRepository) Save(session *model.CheckoutSession) error {
	logger.Debug("Saving checkout session in database", map[string]interface{}{
		"checkout_id":    session.ID,
		"payment_status": session.PaymentStatus,
		"is_finalized":   session.IsFinalized,
	})

	if err := r.db.Session(&gorm.Session{FullSaveAssociations: true}).Save(session).Error; err != nil {
		logger.Error("Failed to save checkout session in database", err, map[string]interface{}{
			"checkout_id": session.ID,
		})
		return err
	}
	return nil
}
