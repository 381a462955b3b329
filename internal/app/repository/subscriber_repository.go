package repository

import (
	"github.com/jmalhotra/stitchmart-backend/internal/app/model"
	"github.com/jmalhotra/stitchmart-backend/pkg/logger"
	"gorm.io/gorm"
)

type SubscriberRepository interface {
	Create(subscriber *model.Subscriber) error
	FindByEmail(email string) (*model.Subscriber, error)
}

type subscriberRepository struct {
	db *gorm.DB
}

func NewSubscriberRepository(db *gorm.DB) SubscriberRepository {
	return &subscriberRepository{db: db}
}

func (r *subscriberRepository) Create(subscriber *model.Subscriber) error {
	if err := r.db.Create(subscriber).Error; err != nil {
		logger.Error("Failed to create subscriber in database", err, map[string]interface{}{
			"email": subscriber.Email,
		})
		return err
	}
	return nil
}

func (r *subscriberRepository) FindByEmail(email string) (*model.Subscriber, error) {
	var subscriber model.Subscriber
	if err := r.db.Where("email = ?", email).First(&subscriber).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			logger.Error("Failed to find subscriber by email in database", err, map[string]interface{}{
				"email": email,
			})
		}
		return nil, err
	}
	return &subscriber, nil
}
