package service

import (
	"errors"
	"strings"

	"github.com/jmalhotra/stitchmart-backend/internal/app/model"
	"github.com/jmalhotra/stitchmart-backend/internal/app/repository"
	"github.com/jmalhotra/stitchmart-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrSubscriberExists = errors.New("email already subscribed")
	ErrInvalidEmail     = errors.New("email is required")
)

type SubscriberService interface {
	Subscribe(email string) (*model.Subscriber, error)
}

type subscriberService struct {
	subscriberRepo repository.SubscriberRepository
}

func NewSubscriberService(subscriberRepo repository.SubscriberRepository) SubscriberService {
	return &subscriberService{subscriberRepo: subscriberRepo}
}

func (s *subscriberService) Subscribe(email string) (*model.Subscriber, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return nil, ErrInvalidEmail
	}

	if _, err := s.subscriberRepo.FindByEmail(email); err == nil {
		logger.Warn("Subscription rejected: email already subscribed", map[string]interface{}{
			"email": email,
		})
		return nil, ErrSubscriberExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	subscriber := &model.Subscriber{Email: email}
	if err := s.subscriberRepo.Create(subscriber); err != nil {
		return nil, err
	}

	logger.Info("New newsletter subscriber", map[string]interface{}{
		"email": email,
	})
	return subscriber, nil
}
