package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmalhotra/stitchmart-backend/internal/app/service"
	apperrors "github.com/jmalhotra/stitchmart-backend/internal/errors"
	"github.com/jmalhotra/stitchmart-backend/internal/middleware"
)

type SubscriberController struct {
	subscriberService service.SubscriberService
}

func NewSubscriberController(subscriberService service.SubscriberService) *SubscriberController {
	return &SubscriberController{
		subscriberService: subscriberService,
	}
}

type SubscribeRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// Subscribe adds an email to the newsletter list
// POST /api/v1/subscribe
func (ctrl *SubscriberController) Subscribe(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid subscribe request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.SubscribeEmailRequired, "A valid email is required")
		return
	}

	subscriber, err := ctrl.subscriberService.Subscribe(req.Email)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSubscriberExists):
			apperrors.Conflict(c, apperrors.SubscribeDuplicate, "Email is already subscribed")
		case errors.Is(err, service.ErrInvalidEmail):
			apperrors.BadRequest(c, apperrors.SubscribeEmailRequired, "A valid email is required")
		default:
			log.Error("Failed to subscribe email", err, map[string]interface{}{
				"email": req.Email,
			})
			apperrors.InternalError(c, "Failed to subscribe")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Subscribed successfully",
		"subscriber": subscriber,
	})
}
