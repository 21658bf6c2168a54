package handlers

import (
	"context"
	"net/http"
	"time"

	"greengarden/models"
	"greengarden/services/intelligence"
	"greengarden/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AvailabilityService answers table availability queries.
type AvailabilityService interface {
	GetAvailableDates(ctx context.Context, daysAhead int) ([]models.AvailableDate, error)
	GetAvailableTimes(ctx context.Context, date string) ([]models.AvailableTime, error)
	LastBookableDate(ctx context.Context) (string, error)
}

type AvailabilityHandler struct {
	Service   AvailabilityService
	DaysAhead int
	Now       func() time.Time
}

func NewAvailabilityHandler(svc AvailabilityService, daysAhead int) *AvailabilityHandler {
	return &AvailabilityHandler{Service: svc, DaysAhead: daysAhead, Now: time.Now}
}

// GetAvailability handles GET /api/availability. Without a date it lists bookable
// dates and the furthest bookable date; with one it lists the free times on that date.
// Relative dates are allowed.
func (h *AvailabilityHandler) GetAvailability(c *gin.Context) {
	logger := getLogger(c)
	raw := c.Query("date")

	if raw == "" {
		dates, err := h.Service.GetAvailableDates(c.Request.Context(), h.DaysAhead)
		if err != nil {
			logger.Error("Failed to load available dates", zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "Failed to load availability", err.Error())
			return
		}
		if dates == nil {
			dates = []models.AvailableDate{}
		}
		until, err := h.Service.LastBookableDate(c.Request.Context())
		if err != nil {
			logger.Warn("Failed to load booking horizon", zap.Error(err))
			until = ""
		}
		c.JSON(http.StatusOK, gin.H{"dates": dates, "bookable_until": until})
		return
	}

	date := intelligence.ResolveDate(raw, h.Now())
	if _, err := time.Parse("2006-01-02", date); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Unrecognized date", raw)
		return
	}

	times, err := h.Service.GetAvailableTimes(c.Request.Context(), date)
	if err != nil {
		logger.Error("Failed to load available times", zap.String("date", date), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load availability", err.Error())
		return
	}
	if times == nil {
		times = []models.AvailableTime{}
	}
	c.JSON(http.StatusOK, gin.H{"date": date, "times": times})
}
