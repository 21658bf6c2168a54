// File: greengarden/handlers/admin.go
package handlers

import (
	"context"
	"net/http"
	"time"

	"greengarden/models"
	"greengarden/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type OrderLister interface {
	ListOrders(ctx context.Context) ([]models.Order, error)
}

type BookingLister interface {
	ListBookings(ctx context.Context) ([]models.TableBooking, error)
}

// AdminHandler encapsulates staff-only operations.
type AdminHandler struct {
	Orders       OrderLister
	Bookings     BookingLister
	PasswordHash string
	TokenTTL     time.Duration
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(orders OrderLister, bookings BookingLister, passwordHash string, tokenTTL time.Duration) *AdminHandler {
	if tokenTTL <= 0 {
		tokenTTL = 12 * time.Hour
	}
	return &AdminHandler{
		Orders:       orders,
		Bookings:     bookings,
		PasswordHash: passwordHash,
		TokenTTL:     tokenTTL,
	}
}

type adminLoginRequest struct {
	Password string `json:"password" binding:"required"`
}

// LoginHandler exchanges the staff password for a bearer token.
func (ah *AdminHandler) LoginHandler(c *gin.Context) {
	if ah.PasswordHash == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Admin login is not configured"})
		return
	}

	var req adminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password is required"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(ah.PasswordHash), []byte(req.Password)); err != nil {
		zap.L().Warn("Failed admin login", zap.String("ip", c.ClientIP()))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := utils.GenerateToken(utils.AdminSubject, utils.RoleAdmin, ah.TokenTTL)
	if err != nil {
		zap.L().Error("Failed to issue admin token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "expires_in": int(ah.TokenTTL.Seconds())})
}

// GetAllOrdersHandler returns every order, newest first.
func (ah *AdminHandler) GetAllOrdersHandler(c *gin.Context) {
	orders, err := ah.Orders.ListOrders(c.Request.Context())
	if err != nil {
		zap.L().Error("Failed to fetch all orders", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// GetAllBookingsHandler returns every table booking.
func (ah *AdminHandler) GetAllBookingsHandler(c *gin.Context) {
	bookings, err := ah.Bookings.ListBookings(c.Request.Context())
	if err != nil {
		zap.L().Error("Failed to fetch all bookings", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bookings"})
		return
	}
	if bookings == nil {
		bookings = []models.TableBooking{}
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}
