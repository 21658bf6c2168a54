// File: greengarden/handlers/bundle.go
package handlers

import "github.com/gin-gonic/gin"

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Chat endpoints
	ChatHandler       gin.HandlerFunc
	EndSessionHandler gin.HandlerFunc
	ChatSocketHandler gin.HandlerFunc

	// Catalog and availability
	MenuHandler         gin.HandlerFunc
	AvailabilityHandler gin.HandlerFunc

	// Staff endpoints
	AdminLoginHandler   gin.HandlerFunc
	ListOrdersHandler   gin.HandlerFunc
	ListBookingsHandler gin.HandlerFunc
}
