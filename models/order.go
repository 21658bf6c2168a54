package models

import "time"

const (
	OrderStatusConfirmed = "confirmed"
	OrderStatusCancelled = "cancelled"
)

// OrderItem is a catalog item resolved from a message together with its quantity.
type OrderItem struct {
	MenuItemID int     `bson:"menuItemId" json:"id"`
	Name       string  `bson:"name" json:"name"`
	Price      float64 `bson:"price" json:"price"`
	Quantity   int     `bson:"quantity" json:"quantity"`
	Confidence float64 `bson:"-" json:"confidence,omitempty"`
}

// Order is a persisted food order.
type Order struct {
	ID        string       `bson:"id" json:"id"`
	Customer  CustomerInfo `bson:"customer" json:"customer"`
	Items     []OrderItem  `bson:"items" json:"items"`
	Total     float64      `bson:"total" json:"total"`
	Status    string       `bson:"status" json:"status"`
	CreatedAt time.Time    `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time    `bson:"updatedAt" json:"updatedAt"`
}
