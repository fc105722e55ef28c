package orders

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// Order is an immutable record of a checked-out cart.
type Order struct {
	ID              string          `json:"id"`               // UUID
	UserID          int             `json:"user_id"`          // owner of the drained cart
	Total           decimal.Decimal `json:"total"`            // cart total at checkout
	ShippingAddress string          `json:"shipping_address"` // free text entered at checkout
	Status          Status          `json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       *time.Time      `json:"updated_at,omitempty"`
	Items           []OrderItem     `json:"items"`
}

// OrderItem copies the product fields a receipt needs so it no longer depends
// on the catalog.
type OrderItem struct {
	ID           string          `json:"id"`
	ProductID    int             `json:"product_id"`
	ProductTitle string          `json:"product_title"`
	ProductPrice decimal.Decimal `json:"product_price"`
	Quantity     int             `json:"quantity"`
	Artist       string          `json:"artist"`
	Medium       string          `json:"medium"`
	Size         string          `json:"size"`
}

func (i OrderItem) Total() decimal.Decimal {
	return i.ProductPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type NewOrder struct {
	ShippingAddress string `json:"shipping_address" validate:"required"`
}
