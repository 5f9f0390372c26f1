package domain

import (
	"fmt"
	"time"
)

const (
	StatusPending        = "pending"
	PaymentStatusPending = "pending"
)

type Customer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type Address struct {
	Line1    string `json:"line1"`
	Line2    string `json:"line2,omitempty"`
	City     string `json:"city"`
	Postcode string `json:"postcode"`
}

// Item is a cart line as it was when the order was placed.
type Item struct {
	LineID           string  `json:"line_id"`
	ProductID        string  `json:"product_id"`
	ProductName      string  `json:"product_name"`
	PricePerKg       float64 `json:"price_per_kg"`
	SelectedWeight   string  `json:"selected_weight"`
	SelectedCut      *string `json:"selected_cut"`
	SelectedMarinade string  `json:"selected_marinade"`
	Quantity         int     `json:"quantity"`
	ItemTotal        float64 `json:"item_total"`
}

type Order struct {
	ID                  string    `json:"id"`
	Number              string    `json:"order_number"`
	UserID              string    `json:"user_id"`
	Status              string    `json:"status"`
	PaymentStatus       string    `json:"payment_status"`
	DeliveryType        string    `json:"delivery_type"`
	Customer            Customer  `json:"customer"`
	DeliveryAddress     *Address  `json:"delivery_address,omitempty"`
	SpecialInstructions string    `json:"special_instructions,omitempty"`
	Items               []Item    `json:"cart_items"`
	Subtotal            float64   `json:"subtotal"`
	DeliveryFee         float64   `json:"delivery_fee"`
	Total               float64   `json:"total"`
	CreatedAt           time.Time `json:"created_at"`
}

type PlaceOrderRequest struct {
	UserID              string
	DeliveryType        string
	Customer            Customer
	DeliveryAddress     *Address
	SpecialInstructions string
}

// Number formats an order number from the placement time.
func Number(t time.Time) string {
	return fmt.Sprintf("RJ%d", t.UnixMilli())
}

// Placed is the event published after an order is stored.
type Placed struct {
	OrderID   string    `json:"order_id"`
	Number    string    `json:"order_number"`
	UserID    string    `json:"user_id"`
	ItemCount int       `json:"item_count"`
	Total     float64   `json:"total"`
	CreatedAt time.Time `json:"created_at"`
}

func (o Order) Placed() Placed {
	n := 0
	for _, it := range o.Items {
		n += it.Quantity
	}
	return Placed{
		OrderID:   o.ID,
		Number:    o.Number,
		UserID:    o.UserID,
		ItemCount: n,
		Total:     o.Total,
		CreatedAt: o.CreatedAt,
	}
}
