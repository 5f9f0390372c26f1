package app

import (
	"context"

	"github.com/dwikikusuma/rajah-storefront/internal/order/domain"
)

type OrderRepo interface {
	Append(ctx context.Context, order domain.Order) error
	// ListByUser returns the user's orders oldest first.
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
}

// Carts hands fn the user's cart lines while the cart is locked and empties the cart when
// fn succeeds.
type Carts interface {
	Checkout(ctx context.Context, userID string, fn func(items []domain.Item) error) error
}

type Pricing struct {
	Subtotal    float64
	DeliveryFee float64
	Total       float64
}

// Quoter prices a set of order items for a delivery type and postcode.
type Quoter interface {
	Quote(ctx context.Context, items []domain.Item, deliveryType, postcode string) (Pricing, error)
}

type Publisher interface {
	Publish(ctx context.Context, event domain.Placed) error
}
