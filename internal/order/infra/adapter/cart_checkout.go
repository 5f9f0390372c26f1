package adapter

import (
	"context"

	cartapp "github.com/dwikikusuma/rajah-storefront/internal/cart/app"
	cart "github.com/dwikikusuma/rajah-storefront/internal/cart/domain"
	"github.com/dwikikusuma/rajah-storefront/internal/order/domain"
)

// CartServiceCheckout snapshots carts for order placement through the cart service.
type CartServiceCheckout struct {
	svc *cartapp.Service
}

func NewCartServiceCheckout(svc *cartapp.Service) *CartServiceCheckout {
	return &CartServiceCheckout{svc: svc}
}

func (r *CartServiceCheckout) Checkout(ctx context.Context, userID string, fn func([]domain.Item) error) error {
	return r.svc.Checkout(ctx, userID, func(c cart.Cart) error {
		return fn(toItems(c))
	})
}

func toItems(c cart.Cart) []domain.Item {
	items := make([]domain.Item, 0, len(c.Lines))
	for _, l := range c.Lines {
		items = append(items, domain.Item{
			LineID:           l.ID,
			ProductID:        l.ProductID,
			ProductName:      l.ProductName,
			PricePerKg:       l.PricePerKg,
			SelectedWeight:   l.SelectedWeight,
			SelectedCut:      l.SelectedCut,
			SelectedMarinade: l.SelectedMarinade,
			Quantity:         l.Quantity,
			ItemTotal:        l.ItemTotal,
		})
	}
	return items
}
