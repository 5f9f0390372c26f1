package adapter

import (
	"context"

	cartapp "github.com/dwikikusuma/rajah-storefront/internal/cart/app"
	"github.com/dwikikusuma/rajah-storefront/internal/checkout/domain"
)

type CartServiceReader struct {
	svc *cartapp.Service
}

func NewCartServiceReader(svc *cartapp.Service) *CartServiceReader {
	return &CartServiceReader{svc: svc}
}

func (r *CartServiceReader) GetCart(ctx context.Context, userID string) ([]domain.Line, error) {
	cart, err := r.svc.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	lines := make([]domain.Line, 0, len(cart.Lines))
	for _, l := range cart.Lines {
		lines = append(lines, domain.Line{
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			Weight:      l.SelectedWeight,
			Quantity:    l.Quantity,
			ItemTotal:   l.ItemTotal,
		})
	}
	return lines, nil
}
