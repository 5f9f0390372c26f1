package adapter

import (
	"context"

	checkoutapp "github.com/dwikikusuma/rajah-storefront/internal/checkout/app"
	checkout "github.com/dwikikusuma/rajah-storefront/internal/checkout/domain"
	orderapp "github.com/dwikikusuma/rajah-storefront/internal/order/app"
	"github.com/dwikikusuma/rajah-storefront/internal/order/domain"
)

// CheckoutQuoter prices order items with the checkout delivery rules.
type CheckoutQuoter struct {
	svc *checkoutapp.Service
}

func NewCheckoutQuoter(svc *checkoutapp.Service) *CheckoutQuoter {
	return &CheckoutQuoter{svc: svc}
}

func (q *CheckoutQuoter) Quote(ctx context.Context, items []domain.Item, deliveryType, postcode string) (orderapp.Pricing, error) {
	method, ok := checkout.ParseMethod(deliveryType)
	if !ok {
		return orderapp.Pricing{}, orderapp.ErrInvalidInput
	}

	lines := make([]checkout.Line, 0, len(items))
	for _, it := range items {
		lines = append(lines, checkout.Line{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Weight:      it.SelectedWeight,
			Quantity:    it.Quantity,
			ItemTotal:   it.ItemTotal,
		})
	}

	quote, err := q.svc.Price(ctx, lines, checkout.DeliveryRequest{Method: method, Postcode: postcode})
	if err != nil {
		return orderapp.Pricing{}, err
	}
	return orderapp.Pricing{
		Subtotal:    quote.Subtotal,
		DeliveryFee: quote.DeliveryFee,
		Total:       quote.Total,
	}, nil
}
