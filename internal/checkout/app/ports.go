package app

import (
	"context"

	"github.com/dwikikusuma/rajah-storefront/internal/checkout/domain"
)

type CartReader interface {
	GetCart(ctx context.Context, userID string) ([]domain.Line, error)
}

type ZoneReader interface {
	DeliveryZones(ctx context.Context) ([]domain.Zone, error)
}
