package app

import (
	"context"
	"errors"

	"github.com/dwikikusuma/rajah-storefront/internal/cart/domain"
)

// ErrCorruptCart is returned by a CartRepo whose stored value cannot be decoded.
var ErrCorruptCart = errors.New("stored cart is corrupt")

type CartRepo interface {
	// Load returns an empty cart when none is stored.
	Load(ctx context.Context, userID string) (domain.Cart, error)
	Save(ctx context.Context, cart domain.Cart) error
	Delete(ctx context.Context, userID string) error
}

type CatalogReader interface {
	GetProduct(ctx context.Context, productID string) (Product, error)
}

type Product struct {
	ID         string
	Name       string
	Image      string
	PricePerKg float64
	Variants   []Variant
}

type Variant struct {
	ID            string
	Weight        string
	Cut           *string
	Marinade      string
	PriceModifier float64
}
