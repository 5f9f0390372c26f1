package adapter

import (
	"context"
	"fmt"

	cartapp "github.com/dwikikusuma/rajah-storefront/internal/cart/app"
	catalogapp "github.com/dwikikusuma/rajah-storefront/internal/catalog/app"
)

type CatalogServiceReader struct {
	svc *catalogapp.Service
}

func NewCatalogServiceReader(svc *catalogapp.Service) *CatalogServiceReader {
	return &CatalogServiceReader{svc: svc}
}

// GetProduct only offers active products.
func (r *CatalogServiceReader) GetProduct(_ context.Context, productID string) (cartapp.Product, error) {
	p, ok := r.svc.ProductByID(productID)
	if !ok || !p.Active {
		return cartapp.Product{}, fmt.Errorf("product %s: %w", productID, cartapp.ErrNotFound)
	}

	variants := make([]cartapp.Variant, 0, len(p.Variants))
	for _, v := range p.Variants {
		variants = append(variants, cartapp.Variant{
			ID:            v.ID,
			Weight:        v.Weight,
			Cut:           v.Cut,
			Marinade:      v.MarinadeOrDefault(),
			PriceModifier: v.PriceModifier,
		})
	}

	return cartapp.Product{
		ID:         p.ID,
		Name:       p.Name,
		Image:      p.PrimaryImage(),
		PricePerKg: p.PricePerKg,
		Variants:   variants,
	}, nil
}
