package adapter

import (
	"context"

	catalogapp "github.com/dwikikusuma/rajah-storefront/internal/catalog/app"
	"github.com/dwikikusuma/rajah-storefront/internal/checkout/domain"
)

// CatalogZoneReader serves the delivery zones shipped with the catalog document.
type CatalogZoneReader struct {
	svc *catalogapp.Service
}

func NewCatalogZoneReader(svc *catalogapp.Service) *CatalogZoneReader {
	return &CatalogZoneReader{svc: svc}
}

func (r *CatalogZoneReader) DeliveryZones(context.Context) ([]domain.Zone, error) {
	src := r.svc.DeliveryZones()
	zones := make([]domain.Zone, 0, len(src))
	for _, z := range src {
		zones = append(zones, domain.Zone{
			ID:               z.ID,
			PostcodePrefix:   z.PostcodePrefix,
			Name:             z.ZoneName,
			DeliveryFee:      z.DeliveryFee,
			MinimumOrder:     z.MinimumOrder,
			FreeDeliveryOver: z.FreeDeliveryOver,
		})
	}
	return zones, nil
}
