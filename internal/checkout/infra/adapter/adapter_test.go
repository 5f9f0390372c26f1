package adapter

import (
	"context"
	"testing"

	cartapp "github.com/dwikikusuma/rajah-storefront/internal/cart/app"
	cartadapter "github.com/dwikikusuma/rajah-storefront/internal/cart/infra/adapter"
	"github.com/dwikikusuma/rajah-storefront/internal/cart/infra/kv"
	catalogapp "github.com/dwikikusuma/rajah-storefront/internal/catalog/app"
	"github.com/dwikikusuma/rajah-storefront/internal/catalog/infra/jsonfile"
	"github.com/dwikikusuma/rajah-storefront/pkg/kvstore"
	"github.com/dwikikusuma/rajah-storefront/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdapters(t *testing.T) {
	ctx := context.Background()
	repo, err := jsonfile.Default()
	require.NoError(t, err)
	catalog := catalogapp.NewService(repo)

	t.Run("zones from bundled catalog", func(t *testing.T) {
		zones, err := NewCatalogZoneReader(catalog).DeliveryZones(ctx)
		require.NoError(t, err)
		require.Len(t, zones, 7)
		assert.Equal(t, "EH1", zones[0].PostcodePrefix)
		assert.Equal(t, "Edinburgh City Centre", zones[0].Name)
		assert.Equal(t, 50.0, zones[0].FreeDeliveryOver)
	})

	t.Run("cart lines carry item totals", func(t *testing.T) {
		carts := cartapp.NewService(kv.NewCartRepo(kvstore.NewMemory()), cartadapter.NewCatalogServiceReader(catalog), logger.Discard())
		_, err := carts.AddVariant(ctx, "u1", "p-chicken-breast", "v-cb-1kg", 2)
		require.NoError(t, err)

		lines, err := NewCartServiceReader(carts).GetCart(ctx, "u1")
		require.NoError(t, err)
		require.Len(t, lines, 1)
		assert.Equal(t, "1kg", lines[0].Weight)
		assert.InDelta(t, 20.0, lines[0].ItemTotal, 1e-9)
	})
}
