package adapter

import (
	"context"
	"testing"

	cartapp "github.com/dwikikusuma/rajah-storefront/internal/cart/app"
	catalogapp "github.com/dwikikusuma/rajah-storefront/internal/catalog/app"
	"github.com/dwikikusuma/rajah-storefront/internal/catalog/infra/jsonfile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogServiceReader(t *testing.T) {
	repo, err := jsonfile.Default()
	require.NoError(t, err)
	r := NewCatalogServiceReader(catalogapp.NewService(repo))
	ctx := context.Background()

	t.Run("active product -> variants with marinade", func(t *testing.T) {
		p, err := r.GetProduct(ctx, "p-lamb-steaks")
		require.NoError(t, err)
		assert.Equal(t, "Lamb Steaks", p.Name)
		assert.Equal(t, "/images/products/lamb-steaks-1.jpg", p.Image)
		require.Len(t, p.Variants, 3)
		assert.Equal(t, "Tikka", p.Variants[2].Marinade)
		assert.Equal(t, 1.5, p.Variants[2].PriceModifier)
	})

	t.Run("inactive product -> not found", func(t *testing.T) {
		_, err := r.GetProduct(ctx, "p-beef-diced")
		assert.ErrorIs(t, err, cartapp.ErrNotFound)
	})

	t.Run("unknown product -> not found", func(t *testing.T) {
		_, err := r.GetProduct(ctx, "nope")
		assert.ErrorIs(t, err, cartapp.ErrNotFound)
	})
}
