package app_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/dwikikusuma/rajah-storefront/internal/cart/app"
	"github.com/dwikikusuma/rajah-storefront/internal/cart/domain"
	"github.com/dwikikusuma/rajah-storefront/internal/cart/infra/kv"
	"github.com/dwikikusuma/rajah-storefront/pkg/kvstore"
	"github.com/dwikikusuma/rajah-storefront/pkg/logger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

type fakeCatalog map[string]app.Product

func (f fakeCatalog) GetProduct(_ context.Context, id string) (app.Product, error) {
	p, ok := f[id]
	if !ok {
		return app.Product{}, fmt.Errorf("product %s: %w", id, app.ErrNotFound)
	}
	return p, nil
}

func catalog() fakeCatalog {
	return fakeCatalog{
		"p-lamb-steaks": {
			ID: "p-lamb-steaks", Name: "Lamb Steaks", Image: "/a.jpg", PricePerKg: 17.99,
			Variants: []app.Variant{
				{ID: "v-500", Weight: "500g", Marinade: "None"},
				{ID: "v-500-tikka", Weight: "500g", Marinade: "Tikka", PriceModifier: 1.5},
			},
		},
		"p-empty": {ID: "p-empty", Name: "Coming Soon", PricePerKg: 5},
	}
}

func newTestService(t *testing.T) (*app.Service, kvstore.Store) {
	t.Helper()
	store := kvstore.NewMemory()
	return app.NewService(kv.NewCartRepo(store), catalog(), logger.Discard()), store
}

func lambSteaks(qty int) domain.Candidate {
	return domain.Candidate{
		ProductID: "p-lamb-steaks", ProductName: "Lamb Steaks",
		PricePerKg: 17.99, Weight: "500g", Quantity: qty,
	}
}

func TestCart_AnonymousRefused(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)

	_, err := svc.Add(ctx, "", lambSteaks(1))
	assert.ErrorIs(t, err, app.ErrUnauthenticated)

	_, err = svc.AddVariant(ctx, "", "p-lamb-steaks", "v-500", 1)
	assert.ErrorIs(t, err, app.ErrUnauthenticated)

	_, err = svc.Get(ctx, "")
	assert.ErrorIs(t, err, app.ErrUnauthenticated)

	assert.NoError(t, svc.Clear(ctx, ""))

	_, err = store.Get(ctx, "cart:")
	assert.ErrorIs(t, err, kvstore.ErrNotFound)
}

func TestCart_AddMergesAndPersists(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	_, err := svc.Add(ctx, "u1", lambSteaks(2))
	require.NoError(t, err)
	cart, err := svc.Add(ctx, "u1", lambSteaks(1))
	require.NoError(t, err)

	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 3, cart.Lines[0].Quantity)
	assert.InDelta(t, 26.985, cart.Total(), 1e-9)
	_, err = uuid.Parse(cart.Lines[0].ID)
	assert.NoError(t, err)

	stored, err := svc.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, cart, stored)
}

func TestCart_AddValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	t.Run("zero quantity -> invalid", func(t *testing.T) {
		_, err := svc.Add(ctx, "u1", lambSteaks(0))
		assert.ErrorIs(t, err, app.ErrInvalidInput)
	})

	t.Run("blank product -> invalid", func(t *testing.T) {
		c := lambSteaks(1)
		c.ProductID = " "
		_, err := svc.Add(ctx, "u1", c)
		assert.ErrorIs(t, err, app.ErrInvalidInput)
	})
}

func TestCart_AddVariant(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	t.Run("modifier added to price", func(t *testing.T) {
		cart, err := svc.AddVariant(ctx, "u1", "p-lamb-steaks", "v-500-tikka", 2)
		require.NoError(t, err)
		require.Len(t, cart.Lines, 1)
		l := cart.Lines[0]
		assert.InDelta(t, 19.49, l.PricePerKg, 1e-9)
		assert.Equal(t, "Tikka", l.SelectedMarinade)
		assert.Equal(t, "/a.jpg", l.ProductImage)
		assert.InDelta(t, 19.49, l.ItemTotal, 1e-9)
	})

	t.Run("unknown variant -> not found", func(t *testing.T) {
		_, err := svc.AddVariant(ctx, "u1", "p-lamb-steaks", "nope", 1)
		assert.ErrorIs(t, err, app.ErrNotFound)
	})

	t.Run("unknown product -> not found", func(t *testing.T) {
		_, err := svc.AddVariant(ctx, "u1", "nope", "v-500", 1)
		assert.ErrorIs(t, err, app.ErrNotFound)
	})

	t.Run("no variants -> not purchasable", func(t *testing.T) {
		_, err := svc.AddVariant(ctx, "u1", "p-empty", "", 1)
		assert.ErrorIs(t, err, app.ErrNotPurchasable)
	})
}

func TestCart_UpdateAndRemove(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	cart, err := svc.Add(ctx, "u1", lambSteaks(1))
	require.NoError(t, err)
	lineID := cart.Lines[0].ID

	t.Run("update -> total recomputed", func(t *testing.T) {
		cart, err := svc.UpdateQuantity(ctx, "u1", lineID, 4)
		require.NoError(t, err)
		assert.InDelta(t, 35.98, cart.Total(), 1e-9)
		assert.Equal(t, 4, cart.Count())
	})

	t.Run("unknown line -> unchanged", func(t *testing.T) {
		cart, err := svc.UpdateQuantity(ctx, "u1", "nope", 9)
		require.NoError(t, err)
		assert.Equal(t, 4, cart.Count())
	})

	t.Run("update to zero -> removed", func(t *testing.T) {
		cart, err := svc.UpdateQuantity(ctx, "u1", lineID, 0)
		require.NoError(t, err)
		assert.True(t, cart.IsEmpty())
	})

	t.Run("remove twice -> idempotent", func(t *testing.T) {
		cart, err := svc.Add(ctx, "u1", lambSteaks(1))
		require.NoError(t, err)
		id := cart.Lines[0].ID

		_, err = svc.Remove(ctx, "u1", id)
		require.NoError(t, err)
		cart, err = svc.Remove(ctx, "u1", id)
		require.NoError(t, err)
		assert.Empty(t, cart.Lines)
	})
}

func TestCart_Clear(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)

	_, err := svc.Add(ctx, "u1", lambSteaks(1))
	require.NoError(t, err)
	require.NoError(t, svc.Clear(ctx, "u1"))

	_, err = store.Get(ctx, "cart:u1")
	assert.ErrorIs(t, err, kvstore.ErrNotFound)

	cart, err := svc.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Zero(t, cart.Count())
}

func TestCart_CorruptValueTreatedAsEmpty(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)
	require.NoError(t, store.Set(ctx, "cart:u1", []byte("garbage")))

	cart, err := svc.Get(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())

	cart, err = svc.Add(ctx, "u1", lambSteaks(1))
	require.NoError(t, err)
	assert.Len(t, cart.Lines, 1)
}

func TestCart_ConcurrentAddIncrement(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	userID := uuid.NewString()

	const N = 100
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < N; i++ {
		g.Go(func() error {
			_, err := svc.Add(gctx, userID, lambSteaks(1))
			return err
		})
	}
	require.NoError(t, g.Wait())

	cart, err := svc.Get(ctx, userID)
	require.NoError(t, err)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, N, cart.Lines[0].Quantity)
}

func TestCart_UsersAreIsolated(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	_, err := svc.Add(ctx, "u1", lambSteaks(2))
	require.NoError(t, err)

	cart, err := svc.Get(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, cart.Lines)
}

func TestCart_Checkout(t *testing.T) {
	ctx := context.Background()

	t.Run("success -> cart deleted", func(t *testing.T) {
		svc, store := newTestService(t)
		_, err := svc.Add(ctx, "u1", lambSteaks(3))
		require.NoError(t, err)

		var seen domain.Cart
		require.NoError(t, svc.Checkout(ctx, "u1", func(c domain.Cart) error {
			seen = c
			return nil
		}))
		assert.Equal(t, 3, seen.Count())

		_, err = store.Get(ctx, "cart:u1")
		assert.ErrorIs(t, err, kvstore.ErrNotFound)
	})

	t.Run("callback error -> cart kept", func(t *testing.T) {
		svc, _ := newTestService(t)
		_, err := svc.Add(ctx, "u1", lambSteaks(1))
		require.NoError(t, err)

		boom := errors.New("below minimum")
		err = svc.Checkout(ctx, "u1", func(domain.Cart) error { return boom })
		assert.ErrorIs(t, err, boom)

		cart, err := svc.Get(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, 1, cart.Count())
	})

	t.Run("no user -> unauthenticated", func(t *testing.T) {
		svc, _ := newTestService(t)
		err := svc.Checkout(ctx, "", func(domain.Cart) error { return nil })
		assert.ErrorIs(t, err, app.ErrUnauthenticated)
	})

	t.Run("concurrent add waits and survives", func(t *testing.T) {
		svc, _ := newTestService(t)
		_, err := svc.Add(ctx, "u1", lambSteaks(1))
		require.NoError(t, err)

		added := make(chan error, 1)
		err = svc.Checkout(ctx, "u1", func(c domain.Cart) error {
			go func() {
				_, err := svc.AddVariant(ctx, "u1", "p-lamb-steaks", "v-500-tikka", 1)
				added <- err
			}()
			select {
			case err := <-added:
				t.Errorf("add finished while the cart was checked out: %v", err)
			case <-time.After(50 * time.Millisecond):
			}
			assert.Equal(t, 1, c.Count())
			return nil
		})
		require.NoError(t, err)
		require.NoError(t, <-added)

		cart, err := svc.Get(ctx, "u1")
		require.NoError(t, err)
		require.Len(t, cart.Lines, 1)
		assert.Equal(t, "Tikka", cart.Lines[0].SelectedMarinade)
	})
}
