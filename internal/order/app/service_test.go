package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dwikikusuma/rajah-storefront/internal/order/domain"
	"github.com/dwikikusuma/rajah-storefront/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRepo struct {
	mu     sync.Mutex
	orders map[string][]domain.Order
	err    error
}

func (m *memRepo) Append(_ context.Context, o domain.Order) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.orders == nil {
		m.orders = map[string][]domain.Order{}
	}
	m.orders[o.UserID] = append(m.orders[o.UserID], o)
	return nil
}

func (m *memRepo) ListByUser(_ context.Context, userID string) ([]domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Order{}, m.orders[userID]...), nil
}

type fakeCarts struct {
	items    map[string][]domain.Item
	cleared  []string
	clearErr error
}

func (f *fakeCarts) Checkout(_ context.Context, userID string, fn func([]domain.Item) error) error {
	if err := fn(f.items[userID]); err != nil {
		return err
	}
	if f.clearErr != nil {
		return f.clearErr
	}
	f.cleared = append(f.cleared, userID)
	delete(f.items, userID)
	return nil
}

// fakeQuoter prices exactly the items it is handed.
type fakeQuoter struct {
	fee   float64
	err   error
	got   []string
	items []domain.Item
}

func (f *fakeQuoter) Quote(_ context.Context, items []domain.Item, deliveryType, postcode string) (Pricing, error) {
	f.got = []string{deliveryType, postcode}
	f.items = items
	if f.err != nil {
		return Pricing{}, f.err
	}
	var subtotal float64
	for _, it := range items {
		subtotal += it.ItemTotal
	}
	return Pricing{Subtotal: subtotal, DeliveryFee: f.fee, Total: subtotal + f.fee}, nil
}

type fakePublisher struct {
	events []domain.Placed
	err    error
}

func (f *fakePublisher) Publish(_ context.Context, e domain.Placed) error {
	f.events = append(f.events, e)
	return f.err
}

type fixture struct {
	svc   *Service
	repo  *memRepo
	carts *fakeCarts
	quote *fakeQuoter
	pub   *fakePublisher
}

func newFixture() fixture {
	f := fixture{
		repo: &memRepo{},
		carts: &fakeCarts{items: map[string][]domain.Item{
			"u1": {{LineID: "l1", ProductID: "p1", ProductName: "Lamb Steaks", PricePerKg: 17.99, SelectedWeight: "500g", SelectedMarinade: "None", Quantity: 5, ItemTotal: 44.975}},
		}},
		quote: &fakeQuoter{fee: 3.5},
		pub:   &fakePublisher{},
	}
	f.svc = NewService(f.repo, f.carts, f.quote, f.pub, logger.Discard())
	f.svc.now = func() time.Time { return time.UnixMilli(1717243200000) }
	return f
}

func deliveryRequest() domain.PlaceOrderRequest {
	return domain.PlaceOrderRequest{
		UserID:          "u1",
		DeliveryType:    "delivery",
		Customer:        domain.Customer{Name: "Amir", Email: "amir@example.com", Phone: "07700 900000"},
		DeliveryAddress: &domain.Address{Line1: "1 Princes St", City: "Edinburgh", Postcode: "EH1 1AA"},
	}
}

func TestPlaceOrder(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	o, err := f.svc.PlaceOrder(ctx, deliveryRequest())
	require.NoError(t, err)

	assert.Equal(t, "RJ1717243200000", o.Number)
	assert.Equal(t, domain.StatusPending, o.Status)
	assert.Equal(t, domain.PaymentStatusPending, o.PaymentStatus)
	assert.Equal(t, 3.5, o.DeliveryFee)
	assert.InDelta(t, 44.975, o.Subtotal, 1e-9)
	assert.InDelta(t, 48.475, o.Total, 1e-9)
	require.Len(t, o.Items, 1)
	assert.Equal(t, "500g", o.Items[0].SelectedWeight)
	assert.Equal(t, []string{"delivery", "EH1 1AA"}, f.quote.got)
	assert.Equal(t, o.Items, f.quote.items, "the order prices the items it records")

	assert.Equal(t, []string{"u1"}, f.carts.cleared)
	require.Len(t, f.pub.events, 1)
	assert.Equal(t, 5, f.pub.events[0].ItemCount)

	history, err := f.svc.History(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, o.ID, history[0].ID)
}

func TestPlaceOrder_Collection(t *testing.T) {
	f := newFixture()
	f.quote.fee = 0

	req := deliveryRequest()
	req.DeliveryType = "Collection"
	o, err := f.svc.PlaceOrder(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "collection", o.DeliveryType)
	assert.Nil(t, o.DeliveryAddress)
	assert.Equal(t, []string{"collection", ""}, f.quote.got)
}

func TestPlaceOrder_Rejections(t *testing.T) {
	ctx := context.Background()

	t.Run("no user -> unauthenticated", func(t *testing.T) {
		f := newFixture()
		req := deliveryRequest()
		req.UserID = ""
		_, err := f.svc.PlaceOrder(ctx, req)
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("missing phone -> invalid", func(t *testing.T) {
		f := newFixture()
		req := deliveryRequest()
		req.Customer.Phone = " "
		_, err := f.svc.PlaceOrder(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("delivery without address -> invalid", func(t *testing.T) {
		f := newFixture()
		req := deliveryRequest()
		req.DeliveryAddress = nil
		_, err := f.svc.PlaceOrder(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("unknown delivery type -> invalid", func(t *testing.T) {
		f := newFixture()
		req := deliveryRequest()
		req.DeliveryType = "drone"
		_, err := f.svc.PlaceOrder(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("empty cart -> ErrEmptyCart", func(t *testing.T) {
		f := newFixture()
		req := deliveryRequest()
		req.UserID = "u2"
		_, err := f.svc.PlaceOrder(ctx, req)
		assert.ErrorIs(t, err, ErrEmptyCart)
	})

	t.Run("quote rejection -> nothing stored, cart kept", func(t *testing.T) {
		f := newFixture()
		noZone := errors.New("no zone")
		f.quote.err = noZone
		_, err := f.svc.PlaceOrder(ctx, deliveryRequest())
		assert.ErrorIs(t, err, noZone)
		assert.Empty(t, f.carts.cleared)
		assert.Empty(t, f.repo.orders["u1"])
		assert.Empty(t, f.pub.events)
	})

	t.Run("store failure -> cart kept", func(t *testing.T) {
		f := newFixture()
		f.repo.err = errors.New("disk full")
		_, err := f.svc.PlaceOrder(ctx, deliveryRequest())
		assert.Error(t, err)
		assert.Empty(t, f.carts.cleared)
	})
}

func TestPlaceOrder_PublishFailureIsNotFatal(t *testing.T) {
	f := newFixture()
	f.pub.err = errors.New("broker down")

	o, err := f.svc.PlaceOrder(context.Background(), deliveryRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, o.ID)
	assert.Len(t, f.repo.orders["u1"], 1)
}

func TestPlaceOrder_ClearFailureAfterStore(t *testing.T) {
	f := newFixture()
	f.carts.clearErr = errors.New("store unavailable")

	o, err := f.svc.PlaceOrder(context.Background(), deliveryRequest())
	require.NoError(t, err)
	assert.Len(t, f.repo.orders["u1"], 1)
	assert.Len(t, f.pub.events, 1)
	assert.Equal(t, o.Number, f.pub.events[0].Number)
}

func TestHistory_RequiresUser(t *testing.T) {
	_, err := newFixture().svc.History(context.Background(), "")
	assert.ErrorIs(t, err, ErrUnauthenticated)
}
