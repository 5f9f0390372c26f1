package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/dwikikusuma/rajah-storefront/internal/order/domain"
	"github.com/dwikikusuma/rajah-storefront/pkg/kvstore"
)

// OrderRepo keeps each user's history as a JSON array under orders:<userID>.
type OrderRepo struct {
	store kvstore.Store
	mu    sync.Mutex
}

func NewOrderRepo(store kvstore.Store) *OrderRepo {
	return &OrderRepo{store: store}
}

func ordersKey(userID string) string {
	return kvstore.Key("orders", userID)
}

func (r *OrderRepo) Append(ctx context.Context, order domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	orders, err := r.ListByUser(ctx, order.UserID)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(append(orders, order))
	if err != nil {
		return err
	}
	return r.store.Set(ctx, ordersKey(order.UserID), raw)
}

func (r *OrderRepo) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	raw, err := r.store.Get(ctx, ordersKey(userID))
	if errors.Is(err, kvstore.ErrNotFound) {
		return []domain.Order{}, nil
	}
	if err != nil {
		return nil, err
	}

	var orders []domain.Order
	if err := json.Unmarshal(raw, &orders); err != nil {
		return nil, fmt.Errorf("decode orders for %s: %w", userID, err)
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	return orders, nil
}
