package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dwikikusuma/rajah-storefront/internal/cart/app"
	"github.com/dwikikusuma/rajah-storefront/internal/cart/domain"
	"github.com/dwikikusuma/rajah-storefront/pkg/kvstore"
)

// CartRepo stores each cart as a JSON array of lines under cart:<userID>.
type CartRepo struct {
	store kvstore.Store
}

func NewCartRepo(store kvstore.Store) *CartRepo {
	return &CartRepo{store: store}
}

func cartKey(userID string) string {
	return kvstore.Key("cart", userID)
}

func (r *CartRepo) Load(ctx context.Context, userID string) (domain.Cart, error) {
	raw, err := r.store.Get(ctx, cartKey(userID))
	if errors.Is(err, kvstore.ErrNotFound) {
		return domain.New(userID), nil
	}
	if err != nil {
		return domain.Cart{}, err
	}

	var lines []domain.Line
	if err := json.Unmarshal(raw, &lines); err != nil {
		return domain.Cart{}, fmt.Errorf("%w: %v", app.ErrCorruptCart, err)
	}
	if lines == nil {
		lines = []domain.Line{}
	}
	return domain.Cart{UserID: userID, Lines: lines}, nil
}

func (r *CartRepo) Save(ctx context.Context, cart domain.Cart) error {
	lines := cart.Lines
	if lines == nil {
		lines = []domain.Line{}
	}
	raw, err := json.Marshal(lines)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, cartKey(cart.UserID), raw)
}

func (r *CartRepo) Delete(ctx context.Context, userID string) error {
	return r.store.Delete(ctx, cartKey(userID))
}
