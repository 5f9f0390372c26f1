package kv

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/dwikikusuma/rajah-storefront/internal/identity/app"
	"github.com/dwikikusuma/rajah-storefront/internal/identity/domain"
	"github.com/dwikikusuma/rajah-storefront/pkg/kvstore"
)

type sessionRecord struct {
	Identity  domain.Identity `json:"identity"`
	ExpiresAt time.Time       `json:"expires_at"`
}

// SessionStore keeps one record per token id under session:<jti>.
type SessionStore struct {
	store kvstore.Store
	now   func() time.Time
}

func NewSessionStore(store kvstore.Store) *SessionStore {
	return &SessionStore{store: store, now: time.Now}
}

func sessionKey(id string) string {
	return kvstore.Key("session", id)
}

func (s *SessionStore) Put(ctx context.Context, id string, who domain.Identity, expiresAt time.Time) error {
	raw, err := json.Marshal(sessionRecord{Identity: who, ExpiresAt: expiresAt})
	if err != nil {
		return err
	}
	return s.store.Set(ctx, sessionKey(id), raw)
}

func (s *SessionStore) Get(ctx context.Context, id string) (domain.Identity, error) {
	raw, err := s.store.Get(ctx, sessionKey(id))
	if errors.Is(err, kvstore.ErrNotFound) {
		return domain.Identity{}, app.ErrUnauthenticated
	}
	if err != nil {
		return domain.Identity{}, err
	}

	var rec sessionRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return domain.Identity{}, app.ErrUnauthenticated
	}
	if !s.now().Before(rec.ExpiresAt) {
		_ = s.store.Delete(ctx, sessionKey(id))
		return domain.Identity{}, app.ErrUnauthenticated
	}
	return rec.Identity, nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, sessionKey(id))
}
