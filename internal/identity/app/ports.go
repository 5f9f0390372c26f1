package app

import (
	"context"
	"time"

	"github.com/dwikikusuma/rajah-storefront/internal/identity/domain"
)

type AccountStore interface {
	// ByEmail returns ErrUnknownAccount when no account matches.
	ByEmail(ctx context.Context, email string) (domain.Account, error)
}

// Verifier checks credentials and returns the matching account.
type Verifier interface {
	Verify(ctx context.Context, email, password string) (domain.Account, error)
}

type SessionStore interface {
	Put(ctx context.Context, id string, who domain.Identity, expiresAt time.Time) error
	// Get returns ErrUnauthenticated for a missing or expired session.
	Get(ctx context.Context, id string) (domain.Identity, error)
	Delete(ctx context.Context, id string) error
}

type CartClearer interface {
	Clear(ctx context.Context, userID string) error
}
