package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dwikikusuma/rajah-storefront/internal/identity/domain"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("unauthenticated")
)

type Service struct {
	verifier Verifier
	tokens   *TokenManager
	sessions SessionStore
	carts    CartClearer
	log      *slog.Logger
}

func NewService(verifier Verifier, tokens *TokenManager, sessions SessionStore, carts CartClearer, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		verifier: verifier,
		tokens:   tokens,
		sessions: sessions,
		carts:    carts,
		log:      log,
	}
}

func (s *Service) SignIn(ctx context.Context, email, password string) (domain.Session, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return domain.Session{}, ErrInvalidInput
	}

	acct, err := s.verifier.Verify(ctx, email, password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			s.log.InfoContext(ctx, "sign-in rejected", slog.String("email", NormalizeEmail(email)))
		}
		return domain.Session{}, err
	}

	who := domain.Identity{UserID: acct.ID, Email: acct.Email, Name: acct.Name}
	token, jti, exp, err := s.tokens.Sign(who.UserID, who.Email, who.Name)
	if err != nil {
		return domain.Session{}, fmt.Errorf("sign token: %w", err)
	}
	if err := s.sessions.Put(ctx, jti, who, exp); err != nil {
		return domain.Session{}, fmt.Errorf("store session: %w", err)
	}

	s.log.InfoContext(ctx, "signed in", slog.String("user_id", who.UserID))
	return domain.Session{Token: token, ExpiresAt: exp, Identity: who}, nil
}

// Authenticate accepts a token only while its session record exists.
func (s *Service) Authenticate(ctx context.Context, token string) (domain.Identity, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return domain.Identity{}, ErrUnauthenticated
	}

	who, err := s.sessions.Get(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, ErrUnauthenticated) {
			return domain.Identity{}, err
		}
		return domain.Identity{}, fmt.Errorf("load session: %w", err)
	}
	if who.UserID != claims.Subject {
		return domain.Identity{}, ErrUnauthenticated
	}
	return who, nil
}

// SignOut ends the session and discards the user's cart. An expired but
// otherwise valid token is accepted.
func (s *Service) SignOut(ctx context.Context, token string) error {
	claims, err := s.tokens.ParseExpired(token)
	if err != nil {
		return ErrUnauthenticated
	}

	if err := s.sessions.Delete(ctx, claims.ID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if err := s.carts.Clear(ctx, claims.Subject); err != nil {
		return fmt.Errorf("purge cart: %w", err)
	}

	s.log.InfoContext(ctx, "signed out", slog.String("user_id", claims.Subject))
	return nil
}
