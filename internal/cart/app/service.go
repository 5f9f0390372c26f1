package app

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"log/slog"
	"strings"
	"sync"

	"github.com/dwikikusuma/rajah-storefront/internal/cart/domain"
	"github.com/dwikikusuma/rajah-storefront/pkg/tracing"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var (
	ErrUnauthenticated = errors.New("sign in required")
	ErrInvalidInput    = errors.New("invalid input")
	ErrNotFound        = errors.New("not found")
	ErrNotPurchasable  = errors.New("product has no purchasable variants")

	// ErrNotCleared means Checkout's callback succeeded but the cart could not be deleted.
	ErrNotCleared = errors.New("cart not cleared")
)

// lockStripes bounds the number of mutexes; users hashing to the same stripe share one.
const lockStripes = 64

// Service owns each user's cart. Read-modify-write cycles are serialized per user within
// the process; concurrent writers in other processes are last-write-wins.
type Service struct {
	repo    CartRepo
	catalog CatalogReader
	log     *slog.Logger
	tracer  trace.Tracer
	newID   func() string

	locks [lockStripes]sync.Mutex
}

func NewService(repo CartRepo, catalog CatalogReader, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		repo:    repo,
		catalog: catalog,
		log:     log,
		tracer:  tracing.Tracer("cart"),
		newID:   uuid.NewString,
	}
}

func stripe(userID string) int {
	h := fnv.New32a()
	h.Write([]byte(userID))
	return int(h.Sum32() % lockStripes)
}

func (s *Service) lock(userID string) func() {
	l := &s.locks[stripe(userID)]
	l.Lock()
	return l.Unlock
}

func (s *Service) load(ctx context.Context, userID string) (domain.Cart, error) {
	cart, err := s.repo.Load(ctx, userID)
	if errors.Is(err, ErrCorruptCart) {
		s.log.WarnContext(ctx, "discarding corrupt cart",
			slog.String("user_id", userID),
			slog.Any("err", err),
		)
		return domain.New(userID), nil
	}
	if err != nil {
		return domain.Cart{}, fmt.Errorf("load cart: %w", err)
	}
	return cart, nil
}

// mutate runs fn against the user's stored cart and saves it when fn reports a change.
func (s *Service) mutate(ctx context.Context, userID string, fn func(*domain.Cart) bool) (domain.Cart, error) {
	unlock := s.lock(userID)
	defer unlock()

	cart, err := s.load(ctx, userID)
	if err != nil {
		return domain.Cart{}, err
	}
	if !fn(&cart) {
		return cart, nil
	}
	if err := s.repo.Save(ctx, cart); err != nil {
		return domain.Cart{}, fmt.Errorf("save cart: %w", err)
	}
	return cart, nil
}

func (s *Service) Get(ctx context.Context, userID string) (domain.Cart, error) {
	if userID == "" {
		return domain.Cart{}, ErrUnauthenticated
	}
	ctx, span := s.tracer.Start(ctx, "cart.Get")
	defer span.End()

	return s.load(ctx, userID)
}

// Add puts a candidate into the user's cart, merging with a line of the same
// configuration. Anonymous shoppers are refused.
func (s *Service) Add(ctx context.Context, userID string, c domain.Candidate) (domain.Cart, error) {
	if userID == "" {
		return domain.Cart{}, ErrUnauthenticated
	}
	if c.Quantity <= 0 || strings.TrimSpace(c.ProductID) == "" {
		return domain.Cart{}, ErrInvalidInput
	}

	ctx, span := s.tracer.Start(ctx, "cart.Add", trace.WithAttributes(
		attribute.String("product_id", c.ProductID),
		attribute.Int("quantity", c.Quantity),
	))
	defer span.End()

	cart, err := s.mutate(ctx, userID, func(cart *domain.Cart) bool {
		cart.Add(c, s.newID)
		return true
	})
	if err != nil {
		span.RecordError(err)
		return domain.Cart{}, err
	}

	s.log.InfoContext(ctx, "cart item added",
		slog.String("user_id", userID),
		slog.String("product_id", c.ProductID),
		slog.String("weight", c.Weight),
		slog.Int("quantity", c.Quantity),
	)
	return cart, nil
}

// AddVariant resolves a catalog variant into a candidate priced at base + modifier.
func (s *Service) AddVariant(ctx context.Context, userID, productID, variantID string, qty int) (domain.Cart, error) {
	if userID == "" {
		return domain.Cart{}, ErrUnauthenticated
	}
	if qty <= 0 {
		return domain.Cart{}, ErrInvalidInput
	}

	p, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		return domain.Cart{}, err
	}
	if len(p.Variants) == 0 {
		return domain.Cart{}, ErrNotPurchasable
	}

	for _, v := range p.Variants {
		if v.ID != variantID {
			continue
		}
		return s.Add(ctx, userID, domain.Candidate{
			ProductID:    p.ID,
			ProductName:  p.Name,
			ProductImage: p.Image,
			PricePerKg:   p.PricePerKg + v.PriceModifier,
			Weight:       v.Weight,
			Cut:          v.Cut,
			Marinade:     v.Marinade,
			Quantity:     qty,
		})
	}
	return domain.Cart{}, fmt.Errorf("variant %s of %s: %w", variantID, productID, ErrNotFound)
}

// UpdateQuantity sets a line's quantity; qty <= 0 removes the line. Unknown lines are
// left alone.
func (s *Service) UpdateQuantity(ctx context.Context, userID, lineID string, qty int) (domain.Cart, error) {
	if userID == "" {
		return domain.Cart{}, ErrUnauthenticated
	}
	ctx, span := s.tracer.Start(ctx, "cart.UpdateQuantity")
	defer span.End()

	return s.mutate(ctx, userID, func(cart *domain.Cart) bool {
		return cart.SetQuantity(lineID, qty)
	})
}

func (s *Service) Remove(ctx context.Context, userID, lineID string) (domain.Cart, error) {
	if userID == "" {
		return domain.Cart{}, ErrUnauthenticated
	}
	ctx, span := s.tracer.Start(ctx, "cart.Remove")
	defer span.End()

	return s.mutate(ctx, userID, func(cart *domain.Cart) bool {
		return cart.Remove(lineID)
	})
}

// Clear empties the cart. Without a user there is nothing to clear.
func (s *Service) Clear(ctx context.Context, userID string) error {
	if userID == "" {
		return nil
	}
	ctx, span := s.tracer.Start(ctx, "cart.Clear")
	defer span.End()

	unlock := s.lock(userID)
	defer unlock()

	if err := s.repo.Delete(ctx, userID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

// Checkout hands the user's cart to fn and deletes the cart once fn succeeds. The cart is
// locked for the whole call, so no line can be added or changed between what fn sees and
// what is deleted. fn must not call back into the Service.
func (s *Service) Checkout(ctx context.Context, userID string, fn func(domain.Cart) error) error {
	if userID == "" {
		return ErrUnauthenticated
	}
	ctx, span := s.tracer.Start(ctx, "cart.Checkout")
	defer span.End()

	unlock := s.lock(userID)
	defer unlock()

	cart, err := s.load(ctx, userID)
	if err != nil {
		return err
	}
	if err := fn(cart); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, userID); err != nil {
		span.RecordError(err)
		return fmt.Errorf("%w: %w", ErrNotCleared, err)
	}
	return nil
}
