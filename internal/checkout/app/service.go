package app

import (
	"context"
	"errors"
	"log/slog"

	"github.com/dwikikusuma/rajah-storefront/internal/checkout/domain"
	"github.com/dwikikusuma/rajah-storefront/pkg/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

var (
	ErrEmptyCart       = errors.New("cart is empty")
	ErrNoZone          = errors.New("we don't deliver to this postcode yet")
	ErrInvalidInput    = errors.New("invalid input")
	ErrUnauthenticated = errors.New("sign in required")
)

type Service struct {
	Cart  CartReader
	Zones ZoneReader

	log    *slog.Logger
	tracer trace.Tracer
}

func NewService(cart CartReader, zones ZoneReader, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		Cart:   cart,
		Zones:  zones,
		log:    log,
		tracer: tracing.Tracer("checkout"),
	}
}

// Quote prices the user's cart for delivery or collection. Delivery needs a served
// postcode and a subtotal of at least the zone minimum; collection has no fee.
func (s *Service) Quote(ctx context.Context, userID string, req domain.DeliveryRequest) (domain.Quote, error) {
	if userID == "" {
		return domain.Quote{}, ErrUnauthenticated
	}
	method, err := methodOf(req)
	if err != nil {
		return domain.Quote{}, err
	}

	ctx, span := s.tracer.Start(ctx, "checkout.Quote", trace.WithAttributes(
		attribute.String("method", string(method)),
	))
	defer span.End()

	var (
		lines []domain.Line
		zones []domain.Zone
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		lines, err = s.Cart.GetCart(gctx, userID)
		return err
	})
	if method == domain.MethodDelivery {
		g.Go(func() error {
			var err error
			zones, err = s.Zones.DeliveryZones(gctx)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		return domain.Quote{}, err
	}

	return s.price(ctx, method, lines, zones, req.Postcode)
}

// Price applies the same rules as Quote to lines the caller already holds, such as the
// cart snapshot an order is built from.
func (s *Service) Price(ctx context.Context, lines []domain.Line, req domain.DeliveryRequest) (domain.Quote, error) {
	method, err := methodOf(req)
	if err != nil {
		return domain.Quote{}, err
	}

	ctx, span := s.tracer.Start(ctx, "checkout.Price", trace.WithAttributes(
		attribute.String("method", string(method)),
		attribute.Int("lines", len(lines)),
	))
	defer span.End()

	var zones []domain.Zone
	if method == domain.MethodDelivery {
		zones, err = s.Zones.DeliveryZones(ctx)
		if err != nil {
			span.RecordError(err)
			return domain.Quote{}, err
		}
	}

	return s.price(ctx, method, lines, zones, req.Postcode)
}

func methodOf(req domain.DeliveryRequest) (domain.Method, error) {
	switch req.Method {
	case "":
		return domain.MethodDelivery, nil
	case domain.MethodDelivery, domain.MethodCollection:
		return req.Method, nil
	}
	return "", ErrInvalidInput
}

func (s *Service) price(ctx context.Context, method domain.Method, lines []domain.Line, zones []domain.Zone, postcode string) (domain.Quote, error) {
	if len(lines) == 0 {
		return domain.Quote{}, ErrEmptyCart
	}

	var subtotal float64
	for _, l := range lines {
		subtotal += l.ItemTotal
	}

	q := domain.Quote{
		Method:   method,
		Lines:    lines,
		Subtotal: subtotal,
		Total:    subtotal,
	}
	if method == domain.MethodCollection {
		return q, nil
	}

	zone, ok := domain.ResolveZone(zones, postcode)
	if !ok {
		s.log.InfoContext(ctx, "postcode not served", slog.String("postcode", domain.NormalizePostcode(postcode)))
		return domain.Quote{}, ErrNoZone
	}
	if subtotal < zone.MinimumOrder {
		return domain.Quote{}, &domain.MinimumOrderError{
			Prefix:   zone.PostcodePrefix,
			Minimum:  zone.MinimumOrder,
			Subtotal: subtotal,
		}
	}

	q.Zone = &zone
	q.Postcode = domain.NormalizePostcode(postcode)
	q.DeliveryFee = zone.FeeFor(subtotal)
	q.Total = subtotal + q.DeliveryFee
	return q, nil
}
