package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dwikikusuma/rajah-storefront/internal/order/domain"
	"github.com/dwikikusuma/rajah-storefront/pkg/tracing"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var (
	ErrUnauthenticated = errors.New("sign in required")
	ErrInvalidInput    = errors.New("invalid input")
	ErrEmptyCart       = errors.New("cart is empty")
)

const (
	DeliveryTypeDelivery   = "delivery"
	DeliveryTypeCollection = "collection"
)

type Service struct {
	repo      OrderRepo
	carts     Carts
	quoter    Quoter
	publisher Publisher
	log       *slog.Logger
	tracer    trace.Tracer
	now       func() time.Time
}

func NewService(repo OrderRepo, carts Carts, quoter Quoter, publisher Publisher, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		repo:      repo,
		carts:     carts,
		quoter:    quoter,
		publisher: publisher,
		log:       log,
		tracer:    tracing.Tracer("order"),
		now:       time.Now,
	}
}

func validate(req *domain.PlaceOrderRequest) error {
	req.DeliveryType = strings.ToLower(strings.TrimSpace(req.DeliveryType))
	if req.DeliveryType == "" {
		req.DeliveryType = DeliveryTypeDelivery
	}

	c := req.Customer
	if strings.TrimSpace(c.Name) == "" || strings.TrimSpace(c.Email) == "" || strings.TrimSpace(c.Phone) == "" {
		return fmt.Errorf("%w: name, email and phone are required", ErrInvalidInput)
	}

	switch req.DeliveryType {
	case DeliveryTypeCollection:
		req.DeliveryAddress = nil
	case DeliveryTypeDelivery:
		a := req.DeliveryAddress
		if a == nil || strings.TrimSpace(a.Line1) == "" || strings.TrimSpace(a.City) == "" || strings.TrimSpace(a.Postcode) == "" {
			return fmt.Errorf("%w: delivery address needs line1, city and postcode", ErrInvalidInput)
		}
	default:
		return fmt.Errorf("%w: unknown delivery type %q", ErrInvalidInput, req.DeliveryType)
	}
	return nil
}

// PlaceOrder turns the user's cart into a pending order, stores it in the user's history,
// clears the cart and announces the order. Payment is not taken here.
func (s *Service) PlaceOrder(ctx context.Context, req domain.PlaceOrderRequest) (domain.Order, error) {
	if req.UserID == "" {
		return domain.Order{}, ErrUnauthenticated
	}
	if err := validate(&req); err != nil {
		return domain.Order{}, err
	}

	ctx, span := s.tracer.Start(ctx, "order.PlaceOrder", trace.WithAttributes(
		attribute.String("delivery_type", req.DeliveryType),
	))
	defer span.End()

	postcode := ""
	if req.DeliveryAddress != nil {
		postcode = req.DeliveryAddress.Postcode
	}

	// Pricing, storing and clearing all see one locked cart snapshot.
	var (
		order  domain.Order
		stored bool
	)
	err := s.carts.Checkout(ctx, req.UserID, func(items []domain.Item) error {
		if len(items) == 0 {
			return ErrEmptyCart
		}
		price, err := s.quoter.Quote(ctx, items, req.DeliveryType, postcode)
		if err != nil {
			return err
		}

		now := s.now()
		order = domain.Order{
			ID:                  uuid.NewString(),
			Number:              domain.Number(now),
			UserID:              req.UserID,
			Status:              domain.StatusPending,
			PaymentStatus:       domain.PaymentStatusPending,
			DeliveryType:        req.DeliveryType,
			Customer:            req.Customer,
			DeliveryAddress:     req.DeliveryAddress,
			SpecialInstructions: strings.TrimSpace(req.SpecialInstructions),
			Items:               items,
			Subtotal:            price.Subtotal,
			DeliveryFee:         price.DeliveryFee,
			Total:               price.Total,
			CreatedAt:           now.UTC(),
		}
		if err := s.repo.Append(ctx, order); err != nil {
			return fmt.Errorf("store order: %w", err)
		}
		stored = true
		return nil
	})
	switch {
	case err != nil && !stored:
		span.RecordError(err)
		return domain.Order{}, err
	case err != nil:
		s.log.ErrorContext(ctx, "clear cart after order",
			slog.String("order_number", order.Number),
			slog.Any("err", err),
		)
	}

	if err := s.publisher.Publish(ctx, order.Placed()); err != nil {
		s.log.ErrorContext(ctx, "publish order placed",
			slog.String("order_number", order.Number),
			slog.Any("err", err),
		)
	}

	s.log.InfoContext(ctx, "order placed",
		slog.String("order_number", order.Number),
		slog.String("user_id", order.UserID),
		slog.Float64("total", order.Total),
	)
	return order, nil
}

func (s *Service) History(ctx context.Context, userID string) ([]domain.Order, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	orders, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}
