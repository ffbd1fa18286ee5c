// Package checkout validates a cart checkout, runs the payment flow,
// and submits the resulting order upstream exactly once.
package checkout

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"kleanly/internal/domain"
	"kleanly/internal/orderapi"
	"kleanly/internal/payment"
	"kleanly/internal/redisx"
)

// PickupPlaceholder is shown until real slot scheduling exists.
const PickupPlaceholder = "Tomorrow, 9:00 AM - 5:00 PM"

type cartStore interface {
	Get(sessionID string, typ domain.OrderType) domain.Cart
	Clear(sessionID string, typ domain.OrderType)
}

type orderCreator interface {
	CreateOrder(ctx context.Context, req orderapi.CreateOrderRequest) (string, error)
}

type notifier interface {
	Send(ctx context.Context, note domain.Notification)
}

// Service orchestrates the checkout. Each attempt carries a UUID
// idempotency token reserved in redis before submission, so a rapid
// double-tap cannot create two orders.
type Service struct {
	carts    cartStore
	flows    *payment.Registry
	orders   orderCreator
	rdb      *redis.Client
	notifier notifier
	logger   *log.Logger
}

func New(carts cartStore, flows *payment.Registry, orders orderCreator, rdb *redis.Client, notifier notifier, logger *log.Logger) *Service {
	return &Service{
		carts:    carts,
		flows:    flows,
		orders:   orders,
		rdb:      rdb,
		notifier: notifier,
		logger:   logger,
	}
}

// Input identifies the cart being checked out and the delivery details.
type Input struct {
	SessionID string
	UserID    string
	OrderType domain.OrderType
	Category  domain.Category
	Address   string
	Phone     string
}

// Checkout validates the input in priority order (cart, address,
// phone; first failure wins) and opens a payment flow carrying the
// cart total. Nothing is submitted upstream until the flow completes.
func (s *Service) Checkout(in Input) (*payment.Flow, error) {
	if !in.OrderType.Valid() {
		in.OrderType = domain.OrderTypePerItem
	}

	c := s.carts.Get(in.SessionID, in.OrderType)
	if c.Empty() {
		return nil, &domain.ValidationError{Field: "cart", Message: "add items to your cart before proceeding"}
	}
	if strings.TrimSpace(in.Address) == "" {
		return nil, &domain.ValidationError{Field: "address", Message: "enter your delivery address"}
	}
	if strings.TrimSpace(in.Phone) == "" {
		return nil, &domain.ValidationError{Field: "phone", Message: "enter your phone number"}
	}

	// One token per checkout attempt; retries after a submission
	// failure reuse it so the upstream sees at most one order.
	token := uuid.NewString()

	flow := s.flows.Create(c.Total(), func(method payment.Method, details payment.Details) error {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return s.finalize(ctx, in, token, method, details)
	})
	return flow, nil
}

// finalize builds the Order from the live cart, submits it, clears the
// cart and fires the confirmation notification. On upstream failure
// the cart and form state survive so retry needs no re-entry.
func (s *Service) finalize(ctx context.Context, in Input, token string, method payment.Method, details payment.Details) error {
	c := s.carts.Get(in.SessionID, in.OrderType)
	if c.Empty() {
		// Already finalized by an earlier attempt.
		return nil
	}

	reserved, err := s.reserve(ctx, token)
	if err != nil {
		s.logger.Printf("checkout: idempotency reserve: %v", err)
	} else if !reserved {
		s.logger.Printf("checkout: token %s already submitted, skipping duplicate", token)
		s.carts.Clear(in.SessionID, in.OrderType)
		return nil
	}

	items := make([]string, 0, len(c.Lines))
	for _, l := range c.Lines {
		items = append(items, fmt.Sprintf("%s (x%d)", l.Name, l.Quantity))
	}

	isPaid := method != payment.MethodCash
	notes := fmt.Sprintf("Order Type: %s, Phone: %s, Payment: %s, Paid: %t", in.OrderType, in.Phone, method, isPaid)
	if details.TransactionID != "" {
		notes += ", Ref: " + details.TransactionID
	}

	orderID, err := s.orders.CreateOrder(ctx, orderapi.CreateOrderRequest{
		Category:   string(in.Category),
		Items:      items,
		Total:      c.Total(),
		Address:    strings.TrimSpace(in.Address),
		PickupTime: PickupPlaceholder,
		Notes:      notes,
		Status:     string(domain.StatusPending),
		UserID:     in.UserID,
	})
	if err != nil {
		s.release(ctx, token)
		return &domain.SubmissionError{Err: err}
	}

	s.record(ctx, token, orderID)
	s.carts.Clear(in.SessionID, in.OrderType)

	s.notifier.Send(ctx, domain.Notification{
		OrderID: orderID,
		Type:    "order_confirmed",
		Title:   "Order Confirmed!",
		Body:    fmt.Sprintf("Your %s order has been confirmed. We'll pick up your items tomorrow.", in.Category),
	})
	return nil
}

func (s *Service) reserve(ctx context.Context, token string) (bool, error) {
	if s.rdb == nil {
		return true, nil
	}
	key := fmt.Sprintf(redisx.KeyCheckoutIdem, token)
	return s.rdb.SetNX(ctx, key, "pending", redisx.TTLIdempotency).Result()
}

func (s *Service) release(ctx context.Context, token string) {
	if s.rdb == nil {
		return
	}
	key := fmt.Sprintf(redisx.KeyCheckoutIdem, token)
	if err := s.rdb.Del(ctx, key).Err(); err != nil {
		s.logger.Printf("checkout: idempotency release: %v", err)
	}
}

func (s *Service) record(ctx context.Context, token, orderID string) {
	if s.rdb == nil {
		return
	}
	key := fmt.Sprintf(redisx.KeyCheckoutIdem, token)
	if err := s.rdb.Set(ctx, key, orderID, redisx.TTLIdempotency).Err(); err != nil {
		s.logger.Printf("checkout: idempotency record: %v", err)
	}
}
