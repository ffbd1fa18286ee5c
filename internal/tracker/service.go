// Package tracker maintains the user-visible view of orders: a cached
// copy of the upstream list, the 4-step progress timeline, and the
// delivery estimate.
package tracker

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"kleanly/internal/domain"
	"kleanly/internal/redisx"
)

type orderLister interface {
	ListUserOrders(ctx context.Context, userID string) ([]domain.Order, error)
}

// Service caches the fetched order list. Refresh replaces the cache
// wholesale; there is no incremental merge, the last fetch wins.
type Service struct {
	client orderLister
	rdb    *redis.Client
	logger *log.Logger

	mu    sync.RWMutex
	cache []domain.Order
}

func New(client orderLister, rdb *redis.Client, logger *log.Logger) *Service {
	return &Service{client: client, rdb: rdb, logger: logger}
}

// Refresh re-fetches the authoritative list. On failure the stale
// cache stays in place and a FetchError is returned.
func (s *Service) Refresh(ctx context.Context, userID string) error {
	orders, err := s.client.ListUserOrders(ctx, userID)
	if err != nil {
		return &domain.FetchError{Err: err}
	}

	s.mu.Lock()
	s.cache = orders
	s.mu.Unlock()

	s.mirrorStatuses(ctx, orders)
	return nil
}

// mirrorStatuses writes each order's status into the shared redis
// cache with a short TTL. Best effort.
func (s *Service) mirrorStatuses(ctx context.Context, orders []domain.Order) {
	if s.rdb == nil {
		return
	}
	for _, o := range orders {
		key := fmt.Sprintf(redisx.KeyOrderStatus, o.ID)
		if err := s.rdb.Set(ctx, key, string(o.Status), redisx.TTLStatusCache).Err(); err != nil {
			s.logger.Printf("tracker: cache status for %s: %v", o.ID, err)
			return
		}
	}
}

// Orders returns a copy of the cached list.
func (s *Service) Orders() []domain.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Order, len(s.cache))
	copy(out, s.cache)
	return out
}

// Search matches the query against the full order id (case-insensitive
// substring) or the last-6-character short id, returning the first hit.
func (s *Service) Search(query string) (*domain.Order, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return nil, &domain.ValidationError{Field: "query", Message: "enter an order id to track"}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	lower := strings.ToLower(q)
	for _, o := range s.cache {
		if strings.Contains(strings.ToLower(o.ID), lower) || strings.EqualFold(o.ShortID(), q) {
			found := o
			return &found, nil
		}
	}
	return nil, domain.ErrNotFound
}

// StatusStep is one entry of the progress timeline.
type StatusStep struct {
	Key         domain.OrderStatus `json:"key"`
	Label       string             `json:"label"`
	Description string             `json:"description"`
	Active      bool               `json:"active"`
	Current     bool               `json:"current"`
}

var stepText = map[domain.OrderStatus][2]string{
	domain.StatusPending:    {"Order Placed", "Your order has been received and is being reviewed"},
	domain.StatusConfirmed:  {"Confirmed", "Order confirmed and pickup scheduled"},
	domain.StatusInProgress: {"In Progress", "Your items are being cleaned and processed"},
	domain.StatusCompleted:  {"Ready", "Items ready for delivery or pickup"},
}

// StatusSteps maps a status onto the ordered 4-step timeline. Steps up
// to and including the current status are active. A cancelled order
// matches no step, so every step comes back inactive.
func StatusSteps(status domain.OrderStatus) []StatusStep {
	currentIdx := -1
	for i, s := range domain.TimelineStatuses {
		if s == status {
			currentIdx = i
		}
	}

	steps := make([]StatusStep, 0, len(domain.TimelineStatuses))
	for i, s := range domain.TimelineStatuses {
		text := stepText[s]
		steps = append(steps, StatusStep{
			Key:         s,
			Label:       text[0],
			Description: text[1],
			Active:      currentIdx >= 0 && i <= currentIdx,
			Current:     currentIdx >= 0 && s == status,
		})
	}
	return steps
}

// EstimatedDelivery is createdAt plus two days, or three for dry
// cleaning. Pure function of the order.
func EstimatedDelivery(o domain.Order) time.Time {
	days := 2
	if o.Category == domain.CategoryDryCleaning {
		days = 3
	}
	return o.CreatedAt.AddDate(0, 0, days)
}
