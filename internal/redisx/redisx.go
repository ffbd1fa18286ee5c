// Package redisx holds the redis client constructor and the key
// conventions shared across the service. Redis is optional: callers
// must tolerate a nil client.
package redisx

import (
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// Checkout idempotency reservation: idem:checkout:{token} -> order id or "pending".
	KeyCheckoutIdem = "idem:checkout:%s"

	// Order status mirror: order_status:{order_id} -> status string.
	KeyOrderStatus = "order_status:%s"
)

var (
	TTLIdempotency = 24 * time.Hour
	TTLStatusCache = 5 * time.Minute
)

// New opens a client, or returns nil when no address is configured.
func New(addr string) *redis.Client {
	if addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{Addr: addr})
}
