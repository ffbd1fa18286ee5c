package domain

import (
	"strings"
	"time"
)

// OrderStatus is owned by the upstream order service; the client side
// only echoes it. `cancelled` sits outside the 4-step timeline.
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusConfirmed  OrderStatus = "confirmed"
	StatusInProgress OrderStatus = "in-progress"
	StatusCompleted  OrderStatus = "completed"
	StatusCancelled  OrderStatus = "cancelled"
)

// TimelineStatuses is the ordered progress timeline shown to the user.
var TimelineStatuses = []OrderStatus{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
	StatusCompleted,
}

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Order is created once at checkout and owned thereafter by the upstream
// order service; this copy is a read-only cache for display.
type Order struct {
	ID            string      `json:"id"`
	UserID        string      `json:"userId"`
	Category      Category    `json:"category"`
	Items         []string    `json:"items"`
	Total         int64       `json:"total"`
	Address       string      `json:"address"`
	Phone         string      `json:"phone"`
	PickupTime    string      `json:"pickupTime"`
	Notes         string      `json:"notes,omitempty"`
	PaymentMethod string      `json:"paymentMethod"`
	Status        OrderStatus `json:"status"`
	IsPaid        bool        `json:"isPaid"`
	CreatedAt     time.Time   `json:"createdAt"`
}

// ShortID is the last six characters of the id, uppercased, the form
// printed on receipts and accepted by order search.
func (o Order) ShortID() string {
	id := o.ID
	if len(id) > 6 {
		id = id[len(id)-6:]
	}
	return strings.ToUpper(id)
}

// Notification is the fire-and-forget payload handed to the platform
// notification pipeline.
type Notification struct {
	OrderID string `json:"orderId"`
	Type    string `json:"type"`
	Title   string `json:"title"`
	Body    string `json:"body"`
}
