// Package orderapi is the HTTP client for the upstream order service,
// which owns all persisted orders. Every call is bearer-token
// authenticated.
package orderapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"kleanly/internal/domain"
)

// Client talks to the order service. Safe for concurrent use.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *log.Logger
}

func New(baseURL, token string, logger *log.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     logger,
	}
}

// CreateOrderRequest is the wire shape for POST /orders/.
type CreateOrderRequest struct {
	Category   string   `json:"category"`
	Items      []string `json:"items"`
	Total      int64    `json:"total"`
	Address    string   `json:"address"`
	PickupTime string   `json:"pickupTime"`
	Notes      string   `json:"notes"`
	Status     string   `json:"status"`
	UserID     string   `json:"user_id"`
}

type createOrderResponse struct {
	OrderID string `json:"order_id"`
}

// wireOrder is the upstream order representation.
type wireOrder struct {
	ID         string   `json:"id"`
	UserID     string   `json:"user_id"`
	Category   string   `json:"category"`
	Address    string   `json:"address"`
	Status     string   `json:"status"`
	CreatedAt  string   `json:"createdAt"`
	Items      []string `json:"items"`
	Total      int64    `json:"total"`
	PickupTime string   `json:"pickupTime"`
	Notes      string   `json:"notes"`
}

// CreateOrder submits a new order and returns its id.
func (c *Client) CreateOrder(ctx context.Context, req CreateOrderRequest) (string, error) {
	var resp createOrderResponse
	if err := c.do(ctx, http.MethodPost, "/orders/", req, &resp); err != nil {
		return "", err
	}
	if resp.OrderID == "" {
		return "", fmt.Errorf("order service returned no order_id")
	}
	return resp.OrderID, nil
}

// ListUserOrders fetches the authoritative order list for a user.
func (c *Client) ListUserOrders(ctx context.Context, userID string) ([]domain.Order, error) {
	var wire []wireOrder
	path := "/orders/user/" + url.PathEscape(userID)
	if err := c.do(ctx, http.MethodGet, path, nil, &wire); err != nil {
		return nil, err
	}

	orders := make([]domain.Order, 0, len(wire))
	for _, w := range wire {
		orders = append(orders, w.toDomain())
	}
	return orders, nil
}

// UpdateStatus patches a single order's status.
func (c *Client) UpdateStatus(ctx context.Context, orderID string, status domain.OrderStatus) error {
	path := "/orders/" + url.PathEscape(orderID) + "/status"
	body := map[string]string{"status": string(status)}
	return c.do(ctx, http.MethodPatch, path, body, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rd io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		rd = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Printf("order api %s %s: status %d: %s", method, path, resp.StatusCode, snippet)
		return fmt.Errorf("%s %s: unexpected status %d", method, path, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (w wireOrder) toDomain() domain.Order {
	createdAt, err := time.Parse(time.RFC3339, w.CreatedAt)
	if err != nil {
		createdAt = time.Time{}
	}
	return domain.Order{
		ID:         w.ID,
		UserID:     w.UserID,
		Category:   domain.Category(w.Category),
		Items:      w.Items,
		Total:      w.Total,
		Address:    w.Address,
		PickupTime: w.PickupTime,
		Notes:      w.Notes,
		Status:     domain.OrderStatus(w.Status),
		CreatedAt:  createdAt,
	}
}
