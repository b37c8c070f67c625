package razorpay

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// Order is a gateway-side order handle
type Order struct {
	ID         string            `json:"id"`
	Entity     string            `json:"entity"`
	Amount     int64             `json:"amount"`
	AmountPaid int64             `json:"amount_paid"`
	AmountDue  int64             `json:"amount_due"`
	Currency   string            `json:"currency"`
	Receipt    string            `json:"receipt"`
	Status     string            `json:"status"`
	Attempts   int               `json:"attempts"`
	Notes      map[string]string `json:"notes,omitempty"`
	CreatedAt  int64             `json:"created_at"`
}

type createOrderRequest struct {
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Notes    map[string]string `json:"notes,omitempty"`
}

// CreateOrder opens a gateway order for amount minor units in the configured currency
func (c *Client) CreateOrder(ctx context.Context, amount int64, receipt string, notes map[string]string) (*Order, error) {
	var order Order
	err := c.do(ctx, "POST", "/orders", createOrderRequest{
		Amount:   amount,
		Currency: c.currency,
		Receipt:  receipt,
		Notes:    notes,
	}, &order)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// FetchOrder returns a single gateway order
func (c *Client) FetchOrder(ctx context.Context, id string) (*Order, error) {
	var order Order
	if err := c.do(ctx, "GET", "/orders/"+url.PathEscape(id), nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// OrderList is one page of gateway orders, newest first
type OrderList struct {
	Entity string  `json:"entity"`
	Count  int     `json:"count"`
	Items  []Order `json:"items"`
}

// ListOrders pages through gateway orders. count is capped at 100 by the gateway.
func (c *Client) ListOrders(ctx context.Context, count, skip int) (*OrderList, error) {
	if count <= 0 || count > 100 {
		return nil, fmt.Errorf("count must be between 1 and 100, got %d", count)
	}
	q := url.Values{}
	q.Set("count", strconv.Itoa(count))
	q.Set("skip", strconv.Itoa(skip))

	var list OrderList
	if err := c.do(ctx, "GET", "/orders?"+q.Encode(), nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}
