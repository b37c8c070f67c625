package cart

import (
	"math"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yangart/storefront/internal/domain"
)

// LineItem is one cart line. Identity is (ProductID, Colour).
type LineItem struct {
	ProductID     uuid.UUID             `json:"productId"`
	Name          string                `json:"name"`
	Price         float64               `json:"price"` // post-discount unit price
	Qty           int                   `json:"qty"`
	Colour        string                `json:"colour"`
	Image         string                `json:"image,omitempty"`
	Customization *domain.Customization `json:"customization,omitempty"`
}

func (l LineItem) matches(productID uuid.UUID, colour string) bool {
	return l.ProductID == productID && l.Colour == colour
}

// Store persists a cart's lines under a session key
type Store interface {
	Load(key string) ([]LineItem, error)
	Save(key string, items []LineItem) error
}

// Cart is the aggregate for a single session. It is not safe for
// concurrent use; each session has one writer.
type Cart struct {
	key    string
	items  []LineItem
	store  Store
	logger *zap.Logger
}

// Load restores the cart for key. A store failure yields an empty cart.
func Load(key string, store Store, logger *zap.Logger) *Cart {
	c := &Cart{key: key, store: store, logger: logger}
	items, err := store.Load(key)
	if err != nil {
		logger.Warn("Failed to restore cart, starting empty",
			zap.String("cart", key),
			zap.Error(err),
		)
		return c
	}
	c.items = items
	return c
}

// AddItem merges into an existing (product, colour) line or appends a new one
func (c *Cart) AddItem(item LineItem) {
	if item.Qty < 1 {
		item.Qty = 1
	}
	for i := range c.items {
		if c.items[i].matches(item.ProductID, item.Colour) {
			c.items[i].Qty += item.Qty
			c.persist()
			return
		}
	}
	c.items = append(c.items, item)
	c.persist()
}

// UpdateQuantity sets the quantity of a line, clamped to a minimum of 1.
// It never removes a line.
func (c *Cart) UpdateQuantity(productID uuid.UUID, colour string, qty int) {
	if qty < 1 {
		qty = 1
	}
	for i := range c.items {
		if c.items[i].matches(productID, colour) {
			c.items[i].Qty = qty
		}
	}
	c.persist()
}

// RemoveItem deletes the matching line; no-op if absent
func (c *Cart) RemoveItem(productID uuid.UUID, colour string) {
	kept := c.items[:0]
	for _, item := range c.items {
		if !item.matches(productID, colour) {
			kept = append(kept, item)
		}
	}
	c.items = kept
	c.persist()
}

// Clear empties the cart
func (c *Cart) Clear() {
	c.items = nil
	c.persist()
}

// Items returns a copy of the current lines
func (c *Cart) Items() []LineItem {
	out := make([]LineItem, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of distinct lines
func (c *Cart) Len() int {
	return len(c.items)
}

// Subtotal is recomputed on every call and rounded to paise, the same as
// domain.ComputeTotal, so a checkout amount of round(subtotal*100) agrees with it.
func (c *Cart) Subtotal() float64 {
	var sum float64
	for _, item := range c.items {
		sum += item.Price * float64(item.Qty)
	}
	return math.Round(sum*100) / 100
}

// OrderItems snapshots the lines into order items
func (c *Cart) OrderItems() []domain.OrderItem {
	out := make([]domain.OrderItem, 0, len(c.items))
	for _, item := range c.items {
		out = append(out, domain.OrderItem{
			ProductID:     item.ProductID,
			Name:          item.Name,
			Colour:        item.Colour,
			Qty:           item.Qty,
			Price:         item.Price,
			Customization: item.Customization,
		})
	}
	return out
}

func (c *Cart) persist() {
	if err := c.store.Save(c.key, c.Items()); err != nil {
		// cart durability is best-effort
		c.logger.Warn("Failed to persist cart",
			zap.String("cart", c.key),
			zap.Error(err),
		)
	}
}
