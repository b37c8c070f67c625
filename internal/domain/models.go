package domain

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Customer represents a storefront shopper
type Customer struct {
	ID           uuid.UUID
	Name         string
	Phone        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Admin represents a management panel user
type Admin struct {
	ID           uuid.UUID
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Principal is the authenticated caller of a request
type Principal struct {
	ID    uuid.UUID
	Kind  PrincipalKind
	Name  string
	Phone string
}

// Product represents a catalog entry
type Product struct {
	ID              uuid.UUID
	Name            string
	MainImage       string
	AdditionalMedia []string
	Category        string
	Subcategory     string
	Description     string
	MRPPrice        float64
	Discount        float64 // percent
	ProductOfWeek   bool
	Featured        bool
	Colours         []string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// SellingPrice is the discount-applied unit price, rounded to paise
func (p *Product) SellingPrice() float64 {
	price := p.MRPPrice * (1 - p.Discount/100)
	return math.Round(price*100) / 100
}

// Subcategories whose lines are personalised by the buyer
const (
	SubcategoryCustomizedName  = "Customized Name"
	SubcategoryCustomizedPhoto = "Customized Photo"
)

// RequiresCustomization reports whether order lines of this product carry a Customization
func (p *Product) RequiresCustomization() bool {
	return p.Subcategory == SubcategoryCustomizedName || p.Subcategory == SubcategoryCustomizedPhoto
}

// MissingCustomizationField names the field a line of this product still needs,
// or returns "" when c is acceptable.
func (p *Product) MissingCustomizationField(c *Customization) string {
	switch p.Subcategory {
	case SubcategoryCustomizedName:
		if c == nil || strings.TrimSpace(c.Name) == "" {
			return "customization.name"
		}
	case SubcategoryCustomizedPhoto:
		if c == nil || strings.TrimSpace(c.PhotoURL) == "" {
			return "customization.photoUrl"
		}
	}
	return ""
}

// ProductFilter selects catalog entries; nil fields are ignored
type ProductFilter struct {
	Category      *string
	ProductOfWeek *bool
	Featured      *bool
}

// Customization is attached to a line item when the product's subcategory needs it
type Customization struct {
	Name        string `json:"name,omitempty"`
	PhotoURL    string `json:"photoUrl,omitempty"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
	Subcategory string `json:"subcategory,omitempty"`
}

// OrderItem is a line of a persisted order. Price is snapshotted at order time.
type OrderItem struct {
	ProductID     uuid.UUID      `json:"product"`
	Name          string         `json:"name,omitempty"`
	Colour        string         `json:"colour,omitempty"`
	Qty           int            `json:"qty"`
	Price         float64        `json:"price"`
	Customization *Customization `json:"customization,omitempty"`
}

// Order represents a payment-verified customer order
type Order struct {
	ID               uuid.UUID
	CustomerID       uuid.UUID
	CustomerName     string
	CustomerPhone    string
	ShippingAddress  string
	Items            []OrderItem
	TotalPrice       float64
	CouponApplied    *string
	GatewayOrderID   string
	GatewayPaymentID string
	PaymentStatus    PaymentStatus
	OrderStatus      OrderStatus
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ComputeTotal folds price x qty over the items. The sum is rounded to paise
// so that ToMinorUnits(total) matches the amount charged by the gateway.
func ComputeTotal(items []OrderItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Price * float64(item.Qty)
	}
	return math.Round(total*100) / 100
}

// ToMinorUnits converts a rupee amount to paise
func ToMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// Address is the structured shipping address collected at checkout
type Address struct {
	Line1   string
	City    string
	State   string
	Pincode string
}

// Flatten renders the address in the single-line form stored on orders
func (a Address) Flatten() string {
	return fmt.Sprintf("%s, %s, %s - %s", a.Line1, a.City, a.State, a.Pincode)
}

// Offer is a named discount rule
type Offer struct {
	ID              uuid.UUID
	CouponName      string
	Discount        float64
	MinimumPurchase float64
	Active          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
