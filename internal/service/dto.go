package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/yangart/storefront/internal/domain"
)

// unavailableProductName is rendered for order lines whose product was deleted
const unavailableProductName = "Product no longer available"

// GatewayOrderHandle is returned to the storefront to open the checkout widget
type GatewayOrderHandle struct {
	OrderID  string `json:"orderId"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

// ProductRef is the populated product reference on an order line
type ProductRef struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	MainImage string    `json:"mainImage,omitempty"`
	Available bool      `json:"available"`
}

type OrderItemView struct {
	Product       ProductRef            `json:"product"`
	Colour        string                `json:"colour,omitempty"`
	Qty           int                   `json:"qty"`
	Price         float64               `json:"price"`
	Customization *domain.Customization `json:"customization,omitempty"`
}

// OrderView is an order with its item product references populated
type OrderView struct {
	ID               uuid.UUID            `json:"id"`
	CustomerName     string               `json:"customerName"`
	CustomerPhone    string               `json:"customerPhone"`
	ShippingAddress  string               `json:"shippingAddress"`
	Items            []OrderItemView      `json:"items"`
	TotalPrice       float64              `json:"totalPrice"`
	CouponApplied    *string              `json:"couponApplied,omitempty"`
	GatewayOrderID   string               `json:"razorpayOrderId"`
	GatewayPaymentID string               `json:"razorpayPaymentId"`
	PaymentStatus    domain.PaymentStatus `json:"paymentStatus"`
	OrderStatus      domain.OrderStatus   `json:"orderStatus"`
	CreatedAt        time.Time            `json:"createdAt"`
	UpdatedAt        time.Time            `json:"updatedAt"`
}

// NewOrderView renders o against a catalog lookup. With a nil catalog the
// lines are rendered from their snapshotted names.
func NewOrderView(o *domain.Order, catalog map[uuid.UUID]*domain.Product) OrderView {
	items := make([]OrderItemView, len(o.Items))
	for i, item := range o.Items {
		var ref ProductRef
		if catalog == nil {
			ref = ProductRef{ID: item.ProductID, Name: item.Name, Available: true}
		} else {
			ref = productRef(item.ProductID, catalog[item.ProductID])
		}
		items[i] = OrderItemView{
			Product:       ref,
			Colour:        item.Colour,
			Qty:           item.Qty,
			Price:         item.Price,
			Customization: item.Customization,
		}
	}
	return OrderView{
		ID:               o.ID,
		CustomerName:     o.CustomerName,
		CustomerPhone:    o.CustomerPhone,
		ShippingAddress:  o.ShippingAddress,
		Items:            items,
		TotalPrice:       o.TotalPrice,
		CouponApplied:    o.CouponApplied,
		GatewayOrderID:   o.GatewayOrderID,
		GatewayPaymentID: o.GatewayPaymentID,
		PaymentStatus:    o.PaymentStatus,
		OrderStatus:      o.OrderStatus,
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
	}
}

func productRef(id uuid.UUID, p *domain.Product) ProductRef {
	if p == nil {
		return ProductRef{ID: id, Name: unavailableProductName}
	}
	return ProductRef{ID: id, Name: p.Name, MainImage: p.MainImage, Available: true}
}

// ProductView is the public catalog shape
type ProductView struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	MainImage       string    `json:"mainImage"`
	AdditionalMedia []string  `json:"additionalMedia"`
	Category        string    `json:"category"`
	Subcategory     string    `json:"subcategory,omitempty"`
	Description     string    `json:"description,omitempty"`
	MRPPrice        float64   `json:"mrpPrice"`
	Discount        float64   `json:"discount"`
	SellingPrice    float64   `json:"sellingPrice"`
	ProductOfWeek   bool      `json:"productOfWeek"`
	Featured        bool      `json:"featured"`
	Colours         []string  `json:"colours"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func NewProductView(p *domain.Product) ProductView {
	media := p.AdditionalMedia
	if media == nil {
		media = []string{}
	}
	colours := p.Colours
	if colours == nil {
		colours = []string{}
	}
	return ProductView{
		ID:              p.ID,
		Name:            p.Name,
		MainImage:       p.MainImage,
		AdditionalMedia: media,
		Category:        p.Category,
		Subcategory:     p.Subcategory,
		Description:     p.Description,
		MRPPrice:        p.MRPPrice,
		Discount:        p.Discount,
		SellingPrice:    p.SellingPrice(),
		ProductOfWeek:   p.ProductOfWeek,
		Featured:        p.Featured,
		Colours:         colours,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

// OfferView is the admin-facing offer shape
type OfferView struct {
	ID              uuid.UUID `json:"id"`
	CouponName      string    `json:"couponName"`
	Discount        float64   `json:"discount"`
	MinimumPurchase float64   `json:"minimumPurchase"`
	Active          bool      `json:"active"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func NewOfferView(o *domain.Offer) OfferView {
	return OfferView{
		ID:              o.ID,
		CouponName:      o.CouponName,
		Discount:        o.Discount,
		MinimumPurchase: o.MinimumPurchase,
		Active:          o.Active,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

// CustomerView omits the password hash
type CustomerView struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Phone string    `json:"phone"`
}

// AuthResult is returned by register and login
type AuthResult struct {
	Token    string        `json:"token"`
	Customer *CustomerView `json:"user,omitempty"`
}

// TopProduct is an analytics row
type TopProduct struct {
	Product     ProductRef `json:"product"`
	TotalOrders int        `json:"totalOrders"`
}
