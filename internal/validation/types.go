package validation

import (
	"github.com/yangart/storefront/internal/domain"
)

// Item is a checkout line as submitted by the storefront
type Item struct {
	ProductID     string                `json:"productId" validate:"required,uuid"`
	Name          string                `json:"name"`
	Qty           int                   `json:"qty" validate:"required,min=1"`
	Price         float64               `json:"price" validate:"gte=0"` // post-discount unit price
	Colour        string                `json:"colour"`
	Customization *domain.Customization `json:"customization,omitempty"`
}

// Address is the structured shipping address
type Address struct {
	Line1   string `json:"line1" validate:"required"`
	City    string `json:"city" validate:"required"`
	State   string `json:"state" validate:"required"`
	Pincode string `json:"pincode" validate:"required,numeric,len=6"`
}

// GatewayOrderRequest is the payload for POST /orders/razorpay.
// Amount is in paise and must equal the item subtotal.
type GatewayOrderRequest struct {
	Amount  int64   `json:"amount" validate:"required,gt=0"`
	Items   []Item  `json:"items" validate:"required,min=1,dive"`
	Address Address `json:"address"`
}

// ConfirmPaymentRequest is the payload for POST /orders/confirm
type ConfirmPaymentRequest struct {
	PaymentID      string  `json:"razorpayPaymentId" validate:"required"`
	GatewayOrderID string  `json:"razorpayOrderId" validate:"required"`
	Signature      string  `json:"razorpaySignature" validate:"required"`
	Items          []Item  `json:"items" validate:"required,min=1,dive"`
	Address        Address `json:"address"`
	CouponApplied  *string `json:"couponApplied,omitempty"`
}

// UpdateOrderStatusRequest is the payload for PUT /orders/:id/status
type UpdateOrderStatusRequest struct {
	OrderStatus   *domain.OrderStatus   `json:"orderStatus,omitempty"`
	PaymentStatus *domain.PaymentStatus `json:"paymentStatus,omitempty"`
}

// CartItemRequest adds or updates a line in the server-side cart
type CartItemRequest struct {
	ProductID     string                `json:"productId" validate:"required,uuid"`
	Colour        string                `json:"colour"`
	Qty           int                   `json:"qty"`
	Customization *domain.Customization `json:"customization,omitempty"`
}

// RegisterRequest is the payload for POST /users/register
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Phone    string `json:"phone" validate:"required,numeric,min=10,max=13"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest is the payload for POST /users/login
type LoginRequest struct {
	Phone    string `json:"phone" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// CheckPhoneRequest is the payload for POST /users/check-phone
type CheckPhoneRequest struct {
	Phone string `json:"phone" validate:"required"`
}

// AdminLoginRequest is the payload for POST /admin/login
type AdminLoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ProductRequest creates or replaces a catalog entry
type ProductRequest struct {
	Name            string   `json:"name" validate:"required"`
	MainImage       string   `json:"mainImage" validate:"required"`
	AdditionalMedia []string `json:"additionalMedia" validate:"max=5"`
	Category        string   `json:"category" validate:"required"`
	Subcategory     string   `json:"subcategory"`
	Description     string   `json:"description"`
	MRPPrice        float64  `json:"mrpPrice" validate:"required,gt=0"`
	Discount        float64  `json:"discount" validate:"gte=0,lte=100"`
	ProductOfWeek   bool     `json:"productOfWeek"`
	Featured        bool     `json:"featured"`
	Colours         []string `json:"colours"`
}

// OfferRequest creates an offer; on update, nil fields are left unchanged
type OfferRequest struct {
	CouponName      *string  `json:"couponName" validate:"omitempty,min=1"`
	Discount        *float64 `json:"discount" validate:"omitempty,gte=0"`
	MinimumPurchase *float64 `json:"minimumPurchase" validate:"omitempty,gte=0"`
	Active          *bool    `json:"active"`
}
