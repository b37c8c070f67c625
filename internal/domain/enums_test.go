package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatusIsValid(t *testing.T) {
	for _, s := range []OrderStatus{
		OrderStatusPlaced, OrderStatusConfirmed, OrderStatusProcessing,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusReturned,
	} {
		assert.True(t, s.IsValid(), s)
	}
	assert.False(t, OrderStatus("cancelled").IsValid())
	assert.False(t, OrderStatus("").IsValid())
}

func TestOrderStatusCanTransitionTo(t *testing.T) {
	assert.True(t, OrderStatusPlaced.CanTransitionTo(OrderStatusConfirmed))
	assert.True(t, OrderStatusShipped.CanTransitionTo(OrderStatusDelivered))
	assert.True(t, OrderStatusDelivered.CanTransitionTo(OrderStatusReturned))
	assert.False(t, OrderStatusDelivered.CanTransitionTo(OrderStatusPlaced))
	assert.False(t, OrderStatusPlaced.CanTransitionTo(OrderStatusDelivered))
	assert.False(t, OrderStatusReturned.CanTransitionTo(OrderStatusShipped))
}

func TestPaymentStatusIsValid(t *testing.T) {
	assert.True(t, PaymentStatusPaid.IsValid())
	assert.False(t, PaymentStatus("refunded").IsValid())
}

func TestComputeTotalAndMinorUnits(t *testing.T) {
	items := []OrderItem{{Qty: 2, Price: 100}, {Qty: 3, Price: 19.99}}
	assert.Equal(t, 259.97, ComputeTotal(items))
	assert.Equal(t, int64(25997), ToMinorUnits(ComputeTotal(items)))
}

func TestSellingPriceAndAddress(t *testing.T) {
	p := &Product{MRPPrice: 999, Discount: 10}
	assert.Equal(t, 899.1, p.SellingPrice())

	a := Address{Line1: "12 MG Road", City: "Pune", State: "MH", Pincode: "411001"}
	assert.Equal(t, "12 MG Road, Pune, MH - 411001", a.Flatten())
}

func TestComputeTotal_RoundsToPaise(t *testing.T) {
	// 0.1 * 3 is 0.30000000000000004 in float64
	items := []OrderItem{{Price: 0.1, Qty: 3}}
	assert.Equal(t, 0.3, ComputeTotal(items))
	assert.Equal(t, int64(30), ToMinorUnits(ComputeTotal(items)))
}

func TestProductCustomizationRules(t *testing.T) {
	plain := &Product{Subcategory: "Lamps"}
	assert.False(t, plain.RequiresCustomization())
	assert.Empty(t, plain.MissingCustomizationField(nil))

	named := &Product{Subcategory: SubcategoryCustomizedName}
	assert.True(t, named.RequiresCustomization())
	assert.Equal(t, "customization.name", named.MissingCustomizationField(nil))
	assert.Equal(t, "customization.name", named.MissingCustomizationField(&Customization{Name: "  "}))
	assert.Empty(t, named.MissingCustomizationField(&Customization{Name: "Meera"}))

	photo := &Product{Subcategory: SubcategoryCustomizedPhoto}
	assert.Equal(t, "customization.photoUrl", photo.MissingCustomizationField(&Customization{Name: "x"}))
	assert.Empty(t, photo.MissingCustomizationField(&Customization{PhotoURL: "https://cdn/p.jpg"}))
}
