package validation

import (
	"fmt"
	"math"

	validatorv10 "github.com/go-playground/validator/v10"
)

// New returns a validator with the checkout struct-level rules registered
func New() *validatorv10.Validate {
	v := validatorv10.New()

	v.RegisterStructValidation(gatewayOrderStructValidation, GatewayOrderRequest{})
	v.RegisterStructValidation(updateStatusStructValidation, UpdateOrderStatusRequest{})

	return v
}

// Subtotal folds price x qty over the items
func Subtotal(items []Item) float64 {
	var sum float64
	for _, it := range items {
		sum += float64(it.Qty) * it.Price
	}
	return sum
}

// gatewayOrderStructValidation verifies the requested amount is the item subtotal in paise
func gatewayOrderStructValidation(sl validatorv10.StructLevel) {
	req := sl.Current().Interface().(GatewayOrderRequest)

	sum := Subtotal(req.Items)
	if int64(math.Round(sum*100)) != req.Amount {
		sl.ReportError(req.Amount, "amount", "Amount", "amount_match_items",
			fmt.Sprintf("items sum %.2f != amount %d paise", sum, req.Amount))
	}
}

func updateStatusStructValidation(sl validatorv10.StructLevel) {
	req := sl.Current().Interface().(UpdateOrderStatusRequest)

	if req.OrderStatus == nil && req.PaymentStatus == nil {
		sl.ReportError(req.OrderStatus, "orderStatus", "OrderStatus", "required_without", "")
	}
	if req.OrderStatus != nil && !req.OrderStatus.IsValid() {
		sl.ReportError(*req.OrderStatus, "orderStatus", "OrderStatus", "oneof", "")
	}
	if req.PaymentStatus != nil && !req.PaymentStatus.IsValid() {
		sl.ReportError(*req.PaymentStatus, "paymentStatus", "PaymentStatus", "oneof", "")
	}
}
