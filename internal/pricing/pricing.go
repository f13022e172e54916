// Package pricing computes booking totals in the smallest currency unit.
package pricing

import (
	"math"

	"github.com/trailhuf/experiences-api/internal/domain"
)

// TaxRate is applied to the subtotal before discounts.
const TaxRate = 0.06

// Subtotal returns unitPrice * quantity.
func Subtotal(unitPrice int64, quantity int) (int64, error) {
	if unitPrice < 0 {
		return 0, domain.ErrInvalidUnitPrice
	}
	if quantity < 1 {
		return 0, domain.ErrInvalidQuantity
	}
	return unitPrice * int64(quantity), nil
}

// Taxes returns the tax amount on a subtotal, rounded half up.
func Taxes(subtotal int64) int64 {
	return int64(math.Round(float64(subtotal) * TaxRate))
}

// Discount returns the discount amount for a promo applied to a subtotal.
// Percentage discounts round half up. Fixed discounts are applied as-is,
// even when they exceed the subtotal.
func Discount(subtotal int64, promo *domain.PromoCode) (int64, error) {
	if promo == nil {
		return 0, nil
	}
	switch promo.Kind {
	case domain.PromoKindPercentage:
		return int64(math.Round(float64(subtotal) * float64(promo.Discount) / 100)), nil
	case domain.PromoKindFixed:
		return promo.Discount, nil
	default:
		return 0, domain.ErrInvalidPromoCode
	}
}

// Total combines subtotal, taxes and discount into the amount charged.
func Total(subtotal, taxes, discount int64) int64 {
	return subtotal + taxes - discount
}

// Quote holds a fully computed price breakdown for a booking.
type Quote struct {
	Subtotal int64
	Taxes    int64
	Discount int64
	Total    int64
}

// QuoteBooking computes the full breakdown for a quantity of a unit price
// with an optional promo code.
func QuoteBooking(unitPrice int64, quantity int, promo *domain.PromoCode) (*Quote, error) {
	subtotal, err := Subtotal(unitPrice, quantity)
	if err != nil {
		return nil, err
	}
	taxes := Taxes(subtotal)
	discount, err := Discount(subtotal, promo)
	if err != nil {
		return nil, err
	}
	return &Quote{
		Subtotal: subtotal,
		Taxes:    taxes,
		Discount: discount,
		Total:    Total(subtotal, taxes, discount),
	}, nil
}
