package domain

// PromoKind distinguishes how a promo discount is applied.
type PromoKind string

const (
	PromoKindPercentage PromoKind = "percentage"
	PromoKindFixed      PromoKind = "fixed"
)

// IsValid checks if the kind is a valid PromoKind
func (k PromoKind) IsValid() bool {
	switch k {
	case PromoKindPercentage, PromoKindFixed:
		return true
	}
	return false
}

// String returns the string representation of PromoKind
func (k PromoKind) String() string {
	return string(k)
}

// PromoCode describes a discount entry in the promo registry. Percentage
// discounts are a percentage of the subtotal; fixed discounts are an
// absolute amount in the smallest currency unit.
type PromoCode struct {
	Discount int64     `json:"discount"`
	Kind     PromoKind `json:"type"`
}

// PromoResult is the outcome of validating a promo code. An unknown code
// is a user-correctable condition, not an error.
type PromoResult struct {
	Valid    bool      `json:"valid"`
	Discount int64     `json:"discount,omitempty"`
	Kind     PromoKind `json:"type,omitempty"`
	Message  string    `json:"message,omitempty"`
}
