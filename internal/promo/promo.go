// Package promo validates promo codes against a configured registry.
package promo

import (
	"github.com/trailhuf/experiences-api/internal/domain"
)

// Registry maps promo codes to their discount definitions. Codes match
// exactly as registered; lookups are case-sensitive.
type Registry map[string]domain.PromoCode

// DefaultRegistry returns the built-in promo codes.
func DefaultRegistry() Registry {
	return Registry{
		"SAVE10":  {Discount: 10, Kind: domain.PromoKindPercentage},
		"FLAT100": {Discount: 100, Kind: domain.PromoKindFixed},
	}
}

// Validator resolves promo codes
type Validator interface {
	// Validate returns the validation result for a code. Unknown codes
	// yield an invalid result, not an error.
	Validate(code string) *domain.PromoResult

	// Lookup returns the promo definition for a code, or false when the
	// code is not registered.
	Lookup(code string) (*domain.PromoCode, bool)
}

type validator struct {
	registry Registry
}

// NewValidator creates a Validator backed by the given registry. A nil
// registry falls back to DefaultRegistry.
func NewValidator(registry Registry) Validator {
	if registry == nil {
		registry = DefaultRegistry()
	}
	return &validator{registry: registry}
}

func (v *validator) Validate(code string) *domain.PromoResult {
	promo, ok := v.Lookup(code)
	if !ok {
		return &domain.PromoResult{
			Valid:   false,
			Message: "Invalid promo code",
		}
	}
	return &domain.PromoResult{
		Valid:    true,
		Discount: promo.Discount,
		Kind:     promo.Kind,
	}
}

func (v *validator) Lookup(code string) (*domain.PromoCode, bool) {
	if code == "" {
		return nil, false
	}
	promo, ok := v.registry[code]
	if !ok {
		return nil, false
	}
	return &promo, true
}
