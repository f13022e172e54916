package dto

import (
	"github.com/trailhuf/experiences-api/internal/domain"
)

// ValidatePromoRequest represents a promo code validation request
type ValidatePromoRequest struct {
	Code string `json:"code" binding:"required"`
}

// ValidatePromoResponse represents the outcome of validating a promo code
type ValidatePromoResponse struct {
	Valid    bool   `json:"valid"`
	Discount int64  `json:"discount,omitempty"`
	Type     string `json:"type,omitempty"`
	Message  string `json:"message,omitempty"`
}

// PromoResultFromDomain converts a domain PromoResult to ValidatePromoResponse
func PromoResultFromDomain(r *domain.PromoResult) *ValidatePromoResponse {
	return &ValidatePromoResponse{
		Valid:    r.Valid,
		Discount: r.Discount,
		Type:     r.Kind.String(),
		Message:  r.Message,
	}
}
