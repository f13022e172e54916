package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/trailhuf/experiences-api/internal/dto"
	"github.com/trailhuf/experiences-api/internal/promo"
	"github.com/trailhuf/experiences-api/pkg/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// PromoHandler handles promo code HTTP requests
type PromoHandler struct {
	validator promo.Validator
}

// NewPromoHandler creates a new promo handler
func NewPromoHandler(validator promo.Validator) *PromoHandler {
	if validator == nil {
		validator = promo.NewValidator(nil)
	}
	return &PromoHandler{validator: validator}
}

// Validate handles POST /promo/validate. Unknown codes are not an error:
// the response carries valid=false so the client can show the message inline.
func (h *PromoHandler) Validate(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.promo.validate")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	var req dto.ValidatePromoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid request")
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "invalid request",
			Code:    "INVALID_REQUEST",
			Message: err.Error(),
		})
		return
	}

	result := h.validator.Validate(req.Code)
	span.SetAttributes(attribute.Bool("promo_valid", result.Valid))
	span.SetStatus(codes.Ok, "")
	c.JSON(http.StatusOK, dto.PromoResultFromDomain(result))
}
