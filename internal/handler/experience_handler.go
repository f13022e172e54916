package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/trailhuf/experiences-api/internal/domain"
	"github.com/trailhuf/experiences-api/internal/dto"
	"github.com/trailhuf/experiences-api/internal/service"
	"github.com/trailhuf/experiences-api/pkg/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// ExperienceHandler handles experience catalog HTTP requests
type ExperienceHandler struct {
	catalogService service.CatalogService
}

// NewExperienceHandler creates a new experience handler
func NewExperienceHandler(catalogService service.CatalogService) *ExperienceHandler {
	return &ExperienceHandler{catalogService: catalogService}
}

// List handles GET /experiences
func (h *ExperienceHandler) List(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.experience.list")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	search := c.Query("search")
	if search != "" {
		span.SetAttributes(attribute.String("search", search))
	}

	experiences, err := h.catalogService.ListExperiences(ctx, search)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		h.handleError(c, err)
		return
	}

	span.SetAttributes(attribute.Int("result_count", len(experiences)))
	span.SetStatus(codes.Ok, "")
	c.JSON(http.StatusOK, dto.ExperienceListFromDomain(experiences))
}

// GetByID handles GET /experiences/:id
func (h *ExperienceHandler) GetByID(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.experience.get")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	id := c.Param("id")
	span.SetAttributes(attribute.String("experience_id", id))

	exp, err := h.catalogService.GetExperience(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		h.handleError(c, err)
		return
	}

	span.SetStatus(codes.Ok, "")
	c.JSON(http.StatusOK, dto.ExperienceFromDomain(exp))
}

func (h *ExperienceHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrExperienceNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error: err.Error(),
			Code:  "NOT_FOUND",
		})
	case domain.IsValidationError(err):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: err.Error(),
			Code:  "INVALID_REQUEST",
		})
	default:
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "internal server error",
			Code:  "INTERNAL_ERROR",
		})
	}
}
