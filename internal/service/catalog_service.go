package service

import (
	"context"
	"time"

	"github.com/trailhuf/experiences-api/internal/domain"
	"github.com/trailhuf/experiences-api/internal/repository"
	"github.com/trailhuf/experiences-api/pkg/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// CatalogService defines the interface for experience catalog logic
type CatalogService interface {
	// ListExperiences retrieves experiences, optionally filtered by a
	// case-insensitive search term matched against the experience name
	ListExperiences(ctx context.Context, search string) ([]*domain.Experience, error)

	// GetExperience retrieves a single experience by ID
	GetExperience(ctx context.Context, id string) (*domain.Experience, error)

	// SeedCatalog replaces the catalog with the given experiences
	SeedCatalog(ctx context.Context, experiences []*domain.Experience) error
}

type catalogService struct {
	experienceRepo repository.ExperienceRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(experienceRepo repository.ExperienceRepository) CatalogService {
	return &catalogService{experienceRepo: experienceRepo}
}

// ListExperiences retrieves experiences matching the search term
func (s *catalogService) ListExperiences(ctx context.Context, search string) ([]*domain.Experience, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.catalog.list")
	defer span.End()

	if search != "" {
		span.SetAttributes(attribute.String("search", search))
	}

	experiences, err := s.experienceRepo.List(ctx, search)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("result_count", len(experiences)))
	span.SetStatus(codes.Ok, "")
	return experiences, nil
}

// GetExperience retrieves a single experience by ID
func (s *catalogService) GetExperience(ctx context.Context, id string) (*domain.Experience, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.catalog.get")
	defer span.End()

	if id == "" {
		span.SetStatus(codes.Error, "invalid experience_id")
		return nil, domain.ErrInvalidExperienceID
	}
	span.SetAttributes(attribute.String("experience_id", id))

	exp, err := s.experienceRepo.GetByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetStatus(codes.Ok, "")
	return exp, nil
}

// SeedCatalog replaces the catalog with the given experiences
func (s *catalogService) SeedCatalog(ctx context.Context, experiences []*domain.Experience) error {
	ctx, span := telemetry.StartSpan(ctx, "service.catalog.seed")
	defer span.End()

	span.SetAttributes(attribute.Int("experience_count", len(experiences)))

	now := time.Now().UTC()
	for _, exp := range experiences {
		if exp.CreatedAt.IsZero() {
			exp.CreatedAt = now
		}
		exp.UpdatedAt = now
	}

	if err := s.experienceRepo.ReplaceAll(ctx, experiences); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	span.SetStatus(codes.Ok, "")
	return nil
}
