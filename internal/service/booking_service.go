package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/trailhuf/experiences-api/internal/domain"
	"github.com/trailhuf/experiences-api/internal/dto"
	"github.com/trailhuf/experiences-api/internal/pricing"
	"github.com/trailhuf/experiences-api/internal/promo"
	"github.com/trailhuf/experiences-api/internal/repository"
	"github.com/trailhuf/experiences-api/pkg/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	referencePrefix   = "HUF"
	referenceLength   = 5
	referenceAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// BookingService defines the interface for booking business logic
type BookingService interface {
	// CreateBooking prices, reserves and persists a booking
	CreateBooking(ctx context.Context, req *dto.CreateBookingRequest) (*dto.CreateBookingResponse, error)

	// GetBooking retrieves a booking by ID or public reference
	GetBooking(ctx context.Context, id string) (*dto.BookingResponse, error)
}

type bookingService struct {
	bookingRepo    repository.BookingRepository
	experienceRepo repository.ExperienceRepository
	promoValidator promo.Validator
	eventPublisher EventPublisher
	maxQuantity    int
	refMaxAttempts int
}

// BookingServiceConfig contains configuration for the booking service.
// MaxQuantity caps the seats a single booking may take; zero means no cap
// beyond the slot's remaining capacity.
type BookingServiceConfig struct {
	MaxQuantity          int
	ReferenceMaxAttempts int
}

// NewBookingService creates a new booking service
func NewBookingService(
	bookingRepo repository.BookingRepository,
	experienceRepo repository.ExperienceRepository,
	promoValidator promo.Validator,
	eventPublisher EventPublisher,
	cfg *BookingServiceConfig,
) BookingService {
	maxQuantity := 0
	refMaxAttempts := 5
	if cfg != nil {
		if cfg.MaxQuantity > 0 {
			maxQuantity = cfg.MaxQuantity
		}
		if cfg.ReferenceMaxAttempts > 0 {
			refMaxAttempts = cfg.ReferenceMaxAttempts
		}
	}
	if promoValidator == nil {
		promoValidator = promo.NewValidator(nil)
	}
	if eventPublisher == nil {
		eventPublisher = NewNoOpEventPublisher()
	}
	return &bookingService{
		bookingRepo:    bookingRepo,
		experienceRepo: experienceRepo,
		promoValidator: promoValidator,
		eventPublisher: eventPublisher,
		maxQuantity:    maxQuantity,
		refMaxAttempts: refMaxAttempts,
	}
}

// CreateBooking prices, reserves and persists a booking
func (s *bookingService) CreateBooking(ctx context.Context, req *dto.CreateBookingRequest) (*dto.CreateBookingResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.booking.create")
	defer span.End()

	if err := s.validateRequest(req); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(
		attribute.String("experience_id", req.ExperienceID),
		attribute.String("date", req.Date),
		attribute.String("time", req.Time),
		attribute.Int("quantity", req.Quantity),
	)

	// Replay a previous submission when the idempotency key matches
	if req.IdempotencyKey != "" {
		existing, err := s.bookingRepo.GetByIdempotencyKey(ctx, req.IdempotencyKey)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
		if existing != nil {
			span.AddEvent("idempotent_replay", trace.WithAttributes(
				attribute.String("booking_reference", existing.Reference),
			))
			span.SetStatus(codes.Ok, "")
			return dto.CreateBookingResponseFromDomain(existing), nil
		}
	}

	exp, err := s.experienceRepo.GetByID(ctx, req.ExperienceID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if !exp.OffersDate(req.Date) {
		span.SetStatus(codes.Error, "date not offered")
		return nil, domain.ErrDateNotOffered
	}
	// Read-side capacity check; ReserveSlot below is still the authority
	// under concurrent submissions.
	if !exp.CanReserve(req.Time, req.Quantity) {
		slot, ok := exp.Slot(req.Time)
		switch {
		case !ok:
			span.SetStatus(codes.Error, "time slot not found")
			return nil, domain.ErrSlotNotFound
		case slot.SoldOut || slot.Available == 0:
			span.SetStatus(codes.Error, "time slot sold out")
			return nil, domain.ErrSlotSoldOut
		default:
			span.SetStatus(codes.Error, "insufficient capacity")
			return nil, domain.ErrSlotUnavailable
		}
	}

	// Resolve promo before touching capacity; an unknown code fails the
	// whole submission
	var promoCode *domain.PromoCode
	if req.PromoCode != "" {
		code, ok := s.promoValidator.Lookup(req.PromoCode)
		if !ok {
			span.SetStatus(codes.Error, "invalid promo code")
			return nil, domain.ErrInvalidPromoCode
		}
		promoCode = code
	}

	quote, err := pricing.QuoteBooking(exp.Price, req.Quantity, promoCode)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	// Take capacity atomically; this is the contention point under load
	if err := s.experienceRepo.ReserveSlot(ctx, req.ExperienceID, req.Time, req.Quantity); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	booking, err := s.buildBooking(ctx, req, promoCode, quote)
	if err != nil {
		s.compensateReservation(ctx, req)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		s.compensateReservation(ctx, req)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	// Event delivery is best-effort; the booking is already committed
	_ = s.eventPublisher.PublishBookingCreated(ctx, booking)

	span.AddEvent("booking_created", trace.WithAttributes(
		attribute.String("booking_id", booking.ID),
		attribute.String("booking_reference", booking.Reference),
		attribute.Int64("total", booking.Total),
	))
	span.SetAttributes(attribute.String("booking_reference", booking.Reference))
	span.SetStatus(codes.Ok, "")
	return dto.CreateBookingResponseFromDomain(booking), nil
}

// GetBooking retrieves a booking by ID or public reference
func (s *bookingService) GetBooking(ctx context.Context, id string) (*dto.BookingResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.booking.get")
	defer span.End()

	if id == "" {
		span.SetStatus(codes.Error, "invalid booking_id")
		return nil, domain.ErrInvalidBookingID
	}
	span.SetAttributes(attribute.String("booking_id", id))

	var booking *domain.Booking
	var err error
	if strings.HasPrefix(id, referencePrefix) {
		booking, err = s.bookingRepo.GetByReference(ctx, id)
	} else {
		booking, err = s.bookingRepo.GetByID(ctx, id)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetStatus(codes.Ok, "")
	return dto.BookingFromDomain(booking), nil
}

func (s *bookingService) validateRequest(req *dto.CreateBookingRequest) error {
	if req == nil {
		return domain.ErrInvalidExperienceID
	}
	if strings.TrimSpace(req.ExperienceID) == "" {
		return domain.ErrInvalidExperienceID
	}
	if strings.TrimSpace(req.FullName) == "" {
		return domain.ErrInvalidFullName
	}
	if strings.TrimSpace(req.Email) == "" || !strings.Contains(req.Email, "@") {
		return domain.ErrInvalidEmail
	}
	if strings.TrimSpace(req.Date) == "" {
		return domain.ErrInvalidDate
	}
	if strings.TrimSpace(req.Time) == "" {
		return domain.ErrInvalidTimeSlot
	}
	if req.Quantity < 1 {
		return domain.ErrInvalidQuantity
	}
	if s.maxQuantity > 0 && req.Quantity > s.maxQuantity {
		return domain.ErrInvalidQuantity
	}
	return nil
}

func (s *bookingService) buildBooking(ctx context.Context, req *dto.CreateBookingRequest, promoCode *domain.PromoCode, quote *pricing.Quote) (*domain.Booking, error) {
	reference, err := s.newReference(ctx)
	if err != nil {
		return nil, err
	}

	appliedCode := ""
	if promoCode != nil {
		appliedCode = req.PromoCode
	}

	booking := &domain.Booking{
		ID:             uuid.New().String(),
		Reference:      reference,
		ExperienceID:   req.ExperienceID,
		FullName:       strings.TrimSpace(req.FullName),
		Email:          strings.TrimSpace(req.Email),
		Date:           req.Date,
		Time:           req.Time,
		Quantity:       req.Quantity,
		Subtotal:       quote.Subtotal,
		Taxes:          quote.Taxes,
		Discount:       quote.Discount,
		Total:          quote.Total,
		PromoCode:      appliedCode,
		IdempotencyKey: req.IdempotencyKey,
		Status:         domain.BookingStatusConfirmed,
		CreatedAt:      time.Now(),
	}

	if err := booking.Validate(); err != nil {
		return nil, err
	}
	return booking, nil
}

// newReference generates a collision-checked public booking reference
func (s *bookingService) newReference(ctx context.Context) (string, error) {
	for attempt := 0; attempt < s.refMaxAttempts; attempt++ {
		reference, err := generateReference()
		if err != nil {
			return "", err
		}
		exists, err := s.bookingRepo.ReferenceExists(ctx, reference)
		if err != nil {
			return "", err
		}
		if !exists {
			return reference, nil
		}
	}
	return "", fmt.Errorf("failed to generate unique booking reference after %d attempts", s.refMaxAttempts)
}

func generateReference() (string, error) {
	var b strings.Builder
	b.WriteString(referencePrefix)
	max := big.NewInt(int64(len(referenceAlphabet)))
	for i := 0; i < referenceLength; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate booking reference: %w", err)
		}
		b.WriteByte(referenceAlphabet[n.Int64()])
	}
	return b.String(), nil
}

// compensateReservation returns capacity taken by a booking that failed
// after the reserve step.
func (s *bookingService) compensateReservation(ctx context.Context, req *dto.CreateBookingRequest) {
	_ = s.experienceRepo.ReleaseSlot(ctx, req.ExperienceID, req.Time, req.Quantity)
}
