package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/trailhuf/experiences-api/internal/domain"
	"github.com/trailhuf/experiences-api/internal/dto"
)

// MockBookingRepository is a mock implementation of BookingRepository
type MockBookingRepository struct {
	CreateFunc              func(ctx context.Context, booking *domain.Booking) error
	GetByIDFunc             func(ctx context.Context, id string) (*domain.Booking, error)
	GetByReferenceFunc      func(ctx context.Context, reference string) (*domain.Booking, error)
	GetByIdempotencyKeyFunc func(ctx context.Context, key string) (*domain.Booking, error)
	ReferenceExistsFunc     func(ctx context.Context, reference string) (bool, error)
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, booking)
	}
	return nil
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, domain.ErrBookingNotFound
}

func (m *MockBookingRepository) GetByReference(ctx context.Context, reference string) (*domain.Booking, error) {
	if m.GetByReferenceFunc != nil {
		return m.GetByReferenceFunc(ctx, reference)
	}
	return nil, domain.ErrBookingNotFound
}

func (m *MockBookingRepository) GetByIdempotencyKey(ctx context.Context, key string) (*domain.Booking, error) {
	if m.GetByIdempotencyKeyFunc != nil {
		return m.GetByIdempotencyKeyFunc(ctx, key)
	}
	return nil, nil
}

func (m *MockBookingRepository) ReferenceExists(ctx context.Context, reference string) (bool, error) {
	if m.ReferenceExistsFunc != nil {
		return m.ReferenceExistsFunc(ctx, reference)
	}
	return false, nil
}

// MockExperienceRepository is a mock implementation of ExperienceRepository
type MockExperienceRepository struct {
	ListFunc        func(ctx context.Context, search string) ([]*domain.Experience, error)
	GetByIDFunc     func(ctx context.Context, id string) (*domain.Experience, error)
	ReplaceAllFunc  func(ctx context.Context, experiences []*domain.Experience) error
	ReserveSlotFunc func(ctx context.Context, experienceID, timeLabel string, quantity int) error
	ReleaseSlotFunc func(ctx context.Context, experienceID, timeLabel string, quantity int) error
}

func (m *MockExperienceRepository) List(ctx context.Context, search string) ([]*domain.Experience, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, search)
	}
	return []*domain.Experience{}, nil
}

func (m *MockExperienceRepository) GetByID(ctx context.Context, id string) (*domain.Experience, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, domain.ErrExperienceNotFound
}

func (m *MockExperienceRepository) ReplaceAll(ctx context.Context, experiences []*domain.Experience) error {
	if m.ReplaceAllFunc != nil {
		return m.ReplaceAllFunc(ctx, experiences)
	}
	return nil
}

func (m *MockExperienceRepository) ReserveSlot(ctx context.Context, experienceID, timeLabel string, quantity int) error {
	if m.ReserveSlotFunc != nil {
		return m.ReserveSlotFunc(ctx, experienceID, timeLabel, quantity)
	}
	return nil
}

func (m *MockExperienceRepository) ReleaseSlot(ctx context.Context, experienceID, timeLabel string, quantity int) error {
	if m.ReleaseSlotFunc != nil {
		return m.ReleaseSlotFunc(ctx, experienceID, timeLabel, quantity)
	}
	return nil
}

// RecordingEventPublisher records published bookings for assertions
type RecordingEventPublisher struct {
	mu      sync.Mutex
	created []*domain.Booking
}

func (p *RecordingEventPublisher) PublishBookingCreated(ctx context.Context, booking *domain.Booking) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.created = append(p.created, booking)
	return nil
}

func (p *RecordingEventPublisher) Close() error { return nil }

func (p *RecordingEventPublisher) CreatedCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.created)
}

func testExperience() *domain.Experience {
	return &domain.Experience{
		ID:             "exp-1",
		Name:           "Kayaking",
		Location:       "Udupi",
		Price:          999,
		AvailableDates: []string{"Oct 22", "Oct 23", "Oct 24", "Oct 25", "Oct 26"},
		TimeSlots: []domain.TimeSlot{
			{TimeLabel: "07:00 am", Available: 4},
			{TimeLabel: "9:00 am", Available: 2},
			{TimeLabel: "1:00 pm", Available: 0, SoldOut: true},
		},
	}
}

func validRequest() *dto.CreateBookingRequest {
	return &dto.CreateBookingRequest{
		ExperienceID: "exp-1",
		FullName:     "Asha Rao",
		Email:        "asha@example.com",
		Date:         "Oct 22",
		Time:         "07:00 am",
		Quantity:     2,
	}
}

func TestCreateBooking_Success(t *testing.T) {
	var created *domain.Booking
	bookingRepo := &MockBookingRepository{
		CreateFunc: func(ctx context.Context, booking *domain.Booking) error {
			created = booking
			return nil
		},
	}
	experienceRepo := &MockExperienceRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*domain.Experience, error) {
			return testExperience(), nil
		},
	}
	publisher := &RecordingEventPublisher{}
	svc := NewBookingService(bookingRepo, experienceRepo, nil, publisher, nil)

	resp, err := svc.CreateBooking(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("CreateBooking() unexpected error: %v", err)
	}

	if !resp.Success {
		t.Error("expected success response")
	}
	if resp.Subtotal != 1998 {
		t.Errorf("Subtotal = %d, want 1998", resp.Subtotal)
	}
	if resp.Taxes != 120 {
		t.Errorf("Taxes = %d, want 120", resp.Taxes)
	}
	if resp.Discount != 0 {
		t.Errorf("Discount = %d, want 0", resp.Discount)
	}
	if resp.Total != 2118 {
		t.Errorf("Total = %d, want 2118", resp.Total)
	}
	if resp.Status != "confirmed" {
		t.Errorf("Status = %q, want confirmed", resp.Status)
	}
	if !strings.HasPrefix(resp.BookingID, "HUF") || len(resp.BookingID) != 8 {
		t.Errorf("BookingID = %q, want HUF-prefixed 8 char reference", resp.BookingID)
	}

	if created == nil {
		t.Fatal("expected booking to be persisted")
	}
	if created.Status != domain.BookingStatusConfirmed {
		t.Errorf("persisted status = %q, want confirmed", created.Status)
	}
	if publisher.CreatedCount() != 1 {
		t.Errorf("expected 1 published event, got %d", publisher.CreatedCount())
	}
}

func TestCreateBooking_PromoCodes(t *testing.T) {
	tests := []struct {
		name         string
		promoCode    string
		quantity     int
		wantDiscount int64
		wantTotal    int64
		wantErr      error
	}{
		{name: "percentage promo", promoCode: "SAVE10", quantity: 1, wantDiscount: 100, wantTotal: 959},
		{name: "fixed promo", promoCode: "FLAT100", quantity: 1, wantDiscount: 100, wantTotal: 959},
		{name: "lowercase promo rejected", promoCode: "save10", quantity: 1, wantErr: domain.ErrInvalidPromoCode},
		{name: "unknown promo rejected", promoCode: "NOPE", quantity: 1, wantErr: domain.ErrInvalidPromoCode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			experienceRepo := &MockExperienceRepository{
				GetByIDFunc: func(ctx context.Context, id string) (*domain.Experience, error) {
					return testExperience(), nil
				},
			}
			svc := NewBookingService(&MockBookingRepository{}, experienceRepo, nil, nil, nil)

			req := validRequest()
			req.PromoCode = tt.promoCode
			req.Quantity = tt.quantity

			resp, err := svc.CreateBooking(context.Background(), req)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("CreateBooking() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("CreateBooking() unexpected error: %v", err)
			}
			if resp.Discount != tt.wantDiscount {
				t.Errorf("Discount = %d, want %d", resp.Discount, tt.wantDiscount)
			}
			if resp.Total != tt.wantTotal {
				t.Errorf("Total = %d, want %d", resp.Total, tt.wantTotal)
			}
		})
	}
}

func TestCreateBooking_Validation(t *testing.T) {
	mutate := func(fn func(*dto.CreateBookingRequest)) *dto.CreateBookingRequest {
		req := validRequest()
		fn(req)
		return req
	}

	tests := []struct {
		name    string
		req     *dto.CreateBookingRequest
		wantErr error
	}{
		{name: "missing experience id", req: mutate(func(r *dto.CreateBookingRequest) { r.ExperienceID = "" }), wantErr: domain.ErrInvalidExperienceID},
		{name: "missing full name", req: mutate(func(r *dto.CreateBookingRequest) { r.FullName = "  " }), wantErr: domain.ErrInvalidFullName},
		{name: "missing email", req: mutate(func(r *dto.CreateBookingRequest) { r.Email = "" }), wantErr: domain.ErrInvalidEmail},
		{name: "malformed email", req: mutate(func(r *dto.CreateBookingRequest) { r.Email = "not-an-email" }), wantErr: domain.ErrInvalidEmail},
		{name: "missing date", req: mutate(func(r *dto.CreateBookingRequest) { r.Date = "" }), wantErr: domain.ErrInvalidDate},
		{name: "missing time", req: mutate(func(r *dto.CreateBookingRequest) { r.Time = "" }), wantErr: domain.ErrInvalidTimeSlot},
		{name: "zero quantity", req: mutate(func(r *dto.CreateBookingRequest) { r.Quantity = 0 }), wantErr: domain.ErrInvalidQuantity},
		{name: "negative quantity", req: mutate(func(r *dto.CreateBookingRequest) { r.Quantity = -1 }), wantErr: domain.ErrInvalidQuantity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewBookingService(&MockBookingRepository{}, &MockExperienceRepository{}, nil, nil, nil)
			_, err := svc.CreateBooking(context.Background(), tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("CreateBooking() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCreateBooking_QuantityCap(t *testing.T) {
	experienceRepo := &MockExperienceRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*domain.Experience, error) {
			exp := testExperience()
			exp.TimeSlots = append(exp.TimeSlots, domain.TimeSlot{TimeLabel: "04:00 pm", Available: 12})
			return exp, nil
		},
	}

	t.Run("no cap by default", func(t *testing.T) {
		svc := NewBookingService(&MockBookingRepository{}, experienceRepo, nil, nil, nil)

		req := validRequest()
		req.Time = "04:00 pm"
		req.Quantity = 11

		resp, err := svc.CreateBooking(context.Background(), req)
		if err != nil {
			t.Fatalf("CreateBooking() unexpected error: %v", err)
		}
		if resp.Subtotal != 999*11 {
			t.Errorf("Subtotal = %d, want %d", resp.Subtotal, 999*11)
		}
	})

	t.Run("configured cap enforced", func(t *testing.T) {
		svc := NewBookingService(&MockBookingRepository{}, experienceRepo, nil, nil, &BookingServiceConfig{MaxQuantity: 10})

		req := validRequest()
		req.Time = "04:00 pm"
		req.Quantity = 11

		_, err := svc.CreateBooking(context.Background(), req)
		if !errors.Is(err, domain.ErrInvalidQuantity) {
			t.Errorf("CreateBooking() error = %v, want %v", err, domain.ErrInvalidQuantity)
		}
	})
}

func TestCreateBooking_ExperienceNotFound(t *testing.T) {
	svc := NewBookingService(&MockBookingRepository{}, &MockExperienceRepository{}, nil, nil, nil)

	_, err := svc.CreateBooking(context.Background(), validRequest())
	if !errors.Is(err, domain.ErrExperienceNotFound) {
		t.Errorf("CreateBooking() error = %v, want %v", err, domain.ErrExperienceNotFound)
	}
}

func TestCreateBooking_DateNotOffered(t *testing.T) {
	experienceRepo := &MockExperienceRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*domain.Experience, error) {
			return testExperience(), nil
		},
	}
	svc := NewBookingService(&MockBookingRepository{}, experienceRepo, nil, nil, nil)

	req := validRequest()
	req.Date = "Nov 01"

	_, err := svc.CreateBooking(context.Background(), req)
	if !errors.Is(err, domain.ErrDateNotOffered) {
		t.Errorf("CreateBooking() error = %v, want %v", err, domain.ErrDateNotOffered)
	}
}

func TestCreateBooking_UnknownTimeSlot(t *testing.T) {
	experienceRepo := &MockExperienceRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*domain.Experience, error) {
			return testExperience(), nil
		},
	}
	svc := NewBookingService(&MockBookingRepository{}, experienceRepo, nil, nil, nil)

	req := validRequest()
	req.Time = "5:00 pm"

	_, err := svc.CreateBooking(context.Background(), req)
	if !errors.Is(err, domain.ErrSlotNotFound) {
		t.Errorf("CreateBooking() error = %v, want %v", err, domain.ErrSlotNotFound)
	}
}

func TestCreateBooking_ChecksCapacityBeforeReserving(t *testing.T) {
	reserveCalled := false
	experienceRepo := &MockExperienceRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*domain.Experience, error) {
			return testExperience(), nil
		},
		ReserveSlotFunc: func(ctx context.Context, experienceID, timeLabel string, quantity int) error {
			reserveCalled = true
			return nil
		},
	}
	svc := NewBookingService(&MockBookingRepository{}, experienceRepo, nil, nil, nil)

	t.Run("sold out slot", func(t *testing.T) {
		req := validRequest()
		req.Time = "1:00 pm"

		_, err := svc.CreateBooking(context.Background(), req)
		if !errors.Is(err, domain.ErrSlotSoldOut) {
			t.Errorf("CreateBooking() error = %v, want %v", err, domain.ErrSlotSoldOut)
		}
	})

	t.Run("quantity above remaining seats", func(t *testing.T) {
		req := validRequest()
		req.Time = "9:00 am"
		req.Quantity = 3

		_, err := svc.CreateBooking(context.Background(), req)
		if !errors.Is(err, domain.ErrSlotUnavailable) {
			t.Errorf("CreateBooking() error = %v, want %v", err, domain.ErrSlotUnavailable)
		}
	})

	if reserveCalled {
		t.Error("capacity must be rejected before the reserve step")
	}
}

func TestCreateBooking_SlotUnavailable(t *testing.T) {
	createCalled := false
	bookingRepo := &MockBookingRepository{
		CreateFunc: func(ctx context.Context, booking *domain.Booking) error {
			createCalled = true
			return nil
		},
	}
	experienceRepo := &MockExperienceRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*domain.Experience, error) {
			return testExperience(), nil
		},
		ReserveSlotFunc: func(ctx context.Context, experienceID, timeLabel string, quantity int) error {
			return domain.ErrSlotUnavailable
		},
	}
	svc := NewBookingService(bookingRepo, experienceRepo, nil, nil, nil)

	_, err := svc.CreateBooking(context.Background(), validRequest())
	if !errors.Is(err, domain.ErrSlotUnavailable) {
		t.Fatalf("CreateBooking() error = %v, want %v", err, domain.ErrSlotUnavailable)
	}
	if createCalled {
		t.Error("booking must not be persisted when the reserve fails")
	}
}

func TestCreateBooking_PersistFailureReleasesSlot(t *testing.T) {
	released := false
	bookingRepo := &MockBookingRepository{
		CreateFunc: func(ctx context.Context, booking *domain.Booking) error {
			return errors.New("insert failed")
		},
	}
	experienceRepo := &MockExperienceRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*domain.Experience, error) {
			return testExperience(), nil
		},
		ReleaseSlotFunc: func(ctx context.Context, experienceID, timeLabel string, quantity int) error {
			if experienceID != "exp-1" || timeLabel != "07:00 am" || quantity != 2 {
				t.Errorf("ReleaseSlot(%q, %q, %d) called with wrong arguments", experienceID, timeLabel, quantity)
			}
			released = true
			return nil
		},
	}
	publisher := &RecordingEventPublisher{}
	svc := NewBookingService(bookingRepo, experienceRepo, nil, publisher, nil)

	_, err := svc.CreateBooking(context.Background(), validRequest())
	if err == nil {
		t.Fatal("expected error when persist fails")
	}
	if !released {
		t.Error("expected reserved capacity to be released")
	}
	if publisher.CreatedCount() != 0 {
		t.Error("no event should be published for a failed booking")
	}
}

func TestCreateBooking_IdempotentReplay(t *testing.T) {
	existing := &domain.Booking{
		ID:           "b-1",
		Reference:    "HUFABCDE",
		ExperienceID: "exp-1",
		Subtotal:     1998,
		Taxes:        120,
		Total:        2118,
		Status:       domain.BookingStatusConfirmed,
	}
	reserveCalled := false
	bookingRepo := &MockBookingRepository{
		GetByIdempotencyKeyFunc: func(ctx context.Context, key string) (*domain.Booking, error) {
			if key == "token-1" {
				return existing, nil
			}
			return nil, nil
		},
	}
	experienceRepo := &MockExperienceRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*domain.Experience, error) {
			return testExperience(), nil
		},
		ReserveSlotFunc: func(ctx context.Context, experienceID, timeLabel string, quantity int) error {
			reserveCalled = true
			return nil
		},
	}
	svc := NewBookingService(bookingRepo, experienceRepo, nil, nil, nil)

	req := validRequest()
	req.IdempotencyKey = "token-1"

	resp, err := svc.CreateBooking(context.Background(), req)
	if err != nil {
		t.Fatalf("CreateBooking() unexpected error: %v", err)
	}
	if resp.BookingID != "HUFABCDE" {
		t.Errorf("BookingID = %q, want HUFABCDE", resp.BookingID)
	}
	if reserveCalled {
		t.Error("replayed submission must not reserve capacity again")
	}
}

func TestCreateBooking_ReferenceCollisionRetries(t *testing.T) {
	attempts := 0
	bookingRepo := &MockBookingRepository{
		ReferenceExistsFunc: func(ctx context.Context, reference string) (bool, error) {
			attempts++
			return attempts == 1, nil
		},
	}
	experienceRepo := &MockExperienceRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*domain.Experience, error) {
			return testExperience(), nil
		},
	}
	svc := NewBookingService(bookingRepo, experienceRepo, nil, nil, nil)

	resp, err := svc.CreateBooking(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("CreateBooking() unexpected error: %v", err)
	}
	if attempts != 2 {
		t.Errorf("expected 2 reference attempts, got %d", attempts)
	}
	if !strings.HasPrefix(resp.BookingID, "HUF") {
		t.Errorf("BookingID = %q, want HUF prefix", resp.BookingID)
	}
}

func TestGetBooking(t *testing.T) {
	booking := &domain.Booking{
		ID:        "b-1",
		Reference: "HUF3K9QZ",
		Status:    domain.BookingStatusConfirmed,
	}
	bookingRepo := &MockBookingRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*domain.Booking, error) {
			if id == "b-1" {
				return booking, nil
			}
			return nil, domain.ErrBookingNotFound
		},
		GetByReferenceFunc: func(ctx context.Context, reference string) (*domain.Booking, error) {
			if reference == "HUF3K9QZ" {
				return booking, nil
			}
			return nil, domain.ErrBookingNotFound
		},
	}
	svc := NewBookingService(bookingRepo, &MockExperienceRepository{}, nil, nil, nil)

	t.Run("by internal id", func(t *testing.T) {
		resp, err := svc.GetBooking(context.Background(), "b-1")
		if err != nil {
			t.Fatalf("GetBooking() unexpected error: %v", err)
		}
		if resp.Reference != "HUF3K9QZ" {
			t.Errorf("Reference = %q, want HUF3K9QZ", resp.Reference)
		}
	})

	t.Run("by public reference", func(t *testing.T) {
		resp, err := svc.GetBooking(context.Background(), "HUF3K9QZ")
		if err != nil {
			t.Fatalf("GetBooking() unexpected error: %v", err)
		}
		if resp.ID != "b-1" {
			t.Errorf("ID = %q, want b-1", resp.ID)
		}
	})

	t.Run("missing id", func(t *testing.T) {
		if _, err := svc.GetBooking(context.Background(), ""); !errors.Is(err, domain.ErrInvalidBookingID) {
			t.Errorf("GetBooking() error = %v, want %v", err, domain.ErrInvalidBookingID)
		}
	})

	t.Run("not found", func(t *testing.T) {
		if _, err := svc.GetBooking(context.Background(), "b-404"); !errors.Is(err, domain.ErrBookingNotFound) {
			t.Errorf("GetBooking() error = %v, want %v", err, domain.ErrBookingNotFound)
		}
	})
}
