package domain

import "errors"

// Domain errors
var (
	// Catalog errors
	ErrExperienceNotFound = errors.New("experience not found")

	// Booking errors
	ErrBookingNotFound    = errors.New("booking not found")
	ErrInconsistentTotals = errors.New("total must equal subtotal plus taxes minus discount")

	// Slot errors
	ErrSlotNotFound    = errors.New("time slot not found")
	ErrSlotSoldOut     = errors.New("time slot is sold out")
	ErrSlotUnavailable = errors.New("insufficient slot capacity")

	// Validation errors
	ErrInvalidExperienceID = errors.New("invalid experience id")
	ErrInvalidBookingID    = errors.New("invalid booking id")
	ErrInvalidFullName     = errors.New("full name is required")
	ErrInvalidEmail        = errors.New("email is required")
	ErrInvalidDate         = errors.New("date is required")
	ErrInvalidTimeSlot     = errors.New("time slot is required")
	ErrInvalidQuantity     = errors.New("quantity must be greater than zero")
	ErrInvalidUnitPrice    = errors.New("unit price cannot be negative")
	ErrInvalidDiscount     = errors.New("discount cannot be negative")
	ErrDateNotOffered      = errors.New("date is not offered for this experience")

	// Promo errors
	ErrInvalidPromoCode = errors.New("invalid promo code")
)

// IsNotFoundError checks if the error is a not found error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrExperienceNotFound) ||
		errors.Is(err, ErrBookingNotFound) ||
		errors.Is(err, ErrSlotNotFound)
}

// IsValidationError checks if the error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidExperienceID) ||
		errors.Is(err, ErrInvalidBookingID) ||
		errors.Is(err, ErrInvalidFullName) ||
		errors.Is(err, ErrInvalidEmail) ||
		errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrInvalidTimeSlot) ||
		errors.Is(err, ErrInvalidQuantity) ||
		errors.Is(err, ErrInvalidUnitPrice) ||
		errors.Is(err, ErrInvalidDiscount) ||
		errors.Is(err, ErrDateNotOffered) ||
		errors.Is(err, ErrInconsistentTotals)
}

// IsConflictError checks if the error is a capacity conflict error
func IsConflictError(err error) bool {
	return errors.Is(err, ErrSlotUnavailable) ||
		errors.Is(err, ErrSlotSoldOut)
}
