package dto

import (
	"github.com/trailhuf/experiences-api/internal/domain"
)

// TimeSlotResponse represents an experience time slot in API responses
type TimeSlotResponse struct {
	Time      string `json:"time"`
	Available int    `json:"available"`
	SoldOut   bool   `json:"sold_out"`
}

// ExperienceResponse represents an experience in API responses
type ExperienceResponse struct {
	ID             string             `json:"id"`
	Name           string             `json:"name"`
	Location       string             `json:"location"`
	Description    string             `json:"description,omitempty"`
	Price          int64              `json:"price"`
	Image          string             `json:"image,omitempty"`
	AvailableDates []string           `json:"available_dates"`
	TimeSlots      []TimeSlotResponse `json:"time_slots"`
}

// ExperienceListResponse wraps a page of experiences
type ExperienceListResponse struct {
	Experiences []*ExperienceResponse `json:"experiences"`
	Total       int                   `json:"total"`
}

// ExperienceFromDomain converts a domain Experience to ExperienceResponse
func ExperienceFromDomain(e *domain.Experience) *ExperienceResponse {
	slots := make([]TimeSlotResponse, 0, len(e.TimeSlots))
	for _, s := range e.TimeSlots {
		slots = append(slots, TimeSlotResponse{
			Time:      s.TimeLabel,
			Available: s.Available,
			SoldOut:   s.SoldOut,
		})
	}
	return &ExperienceResponse{
		ID:             e.ID,
		Name:           e.Name,
		Location:       e.Location,
		Description:    e.Description,
		Price:          e.Price,
		Image:          e.Image,
		AvailableDates: e.AvailableDates,
		TimeSlots:      slots,
	}
}

// ExperienceListFromDomain converts a slice of domain Experiences
func ExperienceListFromDomain(experiences []*domain.Experience) *ExperienceListResponse {
	out := make([]*ExperienceResponse, 0, len(experiences))
	for _, e := range experiences {
		out = append(out, ExperienceFromDomain(e))
	}
	return &ExperienceListResponse{Experiences: out, Total: len(out)}
}
