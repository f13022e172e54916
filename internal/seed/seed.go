package seed

import (
	"github.com/trailhuf/experiences-api/internal/domain"
)

const defaultDescription = "Curated small-group experience. Certified guide. Safety first with gear included."

var launchDates = []string{"Oct 22", "Oct 23", "Oct 24", "Oct 25", "Oct 26"}

// Experiences returns the launch catalog. IDs are stable slugs so
// reseeding does not invalidate links held by clients.
func Experiences() []*domain.Experience {
	return []*domain.Experience{
		{
			ID:             "exp-kayaking-udupi",
			Name:           "Kayaking",
			Location:       "Udupi",
			Description:    defaultDescription,
			Price:          999,
			Image:          "https://images.unsplash.com/photo-1544551763-46a013bb70d5?w=400",
			AvailableDates: launchDates,
			TimeSlots: []domain.TimeSlot{
				{TimeLabel: "07:00 am", Available: 4},
				{TimeLabel: "9:00 am", Available: 2},
				{TimeLabel: "11:00 am", Available: 5},
				{TimeLabel: "1:00 pm", Available: 0, SoldOut: true},
			},
		},
		{
			ID:             "exp-nandi-hills-sunrise",
			Name:           "Nandi Hills Sunrise",
			Location:       "Bangalore",
			Description:    defaultDescription,
			Price:          899,
			Image:          "https://images.unsplash.com/photo-1506905925346-21bda4d32df4?w=400",
			AvailableDates: launchDates,
			TimeSlots: []domain.TimeSlot{
				{TimeLabel: "05:00 am", Available: 6},
				{TimeLabel: "06:00 am", Available: 3},
			},
		},
		{
			ID:             "exp-coffee-trail",
			Name:           "Coffee Trail",
			Location:       "Coorg",
			Description:    defaultDescription,
			Price:          1299,
			Image:          "https://images.unsplash.com/photo-1447933601403-0c6688de566e?w=400",
			AvailableDates: launchDates,
			TimeSlots: []domain.TimeSlot{
				{TimeLabel: "08:00 am", Available: 8},
				{TimeLabel: "10:00 am", Available: 4},
			},
		},
		{
			ID:             "exp-boat-cruise",
			Name:           "Boat Cruise",
			Location:       "Sunderban",
			Description:    defaultDescription,
			Price:          999,
			Image:          "https://images.unsplash.com/photo-1544551763-77ef2d0cfc6c?w=400",
			AvailableDates: launchDates,
			TimeSlots: []domain.TimeSlot{
				{TimeLabel: "09:00 am", Available: 10},
				{TimeLabel: "02:00 pm", Available: 6},
			},
		},
		{
			ID:             "exp-bunjee-jumping",
			Name:           "Bunjee Jumping",
			Location:       "Manali",
			Description:    defaultDescription,
			Price:          999,
			Image:          "https://images.unsplash.com/photo-1551698618-1dfe5d97d256?w=400",
			AvailableDates: launchDates,
			TimeSlots: []domain.TimeSlot{
				{TimeLabel: "10:00 am", Available: 4},
				{TimeLabel: "12:00 pm", Available: 2},
			},
		},
		{
			ID:             "exp-desert-safari",
			Name:           "Desert Safari",
			Location:       "Rajasthan",
			Description:    defaultDescription,
			Price:          1599,
			Image:          "https://images.unsplash.com/photo-1509316975850-ff9c5deb0cd9?w=400",
			AvailableDates: launchDates,
			TimeSlots: []domain.TimeSlot{
				{TimeLabel: "04:00 pm", Available: 12},
				{TimeLabel: "06:00 pm", Available: 8},
			},
		},
		{
			ID:             "exp-scuba-diving",
			Name:           "Scuba Diving",
			Location:       "Goa",
			Description:    defaultDescription,
			Price:          2499,
			Image:          "https://images.unsplash.com/photo-1544551763-46a013bb70d5?w=400",
			AvailableDates: launchDates,
			TimeSlots: []domain.TimeSlot{
				{TimeLabel: "09:00 am", Available: 6},
				{TimeLabel: "11:00 am", Available: 4},
				{TimeLabel: "02:00 pm", Available: 5},
			},
		},
		{
			ID:             "exp-mountain-trekking",
			Name:           "Mountain Trekking",
			Location:       "Himachal",
			Description:    defaultDescription,
			Price:          1899,
			Image:          "https://images.unsplash.com/photo-1551632811-561732d1e306?w=400",
			AvailableDates: launchDates,
			TimeSlots: []domain.TimeSlot{
				{TimeLabel: "06:00 am", Available: 8},
				{TimeLabel: "08:00 am", Available: 6},
			},
		},
	}
}
