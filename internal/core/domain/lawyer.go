package domain

import "strings"

type Availability string

const (
	AvailabilityHigh   Availability = "high"
	AvailabilityMedium Availability = "medium"
	AvailabilityLow    Availability = "low"
)

// ParseAvailability maps free-form input to an availability level. Unknown
// values resolve to medium rather than failing; upstream profile data is not
// trusted to be clean.
func ParseAvailability(raw string) Availability {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "high":
		return AvailabilityHigh
	case "low":
		return AvailabilityLow
	default:
		return AvailabilityMedium
	}
}

// LawyerProfile is a read-only snapshot of a candidate lawyer, owned by the
// catalog. The matching core never mutates it.
type LawyerProfile struct {
	ID              string       `json:"id"`
	Name            string       `json:"name"`
	Specializations []string     `json:"specializations"`
	ExperienceYears int          `json:"experience_years"`
	CasesHandled    int          `json:"cases_handled"`
	Languages       []string     `json:"languages"`
	Location        string       `json:"location"`
	AverageRating   float64      `json:"average_rating"`
	ReviewCount     int          `json:"review_count"`
	HourlyRate      float64      `json:"hourly_rate"`
	Availability    Availability `json:"availability"`
	SuccessRate     float64      `json:"success_rate"`
}
