package usecase

import (
	"fmt"
	"math"
	"strings"

	"github.com/lexova/lexova-backend/internal/core/domain"
	"github.com/lexova/lexova-backend/internal/core/taxonomy"
)

// ScoringWeights distributes the final score across the eight dimensions.
// The weights sum to 1.0.
type ScoringWeights struct {
	Specialization float64
	Experience     float64
	SuccessRate    float64
	Availability   float64
	Budget         float64
	Rating         float64
	Language       float64
	Location       float64
}

// BudgetRange is the hourly-rate band a budget level maps to. Ceiling may be
// +Inf for the open-ended premium band.
type BudgetRange struct {
	Floor   float64
	Ceiling float64
}

// Calibration collects the tuned constants of the scoring heuristics, so
// recalibration is a single-site change instead of a hunt through the
// formulas.
type Calibration struct {
	Weights ScoringWeights

	// Specialization scoring.
	DirectMatchPoints  float64
	RelatedMatchPoints float64
	CategoryNameBase   float64
	NoSignalBase       float64
	IndirectCap        float64
	UnknownTypeScore   float64

	// Experience saturates at this many years of practice.
	FullScoreYears float64

	// Ratings count fully once a lawyer has this many reviews.
	ReviewSaturation float64

	// Rates up to Ceiling*(1+BudgetStretch) still earn a degraded score
	// before dropping to the out-of-range floor.
	BudgetStretch float64

	BudgetRanges map[domain.BudgetBand]BudgetRange
}

// DefaultCalibration returns the production scoring constants.
func DefaultCalibration() Calibration {
	return Calibration{
		Weights: ScoringWeights{
			Specialization: 0.30,
			Experience:     0.20,
			SuccessRate:    0.15,
			Availability:   0.10,
			Budget:         0.10,
			Rating:         0.05,
			Language:       0.05,
			Location:       0.05,
		},
		DirectMatchPoints:  40,
		RelatedMatchPoints: 10,
		CategoryNameBase:   60,
		NoSignalBase:       30,
		IndirectCap:        90,
		UnknownTypeScore:   50,
		FullScoreYears:     20,
		ReviewSaturation:   100,
		BudgetStretch:      0.2,
		BudgetRanges: map[domain.BudgetBand]BudgetRange{
			domain.BudgetLow:     {Floor: 0, Ceiling: 200},
			domain.BudgetMedium:  {Floor: 200, Ceiling: 350},
			domain.BudgetHigh:    {Floor: 350, Ceiling: 500},
			domain.BudgetPremium: {Floor: 500, Ceiling: math.Inf(1)},
		},
	}
}

// ScoringEngine computes the 0-100 compatibility score between one lawyer
// profile and one matching request. Pure and deterministic; no I/O.
type ScoringEngine struct {
	tax *taxonomy.Taxonomy
	cal Calibration
}

func NewScoringEngine(tax *taxonomy.Taxonomy, cal Calibration) *ScoringEngine {
	return &ScoringEngine{tax: tax, cal: cal}
}

// Score returns the weighted final score and up to three human-readable
// reasons, in a fixed evaluation order so identical inputs always produce
// identical explanations.
func (e *ScoringEngine) Score(
	lawyer domain.LawyerProfile,
	req domain.MatchRequest,
	attrs domain.CaseAttributes,
) (int, []string) {
	w := e.cal.Weights

	specialization := e.specializationScore(lawyer.Specializations, req.CaseType, attrs.PotentialSpecializations)
	experience := e.experienceScore(lawyer.ExperienceYears)
	success := successScore(lawyer.SuccessRate)
	availability := availabilityScore(lawyer.Availability, req.Urgency)
	budget := e.budgetScore(lawyer.HourlyRate, req.Budget)
	rating := e.ratingScore(lawyer.AverageRating, lawyer.ReviewCount)
	language, common := languageScore(lawyer.Languages, req.LanguagePreferences)
	location := locationScore(lawyer.Location, req.ClientLocation)

	total := specialization*w.Specialization +
		experience*w.Experience +
		success*w.SuccessRate +
		availability*w.Availability +
		budget*w.Budget +
		rating*w.Rating +
		language*w.Language +
		location*w.Location

	reasons := buildReasons(lawyer, req, scoreBreakdown{
		specialization: specialization,
		experience:     experience,
		success:        success,
		availability:   availability,
		budget:         budget,
		rating:         rating,
		language:       language,
		location:       location,
	}, common)

	return int(math.Round(total)), reasons
}

type scoreBreakdown struct {
	specialization float64
	experience     float64
	success        float64
	availability   float64
	budget         float64
	rating         float64
	language       float64
	location       float64
}

// specializationScore is the dominant dimension. Direct subtype matches
// outrank everything; related-specialization overlap only nudges the score,
// and without a direct match the result is capped below the direct range.
func (e *ScoringEngine) specializationScore(specs []string, caseType string, potential []string) float64 {
	cat, ok := e.tax.ResolveCategory(caseType)
	if !ok {
		// Unknown case type: neutral score rather than zeroing the
		// whole dimension.
		return e.cal.UnknownTypeScore
	}

	caseTypeLower := strings.ToLower(strings.TrimSpace(caseType))
	subtypes := make(map[string]bool, len(cat.Subtypes))
	for _, st := range cat.Subtypes {
		subtypes[strings.ToLower(st)] = true
	}

	var direct float64
	for _, spec := range specs {
		s := strings.ToLower(strings.TrimSpace(spec))
		switch {
		case s == caseTypeLower:
			direct += 2
		case subtypes[s]:
			direct++
		}
	}

	var related float64
	for _, spec := range specs {
		s := strings.ToLower(strings.TrimSpace(spec))
		if s == "" {
			continue
		}
		for _, p := range potential {
			pl := strings.ToLower(strings.TrimSpace(p))
			if pl == "" {
				continue
			}
			if strings.Contains(pl, s) || strings.Contains(s, pl) {
				related += 0.5
			}
		}
	}

	if direct > 0 {
		return math.Min(100, direct*e.cal.DirectMatchPoints+related*e.cal.RelatedMatchPoints)
	}

	base := e.cal.NoSignalBase
	joined := strings.ToLower(strings.Join(specs, " "))
	if strings.Contains(joined, strings.ReplaceAll(strings.ToLower(cat.ID), "_", " ")) {
		base = e.cal.CategoryNameBase
	}
	return math.Min(e.cal.IndirectCap, base+related*e.cal.RelatedMatchPoints)
}

func (e *ScoringEngine) experienceScore(years int) float64 {
	if years <= 0 {
		return 0
	}
	return math.Min(100, float64(years)/e.cal.FullScoreYears*100)
}

func successScore(rate float64) float64 {
	return rate * 100
}

// ratingScore discounts the average rating by review volume so a single
// five-star review cannot outrank an established track record.
func (e *ScoringEngine) ratingScore(average float64, reviews int) float64 {
	confidence := math.Min(1, float64(reviews)/e.cal.ReviewSaturation)
	return average / 5 * 100 * confidence
}

func availabilityScore(avail domain.Availability, urgency domain.Urgency) float64 {
	sev := urgency.Severity()
	switch {
	case sev >= 4:
		switch avail {
		case domain.AvailabilityHigh:
			return 100
		case domain.AvailabilityMedium:
			return 60
		default:
			return 30
		}
	case sev == 3:
		if avail == domain.AvailabilityLow {
			return 70
		}
		return 100
	default:
		return 100
	}
}

func (e *ScoringEngine) budgetScore(hourlyRate float64, budget domain.BudgetBand) float64 {
	rng, ok := e.cal.BudgetRanges[budget]
	if !ok {
		rng = e.cal.BudgetRanges[domain.BudgetMedium]
	}

	switch {
	case hourlyRate <= rng.Floor:
		return 100
	case hourlyRate <= rng.Ceiling:
		position := (hourlyRate - rng.Floor) / (rng.Ceiling - rng.Floor)
		return 100 - position*20
	case hourlyRate <= rng.Ceiling*(1+e.cal.BudgetStretch):
		overage := (hourlyRate - rng.Ceiling) / rng.Ceiling
		return math.Max(40, 80-overage*100)
	default:
		return 30
	}
}

// languageScore also returns the common languages in client-preference order
// (client casing) for the explanation text.
func languageScore(lawyerLangs, clientPrefs []string) (float64, []string) {
	if len(clientPrefs) == 0 {
		clientPrefs = []string{"English"}
	}

	spoken := make(map[string]bool, len(lawyerLangs))
	for _, lang := range lawyerLangs {
		spoken[strings.ToLower(strings.TrimSpace(lang))] = true
	}

	var common []string
	english := false
	for _, pref := range clientPrefs {
		key := strings.ToLower(strings.TrimSpace(pref))
		if spoken[key] {
			common = append(common, pref)
			if key == "english" {
				english = true
			}
		}
	}

	if len(common) == 0 {
		return 0, nil
	}
	ratio := float64(len(common)) / float64(len(clientPrefs)) * 100
	if english {
		return math.Max(80, ratio), common
	}
	return ratio, common
}

func locationScore(lawyerLocation, clientLocation string) float64 {
	if strings.TrimSpace(clientLocation) == "" {
		return 80
	}

	clientCity, clientState := splitLocation(clientLocation)
	lawyerCity, lawyerState := splitLocation(lawyerLocation)

	switch {
	case clientCity != "" && clientCity == lawyerCity:
		return 100
	case clientState != "" && clientState == lawyerState:
		return 80
	default:
		return 50
	}
}

func splitLocation(loc string) (city, state string) {
	parts := strings.Split(loc, ",")
	city = strings.ToLower(strings.TrimSpace(parts[0]))
	state = strings.ToLower(strings.TrimSpace(parts[len(parts)-1]))
	return city, state
}

// buildReasons walks the dimensions in a fixed order and keeps the first
// three explanations that fire.
func buildReasons(
	lawyer domain.LawyerProfile,
	req domain.MatchRequest,
	b scoreBreakdown,
	commonLanguages []string,
) []string {
	var reasons []string

	switch {
	case b.specialization > 80:
		top := lawyer.Specializations
		if len(top) > 2 {
			top = top[:2]
		}
		reasons = append(reasons, fmt.Sprintf(
			"Strong specialization match: %s specializes in %s",
			lawyer.Name, strings.Join(top, ", ")))
	case b.specialization > 50:
		reasons = append(reasons, fmt.Sprintf(
			"Good specialization match: %s has relevant expertise in %s",
			lawyer.Name, req.CaseType))
	}

	switch {
	case lawyer.ExperienceYears > 15:
		reasons = append(reasons, fmt.Sprintf(
			"Highly experienced: %d years of practice with %d cases",
			lawyer.ExperienceYears, lawyer.CasesHandled))
	case lawyer.ExperienceYears > 8:
		reasons = append(reasons, fmt.Sprintf(
			"Experienced: %d years of legal practice", lawyer.ExperienceYears))
	}

	switch {
	case lawyer.SuccessRate > 0.9:
		reasons = append(reasons, fmt.Sprintf(
			"Excellent track record: %d%% success rate", int(lawyer.SuccessRate*100)))
	case lawyer.SuccessRate > 0.8:
		reasons = append(reasons, fmt.Sprintf(
			"Strong track record: %d%% success rate", int(lawyer.SuccessRate*100)))
	}

	if b.availability > 80 {
		if req.Urgency == domain.UrgencyEmergency || req.Urgency == domain.UrgencyUrgent {
			reasons = append(reasons, "High availability for your urgent case")
		} else {
			reasons = append(reasons, "Currently has good availability to take on new cases")
		}
	}

	if b.budget > 80 {
		reasons = append(reasons, "Rate aligns well with your budget")
	}

	if lawyer.AverageRating > 4.7 && lawyer.ReviewCount > 100 {
		reasons = append(reasons, fmt.Sprintf(
			"Highly rated: %.1f/5 from %d clients", lawyer.AverageRating, lawyer.ReviewCount))
	}

	if len(commonLanguages) > 0 {
		if b.language > 90 && len(req.LanguagePreferences) > 1 {
			reasons = append(reasons, fmt.Sprintf(
				"Speaks all your preferred languages: %s", strings.Join(commonLanguages, ", ")))
		} else if b.language > 0 {
			reasons = append(reasons, fmt.Sprintf("Speaks %s", strings.Join(commonLanguages, ", ")))
		}
	}

	if b.location > 80 {
		reasons = append(reasons, fmt.Sprintf("Located in your area: %s", lawyer.Location))
	}

	if len(reasons) > 3 {
		reasons = reasons[:3]
	}
	return reasons
}
