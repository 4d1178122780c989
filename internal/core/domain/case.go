package domain

import (
	"strings"
	"time"
)

type CaseStatus string

const (
	CaseStatusSubmitted      CaseStatus = "submitted"
	CaseStatusAnalyzing      CaseStatus = "analyzing"
	CaseStatusAnalyzed       CaseStatus = "analyzed"
	CaseStatusAnalysisFailed CaseStatus = "analysis_failed"
)

type ComplexityLevel string

const (
	ComplexitySimple        ComplexityLevel = "simple"
	ComplexityModerate      ComplexityLevel = "moderate"
	ComplexityComplex       ComplexityLevel = "complex"
	ComplexityHighlyComplex ComplexityLevel = "highly_complex"
	ComplexitySpecialized   ComplexityLevel = "specialized"
)

func ParseComplexityLevel(raw string) ComplexityLevel {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "simple":
		return ComplexitySimple
	case "complex":
		return ComplexityComplex
	case "highly_complex", "highly complex":
		return ComplexityHighlyComplex
	case "specialized":
		return ComplexitySpecialized
	default:
		return ComplexityModerate
	}
}

type Urgency string

const (
	UrgencyEmergency Urgency = "emergency"
	UrgencyUrgent    Urgency = "urgent"
	UrgencyStandard  Urgency = "standard"
	UrgencyFlexible  Urgency = "flexible"
	UrgencyPlanning  Urgency = "planning"
)

func ParseUrgency(raw string) Urgency {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "emergency":
		return UrgencyEmergency
	case "urgent":
		return UrgencyUrgent
	case "flexible":
		return UrgencyFlexible
	case "planning":
		return UrgencyPlanning
	default:
		return UrgencyStandard
	}
}

// Severity maps urgency to the 1-5 scale used by availability scoring.
func (u Urgency) Severity() int {
	switch u {
	case UrgencyEmergency:
		return 5
	case UrgencyUrgent:
		return 4
	case UrgencyFlexible:
		return 2
	case UrgencyPlanning:
		return 1
	default:
		return 3
	}
}

type BudgetBand string

const (
	BudgetLow     BudgetBand = "low"
	BudgetMedium  BudgetBand = "medium"
	BudgetHigh    BudgetBand = "high"
	BudgetPremium BudgetBand = "premium"
)

func ParseBudgetBand(raw string) BudgetBand {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "low":
		return BudgetLow
	case "high":
		return BudgetHigh
	case "premium":
		return BudgetPremium
	default:
		return BudgetMedium
	}
}

// CaseAttributes is the structured record the attribute extractor produces
// for one matching request. Enum fields are always populated; when the
// extractor cannot determine a value it falls back to the documented default
// (moderate complexity, standard urgency, medium budget).
type CaseAttributes struct {
	CaseType                 string          `json:"case_type"`
	CaseCategory             string          `json:"case_category,omitempty"`
	KeyLegalIssues           []string        `json:"key_legal_issues,omitempty"`
	ComplexityLevel          ComplexityLevel `json:"complexity_level"`
	PotentialSpecializations []string        `json:"potential_specializations,omitempty"`
	Urgency                  Urgency         `json:"urgency"`
	BudgetBand               BudgetBand      `json:"budget_band"`
	JurisdictionNotes        string          `json:"jurisdiction_notes,omitempty"`
	LanguageNotes            string          `json:"language_notes,omitempty"`
	SpecificExpertise        string          `json:"specific_expertise,omitempty"`
}

// DefaultCaseAttributes is the fallback record used when AI extraction
// fails. The case type itself becomes the only candidate specialization so
// specialization scoring still has something to work with.
func DefaultCaseAttributes(caseType string) CaseAttributes {
	return CaseAttributes{
		CaseType:                 caseType,
		KeyLegalIssues:           []string{"Unable to automatically identify issues"},
		ComplexityLevel:          ComplexityModerate,
		PotentialSpecializations: []string{caseType},
		Urgency:                  UrgencyStandard,
		BudgetBand:               BudgetMedium,
	}
}

// Case is a submitted client case tracked through async analysis.
type Case struct {
	ID                  string          `json:"id"`
	ClientID            string          `json:"client_id"`
	CaseType            string          `json:"case_type"`
	Description         string          `json:"description"`
	Location            string          `json:"location,omitempty"`
	Budget              BudgetBand      `json:"budget"`
	Urgency             Urgency         `json:"urgency"`
	LanguagePreferences []string        `json:"language_preferences,omitempty"`
	Status              CaseStatus      `json:"status"`
	Attributes          *CaseAttributes `json:"attributes,omitempty"`
	Insights            *CaseInsights   `json:"insights,omitempty"`
	Documents           []CaseDocument  `json:"documents,omitempty"`
	Error               string          `json:"error,omitempty"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

// CaseDocument is an uploaded file attached to a case.
type CaseDocument struct {
	ID          string    `json:"id"`
	CaseID      string    `json:"case_id"`
	Title       string    `json:"title"`
	MimeType    string    `json:"mime_type"`
	StoragePath string    `json:"storage_path"`
	Text        string    `json:"text,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
