package ports

import (
	"context"
	"io"

	"github.com/lexova/lexova-backend/internal/core/domain"
)

// LawyerCatalog supplies the candidate pool for one matching request. The
// catalog returns only active, verification-approved lawyers; the matching
// core treats every returned profile as eligible and does not re-filter.
type LawyerCatalog interface {
	GetAvailableLawyers(ctx context.Context) ([]domain.LawyerProfile, error)
}

// CaseRepository persists submitted cases and their analysis state.
type CaseRepository interface {
	Create(ctx context.Context, c *domain.Case) error
	GetByID(ctx context.Context, id string) (*domain.Case, error)
	UpdateStatus(ctx context.Context, id string, status domain.CaseStatus, errMessage string) error
	SaveAnalysis(ctx context.Context, id string, attrs domain.CaseAttributes, insights domain.CaseInsights) error
	AddDocument(ctx context.Context, doc *domain.CaseDocument) error
	ListDocuments(ctx context.Context, caseID string) ([]domain.CaseDocument, error)
}

// CaseAttributeExtractor asks the AI collaborator to turn a case description
// into structured attributes. Implementations may fail; the extraction use
// case owns the fallback policy.
type CaseAttributeExtractor interface {
	ExtractAttributes(ctx context.Context, description, caseType string) (domain.CaseAttributes, error)
}

// LegalContentGenerator is the AI boundary for the assistant operations.
// Implementations return parsed model output; every method may fail and the
// assistant use case owns the deterministic fallbacks.
type LegalContentGenerator interface {
	CaseInsights(ctx context.Context, c domain.Case) (domain.CaseInsights, error)
	AnswerQuestion(ctx context.Context, question, caseType string) (string, error)
	IntakeQuestions(ctx context.Context, caseType string) ([]domain.IntakeQuestion, error)
	DraftDocument(ctx context.Context, spec domain.DocumentSpec) (string, error)
	ResearchSuggestions(ctx context.Context, c domain.Case) (domain.ResearchSuggestions, error)
}

// MessageQueue publishes/consumes case-submitted events.
type MessageQueue interface {
	PublishCaseSubmitted(ctx context.Context, caseID string) error
	SubscribeCaseSubmitted(ctx context.Context, handler func(context.Context, string) error) error
}

// ObjectStorage stores uploaded case documents.
type ObjectStorage interface {
	Save(ctx context.Context, key string, data io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// TextExtractor extracts plain text from an uploaded case document.
type TextExtractor interface {
	Extract(ctx context.Context, r io.Reader, mimeType string) (string, error)
}
