package ports

import (
	"context"
	"io"

	"github.com/lexova/lexova-backend/internal/core/domain"
)

// LawyerMatcher is the inbound contract for lawyer matching.
type LawyerMatcher interface {
	FindMatches(ctx context.Context, req domain.MatchRequest) ([]domain.MatchResult, error)
	AnalyzeCase(ctx context.Context, description, caseType string) domain.CaseAttributes
}

// CaseAssistant is the inbound contract for the AI assistant operations.
type CaseAssistant interface {
	CaseInsights(ctx context.Context, c domain.Case) domain.CaseInsights
	AnswerQuestion(ctx context.Context, question, caseType string) domain.AssistantAnswer
	IntakeQuestions(ctx context.Context, caseType string) []domain.IntakeQuestion
	GenerateDocument(ctx context.Context, documentType string, c domain.Case, parameters map[string]string) domain.GeneratedDocument
	ResearchSuggestions(ctx context.Context, c domain.Case) domain.ResearchSuggestions
}

// CaseSubmitter is the inbound contract for case intake.
type CaseSubmitter interface {
	Submit(ctx context.Context, c *domain.Case) error
	GetByID(ctx context.Context, id string) (*domain.Case, error)
	AttachDocument(ctx context.Context, caseID, title, mimeType string, body io.Reader) (*domain.CaseDocument, error)
}

// CaseAnalyzer is the inbound contract for asynchronous case analysis.
type CaseAnalyzer interface {
	AnalyzeByID(ctx context.Context, caseID string) error
}
