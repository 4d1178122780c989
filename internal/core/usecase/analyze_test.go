package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/lexova/lexova-backend/internal/core/domain"
)

type matcherFake struct {
	attrs domain.CaseAttributes
}

func (f *matcherFake) FindMatches(context.Context, domain.MatchRequest) ([]domain.MatchResult, error) {
	return nil, nil
}

func (f *matcherFake) AnalyzeCase(context.Context, string, string) domain.CaseAttributes {
	return f.attrs
}

type assistantFake struct {
	insights     domain.CaseInsights
	insightsCase domain.Case
}

func (f *assistantFake) CaseInsights(_ context.Context, c domain.Case) domain.CaseInsights {
	f.insightsCase = c
	return f.insights
}

func (f *assistantFake) AnswerQuestion(context.Context, string, string) domain.AssistantAnswer {
	return domain.AssistantAnswer{}
}

func (f *assistantFake) IntakeQuestions(context.Context, string) []domain.IntakeQuestion {
	return nil
}

func (f *assistantFake) GenerateDocument(context.Context, string, domain.Case, map[string]string) domain.GeneratedDocument {
	return domain.GeneratedDocument{}
}

func (f *assistantFake) ResearchSuggestions(context.Context, domain.Case) domain.ResearchSuggestions {
	return domain.ResearchSuggestions{}
}

func TestAnalyzeByIDSuccess(t *testing.T) {
	repo := &caseRepoFake{cases: map[string]*domain.Case{
		"case-1": {ID: "case-1", CaseType: "Divorce", Description: "Contested divorce"},
	}}
	matcher := &matcherFake{attrs: domain.DefaultCaseAttributes("Divorce")}
	assistant := &assistantFake{insights: domain.CaseInsights{KeyLegalIssues: []string{"custody"}}}
	uc := NewAnalyzeCaseUseCase(repo, matcher, assistant)

	if err := uc.AnalyzeByID(context.Background(), "case-1"); err != nil {
		t.Fatalf("AnalyzeByID() error = %v", err)
	}

	if repo.savedAttrs == nil || repo.savedAttrs.CaseType != "Divorce" {
		t.Fatalf("attributes not saved: %+v", repo.savedAttrs)
	}
	if repo.savedInsights == nil || repo.savedInsights.KeyLegalIssues[0] != "custody" {
		t.Fatalf("insights not saved: %+v", repo.savedInsights)
	}

	want := []statusCall{
		{status: domain.CaseStatusAnalyzing},
		{status: domain.CaseStatusAnalyzed},
	}
	if len(repo.statusCalls) != len(want) {
		t.Fatalf("status calls = %+v, want %+v", repo.statusCalls, want)
	}
	for i := range want {
		if repo.statusCalls[i].status != want[i].status {
			t.Fatalf("status call %d = %s, want %s", i, repo.statusCalls[i].status, want[i].status)
		}
	}
}

func TestAnalyzeByIDLoadsDocumentsForInsights(t *testing.T) {
	repo := &caseRepoFake{
		cases: map[string]*domain.Case{
			"case-1": {ID: "case-1", CaseType: "Contract Dispute", Description: "Breach of a supply contract"},
		},
		listDocs: []domain.CaseDocument{
			{ID: "doc-1", CaseID: "case-1", Title: "supply-agreement.pdf", Text: "Section 4: delivery within 30 days"},
		},
	}
	assistant := &assistantFake{}
	uc := NewAnalyzeCaseUseCase(repo, &matcherFake{}, assistant)

	if err := uc.AnalyzeByID(context.Background(), "case-1"); err != nil {
		t.Fatalf("AnalyzeByID() error = %v", err)
	}

	if len(assistant.insightsCase.Documents) != 1 {
		t.Fatalf("assistant received %d documents, want 1", len(assistant.insightsCase.Documents))
	}
	if assistant.insightsCase.Documents[0].Text != "Section 4: delivery within 30 days" {
		t.Fatalf("assistant received document text %q", assistant.insightsCase.Documents[0].Text)
	}
}

func TestAnalyzeByIDListDocumentsFailureSurfaces(t *testing.T) {
	repo := &caseRepoFake{
		cases:   map[string]*domain.Case{"case-1": {ID: "case-1"}},
		listErr: errors.New("db down"),
	}
	uc := NewAnalyzeCaseUseCase(repo, &matcherFake{}, &assistantFake{})

	if err := uc.AnalyzeByID(context.Background(), "case-1"); err == nil {
		t.Fatalf("expected error when listing documents fails")
	}
	if len(repo.statusCalls) != 0 {
		t.Fatalf("status should not change when documents cannot be loaded: %+v", repo.statusCalls)
	}
}

func TestAnalyzeByIDUnknownCase(t *testing.T) {
	repo := &caseRepoFake{cases: map[string]*domain.Case{}}
	uc := NewAnalyzeCaseUseCase(repo, &matcherFake{}, &assistantFake{})

	err := uc.AnalyzeByID(context.Background(), "missing")
	if !domain.IsKind(err, domain.ErrCaseNotFound) {
		t.Fatalf("error = %v, want ErrCaseNotFound", err)
	}
	if len(repo.statusCalls) != 0 {
		t.Fatalf("status should not change for unknown case: %+v", repo.statusCalls)
	}
}

func TestAnalyzeByIDSaveFailureMarksFailed(t *testing.T) {
	repo := &caseRepoFake{
		cases:   map[string]*domain.Case{"case-1": {ID: "case-1"}},
		saveErr: errors.New("db down"),
	}
	uc := NewAnalyzeCaseUseCase(repo, &matcherFake{}, &assistantFake{})

	if err := uc.AnalyzeByID(context.Background(), "case-1"); err == nil {
		t.Fatalf("expected error when save fails")
	}

	last := repo.statusCalls[len(repo.statusCalls)-1]
	if last.status != domain.CaseStatusAnalysisFailed {
		t.Fatalf("last status = %s, want analysis_failed", last.status)
	}
	if last.errMsg == "" {
		t.Fatalf("failure status should carry the error message")
	}
}

func TestAnalyzeByIDFailedMarkFailureSurfacesBoth(t *testing.T) {
	repo := &caseRepoFake{
		cases:         map[string]*domain.Case{"case-1": {ID: "case-1"}},
		saveErr:       errors.New("db down"),
		failStatusErr: errors.New("also down"),
	}
	uc := NewAnalyzeCaseUseCase(repo, &matcherFake{}, &assistantFake{})

	err := uc.AnalyzeByID(context.Background(), "case-1")
	if err == nil {
		t.Fatalf("expected combined error")
	}
}
