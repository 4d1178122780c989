package usecase

import (
	"context"
	"fmt"

	"github.com/lexova/lexova-backend/internal/core/domain"
	"github.com/lexova/lexova-backend/internal/core/ports"
)

// AnalyzeCaseUseCase is the worker-side pipeline behind a case submission:
// extract structured attributes, generate insights, persist both. Attribute
// extraction and insights never fail outright (they fall back to defaults),
// so a case only lands in analysis_failed on persistence errors.
type AnalyzeCaseUseCase struct {
	repo      ports.CaseRepository
	matcher   ports.LawyerMatcher
	assistant ports.CaseAssistant
}

func NewAnalyzeCaseUseCase(
	repo ports.CaseRepository,
	matcher ports.LawyerMatcher,
	assistant ports.CaseAssistant,
) *AnalyzeCaseUseCase {
	return &AnalyzeCaseUseCase{
		repo:      repo,
		matcher:   matcher,
		assistant: assistant,
	}
}

func (uc *AnalyzeCaseUseCase) AnalyzeByID(ctx context.Context, caseID string) error {
	c, err := uc.repo.GetByID(ctx, caseID)
	if err != nil {
		return fmt.Errorf("fetch case by id: %w", err)
	}
	docs, err := uc.repo.ListDocuments(ctx, caseID)
	if err != nil {
		return fmt.Errorf("list case documents: %w", err)
	}
	c.Documents = docs

	if err := uc.markStatus(ctx, caseID, domain.CaseStatusAnalyzing, ""); err != nil {
		return fmt.Errorf("set status=analyzing: %w", err)
	}

	attrs := uc.matcher.AnalyzeCase(ctx, c.Description, c.CaseType)
	insights := uc.assistant.CaseInsights(ctx, *c)

	if err := uc.repo.SaveAnalysis(ctx, caseID, attrs, insights); err != nil {
		saveErr := fmt.Errorf("save case analysis: %w", err)
		if failErr := uc.markFailed(ctx, caseID, saveErr); failErr != nil {
			return fmt.Errorf("%w; mark failed status: %v", saveErr, failErr)
		}
		return saveErr
	}

	if err := uc.markStatus(ctx, caseID, domain.CaseStatusAnalyzed, ""); err != nil {
		return fmt.Errorf("set status=analyzed: %w", err)
	}

	return nil
}

func (uc *AnalyzeCaseUseCase) markStatus(ctx context.Context, caseID string, status domain.CaseStatus, errMessage string) error {
	return uc.repo.UpdateStatus(ctx, caseID, status, errMessage)
}

func (uc *AnalyzeCaseUseCase) markFailed(ctx context.Context, caseID string, analysisErr error) error {
	if analysisErr == nil {
		return nil
	}
	return uc.markStatus(ctx, caseID, domain.CaseStatusAnalysisFailed, analysisErr.Error())
}
