package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/lexova/lexova-backend/internal/core/domain"
	"github.com/lexova/lexova-backend/internal/core/ports"
	"github.com/lexova/lexova-backend/internal/core/taxonomy"
)

const (
	// MinMatchScore is the inclusion threshold; weaker candidates are
	// dropped entirely rather than ranked low.
	MinMatchScore = 40

	// MaxMatches caps the result list.
	MaxMatches = 10
)

// MatchLawyersUseCase runs the full matching pipeline: extract structured
// case attributes, score every candidate, then rank and trim.
type MatchLawyersUseCase struct {
	catalog   ports.LawyerCatalog
	extractor ports.CaseAttributeExtractor
	scorer    *ScoringEngine
	tax       *taxonomy.Taxonomy
	logger    *slog.Logger
}

func NewMatchLawyersUseCase(
	catalog ports.LawyerCatalog,
	extractor ports.CaseAttributeExtractor,
	scorer *ScoringEngine,
	tax *taxonomy.Taxonomy,
	logger *slog.Logger,
) *MatchLawyersUseCase {
	return &MatchLawyersUseCase{
		catalog:   catalog,
		extractor: extractor,
		scorer:    scorer,
		tax:       tax,
		logger:    logger,
	}
}

// FindMatches returns at most MaxMatches results sorted by score descending.
// An empty result is a valid outcome, not an error. Ties keep catalog order,
// so repeated calls over the same pool rank identically.
func (uc *MatchLawyersUseCase) FindMatches(
	ctx context.Context,
	req domain.MatchRequest,
) ([]domain.MatchResult, error) {
	if strings.TrimSpace(req.CaseType) == "" && strings.TrimSpace(req.Description) == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "find matches",
			fmt.Errorf("request carries neither case type nor description"))
	}

	attrs := uc.AnalyzeCase(ctx, req.Description, req.CaseType)

	lawyers, err := uc.catalog.GetAvailableLawyers(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch candidate lawyers: %w", err)
	}

	results := make([]domain.MatchResult, 0, len(lawyers))
	for _, lawyer := range lawyers {
		if err := validateProfile(lawyer); err != nil {
			return nil, domain.WrapError(domain.ErrInvalidInput, "score candidate", err)
		}
		score, reasons := uc.scorer.Score(lawyer, req, attrs)
		if score < MinMatchScore {
			continue
		}
		results = append(results, domain.MatchResult{
			Lawyer:         lawyer,
			MatchScore:     score,
			MatchReasons:   reasons,
			CaseAttributes: attrs,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].MatchScore > results[j].MatchScore
	})
	if len(results) > MaxMatches {
		results = results[:MaxMatches]
	}

	uc.logger.Info("matching_completed",
		"case_type", req.CaseType,
		"candidates", len(lawyers),
		"matches", len(results),
	)
	return results, nil
}

// AnalyzeCase produces structured attributes for a description. Extraction
// failures collapse to the deterministic default record; this method never
// fails.
func (uc *MatchLawyersUseCase) AnalyzeCase(
	ctx context.Context,
	description, caseType string,
) domain.CaseAttributes {
	attrs, err := uc.extractor.ExtractAttributes(ctx, description, caseType)
	if err != nil {
		uc.logger.Warn("attribute_extraction_fallback",
			"case_type", caseType,
			"error", err,
		)
		attrs = domain.DefaultCaseAttributes(caseType)
	}
	return uc.normalizeAttributes(attrs, caseType)
}

// normalizeAttributes fills the fields the extractor is allowed to leave
// blank so downstream scoring never sees an incomplete record.
func (uc *MatchLawyersUseCase) normalizeAttributes(
	attrs domain.CaseAttributes,
	caseType string,
) domain.CaseAttributes {
	if strings.TrimSpace(attrs.CaseType) == "" {
		attrs.CaseType = caseType
	}
	attrs.ComplexityLevel = domain.ParseComplexityLevel(string(attrs.ComplexityLevel))
	attrs.Urgency = domain.ParseUrgency(string(attrs.Urgency))
	attrs.BudgetBand = domain.ParseBudgetBand(string(attrs.BudgetBand))
	if attrs.CaseCategory == "" {
		if cat, ok := uc.tax.ResolveCategory(attrs.CaseType); ok {
			attrs.CaseCategory = cat.ID
		}
	}
	return attrs
}

// validateProfile rejects malformed catalog rows before they reach scoring.
// A bad profile is a data defect worth surfacing, not something to score
// around.
func validateProfile(l domain.LawyerProfile) error {
	switch {
	case l.ID == "":
		return fmt.Errorf("lawyer profile without id")
	case l.ExperienceYears < 0:
		return fmt.Errorf("lawyer %s: negative experience years %d", l.ID, l.ExperienceYears)
	case l.HourlyRate < 0:
		return fmt.Errorf("lawyer %s: negative hourly rate %.2f", l.ID, l.HourlyRate)
	case l.AverageRating < 0 || l.AverageRating > 5:
		return fmt.Errorf("lawyer %s: rating %.2f outside 0-5", l.ID, l.AverageRating)
	case l.SuccessRate < 0 || l.SuccessRate > 1:
		return fmt.Errorf("lawyer %s: success rate %.2f outside 0-1", l.ID, l.SuccessRate)
	case l.ReviewCount < 0:
		return fmt.Errorf("lawyer %s: negative review count %d", l.ID, l.ReviewCount)
	default:
		return nil
	}
}
