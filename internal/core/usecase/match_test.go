package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/lexova/lexova-backend/internal/core/domain"
	"github.com/lexova/lexova-backend/internal/core/taxonomy"
)

type catalogFake struct {
	lawyers []domain.LawyerProfile
	err     error
}

func (f *catalogFake) GetAvailableLawyers(context.Context) ([]domain.LawyerProfile, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.lawyers, nil
}

type attributeExtractorFake struct {
	attrs domain.CaseAttributes
	err   error
}

func (f *attributeExtractorFake) ExtractAttributes(context.Context, string, string) (domain.CaseAttributes, error) {
	if f.err != nil {
		return domain.CaseAttributes{}, f.err
	}
	return f.attrs, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newMatcher(catalog *catalogFake, extractor *attributeExtractorFake) *MatchLawyersUseCase {
	tax := taxonomy.Default()
	return NewMatchLawyersUseCase(
		catalog,
		extractor,
		NewScoringEngine(tax, DefaultCalibration()),
		tax,
		testLogger(),
	)
}

func strongDivorceLawyer(id string, years int) domain.LawyerProfile {
	return domain.LawyerProfile{
		ID:              id,
		Name:            "Lawyer " + id,
		Specializations: []string{"Family Law", "Divorce"},
		ExperienceYears: years,
		CasesHandled:    years * 20,
		Languages:       []string{"English"},
		Location:        "Chicago, IL",
		AverageRating:   4.8,
		ReviewCount:     200,
		HourlyRate:      275,
		Availability:    domain.AvailabilityHigh,
		SuccessRate:     0.9,
	}
}

func weakLawyer(id string) domain.LawyerProfile {
	return domain.LawyerProfile{
		ID:              id,
		Name:            "Lawyer " + id,
		Specializations: []string{"Tax Law"},
		ExperienceYears: 0,
		Location:        "Austin, TX",
		HourlyRate:      800,
		Availability:    domain.AvailabilityLow,
	}
}

func divorceRequest() domain.MatchRequest {
	return domain.MatchRequest{
		CaseType:            "Divorce",
		Description:         "Contested divorce with custody dispute",
		ClientLocation:      "Chicago, IL",
		Budget:              domain.BudgetMedium,
		Urgency:             domain.UrgencyStandard,
		LanguagePreferences: []string{"English"},
	}
}

func TestFindMatchesRanksAndTrims(t *testing.T) {
	var pool []domain.LawyerProfile
	for i := 1; i <= 12; i++ {
		pool = append(pool, strongDivorceLawyer(fmt.Sprintf("l-%d", i), i))
	}
	catalog := &catalogFake{lawyers: pool}
	extractor := &attributeExtractorFake{attrs: domain.DefaultCaseAttributes("Divorce")}
	uc := newMatcher(catalog, extractor)

	results, err := uc.FindMatches(context.Background(), divorceRequest())
	if err != nil {
		t.Fatalf("FindMatches() error = %v", err)
	}
	if len(results) != MaxMatches {
		t.Fatalf("results = %d, want trimmed to %d", len(results), MaxMatches)
	}
	for i := 1; i < len(results); i++ {
		if results[i-1].MatchScore < results[i].MatchScore {
			t.Fatalf("results not sorted descending at %d: %d < %d",
				i, results[i-1].MatchScore, results[i].MatchScore)
		}
	}
	for _, r := range results {
		if r.MatchScore < MinMatchScore {
			t.Fatalf("result %s below threshold: %d", r.Lawyer.ID, r.MatchScore)
		}
	}
	// Most experienced lawyer ranks first.
	if results[0].Lawyer.ID != "l-12" {
		t.Fatalf("top result = %s, want l-12", results[0].Lawyer.ID)
	}
}

func TestFindMatchesFiltersBelowThreshold(t *testing.T) {
	catalog := &catalogFake{lawyers: []domain.LawyerProfile{
		weakLawyer("weak"),
		strongDivorceLawyer("strong", 15),
	}}
	extractor := &attributeExtractorFake{attrs: domain.DefaultCaseAttributes("Divorce")}
	uc := newMatcher(catalog, extractor)

	results, err := uc.FindMatches(context.Background(), divorceRequest())
	if err != nil {
		t.Fatalf("FindMatches() error = %v", err)
	}
	if len(results) != 1 || results[0].Lawyer.ID != "strong" {
		t.Fatalf("results = %+v, want only the strong candidate", results)
	}
}

func TestFindMatchesEmptyPool(t *testing.T) {
	uc := newMatcher(&catalogFake{}, &attributeExtractorFake{attrs: domain.DefaultCaseAttributes("Divorce")})

	results, err := uc.FindMatches(context.Background(), divorceRequest())
	if err != nil {
		t.Fatalf("FindMatches() error = %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("results = %v, want empty", results)
	}
}

func TestFindMatchesStableTieOrder(t *testing.T) {
	catalog := &catalogFake{lawyers: []domain.LawyerProfile{
		strongDivorceLawyer("first", 15),
		strongDivorceLawyer("second", 15),
	}}
	extractor := &attributeExtractorFake{attrs: domain.DefaultCaseAttributes("Divorce")}
	uc := newMatcher(catalog, extractor)

	results, err := uc.FindMatches(context.Background(), divorceRequest())
	if err != nil {
		t.Fatalf("FindMatches() error = %v", err)
	}
	if len(results) != 2 || results[0].Lawyer.ID != "first" || results[1].Lawyer.ID != "second" {
		t.Fatalf("tie order not preserved: %+v", results)
	}
}

func TestFindMatchesExtractionFallback(t *testing.T) {
	catalog := &catalogFake{lawyers: []domain.LawyerProfile{strongDivorceLawyer("l-1", 15)}}
	extractor := &attributeExtractorFake{err: errors.New("model unavailable")}
	uc := newMatcher(catalog, extractor)

	results, err := uc.FindMatches(context.Background(), divorceRequest())
	if err != nil {
		t.Fatalf("FindMatches() error = %v, extraction failure must not fail matching", err)
	}
	if len(results) != 1 {
		t.Fatalf("results = %d, want 1", len(results))
	}

	attrs := results[0].CaseAttributes
	if attrs.CaseType != "Divorce" {
		t.Fatalf("fallback case type = %q", attrs.CaseType)
	}
	if attrs.ComplexityLevel != domain.ComplexityModerate ||
		attrs.Urgency != domain.UrgencyStandard ||
		attrs.BudgetBand != domain.BudgetMedium {
		t.Fatalf("fallback enums not defaulted: %+v", attrs)
	}
	if attrs.CaseCategory != "family_law" {
		t.Fatalf("fallback category = %q, want family_law", attrs.CaseCategory)
	}
	if len(attrs.PotentialSpecializations) != 1 || attrs.PotentialSpecializations[0] != "Divorce" {
		t.Fatalf("fallback specializations = %v", attrs.PotentialSpecializations)
	}
}

func TestFindMatchesCatalogError(t *testing.T) {
	catalog := &catalogFake{err: errors.New("db down")}
	uc := newMatcher(catalog, &attributeExtractorFake{attrs: domain.DefaultCaseAttributes("Divorce")})

	if _, err := uc.FindMatches(context.Background(), divorceRequest()); err == nil {
		t.Fatalf("expected error when catalog is unavailable")
	}
}

func TestFindMatchesRejectsMalformedProfile(t *testing.T) {
	bad := strongDivorceLawyer("bad", 10)
	bad.SuccessRate = 1.7
	catalog := &catalogFake{lawyers: []domain.LawyerProfile{bad}}
	uc := newMatcher(catalog, &attributeExtractorFake{attrs: domain.DefaultCaseAttributes("Divorce")})

	_, err := uc.FindMatches(context.Background(), divorceRequest())
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("error = %v, want ErrInvalidInput", err)
	}
}

func TestFindMatchesRejectsEmptyRequest(t *testing.T) {
	uc := newMatcher(&catalogFake{}, &attributeExtractorFake{})

	_, err := uc.FindMatches(context.Background(), domain.MatchRequest{})
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("error = %v, want ErrInvalidInput", err)
	}
}

func TestAnalyzeCaseNormalizesPartialAttributes(t *testing.T) {
	extractor := &attributeExtractorFake{attrs: domain.CaseAttributes{
		KeyLegalIssues:           []string{"custody"},
		PotentialSpecializations: []string{"Family Law"},
	}}
	uc := newMatcher(&catalogFake{}, extractor)

	attrs := uc.AnalyzeCase(context.Background(), "description", "Divorce")
	if attrs.CaseType != "Divorce" {
		t.Fatalf("case type = %q, want backfilled Divorce", attrs.CaseType)
	}
	if attrs.ComplexityLevel != domain.ComplexityModerate {
		t.Fatalf("complexity = %q, want default moderate", attrs.ComplexityLevel)
	}
	if attrs.Urgency != domain.UrgencyStandard {
		t.Fatalf("urgency = %q, want default standard", attrs.Urgency)
	}
	if attrs.BudgetBand != domain.BudgetMedium {
		t.Fatalf("budget = %q, want default medium", attrs.BudgetBand)
	}
	if attrs.CaseCategory != "family_law" {
		t.Fatalf("category = %q, want family_law", attrs.CaseCategory)
	}
}
