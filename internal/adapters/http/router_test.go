package httpadapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/lexova/lexova-backend/internal/core/domain"
	"github.com/lexova/lexova-backend/internal/core/taxonomy"
)

type matcherStub struct {
	matches []domain.MatchResult
	err     error
	attrs   domain.CaseAttributes
}

func (m *matcherStub) FindMatches(_ context.Context, _ domain.MatchRequest) ([]domain.MatchResult, error) {
	return m.matches, m.err
}

func (m *matcherStub) AnalyzeCase(_ context.Context, _, _ string) domain.CaseAttributes {
	return m.attrs
}

type assistantStub struct {
	answer    domain.AssistantAnswer
	insights  domain.CaseInsights
	questions []domain.IntakeQuestion
	document  domain.GeneratedDocument
	research  domain.ResearchSuggestions
}

func (a *assistantStub) CaseInsights(_ context.Context, _ domain.Case) domain.CaseInsights {
	return a.insights
}

func (a *assistantStub) AnswerQuestion(_ context.Context, question, _ string) domain.AssistantAnswer {
	answer := a.answer
	answer.Question = question
	return answer
}

func (a *assistantStub) IntakeQuestions(_ context.Context, _ string) []domain.IntakeQuestion {
	return a.questions
}

func (a *assistantStub) GenerateDocument(_ context.Context, documentType string, _ domain.Case, _ map[string]string) domain.GeneratedDocument {
	doc := a.document
	doc.DocumentType = documentType
	return doc
}

func (a *assistantStub) ResearchSuggestions(_ context.Context, _ domain.Case) domain.ResearchSuggestions {
	return a.research
}

type submitterStub struct {
	submitErr error
	cases     map[string]*domain.Case
	getErr    error
	document  *domain.CaseDocument
	attachErr error
}

func (s *submitterStub) Submit(_ context.Context, c *domain.Case) error {
	if s.submitErr != nil {
		return s.submitErr
	}
	c.ID = "case-1"
	c.Status = domain.CaseStatusSubmitted
	return nil
}

func (s *submitterStub) GetByID(_ context.Context, id string) (*domain.Case, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	c, ok := s.cases[id]
	if !ok {
		return nil, domain.WrapError(domain.ErrCaseNotFound, "get case", errors.New(id))
	}
	return c, nil
}

func (s *submitterStub) AttachDocument(_ context.Context, _, _, _ string, _ io.Reader) (*domain.CaseDocument, error) {
	if s.attachErr != nil {
		return nil, s.attachErr
	}
	return s.document, nil
}

func newTestRouter(matcher *matcherStub, assistant *assistantStub, submitter *submitterStub) http.Handler {
	if matcher == nil {
		matcher = &matcherStub{}
	}
	if assistant == nil {
		assistant = &assistantStub{}
	}
	if submitter == nil {
		submitter = &submitterStub{}
	}
	return NewRouter(matcher, assistant, submitter, taxonomy.Default(), RouterOptions{}).Handler()
}

func postJSONRequest(t *testing.T, handler http.Handler, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)
	return res
}

func TestHealthz(t *testing.T) {
	handler := newTestRouter(nil, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", res.Code)
	}
	if res.Header().Get("X-Request-Id") == "" {
		t.Fatalf("expected request id header")
	}
}

func TestFindMatchesReturnsRankedMatches(t *testing.T) {
	matcher := &matcherStub{matches: []domain.MatchResult{
		{Lawyer: domain.LawyerProfile{ID: "l-1", Name: "Jennifer Davis"}, MatchScore: 88, MatchReasons: []string{"Strong specialization match: Jennifer Davis specializes in Family Law, Divorce"}},
	}}
	handler := newTestRouter(matcher, nil, nil)

	res := postJSONRequest(t, handler, "/v1/matching/find", map[string]any{
		"case_type": "Divorce",
		"budget":    "medium",
	})

	if res.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", res.Code, res.Body.String())
	}
	var payload struct {
		Matches []domain.MatchResult `json:"matches"`
	}
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(payload.Matches) != 1 || payload.Matches[0].MatchScore != 88 {
		t.Fatalf("matches = %+v", payload.Matches)
	}
}

func TestFindMatchesEmptyPoolReturnsEmptyArray(t *testing.T) {
	handler := newTestRouter(&matcherStub{}, nil, nil)

	res := postJSONRequest(t, handler, "/v1/matching/find", map[string]any{"case_type": "Divorce"})

	if res.Code != http.StatusOK {
		t.Fatalf("status = %d", res.Code)
	}
	if !strings.Contains(res.Body.String(), `"matches":[]`) {
		t.Fatalf("expected empty matches array, body = %s", res.Body.String())
	}
}

func TestFindMatchesMapsInvalidInputTo400(t *testing.T) {
	matcher := &matcherStub{err: domain.WrapError(domain.ErrInvalidInput, "find matches", errors.New("empty request"))}
	handler := newTestRouter(matcher, nil, nil)

	res := postJSONRequest(t, handler, "/v1/matching/find", map[string]any{})
	if res.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", res.Code)
	}
}

func TestFindMatchesMapsTemporaryTo503(t *testing.T) {
	matcher := &matcherStub{err: domain.WrapError(domain.ErrTemporary, "find matches", errors.New("catalog down"))}
	handler := newTestRouter(matcher, nil, nil)

	res := postJSONRequest(t, handler, "/v1/matching/find", map[string]any{"case_type": "Divorce"})
	if res.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", res.Code)
	}
}

func TestFindMatchesRejectsInvalidJSON(t *testing.T) {
	handler := newTestRouter(nil, nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/v1/matching/find", strings.NewReader("{not json"))
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", res.Code)
	}
}

func TestFindMatchesRejectsGet(t *testing.T) {
	handler := newTestRouter(nil, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/matching/find", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", res.Code)
	}
}

func TestAnalyzeCaseRequiresInput(t *testing.T) {
	handler := newTestRouter(nil, nil, nil)

	res := postJSONRequest(t, handler, "/v1/matching/analyze-case", map[string]any{})
	if res.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", res.Code)
	}
}

func TestAnalyzeCaseReturnsAttributes(t *testing.T) {
	matcher := &matcherStub{attrs: domain.CaseAttributes{
		CaseType:        "Divorce",
		CaseCategory:    "family_law",
		ComplexityLevel: domain.ComplexityModerate,
		Urgency:         domain.UrgencyStandard,
		BudgetBand:      domain.BudgetMedium,
	}}
	handler := newTestRouter(matcher, nil, nil)

	res := postJSONRequest(t, handler, "/v1/matching/analyze-case", map[string]any{"case_type": "Divorce"})
	if res.Code != http.StatusOK {
		t.Fatalf("status = %d", res.Code)
	}
	if !strings.Contains(res.Body.String(), `"case_category":"family_law"`) {
		t.Fatalf("body = %s", res.Body.String())
	}
}

func TestCaseTypesListsTaxonomy(t *testing.T) {
	handler := newTestRouter(nil, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/matching/case-types", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("status = %d", res.Code)
	}
	var payload struct {
		CaseTypes []struct {
			ID       string   `json:"id"`
			Subtypes []string `json:"subtypes"`
		} `json:"case_types"`
	}
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(payload.CaseTypes) != 10 {
		t.Fatalf("case types = %d, want 10", len(payload.CaseTypes))
	}
	if payload.CaseTypes[0].ID != "family_law" {
		t.Fatalf("first category = %s", payload.CaseTypes[0].ID)
	}
}

func TestIntakeQuestionsRequiresCaseType(t *testing.T) {
	handler := newTestRouter(nil, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/matching/questions", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", res.Code)
	}
}

func TestIntakeQuestionsReturnsList(t *testing.T) {
	assistant := &assistantStub{questions: []domain.IntakeQuestion{
		{Question: "When did the issue begin?", Type: domain.QuestionDate},
	}}
	handler := newTestRouter(nil, assistant, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/matching/questions?case_type=Divorce", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("status = %d", res.Code)
	}
	if !strings.Contains(res.Body.String(), `"case_type":"Divorce"`) {
		t.Fatalf("body = %s", res.Body.String())
	}
}

func TestChatRequiresQuestion(t *testing.T) {
	handler := newTestRouter(nil, nil, nil)

	res := postJSONRequest(t, handler, "/v1/assistant/chat", map[string]any{"case_type": "Divorce"})
	if res.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", res.Code)
	}
}

func TestChatReturnsAnswer(t *testing.T) {
	assistant := &assistantStub{answer: domain.AssistantAnswer{
		Answer:     "File a response within 30 days.",
		Categories: []string{"family_law"},
	}}
	handler := newTestRouter(nil, assistant, nil)

	res := postJSONRequest(t, handler, "/v1/assistant/chat", map[string]any{
		"question": "How do I respond to divorce papers?",
	})
	if res.Code != http.StatusOK {
		t.Fatalf("status = %d", res.Code)
	}
	if !strings.Contains(res.Body.String(), "How do I respond to divorce papers?") {
		t.Fatalf("body = %s", res.Body.String())
	}
}

func TestInsightsRequiresCaseInput(t *testing.T) {
	handler := newTestRouter(nil, nil, nil)

	res := postJSONRequest(t, handler, "/v1/assistant/insights", map[string]any{})
	if res.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", res.Code)
	}
}

func TestInsightsLoadsStoredCase(t *testing.T) {
	submitter := &submitterStub{cases: map[string]*domain.Case{
		"case-1": {ID: "case-1", CaseType: "Divorce"},
	}}
	assistant := &assistantStub{insights: domain.CaseInsights{
		KeyLegalIssues: []string{"custody"},
	}}
	handler := newTestRouter(nil, assistant, submitter)

	res := postJSONRequest(t, handler, "/v1/assistant/insights", map[string]any{"case_id": "case-1"})
	if res.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", res.Code, res.Body.String())
	}
	if !strings.Contains(res.Body.String(), "custody") {
		t.Fatalf("body = %s", res.Body.String())
	}
}

func TestInsightsUnknownCaseMaps404(t *testing.T) {
	handler := newTestRouter(nil, nil, &submitterStub{cases: map[string]*domain.Case{}})

	res := postJSONRequest(t, handler, "/v1/assistant/insights", map[string]any{"case_id": "missing"})
	if res.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", res.Code)
	}
}

func TestGenerateDocumentRequiresType(t *testing.T) {
	handler := newTestRouter(nil, nil, nil)

	res := postJSONRequest(t, handler, "/v1/assistant/documents", map[string]any{"case_type": "Divorce"})
	if res.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", res.Code)
	}
}

func TestGenerateDocumentReturnsDraft(t *testing.T) {
	assistant := &assistantStub{document: domain.GeneratedDocument{
		Title:       "Demand Letter: Contract Disputes",
		Content:     "Dear Sir or Madam,",
		DraftStatus: "AI-generated draft - requires attorney review",
	}}
	handler := newTestRouter(nil, assistant, nil)

	res := postJSONRequest(t, handler, "/v1/assistant/documents", map[string]any{
		"document_type": "demand_letter",
		"case_type":     "Contract Disputes",
	})
	if res.Code != http.StatusOK {
		t.Fatalf("status = %d", res.Code)
	}
	if !strings.Contains(res.Body.String(), `"document_type":"demand_letter"`) {
		t.Fatalf("body = %s", res.Body.String())
	}
}

func TestSubmitCaseAccepted(t *testing.T) {
	handler := newTestRouter(nil, nil, &submitterStub{})

	res := postJSONRequest(t, handler, "/v1/cases", map[string]any{
		"client_id":   "client-1",
		"case_type":   "Divorce",
		"description": "Contested divorce with custody dispute",
	})
	if res.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202", res.Code)
	}
	if !strings.Contains(res.Body.String(), `"id":"case-1"`) {
		t.Fatalf("body = %s", res.Body.String())
	}
}

func TestSubmitCaseMapsInvalidInputTo400(t *testing.T) {
	submitter := &submitterStub{
		submitErr: domain.WrapError(domain.ErrInvalidInput, "submit case", errors.New("client id is required")),
	}
	handler := newTestRouter(nil, nil, submitter)

	res := postJSONRequest(t, handler, "/v1/cases", map[string]any{"case_type": "Divorce"})
	if res.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", res.Code)
	}
}

func TestGetCaseNotFoundMaps404(t *testing.T) {
	handler := newTestRouter(nil, nil, &submitterStub{cases: map[string]*domain.Case{}})

	req := httptest.NewRequest(http.MethodGet, "/v1/cases/missing", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", res.Code)
	}
}

func TestUploadCaseDocument(t *testing.T) {
	now := time.Now().UTC()
	submitter := &submitterStub{
		cases: map[string]*domain.Case{"case-1": {ID: "case-1"}},
		document: &domain.CaseDocument{
			ID: "doc-1", CaseID: "case-1", Title: "lease.txt", CreatedAt: now,
		},
	}
	handler := newTestRouter(nil, nil, submitter)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", "lease.txt")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write([]byte("lease text")); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/v1/cases/case-1/documents", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusAccepted {
		t.Fatalf("status = %d, body = %s", res.Code, res.Body.String())
	}
	if !strings.Contains(res.Body.String(), `"id":"doc-1"`) {
		t.Fatalf("body = %s", res.Body.String())
	}
}

func TestUploadCaseDocumentRequiresMultipart(t *testing.T) {
	handler := newTestRouter(nil, nil, &submitterStub{})

	req := httptest.NewRequest(http.MethodPost, "/v1/cases/case-1/documents", strings.NewReader("{}"))
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", res.Code)
	}
}
