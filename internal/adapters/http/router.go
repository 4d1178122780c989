package httpadapter

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/lexova/lexova-backend/internal/core/domain"
	"github.com/lexova/lexova-backend/internal/core/ports"
	"github.com/lexova/lexova-backend/internal/core/taxonomy"
	"github.com/lexova/lexova-backend/internal/observability/metrics"
)

// Router wires the inbound ports to the public HTTP surface. Handlers stay
// thin: decode, delegate, map errors to status codes.
type Router struct {
	matcher   ports.LawyerMatcher
	assistant ports.CaseAssistant
	submitter ports.CaseSubmitter
	tax       *taxonomy.Taxonomy
	options   RouterOptions
}

type RouterOptions struct {
	// Metrics enables GET /metrics and request instrumentation when set.
	Metrics *metrics.HTTPServerMetrics
	Service string

	RateLimitRPS   float64
	RateLimitBurst int
	MaxInFlight    int
}

func NewRouter(
	matcher ports.LawyerMatcher,
	assistant ports.CaseAssistant,
	submitter ports.CaseSubmitter,
	tax *taxonomy.Taxonomy,
	options RouterOptions,
) *Router {
	if tax == nil {
		tax = taxonomy.Default()
	}
	return &Router{
		matcher:   matcher,
		assistant: assistant,
		submitter: submitter,
		tax:       tax,
		options:   options,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/v1/matching/find", rt.findMatches)
	mux.HandleFunc("/v1/matching/analyze-case", rt.analyzeCase)
	mux.HandleFunc("/v1/matching/case-types", rt.caseTypes)
	mux.HandleFunc("/v1/matching/questions", rt.intakeQuestions)
	mux.HandleFunc("/v1/assistant/chat", rt.chat)
	mux.HandleFunc("/v1/assistant/insights", rt.insights)
	mux.HandleFunc("/v1/assistant/documents", rt.generateDocument)
	mux.HandleFunc("/v1/assistant/research", rt.research)
	mux.HandleFunc("/v1/cases", rt.submitCase)
	mux.HandleFunc("/v1/cases/", rt.caseSubresource)
	if rt.options.Metrics != nil {
		mux.Handle("/metrics", rt.options.Metrics.Handler())
	}

	var handler http.Handler = mux
	handler = recoverMiddleware(handler)
	handler = rateLimitMiddleware(handler, rt.options.RateLimitRPS, rt.options.RateLimitBurst)
	if rt.options.MaxInFlight > 0 {
		handler = backpressureMiddleware(handler, rt.options.MaxInFlight, defaultInFlightWait)
	}
	if rt.options.Metrics != nil {
		handler = rt.options.Metrics.Middleware(rt.options.Service, handler)
	}
	handler = accessLogMiddleware(handler)
	handler = requestIDMiddleware(handler)
	return handler
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type matchRequestPayload struct {
	CaseType            string   `json:"case_type"`
	Description         string   `json:"description"`
	Location            string   `json:"location"`
	Budget              string   `json:"budget"`
	Urgency             string   `json:"urgency"`
	LanguagePreferences []string `json:"language_preferences"`
}

func (rt *Router) findMatches(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req matchRequestPayload
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	start := time.Now()
	matches, err := rt.matcher.FindMatches(r.Context(), domain.MatchRequest{
		CaseType:            req.CaseType,
		Description:         req.Description,
		ClientLocation:      req.Location,
		Budget:              domain.ParseBudgetBand(req.Budget),
		Urgency:             domain.ParseUrgency(req.Urgency),
		LanguagePreferences: req.LanguagePreferences,
	})
	if rt.options.Metrics != nil {
		topScore := 0
		if len(matches) > 0 {
			topScore = matches[0].MatchScore
		}
		rt.options.Metrics.RecordMatchingRun(rt.options.Service, len(matches), topScore, time.Since(start), err)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	if matches == nil {
		matches = []domain.MatchResult{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"matches": matches})
}

func (rt *Router) analyzeCase(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req struct {
		CaseType    string `json:"case_type"`
		Description string `json:"description"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}
	if strings.TrimSpace(req.CaseType) == "" && strings.TrimSpace(req.Description) == "" {
		writeError(w, domain.WrapError(domain.ErrInvalidInput, "analyze case",
			errors.New("case_type or description is required")))
		return
	}

	attrs := rt.matcher.AnalyzeCase(r.Context(), req.Description, req.CaseType)
	writeJSON(w, http.StatusOK, map[string]any{"attributes": attrs})
}

func (rt *Router) caseTypes(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	type categoryPayload struct {
		ID       string   `json:"id"`
		Subtypes []string `json:"subtypes"`
	}
	categories := rt.tax.Categories()
	out := make([]categoryPayload, 0, len(categories))
	for _, cat := range categories {
		out = append(out, categoryPayload{ID: cat.ID, Subtypes: cat.Subtypes})
	}
	writeJSON(w, http.StatusOK, map[string]any{"case_types": out})
}

func (rt *Router) intakeQuestions(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	caseType := strings.TrimSpace(r.URL.Query().Get("case_type"))
	if caseType == "" {
		writeError(w, domain.WrapError(domain.ErrInvalidInput, "intake questions",
			errors.New("case_type query parameter is required")))
		return
	}

	questions := rt.assistant.IntakeQuestions(r.Context(), caseType)
	rt.recordAssistant("questions")
	writeJSON(w, http.StatusOK, map[string]any{
		"case_type": caseType,
		"questions": questions,
	})
}

func (rt *Router) chat(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req struct {
		Question string `json:"question"`
		CaseType string `json:"case_type"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		writeError(w, domain.WrapError(domain.ErrInvalidInput, "assistant chat",
			errors.New("question is required")))
		return
	}

	answer := rt.assistant.AnswerQuestion(r.Context(), req.Question, req.CaseType)
	rt.recordAssistant("chat")
	writeJSON(w, http.StatusOK, answer)
}

// casePayload is the inline case description accepted by the assistant
// endpoints. When case_id is set, the stored case wins.
type casePayload struct {
	CaseID      string `json:"case_id"`
	CaseType    string `json:"case_type"`
	Description string `json:"description"`
}

func (rt *Router) resolveCase(r *http.Request, payload casePayload) (domain.Case, error) {
	if payload.CaseID != "" {
		stored, err := rt.submitter.GetByID(r.Context(), payload.CaseID)
		if err != nil {
			return domain.Case{}, err
		}
		return *stored, nil
	}
	if strings.TrimSpace(payload.CaseType) == "" && strings.TrimSpace(payload.Description) == "" {
		return domain.Case{}, domain.WrapError(domain.ErrInvalidInput, "resolve case",
			errors.New("case_id, case_type or description is required"))
	}
	return domain.Case{
		CaseType:    payload.CaseType,
		Description: payload.Description,
	}, nil
}

func (rt *Router) insights(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req casePayload
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}
	c, err := rt.resolveCase(r, req)
	if err != nil {
		writeError(w, err)
		return
	}

	insights := rt.assistant.CaseInsights(r.Context(), c)
	rt.recordAssistant("insights")
	writeJSON(w, http.StatusOK, insights)
}

func (rt *Router) generateDocument(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req struct {
		casePayload
		DocumentType string            `json:"document_type"`
		Parameters   map[string]string `json:"parameters"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}
	if strings.TrimSpace(req.DocumentType) == "" {
		writeError(w, domain.WrapError(domain.ErrInvalidInput, "generate document",
			errors.New("document_type is required")))
		return
	}
	c, err := rt.resolveCase(r, req.casePayload)
	if err != nil {
		writeError(w, err)
		return
	}

	doc := rt.assistant.GenerateDocument(r.Context(), req.DocumentType, c, req.Parameters)
	rt.recordAssistant("documents")
	writeJSON(w, http.StatusOK, doc)
}

func (rt *Router) research(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req casePayload
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}
	c, err := rt.resolveCase(r, req)
	if err != nil {
		writeError(w, err)
		return
	}

	suggestions := rt.assistant.ResearchSuggestions(r.Context(), c)
	rt.recordAssistant("research")
	writeJSON(w, http.StatusOK, suggestions)
}

func (rt *Router) submitCase(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req struct {
		ClientID            string   `json:"client_id"`
		CaseType            string   `json:"case_type"`
		Description         string   `json:"description"`
		Location            string   `json:"location"`
		Budget              string   `json:"budget"`
		Urgency             string   `json:"urgency"`
		LanguagePreferences []string `json:"language_preferences"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	c := &domain.Case{
		ClientID:            req.ClientID,
		CaseType:            req.CaseType,
		Description:         req.Description,
		Location:            req.Location,
		Budget:              domain.BudgetBand(req.Budget),
		Urgency:             domain.Urgency(req.Urgency),
		LanguagePreferences: req.LanguagePreferences,
	}
	if err := rt.submitter.Submit(r.Context(), c); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, c)
}

// caseSubresource handles /v1/cases/{id} and /v1/cases/{id}/documents.
func (rt *Router) caseSubresource(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/v1/cases/")
	caseID, sub, _ := strings.Cut(rest, "/")
	if caseID == "" {
		writeError(w, domain.WrapError(domain.ErrInvalidInput, "case lookup",
			errors.New("case id is required")))
		return
	}

	switch sub {
	case "":
		rt.getCase(w, r, caseID)
	case "documents":
		rt.uploadCaseDocument(w, r, caseID)
	default:
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	}
}

func (rt *Router) getCase(w http.ResponseWriter, r *http.Request, caseID string) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	c, err := rt.submitter.GetByID(r.Context(), caseID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (rt *Router) uploadCaseDocument(w http.ResponseWriter, r *http.Request, caseID string) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "multipart field 'file' is required"})
		return
	}
	defer file.Close()

	doc, err := rt.submitter.AttachDocument(
		r.Context(),
		caseID,
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		file,
	)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, doc)
}

func (rt *Router) recordAssistant(endpoint string) {
	if rt.options.Metrics != nil {
		rt.options.Metrics.RecordAssistantRequest(rt.options.Service, endpoint)
	}
}

func requireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return false
	}
	return true
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
}
