package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/lexova/lexova-backend/internal/core/domain"
	"github.com/lexova/lexova-backend/internal/core/ports"
	"github.com/lexova/lexova-backend/internal/infrastructure/resilience"
)

type Config struct {
	BaseURL string
	Model   string
	APIKey  string
	Timeout time.Duration
}

// Client talks to an OpenAI-compatible chat completions endpoint. All
// higher-level adapters (Extractor, Generator) share one Client so they
// share its circuit breakers.
type Client struct {
	baseURL    string
	model      string
	apiKey     string
	httpClient *http.Client
	executor   *resilience.Executor
}

func New(cfg Config, executor *resilience.Executor) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		model:      cfg.Model,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: timeout},
		executor:   executor,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

func (c *Client) chat(ctx context.Context, operation, systemRole, prompt string, temperature float64, maxTokens int) (string, error) {
	request := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemRole},
			{Role: "user", Content: prompt},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}

	var response struct {
		Choices []struct {
			Message chatMessage `json:"message"`
		} `json:"choices"`
	}

	call := func(ctx context.Context) error {
		return c.postJSON(ctx, "/chat/completions", request, &response, operation)
	}

	var err error
	if c.executor != nil {
		err = c.executor.Execute(ctx, operation, call)
	} else {
		err = call(ctx)
	}
	if err != nil {
		return "", wrapTemporaryIfNeeded(operation, err)
	}

	if len(response.Choices) == 0 {
		return "", fmt.Errorf("%s: empty choices in completion response", operation)
	}
	return strings.TrimSpace(response.Choices[0].Message.Content), nil
}

// Extractor turns free-text case descriptions into structured attributes.
type Extractor struct {
	client *Client
}

func NewExtractor(client *Client) *Extractor {
	return &Extractor{client: client}
}

var _ ports.CaseAttributeExtractor = (*Extractor)(nil)

func (e *Extractor) ExtractAttributes(ctx context.Context, description, caseType string) (domain.CaseAttributes, error) {
	respText, err := e.client.chat(ctx,
		"llm.extract_attributes",
		"You are a legal analysis AI that extracts structured information from case descriptions.",
		buildExtractionPrompt(description, caseType),
		0.2, 1000)
	if err != nil {
		return domain.CaseAttributes{}, err
	}

	var wire struct {
		KeyLegalIssues                 []string `json:"key_legal_issues"`
		ComplexityLevel                string   `json:"complexity_level"`
		PotentialSpecializations       []string `json:"potential_specializations"`
		UrgencyAssessment              string   `json:"urgency_assessment"`
		JurisdictionalRequirements     string   `json:"jurisdictional_requirements"`
		LanguageCulturalConsiderations string   `json:"language_cultural_considerations"`
		BudgetRange                    string   `json:"budget_range"`
		SpecificExpertise              string   `json:"specific_expertise"`
	}
	if err := json.Unmarshal([]byte(extractJSONObject(respText)), &wire); err != nil {
		return domain.CaseAttributes{}, fmt.Errorf("parse case attributes json: %w", err)
	}

	return domain.CaseAttributes{
		CaseType:                 caseType,
		KeyLegalIssues:           wire.KeyLegalIssues,
		ComplexityLevel:          domain.ParseComplexityLevel(wire.ComplexityLevel),
		PotentialSpecializations: wire.PotentialSpecializations,
		Urgency:                  domain.ParseUrgency(wire.UrgencyAssessment),
		BudgetBand:               domain.ParseBudgetBand(wire.BudgetRange),
		JurisdictionNotes:        wire.JurisdictionalRequirements,
		LanguageNotes:            wire.LanguageCulturalConsiderations,
		SpecificExpertise:        wire.SpecificExpertise,
	}, nil
}

// Generator implements the assistant content operations on top of the chat
// client. Parsing is tolerant of markdown-wrapped JSON; failures surface as
// errors and the use case layer applies its fallbacks.
type Generator struct {
	client *Client
}

func NewGenerator(client *Client) *Generator {
	return &Generator{client: client}
}

var _ ports.LegalContentGenerator = (*Generator)(nil)

func (g *Generator) CaseInsights(ctx context.Context, c domain.Case) (domain.CaseInsights, error) {
	respText, err := g.client.chat(ctx,
		"llm.case_insights",
		"You are a legal assistant AI that provides case insights and guidance.",
		buildInsightsPrompt(c),
		0.3, 1500)
	if err != nil {
		return domain.CaseInsights{}, err
	}

	var insights domain.CaseInsights
	if err := json.Unmarshal([]byte(extractJSONObject(respText)), &insights); err != nil {
		return domain.CaseInsights{}, fmt.Errorf("parse case insights json: %w", err)
	}
	return insights, nil
}

func (g *Generator) AnswerQuestion(ctx context.Context, question, caseType string) (string, error) {
	return g.client.chat(ctx,
		"llm.answer_question",
		"You are a legal assistant AI that provides general legal information with appropriate disclaimers.",
		buildAnswerPrompt(question, caseType),
		0.3, 1000)
}

func (g *Generator) IntakeQuestions(ctx context.Context, caseType string) ([]domain.IntakeQuestion, error) {
	respText, err := g.client.chat(ctx,
		"llm.intake_questions",
		"You are a legal assistant that creates relevant case intake questions.",
		buildQuestionsPrompt(caseType),
		0.3, 1500)
	if err != nil {
		return nil, err
	}

	var wire []struct {
		Question    string   `json:"question"`
		Type        string   `json:"type"`
		Options     []string `json:"options"`
		Explanation string   `json:"explanation"`
	}
	if err := json.Unmarshal([]byte(extractJSONArray(respText)), &wire); err != nil {
		return nil, fmt.Errorf("parse intake questions json: %w", err)
	}

	questions := make([]domain.IntakeQuestion, 0, len(wire))
	for _, q := range wire {
		questions = append(questions, domain.IntakeQuestion{
			Question:    q.Question,
			Type:        domain.QuestionType(strings.ToLower(strings.TrimSpace(q.Type))),
			Options:     q.Options,
			Explanation: q.Explanation,
		})
	}
	return questions, nil
}

func (g *Generator) DraftDocument(ctx context.Context, spec domain.DocumentSpec) (string, error) {
	return g.client.chat(ctx,
		"llm.draft_document",
		"You are a legal document drafting assistant that creates professional legal documents.",
		buildDocumentPrompt(spec),
		0.4, 2000)
}

func (g *Generator) ResearchSuggestions(ctx context.Context, c domain.Case) (domain.ResearchSuggestions, error) {
	respText, err := g.client.chat(ctx,
		"llm.research_suggestions",
		"You are a legal research assistant that suggests research strategies.",
		buildResearchPrompt(c),
		0.3, 1000)
	if err != nil {
		return domain.ResearchSuggestions{}, err
	}

	var suggestions domain.ResearchSuggestions
	if err := json.Unmarshal([]byte(extractJSONObject(respText)), &suggestions); err != nil {
		return domain.ResearchSuggestions{}, fmt.Errorf("parse research suggestions json: %w", err)
	}
	return suggestions, nil
}
