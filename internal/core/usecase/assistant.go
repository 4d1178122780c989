package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/lexova/lexova-backend/internal/core/domain"
	"github.com/lexova/lexova-backend/internal/core/ports"
	"github.com/lexova/lexova-backend/internal/core/taxonomy"
)

const (
	insightsDisclaimer = "This AI-generated guidance is for informational purposes only and does not constitute legal advice. " +
		"The information provided is based on general legal principles and may not apply to your specific situation. " +
		"Always consult with a qualified attorney for advice tailored to your circumstances."

	answerDisclaimer = "\n\nPlease note: This information is for educational purposes only and does not constitute legal advice. " +
		"Laws vary by jurisdiction and individual circumstances. Consult with a qualified attorney for advice specific to your situation."

	documentDisclaimer = "This is an AI-generated document draft for review purposes only. " +
		"It should not be used or filed without review and approval by a qualified attorney. " +
		"The content may not be legally sound or appropriate for your specific situation."

	researchDisclaimer = "These research suggestions are generated by AI to assist with legal research. " +
		"They are not exhaustive and may not cover all relevant legal issues. " +
		"Consult with your attorney to develop a comprehensive research strategy."

	draftStatus = "AI-generated draft - requires attorney review"
)

// CaseAssistantUseCase wraps the AI generator with deterministic fallbacks
// and the mandatory disclaimers. Every operation returns a usable record even
// when the generator is down; AI failure degrades quality, never availability.
type CaseAssistantUseCase struct {
	generator ports.LegalContentGenerator
	tax       *taxonomy.Taxonomy
	logger    *slog.Logger
}

func NewCaseAssistantUseCase(
	generator ports.LegalContentGenerator,
	tax *taxonomy.Taxonomy,
	logger *slog.Logger,
) *CaseAssistantUseCase {
	return &CaseAssistantUseCase{generator: generator, tax: tax, logger: logger}
}

func (uc *CaseAssistantUseCase) CaseInsights(ctx context.Context, c domain.Case) domain.CaseInsights {
	insights, err := uc.generator.CaseInsights(ctx, c)
	if err != nil {
		uc.logger.Warn("case_insights_fallback", "case_id", c.ID, "error", err)
		insights = defaultCaseInsights()
	}
	insights.Disclaimer = insightsDisclaimer
	insights.GeneratedAt = time.Now().UTC()
	return insights
}

func (uc *CaseAssistantUseCase) AnswerQuestion(ctx context.Context, question, caseType string) domain.AssistantAnswer {
	answer, err := uc.generator.AnswerQuestion(ctx, question, caseType)
	if err != nil {
		uc.logger.Warn("legal_question_fallback", "error", err)
		answer = "I apologize, but I'm unable to provide a specific answer to your question at this time. " +
			"Legal questions often require consideration of specific jurisdictional laws and individual circumstances. " +
			"I recommend discussing this matter with your attorney who can provide personalized guidance. " +
			"\n\nPlease note: AI responses are for informational purposes only and do not constitute legal advice."
	} else {
		lower := strings.ToLower(answer)
		if !strings.Contains(lower, "not legal advice") && !strings.Contains(lower, "not constitute legal advice") {
			answer += answerDisclaimer
		}
	}

	return domain.AssistantAnswer{
		Question:   question,
		Answer:     answer,
		Categories: uc.tax.CategorizeQuestion(question, caseType),
		AnsweredAt: time.Now().UTC(),
	}
}

func (uc *CaseAssistantUseCase) IntakeQuestions(ctx context.Context, caseType string) []domain.IntakeQuestion {
	questions, err := uc.generator.IntakeQuestions(ctx, caseType)
	if err != nil || len(questions) == 0 {
		if err != nil {
			uc.logger.Warn("intake_questions_fallback", "case_type", caseType, "error", err)
		}
		return defaultIntakeQuestions(caseType)
	}
	return filterIntakeQuestions(questions)
}

func (uc *CaseAssistantUseCase) GenerateDocument(
	ctx context.Context,
	documentType string,
	c domain.Case,
	parameters map[string]string,
) domain.GeneratedDocument {
	template, instructions := documentTemplate(documentType)
	content, err := uc.generator.DraftDocument(ctx, domain.DocumentSpec{
		DocumentType: documentType,
		Template:     template,
		Instructions: instructions,
		CaseType:     c.CaseType,
		Description:  c.Description,
		Parameters:   parameters,
	})
	if err != nil {
		uc.logger.Warn("document_generation_fallback", "document_type", documentType, "error", err)
		return domain.GeneratedDocument{
			Title:        fmt.Sprintf("Error Generating %s", titleWords(documentType)),
			Content:      "Document generation failed. Please try again or consult with your attorney.",
			DocumentType: documentType,
			DraftStatus:  draftStatus,
			Disclaimer:   "Document generation failed. Please consult with your attorney.",
			GeneratedAt:  time.Now().UTC(),
		}
	}

	title := fmt.Sprintf("%s: %s", titleWords(documentType), c.CaseType)
	if recipient, ok := parameters["recipient_name"]; ok && recipient != "" {
		title += " - " + recipient
	}

	return domain.GeneratedDocument{
		Title:        title,
		Content:      cleanDocumentFormatting(content),
		DocumentType: documentType,
		DraftStatus:  draftStatus,
		Disclaimer:   documentDisclaimer,
		GeneratedAt:  time.Now().UTC(),
	}
}

func (uc *CaseAssistantUseCase) ResearchSuggestions(ctx context.Context, c domain.Case) domain.ResearchSuggestions {
	suggestions, err := uc.generator.ResearchSuggestions(ctx, c)
	if err != nil {
		uc.logger.Warn("research_suggestions_fallback", "case_id", c.ID, "error", err)
		return domain.ResearchSuggestions{
			KeyLegalQuestions: []string{"Consult with your attorney to identify key legal questions for your case"},
			RelevantDoctrines: []string{"Specific legal doctrines will depend on your case details"},
			PrecedentTypes:    []string{"Your attorney will identify relevant precedents for your situation"},
			SuggestedSources: []string{
				"Legal databases such as Westlaw or LexisNexis",
				"State and federal court websites",
				"Legal treatises specific to your case type",
			},
			SearchTerms: []string{c.CaseType, "legal precedent", "case law"},
			Disclaimer:  "These are general research suggestions. Consult with your attorney for guidance specific to your case.",
		}
	}
	suggestions.Disclaimer = researchDisclaimer
	return suggestions
}

func defaultCaseInsights() domain.CaseInsights {
	return domain.CaseInsights{
		KeyLegalIssues:      []string{"Unable to automatically analyze issues"},
		PotentialApproaches: []string{"Consult with a qualified attorney for personalized guidance"},
		CommonChallenges:    []string{"Case complexity may vary based on specific details"},
		NextSteps:           []string{"Schedule a consultation with a matched lawyer"},
		RelevantConcepts:    []string{"Specific legal principles will be explained by your attorney"},
		TimelineExpectations: []string{
			"Timeline varies based on case complexity and jurisdiction",
		},
		DocumentsToPrepare: []string{
			"Identification documents",
			"Any contracts or agreements related to the case",
			"Timeline of events",
			"Any correspondence related to the issue",
		},
	}
}

// filterIntakeQuestions drops malformed entries instead of failing the whole
// response. Options are only meaningful on multiple-choice questions.
func filterIntakeQuestions(questions []domain.IntakeQuestion) []domain.IntakeQuestion {
	out := make([]domain.IntakeQuestion, 0, len(questions))
	for _, q := range questions {
		if strings.TrimSpace(q.Question) == "" || q.Type == "" {
			continue
		}
		if q.Type != domain.QuestionMultipleChoice {
			q.Options = nil
		} else if len(q.Options) == 0 {
			continue
		}
		out = append(out, q)
	}
	return out
}

func defaultIntakeQuestions(caseType string) []domain.IntakeQuestion {
	return []domain.IntakeQuestion{
		{
			Question:    fmt.Sprintf("When did the %s issue first arise?", caseType),
			Type:        domain.QuestionDate,
			Explanation: "Helps establish timeline and potential statute of limitations",
		},
		{
			Question:    "Have you consulted with any other lawyers about this matter?",
			Type:        domain.QuestionYesNo,
			Explanation: "Identifies if other legal opinions have been given",
		},
		{
			Question:    "Please describe your ideal outcome for this case.",
			Type:        domain.QuestionText,
			Explanation: "Helps understand client expectations and goals",
		},
		{
			Question: "How urgent is this matter for you?",
			Type:     domain.QuestionMultipleChoice,
			Options: []string{
				"Emergency - need immediate help",
				"Urgent - within days",
				"Standard - within a week",
				"Flexible - within weeks",
				"Planning ahead - not time-sensitive",
			},
			Explanation: "Establishes timeline expectations",
		},
		{
			Question: "What is your budget range for legal services?",
			Type:     domain.QuestionMultipleChoice,
			Options: []string{
				"Under $1,000",
				"$1,000-$5,000",
				"$5,000-$15,000",
				"$15,000-$50,000",
				"Over $50,000",
				"Prefer not to say",
			},
			Explanation: "Helps match with lawyers in appropriate fee range",
		},
	}
}

// cleanDocumentFormatting strips the markdown wrapper models tend to add and
// normalizes line endings.
func cleanDocumentFormatting(content string) string {
	if strings.HasPrefix(content, "```") && strings.Contains(content[3:], "```") {
		parts := strings.SplitN(content, "```", 3)
		content = parts[1]
		if strings.HasPrefix(content, "markdown\n") || strings.HasPrefix(content, "md\n") {
			content = content[strings.Index(content, "\n")+1:]
		}
		content = strings.TrimSpace(content)
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}

// titleWords turns a snake_case document type into a display title.
func titleWords(id string) string {
	words := strings.Split(strings.ReplaceAll(id, "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
