package domain

import "time"

// CaseInsights is AI-generated guidance for a case. Every field has a
// deterministic fallback so callers always receive a complete record.
type CaseInsights struct {
	KeyLegalIssues       []string  `json:"key_legal_issues"`
	PotentialApproaches  []string  `json:"potential_approaches"`
	CommonChallenges     []string  `json:"common_challenges"`
	NextSteps            []string  `json:"next_steps"`
	RelevantConcepts     []string  `json:"relevant_legal_concepts"`
	TimelineExpectations []string  `json:"timeline_expectations"`
	DocumentsToPrepare   []string  `json:"documents_to_prepare"`
	Disclaimer           string    `json:"disclaimer"`
	GeneratedAt          time.Time `json:"generated_at"`
}

// AssistantAnswer is the response to a legal question, categorized and
// carrying the mandatory disclaimer.
type AssistantAnswer struct {
	Question   string    `json:"question"`
	Answer     string    `json:"answer"`
	Categories []string  `json:"categories"`
	AnsweredAt time.Time `json:"answered_at"`
}

type QuestionType string

const (
	QuestionText           QuestionType = "text"
	QuestionYesNo          QuestionType = "yes_no"
	QuestionDate           QuestionType = "date"
	QuestionMultipleChoice QuestionType = "multiple_choice"
)

// IntakeQuestion is one question to ask a client before a lawyer takes the
// case on.
type IntakeQuestion struct {
	Question    string       `json:"question"`
	Type        QuestionType `json:"type"`
	Options     []string     `json:"options,omitempty"`
	Explanation string       `json:"explanation,omitempty"`
}

// DocumentSpec describes one document drafting request handed to the AI
// generator. Template and Instructions come from the built-in template table
// keyed by DocumentType.
type DocumentSpec struct {
	DocumentType string
	Template     string
	Instructions string
	CaseType     string
	Description  string
	Parameters   map[string]string
}

// GeneratedDocument is an AI-drafted legal document. Always flagged as a
// draft requiring attorney review.
type GeneratedDocument struct {
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	DocumentType string    `json:"document_type"`
	DraftStatus  string    `json:"draft_status"`
	Disclaimer   string    `json:"disclaimer"`
	GeneratedAt  time.Time `json:"generated_at"`
}

// ResearchSuggestions lists research directions for a case.
type ResearchSuggestions struct {
	KeyLegalQuestions []string `json:"key_legal_questions"`
	RelevantDoctrines []string `json:"relevant_legal_doctrines"`
	PrecedentTypes    []string `json:"types_of_precedents"`
	SuggestedSources  []string `json:"suggested_research_sources"`
	SearchTerms       []string `json:"potential_search_terms"`
	Disclaimer        string   `json:"disclaimer"`
}
