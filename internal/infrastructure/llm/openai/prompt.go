package openai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lexova/lexova-backend/internal/core/domain"
)

func buildExtractionPrompt(description, caseType string) string {
	const maxSnippet = 8000
	snippet := description
	if len(snippet) > maxSnippet {
		snippet = snippet[:maxSnippet]
	}

	return fmt.Sprintf(`As a legal AI assistant, analyze the following case description for a %s case.
Extract key information that would be relevant for matching with an appropriate lawyer.

Case Description:
%s

Please provide a structured analysis with the following:
1. Key legal issues identified
2. Estimated complexity level (simple, moderate, complex, highly_complex, specialized)
3. Potential specializations needed
4. Urgency assessment based on the description
5. Any jurisdictional or location-specific requirements
6. Any language or cultural considerations
7. Estimated budget range appropriateness (low, medium, high)
8. Any specific expertise that would be beneficial

Format your response as a JSON object with these keys:
key_legal_issues, complexity_level, potential_specializations, urgency_assessment,
jurisdictional_requirements, language_cultural_considerations, budget_range, specific_expertise.
`, caseType, snippet)
}

func buildInsightsPrompt(c domain.Case) string {
	return fmt.Sprintf(`As a legal AI assistant, provide insights and guidance for the following case:

Case Type: %s
Description: %s
%s
Please provide:
1. A brief analysis of the key legal issues
2. Potential approaches to the case
3. Common challenges in similar cases
4. Recommended next steps
5. Relevant legal concepts the client should understand
6. Potential timeline expectations
7. Documents the client should prepare

Format your response as a JSON object with these keys:
key_legal_issues, potential_approaches, common_challenges, next_steps,
relevant_legal_concepts, timeline_expectations, documents_to_prepare.
Each value must be an array of strings.
`, c.CaseType, c.Description, documentContext(c.Documents))
}

// documentContext folds extracted upload text into the analysis prompt.
// Each document is capped so one long contract cannot crowd out the rest of
// the prompt.
func documentContext(docs []domain.CaseDocument) string {
	const maxExcerpt = 4000

	var b strings.Builder
	for _, doc := range docs {
		text := strings.TrimSpace(doc.Text)
		if text == "" {
			continue
		}
		if len(text) > maxExcerpt {
			text = text[:maxExcerpt]
		}
		fmt.Fprintf(&b, "\nUploaded Document (%s):\n%s\n", doc.Title, text)
	}
	return b.String()
}

func buildAnswerPrompt(question, caseType string) string {
	context := ""
	if caseType != "" {
		context = " related to " + caseType
	}

	return fmt.Sprintf(`As a legal AI assistant, answer the following question%s:

%s

Provide a helpful, informative response that:
1. Addresses the question directly
2. Explains relevant legal concepts in plain language
3. Mentions if the answer may vary by jurisdiction
4. Includes appropriate disclaimers about not being legal advice
5. Suggests when consulting with an attorney would be beneficial

Keep your answer concise but comprehensive.
`, context, question)
}

func buildQuestionsPrompt(caseType string) string {
	return fmt.Sprintf(`As a legal AI assistant, generate 5 important questions that should be asked to a client
seeking legal help for a %s case. These questions will help lawyers better understand
the case before taking it on.

For each question, provide:
1. The question text
2. The type of question (multiple_choice, text, yes_no, date)
3. If multiple_choice, provide the possible answers
4. A brief explanation of why this question is important

Format your response as a JSON array of question objects with keys:
question, type, options, explanation.
`, caseType)
}

func buildDocumentPrompt(spec domain.DocumentSpec) string {
	params, err := json.MarshalIndent(spec.Parameters, "", "  ")
	if err != nil || spec.Parameters == nil {
		params = []byte("{}")
	}

	return fmt.Sprintf(`As a legal document drafting assistant, create a %s based on the following information:

Case Type: %s
Case Description: %s

Document Parameters:
%s

Instructions:
%s

Template Structure:
%s

Generate a professional, well-structured document following the template and incorporating the case details.
The document should be in proper legal format but written in plain language where possible.
`,
		titleFromType(spec.DocumentType),
		spec.CaseType,
		spec.Description,
		params,
		spec.Instructions,
		spec.Template,
	)
}

func buildResearchPrompt(c domain.Case) string {
	return fmt.Sprintf(`As a legal research assistant, suggest research topics and resources for the following case:

Case Type: %s
Description: %s

Please provide:
1. Key legal questions that need research
2. Relevant legal doctrines and principles
3. Types of precedents to look for
4. Suggested research sources (e.g., specific databases, treatises)
5. Potential search terms for legal research

Format your response as a JSON object with these keys:
key_legal_questions, relevant_legal_doctrines, types_of_precedents,
suggested_research_sources, potential_search_terms.
Each value must be an array of strings.
`, c.CaseType, c.Description)
}

func titleFromType(documentType string) string {
	out := make([]rune, 0, len(documentType))
	for _, r := range documentType {
		if r == '_' {
			out = append(out, ' ')
			continue
		}
		out = append(out, r)
	}
	return string(out)
}
