package domain

// MatchRequest carries the client-side matching criteria for one request.
type MatchRequest struct {
	CaseType            string
	Description         string
	ClientLocation      string
	Budget              BudgetBand
	Urgency             Urgency
	LanguagePreferences []string
}

// MatchResult pairs a candidate lawyer with the score and explanation
// computed for one request. Ephemeral; never persisted.
type MatchResult struct {
	Lawyer         LawyerProfile  `json:"lawyer"`
	MatchScore     int            `json:"match_score"`
	MatchReasons   []string       `json:"match_reasons"`
	CaseAttributes CaseAttributes `json:"case_attributes"`
}
