// Package taxonomy holds the static practice-area taxonomy and the keyword
// tables used for question categorization. A Taxonomy is immutable after
// construction and safe for unsynchronized concurrent reads.
package taxonomy

import "strings"

// Category is one top-level practice area: a stable id, its ordered case
// subtypes, and the keywords that signal it in free-text questions.
type Category struct {
	ID       string   `yaml:"id"`
	Subtypes []string `yaml:"subtypes"`
	Keywords []string `yaml:"keywords"`
}

type Taxonomy struct {
	categories []Category
}

// New builds a taxonomy from an explicit category list. Order is preserved;
// categorization output depends on it.
func New(categories []Category) *Taxonomy {
	out := make([]Category, len(categories))
	copy(out, categories)
	return &Taxonomy{categories: out}
}

// Default returns the built-in legal practice-area taxonomy.
func Default() *Taxonomy {
	return New(defaultCategories())
}

// Categories returns a copy of the category list in declaration order.
func (t *Taxonomy) Categories() []Category {
	out := make([]Category, len(t.categories))
	copy(out, t.categories)
	return out
}

// ResolveCategory maps a free-form case type to a category. It first looks
// for an exact case-insensitive subtype match across all categories, then
// falls back to a substring match of the case type against the category id
// with underscores spaced out. No match is a valid outcome, not an error.
func (t *Taxonomy) ResolveCategory(caseType string) (Category, bool) {
	needle := strings.ToLower(strings.TrimSpace(caseType))
	if needle == "" {
		return Category{}, false
	}

	for _, cat := range t.categories {
		for _, subtype := range cat.Subtypes {
			if strings.ToLower(subtype) == needle {
				return cat, true
			}
		}
	}

	for _, cat := range t.categories {
		if strings.Contains(spacedID(cat.ID), needle) {
			return cat, true
		}
	}

	return Category{}, false
}

// CategorizeQuestion tags a free-text question with the categories it
// touches: a category matches when its spaced name appears in the case-type
// hint, or when any of its keywords appears in the question text. Always
// returns at least one tag; "general" when nothing matches. Pure function of
// the static tables, so output is reproducible.
func (t *Taxonomy) CategorizeQuestion(question, caseTypeHint string) []string {
	questionLower := strings.ToLower(question)
	hintLower := strings.ToLower(caseTypeHint)

	var tags []string
	for _, cat := range t.categories {
		if hintLower != "" && strings.Contains(hintLower, spacedID(cat.ID)) {
			tags = append(tags, cat.ID)
			continue
		}
		for _, keyword := range cat.Keywords {
			if strings.Contains(questionLower, keyword) {
				tags = append(tags, cat.ID)
				break
			}
		}
	}

	if len(tags) == 0 {
		return []string{GeneralCategory}
	}
	return tags
}

// GeneralCategory is the fallback tag when no practice area matches.
const GeneralCategory = "general"

func spacedID(id string) string {
	return strings.ReplaceAll(strings.ToLower(id), "_", " ")
}

func defaultCategories() []Category {
	return []Category{
		{
			ID:       "family_law",
			Subtypes: []string{"Divorce", "Child Custody", "Adoption", "Domestic Violence", "Prenuptial Agreement"},
			Keywords: []string{"divorce", "custody", "child support", "alimony", "adoption", "marriage"},
		},
		{
			ID:       "criminal_law",
			Subtypes: []string{"DUI Defense", "Drug Offenses", "Assault", "White Collar Crime", "Theft"},
			Keywords: []string{"arrest", "charges", "crime", "criminal", "defense", "guilty", "jail", "police", "prosecution"},
		},
		{
			ID:       "personal_injury",
			Subtypes: []string{"Car Accident", "Medical Malpractice", "Workplace Injury", "Product Liability", "Slip and Fall"},
			Keywords: []string{"accident", "injury", "damages", "compensation", "negligence", "medical malpractice"},
		},
		{
			ID:       "real_estate",
			Subtypes: []string{"Property Purchase", "Landlord-Tenant Disputes", "Foreclosure", "Zoning Issues", "Construction Disputes"},
			Keywords: []string{"property", "lease", "tenant", "landlord", "eviction", "foreclosure", "mortgage", "deed"},
		},
		{
			ID:       "business_law",
			Subtypes: []string{"Contract Disputes", "Business Formation", "Intellectual Property", "Employment Issues", "Mergers & Acquisitions"},
			Keywords: []string{"contract", "business", "corporation", "llc", "partnership", "breach", "agreement"},
		},
		{
			ID:       "immigration",
			Subtypes: []string{"Visa Application", "Green Card", "Deportation Defense", "Citizenship", "Asylum"},
			Keywords: []string{"visa", "citizenship", "green card", "deportation", "immigration", "asylum"},
		},
		{
			ID:       "intellectual_property",
			Subtypes: []string{"Patent", "Trademark", "Copyright", "Trade Secret", "IP Litigation"},
			Keywords: []string{"copyright", "trademark", "patent", "ip", "infringement", "invention"},
		},
		{
			ID:       "tax_law",
			Subtypes: []string{"Tax Disputes", "IRS Audits", "Tax Planning", "International Tax", "State Tax Issues"},
			Keywords: []string{"tax", "irs", "audit", "deduction", "filing"},
		},
		{
			ID:       "employment_law",
			Subtypes: []string{"Wrongful Termination", "Discrimination", "Harassment", "Wage Disputes", "Workers' Compensation"},
			Keywords: []string{"employer", "employee", "fired", "termination", "discrimination", "harassment", "wages", "workplace"},
		},
		{
			ID:       "estate_planning",
			Subtypes: []string{"Wills", "Trusts", "Probate", "Estate Administration", "Elder Law"},
			Keywords: []string{"will", "trust", "estate", "inheritance", "probate", "executor"},
		},
	}
}
