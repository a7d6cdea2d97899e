package rank

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nao1215/leaddeck/internal/model"
)

// MatchesCategory reports whether lead passes the industry and region filters.
// An empty filter value behaves like model.All, matching FilterSpec.Normalize.
func MatchesCategory(lead model.Lead, spec model.FilterSpec) bool {
	if spec.Industry != "" && spec.Industry != model.All && string(lead.Industry) != spec.Industry {
		return false
	}
	if spec.Region != "" && spec.Region != model.All && string(lead.Location) != spec.Region {
		return false
	}
	return true
}

// MatchesSearch reports whether term occurs in the lead's searchable text.
// The term is trimmed of Unicode white space and byte order marks and
// compared case-insensitively. An empty term
// matches every lead. Because the fields are joined with single spaces,
// a term may match across a field boundary.
func MatchesSearch(lead model.Lead, term string) bool {
	needle := fold(strings.TrimFunc(term, isTrimmable))
	if needle == "" {
		return true
	}
	return strings.Contains(fold(Haystack(lead)), needle)
}

// Haystack returns the searchable text of a lead: name, description,
// opportunity, collaboration hook, why-it-matters, signals, content ideas
// and notes, joined with single spaces.
func Haystack(lead model.Lead) string {
	return strings.Join([]string{
		lead.Name,
		lead.Description,
		lead.Opportunity,
		lead.CollaborationHook,
		lead.WhyItMatters,
		strings.Join(lead.Signals, " "),
		strings.Join(lead.ContentIdeas, " "),
		lead.Notes,
	}, " ")
}

// isTrimmable reports whether r is stripped from the ends of a search term:
// white space plus U+FEFF, without the C1 control U+0085.
func isTrimmable(r rune) bool {
	return r == '\uFEFF' || (r != '\u0085' && unicode.IsSpace(r))
}

// fold lower-cases s. A new Caser is created per call since Casers keep state.
func fold(s string) string {
	return cases.Lower(language.Und).String(s)
}
