package concepts

import "strings"

// Canonical concept categories.
var Categories = []string{
	"Role", "Principle", "Obligation", "State", "Resource",
	"Action", "Event", "Capability", "Constraint",
}

// categoryRules is the ordered classification table for ontology entities.
// Rules are tried top to bottom against the lowercased label and URI; the
// first match wins, so longer and more specific patterns come first.
var categoryRules = []struct {
	pattern  string
	category string
}{
	{"obligation", "Obligation"},
	{"constraint", "Constraint"},
	{"capability", "Capability"},
	{"principle", "Principle"},
	{"resource", "Resource"},
	{"event", "Event"},
	{"action", "Action"},
	{"state", "State"},
	{"role", "Role"},
}

// categoryFor classifies an entity by label and URI. The second return is
// false when no rule matches.
func categoryFor(label, uri string) (string, bool) {
	hay := strings.ToLower(label) + " " + strings.ToLower(uri)
	for _, rule := range categoryRules {
		if strings.Contains(hay, rule.pattern) {
			return rule.category, true
		}
	}
	return "", false
}

// deriveSemanticLabel strips a parenthesized type suffix, so
// "Public Safety (Principle)" becomes "Public Safety".
func deriveSemanticLabel(label string) string {
	if i := strings.Index(label, " ("); i >= 0 {
		return strings.TrimSpace(label[:i])
	}
	return strings.TrimSpace(label)
}
