package concepts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryFor(t *testing.T) {
	tests := []struct {
		name    string
		label   string
		uri     string
		want    string
		matched bool
	}{
		{"role by label", "Engineer Role", "http://example.org/core#E1", "Role", true},
		{"role by uri", "", "http://example.org/core#StakeholderRole", "Role", true},
		{"principle", "Public Safety Principle", "", "Principle", true},
		{"obligation", "Reporting Obligation", "", "Obligation", true},
		{"state", "Conflict State", "", "State", true},
		{"resource", "Technical Resource", "", "Resource", true},
		{"action", "Remediation Action", "", "Action", true},
		{"event", "Disclosure Event", "", "Event", true},
		{"capability", "Design Capability", "", "Capability", true},
		{"constraint", "Budget Constraint", "", "Constraint", true},
		{"case insensitive", "PUBLICSAFETYPRINCIPLE", "", "Principle", true},
		{"no match", "Widget", "http://example.org/core#Widget", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := categoryFor(tt.label, tt.uri)
			assert.Equal(t, tt.matched, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

// Rules are ordered; the first pattern in the table decides when several
// could match.
func TestCategoryForFirstRuleWins(t *testing.T) {
	got, ok := categoryFor("Role Obligation", "")
	assert.True(t, ok)
	assert.Equal(t, "Obligation", got)
}

func TestDeriveSemanticLabel(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{"Public Safety (Principle)", "Public Safety"},
		{"Engineer Role", "Engineer Role"},
		{"Honesty (Principle) (Core)", "Honesty"},
		{"  Padded (Role)", "Padded"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, deriveSemanticLabel(tt.label), "label %q", tt.label)
	}
}
