package composer

import (
	"context"
	"fmt"

	"github.com/ontovault/ontovault/errors"
	"github.com/ontovault/ontovault/graphio"
)

// ValidationReport is the outcome of a pre-merge compatibility check.
// Errors make the merge unviable; warnings describe children that would be
// skipped.
type ValidationReport struct {
	IsValid       bool     `json:"is_valid"`
	BaseOntology  string   `json:"base_ontology"`
	ChildrenCount int      `json:"children_count"`
	Errors        []string `json:"errors,omitempty"`
	Warnings      []string `json:"warnings,omitempty"`
}

// ValidateMergeCompatibility dry-runs a merge without producing output. It
// reports the problems MergeWithChildren would hit for the same base.
func (c *Composer) ValidateMergeCompatibility(ctx context.Context, baseID string) (*ValidationReport, error) {
	base, err := c.store.GetOntology(ctx, baseID)
	if err != nil {
		return nil, err
	}

	report := &ValidationReport{IsValid: true, BaseOntology: base.Name}

	baseVersion, err := c.store.CurrentVersion(ctx, base.ID)
	switch {
	case errors.IsNotFoundError(err):
		report.Errors = append(report.Errors, fmt.Sprintf("base ontology %s has no current version", base.Name))
	case err != nil:
		return nil, err
	case baseVersion.Content == "":
		report.Errors = append(report.Errors, fmt.Sprintf("base ontology %s has no content", base.Name))
	default:
		if _, perr := graphio.Parse(baseVersion.Content, "turtle"); perr != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("base ontology %s has unparsable content: %v", base.Name, perr))
		}
	}

	children, err := c.store.Children(ctx, base.ID)
	if err != nil {
		return nil, err
	}
	report.ChildrenCount = len(children)

	for _, child := range children {
		childVersion, err := c.store.CurrentVersion(ctx, child.ID)
		if errors.IsNotFoundError(err) {
			report.Warnings = append(report.Warnings, fmt.Sprintf("child %s has no current version and would be skipped", child.Name))
			continue
		}
		if err != nil {
			return nil, err
		}
		if childVersion.Content == "" {
			report.Warnings = append(report.Warnings, fmt.Sprintf("child %s has no content and would be skipped", child.Name))
			continue
		}
		if _, perr := graphio.Parse(childVersion.Content, "turtle"); perr != nil {
			report.Warnings = append(report.Warnings, fmt.Sprintf("child %s has unparsable content and would be skipped", child.Name))
		}
		if child.BaseURI != "" && child.BaseURI == base.BaseURI {
			report.Warnings = append(report.Warnings, fmt.Sprintf("child %s shares the base URI of %s; merged terms may collide", child.Name, base.Name))
		}
	}

	report.IsValid = len(report.Errors) == 0
	return report, nil
}
