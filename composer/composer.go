// Package composer materializes composite ontologies: it merges a base
// ontology with its eligible derived children into one graph with
// provenance metadata. Composition is read-only; callers decide whether to
// feed the result back into the version store.
package composer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ontovault/ontovault/errors"
	"github.com/ontovault/ontovault/graphio"
	"github.com/ontovault/ontovault/ontology"
)

// Provenance predicates specific to composition.
const (
	mergeRolePredicate   = "http://ontovault.org/ns#mergeRole"
	derivedFromPredicate = "http://ontovault.org/ns#derivedFrom"
)

// Options configure a Composer.
type Options struct {
	// MaxHierarchyDepth bounds ancestor and descendant walks.
	MaxHierarchyDepth int
}

// Composer merges base ontologies with their derived children.
type Composer struct {
	store    *ontology.Store
	logger   *zap.SugaredLogger
	maxDepth int
}

// New creates a composer over the given version store. The logger may be
// nil for silent operation.
func New(store *ontology.Store, logger *zap.SugaredLogger, opts Options) *Composer {
	if opts.MaxHierarchyDepth <= 0 {
		opts.MaxHierarchyDepth = 64
	}
	return &Composer{store: store, logger: logger, maxDepth: opts.MaxHierarchyDepth}
}

// MergedChild describes one child that contributed triples to a merge.
type MergedChild struct {
	Name         string `json:"name"`
	ID           int64  `json:"id"`
	Version      string `json:"version"`
	TripleCount  int    `json:"triple_count"`
	OntologyType string `json:"ontology_type"`
}

// BaseInfo identifies the base ontology of a merge.
type BaseInfo struct {
	Name    string `json:"name"`
	ID      int64  `json:"id"`
	Version string `json:"version"`
}

// MergeMetadata describes the outcome of a merge.
type MergeMetadata struct {
	BaseOntology     BaseInfo      `json:"base_ontology"`
	MergedChildren   []MergedChild `json:"merged_children"`
	CompositeVersion string        `json:"composite_version"`
	// TotalTriples counts the merged data triples; the provenance block
	// appended to the output is not included.
	TotalTriples   int       `json:"total_triples"`
	MergeTimestamp time.Time `json:"merge_timestamp"`
	IncludeDrafts  bool      `json:"include_drafts"`
	// Warnings records children skipped for missing or unparsable
	// content. Non-fatal: the rest of the merge proceeds.
	Warnings []string `json:"warnings,omitempty"`
}

// MergeWithChildren merges the base ontology's current content with the
// current content of its mergeable direct children. A base without content
// is a validation error and aborts the merge; a child that cannot be parsed
// is skipped with a warning.
func (c *Composer) MergeWithChildren(ctx context.Context, baseID string, includeDrafts bool) (string, *MergeMetadata, error) {
	base, err := c.store.GetOntology(ctx, baseID)
	if err != nil {
		return "", nil, err
	}

	baseVersion, err := c.store.CurrentVersion(ctx, base.ID)
	if errors.IsNotFoundError(err) || (err == nil && baseVersion.Content == "") {
		return "", nil, errors.NewValidationError("no content found for base ontology: %s", base.Name)
	}
	if err != nil {
		return "", nil, err
	}

	merged, err := graphio.Parse(baseVersion.Content, "turtle")
	if err != nil {
		return "", nil, errors.NewValidationError("invalid RDF content in base ontology %s: %v", base.Name, err)
	}
	if c.logger != nil {
		c.logger.Infow("Parsed base ontology", "ontology", base.Name, "triples", merged.Len())
	}

	children, err := c.store.Children(ctx, base.ID)
	if err != nil {
		return "", nil, err
	}

	var (
		mergedChildren []MergedChild
		warnings       []string
	)
	for _, child := range children {
		childVersion, err := c.store.CurrentVersion(ctx, child.ID)
		if errors.IsNotFoundError(err) {
			warnings = append(warnings, fmt.Sprintf("skipping child %s: no content", child.Name))
			continue
		}
		if err != nil {
			return "", nil, err
		}

		if !includeDrafts && (childVersion.WorkflowStatus != ontology.StatusPublished || childVersion.IsDraft) {
			if c.logger != nil {
				c.logger.Debugw("Skipping child without published version", "child", child.Name)
			}
			continue
		}

		if childVersion.Content == "" {
			warnings = append(warnings, fmt.Sprintf("skipping child %s: no content", child.Name))
			continue
		}

		childGraph, err := graphio.Parse(childVersion.Content, "turtle")
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("skipping child %s: unparsable content", child.Name))
			if c.logger != nil {
				c.logger.Warnw("Failed to parse child ontology", "child", child.Name, "error", err)
			}
			continue
		}

		merged.Union(childGraph)
		mergedChildren = append(mergedChildren, MergedChild{
			Name:         child.Name,
			ID:           child.ID,
			Version:      versionTag(childVersion),
			TripleCount:  childGraph.Len(),
			OntologyType: child.OntologyType,
		})
		if c.logger != nil {
			c.logger.Infow("Merged child ontology", "child", child.Name, "triples", childGraph.Len())
		}
	}

	// Count data triples before the provenance block goes in.
	totalTriples := merged.Len()

	now := time.Now().UTC()
	if err := c.addProvenance(merged, base, mergedChildren, now); err != nil {
		return "", nil, err
	}

	content, err := merged.Serialize("turtle")
	if err != nil {
		return "", nil, errors.Wrap(err, "serialize merged graph")
	}

	meta := &MergeMetadata{
		BaseOntology: BaseInfo{
			Name:    base.Name,
			ID:      base.ID,
			Version: versionTag(baseVersion),
		},
		MergedChildren:   mergedChildren,
		CompositeVersion: compositeVersion(versionTag(baseVersion), mergedChildren),
		TotalTriples:     totalTriples,
		MergeTimestamp:   now,
		IncludeDrafts:    includeDrafts,
		Warnings:         warnings,
	}

	if c.logger != nil {
		c.logger.Infow("Merge complete",
			"base", base.Name,
			"merged_children", len(mergedChildren),
			"total_triples", meta.TotalTriples,
			"composite_version", meta.CompositeVersion,
			"warnings", len(warnings),
		)
	}
	return content, meta, nil
}

// addProvenance records one merge activity and links the base and every
// merged child to it.
func (c *Composer) addProvenance(g *graphio.Graph, base *ontology.Ontology, children []MergedChild, startedAt time.Time) error {
	activity := "_:mergeActivity"
	if err := g.AddResource(activity, graphio.RDFType, graphio.ProvActivity); err != nil {
		return err
	}
	if err := g.AddLiteral(activity, graphio.RDFSLabel, "Ontology Merge Operation"); err != nil {
		return err
	}
	if err := g.AddTypedLiteral(activity, graphio.ProvStartedAt, startedAt.Format(time.RFC3339), graphio.XSDDateTime); err != nil {
		return err
	}

	baseEntity := entityURI(base)
	if err := g.AddResource(baseEntity, graphio.ProvInfluencedBy, activity); err != nil {
		return err
	}
	if err := g.AddLiteral(baseEntity, mergeRolePredicate, "base"); err != nil {
		return err
	}

	for _, child := range children {
		childURI := strings.TrimSuffix(baseEntity, "#") + "/derived/" + child.Name
		if err := g.AddResource(childURI, graphio.ProvInfluencedBy, activity); err != nil {
			return err
		}
		if err := g.AddLiteral(childURI, mergeRolePredicate, "derived"); err != nil {
			return err
		}
		if err := g.AddResource(childURI, derivedFromPredicate, baseEntity); err != nil {
			return err
		}
	}
	return nil
}

// compositeVersion builds the deterministic composite version id. The hash
// covers the sorted child version tags, so the id depends only on the set
// of merged versions, not on discovery order.
func compositeVersion(baseTag string, children []MergedChild) string {
	tags := make([]string, len(children))
	for i, child := range children {
		tags[i] = child.Version
	}
	sort.Strings(tags)

	sum := sha256.Sum256([]byte(strings.Join(tags, "|")))
	hash8 := hex.EncodeToString(sum[:])[:8]
	return fmt.Sprintf("%s-composite-%dchildren-%s", baseTag, len(children), hash8)
}

func versionTag(v *ontology.Version) string {
	if v.VersionTag != "" {
		return v.VersionTag
	}
	return fmt.Sprintf("v%d", v.VersionNumber)
}

func entityURI(o *ontology.Ontology) string {
	if o.BaseURI != "" {
		return o.BaseURI
	}
	return "http://ontovault.org/ontology/" + o.Name + "#"
}
