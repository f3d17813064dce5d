package composer

import (
	"context"

	"github.com/ontovault/ontovault/errors"
	"github.com/ontovault/ontovault/ontology"
)

// Hierarchy is the parent/child neighborhood of an ontology, plus the full
// ancestor chain and descendant tree.
type Hierarchy struct {
	Ontology    *ontology.Ontology   `json:"ontology"`
	Parent      *ontology.Ontology   `json:"parent,omitempty"`
	Children    []*ontology.Ontology `json:"children"`
	Ancestors   []*ontology.Ontology `json:"ancestors"`
	Descendants []*ontology.Ontology `json:"descendants"`
}

// Hierarchy resolves the relationship graph around the given ontology.
// Ancestors are ordered nearest first. A parent cycle or a depth beyond the
// configured maximum is a data-integrity error.
func (c *Composer) Hierarchy(ctx context.Context, ontologyID string) (*Hierarchy, error) {
	o, err := c.store.GetOntology(ctx, ontologyID)
	if err != nil {
		return nil, err
	}

	h := &Hierarchy{Ontology: o}

	h.Ancestors, err = c.ancestors(ctx, o)
	if err != nil {
		return nil, err
	}
	if len(h.Ancestors) > 0 {
		h.Parent = h.Ancestors[0]
	}

	h.Children, err = c.store.Children(ctx, o.ID)
	if err != nil {
		return nil, err
	}

	h.Descendants, err = c.descendants(ctx, o)
	if err != nil {
		return nil, err
	}
	return h, nil
}

func (c *Composer) ancestors(ctx context.Context, o *ontology.Ontology) ([]*ontology.Ontology, error) {
	var chain []*ontology.Ontology
	visited := map[int64]struct{}{o.ID: {}}

	current := o
	for current.ParentID != nil {
		if len(chain) >= c.maxDepth {
			return nil, errors.NewDataIntegrityError("ontology hierarchy exceeds maximum depth %d at %s", c.maxDepth, current.IDString())
		}
		parent, err := c.store.GetOntologyByRowID(ctx, *current.ParentID)
		if err != nil {
			return nil, err
		}
		if _, seen := visited[parent.ID]; seen {
			return nil, errors.NewDataIntegrityError("cycle detected in ontology hierarchy at %s", parent.IDString())
		}
		visited[parent.ID] = struct{}{}
		chain = append(chain, parent)
		current = parent
	}
	return chain, nil
}

// descendants walks the child tree breadth-first.
func (c *Composer) descendants(ctx context.Context, root *ontology.Ontology) ([]*ontology.Ontology, error) {
	var all []*ontology.Ontology
	visited := map[int64]struct{}{root.ID: {}}

	frontier := []*ontology.Ontology{root}
	for depth := 0; len(frontier) > 0; depth++ {
		if depth >= c.maxDepth {
			return nil, errors.NewDataIntegrityError("ontology hierarchy exceeds maximum depth %d below %s", c.maxDepth, root.IDString())
		}
		var next []*ontology.Ontology
		for _, node := range frontier {
			children, err := c.store.Children(ctx, node.ID)
			if err != nil {
				return nil, err
			}
			for _, child := range children {
				if _, seen := visited[child.ID]; seen {
					return nil, errors.NewDataIntegrityError("cycle detected in ontology hierarchy at %s", child.IDString())
				}
				visited[child.ID] = struct{}{}
				all = append(all, child)
				next = append(next, child)
			}
		}
		frontier = next
	}
	return all, nil
}
