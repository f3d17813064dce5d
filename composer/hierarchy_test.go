package composer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ontovault/ontovault/errors"
)

func TestHierarchyResolvesRelatives(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	baseRowID := f.storeBase(t, "eth:base", turtleTriples("base", 1))
	childRowID := f.storeChild(t, "eth:mid", baseRowID, turtleTriples("mid", 1), nil)
	f.storeChild(t, "eth:leaf", childRowID, turtleTriples("leaf", 1), nil)

	h, err := f.composer.Hierarchy(ctx, "eth:mid")
	require.NoError(t, err)

	assert.Equal(t, "mid", h.Ontology.Name)
	require.NotNil(t, h.Parent)
	assert.Equal(t, "base", h.Parent.Name)

	require.Len(t, h.Ancestors, 1)
	assert.Equal(t, "base", h.Ancestors[0].Name)

	require.Len(t, h.Children, 1)
	assert.Equal(t, "leaf", h.Children[0].Name)

	require.Len(t, h.Descendants, 1)
	assert.Equal(t, "leaf", h.Descendants[0].Name)
}

func TestHierarchyRootHasNoParent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	baseRowID := f.storeBase(t, "eth:base", turtleTriples("base", 1))
	f.storeChild(t, "eth:a", baseRowID, turtleTriples("a", 1), nil)
	f.storeChild(t, "eth:b", baseRowID, turtleTriples("b", 1), nil)

	h, err := f.composer.Hierarchy(ctx, "eth:base")
	require.NoError(t, err)

	assert.Nil(t, h.Parent)
	assert.Empty(t, h.Ancestors)
	assert.Len(t, h.Children, 2)
	assert.Len(t, h.Descendants, 2)
}

func TestHierarchyDetectsParentCycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	baseRowID := f.storeBase(t, "eth:base", turtleTriples("base", 1))
	childRowID := f.storeChild(t, "eth:child", baseRowID, turtleTriples("child", 1), nil)

	// Corrupt the tree: point the base back at its own child.
	_, err := f.db.ExecContext(ctx,
		"UPDATE ontologies SET parent_ontology_id = ? WHERE id = ?",
		childRowID, baseRowID)
	require.NoError(t, err)

	_, err = f.composer.Hierarchy(ctx, "eth:child")
	require.Error(t, err)
	assert.True(t, errors.IsDataIntegrityError(err))

	_, err = f.composer.Hierarchy(ctx, "eth:base")
	require.Error(t, err)
	assert.True(t, errors.IsDataIntegrityError(err))
}

func TestHierarchyEnforcesMaxDepth(t *testing.T) {
	f := newFixture(t)
	f.composer = New(f.store, nil, Options{MaxHierarchyDepth: 2})
	ctx := context.Background()

	rowID := f.storeBase(t, "eth:l0", turtleTriples("l0", 1))
	for _, name := range []string{"eth:l1", "eth:l2", "eth:l3"} {
		rowID = f.storeChild(t, name, rowID, turtleTriples(name, 1), nil)
	}

	_, err := f.composer.Hierarchy(ctx, "eth:l3")
	require.Error(t, err)
	assert.True(t, errors.IsDataIntegrityError(err))

	_, err = f.composer.Hierarchy(ctx, "eth:l0")
	require.Error(t, err)
	assert.True(t, errors.IsDataIntegrityError(err))
}

func TestHierarchyUnknownOntology(t *testing.T) {
	f := newFixture(t)

	_, err := f.composer.Hierarchy(context.Background(), "eth:missing")
	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))
}
