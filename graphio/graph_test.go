package graphio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const turtleDoc = `
@prefix ex: <http://example.org/> .
@prefix rdfs: <http://www.w3.org/2000/01/rdf-schema#> .

ex:Alice a ex:Person ;
    rdfs:label "Alice" .
ex:Bob a ex:Person .
`

func TestParseTurtle(t *testing.T) {
	g, err := Parse(turtleDoc, "turtle")
	require.NoError(t, err)
	assert.Equal(t, 3, g.Len())
}

func TestParseMalformed(t *testing.T) {
	_, err := Parse("this is not turtle @@@", "turtle")
	require.Error(t, err)
}

func TestParseUnsupportedFormat(t *testing.T) {
	_, err := Parse(turtleDoc, "jsonld")
	require.Error(t, err)
}

func TestUnionIsSetUnion(t *testing.T) {
	a, err := Parse(`<http://example.org/a> <http://example.org/p> <http://example.org/b> .`, "ntriples")
	require.NoError(t, err)
	b, err := Parse(`
<http://example.org/a> <http://example.org/p> <http://example.org/b> .
<http://example.org/c> <http://example.org/p> <http://example.org/d> .
`, "ntriples")
	require.NoError(t, err)

	a.Union(b)
	assert.Equal(t, 2, a.Len(), "shared triple must not be counted twice")
}

func TestRoundTripPreservesTriples(t *testing.T) {
	g, err := Parse(turtleDoc, "turtle")
	require.NoError(t, err)

	out, err := g.Serialize("ntriples")
	require.NoError(t, err)

	back, err := Parse(out, "ntriples")
	require.NoError(t, err)
	assert.Equal(t, g.Len(), back.Len())

	// Semantic equality: union adds nothing new.
	back.Union(g)
	assert.Equal(t, g.Len(), back.Len())
}

func TestAddStatements(t *testing.T) {
	g := New()

	require.NoError(t, g.AddResource("_:merge1", RDFType, ProvActivity))
	require.NoError(t, g.AddLiteral("_:merge1", RDFSLabel, "Ontology Merge Operation"))
	require.NoError(t, g.AddTypedLiteral("_:merge1", ProvStartedAt, "2026-08-26T00:00:00Z", XSDDateTime))
	require.NoError(t, g.AddResource("http://example.org/base", ProvInfluencedBy, "_:merge1"))

	assert.Equal(t, 4, g.Len())

	// Duplicate insertion is a no-op.
	require.NoError(t, g.AddResource("http://example.org/base", ProvInfluencedBy, "_:merge1"))
	assert.Equal(t, 4, g.Len())
}

func TestAddResourceRejectsInvalidIRI(t *testing.T) {
	g := New()
	err := g.AddResource("not a valid iri with spaces", RDFType, ProvActivity)
	require.Error(t, err)
	assert.Equal(t, 0, g.Len())
}
