// Package graphio implements the RDF graph contract consumed by the
// composer: parsing, triple-set union, and serialization. It wraps
// github.com/knakk/rdf so callers never touch RDF terms directly.
package graphio

import (
	"bytes"
	"strings"

	"github.com/knakk/rdf"

	"github.com/ontovault/ontovault/errors"
)

// Well-known vocabulary IRIs used for provenance statements.
const (
	RDFType          = "http://www.w3.org/1999/02/22-rdf-syntax-ns#type"
	RDFSLabel        = "http://www.w3.org/2000/01/rdf-schema#label"
	XSDDateTime      = "http://www.w3.org/2001/XMLSchema#dateTime"
	ProvActivity     = "http://www.w3.org/ns/prov#Activity"
	ProvInfluencedBy = "http://www.w3.org/ns/prov#wasInfluencedBy"
	ProvStartedAt    = "http://www.w3.org/ns/prov#startedAtTime"
)

// Graph is a set of RDF triples. The zero value is not usable; use New or
// Parse. Duplicate triples are collapsed, so Union has set semantics.
type Graph struct {
	triples []rdf.Triple
	seen    map[string]struct{}
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{seen: make(map[string]struct{})}
}

// Parse decodes serialized RDF content into a graph. Supported formats:
// "turtle" (default), "ntriples", "rdfxml".
func Parse(content, format string) (*Graph, error) {
	f, err := formatFromString(format)
	if err != nil {
		return nil, err
	}

	dec := rdf.NewTripleDecoder(strings.NewReader(content), f)
	triples, err := dec.DecodeAll()
	if err != nil {
		return nil, errors.Wrap(err, "decode RDF content")
	}

	g := New()
	for _, t := range triples {
		g.add(t)
	}
	return g, nil
}

// Len returns the number of distinct triples in the graph.
func (g *Graph) Len() int {
	return len(g.triples)
}

// Union adds every triple of other into g.
func (g *Graph) Union(other *Graph) {
	for _, t := range other.triples {
		g.add(t)
	}
}

// Serialize encodes the graph. The triple ordering follows insertion order,
// so serializing the same graph twice yields identical output.
func (g *Graph) Serialize(format string) (string, error) {
	f, err := formatFromString(format)
	if err != nil {
		return "", err
	}
	// knakk/rdf only encodes line-based formats.
	if f == rdf.Turtle || f == rdf.RDFXML {
		f = rdf.NTriples
	}

	var buf bytes.Buffer
	enc := rdf.NewTripleEncoder(&buf, f)
	for _, t := range g.triples {
		if err := enc.Encode(t); err != nil {
			return "", errors.Wrap(err, "encode triple")
		}
	}
	if err := enc.Close(); err != nil {
		return "", errors.Wrap(err, "flush encoder")
	}
	return buf.String(), nil
}

// AddResource adds a triple whose object is an IRI (or a blank node when
// prefixed with "_:").
func (g *Graph) AddResource(subj, pred, obj string) error {
	s, err := subjectTerm(subj)
	if err != nil {
		return err
	}
	p, err := rdf.NewIRI(pred)
	if err != nil {
		return errors.Wrapf(err, "invalid predicate %q", pred)
	}
	o, err := objectTerm(obj)
	if err != nil {
		return err
	}
	g.add(rdf.Triple{Subj: s, Pred: p, Obj: o})
	return nil
}

// AddLiteral adds a triple whose object is a plain string literal.
func (g *Graph) AddLiteral(subj, pred, value string) error {
	return g.addLiteralTerm(subj, pred, func() (rdf.Literal, error) {
		return rdf.NewLiteral(value)
	})
}

// AddTypedLiteral adds a triple whose object is a literal with the given
// datatype IRI.
func (g *Graph) AddTypedLiteral(subj, pred, value, datatype string) error {
	return g.addLiteralTerm(subj, pred, func() (rdf.Literal, error) {
		dt, err := rdf.NewIRI(datatype)
		if err != nil {
			return rdf.Literal{}, errors.Wrapf(err, "invalid datatype %q", datatype)
		}
		return rdf.NewTypedLiteral(value, dt), nil
	})
}

func (g *Graph) addLiteralTerm(subj, pred string, mk func() (rdf.Literal, error)) error {
	s, err := subjectTerm(subj)
	if err != nil {
		return err
	}
	p, err := rdf.NewIRI(pred)
	if err != nil {
		return errors.Wrapf(err, "invalid predicate %q", pred)
	}
	lit, err := mk()
	if err != nil {
		return err
	}
	g.add(rdf.Triple{Subj: s, Pred: p, Obj: lit})
	return nil
}

func (g *Graph) add(t rdf.Triple) {
	key := t.Serialize(rdf.NTriples)
	if _, dup := g.seen[key]; dup {
		return
	}
	g.seen[key] = struct{}{}
	g.triples = append(g.triples, t)
}

// subjectTerm parses an IRI or "_:"-prefixed blank node label.
func subjectTerm(s string) (rdf.Subject, error) {
	if strings.HasPrefix(s, "_:") {
		b, err := rdf.NewBlank(strings.TrimPrefix(s, "_:"))
		if err != nil {
			return nil, errors.Wrapf(err, "invalid blank node %q", s)
		}
		return b, nil
	}
	iri, err := rdf.NewIRI(s)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid subject IRI %q", s)
	}
	return iri, nil
}

func objectTerm(s string) (rdf.Object, error) {
	if strings.HasPrefix(s, "_:") {
		b, err := rdf.NewBlank(strings.TrimPrefix(s, "_:"))
		if err != nil {
			return nil, errors.Wrapf(err, "invalid blank node %q", s)
		}
		return b, nil
	}
	iri, err := rdf.NewIRI(s)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid object IRI %q", s)
	}
	return iri, nil
}

func formatFromString(format string) (rdf.Format, error) {
	switch strings.ToLower(format) {
	case "", "turtle", "ttl":
		return rdf.Turtle, nil
	case "ntriples", "nt", "n-triples":
		return rdf.NTriples, nil
	case "rdfxml", "xml":
		return rdf.RDFXML, nil
	default:
		return rdf.Turtle, errors.NewValidationError("unsupported RDF format: %s", format)
	}
}
