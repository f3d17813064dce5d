package ontology

import (
	"context"
	"database/sql"

	"github.com/ontovault/ontovault/errors"
)

const ontologyColumns = `
	o.id, o.domain_id, d.name, o.name, o.base_uri, o.description,
	o.is_base, o.is_editable, o.ontology_type, o.parent_ontology_id`

// GetOntology resolves an ontology row by its "domain:name" id.
func (s *Store) GetOntology(ctx context.Context, ontologyID string) (*Ontology, error) {
	domainName, name, err := s.ParseID(ontologyID)
	if err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT`+ontologyColumns+`
		FROM ontologies o
		JOIN domains d ON o.domain_id = d.id
		WHERE d.name = ? AND o.name = ?`, domainName, name)

	ont, err := scanOntology(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.NewNotFoundError("ontology %s", ontologyID)
	}
	return ont, err
}

// GetOntologyByRowID resolves an ontology by its database id.
func (s *Store) GetOntologyByRowID(ctx context.Context, id int64) (*Ontology, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT`+ontologyColumns+`
		FROM ontologies o
		JOIN domains d ON o.domain_id = d.id
		WHERE o.id = ?`, id)

	ont, err := scanOntology(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.NewNotFoundError("ontology id %d", id)
	}
	return ont, err
}

// Children returns the direct children of an ontology in ascending id
// order, so enumeration is deterministic.
func (s *Store) Children(ctx context.Context, parentRowID int64) ([]*Ontology, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT`+ontologyColumns+`
		FROM ontologies o
		JOIN domains d ON o.domain_id = d.id
		WHERE o.parent_ontology_id = ?
		ORDER BY o.id ASC`, parentRowID)
	if err != nil {
		return nil, errors.WrapStorage(err, "list children")
	}
	defer rows.Close()

	var children []*Ontology
	for rows.Next() {
		ont, err := scanOntology(rows)
		if err != nil {
			return nil, err
		}
		children = append(children, ont)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.WrapStorage(err, "list children")
	}
	return children, nil
}

// CurrentVersion returns the current version of an ontology, or ErrNotFound
// when no version has been stored yet.
func (s *Store) CurrentVersion(ctx context.Context, ontologyRowID int64) (*Version, error) {
	var (
		v          Version
		tag        sql.NullString
		changeSum  sql.NullString
		metaJSON   string
		createdRaw string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, ontology_id, version_number, version_tag, content,
		       content_hash, change_summary, workflow_status, is_current,
		       is_draft, created_by, created_at, metadata
		FROM ontology_versions
		WHERE ontology_id = ? AND is_current = 1`, ontologyRowID,
	).Scan(
		&v.ID, &v.OntologyID, &v.VersionNumber, &tag, &v.Content,
		&v.ContentHash, &changeSum, &v.WorkflowStatus, &v.IsCurrent,
		&v.IsDraft, &v.CreatedBy, &createdRaw, &metaJSON,
	)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError("no current version for ontology id %d", ontologyRowID)
	}
	if err != nil {
		return nil, errors.WrapStorage(err, "load current version")
	}

	v.VersionTag = tag.String
	v.ChangeSummary = changeSum.String
	v.CreatedAt = parseTime(createdRaw)
	v.Metadata = decodeMetadata(metaJSON)
	return &v, nil
}

// CurrentVersionCount returns how many versions of the ontology are flagged
// current. Used by invariant checks; under correct operation this is always
// 0 (no versions yet) or 1.
func (s *Store) CurrentVersionCount(ctx context.Context, ontologyRowID int64) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM ontology_versions WHERE ontology_id = ? AND is_current = 1",
		ontologyRowID,
	).Scan(&n)
	if err != nil {
		return 0, errors.WrapStorage(err, "count current versions")
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOntology(row rowScanner) (*Ontology, error) {
	var (
		ont         Ontology
		baseURI     sql.NullString
		description sql.NullString
		parentID    sql.NullInt64
	)
	err := row.Scan(
		&ont.ID, &ont.DomainID, &ont.DomainName, &ont.Name, &baseURI,
		&description, &ont.IsBase, &ont.IsEditable, &ont.OntologyType, &parentID,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, errors.WrapStorage(err, "scan ontology")
	}

	ont.BaseURI = baseURI.String
	ont.Description = description.String
	if parentID.Valid {
		ont.ParentID = &parentID.Int64
	}
	return &ont, nil
}

// IDString returns the "domain:name" identifier of an ontology row.
func (o *Ontology) IDString() string {
	return o.DomainName + ":" + o.Name
}
