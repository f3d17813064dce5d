package ontology

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ontovault/ontovault/errors"
)

// Options configure a Store.
type Options struct {
	// DefaultDomain is used when an ontology id carries no "domain:" prefix.
	DefaultDomain string
	// NamespaceTemplate is the namespace URI for auto-created domains;
	// %s is replaced with the domain name.
	NamespaceTemplate string
}

// Store owns the lifecycle of ontology content lineages.
type Store struct {
	db     *sql.DB
	logger *zap.SugaredLogger
	opts   Options
}

// NewStore creates a version store. The logger may be nil for silent
// operation.
func NewStore(database *sql.DB, logger *zap.SugaredLogger, opts Options) *Store {
	if opts.DefaultDomain == "" {
		opts.DefaultDomain = "general"
	}
	if opts.NamespaceTemplate == "" {
		opts.NamespaceTemplate = "http://ontovault.org/ontology/%s#"
	}
	return &Store{db: database, logger: logger, opts: opts}
}

// ParseID splits an ontology id of the form "domain:name" or bare "name".
func (s *Store) ParseID(ontologyID string) (domain, name string, err error) {
	if before, after, found := strings.Cut(ontologyID, ":"); found {
		domain, name = before, after
	} else {
		domain, name = s.opts.DefaultDomain, ontologyID
	}
	if name == "" || domain == "" {
		return "", "", errors.NewValidationError("invalid ontology id: %q", ontologyID)
	}
	return domain, name, nil
}

// ContentHash returns the deterministic digest used for change detection.
func ContentHash(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

// Store creates a new version of the ontology, creating the domain and
// ontology rows on first use. The flip of the previous current version and
// the insert of the new one happen in a single transaction: no reader can
// observe zero or two current versions, and a mid-transaction failure
// persists nothing.
func (s *Store) Store(ctx context.Context, ontologyID, content string, metadata map[string]interface{}) (*StoreResult, error) {
	domainName, name, err := s.ParseID(ontologyID)
	if err != nil {
		return nil, err
	}
	if metadata == nil {
		metadata = map[string]interface{}{}
	}

	status := metaString(metadata, "workflow_status", StatusDraft)
	if _, ok := statusRank[status]; !ok {
		return nil, errors.NewValidationError("invalid workflow status: %q", status)
	}
	isDraft := status != StatusPublished
	if v, ok := metadata["is_draft"].(bool); ok {
		isDraft = v
	}

	contentHash := ContentHash(content)

	domainID, err := s.getOrCreateDomain(ctx, domainName)
	if err != nil {
		return nil, err
	}
	ontID, err := s.getOrCreateOntology(ctx, domainID, name, metadata)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	createdBy := metaString(metadata, "created_by", "system")
	versionTag := metaString(metadata, "version_tag", "")
	changeSummary := metaString(metadata, "change_summary", "")

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, errors.WrapStorage(err, "begin version transaction")
	}
	defer tx.Rollback()

	var versionNumber int
	err = tx.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(version_number), 0) + 1 FROM ontology_versions WHERE ontology_id = ?",
		ontID,
	).Scan(&versionNumber)
	if err != nil {
		return nil, errors.WrapStorage(err, "next version number")
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE ontology_versions SET is_current = 0 WHERE ontology_id = ?",
		ontID,
	); err != nil {
		return nil, errors.WrapStorage(err, "retire previous versions")
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO ontology_versions
			(ontology_id, version_number, version_tag, content, content_hash,
			 change_summary, workflow_status, is_current, is_draft,
			 created_by, created_at, metadata)
		VALUES (?, ?, ?, ?, ?, ?, ?, 1, ?, ?, ?, ?)`,
		ontID, versionNumber, versionTag, content, contentHash,
		changeSummary, status, isDraft,
		createdBy, now.Format(time.RFC3339), encodeMetadata(metadata),
	); err != nil {
		return nil, errors.WrapStorage(err, "insert version")
	}

	if err := tx.Commit(); err != nil {
		return nil, errors.WrapStorage(err, "commit version transaction")
	}

	if s.logger != nil {
		s.logger.Infow("Stored ontology version",
			"ontology", ontologyID,
			"version", versionNumber,
			"content_hash", contentHash[:12],
			"workflow_status", status,
		)
	}

	return &StoreResult{
		OntologyID:    ontologyID,
		VersionNumber: versionNumber,
		ContentHash:   contentHash,
		StoredAt:      now,
	}, nil
}

// Retrieve returns the given version of an ontology, or the current version
// when version is 0.
func (s *Store) Retrieve(ctx context.Context, ontologyID string, version int) (*VersionPayload, error) {
	domainName, name, err := s.ParseID(ontologyID)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT ov.content, ov.metadata, ov.version_number,
		       ov.created_at, ov.created_by, o.name, d.name
		FROM ontology_versions ov
		JOIN ontologies o ON ov.ontology_id = o.id
		JOIN domains d ON o.domain_id = d.id
		WHERE d.name = ? AND o.name = ?`
	args := []interface{}{domainName, name}
	if version > 0 {
		query += " AND ov.version_number = ?"
		args = append(args, version)
	} else {
		query += " AND ov.is_current = 1"
	}

	var (
		payload   VersionPayload
		metaJSON  string
		createdAt string
	)
	err = s.db.QueryRowContext(ctx, query, args...).Scan(
		&payload.Content, &metaJSON, &payload.Version,
		&createdAt, &payload.CreatedBy, &payload.OntologyName, &payload.DomainName,
	)
	if err == sql.ErrNoRows {
		if version > 0 {
			return nil, errors.NewNotFoundError("ontology %s version %d", ontologyID, version)
		}
		return nil, errors.NewNotFoundError("ontology %s", ontologyID)
	}
	if err != nil {
		return nil, errors.WrapStorage(err, "retrieve ontology version")
	}

	payload.Metadata = decodeMetadata(metaJSON)
	payload.CreatedAt = parseTime(createdAt)
	return &payload, nil
}

// Exists reports whether the ontology has been created.
func (s *Store) Exists(ctx context.Context, ontologyID string) (bool, error) {
	domainName, name, err := s.ParseID(ontologyID)
	if err != nil {
		return false, err
	}

	var one int
	err = s.db.QueryRowContext(ctx, `
		SELECT 1 FROM ontologies o
		JOIN domains d ON o.domain_id = d.id
		WHERE d.name = ? AND o.name = ?`, domainName, name,
	).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, errors.WrapStorage(err, "check ontology existence")
	}
	return true, nil
}

// Delete removes a specific version, or the whole ontology (versions
// cascade) when version is 0. Returns false when nothing matched.
func (s *Store) Delete(ctx context.Context, ontologyID string, version int) (bool, error) {
	domainName, name, err := s.ParseID(ontologyID)
	if err != nil {
		return false, err
	}

	var res sql.Result
	if version > 0 {
		res, err = s.db.ExecContext(ctx, `
			DELETE FROM ontology_versions
			WHERE version_number = ? AND ontology_id IN (
				SELECT o.id FROM ontologies o
				JOIN domains d ON o.domain_id = d.id
				WHERE d.name = ? AND o.name = ?
			)`, version, domainName, name)
	} else {
		res, err = s.db.ExecContext(ctx, `
			DELETE FROM ontologies
			WHERE id IN (
				SELECT o.id FROM ontologies o
				JOIN domains d ON o.domain_id = d.id
				WHERE d.name = ? AND o.name = ?
			)`, domainName, name)
	}
	if err != nil {
		return false, errors.WrapStorage(err, "delete ontology")
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, errors.WrapStorage(err, "delete ontology")
	}
	return affected > 0, nil
}

// ListVersions returns version summaries ordered newest first.
func (s *Store) ListVersions(ctx context.Context, ontologyID string) ([]VersionSummary, error) {
	domainName, name, err := s.ParseID(ontologyID)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT ov.version_number, ov.version_tag, ov.change_summary,
		       ov.workflow_status, ov.is_current, ov.is_draft,
		       ov.created_by, ov.created_at, ov.metadata
		FROM ontology_versions ov
		JOIN ontologies o ON ov.ontology_id = o.id
		JOIN domains d ON o.domain_id = d.id
		WHERE d.name = ? AND o.name = ?
		ORDER BY ov.version_number DESC`, domainName, name)
	if err != nil {
		return nil, errors.WrapStorage(err, "list versions")
	}
	defer rows.Close()

	var summaries []VersionSummary
	for rows.Next() {
		var (
			summary    VersionSummary
			tag        sql.NullString
			changeSum  sql.NullString
			metaJSON   string
			createdRaw string
		)
		if err := rows.Scan(
			&summary.VersionNumber, &tag, &changeSum,
			&summary.WorkflowStatus, &summary.IsCurrent, &summary.IsDraft,
			&summary.CreatedBy, &createdRaw, &metaJSON,
		); err != nil {
			return nil, errors.WrapStorage(err, "scan version summary")
		}
		summary.VersionTag = tag.String
		summary.ChangeSummary = changeSum.String
		summary.CreatedAt = parseTime(createdRaw)
		summary.Metadata = decodeMetadata(metaJSON)
		summaries = append(summaries, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.WrapStorage(err, "list versions")
	}
	return summaries, nil
}

// GetMetadata returns the metadata stored with a version (current when
// version is 0).
func (s *Store) GetMetadata(ctx context.Context, ontologyID string, version int) (map[string]interface{}, error) {
	payload, err := s.Retrieve(ctx, ontologyID, version)
	if err != nil {
		return nil, err
	}
	return payload.Metadata, nil
}

// UpdateMetadata replaces the metadata of an ontology (version 0) or of a
// specific version.
func (s *Store) UpdateMetadata(ctx context.Context, ontologyID string, metadata map[string]interface{}, version int) error {
	domainName, name, err := s.ParseID(ontologyID)
	if err != nil {
		return err
	}

	var res sql.Result
	if version > 0 {
		res, err = s.db.ExecContext(ctx, `
			UPDATE ontology_versions SET metadata = ?
			WHERE version_number = ? AND ontology_id IN (
				SELECT o.id FROM ontologies o
				JOIN domains d ON o.domain_id = d.id
				WHERE d.name = ? AND o.name = ?
			)`, encodeMetadata(metadata), version, domainName, name)
	} else {
		res, err = s.db.ExecContext(ctx, `
			UPDATE ontologies SET metadata = ?, updated_at = ?
			WHERE id IN (
				SELECT o.id FROM ontologies o
				JOIN domains d ON o.domain_id = d.id
				WHERE d.name = ? AND o.name = ?
			)`, encodeMetadata(metadata), time.Now().UTC().Format(time.RFC3339), domainName, name)
	}
	if err != nil {
		return errors.WrapStorage(err, "update metadata")
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return errors.WrapStorage(err, "update metadata")
	}
	if affected == 0 {
		return errors.NewNotFoundError("ontology %s", ontologyID)
	}
	return nil
}

// AdvanceWorkflowStatus moves a version (current when version is 0) forward
// in the draft -> review -> published progression. Backward transitions are
// rejected; callers that need a rollback store a new version instead.
func (s *Store) AdvanceWorkflowStatus(ctx context.Context, ontologyID string, version int, newStatus string) error {
	newRank, ok := statusRank[newStatus]
	if !ok {
		return errors.NewValidationError("invalid workflow status: %q", newStatus)
	}

	domainName, name, err := s.ParseID(ontologyID)
	if err != nil {
		return err
	}

	query := `
		SELECT ov.id, ov.workflow_status
		FROM ontology_versions ov
		JOIN ontologies o ON ov.ontology_id = o.id
		JOIN domains d ON o.domain_id = d.id
		WHERE d.name = ? AND o.name = ?`
	args := []interface{}{domainName, name}
	if version > 0 {
		query += " AND ov.version_number = ?"
		args = append(args, version)
	} else {
		query += " AND ov.is_current = 1"
	}

	var (
		versionRowID int64
		current      string
	)
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&versionRowID, &current)
	if err == sql.ErrNoRows {
		return errors.NewNotFoundError("ontology %s", ontologyID)
	}
	if err != nil {
		return errors.WrapStorage(err, "load workflow status")
	}

	if newRank < statusRank[current] {
		return errors.NewValidationError(
			"workflow status cannot move backward: %s -> %s", current, newStatus)
	}

	if _, err := s.db.ExecContext(ctx,
		"UPDATE ontology_versions SET workflow_status = ?, is_draft = ? WHERE id = ?",
		newStatus, newStatus != StatusPublished, versionRowID,
	); err != nil {
		return errors.WrapStorage(err, "advance workflow status")
	}

	if s.logger != nil {
		s.logger.Infow("Workflow status advanced",
			"ontology", ontologyID,
			"from", current,
			"to", newStatus,
		)
	}
	return nil
}

// ListOntologies lists ontologies in active domains, optionally filtered.
func (s *Store) ListOntologies(ctx context.Context, filter ListFilter) ([]OntologySummary, error) {
	where := []string{"d.is_active = 1"}
	var args []interface{}

	if filter.Domain != "" {
		where = append(where, "d.name = ?")
		args = append(args, filter.Domain)
	}
	if filter.IsBase != nil {
		where = append(where, "o.is_base = ?")
		args = append(args, *filter.IsBase)
	}

	query := fmt.Sprintf(`
		SELECT o.name, d.name, o.base_uri, o.description, o.is_base,
		       o.is_editable, o.ontology_type,
		       COUNT(ov.id), COALESCE(MAX(ov.version_number), 0)
		FROM ontologies o
		JOIN domains d ON o.domain_id = d.id
		LEFT JOIN ontology_versions ov ON ov.ontology_id = o.id
		WHERE %s
		GROUP BY o.id
		ORDER BY d.name, o.name`, strings.Join(where, " AND "))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.WrapStorage(err, "list ontologies")
	}
	defer rows.Close()

	var summaries []OntologySummary
	for rows.Next() {
		var (
			summary     OntologySummary
			baseURI     sql.NullString
			description sql.NullString
		)
		if err := rows.Scan(
			&summary.Name, &summary.DomainName, &baseURI, &description,
			&summary.IsBase, &summary.IsEditable, &summary.OntologyType,
			&summary.VersionCount, &summary.LatestVersion,
		); err != nil {
			return nil, errors.WrapStorage(err, "scan ontology summary")
		}
		summary.BaseURI = baseURI.String
		summary.Description = description.String
		summaries = append(summaries, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.WrapStorage(err, "list ontologies")
	}
	return summaries, nil
}

// getOrCreateDomain resolves a domain by name, creating it with derived
// display name and namespace URI on first use.
func (s *Store) getOrCreateDomain(ctx context.Context, name string) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, "SELECT id FROM domains WHERE name = ?", name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return 0, errors.WrapStorage(err, "look up domain")
	}

	displayName := titleFromSlug(name)
	namespaceURI := fmt.Sprintf(s.opts.NamespaceTemplate, name)
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO domains (name, display_name, namespace_uri, description)
		VALUES (?, ?, ?, ?)`,
		name, displayName, namespaceURI, "Domain: "+displayName)
	if err != nil {
		return 0, errors.WrapStorage(err, "create domain")
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, errors.WrapStorage(err, "create domain")
	}

	if s.logger != nil {
		s.logger.Infow("Created domain", "name", name, "namespace_uri", namespaceURI)
	}
	return id, nil
}

// getOrCreateOntology resolves an ontology by (domain, name), creating it
// from metadata on first use.
func (s *Store) getOrCreateOntology(ctx context.Context, domainID int64, name string, metadata map[string]interface{}) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx,
		"SELECT id FROM ontologies WHERE domain_id = ? AND name = ?",
		domainID, name,
	).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return 0, errors.WrapStorage(err, "look up ontology")
	}

	baseURI := metaString(metadata, "base_uri", fmt.Sprintf("http://ontovault.org/ontology/%s#", name))
	description := metaString(metadata, "description", "Ontology: "+name)
	isBase := metaBool(metadata, "is_base", false)
	isEditable := metaBool(metadata, "is_editable", true)

	var parentID interface{}
	ontologyType := metaString(metadata, "ontology_type", TypeBase)
	if raw, ok := metadata["parent_ontology_id"]; ok {
		switch v := raw.(type) {
		case int64:
			parentID = v
		case int:
			parentID = int64(v)
		case float64:
			parentID = int64(v)
		default:
			return 0, errors.NewValidationError("invalid parent_ontology_id: %v", raw)
		}
		ontologyType = TypeDerived
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO ontologies
			(domain_id, name, base_uri, description, is_base, is_editable,
			 ontology_type, parent_ontology_id, metadata)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		domainID, name, baseURI, description, isBase, isEditable,
		ontologyType, parentID, encodeMetadata(metadata))
	if err != nil {
		return 0, errors.WrapStorage(err, "create ontology")
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, errors.WrapStorage(err, "create ontology")
	}

	if s.logger != nil {
		s.logger.Infow("Created ontology", "name", name, "type", ontologyType)
	}
	return id, nil
}

func encodeMetadata(m map[string]interface{}) string {
	if m == nil {
		return "{}"
	}
	data, err := json.Marshal(m)
	if err != nil {
		return "{}"
	}
	return string(data)
}

func decodeMetadata(raw string) map[string]interface{} {
	m := map[string]interface{}{}
	if raw != "" {
		json.Unmarshal([]byte(raw), &m)
	}
	return m
}

func metaString(m map[string]interface{}, key, fallback string) string {
	if v, ok := m[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

func metaBool(m map[string]interface{}, key string, fallback bool) bool {
	if v, ok := m[key].(bool); ok {
		return v
	}
	return fallback
}

// titleFromSlug turns "engineering-ethics" into "Engineering Ethics".
func titleFromSlug(slug string) string {
	words := strings.Split(strings.ReplaceAll(slug, "-", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// parseTime accepts both RFC3339 (written by this code) and sqlite's
// datetime('now') format (written by column defaults).
func parseTime(raw string) time.Time {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02 15:04:05", raw); err == nil {
		return t.UTC()
	}
	return time.Time{}
}
