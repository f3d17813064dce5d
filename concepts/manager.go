package concepts

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ontovault/ontovault/errors"
)

// Manager owns the concept tables and the approval workflow attached to
// each concept.
type Manager struct {
	db     *sql.DB
	logger *zap.SugaredLogger
}

// NewManager creates a workflow manager. The logger may be nil for silent
// operation.
func NewManager(database *sql.DB, logger *zap.SugaredLogger) *Manager {
	return &Manager{db: database, logger: logger}
}

// SubmitCandidate stores an extracted candidate concept and opens its
// approval workflow. The concept row and the workflow row are written in
// the same transaction.
func (m *Manager) SubmitCandidate(ctx context.Context, candidate Candidate, domain, submittedBy string) (*SubmitResult, error) {
	var missing []string
	if candidate.Label == "" {
		missing = append(missing, "label")
	}
	if candidate.Category == "" {
		missing = append(missing, "category")
	}
	if candidate.URI == "" {
		missing = append(missing, "uri")
	}
	if len(missing) > 0 {
		return nil, errors.NewValidationError("candidate concept missing required fields: %s", strings.Join(missing, ", "))
	}

	semanticLabel := candidate.SemanticLabel
	if semanticLabel == "" {
		semanticLabel = deriveSemanticLabel(candidate.Label)
	}
	priority := candidate.Priority
	if priority == "" {
		priority = PriorityNormal
	}
	if submittedBy == "" {
		submittedBy = "system"
	}
	if candidate.Metadata == nil {
		candidate.Metadata = map[string]interface{}{}
	}

	domainID, err := m.ensureDomain(ctx, domain)
	if err != nil {
		return nil, err
	}

	conceptUUID := uuid.New().String()
	now := time.Now().UTC()

	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, errors.WrapStorage(err, "begin submit transaction")
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO concepts
			(uuid, domain_id, uri, label, semantic_label, category,
			 description, status, confidence_score, extraction_method,
			 source_document, llm_reasoning, created_by, created_at, metadata)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		conceptUUID, domainID, candidate.URI, candidate.Label, semanticLabel,
		candidate.Category, candidate.Description, StatusCandidate,
		candidate.ConfidenceScore, candidate.ExtractionMethod,
		candidate.SourceDocument, candidate.LLMReasoning,
		submittedBy, now.Format(time.RFC3339), encodeJSON(candidate.Metadata, "{}"),
	)
	if err != nil {
		return nil, errors.WrapStorage(err, "insert concept")
	}
	conceptRowID, err := res.LastInsertId()
	if err != nil {
		return nil, errors.WrapStorage(err, "insert concept")
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO approval_workflows
			(concept_id, current_state, assigned_to, priority, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		conceptRowID, StateSubmitted, candidate.AssignedTo, priority,
		now.Format(time.RFC3339), now.Format(time.RFC3339),
	); err != nil {
		return nil, errors.WrapStorage(err, "insert approval workflow")
	}

	if err := tx.Commit(); err != nil {
		return nil, errors.WrapStorage(err, "commit submit transaction")
	}

	if m.logger != nil {
		m.logger.Infow("Candidate concept submitted",
			"concept_id", conceptUUID,
			"label", candidate.Label,
			"category", candidate.Category,
			"domain", domain,
			"submitted_by", submittedBy,
		)
	}

	return &SubmitResult{
		ConceptID:   conceptUUID,
		Label:       candidate.Label,
		Status:      StatusCandidate,
		SubmittedAt: now,
	}, nil
}

// UpdateStatus applies a reviewer decision. In one transaction it snapshots
// the pre-change concept as a new ConceptVersion, updates the concept
// status, and records the decision on the workflow. Approving an already
// approved concept is allowed and logged; it still produces an audit row.
func (m *Manager) UpdateStatus(ctx context.Context, conceptID, status, user, reason string) (*StatusChange, error) {
	if _, ok := decisionStatuses[status]; !ok {
		return nil, errors.NewValidationError("invalid concept status: %q", status)
	}
	if user == "" {
		user = "system"
	}

	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, errors.WrapStorage(err, "begin status transaction")
	}
	defer tx.Rollback()

	var (
		rowID         int64
		uri           sql.NullString
		label         sql.NullString
		semanticLabel sql.NullString
		category      sql.NullString
		description   sql.NullString
		oldStatus     string
		metadata      string
	)
	err = tx.QueryRowContext(ctx, `
		SELECT id, uri, label, semantic_label, category, description, status, metadata
		FROM concepts WHERE uuid = ?`, conceptID,
	).Scan(&rowID, &uri, &label, &semanticLabel, &category, &description, &oldStatus, &metadata)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError("concept %s", conceptID)
	}
	if err != nil {
		return nil, errors.WrapStorage(err, "load concept")
	}

	if oldStatus == StatusApproved && status == StatusApproved && m.logger != nil {
		m.logger.Warnw("Re-approving an already approved concept",
			"concept_id", conceptID, "user", user)
	}

	now := time.Now().UTC()
	nowStr := now.Format(time.RFC3339)

	var versionNumber int
	err = tx.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(version_number), 0) + 1 FROM concept_versions WHERE concept_id = ?",
		rowID,
	).Scan(&versionNumber)
	if err != nil {
		return nil, errors.WrapStorage(err, "next concept version number")
	}

	changedFields := []string{"status"}
	if status == StatusApproved {
		changedFields = append(changedFields, "approved_by", "approved_at")
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO concept_versions
			(concept_id, version_number, uri, label, semantic_label, category,
			 description, status, metadata, changed_fields, change_reason,
			 changed_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rowID, versionNumber, uri.String, label.String, semanticLabel.String,
		category.String, description.String, oldStatus, metadata,
		encodeJSON(changedFields, "[]"), reason, user, nowStr,
	); err != nil {
		return nil, errors.WrapStorage(err, "insert concept version")
	}

	if status == StatusApproved {
		_, err = tx.ExecContext(ctx, `
			UPDATE concepts
			SET status = ?, updated_by = ?, updated_at = ?, approved_by = ?, approved_at = ?
			WHERE id = ?`,
			status, user, nowStr, user, nowStr, rowID)
	} else {
		_, err = tx.ExecContext(ctx, `
			UPDATE concepts SET status = ?, updated_by = ?, updated_at = ?
			WHERE id = ?`,
			status, user, nowStr, rowID)
	}
	if err != nil {
		return nil, errors.WrapStorage(err, "update concept status")
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE approval_workflows
		SET previous_state = current_state, current_state = ?, decision = ?,
		    decision_reason = ?, decided_by = ?, decided_at = ?, updated_at = ?
		WHERE concept_id = ?`,
		status, status, reason, user, nowStr, nowStr, rowID,
	); err != nil {
		return nil, errors.WrapStorage(err, "update approval workflow")
	}

	if err := tx.Commit(); err != nil {
		return nil, errors.WrapStorage(err, "commit status transaction")
	}

	if m.logger != nil {
		m.logger.Infow("Concept status updated",
			"concept_id", conceptID,
			"from", oldStatus,
			"to", status,
			"user", user,
		)
	}

	return &StatusChange{
		ConceptID: conceptID,
		OldStatus: oldStatus,
		NewStatus: status,
		ChangedBy: user,
		ChangedAt: now,
	}, nil
}

// GetCandidates pages through a domain's concepts. Status defaults to
// candidate; category is optional.
func (m *Manager) GetCandidates(ctx context.Context, domain, category, status string, limit, offset int) (*CandidatePage, error) {
	if status == "" {
		status = StatusCandidate
	}
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	where := []string{"d.name = ?", "c.status = ?"}
	args := []interface{}{domain, status}
	if category != "" {
		where = append(where, "c.category = ?")
		args = append(args, category)
	}
	whereClause := strings.Join(where, " AND ")

	var total int
	err := m.db.QueryRowContext(ctx, fmt.Sprintf(`
		SELECT COUNT(*) FROM concepts c
		JOIN domains d ON c.domain_id = d.id
		WHERE %s`, whereClause), args...,
	).Scan(&total)
	if err != nil {
		return nil, errors.WrapStorage(err, "count candidate concepts")
	}

	query := fmt.Sprintf(`
		SELECT c.uuid, d.name, c.uri, c.label, c.semantic_label, c.category,
		       c.description, c.status, c.confidence_score, c.extraction_method,
		       c.source_document, c.llm_reasoning, c.created_by, c.created_at,
		       c.approved_by, c.approved_at, c.metadata
		FROM concepts c
		JOIN domains d ON c.domain_id = d.id
		WHERE %s
		ORDER BY c.created_at DESC, c.id DESC
		LIMIT ? OFFSET ?`, whereClause)
	rows, err := m.db.QueryContext(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, errors.WrapStorage(err, "list candidate concepts")
	}
	defer rows.Close()

	var items []Concept
	for rows.Next() {
		concept, err := scanConcept(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *concept)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.WrapStorage(err, "list candidate concepts")
	}

	return &CandidatePage{
		Items:      items,
		TotalCount: total,
		HasMore:    offset+len(items) < total,
		Limit:      limit,
		Offset:     offset,
	}, nil
}

// GetEntitiesByCategory returns the concepts decided into a category merged
// with the indexed ontology classes the rule table places there. Status
// applies to the concept side and defaults to approved.
func (m *Manager) GetEntitiesByCategory(ctx context.Context, category, domain, status string) ([]Entity, error) {
	if category == "" {
		return nil, errors.NewValidationError("category is required")
	}
	if status == "" {
		status = StatusApproved
	}

	rows, err := m.db.QueryContext(ctx, `
		SELECT c.uri, c.label, c.semantic_label, c.description, c.confidence_score
		FROM concepts c
		JOIN domains d ON c.domain_id = d.id
		WHERE d.name = ? AND c.category = ? AND c.status = ?
		ORDER BY c.label`, domain, category, status)
	if err != nil {
		return nil, errors.WrapStorage(err, "load concepts by category")
	}
	defer rows.Close()

	var entities []Entity
	for rows.Next() {
		var (
			e             Entity
			semanticLabel sql.NullString
			description   sql.NullString
			confidence    sql.NullFloat64
		)
		if err := rows.Scan(&e.URI, &e.Label, &semanticLabel, &description, &confidence); err != nil {
			return nil, errors.WrapStorage(err, "scan concept entity")
		}
		e.SemanticLabel = semanticLabel.String
		e.Description = description.String
		e.Confidence = confidence.Float64
		e.Category = category
		e.Source = "concept"
		entities = append(entities, e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.WrapStorage(err, "load concepts by category")
	}

	ontEntities, err := m.ontologyEntitiesByCategory(ctx, category, domain)
	if err != nil {
		return nil, err
	}
	return append(entities, ontEntities...), nil
}

// ontologyEntitiesByCategory scans the indexed classes of a domain and
// keeps those the classification table assigns to the category.
func (m *Manager) ontologyEntitiesByCategory(ctx context.Context, category, domain string) ([]Entity, error) {
	rows, err := m.db.QueryContext(ctx, `
		SELECT e.uri, e.label, e.comment, e.entity_type
		FROM ontology_entities e
		JOIN ontologies o ON e.ontology_id = o.id
		JOIN domains d ON o.domain_id = d.id
		WHERE d.name = ? AND e.entity_type = 'class'
		ORDER BY e.label`, domain)
	if err != nil {
		return nil, errors.WrapStorage(err, "load ontology entities")
	}
	defer rows.Close()

	var entities []Entity
	for rows.Next() {
		var (
			uri        string
			label      sql.NullString
			comment    sql.NullString
			entityType string
		)
		if err := rows.Scan(&uri, &label, &comment, &entityType); err != nil {
			return nil, errors.WrapStorage(err, "scan ontology entity")
		}
		matched, ok := categoryFor(label.String, uri)
		if !ok || matched != category {
			continue
		}
		entities = append(entities, Entity{
			URI:           uri,
			Label:         label.String,
			SemanticLabel: deriveSemanticLabel(label.String),
			Description:   comment.String,
			Category:      category,
			Confidence:    1.0,
			Source:        "ontology",
			EntityType:    entityType,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, errors.WrapStorage(err, "load ontology entities")
	}
	return entities, nil
}

// GetDomainInfo returns per-status and per-category concept statistics.
func (m *Manager) GetDomainInfo(ctx context.Context, domain string) (*DomainInfo, error) {
	info := &DomainInfo{
		Domain:     domain,
		ByStatus:   map[string]int{},
		ByCategory: map[string]int{},
	}

	var (
		domainID    int64
		displayName sql.NullString
		description sql.NullString
	)
	err := m.db.QueryRowContext(ctx,
		"SELECT id, display_name, description FROM domains WHERE name = ?", domain,
	).Scan(&domainID, &displayName, &description)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError("domain %s", domain)
	}
	if err != nil {
		return nil, errors.WrapStorage(err, "load domain")
	}
	info.DisplayName = displayName.String
	info.Description = description.String

	rows, err := m.db.QueryContext(ctx,
		"SELECT status, COUNT(*) FROM concepts WHERE domain_id = ? GROUP BY status", domainID)
	if err != nil {
		return nil, errors.WrapStorage(err, "count concepts by status")
	}
	defer rows.Close()
	for rows.Next() {
		var (
			status string
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, errors.WrapStorage(err, "scan status count")
		}
		info.ByStatus[status] = n
		info.TotalConcepts += n
	}
	if err := rows.Err(); err != nil {
		return nil, errors.WrapStorage(err, "count concepts by status")
	}

	catRows, err := m.db.QueryContext(ctx,
		"SELECT category, COUNT(*) FROM concepts WHERE domain_id = ? GROUP BY category", domainID)
	if err != nil {
		return nil, errors.WrapStorage(err, "count concepts by category")
	}
	defer catRows.Close()
	for catRows.Next() {
		var (
			category string
			n        int
		)
		if err := catRows.Scan(&category, &n); err != nil {
			return nil, errors.WrapStorage(err, "scan category count")
		}
		info.ByCategory[category] = n
	}
	if err := catRows.Err(); err != nil {
		return nil, errors.WrapStorage(err, "count concepts by category")
	}
	return info, nil
}

// ensureDomain resolves a domain by name, creating a minimal row on first
// use so submissions never fail on an unseen domain.
func (m *Manager) ensureDomain(ctx context.Context, name string) (int64, error) {
	if name == "" {
		return 0, errors.NewValidationError("domain is required")
	}

	var id int64
	err := m.db.QueryRowContext(ctx, "SELECT id FROM domains WHERE name = ?", name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return 0, errors.WrapStorage(err, "look up domain")
	}

	res, err := m.db.ExecContext(ctx,
		"INSERT INTO domains (name, display_name, description) VALUES (?, ?, ?)",
		name, titleFromSlug(name), "Domain: "+titleFromSlug(name))
	if err != nil {
		return 0, errors.WrapStorage(err, "create domain")
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, errors.WrapStorage(err, "create domain")
	}
	if m.logger != nil {
		m.logger.Infow("Created domain", "name", name)
	}
	return id, nil
}

func scanConcept(rows *sql.Rows) (*Concept, error) {
	var (
		c             Concept
		semanticLabel sql.NullString
		description   sql.NullString
		confidence    sql.NullFloat64
		extraction    sql.NullString
		sourceDoc     sql.NullString
		reasoning     sql.NullString
		createdBy     sql.NullString
		createdAt     string
		approvedBy    sql.NullString
		approvedAt    sql.NullString
		metadata      string
	)
	if err := rows.Scan(
		&c.UUID, &c.DomainName, &c.URI, &c.Label, &semanticLabel, &c.Category,
		&description, &c.Status, &confidence, &extraction,
		&sourceDoc, &reasoning, &createdBy, &createdAt,
		&approvedBy, &approvedAt, &metadata,
	); err != nil {
		return nil, errors.WrapStorage(err, "scan concept")
	}
	c.SemanticLabel = semanticLabel.String
	c.Description = description.String
	c.Confidence = confidence.Float64
	c.Extraction = extraction.String
	c.SourceDoc = sourceDoc.String
	c.LLMReasoning = reasoning.String
	c.CreatedBy = createdBy.String
	c.CreatedAt = parseTime(createdAt)
	c.ApprovedBy = approvedBy.String
	if approvedAt.Valid {
		c.ApprovedAt = parseTime(approvedAt.String)
	}
	c.Metadata = decodeJSON(metadata)
	return &c, nil
}

func encodeJSON(v interface{}, fallback string) string {
	if v == nil {
		return fallback
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fallback
	}
	return string(data)
}

func decodeJSON(raw string) map[string]interface{} {
	m := map[string]interface{}{}
	if raw != "" {
		json.Unmarshal([]byte(raw), &m)
	}
	return m
}

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

func parseTime(raw string) time.Time {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02 15:04:05", raw); err == nil {
		return t.UTC()
	}
	return time.Time{}
}
