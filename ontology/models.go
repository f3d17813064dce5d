// Package ontology implements the version store: domains, ontologies, and
// their content lineage. Every ontology has at most one current version at
// any time; the flip from the previous current version to a new one happens
// inside a single transaction.
package ontology

import (
	"time"
)

// Workflow statuses for an ontology version. Progression is monotonic:
// draft -> review -> published. Rolling back means storing a new version.
const (
	StatusDraft     = "draft"
	StatusReview    = "review"
	StatusPublished = "published"
)

// statusRank orders workflow statuses for the monotonic-progression check.
var statusRank = map[string]int{
	StatusDraft:     0,
	StatusReview:    1,
	StatusPublished: 2,
}

// Ontology types.
const (
	TypeBase    = "base"
	TypeDerived = "derived"
)

// Domain is a namespace grouping of related ontologies.
type Domain struct {
	ID           int64
	Name         string
	DisplayName  string
	NamespaceURI string
	Description  string
	IsActive     bool
}

// Ontology is a named, versioned unit of RDF content within a domain.
type Ontology struct {
	ID           int64
	DomainID     int64
	DomainName   string
	Name         string
	BaseURI      string
	Description  string
	IsBase       bool
	IsEditable   bool
	OntologyType string
	// ParentID is nil for root ontologies.
	ParentID *int64
}

// Version is one snapshot of an ontology's content.
type Version struct {
	ID             int64
	OntologyID     int64
	VersionNumber  int
	VersionTag     string
	Content        string
	ContentHash    string
	ChangeSummary  string
	WorkflowStatus string
	IsCurrent      bool
	IsDraft        bool
	CreatedBy      string
	CreatedAt      time.Time
	Metadata       map[string]interface{}
}

// StoreResult is returned by Store.
type StoreResult struct {
	OntologyID    string    `json:"ontology_id"`
	VersionNumber int       `json:"version_number"`
	ContentHash   string    `json:"content_hash"`
	StoredAt      time.Time `json:"stored_at"`
}

// VersionPayload is returned by Retrieve.
type VersionPayload struct {
	Content      string                 `json:"content"`
	Metadata     map[string]interface{} `json:"metadata"`
	Version      int                    `json:"version"`
	CreatedAt    time.Time              `json:"created_at"`
	CreatedBy    string                 `json:"created_by"`
	OntologyName string                 `json:"ontology_name"`
	DomainName   string                 `json:"domain_name"`
}

// VersionSummary is one row of ListVersions.
type VersionSummary struct {
	VersionNumber  int                    `json:"version_number"`
	VersionTag     string                 `json:"version_tag"`
	ChangeSummary  string                 `json:"change_summary"`
	WorkflowStatus string                 `json:"workflow_status"`
	IsCurrent      bool                   `json:"is_current"`
	IsDraft        bool                   `json:"is_draft"`
	CreatedBy      string                 `json:"created_by"`
	CreatedAt      time.Time              `json:"created_at"`
	Metadata       map[string]interface{} `json:"metadata"`
}

// OntologySummary is one row of ListOntologies.
type OntologySummary struct {
	Name          string `json:"name"`
	DomainName    string `json:"domain_name"`
	BaseURI       string `json:"base_uri"`
	Description   string `json:"description"`
	IsBase        bool   `json:"is_base"`
	IsEditable    bool   `json:"is_editable"`
	OntologyType  string `json:"ontology_type"`
	VersionCount  int    `json:"version_count"`
	LatestVersion int    `json:"latest_version"`
}

// ListFilter narrows ListOntologies results.
type ListFilter struct {
	Domain string
	IsBase *bool
}
