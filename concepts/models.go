// Package concepts implements the candidate-concept approval workflow:
// submission of extracted candidates, reviewer decisions with a full audit
// trail, and category-scoped reads that merge approved concepts with
// indexed ontology entities.
package concepts

import "time"

// Concept statuses.
const (
	StatusCandidate  = "candidate"
	StatusApproved   = "approved"
	StatusRejected   = "rejected"
	StatusDeprecated = "deprecated"
)

// decisionStatuses are the statuses UpdateStatus may assign. A concept
// never returns to candidate; re-submission creates a new concept.
var decisionStatuses = map[string]struct{}{
	StatusApproved:   {},
	StatusRejected:   {},
	StatusDeprecated: {},
}

// Initial workflow state for a freshly submitted candidate.
const StateSubmitted = "submitted"

// Workflow priorities.
const (
	PriorityLow    = "low"
	PriorityNormal = "normal"
	PriorityHigh   = "high"
)

// Candidate is the reviewer-facing input of SubmitCandidate. Extraction
// provenance fields are optional.
type Candidate struct {
	URI           string
	Label         string
	SemanticLabel string
	Category      string
	Description   string

	ConfidenceScore  float64
	ExtractionMethod string
	SourceDocument   string
	LLMReasoning     string

	AssignedTo string
	Priority   string

	Metadata map[string]interface{}
}

// Concept is a stored candidate or decided concept.
type Concept struct {
	ID            int64                  `json:"-"`
	UUID          string                 `json:"id"`
	DomainName    string                 `json:"domain"`
	URI           string                 `json:"uri"`
	Label         string                 `json:"label"`
	SemanticLabel string                 `json:"semantic_label"`
	Category      string                 `json:"category"`
	Description   string                 `json:"description"`
	Status        string                 `json:"status"`
	Confidence    float64                `json:"confidence_score"`
	Extraction    string                 `json:"extraction_method,omitempty"`
	SourceDoc     string                 `json:"source_document,omitempty"`
	LLMReasoning  string                 `json:"llm_reasoning,omitempty"`
	CreatedBy     string                 `json:"created_by"`
	CreatedAt     time.Time              `json:"created_at"`
	UpdatedBy     string                 `json:"updated_by,omitempty"`
	UpdatedAt     time.Time              `json:"updated_at,omitempty"`
	ApprovedBy    string                 `json:"approved_by,omitempty"`
	ApprovedAt    time.Time              `json:"approved_at,omitempty"`
	Metadata      map[string]interface{} `json:"metadata,omitempty"`
}

// SubmitResult is returned by SubmitCandidate.
type SubmitResult struct {
	ConceptID   string    `json:"concept_id"`
	Label       string    `json:"label"`
	Status      string    `json:"status"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// StatusChange is returned by UpdateStatus.
type StatusChange struct {
	ConceptID string    `json:"concept_id"`
	OldStatus string    `json:"old_status"`
	NewStatus string    `json:"new_status"`
	ChangedBy string    `json:"changed_by"`
	ChangedAt time.Time `json:"changed_at"`
}

// CandidatePage is one page of GetCandidates results.
type CandidatePage struct {
	Items      []Concept `json:"items"`
	TotalCount int       `json:"total_count"`
	HasMore    bool      `json:"has_more"`
	Limit      int       `json:"limit"`
	Offset     int       `json:"offset"`
}

// Entity is one row of GetEntitiesByCategory: either an approved concept or
// an indexed ontology class that the rule table placed in the category.
type Entity struct {
	URI           string  `json:"uri"`
	Label         string  `json:"label"`
	SemanticLabel string  `json:"semantic_label,omitempty"`
	Description   string  `json:"description,omitempty"`
	Category      string  `json:"category"`
	Confidence    float64 `json:"confidence_score"`
	// Source is "concept" or "ontology".
	Source     string `json:"source"`
	EntityType string `json:"entity_type,omitempty"`
}

// DomainInfo summarizes concept activity in a domain.
type DomainInfo struct {
	Domain        string         `json:"domain"`
	DisplayName   string         `json:"display_name"`
	Description   string         `json:"description,omitempty"`
	TotalConcepts int            `json:"total_concepts"`
	ByStatus      map[string]int `json:"by_status"`
	ByCategory    map[string]int `json:"by_category"`
}
