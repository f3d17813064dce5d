package ontology

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ontovault/ontovault/errors"
	"github.com/ontovault/ontovault/internal/testutil"
)

const sampleTurtle = `@prefix ex: <http://example.org/> .
ex:Widget a ex:Thing .
`

func newTestStore(t *testing.T) *Store {
	return NewStore(testutil.SetupTestDB(t), nil, Options{})
}

func TestStoreCreatesFirstVersion(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	result, err := store.Store(ctx, "eth:core", sampleTurtle, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, result.VersionNumber)
	assert.Equal(t, ContentHash(sampleTurtle), result.ContentHash)
	assert.False(t, result.StoredAt.IsZero())
}

func TestStoreSequentialVersionNumbers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first, err := store.Store(ctx, "eth:core", "v1 content", nil)
	require.NoError(t, err)
	second, err := store.Store(ctx, "eth:core", "v2 content", nil)
	require.NoError(t, err)

	assert.Equal(t, 1, first.VersionNumber)
	assert.Equal(t, 2, second.VersionNumber)

	// Version 1 is no longer current after the second store.
	versions, err := store.ListVersions(ctx, "eth:core")
	require.NoError(t, err)
	require.Len(t, versions, 2)
	assert.Equal(t, 2, versions[0].VersionNumber)
	assert.True(t, versions[0].IsCurrent)
	assert.Equal(t, 1, versions[1].VersionNumber)
	assert.False(t, versions[1].IsCurrent)
}

func TestExactlyOneCurrentVersion(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := store.Store(ctx, "eth:core", sampleTurtle, map[string]interface{}{
			"change_summary": "iteration",
		})
		require.NoError(t, err)

		ont, err := store.GetOntology(ctx, "eth:core")
		require.NoError(t, err)
		n, err := store.CurrentVersionCount(ctx, ont.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, n, "exactly one current version after store %d", i+1)
	}
}

func TestRetrieveCurrentAndSpecific(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.Store(ctx, "eth:core", "first", nil)
	require.NoError(t, err)
	_, err = store.Store(ctx, "eth:core", "second", nil)
	require.NoError(t, err)

	current, err := store.Retrieve(ctx, "eth:core", 0)
	require.NoError(t, err)
	assert.Equal(t, "second", current.Content)
	assert.Equal(t, 2, current.Version)
	assert.Equal(t, "core", current.OntologyName)
	assert.Equal(t, "eth", current.DomainName)

	v1, err := store.Retrieve(ctx, "eth:core", 1)
	require.NoError(t, err)
	assert.Equal(t, "first", v1.Content)
}

func TestRetrieveRoundTripsContent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.Store(ctx, "eth:core", sampleTurtle, nil)
	require.NoError(t, err)

	payload, err := store.Retrieve(ctx, "eth:core", 0)
	require.NoError(t, err)
	assert.Equal(t, sampleTurtle, payload.Content)
	assert.Equal(t, ContentHash(sampleTurtle), ContentHash(payload.Content))
}

func TestRetrieveNotFound(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.Retrieve(ctx, "eth:missing", 0)
	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))

	_, err = store.Store(ctx, "eth:core", sampleTurtle, nil)
	require.NoError(t, err)
	_, err = store.Retrieve(ctx, "eth:core", 99)
	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))
}

func TestDefaultDomainForBareIDs(t *testing.T) {
	store := NewStore(testutil.SetupTestDB(t), nil, Options{DefaultDomain: "engineering-ethics"})
	ctx := context.Background()

	_, err := store.Store(ctx, "core", sampleTurtle, nil)
	require.NoError(t, err)

	payload, err := store.Retrieve(ctx, "engineering-ethics:core", 0)
	require.NoError(t, err)
	assert.Equal(t, "engineering-ethics", payload.DomainName)
}

func TestParseIDRejectsEmptyName(t *testing.T) {
	store := newTestStore(t)

	_, _, err := store.ParseID("eth:")
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))

	_, _, err = store.ParseID("")
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestExistsAndDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	exists, err := store.Exists(ctx, "eth:core")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = store.Store(ctx, "eth:core", sampleTurtle, nil)
	require.NoError(t, err)
	_, err = store.Store(ctx, "eth:core", sampleTurtle+"# v2\n", nil)
	require.NoError(t, err)

	exists, err = store.Exists(ctx, "eth:core")
	require.NoError(t, err)
	assert.True(t, exists)

	// Delete one version.
	deleted, err := store.Delete(ctx, "eth:core", 1)
	require.NoError(t, err)
	assert.True(t, deleted)
	_, err = store.Retrieve(ctx, "eth:core", 1)
	assert.True(t, errors.IsNotFoundError(err))

	// Delete the rest.
	deleted, err = store.Delete(ctx, "eth:core", 0)
	require.NoError(t, err)
	assert.True(t, deleted)

	exists, err = store.Exists(ctx, "eth:core")
	require.NoError(t, err)
	assert.False(t, exists)

	deleted, err = store.Delete(ctx, "eth:core", 0)
	require.NoError(t, err)
	assert.False(t, deleted, "deleting a missing ontology reports false")
}

func TestMetadataDrivesOntologyCreation(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.Store(ctx, "eth:base", sampleTurtle, map[string]interface{}{
		"base_uri":    "http://example.org/eth#",
		"description": "Base ethics ontology",
		"is_base":     true,
		"created_by":  "importer",
		"version_tag": "2026.1",
	})
	require.NoError(t, err)

	ont, err := store.GetOntology(ctx, "eth:base")
	require.NoError(t, err)
	assert.True(t, ont.IsBase)
	assert.Equal(t, "http://example.org/eth#", ont.BaseURI)
	assert.Equal(t, TypeBase, ont.OntologyType)
	assert.Equal(t, "eth:base", ont.IDString())

	version, err := store.CurrentVersion(ctx, ont.ID)
	require.NoError(t, err)
	assert.Equal(t, "2026.1", version.VersionTag)
	assert.Equal(t, "importer", version.CreatedBy)
}

func TestChildOntologyCreation(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.Store(ctx, "eth:base", sampleTurtle, nil)
	require.NoError(t, err)
	base, err := store.GetOntology(ctx, "eth:base")
	require.NoError(t, err)

	_, err = store.Store(ctx, "eth:child", sampleTurtle, map[string]interface{}{
		"parent_ontology_id": base.ID,
	})
	require.NoError(t, err)

	child, err := store.GetOntology(ctx, "eth:child")
	require.NoError(t, err)
	assert.Equal(t, TypeDerived, child.OntologyType)
	require.NotNil(t, child.ParentID)
	assert.Equal(t, base.ID, *child.ParentID)

	children, err := store.Children(ctx, base.ID)
	require.NoError(t, err)
	require.Len(t, children, 1)
	assert.Equal(t, "child", children[0].Name)
}

func TestUpdateMetadata(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.Store(ctx, "eth:core", sampleTurtle, nil)
	require.NoError(t, err)

	err = store.UpdateMetadata(ctx, "eth:core", map[string]interface{}{"reviewed": true}, 1)
	require.NoError(t, err)

	meta, err := store.GetMetadata(ctx, "eth:core", 1)
	require.NoError(t, err)
	assert.Equal(t, true, meta["reviewed"])

	err = store.UpdateMetadata(ctx, "eth:missing", map[string]interface{}{}, 0)
	assert.True(t, errors.IsNotFoundError(err))
}

func TestAdvanceWorkflowStatus(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.Store(ctx, "eth:core", sampleTurtle, nil)
	require.NoError(t, err)

	require.NoError(t, store.AdvanceWorkflowStatus(ctx, "eth:core", 0, StatusReview))
	require.NoError(t, store.AdvanceWorkflowStatus(ctx, "eth:core", 0, StatusPublished))

	// Backward transition is rejected.
	err = store.AdvanceWorkflowStatus(ctx, "eth:core", 0, StatusDraft)
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))

	// Published version is no longer a draft.
	ont, err := store.GetOntology(ctx, "eth:core")
	require.NoError(t, err)
	version, err := store.CurrentVersion(ctx, ont.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusPublished, version.WorkflowStatus)
	assert.False(t, version.IsDraft)

	// Unknown status is rejected before touching the database.
	err = store.AdvanceWorkflowStatus(ctx, "eth:core", 0, "archived")
	assert.True(t, errors.IsValidationError(err))
}

func TestListOntologies(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.Store(ctx, "eth:base", sampleTurtle, map[string]interface{}{"is_base": true})
	require.NoError(t, err)
	_, err = store.Store(ctx, "eth:extra", sampleTurtle, nil)
	require.NoError(t, err)
	_, err = store.Store(ctx, "med:other", sampleTurtle, nil)
	require.NoError(t, err)

	all, err := store.ListOntologies(ctx, ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	eth, err := store.ListOntologies(ctx, ListFilter{Domain: "eth"})
	require.NoError(t, err)
	assert.Len(t, eth, 2)

	isBase := true
	bases, err := store.ListOntologies(ctx, ListFilter{Domain: "eth", IsBase: &isBase})
	require.NoError(t, err)
	require.Len(t, bases, 1)
	assert.Equal(t, "base", bases[0].Name)
	assert.Equal(t, 1, bases[0].VersionCount)
	assert.Equal(t, 1, bases[0].LatestVersion)
}

// TestStoreRollsBackOnInsertFailure forces the version insert to fail after
// the current-flag flip and verifies nothing is committed.
func TestStoreRollsBackOnInsertFailure(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	store := NewStore(mockDB, nil, Options{})
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM domains WHERE name = ?")).
		WithArgs("eth").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM ontologies WHERE domain_id = ? AND name = ?")).
		WithArgs(1, "core").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT COALESCE\(MAX\(version_number\), 0\) \+ 1`).
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"next"}).AddRow(3))
	mock.ExpectExec("UPDATE ontology_versions SET is_current = 0").
		WithArgs(10).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("INSERT INTO ontology_versions").
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	_, err = store.Store(ctx, "eth:core", sampleTurtle, nil)
	require.Error(t, err)
	assert.True(t, errors.IsStorageError(err))
	assert.NoError(t, mock.ExpectationsWereMet(), "flip and insert must share one rolled-back transaction")
}

func TestTitleFromSlug(t *testing.T) {
	assert.Equal(t, "Engineering Ethics", titleFromSlug("engineering-ethics"))
	assert.Equal(t, "General", titleFromSlug("general"))
}
