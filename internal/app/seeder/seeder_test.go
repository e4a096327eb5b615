package seeder

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/refbook-backend/internal/domain"
)

// mockRepo records calls to verify seeder behavior.
type mockRepo struct {
	mu sync.Mutex

	refbooks []domain.Refbook
	versions []domain.RefbookVersion
	elements map[int64][]domain.RefbookElement
	nextID   int64

	upsertVersionErr error
	callLog          []string
}

func newMockRepo() *mockRepo {
	return &mockRepo{elements: make(map[int64][]domain.RefbookElement)}
}

func (m *mockRepo) UpsertRefbook(_ context.Context, rb domain.Refbook) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callLog = append(m.callLog, "refbook:"+rb.Code)
	m.nextID++
	rb.ID = m.nextID
	m.refbooks = append(m.refbooks, rb)
	return rb.ID, nil
}

func (m *mockRepo) UpsertVersion(_ context.Context, v domain.RefbookVersion) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callLog = append(m.callLog, "version:"+v.Version)
	if m.upsertVersionErr != nil {
		return 0, m.upsertVersionErr
	}
	m.nextID++
	v.ID = m.nextID
	m.versions = append(m.versions, v)
	return v.ID, nil
}

func (m *mockRepo) UpsertElements(_ context.Context, versionID int64, elements []domain.RefbookElement) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callLog = append(m.callLog, "elements")
	m.elements[versionID] = append(m.elements[versionID], elements...)
	return len(elements), nil
}

// recordingTx runs fn inline and counts transactions.
type recordingTx struct {
	runs int
	err  error
}

func (tx *recordingTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	tx.runs++
	if err := fn(ctx); err != nil {
		tx.err = err
		return err
	}
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestSeeder_Run(t *testing.T) {
	t.Parallel()

	repo := newMockRepo()
	tx := &recordingTx{}
	s := New(testLogger(), repo, tx)

	res, err := s.Run(context.Background(), "testdata/refbooks.yaml", false)
	require.NoError(t, err)

	assert.Equal(t, Result{Refbooks: 2, Versions: 3, Elements: 7, Duration: res.Duration}, res)
	assert.Equal(t, 1, tx.runs, "whole file in one transaction")

	assert.Equal(t, []string{
		"refbook:MS1", "version:1.0", "elements", "version:2.0", "elements",
		"refbook:SEX", "version:1", "elements",
	}, repo.callLog)

	require.Len(t, repo.versions, 3)
	ms1 := repo.refbooks[0]
	assert.Equal(t, ms1.ID, repo.versions[0].RefbookID)
	assert.Equal(t, "2022-01-01", domain.FormatDate(repo.versions[0].StartDate))

	v2 := repo.versions[1]
	require.Len(t, repo.elements[v2.ID], 3)
	for _, e := range repo.elements[v2.ID] {
		assert.Equal(t, v2.ID, e.VersionID)
	}
}

func TestSeeder_DryRun(t *testing.T) {
	t.Parallel()

	repo := newMockRepo()
	tx := &recordingTx{}
	s := New(testLogger(), repo, tx)

	res, err := s.Run(context.Background(), "testdata/refbooks.yaml", true)
	require.NoError(t, err)

	assert.True(t, res.DryRun)
	assert.Equal(t, 7, res.Elements)
	assert.Zero(t, tx.runs)
	assert.Empty(t, repo.callLog)
}

func TestSeeder_InvalidFixtureWritesNothing(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
refbooks:
  - code: A
    name: A
    versions:
      - {version: "1", start_date: 2024-02-30}
`), 0o644))

	repo := newMockRepo()
	tx := &recordingTx{}

	_, err := New(testLogger(), repo, tx).Run(context.Background(), path, false)

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Zero(t, tx.runs)
	assert.Empty(t, repo.callLog)
}

func TestSeeder_RepoErrorAbortsTransaction(t *testing.T) {
	t.Parallel()

	boom := errors.New("disk full")
	repo := newMockRepo()
	repo.upsertVersionErr = boom
	tx := &recordingTx{}

	_, err := New(testLogger(), repo, tx).Run(context.Background(), "testdata/refbooks.yaml", false)

	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), `version "1.0" of refbook "MS1"`)
	assert.ErrorIs(t, tx.err, boom, "error must surface from inside the transaction")
	assert.Equal(t, []string{"refbook:MS1", "version:1.0"}, repo.callLog, "stops at the first failure")
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("SEEDER_FILE", "/data/refbooks.yaml")
	t.Setenv("SEEDER_DRY_RUN", "true")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "/data/refbooks.yaml", cfg.File)
	assert.True(t, cfg.DryRun)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
