package seeder_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	postgres "github.com/heartmarshall/refbook-backend/internal/adapter/postgres"
	"github.com/heartmarshall/refbook-backend/internal/adapter/postgres/refbook"
	"github.com/heartmarshall/refbook-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/refbook-backend/internal/app/seeder"
	"github.com/heartmarshall/refbook-backend/internal/domain"
)

// Compile-time check: *refbook.Repo must satisfy RefbookWriter.
var _ seeder.RefbookWriter = (*refbook.Repo)(nil)

func writeFixture(t *testing.T, code string) string {
	t.Helper()
	doc := `
refbooks:
  - code: ` + code + `
    name: Integration
    versions:
      - version: "1.0"
        start_date: 2024-01-01
        elements:
          - {code: "1", value: "One"}
          - {code: "2", value: "Two"}
      - version: "2.0"
        start_date: 2024-06-01
        elements:
          - {code: "1", value: "Uno"}
`
	path := filepath.Join(t.TempDir(), "fixture.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	return path
}

func findRefbook(t *testing.T, repo *refbook.Repo, code string) domain.Refbook {
	t.Helper()
	all, err := repo.ListRefbooks(context.Background(), nil)
	require.NoError(t, err)
	for _, rb := range all {
		if rb.Code == code {
			return rb
		}
	}
	t.Fatalf("refbook %q not found", code)
	return domain.Refbook{}
}

func TestSeeder_Integration_Idempotent(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := refbook.New(pool)
	s := seeder.New(slog.Default(), repo, postgres.NewTxManager(pool))
	ctx := context.Background()

	code := testhelper.UniqueCode("seed")
	path := writeFixture(t, code)

	_, err := s.Run(ctx, path, false)
	require.NoError(t, err)
	_, err = s.Run(ctx, path, false)
	require.NoError(t, err, "second run must upsert, not conflict")

	rb := findRefbook(t, repo, code)
	elements, err := repo.ListElements(ctx, rb.ID, nil)
	require.NoError(t, err)
	assert.Len(t, elements, 3)

	v, err := repo.GetVersionByLabel(ctx, rb.ID, "2.0")
	require.NoError(t, err)
	exists, err := repo.ElementExists(ctx, v.ID, "1", "Uno")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestSeeder_Integration_DryRun(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := refbook.New(pool)
	s := seeder.New(slog.Default(), repo, postgres.NewTxManager(pool))

	code := testhelper.UniqueCode("dry")
	_, err := s.Run(context.Background(), writeFixture(t, code), true)
	require.NoError(t, err)

	all, err := repo.ListRefbooks(context.Background(), nil)
	require.NoError(t, err)
	for _, rb := range all {
		assert.NotEqual(t, code, rb.Code)
	}
}

// failingWriter fails the element write of the second version, after the
// refbook and the first version are already written inside the transaction.
type failingWriter struct {
	*refbook.Repo
	calls int
}

var errInjected = errors.New("injected failure")

func (w *failingWriter) UpsertElements(ctx context.Context, versionID int64, elements []domain.RefbookElement) (int, error) {
	w.calls++
	if w.calls == 2 {
		return 0, errInjected
	}
	return w.Repo.UpsertElements(ctx, versionID, elements)
}

func TestSeeder_Integration_RollbackOnFailure(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := refbook.New(pool)
	s := seeder.New(slog.Default(), &failingWriter{Repo: repo}, postgres.NewTxManager(pool))

	code := testhelper.UniqueCode("rollback")
	_, err := s.Run(context.Background(), writeFixture(t, code), false)
	require.ErrorIs(t, err, errInjected)

	all, err := repo.ListRefbooks(context.Background(), nil)
	require.NoError(t, err)
	for _, rb := range all {
		assert.NotEqual(t, code, rb.Code, "refbook must be rolled back")
	}
}
