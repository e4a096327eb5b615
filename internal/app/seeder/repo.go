// Package seeder loads refbooks, their versions and elements from a YAML
// fixture file into the database.
package seeder

import (
	"context"

	"github.com/heartmarshall/refbook-backend/internal/domain"
)

// RefbookWriter is the write contract consumed by the seeder.
// Implemented by refbook.Repo.
type RefbookWriter interface {
	UpsertRefbook(ctx context.Context, rb domain.Refbook) (int64, error)
	UpsertVersion(ctx context.Context, v domain.RefbookVersion) (int64, error)
	UpsertElements(ctx context.Context, versionID int64, elements []domain.RefbookElement) (int, error)
}

// TxRunner runs fn in one database transaction. Implemented by postgres.TxManager.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
