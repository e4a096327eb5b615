package refbook

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/refbook-backend/internal/adapter/postgres"
	"github.com/heartmarshall/refbook-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Write operations (seeder only; the HTTP API is read-only)
// ---------------------------------------------------------------------------

// UpsertRefbook inserts a refbook or, when its code already exists, updates
// name and description. Returns the refbook id.
func (r *Repo) UpsertRefbook(ctx context.Context, rb domain.Refbook) (int64, error) {
	q := psql.
		Insert("refbooks").
		Columns("code", "name", "description").
		Values(rb.Code, rb.Name, rb.Description).
		Suffix("ON CONFLICT (code) DO UPDATE SET name = EXCLUDED.name, description = EXCLUDED.description RETURNING id")

	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build refbook upsert: %w", err)
	}

	var id int64
	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return 0, postgres.MapError(err, "refbook", rb.Code)
	}
	return id, nil
}

// UpsertVersion inserts a version keyed by (refbook, label, start date) and
// returns its id. An existing identical version is reused.
func (r *Repo) UpsertVersion(ctx context.Context, v domain.RefbookVersion) (int64, error) {
	q := psql.
		Insert("refbook_versions").
		Columns("refbook_id", "version", "start_date").
		Values(v.RefbookID, v.Version, domain.TruncateToDate(v.StartDate)).
		Suffix("ON CONFLICT (refbook_id, version, start_date) DO UPDATE SET version = EXCLUDED.version RETURNING id")

	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build version upsert: %w", err)
	}

	var id int64
	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return 0, postgres.MapError(err, "refbook_version", v.Version)
	}
	return id, nil
}

// UpsertElements writes elements into versionID in one batch. An element whose
// code already exists in the version gets its value replaced.
// Returns the number of rows written.
func (r *Repo) UpsertElements(ctx context.Context, versionID int64, elements []domain.RefbookElement) (int, error) {
	if len(elements) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for _, e := range elements {
		sql, args, err := psql.
			Insert("refbook_elements").
			Columns("version_id", "code", "value").
			Values(versionID, e.Code, e.Value).
			Suffix("ON CONFLICT (version_id, code) DO UPDATE SET value = EXCLUDED.value").
			ToSql()
		if err != nil {
			return 0, fmt.Errorf("build element upsert: %w", err)
		}
		batch.Queue(sql, args...)
	}

	br := postgres.QuerierFromCtx(ctx, r.db).SendBatch(ctx, batch)
	defer br.Close()

	written := 0
	for _, e := range elements {
		tag, err := br.Exec()
		if err != nil {
			return written, postgres.MapError(err, "refbook_element", e.Code)
		}
		written += int(tag.RowsAffected())
	}

	return written, nil
}
