// Package refbook implements the refbook repository using PostgreSQL.
// Reads serve the lookup API; the upsert operations are used by the offline
// seeder and run inside the caller's transaction when one is in the context.
package refbook

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/refbook-backend/internal/adapter/postgres"
	"github.com/heartmarshall/refbook-backend/internal/domain"
)

// psql builds PostgreSQL statements with $n placeholders.
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Repo provides refbook persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new refbook repository. db is normally a *pgxpool.Pool.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ---------------------------------------------------------------------------
// Row types
// ---------------------------------------------------------------------------

type refbookRow struct {
	ID          int64   `db:"id"`
	Code        string  `db:"code"`
	Name        string  `db:"name"`
	Description *string `db:"description"`
}

type versionRow struct {
	ID        int64     `db:"id"`
	RefbookID int64     `db:"refbook_id"`
	Version   string    `db:"version"`
	StartDate time.Time `db:"start_date"`
}

type elementRow struct {
	ID        int64  `db:"id"`
	VersionID int64  `db:"version_id"`
	Code      string `db:"code"`
	Value     string `db:"value"`
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// ListRefbooks returns refbooks ordered by id. When effectiveOn is non-nil only
// refbooks having at least one version with start_date <= effectiveOn are
// returned, each once. Returns an empty slice (not nil) when nothing matches.
func (r *Repo) ListRefbooks(ctx context.Context, effectiveOn *time.Time) ([]domain.Refbook, error) {
	q := psql.
		Select("r.id", "r.code", "r.name", "r.description").
		From("refbooks r").
		OrderBy("r.id")

	if effectiveOn != nil {
		q = q.Where(squirrel.Expr(
			"EXISTS (SELECT 1 FROM refbook_versions v WHERE v.refbook_id = r.id AND v.start_date <= ?)",
			domain.TruncateToDate(*effectiveOn),
		))
	}

	var rows []refbookRow
	if err := r.selectRows(ctx, &rows, q); err != nil {
		return nil, fmt.Errorf("list refbooks: %w", err)
	}

	result := make([]domain.Refbook, len(rows))
	for i, row := range rows {
		result[i] = toDomainRefbook(row)
	}
	return result, nil
}

// ListElements returns the elements of every version of refbookID, or only of
// the versions labelled version when it is non-nil. An unknown refbook or
// label yields an empty slice. Elements are ordered by version start date,
// then by insertion order.
func (r *Repo) ListElements(ctx context.Context, refbookID int64, version *string) ([]domain.RefbookElement, error) {
	q := psql.
		Select("e.id", "e.version_id", "e.code", "e.value").
		From("refbook_elements e").
		Join("refbook_versions v ON v.id = e.version_id").
		Where(squirrel.Eq{"v.refbook_id": refbookID})

	if version != nil {
		q = q.Where(squirrel.Eq{"v.version": *version})
	}

	q = q.OrderBy("v.start_date", "v.id", "e.id")

	var rows []elementRow
	if err := r.selectRows(ctx, &rows, q); err != nil {
		return nil, fmt.Errorf("list elements of refbook %d: %w", refbookID, err)
	}

	result := make([]domain.RefbookElement, len(rows))
	for i, row := range rows {
		result[i] = toDomainElement(row)
	}
	return result, nil
}

// GetVersionByLabel returns the version of refbookID labelled label. When the
// label was reused with several start dates the latest one wins.
// Returns domain.ErrNotFound if there is no such version.
func (r *Repo) GetVersionByLabel(ctx context.Context, refbookID int64, label string) (*domain.RefbookVersion, error) {
	q := versionSelect().
		Where(squirrel.Eq{"refbook_id": refbookID}).
		Where(squirrel.Eq{"version": label}).
		OrderBy("start_date DESC", "id DESC").
		Limit(1)

	v, err := r.getVersion(ctx, q)
	if err != nil {
		return nil, postgres.MapError(err, "refbook_version", fmt.Sprintf("%d/%s", refbookID, label))
	}
	return v, nil
}

// GetCurrentVersion returns the version of refbookID with the greatest
// start_date not after day. Returns domain.ErrNotFound when every version
// starts in the future or the refbook has none.
func (r *Repo) GetCurrentVersion(ctx context.Context, refbookID int64, day time.Time) (*domain.RefbookVersion, error) {
	day = domain.TruncateToDate(day)

	q := versionSelect().
		Where(squirrel.Eq{"refbook_id": refbookID}).
		Where(squirrel.LtOrEq{"start_date": day}).
		OrderBy("start_date DESC", "id DESC").
		Limit(1)

	v, err := r.getVersion(ctx, q)
	if err != nil {
		return nil, postgres.MapError(err, "refbook_version", fmt.Sprintf("%d@%s", refbookID, domain.FormatDate(day)))
	}
	return v, nil
}

// ElementExists reports whether versionID contains an element with exactly
// this code and value.
func (r *Repo) ElementExists(ctx context.Context, versionID int64, code, value string) (bool, error) {
	q := psql.
		Select("1").
		From("refbook_elements").
		Where(squirrel.Eq{"version_id": versionID}).
		Where(squirrel.Eq{"code": code}).
		Where(squirrel.Eq{"value": value}).
		Prefix("SELECT EXISTS(").
		Suffix(")")

	sql, args, err := q.ToSql()
	if err != nil {
		return false, fmt.Errorf("build element exists query: %w", err)
	}

	var exists bool
	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("check element in version %d: %w", versionID, err)
	}
	return exists, nil
}

// ---------------------------------------------------------------------------
// Query helpers
// ---------------------------------------------------------------------------

func versionSelect() squirrel.SelectBuilder {
	return psql.
		Select("id", "refbook_id", "version", "start_date").
		From("refbook_versions")
}

func (r *Repo) selectRows(ctx context.Context, dst any, q squirrel.SelectBuilder) error {
	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}
	return pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), dst, sql, args...)
}

func (r *Repo) getVersion(ctx context.Context, q squirrel.SelectBuilder) (*domain.RefbookVersion, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var row versionRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, pgx.ErrNoRows
		}
		return nil, err
	}

	v := toDomainVersion(row)
	return &v, nil
}

// ---------------------------------------------------------------------------
// Mapping helpers: rows -> domain
// ---------------------------------------------------------------------------

func toDomainRefbook(row refbookRow) domain.Refbook {
	return domain.Refbook{
		ID:          row.ID,
		Code:        row.Code,
		Name:        row.Name,
		Description: row.Description,
	}
}

func toDomainVersion(row versionRow) domain.RefbookVersion {
	return domain.RefbookVersion{
		ID:        row.ID,
		RefbookID: row.RefbookID,
		Version:   row.Version,
		StartDate: domain.TruncateToDate(row.StartDate),
	}
}

func toDomainElement(row elementRow) domain.RefbookElement {
	return domain.RefbookElement{
		ID:        row.ID,
		VersionID: row.VersionID,
		Code:      row.Code,
		Value:     row.Value,
	}
}
