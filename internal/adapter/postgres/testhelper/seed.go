package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/refbook-backend/internal/domain"
)

// UniqueCode returns prefix plus a short random suffix, for refbook codes that
// must not collide across parallel tests sharing one database.
func UniqueCode(prefix string) string {
	return prefix + "-" + uuid.New().String()[:8]
}

// Day returns UTC midnight of the given calendar date.
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Today returns UTC midnight of the current UTC calendar date shifted by days.
func Today(days int) time.Time {
	return domain.TruncateToDate(time.Now().UTC()).AddDate(0, 0, days)
}

// SeedRefbook inserts a refbook with a unique code and returns it.
func SeedRefbook(t *testing.T, pool *pgxpool.Pool, name string) domain.Refbook {
	t.Helper()

	rb := domain.Refbook{Code: UniqueCode("rb"), Name: name}
	err := pool.QueryRow(context.Background(),
		`INSERT INTO refbooks (code, name) VALUES ($1, $2) RETURNING id`,
		rb.Code, rb.Name,
	).Scan(&rb.ID)
	if err != nil {
		t.Fatalf("testhelper: SeedRefbook: %v", err)
	}

	return rb
}

// SeedVersion inserts a version of refbookID starting on startDate.
func SeedVersion(t *testing.T, pool *pgxpool.Pool, refbookID int64, label string, startDate time.Time) domain.RefbookVersion {
	t.Helper()

	v := domain.RefbookVersion{RefbookID: refbookID, Version: label, StartDate: startDate}
	err := pool.QueryRow(context.Background(),
		`INSERT INTO refbook_versions (refbook_id, version, start_date) VALUES ($1, $2, $3) RETURNING id`,
		v.RefbookID, v.Version, v.StartDate,
	).Scan(&v.ID)
	if err != nil {
		t.Fatalf("testhelper: SeedVersion: %v", err)
	}

	return v
}

// SeedElement inserts a code/value pair into versionID.
func SeedElement(t *testing.T, pool *pgxpool.Pool, versionID int64, code, value string) domain.RefbookElement {
	t.Helper()

	e := domain.RefbookElement{VersionID: versionID, Code: code, Value: value}
	err := pool.QueryRow(context.Background(),
		`INSERT INTO refbook_elements (version_id, code, value) VALUES ($1, $2, $3) RETURNING id`,
		e.VersionID, e.Code, e.Value,
	).Scan(&e.ID)
	if err != nil {
		t.Fatalf("testhelper: SeedElement: %v", err)
	}

	return e
}
