package seeder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/heartmarshall/refbook-backend/internal/domain"
)

// Result summarizes one seeder run.
type Result struct {
	Refbooks int
	Versions int
	Elements int
	DryRun   bool
	Duration time.Duration
}

// Seeder writes fixtures into the store.
type Seeder struct {
	log  *slog.Logger
	repo RefbookWriter
	tx   TxRunner
}

// New creates a Seeder.
func New(log *slog.Logger, repo RefbookWriter, tx TxRunner) *Seeder {
	return &Seeder{log: log.With("component", "seeder"), repo: repo, tx: tx}
}

// Run loads the fixture at path and upserts it in a single transaction.
// With dryRun the file is only parsed and validated.
func (s *Seeder) Run(ctx context.Context, path string, dryRun bool) (Result, error) {
	start := time.Now()

	f, err := LoadFixture(path)
	if err != nil {
		return Result{}, err
	}

	var res Result
	res.Refbooks, res.Versions, res.Elements = f.Counts()
	s.log.InfoContext(ctx, "fixture loaded",
		slog.String("file", path),
		slog.Int("refbooks", res.Refbooks),
		slog.Int("versions", res.Versions),
		slog.Int("elements", res.Elements),
	)

	if dryRun {
		res.DryRun = true
		res.Duration = time.Since(start)
		s.log.InfoContext(ctx, "dry run, nothing written")
		return res, nil
	}

	if err := s.Apply(ctx, f); err != nil {
		return Result{}, err
	}

	res.Duration = time.Since(start)
	s.log.InfoContext(ctx, "seed completed", slog.Duration("duration", res.Duration))
	return res, nil
}

// Apply upserts an already validated fixture. Either everything is written
// or nothing is.
func (s *Seeder) Apply(ctx context.Context, f *Fixture) error {
	return s.tx.RunInTx(ctx, func(ctx context.Context) error {
		for _, rb := range f.Refbooks {
			if err := s.applyRefbook(ctx, rb); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Seeder) applyRefbook(ctx context.Context, rb RefbookFixture) error {
	refbookID, err := s.repo.UpsertRefbook(ctx, domain.Refbook{
		Code:        rb.Code,
		Name:        rb.Name,
		Description: rb.Description,
	})
	if err != nil {
		return fmt.Errorf("upsert refbook %q: %w", rb.Code, err)
	}

	for _, v := range rb.Versions {
		versionID, err := s.repo.UpsertVersion(ctx, domain.RefbookVersion{
			RefbookID: refbookID,
			Version:   v.Version,
			StartDate: v.startDate(),
		})
		if err != nil {
			return fmt.Errorf("upsert version %q of refbook %q: %w", v.Version, rb.Code, err)
		}

		elements := make([]domain.RefbookElement, len(v.Elements))
		for i, e := range v.Elements {
			elements[i] = domain.RefbookElement{VersionID: versionID, Code: e.Code, Value: e.Value}
		}

		n, err := s.repo.UpsertElements(ctx, versionID, elements)
		if err != nil {
			return fmt.Errorf("upsert elements of %q version %q: %w", rb.Code, v.Version, err)
		}

		s.log.DebugContext(ctx, "version seeded",
			slog.String("refbook", rb.Code),
			slog.String("version", v.Version),
			slog.String("start_date", domain.FormatDate(v.startDate())),
			slog.Int("elements", n),
		)
	}

	return nil
}
