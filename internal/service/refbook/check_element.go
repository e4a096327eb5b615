package refbook

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/refbook-backend/internal/domain"
)

// CheckElement reports whether the resolved version of the refbook holds an
// element with exactly the given code and value.
//
// The version is the one labelled input.Version (latest start date if the
// label repeats) or, without a label, the latest one already in effect today.
// Returns domain.ErrNotFound when no version resolves.
func (s *Service) CheckElement(ctx context.Context, input CheckElementInput) (bool, error) {
	if err := input.Validate(); err != nil {
		return false, err
	}

	version, err := s.resolveVersion(ctx, input.RefbookID, input.Version)
	if err != nil {
		return false, err
	}

	exists, err := s.refbooks.ElementExists(ctx, version.ID, input.Code, input.Value)
	if err != nil {
		return false, fmt.Errorf("check element: %w", err)
	}

	return exists, nil
}

func (s *Service) resolveVersion(ctx context.Context, refbookID int64, label string) (*domain.RefbookVersion, error) {
	var (
		version *domain.RefbookVersion
		err     error
	)
	if label != "" {
		version, err = s.refbooks.GetVersionByLabel(ctx, refbookID, label)
	} else {
		version, err = s.refbooks.GetCurrentVersion(ctx, refbookID, s.today())
	}

	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.log.DebugContext(ctx, "no version resolved",
				slog.Int64("refbook_id", refbookID),
				slog.String("version", label),
			)
		}
		return nil, fmt.Errorf("resolve version: %w", err)
	}

	return version, nil
}
