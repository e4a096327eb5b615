package refbook

import (
	"context"
	"fmt"
	"time"

	"github.com/heartmarshall/refbook-backend/internal/domain"
)

// ListRefbooks returns all refbooks. A non-empty date (YYYY-MM-DD) restricts
// the result to refbooks with a version starting on or before it; a malformed
// date yields a *domain.ValidationError.
func (s *Service) ListRefbooks(ctx context.Context, date string) ([]domain.Refbook, error) {
	var effectiveOn *time.Time
	if date != "" {
		d, err := domain.ParseDate(date)
		if err != nil {
			return nil, err
		}
		effectiveOn = &d
	}

	refbooks, err := s.refbooks.ListRefbooks(ctx, effectiveOn)
	if err != nil {
		return nil, fmt.Errorf("list refbooks: %w", err)
	}

	return refbooks, nil
}
