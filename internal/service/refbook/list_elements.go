package refbook

import (
	"context"
	"fmt"

	"github.com/heartmarshall/refbook-backend/internal/domain"
)

// ListElements returns the elements of refbookID. With a version label only
// elements of versions carrying that label are returned. Unknown refbooks and
// labels give an empty list, not an error.
func (s *Service) ListElements(ctx context.Context, refbookID int64, version string) ([]domain.RefbookElement, error) {
	var label *string
	if version != "" {
		label = &version
	}

	elements, err := s.refbooks.ListElements(ctx, refbookID, label)
	if err != nil {
		return nil, fmt.Errorf("list elements: %w", err)
	}

	return elements, nil
}
