package refbook

import (
	"context"
	"log/slog"
	"time"

	"github.com/heartmarshall/refbook-backend/internal/domain"
)

type refbookRepo interface {
	ListRefbooks(ctx context.Context, effectiveOn *time.Time) ([]domain.Refbook, error)
	ListElements(ctx context.Context, refbookID int64, version *string) ([]domain.RefbookElement, error)
	GetVersionByLabel(ctx context.Context, refbookID int64, label string) (*domain.RefbookVersion, error)
	GetCurrentVersion(ctx context.Context, refbookID int64, day time.Time) (*domain.RefbookVersion, error)
	ElementExists(ctx context.Context, versionID int64, code, value string) (bool, error)
}

// Service implements the read-only refbook lookups.
type Service struct {
	refbooks refbookRepo
	loc      *time.Location
	now      func() time.Time
	log      *slog.Logger
}

// NewService creates a new Refbook service. loc is the timezone "today" is
// computed in when a check has no explicit version; nil means UTC.
func NewService(log *slog.Logger, refbooks refbookRepo, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		refbooks: refbooks,
		loc:      loc,
		now:      time.Now,
		log:      log.With("service", "refbook"),
	}
}

// today returns the current calendar date in the service timezone.
func (s *Service) today() time.Time {
	return domain.TruncateToDate(s.now().In(s.loc))
}
