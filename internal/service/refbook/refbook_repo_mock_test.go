package refbook

import (
	"context"
	"sync"
	"time"

	"github.com/heartmarshall/refbook-backend/internal/domain"
)

var _ refbookRepo = &refbookRepoMock{}

type refbookRepoMock struct {
	ListRefbooksFunc      func(ctx context.Context, effectiveOn *time.Time) ([]domain.Refbook, error)
	ListElementsFunc      func(ctx context.Context, refbookID int64, version *string) ([]domain.RefbookElement, error)
	GetVersionByLabelFunc func(ctx context.Context, refbookID int64, label string) (*domain.RefbookVersion, error)
	GetCurrentVersionFunc func(ctx context.Context, refbookID int64, day time.Time) (*domain.RefbookVersion, error)
	ElementExistsFunc     func(ctx context.Context, versionID int64, code string, value string) (bool, error)

	calls struct {
		ListRefbooks []struct {
			Ctx         context.Context
			EffectiveOn *time.Time
		}
		ListElements []struct {
			Ctx       context.Context
			RefbookID int64
			Version   *string
		}
		GetVersionByLabel []struct {
			Ctx       context.Context
			RefbookID int64
			Label     string
		}
		GetCurrentVersion []struct {
			Ctx       context.Context
			RefbookID int64
			Day       time.Time
		}
		ElementExists []struct {
			Ctx       context.Context
			VersionID int64
			Code      string
			Value     string
		}
	}
	lockListRefbooks      sync.RWMutex
	lockListElements      sync.RWMutex
	lockGetVersionByLabel sync.RWMutex
	lockGetCurrentVersion sync.RWMutex
	lockElementExists     sync.RWMutex
}

func (mock *refbookRepoMock) ListRefbooks(ctx context.Context, effectiveOn *time.Time) ([]domain.Refbook, error) {
	if mock.ListRefbooksFunc == nil {
		panic("refbookRepoMock.ListRefbooksFunc: method is nil but refbookRepo.ListRefbooks was just called")
	}
	callInfo := struct {
		Ctx         context.Context
		EffectiveOn *time.Time
	}{Ctx: ctx, EffectiveOn: effectiveOn}
	mock.lockListRefbooks.Lock()
	mock.calls.ListRefbooks = append(mock.calls.ListRefbooks, callInfo)
	mock.lockListRefbooks.Unlock()
	return mock.ListRefbooksFunc(ctx, effectiveOn)
}

func (mock *refbookRepoMock) ListRefbooksCalls() []struct {
	Ctx         context.Context
	EffectiveOn *time.Time
} {
	mock.lockListRefbooks.RLock()
	calls := mock.calls.ListRefbooks
	mock.lockListRefbooks.RUnlock()
	return calls
}

func (mock *refbookRepoMock) ListElements(ctx context.Context, refbookID int64, version *string) ([]domain.RefbookElement, error) {
	if mock.ListElementsFunc == nil {
		panic("refbookRepoMock.ListElementsFunc: method is nil but refbookRepo.ListElements was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		RefbookID int64
		Version   *string
	}{Ctx: ctx, RefbookID: refbookID, Version: version}
	mock.lockListElements.Lock()
	mock.calls.ListElements = append(mock.calls.ListElements, callInfo)
	mock.lockListElements.Unlock()
	return mock.ListElementsFunc(ctx, refbookID, version)
}

func (mock *refbookRepoMock) ListElementsCalls() []struct {
	Ctx       context.Context
	RefbookID int64
	Version   *string
} {
	mock.lockListElements.RLock()
	calls := mock.calls.ListElements
	mock.lockListElements.RUnlock()
	return calls
}

func (mock *refbookRepoMock) GetVersionByLabel(ctx context.Context, refbookID int64, label string) (*domain.RefbookVersion, error) {
	if mock.GetVersionByLabelFunc == nil {
		panic("refbookRepoMock.GetVersionByLabelFunc: method is nil but refbookRepo.GetVersionByLabel was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		RefbookID int64
		Label     string
	}{Ctx: ctx, RefbookID: refbookID, Label: label}
	mock.lockGetVersionByLabel.Lock()
	mock.calls.GetVersionByLabel = append(mock.calls.GetVersionByLabel, callInfo)
	mock.lockGetVersionByLabel.Unlock()
	return mock.GetVersionByLabelFunc(ctx, refbookID, label)
}

func (mock *refbookRepoMock) GetVersionByLabelCalls() []struct {
	Ctx       context.Context
	RefbookID int64
	Label     string
} {
	mock.lockGetVersionByLabel.RLock()
	calls := mock.calls.GetVersionByLabel
	mock.lockGetVersionByLabel.RUnlock()
	return calls
}

func (mock *refbookRepoMock) GetCurrentVersion(ctx context.Context, refbookID int64, day time.Time) (*domain.RefbookVersion, error) {
	if mock.GetCurrentVersionFunc == nil {
		panic("refbookRepoMock.GetCurrentVersionFunc: method is nil but refbookRepo.GetCurrentVersion was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		RefbookID int64
		Day       time.Time
	}{Ctx: ctx, RefbookID: refbookID, Day: day}
	mock.lockGetCurrentVersion.Lock()
	mock.calls.GetCurrentVersion = append(mock.calls.GetCurrentVersion, callInfo)
	mock.lockGetCurrentVersion.Unlock()
	return mock.GetCurrentVersionFunc(ctx, refbookID, day)
}

func (mock *refbookRepoMock) GetCurrentVersionCalls() []struct {
	Ctx       context.Context
	RefbookID int64
	Day       time.Time
} {
	mock.lockGetCurrentVersion.RLock()
	calls := mock.calls.GetCurrentVersion
	mock.lockGetCurrentVersion.RUnlock()
	return calls
}

func (mock *refbookRepoMock) ElementExists(ctx context.Context, versionID int64, code string, value string) (bool, error) {
	if mock.ElementExistsFunc == nil {
		panic("refbookRepoMock.ElementExistsFunc: method is nil but refbookRepo.ElementExists was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		VersionID int64
		Code      string
		Value     string
	}{Ctx: ctx, VersionID: versionID, Code: code, Value: value}
	mock.lockElementExists.Lock()
	mock.calls.ElementExists = append(mock.calls.ElementExists, callInfo)
	mock.lockElementExists.Unlock()
	return mock.ElementExistsFunc(ctx, versionID, code, value)
}

func (mock *refbookRepoMock) ElementExistsCalls() []struct {
	Ctx       context.Context
	VersionID int64
	Code      string
	Value     string
} {
	mock.lockElementExists.RLock()
	calls := mock.calls.ElementExists
	mock.lockElementExists.RUnlock()
	return calls
}
