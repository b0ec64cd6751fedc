//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=probe_test
package probe

import (
	"context"

	"retrier/internal/entities"
)

type Repository interface {
	Save(ctx context.Context, result entities.ProbeResult) (int64, error)
	Prune(ctx context.Context, target string, keep int) (int64, error)
	GetLatest(ctx context.Context) ([]entities.ProbeResult, error)
	GetByTarget(ctx context.Context, target string, limit int) ([]entities.ProbeResult, error)
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

type Publisher interface {
	Publish(ctx context.Context, result entities.ProbeResult) error
}

type Checker interface {
	Check(ctx context.Context) (string, error)
}
