//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=probe_run_post_test
package probe_run_post

import (
	"context"

	"retrier/internal/entities"
	"retrier/pkg/logger"
)

type handlerLogger interface {
	Debug(msg string, fields ...logger.Field)
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	Target(name string) (entities.Target, bool)
	Run(ctx context.Context, name string) (*entities.ProbeResult, error)
}

type limiter interface {
	Allow(key string) bool
}
