//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=probe_get_test
package probe_get

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
	History(ctx context.Context, name string, limit int) ([]entities.ProbeResult, error)
}
