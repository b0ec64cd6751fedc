package rate_limiter

import "retrier/pkg/logger"

type Limiter interface {
	Allow(key string) bool
}

type handlerLogger interface {
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}
