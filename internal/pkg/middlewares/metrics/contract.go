package metrics

import "retrier/pkg/logger"

type handlerLogger interface {
	Debug(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}
