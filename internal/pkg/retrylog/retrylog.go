package retrylog

import (
	"time"

	"github.com/AlekSi/pointer"
	"retrier/pkg/logger"
	"retrier/pkg/retrier"
)

const (
	// 5 ретраев с базой 1s: паузы 2s, 4s, 8s, 16s, 32s плюс джиттер.
	startupMaxRetries  = 5
	startupBackoffBase = time.Second
)

// StartupParams - параметры ретраев при подключении к зависимостям на старте.
func StartupParams() retrier.Params {
	return retrier.Params{
		MaxRetries:  pointer.To(startupMaxRetries),
		BackoffBase: pointer.To(startupBackoffBase),
	}
}

// Notify возвращает NotifyFunc, который пишет каждую неудачную попытку в лог.
func Notify(log logger.Logger, msg string) retrier.NotifyFunc {
	return func(err error, retry int, delay time.Duration) {
		log.Warn(msg,
			logger.NewField("error", err),
			logger.NewField("retry", retry),
			logger.NewField("delay", delay.String()),
		)
	}
}
