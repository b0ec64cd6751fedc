package graceful_shutdown

import (
	"context"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"
)

// Middleware во время остановки:
//   - после isShuttingDown не принимает новые изменяющие запросы (POST/PUT/DELETE):
//     on-demand проверка с ретраями может не уложиться в окно остановки;
//   - после отмены ongoingCtx отклоняет любые запросы.
//
// Чтения продолжают обслуживаться, пока балансировщик снимает трафик.
func Middleware(isShuttingDown *atomic.Bool, ongoingCtx context.Context, retryAfter time.Duration) func(http.Handler) http.Handler {
	retryAfterValue := strconv.Itoa(int(retryAfter.Seconds()))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-ongoingCtx.Done():
				reject(w, retryAfterValue)
				return
			default:
			}

			if isShuttingDown.Load() && !isReadOnly(r.Method) {
				reject(w, retryAfterValue)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func isReadOnly(method string) bool {
	return method == http.MethodGet || method == http.MethodHead || method == http.MethodOptions
}

func reject(w http.ResponseWriter, retryAfter string) {
	w.Header().Set("Retry-After", retryAfter)
	http.Error(w, "Service is shutting down", http.StatusServiceUnavailable)
}
