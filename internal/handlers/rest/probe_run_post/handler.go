package probe_run_post

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"retrier/internal/handlers/rest/dto"
	"retrier/internal/service/probe"
	"retrier/pkg/logger"
)

type Handler struct {
	log     handlerLogger
	service Service
	limiter limiter
}

func New(log handlerLogger, service Service, limiter limiter) *Handler {
	handlerLog := log.With(logger.NewField("handler", "probe_run_post"))

	return &Handler{
		log:     handlerLog,
		service: service,
		limiter: limiter,
	}
}

// ServeHTTP запускает проверку синхронно. Ответ приходит после всех ретраев,
// неуспешная проверка отдаётся как 200 с success=false.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["target"]

	if _, ok := h.service.Target(name); !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	if !h.limiter.Allow(name) {
		ProbeRunRejectedTotal.WithLabelValues(name).Inc()
		w.WriteHeader(http.StatusTooManyRequests)
		return
	}

	result, err := h.service.Run(r.Context(), name)
	if err != nil {
		switch {
		case errors.Is(err, probe.ErrTargetNotFound):
			w.WriteHeader(http.StatusNotFound)
		default:
			h.log.Error("run probe",
				logger.NewField("target", name),
				logger.NewField("error", err),
			)
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	err = json.NewEncoder(w).Encode(dto.FromProbeResult(*result))
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
