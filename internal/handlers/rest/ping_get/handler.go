package ping_get

import (
	"encoding/json"
	"net/http"
	"time"

	"retrier/internal/handlers/rest/dto"
	"retrier/pkg/logger"
)

type Handler struct {
	log       handlerLogger
	service   Service
	startedAt time.Time
	now       func() time.Time
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With(logger.NewField("handler", "ping_get"))

	return &Handler{
		log:       handlerLog,
		service:   service,
		startedAt: time.Now(),
		now:       time.Now,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	message := "pong"
	res := dto.PingResponse{
		Message: &message,
		Uptime:  h.now().Sub(h.startedAt).Truncate(time.Second).String(),
		Targets: len(h.service.Targets()),
	}

	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(res)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
