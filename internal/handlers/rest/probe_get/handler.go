package probe_get

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"retrier/internal/handlers/rest/dto"
	"retrier/internal/service/probe"
	"retrier/pkg/logger"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With(logger.NewField("handler", "probe_get"))

	return &Handler{
		log:     handlerLog,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	target := mux.Vars(r)["target"]

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		var err error
		limit, err = strconv.Atoi(raw)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
	}

	results, err := h.service.History(r.Context(), target, limit)
	if err != nil {
		switch {
		case errors.Is(err, probe.ErrTargetNotFound):
			w.WriteHeader(http.StatusNotFound)
		case errors.Is(err, probe.ErrInvalidLimit):
			w.WriteHeader(http.StatusBadRequest)
		default:
			h.log.Error("get probe history",
				logger.NewField("target", target),
				logger.NewField("error", err),
			)
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	err = json.NewEncoder(w).Encode(dto.FromProbeResults(results))
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
