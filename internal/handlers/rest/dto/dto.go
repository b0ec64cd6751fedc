package dto

import (
	"time"

	"retrier/internal/entities"
)

type PingResponse struct {
	Message *string `json:"message,omitempty"`
	Uptime  string  `json:"uptime"`
	Targets int     `json:"targets"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

type ProbeResult struct {
	ID         int64     `json:"id"`
	Target     string    `json:"target"`
	Kind       string    `json:"kind"`
	Success    bool      `json:"success"`
	Attempts   int       `json:"attempts"`
	Detail     string    `json:"detail,omitempty"`
	Error      string    `json:"error,omitempty"`
	DurationMs int64     `json:"duration_ms"`
	CheckedAt  time.Time `json:"checked_at"`
}

func FromProbeResult(r entities.ProbeResult) ProbeResult {
	return ProbeResult{
		ID:         r.ID,
		Target:     r.Target,
		Kind:       r.Kind.String(),
		Success:    r.Success,
		Attempts:   r.Attempts,
		Detail:     r.Detail,
		Error:      r.Error,
		DurationMs: r.Duration.Milliseconds(),
		CheckedAt:  r.CheckedAt,
	}
}

func FromProbeResults(results []entities.ProbeResult) []ProbeResult {
	res := make([]ProbeResult, len(results))
	for i, r := range results {
		res[i] = FromProbeResult(r)
	}
	return res
}
