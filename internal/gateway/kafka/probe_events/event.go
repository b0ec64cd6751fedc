package probe_events

import (
	"time"

	"retrier/internal/entities"
)

// Event - JSON представление результата проверки в топике.
type Event struct {
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

func toEvent(r entities.ProbeResult) Event {
	return Event{
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
