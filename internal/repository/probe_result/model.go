package probe_result

import "time"

type ProbeResultDB struct {
	ID         int64
	Target     string
	Kind       string
	Success    bool
	Attempts   int
	Detail     string
	Error      string
	DurationMs int64
	CheckedAt  time.Time
}

var columns = []string{
	"id", "target", "kind", "success", "attempts", "detail", "error", "duration_ms", "checked_at",
}

func (m *ProbeResultDB) scanTargets() []any {
	return []any{
		&m.ID, &m.Target, &m.Kind, &m.Success, &m.Attempts, &m.Detail, &m.Error, &m.DurationMs, &m.CheckedAt,
	}
}
