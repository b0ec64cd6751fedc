package probe_result

import (
	"time"

	"retrier/internal/entities"
)

func ToDomain(m *ProbeResultDB) *entities.ProbeResult {
	if m == nil {
		return nil
	}
	return &entities.ProbeResult{
		ID:        m.ID,
		Target:    m.Target,
		Kind:      entities.ProbeKind(m.Kind),
		Success:   m.Success,
		Attempts:  m.Attempts,
		Detail:    m.Detail,
		Error:     m.Error,
		Duration:  time.Duration(m.DurationMs) * time.Millisecond,
		CheckedAt: m.CheckedAt,
	}
}

func FromDomain(r *entities.ProbeResult) *ProbeResultDB {
	if r == nil {
		return nil
	}
	return &ProbeResultDB{
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

func ToDomainList(models []ProbeResultDB) []entities.ProbeResult {
	if len(models) == 0 {
		return []entities.ProbeResult{}
	}

	result := make([]entities.ProbeResult, len(models))
	for i := range models {
		result[i] = *ToDomain(&models[i])
	}
	return result
}
