package entities

import (
	"time"
)

type ProbeKind string

const (
	ProbeHTTP     ProbeKind = "http"
	ProbeGRPC     ProbeKind = "grpc"
	ProbePostgres ProbeKind = "postgres"
	ProbeKafka    ProbeKind = "kafka"
)

func (k ProbeKind) String() string {
	return string(k)
}

func (k ProbeKind) IsValid() bool {
	switch k {
	case ProbeHTTP, ProbeGRPC, ProbePostgres, ProbeKafka:
		return true
	}
	return false
}

// Target - зависимость, которую периодически проверяет сервис.
type Target struct {
	Name    string
	Kind    ProbeKind
	Address string
}

// ProbeResult - итог одной проверки с учётом всех повторных попыток.
type ProbeResult struct {
	ID        int64
	Target    string
	Kind      ProbeKind
	Success   bool
	Attempts  int
	Detail    string
	Error     string
	Duration  time.Duration
	CheckedAt time.Time
}
