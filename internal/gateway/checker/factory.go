package checker

import (
	"context"
	"fmt"

	"retrier/internal/entities"
	"retrier/internal/gateway/grpc/health"
	"retrier/internal/gateway/http/status"
	"retrier/internal/gateway/kafka/topics"
	"retrier/internal/gateway/postgres/ping"
)

// Checker - одна попытка проверки цели. detail - короткое описание ответа.
type Checker interface {
	Check(ctx context.Context) (detail string, err error)
	Close() error
}

// Factory создаёт проверку по виду цели.
type Factory struct {
	kafkaVersion string
}

func NewFactory(kafkaVersion string) *Factory {
	return &Factory{kafkaVersion: kafkaVersion}
}

func (f *Factory) New(target entities.Target) (Checker, error) {
	var (
		c   Checker
		err error
	)

	switch target.Kind {
	case entities.ProbeHTTP:
		c = status.NewDefault(target.Address)
	case entities.ProbeGRPC:
		c, err = health.Dial(target.Address)
	case entities.ProbePostgres:
		c, err = ping.Dial(target.Address)
	case entities.ProbeKafka:
		c, err = topics.New(target.Address, f.kafkaVersion)
	default:
		return nil, fmt.Errorf("%w: %q (target %s)", ErrUnknownKind, target.Kind, target.Name)
	}
	if err != nil {
		return nil, fmt.Errorf("checker for %s: %w", target.Name, err)
	}

	return c, nil
}

// NewAll создаёт проверки для всех целей. При ошибке уже созданные закрываются.
func (f *Factory) NewAll(targets []entities.Target) (map[string]Checker, error) {
	checkers := make(map[string]Checker, len(targets))
	for _, target := range targets {
		c, err := f.New(target)
		if err != nil {
			_ = CloseAll(checkers)
			return nil, err
		}
		checkers[target.Name] = c
	}
	return checkers, nil
}

// CloseAll закрывает проверки и возвращает первую ошибку закрытия.
func CloseAll(checkers map[string]Checker) error {
	var first error
	for name, c := range checkers {
		if err := c.Close(); err != nil && first == nil {
			first = fmt.Errorf("close checker %s: %w", name, err)
		}
	}
	return first
}
