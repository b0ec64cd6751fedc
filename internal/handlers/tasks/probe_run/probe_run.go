package probe_run

import (
	"context"
	"time"

	"retrier/internal/entities"
	"retrier/pkg/logger"
)

type Service interface {
	Run(ctx context.Context, name string) (*entities.ProbeResult, error)
}

// ProbeRun периодически проверяет одну цель.
type ProbeRun struct {
	log      logger.Logger
	service  Service
	target   string
	interval time.Duration
}

func NewProbeRun(log logger.Logger, service Service, target string, interval time.Duration) *ProbeRun {
	return &ProbeRun{
		log:      log,
		service:  service,
		target:   target,
		interval: interval,
	}
}

func (p *ProbeRun) TTL() time.Duration {
	return p.interval
}

// Do возвращает ошибку только если результат не удалось сохранить.
// Недоступность цели - обычный результат проверки.
func (p *ProbeRun) Do(ctx context.Context) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, p.interval)
	defer cancel()

	result, err := p.service.Run(ctxWithTimeout, p.target)
	if err != nil {
		return err
	}

	if !result.Success {
		p.log.With(
			logger.NewField("target", p.target),
			logger.NewField("attempts", result.Attempts),
			logger.NewField("error", result.Error),
		).Warn("probe run failed")
	}

	return nil
}

func (p *ProbeRun) Info() string {
	return "probe run " + p.target
}
