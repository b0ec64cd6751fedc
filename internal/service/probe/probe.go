package probe

import (
	"context"
	"fmt"
	"sort"
	"time"

	"retrier/internal/entities"
	"retrier/pkg/logger"
	"retrier/pkg/retrier"
	"retrier/pkg/retrier/backoff_adapter"
)

const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 500

	// сколько последних результатов хранится на одну цель
	historyRetention = 1000

	// результат завершённой проверки сохраняется, даже если ctx вызова уже истёк
	storeTimeout = 5 * time.Second

	// на одну отправку события, если WithPublishTimeout не задан
	publishAttemptTimeout = 5 * time.Second
)

type Option func(*Service)

// WithRetryOptions передаёт опции в backoff_adapter на каждый запуск (таймер, random).
func WithRetryOptions(opts ...backoff_adapter.Option) Option {
	return func(s *Service) {
		s.retryOpts = append(s.retryOpts, opts...)
	}
}

// WithAttemptTimeout ограничивает каждую попытку проверки. 0 - без ограничения.
func WithAttemptTimeout(d time.Duration) Option {
	return func(s *Service) {
		s.attemptTimeout = d
	}
}

// WithPublishTimeout задаёт бюджет публикации результата вместе с ретраями публикатора.
func WithPublishTimeout(d time.Duration) Option {
	return func(s *Service) {
		s.publishTimeout = d
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

type Service struct {
	repository Repository
	txManager  TxManager
	publisher  Publisher
	log        logger.Logger

	targets  map[string]entities.Target
	checkers map[string]Checker

	retryConfig    retrier.Config
	retryOpts      []backoff_adapter.Option
	attemptTimeout time.Duration
	publishTimeout time.Duration
	now            func() time.Time
}

func New(
	repository Repository,
	txManager TxManager,
	publisher Publisher,
	log logger.Logger,
	targets []entities.Target,
	checkers map[string]Checker,
	retryConfig retrier.Config,
	opts ...Option,
) *Service {
	s := &Service{
		repository:  repository,
		txManager:   txManager,
		publisher:   publisher,
		log:         log.With(logger.NewField("component", "probe-service")),
		targets:     make(map[string]entities.Target, len(targets)),
		checkers:    checkers,
		retryConfig: retryConfig,
		// публикатор ретраит с той же конфигурацией
		publishTimeout: retryConfig.MaxTotalDuration(publishAttemptTimeout),
		now:            time.Now,
	}
	for _, target := range targets {
		s.targets[target.Name] = target
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Targets возвращает цели в порядке имён.
func (s *Service) Targets() []entities.Target {
	targets := make([]entities.Target, 0, len(s.targets))
	for _, target := range s.targets {
		targets = append(targets, target)
	}
	sort.Slice(targets, func(i, j int) bool {
		return targets[i].Name < targets[j].Name
	})
	return targets
}

// Target возвращает цель по имени.
func (s *Service) Target(name string) (entities.Target, bool) {
	target, ok := s.targets[name]
	return target, ok
}

// Run проверяет цель с ретраями, сохраняет и публикует результат.
// Неуспешная проверка - это результат с Success=false, а не ошибка сервиса.
func (s *Service) Run(ctx context.Context, name string) (*entities.ProbeResult, error) {
	target, ok := s.targets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTargetNotFound, name)
	}
	checker, ok := s.checkers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoChecker, name)
	}

	log := s.log.With(
		logger.NewField("target", target.Name),
		logger.NewField("kind", target.Kind.String()),
	)

	result := s.check(ctx, log, target, checker)

	storeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), storeTimeout)
	defer cancel()

	err := s.txManager.Do(storeCtx, func(ctx context.Context) error {
		id, err := s.repository.Save(ctx, result)
		if err != nil {
			return fmt.Errorf("save probe result: %w", err)
		}
		result.ID = id

		if _, err := s.repository.Prune(ctx, target.Name, historyRetention); err != nil {
			return fmt.Errorf("prune probe history: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("store probe result %s: %w", target.Name, err)
	}

	publishCtx, cancelPublish := context.WithTimeout(context.WithoutCancel(ctx), s.publishTimeout)
	defer cancelPublish()

	if err := s.publisher.Publish(publishCtx, result); err != nil {
		ProbePublishFailuresTotal.WithLabelValues(target.Name).Inc()
		log.Warn("failed to publish probe result",
			logger.NewField("error", err),
			logger.NewField("id", result.ID),
		)
	}

	return &result, nil
}

func (s *Service) check(ctx context.Context, log logger.Logger, target entities.Target, checker Checker) entities.ProbeResult {
	kind := target.Kind.String()

	attempts := 0
	notify := func(err error, retry int, delay time.Duration) {
		ProbeRetriesTotal.WithLabelValues(target.Name, kind).Inc()
		log.Warn("probe attempt failed, retrying",
			logger.NewField("error", err),
			logger.NewField("retry", retry),
			logger.NewField("delay", delay.String()),
		)
	}

	opts := append([]backoff_adapter.Option{backoff_adapter.WithNotify(notify)}, s.retryOpts...)
	check := retrier.Wrap(
		backoff_adapter.New(s.retryConfig, opts...),
		func(ctx context.Context, _ struct{}) (string, error) {
			attempts++
			if s.attemptTimeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, s.attemptTimeout)
				defer cancel()
			}
			return checker.Check(ctx)
		},
	)

	start := s.now()
	detail, err := check(ctx, struct{}{})
	duration := s.now().Sub(start)

	result := entities.ProbeResult{
		Target:    target.Name,
		Kind:      target.Kind,
		Success:   err == nil,
		Attempts:  attempts,
		Detail:    detail,
		Duration:  duration,
		CheckedAt: start,
	}

	outcome := "success"
	if err != nil {
		outcome = "failure"
		result.Error = err.Error()
		log.Warn("probe failed",
			logger.NewField("error", err),
			logger.NewField("attempts", attempts),
		)
	} else {
		log.Debug("probe succeeded",
			logger.NewField("detail", detail),
			logger.NewField("attempts", attempts),
		)
	}

	ProbeRunsTotal.WithLabelValues(target.Name, kind, outcome).Inc()
	ProbeAttempts.WithLabelValues(target.Name, kind).Observe(float64(attempts))
	ProbeDuration.WithLabelValues(target.Name, kind).Observe(duration.Seconds())

	return result
}

// Latest возвращает последний результат по каждой цели.
func (s *Service) Latest(ctx context.Context) ([]entities.ProbeResult, error) {
	results, err := s.repository.GetLatest(ctx)
	if err != nil {
		return nil, fmt.Errorf("get latest probe results: %w", err)
	}
	return results, nil
}

// History возвращает последние limit результатов цели, новые первыми.
// limit == 0 - DefaultHistoryLimit.
func (s *Service) History(ctx context.Context, name string, limit int) ([]entities.ProbeResult, error) {
	if _, ok := s.targets[name]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrTargetNotFound, name)
	}

	if limit == 0 {
		limit = DefaultHistoryLimit
	}
	if limit < 0 || limit > MaxHistoryLimit {
		return nil, fmt.Errorf("%w: %d (allowed 1..%d)", ErrInvalidLimit, limit, MaxHistoryLimit)
	}

	results, err := s.repository.GetByTarget(ctx, name, limit)
	if err != nil {
		return nil, fmt.Errorf("get probe history %s: %w", name, err)
	}
	return results, nil
}
