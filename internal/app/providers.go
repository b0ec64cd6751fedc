package app

import (
	"context"
	"fmt"

	"github.com/IBM/sarama"
	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/jackc/pgx/v5/pgxpool"
	"retrier/internal/gateway/checker"
	"retrier/internal/gateway/kafka/probe_events"
	"retrier/internal/handlers/rest/ping_get"
	"retrier/internal/handlers/rest/probe_get"
	"retrier/internal/handlers/rest/probe_run_post"
	"retrier/internal/handlers/rest/probes_get"
	"retrier/internal/handlers/tasks/probe_run"
	"retrier/internal/pkg/config"
	"retrier/internal/pkg/metrics"
	probeResultRepo "retrier/internal/repository/probe_result"
	probeService "retrier/internal/service/probe"
	"retrier/pkg/background"
	"retrier/pkg/logger"
	"retrier/pkg/querier"
	"retrier/pkg/retrier"
	"retrier/pkg/token_bucket"
	"retrier/pkg/tx"
)

type Application struct {
	ServiceProbe      ServiceProbe
	RunLimiter        *token_bucket.Keyed
	BackgroundWorkers *background.Worker
}

type ServiceProbe interface {
	ping_get.Service
	probes_get.Service
	probe_get.Service
	probe_run_post.Service
}

// Checkers - открытые проверки целей по имени цели.
type Checkers map[string]checker.Checker

// EventPublisher - Kafka публикатор или Noop, если KAFKA_BROKERS не задан.
// Публикатор владеет продюсером: Close закрывает и его.
type EventPublisher interface {
	probeService.Publisher
	Close() error
}

func provideTxManager(pool *pgxpool.Pool) *tx.Manager {
	return tx.New(pool)
}

func provideQuerier(pool *pgxpool.Pool, getter *pgxv5.CtxGetter) *querier.Querier {
	return querier.New(pool, getter)
}

func provideProbeResultRepository(querier *querier.Querier) *probeResultRepo.Repository {
	return probeResultRepo.New(querier)
}

func provideRetryConfig(cfg *config.Config) (retrier.Config, error) {
	return retrier.NewConfig(cfg.Retry)
}

func provideCheckers(log logger.Logger, cfg *config.Config) (Checkers, func(), error) {
	factory := checker.NewFactory(cfg.Kafka.Sarama.Version)

	checkers, err := factory.NewAll(cfg.Probes.Targets)
	if err != nil {
		return nil, nil, fmt.Errorf("probe checkers: %w", err)
	}

	cleanup := func() {
		if err := checker.CloseAll(checkers); err != nil {
			log.Error("failed to close probe checkers", logger.NewField("error", err))
		}
	}
	return checkers, cleanup, nil
}

func provideProbeCheckers(checkers Checkers) map[string]probeService.Checker {
	res := make(map[string]probeService.Checker, len(checkers))
	for name, c := range checkers {
		res[name] = c
	}
	return res
}

func providePublisher(log logger.Logger, cfg *config.Config, producer sarama.SyncProducer) (EventPublisher, func(), error) {
	if producer == nil {
		log.Info("KAFKA_BROKERS is not set, probe events are not published")
		return probe_events.Noop{}, func() {}, nil
	}

	publisher, err := probe_events.New(producer, cfg.Kafka.Topic, log, cfg.Retry)
	if err != nil {
		_ = producer.Close()
		return nil, nil, fmt.Errorf("probe events publisher: %w", err)
	}

	cleanup := func() {
		if err := publisher.Close(); err != nil {
			log.Error("failed to close kafka producer", logger.NewField("error", err))
		}
	}
	return publisher, cleanup, nil
}

func provideServiceProbe(
	repository probeService.Repository,
	txManager probeService.TxManager,
	publisher EventPublisher,
	log logger.Logger,
	cfg *config.Config,
	checkers map[string]probeService.Checker,
	retryConfig retrier.Config,
) *probeService.Service {
	return probeService.New(
		repository,
		txManager,
		publisher,
		log,
		cfg.Probes.Targets,
		checkers,
		retryConfig,
		probeService.WithAttemptTimeout(cfg.Server.RequestTimeout),
	)
}

func provideProbeRunTasks(log logger.Logger, service *probeService.Service, cfg *config.Config) []*probe_run.ProbeRun {
	tasks := make([]*probe_run.ProbeRun, 0, len(cfg.Probes.Targets))
	for _, target := range service.Targets() {
		tasks = append(tasks, probe_run.NewProbeRun(log, service, target.Name, cfg.Probes.Interval))
	}
	return tasks
}

func provideSystemCollector() (*metrics.SystemCollector, error) {
	return metrics.NewSystemCollector(metrics.DefaultCollectInterval)
}

func provideTaskList(
	probeRuns []*probe_run.ProbeRun,
	systemCollector *metrics.SystemCollector,
) []background.Task {
	tasks := make([]background.Task, 0, len(probeRuns)+1)
	for _, run := range probeRuns {
		tasks = append(tasks, run)
	}
	return append(tasks, systemCollector)
}

func provideBackgroundWorkers(ctx context.Context, log logger.Logger, tasks []background.Task) (*background.Worker, error) {
	return background.New(ctx, log, tasks)
}

// provideRunLimiter - бакет на цель для POST /probes/{target}/run:
// PROBE_RUN_RATE_LIMIT запусков в секунду с таким же запасом.
func provideRunLimiter(cfg *config.Config) *token_bucket.Keyed {
	return token_bucket.NewKeyed(cfg.Probes.RunRateLimit, float64(cfg.Probes.RunRateLimit))
}
