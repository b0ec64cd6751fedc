//go:build wireinject
// +build wireinject

package app

import (
	"context"

	"github.com/IBM/sarama"
	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/google/wire"
	"github.com/jackc/pgx/v5/pgxpool"
	"retrier/internal/pkg/config"
	probeResultRepo "retrier/internal/repository/probe_result"
	probeService "retrier/internal/service/probe"
	"retrier/pkg/logger"
	"retrier/pkg/tx"
)

// InitializeApplication собирает сервис проверок. Прогрев фоновых задач
// (первый прогон всех целей) выполняется здесь же, до старта HTTP сервера.
//
// Cleanup закрывает проверки целей и публикатор событий;
// вызывать после остановки фоновых задач.
func InitializeApplication(
	ctx context.Context,
	log logger.Logger,
	pool *pgxpool.Pool,
	getter *pgxv5.CtxGetter,
	producer sarama.SyncProducer,
	cfg *config.Config,
) (*Application, func(), error) {
	wire.Build(
		provideTxManager,
		provideQuerier,
		provideProbeResultRepository,

		provideRetryConfig,
		provideCheckers,
		provideProbeCheckers,
		providePublisher,
		provideServiceProbe,

		provideProbeRunTasks,
		provideSystemCollector,
		provideTaskList,
		provideBackgroundWorkers,

		provideRunLimiter,

		wire.Struct(new(Application), "*"),

		wire.Bind(new(ServiceProbe), new(*probeService.Service)),
		wire.Bind(new(probeService.Repository), new(*probeResultRepo.Repository)),
		wire.Bind(new(probeService.TxManager), new(*tx.Manager)),
	)
	return nil, nil, nil
}
