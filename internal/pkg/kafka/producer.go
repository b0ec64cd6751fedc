package kafka

import (
	"context"
	"fmt"

	"github.com/IBM/sarama"
	"retrier/internal/pkg/config"
	"retrier/internal/pkg/retrylog"
	"retrier/pkg/logger"
	"retrier/pkg/retrier/backoff_adapter"
)

// NewSaramaConfig собирает конфиг синхронного продюсера.
// Ретраи отправки делает обёртка вокруг SendMessage, поэтому у sarama они выключены.
func NewSaramaConfig(versionStr string) (*sarama.Config, error) {
	cfg := sarama.NewConfig()

	version, err := sarama.ParseKafkaVersion(versionStr)
	if err != nil {
		return nil, fmt.Errorf("parse kafka version %q: %w", versionStr, err)
	}
	cfg.Version = version

	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Return.Successes = true
	cfg.Producer.Return.Errors = true
	cfg.Producer.Retry.Max = 0
	cfg.Producer.Partitioner = sarama.NewHashPartitioner

	return cfg, nil
}

// NewSyncProducer подключается к брокерам, предварительно дождавшись их доступности.
func NewSyncProducer(ctx context.Context, log logger.Logger, cfg *config.Kafka) (sarama.SyncProducer, error) {
	saramaConfig, err := NewSaramaConfig(cfg.Sarama.Version)
	if err != nil {
		return nil, fmt.Errorf("build saramaConfig: %w", err)
	}

	brokers := cfg.BrokerList()
	kafkaLog := log.With(
		logger.NewField("brokers", brokers),
		logger.NewField("topic", cfg.Topic),
	)

	if err := pingKafka(ctx, kafkaLog, brokers, saramaConfig); err != nil {
		return nil, fmt.Errorf("kafka connection: %w", err)
	}

	producer, err := sarama.NewSyncProducer(brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create producer: %w", err)
	}

	return producer, nil
}

// ListTopics открывает клиент, читает метаданные и закрывает его.
func ListTopics(brokers []string, cfg *sarama.Config) ([]string, error) {
	client, err := sarama.NewClient(brokers, cfg)
	if err != nil {
		return nil, err
	}
	defer client.Close() //nolint:errcheck // ошибка закрытия не влияет на результат

	return client.Topics()
}

func pingKafka(ctx context.Context, log logger.Logger, brokers []string, cfg *sarama.Config) error {
	ping, err := backoff_adapter.Wrap(
		func(_ context.Context, _ struct{}) ([]string, error) {
			return ListTopics(brokers, cfg)
		},
		retrylog.StartupParams(),
		backoff_adapter.WithNotify(retrylog.Notify(log, "Kafka ping failed, retrying")),
	)
	if err != nil {
		return err
	}

	log.Info("attempting Kafka connection")
	topics, err := ping(ctx, struct{}{})
	if err != nil {
		log.Error("Kafka connection failed after retries",
			logger.NewField("error", err),
		)
		return fmt.Errorf("failed to connect to Kafka: %w", err)
	}

	log.Info("Kafka connection established",
		logger.NewField("topics", len(topics)),
	)
	return nil
}
