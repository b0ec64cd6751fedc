package topics

import (
	"context"
	"fmt"
	"strings"

	"github.com/IBM/sarama"
	"retrier/internal/pkg/kafka"
)

type listFunc func(brokers []string, cfg *sarama.Config) ([]string, error)

// Checker проверяет доступность кластера чтением метаданных о топиках.
type Checker struct {
	brokers []string
	cfg     *sarama.Config
	list    listFunc
}

// New разбирает адрес "host:port;host:port". version пустая - версия sarama по умолчанию.
func New(address, version string) (*Checker, error) {
	cfg := sarama.NewConfig()
	if version != "" {
		v, err := sarama.ParseKafkaVersion(version)
		if err != nil {
			return nil, fmt.Errorf("parse kafka version %q: %w", version, err)
		}
		cfg.Version = v
	}
	cfg.Metadata.Retry.Max = 0

	var brokers []string
	for _, b := range strings.Split(address, ";") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	if len(brokers) == 0 {
		return nil, fmt.Errorf("no kafka brokers in %q", address)
	}

	return &Checker{
		brokers: brokers,
		cfg:     cfg,
		list:    kafka.ListTopics,
	}, nil
}

func (c *Checker) Check(ctx context.Context) (string, error) {
	type result struct {
		topics []string
		err    error
	}
	done := make(chan result, 1)
	go func() {
		topics, err := c.list(c.brokers, c.cfg)
		done <- result{topics: topics, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", fmt.Errorf("kafka metadata: %w", ctx.Err())
	case res := <-done:
		if res.err != nil {
			return "", fmt.Errorf("kafka metadata: %w", res.err)
		}
		return fmt.Sprintf("topics=%d", len(res.topics)), nil
	}
}

func (c *Checker) Close() error {
	return nil
}
