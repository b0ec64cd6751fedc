package probe_events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"retrier/internal/entities"
	"retrier/pkg/logger"
	"retrier/pkg/retrier"
	"retrier/pkg/retrier/backoff_adapter"
)

type sent struct {
	Partition int32
	Offset    int64
}

type Publisher struct {
	producer producer
	topic    string
	log      logger.Logger
	send     retrier.Operation[*sarama.ProducerMessage, sent]
}

// New оборачивает отправку в ретраи с джиттерованной экспонентой.
func New(producer producer, topic string, log logger.Logger, params retrier.Params, opts ...backoff_adapter.Option) (*Publisher, error) {
	p := &Publisher{
		producer: producer,
		topic:    topic,
		log:      log.With(logger.NewField("component", "probe-events"), logger.NewField("topic", topic)),
	}

	notify := func(err error, retry int, delay time.Duration) {
		PublishRetriesTotal.Inc()
		p.log.Warn("probe event send failed, retrying",
			logger.NewField("error", err),
			logger.NewField("retry", retry),
			logger.NewField("delay", delay.String()),
		)
	}

	send, err := backoff_adapter.Wrap(
		p.sendOnce,
		params,
		append([]backoff_adapter.Option{backoff_adapter.WithNotify(notify)}, opts...)...,
	)
	if err != nil {
		return nil, fmt.Errorf("probe events publisher: %w", err)
	}
	p.send = send

	return p, nil
}

func (p *Publisher) Publish(ctx context.Context, result entities.ProbeResult) error {
	payload, err := json.Marshal(toEvent(result))
	if err != nil {
		return fmt.Errorf("marshal probe event: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(result.Target),
		Value: sarama.ByteEncoder(payload),
	}

	start := time.Now()
	res, err := p.send(ctx, msg)
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	PublishDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())

	if err != nil {
		return fmt.Errorf("publish probe event %s: %w", result.Target, err)
	}

	p.log.Debug("probe event published",
		logger.NewField("target", result.Target),
		logger.NewField("partition", res.Partition),
		logger.NewField("offset", res.Offset),
	)
	return nil
}

func (p *Publisher) Close() error {
	return p.producer.Close()
}

type sendResult struct {
	sent sent
	err  error
}

// sendOnce прерывает ожидание по ctx. SendMessage контекст не принимает,
// поэтому отменённая отправка дорабатывает в фоне до Producer.Timeout.
func (p *Publisher) sendOnce(ctx context.Context, msg *sarama.ProducerMessage) (sent, error) {
	if err := ctx.Err(); err != nil {
		return sent{}, err
	}

	done := make(chan sendResult, 1)
	go func() {
		partition, offset, err := p.producer.SendMessage(msg)
		done <- sendResult{sent: sent{Partition: partition, Offset: offset}, err: err}
	}()

	select {
	case <-ctx.Done():
		return sent{}, ctx.Err()
	case res := <-done:
		if res.err != nil {
			return sent{}, res.err
		}
		return res.sent, nil
	}
}

// Noop используется, когда KAFKA_BROKERS не задан.
type Noop struct{}

func (Noop) Publish(context.Context, entities.ProbeResult) error {
	return nil
}

func (Noop) Close() error {
	return nil
}
