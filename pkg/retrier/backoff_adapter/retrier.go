package backoff_adapter

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/cenkalti/backoff/v4"
	"retrier/pkg/retrier"
)

type Option func(*Retrier)

// WithRandom подменяет источник случайности для джиттера (значения в [0, 1)).
func WithRandom(random func() float64) Option {
	return func(r *Retrier) {
		if random != nil {
			r.random = random
		}
	}
}

// WithTimer подменяет таймер ожидания между попытками.
// Фабрика вызывается на каждый вызов ExecuteWithContext.
func WithTimer(newTimer func() backoff.Timer) Option {
	return func(r *Retrier) {
		r.newTimer = newTimer
	}
}

// WithNotify подписывает на каждый запланированный ретрай.
func WithNotify(notify retrier.NotifyFunc) Option {
	return func(r *Retrier) {
		r.notify = notify
	}
}

// Retrier - реализация retrier.Retrier на cenkalti/backoff
// с джиттерованной экспонентой retrier.Delay.
//
// Сам Retrier неизменяем и безопасен для конкурентного использования:
// состояние цепочки ретраев создаётся заново на каждый вызов.
type Retrier struct {
	config   retrier.Config
	random   func() float64
	newTimer func() backoff.Timer
	notify   retrier.NotifyFunc
}

// New создаёт Retrier. RetryCount из config игнорируется - цепочка всегда начинается с нуля.
func New(config retrier.Config, opts ...Option) *Retrier {
	config.RetryCount = 0

	r := &Retrier{
		config: config,
		random: rand.Float64,
	}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Config возвращает эффективную конфигурацию.
func (r *Retrier) Config() retrier.Config {
	return r.config
}

// ExecuteWithContext вызывает fn, пока та не вернёт nil или не кончатся ретраи.
// Возвращается ошибка последней попытки как есть.
// Если ctx завершился во время паузы, новых попыток не будет,
// а наружу уйдёт ошибка последней попытки.
func (r *Retrier) ExecuteWithContext(ctx context.Context, fn func(context.Context) error) error {
	b := newJitteredBackOff(r.config, r.random)

	var lastErr error
	operation := func() error {
		err := fn(ctx)
		if err == nil {
			return nil
		}
		lastErr = err
		// backoff.Retry трактует *backoff.PermanentError особо,
		// а здесь все ошибки равнозначны
		return &attemptError{err: err}
	}

	var notify backoff.Notify
	if r.notify != nil {
		notify = func(_ error, delay time.Duration) {
			r.notify(lastErr, b.state.RetryCount, delay)
		}
	}

	var timer backoff.Timer
	if r.newTimer != nil {
		timer = r.newTimer()
	}

	err := backoff.RetryNotifyWithTimer(operation, backoff.WithContext(b, ctx), notify, timer)
	if err != nil {
		return lastErr
	}

	return nil
}

type attemptError struct {
	err error
}

func (e *attemptError) Error() string {
	return e.err.Error()
}
