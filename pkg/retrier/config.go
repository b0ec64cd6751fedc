package retrier

import (
	"fmt"
	"math"
	"time"
)

const (
	DefaultMaxRetries  = 2
	DefaultBackoffBase = 1000 * time.Millisecond
)

// Config - эффективная конфигурация цепочки ретраев.
//
// Значение неизменяемое: Next возвращает копию с RetryCount+1,
// поэтому конкурентные вызовы одной обёрнутой операции не делят состояние.
type Config struct {
	// MaxRetries - сколько дополнительных попыток допускается после первой.
	MaxRetries int
	// RetryCount - сколько ретраев уже израсходовано.
	RetryCount int
	// BackoffBase - базовая единица паузы.
	BackoffBase time.Duration
}

// Params - частичная конфигурация. nil поля берутся из DefaultConfig.
type Params struct {
	MaxRetries  *int
	RetryCount  *int
	BackoffBase *time.Duration
}

func DefaultConfig() Config {
	return Config{
		MaxRetries:  DefaultMaxRetries,
		RetryCount:  0,
		BackoffBase: DefaultBackoffBase,
	}
}

// Merge накладывает заданные поля на значения по умолчанию.
func (p Params) Merge() Config {
	cfg := DefaultConfig()

	if p.MaxRetries != nil {
		cfg.MaxRetries = *p.MaxRetries
	}
	if p.RetryCount != nil {
		cfg.RetryCount = *p.RetryCount
	}
	if p.BackoffBase != nil {
		cfg.BackoffBase = *p.BackoffBase
	}

	return cfg
}

// NewConfig мержит параметры с дефолтами и валидирует результат.
// Ненулевой RetryCount снаружи не принимается: цепочка всегда начинается с нуля.
func NewConfig(p Params) (Config, error) {
	cfg := p.Merge()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("retry config: %w", err)
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if c.MaxRetries < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeMaxRetries, c.MaxRetries)
	}
	if c.RetryCount != 0 {
		return fmt.Errorf("%w: %d", ErrRetryCountPreset, c.RetryCount)
	}
	if c.BackoffBase <= 0 {
		return fmt.Errorf("%w: %s", ErrNonPositiveBackoffBase, c.BackoffBase)
	}
	return nil
}

// Next возвращает конфигурацию для следующей попытки после неудачной.
func (c Config) Next() Config {
	c.RetryCount++
	return c
}

// Exhausted сообщает, что бюджет ретраев израсходован.
func (c Config) Exhausted() bool {
	return c.RetryCount > c.MaxRetries
}

// Delay - пауза перед ретраем с номером c.RetryCount.
func (c Config) Delay(random float64) time.Duration {
	return Delay(c.RetryCount, c.BackoffBase, random)
}

// MaxTotalDelay - верхняя граница суммы пауз оставшейся цепочки ретраев,
// без учёта времени самих попыток. Next увеличивает RetryCount до расчёта паузы,
// поэтому цепочка ждёт Delay(RetryCount+1) .. Delay(MaxRetries).
// Насыщается на math.MaxInt64.
func (c Config) MaxTotalDelay() time.Duration {
	var total time.Duration
	for retry := c.RetryCount + 1; retry <= c.MaxRetries; retry++ {
		d := Delay(retry, c.BackoffBase, 1)
		if total > math.MaxInt64-d {
			return time.Duration(math.MaxInt64)
		}
		total += d
	}
	return total
}

// MaxTotalDuration - бюджет оставшейся цепочки: MaxTotalDelay плюс
// по attemptTimeout на каждую попытку. Насыщается на math.MaxInt64.
func (c Config) MaxTotalDuration(attemptTimeout time.Duration) time.Duration {
	attempts := time.Duration(c.MaxRetries - c.RetryCount + 1)
	if attempts <= 0 || attemptTimeout <= 0 {
		return c.MaxTotalDelay()
	}
	if attempts > time.Duration(math.MaxInt64)/attemptTimeout {
		return time.Duration(math.MaxInt64)
	}

	total, spent := c.MaxTotalDelay(), attempts*attemptTimeout
	if total > time.Duration(math.MaxInt64)-spent {
		return time.Duration(math.MaxInt64)
	}
	return total + spent
}
