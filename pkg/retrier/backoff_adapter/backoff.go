package backoff_adapter

import (
	"time"

	"github.com/cenkalti/backoff/v4"
	"retrier/pkg/retrier"
)

var _ backoff.BackOff = (*jitteredBackOff)(nil)

// jitteredBackOff - backoff.BackOff поверх неизменяемой retrier.Config.
// Каждый NextBackOff заменяет state на state.Next(), сама Config не мутируется.
type jitteredBackOff struct {
	initial retrier.Config
	state   retrier.Config
	random  func() float64
}

func newJitteredBackOff(config retrier.Config, random func() float64) *jitteredBackOff {
	return &jitteredBackOff{
		initial: config,
		state:   config,
		random:  random,
	}
}

func (b *jitteredBackOff) Reset() {
	b.state = b.initial
}

func (b *jitteredBackOff) NextBackOff() time.Duration {
	b.state = b.state.Next()
	if b.state.Exhausted() {
		return backoff.Stop
	}

	return b.state.Delay(b.random())
}
