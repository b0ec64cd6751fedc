package token_bucket

import (
	"sync"
	"time"
)

// Limiter решает, пропустить запрос или отклонить.
type Limiter interface {
	Allow() bool
}

// KeyedLimiter - то же самое, но с отдельным бакетом на каждый ключ.
type KeyedLimiter interface {
	Allow(key string) bool
}

// TokenBucket пополняется непрерывно: refillRate токенов в секунду, не больше capacity.
type TokenBucket struct {
	capacity   float64
	tokens     float64
	refillRate float64
	lastRefill time.Time
	lastUsed   time.Time
	now        func() time.Time
	mu         sync.Mutex
}

func NewTokenBucket(capacity int, refillRate float64) *TokenBucket {
	return newTokenBucket(capacity, refillRate, time.Now)
}

func newTokenBucket(capacity int, refillRate float64, now func() time.Time) *TokenBucket {
	if capacity < 0 {
		capacity = 0
	}
	if refillRate < 0 {
		refillRate = 0
	}
	return &TokenBucket{
		capacity:   float64(capacity),
		tokens:     float64(capacity),
		refillRate: refillRate,
		lastRefill: now(),
		lastUsed:   now(),
		now:        now,
	}
}

func (t *TokenBucket) Allow() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.refill()
	t.lastUsed = t.lastRefill

	if t.tokens >= 1 {
		t.tokens--
		return true
	}
	return false
}

func (t *TokenBucket) refill() {
	now := t.now()
	elapsed := now.Sub(t.lastRefill).Seconds()
	if elapsed <= 0 {
		return
	}
	t.lastRefill = now

	t.tokens += elapsed * t.refillRate
	if t.tokens > t.capacity {
		t.tokens = t.capacity
	}
}

// maxKeys - предел числа ключей. Новый ключ сверх предела сначала вызывает
// удаление полностью пополненных бакетов, а если таких нет, вытесняется
// бакет, дольше всех не получавший запросов.
const maxKeys = 1024

// Keyed лениво создаёт TokenBucket на каждый ключ.
type Keyed struct {
	capacity   int
	refillRate float64
	now        func() time.Time

	mu      sync.Mutex
	buckets map[string]*TokenBucket
}

func NewKeyed(capacity int, refillRate float64) *Keyed {
	return newKeyed(capacity, refillRate, time.Now)
}

func newKeyed(capacity int, refillRate float64, now func() time.Time) *Keyed {
	return &Keyed{
		capacity:   capacity,
		refillRate: refillRate,
		now:        now,
		buckets:    make(map[string]*TokenBucket),
	}
}

func (k *Keyed) Allow(key string) bool {
	k.mu.Lock()
	defer k.mu.Unlock()

	b, ok := k.buckets[key]
	if !ok {
		if len(k.buckets) >= maxKeys {
			k.prune()
		}
		b = newTokenBucket(k.capacity, k.refillRate, k.now)
		k.buckets[key] = b
	}
	return b.Allow()
}

// Len возвращает число отслеживаемых ключей.
func (k *Keyed) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()

	return len(k.buckets)
}

// prune удаляет полные бакеты: такой бакет неотличим от свежего.
func (k *Keyed) prune() {
	var (
		oldestKey  string
		oldestUsed time.Time
		found      bool
	)
	for key, b := range k.buckets {
		full, lastUsed := b.state()
		if full {
			delete(k.buckets, key)
			continue
		}
		if !found || lastUsed.Before(oldestUsed) {
			oldestKey, oldestUsed, found = key, lastUsed, true
		}
	}

	if found && len(k.buckets) >= maxKeys {
		delete(k.buckets, oldestKey)
	}
}

func (t *TokenBucket) state() (full bool, lastUsed time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.refill()
	return t.tokens >= t.capacity, t.lastUsed
}
