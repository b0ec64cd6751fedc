package retrier

import (
	"math"
	"time"
)

const maxShift = 62

// Delay считает паузу перед ретраем:
//
//	delay = 2^retryCount * base + floor(random * base)
//
// random ожидается в [0, 1), значения вне диапазона прижимаются к границам.
// Экспоненциальная часть насыщается на math.MaxInt64 вместо переполнения.
func Delay(retryCount int, base time.Duration, random float64) time.Duration {
	if base <= 0 {
		return 0
	}

	exp := exponential(base, retryCount)
	j := jitter(base, random)

	if exp > math.MaxInt64-j {
		return time.Duration(math.MaxInt64)
	}

	return exp + j
}

func exponential(base time.Duration, retryCount int) time.Duration {
	if retryCount < 0 {
		retryCount = 0
	} else if retryCount > maxShift {
		retryCount = maxShift
	}

	multiplier := int64(1) << retryCount
	if int64(base) > math.MaxInt64/multiplier {
		return time.Duration(math.MaxInt64)
	}

	return time.Duration(int64(base) * multiplier)
}

func jitter(base time.Duration, random float64) time.Duration {
	if math.IsNaN(random) || random <= 0 {
		return 0
	}

	j := time.Duration(math.Floor(random * float64(base)))
	// float64 округление на больших base может дать ровно base
	if j >= base {
		j = base - 1
	}

	return j
}
