// Package future - минимальный future поверх горутины и канала.
package future

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
)

var ErrPanic = errors.New("future: panic in task")

// Future - результат асинхронной задачи. Завершается ровно один раз.
type Future[T any] struct {
	done  chan struct{}
	value T
	err   error
}

// Go запускает fn в отдельной горутине. Паника в fn превращается в ErrPanic.
func Go[T any](fn func() (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}

	go func() {
		defer close(f.done)
		defer func() {
			if r := recover(); r != nil {
				var zero T
				f.value = zero
				f.err = fmt.Errorf("%w: %v\n%s", ErrPanic, r, debug.Stack())
			}
		}()

		f.value, f.err = fn()
	}()

	return f
}

func Resolved[T any](value T) *Future[T] {
	f := &Future[T]{done: make(chan struct{}), value: value}
	close(f.done)
	return f
}

func Rejected[T any](err error) *Future[T] {
	f := &Future[T]{done: make(chan struct{}), err: err}
	close(f.done)
	return f
}

// Done закрывается, когда задача завершилась.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Wait блокируется до завершения задачи.
func (f *Future[T]) Wait() (T, error) {
	<-f.done
	return f.value, f.err
}

// Await ждёт завершения, но не дольше жизни ctx.
// Отмена ctx не останавливает саму задачу.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, fmt.Errorf("await: %w", ctx.Err())
	}
}
