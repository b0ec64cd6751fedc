package retrier

import (
	"context"
	"time"

	"retrier/pkg/future"
)

// Retrier выполняет fn с повторами, пока та не завершится успешно
// или не будет исчерпан бюджет ретраев.
type Retrier interface {
	ExecuteWithContext(ctx context.Context, fn func(context.Context) error) error
}

// NotifyFunc вызывается перед каждым ретраем: err - ошибка упавшей попытки,
// retry - номер ретрая (с 1), delay - запланированная пауза.
type NotifyFunc func(err error, retry int, delay time.Duration)

// Operation - синхронная форма асинхронной операции: аргументы A, результат T.
// Несколько аргументов передаются структурой.
type Operation[A, T any] func(ctx context.Context, args A) (T, error)

// AsyncOperation - операция, сразу возвращающая future.
type AsyncOperation[A, T any] func(ctx context.Context, args A) *future.Future[T]

// Wrap возвращает операцию с той же сигнатурой, что и op, но с ретраями.
// Каждый вызов независим: своё состояние ретраев, свои таймеры.
// При исчерпании ретраев возвращается ошибка последней попытки без обёрток.
func Wrap[A, T any](r Retrier, op Operation[A, T]) Operation[A, T] {
	return func(ctx context.Context, args A) (T, error) {
		var res T

		err := r.ExecuteWithContext(ctx, func(ctx context.Context) error {
			var err error
			res, err = op(ctx, args)
			return err
		})
		if err != nil {
			var zero T
			return zero, err
		}

		return res, nil
	}
}

// WrapAsync - то же, что Wrap, для операций, возвращающих future.
// Следующая попытка стартует только после того, как future предыдущей завершился.
func WrapAsync[A, T any](r Retrier, op AsyncOperation[A, T]) AsyncOperation[A, T] {
	wrapped := Wrap(r, func(ctx context.Context, args A) (T, error) {
		return op(ctx, args).Wait()
	})

	return func(ctx context.Context, args A) *future.Future[T] {
		return future.Go(func() (T, error) {
			return wrapped(ctx, args)
		})
	}
}
