package backoff_adapter

import (
	"retrier/pkg/retrier"
)

// Wrap - фабрика wrap(operation, config): мержит params с дефолтами
// (maxRetries=2, backoffBase=1s) один раз и возвращает операцию с ретраями.
func Wrap[A, T any](op retrier.Operation[A, T], params retrier.Params, opts ...Option) (retrier.Operation[A, T], error) {
	config, err := retrier.NewConfig(params)
	if err != nil {
		return nil, err
	}

	return retrier.Wrap(New(config, opts...), op), nil
}

// WrapAsync - Wrap для операций, возвращающих future.
func WrapAsync[A, T any](op retrier.AsyncOperation[A, T], params retrier.Params, opts ...Option) (retrier.AsyncOperation[A, T], error) {
	config, err := retrier.NewConfig(params)
	if err != nil {
		return nil, err
	}

	return retrier.WrapAsync(New(config, opts...), op), nil
}
