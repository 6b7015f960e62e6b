package testutil

import (
	"context"

	"github.com/Belphemur/filmed/internal/models"
)

// CollectStream consumes a stream and returns every value in arrival order.
// It stops at the first error. This is a test helper and should not be used
// in production code.
func CollectStream[T any](ctx context.Context, stream <-chan models.StreamResult[T]) ([]T, error) {
	var values []T
	for {
		select {
		case result, ok := <-stream:
			if !ok {
				return values, nil
			}
			if result.Err != nil {
				return nil, result.Err
			}
			values = append(values, result.Value)
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// CollectAll consumes a stream to completion and splits values from errors.
// This is a test helper and should not be used in production code.
func CollectAll[T any](ctx context.Context, stream <-chan models.StreamResult[T]) ([]T, []error, error) {
	var (
		values []T
		errs   []error
	)
	for {
		select {
		case result, ok := <-stream:
			if !ok {
				return values, errs, nil
			}
			if result.Err != nil {
				errs = append(errs, result.Err)
				continue
			}
			values = append(values, result.Value)
		case <-ctx.Done():
			return nil, nil, ctx.Err()
		}
	}
}
