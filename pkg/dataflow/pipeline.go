package dataflow

import (
	"context"
	"sync"
	"time"
)

// Stream is a read-only channel of items.
type Stream[T any] <-chan T

// From creates a stream from a slice.
func From[T any](ctx context.Context, items ...T) Stream[T] {
	out := make(chan T, len(items))
	go func() {
		defer close(out)
		for _, item := range items {
			select {
			case <-ctx.Done():
				return
			case out <- item:
			}
		}
	}()
	return out
}

// Map transforms the stream with fn. Items whose error is swallowed by the
// error handler, or not handled at all, are dropped.
func Map[T, R any](ctx context.Context, input Stream[T], fn func(context.Context, T) (R, error), opts ...Option) Stream[R] {
	cfg := newConfig(opts)
	out := make(chan R, cfg.bufferSize)

	var wg sync.WaitGroup
	wg.Add(cfg.workers)
	for i := 0; i < cfg.workers; i++ {
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case item, ok := <-input:
					if !ok {
						return
					}
					var res R
					err := attempt(ctx, cfg, func() error {
						var err error
						res, err = fn(ctx, item)
						return err
					})
					if err != nil {
						if cfg.errorHandler != nil {
							cfg.errorHandler(err)
						}
						continue
					}
					select {
					case <-ctx.Done():
						return
					case out <- res:
					}
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// ForEach runs fn for every item and blocks until the stream is drained.
// The first unhandled error cancels the remaining work and is returned.
func ForEach[T any](ctx context.Context, input Stream[T], fn func(context.Context, T) error, opts ...Option) error {
	cfg := newConfig(opts)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)
	wg.Add(cfg.workers)
	for i := 0; i < cfg.workers; i++ {
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case item, ok := <-input:
					if !ok {
						return
					}
					err := attempt(ctx, cfg, func() error { return fn(ctx, item) })
					if err == nil || (cfg.errorHandler != nil && cfg.errorHandler(err)) {
						continue
					}
					errOnce.Do(func() {
						firstErr = err
						cancel()
					})
					return
				}
			}
		}()
	}
	wg.Wait()

	if firstErr != nil {
		return firstErr
	}
	return context.Cause(ctx)
}

// attempt runs call once plus the configured retries.
func attempt(ctx context.Context, cfg *config, call func() error) error {
	err := call()
	for i := 1; err != nil && i <= cfg.maxRetries; i++ {
		if cfg.backoff != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(cfg.backoff(i)):
			}
		}
		err = call()
	}
	return err
}
