package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRetrier_Execute(t *testing.T) {
	t.Run("succeeds on first attempt", func(t *testing.T) {
		r := New(WithDelay(time.Millisecond), WithMaxDelay(time.Millisecond))

		calls := 0
		err := r.Execute(t.Context(), func() error {
			calls++
			return nil
		})

		assert.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("retries until success", func(t *testing.T) {
		r := New(WithAttempts(3), WithDelay(time.Millisecond), WithMaxDelay(time.Millisecond))

		calls := 0
		err := r.Execute(t.Context(), func() error {
			calls++
			if calls < 3 {
				return errors.New("transient")
			}
			return nil
		})

		assert.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("returns last error when attempts are exhausted", func(t *testing.T) {
		r := New(WithAttempts(2), WithDelay(time.Millisecond), WithMaxDelay(time.Millisecond))

		boom := errors.New("boom")
		calls := 0
		err := r.Execute(t.Context(), func() error {
			calls++
			return boom
		})

		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 2, calls)
	})

	t.Run("stops when the context is canceled", func(t *testing.T) {
		r := New(WithAttempts(100), WithDelay(50*time.Millisecond))

		ctx, cancel := context.WithCancel(t.Context())
		calls := 0
		go func() {
			time.Sleep(10 * time.Millisecond)
			cancel()
		}()

		err := r.Execute(ctx, func() error {
			calls++
			return errors.New("transient")
		})

		assert.Error(t, err)
		assert.Less(t, calls, 100)
	})
}
