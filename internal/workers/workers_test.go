package workers

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestWorkerRunsUntilCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var calls atomic.Int32

	done := StartReminderWorker(ctx, 5*time.Millisecond, zap.NewNop(), func(context.Context) (int, error) {
		calls.Add(1)
		return 0, nil
	})

	assert.Eventually(t, func() bool { return calls.Load() >= 2 }, time.Second, time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
}

func TestWorkerDisabled(t *testing.T) {
	done := StartReminderWorker(context.Background(), 0, zap.NewNop(), func(context.Context) (int, error) {
		t.Fatal("job must not run")
		return 0, nil
	})
	_, open := <-done
	assert.False(t, open)
}
