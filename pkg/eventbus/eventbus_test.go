package eventbus

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type pinged struct{}

func (pinged) Name() string { return "test.pinged" }

func TestPublishReachesEveryListener(t *testing.T) {
	bus := New(zap.NewNop())

	var calls atomic.Int32
	bus.Subscribe("test.pinged", func(ctx context.Context, e Event) error {
		calls.Add(1)
		return nil
	})
	bus.Subscribe("test.pinged", func(ctx context.Context, e Event) error {
		calls.Add(1)
		return errors.New("listener error is logged, not propagated")
	})
	bus.Subscribe("other", func(ctx context.Context, e Event) error {
		t.Error("unrelated listener called")
		return nil
	})

	bus.Publish(context.Background(), pinged{})
	bus.Wait()

	assert.Equal(t, int32(2), calls.Load())
}
