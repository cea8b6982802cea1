package detail

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type record struct{ ID string }

type pending struct {
	id    string
	ctx   context.Context
	reply chan error
}

func gatedLoader() (LoadFunc[record], chan *pending) {
	calls := make(chan *pending)
	load := func(ctx context.Context, id string) (*record, error) {
		p := &pending{id: id, ctx: ctx, reply: make(chan error, 1)}
		calls <- p
		if err := <-p.reply; err != nil {
			return nil, err
		}
		return &record{ID: id}, nil
	}
	return load, calls
}

func next(t *testing.T, calls chan *pending) *pending {
	t.Helper()
	select {
	case p := <-calls:
		return p
	case <-time.After(2 * time.Second):
		t.Fatal("expected a load")
		return nil
	}
}

func TestOpenLoadsRecord(t *testing.T) {
	f := NewFetcher("tickets", func(_ context.Context, id string) (*record, error) {
		return &record{ID: id}, nil
	}, nil, zap.NewNop())

	rec, err := f.Open(context.Background(), "T-1")
	require.NoError(t, err)
	assert.Equal(t, "T-1", rec.ID)

	st := f.Snapshot()
	assert.Equal(t, "T-1", st.ID)
	assert.False(t, st.Loading)
	assert.Equal(t, &record{ID: "T-1"}, st.Record)
}

func TestOpenFailureIsDescribed(t *testing.T) {
	f := NewFetcher("tickets", func(context.Context, string) (*record, error) {
		return nil, errors.New("not found")
	}, func(error) string { return "could not load" }, zap.NewNop())

	_, err := f.Open(context.Background(), "T-404")
	require.Error(t, err)

	st := f.Snapshot()
	assert.Equal(t, "could not load", st.Error)
	assert.Nil(t, st.Record)
	assert.False(t, st.Loading)
}

func TestLatestSelectionWins(t *testing.T) {
	load, calls := gatedLoader()
	f := NewFetcher("tickets", load, nil, zap.NewNop())

	first := make(chan error, 1)
	go func() {
		_, err := f.Open(context.Background(), "A")
		first <- err
	}()
	a := next(t, calls)

	second := make(chan error, 1)
	go func() {
		_, err := f.Open(context.Background(), "B")
		second <- err
	}()
	b := next(t, calls)
	assert.Error(t, a.ctx.Err())

	b.reply <- nil
	require.NoError(t, <-second)
	a.reply <- nil
	assert.ErrorIs(t, <-first, ErrSuperseded)

	st := f.Snapshot()
	assert.Equal(t, "B", st.ID)
	assert.Equal(t, "B", st.Record.ID)
}

func TestCloseDiscardsPendingLoad(t *testing.T) {
	load, calls := gatedLoader()
	f := NewFetcher("tickets", load, nil, zap.NewNop())

	done := make(chan error, 1)
	go func() {
		_, err := f.Open(context.Background(), "A")
		done <- err
	}()
	p := next(t, calls)

	f.Close()
	p.reply <- nil

	assert.ErrorIs(t, <-done, ErrSuperseded)
	assert.Equal(t, State[record]{}, f.Snapshot())
}
