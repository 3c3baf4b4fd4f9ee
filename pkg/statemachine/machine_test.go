package statemachine_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/folio/pkg/statemachine"
)

type state string
type event string

const (
	idle        state = "idle"
	reconciling state = "reconciling"
	failed      state = "failed"

	begin  event = "begin"
	settle event = "settle"
	abort  event = "abort"
)

func newMachine(opts ...statemachine.Option[state, event]) *statemachine.Machine[state, event] {
	base := []statemachine.Option[state, event]{
		statemachine.WithTransition(idle, reconciling, begin),
		statemachine.WithTransition(reconciling, idle, settle),
	}
	return statemachine.New(idle, append(base, opts...)...)
}

func TestFire(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("basic cycle", func(t *testing.T) {
		m := newMachine()
		require.NoError(t, m.Fire(ctx, begin, nil))
		assert.True(t, m.Is(reconciling))
		require.NoError(t, m.Fire(ctx, settle, nil))
		assert.Equal(t, idle, m.Current())
	})

	t.Run("no transition", func(t *testing.T) {
		m := newMachine()
		require.NoError(t, m.Fire(ctx, begin, nil))

		err := m.Fire(ctx, begin, nil)
		require.Error(t, err)
		assert.True(t, statemachine.IsNoTransition(err))
		assert.True(t, m.Is(reconciling))

		var te *statemachine.TransitionError
		require.ErrorAs(t, err, &te)
		assert.Equal(t, "reconciling", te.State)
		assert.Equal(t, "begin", te.Event)
	})

	t.Run("guards pick the first passing transition", func(t *testing.T) {
		m := statemachine.New(idle,
			statemachine.WithTransition(idle, failed, begin,
				statemachine.WithGuard(func(_ context.Context, _ state, _ event, data any) bool { return data == "fail" }),
			),
			statemachine.WithTransition(idle, reconciling, begin),
		)
		require.NoError(t, m.Fire(ctx, begin, "ok"))
		assert.Equal(t, reconciling, m.Current())

		m.Reset()
		require.NoError(t, m.Fire(ctx, begin, "fail"))
		assert.Equal(t, failed, m.Current())
	})

	t.Run("rejected by guard", func(t *testing.T) {
		m := statemachine.New(idle,
			statemachine.WithTransition(idle, reconciling, begin,
				statemachine.WithGuard(func(context.Context, state, event, any) bool { return false }),
			),
		)
		assert.False(t, m.CanFire(ctx, begin, nil))
		err := m.Fire(ctx, begin, nil)
		assert.True(t, statemachine.IsRejected(err))
		assert.Equal(t, idle, m.Current())
	})

	t.Run("failing action keeps state", func(t *testing.T) {
		boom := errors.New("boom")
		m := newMachine(statemachine.WithTransition(reconciling, failed, abort,
			statemachine.WithAction(func(context.Context, state, state, event, any) error { return boom }),
		))
		require.NoError(t, m.Fire(ctx, begin, nil))
		err := m.Fire(ctx, abort, nil)
		assert.ErrorIs(t, err, statemachine.ErrActionFailed)
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, reconciling, m.Current())
	})

	t.Run("observer sees transitions", func(t *testing.T) {
		var seen []string
		m := newMachine(statemachine.WithObserver(func(from, to state, e event) {
			seen = append(seen, string(from)+">"+string(to))
		}))
		require.NoError(t, m.Fire(ctx, begin, nil))
		require.NoError(t, m.Fire(ctx, settle, nil))
		assert.Equal(t, []string{"idle>reconciling", "reconciling>idle"}, seen)
	})
}

func TestConcurrentBeginIsExclusive(t *testing.T) {
	t.Parallel()

	m := newMachine()
	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if m.Fire(context.Background(), begin, nil) == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, wins)
}
