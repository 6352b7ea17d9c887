package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/clubevents/pkg/helpers"
)

func TestProvision_AllStepsSucceed(t *testing.T) {
	var ran []string
	step := func(name string) Step {
		return Step{
			Name: name,
			Do:   func(context.Context) error { ran = append(ran, name); return nil },
			Undo: func(context.Context) error { ran = append(ran, "undo "+name); return nil },
		}
	}
	require.NoError(t, Provision(context.Background(), nil, step("a"), step("b")))
	assert.Equal(t, []string{"a", "b"}, ran)
}

func TestProvision_UndoesCompletedStepsInReverse(t *testing.T) {
	var ran []string
	boom := errors.New("boom")
	ok := func(name string) Step {
		return Step{
			Name: name,
			Do:   func(context.Context) error { ran = append(ran, name); return nil },
			Undo: func(context.Context) error { ran = append(ran, "undo "+name); return nil },
		}
	}
	steps := []Step{
		ok("a"),
		{Name: "no undo", Do: func(context.Context) error { ran = append(ran, "no undo"); return nil }},
		ok("b"),
		{Name: "fail", Do: func(context.Context) error { return boom }, Undo: func(context.Context) error {
			ran = append(ran, "undo fail")
			return nil
		}},
		ok("never"),
	}
	err := Provision(context.Background(), helpers.NewDiscardLogger(), steps...)
	assert.Same(t, boom, err)
	assert.Equal(t, []string{"a", "no undo", "b", "undo b", "undo a"}, ran)
}

func TestProvision_UndoIgnoresCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var undoErr error
	err := Provision(ctx, helpers.NewDiscardLogger(),
		Step{
			Name: "create",
			Do:   func(context.Context) error { return nil },
			Undo: func(ctx context.Context) error { undoErr = ctx.Err(); return nil },
		},
		Step{Name: "timeout", Do: func(context.Context) error { cancel(); return context.Canceled }},
	)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NoError(t, undoErr)
}

func TestProvision_FailingUndoDoesNotStopOthers(t *testing.T) {
	undone := 0
	err := Provision(context.Background(), helpers.NewDiscardLogger(),
		Step{Name: "a", Do: func(context.Context) error { return nil }, Undo: func(context.Context) error { undone++; return nil }},
		Step{Name: "b", Do: func(context.Context) error { return nil }, Undo: func(context.Context) error { return errors.New("undo b") }},
		Step{Name: "c", Do: func(context.Context) error { return errors.New("c") }},
	)
	assert.EqualError(t, err, "c")
	assert.Equal(t, 1, undone)
}
