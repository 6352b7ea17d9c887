package application

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Step is one forward action of a multi-step write and the action that
// reverses it. Undo may be nil for steps with nothing to reverse.
type Step struct {
	Name string
	Do   func(ctx context.Context) error
	Undo func(ctx context.Context) error
}

// Provision runs steps in order. When a step fails, the Undo of every
// completed step runs in reverse order and the failing step's error is
// returned unchanged. Undos run on a context that ignores cancellation of
// ctx, so a request timeout cannot leave a half-built aggregate behind.
func Provision(ctx context.Context, logger *logrus.Logger, steps ...Step) error {
	done := make([]Step, 0, len(steps))
	for _, st := range steps {
		if err := st.Do(ctx); err != nil {
			compensate(context.WithoutCancel(ctx), logger, st.Name, done)
			return err
		}
		done = append(done, st)
	}
	return nil
}

func compensate(ctx context.Context, logger *logrus.Logger, failed string, done []Step) {
	for i := len(done) - 1; i >= 0; i-- {
		st := done[i]
		if st.Undo == nil {
			continue
		}
		if err := st.Undo(ctx); err != nil && logger != nil {
			logger.WithError(err).WithFields(logrus.Fields{
				"failed_step": failed,
				"undo_step":   st.Name,
			}).Error("compensating action failed")
			continue
		}
		if logger != nil {
			logger.WithFields(logrus.Fields{
				"failed_step": failed,
				"undo_step":   st.Name,
			}).Warn("compensating action applied")
		}
	}
}
