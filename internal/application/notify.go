package application

import (
	"context"

	"github.com/sirupsen/logrus"
)

// notify delivers n best-effort. Notification failures never fail the
// operation that triggered them.
func notify(ctx context.Context, n Notifier, logger *logrus.Logger, msg Notification) {
	if n == nil || msg.To == "" {
		return
	}
	if err := n.Notify(context.WithoutCancel(ctx), msg); err != nil && logger != nil {
		logger.WithError(err).WithFields(logrus.Fields{
			"template": msg.Template,
		}).Warn("notification not queued")
	}
}
