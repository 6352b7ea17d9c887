package queue

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/clubevents/internal/application"
	"github.com/oksasatya/clubevents/pkg/mailer"
)

// Publisher puts one JSON message on the email queue.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// EmailNotifier turns notifications into mailer.EmailJob messages for the
// email worker.
type EmailNotifier struct {
	Publisher Publisher
	Enabled   bool
	Logger    *logrus.Logger
}

func NewEmailNotifier(p Publisher, enabled bool, logger *logrus.Logger) *EmailNotifier {
	return &EmailNotifier{Publisher: p, Enabled: enabled, Logger: logger}
}

// Notify publishes n. With sending disabled the job is only logged.
func (q *EmailNotifier) Notify(ctx context.Context, n application.Notification) error {
	job := mailer.EmailJob{To: n.To, Template: n.Template, Data: n.Data}
	if !q.Enabled || q.Publisher == nil {
		if q.Logger != nil {
			q.Logger.WithFields(logrus.Fields{"to": job.To, "template": job.Template}).Debug("email sending disabled, job dropped")
		}
		return nil
	}
	return q.Publisher.PublishJSON(ctx, job)
}
