package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/oksasatya/clubevents/pkg/helpers"
	"github.com/oksasatya/clubevents/pkg/mailer"
	mailtpl "github.com/oksasatya/clubevents/pkg/mailer/templates"
)

const sendTimeout = 15 * time.Second

// errMalformed marks a job that can never be delivered; it is dropped, not requeued.
var errMalformed = errors.New("malformed email job")

type sender interface {
	Send(ctx context.Context, to, subject, text, html string) error
}

// process renders and sends one queued job.
func process(ctx context.Context, s sender, body []byte) error {
	var job mailer.EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		return fmt.Errorf("%w: %v", errMalformed, err)
	}
	if !job.Valid() {
		return fmt.Errorf("%w: missing recipient or content", errMalformed)
	}
	helpers.EnsureRecipientAndEmail(&job)

	subject, text, html := job.Subject, job.Text, job.HTML
	if job.Template != "" {
		s, t, h, err := mailtpl.Render(job.Template, job.Data)
		if err != nil {
			return fmt.Errorf("%w: render %s: %v", errMalformed, job.Template, err)
		}
		text, html = t, h
		switch {
		case s != "":
			subject = s
		case subject == "":
			subject = helpers.SubjectFor(job.Template, job.Data)
		}
	}

	c, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()
	return s.Send(c, job.To, subject, text, html)
}
