package main

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/clubevents/pkg/mailer"
	mailtpl "github.com/oksasatya/clubevents/pkg/mailer/templates"
)

type sent struct {
	to, subject, text, html string
}

type fakeSender struct {
	got []sent
	err error
}

func (f *fakeSender) Send(ctx context.Context, to, subject, text, html string) error {
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("send without deadline")
	}
	f.got = append(f.got, sent{to, subject, text, html})
	return f.err
}

func encode(t *testing.T, job mailer.EmailJob) []byte {
	t.Helper()
	b, err := json.Marshal(job)
	require.NoError(t, err)
	return b
}

func TestProcess_Template(t *testing.T) {
	data := mailtpl.NewData(mailtpl.Branding{AppName: "Club Events"}, mailtpl.RegistrationConfirmed, "Ada", "ada@example.com",
		mailtpl.WithEvent("Chess night", time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), "19:00", "Hall B"),
		mailtpl.WithAmount(12.5))
	s := &fakeSender{}

	err := process(context.Background(), s, encode(t, mailer.EmailJob{To: "ada@example.com", Template: mailtpl.RegistrationConfirmed, Data: data}))
	require.NoError(t, err)
	require.Len(t, s.got, 1)
	assert.Equal(t, "ada@example.com", s.got[0].to)
	assert.Equal(t, "You're registered for Chess night", s.got[0].subject)
	assert.Contains(t, s.got[0].text, "Hall B")
	assert.NotEmpty(t, s.got[0].html)
}

func TestProcess_RawMessage(t *testing.T) {
	s := &fakeSender{}
	err := process(context.Background(), s, encode(t, mailer.EmailJob{To: "bob@example.com", Subject: "Hello", Text: "plain"}))
	require.NoError(t, err)
	assert.Equal(t, sent{"bob@example.com", "Hello", "plain", ""}, s.got[0])
}

func TestProcess_Malformed(t *testing.T) {
	cases := map[string][]byte{
		"not json":         []byte("{"),
		"no recipient":     []byte(`{"subject":"x","text":"y"}`),
		"no content":       []byte(`{"to":"a@example.com"}`),
		"unknown template": []byte(`{"to":"a@example.com","template":"nope"}`),
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			s := &fakeSender{}
			err := process(context.Background(), s, body)
			assert.ErrorIs(t, err, errMalformed)
			assert.Empty(t, s.got)
		})
	}
}

func TestProcess_SendFailureIsRetryable(t *testing.T) {
	s := &fakeSender{err: errors.New("mailgun down")}
	err := process(context.Background(), s, encode(t, mailer.EmailJob{To: "a@example.com", Subject: "s", HTML: "<p>x</p>"}))
	require.Error(t, err)
	assert.NotErrorIs(t, err, errMalformed)
}
