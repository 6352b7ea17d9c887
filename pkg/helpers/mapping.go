package helpers

import (
	"fmt"
	"strings"

	"github.com/oksasatya/clubevents/pkg/mailer"
	mailtpl "github.com/oksasatya/clubevents/pkg/mailer/templates"
)

// SubjectFor picks a fallback subject when a job carries neither subject nor template subject.
func SubjectFor(template string, data map[string]any) string {
	switch strings.ToLower(template) {
	case mailtpl.RegistrationConfirmed:
		return fmt.Sprintf("You're registered for %v", data["EventName"])
	case mailtpl.RegistrationCancelled:
		return fmt.Sprintf("Registration cancelled: %v", data["EventName"])
	case mailtpl.ClubProvisioned:
		return fmt.Sprintf("Your club %v is ready", data["ClubName"])
	case mailtpl.EventAnnouncement:
		if s := fmt.Sprintf("%v", data["Subject"]); s != "" && s != "<nil>" {
			return s
		}
		return "Event announcement"
	default:
		return "Notification"
	}
}

// EnsureRecipientAndEmail fills template recipient fields from the job's To address.
func EnsureRecipientAndEmail(job *mailer.EmailJob) {
	if job.Data == nil {
		job.Data = map[string]any{}
	}
	if v, ok := job.Data["Email"]; !ok || fmt.Sprintf("%v", v) == "" {
		job.Data["Email"] = job.To
	}
	if v, ok := job.Data["RecipientEmail"]; !ok || fmt.Sprintf("%v", v) == "" {
		job.Data["RecipientEmail"] = job.To
	}
}
