package app

import (
	"talenthub/internal/common"
	"talenthub/internal/domain/application"
	"talenthub/internal/domain/job"
	"talenthub/internal/domain/notification"
	"talenthub/internal/domain/user"
)

// draftNotification builds the single notification emitted when an
// application is created. The recipient is resolved from the job's owner
// role: admin-owned jobs notify that admin, recruiter-owned jobs that
// recruiter. The applicant is never a recipient, there is no fan-out, and
// status transitions emit nothing.
func draftNotification(j job.Job, app application.Application) notification.Notification {
	jobID := j.ID
	return notification.Notification{
		RecipientID: routeRecipient(j),
		Type:        notification.TypeNewApplication,
		Title:       newApplicationTitle(j.OwnerRole),
		Message:     "A candidate applied to " + j.Title,
		JobID:       &jobID,
	}
}

func routeRecipient(j job.Job) common.UUID {
	return j.OwnerID
}

func newApplicationTitle(role user.Role) string {
	if role == user.RoleAdmin {
		return "New application on a platform job"
	}
	return "New application"
}
