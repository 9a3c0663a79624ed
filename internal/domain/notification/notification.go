package notification

import (
	"time"

	"talenthub/internal/common"
)

type Type string

const (
	TypeNewApplication Type = "new_application"
)

type Notification struct {
	ID          common.UUID `json:"id"`
	RecipientID common.UUID `json:"recipient_id"`
	Type        Type        `json:"type"`
	Title       string      `json:"title"`
	Message     string      `json:"message"`
	// JobID is a weak reference kept for click-through only; the job may be
	// deleted after the notification is created, leaving it dangling.
	JobID     *common.UUID `json:"job_id,omitempty"`
	IsRead    bool         `json:"is_read"`
	CreatedAt time.Time    `json:"created_at"`
}
