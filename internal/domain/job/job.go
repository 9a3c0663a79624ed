package job

import (
	"time"

	"talenthub/internal/common"
	"talenthub/internal/domain/user"
)

type Status string

const (
	StatusActive Status = "active"
	StatusClosed Status = "closed"
	StatusDraft  Status = "draft"
)

type Job struct {
	ID          common.UUID `json:"id"`
	OwnerID     common.UUID `json:"owner_id"`
	OwnerRole   user.Role   `json:"owner_role"`
	Title       string      `json:"title"`
	Category    string      `json:"category"`
	Description string      `json:"description"`
	Tags        []string    `json:"tags,omitempty"`
	Status      Status      `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}
