package user

import (
	"time"

	"talenthub/internal/common"
)

type Role string

const (
	RoleAdmin     Role = "admin"
	RoleRecruiter Role = "recruiter"
	RoleCandidate Role = "candidate"
)

type User struct {
	ID        common.UUID `json:"id"`
	Name      string      `json:"name"`
	Roles     []Role      `json:"roles"`
	CreatedAt time.Time   `json:"created_at"`
}
