package application

import (
	"time"

	"talenthub/internal/common"
)

type Status string

const (
	StatusApplied     Status = "applied"
	StatusUnderReview Status = "under_review"
	StatusShortlisted Status = "shortlisted"
	StatusRejected    Status = "rejected"
	StatusSelected    Status = "selected"
)

type Application struct {
	ID          common.UUID `json:"id"`
	JobID       common.UUID `json:"job_id"`
	ApplicantID common.UUID `json:"applicant_id"`
	Status      Status      `json:"status"`
	CoverLetter string      `json:"cover_letter"`
	ResumeRef   string      `json:"resume_ref"`
	AppliedAt   time.Time   `json:"applied_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// Filter narrows List results. Zero-value fields are ignored; ordering is
// applied_at ascending unless Descending is set.
type Filter struct {
	JobID       *common.UUID
	ApplicantID *common.UUID
	Status      *Status
	Descending  bool
	Limit       int
	Offset      int
}
