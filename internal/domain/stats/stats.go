package stats

import (
	"context"

	"talenthub/internal/common"
)

// Snapshot is derived by scanning jobs and applications; it is never stored
// or incrementally maintained.
type Snapshot struct {
	TotalJobs         int            `json:"total_jobs"`
	ActiveJobs        int            `json:"active_jobs"`
	TotalApplications int            `json:"total_applications"`
	CategoryStats     map[string]int `json:"category_stats"`
}

// Scope selects the job set to aggregate. A nil OwnerID means all jobs.
type Scope struct {
	OwnerID *common.UUID
}

type Repository interface {
	Snapshot(ctx context.Context, scope Scope) (*Snapshot, error)
}
