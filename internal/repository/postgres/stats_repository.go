package postgres

import (
	"context"
	"database/sql"

	"talenthub/internal/common"
	"talenthub/internal/domain/job"
	"talenthub/internal/domain/stats"
)

type StatsRepository struct {
	db *sql.DB
}

func NewStatsRepository(db *sql.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// Snapshot recomputes everything from the jobs and applications tables on
// every call; nothing is cached between reads.
func (r *StatsRepository) Snapshot(ctx context.Context, scope stats.Scope) (*stats.Snapshot, error) {
	snapshot := &stats.Snapshot{CategoryStats: map[string]int{}}

	counts := r.db.QueryRowContext(ctx, `SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = $1)
		FROM jobs
		WHERE ($2::uuid IS NULL OR owner_id = $2)`,
		job.StatusActive, scopeOwner(scope))
	if err := counts.Scan(&snapshot.TotalJobs, &snapshot.ActiveJobs); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to count jobs", err)
	}

	applications := r.db.QueryRowContext(ctx, `SELECT COUNT(*)
		FROM applications a
		JOIN jobs j ON j.id = a.job_id
		WHERE ($1::uuid IS NULL OR j.owner_id = $1)`,
		scopeOwner(scope))
	if err := applications.Scan(&snapshot.TotalApplications); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to count applications", err)
	}

	rows, err := r.db.QueryContext(ctx, `SELECT j.category, COUNT(a.id)
		FROM jobs j
		LEFT JOIN applications a ON a.job_id = j.id
		WHERE ($1::uuid IS NULL OR j.owner_id = $1)
		GROUP BY j.category`,
		scopeOwner(scope))
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to group applications by category", err)
	}
	defer rows.Close()
	for rows.Next() {
		var category string
		var count int
		if err := rows.Scan(&category, &count); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan category stats", err)
		}
		snapshot.CategoryStats[category] = count
	}
	return snapshot, nil
}

func scopeOwner(scope stats.Scope) any {
	if scope.OwnerID == nil {
		return nil
	}
	return *scope.OwnerID
}
