package app

import (
	"context"
	"log/slog"

	"talenthub/internal/common"
	"talenthub/internal/domain/stats"
)

type StatsService struct {
	repo   stats.Repository
	logger *slog.Logger
}

func NewStatsService(repo stats.Repository, logger *slog.Logger) *StatsService {
	if logger == nil {
		logger = slog.Default()
	}
	return &StatsService{repo: repo, logger: logger}
}

// Recompute scans the scoped job set and sums application counts. It is a
// full O(jobs x applications) pass, invoked after mutations and on dashboard
// load rather than on every read.
func (s *StatsService) Recompute(ctx context.Context, scope stats.Scope) (*stats.Snapshot, error) {
	return s.repo.Snapshot(ctx, scope)
}

// RefreshOwner recomputes the owner-scoped snapshot after a mutation so
// dashboards observe fresh numbers on their next load. Failures are logged,
// never surfaced to the mutating caller.
func (s *StatsService) RefreshOwner(ctx context.Context, ownerID common.UUID) {
	snapshot, err := s.repo.Snapshot(ctx, stats.Scope{OwnerID: &ownerID})
	if err != nil {
		s.logger.Warn("stats recompute failed",
			slog.String("owner_id", ownerID.String()),
			slog.String("error", err.Error()))
		return
	}
	s.logger.Debug("stats recomputed",
		slog.String("owner_id", ownerID.String()),
		slog.Int("total_jobs", snapshot.TotalJobs),
		slog.Int("total_applications", snapshot.TotalApplications))
}
