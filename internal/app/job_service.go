package app

import (
	"context"
	"log/slog"
	"strings"

	"talenthub/internal/common"
	"talenthub/internal/domain/job"
	"talenthub/internal/domain/user"
)

type JobService struct {
	repo   job.Repository
	stats  *StatsService
	logger *slog.Logger
}

func NewJobService(repo job.Repository, stats *StatsService, logger *slog.Logger) *JobService {
	if logger == nil {
		logger = slog.Default()
	}
	return &JobService{repo: repo, stats: stats, logger: logger}
}

func (s *JobService) Create(ctx context.Context, j job.Job) (*job.Job, error) {
	if strings.TrimSpace(j.Title) == "" {
		return nil, common.NewError(common.CodeValidation, "title is required", nil)
	}
	if strings.TrimSpace(j.Category) == "" {
		return nil, common.NewError(common.CodeValidation, "category is required", nil)
	}
	if j.OwnerRole != user.RoleAdmin && j.OwnerRole != user.RoleRecruiter && j.OwnerRole != user.RoleCandidate {
		return nil, common.NewError(common.CodeValidation, "owner role must be admin, recruiter, or candidate", nil)
	}
	if j.Status == "" {
		j.Status = job.StatusActive
	}
	if err := validateJobStatus(j.Status); err != nil {
		return nil, err
	}
	created, err := s.repo.Create(ctx, j)
	if err != nil {
		return nil, err
	}
	s.refreshStats(ctx, j.OwnerID)
	return created, nil
}

func (s *JobService) Update(ctx context.Context, j job.Job) (*job.Job, error) {
	current, err := s.repo.GetByID(ctx, j.ID)
	if err != nil {
		return nil, err
	}
	if current.OwnerID != j.OwnerID {
		return nil, common.NewError(common.CodeForbidden, "job belongs to another actor", nil)
	}
	if j.Status == "" {
		j.Status = current.Status
	}
	if err := validateJobStatus(j.Status); err != nil {
		return nil, err
	}
	j.OwnerRole = current.OwnerRole
	updated, err := s.repo.Update(ctx, j)
	if err != nil {
		return nil, err
	}
	s.refreshStats(ctx, j.OwnerID)
	return updated, nil
}

func (s *JobService) UpdateStatus(ctx context.Context, ownerID, jobID common.UUID, status job.Status) (*job.Job, error) {
	j, err := s.repo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if j.OwnerID != ownerID {
		return nil, common.NewError(common.CodeForbidden, "job belongs to another actor", nil)
	}
	normalized := job.Status(strings.ToLower(strings.TrimSpace(string(status))))
	if err := validateJobStatus(normalized); err != nil {
		return nil, err
	}
	j.Status = normalized
	updated, err := s.repo.Update(ctx, *j)
	if err != nil {
		return nil, err
	}
	s.refreshStats(ctx, ownerID)
	return updated, nil
}

func (s *JobService) Get(ctx context.Context, id common.UUID) (*job.Job, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *JobService) ListActive(ctx context.Context, limit, offset int) ([]job.Job, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.ListActive(ctx, limit, offset)
}

func (s *JobService) ListByOwner(ctx context.Context, ownerID common.UUID) ([]job.Job, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

// Delete removes the job and, through the storage cascade, its
// applications. Notifications keep their weak job reference and dangle.
func (s *JobService) Delete(ctx context.Context, ownerID, jobID common.UUID) error {
	j, err := s.repo.GetByID(ctx, jobID)
	if err != nil {
		return err
	}
	if j.OwnerID != ownerID {
		return common.NewError(common.CodeForbidden, "job belongs to another actor", nil)
	}
	if err := s.repo.Delete(ctx, jobID); err != nil {
		return err
	}
	s.refreshStats(ctx, ownerID)
	return nil
}

func (s *JobService) refreshStats(ctx context.Context, ownerID common.UUID) {
	if s.stats == nil {
		return
	}
	s.stats.RefreshOwner(ctx, ownerID)
}

func validateJobStatus(status job.Status) error {
	switch status {
	case job.StatusActive, job.StatusClosed, job.StatusDraft:
		return nil
	default:
		return common.NewValidationError("invalid job status", map[string]string{"status": "status must be active, closed, or draft"})
	}
}
