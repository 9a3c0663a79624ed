package app

import (
	"context"
	"log/slog"
	"strings"

	"talenthub/internal/common"
	"talenthub/internal/domain/application"
	"talenthub/internal/domain/job"
	"talenthub/internal/domain/notification"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

type ApplicationService struct {
	repo          application.Repository
	jobs          job.Repository
	notifications notification.Repository
	stats         *StatsService
	logger        *slog.Logger
}

func NewApplicationService(repo application.Repository, jobs job.Repository, notifications notification.Repository, stats *StatsService, logger *slog.Logger) *ApplicationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ApplicationService{repo: repo, jobs: jobs, notifications: notifications, stats: stats, logger: logger}
}

// Submit creates an application with status applied and dispatches exactly
// one notification to the job's owner. A dispatch failure is logged and
// swallowed: the submission itself never fails because delivery did.
// The job's status is deliberately not checked, so late applications to
// closed jobs are accepted.
func (s *ApplicationService) Submit(ctx context.Context, jobID, applicantID common.UUID, coverLetter, resumeRef string) (*application.Application, error) {
	fields := map[string]string{}
	if strings.TrimSpace(coverLetter) == "" {
		fields["cover_letter"] = "cover_letter is required"
	}
	if strings.TrimSpace(resumeRef) == "" {
		fields["resume_ref"] = "resume_ref is required"
	}
	if len(fields) > 0 {
		return nil, common.NewValidationError("invalid application", fields)
	}
	j, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.FindByJobAndApplicant(ctx, jobID, applicantID); err == nil {
		return nil, common.NewError(common.CodeDuplicate, "already applied", nil)
	} else if !common.Is(err, common.CodeNotFound) {
		return nil, err
	}
	app := application.Application{
		JobID:       jobID,
		ApplicantID: applicantID,
		Status:      application.StatusApplied,
		CoverLetter: coverLetter,
		ResumeRef:   resumeRef,
	}
	created, err := s.repo.Create(ctx, app)
	if err != nil {
		return nil, err
	}
	draft := draftNotification(*j, *created)
	if _, err := s.notifications.Create(ctx, draft); err != nil {
		s.logger.Warn("notification dispatch failed",
			slog.String("application_id", created.ID.String()),
			slog.String("job_id", jobID.String()),
			slog.String("error", err.Error()))
	}
	s.refreshStats(ctx, j.OwnerID)
	return created, nil
}

// UpdateStatus sets any of the four non-initial statuses without a
// precondition on the current one; re-entering the same status is allowed.
// Transitions are unordered on purpose and there is no terminal state.
func (s *ApplicationService) UpdateStatus(ctx context.Context, actorID, jobID, applicationID common.UUID, status application.Status) (*application.Application, error) {
	next := normalizeStatus(status)
	if !isTransitionTarget(next) {
		return nil, common.NewError(common.CodeInvalidStatus, "status must be under_review, shortlisted, rejected, or selected", nil)
	}
	j, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if j.OwnerID != actorID {
		return nil, common.NewError(common.CodeForbidden, "job belongs to another actor", nil)
	}
	if _, err := s.repo.Get(ctx, jobID, applicationID); err != nil {
		return nil, err
	}
	updated, err := s.repo.UpdateStatus(ctx, jobID, applicationID, next)
	if err != nil {
		return nil, err
	}
	s.refreshStats(ctx, j.OwnerID)
	return updated, nil
}

func (s *ApplicationService) Delete(ctx context.Context, actorID, jobID, applicationID common.UUID) error {
	j, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return err
	}
	if j.OwnerID != actorID {
		return common.NewError(common.CodeForbidden, "job belongs to another actor", nil)
	}
	if err := s.repo.Delete(ctx, jobID, applicationID); err != nil {
		return err
	}
	s.refreshStats(ctx, j.OwnerID)
	return nil
}

func (s *ApplicationService) List(ctx context.Context, filter application.Filter) ([]application.Application, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultListLimit
	}
	if filter.Limit > maxListLimit {
		filter.Limit = maxListLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return s.repo.List(ctx, filter)
}

func (s *ApplicationService) Get(ctx context.Context, jobID, applicationID common.UUID) (*application.Application, error) {
	return s.repo.Get(ctx, jobID, applicationID)
}

func (s *ApplicationService) refreshStats(ctx context.Context, ownerID common.UUID) {
	if s.stats == nil {
		return
	}
	s.stats.RefreshOwner(ctx, ownerID)
}

func normalizeStatus(status application.Status) application.Status {
	return application.Status(strings.ToLower(strings.TrimSpace(string(status))))
}

func isTransitionTarget(status application.Status) bool {
	switch status {
	case application.StatusUnderReview, application.StatusShortlisted, application.StatusRejected, application.StatusSelected:
		return true
	default:
		return false
	}
}
