package app

import (
	"context"
	"log/slog"

	"talenthub/internal/common"
	"talenthub/internal/domain/job"
	"talenthub/internal/domain/notification"
)

const (
	defaultInboxLimit = 20
	maxInboxLimit     = 100
)

// InboxPage pairs a newest-first slice of notifications with the unread
// counter observed in the same service call.
type InboxPage struct {
	Items       []notification.Notification `json:"items"`
	UnreadCount int                         `json:"unread_count"`
}

type NotificationService struct {
	repo   notification.Repository
	jobs   job.Repository
	logger *slog.Logger
}

func NewNotificationService(repo notification.Repository, jobs job.Repository, logger *slog.Logger) *NotificationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &NotificationService{repo: repo, jobs: jobs, logger: logger}
}

func (s *NotificationService) FetchRecent(ctx context.Context, recipientID common.UUID, limit int) (*InboxPage, error) {
	if limit <= 0 {
		limit = defaultInboxLimit
	}
	if limit > maxInboxLimit {
		limit = maxInboxLimit
	}
	items, err := s.repo.ListByRecipient(ctx, recipientID, limit, 0)
	if err != nil {
		return nil, err
	}
	unread, err := s.repo.CountUnread(ctx, recipientID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []notification.Notification{}
	}
	return &InboxPage{Items: items, UnreadCount: unread}, nil
}

// UnreadCount is the lightweight poll query: it never transfers message
// bodies and is safe to call on a tight interval.
func (s *NotificationService) UnreadCount(ctx context.Context, recipientID common.UUID) (int, error) {
	return s.repo.CountUnread(ctx, recipientID)
}

// MarkRead is idempotent: marking an already-read notification succeeds
// without touching the counter, which is count-derived and so never drops
// below zero.
func (s *NotificationService) MarkRead(ctx context.Context, recipientID, id common.UUID) (*notification.Notification, error) {
	n, err := s.repo.Get(ctx, recipientID, id)
	if err != nil {
		return nil, err
	}
	if n.IsRead {
		return n, nil
	}
	if err := s.repo.MarkRead(ctx, recipientID, id); err != nil {
		return nil, err
	}
	n.IsRead = true
	return n, nil
}

// MarkAllRead flips every unread notification and answers with a fresh
// re-fetch rather than an optimistic local view, so notifications that
// arrived mid-operation are reconciled into the response.
func (s *NotificationService) MarkAllRead(ctx context.Context, recipientID common.UUID) (*InboxPage, error) {
	if err := s.repo.MarkAllRead(ctx, recipientID); err != nil {
		return nil, err
	}
	return s.FetchRecent(ctx, recipientID, defaultInboxLimit)
}

func (s *NotificationService) Delete(ctx context.Context, recipientID, id common.UUID) error {
	return s.repo.Delete(ctx, recipientID, id)
}

// DeleteAll removes the whole inbox and confirms with a re-fetch.
func (s *NotificationService) DeleteAll(ctx context.Context, recipientID common.UUID) (*InboxPage, error) {
	if err := s.repo.DeleteAll(ctx, recipientID); err != nil {
		return nil, err
	}
	return s.FetchRecent(ctx, recipientID, defaultInboxLimit)
}

// ResolveTarget follows a notification's weak job reference for
// click-through. A missing or deleted job is not an error: ok is false and
// the notification itself stays readable.
func (s *NotificationService) ResolveTarget(ctx context.Context, recipientID, id common.UUID) (*job.Job, bool, error) {
	n, err := s.repo.Get(ctx, recipientID, id)
	if err != nil {
		return nil, false, err
	}
	if n.JobID == nil {
		return nil, false, nil
	}
	j, err := s.jobs.GetByID(ctx, *n.JobID)
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return j, true, nil
}
