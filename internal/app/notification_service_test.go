package app

import (
	"context"
	"testing"

	"talenthub/internal/common"
	"talenthub/internal/domain/job"
	"talenthub/internal/domain/notification"
	"talenthub/internal/domain/user"
)

type inboxFixture struct {
	jobs          *fakeJobRepo
	notifications *fakeNotificationRepo
	service       *NotificationService
}

func newInboxFixture() *inboxFixture {
	jobs := newFakeJobRepo()
	notifications := newFakeNotificationRepo()
	return &inboxFixture{
		jobs:          jobs,
		notifications: notifications,
		service:       NewNotificationService(notifications, jobs, nil),
	}
}

func (f *inboxFixture) seed(t *testing.T, recipientID common.UUID, jobID *common.UUID) *notification.Notification {
	t.Helper()
	created, err := f.notifications.Create(context.Background(), notification.Notification{
		RecipientID: recipientID,
		Type:        notification.TypeNewApplication,
		Title:       "New application",
		Message:     "A candidate applied to Backend Engineer",
		JobID:       jobID,
	})
	if err != nil {
		t.Fatalf("expected notification created, got %v", err)
	}
	return created
}

func TestFetchRecentReturnsUnreadCount(t *testing.T) {
	f := newInboxFixture()
	recipientID := common.NewUUID()
	f.seed(t, recipientID, nil)
	f.seed(t, recipientID, nil)
	f.seed(t, common.NewUUID(), nil)

	page, err := f.service.FetchRecent(context.Background(), recipientID, 0)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(page.Items) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(page.Items))
	}
	if page.UnreadCount != 2 {
		t.Fatalf("expected unread count 2, got %d", page.UnreadCount)
	}
}

func TestMarkReadIsIdempotent(t *testing.T) {
	f := newInboxFixture()
	recipientID := common.NewUUID()
	n := f.seed(t, recipientID, nil)
	f.seed(t, recipientID, nil)

	first, err := f.service.MarkRead(context.Background(), recipientID, n.ID)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !first.IsRead {
		t.Fatal("expected notification to be read")
	}
	count, err := f.service.UnreadCount(context.Background(), recipientID)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if count != 1 {
		t.Fatalf("expected unread count 1, got %d", count)
	}

	// A second mark of an already read notification succeeds and changes nothing.
	second, err := f.service.MarkRead(context.Background(), recipientID, n.ID)
	if err != nil {
		t.Fatalf("expected nil error on repeated mark, got %v", err)
	}
	if !second.IsRead {
		t.Fatal("expected notification to stay read")
	}
	count, err = f.service.UnreadCount(context.Background(), recipientID)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if count != 1 {
		t.Fatalf("expected unread count to stay 1, got %d", count)
	}
}

func TestMarkReadScopedToRecipient(t *testing.T) {
	f := newInboxFixture()
	n := f.seed(t, common.NewUUID(), nil)

	_, err := f.service.MarkRead(context.Background(), common.NewUUID(), n.ID)
	if !common.Is(err, common.CodeNotFound) {
		t.Fatalf("expected not_found for foreign notification, got %v", err)
	}
}

func TestMarkAllReadDrainsCounter(t *testing.T) {
	f := newInboxFixture()
	recipientID := common.NewUUID()
	f.seed(t, recipientID, nil)
	f.seed(t, recipientID, nil)
	f.seed(t, recipientID, nil)
	other := f.seed(t, common.NewUUID(), nil)

	page, err := f.service.MarkAllRead(context.Background(), recipientID)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if page.UnreadCount != 0 {
		t.Fatalf("expected unread count 0, got %d", page.UnreadCount)
	}
	for _, n := range page.Items {
		if !n.IsRead {
			t.Fatalf("expected notification %s to be read", n.ID)
		}
	}
	if f.notifications.items[other.ID].IsRead {
		t.Fatal("other recipient's notification must stay unread")
	}
}

func TestDeleteUnreadNotificationLowersCounter(t *testing.T) {
	f := newInboxFixture()
	recipientID := common.NewUUID()
	n := f.seed(t, recipientID, nil)
	f.seed(t, recipientID, nil)

	if err := f.service.Delete(context.Background(), recipientID, n.ID); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	count, err := f.service.UnreadCount(context.Background(), recipientID)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if count != 1 {
		t.Fatalf("expected unread count 1 after deleting unread item, got %d", count)
	}
}

func TestDeleteAllEmptiesInbox(t *testing.T) {
	f := newInboxFixture()
	recipientID := common.NewUUID()
	f.seed(t, recipientID, nil)
	f.seed(t, recipientID, nil)

	page, err := f.service.DeleteAll(context.Background(), recipientID)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(page.Items) != 0 {
		t.Fatalf("expected empty inbox, got %d items", len(page.Items))
	}
	if page.UnreadCount != 0 {
		t.Fatalf("expected unread count 0, got %d", page.UnreadCount)
	}
}

func TestResolveTargetReturnsJob(t *testing.T) {
	f := newInboxFixture()
	recipientID := common.NewUUID()
	j, err := f.jobs.Create(context.Background(), job.Job{
		OwnerID:   recipientID,
		OwnerRole: user.RoleRecruiter,
		Title:     "Backend Engineer",
		Category:  "engineering",
		Status:    job.StatusActive,
	})
	if err != nil {
		t.Fatalf("expected job created, got %v", err)
	}
	n := f.seed(t, recipientID, &j.ID)

	target, ok, err := f.service.ResolveTarget(context.Background(), recipientID, n.ID)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !ok {
		t.Fatal("expected target to resolve")
	}
	if target.ID != j.ID {
		t.Fatalf("expected job %s, got %s", j.ID, target.ID)
	}
}

func TestResolveTargetDanglingJobReference(t *testing.T) {
	f := newInboxFixture()
	recipientID := common.NewUUID()
	missing := common.NewUUID()
	n := f.seed(t, recipientID, &missing)

	target, ok, err := f.service.ResolveTarget(context.Background(), recipientID, n.ID)
	if err != nil {
		t.Fatalf("dangling reference must not be an error, got %v", err)
	}
	if ok || target != nil {
		t.Fatal("expected no target for a deleted job")
	}
}

func TestResolveTargetWithoutJobReference(t *testing.T) {
	f := newInboxFixture()
	recipientID := common.NewUUID()
	n := f.seed(t, recipientID, nil)

	target, ok, err := f.service.ResolveTarget(context.Background(), recipientID, n.ID)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if ok || target != nil {
		t.Fatal("expected no target without a job reference")
	}
}
