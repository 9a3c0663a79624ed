package notification

import (
	"context"

	"talenthub/internal/common"
)

// Repository queries are recipient-scoped: a notification id belonging to
// another recipient behaves exactly like a missing one.
type Repository interface {
	Create(ctx context.Context, n Notification) (*Notification, error)
	Get(ctx context.Context, recipientID, id common.UUID) (*Notification, error)
	ListByRecipient(ctx context.Context, recipientID common.UUID, limit, offset int) ([]Notification, error)
	CountUnread(ctx context.Context, recipientID common.UUID) (int, error)
	MarkRead(ctx context.Context, recipientID, id common.UUID) error
	MarkAllRead(ctx context.Context, recipientID common.UUID) error
	Delete(ctx context.Context, recipientID, id common.UUID) error
	DeleteAll(ctx context.Context, recipientID common.UUID) error
}
