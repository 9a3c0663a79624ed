package app

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"talenthub/internal/common"
)

// UnreadPoller re-fetches a recipient's unread counter on a fixed interval
// for as long as its context lives. Wake forces an immediate out-of-band
// fetch, used when the inbox view is opened.
type UnreadPoller struct {
	inbox       *NotificationService
	interval    time.Duration
	recipientID common.UUID
	report      func(int)
	wake        chan struct{}
	logger      *slog.Logger
}

func NewUnreadPoller(inbox *NotificationService, interval time.Duration, recipientID common.UUID, report func(int), logger *slog.Logger) *UnreadPoller {
	if logger == nil {
		logger = slog.Default()
	}
	return &UnreadPoller{
		inbox:       inbox,
		interval:    interval,
		recipientID: recipientID,
		report:      report,
		wake:        make(chan struct{}, 1),
		logger:      logger,
	}
}

// Run blocks until ctx is cancelled. The ticker is stopped on return, so a
// cancelled session leaves no orphaned timer behind.
func (p *UnreadPoller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	p.fetch(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.fetch(ctx)
		case <-p.wake:
			p.fetch(ctx)
		}
	}
}

func (p *UnreadPoller) Wake() {
	select {
	case p.wake <- struct{}{}:
	default:
	}
}

func (p *UnreadPoller) fetch(ctx context.Context) {
	count, err := p.inbox.UnreadCount(ctx, p.recipientID)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		p.logger.Warn("unread poll failed",
			slog.String("recipient_id", p.recipientID.String()),
			slog.String("error", err.Error()))
		return
	}
	if p.report != nil {
		p.report(count)
	}
}

type pollSession struct {
	poller *UnreadPoller
	cancel context.CancelFunc
	count  int
}

// PollerRegistry binds one unread poller to each active recipient session.
// StartSession spawns the loop, EndSession cancels it immediately, Close
// tears every session down on shutdown.
type PollerRegistry struct {
	inbox    *NotificationService
	interval time.Duration
	logger   *slog.Logger

	mu       sync.Mutex
	sessions map[common.UUID]*pollSession
	closed   bool
}

func NewPollerRegistry(inbox *NotificationService, interval time.Duration, logger *slog.Logger) *PollerRegistry {
	if logger == nil {
		logger = slog.Default()
	}
	return &PollerRegistry{
		inbox:    inbox,
		interval: interval,
		logger:   logger,
		sessions: make(map[common.UUID]*pollSession),
	}
}

// StartSession is idempotent per recipient: a second start for an already
// active session is a no-op.
func (r *PollerRegistry) StartSession(recipientID common.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	if _, ok := r.sessions[recipientID]; ok {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	session := &pollSession{cancel: cancel}
	session.poller = NewUnreadPoller(r.inbox, r.interval, recipientID, func(count int) {
		r.mu.Lock()
		if current, ok := r.sessions[recipientID]; ok && current == session {
			current.count = count
		}
		r.mu.Unlock()
	}, r.logger)
	r.sessions[recipientID] = session
	go session.poller.Run(ctx)
}

func (r *PollerRegistry) EndSession(recipientID common.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.sessions[recipientID]
	if !ok {
		return
	}
	delete(r.sessions, recipientID)
	session.cancel()
}

// Wake triggers an immediate fetch for an active session, bypassing the
// poll schedule. Recipients without a session are ignored.
func (r *PollerRegistry) Wake(recipientID common.UUID) {
	r.mu.Lock()
	session, ok := r.sessions[recipientID]
	r.mu.Unlock()
	if ok {
		session.poller.Wake()
	}
}

// LastCount reports the most recent counter the session's poll loop
// observed. ok is false when no session is active.
func (r *PollerRegistry) LastCount(recipientID common.UUID) (int, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.sessions[recipientID]
	if !ok {
		return 0, false
	}
	return session.count, true
}

func (r *PollerRegistry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	for recipientID, session := range r.sessions {
		delete(r.sessions, recipientID)
		session.cancel()
	}
}
