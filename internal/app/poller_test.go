package app

import (
	"context"
	"sync"
	"testing"
	"time"

	"talenthub/internal/common"
)

type countRecorder struct {
	mu     sync.Mutex
	counts []int
}

func (c *countRecorder) report(count int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts = append(c.counts, count)
}

func (c *countRecorder) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.counts)
}

func (c *countRecorder) last() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.counts) == 0 {
		return -1
	}
	return c.counts[len(c.counts)-1]
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatal("condition not met before timeout")
}

func TestPollerFetchesImmediatelyAndOnInterval(t *testing.T) {
	f := newInboxFixture()
	recipientID := common.NewUUID()
	f.seed(t, recipientID, nil)

	recorder := &countRecorder{}
	poller := NewUnreadPoller(f.service, 10*time.Millisecond, recipientID, recorder.report, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go poller.Run(ctx)

	waitFor(t, time.Second, func() bool { return recorder.len() >= 3 })
	if recorder.last() != 1 {
		t.Fatalf("expected unread count 1, got %d", recorder.last())
	}
}

func TestPollerObservesCounterChanges(t *testing.T) {
	f := newInboxFixture()
	recipientID := common.NewUUID()
	n := f.seed(t, recipientID, nil)

	recorder := &countRecorder{}
	poller := NewUnreadPoller(f.service, 5*time.Millisecond, recipientID, recorder.report, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go poller.Run(ctx)

	waitFor(t, time.Second, func() bool { return recorder.last() == 1 })

	if _, err := f.service.MarkRead(context.Background(), recipientID, n.ID); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	waitFor(t, time.Second, func() bool { return recorder.last() == 0 })
}

func TestPollerWakeBypassesSchedule(t *testing.T) {
	f := newInboxFixture()
	recipientID := common.NewUUID()

	recorder := &countRecorder{}
	poller := NewUnreadPoller(f.service, time.Hour, recipientID, recorder.report, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go poller.Run(ctx)

	waitFor(t, time.Second, func() bool { return recorder.len() == 1 })

	f.seed(t, recipientID, nil)
	poller.Wake()
	waitFor(t, time.Second, func() bool { return recorder.last() == 1 })
}

func TestRegistryStartSessionIsIdempotent(t *testing.T) {
	f := newInboxFixture()
	recipientID := common.NewUUID()
	f.seed(t, recipientID, nil)

	registry := NewPollerRegistry(f.service, 5*time.Millisecond, nil)
	defer registry.Close()

	registry.StartSession(recipientID)
	registry.StartSession(recipientID)

	waitFor(t, time.Second, func() bool {
		count, ok := registry.LastCount(recipientID)
		return ok && count == 1
	})
}

func TestRegistryEndSessionStopsPolling(t *testing.T) {
	f := newInboxFixture()
	recipientID := common.NewUUID()
	f.seed(t, recipientID, nil)

	registry := NewPollerRegistry(f.service, 5*time.Millisecond, nil)
	defer registry.Close()

	registry.StartSession(recipientID)
	waitFor(t, time.Second, func() bool {
		_, ok := registry.LastCount(recipientID)
		return ok
	})

	registry.EndSession(recipientID)
	if _, ok := registry.LastCount(recipientID); ok {
		t.Fatal("expected no counter after session end")
	}
}

func TestRegistryCloseRejectsNewSessions(t *testing.T) {
	f := newInboxFixture()
	registry := NewPollerRegistry(f.service, 5*time.Millisecond, nil)
	registry.Close()

	recipientID := common.NewUUID()
	registry.StartSession(recipientID)
	if _, ok := registry.LastCount(recipientID); ok {
		t.Fatal("expected closed registry to reject sessions")
	}
}
