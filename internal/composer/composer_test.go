package composer_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheXbomber/budgify-server/internal/auth"
	"github.com/TheXbomber/budgify-server/internal/composer"
)

func waitForSnapshot(t *testing.T, ch <-chan *composer.Snapshot) *composer.Snapshot {
	t.Helper()

	select {
	case snap := <-ch:
		return snap
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for snapshot")
		return nil
	}
}

func TestComposer_SubscribeDeliversInitialSnapshot(t *testing.T) {
	uc := auth.UserContext{UserID: uuid.New()}

	src := composer.SourceFunc(func(_ context.Context, _ auth.UserContext) (*composer.Snapshot, error) {
		return &composer.Snapshot{GeneratedAt: time.Now()}, nil
	})

	c := composer.New(src)

	ch, cancel := c.Subscribe(uc)
	defer cancel()

	snap := waitForSnapshot(t, ch)
	assert.NotNil(t, snap)
}

func TestComposer_InvalidationBurstCoalesces(t *testing.T) {
	uc := auth.UserContext{UserID: uuid.New()}

	var loads atomic.Int64

	src := composer.SourceFunc(func(_ context.Context, _ auth.UserContext) (*composer.Snapshot, error) {
		loads.Add(1)
		return &composer.Snapshot{GeneratedAt: time.Now()}, nil
	})

	c := composer.New(src)

	ch, cancel := c.Subscribe(uc)
	defer cancel()

	waitForSnapshot(t, ch)

	for i := 0; i < 50; i++ {
		c.Invalidate(uc.UserID)
	}

	// at least one fresh snapshot arrives, but nowhere near one per signal
	waitForSnapshot(t, ch)
	time.Sleep(50 * time.Millisecond)

	assert.Less(t, loads.Load(), int64(51))
}

func TestComposer_SlowSubscriberSeesLatest(t *testing.T) {
	uc := auth.UserContext{UserID: uuid.New()}

	var gen atomic.Int64

	src := composer.SourceFunc(func(_ context.Context, _ auth.UserContext) (*composer.Snapshot, error) {
		return &composer.Snapshot{CompletedDebts: int(gen.Add(1))}, nil
	})

	c := composer.New(src)

	ch, cancel := c.Subscribe(uc)
	defer cancel()

	waitForSnapshot(t, ch)

	// let several recomputes land while the subscriber is not reading
	for i := 0; i < 5; i++ {
		c.Invalidate(uc.UserID)
		time.Sleep(20 * time.Millisecond)
	}

	snap := waitForSnapshot(t, ch)
	latest := gen.Load()

	assert.Equal(t, int(latest), snap.CompletedDebts)
}

func TestComposer_SnapshotOneShot(t *testing.T) {
	uc := auth.UserContext{UserID: uuid.New()}

	src := composer.SourceFunc(func(_ context.Context, _ auth.UserContext) (*composer.Snapshot, error) {
		return &composer.Snapshot{CompletedCredits: 7}, nil
	})

	c := composer.New(src)

	snap, err := c.Snapshot(context.Background(), uc)
	require.NoError(t, err)
	assert.Equal(t, 7, snap.CompletedCredits)
}

func TestComposer_LastUnsubscribeStopsFeed(t *testing.T) {
	uc := auth.UserContext{UserID: uuid.New()}

	var loads atomic.Int64

	src := composer.SourceFunc(func(_ context.Context, _ auth.UserContext) (*composer.Snapshot, error) {
		loads.Add(1)
		return &composer.Snapshot{GeneratedAt: time.Now()}, nil
	})

	c := composer.New(src)

	first, cancelFirst := c.Subscribe(uc)
	second, cancelSecond := c.Subscribe(uc)

	waitForSnapshot(t, first)
	waitForSnapshot(t, second)

	cancelFirst()
	cancelSecond()

	// let the feed goroutine drain any wake signal sent before teardown
	time.Sleep(50 * time.Millisecond)
	before := loads.Load()

	c.Invalidate(uc.UserID)
	time.Sleep(50 * time.Millisecond)

	assert.Equal(t, before, loads.Load())
}

func TestComposer_InvalidateWithoutSubscribersIsNoop(t *testing.T) {
	src := composer.SourceFunc(func(_ context.Context, _ auth.UserContext) (*composer.Snapshot, error) {
		t.Fatal("load should not run without subscribers")
		return nil, nil
	})

	c := composer.New(src)
	c.Invalidate(uuid.New())
}
