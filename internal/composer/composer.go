// Package composer derives per-user dashboard snapshots from the latest
// state of every entity and pushes them to subscribers. All subscribers of
// one user share a single recomputation feed; invalidations arriving while
// a recompute is in flight coalesce into one further recompute.
package composer

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/TheXbomber/budgify-server/internal/auth"
)

type Composer struct {
	src Source

	mu    sync.Mutex
	feeds map[uuid.UUID]*feed
}

func New(src Source) *Composer {
	return &Composer{src: src, feeds: make(map[uuid.UUID]*feed)}
}

type feed struct {
	uc   auth.UserContext
	refs int
	// wake has capacity 1 so any burst of invalidations collapses into a
	// single pending recompute.
	wake chan struct{}
	done chan struct{}

	mu   sync.Mutex
	subs map[int]chan *Snapshot
	next int
}

// Subscribe returns a channel of snapshots for the user and a cancel
// function. The first snapshot arrives without an explicit invalidation.
// Slow subscribers observe the latest snapshot; intermediate ones may be
// dropped, partial ones never delivered.
func (c *Composer) Subscribe(uc auth.UserContext) (<-chan *Snapshot, func()) {
	c.mu.Lock()

	f, ok := c.feeds[uc.UserID]
	if !ok {
		f = &feed{
			uc:   uc,
			wake: make(chan struct{}, 1),
			done: make(chan struct{}),
			subs: make(map[int]chan *Snapshot),
		}
		c.feeds[uc.UserID] = f

		go c.run(f)
	}

	f.refs++
	c.mu.Unlock()

	f.mu.Lock()
	id := f.next
	f.next++
	ch := make(chan *Snapshot, 1)
	f.subs[id] = ch
	f.mu.Unlock()

	// Prime the new subscriber.
	c.Invalidate(uc.UserID)

	cancel := func() {
		f.mu.Lock()
		delete(f.subs, id)
		f.mu.Unlock()

		c.mu.Lock()
		defer c.mu.Unlock()

		f.refs--
		if f.refs == 0 {
			close(f.done)
			delete(c.feeds, uc.UserID)
		}
	}

	return ch, cancel
}

// Invalidate signals that some upstream state of the user changed. Never
// blocks; redundant signals coalesce.
func (c *Composer) Invalidate(userID uuid.UUID) {
	c.mu.Lock()
	f, ok := c.feeds[userID]
	c.mu.Unlock()

	if !ok {
		return
	}

	select {
	case f.wake <- struct{}{}:
	default:
	}
}

// Snapshot computes a one-shot snapshot outside any feed.
func (c *Composer) Snapshot(ctx context.Context, uc auth.UserContext) (*Snapshot, error) {
	return c.src.Load(ctx, uc)
}

func (c *Composer) run(f *feed) {
	for {
		select {
		case <-f.done:
			return
		case <-f.wake:
		}

		snap, err := c.src.Load(context.Background(), f.uc)
		if err != nil {
			slog.Error("failed to recompute snapshot", "user", f.uc.UserID, "error", err)
			continue
		}

		f.mu.Lock()
		for _, ch := range f.subs {
			// Latest-wins delivery: replace an unconsumed snapshot
			// instead of blocking the feed.
			select {
			case ch <- snap:
			default:
				select {
				case <-ch:
				default:
				}
				select {
				case ch <- snap:
				default:
				}
			}
		}
		f.mu.Unlock()
	}
}
