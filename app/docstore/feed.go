package docstore

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

const feedListTimeout = 5 * time.Second

// Snapshot is the full content of a collection at ReadTime, ordered by id.
type Snapshot struct {
	Path     Path
	Docs     []Document
	ReadTime time.Time
}

type lister func(ctx context.Context, path Path) ([]Document, error)

// Feed fans collection snapshots out to subscribers after every write made
// through the owning store.
type Feed struct {
	mu   sync.Mutex
	subs map[Path]map[*Subscription]struct{}
	list lister
}

func newFeed(list lister) *Feed {
	return &Feed{
		subs: make(map[Path]map[*Subscription]struct{}),
		list: list,
	}
}

// Subscription delivers snapshots on C. C holds at most one pending
// snapshot; a newer snapshot replaces an unread one. C is closed when the
// subscription ends.
type Subscription struct {
	C <-chan Snapshot

	ch     chan Snapshot
	path   Path
	feed   *Feed
	mu     sync.Mutex
	closed bool
	once   sync.Once
	done   chan struct{}
}

func (f *Feed) subscribe(ctx context.Context, path Path) (*Subscription, error) {
	if err := path.Validate(); err != nil {
		return nil, err
	}
	ch := make(chan Snapshot, 1)
	s := &Subscription{C: ch, ch: ch, path: path, feed: f, done: make(chan struct{})}

	f.mu.Lock()
	docs, err := f.list(ctx, path)
	if err != nil {
		f.mu.Unlock()
		return nil, err
	}
	s.offer(Snapshot{Path: path, Docs: docs, ReadTime: time.Now()})
	if f.subs[path] == nil {
		f.subs[path] = make(map[*Subscription]struct{})
	}
	f.subs[path][s] = struct{}{}
	f.mu.Unlock()

	go func() {
		select {
		case <-ctx.Done():
			s.Close()
		case <-s.done:
		}
	}()
	return s, nil
}

// notify pushes a fresh snapshot of each path to its subscribers. It must
// not be called while the store holds its own write lock.
func (f *Feed) notify(ctx context.Context, paths ...Path) {
	seen := make(map[Path]struct{}, len(paths))
	for _, path := range paths {
		if _, ok := seen[path]; ok {
			continue
		}
		seen[path] = struct{}{}
		f.publish(ctx, path)
	}
}

func (f *Feed) publish(ctx context.Context, path Path) {
	f.mu.Lock()
	defer f.mu.Unlock()

	subs := f.subs[path]
	if len(subs) == 0 {
		return
	}
	listCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), feedListTimeout)
	defer cancel()
	docs, err := f.list(listCtx, path)
	if err != nil {
		zap.S().Errorf("Feed.publish: list %s: %v", path, err)
		return
	}
	snap := Snapshot{Path: path, Docs: docs, ReadTime: time.Now()}
	for s := range subs {
		s.offer(snap)
	}
}

func (f *Feed) remove(s *Subscription) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if subs, ok := f.subs[s.path]; ok {
		delete(subs, s)
		if len(subs) == 0 {
			delete(f.subs, s.path)
		}
	}
}

func (f *Feed) closeAll() {
	f.mu.Lock()
	var all []*Subscription
	for _, subs := range f.subs {
		for s := range subs {
			all = append(all, s)
		}
	}
	f.mu.Unlock()
	for _, s := range all {
		s.Close()
	}
}

func (s *Subscription) offer(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	select {
	case <-s.ch:
	default:
	}
	s.ch <- snap
}

// Close ends the subscription and closes C. Safe to call more than once.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.feed.remove(s)
		s.mu.Lock()
		s.closed = true
		close(s.ch)
		s.mu.Unlock()
		close(s.done)
	})
}

// Done is closed once the subscription has ended.
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}
