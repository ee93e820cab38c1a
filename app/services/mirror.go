package services

import (
	"context"
	"sort"
	"sync"

	"github.com/SumanthCsy/Mens-Club-sub000/app/docstore"
	"go.uber.org/zap"
)

// mirror folds the snapshots of one subscription into a local map. Each
// attach bumps a generation so folds from an older subscription are
// discarded after detach.
type mirror[T any] struct {
	name   string
	decode func(docstore.Document) (T, error)

	mu     sync.RWMutex
	owner  string
	items  map[string]T
	order  []string
	gen    uint64
	sub    *docstore.Subscription
	cancel context.CancelFunc
}

func newMirror[T any](name string, decode func(docstore.Document) (T, error)) *mirror[T] {
	return &mirror[T]{name: name, decode: decode, items: map[string]T{}}
}

type subscribeFunc func(ctx context.Context, uid string) (*docstore.Subscription, error)

// attach subscribes for uid and waits for the first snapshot to be folded.
func (m *mirror[T]) attach(ctx context.Context, uid string, subscribe subscribeFunc) error {
	m.detach()

	subCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	sub, err := subscribe(subCtx, uid)
	if err != nil {
		cancel()
		return persistence(m.name+".attach", err)
	}

	var first docstore.Snapshot
	select {
	case snap, ok := <-sub.C:
		if !ok {
			cancel()
			return persistence(m.name+".attach", docstore.ErrClosed)
		}
		first = snap
	case <-ctx.Done():
		sub.Close()
		cancel()
		return ctx.Err()
	}

	m.mu.Lock()
	m.gen++
	gen := m.gen
	m.owner = uid
	m.sub = sub
	m.cancel = cancel
	m.mu.Unlock()

	m.fold(gen, first)
	go func() {
		for snap := range sub.C {
			m.fold(gen, snap)
		}
	}()
	return nil
}

// detach drops the subscription and clears local state without waiting for
// the store.
func (m *mirror[T]) detach() {
	m.mu.Lock()
	sub, cancel := m.sub, m.cancel
	m.gen++
	m.owner = ""
	m.sub = nil
	m.cancel = nil
	m.items = map[string]T{}
	m.order = nil
	m.mu.Unlock()

	if sub != nil {
		sub.Close()
	}
	if cancel != nil {
		cancel()
	}
}

func (m *mirror[T]) fold(gen uint64, snap docstore.Snapshot) {
	items := make(map[string]T, len(snap.Docs))
	order := make([]string, 0, len(snap.Docs))
	for _, doc := range snap.Docs {
		v, err := m.decode(doc)
		if err != nil {
			zap.S().Warnf("%s.fold: skipping %s/%s: %v", m.name, snap.Path, doc.ID, err)
			continue
		}
		items[doc.ID] = v
		order = append(order, doc.ID)
	}
	sort.Strings(order)

	m.mu.Lock()
	defer m.mu.Unlock()
	if gen != m.gen {
		return
	}
	m.items = items
	m.order = order
}

func (m *mirror[T]) ownerID() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.owner
}

func (m *mirror[T]) get(id string) (T, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.items[id]
	return v, ok
}

func (m *mirror[T]) list() []T {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]T, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.items[id])
	}
	return out
}

func (m *mirror[T]) len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}
