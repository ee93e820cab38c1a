package docstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memDoc struct {
	data    []byte
	created time.Time
	updated time.Time
}

// MemoryStore keeps every collection in process memory. It backs tests and
// the "memory" store driver.
type MemoryStore struct {
	mu     sync.RWMutex
	cols   map[Path]map[string]*memDoc
	feed   *Feed
	closed bool
	now    func() time.Time
}

func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{
		cols: make(map[Path]map[string]*memDoc),
		now:  time.Now,
	}
	s.feed = newFeed(s.list)
	return s
}

func (s *MemoryStore) toDocument(id string, d *memDoc) Document {
	return Document{ID: id, CreateTime: d.created, UpdateTime: d.updated, data: d.data}
}

func (s *MemoryStore) list(_ context.Context, path Path) ([]Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	col := s.cols[path]
	docs := make([]Document, 0, len(col))
	for id, d := range col {
		docs = append(docs, s.toDocument(id, d))
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })
	return docs, nil
}

func (s *MemoryStore) check(path Path, id string) error {
	if err := path.Validate(); err != nil {
		return err
	}
	return validateID(id)
}

func (s *MemoryStore) Get(ctx context.Context, path Path, id string) (Document, error) {
	if err := s.check(path, id); err != nil {
		return Document{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return Document{}, ErrClosed
	}
	d, ok := s.cols[path][id]
	if !ok {
		return Document{}, ErrNotFound
	}
	return s.toDocument(id, d), nil
}

func (s *MemoryStore) put(path Path, id string, raw []byte, now time.Time) {
	col := s.cols[path]
	if col == nil {
		col = make(map[string]*memDoc)
		s.cols[path] = col
	}
	created := now
	if existing, ok := col[id]; ok {
		created = existing.created
	}
	col[id] = &memDoc{data: raw, created: created, updated: now}
}

func (s *MemoryStore) Set(ctx context.Context, path Path, id string, doc any) error {
	if err := s.check(path, id); err != nil {
		return err
	}
	raw, err := encode(doc)
	if err != nil {
		return err
	}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	s.put(path, id, raw, s.now())
	s.mu.Unlock()

	s.feed.notify(ctx, path)
	return nil
}

func (s *MemoryStore) Create(ctx context.Context, path Path, id string, doc any) error {
	if err := s.check(path, id); err != nil {
		return err
	}
	raw, err := encode(doc)
	if err != nil {
		return err
	}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	if _, ok := s.cols[path][id]; ok {
		s.mu.Unlock()
		return ErrAlreadyExists
	}
	s.put(path, id, raw, s.now())
	s.mu.Unlock()

	s.feed.notify(ctx, path)
	return nil
}

func (s *MemoryStore) Add(ctx context.Context, path Path, doc any) (string, error) {
	id := uuid.NewString()
	if err := s.Create(ctx, path, id, doc); err != nil {
		return "", err
	}
	return id, nil
}

func (s *MemoryStore) Update(ctx context.Context, path Path, id string, updates ...Update) error {
	if err := s.check(path, id); err != nil {
		return err
	}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	d, ok := s.cols[path][id]
	if !ok {
		s.mu.Unlock()
		return ErrNotFound
	}
	raw, err := applyUpdates(d.data, updates)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.put(path, id, raw, s.now())
	s.mu.Unlock()

	s.feed.notify(ctx, path)
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, path Path, id string) error {
	if err := s.check(path, id); err != nil {
		return err
	}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	_, existed := s.cols[path][id]
	delete(s.cols[path], id)
	s.mu.Unlock()

	if existed {
		s.feed.notify(ctx, path)
	}
	return nil
}

func (s *MemoryStore) Query(ctx context.Context, path Path, filters ...Filter) ([]Document, error) {
	if err := path.Validate(); err != nil {
		return nil, err
	}
	docs, err := s.list(ctx, path)
	if err != nil {
		return nil, err
	}
	out := docs[:0]
	for _, d := range docs {
		ok, err := matches(d.data, filters)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, d)
		}
	}
	return out, nil
}

// Batch encodes every op before touching state, so a bad op leaves the
// store unchanged.
func (s *MemoryStore) Batch(ctx context.Context, ops ...BatchOp) error {
	if err := validateOps(ops); err != nil {
		return err
	}
	encoded := make([][]byte, len(ops))
	for i, op := range ops {
		if op.delete {
			continue
		}
		raw, err := encode(op.Doc)
		if err != nil {
			return err
		}
		encoded[i] = raw
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	now := s.now()
	paths := make([]Path, 0, len(ops))
	for i, op := range ops {
		if op.delete {
			delete(s.cols[op.Path], op.ID)
		} else {
			s.put(op.Path, op.ID, encoded[i], now)
		}
		paths = append(paths, op.Path)
	}
	s.mu.Unlock()

	s.feed.notify(ctx, paths...)
	return nil
}

func (s *MemoryStore) Subscribe(ctx context.Context, path Path) (*Subscription, error) {
	s.mu.RLock()
	closed := s.closed
	s.mu.RUnlock()
	if closed {
		return nil, ErrClosed
	}
	return s.feed.subscribe(ctx, path)
}

func (s *MemoryStore) Close(context.Context) error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.feed.closeAll()
	return nil
}
