package job

import (
	"sort"
	"sync"
)

// Store tracks active jobs and a history of terminal ones.
type Store interface {
	Put(j *Job)
	Get(id string) (*Job, bool)
	Update(id string, update func(*Job)) (*Job, bool)
	MoveToHistory(id string)
	History(limit int, userID string) []*Job
	ActiveCount() int
	HistoryCount() int
}

// MemoryStore is the default Store. Reads return clones so callers never
// share memory with the pipeline goroutine.
type MemoryStore struct {
	mu      sync.RWMutex
	active  map[string]*Job
	history []*Job

	// archive receives terminal jobs when configured (write-through).
	archive *PGArchive
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{active: make(map[string]*Job)}
}

// WithArchive attaches a Postgres archive for terminal jobs.
func (s *MemoryStore) WithArchive(archive *PGArchive) *MemoryStore {
	s.archive = archive
	return s
}

func (s *MemoryStore) Put(j *Job) {
	s.mu.Lock()
	s.active[j.ID] = j.Clone()
	s.mu.Unlock()
}

func (s *MemoryStore) Get(id string) (*Job, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if j, ok := s.active[id]; ok {
		return j.Clone(), true
	}
	for _, j := range s.history {
		if j.ID == id {
			return j.Clone(), true
		}
	}
	return nil, false
}

func (s *MemoryStore) Update(id string, update func(*Job)) (*Job, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	j, ok := s.active[id]
	if !ok {
		return nil, false
	}
	update(j)
	return j.Clone(), true
}

// MoveToHistory retires a terminal job from the active set.
func (s *MemoryStore) MoveToHistory(id string) {
	s.mu.Lock()
	j, ok := s.active[id]
	if ok {
		delete(s.active, id)
		s.history = append(s.history, j)
	}
	s.mu.Unlock()
	if ok && s.archive != nil {
		s.archive.Append(j.Clone())
	}
}

// History returns terminal jobs newest-first, optionally filtered by user.
func (s *MemoryStore) History(limit int, userID string) []*Job {
	s.mu.RLock()
	out := make([]*Job, 0, len(s.history))
	for _, j := range s.history {
		if userID != "" && j.UserID != userID {
			continue
		}
		out = append(out, j.Clone())
	}
	s.mu.RUnlock()

	sort.Slice(out, func(a, b int) bool {
		return out[a].CreatedAt.After(out[b].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (s *MemoryStore) ActiveCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.active)
}

func (s *MemoryStore) HistoryCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.history)
}
