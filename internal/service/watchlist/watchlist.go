package watchlist

import (
	"container/list"
	"sync"

	"github.com/humanbelnik/watchnext/internal/model"
)

// Store is the group's shared watchlist: a set keyed by title id that
// keeps its entries most-recent-first.
//
// Duplicate adds and removes of unknown ids are silent no-ops.
type Store struct {
	mu sync.RWMutex

	// Front of order is the most recently added title.
	order *list.List
	index map[model.TitleID]*list.Element
}

func New() *Store {
	return &Store{
		order: list.New(),
		index: make(map[model.TitleID]*list.Element),
	}
}

// Add prepends t unless a title with the same id is already present.
// Reports whether the store changed.
func (s *Store) Add(t model.Title) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.index[t.ID]; ok {
		return false
	}
	s.index[t.ID] = s.order.PushFront(t.Clone())
	return true
}

func (s *Store) Remove(id model.TitleID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.index[id]
	if !ok {
		return false
	}
	s.order.Remove(e)
	delete(s.index, id)
	return true
}

// List returns an independent copy in display order.
func (s *Store) List() []model.Title {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Title, 0, s.order.Len())
	for e := s.order.Front(); e != nil; e = e.Next() {
		out = append(out, e.Value.(model.Title).Clone())
	}
	return out
}

func (s *Store) Get(id model.TitleID) (model.Title, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.index[id]
	if !ok {
		return model.Title{}, false
	}
	return e.Value.(model.Title).Clone(), true
}

func (s *Store) Contains(id model.TitleID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.index[id]
	return ok
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.order.Len()
}

// Restore replaces the contents with titles given in display order, as
// returned by List. Later duplicates of an id are dropped.
func (s *Store) Restore(titles []model.Title) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.order.Init()
	s.index = make(map[model.TitleID]*list.Element, len(titles))
	for _, t := range titles {
		if _, ok := s.index[t.ID]; ok {
			continue
		}
		s.index[t.ID] = s.order.PushBack(t.Clone())
	}
}
