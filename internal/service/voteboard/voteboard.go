package voteboard

import (
	"slices"
	"sync"

	"github.com/humanbelnik/watchnext/internal/model"
)

// Board counts upvotes over a fixed set of candidates. Counters live for
// one load only: every Load starts again from zero.
type Board struct {
	mu sync.RWMutex

	// Candidates in load order; ties in Ranked keep this order.
	candidates []model.Title
	votes      map[model.TitleID]int
	generation uint64
}

func New() *Board {
	return &Board{
		votes: make(map[model.TitleID]int),
	}
}

// Load discards all previous state and gives every candidate a zero
// counter. Only the first occurrence of a repeated id is kept.
func (b *Board) Load(candidates []model.Title) {
	loaded := make([]model.Title, 0, len(candidates))
	votes := make(map[model.TitleID]int, len(candidates))
	for _, c := range candidates {
		if _, ok := votes[c.ID]; ok {
			continue
		}
		votes[c.ID] = 0
		loaded = append(loaded, c.Clone())
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.candidates = loaded
	b.votes = votes
	b.generation++
}

// Upvote adds one vote. Ids outside the current load are ignored.
func (b *Board) Upvote(id model.TitleID) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	n, ok := b.votes[id]
	if !ok {
		return false
	}
	b.votes[id] = n + 1
	return true
}

// Ranked orders candidates by votes, highest first. The sort is stable so
// equal counts stay in load order.
func (b *Board) Ranked() model.Ranking {
	b.mu.RLock()
	ranking := make(model.Ranking, 0, len(b.candidates))
	for _, c := range b.candidates {
		ranking = append(ranking, model.Tally{
			Title: c.Clone(),
			Votes: b.votes[c.ID],
		})
	}
	b.mu.RUnlock()

	slices.SortStableFunc(ranking, func(a, b model.Tally) int {
		return b.Votes - a.Votes
	})
	return ranking
}

func (b *Board) Leader() (model.Tally, bool) {
	return b.Ranked().Leader()
}

func (b *Board) Votes(id model.TitleID) (int, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	n, ok := b.votes[id]
	return n, ok
}

func (b *Board) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return len(b.candidates)
}

// Generation changes on every Load.
func (b *Board) Generation() uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.generation
}
