package model

type BoardID string

// Tally pairs a candidate with the votes it received in the current load.
type Tally struct {
	Title Title `json:"title"`
	Votes int   `json:"votes"`
}

// Ranking is ordered by votes descending; equal counts keep load order.
type Ranking []Tally

// Leader is rank 0, but only once it has at least one vote.
func (r Ranking) Leader() (Tally, bool) {
	if len(r) == 0 || r[0].Votes <= 0 {
		return Tally{}, false
	}
	return r[0], true
}
