package model

import (
	"errors"
	"strings"
)

var ErrBlankTitle = errors.New("title cannot be blank")

type TitleID = string

type TitleKind string

const (
	KindMovie  TitleKind = "movie"
	KindTVShow TitleKind = "tv_show"
)

const untitled = "(No title)"

// Title is one movie or show. ID is the only identity key: two titles with
// the same ID are the same title whatever their other fields say.
// Values are never mutated in place; an update replaces the whole value.
type Title struct {
	ID            TitleID   `json:"id"`
	Title         string    `json:"title"`
	Kind          TitleKind `json:"kind"`
	URL           string    `json:"url,omitempty"`
	OriginalTitle string    `json:"original_title,omitempty"`
	Description   string    `json:"description,omitempty"`
	PosterURL     string    `json:"poster_url,omitempty"`
	ReleaseDate   string    `json:"release_date,omitempty"`

	StartYear      *int     `json:"start_year,omitempty"`
	RuntimeMinutes *int     `json:"runtime_minutes,omitempty"`
	Genres         []string `json:"genres,omitempty"`
	AverageRating  *float64 `json:"average_rating,omitempty"`
	// Vote count reported by the catalog, unrelated to board votes.
	NumVotes *int `json:"num_votes,omitempty"`
}

// NewManualTitle builds the minimal entry produced by the add form:
// the raw text doubles as the synthetic id.
func NewManualTitle(text string, kind TitleKind) (Title, error) {
	if strings.TrimSpace(text) == "" {
		return Title{}, ErrBlankTitle
	}
	if kind == "" {
		kind = KindMovie
	}

	return Title{
		ID:    text,
		Title: text,
		Kind:  kind,
	}, nil
}

func (t Title) SameAs(other Title) bool {
	return t.ID == other.ID
}

func (t Title) DisplayTitle() string {
	if t.Title == "" {
		return untitled
	}
	return t.Title
}

// Clone returns a copy sharing no memory with t.
func (t Title) Clone() Title {
	c := t
	if t.Genres != nil {
		c.Genres = append([]string(nil), t.Genres...)
	}
	c.StartYear = cloneInt(t.StartYear)
	c.RuntimeMinutes = cloneInt(t.RuntimeMinutes)
	c.NumVotes = cloneInt(t.NumVotes)
	if t.AverageRating != nil {
		r := *t.AverageRating
		c.AverageRating = &r
	}
	return c
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	n := *v
	return &n
}

func CloneTitles(titles []Title) []Title {
	out := make([]Title, len(titles))
	for i, t := range titles {
		out[i] = t.Clone()
	}
	return out
}

// ParseKind accepts the values a client may send for the add form.
func ParseKind(s string) (TitleKind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "movie":
		return KindMovie, true
	case "tv_show", "tvshow", "tv show", "tv", "show":
		return KindTVShow, true
	}
	return "", false
}

// KindFromCatalog maps catalog type strings (movie, tvSeries,
// tvMiniSeries, ...) onto the two kinds we track.
func KindFromCatalog(s string) TitleKind {
	s = strings.ToLower(strings.TrimSpace(s))
	if strings.HasPrefix(s, "tv") && s != "tvmovie" {
		return KindTVShow
	}
	return KindMovie
}
