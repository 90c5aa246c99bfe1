package infra_postgres_watchlist

import (
	"github.com/humanbelnik/watchnext/internal/model"
	"github.com/lib/pq"
)

type titleDTO struct {
	Position       int            `db:"position"`
	ID             string         `db:"id"`
	Title          string         `db:"title"`
	Kind           string         `db:"kind"`
	URL            string         `db:"url"`
	OriginalTitle  string         `db:"original_title"`
	Description    string         `db:"description"`
	PosterURL      string         `db:"poster_url"`
	ReleaseDate    string         `db:"release_date"`
	StartYear      *int           `db:"start_year"`
	RuntimeMinutes *int           `db:"runtime_minutes"`
	Genres         pq.StringArray `db:"genres"`
	AverageRating  *float64       `db:"average_rating"`
	NumVotes       *int           `db:"num_votes"`
}

func fromModel(position int, t model.Title) titleDTO {
	return titleDTO{
		Position:       position,
		ID:             t.ID,
		Title:          t.Title,
		Kind:           string(t.Kind),
		URL:            t.URL,
		OriginalTitle:  t.OriginalTitle,
		Description:    t.Description,
		PosterURL:      t.PosterURL,
		ReleaseDate:    t.ReleaseDate,
		StartYear:      t.StartYear,
		RuntimeMinutes: t.RuntimeMinutes,
		Genres:         pq.StringArray(t.Genres),
		AverageRating:  t.AverageRating,
		NumVotes:       t.NumVotes,
	}
}

func (d titleDTO) toModel() model.Title {
	var genres []string
	if len(d.Genres) > 0 {
		genres = []string(d.Genres)
	}
	return model.Title{
		ID:             d.ID,
		Title:          d.Title,
		Kind:           model.TitleKind(d.Kind),
		URL:            d.URL,
		OriginalTitle:  d.OriginalTitle,
		Description:    d.Description,
		PosterURL:      d.PosterURL,
		ReleaseDate:    d.ReleaseDate,
		StartYear:      d.StartYear,
		RuntimeMinutes: d.RuntimeMinutes,
		Genres:         genres,
		AverageRating:  d.AverageRating,
		NumVotes:       d.NumVotes,
	}
}
