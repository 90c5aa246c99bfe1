package infra_catalog_imdb

import "github.com/humanbelnik/watchnext/internal/model"

type titleDTO struct {
	ID             string   `json:"id"`
	URL            string   `json:"url"`
	PrimaryTitle   string   `json:"primaryTitle"`
	OriginalTitle  string   `json:"originalTitle"`
	Type           string   `json:"type"`
	Description    string   `json:"description"`
	PrimaryImage   string   `json:"primaryImage"`
	ReleaseDate    string   `json:"releaseDate"`
	StartYear      *int     `json:"startYear"`
	RuntimeMinutes *int     `json:"runtimeMinutes"`
	Genres         []string `json:"genres"`
	AverageRating  *float64 `json:"averageRating"`
	NumVotes       *int     `json:"numVotes"`
}

func (d titleDTO) toModel() model.Title {
	return model.Title{
		ID:             d.ID,
		Title:          d.PrimaryTitle,
		Kind:           model.KindFromCatalog(d.Type),
		URL:            d.URL,
		OriginalTitle:  d.OriginalTitle,
		Description:    d.Description,
		PosterURL:      d.PrimaryImage,
		ReleaseDate:    d.ReleaseDate,
		StartYear:      d.StartYear,
		RuntimeMinutes: d.RuntimeMinutes,
		Genres:         d.Genres,
		AverageRating:  d.AverageRating,
		NumVotes:       d.NumVotes,
	}
}
