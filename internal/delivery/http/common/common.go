package http_common

import "github.com/humanbelnik/watchnext/internal/model"

const UserTokenHeader = "X-user-token"

type ErrorResponse struct {
	Message string `json:"message"`
}

// TitleDTO
type TitleDTO struct {
	ID             string   `json:"id" example:"tt0092099"`
	Title          string   `json:"title" example:"Top Gun"`
	DisplayTitle   string   `json:"display_title,omitempty" example:"Top Gun"`
	Kind           string   `json:"kind" example:"movie" enums:"movie,tv_show"`
	URL            string   `json:"url,omitempty" example:"https://www.imdb.com/title/tt0092099/"`
	OriginalTitle  string   `json:"original_title,omitempty" example:"Top Gun"`
	Description    string   `json:"description,omitempty"`
	PosterURL      string   `json:"poster_url,omitempty"`
	ReleaseDate    string   `json:"release_date,omitempty" example:"1986-05-16"`
	StartYear      *int     `json:"start_year,omitempty" example:"1986"`
	RuntimeMinutes *int     `json:"runtime_minutes,omitempty" example:"110"`
	Genres         []string `json:"genres,omitempty" example:"Action,Drama"`
	AverageRating  *float64 `json:"average_rating,omitempty" example:"6.9"`
	NumVotes       *int     `json:"num_votes,omitempty" example:"420000"`
}

func FromTitle(t model.Title) TitleDTO {
	return TitleDTO{
		ID:             t.ID,
		Title:          t.Title,
		DisplayTitle:   t.DisplayTitle(),
		Kind:           string(t.Kind),
		URL:            t.URL,
		OriginalTitle:  t.OriginalTitle,
		Description:    t.Description,
		PosterURL:      t.PosterURL,
		ReleaseDate:    t.ReleaseDate,
		StartYear:      t.StartYear,
		RuntimeMinutes: t.RuntimeMinutes,
		Genres:         t.Genres,
		AverageRating:  t.AverageRating,
		NumVotes:       t.NumVotes,
	}
}

func FromTitles(titles []model.Title) []TitleDTO {
	out := make([]TitleDTO, len(titles))
	for i, t := range titles {
		out[i] = FromTitle(t)
	}
	return out
}

// ToTitle maps a client supplied catalog entry; unknown kinds are
// resolved the way the catalog spells them.
func (d TitleDTO) ToTitle() model.Title {
	kind, ok := model.ParseKind(d.Kind)
	if !ok {
		kind = model.KindFromCatalog(d.Kind)
	}
	return model.Title{
		ID:             d.ID,
		Title:          d.Title,
		Kind:           kind,
		URL:            d.URL,
		OriginalTitle:  d.OriginalTitle,
		Description:    d.Description,
		PosterURL:      d.PosterURL,
		ReleaseDate:    d.ReleaseDate,
		StartYear:      d.StartYear,
		RuntimeMinutes: d.RuntimeMinutes,
		Genres:         d.Genres,
		AverageRating:  d.AverageRating,
		NumVotes:       d.NumVotes,
	}
}
