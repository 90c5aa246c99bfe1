package usecase_catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/humanbelnik/watchnext/internal/model"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrCatalogUnavailable = errors.New("catalog unavailable")
)

//go:generate mockery --name=CatalogFetcher --output=./mocks/catalog/fetcher --outpkg=mocks
type CatalogFetcher interface {
	FetchTitlesForPerson(ctx context.Context, personID string) ([]model.Title, error)
}

type Usecase struct {
	fetcher         CatalogFetcher
	defaultPersonID string
	logger          *slog.Logger
}

type UsecaseOption func(*Usecase)

func WithLogger(logger *slog.Logger) UsecaseOption {
	return func(u *Usecase) {
		u.logger = logger
	}
}

func New(
	fetcher CatalogFetcher,
	defaultPersonID string,
	opts ...UsecaseOption,
) *Usecase {
	u := &Usecase{
		fetcher:         fetcher,
		defaultPersonID: defaultPersonID,
		logger:          slog.Default(),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

func (u *Usecase) DefaultPersonID() string {
	return u.defaultPersonID
}

// Browse lists the person's titles for the home screen.
// An empty person id falls back to the configured one.
func (u *Usecase) Browse(ctx context.Context, personID string) ([]model.Title, error) {
	if personID == "" {
		personID = u.defaultPersonID
	}
	if personID == "" {
		return nil, fmt.Errorf("%w: empty person id", ErrInvalidInput)
	}

	titles, err := u.fetcher.FetchTitlesForPerson(ctx, personID)
	if err != nil {
		u.logger.Error("failed to browse catalog",
			slog.String("person_id", personID),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
	}

	return titles, nil
}
