package usecase_watchlist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/humanbelnik/watchnext/internal/model"
	"github.com/humanbelnik/watchnext/internal/service/watchlist"
)

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrResourceNotFound = errors.New("resource not found")
	ErrInternal         = errors.New("internal error")
)

//go:generate mockery --name=SnapshotRepository --output=./mocks/watchlist/repository --outpkg=mocks
type SnapshotRepository interface {
	Save(ctx context.Context, titles []model.Title) error
	Load(ctx context.Context) ([]model.Title, error)
}

type Usecase struct {
	store *watchlist.Store
	repo  SnapshotRepository

	// serializes snapshot writes so the last save always sees the latest list
	persistMu sync.Mutex

	logger *slog.Logger
}

type UsecaseOption func(*Usecase)

func WithLogger(logger *slog.Logger) UsecaseOption {
	return func(u *Usecase) {
		u.logger = logger
	}
}

func WithSnapshotRepository(repo SnapshotRepository) UsecaseOption {
	return func(u *Usecase) {
		u.repo = repo
	}
}

func New(
	store *watchlist.Store,
	opts ...UsecaseOption,
) *Usecase {
	u := &Usecase{
		store:  store,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// AddManual creates a minimal entry from free text. Text is used as is
// for both id and title.
func (u *Usecase) AddManual(ctx context.Context, text string, kind string) (model.Title, bool, error) {
	k, ok := model.ParseKind(kind)
	if !ok {
		return model.Title{}, false, fmt.Errorf("%w: unknown kind %q", ErrInvalidInput, kind)
	}

	t, err := model.NewManualTitle(text, k)
	if err != nil {
		return model.Title{}, false, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	added, err := u.Add(ctx, t)
	return t, added, err
}

// Add reports false when a title with the same id is already listed.
func (u *Usecase) Add(ctx context.Context, t model.Title) (bool, error) {
	if t.ID == "" {
		return false, fmt.Errorf("%w: empty title id", ErrInvalidInput)
	}

	added := u.store.Add(t)
	if added {
		u.persist(ctx)
	}
	return added, nil
}

func (u *Usecase) Remove(ctx context.Context, id model.TitleID) (bool, error) {
	removed := u.store.Remove(id)
	if removed {
		u.persist(ctx)
	}
	return removed, nil
}

func (u *Usecase) Get(ctx context.Context, id model.TitleID) (model.Title, error) {
	t, ok := u.store.Get(id)
	if !ok {
		return model.Title{}, ErrResourceNotFound
	}
	return t, nil
}

func (u *Usecase) List(ctx context.Context) []model.Title {
	return u.store.List()
}

// Restore replaces the in-memory list with the persisted snapshot.
// Without a repository it does nothing.
func (u *Usecase) Restore(ctx context.Context) error {
	if u.repo == nil {
		return nil
	}

	titles, err := u.repo.Load(ctx)
	if err != nil {
		return errors.Join(ErrInternal, err)
	}

	u.store.Restore(titles)
	u.logger.Info("watchlist restored", slog.Int("titles", u.store.Len()))
	return nil
}

func (u *Usecase) persist(ctx context.Context) {
	if u.repo == nil {
		return
	}

	u.persistMu.Lock()
	defer u.persistMu.Unlock()

	if err := u.repo.Save(ctx, u.store.List()); err != nil {
		u.logger.Error("failed to save watchlist snapshot", slog.String("error", err.Error()))
	}
}
