package usecase_vote

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/humanbelnik/watchnext/internal/model"
	"github.com/humanbelnik/watchnext/internal/service/voteboard"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrResourceNotFound   = errors.New("resource not found")
	ErrCatalogUnavailable = errors.New("catalog unavailable")
)

//go:generate mockery --name=CatalogFetcher --output=./mocks/vote/fetcher --outpkg=mocks
type CatalogFetcher interface {
	FetchTitlesForPerson(ctx context.Context, personID string) ([]model.Title, error)
}

// Usecase owns every open voting board. Boards are independent: a board
// id plays the role of a group's room.
type Usecase struct {
	fetcher         CatalogFetcher
	defaultPersonID string

	mu     sync.Mutex
	boards map[model.BoardID]*voteboard.Board

	logger *slog.Logger
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
		boards:          make(map[model.BoardID]*voteboard.Board),
		logger:          slog.Default(),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Refresh (re)loads the board with the person's titles and resets every
// count. The board is created on first use. When the catalog fails the
// board is left empty and ErrCatalogUnavailable is returned. A board
// closed while the fetch was in flight is reported as not found.
func (u *Usecase) Refresh(ctx context.Context, boardID model.BoardID, personID string) (model.Ranking, error) {
	if err := validateBoardID(boardID); err != nil {
		return nil, err
	}
	if personID == "" {
		personID = u.defaultPersonID
	}
	if strings.TrimSpace(personID) == "" {
		return nil, fmt.Errorf("%w: empty person id", ErrInvalidInput)
	}

	board := u.boardOrCreate(boardID)

	titles, fetchErr := u.fetcher.FetchTitlesForPerson(ctx, personID)
	if !u.isOpen(boardID, board) {
		u.logger.Warn("board closed during refresh",
			slog.String("board_id", string(boardID)))
		return nil, ErrResourceNotFound
	}

	if fetchErr != nil {
		board.Load(nil)
		u.logger.Error("failed to fetch candidates",
			slog.String("board_id", string(boardID)),
			slog.String("person_id", personID),
			slog.String("error", fetchErr.Error()))
		return board.Ranked(), fmt.Errorf("%w: %w", ErrCatalogUnavailable, fetchErr)
	}

	board.Load(titles)
	u.logger.Info("board loaded",
		slog.String("board_id", string(boardID)),
		slog.Int("candidates", board.Len()))
	return board.Ranked(), nil
}

// Seed loads the board from an explicit candidate list.
func (u *Usecase) Seed(ctx context.Context, boardID model.BoardID, candidates []model.Title) (model.Ranking, error) {
	if err := validateBoardID(boardID); err != nil {
		return nil, err
	}

	board := u.boardOrCreate(boardID)
	board.Load(candidates)
	return board.Ranked(), nil
}

// Upvote adds one vote. An id that is not on the board is ignored.
func (u *Usecase) Upvote(ctx context.Context, boardID model.BoardID, titleID model.TitleID) (model.Ranking, error) {
	board, err := u.board(boardID)
	if err != nil {
		return nil, err
	}

	board.Upvote(titleID)
	return board.Ranked(), nil
}

func (u *Usecase) Ranking(ctx context.Context, boardID model.BoardID) (model.Ranking, error) {
	board, err := u.board(boardID)
	if err != nil {
		return nil, err
	}

	return board.Ranked(), nil
}

func (u *Usecase) Close(ctx context.Context, boardID model.BoardID) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if _, ok := u.boards[boardID]; !ok {
		return ErrResourceNotFound
	}
	delete(u.boards, boardID)
	return nil
}

func (u *Usecase) board(boardID model.BoardID) (*voteboard.Board, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	board, ok := u.boards[boardID]
	if !ok {
		return nil, ErrResourceNotFound
	}
	return board, nil
}

// isOpen reports whether board is still the one registered under boardID.
func (u *Usecase) isOpen(boardID model.BoardID, board *voteboard.Board) bool {
	u.mu.Lock()
	defer u.mu.Unlock()

	return u.boards[boardID] == board
}

func (u *Usecase) boardOrCreate(boardID model.BoardID) *voteboard.Board {
	u.mu.Lock()
	defer u.mu.Unlock()

	board, ok := u.boards[boardID]
	if !ok {
		board = voteboard.New()
		u.boards[boardID] = board
	}
	return board
}

func validateBoardID(boardID model.BoardID) error {
	if strings.TrimSpace(string(boardID)) == "" {
		return fmt.Errorf("%w: empty board id", ErrInvalidInput)
	}
	return nil
}
