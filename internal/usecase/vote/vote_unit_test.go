package usecase_vote

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/humanbelnik/watchnext/internal/model"
	fetcher_mocks "github.com/humanbelnik/watchnext/internal/usecase/vote/mocks/vote/fetcher"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type UsecaseVoteUnitSuite struct {
	suite.Suite
}

type resources struct {
	usecase *Usecase
	fetcher *fetcher_mocks.CatalogFetcher
	ctx     context.Context
}

func initResources(t provider.T) *resources {
	fetcher := fetcher_mocks.NewCatalogFetcher(t)

	return &resources{
		usecase: New(fetcher, validPersonID()),
		fetcher: fetcher,
		ctx:     context.Background(),
	}
}

func validPersonID() string {
	return "nm0000190"
}

func validBoardID() model.BoardID {
	return model.BoardID("friday-night")
}

func validTitles(ids ...string) []model.Title {
	out := make([]model.Title, len(ids))
	for i, id := range ids {
		out[i] = model.Title{ID: id, Title: "Title " + id, Kind: model.KindMovie}
	}
	return out
}

type row struct {
	id    string
	votes int
}

func rows(r model.Ranking) []row {
	out := make([]row, len(r))
	for i, t := range r {
		out[i] = row{id: t.Title.ID, votes: t.Votes}
	}
	return out
}

func (s *UsecaseVoteUnitSuite) TestRefresh(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name          string
		boardID       model.BoardID
		personID      string
		setupMocks    func(r *resources)
		expected      []row
		expectedError error
	}{
		{
			name:     "Should load candidates with zero votes",
			boardID:  validBoardID(),
			personID: "nm0000129",
			setupMocks: func(r *resources) {
				r.fetcher.On("FetchTitlesForPerson", r.ctx, "nm0000129").Return(validTitles("tt1", "tt2"), nil).Once()
			},
			expected: []row{{"tt1", 0}, {"tt2", 0}},
		},
		{
			name:    "Should use default person",
			boardID: validBoardID(),
			setupMocks: func(r *resources) {
				r.fetcher.On("FetchTitlesForPerson", r.ctx, validPersonID()).Return(validTitles("tt1"), nil).Once()
			},
			expected: []row{{"tt1", 0}},
		},
		{
			name:    "Should leave board empty when catalog fails",
			boardID: validBoardID(),
			setupMocks: func(r *resources) {
				r.fetcher.On("FetchTitlesForPerson", r.ctx, validPersonID()).Return(nil, errors.New("503")).Once()
			},
			expected:      []row{},
			expectedError: ErrCatalogUnavailable,
		},
		{
			name:          "Should reject empty board id",
			boardID:       " ",
			setupMocks:    func(r *resources) {},
			expectedError: ErrInvalidInput,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initResources(t)
			tc.setupMocks(r)

			ranking, err := r.usecase.Refresh(r.ctx, tc.boardID, tc.personID)

			if tc.expectedError != nil {
				assert.ErrorIs(t, err, tc.expectedError)
			} else {
				assert.NoError(t, err)
			}
			if tc.expected != nil {
				assert.Equal(t, tc.expected, rows(ranking))
			}
			r.fetcher.AssertExpectations(t)
		})
	}
}

func (s *UsecaseVoteUnitSuite) TestFailedRefreshClearsPreviousCandidates(t provider.T) {
	r := initResources(t)
	r.fetcher.On("FetchTitlesForPerson", r.ctx, validPersonID()).Return(validTitles("tt1"), nil).Once()
	r.fetcher.On("FetchTitlesForPerson", r.ctx, validPersonID()).Return(nil, errors.New("503")).Once()

	_, err := r.usecase.Refresh(r.ctx, validBoardID(), "")
	assert.NoError(t, err)
	_, _ = r.usecase.Upvote(r.ctx, validBoardID(), "tt1")

	_, err = r.usecase.Refresh(r.ctx, validBoardID(), "")
	assert.ErrorIs(t, err, ErrCatalogUnavailable)

	ranking, err := r.usecase.Ranking(r.ctx, validBoardID())
	assert.NoError(t, err)
	assert.Empty(t, ranking)
}

func (s *UsecaseVoteUnitSuite) TestRefreshWithoutPerson(t provider.T) {
	r := initResources(t)
	r.usecase = New(r.fetcher, "")

	_, err := r.usecase.Refresh(r.ctx, validBoardID(), "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = r.usecase.Ranking(r.ctx, validBoardID())
	assert.ErrorIs(t, err, ErrResourceNotFound)
	r.fetcher.AssertNotCalled(t, "FetchTitlesForPerson", mock.Anything, mock.Anything)
}

func (s *UsecaseVoteUnitSuite) TestCloseDuringRefresh(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		titles   []model.Title
		fetchErr error
	}{
		{
			name:   "Should report closed board after successful fetch",
			titles: validTitles("tt1"),
		},
		{
			name:     "Should report closed board after failed fetch",
			fetchErr: errors.New("503"),
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initResources(t)
			_, _ = r.usecase.Seed(r.ctx, validBoardID(), validTitles("tt9"))
			r.fetcher.On("FetchTitlesForPerson", r.ctx, validPersonID()).
				Run(func(mock.Arguments) {
					_ = r.usecase.Close(r.ctx, validBoardID())
				}).
				Return(tc.titles, tc.fetchErr).Once()

			ranking, err := r.usecase.Refresh(r.ctx, validBoardID(), "")

			assert.ErrorIs(t, err, ErrResourceNotFound)
			assert.Nil(t, ranking)
			_, err = r.usecase.Ranking(r.ctx, validBoardID())
			assert.ErrorIs(t, err, ErrResourceNotFound)
		})
	}
}

func (s *UsecaseVoteUnitSuite) TestVotingSession(t provider.T) {
	r := initResources(t)
	r.fetcher.On("FetchTitlesForPerson", r.ctx, validPersonID()).Return(validTitles("tt1", "tt2"), nil).Twice()

	_, err := r.usecase.Refresh(r.ctx, validBoardID(), "")
	assert.NoError(t, err)

	ranking, err := r.usecase.Upvote(r.ctx, validBoardID(), "tt2")
	assert.NoError(t, err)
	assert.Equal(t, []row{{"tt2", 1}, {"tt1", 0}}, rows(ranking))

	leader, ok := ranking.Leader()
	assert.True(t, ok)
	assert.Equal(t, "tt2", leader.Title.ID)

	ranking, err = r.usecase.Upvote(r.ctx, validBoardID(), "tt1")
	assert.NoError(t, err)
	assert.Equal(t, []row{{"tt1", 1}, {"tt2", 1}}, rows(ranking))
	leader, _ = ranking.Leader()
	assert.Equal(t, "tt1", leader.Title.ID)

	ranking, err = r.usecase.Refresh(r.ctx, validBoardID(), "")
	assert.NoError(t, err)
	assert.Equal(t, []row{{"tt1", 0}, {"tt2", 0}}, rows(ranking))
	_, ok = ranking.Leader()
	assert.False(t, ok)
}

func (s *UsecaseVoteUnitSuite) TestUnknownBoard(t provider.T) {
	r := initResources(t)

	_, err := r.usecase.Upvote(r.ctx, "missing", "tt1")
	assert.ErrorIs(t, err, ErrResourceNotFound)

	_, err = r.usecase.Ranking(r.ctx, "missing")
	assert.ErrorIs(t, err, ErrResourceNotFound)

	assert.ErrorIs(t, r.usecase.Close(r.ctx, "missing"), ErrResourceNotFound)
}

func (s *UsecaseVoteUnitSuite) TestUpvoteUnknownTitle(t provider.T) {
	r := initResources(t)
	_, _ = r.usecase.Seed(r.ctx, validBoardID(), validTitles("tt1"))

	ranking, err := r.usecase.Upvote(r.ctx, validBoardID(), "tt404")

	assert.NoError(t, err)
	assert.Equal(t, []row{{"tt1", 0}}, rows(ranking))
}

func (s *UsecaseVoteUnitSuite) TestBoardsAreIndependent(t provider.T) {
	r := initResources(t)
	_, _ = r.usecase.Seed(r.ctx, "a", validTitles("tt1"))
	_, _ = r.usecase.Seed(r.ctx, "b", validTitles("tt1"))

	_, _ = r.usecase.Upvote(r.ctx, "a", "tt1")

	ra, _ := r.usecase.Ranking(r.ctx, "a")
	rb, _ := r.usecase.Ranking(r.ctx, "b")
	assert.Equal(t, []row{{"tt1", 1}}, rows(ra))
	assert.Equal(t, []row{{"tt1", 0}}, rows(rb))

	assert.NoError(t, r.usecase.Close(r.ctx, "a"))
	_, err := r.usecase.Ranking(r.ctx, "a")
	assert.ErrorIs(t, err, ErrResourceNotFound)
	_, err = r.usecase.Ranking(r.ctx, "b")
	assert.NoError(t, err)
}

func (s *UsecaseVoteUnitSuite) TestConcurrentVoters(t provider.T) {
	r := initResources(t)
	r.fetcher.On("FetchTitlesForPerson", mock.Anything, validPersonID()).Return(validTitles("tt1", "tt2", "tt3"), nil).Once()
	_, err := r.usecase.Refresh(r.ctx, validBoardID(), "")
	assert.NoError(t, err)

	const voters = 30
	var wg sync.WaitGroup
	for i := 0; i < voters; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _ = r.usecase.Upvote(r.ctx, validBoardID(), fmt.Sprintf("tt%d", i%3+1))
		}(i)
	}
	wg.Wait()

	ranking, _ := r.usecase.Ranking(r.ctx, validBoardID())
	assert.Equal(t, []row{{"tt1", 10}, {"tt2", 10}, {"tt3", 10}}, rows(ranking))
}

func TestUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(UsecaseVoteUnitSuite))
}
