package infra_redis_watchlist

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis"
	"github.com/humanbelnik/watchnext/internal/model"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
)

type WatchlistRedisUnitSuite struct {
	suite.Suite
}

type resources struct {
	server *miniredis.Miniredis
	client *redis.Client
	driver *Driver
	ctx    context.Context
}

func initResources(t provider.T) *resources {
	server, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start redis: %v", err)
	}
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})

	return &resources{
		server: server,
		client: client,
		driver: New(client, validKey()),
		ctx:    context.Background(),
	}
}

func (r *resources) close() {
	_ = r.client.Close()
	r.server.Close()
}

func validKey() string {
	return "watchlist"
}

func (s *WatchlistRedisUnitSuite) TestSave(t provider.T) {
	t.Parallel()

	t.Run("Should store empty list as array", func(t provider.T) {
		r := initResources(t)
		defer r.close()

		assert.NoError(t, r.driver.Save(r.ctx, nil))

		raw, err := r.server.Get(validKey())
		assert.NoError(t, err)
		assert.Equal(t, "[]", raw)
		assert.Zero(t, r.server.TTL(validKey()))
	})

	t.Run("Should overwrite previous snapshot", func(t provider.T) {
		r := initResources(t)
		defer r.close()

		assert.NoError(t, r.driver.Save(r.ctx, []model.Title{{ID: "tt1", Title: "Heat"}}))
		assert.NoError(t, r.driver.Save(r.ctx, []model.Title{{ID: "tt2", Title: "Ronin"}}))

		titles, err := r.driver.Load(r.ctx)
		assert.NoError(t, err)
		if assert.Len(t, titles, 1) {
			assert.Equal(t, "tt2", titles[0].ID)
		}
	})
}

func (s *WatchlistRedisUnitSuite) TestLoad(t provider.T) {
	t.Parallel()

	year := 1997
	testCases := []struct {
		name          string
		seed          func(r *resources)
		expected      []model.Title
		expectedError error
	}{
		{
			name: "Should keep order and fields",
			seed: func(r *resources) {
				_ = r.driver.Save(r.ctx, []model.Title{
					{ID: "Face/Off", Title: "Face/Off", Kind: model.KindMovie, StartYear: &year},
					{ID: "tt0903747", Title: "Breaking Bad", Kind: model.KindTVShow, Genres: []string{"Crime"}},
				})
			},
			expected: []model.Title{
				{ID: "Face/Off", Title: "Face/Off", Kind: model.KindMovie, StartYear: &year},
				{ID: "tt0903747", Title: "Breaking Bad", Kind: model.KindTVShow, Genres: []string{"Crime"}},
			},
		},
		{
			name:     "Should return nothing for missing key",
			seed:     func(r *resources) {},
			expected: nil,
		},
		{
			name: "Should return empty list for empty snapshot",
			seed: func(r *resources) {
				_ = r.driver.Save(r.ctx, nil)
			},
			expected: []model.Title{},
		},
		{
			name: "Should reject corrupted snapshot",
			seed: func(r *resources) {
				_ = r.server.Set(validKey(), "{not json")
			},
			expectedError: ErrCorruptedSnapshot,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initResources(t)
			defer r.close()
			tc.seed(r)

			titles, err := r.driver.Load(r.ctx)

			if tc.expectedError != nil {
				assert.ErrorIs(t, err, tc.expectedError)
				assert.Nil(t, titles)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, titles)
		})
	}
}

func (s *WatchlistRedisUnitSuite) TestRedisDown(t provider.T) {
	r := initResources(t)
	r.close()

	assert.Error(t, r.driver.Save(r.ctx, nil))
	_, err := r.driver.Load(r.ctx)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrCorruptedSnapshot)
}

func TestUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(WatchlistRedisUnitSuite))
}
