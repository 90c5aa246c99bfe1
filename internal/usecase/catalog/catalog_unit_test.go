package usecase_catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/humanbelnik/watchnext/internal/model"
	fetcher_mocks "github.com/humanbelnik/watchnext/internal/usecase/catalog/mocks/catalog/fetcher"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
)

type UsecaseCatalogUnitSuite struct {
	suite.Suite
}

func validPersonID() string {
	return "nm0000190"
}

func (s *UsecaseCatalogUnitSuite) TestBrowse(t provider.T) {
	t.Parallel()

	titles := []model.Title{{ID: "tt0092099", Title: "Top Gun", Kind: model.KindMovie}}

	testCases := []struct {
		name          string
		personID      string
		defaultID     string
		setupMocks    func(f *fetcher_mocks.CatalogFetcher)
		expected      []model.Title
		expectedError error
	}{
		{
			name:      "Should fetch requested person",
			personID:  "nm0000129",
			defaultID: validPersonID(),
			setupMocks: func(f *fetcher_mocks.CatalogFetcher) {
				f.On("FetchTitlesForPerson", context.Background(), "nm0000129").Return(titles, nil).Once()
			},
			expected: titles,
		},
		{
			name:      "Should fall back to default person",
			defaultID: validPersonID(),
			setupMocks: func(f *fetcher_mocks.CatalogFetcher) {
				f.On("FetchTitlesForPerson", context.Background(), validPersonID()).Return(titles, nil).Once()
			},
			expected: titles,
		},
		{
			name:          "Should reject when no person is known",
			setupMocks:    func(f *fetcher_mocks.CatalogFetcher) {},
			expectedError: ErrInvalidInput,
		},
		{
			name:      "Should wrap upstream failure",
			defaultID: validPersonID(),
			setupMocks: func(f *fetcher_mocks.CatalogFetcher) {
				f.On("FetchTitlesForPerson", context.Background(), validPersonID()).Return(nil, errors.New("timeout")).Once()
			},
			expectedError: ErrCatalogUnavailable,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			f := fetcher_mocks.NewCatalogFetcher(t)
			tc.setupMocks(f)
			uc := New(f, tc.defaultID)

			got, err := uc.Browse(context.Background(), tc.personID)

			if tc.expectedError != nil {
				assert.ErrorIs(t, err, tc.expectedError)
				assert.Nil(t, got)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tc.expected, got)
			}
			f.AssertExpectations(t)
		})
	}
}

func TestUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(UsecaseCatalogUnitSuite))
}
