package impl

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billmap/internal/domain/entity"
	domainerrors "billmap/internal/domain/errors"
	"billmap/internal/domain/repository"
	"billmap/internal/domain/service"
	"billmap/internal/usecase"
)

func newSearchService(provider *stubProvider) (usecase.SearchUsecase, repository.MapStateRepository) {
	cfg := newTestConfig()
	_, mapState := newTestStores(cfg)
	svc := NewSearchService(cfg, testLogger(), mapState, provider)
	return svc, mapState
}

func TestSearchService_Search_EmptyQuery(t *testing.T) {
	svc, _ := newSearchService(&stubProvider{})

	_, err := svc.Search(context.Background(), &usecase.SearchInput{Query: "   "})
	assert.ErrorIs(t, err, domainerrors.ErrEmptyQuery)
}

func TestSearchService_Search_FiltersByQueryTokens(t *testing.T) {
	provider := &stubProvider{pages: []service.TextSearchPage{{
		Places: []entity.Place{
			{Name: "Profi City Cluj"},
			{Name: "Profi Loco"},
			{Name: "Mega Image City"},
		},
	}}}
	svc, _ := newSearchService(provider)

	places, err := svc.Search(context.Background(), &usecase.SearchInput{Query: "profi city"})
	require.NoError(t, err)
	require.Len(t, places, 1, "every query token must appear in the name")
	assert.Equal(t, "Profi City Cluj", places[0].Name)
	assert.True(t, places[0].Visible)
}

func TestSearchService_Search_FollowsPagination(t *testing.T) {
	provider := &stubProvider{pages: []service.TextSearchPage{
		{Places: []entity.Place{{Name: "Profi Unu"}}, NextPageToken: "page2"},
		{Places: []entity.Place{{Name: "Profi Doi"}}, NextPageToken: "page3"},
		{Places: []entity.Place{{Name: "Profi Trei"}}},
	}}
	svc, mapState := newSearchService(provider)

	places, err := svc.Search(context.Background(), &usecase.SearchInput{Query: "profi"})
	require.NoError(t, err)
	assert.Len(t, places, 3)
	assert.Equal(t, 3, provider.calls())
	assert.Len(t, mapState.Places(), 3)
}

func TestSearchService_Search_KeepExistingAppends(t *testing.T) {
	provider := &stubProvider{pages: []service.TextSearchPage{
		{Places: []entity.Place{{Name: "Profi Unu"}}},
		{Places: []entity.Place{{Name: "Kaufland Doi"}}},
	}}
	svc, _ := newSearchService(provider)
	ctx := context.Background()

	_, err := svc.Search(ctx, &usecase.SearchInput{Query: "profi"})
	require.NoError(t, err)

	places, err := svc.Search(ctx, &usecase.SearchInput{Query: "kaufland", KeepExisting: true})
	require.NoError(t, err)
	assert.Len(t, places, 2)
}

func TestSearchService_Search_ReplaceDropsPrevious(t *testing.T) {
	provider := &stubProvider{pages: []service.TextSearchPage{
		{Places: []entity.Place{{Name: "Profi Unu"}}},
		{Places: []entity.Place{{Name: "Kaufland Doi"}}},
	}}
	svc, _ := newSearchService(provider)
	ctx := context.Background()

	_, err := svc.Search(ctx, &usecase.SearchInput{Query: "profi"})
	require.NoError(t, err)

	places, err := svc.Search(ctx, &usecase.SearchInput{Query: "kaufland"})
	require.NoError(t, err)
	require.Len(t, places, 1)
	assert.Equal(t, "Kaufland Doi", places[0].Name)
}

func TestSearchService_Refresh_RerunsLastSearch(t *testing.T) {
	provider := &stubProvider{pages: []service.TextSearchPage{
		{Places: []entity.Place{{Name: "Profi Unu"}}},
		{Places: []entity.Place{{Name: "Profi Doi"}}},
	}}
	svc, mapState := newSearchService(provider)

	_, err := svc.Search(context.Background(), &usecase.SearchInput{Query: "profi"})
	require.NoError(t, err)
	require.Equal(t, 1, provider.calls())

	svc.Refresh()

	assert.Eventually(t, func() bool {
		return provider.calls() == 2
	}, time.Second, 5*time.Millisecond)

	assert.Eventually(t, func() bool {
		places := mapState.Places()
		return len(places) == 1 && places[0].Name == "Profi Doi"
	}, time.Second, 5*time.Millisecond)
}

func TestSearchService_Refresh_WithoutPriorSearchIsNoop(t *testing.T) {
	provider := &stubProvider{}
	svc, _ := newSearchService(provider)

	svc.Refresh()
	time.Sleep(50 * time.Millisecond)
	assert.Zero(t, provider.calls())
}

func TestSearchService_ClearPlaces(t *testing.T) {
	provider := &stubProvider{pages: []service.TextSearchPage{
		{Places: []entity.Place{{Name: "Profi Unu"}}},
	}}
	svc, mapState := newSearchService(provider)
	ctx := context.Background()

	_, err := svc.Search(ctx, &usecase.SearchInput{Query: "profi"})
	require.NoError(t, err)
	require.Len(t, mapState.Places(), 1)

	require.NoError(t, svc.ClearPlaces(ctx))
	assert.Empty(t, mapState.Places())
}
