package portfolio

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/folio-sync/internal/domain/portfolio"
	"github.com/khoahotran/folio-sync/pkg/apperror"
	"github.com/khoahotran/folio-sync/pkg/logger"
)

type fakeFetcher struct {
	mu       sync.Mutex
	snapshot portfolio.Portfolio
	refs     []portfolio.Reference
	err      error
	block    chan struct{} // when set, GetPortfolio waits on it
	calls    int
}

func (f *fakeFetcher) GetPortfolio(ctx context.Context) (portfolio.Portfolio, error) {
	f.mu.Lock()
	f.calls++
	block := f.block
	snap, err := f.snapshot, f.err
	f.mu.Unlock()

	if block != nil {
		<-block
	}
	return snap, err
}

func (f *fakeFetcher) ListReferences(ctx context.Context) ([]portfolio.Reference, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.refs, f.err
}

func samplePortfolio() portfolio.Portfolio {
	return portfolio.Portfolio{
		ID:       uuid.New(),
		Headline: "Engineer",
		Experiences: []portfolio.Experience{
			{ID: uuid.New(), Title: "Second", Company: "B", StartDate: "2022-01-01", Order: 2},
			{ID: uuid.New(), Title: "First", Company: "A", StartDate: "2020-01-01", Order: 1},
		},
		Skills: []portfolio.Skill{
			{ID: uuid.New(), Name: "Go", Level: portfolio.LevelExpert},
			{ID: uuid.New(), Name: "SQL", Level: portfolio.LevelBeginner},
			{ID: uuid.New(), Name: "Kubernetes", Level: portfolio.LevelExpert},
		},
		References: []portfolio.Reference{
			{ID: uuid.New(), Name: "Jane Doe"},
		},
	}
}

func TestRefreshIsIdempotentRead(t *testing.T) {
	fetcher := &fakeFetcher{snapshot: samplePortfolio()}
	cache := NewCache(fetcher, logger.NewNop())

	require.NoError(t, cache.Refresh(context.Background()))
	first := cache.Portfolio()

	require.NoError(t, cache.Refresh(context.Background()))
	second := cache.Portfolio()

	assert.Equal(t, first, second)
	assert.Equal(t, 2, fetcher.calls, "overlapping refreshes are not deduplicated")
}

func TestFetchingSpansTheWholeInFlightWindow(t *testing.T) {
	fetcher := &fakeFetcher{snapshot: samplePortfolio(), block: make(chan struct{})}
	cache := NewCache(fetcher, logger.NewNop())

	done := make(chan error, 1)
	go func() { done <- cache.Refresh(context.Background()) }()

	assert.Eventually(t, cache.Fetching, time.Second, time.Millisecond)

	close(fetcher.block)
	require.NoError(t, <-done)
	assert.False(t, cache.Fetching())
	assert.True(t, cache.Loaded())
}

func TestRefreshFailureKeepsLastGoodSnapshot(t *testing.T) {
	fetcher := &fakeFetcher{snapshot: samplePortfolio()}
	cache := NewCache(fetcher, logger.NewNop())
	require.NoError(t, cache.Refresh(context.Background()))
	good := cache.Portfolio()

	fetcher.mu.Lock()
	fetcher.err = apperror.NewNetwork("request failed", errors.New("refused"))
	fetcher.mu.Unlock()

	err := cache.Refresh(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(cache.Err(), apperror.ErrNetwork))
	assert.Equal(t, good, cache.Portfolio(), "cache stays at last reconciled value")

	fetcher.mu.Lock()
	fetcher.err = nil
	fetcher.mu.Unlock()
	require.NoError(t, cache.Refresh(context.Background()))
	assert.NoError(t, cache.Err())
}

func TestViewsAreNilBeforeFirstLoad(t *testing.T) {
	cache := NewCache(&fakeFetcher{}, logger.NewNop())
	assert.False(t, cache.Loaded())
	assert.Nil(t, cache.Experiences())
	assert.Nil(t, cache.Skills())
	assert.Nil(t, cache.SkillsByLevel())
	assert.Nil(t, cache.References())
}

func TestExperiencesSortedByOrder(t *testing.T) {
	cache := NewCache(&fakeFetcher{snapshot: samplePortfolio()}, logger.NewNop())
	require.NoError(t, cache.Refresh(context.Background()))

	exps := cache.Experiences()
	require.Len(t, exps, 2)
	assert.Equal(t, "First", exps[0].Title)
	assert.Equal(t, "Second", exps[1].Title)
}

func TestSkillsGroupedByLevelKeepRelativeOrder(t *testing.T) {
	cache := NewCache(&fakeFetcher{snapshot: samplePortfolio()}, logger.NewNop())
	require.NoError(t, cache.Refresh(context.Background()))

	grouped := cache.SkillsByLevel()
	require.Len(t, grouped, 2)

	experts := grouped[portfolio.LevelExpert]
	require.Len(t, experts, 2)
	assert.Equal(t, "Go", experts[0].Name)
	assert.Equal(t, "Kubernetes", experts[1].Name)

	require.Len(t, grouped[portfolio.LevelBeginner], 1)
	assert.Equal(t, "SQL", grouped[portfolio.LevelBeginner][0].Name)
}

func TestRefreshReferencesSwapsOnlyReferences(t *testing.T) {
	fetcher := &fakeFetcher{snapshot: samplePortfolio()}
	cache := NewCache(fetcher, logger.NewNop())
	require.NoError(t, cache.Refresh(context.Background()))
	before := cache.Portfolio()

	fetcher.mu.Lock()
	fetcher.refs = []portfolio.Reference{
		{ID: uuid.New(), Name: "New Ref"},
		{ID: uuid.New(), Name: "Another Ref"},
	}
	fetcher.mu.Unlock()

	require.NoError(t, cache.RefreshReferences(context.Background()))

	refs := cache.References()
	require.Len(t, refs, 2)
	assert.Equal(t, "New Ref", refs[0].Name)
	assert.Equal(t, before.Headline, cache.Portfolio().Headline)
	assert.Len(t, cache.Experiences(), len(before.Experiences), "experiences untouched")
}
