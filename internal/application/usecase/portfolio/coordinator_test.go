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

type fakeExperienceAPI struct {
	mu       sync.Mutex
	calls    int
	err      error
	block    chan struct{}
	lastSent portfolio.Experience
}

func (f *fakeExperienceAPI) AddExperience(ctx context.Context, e portfolio.Experience) (portfolio.Experience, error) {
	f.mu.Lock()
	f.calls++
	f.lastSent = e
	block, err := f.block, f.err
	f.mu.Unlock()

	if block != nil {
		<-block
	}
	if err != nil {
		return portfolio.Experience{}, err
	}
	e.ID = uuid.New()
	return e, nil
}

func (f *fakeExperienceAPI) UpdateExperience(ctx context.Context, id string, e portfolio.Experience) (portfolio.Experience, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.lastSent = e
	if f.err != nil {
		return portfolio.Experience{}, f.err
	}
	e.ID = uuid.MustParse(id)
	return e, nil
}

func (f *fakeExperienceAPI) DeleteExperience(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.err
}

type fakeReferenceAPI struct {
	err   error
	calls int
}

func (f *fakeReferenceAPI) AddReference(ctx context.Context, r portfolio.Reference) (portfolio.Reference, error) {
	f.calls++
	if f.err != nil {
		return portfolio.Reference{}, f.err
	}
	r.ID = uuid.New()
	return r, nil
}

func (f *fakeReferenceAPI) UpdateReference(ctx context.Context, id string, r portfolio.Reference) (portfolio.Reference, error) {
	f.calls++
	if f.err != nil {
		return portfolio.Reference{}, f.err
	}
	r.ID = uuid.MustParse(id)
	return r, nil
}

func (f *fakeReferenceAPI) DeleteReference(ctx context.Context, id string) error {
	f.calls++
	return f.err
}

func loadedCache(t *testing.T, snap portfolio.Portfolio) *Cache {
	t.Helper()
	cache := NewCache(&fakeFetcher{snapshot: snap}, logger.NewNop())
	require.NoError(t, cache.Refresh(context.Background()))
	return cache
}

func TestAddExperienceInvalidInputMakesNoNetworkCall(t *testing.T) {
	api := &fakeExperienceAPI{}
	cache := loadedCache(t, samplePortfolio())
	coord := NewExperienceCoordinator(api, cache, logger.NewNop())
	before := cache.Experiences()

	_, err := coord.Add(context.Background(), portfolio.Experience{Title: "Engineer"}) // no company
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrInvalidInput))
	assert.Equal(t, 0, api.calls)
	assert.Equal(t, before, cache.Experiences(), "no state change on validation failure")
	assert.False(t, coord.Submitting())
}

func TestAddExperienceSuccessAppendsToCache(t *testing.T) {
	api := &fakeExperienceAPI{}
	cache := loadedCache(t, samplePortfolio())
	coord := NewExperienceCoordinator(api, cache, logger.NewNop())

	created, err := coord.Add(context.Background(), portfolio.Experience{
		Title:     "Engineer",
		Company:   "Acme",
		StartDate: "2020-01-01",
		Current:   true,
		Order:     3,
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)

	exps := cache.Experiences()
	require.Len(t, exps, 3)
	assert.Equal(t, "Engineer", exps[2].Title)
	assert.Empty(t, exps[2].EndDate)
}

func TestAddExperienceCurrentPrecedenceOverStaleEndDate(t *testing.T) {
	api := &fakeExperienceAPI{}
	coord := NewExperienceCoordinator(api, loadedCache(t, samplePortfolio()), logger.NewNop())

	_, err := coord.Add(context.Background(), portfolio.Experience{
		Title:     "Engineer",
		Company:   "Acme",
		StartDate: "2020-01-01",
		EndDate:   "2019-12-31", // stale form value
		Current:   true,
	})
	require.NoError(t, err)
	assert.Empty(t, api.lastSent.EndDate, "current flag wins over stale end date")
	assert.True(t, api.lastSent.Current)
}

func TestAtMostOneMutationInFlight(t *testing.T) {
	api := &fakeExperienceAPI{block: make(chan struct{})}
	coord := NewExperienceCoordinator(api, loadedCache(t, samplePortfolio()), logger.NewNop())

	valid := portfolio.Experience{Title: "Engineer", Company: "Acme", StartDate: "2020-01-01"}

	done := make(chan error, 1)
	go func() {
		_, err := coord.Add(context.Background(), valid)
		done <- err
	}()

	assert.Eventually(t, coord.Submitting, time.Second, time.Millisecond)

	_, err := coord.Add(context.Background(), valid)
	assert.ErrorIs(t, err, ErrBusy)
	assert.ErrorIs(t, coord.Remove(context.Background(), uuid.New()), ErrBusy)

	close(api.block)
	require.NoError(t, <-done)
	assert.False(t, coord.Submitting())
}

func TestAddFailurePreservesInputAndCache(t *testing.T) {
	api := &fakeExperienceAPI{err: apperror.NewAPIError(500, "boom", nil)}
	cache := loadedCache(t, samplePortfolio())
	coord := NewExperienceCoordinator(api, cache, logger.NewNop())
	before := cache.Experiences()

	form := portfolio.Experience{Title: "Engineer", Company: "Acme", StartDate: "2020-01-01", Description: "typed by user"}
	formCopy := form

	_, err := coord.Add(context.Background(), form)
	require.Error(t, err)
	assert.Equal(t, 500, apperror.StatusCode(err))
	assert.Equal(t, formCopy, form, "form input unchanged after failure")
	assert.Equal(t, before, cache.Experiences())
}

func TestUpdateReplacesMatchingEntry(t *testing.T) {
	snap := samplePortfolio()
	target := snap.Experiences[0]
	api := &fakeExperienceAPI{}
	cache := loadedCache(t, snap)
	coord := NewExperienceCoordinator(api, cache, logger.NewNop())

	edited := target
	edited.Title = "Renamed"
	_, err := coord.Update(context.Background(), target.ID, edited)
	require.NoError(t, err)

	var found bool
	for _, e := range cache.Experiences() {
		if e.ID == target.ID {
			found = true
			assert.Equal(t, "Renamed", e.Title)
		}
	}
	assert.True(t, found)
	assert.Len(t, cache.Experiences(), len(snap.Experiences))
}

func TestRemoveReferenceRejectedByServerStaysListed(t *testing.T) {
	snap := samplePortfolio()
	ref := snap.References[0]
	api := &fakeReferenceAPI{err: apperror.NewAPIError(404, "reference not found", nil)}
	cache := loadedCache(t, snap)
	coord := NewReferenceCoordinator(api, cache, logger.NewNop())

	err := coord.Remove(context.Background(), ref.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))

	refs := cache.References()
	require.Len(t, refs, 1)
	assert.Equal(t, ref.ID, refs[0].ID, "failed delete leaves the entry visible")
}

func TestRemoveReferenceSuccessDropsEntry(t *testing.T) {
	snap := samplePortfolio()
	ref := snap.References[0]
	cache := loadedCache(t, snap)
	coord := NewReferenceCoordinator(&fakeReferenceAPI{}, cache, logger.NewNop())

	require.NoError(t, coord.Remove(context.Background(), ref.ID))
	assert.Empty(t, cache.References())
}
