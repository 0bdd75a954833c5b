package portfolio

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/folio-sync/internal/domain/portfolio"
	"github.com/khoahotran/folio-sync/pkg/logger"
)

type fakePortfolioAPI struct {
	mu      sync.Mutex
	patches []portfolio.Patch
	fired   chan struct{}
}

func (f *fakePortfolioAPI) UpdatePortfolio(ctx context.Context, patch portfolio.Patch) (portfolio.Portfolio, error) {
	f.mu.Lock()
	f.patches = append(f.patches, patch)
	f.mu.Unlock()
	f.fired <- struct{}{}

	p := portfolio.Portfolio{}
	if patch.Summary != nil {
		p.Summary = *patch.Summary
	}
	if patch.Headline != nil {
		p.Headline = *patch.Headline
	}
	return p, nil
}

func TestTypingProducesExactlyOnePatch(t *testing.T) {
	api := &fakePortfolioAPI{fired: make(chan struct{}, 4)}
	cache := loadedCache(t, samplePortfolio())
	fs := NewProfileFieldSync(api, cache, WithQuietPeriod(40*time.Millisecond), WithFieldLogger(logger.NewNop()))
	defer fs.Close()

	for _, v := range []string{"H", "He", "Hel", "Hell", "Hello"} {
		fs.Set(FieldSummary, v)
	}

	select {
	case <-api.fired:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for patch")
	}

	api.mu.Lock()
	patches := append([]portfolio.Patch(nil), api.patches...)
	api.mu.Unlock()

	require.Len(t, patches, 1, "one PATCH for the whole burst")
	require.NotNil(t, patches[0].Summary)
	assert.Equal(t, "Hello", *patches[0].Summary)
	assert.Nil(t, patches[0].Headline, "untouched fields are omitted")

	// The server's response became the new snapshot.
	assert.Equal(t, "Hello", cache.Portfolio().Summary)
}
