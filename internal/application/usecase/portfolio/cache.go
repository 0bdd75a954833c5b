package portfolio

import (
	"context"
	"sort"
	"sync"

	"go.opentelemetry.io/otel"

	"github.com/khoahotran/folio-sync/internal/domain/portfolio"
	"github.com/khoahotran/folio-sync/pkg/logger"
)

// Fetcher is the slice of the REST client the cache reads through.
type Fetcher interface {
	GetPortfolio(ctx context.Context) (portfolio.Portfolio, error)
	ListReferences(ctx context.Context) ([]portfolio.Reference, error)
}

var tracer = otel.Tracer("portfolio_usecase")

// Cache holds the last known good portfolio snapshot. Refresh replaces the
// whole snapshot atomically; there is no partial merge, so whichever refresh
// completes last wins. All derived views are pure projections of the current
// snapshot. Mutations reach the snapshot only through the coordinators.
type Cache struct {
	mu       sync.Mutex
	api      Fetcher
	logger   logger.Logger
	snapshot *portfolio.Portfolio
	fetching int
	err      error
}

func NewCache(api Fetcher, log logger.Logger) *Cache {
	return &Cache{api: api, logger: log}
}

// Refresh re-fetches the caller's own portfolio. Overlapping calls are not
// deduplicated; callers who care about request amplification must serialize.
func (c *Cache) Refresh(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "Cache.Refresh")
	defer span.End()

	c.mu.Lock()
	c.fetching++
	c.mu.Unlock()

	p, err := c.api.GetPortfolio(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.fetching--
	if err != nil {
		span.RecordError(err)
		c.err = err
		return err
	}
	c.snapshot = &p
	c.err = nil
	return nil
}

// RefreshReferences is the explicit escape hatch for servers that paginate
// references. It swaps only the references collection inside the snapshot;
// everything else still derives from the one aggregate fetch.
func (c *Cache) RefreshReferences(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "Cache.RefreshReferences")
	defer span.End()

	refs, err := c.api.ListReferences(ctx)
	if err != nil {
		span.RecordError(err)
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.snapshot != nil {
		c.snapshot.References = refs
	}
	return nil
}

// Fetching reports whether any refresh is in flight.
func (c *Cache) Fetching() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fetching > 0
}

// Err returns the error of the most recent refresh, nil after a success.
func (c *Cache) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Loaded reports whether a snapshot has ever been fetched.
func (c *Cache) Loaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot != nil
}

// Portfolio returns a copy of the current snapshot. The zero value when
// nothing has been fetched yet.
func (c *Cache) Portfolio() portfolio.Portfolio {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.snapshot == nil {
		return portfolio.Portfolio{}
	}
	return *c.snapshot
}

// Experiences projects the snapshot's experiences, order-sorted.
func (c *Cache) Experiences() []portfolio.Experience {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.snapshot == nil {
		return nil
	}
	out := append([]portfolio.Experience(nil), c.snapshot.Experiences...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

// Education projects the snapshot's education entries, order-sorted.
func (c *Cache) Education() []portfolio.Education {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.snapshot == nil {
		return nil
	}
	out := append([]portfolio.Education(nil), c.snapshot.Education...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

// Skills projects the snapshot's skills in insertion order.
func (c *Cache) Skills() []portfolio.Skill {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.snapshot == nil {
		return nil
	}
	return append([]portfolio.Skill(nil), c.snapshot.Skills...)
}

// SkillsByLevel groups skills by level, preserving their original relative
// order within each group.
func (c *Cache) SkillsByLevel() map[portfolio.Level][]portfolio.Skill {
	skills := c.Skills()
	if skills == nil {
		return nil
	}
	grouped := make(map[portfolio.Level][]portfolio.Skill)
	for _, s := range skills {
		grouped[s.Level] = append(grouped[s.Level], s)
	}
	return grouped
}

// References projects the snapshot's references. References derive from the
// aggregate like every other sub-collection; see RefreshReferences for the
// paginating-server escape hatch.
func (c *Cache) References() []portfolio.Reference {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.snapshot == nil {
		return nil
	}
	return append([]portfolio.Reference(nil), c.snapshot.References...)
}

// replaceSnapshot installs a server-returned aggregate. Coordinators use it
// when a mutation response carries the whole portfolio.
func (c *Cache) replaceSnapshot(p portfolio.Portfolio) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snapshot = &p
	c.err = nil
}
