package portfolio

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/khoahotran/folio-sync/pkg/logger"
)

const defaultQuietPeriod = 500 * time.Millisecond

// CommitFunc pushes the latest values of the dirty fields to the server.
type CommitFunc func(ctx context.Context, fields map[string]any) error

// FieldSync buffers rapid edits to free-text portfolio fields and commits a
// single write after a quiet period (trailing-edge debounce). The local
// shadow value updates on every keystroke; a commit failure is surfaced
// through the error handler without rolling the shadow back, so nothing the
// user typed disappears.
type FieldSync struct {
	mu      sync.Mutex
	commit  CommitFunc
	quiet   time.Duration
	onError func(error)
	logger  logger.Logger

	shadow map[string]any
	dirty  map[string]any
	timer  *time.Timer
	gen    uint64
	closed bool
}

type FieldSyncOption func(*FieldSync)

// WithQuietPeriod overrides the 500ms default.
func WithQuietPeriod(d time.Duration) FieldSyncOption {
	return func(fs *FieldSync) { fs.quiet = d }
}

// WithErrorHandler receives commit failures from timer-driven writes.
func WithErrorHandler(fn func(error)) FieldSyncOption {
	return func(fs *FieldSync) { fs.onError = fn }
}

func WithFieldLogger(log logger.Logger) FieldSyncOption {
	return func(fs *FieldSync) { fs.logger = log }
}

func NewFieldSync(commit CommitFunc, opts ...FieldSyncOption) *FieldSync {
	fs := &FieldSync{
		commit:  commit,
		quiet:   defaultQuietPeriod,
		onError: func(error) {},
		logger:  logger.NewNop(),
		shadow:  make(map[string]any),
		dirty:   make(map[string]any),
	}
	for _, opt := range opts {
		opt(fs)
	}
	return fs
}

// Set records the keystroke in the local shadow immediately and re-arms the
// quiet-period timer. Repeated calls within the quiet period coalesce into
// one eventual commit carrying each field's latest value.
func (fs *FieldSync) Set(field string, value any) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if fs.closed {
		return
	}

	fs.shadow[field] = value
	fs.dirty[field] = value

	fs.gen++
	gen := fs.gen
	if fs.timer != nil {
		fs.timer.Stop()
	}
	fs.timer = time.AfterFunc(fs.quiet, func() { fs.fire(gen) })
}

// Value reads the local shadow, which reflects the latest Set regardless of
// commit state.
func (fs *FieldSync) Value(field string) (any, bool) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	v, ok := fs.shadow[field]
	return v, ok
}

// fire runs when the quiet period elapses. The generation check discards
// timers that were superseded by a later Set, Flush, or Close while this one
// was already scheduled.
func (fs *FieldSync) fire(gen uint64) {
	fs.mu.Lock()
	if fs.closed || gen != fs.gen || len(fs.dirty) == 0 {
		fs.mu.Unlock()
		return
	}
	pending := fs.dirty
	fs.dirty = make(map[string]any)
	fs.mu.Unlock()

	if err := fs.commit(context.Background(), pending); err != nil {
		fs.logger.Error("debounced field commit failed", err, zap.Int("fields", len(pending)))
		fs.onError(err)
	}
}

// Flush commits any pending edits immediately, cancelling the armed timer.
// A no-op when nothing is dirty.
func (fs *FieldSync) Flush(ctx context.Context) error {
	fs.mu.Lock()
	if fs.closed {
		fs.mu.Unlock()
		return nil
	}
	fs.gen++
	if fs.timer != nil {
		fs.timer.Stop()
		fs.timer = nil
	}
	if len(fs.dirty) == 0 {
		fs.mu.Unlock()
		return nil
	}
	pending := fs.dirty
	fs.dirty = make(map[string]any)
	fs.mu.Unlock()

	return fs.commit(ctx, pending)
}

// Close cancels any pending timer without committing. Edits made after the
// owning surface is torn down must never produce a write, so this runs
// before the surface goes away.
func (fs *FieldSync) Close() {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.closed = true
	fs.gen++
	if fs.timer != nil {
		fs.timer.Stop()
		fs.timer = nil
	}
	fs.dirty = make(map[string]any)
}
