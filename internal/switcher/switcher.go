// Package switcher scopes the activation of per-executable settings around a
// unit of work.
//
// At most one target's context is active at a time. The first call for a
// target (the outer activation) publishes that target's override, or keeps
// the baseline when none exists, and the context is restored to the baseline
// when that call returns, panics, or is abandoned through a cancelled
// context. While an activation is open it may be re-entered by its owner
// for the same target; any other caller is rejected with ErrUsageViolation.
//
// Only the bookkeeping runs under the switcher's lock. The work itself does
// not, so callers that need to run different targets concurrently must
// schedule them one after the other; the switcher detects overlap but does
// not queue.
//
// Current does not take the lock: it loads the published context from an
// atomic pointer. Contexts are immutable, so a reader always sees a complete
// context, but a reader racing with a switch may see the context from just
// before or just after it. Code that must see the context of its own
// activation should read Current from inside the work function.
package switcher

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/AbdelazizMoustafa10m/gtadapter/internal/logging"
	"github.com/AbdelazizMoustafa10m/gtadapter/internal/settings"
)

// ErrUsageViolation marks a caller bug: overlapping activations for
// different targets or owners. It is never retried.
var ErrUsageViolation = errors.New("settings context usage violation")

// Provider supplies contexts; *settings.Store implements it. It is only
// read.
type Provider interface {
	Baseline() *settings.Options
	Override(target string) (*settings.Options, bool)
}

// Option configures a Switcher.
type Option func(*Switcher)

// WithLogger sets the diagnostics logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Switcher) { s.logger = l }
}

// WithMetrics records activations in m.
func WithMetrics(m *Metrics) Option {
	return func(s *Switcher) { s.metrics = m }
}

// Switcher owns the active execution state. Create one per settings store
// and pass it to everything that runs work for an executable.
type Switcher struct {
	provider Provider
	logger   *log.Logger
	metrics  *Metrics

	mu     sync.Mutex
	depth  int
	target string
	owner  Owner

	// active is stored only while mu is held and loaded without it.
	active atomic.Pointer[settings.Options]
}

// New returns a Switcher with the provider's baseline active.
func New(provider Provider, opts ...Option) *Switcher {
	s := &Switcher{provider: provider}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logging.New("switcher")
	}
	s.active.Store(provider.Baseline())
	return s
}

// Current returns the active context. See the package doc for the
// consistency it provides.
func (s *Switcher) Current() *settings.Options {
	return s.active.Load()
}

// Baseline returns the provider's solution-wide context.
func (s *Switcher) Baseline() *settings.Options {
	return s.provider.Baseline()
}

// Active reports the target of the open activation and its depth. An idle
// switcher returns "" and 0.
func (s *Switcher) Active() (target string, depth int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.target, s.depth
}

// RunWithOverride runs work with target's context active. ctx identifies the
// caller: a ctx without an Owner starts a new owner, and work receives a ctx
// carrying it, so nested calls made with that ctx re-enter the activation.
//
// The error returned by work is returned unchanged. Restoration happens on
// every exit path before RunWithOverride returns or the panic continues.
func (s *Switcher) RunWithOverride(ctx context.Context, target string, work func(ctx context.Context) error) error {
	if target == "" {
		return fmt.Errorf("%w: empty target", ErrUsageViolation)
	}

	owner, ok := OwnerFrom(ctx)
	if !ok {
		owner = NewOwner()
		ctx = WithOwner(ctx, owner)
	}

	if err := s.enter(target, owner); err != nil {
		return err
	}
	defer s.exit()

	return work(ctx)
}

func (s *Switcher) enter(target string, owner Owner) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.depth > 0 {
		if owner != s.owner || target != s.target {
			s.metrics.violation()
			return fmt.Errorf("%w: target %q requested by owner %d while target %q is active for owner %d",
				ErrUsageViolation, target, owner, s.target, s.owner)
		}
		s.depth++
		s.metrics.setDepth(s.depth)
		return nil
	}

	if o, found := s.provider.Override(target); found {
		s.active.Store(o)
		s.metrics.activated("override")
		if s.debugEnabled() {
			s.logger.Debugf("switched to override for target %s: %s", target, settings.Summary(o))
		}
	} else {
		baseline := s.provider.Baseline()
		s.active.Store(baseline)
		s.metrics.activated("baseline")
		if s.debugEnabled() {
			s.logger.Debugf("no override for target %s; using baseline: %s", target, settings.Summary(baseline))
		}
	}

	s.target = target
	s.owner = owner
	s.depth = 1
	s.metrics.setDepth(s.depth)
	return nil
}

func (s *Switcher) exit() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.depth--
	if s.depth < 0 {
		s.depth = 0
		panic("switcher: activation depth went negative; exit without matching enter")
	}
	s.metrics.setDepth(s.depth)
	if s.depth > 0 {
		return
	}

	s.target = ""
	s.owner = 0

	baseline := s.provider.Baseline()
	if s.active.Load() == baseline {
		return
	}
	s.active.Store(baseline)
	s.metrics.restored()
	if s.debugEnabled() {
		s.logger.Debugf("restored baseline: %s", settings.Summary(baseline))
	}
}

func (s *Switcher) debugEnabled() bool {
	return s.logger.GetLevel() <= log.DebugLevel
}
