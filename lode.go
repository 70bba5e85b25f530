package lode

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/cenkalti/backoff/v4"
	"github.com/quarryworks/lode/internal/logging"
	"github.com/quarryworks/lode/internal/vein"
	"github.com/quarryworks/lode/pkg/behavior"
	"github.com/quarryworks/lode/pkg/domain"
	"github.com/quarryworks/lode/pkg/ports"
)

// Version is the library version, reported by the CLI.
const Version = "0.3.0"

// Excavator is the high-level entry point for the lode library. It wraps
// the internal traversal driver and adds logging, lifecycle hooks,
// optional per-tick persistence, and an explicit retry policy for
// failing ticks.
type Excavator struct {
	rig      ports.Rig
	driver   *vein.Excavate
	registry *behavior.Registry

	logger    *slog.Logger
	hooks     domain.LifecycleHooks
	store     ports.StateStore
	sessionID string
	retry     backoff.BackOff

	denylist *domain.Denylist
}

// Option defines a functional option for configuring the Excavator.
type Option func(*Excavator)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Excavator) {
		e.logger = logger
	}
}

// WithHooks registers observability hooks.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Excavator) {
		e.hooks = hooks
	}
}

// WithDenylist replaces the default terrain classifier for a new
// excavation. Restore rejects it: a restored excavation keeps the
// classifier persisted in its snapshot.
func WithDenylist(deny *domain.Denylist) Option {
	return func(e *Excavator) {
		e.denylist = deny
	}
}

// WithStore enables durable execution: after every tick the excavator
// saves a snapshot under sessionID, so a crashed host resumes at the
// exact frame it was about to execute.
func WithStore(store ports.StateStore, sessionID string) Option {
	return func(e *Excavator) {
		e.store = store
		e.sessionID = sessionID
	}
}

// WithRetryPolicy sets the backoff policy Run consults after a failing
// tick. The default is a capped exponential backoff; pass
// &backoff.StopBackOff{} to fail fast instead of retrying.
func WithRetryPolicy(policy backoff.BackOff) Option {
	return func(e *Excavator) {
		e.retry = policy
	}
}

// WithRegistry replaces the node-type registry used for persistence.
// Hosts embedding excavations inside larger action trees register their
// own node types on it.
func WithRegistry(reg *behavior.Registry) Option {
	return func(e *Excavator) {
		e.registry = reg
	}
}

// New initializes an Excavator that will excavate the vein starting at
// the cell in dir, relative to the agent's pose at first tick.
func New(rig ports.Rig, dir domain.Direction, opts ...Option) (*Excavator, error) {
	if rig == nil {
		return nil, fmt.Errorf("lode: rig is required")
	}

	exc := &Excavator{rig: rig}
	for _, opt := range opts {
		opt(exc)
	}
	exc.applyDefaults()

	driver, err := vein.New(dir, exc.denylist)
	if err != nil {
		return nil, err
	}
	driver.SetObserver(exc.logger, exc.hooks)
	exc.driver = driver

	return exc, nil
}

// Restore rebuilds an Excavator from a persisted snapshot. The rig is
// rebound by the host; everything else, including the mid-flight work
// stack, comes from the snapshot, so the resumed excavator performs the
// exact same actions as one that was never interrupted.
func Restore(rig ports.Rig, snap *domain.Snapshot, opts ...Option) (*Excavator, error) {
	if rig == nil {
		return nil, fmt.Errorf("lode: rig is required")
	}
	if snap == nil {
		return nil, fmt.Errorf("lode: snapshot is required")
	}
	if snap.Version > domain.SnapshotVersion {
		return nil, fmt.Errorf("lode: snapshot version %d is newer than supported %d", snap.Version, domain.SnapshotVersion)
	}

	exc := &Excavator{rig: rig}
	for _, opt := range opts {
		opt(exc)
	}
	if exc.denylist != nil {
		return nil, fmt.Errorf("lode: the classifier travels with the snapshot and cannot be replaced on restore")
	}
	exc.applyDefaults()

	action, err := exc.registry.Decode(snap.Root)
	if err != nil {
		return nil, fmt.Errorf("lode: decode snapshot: %w", err)
	}
	driver, ok := action.(*vein.Excavate)
	if !ok {
		return nil, fmt.Errorf("lode: snapshot root is %T, not an excavation", action)
	}
	driver.SetObserver(exc.logger, exc.hooks)
	exc.driver = driver

	return exc, nil
}

func (e *Excavator) applyDefaults() {
	if e.logger == nil {
		e.logger = logging.NewNop()
	}
	if e.denylist == nil {
		e.denylist = domain.DefaultDenylist()
	}
	if e.registry == nil {
		e.registry = behavior.NewRegistry()
		vein.Register(e.registry)
	}
	if e.retry == nil {
		e.retry = defaultRetryPolicy()
	}
}

// Tick advances the excavation by one bounded step and, when a store is
// configured, persists the resulting state. The persisted snapshot
// always reflects the state after the tick, including a preserved
// failing frame.
func (e *Excavator) Tick(ctx context.Context) (domain.Result, error) {
	res, err := e.driver.Tick(ctx, e.rig)
	if err != nil {
		return res, err
	}

	if e.store != nil {
		if saveErr := e.save(ctx); saveErr != nil {
			return res, fmt.Errorf("lode: persist session %s: %w", e.sessionID, saveErr)
		}
	}
	return res, nil
}

// Snapshot serializes the full excavation state: direction, classifier,
// and the ordered stack of pending frames, if any.
func (e *Excavator) Snapshot() (*domain.Snapshot, error) {
	root, err := json.Marshal(e.driver)
	if err != nil {
		return nil, fmt.Errorf("lode: encode state: %w", err)
	}
	return domain.NewSnapshot(root), nil
}

func (e *Excavator) save(ctx context.Context) error {
	snap, err := e.Snapshot()
	if err != nil {
		return err
	}
	return e.store.Save(ctx, e.sessionID, snap)
}

// Active reports whether a traversal is in progress.
func (e *Excavator) Active() bool {
	return e.driver.Active()
}

// Depth returns the number of pending work frames.
func (e *Excavator) Depth() int {
	return e.driver.Depth()
}

// Direction returns the initial sensing direction.
func (e *Excavator) Direction() domain.Direction {
	return e.driver.Direction()
}

// Denylist returns the classifier the excavation consults.
func (e *Excavator) Denylist() *domain.Denylist {
	return e.driver.Denylist()
}
