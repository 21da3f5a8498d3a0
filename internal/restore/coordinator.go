package restore

import (
	"log/slog"

	"github.com/1broseidon/framekeep/internal/frame"
	"github.com/1broseidon/framekeep/internal/snapshot"
)

// Options configures a Coordinator. The three phase flags are independent;
// a disabled phase is a no-op at its entry point.
type Options struct {
	Capture        bool
	ApplyPrimary   bool
	ApplySecondary bool
	TrackedKeys    []string
	Logger         *slog.Logger
}

// Coordinator owns the full restore state for one process: the retained
// secondary snapshots, the one-shot arming flag and the hook deregistration
// callback. All methods run on the host's event thread; the host dispatches
// lifecycle hooks serially, so no locking is needed.
type Coordinator struct {
	host   Host
	store  *snapshot.Store
	opts   Options
	logger *slog.Logger

	secondaries snapshot.Sequence
	armed       bool
	deregister  func()
}

func NewCoordinator(host Host, store *snapshot.Store, opts Options) *Coordinator {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Coordinator{
		host:   host,
		store:  store,
		opts:   opts,
		logger: logger,
	}
}

// SetDeregister installs the callback that removes the window-created hook.
// It is invoked at most once, after the first HandleWindowCreated run.
func (c *Coordinator) SetDeregister(fn func()) {
	c.deregister = fn
}

// Armed reports whether the window-created hook is still pending.
func (c *Coordinator) Armed() bool {
	return c.armed
}

// Capture snapshots the filtered attributes of every live window and saves
// the sequence, replacing any prior file. It returns whether a snapshot was
// written; failures are logged and never propagate, so process shutdown is
// never blocked.
func (c *Coordinator) Capture() bool {
	if !c.opts.Capture {
		return false
	}
	if !c.host.GraphicalSession() {
		c.logger.Debug("capture skipped: not a graphical session")
		return false
	}

	windows, err := c.host.ListWindows()
	if err != nil {
		c.logger.Warn("capture failed: could not list windows", "error", err)
		return false
	}

	seq := make(snapshot.Sequence, 0, len(windows))
	for _, w := range windows {
		attrs, err := c.host.Attributes(w)
		if err != nil {
			c.logger.Warn("capture: skipping window", "window", w, "error", err)
			continue
		}
		seq = append(seq, frame.Filter(attrs, c.opts.TrackedKeys))
	}

	if err := c.store.Save(seq); err != nil {
		c.logger.Warn("capture failed: could not save snapshots", "error", err)
		return false
	}
	c.logger.Info("captured frame snapshots", "windows", len(seq), "path", c.store.Path)
	return true
}

// ApplyPrimary loads the saved sequence and merges the primary snapshot into
// the host's initial-window configuration, so the first window the host opens
// already has the remembered geometry. Secondary snapshots are retained for
// HandleWindowCreated. Any load failure means a cold start: the host keeps
// its defaults and nothing is retained.
func (c *Coordinator) ApplyPrimary() {
	if !c.opts.ApplyPrimary {
		return
	}

	seq, err := c.store.Load()
	if err != nil {
		// ErrNotFound and ErrCorrupt alike: no prior state available.
		c.logger.Debug("no saved frame state", "error", err)
		return
	}
	if len(seq) == 0 {
		return
	}

	merged := frame.Merge(c.host.InitialWindowConfig(), seq.Primary())
	c.host.SetInitialWindowConfig(merged)
	c.secondaries = seq.Secondaries()
	c.armed = true
	c.logger.Info("applied primary frame snapshot",
		"keys", seq.Primary().Len(), "pending", len(c.secondaries))
}

// HandleWindowCreated runs once, on the first window the host creates after
// ApplyPrimary. Retained secondary snapshots whose attributes equal the new
// window's filtered attributes are dropped (the host already produced an
// identical window); the rest are recreated. The hook then disarms and
// deregisters itself for the remainder of the process.
func (c *Coordinator) HandleWindowCreated(w WindowID) {
	if !c.opts.ApplySecondary || !c.armed {
		return
	}
	c.armed = false
	if c.deregister != nil {
		c.deregister()
		c.deregister = nil
	}

	pending := c.secondaries
	c.secondaries = nil

	if attrs, err := c.host.Attributes(w); err != nil {
		c.logger.Warn("could not read new window attributes", "window", w, "error", err)
	} else {
		pending = c.dropMatching(pending, frame.Filter(attrs, c.opts.TrackedKeys))
	}

	for _, snap := range pending {
		if _, err := c.host.CreateWindow(snap); err != nil {
			c.logger.Warn("failed to recreate window", "error", err)
		}
	}
	if len(pending) > 0 {
		c.logger.Info("recreated secondary windows", "count", len(pending))
	}
}

// dropMatching removes every snapshot whose content equals attrs. Equality is
// compared by content fingerprint over the ordered entries.
func (c *Coordinator) dropMatching(seq snapshot.Sequence, attrs frame.Attributes) snapshot.Sequence {
	target, err := frame.Fingerprint(attrs)
	if err != nil {
		c.logger.Warn("could not fingerprint window attributes", "error", err)
		return seq
	}
	out := seq[:0]
	for _, snap := range seq {
		fp, err := frame.Fingerprint(snap)
		if err == nil && fp == target {
			continue
		}
		out = append(out, snap)
	}
	return out
}
