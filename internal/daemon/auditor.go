package daemon

import (
	"context"
	"log/slog"
	"time"
)

// AuditorConfig holds configuration for the auditor.
type AuditorConfig struct {
	Interval time.Duration
	Logger   *slog.Logger
}

// Auditor periodically cross-checks connection reference counts against the
// live frame table and reports drift. It never mutates state: a mismatch
// means a lifecycle bug, and silently "fixing" the count would hide it.
type Auditor struct {
	interval time.Duration
	core     *Core
	logger   *slog.Logger
}

// NewAuditor creates a new auditor over the daemon core.
func NewAuditor(cfg AuditorConfig, core *Core) *Auditor {
	interval := cfg.Interval
	if interval <= 0 {
		interval = 10 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Auditor{
		interval: interval,
		core:     core,
		logger:   logger,
	}
}

// Run starts the audit loop. Blocks until context is cancelled.
func (a *Auditor) Run(ctx context.Context) {
	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	a.logger.Info("auditor started", "interval", a.interval)

	for {
		select {
		case <-ctx.Done():
			a.logger.Info("auditor stopped")
			return
		case <-ticker.C:
			a.audit()
		}
	}
}

// audit performs a single audit pass.
func (a *Auditor) audit() {
	// Recover from panics to prevent crashing the daemon
	defer func() {
		if err := recover(); err != nil {
			a.logger.Error("auditor panic recovered", "error", err)
		}
	}()

	// Count live bindings per display
	bound := make(map[string]int)
	a.core.mu.Lock()
	for _, f := range a.core.frames {
		if conn, err := f.Connection(); err == nil {
			bound[conn.Name()]++
		}
	}
	a.core.mu.Unlock()

	// Same-name connections are legal, so refcounts aggregate per name
	counted := make(map[string]int)
	for _, info := range a.core.reg.List() {
		counted[info.Name] += info.RefCount
	}
	for name, total := range counted {
		expected := bound[name]
		delete(bound, name)
		if total != expected {
			a.logger.Warn("auditor: refcount drift",
				"display", name,
				"ref_count", total,
				"bound_frames", expected)
		}
	}

	// Frames bound to displays the registry no longer tracks
	for name, n := range bound {
		a.logger.Warn("auditor: frames bound to unlisted display",
			"display", name,
			"bound_frames", n)
	}
}

// AuditNow triggers an immediate audit pass.
func (a *Auditor) AuditNow() {
	a.audit()
}
