package display

import (
	"fmt"

	"github.com/1broseidon/glyphbridge/internal/blockinput"
	"github.com/1broseidon/glyphbridge/internal/engine"
)

// EngineOpener builds a fresh engine handle for a new connection.
type EngineOpener func() (engine.Engine, error)

// Registry is the process-wide list of open display connections, newest
// first. All mutation happens inside the input-blocked guard; toolkit
// callbacks that fire mid-update therefore serialize against lifecycle
// operations instead of corrupting the list or the reference counts.
type Registry struct {
	guard       *blockinput.Guard
	openEngine  EngineOpener
	defaultName string

	// Owned ordered list. Index 0 is the most recently opened connection.
	conns []*Connection
}

// RegistryConfig configures a Registry.
type RegistryConfig struct {
	// Guard is the shared input-blocked critical section. Required.
	Guard *blockinput.Guard

	// OpenEngine builds the engine handle for each new connection.
	OpenEngine EngineOpener

	// DefaultName is used when a connection is opened without a name.
	// Defaults to ":0".
	DefaultName string
}

// NewRegistry creates an empty registry.
func NewRegistry(cfg RegistryConfig) *Registry {
	name := cfg.DefaultName
	if name == "" {
		name = ":0"
	}
	return &Registry{
		guard:       cfg.Guard,
		openEngine:  cfg.OpenEngine,
		defaultName: name,
	}
}

// Open always creates a new connection under name: it initializes default
// dimensions, asks the engine opener for a handle, and prepends the
// connection to the registry. Two opens under the same name produce two
// independent connections, matching multi-display use. On engine failure the
// partially built connection is discarded and the registry is unchanged.
func (r *Registry) Open(name string) (*Connection, error) {
	if name == "" {
		name = r.defaultName
	}

	eng, err := r.openEngine()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEngineInit, err)
	}
	if eng == nil {
		return nil, fmt.Errorf("%w: engine returned no handle", ErrEngineInit)
	}

	conn := newConnection(name, eng)

	r.guard.With(func() {
		r.conns = append([]*Connection{conn}, r.conns...)
	})
	return conn, nil
}

// Close shuts a connection down and unlinks it. Fails with ErrBusy while
// frames are still bound. After a successful close the connection's engine
// handle is invalid and must not be reached through any retained reference.
func (r *Registry) Close(conn *Connection) error {
	var err error
	r.guard.With(func() {
		if conn.RefCount() > 0 {
			err = fmt.Errorf("%w: %s has %d frame(s) attached",
				ErrBusy, conn.Name(), conn.RefCount())
			return
		}
		if !r.unlink(conn) {
			err = fmt.Errorf("%w: %s", ErrNotFound, conn.Name())
			return
		}
		conn.close()
	})
	return err
}

// unlink removes conn by identity, covering head and interior positions.
// Caller holds the guard.
func (r *Registry) unlink(conn *Connection) bool {
	for i, c := range r.conns {
		if c == conn {
			r.conns = append(r.conns[:i], r.conns[i+1:]...)
			return true
		}
	}
	return false
}

// First returns the most recently opened connection, or nil.
func (r *Registry) First() *Connection {
	var c *Connection
	r.guard.With(func() {
		if len(r.conns) > 0 {
			c = r.conns[0]
		}
	})
	return c
}

// Default returns the first available connection, lazily opening one under
// the default name when the registry is empty.
func (r *Registry) Default() (*Connection, error) {
	if c := r.First(); c != nil {
		return c, nil
	}
	return r.Open(r.defaultName)
}

// ForTerminal returns the connection owned by the given host terminal.
// Terminals of another backend type are rejected with ErrNotATarget.
func (r *Registry) ForTerminal(t *Terminal) (*Connection, error) {
	if t == nil || t.Type != TerminalType {
		return nil, fmt.Errorf("%w: terminal is not a %s terminal", ErrNotATarget, TerminalType)
	}
	var found *Connection
	r.guard.With(func() {
		for _, c := range r.conns {
			if c.terminal != nil && c.terminal.ID == t.ID {
				found = c
				return
			}
		}
	})
	if found == nil {
		return nil, fmt.Errorf("%w: terminal %d", ErrNotFound, t.ID)
	}
	return found, nil
}

// ByName returns the most recently opened connection under name.
func (r *Registry) ByName(name string) (*Connection, error) {
	var found *Connection
	r.guard.With(func() {
		for _, c := range r.conns {
			if c.name == name {
				found = c
				return
			}
		}
	})
	if found == nil {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return found, nil
}

// Len returns the number of open connections.
func (r *Registry) Len() int {
	n := 0
	r.guard.With(func() { n = len(r.conns) })
	return n
}

// List snapshots all open connections, newest first.
func (r *Registry) List() []Info {
	var infos []Info
	r.guard.With(func() {
		infos = make([]Info, 0, len(r.conns))
		for _, c := range r.conns {
			infos = append(infos, c.Info())
		}
	})
	return infos
}
