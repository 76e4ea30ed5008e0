package display

import (
	"errors"
	"testing"

	"github.com/1broseidon/glyphbridge/internal/blockinput"
	"github.com/1broseidon/glyphbridge/internal/engine"
)

func testRegistry(t *testing.T) *Registry {
	t.Helper()
	return NewRegistry(RegistryConfig{
		Guard: &blockinput.Guard{},
		OpenEngine: func() (engine.Engine, error) {
			return engine.NewRecorder(engine.Config{Width: DefaultWidth, Height: DefaultHeight}), nil
		},
	})
}

func TestOpenAddsToRegistryWithDefaults(t *testing.T) {
	r := testRegistry(t)

	conn, err := r.Open(":0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	infos := r.List()
	if len(infos) != 1 {
		t.Fatalf("expected 1 display, got %d", len(infos))
	}
	if infos[0].Name != ":0" {
		t.Fatalf("expected name %q, got %q", ":0", infos[0].Name)
	}
	if infos[0].Width != 800 || infos[0].Height != 600 {
		t.Fatalf("expected default 800x600, got %dx%d", infos[0].Width, infos[0].Height)
	}
	if infos[0].Planes != 24 {
		t.Fatalf("expected 24 planes, got %d", infos[0].Planes)
	}
	if conn.SmallestCellWidth != 8 || conn.SmallestCellHeight != 16 {
		t.Fatalf("expected 8x16 smallest cell, got %dx%d",
			conn.SmallestCellWidth, conn.SmallestCellHeight)
	}
	if !conn.SupportsARGB {
		t.Fatal("expected ARGB support")
	}
}

func TestOpenOrdersNewestFirst(t *testing.T) {
	r := testRegistry(t)

	if _, err := r.Open(":0"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := r.Open(":1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if r.First() != second {
		t.Fatal("expected most recent open at the head")
	}
	infos := r.List()
	if infos[0].Name != ":1" || infos[1].Name != ":0" {
		t.Fatalf("wrong order: %v, %v", infos[0].Name, infos[1].Name)
	}
}

func TestOpenSameNameTwiceIsIndependent(t *testing.T) {
	r := testRegistry(t)

	a, _ := r.Open(":0")
	b, _ := r.Open(":0")
	if a == b {
		t.Fatal("expected two independent connections")
	}
	ea, _ := a.Engine()
	eb, _ := b.Engine()
	if ea == eb {
		t.Fatal("engine handles must never be shared between connections")
	}
}

func TestOpenEngineFailureLeavesRegistryUntouched(t *testing.T) {
	r := NewRegistry(RegistryConfig{
		Guard: &blockinput.Guard{},
		OpenEngine: func() (engine.Engine, error) {
			return nil, errors.New("no GPU")
		},
	})

	_, err := r.Open(":0")
	if !errors.Is(err, ErrEngineInit) {
		t.Fatalf("expected ErrEngineInit, got %v", err)
	}
	if r.Len() != 0 {
		t.Fatalf("registry mutated on failed open: %d entries", r.Len())
	}
}

func TestCloseBusyThenSucceeds(t *testing.T) {
	r := testRegistry(t)

	conn, _ := r.Open(":0")
	conn.Retain()

	if err := r.Close(conn); !errors.Is(err, ErrBusy) {
		t.Fatalf("expected ErrBusy, got %v", err)
	}
	if r.Len() != 1 {
		t.Fatal("busy close must not unlink the connection")
	}

	conn.Release()
	if err := r.Close(conn); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Len() != 0 {
		t.Fatal("expected empty registry after close")
	}
	if _, err := conn.Engine(); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed after close, got %v", err)
	}
}

func TestCloseInteriorNode(t *testing.T) {
	r := testRegistry(t)

	a, _ := r.Open(":0")
	b, _ := r.Open(":1")
	c, _ := r.Open(":2")

	if err := r.Close(b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	infos := r.List()
	if len(infos) != 2 || infos[0].Name != ":2" || infos[1].Name != ":0" {
		t.Fatalf("interior unlink broke ordering: %+v", infos)
	}

	// Head case.
	if err := r.Close(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.First() != a {
		t.Fatal("expected remaining connection at the head")
	}
}

func TestCloseFirstWhileSecondBusy(t *testing.T) {
	r := testRegistry(t)

	first, _ := r.Open(":0")
	second, _ := r.Open(":1")
	second.Retain()

	if err := r.Close(first); err != nil {
		t.Fatalf("closing the unbound display failed: %v", err)
	}
	if err := r.Close(second); !errors.Is(err, ErrBusy) {
		t.Fatalf("expected ErrBusy for the bound display, got %v", err)
	}
}

func TestRetainReleaseInverse(t *testing.T) {
	r := testRegistry(t)
	conn, _ := r.Open(":0")

	initial := conn.RefCount()
	for i := 0; i < 5; i++ {
		conn.Retain()
	}
	for i := 0; i < 5; i++ {
		conn.Release()
	}
	if conn.RefCount() != initial {
		t.Fatalf("expected refcount %d after matched retain/release, got %d",
			initial, conn.RefCount())
	}
}

func TestDefaultLazilyOpens(t *testing.T) {
	r := testRegistry(t)

	conn, err := r.Default()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if conn.Name() != ":0" {
		t.Fatalf("expected default name :0, got %q", conn.Name())
	}
	if r.Len() != 1 {
		t.Fatalf("expected lazy open to register, got %d entries", r.Len())
	}

	again, err := r.Default()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if again != conn {
		t.Fatal("expected Default to reuse the existing connection")
	}
}

func TestForTerminal(t *testing.T) {
	r := testRegistry(t)

	conn, _ := r.Open(":0")
	term := &Terminal{ID: 7, Type: TerminalType, Name: "glyphbridge"}
	conn.SetTerminal(term)

	got, err := r.ForTerminal(term)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != conn {
		t.Fatal("expected the terminal's connection")
	}

	if _, err := r.ForTerminal(&Terminal{ID: 8, Type: "tty"}); !errors.Is(err, ErrNotATarget) {
		t.Fatalf("expected ErrNotATarget for foreign terminal, got %v", err)
	}
}
