package colorres

import (
	"errors"
	"testing"
)

func TestResolveBuiltinNames(t *testing.T) {
	res := New()

	black, err := res.Resolve("black")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if black.Red != 0 || black.Green != 0 || black.Blue != 0 || black.Pixel != 0x000000 {
		t.Fatalf("black resolved to %+v", black)
	}

	white, err := res.Resolve("white")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if white.Red != 65535 || white.Green != 65535 || white.Blue != 65535 || white.Pixel != 0xffffff {
		t.Fatalf("white resolved to %+v", white)
	}
}

func TestResolveHex(t *testing.T) {
	res := New()

	tests := []struct {
		name  string
		r     uint16
		g     uint16
		b     uint16
		pixel uint32
	}{
		{"#000000", 0, 0, 0, 0x000000},
		{"#ffffff", 65535, 65535, 65535, 0xffffff},
		{"#FF0000", 65535, 0, 0, 0xff0000},
		{"#00FF00", 0, 65535, 0, 0x00ff00},
		{"#0000ff", 0, 0, 65535, 0x0000ff},
		{"#123456", 0x12 * 257, 0x34 * 257, 0x56 * 257, 0x123456},
		{"#808080", 0x80 * 257, 0x80 * 257, 0x80 * 257, 0x808080},
	}

	for _, tt := range tests {
		c, err := res.Resolve(tt.name)
		if err != nil {
			t.Fatalf("Resolve(%q): unexpected error: %v", tt.name, err)
		}
		if c.Red != tt.r || c.Green != tt.g || c.Blue != tt.b {
			t.Errorf("Resolve(%q) = (%d,%d,%d), want (%d,%d,%d)",
				tt.name, c.Red, c.Green, c.Blue, tt.r, tt.g, tt.b)
		}
		if c.Pixel != tt.pixel {
			t.Errorf("Resolve(%q) pixel = %#06x, want %#06x", tt.name, c.Pixel, tt.pixel)
		}
	}
}

func TestResolveNotFound(t *testing.T) {
	res := New()

	for _, name := range []string{
		"",
		"chartreuse",
		"#fff",          // short form not accepted
		"#12345",        // too short
		"#1234567",      // too long
		"#12345g",       // bad digit
		"#+12345",       // sign is not a hex digit
		"123456",        // missing #
		"# 12345",       // embedded space
		"BLACK",         // table is case-sensitive
		"#ffffff ",      // trailing junk
	} {
		if _, err := res.Resolve(name); !errors.Is(err, ErrNotFound) {
			t.Errorf("Resolve(%q): expected ErrNotFound, got %v", name, err)
		}
	}
}

func TestResolveWithExtraNames(t *testing.T) {
	res := New(WithName("red", 0xff, 0, 0))

	c, err := res.Resolve("red")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Red != 65535 || c.Pixel != 0xff0000 {
		t.Fatalf("red resolved to %+v", c)
	}
}
