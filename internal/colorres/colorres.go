// Package colorres resolves color names to the 16-bit-per-channel RGB values
// and packed pixel values the display engine expects.
package colorres

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrNotFound is returned when a name matches neither the built-in table nor
// the #RRGGBB form. Callers fall back to a default color or report the name
// to the user.
var ErrNotFound = errors.New("color not found")

// Color holds one resolved color. Channels are in the engine's 16-bit range
// (0-65535); Pixel is the packed 0xRRGGBB value.
type Color struct {
	Red   uint16
	Green uint16
	Blue  uint16
	Pixel uint32
}

// Resolver maps color names to engine colors. The zero value is not usable;
// use New.
type Resolver struct {
	names map[string]Color
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithName adds or overrides one named color, given 8-bit channel values.
func WithName(name string, r, g, b uint8) Option {
	return func(res *Resolver) {
		res.names[name] = fromBytes(r, g, b)
	}
}

// New returns a Resolver with the built-in name table. The table deliberately
// stays small; a full color database lives outside the bridge and extra names
// are installed with WithName.
func New(opts ...Option) *Resolver {
	res := &Resolver{
		names: map[string]Color{
			"black": fromBytes(0x00, 0x00, 0x00),
			"white": fromBytes(0xff, 0xff, 0xff),
		},
	}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// Resolve looks up name. Recognized forms, in order: an exact match in the
// name table, then a #RRGGBB literal (exactly 7 characters). Everything else
// returns ErrNotFound.
func (res *Resolver) Resolve(name string) (Color, error) {
	if c, ok := res.names[name]; ok {
		return c, nil
	}

	if len(name) == 7 && name[0] == '#' {
		r, okR := hexByte(name[1:3])
		g, okG := hexByte(name[3:5])
		b, okB := hexByte(name[5:7])
		if okR && okG && okB {
			return fromBytes(r, g, b), nil
		}
	}

	return Color{}, fmt.Errorf("%w: %q", ErrNotFound, name)
}

// hexByte parses exactly two hex digits.
func hexByte(s string) (uint8, bool) {
	v, err := strconv.ParseUint(s, 16, 8)
	if err != nil {
		return 0, false
	}
	return uint8(v), true
}

// fromBytes scales 8-bit channels to the engine's 16-bit range. The factor
// 257 maps 0x00 to 0 and 0xff to 0xffff exactly.
func fromBytes(r, g, b uint8) Color {
	return Color{
		Red:   uint16(r) * 257,
		Green: uint16(g) * 257,
		Blue:  uint16(b) * 257,
		Pixel: uint32(r)<<16 | uint32(g)<<8 | uint32(b),
	}
}
