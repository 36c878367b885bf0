package engine

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Color is a 32-bit ARGB color value.
type Color uint32

// Common colors.
const (
	Black Color = 0xFF000000
	White Color = 0xFFFFFFFF
)

// RGB returns an opaque color.
func RGB(r, g, b uint8) Color {
	return ARGB(0xFF, r, g, b)
}

// ARGB builds a color from its four channels.
func ARGB(a, r, g, b uint8) Color {
	return Color(uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// ColorFromARGB converts the signed persisted form back to a Color.
func ColorFromARGB(v int32) Color {
	return Color(uint32(v))
}

// ToARGB returns the signed 32-bit form used in saved documents.
func (c Color) ToARGB() int32 {
	return int32(uint32(c))
}

func (c Color) A() uint8 { return uint8(c >> 24) }
func (c Color) R() uint8 { return uint8(c >> 16) }
func (c Color) G() uint8 { return uint8(c >> 8) }
func (c Color) B() uint8 { return uint8(c) }

// RGBA implements color.Color with alpha-premultiplied channels.
func (c Color) RGBA() (r, g, b, a uint32) {
	a = uint32(c.A())
	a |= a << 8
	r = uint32(c.R())
	r |= r << 8
	r = r * a / 0xFFFF
	g = uint32(c.G())
	g |= g << 8
	g = g * a / 0xFFFF
	b = uint32(c.B())
	b |= b << 8
	b = b * a / 0xFFFF
	return r, g, b, a
}

// Hex formats the color as #rrggbb, or #aarrggbb when not fully opaque.
func (c Color) Hex() string {
	if c.A() == 0xFF {
		return fmt.Sprintf("#%02x%02x%02x", c.R(), c.G(), c.B())
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.A(), c.R(), c.G(), c.B())
}

func (c Color) String() string {
	return c.Hex()
}

// ParseColor parses #rgb, #rrggbb or #aarrggbb.
func ParseColor(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}

	switch len(hex) {
	case 6:
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return 0, fmt.Errorf("invalid color %q: %w", s, err)
		}
		return Color(0xFF000000 | uint32(v)), nil
	case 8:
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return 0, fmt.Errorf("invalid color %q: %w", s, err)
		}
		return Color(uint32(v)), nil
	default:
		return 0, fmt.Errorf("invalid color %q", s)
	}
}

// Decode lets envconfig read colors from the environment.
func (c *Color) Decode(value string) error {
	parsed, err := ParseColor(value)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

func (c *Color) UnmarshalText(text []byte) error {
	return c.Decode(string(text))
}

// Style is the pen a shape is drawn with. Editors keep the most recently
// used style and hand it to every new shape.
type Style struct {
	Color    Color `json:"color"`
	PenWidth int   `json:"penWidth"`
}

// DefaultStyle is a one pixel black pen.
func DefaultStyle() Style {
	return Style{Color: Black, PenWidth: 1}
}

// Properties describes a style change or the common style of a selection.
// A nil field means "leave unchanged" or "differs across the selection".
type Properties struct {
	Color    *Color `json:"color,omitempty"`
	PenWidth *int   `json:"penWidth,omitempty"`
}

// ErrInvalidPenWidth is returned for pen widths below one unit.
var ErrInvalidPenWidth = errors.New("pen width must be positive")

// Validate rejects changes that would leave shapes with no visible pen.
func (p Properties) Validate() error {
	if p.PenWidth != nil && *p.PenWidth < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidPenWidth, *p.PenWidth)
	}
	return nil
}
