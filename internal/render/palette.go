package render

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Layer is what a fill represents. Surfaces that cannot show colour use it to
// pick a glyph or a dot.
type Layer int

const (
	LayerOpen Layer = iota
	LayerWall
	LayerBorder
	LayerVisited
	LayerFrontier
	LayerPath
	LayerStart
	LayerEnd
)

var layerNames = []string{"open", "wall", "border", "visited", "frontier", "path", "start", "end"}

func (l Layer) String() string {
	if l >= 0 && int(l) < len(layerNames) {
		return layerNames[l]
	}
	return fmt.Sprintf("layer(%d)", int(l))
}

// Style is a single fill.
type Style struct {
	Layer Layer
	Color color.NRGBA
}

// Palette assigns a colour to every layer. Visited and frontier are
// translucent and composite over the cell below.
type Palette struct {
	Name       string
	Background color.NRGBA
	Open       color.NRGBA
	Wall       color.NRGBA
	Border     color.NRGBA
	Visited    color.NRGBA
	Frontier   color.NRGBA
	Path       color.NRGBA
	Start      color.NRGBA
	End        color.NRGBA
}

func (p Palette) Style(l Layer) Style {
	var c color.NRGBA
	switch l {
	case LayerOpen:
		c = p.Open
	case LayerWall:
		c = p.Wall
	case LayerBorder:
		c = p.Border
	case LayerVisited:
		c = p.Visited
	case LayerFrontier:
		c = p.Frontier
	case LayerPath:
		c = p.Path
	case LayerStart:
		c = p.Start
	case LayerEnd:
		c = p.End
	}
	return Style{Layer: l, Color: c}
}

var (
	PaletteCyberpunk = Palette{
		Name:       "cyberpunk",
		Background: mustHex("#0a0a0a"),
		Open:       mustHex("#1a1a1a"),
		Wall:       mustHex("#2a2a2a"),
		Border:     mustHex("#333333"),
		Visited:    color.NRGBA{R: 0, G: 255, B: 157, A: 46},
		Frontier:   color.NRGBA{R: 65, G: 94, B: 85, A: 74},
		Path:       mustHex("#00ff9d"),
		Start:      mustHex("#0b858a"),
		End:        mustHex("#ff4d4d"),
	}

	PaletteRetro = Palette{
		Name:       "retro",
		Background: mustHex("#001100"),
		Open:       mustHex("#002200"),
		Wall:       mustHex("#005500"),
		Border:     mustHex("#003300"),
		Visited:    color.NRGBA{R: 0, G: 204, B: 0, A: 56},
		Frontier:   color.NRGBA{R: 136, G: 255, B: 136, A: 74},
		Path:       mustHex("#00ff00"),
		Start:      mustHex("#88ff88"),
		End:        mustHex("#ffff00"),
	}

	PaletteMinimal = Palette{
		Name:       "minimal",
		Background: mustHex("#000000"),
		Open:       mustHex("#111111"),
		Wall:       mustHex("#888888"),
		Border:     mustHex("#222222"),
		Visited:    color.NRGBA{R: 204, G: 204, B: 204, A: 40},
		Frontier:   color.NRGBA{R: 0, G: 136, B: 255, A: 74},
		Path:       mustHex("#ffffff"),
		Start:      mustHex("#00ff00"),
		End:        mustHex("#ff0000"),
	}

	PaletteOcean = Palette{
		Name:       "ocean",
		Background: mustHex("#001a33"),
		Open:       mustHex("#002244"),
		Wall:       mustHex("#4488aa"),
		Border:     mustHex("#003355"),
		Visited:    color.NRGBA{R: 0, G: 168, B: 204, A: 56},
		Frontier:   color.NRGBA{R: 0, G: 119, B: 190, A: 90},
		Path:       mustHex("#ffd700"),
		Start:      mustHex("#00ff88"),
		End:        mustHex("#ff4444"),
	}

	PaletteSunset = Palette{
		Name:       "sunset",
		Background: mustHex("#2d1b2e"),
		Open:       mustHex("#3a2440"),
		Wall:       mustHex("#8b6b8c"),
		Border:     mustHex("#4a3050"),
		Visited:    color.NRGBA{R: 254, G: 202, B: 87, A: 46},
		Frontier:   color.NRGBA{R: 255, G: 159, B: 243, A: 74},
		Path:       mustHex("#ff6b6b"),
		Start:      mustHex("#5fd068"),
		End:        mustHex("#ff4757"),
	}

	Palettes = []Palette{
		PaletteCyberpunk,
		PaletteRetro,
		PaletteMinimal,
		PaletteOcean,
		PaletteSunset,
	}
)

// PaletteByName looks up a palette, falling back to cyberpunk.
func PaletteByName(name string) (Palette, bool) {
	for _, p := range Palettes {
		if p.Name == name {
			return p, true
		}
	}
	return PaletteCyberpunk, false
}

// ParseHex parses "#rrggbb" or "#rrggbbaa".
func ParseHex(s string) (color.NRGBA, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) != 6 && len(h) != 8 {
		return color.NRGBA{}, fmt.Errorf("invalid hex colour %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid hex colour %q: %w", s, err)
	}
	if len(h) == 6 {
		v = v<<8 | 0xff
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

func mustHex(s string) color.NRGBA {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex formats the opaque part of c as "#rrggbb".
func Hex(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Blend composites src over dst and returns an opaque colour.
func Blend(src, dst color.NRGBA) color.NRGBA {
	a := uint32(src.A)
	mix := func(s, d uint8) uint8 {
		return uint8((uint32(s)*a + uint32(d)*(255-a) + 127) / 255)
	}
	return color.NRGBA{R: mix(src.R, dst.R), G: mix(src.G, dst.G), B: mix(src.B, dst.B), A: 255}
}
