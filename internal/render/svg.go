package render

import (
	"fmt"
	"image/color"
	"io"
	"strings"
)

// SVGSurface accumulates shapes into a standalone SVG document.
type SVGSurface struct {
	layout     Layout
	background color.NRGBA
	body       strings.Builder
}

func NewSVGSurface(l Layout, bg color.NRGBA) *SVGSurface {
	return &SVGSurface{layout: l, background: bg}
}

func (s *SVGSurface) Layout() Layout { return s.layout }

func (s *SVGSurface) FillCellRect(x, y int, st Style) {
	size := s.layout.CellSize
	fmt.Fprintf(&s.body, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"%s/>
`, float64(x)*size, float64(y)*size, size, size, Hex(st.Color), opacity(st.Color))
}

func (s *SVGSurface) StrokeCellRect(x, y int, st Style) {
	size := s.layout.CellSize
	fmt.Fprintf(&s.body, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="none" stroke="%s" stroke-width="1"/>
`, float64(x)*size, float64(y)*size, size, size, Hex(st.Color))
}

func (s *SVGSurface) FillCircle(cx, cy, radius float64, st Style) {
	fmt.Fprintf(&s.body, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"%s/>
`, cx, cy, radius, Hex(st.Color), opacity(st.Color))
}

func (s *SVGSurface) String() string {
	width, height := s.layout.Width(), s.layout.Height()

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, Hex(s.background))
	sb.WriteString(s.body.String())
	sb.WriteString("</svg>\n")
	return sb.String()
}

func (s *SVGSurface) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, s.String())
	return int64(n), err
}

func opacity(c color.NRGBA) string {
	if c.A == 0xff {
		return ""
	}
	return fmt.Sprintf(` fill-opacity="%.2f"`, float64(c.A)/255)
}
