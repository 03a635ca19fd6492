package render

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"github.com/san-kum/pathviz/internal/grid"
)

// ImageSurface rasterises onto an in-memory RGBA image.
type ImageSurface struct {
	layout Layout
	img    *image.RGBA
}

// NewImageSurface allocates an image exactly covering l, filled with bg.
func NewImageSurface(l Layout, bg color.NRGBA) *ImageSurface {
	w := int(math.Ceil(l.Width()))
	h := int(math.Ceil(l.Height()))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	return &ImageSurface{layout: l, img: img}
}

func (s *ImageSurface) Layout() Layout     { return s.layout }
func (s *ImageSurface) Image() *image.RGBA { return s.img }

func (s *ImageSurface) cellRect(x, y int) image.Rectangle {
	ox, oy := s.layout.CellOrigin(grid.Cell{X: x, Y: y})
	size := s.layout.CellSize
	return image.Rect(
		int(math.Round(ox)), int(math.Round(oy)),
		int(math.Round(ox+size)), int(math.Round(oy+size)),
	)
}

func (s *ImageSurface) FillCellRect(x, y int, st Style) {
	r := s.cellRect(x, y).Intersect(s.img.Bounds())
	draw.Draw(s.img, r, image.NewUniform(st.Color), image.Point{}, draw.Over)
}

// StrokeCellRect draws a one-pixel outline along the cell's top and left
// edges; neighbouring cells supply the rest.
func (s *ImageSurface) StrokeCellRect(x, y int, st Style) {
	r := s.cellRect(x, y)
	src := image.NewUniform(st.Color)
	top := image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1).Intersect(s.img.Bounds())
	left := image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y).Intersect(s.img.Bounds())
	draw.Draw(s.img, top, src, image.Point{}, draw.Over)
	draw.Draw(s.img, left, src, image.Point{}, draw.Over)
}

func (s *ImageSurface) FillCircle(cx, cy, radius float64, st Style) {
	if radius <= 0 {
		return
	}
	bounds := image.Rect(
		int(math.Floor(cx-radius)), int(math.Floor(cy-radius)),
		int(math.Ceil(cx+radius))+1, int(math.Ceil(cy+radius))+1,
	).Intersect(s.img.Bounds())
	for py := bounds.Min.Y; py < bounds.Max.Y; py++ {
		for px := bounds.Min.X; px < bounds.Max.X; px++ {
			if math.Hypot(float64(px)+0.5-cx, float64(py)+0.5-cy) > radius {
				continue
			}
			under := color.NRGBAModel.Convert(s.img.At(px, py)).(color.NRGBA)
			s.img.Set(px, py, Blend(st.Color, under))
		}
	}
}

// EncodePNG writes the image as PNG.
func (s *ImageSurface) EncodePNG(w io.Writer) error {
	return png.Encode(w, s.img)
}
