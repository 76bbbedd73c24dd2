// Package render rasterizes sample series onto independent 2D
// surfaces: a dimmed division grid, a brighter center line, an
// auto-scaled polyline trace with a glow pass, and a labeled legend
// box. Rendering is cosmetic; every failure mode (nil surface, empty
// series) is a silent no-op.
package render

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-keying/dsp/core"
)

const (
	horizontalDivisions = 5
	verticalDivisions   = 12

	// fraction of the surface height reserved above and below the trace
	marginFraction = 0.05

	traceWidth  = 2.0
	glowWidth   = 6.0
	glowAlpha   = 0.3
	gridAlpha   = 0.09
	centerAlpha = 0.28

	legendMargin  = 8.0
	legendPadding = 6.0

	// device pixel ratios reported by real displays
	minPixelRatio = 0.5
	maxPixelRatio = 8.0
)

// DefaultBackground is the surface clear color.
var DefaultBackground = color.RGBA{R: 0x10, G: 0x12, B: 0x18, A: 0xff}

// Surface is a raster target for one signal panel.
//
// The backing raster is allocated at the logical size scaled by the
// device pixel ratio; drawing operations use logical coordinates, so
// strokes stay crisp at any density.
type Surface struct {
	width      int
	height     int
	pixelRatio float64
	background color.Color

	dc *gg.Context
}

// SurfaceOption configures a Surface.
type SurfaceOption func(*Surface)

// WithPixelRatio sets the device pixel ratio of the backing raster,
// bounded to [0.5, 8]. Nonpositive ratios are ignored.
func WithPixelRatio(ratio float64) SurfaceOption {
	return func(s *Surface) {
		if ratio > 0 {
			s.pixelRatio = core.Clamp(ratio, minPixelRatio, maxPixelRatio)
		}
	}
}

// WithBackground sets the surface clear color.
func WithBackground(c color.Color) SurfaceOption {
	return func(s *Surface) {
		if c != nil {
			s.background = c
		}
	}
}

// NewSurface creates a surface with the given logical dimensions.
// Nonpositive dimensions yield a surface that ignores all plots.
func NewSurface(width, height int, opts ...SurfaceOption) *Surface {
	s := &Surface{
		width:      width,
		height:     height,
		pixelRatio: 1,
		background: DefaultBackground,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	s.ensureContext()
	return s
}

// Resize updates the logical dimensions. It is idempotent: unchanged
// dimensions keep the existing raster.
func (s *Surface) Resize(width, height int) {
	if s == nil || (width == s.width && height == s.height && s.dc != nil) {
		return
	}
	s.width = width
	s.height = height
	s.dc = nil
	s.ensureContext()
}

// Size returns the logical dimensions.
func (s *Surface) Size() (width, height int) {
	return s.width, s.height
}

// Image returns the backing raster, or nil for an unusable surface.
func (s *Surface) Image() image.Image {
	if s == nil || s.dc == nil {
		return nil
	}
	return s.dc.Image()
}

// SavePNG writes the backing raster to path.
func (s *Surface) SavePNG(path string) error {
	if s == nil || s.dc == nil {
		return nil
	}
	return s.dc.SavePNG(path)
}

func (s *Surface) ensureContext() {
	if s.dc != nil || s.width <= 0 || s.height <= 0 {
		return
	}
	pw := int(float64(s.width) * s.pixelRatio)
	ph := int(float64(s.height) * s.pixelRatio)
	if pw <= 0 || ph <= 0 {
		return
	}
	s.dc = gg.NewContext(pw, ph)
	s.dc.Scale(s.pixelRatio, s.pixelRatio)
}

// Plot clears the surface and draws series as a connected trace with
// grid, center line and legend. A nil or zero-sized surface and an
// empty series are silent no-ops.
func (s *Surface) Plot(series []float64, c color.Color, label string) {
	if s == nil || len(series) == 0 {
		return
	}
	s.ensureContext()
	if s.dc == nil {
		return
	}

	w := float64(s.width)
	h := float64(s.height)
	dc := s.dc

	dc.SetColor(s.background)
	dc.Clear()

	s.drawGrid(w, h)
	s.drawTrace(series, c, w, h)
	s.drawLegend(label, c)
}

func (s *Surface) drawGrid(w, h float64) {
	dc := s.dc
	dc.SetLineWidth(1)

	dc.SetColor(withAlpha(color.White, gridAlpha))
	for i := 1; i < horizontalDivisions; i++ {
		y := h * float64(i) / horizontalDivisions
		dc.DrawLine(0, y, w, y)
		dc.Stroke()
	}
	for i := 1; i < verticalDivisions; i++ {
		x := w * float64(i) / verticalDivisions
		dc.DrawLine(x, 0, x, h)
		dc.Stroke()
	}

	dc.SetColor(withAlpha(color.White, centerAlpha))
	dc.DrawLine(0, h/2, w, h/2)
	dc.Stroke()
}

func (s *Surface) drawTrace(series []float64, c color.Color, w, h float64) {
	mn := floats.Min(series)
	mx := floats.Max(series)

	margin := marginFraction * h
	span := h - 2*margin

	denom := float64(len(series) - 1)
	if denom <= 0 {
		denom = 1
	}

	dc := s.dc
	dc.SetLineCap(gg.LineCapRound)
	dc.SetLineJoin(gg.LineJoinRound)

	for i, v := range series {
		x := float64(i) / denom * w
		y := h / 2
		if mx > mn {
			y = margin + (1-(v-mn)/(mx-mn))*span
		}
		if i == 0 {
			dc.MoveTo(x, y)
		} else {
			dc.LineTo(x, y)
		}
	}

	dc.SetColor(withAlpha(c, glowAlpha))
	dc.SetLineWidth(glowWidth)
	dc.StrokePreserve()

	dc.SetColor(c)
	dc.SetLineWidth(traceWidth)
	dc.Stroke()
}

func (s *Surface) drawLegend(label string, c color.Color) {
	if label == "" {
		return
	}

	dc := s.dc
	tw, th := dc.MeasureString(label)
	bw := tw + 2*legendPadding
	bh := th + 2*legendPadding

	dc.SetColor(color.RGBA{A: 0x8c})
	dc.DrawRectangle(legendMargin, legendMargin, bw, bh)
	dc.Fill()

	dc.SetColor(c)
	dc.SetLineWidth(1)
	dc.DrawRectangle(legendMargin, legendMargin, bw, bh)
	dc.Stroke()

	dc.DrawString(label, legendMargin+legendPadding, legendMargin+legendPadding+th)
}

// withAlpha scales all premultiplied channels of c by alpha.
func withAlpha(c color.Color, alpha float64) color.Color {
	r, g, b, a := c.RGBA()
	scale := func(v uint32) uint8 {
		return uint8(float64(v>>8) * alpha)
	}
	return color.RGBA{R: scale(r), G: scale(g), B: scale(b), A: scale(a)}
}
