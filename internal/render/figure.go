// Package render draws wind-rose figures: thirteen polar bar subplots (one
// aggregate, twelve monthly) laid out on a single raster image.
package render

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/golang/freetype/truetype"
	chart "github.com/wcharczuk/go-chart"
	"github.com/wcharczuk/go-chart/drawing"

	"github.com/jmwalls/windy/internal/histogram"
	"github.com/jmwalls/windy/internal/rose"
)

// The figure is a 2x8 grid of cells: the aggregate rose spans the 2x2
// block on the left, the twelve monthly roses fill the remaining 2x6.
const (
	gridRows = 2
	gridCols = 8
)

var (
	colorBackground = drawing.Color{R: 255, G: 255, B: 255, A: 255}
	colorGrid       = drawing.Color{R: 200, G: 200, B: 200, A: 255}
	colorBar        = drawing.Color{R: 0, G: 0, B: 0, A: 128}
	colorBarEdge    = drawing.Color{R: 0, G: 0, B: 0, A: 200}
	colorTitle      = drawing.Color{R: 40, G: 40, B: 40, A: 255}
)

// Options controls figure geometry and styling.
type Options struct {
	// CellSize is the pixel size of one grid cell. Zero selects the default.
	CellSize int

	// BaseRadius is the fixed bar base offset as a fraction of the axis
	// radius, so the smallest nonzero bar remains visible. Zero selects
	// the default.
	BaseRadius float64
}

// Figure renders wind roses to PNG. All plotting state is explicit; there
// is no shared figure or axes context between calls, so one Figure may be
// used concurrently.
type Figure struct {
	cellSize   int
	baseRadius float64
	font       *truetype.Font
}

// New creates a Figure with the given options.
func New(opts Options) (*Figure, error) {
	if opts.CellSize == 0 {
		opts.CellSize = 220
	}
	if opts.CellSize < 60 {
		return nil, fmt.Errorf("cell size too small: %d", opts.CellSize)
	}
	if opts.BaseRadius == 0 {
		opts.BaseRadius = 0.04
	}
	if opts.BaseRadius < 0 || opts.BaseRadius >= 1 {
		return nil, fmt.Errorf("base radius out of range: %g", opts.BaseRadius)
	}

	font, err := chart.GetDefaultFont()
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}

	return &Figure{
		cellSize:   opts.CellSize,
		baseRadius: opts.BaseRadius,
		font:       font,
	}, nil
}

// Size reports the pixel dimensions of rendered figures.
func (f *Figure) Size() (width, height int) {
	return gridCols * f.cellSize, gridRows * f.cellSize
}

// Render draws the rose's thirteen subplots and writes the figure to w as
// PNG.
func (f *Figure) Render(ro *rose.Rose, w io.Writer) error {
	if ro == nil {
		return fmt.Errorf("nil rose")
	}

	width, height := f.Size()
	r, err := chart.PNG(width, height)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}
	r.SetDPI(chart.DefaultDPI)

	r.SetFillColor(colorBackground)
	r.MoveTo(0, 0)
	r.LineTo(width, 0)
	r.LineTo(width, height)
	r.LineTo(0, height)
	r.Close()
	r.Fill()

	f.drawSubplot(r, 0, 0, 2*f.cellSize, ro.All, ro.Title)
	for i := range ro.Monthly {
		row := i / 6
		col := i%6 + 2
		f.drawSubplot(r, col*f.cellSize, row*f.cellSize, f.cellSize, ro.Monthly[i], monthTitle(i))
	}

	if err := r.Save(w); err != nil {
		return fmt.Errorf("encode figure: %w", err)
	}
	return nil
}

// drawSubplot draws one polar histogram into the square cell anchored at
// (x0, y0).
func (f *Figure) drawSubplot(r chart.Renderer, x0, y0, size int, h histogram.Histogram, title string) {
	cx := x0 + size/2
	cy := y0 + size/2 + size/24 // nudge down to leave room for the title
	axisR := 0.36 * float64(size)

	f.drawGrid(r, cx, cy, axisR)
	f.drawBars(r, cx, cy, axisR, h)
	f.drawTitle(r, x0, y0, size, title)
}

func (f *Figure) drawGrid(r chart.Renderer, cx, cy int, axisR float64) {
	r.SetStrokeColor(colorGrid)
	r.SetStrokeWidth(1.0)

	// Rings at one-third intervals; no tick labels.
	for _, frac := range []float64{1.0 / 3, 2.0 / 3, 1.0} {
		r.Circle(axisR*frac, cx, cy)
		r.Stroke()
	}

	// Spokes every 45 degrees.
	for i := 0; i < 8; i++ {
		th := float64(i) * math.Pi / 4
		x, y := polarToScreen(cx, cy, axisR, th)
		r.MoveTo(cx, cy)
		r.LineTo(x, y)
		r.Stroke()
	}
}

func (f *Figure) drawBars(r chart.Renderer, cx, cy int, axisR float64, h histogram.Histogram) {
	maxFreq := h.MaxFreq()
	if maxFreq <= 0 {
		return // degenerate histogram, grid only
	}

	innerR := f.baseRadius * axisR
	for i, freq := range h.Freqs {
		if h.Counts[i] == 0 {
			continue
		}
		outerR := innerR + (freq/maxFreq)*(axisR-innerR)
		f.fillSector(r, cx, cy, innerR, outerR, h.Thetas[i], h.Width)
	}
}

// fillSector fills the annular sector [inner, outer] x [theta, theta+width].
// Arcs are approximated by short chords.
func (f *Figure) fillSector(r chart.Renderer, cx, cy int, inner, outer, theta, width float64) {
	steps := int(width/0.04) + 2

	r.SetFillColor(colorBar)
	r.SetStrokeColor(colorBarEdge)
	r.SetStrokeWidth(1.0)

	x, y := polarToScreen(cx, cy, inner, theta)
	r.MoveTo(x, y)
	x, y = polarToScreen(cx, cy, outer, theta)
	r.LineTo(x, y)
	for s := 1; s <= steps; s++ {
		th := theta + width*float64(s)/float64(steps)
		x, y = polarToScreen(cx, cy, outer, th)
		r.LineTo(x, y)
	}
	x, y = polarToScreen(cx, cy, inner, theta+width)
	r.LineTo(x, y)
	for s := steps - 1; s >= 1; s-- {
		th := theta + width*float64(s)/float64(steps)
		x, y = polarToScreen(cx, cy, inner, th)
		r.LineTo(x, y)
	}
	r.Close()
	r.FillStroke()
}

func (f *Figure) drawTitle(r chart.Renderer, x0, y0, size int, title string) {
	if title == "" {
		return
	}

	fontSize := float64(size) / 16
	if fontSize > 16 {
		fontSize = 16
	}

	r.SetFont(f.font)
	r.SetFontColor(colorTitle)
	r.SetFontSize(fontSize)

	box := r.MeasureText(title)
	tx := x0 + (size-box.Width())/2
	ty := y0 + int(fontSize) + size/32
	r.Text(title, tx, ty)
}

// polarToScreen maps a polar point to pixel coordinates. Screen y grows
// downward, so the angle is negated to keep counter-clockwise orientation.
func polarToScreen(cx, cy int, radius, theta float64) (int, int) {
	x := float64(cx) + radius*math.Cos(theta)
	y := float64(cy) - radius*math.Sin(theta)
	return int(math.Round(x)), int(math.Round(y))
}

func monthTitle(i int) string {
	return time.Month(i + 1).String()[:3]
}
