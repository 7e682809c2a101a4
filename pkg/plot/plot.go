// Package plot renders simulated animation trajectories as PNG charts.
//
// Each track gets its own panel. Numeric tracks draw one line per component
// over time; color tracks draw the sampled colors as a strip.
package plot

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/go-drift/wave/pkg/animation"
	"github.com/go-drift/wave/pkg/scene"
)

const (
	// Default chart dimensions in pixels.
	DefaultWidth       = 800
	DefaultPanelHeight = 160

	margin      = 8
	labelHeight = 18
	axisWidth   = 56
	lineWidth   = 1.5
)

var (
	background = color.RGBA{R: 0x1e, G: 0x1f, B: 0x24, A: 0xff}
	grid       = color.RGBA{R: 0x3a, G: 0x3c, B: 0x44, A: 0xff}
	ink        = color.RGBA{R: 0xdd, G: 0xdd, B: 0xdd, A: 0xff}
)

// Options controls the chart size.
type Options struct {
	Width       int
	PanelHeight int
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.PanelHeight <= 0 {
		o.PanelHeight = DefaultPanelHeight
	}
	return o
}

// Render draws every track of res into a new image.
func Render(res *scene.Result, opts Options) (*image.RGBA, error) {
	if res == nil || len(res.Tracks) == 0 {
		return nil, fmt.Errorf("plot: nothing to render")
	}
	opts = opts.withDefaults()
	if opts.Width <= axisWidth+2*margin || opts.PanelHeight <= labelHeight+2*margin {
		return nil, fmt.Errorf("plot: %dx%d is too small", opts.Width, opts.PanelHeight)
	}

	img := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.PanelHeight*len(res.Tracks)))
	draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	total := res.Elapsed.Seconds()
	if total <= 0 {
		total = 1
	}
	for i, tr := range res.Tracks {
		top := i * opts.PanelHeight
		p := panel{
			img:   img,
			area:  image.Rect(axisWidth, top+labelHeight, opts.Width-margin, top+opts.PanelHeight-margin),
			total: total,
		}
		label(img, margin, top+13, ink, fmt.Sprintf("%s (%s)%s", tr.Name, tr.Kind, status(tr)))
		if tr.Color {
			p.strip(tr)
		} else {
			p.lines(tr)
		}
	}
	return img, nil
}

// WritePNG renders res and encodes it to w.
func WritePNG(w io.Writer, res *scene.Result, opts Options) error {
	img, err := Render(res, opts)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

func status(tr *scene.Track) string {
	switch {
	case tr.Truncated:
		return " truncated"
	case tr.Finished:
		return fmt.Sprintf(" finished at %.3fs", tr.FinishedAt)
	}
	return ""
}

type panel struct {
	img   *image.RGBA
	area  image.Rectangle
	total float64
}

func (p panel) x(t float64) float32 {
	return float32(p.area.Min.X) + float32(t/p.total)*float32(p.area.Dx())
}

// lines draws one polyline per vector component, scaled to the track's
// value range.
func (p panel) lines(tr *scene.Track) {
	draw.Draw(p.img, image.Rect(p.area.Min.X, p.area.Max.Y-1, p.area.Max.X, p.area.Max.Y), image.NewUniform(grid), image.Point{}, draw.Src)
	draw.Draw(p.img, image.Rect(p.area.Min.X, p.area.Min.Y, p.area.Min.X+1, p.area.Max.Y), image.NewUniform(grid), image.Point{}, draw.Src)
	if len(tr.Samples) == 0 {
		label(p.img, p.area.Min.X+margin, p.area.Min.Y+13, grid, "no samples")
		return
	}

	lo, hi := valueRange(tr.Samples)
	label(p.img, margin, p.area.Min.Y+10, ink, fmt.Sprintf("%.4g", hi))
	label(p.img, margin, p.area.Max.Y, ink, fmt.Sprintf("%.4g", lo))
	y := func(v float64) float32 {
		f := (v - lo) / (hi - lo)
		return float32(p.area.Max.Y) - float32(f)*float32(p.area.Dy())
	}

	dim := len(tr.Samples[0].Value)
	for c := 0; c < dim; c++ {
		z := vector.NewRasterizer(p.img.Bounds().Dx(), p.img.Bounds().Dy())
		z.DrawOp = draw.Over
		prevX, prevY := p.x(tr.Samples[0].Time), y(component(tr.Samples[0].Value, c))
		if len(tr.Samples) == 1 {
			segment(z, prevX, prevY, prevX+lineWidth, prevY)
		}
		for _, s := range tr.Samples[1:] {
			x, yy := p.x(s.Time), y(component(s.Value, c))
			segment(z, prevX, prevY, x, yy)
			prevX, prevY = x, yy
		}
		z.Draw(p.img, p.img.Bounds(), image.NewUniform(palette(c, dim)), image.Point{})
	}
}

// strip fills the panel with the sampled colors, each one held from the
// previous sample up to its own time.
func (p panel) strip(tr *scene.Track) {
	x0 := p.area.Min.X
	for _, s := range tr.Samples {
		x1 := min(int(math.Ceil(float64(p.x(s.Time)))), p.area.Max.X)
		if x1 <= x0 {
			continue
		}
		c := animation.ColorData.Decode(s.Value).Clamped()
		fill := color.NRGBA{R: unit8(c.R), G: unit8(c.G), B: unit8(c.B), A: unit8(c.A)}
		draw.Draw(p.img, image.Rect(x0, p.area.Min.Y, x1, p.area.Max.Y), image.NewUniform(fill), image.Point{}, draw.Over)
		x0 = x1
	}
}

// segment adds a line of lineWidth from (x0, y0) to (x1, y1) as a filled
// quad. Every quad winds the same way, so overlaps do not cancel.
func segment(z *vector.Rasterizer, x0, y0, x1, y1 float32) {
	dx, dy := x1-x0, y1-y0
	length := float32(math.Hypot(float64(dx), float64(dy)))
	if length == 0 {
		return
	}
	nx, ny := -dy/length*lineWidth/2, dx/length*lineWidth/2
	z.MoveTo(x0+nx, y0+ny)
	z.LineTo(x1+nx, y1+ny)
	z.LineTo(x1-nx, y1-ny)
	z.LineTo(x0-nx, y0-ny)
	z.ClosePath()
}

func valueRange(samples []scene.Sample) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, s := range samples {
		for _, v := range s.Value {
			lo = min(lo, v)
			hi = max(hi, v)
		}
	}
	if hi-lo < 1e-9 {
		lo, hi = lo-1, hi+1
	}
	return lo, hi
}

func component(v animation.Vector, i int) float64 {
	if i < len(v) {
		return v[i]
	}
	return 0
}

// palette spreads n line colors evenly around the hue circle.
func palette(i, n int) color.Color {
	return colorful.Hcl(200+360*float64(i)/float64(n), 0.6, 0.7).Clamped()
}

func unit8(f float64) uint8 {
	return uint8(math.Round(min(max(f, 0), 1) * 255))
}

func label(dst draw.Image, x, y int, c color.Color, s string) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}
