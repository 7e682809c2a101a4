package plot

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/wave/pkg/scene"
)

const chartScene = `
fps: 30
animations:
  - name: slide
    kind: easing
    to: [100, -50]
    duration: 500ms
  - name: tint
    kind: easing
    from: "#ff0000"
    to: "#0000ff"
    duration: 500ms
`

func simulate(t *testing.T, doc string) *scene.Result {
	t.Helper()
	s, err := scene.Parse([]byte(doc), "yaml")
	require.NoError(t, err)
	res, err := scene.Simulate(s)
	require.NoError(t, err)
	return res
}

func TestRenderSize(t *testing.T) {
	res := simulate(t, chartScene)

	img, err := Render(res, Options{})
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, DefaultWidth, 2*DefaultPanelHeight), img.Bounds())

	img, err = Render(res, Options{Width: 320, PanelHeight: 90})
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 320, 180), img.Bounds())
}

func TestRenderDrawsLines(t *testing.T) {
	res := simulate(t, chartScene)
	img, err := Render(res, Options{})
	require.NoError(t, err)

	area := image.Rect(axisWidth+2, labelHeight, DefaultWidth-margin, DefaultPanelHeight-margin-2)
	painted := 0
	for y := area.Min.Y; y < area.Max.Y; y++ {
		for x := area.Min.X; x < area.Max.X; x++ {
			if img.RGBAAt(x, y) != background {
				painted++
			}
		}
	}
	assert.Greater(t, painted, area.Dx(), "expected both component lines to cross the panel")
}

func TestRenderColorStrip(t *testing.T) {
	res := simulate(t, chartScene)
	img, err := Render(res, Options{})
	require.NoError(t, err)

	y := DefaultPanelHeight + DefaultPanelHeight/2
	end := img.RGBAAt(DefaultWidth-margin-1, y)
	assert.Equal(t, color.RGBA{B: 0xff, A: 0xff}, end)

	start := img.RGBAAt(axisWidth+1, y)
	assert.Greater(t, start.R, start.B, "early samples should still be mostly red")
}

func TestRenderErrors(t *testing.T) {
	_, err := Render(nil, Options{})
	assert.Error(t, err)

	_, err = Render(&scene.Result{}, Options{})
	assert.Error(t, err)

	res := simulate(t, chartScene)
	_, err = Render(res, Options{Width: 10, PanelHeight: 10})
	assert.Error(t, err)
}

func TestWritePNG(t *testing.T) {
	res := simulate(t, chartScene)

	var buf bytes.Buffer
	require.NoError(t, WritePNG(&buf, res, Options{Width: 400, PanelHeight: 100}))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 400, 200), img.Bounds())
}

func TestValueRangePadsFlatTracks(t *testing.T) {
	lo, hi := valueRange([]scene.Sample{{Value: []float64{3}}, {Value: []float64{3}}})
	assert.Equal(t, 2.0, lo)
	assert.Equal(t, 4.0, hi)
}
