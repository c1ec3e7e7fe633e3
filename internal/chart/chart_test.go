package chart

import (
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"student-records/internal/models"
)

func TestSlices(t *testing.T) {
	dist := []models.GradeCount{{Grade: "A", Count: 2}, {Grade: "B", Count: 1}, {Grade: "C", Count: 1}}

	slices, err := Slices(dist, 90)
	require.NoError(t, err)
	require.Len(t, slices, 3)

	assert.Equal(t, "A", slices[0].Label)
	assert.InDelta(t, 0.5, slices[0].Fraction, 1e-9)
	assert.InDelta(t, 90, slices[0].StartAngle, 1e-9)
	assert.InDelta(t, 270, slices[0].EndAngle, 1e-9)
	assert.InDelta(t, 360, slices[1].EndAngle, 1e-9)
	assert.InDelta(t, 450, slices[2].EndAngle, 1e-9, "wedges cover the full circle")

	assert.Equal(t, "50.0%", slices[0].Percent())
	assert.Equal(t, "25.0%", slices[1].Percent())
	assert.NotEqual(t, slices[0].Color, slices[1].Color)
}

func TestSlicesSkipsEmptyBuckets(t *testing.T) {
	slices, err := Slices([]models.GradeCount{{Grade: "A", Count: 0}, {Grade: "B", Count: 3}}, 0)
	require.NoError(t, err)
	require.Len(t, slices, 1)
	assert.Equal(t, "100.0%", slices[0].Percent())
}

func TestSlicesNoData(t *testing.T) {
	_, err := Slices(nil, 90)
	assert.ErrorIs(t, err, ErrNoData)

	_, err = Slices([]models.GradeCount{{Grade: "A"}}, 90)
	assert.ErrorIs(t, err, ErrNoData)
}

func TestPolar(t *testing.T) {
	x, y := polar(100, 100, 10, 90)
	assert.InDelta(t, 100, x, 1e-9)
	assert.InDelta(t, 90, y, 1e-9, "90 degrees points up on screen")

	x, y = polar(0, 0, 2, 180)
	assert.InDelta(t, -2, x, 1e-9)
	assert.InDelta(t, 0, math.Abs(y), 1e-9)
}

func TestRenderPie(t *testing.T) {
	opts := DefaultOptions()
	img, err := RenderPie([]models.GradeCount{{Grade: "A", Count: 2}, {Grade: "B", Count: 1}}, opts)
	require.NoError(t, err)

	assert.Equal(t, opts.Width, img.Bounds().Dx())
	assert.Equal(t, opts.Height, img.Bounds().Dy())

	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	assert.Equal(t, white, img.At(1, opts.Height-1), "corner stays background")

	// centre of the donut hole is background, a point on the ring is not
	cx, cy := opts.Width/2, 40+(opts.Height-40)/2
	assert.Equal(t, white, img.At(cx, cy))

	radius := 0.36 * float64(opts.Height-40)
	rx, ry := polar(float64(cx), float64(cy), radius*0.8, 180)
	assert.NotEqual(t, white, img.At(int(rx), int(ry)))
}

func TestRenderPieErrors(t *testing.T) {
	_, err := RenderPie(nil, DefaultOptions())
	assert.ErrorIs(t, err, ErrNoData)

	_, err = RenderPie([]models.GradeCount{{Grade: "A", Count: 1}}, Options{})
	assert.Error(t, err)
}
