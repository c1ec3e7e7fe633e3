package chart

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"gocv.io/x/gocv"

	"student-records/internal/models"
)

// Title is drawn above the pie
const Title = "Student Grade Distribution"

// Options controls the rendered canvas
type Options struct {
	Width  int
	Height int
	// RingWidth is the donut thickness as a fraction of the radius; 1 draws a full pie
	RingWidth float64
}

// DefaultOptions matches the analytics window size
func DefaultOptions() Options {
	return Options{Width: 500, Height: 400, RingWidth: 0.4}
}

var (
	white = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	black = color.RGBA{A: 255}
)

const font = gocv.FontHersheySimplex

// RenderPie draws the distribution as a donut chart with percentage and
// grade labels, starting at 12 o'clock and running counterclockwise.
func RenderPie(dist []models.GradeCount, opts Options) (image.Image, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("invalid chart size %dx%d", opts.Width, opts.Height)
	}

	slices, err := Slices(dist, 90)
	if err != nil {
		return nil, err
	}

	canvas := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(255, 255, 255, 0), opts.Height, opts.Width, gocv.MatTypeCV8UC3)
	defer canvas.Close()
	if canvas.Empty() {
		return nil, fmt.Errorf("failed to allocate %dx%d canvas", opts.Width, opts.Height)
	}

	titleHeight := 40
	cx := float64(opts.Width) / 2
	cy := float64(titleHeight) + float64(opts.Height-titleHeight)/2
	radius := math.Min(float64(opts.Width), float64(opts.Height-titleHeight)) * 0.36
	center := image.Pt(int(cx), int(cy))
	axes := image.Pt(int(radius), int(radius))

	for _, s := range slices {
		// OpenCV measures angles clockwise because y points down
		gocv.EllipseWithParams(&canvas, center, axes, 0, -s.EndAngle, -s.StartAngle, s.Color, -1, gocv.LineAA, 0)
	}

	ring := opts.RingWidth
	if ring > 0 && ring < 1 {
		inner := int(radius * (1 - ring))
		gocv.Circle(&canvas, center, inner, white, -1)
	}

	labelRadius := radius * (1 - ring/2)
	if ring <= 0 || ring >= 1 {
		labelRadius = radius * 0.6
	}
	for _, s := range slices {
		px, py := polar(cx, cy, labelRadius, s.MidAngle())
		putCentered(&canvas, s.Percent(), px, py, 0.45, black)

		gx, gy := polar(cx, cy, radius*1.15, s.MidAngle())
		putCentered(&canvas, s.Label, gx, gy, 0.55, black)
	}

	putCentered(&canvas, Title, cx, float64(titleHeight)/2+6, 0.7, black)

	return matToRGBA(canvas)
}

func putCentered(img *gocv.Mat, text string, x, y, scale float64, c color.RGBA) {
	size := gocv.GetTextSize(text, font, scale, 1)
	org := image.Pt(int(x)-size.X/2, int(y)+size.Y/2)
	gocv.PutTextWithParams(img, text, org, font, scale, c, 1, gocv.LineAA, false)
}

// matToRGBA copies a BGR Mat into a Go image
func matToRGBA(src gocv.Mat) (*image.RGBA, error) {
	if src.Channels() != 3 {
		return nil, fmt.Errorf("unsupported channel count: %d", src.Channels())
	}

	rows, cols := src.Rows(), src.Cols()
	img := image.NewRGBA(image.Rect(0, 0, cols, rows))
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			img.SetRGBA(x, y, color.RGBA{
				R: src.GetUCharAt3(y, x, 2),
				G: src.GetUCharAt3(y, x, 1),
				B: src.GetUCharAt3(y, x, 0),
				A: 255,
			})
		}
	}
	return img, nil
}
