// Package chart renders the grade distribution as a donut pie chart.
package chart

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"student-records/internal/models"
)

// ErrNoData is returned when the distribution has nothing to draw
var ErrNoData = errors.New("not enough data to generate analytics")

// Slice is one wedge of the pie. Angles are in degrees, counterclockwise
// from the positive x axis.
type Slice struct {
	Label      string
	Count      int
	Fraction   float64
	StartAngle float64
	EndAngle   float64
	Color      color.RGBA
}

// Percent formats the wedge share the way the chart labels it
func (s Slice) Percent() string {
	return fmt.Sprintf("%.1f%%", s.Fraction*100)
}

// MidAngle is the bisector of the wedge
func (s Slice) MidAngle() float64 {
	return (s.StartAngle + s.EndAngle) / 2
}

var palette = []color.RGBA{
	{R: 31, G: 119, B: 180, A: 255},
	{R: 255, G: 127, B: 14, A: 255},
	{R: 44, G: 160, B: 44, A: 255},
	{R: 214, G: 39, B: 40, A: 255},
	{R: 148, G: 103, B: 189, A: 255},
	{R: 140, G: 86, B: 75, A: 255},
	{R: 227, G: 119, B: 194, A: 255},
	{R: 127, G: 127, B: 127, A: 255},
	{R: 188, G: 189, B: 34, A: 255},
	{R: 23, G: 190, B: 207, A: 255},
}

// Slices lays out wedges counterclockwise starting at startAngle, in
// distribution order. Buckets with a non-positive count are skipped.
func Slices(dist []models.GradeCount, startAngle float64) ([]Slice, error) {
	total := 0
	for _, gc := range dist {
		if gc.Count > 0 {
			total += gc.Count
		}
	}
	if total == 0 {
		return nil, ErrNoData
	}

	slices := make([]Slice, 0, len(dist))
	angle := startAngle
	for _, gc := range dist {
		if gc.Count <= 0 {
			continue
		}
		frac := float64(gc.Count) / float64(total)
		s := Slice{
			Label:      gc.Grade,
			Count:      gc.Count,
			Fraction:   frac,
			StartAngle: angle,
			EndAngle:   angle + frac*360,
			Color:      palette[len(slices)%len(palette)],
		}
		slices = append(slices, s)
		angle = s.EndAngle
	}
	return slices, nil
}

// polar returns the point at radius r and angle deg (math convention)
// around (cx, cy) in image coordinates, where y grows downwards.
func polar(cx, cy, r, deg float64) (float64, float64) {
	rad := deg * math.Pi / 180
	return cx + r*math.Cos(rad), cy - r*math.Sin(rad)
}
