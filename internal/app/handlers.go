package app

import (
	"image"

	"student-records/internal/chart"
	"student-records/internal/models"
)

// renderChart is the controller's chart renderer
func renderChart(dist []models.GradeCount) (image.Image, error) {
	return chart.RenderPie(dist, chart.DefaultOptions())
}
