package controllers

import (
	"context"
	"image"
	"io"

	"student-records/internal/models"
)

// StudentStore is the persistence gateway as seen by the controller
type StudentStore interface {
	FetchAll(ctx context.Context) ([]models.StudentRecord, error)
	Add(ctx context.Context, rec models.StudentRecord) error
	UpdateField(ctx context.Context, rollNo int64, field models.Field, value string) error
	DeleteByRollNo(ctx context.Context, rollNo int64) error
	SearchBy(ctx context.Context, field models.Field, value string) ([]models.StudentRecord, error)
	GradeDistribution(ctx context.Context) ([]models.GradeCount, error)
}

// ChartRenderer turns a grade distribution into an image
type ChartRenderer func(dist []models.GradeCount) (image.Image, error)

// SubmitFunc is called when a modal form is submitted. A nil return closes
// the form; an error keeps it open so the user can correct the input.
type SubmitFunc func(values map[string]string) error

// ActionHandlers are the user actions the view forwards to the controller
type ActionHandlers struct {
	OnAdd       func()
	OnSearch    func()
	OnUpdate    func()
	OnDelete    func()
	OnShowAll   func()
	OnExport    func()
	OnAnalytics func()
	OnSelect    func(row int)
	OnUnselect  func()
	OnFormClose func()
	OnQuit      func()
}

// FormField describes one input of a modal form
type FormField struct {
	Key     string
	Label   string
	Options []string // non-empty renders a read-only select
	Default string
}

// FormSpec describes a modal form
type FormSpec struct {
	Title       string
	Heading     string
	SubmitLabel string
	Fields      []FormField
}

// View is everything the controller needs from the presentation layer
type View interface {
	SetActionHandlers(h ActionHandlers)
	ShowRecords(records []models.StudentRecord)
	SetStatus(message string)
	ShowError(title, message string)
	ShowInfo(title, message string)
	ShowConfirm(title, message string, callback func(bool))
	ShowForm(spec FormSpec, submit SubmitFunc)
	ShowSaveDialog(defaultName string, callback func(w io.WriteCloser, location string, err error))
	ShowChart(title string, img image.Image)
}
