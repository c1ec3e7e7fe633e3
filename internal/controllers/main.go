package controllers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"student-records/internal/export"
	"student-records/internal/gateway"
	"student-records/internal/logger"
	"student-records/internal/models"
)

const component = "MainController"

// ExportFileName is suggested in the export save dialog
const ExportFileName = "students.xlsx"

// State is the controller's position in the per-action state machine
type State int

const (
	StateIdle State = iota
	StateEditing
)

func (s State) String() string {
	if s == StateEditing {
		return "editing"
	}
	return "idle"
}

// Action names the modal currently being edited
type Action string

const (
	ActionNone   Action = ""
	ActionAdd    Action = "add"
	ActionSearch Action = "search"
	ActionUpdate Action = "update"
)

// MainController orchestrates user actions between the view and the gateway
type MainController struct {
	ctx      context.Context
	store    StudentStore
	render   ChartRenderer
	logger   logger.Logger
	mainView View
	onQuit   func()

	mu       sync.Mutex
	state    State
	action   Action
	current  []models.StudentRecord
	selected int
}

// NewMainController creates a controller. onQuit runs after the user confirms quitting.
func NewMainController(ctx context.Context, store StudentStore, render ChartRenderer, log logger.Logger, onQuit func()) *MainController {
	if log == nil {
		log = logger.NoOpLogger{}
	}
	return &MainController{
		ctx:      ctx,
		store:    store,
		render:   render,
		logger:   log,
		onQuit:   onQuit,
		selected: -1,
		current:  []models.StudentRecord{},
	}
}

// SetMainView associates the main view with this controller and performs the initial load
func (mc *MainController) SetMainView(view View) {
	mc.mainView = view
	mc.setupViewEventHandlers()
	mc.ShowAll()
}

func (mc *MainController) setupViewEventHandlers() {
	mc.mainView.SetActionHandlers(ActionHandlers{
		OnAdd:       mc.OpenAdd,
		OnSearch:    mc.OpenSearch,
		OnUpdate:    mc.OpenUpdate,
		OnDelete:    mc.RequestDelete,
		OnShowAll:   mc.ShowAll,
		OnExport:    mc.Export,
		OnAnalytics: mc.ShowAnalytics,
		OnSelect:    mc.Select,
		OnUnselect:  func() { mc.Select(-1) },
		OnFormClose: mc.CancelEditing,
		OnQuit:      mc.RequestQuit,
	})
}

// State returns the current state and the action being edited
func (mc *MainController) State() (State, Action) {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	return mc.state, mc.action
}

// Records returns the result set currently displayed
func (mc *MainController) Records() []models.StudentRecord {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	out := make([]models.StudentRecord, len(mc.current))
	copy(out, mc.current)
	return out
}

// Select marks a table row as the target of update and delete; -1 clears it
func (mc *MainController) Select(row int) {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	if row < 0 || row >= len(mc.current) {
		mc.selected = -1
		return
	}
	mc.selected = row
}

// ShowAll reloads every record and returns to idle
func (mc *MainController) ShowAll() {
	mc.setState(StateIdle, ActionNone)

	records, err := mc.store.FetchAll(mc.ctx)
	if err != nil {
		mc.handleError("Fetch Error", "Error fetching students", err)
		records = []models.StudentRecord{}
	}
	mc.display(records)

	if len(records) > 0 {
		mc.mainView.SetStatus(fmt.Sprintf("Showing %d records.", len(records)))
	} else {
		mc.mainView.SetStatus("No records found.")
	}
}

// OpenAdd shows the add-student form
func (mc *MainController) OpenAdd() {
	mc.setState(StateEditing, ActionAdd)
	mc.mainView.ShowForm(FormSpec{
		Title:       "Add New Student",
		SubmitLabel: "Add Student",
		Fields: []FormField{
			{Key: KeyRollNo, Label: "Roll No:"},
			{Key: KeyName, Label: "Name:"},
			{Key: KeyFathersName, Label: "Father's Name:"},
			{Key: KeySubject, Label: "Subject:"},
			{Key: KeyGrade, Label: "Grade:"},
		},
	}, mc.SubmitAdd)
}

// SubmitAdd validates and stores a new student
func (mc *MainController) SubmitAdd(values map[string]string) error {
	rec, err := ParseStudent(values)
	if err != nil {
		mc.mainView.ShowError("Error", err.Error())
		return err
	}

	if err := mc.store.Add(mc.ctx, rec); err != nil {
		switch gateway.KindOf(err) {
		case gateway.KindDuplicate:
			mc.logger.Warning(component, "duplicate roll number", map[string]interface{}{"roll_no": rec.RollNo})
			mc.mainView.ShowError("Error", fmt.Sprintf("A student with Roll No %d already exists.", rec.RollNo))
		default:
			mc.handleError("Add Error", "Error adding student", err)
		}
		mc.mainView.SetStatus("Failed to add student.")
		return err
	}

	mc.ShowAll()
	mc.mainView.SetStatus(fmt.Sprintf("Student %s added successfully.", rec.Name))
	return nil
}

// OpenSearch shows the search form
func (mc *MainController) OpenSearch() {
	mc.setState(StateEditing, ActionSearch)
	mc.mainView.ShowForm(FormSpec{
		Title:       "Search Student",
		SubmitLabel: "Search",
		Fields: []FormField{
			{Key: KeyField, Label: "Search By:", Options: models.FieldNames(models.SearchableFields), Default: models.FieldRollNo.String()},
			{Key: KeyValue, Label: "Search Value:"},
		},
	}, mc.SubmitSearch)
}

// SubmitSearch filters the table by one whitelisted field
func (mc *MainController) SubmitSearch(values map[string]string) error {
	field, value, err := ParseSearch(values)
	if err != nil {
		mc.mainView.ShowError("Error", err.Error())
		return err
	}

	results, err := mc.store.SearchBy(mc.ctx, field, value)
	if err != nil {
		mc.handleError("Search Error", "Error searching for students", err)
		return err
	}

	mc.setState(StateIdle, ActionNone)
	mc.display(results)
	if len(results) > 0 {
		mc.mainView.SetStatus(fmt.Sprintf("Found %d record(s).", len(results)))
	} else {
		mc.mainView.SetStatus("No matching records found.")
	}
	return nil
}

// OpenUpdate shows the update form for the selected record
func (mc *MainController) OpenUpdate() {
	rec, ok := mc.selectedRecord()
	if !ok {
		mc.mainView.ShowError("Error", "Please select a student from the table to update.")
		return
	}

	mc.setState(StateEditing, ActionUpdate)
	mc.mainView.ShowForm(FormSpec{
		Title:       "Update Student Record",
		Heading:     fmt.Sprintf("Updating Roll No: %d", rec.RollNo),
		SubmitLabel: "Update",
		Fields: []FormField{
			{Key: KeyField, Label: "Field to Update:", Options: models.FieldNames(models.UpdatableFields), Default: models.FieldName.String()},
			{Key: KeyValue, Label: "New Value:"},
		},
	}, func(values map[string]string) error {
		return mc.SubmitUpdate(rec.RollNo, values)
	})
}

// SubmitUpdate changes one field of the record identified by rollNo
func (mc *MainController) SubmitUpdate(rollNo int64, values map[string]string) error {
	field, value, err := ParseUpdate(values)
	if err != nil {
		mc.mainView.ShowError("Error", err.Error())
		return err
	}

	if err := mc.store.UpdateField(mc.ctx, rollNo, field, value); err != nil {
		switch gateway.KindOf(err) {
		case gateway.KindInvalidField:
			mc.mainView.ShowError("Error", "Invalid field selected for update.")
		case gateway.KindNotFound:
			mc.mainView.ShowError("Update Error", fmt.Sprintf("No student with Roll No %d exists.", rollNo))
		default:
			mc.handleError("Update Error", "Error updating student", err)
		}
		mc.mainView.SetStatus("Failed to update record.")
		return err
	}

	mc.ShowAll()
	mc.mainView.SetStatus(fmt.Sprintf("Record for Roll No %d updated.", rollNo))
	return nil
}

// RequestDelete asks for confirmation before removing the selected record
func (mc *MainController) RequestDelete() {
	rec, ok := mc.selectedRecord()
	if !ok {
		mc.mainView.ShowError("Error", "Please select a student from the table to remove.")
		return
	}

	msg := fmt.Sprintf("Are you sure you want to remove %s (Roll No: %d)?", rec.Name, rec.RollNo)
	mc.mainView.ShowConfirm("Confirm Delete", msg, func(confirmed bool) {
		if !confirmed {
			return
		}
		mc.delete(rec)
	})
}

func (mc *MainController) delete(rec models.StudentRecord) {
	if err := mc.store.DeleteByRollNo(mc.ctx, rec.RollNo); err != nil {
		if gateway.KindOf(err) == gateway.KindNotFound {
			mc.mainView.ShowError("Delete Error", fmt.Sprintf("No student with Roll No %d exists.", rec.RollNo))
		} else {
			mc.handleError("Delete Error", "Error deleting student", err)
		}
		mc.mainView.SetStatus("Failed to remove student.")
		return
	}

	mc.ShowAll()
	mc.mainView.SetStatus(fmt.Sprintf("Student %s removed.", rec.Name))
}

// Export writes the displayed records to a user-chosen spreadsheet
func (mc *MainController) Export() {
	records := mc.Records()
	if len(records) == 0 {
		mc.mainView.ShowInfo("No Data", "There is no data to export.")
		return
	}

	mc.mainView.ShowSaveDialog(ExportFileName, func(w io.WriteCloser, location string, err error) {
		if err != nil {
			mc.handleError("Export Error", "An error occurred", err)
			return
		}
		if w == nil {
			return
		}

		writeErr := export.WriteXLSX(w, records)
		closeErr := w.Close()
		if err := errors.Join(writeErr, closeErr); err != nil {
			mc.handleError("Export Error", "An error occurred", err)
			return
		}

		mc.logger.Info(component, "records exported", map[string]interface{}{
			"location": location,
			"records":  len(records),
		})
		mc.mainView.ShowInfo("Success", fmt.Sprintf("Data exported successfully to %s", location))
		mc.mainView.SetStatus("Data exported to Excel.")
	})
}

// ShowAnalytics renders the grade distribution chart
func (mc *MainController) ShowAnalytics() {
	dist, err := mc.store.GradeDistribution(mc.ctx)
	if err != nil {
		mc.handleError("Analytics Error", "Error fetching grade data", err)
		return
	}
	if len(dist) == 0 {
		mc.mainView.ShowInfo("No Data", "Not enough data to generate analytics.")
		return
	}

	img, err := mc.render(dist)
	if err != nil {
		mc.handleError("Analytics Error", "Error rendering chart", err)
		return
	}
	mc.mainView.ShowChart("Student Analytics", img)
}

// RequestQuit asks for confirmation and then runs the quit hook
func (mc *MainController) RequestQuit() {
	mc.mainView.ShowConfirm("Quit", "Do you want to quit?", func(confirmed bool) {
		if confirmed && mc.onQuit != nil {
			mc.onQuit()
		}
	})
}

// CancelEditing returns to idle when a form is dismissed without submitting
func (mc *MainController) CancelEditing() {
	mc.setState(StateIdle, ActionNone)
}

func (mc *MainController) display(records []models.StudentRecord) {
	mc.mu.Lock()
	mc.current = records
	mc.selected = -1
	mc.mu.Unlock()

	mc.mainView.ShowRecords(records)
}

func (mc *MainController) selectedRecord() (models.StudentRecord, bool) {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	if mc.selected < 0 || mc.selected >= len(mc.current) {
		return models.StudentRecord{}, false
	}
	return mc.current[mc.selected], true
}

func (mc *MainController) setState(s State, a Action) {
	mc.mu.Lock()
	mc.state = s
	mc.action = a
	mc.mu.Unlock()
}

func (mc *MainController) handleError(title, prefix string, err error) {
	mc.logger.Error(component, err, map[string]interface{}{"title": title})
	mc.mainView.ShowError(title, fmt.Sprintf("%s: %v", prefix, err))
}
