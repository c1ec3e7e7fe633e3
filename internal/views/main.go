package views

import (
	"image"
	"io"

	"student-records/internal/controllers"
	"student-records/internal/models"
	"student-records/internal/views/components"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

const (
	// WindowTitle is the title of the main window and the banner text
	WindowTitle = "Student Record Management System"

	chartWidth  = 600
	chartHeight = 500
)

// MainView is the Fyne implementation of controllers.View
type MainView struct {
	app    fyne.App
	window fyne.Window

	mainContainer *fyne.Container
	banner        *canvas.Text
	options       *components.OptionsPanel
	table         *components.RecordsTable
	statusBar     *components.StatusBar

	handlers controllers.ActionHandlers
}

var _ controllers.View = (*MainView)(nil)

// NewMainView builds the main window content
func NewMainView(app fyne.App, window fyne.Window) *MainView {
	view := &MainView{
		app:    app,
		window: window,
	}

	view.initializeComponents()
	view.buildLayout()
	view.setupEventHandlers()

	return view
}

func (mv *MainView) initializeComponents() {
	mv.banner = canvas.NewText(WindowTitle, theme.Color(theme.ColorNamePrimary))
	mv.banner.TextSize = 28
	mv.banner.TextStyle = fyne.TextStyle{Bold: true}
	mv.banner.Alignment = fyne.TextAlignCenter

	mv.options = components.NewOptionsPanel()
	mv.table = components.NewRecordsTable()
	mv.statusBar = components.NewStatusBar()
}

func (mv *MainView) buildLayout() {
	top := container.NewVBox(
		container.NewPadded(mv.banner),
		widget.NewSeparator(),
	)

	optionsCard := widget.NewCard("Options", "", mv.options.GetContainer())
	detailsCard := widget.NewCard("Student Details", "", mv.table.Widget())

	mv.mainContainer = container.NewBorder(
		top,
		mv.statusBar.GetContainer(),
		optionsCard,
		nil,
		detailsCard,
	)

	mv.window.SetContent(mv.mainContainer)
}

func (mv *MainView) setupEventHandlers() {
	mv.options.SetHandlers(
		func() { call(mv.handlers.OnAdd) },
		func() { call(mv.handlers.OnSearch) },
		func() { call(mv.handlers.OnUpdate) },
		func() { call(mv.handlers.OnDelete) },
		func() { call(mv.handlers.OnShowAll) },
		func() { call(mv.handlers.OnExport) },
		func() { call(mv.handlers.OnAnalytics) },
	)

	mv.table.SetSelectionHandlers(
		func(row int) {
			if mv.handlers.OnSelect != nil {
				mv.handlers.OnSelect(row)
			}
		},
		func() { call(mv.handlers.OnUnselect) },
	)

	mv.window.SetCloseIntercept(func() {
		call(mv.handlers.OnQuit)
	})
}

func call(fn func()) {
	if fn != nil {
		fn()
	}
}

// SetActionHandlers connects user actions to the controller
func (mv *MainView) SetActionHandlers(h controllers.ActionHandlers) {
	mv.handlers = h
}

// ShowRecords replaces the table contents
func (mv *MainView) ShowRecords(records []models.StudentRecord) {
	mv.table.SetRecords(records)
	mv.statusBar.SetRowCount(len(records))
}

// SetStatus updates the status bar message
func (mv *MainView) SetStatus(message string) {
	mv.statusBar.SetStatus(message)
}

// ShowError displays an error dialog with its own title
func (mv *MainView) ShowError(title, message string) {
	content := container.NewHBox(
		widget.NewIcon(theme.ErrorIcon()),
		widget.NewLabel(message),
	)
	dialog.ShowCustom(title, "OK", content, mv.window)
}

// ShowInfo displays an information dialog
func (mv *MainView) ShowInfo(title, message string) {
	dialog.ShowInformation(title, message, mv.window)
}

// ShowConfirm displays a yes/no dialog
func (mv *MainView) ShowConfirm(title, message string, callback func(bool)) {
	dialog.ShowConfirm(title, message, callback, mv.window)
}

// ShowForm opens a modal form. The dialog stays open while submit returns an error.
func (mv *MainView) ShowForm(spec controllers.FormSpec, submit controllers.SubmitFunc) {
	form, values := buildForm(spec)

	var d dialog.Dialog
	form.OnSubmit = func() {
		if err := submit(values()); err == nil {
			d.Hide()
		}
	}
	form.OnCancel = func() {
		d.Hide()
	}

	content := fyne.CanvasObject(form)
	if spec.Heading != "" {
		heading := widget.NewLabelWithStyle(spec.Heading, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
		content = container.NewVBox(heading, form)
	}

	d = dialog.NewCustomWithoutButtons(spec.Title, content, mv.window)
	d.SetOnClosed(func() {
		call(mv.handlers.OnFormClose)
	})
	d.Resize(fyne.NewSize(420, 0))
	d.Show()
}

// buildForm creates the widgets for spec and a function reading their current values
func buildForm(spec controllers.FormSpec) (*widget.Form, func() map[string]string) {
	form := widget.NewForm()
	if spec.SubmitLabel != "" {
		form.SubmitText = spec.SubmitLabel
	}

	readers := make(map[string]func() string, len(spec.Fields))
	for _, f := range spec.Fields {
		if len(f.Options) > 0 {
			sel := widget.NewSelect(f.Options, nil)
			if f.Default != "" {
				sel.SetSelected(f.Default)
			}
			readers[f.Key] = func() string { return sel.Selected }
			form.Append(f.Label, sel)
			continue
		}

		entry := widget.NewEntry()
		entry.SetText(f.Default)
		readers[f.Key] = func() string { return entry.Text }
		form.Append(f.Label, entry)
	}

	values := func() map[string]string {
		out := make(map[string]string, len(readers))
		for k, read := range readers {
			out[k] = read()
		}
		return out
	}
	return form, values
}

// ShowSaveDialog asks for a destination file and hands the opened writer to callback.
// Cancelling invokes nothing.
func (mv *MainView) ShowSaveDialog(defaultName string, callback func(w io.WriteCloser, location string, err error)) {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			callback(nil, "", err)
			return
		}
		if writer == nil {
			return
		}
		callback(writer, writer.URI().Path(), nil)
	}, mv.window)

	d.SetFileName(defaultName)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".xlsx"}))
	d.Show()
}

// ShowChart opens a separate window holding img
func (mv *MainView) ShowChart(title string, img image.Image) {
	w := mv.app.NewWindow(title)

	chart := canvas.NewImageFromImage(img)
	chart.FillMode = canvas.ImageFillContain
	chart.SetMinSize(fyne.NewSize(chartWidth-40, chartHeight-40))

	w.SetContent(container.NewPadded(chart))
	w.Resize(fyne.NewSize(chartWidth, chartHeight))
	w.Show()
}

// Window returns the main window
func (mv *MainView) Window() fyne.Window {
	return mv.window
}

// Table returns the records table component
func (mv *MainView) Table() *components.RecordsTable {
	return mv.table
}

// StatusBar returns the status bar component
func (mv *MainView) StatusBar() *components.StatusBar {
	return mv.statusBar
}

// Options returns the options panel
func (mv *MainView) Options() *components.OptionsPanel {
	return mv.options
}
