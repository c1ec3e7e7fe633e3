package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"

	"student-records/internal/models"
)

var columnWidths = []float32{100, 200, 200, 150, 100}

// RecordsTable shows student rows under fixed column headings
type RecordsTable struct {
	table   *widget.Table
	records []models.StudentRecord

	onSelect   func(row int)
	onUnselect func()
}

// NewRecordsTable creates an empty records table
func NewRecordsTable() *RecordsTable {
	rt := &RecordsTable{}
	rt.createTable()
	return rt
}

func (rt *RecordsTable) createTable() {
	rt.table = widget.NewTable(
		func() (int, int) {
			return len(rt.records), len(models.AllFields)
		},
		func() fyne.CanvasObject {
			l := widget.NewLabel("")
			l.Truncation = fyne.TextTruncateEllipsis
			return l
		},
		func(id widget.TableCellID, o fyne.CanvasObject) {
			o.(*widget.Label).SetText(rt.Cell(id.Row, id.Col))
		},
	)

	rt.table.ShowHeaderRow = true
	rt.table.CreateHeader = func() fyne.CanvasObject {
		return widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	}
	rt.table.UpdateHeader = func(id widget.TableCellID, o fyne.CanvasObject) {
		if id.Col >= 0 && id.Col < len(models.AllFields) {
			o.(*widget.Label).SetText(models.AllFields[id.Col].Label())
		}
	}

	for i, w := range columnWidths {
		rt.table.SetColumnWidth(i, w)
	}

	rt.table.OnSelected = func(id widget.TableCellID) {
		if rt.onSelect != nil {
			rt.onSelect(id.Row)
		}
	}
	rt.table.OnUnselected = func(widget.TableCellID) {
		if rt.onUnselect != nil {
			rt.onUnselect()
		}
	}
}

// SetSelectionHandlers registers row selection callbacks
func (rt *RecordsTable) SetSelectionHandlers(onSelect func(row int), onUnselect func()) {
	rt.onSelect = onSelect
	rt.onUnselect = onUnselect
}

// SetRecords replaces the displayed rows and clears the selection
func (rt *RecordsTable) SetRecords(records []models.StudentRecord) {
	rt.records = records
	rt.table.UnselectAll()
	rt.table.ScrollToTop()
	rt.table.Refresh()
}

// Len returns the number of displayed rows
func (rt *RecordsTable) Len() int {
	return len(rt.records)
}

// Cell returns the display text at row, col
func (rt *RecordsTable) Cell(row, col int) string {
	if row < 0 || row >= len(rt.records) || col < 0 || col >= len(models.AllFields) {
		return ""
	}
	return rt.records[row].Get(models.AllFields[col])
}

// Widget returns the underlying table
func (rt *RecordsTable) Widget() *widget.Table {
	return rt.table
}
