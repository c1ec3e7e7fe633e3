package components

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// DefaultStatus is shown before the first action completes
const DefaultStatus = "Welcome to Student Management System v2.0"

// StatusBar displays the outcome of the last action and the number of rows shown
type StatusBar struct {
	container   *fyne.Container
	statusLabel *widget.Label
	countLabel  *widget.Label
}

// NewStatusBar creates a new status bar component
func NewStatusBar() *StatusBar {
	sb := &StatusBar{}
	sb.createComponents()
	sb.buildLayout()
	return sb
}

func (sb *StatusBar) createComponents() {
	sb.statusLabel = widget.NewLabel(DefaultStatus)
	sb.statusLabel.Truncation = fyne.TextTruncateEllipsis
	sb.countLabel = widget.NewLabel("Rows: --")
}

func (sb *StatusBar) buildLayout() {
	sb.container = container.NewBorder(
		widget.NewSeparator(),
		nil,
		nil,
		sb.countLabel,
		sb.statusLabel,
	)
}

// SetStatus updates the main status message
func (sb *StatusBar) SetStatus(status string) {
	sb.statusLabel.SetText(status)
}

// GetStatus returns the current status message
func (sb *StatusBar) GetStatus() string {
	return sb.statusLabel.Text
}

// SetRowCount updates the displayed row counter
func (sb *StatusBar) SetRowCount(n int) {
	sb.countLabel.SetText(fmt.Sprintf("Rows: %d", n))
}

// Reset restores the initial texts
func (sb *StatusBar) Reset() {
	sb.statusLabel.SetText(DefaultStatus)
	sb.countLabel.SetText("Rows: --")
}

// GetContainer returns the status bar container
func (sb *StatusBar) GetContainer() *fyne.Container {
	return sb.container
}
