package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// OptionsPanel is the column of action buttons on the left of the main window
type OptionsPanel struct {
	container *fyne.Container

	AddButton       *widget.Button
	SearchButton    *widget.Button
	UpdateButton    *widget.Button
	RemoveButton    *widget.Button
	ShowAllButton   *widget.Button
	ExportButton    *widget.Button
	AnalyticsButton *widget.Button
}

// NewOptionsPanel creates the options panel with unwired buttons
func NewOptionsPanel() *OptionsPanel {
	p := &OptionsPanel{}
	p.createComponents()
	p.buildLayout()
	return p
}

func (p *OptionsPanel) createComponents() {
	p.AddButton = widget.NewButtonWithIcon("Add Student", theme.ContentAddIcon(), nil)
	p.AddButton.Importance = widget.SuccessImportance

	p.SearchButton = widget.NewButtonWithIcon("Search Student", theme.SearchIcon(), nil)
	p.SearchButton.Importance = widget.HighImportance

	p.UpdateButton = widget.NewButtonWithIcon("Update Record", theme.DocumentCreateIcon(), nil)
	p.UpdateButton.Importance = widget.WarningImportance

	p.RemoveButton = widget.NewButtonWithIcon("Remove Student", theme.DeleteIcon(), nil)
	p.RemoveButton.Importance = widget.DangerImportance

	p.ShowAllButton = widget.NewButtonWithIcon("Show All", theme.ViewRefreshIcon(), nil)

	p.ExportButton = widget.NewButtonWithIcon("Export to Excel", theme.DocumentSaveIcon(), nil)
	p.ExportButton.Importance = widget.HighImportance

	p.AnalyticsButton = widget.NewButtonWithIcon("Show Analytics", theme.InfoIcon(), nil)
}

func (p *OptionsPanel) buildLayout() {
	heading := widget.NewLabelWithStyle("Advanced Features", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})

	p.container = container.NewVBox(
		p.AddButton,
		p.SearchButton,
		p.UpdateButton,
		p.RemoveButton,
		p.ShowAllButton,
		widget.NewSeparator(),
		heading,
		p.ExportButton,
		p.AnalyticsButton,
	)
}

// SetHandlers wires button taps; nil handlers leave the button inert
func (p *OptionsPanel) SetHandlers(onAdd, onSearch, onUpdate, onRemove, onShowAll, onExport, onAnalytics func()) {
	p.AddButton.OnTapped = onAdd
	p.SearchButton.OnTapped = onSearch
	p.UpdateButton.OnTapped = onUpdate
	p.RemoveButton.OnTapped = onRemove
	p.ShowAllButton.OnTapped = onShowAll
	p.ExportButton.OnTapped = onExport
	p.AnalyticsButton.OnTapped = onAnalytics
}

// GetContainer returns the panel container
func (p *OptionsPanel) GetContainer() *fyne.Container {
	return p.container
}
