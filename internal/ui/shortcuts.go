package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// shortcutHelp lists the key bindings shown in the help window.
var shortcutHelp = [][2]string{
	{"Previous Page", "Arrow Left"},
	{"Next Page", "Arrow Right"},
	{"Close Image", "Esc"},
	{"Search", "Enter (in the search field)"},
	{"Reset Filters", "Ctrl+R"},
	{"Quit Application", "Ctrl+Q"},
}

func (a *App) buildKeyboardShortcuts() {
	c := a.UI.MainWin.Canvas()

	// ctrl+q to quit application
	c.AddShortcut(&desktop.CustomShortcut{
		KeyName:  fyne.KeyQ,
		Modifier: a.UI.mainModKey,
	}, func(_ fyne.Shortcut) { a.app.Quit() })

	c.AddShortcut(&desktop.CustomShortcut{
		KeyName:  fyne.KeyR,
		Modifier: a.UI.mainModKey,
	}, func(_ fyne.Shortcut) { a.controller.ResetFilters() })

	c.SetOnTypedKey(a.typedKey)
}

func (a *App) typedKey(key *fyne.KeyEvent) {
	if key.Name == fyne.KeyEscape {
		a.view.HideModal()
		return
	}
	// page keys are inert behind the modal
	if a.view.ModalState().Open {
		return
	}
	switch key.Name {
	case fyne.KeyLeft:
		a.view.PrevPressed()
	case fyne.KeyRight:
		a.view.NextPressed()
	}
}

func (a *App) showShortcuts() {
	win := a.app.NewWindow("Keyboard Shortcuts")
	table := widget.NewTable(
		func() (int, int) { return len(shortcutHelp) + 1, 2 }, // +1 for header row
		func() fyne.CanvasObject {
			return widget.NewLabel("")
		},
		func(id widget.TableCellID, obj fyne.CanvasObject) {
			label := obj.(*widget.Label)
			if id.Row == 0 {
				label.SetText([]string{"Description", "Shortcut"}[id.Col])
				label.TextStyle.Bold = true
				return
			}
			label.SetText(shortcutHelp[id.Row-1][id.Col])
			label.TextStyle.Bold = false
		},
	)
	table.SetColumnWidth(0, 200)
	table.SetColumnWidth(1, 250)
	win.SetContent(table)
	win.Resize(fyne.NewSize(470, 300))
	win.Show()
}
