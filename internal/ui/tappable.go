package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
)

// tapArea wraps any canvas object and reports taps on it. A tapArea with a
// nil callback still swallows taps so they never reach what lies beneath.
type tapArea struct {
	widget.BaseWidget
	content  fyne.CanvasObject
	onTapped func()
}

func newTapArea(content fyne.CanvasObject, onTapped func()) *tapArea {
	t := &tapArea{content: content, onTapped: onTapped}
	t.ExtendBaseWidget(t)
	return t
}

// CreateRenderer is a mandatory method for a Fyne widget.
func (t *tapArea) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(t.content)
}

// Tapped is called when the widget is tapped.
func (t *tapArea) Tapped(_ *fyne.PointEvent) {
	if t.onTapped != nil {
		t.onTapped()
	}
}

// closeButton is an icon button that also fires on Escape while it holds
// focus. Focused widgets receive key events before the canvas handler.
type closeButton struct {
	widget.Button
}

func newCloseButton(icon fyne.Resource, onTapped func()) *closeButton {
	b := &closeButton{}
	b.Icon = icon
	b.OnTapped = onTapped
	b.ExtendBaseWidget(b)
	return b
}

// TypedKey handles Escape and passes every other key to the button.
func (b *closeButton) TypedKey(ev *fyne.KeyEvent) {
	if ev.Name == fyne.KeyEscape {
		if b.OnTapped != nil && !b.Disabled() {
			b.OnTapped()
		}
		return
	}
	b.Button.TypedKey(ev)
}
