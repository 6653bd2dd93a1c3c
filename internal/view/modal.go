package view

import (
	"fygallery/internal/anim"
	"fygallery/internal/catalog"
)

// ModalState is the observable state of the overlay. Open implies Image
// is set; after a close, Image stays until the closing transition ends.
type ModalState struct {
	Open  bool
	Image *catalog.Image
}

// OverlayTarget identifies what a tap on the open overlay landed on.
type OverlayTarget int

const (
	// TargetBackdrop is the dimmed area outside the content box.
	TargetBackdrop OverlayTarget = iota
	// TargetContent is the content box itself.
	TargetContent
)

// ModalState returns the current modal state.
func (v *View) ModalState() ModalState {
	return v.modal
}

// ShowModal opens the overlay on img. Focus moves to the close control
// once the opening transition has started.
func (v *View) ShowModal(img catalog.Image) {
	v.modalGen++
	gen := v.modalGen
	snapshot := img
	snapshot.Categories = append(catalog.Categories(nil), img.Categories...)
	snapshot.Keywords = append([]string(nil), img.Keywords...)
	v.modal = ModalState{Open: true, Image: &snapshot}

	v.el.Modal.SetImage(img.URL, img.Title)
	v.el.Modal.SetKeywords(append([]string(nil), img.Keywords...))
	v.el.Modal.SetVisible(true)
	v.el.Page.SetScrollLocked(true)

	v.sched.AfterFunc(anim.ModalFocusDelay, func() {
		if v.modal.Open && v.modalGen == gen {
			v.el.Modal.FocusClose()
		}
	})
}

// HideModal closes the overlay. Content is cleared only after the
// closing transition, and not at all if the modal was reopened meanwhile.
func (v *View) HideModal() {
	if !v.modal.Open {
		return
	}
	v.modal.Open = false
	v.el.Modal.SetVisible(false)
	v.el.Page.SetScrollLocked(false)

	gen := v.modalGen
	v.sched.AfterFunc(anim.ModalCloseDuration, func() {
		if v.modal.Open || v.modalGen != gen {
			return
		}
		v.el.Modal.SetImage("", "")
		v.el.Modal.SetKeywords(nil)
		v.modal.Image = nil
	})
}

// ClosePressed handles the dedicated close control.
func (v *View) ClosePressed() {
	v.HideModal()
}

// OverlayTapped handles taps on the open overlay. Taps inside the content
// box never close it.
func (v *View) OverlayTapped(target OverlayTarget) {
	if target == TargetBackdrop {
		v.HideModal()
	}
}
