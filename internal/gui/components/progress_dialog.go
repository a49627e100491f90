package components

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// ProgressDialog is a modal dialog showing percent progress for a
// background run, with a Cancel button. It closes itself when progress
// reaches 100.
type ProgressDialog struct {
	dialog       *dialog.CustomDialog
	messageLabel *widget.Label
	progressBar  *widget.ProgressBar
	cancelButton *widget.Button

	cancelHandler func()
	finished      bool
}

func NewProgressDialog(title, message string, window fyne.Window) *ProgressDialog {
	pd := &ProgressDialog{}

	pd.messageLabel = widget.NewLabelWithStyle(message, fyne.TextAlignCenter, fyne.TextStyle{})
	pd.messageLabel.Wrapping = fyne.TextWrapWord

	pd.progressBar = widget.NewProgressBar()
	pd.progressBar.TextFormatter = func() string {
		return fmt.Sprintf("%.0f%%", pd.progressBar.Value*100)
	}

	pd.cancelButton = widget.NewButton("Cancel", pd.onCancel)

	content := container.NewVBox(
		pd.messageLabel,
		pd.progressBar,
		container.NewHBox(widget.NewLabel(""), pd.cancelButton),
	)

	pd.dialog = dialog.NewCustomWithoutButtons(title, content, window)
	pd.dialog.Resize(fyne.NewSize(400, 0))

	return pd
}

func (pd *ProgressDialog) SetCancelHandler(handler func()) {
	pd.cancelHandler = handler
}

func (pd *ProgressDialog) Show() {
	pd.dialog.Show()
}

func (pd *ProgressDialog) Hide() {
	pd.dialog.Hide()
}

// UpdateProgress sets the 0-100 progress value and optionally replaces the
// message. At 100 the dialog closes.
func (pd *ProgressDialog) UpdateProgress(value int, message string) {
	if pd.finished {
		return
	}

	pd.progressBar.SetValue(float64(value) / 100)
	if message != "" {
		pd.messageLabel.SetText(message)
	}

	if value >= 100 {
		pd.finished = true
		pd.dialog.Hide()
	}
}

func (pd *ProgressDialog) onCancel() {
	if pd.cancelHandler != nil {
		pd.cancelHandler()
	}
	pd.finished = true
	pd.dialog.Hide()
}
