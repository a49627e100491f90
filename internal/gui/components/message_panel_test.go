package components

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
)

func TestMessagePanelSetMessage(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	panel := NewMessagePanel("hello")
	assert.Equal(t, "hello", panel.messageLabel.Text)

	panel.SetMessage("updated")
	assert.Equal(t, "updated", panel.messageLabel.Text)
}

func TestMessagePanelShow(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	panel := NewMessagePanel("")
	panel.Show(SeverityError, "something failed")

	assert.Equal(t, "something failed", panel.messageLabel.Text)
}

func TestProgressDialogUpdate(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	pd := NewProgressDialog("Working", "Please wait...", a.NewWindow("test"))

	pd.UpdateProgress(40, "Generating Planet Positions...")
	assert.InDelta(t, 0.4, pd.progressBar.Value, 1e-9)
	assert.Equal(t, "Generating Planet Positions...", pd.messageLabel.Text)

	// Empty message keeps the previous text.
	pd.UpdateProgress(60, "")
	assert.Equal(t, "Generating Planet Positions...", pd.messageLabel.Text)

	pd.UpdateProgress(100, "done")
	assert.True(t, pd.finished)

	// Updates after completion are ignored.
	pd.UpdateProgress(10, "late")
	assert.True(t, pd.finished)
}

func TestProgressDialogCancel(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	pd := NewProgressDialog("Working", "Please wait...", a.NewWindow("test"))

	cancelled := false
	pd.SetCancelHandler(func() { cancelled = true })
	pd.onCancel()

	assert.True(t, cancelled)
	assert.True(t, pd.finished)
}
