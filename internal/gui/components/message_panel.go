package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// Severity selects the icon and register of a message.
type Severity int

const (
	SeverityInfo Severity = iota
	SeveritySuccess
	SeverityWarning
	SeverityError
)

// MessagePanel is a centered card for informational messages.
type MessagePanel struct {
	container    *fyne.Container
	icon         *widget.Icon
	messageLabel *widget.Label
}

func NewMessagePanel(message string) *MessagePanel {
	icon := widget.NewIcon(theme.InfoIcon())

	messageLabel := widget.NewLabelWithStyle(message, fyne.TextAlignCenter, fyne.TextStyle{})
	messageLabel.Wrapping = fyne.TextWrapWord

	mainContainer := container.NewVBox(
		container.NewCenter(icon),
		messageLabel,
	)

	return &MessagePanel{
		container:    mainContainer,
		icon:         icon,
		messageLabel: messageLabel,
	}
}

func (mp *MessagePanel) GetContainer() *fyne.Container {
	return mp.container
}

func (mp *MessagePanel) SetMessage(message string) {
	mp.messageLabel.SetText(message)
}

// SetSeverity swaps the icon to match the message register.
func (mp *MessagePanel) SetSeverity(severity Severity) {
	switch severity {
	case SeveritySuccess:
		mp.icon.SetResource(theme.ConfirmIcon())
	case SeverityWarning:
		mp.icon.SetResource(theme.WarningIcon())
	case SeverityError:
		mp.icon.SetResource(theme.ErrorIcon())
	default:
		mp.icon.SetResource(theme.InfoIcon())
	}
}

// Show displays a message with the given severity in one call.
func (mp *MessagePanel) Show(severity Severity, message string) {
	mp.SetSeverity(severity)
	mp.SetMessage(message)
}
