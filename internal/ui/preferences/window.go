package preferences

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Window handles the preferences UI.
type Window struct {
	window        fyne.Window
	settings      Settings
	onSave        func(Settings)
	tickInterval  *widget.Entry
	speechCommand *widget.Entry
	speechLocale  *widget.Entry
	continuous    *widget.Check
	interim       *widget.Check
	darkMode      *widget.Check
}

// New creates a preferences window.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("Stopwatch Settings")

	tickInterval := widget.NewEntry()
	speechCommand := widget.NewEntry()
	speechCommand.SetPlaceHolder("recognizer command printing one transcript per line")
	speechLocale := widget.NewEntry()
	continuous := widget.NewCheck("Continuous listening", nil)
	interim := widget.NewCheck("Act on interim results", nil)
	darkMode := widget.NewCheck("Dark mode", nil)

	form := container.NewVBox(
		widget.NewLabelWithStyle("Display", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewBorder(nil, nil, widget.NewLabel("Refresh every"), widget.NewLabel("ms"), tickInterval),
		darkMode,
		widget.NewLabelWithStyle("Voice control", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewBorder(nil, nil, widget.NewLabel("Recognizer"), nil, speechCommand),
		container.NewBorder(nil, nil, widget.NewLabel("Locale"), nil, speechLocale),
		continuous,
		interim,
		widget.NewLabel("Refresh and voice changes apply on next launch."),
	)

	saveButton := widget.NewButton("Save", nil)
	cancelButton := widget.NewButton("Cancel", nil)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(460, 360))
	window.SetCloseIntercept(window.Hide)

	prefs := &Window{
		window:        window,
		onSave:        onSave,
		tickInterval:  tickInterval,
		speechCommand: speechCommand,
		speechLocale:  speechLocale,
		continuous:    continuous,
		interim:       interim,
		darkMode:      darkMode,
	}
	prefs.UpdateSettings(settings)

	saveButton.OnTapped = prefs.handleSave
	cancelButton.OnTapped = window.Hide

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.tickInterval.SetText(fmt.Sprintf("%d", settings.TickInterval.Milliseconds()))
	prefs.speechCommand.SetText(settings.SpeechCommand)
	prefs.speechLocale.SetText(settings.SpeechLocale)
	prefs.continuous.SetChecked(settings.Continuous)
	prefs.interim.SetChecked(settings.InterimResults)
	prefs.darkMode.SetChecked(settings.DarkMode)
}

func (prefs *Window) handleSave() {
	settings := prefs.settings

	if millis, ok := parsePositiveInt(prefs.tickInterval.Text); ok {
		settings.TickInterval = time.Duration(millis) * time.Millisecond
	}
	settings.SpeechCommand = strings.TrimSpace(prefs.speechCommand.Text)
	if locale := strings.TrimSpace(prefs.speechLocale.Text); locale != "" {
		settings.SpeechLocale = locale
	}
	settings.Continuous = prefs.continuous.Checked
	settings.InterimResults = prefs.interim.Checked
	settings.DarkMode = prefs.darkMode.Checked

	prefs.settings = settings
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

func parsePositiveInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}
