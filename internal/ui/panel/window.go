package panel

import (
	"image/color"

	"stopwatch/internal/core/stopwatch"
	"stopwatch/internal/core/voice"
	"stopwatch/internal/ui/palette"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// ColorTarget names a user-colorable part of the window.
type ColorTarget string

const (
	ColorBackground ColorTarget = "background"
	ColorText       ColorTarget = "text"
	ColorButton     ColorTarget = "button"
)

// Callbacks defines window action handlers.
type Callbacks struct {
	OnStart       func()
	OnPause       func()
	OnReset       func()
	OnLap         func()
	OnToggleVoice func()
	OnToggleTheme func()
	OnColorChange func(target ColorTarget, value color.Color)
	OnPreferences func()
}

// Window is the main stopwatch window.
type Window struct {
	app         fyne.App
	window      fyne.Window
	callbacks   Callbacks
	display     *canvas.Text
	laps        []string
	lapList     *widget.List
	voiceButton *widget.Button
	voiceStatus *widget.Label
	themeButton *widget.Button
}

// New creates the stopwatch window. Callbacks are attached with SetCallbacks.
func New(app fyne.App, title string) *Window {
	window := app.NewWindow(title)

	display := canvas.NewText(stopwatch.ZeroDisplay, theme.Color(theme.ColorNameForeground))
	display.Alignment = fyne.TextAlignCenter
	display.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	display.TextSize = 56

	panel := &Window{
		app:         app,
		window:      window,
		display:     display,
		voiceStatus: widget.NewLabel(""),
	}
	panel.voiceStatus.Wrapping = fyne.TextWrapWord

	startButton := widget.NewButtonWithIcon("Start", theme.MediaPlayIcon(), func() { panel.fire(panel.callbacks.OnStart) })
	startButton.Importance = widget.HighImportance
	pauseButton := widget.NewButtonWithIcon("Pause", theme.MediaPauseIcon(), func() { panel.fire(panel.callbacks.OnPause) })
	resetButton := widget.NewButtonWithIcon("Reset", theme.MediaReplayIcon(), func() { panel.fire(panel.callbacks.OnReset) })
	lapButton := widget.NewButtonWithIcon("Lap", theme.ContentAddIcon(), func() { panel.fire(panel.callbacks.OnLap) })

	panel.voiceButton = widget.NewButtonWithIcon(voice.LabelTurnOn, theme.VolumeUpIcon(), func() { panel.fire(panel.callbacks.OnToggleVoice) })
	panel.themeButton = widget.NewButton(palette.LabelToDark, func() { panel.fire(panel.callbacks.OnToggleTheme) })
	settingsButton := widget.NewButtonWithIcon("", theme.SettingsIcon(), func() { panel.fire(panel.callbacks.OnPreferences) })

	panel.lapList = widget.NewList(
		func() int { return len(panel.laps) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.ListItemID, item fyne.CanvasObject) {
			if id < len(panel.laps) {
				item.(*widget.Label).SetText(panel.laps[id])
			}
		},
	)

	controls := container.NewGridWithColumns(4, startButton, pauseButton, resetButton, lapButton)
	voiceRow := container.NewBorder(nil, nil, panel.voiceButton, nil, panel.voiceStatus)
	colorRow := container.NewGridWithColumns(3,
		panel.colorButton("Background", ColorBackground),
		panel.colorButton("Text", ColorText),
		panel.colorButton("Buttons", ColorButton),
	)
	themeRow := container.NewBorder(nil, nil, panel.themeButton, settingsButton, colorRow)

	top := container.NewVBox(
		container.NewPadded(display),
		controls,
		voiceRow,
		themeRow,
		widget.NewSeparator(),
		widget.NewLabelWithStyle("Laps", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
	)
	window.SetContent(container.NewBorder(top, nil, nil, nil, panel.lapList))
	window.Resize(fyne.NewSize(520, 560))
	window.SetMaster()

	return panel
}

// SetCallbacks attaches action handlers.
func (panel *Window) SetCallbacks(callbacks Callbacks) {
	panel.callbacks = callbacks
}

// Show displays the window.
func (panel *Window) Show() {
	panel.window.Show()
	panel.window.RequestFocus()
}

// ShowAndRun displays the window and runs the application loop.
func (panel *Window) ShowAndRun() {
	panel.window.ShowAndRun()
}

// ApplyPalette installs the palette as the application theme.
func (panel *Window) ApplyPalette(colors palette.Palette) {
	custom := palette.NewTheme(colors)
	panel.app.Settings().SetTheme(custom)
	panel.display.Color = custom.Color(theme.ColorNameForeground, theme.VariantLight)
	panel.display.Refresh()
	panel.themeButton.SetText(colors.ToggleLabel())
}

// DisplaySink returns the sink for the elapsed-time display.
func (panel *Window) DisplaySink() stopwatch.DisplaySink {
	return displaySink{panel: panel}
}

// LapSink returns the sink for the lap list.
func (panel *Window) LapSink() stopwatch.LapSink {
	return lapSink{panel: panel}
}

// StatusSink returns the sink for voice status text.
func (panel *Window) StatusSink() voice.StatusSink {
	return statusSink{panel: panel}
}

// VoiceAffordance returns the voice toggle button.
func (panel *Window) VoiceAffordance() voice.Affordance {
	return voiceAffordance{panel: panel}
}

func (panel *Window) colorButton(label string, target ColorTarget) *widget.Button {
	return widget.NewButtonWithIcon(label, theme.ColorPaletteIcon(), func() {
		picker := dialog.NewColorPicker(label+" color", "Choose a "+string(target)+" color", func(value color.Color) {
			if panel.callbacks.OnColorChange != nil {
				panel.callbacks.OnColorChange(target, value)
			}
		}, panel.window)
		picker.Advanced = true
		picker.Show()
	})
}

func (panel *Window) fire(handler func()) {
	if handler != nil {
		handler()
	}
}

type displaySink struct {
	panel *Window
}

func (sink displaySink) SetText(text string) {
	fyne.Do(func() {
		sink.panel.display.Text = text
		sink.panel.display.Refresh()
	})
}

type lapSink struct {
	panel *Window
}

func (sink lapSink) Append(label string) {
	fyne.Do(func() {
		sink.panel.laps = append(sink.panel.laps, label)
		sink.panel.lapList.Refresh()
		sink.panel.lapList.ScrollToBottom()
	})
}

func (sink lapSink) Clear() {
	fyne.Do(func() {
		sink.panel.laps = nil
		sink.panel.lapList.Refresh()
	})
}

type statusSink struct {
	panel *Window
}

func (sink statusSink) SetText(text string) {
	fyne.Do(func() {
		sink.panel.voiceStatus.SetText(text)
	})
}

type voiceAffordance struct {
	panel *Window
}

func (button voiceAffordance) SetLabel(label string) {
	fyne.Do(func() {
		button.panel.voiceButton.SetText(label)
	})
}

func (button voiceAffordance) SetActive(active bool) {
	fyne.Do(func() {
		if active {
			button.panel.voiceButton.Importance = widget.DangerImportance
			button.panel.voiceButton.SetIcon(theme.VolumeMuteIcon())
		} else {
			button.panel.voiceButton.Importance = widget.MediumImportance
			button.panel.voiceButton.SetIcon(theme.VolumeUpIcon())
		}
		button.panel.voiceButton.Refresh()
	})
}
