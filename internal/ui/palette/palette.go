package palette

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// ErrInvalidColor indicates a color string is not in #rrggbb form.
var ErrInvalidColor = errors.New("invalid color")

// Theme toggle labels.
const (
	LabelToDark  = "Switch to Dark Mode"
	LabelToLight = "Switch to Light Mode"
)

// Palette holds the user-chosen look. Nil colors use the theme default.
type Palette struct {
	Dark       bool
	Background color.Color
	Text       color.Color
	Button     color.Color
}

// FromHex builds a Palette, ignoring colors that fail to parse.
func FromHex(dark bool, background, text, button string) Palette {
	return Palette{
		Dark:       dark,
		Background: parseOrNil(background),
		Text:       parseOrNil(text),
		Button:     parseOrNil(button),
	}
}

// ToggleLabel returns the theme button label for the current mode.
func (palette Palette) ToggleLabel() string {
	if palette.Dark {
		return LabelToLight
	}
	return LabelToDark
}

// ParseHex parses a #rrggbb color.
func ParseHex(value string) (color.NRGBA, error) {
	if len(value) != 7 || value[0] != '#' {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, value)
	}
	rgb, err := strconv.ParseUint(value[1:], 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, value)
	}
	return color.NRGBA{R: uint8(rgb >> 16), G: uint8(rgb >> 8), B: uint8(rgb), A: 0xff}, nil
}

// FormatHex renders a color as #rrggbb, dropping alpha.
func FormatHex(value color.Color) string {
	nrgba := color.NRGBAModel.Convert(value).(color.NRGBA)
	return fmt.Sprintf("#%02x%02x%02x", nrgba.R, nrgba.G, nrgba.B)
}

func parseOrNil(value string) color.Color {
	parsed, err := ParseHex(value)
	if err != nil {
		return nil
	}
	return parsed
}

// Theme applies a Palette on top of the fyne default theme.
type Theme struct {
	palette Palette
	base    fyne.Theme
}

// NewTheme creates a fyne theme for palette.
func NewTheme(palette Palette) *Theme {
	return &Theme{palette: palette, base: theme.DefaultTheme()}
}

func (custom *Theme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNameBackground:
		if custom.palette.Background != nil {
			return custom.palette.Background
		}
	case theme.ColorNameForeground:
		if custom.palette.Text != nil {
			return custom.palette.Text
		}
	case theme.ColorNameButton, theme.ColorNamePrimary:
		if custom.palette.Button != nil {
			return custom.palette.Button
		}
	}
	return custom.base.Color(name, custom.variant())
}

func (custom *Theme) Font(style fyne.TextStyle) fyne.Resource {
	return custom.base.Font(style)
}

func (custom *Theme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return custom.base.Icon(name)
}

func (custom *Theme) Size(name fyne.ThemeSizeName) float32 {
	return custom.base.Size(name)
}

func (custom *Theme) variant() fyne.ThemeVariant {
	if custom.palette.Dark {
		return theme.VariantDark
	}
	return theme.VariantLight
}
