package statusbar

// Color is an RGBA color with components in [0, 1].
type Color struct {
	R, G, B, A float64
}

// Standard colors.
var (
	Transparent = Color{}
	Red         = Color{R: 1, A: 1}
	White       = Color{R: 1, G: 1, B: 1, A: 1}
	Blue        = Color{B: 1, A: 1}
	Orange      = Color{R: 0.9, G: 0.55, A: 1}
)

// IsTransparent returns true if the color has no opacity.
func (c Color) IsTransparent() bool {
	return c.A == 0
}

// RGB255 returns the color components scaled to 0..255.
func (c Color) RGB255() (r, g, b uint8) {
	return to255(c.R), to255(c.G), to255(c.B)
}

func to255(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	}
	return uint8(v*255 + 0.5)
}

// Widget is anything the bar can show or hide.
type Widget interface {
	Show()
	Hide()
	Visible() bool
}

// Colorable is a widget whose colors can be overridden.
type Colorable interface {
	OverrideBackground(c Color)
	OverrideForeground(c Color)
}

// Label displays a line of text.
type Label interface {
	Widget
	SetText(text string)
	Text() string
}

// Entry is a single-line editable text widget.
// Positions count runes, not bytes.
type Entry interface {
	Widget

	Text() string
	SetText(text string)

	Position() int
	SetPosition(pos int)

	// SelectionBounds returns the selected range, if any.
	SelectionBounds() (start, end int, ok bool)
	DeleteSelection()
	DeleteText(start, end int)

	GrabFocus()

	// ConnectActivate registers a handler for the commit key.
	ConnectActivate(fn func(text string))

	// ConnectChanged registers a handler called after every text change.
	ConnectChanged(fn func(text string))
}

// Container lays widgets out horizontally.
// PackStart appends from the left, PackEnd from the right.
type Container interface {
	Widget
	Colorable
	PackStart(w Widget)
	PackEnd(w Widget)
}

// Toolkit creates the widgets a StatusBar is built from.
type Toolkit interface {
	NewLabel(text string) Label
	NewEntry() Entry
	NewContainer() Container
}
