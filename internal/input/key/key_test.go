package key

import (
	"testing"
)

func TestCodeString(t *testing.T) {
	tests := []struct {
		code Code
		want string
	}{
		{None, "None"},
		{Escape, "Esc"},
		{Enter, "Enter"},
		{Tab, "Tab"},
		{Backspace, "BS"},
		{Space, "Space"},
		{Up, "Up"},
		{F1, "F1"},
		{F12, "F12"},
		{Rune, "Rune"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.code.String(); got != tt.want {
				t.Errorf("Code.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCodeClassification(t *testing.T) {
	if !F5.IsFunctionKey() || Escape.IsFunctionKey() {
		t.Error("IsFunctionKey misclassifies F5 or Escape")
	}
	if !Left.IsArrowKey() || Home.IsArrowKey() {
		t.Error("IsArrowKey misclassifies Left or Home")
	}
}

func TestKeyEquality(t *testing.T) {
	if Char('g') != Char('g') {
		t.Error("identical keys should be equal")
	}
	if Char('g') == Control('g') {
		t.Error("control flag should distinguish keys")
	}
	if Char('g') == Char('G') {
		t.Error("keys should be case sensitive")
	}
	if Control('W') != Control('w') {
		t.Error("control letters should fold to lowercase")
	}
	if Char(' ') != Special(Space) {
		t.Error("space rune should normalize to the Space code")
	}
}

func TestKeyString(t *testing.T) {
	tests := []struct {
		key  Key
		want string
	}{
		{Char('a'), "a"},
		{Char('G'), "G"},
		{Char(':'), ":"},
		{Char('<'), "<lt>"},
		{Control('w'), "<C-w>"},
		{Special(Escape), "<Esc>"},
		{Special(Enter), "<Enter>"},
		{Special(Space), "<Space>"},
		{Special(F5), "<F5>"},
		{Special(Enter).WithCtrl(), "<C-Enter>"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.key.String(); got != tt.want {
				t.Errorf("Key.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestKeyText(t *testing.T) {
	tests := []struct {
		name      string
		key       Key
		printable bool
		text      string
	}{
		{"letter", Char('x'), true, "x"},
		{"space", Char(' '), true, " "},
		{"control", Control('x'), false, ""},
		{"escape", Esc, false, ""},
		{"unicode", Char('é'), true, "é"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.key.IsPrintable(); got != tt.printable {
				t.Errorf("IsPrintable() = %v, want %v", got, tt.printable)
			}
			if got := tt.key.Text(); got != tt.text {
				t.Errorf("Text() = %q, want %q", got, tt.text)
			}
		})
	}
}

func TestKeyIsZero(t *testing.T) {
	var k Key
	if !k.IsZero() {
		t.Error("zero Key should report IsZero")
	}
	if Char('a').IsZero() {
		t.Error("Char('a') should not be zero")
	}
}

func TestCodeFromName(t *testing.T) {
	tests := []struct {
		name string
		want Code
	}{
		{"Esc", Escape},
		{"escape", Escape},
		{"CR", Enter},
		{"return", Enter},
		{"BS", Backspace},
		{"pgdn", PageDown},
		{"F10", F10},
		{"bogus", None},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CodeFromName(tt.name); got != tt.want {
				t.Errorf("CodeFromName(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}
