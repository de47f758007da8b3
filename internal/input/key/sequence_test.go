package key

import (
	"testing"
)

func TestSequenceEquals(t *testing.T) {
	a := Sequence{Char('g'), Char('g')}
	b := Sequence{Char('g'), Char('g')}
	c := Sequence{Char('g'), Char('G')}

	if !a.Equals(b) {
		t.Error("identical sequences should be equal")
	}
	if a.Equals(c) {
		t.Error("different sequences should not be equal")
	}
	if a.Equals(a[:1]) {
		t.Error("sequences of different length should not be equal")
	}
	if !Sequence(nil).Equals(Sequence{}) {
		t.Error("nil and empty sequences should be equal")
	}
}

func TestSequenceHasPrefix(t *testing.T) {
	seq := MustParseSequence("gqq")

	tests := []struct {
		prefix string
		want   bool
	}{
		{"g", true},
		{"gq", true},
		{"gqq", true},
		{"gqqq", false},
		{"q", false},
	}

	for _, tt := range tests {
		t.Run(tt.prefix, func(t *testing.T) {
			if got := seq.HasPrefix(MustParseSequence(tt.prefix)); got != tt.want {
				t.Errorf("HasPrefix(%q) = %v, want %v", tt.prefix, got, tt.want)
			}
		})
	}

	if !seq.HasPrefix(nil) {
		t.Error("every sequence should have the empty prefix")
	}
}

func TestSequenceOrderPreserved(t *testing.T) {
	var seq Sequence
	seq = append(seq, Char('d'))
	seq = append(seq, Char('w'))

	if got := seq.String(); got != "dw" {
		t.Errorf("String() = %q, want %q", got, "dw")
	}
}

func TestSequenceClone(t *testing.T) {
	seq := MustParseSequence("ab")
	clone := seq.Clone()
	clone[0] = Char('z')

	if seq[0] != Char('a') {
		t.Error("Clone should not share storage with the original")
	}
	if Sequence(nil).Clone() != nil {
		t.Error("Clone of nil should be nil")
	}
}
