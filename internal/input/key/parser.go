package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Parse errors
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// Parse parses a single key specification.
//
// Supported formats:
//   - Single character: "a", "A", "1", "@"
//   - Vim-style names: "<Esc>", "<CR>", "<Enter>", "<Tab>", "<BS>", "<Space>", "<F5>"
//   - Vim aliases for characters: "<lt>", "<gt>", "<Bar>", "<Bslash>"
//   - With control: "<C-a>", "<C-Enter>"
func Parse(spec string) (Key, error) {
	if spec == "" {
		return Key{}, ErrEmptySpec
	}

	if len(spec) > 2 && strings.HasPrefix(spec, "<") && strings.HasSuffix(spec, ">") {
		return parseBracketed(spec[1 : len(spec)-1])
	}

	r, size := utf8.DecodeRuneInString(spec)
	if size != len(spec) || r == utf8.RuneError {
		return Key{}, fmt.Errorf("%w: %q", ErrInvalidSpec, spec)
	}
	return Char(r), nil
}

// parseBracketed parses the inside of a <...> key name.
func parseBracketed(inner string) (Key, error) {
	ctrl := false
	if len(inner) > 2 && (inner[0] == 'C' || inner[0] == 'c') && inner[1] == '-' {
		ctrl = true
		inner = inner[2:]
	} else if len(inner) > 2 && inner[1] == '-' {
		return Key{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, inner[:1])
	}

	k, err := parseName(inner)
	if err != nil {
		return Key{}, err
	}
	if ctrl {
		k = k.WithCtrl()
	}
	return k, nil
}

// parseName parses a key name or a lone character.
func parseName(name string) (Key, error) {
	if c := CodeFromName(name); c != None {
		return Special(c), nil
	}
	if r, ok := runeNameMap[strings.ToLower(name)]; ok {
		return Char(r), nil
	}
	r, size := utf8.DecodeRuneInString(name)
	if size > 0 && size == len(name) && r != utf8.RuneError {
		return Char(r), nil
	}
	return Key{}, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, name)
}

// ParseSequence parses a continuous Vim-style key sequence.
// Examples: "gg", "<C-w>l", "<Space>ff", "<lt>".
// A '<' with no closing '>' is taken literally.
func ParseSequence(s string) (Sequence, error) {
	if s == "" {
		return nil, ErrEmptySpec
	}

	seq := make(Sequence, 0, len(s))
	for i := 0; i < len(s); {
		if s[i] == '<' {
			end := strings.IndexByte(s[i:], '>')
			if end > 1 {
				k, err := parseBracketed(s[i+1 : i+end])
				if err != nil {
					return nil, err
				}
				seq = append(seq, k)
				i += end + 1
				continue
			}
		}

		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError {
			return nil, fmt.Errorf("%w: invalid UTF-8 at byte %d", ErrInvalidSpec, i)
		}
		seq = append(seq, Char(r))
		i += size
	}
	return seq, nil
}

// MustParseSequence parses a sequence string and panics on error.
// Use only for known-valid sequences in initialization code and tests.
func MustParseSequence(s string) Sequence {
	seq, err := ParseSequence(s)
	if err != nil {
		panic("invalid key sequence: " + s + ": " + err.Error())
	}
	return seq
}
