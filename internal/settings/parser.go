package settings

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/dshills/modebar/internal/input/key"
)

// Keywords of the built-in directives.
const (
	keywordInclude = "include"
	keywordSet     = "set"
	keywordMap     = "map"
	keywordUnmap   = "unmap"
)

// CommandFactory builds the application command named name from its
// argument string. It returns ErrUnknownCommand or ErrMissingArgument
// (possibly wrapped) for those failures.
type CommandFactory[T any] func(name, args string) (T, error)

// Parser turns configuration lines into directives.
type Parser[T any] struct {
	factory CommandFactory[T]
	modes   map[string]bool
}

// NewParser creates a parser. mappingModes are the prefixes accepted in
// front of "map" and "unmap".
func NewParser[T any](factory CommandFactory[T], mappingModes []string) *Parser[T] {
	modes := make(map[string]bool, len(mappingModes))
	for _, m := range mappingModes {
		modes[m] = true
	}
	return &Parser[T]{factory: factory, modes: modes}
}

// MappingMode returns true if prefix is accepted before "map".
func (p *Parser[T]) MappingMode(prefix string) bool {
	return p.modes[prefix]
}

// Parse reads every directive from r. Blank and comment lines are skipped.
// The first failing line stops parsing; its *Error carries the line number.
func (p *Parser[T]) Parse(r io.Reader) ([]Directive, error) {
	var directives []Directive

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		d, err := p.ParseLine(scanner.Text())
		if err != nil {
			var perr *Error
			if errors.As(err, &perr) {
				if perr.Type == NoCommand {
					continue
				}
				perr.Line = lineNo
				return nil, perr
			}
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		directives = append(directives, d)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading settings: %w", err)
	}
	return directives, nil
}

// ParseLine parses a single line. A blank or comment line yields a NoCommand
// error.
func (p *Parser[T]) ParseLine(line string) (Directive, error) {
	line = strings.TrimLeftFunc(strings.TrimRight(line, "\r\n"), unicode.IsSpace)
	if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
		return nil, &Error{Type: NoCommand}
	}

	word, rest := cutWord(line)

	switch word {
	case keywordInclude:
		path := strings.TrimSpace(rest)
		if path == "" {
			return nil, &Error{Type: MissingArgument}
		}
		return Include{Path: path}, nil
	case keywordSet:
		return parseSet(strings.TrimSpace(rest))
	}

	if prefix, ok := strings.CutSuffix(word, keywordUnmap); ok && p.modes[prefix] {
		return parseUnmap(prefix, rest)
	}
	if prefix, ok := strings.CutSuffix(word, keywordMap); ok && p.modes[prefix] {
		return parseMap(prefix, rest)
	}

	return p.parseCustom(word, strings.TrimSpace(rest))
}

func (p *Parser[T]) parseCustom(name, args string) (Directive, error) {
	if p.factory == nil {
		return nil, &Error{Type: UnknownCommand, Unexpected: name}
	}

	cmd, err := p.factory(name, args)
	if err != nil {
		var perr *Error
		switch {
		case errors.As(err, &perr):
			return nil, perr
		case errors.Is(err, ErrUnknownCommand):
			return nil, &Error{Type: UnknownCommand, Unexpected: name}
		case errors.Is(err, ErrMissingArgument):
			return nil, &Error{Type: MissingArgument}
		default:
			return nil, parseError(args, err.Error())
		}
	}
	return Custom[T]{Command: cmd}, nil
}

func parseSet(args string) (Directive, error) {
	if args == "" {
		return nil, &Error{Type: MissingArgument}
	}

	end := strings.IndexFunc(args, func(r rune) bool {
		return r == '=' || unicode.IsSpace(r)
	})
	if end < 0 {
		return nil, parseError("", "=")
	}
	name := args[:end]
	rest := strings.TrimSpace(args[end:])
	if name == "" {
		return nil, parseError("=", "identifier")
	}
	if !strings.HasPrefix(rest, "=") {
		tok, _ := cutWord(rest)
		return nil, parseError(tok, "=")
	}

	value := strings.TrimSpace(rest[1:])
	if value == "" {
		return nil, parseError("", "value")
	}
	return Set{Name: name, Value: value}, nil
}

func parseMap(prefix, args string) (Directive, error) {
	keysSpec, action := cutWord(args)
	if keysSpec == "" {
		return nil, &Error{Type: MissingArgument}
	}
	keys, err := key.ParseSequence(keysSpec)
	if err != nil {
		return nil, parseError(keysSpec, "key sequence")
	}
	if strings.TrimSpace(action) == "" {
		return nil, &Error{Type: MissingArgument}
	}
	return Map{Action: action, Keys: keys, Mode: prefix}, nil
}

func parseUnmap(prefix, args string) (Directive, error) {
	keysSpec, rest := cutWord(args)
	if keysSpec == "" {
		return nil, &Error{Type: MissingArgument}
	}
	if extra := strings.TrimSpace(rest); extra != "" {
		tok, _ := cutWord(extra)
		return nil, parseError(tok, "end of line")
	}
	keys, err := key.ParseSequence(keysSpec)
	if err != nil {
		return nil, parseError(keysSpec, "key sequence")
	}
	return Unmap{Keys: keys, Mode: prefix}, nil
}

// cutWord splits s at the first whitespace run after its leading word.
// Leading whitespace is skipped; the remainder keeps trailing whitespace.
func cutWord(s string) (word, rest string) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	end := strings.IndexFunc(s, unicode.IsSpace)
	if end < 0 {
		return s, ""
	}
	return s[:end], strings.TrimLeftFunc(s[end:], unicode.IsSpace)
}
