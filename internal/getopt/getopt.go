// Package getopt scans interpreter-style command lines.
//
// Short options may be clustered (-IE) and take their argument either
// attached (-Xdev) or as the following word (-X dev). Long options take
// their argument after '=' or as the following word. Scanning stops at the
// first positional argument, a lone "-", or "--" (which is consumed).
package getopt

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

var (
	// ErrUnknownOption is wrapped by errors for options missing from the table.
	ErrUnknownOption = errors.New("unknown option")

	// ErrMissingArgument is wrapped by errors for options whose argument is absent.
	ErrMissingArgument = errors.New("argument expected")
)

// LongOption describes one --name option.
type LongOption struct {
	Name   string
	HasArg bool
	Val    rune // value reported by Next, usually a rune outside the short table
}

// Option is one scanned option.
type Option struct {
	Val  rune
	Arg  string
	Name string // "-c" or "--help", as written on the command line
}

// Error reports a malformed option. Token is the offending word.
type Error struct {
	Token string
	err   error
}

func (e *Error) Error() string {
	if errors.Is(e.err, ErrMissingArgument) {
		return fmt.Sprintf("%s for the %s option", e.err, e.Token)
	}
	return fmt.Sprintf("%s %s", e.err, e.Token)
}

func (e *Error) Unwrap() error { return e.err }

// Scanner walks a command line one option at a time.
type Scanner struct {
	args    []string
	short   string
	long    []LongOption
	optind  int
	cluster string // remaining letters of the current short cluster
}

// New returns a scanner over args (without the program name). short lists
// option letters; a letter followed by ':' takes an argument.
func New(args []string, short string, long []LongOption) *Scanner {
	return &Scanner{args: args, short: short, long: long}
}

// Next returns the next option. ok is false once scanning has stopped.
func (s *Scanner) Next() (opt Option, ok bool, err error) {
	if s.cluster == "" {
		if s.optind >= len(s.args) {
			return Option{}, false, nil
		}
		word := s.args[s.optind]
		if len(word) < 2 || word[0] != '-' {
			return Option{}, false, nil
		}
		if word == "--" {
			s.optind++
			return Option{}, false, nil
		}
		if strings.HasPrefix(word, "--") {
			s.optind++
			return s.nextLong(word)
		}
		s.cluster = word[1:]
		s.optind++
	}

	c, size := utf8.DecodeRuneInString(s.cluster)
	s.cluster = s.cluster[size:]
	token := "-" + string(c)

	idx := strings.IndexRune(s.short, c)
	if c == ':' || idx < 0 {
		s.cluster = ""
		return Option{}, false, &Error{Token: token, err: ErrUnknownOption}
	}

	opt = Option{Val: c, Name: token}
	if idx+1 < len(s.short) && s.short[idx+1] == ':' {
		switch {
		case s.cluster != "":
			opt.Arg = s.cluster
			s.cluster = ""
		case s.optind < len(s.args):
			opt.Arg = s.args[s.optind]
			s.optind++
		default:
			return Option{}, false, &Error{Token: token, err: ErrMissingArgument}
		}
	}
	return opt, true, nil
}

func (s *Scanner) nextLong(word string) (Option, bool, error) {
	name, value, hasValue := strings.Cut(word[2:], "=")
	for _, lo := range s.long {
		if lo.Name != name {
			continue
		}
		opt := Option{Val: lo.Val, Name: "--" + name}
		if !lo.HasArg {
			if hasValue {
				return Option{}, false, &Error{Token: word, err: ErrUnknownOption}
			}
			return opt, true, nil
		}
		switch {
		case hasValue:
			opt.Arg = value
		case s.optind < len(s.args):
			opt.Arg = s.args[s.optind]
			s.optind++
		default:
			return Option{}, false, &Error{Token: opt.Name, err: ErrMissingArgument}
		}
		return opt, true, nil
	}
	return Option{}, false, &Error{Token: word, err: ErrUnknownOption}
}

// Rest returns the arguments that follow the last scanned option. Callers
// that stop early (after -c or -m) use it to collect the program's argv.
func (s *Scanner) Rest() []string {
	if s.optind >= len(s.args) {
		return []string{}
	}
	return append([]string(nil), s.args[s.optind:]...)
}
