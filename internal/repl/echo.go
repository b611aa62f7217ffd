package repl

import (
	"context"
	"io"
	"strings"
)

// Echo is an Evaluator that writes each complete input back to Out. An
// input is incomplete while brackets are open, the last line ends with a
// backslash, or a block opened by a trailing colon has not been closed by
// a blank line.
type Echo struct {
	Out io.Writer
}

// Eval implements Evaluator.
func (e Echo) Eval(_ context.Context, source string) (bool, error) {
	if NeedsMore(source) {
		return true, nil
	}
	if strings.TrimSpace(source) == "" {
		return false, nil
	}
	_, err := io.WriteString(e.Out, strings.TrimRight(source, "\n")+"\n")
	return false, err
}

// NeedsMore reports whether source requires continuation lines.
func NeedsMore(source string) bool {
	text := strings.TrimSuffix(source, "\n")
	lines := strings.Split(text, "\n")
	last := lines[len(lines)-1]

	if strings.HasSuffix(last, "\\") {
		return true
	}
	if bracketDepth(text) > 0 {
		return true
	}
	if strings.HasSuffix(strings.TrimSpace(lines[0]), ":") {
		return len(lines) == 1 || strings.TrimSpace(last) != ""
	}
	return false
}

// bracketDepth counts unclosed brackets outside string literals and
// comments.
func bracketDepth(text string) int {
	depth := 0
	var quote rune
	escaped, comment := false, false
	for _, r := range text {
		switch {
		case r == '\n':
			quote, escaped, comment = 0, false, false
		case comment:
		case escaped:
			escaped = false
		case quote != 0:
			if r == '\\' {
				escaped = true
			} else if r == quote {
				quote = 0
			}
		case r == '\'' || r == '"':
			quote = r
		case r == '#':
			comment = true
		case r == '(' || r == '[' || r == '{':
			depth++
		case r == ')' || r == ']' || r == '}':
			if depth > 0 {
				depth--
			}
		}
	}
	return depth
}
