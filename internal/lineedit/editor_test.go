package lineedit

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoosis/pyinit/internal/readline"
)

func runEditor(t *testing.T, e *Editor, keys string) (string, string, error) {
	t.Helper()
	var out bytes.Buffer
	line, err := e.ReadLine(context.Background(), readline.NewInput(strings.NewReader(keys)), &out, ">>> ")
	return line, out.String(), err
}

func TestEditor_ReturnsLineWithNewline_When_Submitted(t *testing.T) {
	t.Parallel()

	e := New()
	line, out, err := runEditor(t, e, "1 + 1\r")

	require.NoError(t, err)
	assert.Equal(t, "1 + 1\n", line)
	assert.Contains(t, out, ">>> 1 + 1\n")
	assert.Equal(t, []string{"1 + 1"}, e.History().Entries())
}

func TestEditor_ReturnsEOF_When_CtrlDOnEmptyLine(t *testing.T) {
	t.Parallel()

	line, _, err := runEditor(t, New(), "\x04")

	require.NoError(t, err)
	assert.Empty(t, line)
}

func TestEditor_ReturnsInterrupted_When_CtrlC(t *testing.T) {
	t.Parallel()

	e := New()
	line, _, err := runEditor(t, e, "abc\x03")

	assert.ErrorIs(t, err, readline.ErrInterrupted)
	assert.Empty(t, line)
	assert.Zero(t, e.History().Len())
}

func TestEditor_WorksAsReaderBackend_When_StreamsAreTerminals(t *testing.T) {
	t.Parallel()

	r := readline.New(
		readline.WithGuard(&readline.Guard{}),
		readline.WithBackend(New()),
		readline.WithTerminalCheck(func(*readline.Input, io.Writer) bool { return true }),
	)
	var out bytes.Buffer

	line, err := r.ReadLine(context.Background(), readline.NewThreadID(),
		readline.NewInput(strings.NewReader("x = 1\r")), &out, ">>> ")

	require.NoError(t, err)
	assert.Equal(t, "x = 1\n", line)
}
