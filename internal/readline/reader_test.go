package readline

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func alwaysTerminal(*Input, io.Writer) bool { return true }
func neverTerminal(*Input, io.Writer) bool  { return false }

func newTestReader(g *Guard, opts ...Option) *Reader {
	base := []Option{WithGuard(g), WithPromptWriter(io.Discard)}
	return New(append(base, opts...)...)
}

func TestReader_ReadsLinesInOrder(t *testing.T) {
	t.Parallel()

	g := &Guard{}
	r := newTestReader(g)
	id := NewThreadID()
	in := NewInput(strings.NewReader("hello\n" + strings.Repeat("a", 250) + "\n"))

	first, err := r.ReadLine(context.Background(), id, in, io.Discard, ">>> ")
	require.NoError(t, err)
	second, err := r.ReadLine(context.Background(), id, in, io.Discard, ">>> ")
	require.NoError(t, err)
	third, err := r.ReadLine(context.Background(), id, in, io.Discard, ">>> ")
	require.NoError(t, err)

	assert.Equal(t, "hello\n", first)
	assert.Equal(t, strings.Repeat("a", 250)+"\n", second)
	assert.Empty(t, third)
	assert.Zero(t, g.Owner())
}

func TestReader_ReleasesGuard_When_ReadFails(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		backend Backend
		want    error
	}{
		{name: "interrupted", backend: BackendFunc(func(context.Context, *Input, io.Writer, string) (string, error) {
			return "", ErrInterrupted
		}), want: ErrInterrupted},
		{name: "line too long", backend: BackendFunc(func(context.Context, *Input, io.Writer, string) (string, error) {
			return "", ErrLineTooLong
		}), want: ErrLineTooLong},
		{name: "io", backend: BackendFunc(func(context.Context, *Input, io.Writer, string) (string, error) {
			return "", &ReadError{Err: io.ErrUnexpectedEOF}
		}), want: ErrReadIO},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			g := &Guard{}
			r := newTestReader(g, WithBackend(tt.backend), WithTerminalCheck(alwaysTerminal))
			id := NewThreadID()

			_, err := r.ReadLine(context.Background(), id, NewInput(strings.NewReader("")), io.Discard, "")
			assert.ErrorIs(t, err, tt.want)
			assert.Zero(t, g.Owner())

			require.NoError(t, g.Acquire(id), "a later read can proceed")
		})
	}
}

func TestReader_ReleasesGuard_When_BackendPanics(t *testing.T) {
	t.Parallel()

	g := &Guard{}
	r := newTestReader(g, WithTerminalCheck(alwaysTerminal), WithBackend(BackendFunc(
		func(context.Context, *Input, io.Writer, string) (string, error) { panic("editor crashed") })))

	assert.Panics(t, func() {
		_, _ = r.ReadLine(context.Background(), NewThreadID(), NewInput(strings.NewReader("")), io.Discard, "")
	})
	assert.Zero(t, g.Owner())
}

func TestReader_FailsWithReentrant_When_InputHookReadsAgain(t *testing.T) {
	t.Parallel()

	g := &Guard{}
	id := NewThreadID()
	var r *Reader
	var nestedErr error
	var ownerDuringHook ThreadID
	calls := 0

	r = newTestReader(g, WithInputHook(func() {
		calls++
		if calls > 1 {
			return
		}
		ownerDuringHook = g.Owner()
		_, nestedErr = r.ReadLine(context.Background(), id, NewInput(strings.NewReader("inner\n")), io.Discard, "")
	}))

	got, err := r.ReadLine(context.Background(), id, NewInput(strings.NewReader("outer\n")), io.Discard, "")

	require.NoError(t, err)
	assert.Equal(t, "outer\n", got)
	assert.ErrorIs(t, nestedErr, ErrReentrant)
	assert.Equal(t, id, ownerDuringHook)
	assert.Zero(t, g.Owner())
}

func TestReader_AllowsOneReader_When_CalledConcurrently(t *testing.T) {
	t.Parallel()

	g := &Guard{}
	entered := make(chan struct{})
	release := make(chan struct{})
	r := newTestReader(g, WithTerminalCheck(alwaysTerminal), WithBackend(BackendFunc(
		func(context.Context, *Input, io.Writer, string) (string, error) {
			close(entered)
			<-release
			return "first\n", nil
		})))

	var wg sync.WaitGroup
	var firstLine string
	var firstErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		firstLine, firstErr = r.ReadLine(context.Background(), NewThreadID(), NewInput(strings.NewReader("")), io.Discard, "")
	}()

	<-entered
	_, secondErr := r.ReadLine(context.Background(), NewThreadID(), NewInput(strings.NewReader("")), io.Discard, "")
	close(release)
	wg.Wait()

	require.NoError(t, firstErr)
	assert.Equal(t, "first\n", firstLine)
	assert.ErrorIs(t, secondErr, ErrReentrant)
	assert.Contains(t, secondErr.Error(), "read in progress on thread")
	assert.Zero(t, g.Owner())
}

func TestReader_UsesStdio_When_StreamsAreNotTerminals(t *testing.T) {
	t.Parallel()

	custom := 0
	backend := BackendFunc(func(context.Context, *Input, io.Writer, string) (string, error) {
		custom++
		return "custom\n", nil
	})

	piped := newTestReader(&Guard{}, WithBackend(backend), WithTerminalCheck(neverTerminal))
	got, err := piped.ReadLine(context.Background(), NewThreadID(), NewInput(strings.NewReader("stdio\n")), io.Discard, "")
	require.NoError(t, err)
	assert.Equal(t, "stdio\n", got)
	assert.Zero(t, custom)

	tty := newTestReader(&Guard{}, WithBackend(backend), WithTerminalCheck(alwaysTerminal))
	got, err = tty.ReadLine(context.Background(), NewThreadID(), NewInput(strings.NewReader("stdio\n")), io.Discard, "")
	require.NoError(t, err)
	assert.Equal(t, "custom\n", got)
	assert.Equal(t, 1, custom)
}

func TestReader_InstallsStdioBackendLazily(t *testing.T) {
	t.Parallel()

	r := New()

	assert.Same(t, r.Stdio(), r.Backend())
	assert.Same(t, r.Stdio(), r.Backend(), "installation is idempotent")

	custom := BackendFunc(func(context.Context, *Input, io.Writer, string) (string, error) { return "", nil })
	r.Install(custom)
	assert.NotNil(t, r.Backend())
	r.Install(nil)
	assert.Same(t, r.Stdio(), r.Backend())
}

func TestReader_PassesOptionsToStdioBackend(t *testing.T) {
	t.Parallel()

	checker := fixedChecker(true)
	r := New(WithInitialSize(10), WithMaxLineLength(50), WithInterruptChecker(checker))

	assert.Equal(t, 10, r.Stdio().InitialSize)
	assert.Equal(t, 50, r.Stdio().MaxLineLength)
	assert.Equal(t, checker, r.Stdio().Interrupts)
}

func TestIsTerminal_ReturnsFalse_When_StreamsHaveNoDescriptor(t *testing.T) {
	t.Parallel()

	assert.False(t, IsTerminal(NewInput(strings.NewReader("")), io.Discard))
}

func TestGuard_RejectsSecondAcquire(t *testing.T) {
	t.Parallel()

	g := &Guard{}
	a, b := NewThreadID(), NewThreadID()

	require.NoError(t, g.Acquire(a))
	assert.ErrorIs(t, g.Acquire(a), ErrReentrant)
	assert.ErrorIs(t, g.Acquire(b), ErrReentrant)
	assert.Equal(t, a, g.Owner(), "failed acquire leaves the owner")

	assert.False(t, g.Release(b))
	assert.True(t, g.Release(a))
	assert.NoError(t, g.Acquire(b))

	g.Reset()
	assert.Zero(t, g.Owner())
	assert.True(t, errors.Is(g.Acquire(0), ErrNoThread))
}

func TestGuard_ReportsLiveOwner_When_ContendedAcquireFails(t *testing.T) {
	t.Parallel()

	g := &Guard{}
	var wg sync.WaitGroup
	errs := make(chan error, 8*500)
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := NewThreadID()
			for range 500 {
				if err := g.Acquire(id); err != nil {
					errs <- err
					continue
				}
				g.Release(id)
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.ErrorIs(t, err, ErrReentrant)
		assert.Contains(t, err.Error(), "read in progress on thread")
	}
	assert.Zero(t, g.Owner())
}
