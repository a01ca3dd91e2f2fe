package terminal

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	internal "github.com/murreyjs/doppel/doppel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPlainConsole(input string) (*Console, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return NewConsole(strings.NewReader(input), out, Options{Color: false}), out
}

func TestNewConsole(t *testing.T) {
	t.Run("zero options are normalized", func(t *testing.T) {
		console := NewConsole(strings.NewReader(""), &bytes.Buffer{}, Options{})
		assert.Equal(t, defaultWidth, console.width)
		assert.Equal(t, internal.DefaultFingerprintLen, console.fpLen)
	})
}

func TestConsolePrompt(t *testing.T) {
	t.Run("reads and trims one line", func(t *testing.T) {
		console, out := newPlainConsole("  hello  \n")

		answer, err := console.Prompt("Choice")
		require.NoError(t, err)
		assert.Equal(t, "hello", answer)
		assert.Equal(t, "Choice: ", out.String())
	})

	t.Run("returns a final line missing its newline", func(t *testing.T) {
		console, _ := newPlainConsole("partial")

		answer, err := console.Prompt("Choice")
		require.NoError(t, err)
		assert.Equal(t, "partial", answer)

		_, err = console.Prompt("Choice")
		assert.True(t, errors.Is(err, io.EOF), "the next read should surface the EOF")
	})

	t.Run("propagates read errors on exhausted input", func(t *testing.T) {
		console, _ := newPlainConsole("")

		_, err := console.Prompt("Choice")
		assert.True(t, errors.Is(err, io.EOF))
	})
}

func TestConsoleConfirm(t *testing.T) {
	t.Run("affirmative answers", func(t *testing.T) {
		for _, answer := range []string{"y", "yes", "true", "1", "Y", "YES"} {
			console, _ := newPlainConsole(answer + "\n")
			ok, err := console.Confirm("Proceed?", false)
			require.NoError(t, err, "answer %q", answer)
			assert.True(t, ok, "answer %q should count as yes", answer)
		}
	})

	t.Run("anything else is no", func(t *testing.T) {
		for _, answer := range []string{"n", "no", "x", "0", "yep"} {
			console, _ := newPlainConsole(answer + "\n")
			ok, err := console.Confirm("Proceed?", true)
			require.NoError(t, err, "answer %q", answer)
			assert.False(t, ok, "answer %q should count as no", answer)
		}
	})

	t.Run("empty answer takes the default", func(t *testing.T) {
		console, _ := newPlainConsole("\n")
		ok, err := console.Confirm("Proceed?", true)
		require.NoError(t, err)
		assert.True(t, ok)

		console, _ = newPlainConsole("\n")
		ok, err = console.Confirm("Proceed?", false)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("hint matches the default", func(t *testing.T) {
		console, out := newPlainConsole("\n")
		_, err := console.Confirm("Proceed?", false)
		require.NoError(t, err)
		assert.Equal(t, "Proceed? (y/N): ", out.String())

		console, out = newPlainConsole("\n")
		_, err = console.Confirm("Proceed?", true)
		require.NoError(t, err)
		assert.Equal(t, "Proceed? (Y/n): ", out.String())
	})

	t.Run("propagates read errors", func(t *testing.T) {
		console, _ := newPlainConsole("")
		_, err := console.Confirm("Proceed?", false)
		assert.Error(t, err)
	})
}

func TestConsoleOutput(t *testing.T) {
	console, out := newPlainConsole("")

	console.Output("plain line")
	console.Outputf("count=%d", 4)

	assert.Equal(t, "plain line\ncount=4\n", out.String())
}

func TestConsoleError(t *testing.T) {
	t.Run("appends the cause", func(t *testing.T) {
		console, out := newPlainConsole("")
		console.Error("delete failed", errors.New("permission denied"))
		assert.Equal(t, "delete failed: permission denied\n", out.String())
	})

	t.Run("message only without a cause", func(t *testing.T) {
		console, out := newPlainConsole("")
		console.Error("delete failed", nil)
		assert.Equal(t, "delete failed\n", out.String())
	})
}

func TestConsolePlainRendering(t *testing.T) {
	console, out := newPlainConsole("")

	console.Success("done")
	console.Info("note")
	console.Warning("careful")

	assert.Equal(t, "done\nnote\ncareful\n", out.String())
}

func TestTerminalHelpers(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "out.txt"))
	require.NoError(t, err)
	defer f.Close()

	assert.False(t, IsTerminal(f), "a regular file is not a terminal")
	assert.Equal(t, 100, DetectWidth(f, 100), "non-terminals fall back to the given width")
}
