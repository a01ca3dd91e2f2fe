package terminal

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	internal "github.com/murreyjs/doppel/doppel"
	"github.com/murreyjs/doppel/doppel/ports"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

const (
	defaultWidth = 80
	dividerWidth = 60

	// pathIndent is the columns consumed by "  1. " style listing prefixes.
	pathIndent = 6
)

// Options configures console rendering.
type Options struct {
	Color          bool // Render with ANSI styles
	Width          int  // Display columns for path truncation (0 = default)
	FingerprintLen int  // Hex characters of fingerprints shown (0 = default)
}

// DefaultOptions returns sensible defaults for console rendering
func DefaultOptions() Options {
	return Options{
		Color:          true,
		Width:          defaultWidth,
		FingerprintLen: internal.DefaultFingerprintLen,
	}
}

// Console is the line-oriented terminal front end. Prompts block until
// the user answers; there are no timeouts.
type Console struct {
	in    *bufio.Reader
	out   io.Writer
	color bool
	width int
	fpLen int
}

// NewConsole creates a console reading answers from in and rendering to out
func NewConsole(in io.Reader, out io.Writer, opts Options) *Console {
	if opts.Width <= 0 {
		opts.Width = defaultWidth
	}
	if opts.FingerprintLen <= 0 {
		opts.FingerprintLen = internal.DefaultFingerprintLen
	}

	return &Console{
		in:    bufio.NewReader(in),
		out:   out,
		color: opts.Color,
		width: opts.Width,
		fpLen: opts.FingerprintLen,
	}
}

// Output prints one line
func (c *Console) Output(message string) {
	fmt.Fprintln(c.out, message)
}

// Outputf prints one formatted line
func (c *Console) Outputf(format string, args ...interface{}) {
	fmt.Fprintf(c.out, format+"\n", args...)
}

// Prompt prints "message: " and blocks for one line of input. The answer
// is returned with surrounding whitespace stripped. A final line without
// a trailing newline is still returned; the next read reports the error.
func (c *Console) Prompt(message string) (string, error) {
	fmt.Fprintf(c.out, "%s: ", message)

	line, err := c.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Confirm asks a yes/no question with the hint style matching the
// default. An empty answer takes the default; anything else is yes only
// for y, yes, true, or 1.
func (c *Console) Confirm(message string, defaultValue bool) (bool, error) {
	hint := " (y/N)"
	if defaultValue {
		hint = " (Y/n)"
	}

	answer, err := c.Prompt(message + hint)
	if err != nil {
		return false, err
	}

	answer = strings.ToLower(answer)
	if answer == "" {
		return defaultValue, nil
	}

	switch answer {
	case "y", "yes", "true", "1":
		return true, nil
	}
	return false, nil
}

// Success prints a highlighted completion line
func (c *Console) Success(message string) {
	fmt.Fprintln(c.out, c.render(successStyle, message))
}

// Info prints a neutral informational line
func (c *Console) Info(message string) {
	fmt.Fprintln(c.out, c.render(infoStyle, message))
}

// Warning prints a cautionary line
func (c *Console) Warning(message string) {
	fmt.Fprintln(c.out, c.render(warningStyle, message))
}

// Error prints a failure line, appending the cause when non-nil
func (c *Console) Error(message string, err error) {
	if err != nil {
		fmt.Fprintln(c.out, c.render(errorStyle, fmt.Sprintf("%s: %v", message, err)))
		return
	}
	fmt.Fprintln(c.out, c.render(errorStyle, message))
}

func (c *Console) render(style lipgloss.Style, text string) string {
	if !c.color {
		return text
	}
	return style.Render(text)
}

// IsTerminal checks if the file descriptor is a terminal
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// DetectWidth returns the terminal column count for f, or fallback when
// f is not a terminal or its size cannot be read.
func DetectWidth(f *os.File, fallback int) int {
	if !IsTerminal(f) {
		return fallback
	}

	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return fallback
	}
	return width
}

var _ ports.Console = (*Console)(nil)
