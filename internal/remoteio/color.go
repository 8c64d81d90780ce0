package remoteio

import (
	"os"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-isatty"
)

// ErrorLine wraps msg in the red/bold SGR sequence spec §7 mandates
// for user-visible failures.
func ErrorLine(msg string) string {
	return "\x1b[31;1m" + msg + "\x1b[0m"
}

// RenderForWriter returns s as-is if f looks like an interactive
// terminal, or with ANSI escapes stripped otherwise (redirected to a
// file or pipe) so downloaded/piped output stays plain text.
func RenderForWriter(f *os.File, s string) string {
	if isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()) {
		return s
	}
	return ansi.Strip(s)
}
