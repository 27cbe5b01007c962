// Package console writes the human-facing output of wineml.
package console

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	"github.com/YuminosukeSato/wineml/pkg/errors"
)

// DefaultWidth is used when the terminal size cannot be read.
const DefaultWidth = 80

const (
	ansiReset  = "\x1b[0m"
	ansiHeader = "\x1b[35;47m" // magenta on white
)

// Style describes how a writer can be decorated.
type Style struct {
	Color bool
	Width int
}

// StyleFor inspects w. Colors are only enabled for terminals.
func StyleFor(w io.Writer) Style {
	s := Style{Width: DefaultWidth}
	f, ok := w.(*os.File)
	if !ok {
		return s
	}
	fd := f.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return s
	}
	s.Color = true
	if width, _, err := term.GetSize(int(fd)); err == nil && width > 0 {
		s.Width = width
	}
	return s
}

// Scoped switches on the header style and returns the function that resets
// it. The reset must run on every path, so call it with defer.
func (s Style) Scoped(w io.Writer) (restore func()) {
	if !s.Color {
		return func() {}
	}
	fmt.Fprint(w, ansiHeader)
	return func() { fmt.Fprint(w, ansiReset) }
}

// PrintHeader writes the program banner followed by a blank line. On a
// terminal the title is centred and colored.
func PrintHeader(w io.Writer, title string) {
	style := StyleFor(w)
	if !style.Color {
		fmt.Fprintf(w, "-----%s------\n\n", title)
		return
	}

	func() {
		restore := style.Scoped(w)
		defer restore()

		text := strings.ToUpper(title)
		pad := (style.Width - len(text)) / 2
		if pad < 0 {
			pad = 0
		}
		line := strings.Repeat(" ", pad) + text
		if len(line) < style.Width {
			line += strings.Repeat(" ", style.Width-len(line))
		}
		blank := strings.Repeat(" ", style.Width)
		fmt.Fprint(w, blank+"\n"+line+"\n"+blank)
	}()
	fmt.Fprint(w, "\n\n")
}

// WaitForEnter blocks until a line (or EOF) is read from r.
func WaitForEnter(r io.Reader) error {
	_, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return errors.Wrap(err, "console: read")
	}
	return nil
}
