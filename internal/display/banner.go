// Package display holds presentation helpers: the check banner, byte sizes,
// and shell-quoted command lines.
package display

import (
	"fmt"
	"io"

	"github.com/backmassage/lan22build/internal/term"
)

// PrintBanner writes the ASCII art banner to w, in magenta when colors are on.
func PrintBanner(w io.Writer) {
	fmt.Fprint(w, term.Magenta)
	fmt.Fprint(w, ` ____  ____  _
|___ \|___ \| | __ _ _ __
  __) | __) | |/ _`+"`"+` | '_ \
 / __/ / __/| | (_| | | | |
|_____|_____|_|\__,_|_| |_|
`)
	if term.Enabled() {
		fmt.Fprintln(w, term.NC)
	}
}
