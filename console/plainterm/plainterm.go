// This file is part of Periphsim.
//
// Periphsim is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Periphsim is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Periphsim.  If not, see <https://www.gnu.org/licenses/>.

// Package plainterm implements the console.Terminal interface in the
// simplest way possible. The terminal is left in whatever mode it started
// in, so there is no line editing or history beyond what the terminal
// driver provides.
package plainterm

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/ashfall/periphsim/console"
	"github.com/ashfall/periphsim/curated"
)

// PlainTerminal is the default terminal interface.
type PlainTerminal struct {
	input  *bufio.Scanner
	output io.Writer
}

// Initialise implements the console.Terminal interface.
func (pt *PlainTerminal) Initialise() error {
	pt.input = bufio.NewScanner(os.Stdin)
	pt.output = os.Stdout
	return nil
}

// CleanUp implements the console.Terminal interface.
func (pt *PlainTerminal) CleanUp() {
}

// TermRead implements the console.Terminal interface.
func (pt *PlainTerminal) TermRead(prompt string) (string, error) {
	fmt.Fprint(pt.output, prompt)

	if !pt.input.Scan() {
		if err := pt.input.Err(); err != nil {
			return "", err
		}

		// end of input is treated like the user leaving
		return "", curated.Errorf(console.UserInterrupt)
	}

	return pt.input.Text(), nil
}

// TermPrintLine implements the console.Terminal interface.
func (pt *PlainTerminal) TermPrintLine(style console.Style, s string, a ...interface{}) {
	if style == console.StyleError {
		s = fmt.Sprintf("* %s", s)
	}

	if len(a) > 0 {
		s = fmt.Sprintf(s, a...)
	}

	fmt.Fprintln(pt.output, s)
}

// IsInteractive implements the console.Terminal interface.
func (pt *PlainTerminal) IsInteractive() bool {
	return false
}
