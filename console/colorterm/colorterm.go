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

// Package colorterm implements the console.Terminal interface for ANSI
// capable terminals. Input is read in raw mode, giving us line editing and
// a command history.
package colorterm

import (
	"bufio"
	"fmt"
	"os"

	"github.com/ashfall/periphsim/console"
	"github.com/ashfall/periphsim/console/colorterm/easyterm"
)

// ColorTerminal implements the console.Terminal interface with a basic ANSI
// terminal.
type ColorTerminal struct {
	easyterm.Terminal

	reader         *bufio.Reader
	commandHistory []command
}

type command struct {
	input []byte
}

// Initialise implements the console.Terminal interface.
func (ct *ColorTerminal) Initialise() error {
	if err := ct.Terminal.Initialise(os.Stdin, os.Stdout); err != nil {
		return err
	}

	ct.commandHistory = make([]command, 0)
	ct.reader = bufio.NewReader(os.Stdin)

	return nil
}

// CleanUp implements the console.Terminal interface.
func (ct *ColorTerminal) CleanUp() {
	ct.Print("\r")
	_ = ct.Flush()
	ct.Terminal.CleanUp()
}

// IsInteractive implements the console.Terminal interface.
func (ct *ColorTerminal) IsInteractive() bool {
	return true
}

// TermPrintLine implements the console.Terminal interface.
func (ct *ColorTerminal) TermPrintLine(style console.Style, s string, a ...interface{}) {
	ct.Print("\r")

	switch style {
	case console.StylePrompt:
		ct.Print(penStyles["bold"])
	case console.StyleFeedback:
		ct.Print(dimPens["white"])
	case console.StyleHelp:
		ct.Print(dimPens["white"])
		ct.Print("  ")
	case console.StyleLog:
		ct.Print(dimPens["cyan"])
	case console.StyleError:
		ct.Print(pens["red"])
		ct.Print("* ")
	}

	if len(a) > 0 {
		ct.Print(fmt.Sprintf(s, a...))
	} else {
		ct.Print(s)
	}
	ct.Print(ansiOff)

	if style != console.StylePrompt {
		ct.Print("\n")
	}
}
