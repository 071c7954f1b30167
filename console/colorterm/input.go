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

package colorterm

import (
	"unicode"
	"unicode/utf8"

	"github.com/ashfall/periphsim/console"
	"github.com/ashfall/periphsim/console/colorterm/easyterm"
	"github.com/ashfall/periphsim/curated"
)

// TermRead implements the console.Terminal interface.
//
// The terminal is in raw mode for the duration of the read so cursor keys,
// backspace and the command history work the way a user expects.
func (ct *ColorTerminal) TermRead(prompt string) (string, error) {
	ct.RawMode()
	defer ct.CanonicalMode()

	input := make([]byte, 255)

	// er is used to store encoded runes (length of 4 should be enough)
	er := make([]byte, 4)

	n := 0
	cursor := 0
	history := len(ct.commandHistory)

	// buffInput stores the latest input when scrolling through history so
	// nothing is lost if the user wants to resume where they left off
	buffInput := make([]byte, cap(input))
	buffN := 0

	// the method for cursor placement is to redraw the whole line every
	// iteration and then restore the stored cursor position
	ct.Print("\r%s", cursorMove(len(prompt)))

	for {
		ct.Print(cursorStore)
		ct.TermPrintLine(console.StylePrompt, "%s%s", clearLine, prompt)
		ct.Print(string(input[:n]))
		ct.Print(cursorRestore)

		r, _, err := ct.reader.ReadRune()
		if err != nil {
			return "", err
		}

		switch r {
		case easyterm.KeyCtrlC, easyterm.KeyCtrlD:
			ct.Print("\n")
			return "", curated.Errorf(console.UserInterrupt)

		case easyterm.KeyCarriageReturn:
			// check to see if input is the same as the last history entry
			newEntry := n > 0
			if newEntry && len(ct.commandHistory) > 0 {
				last := ct.commandHistory[len(ct.commandHistory)-1].input
				if len(last) == n {
					newEntry = false
					for i := 0; i < n; i++ {
						if input[i] != last[i] {
							newEntry = true
							break
						}
					}
				}
			}

			if newEntry {
				nh := make([]byte, n)
				copy(nh, input[:n])
				ct.commandHistory = append(ct.commandHistory, command{input: nh})
			}

			ct.Print("\n")
			return string(input[:n]), nil

		case easyterm.KeyEsc:
			// ESCAPE SEQUENCE BEGIN
			r, _, err := ct.reader.ReadRune()
			if err != nil {
				return "", err
			}
			if r != easyterm.EscCursor {
				continue
			}

			// CURSOR KEY
			r, _, err = ct.reader.ReadRune()
			if err != nil {
				return "", err
			}

			switch r {
			case easyterm.CursorUp:
				// move up through command history
				if len(ct.commandHistory) > 0 {
					// store the current input for possible later editing
					if history == len(ct.commandHistory) {
						copy(buffInput, input[:n])
						buffN = n
					}

					if history > 0 {
						history--
						copy(input, ct.commandHistory[history].input)
						n = len(ct.commandHistory[history].input)
						ct.Print(cursorMove(n - cursor))
						cursor = n
					}
				}

			case easyterm.CursorDown:
				// move down through command history
				if len(ct.commandHistory) > 0 {
					if history < len(ct.commandHistory)-1 {
						history++
						copy(input, ct.commandHistory[history].input)
						n = len(ct.commandHistory[history].input)
						ct.Print(cursorMove(n - cursor))
						cursor = n
					} else if history == len(ct.commandHistory)-1 {
						history++
						copy(input, buffInput)
						n = buffN
						ct.Print(cursorMove(n - cursor))
						cursor = n
					}
				}

			case easyterm.CursorForward:
				// move forward through current command input
				if cursor < n {
					ct.Print(cursorForwardOne)
					cursor++
				}

			case easyterm.CursorBackward:
				// move backward through current command input
				if cursor > 0 {
					ct.Print(cursorBackwardOne)
					cursor--
				}
			}

		case easyterm.KeyBackspace:
			if cursor > 0 {
				copy(input[cursor-1:], input[cursor:])
				ct.Print(cursorBackwardOne)
				cursor--
				n--
				history = len(ct.commandHistory)
			}

		default:
			if unicode.IsPrint(r) {
				ct.Print("%c", r)
				m := utf8.EncodeRune(er, r)
				copy(input[cursor+m:], input[cursor:])
				copy(input[cursor:], er[:m])
				cursor++
				n += m
				history = len(ct.commandHistory)
			}
		}
	}
}
