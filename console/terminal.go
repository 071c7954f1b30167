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

package console

// Style is used to hint at how a line of output should be presented.
// Terminal implementations are free to ignore the hint.
type Style int

// List of values for the Style type.
const (
	// the prompt asking for input. no newline is implied
	StylePrompt Style = iota

	// the response to a successfully executed command
	StyleFeedback

	// help text
	StyleHelp

	// lines from the central log
	StyleLog

	// command errors. terminals should display these even when the
	// console is otherwise quiet
	StyleError
)

// sentinel error returned by TermRead() when the user has asked to leave
// with something other than the QUIT command.
const UserInterrupt = "user interrupt"

// Terminal defines the operations required by the console's command loop.
type Terminal interface {
	// Initialise the terminal. not all terminal implementations will need
	// to do anything
	Initialise() error

	// Restore the terminal to its original state
	CleanUp()

	// TermRead returns the next line of user input, without the line
	// terminator
	TermRead(prompt string) (string, error)

	// TermPrintLine outputs a formatted line in the hinted style
	TermPrintLine(style Style, s string, a ...interface{})

	// IsInteractive is true for implementations that expect a human at the
	// other end
	IsInteractive() bool
}
