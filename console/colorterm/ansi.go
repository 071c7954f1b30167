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

import "fmt"

// ansi color numbers.
const (
	red     = 1
	green   = 2
	yellow  = 3
	blue    = 4
	magenta = 5
	cyan    = 6
	white   = 7
)

// ansi attribute numbers.
const (
	bold      = 1
	underline = 4
)

var pens map[string]string
var dimPens map[string]string
var penStyles map[string]string

const ansiOff = "\033[m"

// cursor sequences used during line editing.
const (
	cursorStore       = "\033[s"
	cursorRestore     = "\033[u"
	cursorForwardOne  = "\033[C"
	cursorBackwardOne = "\033[D"
	clearLine         = "\033[2K"
)

// cursorMove left (negative) or right (positive) by n characters.
func cursorMove(n int) string {
	if n < 0 {
		return fmt.Sprintf("\033[%dD", -n)
	} else if n > 0 {
		return fmt.Sprintf("\033[%dC", n)
	}
	return ""
}

func init() {
	pens = make(map[string]string)
	dimPens = make(map[string]string)
	penStyles = make(map[string]string)

	for k, v := range map[string]int{
		"red":     red,
		"green":   green,
		"yellow":  yellow,
		"blue":    blue,
		"magenta": magenta,
		"cyan":    cyan,
		"white":   white,
	} {
		pens[k] = fmt.Sprintf("\033[9%dm", v)
		dimPens[k] = fmt.Sprintf("\033[3%dm", v)
	}

	penStyles["bold"] = fmt.Sprintf("\033[%dm", bold)
	penStyles["underline"] = fmt.Sprintf("\033[%dm", underline)
}
