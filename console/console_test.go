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

package console_test

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ashfall/periphsim/console"
	"github.com/ashfall/periphsim/curated"
	"github.com/ashfall/periphsim/environment"
	"github.com/ashfall/periphsim/hardware"
	"github.com/ashfall/periphsim/test"
)

// scriptTerminal implements the console.Terminal interface, feeding the
// command loop from a prepared script and recording everything printed.
type scriptTerminal struct {
	script []string
	output strings.Builder
	errors strings.Builder
}

func (st *scriptTerminal) Initialise() error {
	return nil
}

func (st *scriptTerminal) CleanUp() {
}

func (st *scriptTerminal) TermRead(prompt string) (string, error) {
	if len(st.script) == 0 {
		return "", curated.Errorf(console.UserInterrupt)
	}
	s := st.script[0]
	st.script = st.script[1:]
	return s, nil
}

func (st *scriptTerminal) TermPrintLine(style console.Style, s string, a ...interface{}) {
	if len(a) > 0 {
		s = fmt.Sprintf(s, a...)
	}
	if style == console.StyleError {
		st.errors.WriteString(s)
		st.errors.WriteString("\n")
		return
	}
	st.output.WriteString(s)
	st.output.WriteString("\n")
}

func (st *scriptTerminal) IsInteractive() bool {
	return false
}

// runScript runs the supplied commands against a fresh 1024 byte card and
// returns the terminal output and error output.
func runScript(t *testing.T, script ...string) (string, string) {
	t.Helper()

	env := environment.NewEnvironment("test")
	env.Silent = true

	sys, err := hardware.NewSystem(env, filepath.Join(t.TempDir(), "card.img"), 1024, false)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = sys.End() })

	term := &scriptTerminal{script: script}

	con, err := console.NewConsole(sys, term)
	if err != nil {
		t.Fatal(err)
	}
	if err := con.Run(); err != nil {
		t.Fatal(err)
	}

	return term.output.String(), term.errors.String()
}

func TestQuit(t *testing.T) {
	out, errs := runScript(t, "QUIT", "STATUS")

	// the loop ends at QUIT so the STATUS command is never seen
	test.Equate(t, out, "")
	test.Equate(t, errs, "")
}

func TestUnrecognisedCommand(t *testing.T) {
	_, errs := runScript(t, "NOSUCHCOMMAND")
	test.Equate(t, strings.Contains(errs, "NOSUCHCOMMAND"), true)
}

func TestStatus(t *testing.T) {
	out, errs := runScript(t, "STATUS")
	test.Equate(t, errs, "")
	test.Equate(t, strings.Contains(out, "blocklen=512"), true)
}

func TestRawCommand(t *testing.T) {
	// CMD2 responds with the 120 bit identification register
	out, errs := runScript(t, "CMD 2")
	test.Equate(t, errs, "")
	test.Equate(t, strings.Contains(out, "120 bits"), true)

	// CMD0 has no response
	out, errs = runScript(t, "CMD 0")
	test.Equate(t, errs, "")
	test.Equate(t, strings.Contains(out, "no response"), true)

	// a missing index is an error
	_, errs = runScript(t, "CMD")
	test.Equate(t, errs != "", true)
}

func TestReadWrite(t *testing.T) {
	out, errs := runScript(t,
		"BLOCKLEN 16",
		"WRITE 0 0xde 0xad 0xbe 0xef",
		"READ 0",
	)
	test.Equate(t, errs, "")
	test.Equate(t, strings.Contains(out, "de ad be ef"), true)
}

func TestAttach(t *testing.T) {
	env := environment.NewEnvironment("test")
	env.Silent = true

	sys, err := hardware.NewSystem(env, filepath.Join(t.TempDir(), "card.img"), 1024, false)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = sys.End() })

	term := &scriptTerminal{script: []string{
		fmt.Sprintf("ATTACH %s 2048", filepath.Join(t.TempDir(), "other.img")),
	}}

	con, err := console.NewConsole(sys, term)
	if err != nil {
		t.Fatal(err)
	}
	if err := con.Run(); err != nil {
		t.Fatal(err)
	}

	test.Equate(t, term.errors.String(), "")
	test.Equate(t, sys.Card.Size(), int64(2048))
}

func TestCaseInsensitiveCommands(t *testing.T) {
	_, errs := runScript(t, "blocklen 32", "read 0")
	test.Equate(t, errs, "")
}
