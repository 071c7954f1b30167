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

package logger_test

import (
	"testing"

	"github.com/ashfall/periphsim/logger"
	"github.com/ashfall/periphsim/test"
)

func TestLogger(t *testing.T) {
	logger.Clear()

	tw := &test.CompareWriter{}

	logger.Write(tw)
	test.Equate(t, tw.Compare(""), true)

	logger.Log(logger.Allow, "test", "this is a test")
	logger.Write(tw)
	test.Equate(t, tw.Compare("test: this is a test\n"), true)

	// clear the writer buffer before continuing, makes comparisons easier to
	// manage
	tw.Clear()

	logger.Log(logger.Allow, "test2", "this is another test")
	logger.Write(tw)
	test.Equate(t, tw.Compare("test: this is a test\ntest2: this is another test\n"), true)

	// asking for too many entries in a Tail() should be okay
	tw.Clear()
	logger.Tail(tw, 100)
	test.Equate(t, tw.Compare("test: this is a test\ntest2: this is another test\n"), true)

	// asking for exactly the correct number of entries is okay
	tw.Clear()
	logger.Tail(tw, 2)
	test.Equate(t, tw.Compare("test: this is a test\ntest2: this is another test\n"), true)

	// asking for fewer entries is okay too
	tw.Clear()
	logger.Tail(tw, 1)
	test.Equate(t, tw.Compare("test2: this is another test\n"), true)

	// and no entries
	tw.Clear()
	logger.Tail(tw, 0)
	test.Equate(t, tw.Compare(""), true)

	logger.Clear()
}

// repeated entries are not added to the log again. instead a count is kept
// and reported as part of the entry
func TestRepeatedEntries(t *testing.T) {
	logger.Clear()

	tw := &test.CompareWriter{}

	logger.Log(logger.Allow, "test", "this is a test")
	logger.Log(logger.Allow, "test", "this is a test")
	logger.Write(tw)
	test.Equate(t, tw.Compare("test: this is a test (repeat x2)\n"), true)

	logger.Clear()
}

type prohibit struct {
	allow bool
}

func (p prohibit) AllowLogging() bool {
	return p.allow
}

func TestPermission(t *testing.T) {
	logger.Clear()

	tw := &test.CompareWriter{}

	logger.Log(prohibit{allow: false}, "test", "this entry should not appear")
	logger.Write(tw)
	test.Equate(t, tw.Compare(""), true)

	logger.Log(prohibit{allow: true}, "test", "this entry should appear")
	logger.Write(tw)
	test.Equate(t, tw.Compare("test: this entry should appear\n"), true)

	logger.Clear()
}
