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

// Package modalflag is a wrapper for the flag package in the Go standard
// library. It provides a convenient method of handling program modes (and
// sub-modes) and allows different flags for each mode.
//
// At its simplest it can be used as a replacement for the flag package, with
// some differences. Whereas with flag.FlagSet you call Parse() with the
// array of strings as the only argument, with modalflag you first call
// NewArgs() with the array of arguments and then Parse() with no arguments:
//
//	md := Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	_, _ = md.Parse()
//
// Once the arguments have been parsed, non-flag arguments can be retrieved
// with the RemainingArgs() or GetArg() functions.
//
// Program modes are declared with the AddSubModes() function before the call
// to Parse(). The first sub-mode in the list is the default, used when the
// first non-flag argument doesn't match any declared sub-mode. After a
// Parse() that selects a sub-mode, call NewMode(), add the flags valid for
// the selected mode and Parse() again:
//
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("RUN", "VERSION")
//	_, _ = md.Parse()
//
//	switch md.Mode() {
//	case "RUN":
//		md.NewMode()
//		verbose := md.AddBool("verbose", false, "print log to stdout")
//		_, _ = md.Parse()
//		...
//	}
//
// Help messages (-help or an unrecognised flag) are handled automatically
// and reported through the ParseResult value returned by Parse().
package modalflag
