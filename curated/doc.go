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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface.
//
// Curated errors are created with the Errorf() function. It takes a
// formatting pattern and placeholder values, like the Errorf() function in
// the fmt package, and returns an error.
//
// The Is() function can be used to check whether an error was created by
// Errorf() with a specific pattern. The Has() function is similar but checks
// whether the pattern occurs somewhere in the error chain. For example:
//
//	e := curated.Errorf("frobnication failed: %v", v)
//	f := curated.Errorf("fatal: %v", e)
//
//	curated.Is(f, "frobnication failed: %v")	-> false
//	curated.Has(f, "frobnication failed: %v")	-> true
//
// The IsAny() function answers whether the error was created by
// curated.Errorf() at all. We can think of the difference between curated
// and uncurated errors as the difference between 'expected' and 'unexpected'
// errors, depending on how we choose to handle the result of a function
// call.
//
// The Error() function implementation for curated errors normalises the
// error chain. Specifically, the chain will not contain duplicate adjacent
// parts, where parts are separated by the sub-string ': '. This alleviates
// the problem of when and how to wrap errors as they percolate up through
// the program.
//
// There is no special provision for sentinel errors but they are achievable
// in practice through the use of the Is() and Has() functions. Sentinel
// patterns should be stored as a const string, suitably named and commented.
package curated
