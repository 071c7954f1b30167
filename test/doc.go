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

// Package test contains helper functions to remove common boilerplate to
// make testing easier.
//
// The Equate() function compares like-typed values for equality, and the
// ExpectedFailure() and ExpectedSuccess() functions check bool and error
// values for the obvious conditions.
//
// The CompareWriter type is an implementation of io.Writer that can be used
// to compare emitted output with an expected string. Useful for testing log
// output.
package test
