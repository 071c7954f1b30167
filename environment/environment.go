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

// Package environment is used to provide context to an emulated system and
// its peripherals. It is particularly useful when more than one card is
// being emulated in the same process - log entries from a scratch card
// created during testing, for example, would drown out the entries we
// actually care about.
package environment

// Label is used to name the environment.
type Label string

// MainEmulation is the label used for the main emulation in the system.
const MainEmulation = Label("")

// Environment provides context for an emulation.
type Environment struct {
	Label Label

	// log entries from this environment are suppressed when Silent is true
	Silent bool
}

// NewEnvironment is the preferred method of initialisation for the
// Environment type.
func NewEnvironment(label Label) *Environment {
	return &Environment{
		Label: label,
	}
}

// AllowLogging implements the logger.Permission interface.
func (env *Environment) AllowLogging() bool {
	return !env.Silent
}

// IsMainEmulation returns true if the environment is intended for the main
// emulation in the system.
func (env *Environment) IsMainEmulation() bool {
	return env.Label == MainEmulation
}
