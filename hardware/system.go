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

package hardware

import (
	"github.com/ashfall/periphsim/environment"
	"github.com/ashfall/periphsim/hardware/bus"
	"github.com/ashfall/periphsim/hardware/peripherals/sdcard"
)

// System is the main container for the emulated hardware.
type System struct {
	Env *environment.Environment

	Card *sdcard.SDCard
	Bus  *bus.Controller
}

// NewSystem creates a System with a card backed by the named image file and
// a bus controller attached to it.
//
// The size argument is required when the image file does not yet exist. The
// persistent argument decides whether card writes reach the image file.
func NewSystem(env *environment.Environment, path string, size int64, persistent bool) (*System, error) {
	var err error

	sys := &System{Env: env}

	sys.Card, err = sdcard.NewSDCard(env, path, size, persistent)
	if err != nil {
		return nil, err
	}

	sys.Bus, err = bus.NewController(env, sys.Card)
	if err != nil {
		sys.Card.Dispose()
		return nil, err
	}

	return sys, nil
}

// Attach a different card image, replacing the current card. The old card
// is disposed of and the new one is taken through the identification
// sequence.
func (sys *System) Attach(path string, size int64, persistent bool) error {
	card, err := sdcard.NewSDCard(sys.Env, path, size, persistent)
	if err != nil {
		return err
	}

	bc, err := bus.NewController(sys.Env, card)
	if err != nil {
		card.Dispose()
		return err
	}

	_ = sys.Card.Dispose()
	sys.Card = card
	sys.Bus = bc

	return nil
}

// Reset the system. The card is reidentified afterwards so block operations
// keep working.
func (sys *System) Reset() error {
	sys.Card.Reset()
	return sys.Bus.Identify()
}

// End the system, releasing the card's resources. The System is not usable
// afterwards.
func (sys *System) End() error {
	return sys.Card.Dispose()
}
