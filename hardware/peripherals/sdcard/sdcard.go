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

package sdcard

import (
	"fmt"
	"strings"

	"github.com/ashfall/periphsim/curated"
	"github.com/ashfall/periphsim/environment"
	"github.com/ashfall/periphsim/hardware/peripherals/sdcard/storage"
	"github.com/ashfall/periphsim/hardware/peripherals/sdcard/synth"
	"github.com/ashfall/periphsim/logger"
)

// the tag used for all log entries made by this package.
const logTag = "sdcard"

// the block length a real card powers up with, taken from the READ_BL_LEN
// field of the card-specific-data register.
const defaultBlockLen = 512

// SDCard represents an SD/MMC storage card.
type SDCard struct {
	env *environment.Environment

	// the backing store for block transfers. created at construction and
	// released on Dispose()
	img *storage.Image

	// block length in bytes, set by the SetBlockLength command. the value
	// deliberately survives a Reset()
	blockLen uint32

	// the relative card address. assigned externally by the bus controller,
	// never by a command
	addr uint16

	// the AppCommand command flags the next command as application
	// specific. the flag is consumed by the very next command
	appCmd bool

	// one transfer context for each data direction
	rdt transfer
	wrt transfer

	// synthesized registers
	cid    *synth.Synthesizer
	csd    *synth.Synthesizer
	ocr    *synth.Synthesizer
	scr    *synth.Synthesizer
	status *synth.Synthesizer
	r6     *synth.Synthesizer
}

// NewSDCard is the preferred method of initialisation for the SDCard type.
//
// The path argument names the card image. The size argument is required
// when the image does not yet exist. If persistent is true then writes land
// directly in the named image; otherwise the card operates on a private
// copy and the image is unmodified.
func NewSDCard(env *environment.Environment, path string, size int64, persistent bool) (*SDCard, error) {
	cd := &SDCard{
		env:      env,
		blockLen: defaultBlockLen,
	}

	var err error
	cd.img, err = storage.Open(path, size, persistent)
	if err != nil {
		return nil, curated.Errorf("sdcard: %v", err)
	}

	cd.defineRegisters()
	cd.Reset()

	logger.Logf(cd.env, logTag, "attached %s (%d bytes, persistent=%v)", path, cd.img.Length(), persistent)

	return cd, nil
}

// Reset the card as would happen on a hardware reset or on the GoIdleState
// command. The block length survives a reset; the card address and the
// image contents are untouched.
func (cd *SDCard) Reset() {
	cd.appCmd = false
	cd.rdt.reset()
	cd.wrt.reset()
}

// Dispose releases the backing store. No further operations are valid on
// the card afterwards.
func (cd *SDCard) Dispose() error {
	return cd.img.Dispose()
}

// SetAddress assigns the relative card address. Address assignment is the
// bus controller's job; no command alters it.
func (cd *SDCard) SetAddress(addr uint16) {
	cd.addr = addr
}

// Address returns the relative card address.
func (cd *SDCard) Address() uint16 {
	return cd.addr
}

// BlockLen returns the current block length in bytes.
func (cd *SDCard) BlockLen() uint32 {
	return cd.blockLen
}

// Size of the backing store in bytes.
func (cd *SDCard) Size() int64 {
	return cd.img.Length()
}

func (cd *SDCard) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("sdcard: addr=%#04x blocklen=%d", cd.addr, cd.blockLen))
	if cd.appCmd {
		s.WriteString(" [ACMD]")
	}
	s.WriteString(fmt.Sprintf("\n  read: %s", cd.rdt.String()))
	s.WriteString(fmt.Sprintf("\n  write: %s", cd.wrt.String()))
	return s.String()
}
