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

// Package bus implements the host side of the card command protocol. The
// Controller type plays the role of the device the card is plugged into,
// sequencing the commands a real host controller would issue for the common
// block operations.
//
// The card itself never refuses a command on protocol-order grounds so the
// Controller is also the place where the protocol niceties live: the
// identification sequence, the read budget for multiple-block reads, the
// stop command at the end of an open-ended transfer.
package bus

import (
	"github.com/ashfall/periphsim/curated"
	"github.com/ashfall/periphsim/environment"
	"github.com/ashfall/periphsim/hardware/peripherals/sdcard"
	"github.com/ashfall/periphsim/logger"
)

const logTag = "bus"

// sentinel errors returned by the Controller.
const (
	NoCard          = "bus: no card attached"
	AddressMismatch = "bus: card reports address %#04x, expected %#04x"
)

// default relative address assigned during identification.
const defaultAddr = 0x0001

// command indices issued by the Controller. These mirror the indices the
// card dispatches on.
const (
	cmdGoIdleState        = 0
	cmdSendIdentification = 2
	cmdSendRelativeAddr   = 3
	cmdSelectDeselect     = 7
	cmdSendSpecificData   = 9
	cmdStopTransmission   = 12
	cmdSetBlockLen        = 16
	cmdReadSingleBlock    = 17
	cmdReadMultipleBlocks = 18
	cmdWriteSingleBlock   = 24
)

// Controller sequences card commands on behalf of the host.
type Controller struct {
	env  *environment.Environment
	card *sdcard.SDCard
}

// NewController creates a Controller for the supplied card. The card is
// taken through the identification sequence immediately.
func NewController(env *environment.Environment, card *sdcard.SDCard) (*Controller, error) {
	bc := &Controller{
		env:  env,
		card: card,
	}

	if err := bc.Identify(); err != nil {
		return nil, err
	}

	return bc, nil
}

// Identify runs the card identification sequence: reset, identification
// register, address assignment and selection. The sequence is safe to rerun
// at any time but any in-flight transfer is lost.
func (bc *Controller) Identify() error {
	if bc.card == nil {
		return curated.Errorf(NoCard)
	}

	bc.card.HandleCommand(cmdGoIdleState, 0)

	cid := bc.card.HandleCommand(cmdSendIdentification, 0)
	logger.Logf(bc.env, logTag, "card identification: %s", cid.String())

	// address assignment is the host's job. the card merely reports the
	// address back in the low bits of the response
	bc.card.SetAddress(defaultAddr)
	r6 := bc.card.HandleCommand(cmdSendRelativeAddr, 0)
	if addr := uint16(r6.ToUint32() & 0xffff); addr != defaultAddr {
		return curated.Errorf(AddressMismatch, addr, defaultAddr)
	}

	bc.card.HandleCommand(cmdSelectDeselect, uint32(defaultAddr)<<16)

	return nil
}

// SetBlockLen sets the block length used by subsequent block operations.
func (bc *Controller) SetBlockLen(n uint32) {
	bc.card.HandleCommand(cmdSetBlockLen, n)
}

// ReadBlock reads a single block starting at the supplied byte offset.
func (bc *Controller) ReadBlock(offset int64) ([]byte, error) {
	bc.card.HandleCommand(cmdReadSingleBlock, uint32(offset))
	return bc.card.ReadData(int(bc.card.BlockLen()))
}

// ReadBlocks reads n consecutive blocks starting at the supplied byte
// offset.
//
// The multiple-block read command leaves the card's read budget untouched,
// so the budget for the whole run is set through SetReadLimit() before the
// first block is pulled. The transfer is closed with a stop command whether
// it succeeded or not.
func (bc *Controller) ReadBlocks(offset int64, n int) ([]byte, error) {
	blockLen := int(bc.card.BlockLen())

	bc.card.HandleCommand(cmdReadMultipleBlocks, uint32(offset))
	defer bc.card.HandleCommand(cmdStopTransmission, 0)

	if err := bc.card.SetReadLimit(n * blockLen); err != nil {
		return nil, err
	}

	p := make([]byte, 0, n*blockLen)
	for i := 0; i < n; i++ {
		b, err := bc.card.ReadData(blockLen)
		if err != nil {
			return nil, err
		}
		if len(b) == 0 {
			// the card has dropped the read, most likely because the
			// offset has run past the end of the image
			logger.Logf(bc.env, logTag, "multiple-block read ended early after %d blocks", i)
			break
		}
		p = append(p, b...)
		if len(b) < blockLen {
			break
		}
	}

	return p, nil
}

// WriteBlock writes a single block starting at the supplied byte offset.
// Data beyond the block length is dropped by the card.
func (bc *Controller) WriteBlock(offset int64, p []byte) error {
	bc.card.HandleCommand(cmdWriteSingleBlock, uint32(offset))
	return bc.card.WriteData(p)
}

// SpecificData returns the card's specific-data register as it appears on
// the wire.
func (bc *Controller) SpecificData() []byte {
	seq := bc.card.HandleCommand(cmdSendSpecificData, 0)

	p, err := seq.Bytes(0, seq.Length()/8)
	if err != nil {
		return []byte{}
	}
	return p
}
