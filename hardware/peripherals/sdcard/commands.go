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
	"github.com/ashfall/periphsim/hardware/peripherals/sdcard/bitseq"
	"github.com/ashfall/periphsim/logger"
)

// the standard commands recognised by the card.
const (
	cmdGoIdleState        = 0
	cmdSendIdentification = 2
	cmdSendRelativeAddr   = 3
	cmdSelectDeselect     = 7
	cmdSendSpecificData   = 9
	cmdStopTransmission   = 12
	cmdSendStatus         = 13
	cmdSetBlockLen        = 16
	cmdReadSingleBlock    = 17
	cmdReadMultipleBlocks = 18
	cmdWriteSingleBlock   = 24
	cmdAppCommand         = 55
)

// the application-specific commands, valid only immediately after the
// AppCommand command.
const (
	acmdSendCardStatus    = 13
	acmdSendOpCond        = 41
	acmdSendConfiguration = 51
)

// HandleCommand dispatches a command to the card. The response is a
// sequence of exactly 0, 32, 120 or 128 bits, depending on the command.
//
// Command indices that the card does not recognise are logged and answered
// with an empty response, never an error.
func (cd *SDCard) HandleCommand(index uint8, arg uint32) bitseq.Sequence {
	// capture and clear the application-command flag before dispatch. the
	// flag is only ever good for one command
	app := cd.appCmd
	cd.appCmd = false

	if app {
		if resp, ok := cd.appCommand(index, arg); ok {
			return resp
		}

		// an unrecognised application command falls through to the
		// standard command set
	}

	return cd.standardCommand(index, arg)
}

func (cd *SDCard) standardCommand(index uint8, arg uint32) bitseq.Sequence {
	switch index {
	case cmdGoIdleState:
		cd.Reset()
		return bitseq.Sequence{}

	case cmdSendIdentification:
		return cd.cid.Synthesize(structuralByte)

	case cmdSendRelativeAddr:
		return cd.r6.Synthesize(0)

	case cmdSelectDeselect:
		// selection/deselection by card address is not modelled. every
		// attached card believes itself to be selected at all times
		return cd.cardStatus()

	case cmdSendSpecificData:
		return cd.csd.Synthesize(structuralByte)

	case cmdStopTransmission:
		cd.rdt.reset()
		cd.wrt.reset()
		return cd.cardStatus()

	case cmdSendStatus:
		return cd.cardStatus()

	case cmdSetBlockLen:
		cd.blockLen = arg
		return cd.cardStatus()

	case cmdReadSingleBlock:
		cd.rdt.setOffset(int64(arg))
		_ = cd.rdt.setRemaining(int(cd.blockLen))
		return cd.cardStatus()

	case cmdReadMultipleBlocks:
		// the remaining count is deliberately left unchanged. the bus
		// controller must call SetReadLimit() before the first ReadData()
		// or the reads will be dropped
		cd.rdt.setOffset(int64(arg))
		return cd.cardStatus()

	case cmdWriteSingleBlock:
		cd.wrt.setOffset(int64(arg))
		_ = cd.wrt.setRemaining(int(cd.blockLen))
		return cd.cardStatus()

	case cmdAppCommand:
		cd.appCmd = true
		return cd.cardStatus()
	}

	logger.Logf(cd.env, logTag, "unsupported command (CMD%d)", index)
	return bitseq.Sequence{}
}

// appCommand attempts application-specific dispatch. The second return
// value says whether the command was recognised; if it wasn't, the caller
// retries the index against the standard command set.
func (cd *SDCard) appCommand(index uint8, _ uint32) (bitseq.Sequence, bool) {
	switch index {
	case acmdSendCardStatus:
		cd.rdt.setData(cd.status.Synthesize(0))
		return cd.cardStatus(), true

	case acmdSendOpCond:
		return cd.ocr.Synthesize(0), true

	case acmdSendConfiguration:
		cd.rdt.setData(cd.scr.Synthesize(0))
		return cd.cardStatus(), true
	}

	return bitseq.Sequence{}, false
}
