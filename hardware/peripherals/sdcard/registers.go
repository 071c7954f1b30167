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
	"github.com/ashfall/periphsim/hardware/peripherals/sdcard/synth"
)

// register widths in bits.
const (
	widthCID    = 128
	widthCSD    = 128
	widthOCR    = 32
	widthSCR    = 64
	widthStatus = 32
)

// the CID and CSD registers end with a structural byte (the CRC7 checksum
// and a stop bit) that is dropped when the register is sent in response to
// a command.
const structuralByte = 8

// defineRegisters builds the synthesizers for every register the card can
// produce. Constant fields are fixed here; callback fields observe live
// card state at the moment the register is read.
//
// Field layouts follow the SD physical layer specification. Fragments must
// not overlap - see TestRegisterDefinitions.
func (cd *SDCard) defineRegisters() {
	// card identification register
	cd.cid = synth.NewSynthesizer(widthCID)
	cd.cid.Define(120, 8, 0x03, "MID").
		Define(104, 16, 0x5053, "OID").
		Define(72, 32, 0x5053494d, "PNM[4:1]").
		Define(64, 8, 0x31, "PNM[0]").
		Define(56, 8, 0x10, "PRV").
		Define(24, 32, 0x00000001, "PSN").
		Define(8, 12, (26<<4)|8, "MDT").
		Define(1, 7, 0x00, "CRC7").
		Define(0, 1, 0x01, "always one")

	// card specific data register. the capacity fields describe the actual
	// size of the backing store: with a 512 byte block length and a size
	// multiplier of 7 the device size works out at image length divided by
	// 512*512
	cd.csd = synth.NewSynthesizer(widthCSD)
	cd.csd.Define(126, 2, 0x00, "CSD_STRUCTURE").
		Define(112, 8, 0x26, "TAAC").
		Define(104, 8, 0x00, "NSAC").
		Define(96, 8, 0x32, "TRAN_SPEED").
		Define(84, 12, 0x5b5, "CCC").
		Define(80, 4, 9, "READ_BL_LEN").
		Define(79, 1, 1, "READ_BL_PARTIAL").
		DefineFn(62, 12, cd.deviceSize, "C_SIZE").
		Define(47, 3, 7, "C_SIZE_MULT").
		Define(46, 1, 1, "ERASE_BLK_EN").
		Define(39, 7, 0x7f, "SECTOR_SIZE").
		Define(26, 3, 2, "R2W_FACTOR").
		Define(22, 4, 9, "WRITE_BL_LEN").
		Define(1, 7, 0x00, "CRC7").
		Define(0, 1, 0x01, "always one")

	// operating conditions register. the power-up bit is always set: the
	// card reports ready immediately, with no initialisation delay
	cd.ocr = synth.NewSynthesizer(widthOCR)
	cd.ocr.Define(31, 1, 1, "powered up").
		Define(15, 9, 0x1ff, "voltage window 2.7-3.6V")

	// configuration register. nothing of interest to report
	cd.scr = synth.NewSynthesizer(widthSCR)
	cd.scr.Define(60, 4, 0x00, "SCR_STRUCTURE").
		Define(56, 4, 0x00, "SD_SPEC")

	// card status. every error and state field reads as zero; the only
	// live bit says whether the card is expecting an application command
	cd.status = synth.NewSynthesizer(widthStatus)
	cd.status.DefineFn(5, 1, func() uint32 {
		if cd.appCmd {
			return 1
		}
		return 0
	}, "APP_CMD")

	// the response to the SendRelativeAddress command: fragments of the
	// card status concatenated with the card address in the low 16 bits
	cd.r6 = synth.NewSynthesizer(32)
	cd.r6.DefineFn(0, 16, func() uint32 { return uint32(cd.addr) }, "RCA").
		DefineFn(19, 1, cd.statusBits(13, 1), "status bit 13").
		DefineFn(22, 2, cd.statusBits(14, 2), "status bits 14-15")
}

// deviceSize computes the C_SIZE field of the card specific data register
// from the length of the backing store.
func (cd *SDCard) deviceSize() uint32 {
	// block count scaled by the fixed size multiplier: 2^(7+2) blocks per
	// C_SIZE step
	sz := cd.img.Length() / (512 * 512)
	if sz > 0 {
		sz--
	}
	return uint32(sz)
}

// statusBits returns a callback producing width bits of the card status
// register, starting at the named bit.
func (cd *SDCard) statusBits(bit int, width int) func() uint32 {
	mask := uint32(1<<width) - 1
	return func() uint32 {
		return (cd.status.Synthesize(0).ToUint32() >> bit) & mask
	}
}

// cardStatus synthesizes the card status register, the response to most
// commands.
func (cd *SDCard) cardStatus() bitseq.Sequence {
	return cd.status.Synthesize(0)
}
