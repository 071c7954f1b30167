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

	"github.com/ashfall/periphsim/curated"
	"github.com/ashfall/periphsim/hardware/peripherals/sdcard/bitseq"
)

// sentinel error returned when the remaining-byte count of a sequence
// transfer is changed while the transfer is in flight.
const ResizeInFlight = "transfer: cannot resize an in-flight sequence transfer"

// transferMode records what a transfer is backed by.
type transferMode int

// list of valid transferMode values. a transfer moves to notStarted on
// reset; to storageBacked via setOffset() or setRemaining(); and to
// sequenceBacked via setData().
const (
	notStarted transferMode = iota
	storageBacked
	sequenceBacked
)

// transfer tracks one in-flight read or write transfer. The backing is
// mutually exclusive: a storage backed transfer counts in bytes against the
// card image; a sequence backed transfer counts in bits against a
// synthesized register.
//
// The advance functions are explicitly typed per backing. advanceBytes() is
// only meaningful for a storage backed transfer and advanceBits() for a
// sequence backed transfer.
type transfer struct {
	mode transferMode

	// storage backing
	byteOffset int64
	bytesLeft  int

	// sequence backing
	seq       bitseq.Sequence
	bitOffset int
}

// setOffset switches the transfer to storage backing, discarding any
// sequence backing. The remaining-byte count is left alone: commands that
// need it changed set it separately.
func (tr *transfer) setOffset(offset int64) {
	tr.mode = storageBacked
	tr.byteOffset = offset
	tr.seq = bitseq.Sequence{}
	tr.bitOffset = 0
}

// setData switches the transfer to sequence backing, discarding any storage
// backing and rewinding the bit offset.
func (tr *transfer) setData(seq bitseq.Sequence) {
	tr.mode = sequenceBacked
	tr.seq = seq
	tr.bitOffset = 0
	tr.byteOffset = 0
	tr.bytesLeft = 0
}

// remaining bytes in the transfer.
func (tr *transfer) remaining() int {
	switch tr.mode {
	case storageBacked:
		return tr.bytesLeft
	case sequenceBacked:
		return (tr.seq.Length() - tr.bitOffset) / 8
	}
	return 0
}

// setRemaining changes the remaining-byte count, forcing storage backing.
// Resizing a sequence transfer that is still in flight is a broken
// invariant and returns an error.
func (tr *transfer) setRemaining(v int) error {
	if tr.mode == sequenceBacked {
		if tr.remaining() > 0 {
			return curated.Errorf(ResizeInFlight)
		}

		// the sequence is exhausted so moving to storage backing is safe
		tr.seq = bitseq.Sequence{}
		tr.bitOffset = 0
	}

	tr.mode = storageBacked
	tr.bytesLeft = v
	return nil
}

// active is true while there are bytes left in the transfer.
func (tr *transfer) active() bool {
	return tr.remaining() > 0
}

// canAccept returns true if the transfer has at least n bytes left.
func (tr *transfer) canAccept(n int) bool {
	return n <= tr.remaining()
}

// advanceBytes moves a storage backed transfer forward by n bytes.
func (tr *transfer) advanceBytes(n int) {
	tr.byteOffset += int64(n)
	tr.bytesLeft -= n
	if tr.bytesLeft < 0 {
		tr.bytesLeft = 0
	}
}

// advanceBits moves a sequence backed transfer forward by n bits.
func (tr *transfer) advanceBits(n int) {
	tr.bitOffset += n
}

// reset returns the transfer to the notStarted state, discarding both
// backings.
func (tr *transfer) reset() {
	*tr = transfer{}
}

func (tr *transfer) String() string {
	switch tr.mode {
	case storageBacked:
		return fmt.Sprintf("storage: offset=%d remaining=%d", tr.byteOffset, tr.bytesLeft)
	case sequenceBacked:
		return fmt.Sprintf("sequence: bit=%d remaining=%d", tr.bitOffset, tr.remaining())
	}
	return "not started"
}
