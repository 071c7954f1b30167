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
	"github.com/ashfall/periphsim/curated"
	"github.com/ashfall/periphsim/logger"
)

// ReadData returns count bytes from the active read transfer.
//
// The result is all-or-nothing: an inactive transfer or a count that
// exceeds the remaining-byte budget is logged and answered with an empty
// result and an unchanged transfer. The one exception is a read clamped by
// the length of the backing store, which is shorter than requested but not
// empty.
//
// The error return is reserved for broken invariants and should be treated
// as fatal.
func (cd *SDCard) ReadData(count int) ([]byte, error) {
	if !cd.rdt.active() {
		logger.Logf(cd.env, logTag, "read of %d bytes but no transfer is active", count)
		return []byte{}, nil
	}

	if !cd.rdt.canAccept(count) {
		logger.Logf(cd.env, logTag, "read of %d bytes exceeds the %d remaining; dropped", count, cd.rdt.remaining())
		return []byte{}, nil
	}

	if cd.rdt.mode == sequenceBacked {
		p, err := cd.rdt.seq.Bytes(cd.rdt.bitOffset, count)
		if err != nil {
			return nil, curated.Errorf("sdcard: %v", err)
		}
		cd.rdt.advanceBits(count * 8)
		return p, nil
	}

	cd.img.SetPosition(cd.rdt.byteOffset)
	p, err := cd.img.Read(count)
	if err != nil {
		return nil, curated.Errorf("sdcard: %v", err)
	}
	if len(p) < count {
		logger.Logf(cd.env, logTag, "short read of %d bytes (%d requested)", len(p), count)
	}

	// the transfer advances by the requested length, not the clamped one
	cd.rdt.advanceBytes(count)

	return p, nil
}

// WriteData commits bytes to the active write transfer.
//
// The write is all-or-nothing: an inactive transfer, a sequence backed
// transfer or a buffer that exceeds the remaining-byte budget is logged and
// the entire write dropped. A write clamped by the length of the backing
// store lands partially, with a log entry.
//
// The error return is reserved for broken invariants and should be treated
// as fatal.
func (cd *SDCard) WriteData(p []byte) error {
	if !cd.wrt.active() || cd.wrt.mode == sequenceBacked {
		logger.Logf(cd.env, logTag, "write of %d bytes but no storage transfer is active", len(p))
		return nil
	}

	if !cd.wrt.canAccept(len(p)) {
		logger.Logf(cd.env, logTag, "write of %d bytes exceeds the %d remaining; dropped", len(p), cd.wrt.remaining())
		return nil
	}

	cd.img.SetPosition(cd.wrt.byteOffset)
	n, err := cd.img.Write(p)
	if err != nil {
		return curated.Errorf("sdcard: %v", err)
	}
	if n < len(p) {
		logger.Logf(cd.env, logTag, "short write of %d bytes (%d requested)", n, len(p))
	}

	// the transfer advances by the requested length, not the clamped one
	cd.wrt.advanceBytes(len(p))

	return nil
}

// SetReadLimit sets the remaining-byte count of the read transfer directly.
//
// A bus controller starting a multiple-block read must call this before the
// first ReadData() - the ReadMultipleBlocks command does not set a budget of
// its own.
func (cd *SDCard) SetReadLimit(n int) error {
	if err := cd.rdt.setRemaining(n); err != nil {
		return curated.Errorf("sdcard: %v", err)
	}
	return nil
}
