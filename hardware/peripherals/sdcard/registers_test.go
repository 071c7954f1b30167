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
	"path/filepath"
	"testing"

	"github.com/ashfall/periphsim/environment"
	"github.com/ashfall/periphsim/hardware/peripherals/sdcard/bitseq"
	"github.com/ashfall/periphsim/test"
)

func newTestCard(t *testing.T, size int64) *SDCard {
	t.Helper()

	env := environment.NewEnvironment("test")
	env.Silent = true

	cd, err := NewSDCard(env, filepath.Join(t.TempDir(), "card.img"), size, false)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { cd.Dispose() })

	return cd
}

// field extracts a bit-field from a register, offset counted from the least
// significant end of the sequence.
func field(seq bitseq.Sequence, offset int, width int) uint32 {
	var v uint32
	for i := width - 1; i >= 0; i-- {
		v <<= 1
		if seq.Bit(seq.Length() - 1 - (offset + i)) {
			v |= 1
		}
	}
	return v
}

// fragments defined on a register must not overlap. the synthesizer does
// not police this at runtime so it is checked here instead
func TestRegisterDefinitions(t *testing.T) {
	cd := newTestCard(t, 1024)

	test.ExpectedSuccess(t, cd.cid.Verify())
	test.ExpectedSuccess(t, cd.csd.Verify())
	test.ExpectedSuccess(t, cd.ocr.Verify())
	test.ExpectedSuccess(t, cd.scr.Verify())
	test.ExpectedSuccess(t, cd.status.Verify())
	test.ExpectedSuccess(t, cd.r6.Verify())
}

func TestIdentificationRegister(t *testing.T) {
	cd := newTestCard(t, 1024)

	// the full register is 128 bits; the structural byte is dropped when
	// the register is sent over the wire
	test.Equate(t, cd.cid.Synthesize(0).Length(), 128)

	seq := cd.cid.Synthesize(structuralByte)
	test.Equate(t, seq.Length(), 120)

	// manufacturer id is the first byte on the wire
	p, err := seq.Bytes(0, 1)
	test.ExpectedSuccess(t, err)
	test.Equate(t, p[0], 0x03)
}

func TestSpecificDataRegister(t *testing.T) {
	cd := newTestCard(t, 64*1024*1024)

	seq := cd.csd.Synthesize(structuralByte)
	test.Equate(t, seq.Length(), 120)

	// field offsets shift down by eight once the structural byte has been
	// dropped
	test.Equate(t, field(seq, 47-8, 3), uint32(7))    // C_SIZE_MULT
	test.Equate(t, field(seq, 80-8, 4), uint32(9))    // READ_BL_LEN
	test.Equate(t, field(seq, 62-8, 12), uint32(255)) // C_SIZE for a 64MB image
}

func TestOperatingConditionsRegister(t *testing.T) {
	cd := newTestCard(t, 1024)

	// the power-up bit is always set: no initialisation delay is modelled
	v := cd.ocr.Synthesize(0).ToUint32()
	test.Equate(t, v&0x80000000 != 0, true)
	test.Equate(t, v&0x00ff8000, uint32(0x00ff8000))
}

func TestStatusRegister(t *testing.T) {
	cd := newTestCard(t, 1024)

	// status reads as all-zero until the AppCommand command is seen
	test.Equate(t, cd.status.Synthesize(0).ToUint32(), uint32(0))

	// the APP_CMD bit is a live value, not a cached one
	cd.appCmd = true
	test.Equate(t, cd.status.Synthesize(0).ToUint32(), uint32(1<<5))

	cd.appCmd = false
	test.Equate(t, cd.status.Synthesize(0).ToUint32(), uint32(0))
}
