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

package synth_test

import (
	"testing"

	"github.com/ashfall/periphsim/hardware/peripherals/sdcard/synth"
	"github.com/ashfall/periphsim/test"
	"github.com/google/go-cmp/cmp"
)

func TestSynthesize(t *testing.T) {
	syn := synth.NewSynthesizer(32)
	syn.Define(0, 8, 0xcd, "low byte").
		Define(24, 8, 0xab, "high byte").
		Define(12, 4, 0x0f, "middle nibble")

	seq := syn.Synthesize(0)
	test.Equate(t, seq.Length(), 32)

	// the result is the OR of each fragment's value shifted to its offset
	test.Equate(t, seq.ToUint32(), uint32(0xab00f0cd))
}

func TestValueTruncation(t *testing.T) {
	// constant values are mask-truncated to the declared width
	syn := synth.NewSynthesizer(32)
	syn.Define(8, 4, 0xff, "narrow")

	test.Equate(t, syn.Synthesize(0).ToUint32(), uint32(0x00000f00))
}

func TestSkip(t *testing.T) {
	syn := synth.NewSynthesizer(128)
	syn.Define(120, 8, 0xa5, "top").
		Define(8, 8, 0x99, "penultimate").
		Define(0, 8, 0x42, "structural")

	// without a skip value the full width is returned
	seq := syn.Synthesize(0)
	test.Equate(t, seq.Length(), 128)

	full, err := seq.Bytes(0, 16)
	test.ExpectedSuccess(t, err)

	// a skip of eight drops the trailing structural byte
	seq = syn.Synthesize(8)
	test.Equate(t, seq.Length(), 120)

	trimmed, err := seq.Bytes(0, 15)
	test.ExpectedSuccess(t, err)

	// the trimmed result equals the unskipped result with its low byte
	// removed
	if diff := cmp.Diff(full[:15], trimmed); diff != "" {
		t.Error(diff)
	}
	test.Equate(t, trimmed[0], 0xa5)
	test.Equate(t, trimmed[14], 0x99)
}

func TestLazyEvaluation(t *testing.T) {
	live := uint32(0)

	syn := synth.NewSynthesizer(32)
	syn.DefineFn(4, 4, func() uint32 { return live }, "live value")

	// callback fragments are evaluated at the moment the register is read
	test.Equate(t, syn.Synthesize(0).ToUint32(), uint32(0x00000000))

	live = 0x0c
	test.Equate(t, syn.Synthesize(0).ToUint32(), uint32(0x000000c0))
}

func TestVerify(t *testing.T) {
	syn := synth.NewSynthesizer(32)
	syn.Define(0, 16, 0x1234, "low").
		Define(16, 16, 0x5678, "high")
	test.ExpectedSuccess(t, syn.Verify())

	// overlapping fragments are caught
	syn.Define(15, 2, 0x03, "straddle")
	test.ExpectedFailure(t, syn.Verify())

	// fragments that overflow the register are caught
	syn = synth.NewSynthesizer(32)
	syn.Define(30, 4, 0x0f, "overflow")
	test.ExpectedFailure(t, syn.Verify())
}
