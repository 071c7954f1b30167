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

// Package synth builds fixed-width registers from named bit-field
// fragments.
//
// Fragments are registered with the Define() and DefineFn() functions, the
// latter taking a callback that is evaluated at the moment the register is
// synthesized. Callback fragments therefore observe live card state rather
// than a value cached at definition time.
//
// Fragments must not overlap. The Verify() function checks for overlap and
// is intended to be called from tests - the Synthesize() function does not
// police the fragment list at runtime.
package synth

import (
	"github.com/ashfall/periphsim/curated"
	"github.com/ashfall/periphsim/hardware/peripherals/sdcard/bitseq"
)

// fragment is a single named bit-field in the register. exactly one of
// value/fn is used.
type fragment struct {
	offset int
	width  int
	value  uint32
	fn     func() uint32
	name   string
}

// Synthesizer assembles a register of the declared width from the defined
// fragments. Offsets are counted from the least significant end of the
// register.
type Synthesizer struct {
	width     int
	fragments []fragment
}

// NewSynthesizer is the preferred method of initialisation for the
// Synthesizer type. Width is counted in bits and must be a multiple of
// eight.
func NewSynthesizer(width int) *Synthesizer {
	return &Synthesizer{
		width: width,
	}
}

// Width of the synthesized register in bits.
func (syn *Synthesizer) Width() int {
	return syn.width
}

// Define a constant fragment. The value is truncated to the declared width.
// Returns the Synthesizer so definitions can be chained.
func (syn *Synthesizer) Define(offset int, width int, value uint32, name string) *Synthesizer {
	syn.fragments = append(syn.fragments, fragment{
		offset: offset,
		width:  width,
		value:  value & widthMask(width),
		name:   name,
	})
	return syn
}

// DefineFn defines a fragment whose value is produced by the callback at
// synthesis time. The result is truncated to the declared width. Returns
// the Synthesizer so definitions can be chained.
func (syn *Synthesizer) DefineFn(offset int, width int, fn func() uint32, name string) *Synthesizer {
	syn.fragments = append(syn.fragments, fragment{
		offset: offset,
		width:  width,
		fn:     fn,
		name:   name,
	})
	return syn
}

// Synthesize the register, dropping the lowest skip bits of the result. The
// skip argument is used to remove the trailing structural byte from the
// card-identification and card-specific-data registers.
func (syn *Synthesizer) Synthesize(skip int) bitseq.Sequence {
	buf := make([]byte, syn.width/8)

	for _, f := range syn.fragments {
		v := f.value
		if f.fn != nil {
			v = f.fn() & widthMask(f.width)
		}

		for i := 0; i < f.width; i++ {
			if v>>i&0x01 == 0x01 {
				// convert the register bit position to an index in
				// transmission order
				idx := syn.width - 1 - (f.offset + i)
				buf[idx/8] |= 0x80 >> (idx % 8)
			}
		}
	}

	return bitseq.New(buf, syn.width-skip)
}

// Verify that the fragment list is well formed: every fragment in range and
// no two fragments overlapping. For use in tests.
func (syn *Synthesizer) Verify() error {
	var used [256]string

	for _, f := range syn.fragments {
		if f.width <= 0 || f.width > 32 {
			return curated.Errorf("synth: fragment %s has unusable width (%d)", f.name, f.width)
		}
		if f.offset < 0 || f.offset+f.width > syn.width {
			return curated.Errorf("synth: fragment %s overflows the register", f.name)
		}
		for i := f.offset; i < f.offset+f.width; i++ {
			if used[i] != "" {
				return curated.Errorf("synth: fragment %s overlaps fragment %s at bit %d", f.name, used[i], i)
			}
			used[i] = f.name
		}
	}

	return nil
}

func widthMask(width int) uint32 {
	if width >= 32 {
		return 0xffffffff
	}
	return (1 << width) - 1
}
