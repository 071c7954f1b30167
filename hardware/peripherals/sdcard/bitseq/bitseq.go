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

// Package bitseq implements an immutable, length-tagged sequence of bits.
//
// Bits are indexed in transmission order: index zero is the first bit the
// card puts on the wire, which is the most significant bit of the register
// the sequence was synthesized from. The zero value of the Sequence type is
// the empty sequence.
package bitseq

import (
	"fmt"
	"strings"

	"github.com/ashfall/periphsim/curated"
)

// sentinel error returned when a read would go beyond the length of the
// sequence.
const BeyondLength = "bitseq: read beyond end of sequence (bit %d of %d)"

// Sequence is an immutable sequence of bits. The length is fixed at
// construction.
type Sequence struct {
	data   []byte
	length int
}

// New creates a Sequence of the specified length in bits. The data slice is
// copied and any bits beyond the length are masked off.
//
// Bit zero of the sequence is the most significant bit of data[0].
func New(data []byte, length int) Sequence {
	if length <= 0 {
		return Sequence{}
	}

	n := (length + 7) / 8
	seq := Sequence{
		data:   make([]byte, n),
		length: length,
	}
	copy(seq.data, data)

	// mask off unused bits in the final byte
	if r := length % 8; r != 0 {
		seq.data[n-1] &= byte(0xff << (8 - r))
	}

	return seq
}

// Length of the sequence in bits.
func (seq Sequence) Length() int {
	return seq.length
}

// IsEmpty returns true if the sequence has zero length.
func (seq Sequence) IsEmpty() bool {
	return seq.length == 0
}

// Bit returns the bit at index idx. Bits beyond the end of the sequence are
// zero.
func (seq Sequence) Bit(idx int) bool {
	if idx < 0 || idx >= seq.length {
		return false
	}
	return seq.data[idx/8]&(0x80>>(idx%8)) != 0
}

// ToUint32 converts the lowest (ie. last in transmission order) bits of the
// sequence to an unsigned integer. Sequences longer than 32 bits are
// truncated to the lowest 32 bits.
func (seq Sequence) ToUint32() uint32 {
	var v uint32

	idx := seq.length - 32
	if idx < 0 {
		idx = 0
	}

	for ; idx < seq.length; idx++ {
		v <<= 1
		if seq.Bit(idx) {
			v |= 1
		}
	}

	return v
}

// Bytes extracts n bytes from the sequence, starting skip bits from the
// beginning. The skip value does not need to be byte aligned.
//
// An error is returned if the extraction would read beyond the end of the
// sequence. This is a broken invariant, not a protocol occurrence - callers
// are expected to have checked the length beforehand.
func (seq Sequence) Bytes(skip int, n int) ([]byte, error) {
	if skip < 0 || n < 0 || skip+n*8 > seq.length {
		return nil, curated.Errorf(BeyondLength, skip+n*8, seq.length)
	}

	p := make([]byte, n)
	for i := 0; i < n*8; i++ {
		if seq.Bit(skip + i) {
			p[i/8] |= 0x80 >> (i % 8)
		}
	}

	return p, nil
}

// String returns the sequence in hexadecimal, most significant byte first.
func (seq Sequence) String() string {
	if seq.length == 0 {
		return "(empty)"
	}

	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("%d bits:", seq.length))
	for _, b := range seq.data {
		s.WriteString(fmt.Sprintf(" %02x", b))
	}
	return s.String()
}
