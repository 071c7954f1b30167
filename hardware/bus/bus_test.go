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

package bus_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ashfall/periphsim/environment"
	"github.com/ashfall/periphsim/hardware/bus"
	"github.com/ashfall/periphsim/hardware/peripherals/sdcard"
	"github.com/ashfall/periphsim/test"
	"github.com/google/go-cmp/cmp"
)

func newController(t *testing.T, data []byte) (*bus.Controller, *sdcard.SDCard) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "card.img")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	env := environment.NewEnvironment("test")
	env.Silent = true

	cd, err := sdcard.NewSDCard(env, path, 0, false)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { cd.Dispose() })

	bc, err := bus.NewController(env, cd)
	if err != nil {
		t.Fatal(err)
	}

	return bc, cd
}

func pattern(n int) []byte {
	p := make([]byte, n)
	for i := range p {
		p[i] = byte(i)
	}
	return p
}

func TestIdentification(t *testing.T) {
	_, cd := newController(t, pattern(2048))

	// the identification sequence has assigned an address
	test.Equate(t, cd.Address() != 0, true)
}

func TestNoCard(t *testing.T) {
	env := environment.NewEnvironment("test")
	env.Silent = true

	_, err := bus.NewController(env, nil)
	test.ExpectedFailure(t, err)
}

func TestReadBlock(t *testing.T) {
	bc, _ := newController(t, pattern(2048))

	bc.SetBlockLen(512)

	p, err := bc.ReadBlock(512)
	test.ExpectedSuccess(t, err)
	if diff := cmp.Diff(pattern(2048)[512:1024], p); diff != "" {
		t.Error(diff)
	}
}

func TestReadBlocks(t *testing.T) {
	bc, _ := newController(t, pattern(2048))

	bc.SetBlockLen(512)

	p, err := bc.ReadBlocks(0, 3)
	test.ExpectedSuccess(t, err)
	if diff := cmp.Diff(pattern(2048)[:1536], p); diff != "" {
		t.Error(diff)
	}
}

func TestReadBlocksPastEnd(t *testing.T) {
	bc, _ := newController(t, pattern(1024))

	bc.SetBlockLen(512)

	// the image only has two blocks. the run ends early rather than
	// failing
	p, err := bc.ReadBlocks(512, 3)
	test.ExpectedSuccess(t, err)
	if diff := cmp.Diff(pattern(1024)[512:], p); diff != "" {
		t.Error(diff)
	}
}

func TestWriteBlock(t *testing.T) {
	bc, _ := newController(t, pattern(2048))

	bc.SetBlockLen(512)

	blk := make([]byte, 512)
	for i := range blk {
		blk[i] = 0xee
	}
	test.ExpectedSuccess(t, bc.WriteBlock(1024, blk))

	p, err := bc.ReadBlock(1024)
	test.ExpectedSuccess(t, err)
	if diff := cmp.Diff(blk, p); diff != "" {
		t.Error(diff)
	}
}

func TestSpecificData(t *testing.T) {
	bc, _ := newController(t, pattern(2048))

	// the register is 120 bits on the wire
	test.Equate(t, len(bc.SpecificData()), 15)
}
