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

// Package storage implements the byte-addressable backing store for the
// SD card peripheral.
//
// An Image is created from a named image file. A persistent Image reads and
// writes the named file directly. A non-persistent Image operates on a
// private copy of the file contents, leaving the original unmodified.
package storage

import (
	"os"

	"github.com/ashfall/periphsim/curated"
)

// sentinel errors for the storage package.
const (
	// a size is required when the named image file does not yet exist
	SizeRequired = "image: %s: size required for new image"

	// a read returned no data even though data was available at the
	// cursor. this is a broken invariant, not an end-of-store condition
	ImpossibleZeroRead = "image: %s: zero-length read with %d bytes available"
)

// Image is a byte-addressable store with a cursor. Reads and writes are
// sequential from the cursor position.
type Image struct {
	path       string
	persistent bool

	// file is used when the image is persistent, mem otherwise
	file *os.File
	mem  []byte

	length int64
	pos    int64
}

// Open creates or opens the named image. The size argument is required when
// the image file does not yet exist; it is ignored when opening an existing
// image.
//
// A persistent image writes directly to the named file. A non-persistent
// image operates on a private copy so the original file is unmodified.
func Open(path string, size int64, persistent bool) (*Image, error) {
	img := &Image{
		path:       path,
		persistent: persistent,
	}

	fs, err := os.Stat(path)
	exists := err == nil

	if !exists && size <= 0 {
		return nil, curated.Errorf(SizeRequired, path)
	}

	if persistent {
		f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
		if err != nil {
			return nil, curated.Errorf("image: %v", err)
		}

		if exists {
			img.length = fs.Size()
		} else {
			if err := f.Truncate(size); err != nil {
				f.Close()
				return nil, curated.Errorf("image: %v", err)
			}
			img.length = size
		}

		img.file = f
		return img, nil
	}

	if exists {
		img.mem, err = os.ReadFile(path)
		if err != nil {
			return nil, curated.Errorf("image: %v", err)
		}
	} else {
		img.mem = make([]byte, size)
	}
	img.length = int64(len(img.mem))

	return img, nil
}

// Length of the image in bytes.
func (img *Image) Length() int64 {
	return img.length
}

// SetPosition moves the cursor to the specified offset.
func (img *Image) SetPosition(offset int64) {
	img.pos = offset
}

// Position returns the current cursor position.
func (img *Image) Position() int64 {
	return img.pos
}

// Read count bytes from the cursor, advancing the cursor by the number of
// bytes actually read. The result is shorter than requested only at the end
// of the store.
func (img *Image) Read(count int) ([]byte, error) {
	avail := img.length - img.pos
	if avail < 0 {
		avail = 0
	}

	n := int64(count)
	if n > avail {
		n = avail
	}
	if n == 0 {
		return []byte{}, nil
	}

	p := make([]byte, n)

	if img.persistent {
		m, err := img.file.ReadAt(p, img.pos)
		if err != nil && m == 0 {
			return nil, curated.Errorf("image: %v", err)
		}
		if m == 0 {
			// data was provably available so a zero-length read means
			// something has gone badly wrong
			return nil, curated.Errorf(ImpossibleZeroRead, img.path, avail)
		}
		p = p[:m]
	} else {
		copy(p, img.mem[img.pos:])
	}

	img.pos += int64(len(p))
	return p, nil
}

// Write bytes at the cursor, advancing the cursor by the number of bytes
// actually written. Writes beyond the end of the store are clamped; the
// number of bytes written is returned.
func (img *Image) Write(p []byte) (int, error) {
	avail := img.length - img.pos
	if avail < 0 {
		avail = 0
	}

	n := int64(len(p))
	if n > avail {
		n = avail
	}
	if n == 0 {
		return 0, nil
	}

	if img.persistent {
		m, err := img.file.WriteAt(p[:n], img.pos)
		if err != nil {
			return m, curated.Errorf("image: %v", err)
		}
		img.pos += int64(m)
		return m, nil
	}

	copy(img.mem[img.pos:], p[:n])
	img.pos += n
	return int(n), nil
}

// Dispose releases the resources used by the image. No further operations
// are valid afterwards.
func (img *Image) Dispose() error {
	img.mem = nil
	if img.file != nil {
		f := img.file
		img.file = nil
		if err := f.Close(); err != nil {
			return curated.Errorf("image: %v", err)
		}
	}
	return nil
}
