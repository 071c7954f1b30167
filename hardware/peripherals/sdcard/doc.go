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

// Package sdcard implements an SD/MMC storage card peripheral.
//
// The card is driven by a bus controller through the HandleCommand()
// function, which takes a command index and a 32 bit argument and returns a
// response in the form of a bitseq.Sequence. Block data moves through the
// ReadData() and WriteData() functions, against whichever backing the
// active transfer selected: the card image for block transfers, or a
// synthesized register for the application-specific register reads.
//
// The card is tolerant of malformed command sequences in the way real
// hardware is. Unsupported commands, transfers that were never started and
// oversized data requests are logged and answered with an empty response or
// a dropped operation - never with an error. Errors are reserved for broken
// invariants and for construction failures.
//
// Limitations: card selection/deselection by relative card address is not
// modelled, so attaching more than one card to the same bus will misbehave.
// Neither are high-speed bus modes, card locking, erase/program timing or
// CRC checking. A bus controller starting a multiple-block read must call
// SetReadLimit() before the first ReadData() or all reads will be dropped.
//
// The card assumes exactly one command in flight at a time and is not
// reentrant. No locking is performed.
package sdcard
