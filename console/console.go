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

// Package console implements the interactive command loop through which the
// emulated card is driven. Input and output go through an implementation of
// the Terminal interface; the plainterm and colorterm sub-packages provide
// the two implementations.
package console

import (
	"encoding/hex"
	"os"
	"strconv"
	"strings"

	"github.com/ashfall/periphsim/curated"
	"github.com/ashfall/periphsim/hardware"
	"github.com/ashfall/periphsim/logger"
	"github.com/bradleyjkemp/memviz"
)

// sentinel errors for the console package.
const (
	NotEnoughArgs = "console: %s: not enough arguments"
	InvalidArg    = "console: %s: invalid argument (%s)"
)

// Console is the interactive driver for the emulated hardware.
type Console struct {
	sys  *hardware.System
	term Terminal
}

// NewConsole is the preferred method of initialisation for the Console
// type. The terminal is initialised here and cleaned up when Run() returns.
func NewConsole(sys *hardware.System, term Terminal) (*Console, error) {
	con := &Console{
		sys:  sys,
		term: term,
	}

	if err := term.Initialise(); err != nil {
		return nil, curated.Errorf("console: %v", err)
	}

	return con, nil
}

// Run the command loop until the QUIT command or until input is exhausted.
func (con *Console) Run() error {
	defer con.term.CleanUp()

	for {
		inp, err := con.term.TermRead("[sdcard] ")
		if err != nil {
			if curated.Is(err, UserInterrupt) {
				return nil
			}
			return err
		}

		quit, err := con.parseInput(inp)
		if err != nil {
			con.term.TermPrintLine(StyleError, "%v", err)
		}
		if quit {
			return nil
		}
	}
}

// parseInput dispatches a single line of input. The boolean return is true
// if the loop should end.
func (con *Console) parseInput(inp string) (bool, error) {
	toks := strings.Fields(inp)
	if len(toks) == 0 {
		return false, nil
	}

	cmd := strings.ToUpper(toks[0])
	args := toks[1:]

	switch cmd {
	case "HELP":
		con.help()

	case "QUIT", "EXIT":
		return true, nil

	case "RESET":
		if err := con.sys.Reset(); err != nil {
			return false, err
		}
		con.term.TermPrintLine(StyleFeedback, "card reset")

	case "STATUS":
		con.term.TermPrintLine(StyleFeedback, con.sys.Card.String())

	case "ATTACH":
		return false, con.attach(cmd, args)

	case "CMD":
		return false, con.rawCommand(cmd, args, false)

	case "ACMD":
		return false, con.rawCommand(cmd, args, true)

	case "CID":
		con.term.TermPrintLine(StyleFeedback, con.sys.Card.HandleCommand(2, 0).String())

	case "CSD":
		con.term.TermPrintLine(StyleFeedback, con.sys.Card.HandleCommand(9, 0).String())

	case "OCR":
		con.sys.Card.HandleCommand(55, 0)
		con.term.TermPrintLine(StyleFeedback, con.sys.Card.HandleCommand(41, 0).String())

	case "BLOCKLEN":
		if len(args) == 0 {
			con.term.TermPrintLine(StyleFeedback, "%d", con.sys.Card.BlockLen())
			return false, nil
		}
		v, err := parseNum(cmd, args[0])
		if err != nil {
			return false, err
		}
		con.sys.Bus.SetBlockLen(uint32(v))

	case "READ":
		return false, con.readBlocks(cmd, args)

	case "WRITE":
		return false, con.writeBlock(cmd, args)

	case "LOG":
		logger.Tail(&logWriter{term: con.term}, 20)

	case "DUMP":
		return false, con.dump(cmd, args)

	default:
		return false, curated.Errorf("console: unrecognised command (%s)", cmd)
	}

	return false, nil
}

func (con *Console) help() {
	for _, s := range []string{
		"HELP                list commands",
		"QUIT                end the session",
		"RESET               reset and reidentify the card",
		"STATUS              show the card's transfer state",
		"ATTACH file [size]  attach a different card image",
		"CMD idx [arg]       issue a raw command",
		"ACMD idx [arg]      issue a raw application command",
		"CID                 show the identification register",
		"CSD                 show the specific-data register",
		"OCR                 show the operating-conditions register",
		"BLOCKLEN [n]        show or set the block length",
		"READ offset [n]     read n blocks (default 1) from the byte offset",
		"WRITE offset b...   write the listed byte values at the byte offset",
		"LOG                 show recent log entries",
		"DUMP file           write a graph of the hardware to a dot file",
	} {
		con.term.TermPrintLine(StyleHelp, s)
	}
}

// attach replaces the current card with one backed by the named image. a
// size is only needed when the image file does not yet exist.
func (con *Console) attach(cmd string, args []string) error {
	if len(args) == 0 {
		return curated.Errorf(NotEnoughArgs, cmd)
	}

	var size uint64
	var err error
	if len(args) > 1 {
		size, err = parseNum(cmd, args[1])
		if err != nil {
			return err
		}
	}

	if err := con.sys.Attach(args[0], int64(size), false); err != nil {
		return err
	}

	con.term.TermPrintLine(StyleFeedback, "attached %s (%d bytes)", args[0], con.sys.Card.Size())
	return nil
}

// rawCommand issues a command by index, bypassing the bus controller's
// sequencing. The response sequence is printed as hex.
func (con *Console) rawCommand(cmd string, args []string, app bool) error {
	if len(args) == 0 {
		return curated.Errorf(NotEnoughArgs, cmd)
	}

	idx, err := parseNum(cmd, args[0])
	if err != nil {
		return err
	}

	var arg uint64
	if len(args) > 1 {
		arg, err = parseNum(cmd, args[1])
		if err != nil {
			return err
		}
	}

	if app {
		con.sys.Card.HandleCommand(55, 0)
	}

	resp := con.sys.Card.HandleCommand(uint8(idx), uint32(arg))
	if resp.IsEmpty() {
		con.term.TermPrintLine(StyleFeedback, "no response")
	} else {
		con.term.TermPrintLine(StyleFeedback, "%s (%d bits)", resp.String(), resp.Length())
	}

	return nil
}

func (con *Console) readBlocks(cmd string, args []string) error {
	if len(args) == 0 {
		return curated.Errorf(NotEnoughArgs, cmd)
	}

	offset, err := parseNum(cmd, args[0])
	if err != nil {
		return err
	}

	n := uint64(1)
	if len(args) > 1 {
		n, err = parseNum(cmd, args[1])
		if err != nil {
			return err
		}
	}

	var p []byte
	if n == 1 {
		p, err = con.sys.Bus.ReadBlock(int64(offset))
	} else {
		p, err = con.sys.Bus.ReadBlocks(int64(offset), int(n))
	}
	if err != nil {
		return err
	}

	if len(p) == 0 {
		con.term.TermPrintLine(StyleFeedback, "no data")
		return nil
	}

	con.term.TermPrintLine(StyleFeedback, strings.TrimRight(hex.Dump(p), "\n"))
	return nil
}

func (con *Console) writeBlock(cmd string, args []string) error {
	if len(args) < 2 {
		return curated.Errorf(NotEnoughArgs, cmd)
	}

	offset, err := parseNum(cmd, args[0])
	if err != nil {
		return err
	}

	p := make([]byte, 0, len(args)-1)
	for _, a := range args[1:] {
		v, err := parseNum(cmd, a)
		if err != nil {
			return err
		}
		p = append(p, byte(v))
	}

	return con.sys.Bus.WriteBlock(int64(offset), p)
}

// dump writes a graphviz digraph of the hardware containers to the named
// file. Useful when chasing transfer-state bugs.
func (con *Console) dump(cmd string, args []string) error {
	if len(args) == 0 {
		return curated.Errorf(NotEnoughArgs, cmd)
	}

	f, err := os.Create(args[0])
	if err != nil {
		return curated.Errorf("console: %v", err)
	}
	defer f.Close()

	memviz.Map(f, con.sys)
	con.term.TermPrintLine(StyleFeedback, "hardware graph written to %s", args[0])

	return nil
}

// parseNum is tolerant of hex prefixes.
func parseNum(cmd string, s string) (uint64, error) {
	v, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return 0, curated.Errorf(InvalidArg, cmd, s)
	}
	return v, nil
}

// logWriter lets the central logger print through the terminal.
type logWriter struct {
	term Terminal
}

func (lw *logWriter) Write(p []byte) (int, error) {
	for _, s := range strings.Split(strings.TrimRight(string(p), "\n"), "\n") {
		lw.term.TermPrintLine(StyleLog, s)
	}
	return len(p), nil
}
