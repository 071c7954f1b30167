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

package main

import (
	"fmt"
	"os"

	"github.com/ashfall/periphsim/console"
	"github.com/ashfall/periphsim/console/colorterm"
	"github.com/ashfall/periphsim/console/plainterm"
	"github.com/ashfall/periphsim/environment"
	"github.com/ashfall/periphsim/hardware"
	"github.com/ashfall/periphsim/logger"
	"github.com/ashfall/periphsim/modalflag"
	"github.com/ashfall/periphsim/resources"
	"github.com/ashfall/periphsim/statsview"
	"github.com/ashfall/periphsim/version"
)

// the image file used when no argument has been given on the command line.
const defaultImage = "default.img"

func main() {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.AddSubModes("RUN", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		os.Exit(0)

	case modalflag.ParseError:
		fmt.Printf("* %v\n", err)
		os.Exit(10)
	}

	switch md.Mode() {
	case "RUN":
		err = run(md)

	case "VERSION":
		vrsn, rev, _ := version.Version()
		fmt.Printf("%s\n", vrsn)
		fmt.Printf("  %s\n", rev)
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %v\n", md.String(), err)
		os.Exit(20)
	}
}

func run(md *modalflag.Modes) error {
	md.NewMode()

	size := md.AddInt64("size", 0, "size of a newly created card image in bytes")
	persist := md.AddBool("persist", false, "write card data through to the image file")
	echoLog := md.AddBool("log", false, "echo log entries to stderr as they happen")
	stats := md.AddBool("statsview", false, fmt.Sprintf("run stats server (%s)", statsview.Address))
	plain := md.AddBool("plain", false, "use the plain terminal")

	md.AdditionalHelp(
		fmt.Sprintf("The optional argument names the card image file to attach. With no argument a\ndefault image in the %s configuration directory is used; a default image\nthat does not yet exist requires the -size flag.", version.ApplicationName))

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return nil

	case modalflag.ParseError:
		return err
	}

	var path string
	switch len(md.RemainingArgs()) {
	case 0:
		path, err = resources.JoinPath("cards", defaultImage)
		if err != nil {
			return err
		}

	case 1:
		path = md.GetArg(0)

	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	if *echoLog {
		logger.SetEcho(os.Stderr, true)
	}

	if *stats {
		statsview.Launch(os.Stderr)
	}

	env := environment.NewEnvironment(environment.MainEmulation)

	sys, err := hardware.NewSystem(env, path, *size, *persist)
	if err != nil {
		return err
	}
	defer sys.End()

	var term console.Terminal
	if *plain {
		term = &plainterm.PlainTerminal{}
	} else {
		term = &colorterm.ColorTerminal{}
	}

	con, err := console.NewConsole(sys, term)
	if err != nil {
		return err
	}

	return con.Run()
}
