// This file is part of Katana.
//
// Katana is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Katana is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Katana.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/jetsetilly/katana/debugger"
	"github.com/jetsetilly/katana/debugger/terminal"
	"github.com/jetsetilly/katana/debugger/terminal/colorterm"
	"github.com/jetsetilly/katana/debugger/terminal/plainterm"
	"github.com/jetsetilly/katana/logger"
	"github.com/jetsetilly/katana/modalflag"
	"github.com/jetsetilly/katana/performance"
	"github.com/jetsetilly/katana/statsview"
	"github.com/jetsetilly/katana/version"
	"golang.org/x/term"
)

func main() {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.NewMode()
	md.AddSubModes("DEBUG", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		os.Exit(0)

	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		os.Exit(10)
	}

	switch md.Mode() {
	case "DEBUG":
		err = debug(md)

	case "VERSION":
		err = showVersion(md)
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md.String(), err)
		os.Exit(20)
	}
}

func debug(md *modalflag.Modes) error {
	md.NewMode()

	// an interactive session defaults to the color terminal. a piped or
	// scripted session defaults to the plain terminal
	defTerm := "PLAIN"
	if term.IsTerminal(int(os.Stdin.Fd())) {
		defTerm = "COLOR"
	}

	image := md.AddString("image", "", "binary image to load into RAM on startup")
	org := md.AddUint64("org", 0, "load address of image, as an offset into RAM")
	termType := md.AddString("term", defTerm, "terminal type to use in debug mode: COLOR, PLAIN")
	log := md.AddBool("log", false, "echo debugging log to stderr")
	stats := md.AddBool("stats", false, "launch statistics server")
	profile := md.AddBool("profile", false, "run debugger through cpu profiler")

	md.AdditionalHelp("The optional argument is a debugger script to run on startup.")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	// set debugging log echo
	if *log {
		logger.SetEcho(os.Stderr)
	} else {
		logger.SetEcho(nil)
	}

	if *stats {
		if statsview.Available() {
			statsview.Launch(os.Stdout)
		} else {
			fmt.Println("! statistics server is not available in this build")
		}
	}

	var trm terminal.Terminal

	switch strings.ToUpper(*termType) {
	default:
		fmt.Printf("! unknown terminal type (%s) defaulting to plain\n", *termType)
		fallthrough
	case "PLAIN":
		trm = &plainterm.PlainTerminal{}
	case "COLOR":
		trm = &colorterm.ColorTerminal{}
	}

	// prepare new debugger instance
	dbg, err := debugger.NewDebugger(trm)
	if err != nil {
		return err
	}

	var initScript string

	switch len(md.RemainingArgs()) {
	case 0:
	case 1:
		initScript = md.GetArg(0)
	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	dbgRun := func() error {
		return dbg.Start(initScript, *image, uint32(*org))
	}

	// if profile generation has been requested then pass the dbgRun()
	// function prepared above through the ProfileCPU() function
	if *profile {
		err := performance.ProfileCPU("debug.cpu.profile", dbgRun)
		if err != nil {
			return err
		}
		return performance.ProfileMem("debug.mem.profile")
	}

	return dbgRun()
}

func showVersion(md *modalflag.Modes) error {
	md.NewMode()

	revision := md.AddBool("revision", false, "display source revision in addition to version number")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	ver, rev, _ := version.Version()
	fmt.Printf("%s (%s)\n", version.ApplicationName, ver)
	if *revision {
		fmt.Println(rev)
	}

	return nil
}
