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

package debugger

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/jetsetilly/katana/curated"
	"github.com/jetsetilly/katana/debugger/script"
	"github.com/jetsetilly/katana/debugger/terminal"
	"github.com/jetsetilly/katana/debugger/terminal/commandline"
	"github.com/jetsetilly/katana/hardware"
)

// Debugger is the basic debugging frontend for the emulation.
type Debugger struct {
	dc *hardware.Dreamcast

	// the terminal the debugger is communicating on
	term terminal.Terminal

	// channels monitored by the terminal during TermRead()
	events *terminal.ReadEvents

	// buffer for user input
	input []byte

	// any script scribe currently active
	scriptScribe script.Scribe

	// the debugger is running while this is true
	running bool

	// set by the Trap() function whenever the core hands control back.
	// cleared before every RUN and STEP
	trapped bool

	// whether the statistics server has been launched
	statsLaunched bool
}

// NewDebugger creates and initialises everything required for a new
// debugging session.
func NewDebugger(term terminal.Terminal) (*Debugger, error) {
	dbg := &Debugger{
		term:  term,
		input: make([]byte, 255),
	}

	var err error
	dbg.dc, err = hardware.NewDreamcast()
	if err != nil {
		return nil, curated.Errorf("debugger: %v", err)
	}

	// the core hands control back to the debugger on breakpoints and on
	// completed steps
	dbg.dc.CPU.AttachDebugger(dbg)

	// set up the channels the terminal monitors during TermRead()
	dbg.events = &terminal.ReadEvents{
		IntEvents: make(chan os.Signal, 1),
	}
	signal.Notify(dbg.events.IntEvents, os.Interrupt)

	return dbg, nil
}

// Trap implements the sh4.Debugger interface.
func (dbg *Debugger) Trap() {
	dbg.trapped = true
}

// Start the main debugger sequence. The image, if not empty, is the path of
// a program file to copy into main RAM, origin bytes from the base of RAM.
// The initScript, if not empty, is played back before the interactive input
// loop begins.
func (dbg *Debugger) Start(initScript string, image string, origin uint32) error {
	if err := dbg.term.Initialise(); err != nil {
		return curated.Errorf("debugger: %v", err)
	}
	defer dbg.term.CleanUp()

	dbg.term.RegisterTabCompletion(commandline.NewTabCompletion(debuggerCommands))

	if image != "" {
		if err := dbg.loadImage(image, origin); err != nil {
			return err
		}
	}

	dbg.running = true

	// a recording session left open, by QUIT or by an input source running
	// dry, is concluded on the way out
	defer dbg.scriptScribe.EndSession()

	if initScript != "" {
		if err := dbg.processScript(initScript); err != nil {
			dbg.printLine(terminal.StyleError, "error running debugger initialisation script: %s", err)
		}
	}

	if err := dbg.inputLoop(dbg.term); err != nil {
		return curated.Errorf("debugger: %v", err)
	}

	return nil
}

// loadImage copies a program file into main RAM and points PC at it.
func (dbg *Debugger) loadImage(image string, origin uint32) error {
	data, err := os.ReadFile(image)
	if err != nil {
		return curated.Errorf("debugger: %v", err)
	}

	addr, err := dbg.dc.Load(data, origin)
	if err != nil {
		return err
	}
	dbg.dc.CPU.Context.PC = addr

	dbg.printLine(terminal.StyleFeedback, "%s loaded at %#08x", image, addr)

	return nil
}

// buildPrompt returns a prompt suitable for the current state of the
// debugger.
func (dbg *Debugger) buildPrompt() terminal.Prompt {
	return terminal.Prompt{
		Type:      terminal.PromptTypeStep,
		Content:   fmt.Sprintf("%#08x", dbg.dc.CPU.Context.PC),
		Recording: dbg.scriptScribe.IsActive(),
	}
}

// inputLoop reads and acts upon commands from an input source until the
// source runs dry or the debugger is no longer running. the input source is
// not necessarily the attached terminal; during script playback it is the
// script itself.
func (dbg *Debugger) inputLoop(inputter terminal.Input) error {
	for dbg.running {
		inputLen, err := inputter.TermRead(dbg.input, dbg.buildPrompt(), dbg.events)

		// errors returned by TermRead() functions are rich. the following
		// block interprets the error carefully and proceeds appropriately
		if err != nil {
			if !curated.IsAny(err) {
				// if the error originated from outside of the project then
				// it is probably serious or unexpected
				switch err {
				case io.EOF:
					// treat EOF the same as UserAbort
					err = curated.Errorf(terminal.UserAbort)
				default:
					return err
				}
			}

			if curated.Is(err, terminal.UserInterrupt) {
				// user interrupts are triggered by the user, in a terminal
				// environment usually by pressing ctrl-c
				dbg.handleInterrupt(inputter)
				continue
			}

			if curated.Is(err, terminal.UserAbort) {
				dbg.running = false
				return nil
			}

			if curated.Is(err, script.ScriptEnd) {
				// a script being played back has run dry. say so with a
				// feedback style, not an error style
				dbg.printLine(terminal.StyleFeedback, err.Error())
				return nil
			}

			// all other errors are passed upwards to the calling function
			return err
		}

		if inputLen > 0 {
			if err := dbg.parseInput(string(dbg.input[:inputLen]), inputter.IsInteractive()); err != nil {
				dbg.printLine(terminal.StyleError, "%s", err)
			}
		}
	}

	return nil
}

// parseInput splits the input into individual commands and passes each one
// to parseCommand.
func (dbg *Debugger) parseInput(input string, interactive bool) error {
	// ignore comments
	if strings.HasPrefix(strings.TrimSpace(input), "#") {
		return nil
	}

	commands := strings.Split(input, ";")
	for i := 0; i < len(commands); i++ {
		cmd := strings.TrimSpace(commands[i])
		if len(cmd) == 0 {
			continue
		}

		// the command is written to any recording session before it is
		// parsed because there is a chance parsing will start (or end) a
		// session of its own
		dbg.scriptScribe.WriteInput(cmd)

		if err := dbg.parseCommand(cmd, interactive); err != nil {
			// an invalid command is not recorded in the script
			dbg.scriptScribe.Rollback()
			return err
		}
	}

	return nil
}

// runMachine advances the emulation by a span of guest time, honouring
// breakpoints and user interrupts. time is sliced at hardware deadlines in
// the same way as hardware.RunForDuration().
func (dbg *Debugger) runMachine(ns int64) {
	dbg.trapped = false

	var interrupted bool

	remaining := ns
	for remaining > 0 && !dbg.trapped && !interrupted {
		slice := remaining
		if next := dbg.dc.Scheduler.NextDeadline(); next >= 0 && next < slice {
			slice = next
		}
		if slice < 1 {
			slice = 1
		}

		dbg.dc.CPU.Run(slice)
		dbg.dc.Scheduler.Tick(slice)
		remaining -= slice

		// user interrupts take effect at slice boundaries
		select {
		case <-dbg.events.IntEvents:
			interrupted = true
		default:
		}
	}

	if dbg.trapped {
		dbg.printLine(terminal.StyleMachineInfo, "execution trapped at %#08x", dbg.dc.CPU.Context.PC)
	} else if interrupted {
		dbg.printLine(terminal.StyleMachineInfo, "execution interrupted at %#08x", dbg.dc.CPU.Context.PC)
	}
}

// processScript runs the commands in a previously recorded script.
func (dbg *Debugger) processScript(scriptfile string) error {
	plb, err := script.RescribeScript(scriptfile)
	if err != nil {
		return err
	}

	// the SCRIPT command itself has already been recorded by this point.
	// the playback markers stop the script's own commands being recorded a
	// second time
	dbg.scriptScribe.StartPlayback()
	defer dbg.scriptScribe.EndPlayback()

	return dbg.inputLoop(plb)
}

// handleInterrupt deals with a user interrupt according to the current
// state of the debugger.
func (dbg *Debugger) handleInterrupt(inputter terminal.Input) {
	if dbg.scriptScribe.IsActive() {
		// an interrupt when a script is being recorded ends the recording,
		// not the debugger
		scriptfile := dbg.scriptScribe.ScriptFile()
		if err := dbg.scriptScribe.EndSession(); err != nil {
			dbg.printLine(terminal.StyleError, "%s", err)
			return
		}
		dbg.printLine(terminal.StyleFeedback, "recording of %s ended", scriptfile)
		return
	}

	if !inputter.IsInteractive() {
		// there is nobody to ask for confirmation
		dbg.running = false
		return
	}

	// ask the user if they really want to quit
	confirm := make([]byte, 1)
	_, err := inputter.TermRead(confirm,
		terminal.Prompt{
			Type:    terminal.PromptTypeConfirm,
			Content: "really quit (y/n) ",
		}, dbg.events)

	if err != nil {
		// another interrupt while we were asking the question is treated as
		// a yes
		if curated.Is(err, terminal.UserInterrupt) {
			dbg.running = false
			return
		}
		dbg.printLine(terminal.StyleError, "%s", err)
		return
	}

	if confirm[0] == 'y' || confirm[0] == 'Y' {
		dbg.running = false
	}
}
