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
	"strconv"
	"strings"

	"github.com/jetsetilly/katana/curated"
	"github.com/jetsetilly/katana/debugger/terminal"
	"github.com/jetsetilly/katana/debugger/terminal/commandline"
	"github.com/jetsetilly/katana/hardware/sh4"
	"github.com/jetsetilly/katana/hardware/sh4/sh4reg"
	"github.com/jetsetilly/katana/logger"
	"github.com/jetsetilly/katana/statsview"
)

// debugger keywords.
const (
	cmdHelp  = "HELP"
	cmdQuit  = "QUIT"
	cmdReset = "RESET"

	// emulation
	cmdRun    = "RUN"
	cmdStep   = "STEP"
	cmdTick   = "TICK"
	cmdScript = "SCRIPT"

	// inspection
	cmdRegs   = "REGS"
	cmdReg    = "REG"
	cmdPeek   = "PEEK"
	cmdPoke   = "POKE"
	cmdInt    = "INT"
	cmdTimers = "TIMERS"

	// halt conditions
	cmdBreak = "BREAK"
	cmdClear = "CLEAR"
	cmdList  = "LIST"

	// emulator rather than emulation
	cmdLog   = "LOG"
	cmdStats = "STATS"
)

var commandTemplate = commandline.CommandTemplate{
	cmdQuit:  "",
	cmdReset: "",

	cmdRun:    "[%V]",
	cmdStep:   "",
	cmdTick:   "%V",
	cmdScript: "%*",

	cmdRegs:   "",
	cmdReg:    "%S [%V]",
	cmdPeek:   "%V [%V]",
	cmdPoke:   "%V %V",
	cmdInt:    "%S [|CLEAR]",
	cmdTimers: "",

	cmdBreak: "%V",
	cmdClear: "%V",
	cmdList:  "",

	cmdLog:   "[|CLEAR]",
	cmdStats: "",
}

// help contains the help text for the debugger's top level commands.
var help = map[string]string{
	cmdHelp:  "Lists commands and provides help for individual debugger commands",
	cmdQuit:  "Exits the debugger",
	cmdReset: "Reset the machine to its initial state",

	cmdRun:    "Run emulation for the specified number of milliseconds of guest time (default 16)",
	cmdStep:   "Step forward one instruction",
	cmdTick:   "Advance the hardware scheduler by the specified number of nanoseconds",
	cmdScript: "Run commands from specified file or record commands to a file (RECORD <file>, END)",

	cmdRegs:   "Display the contents of the CPU registers",
	cmdReg:    "Display (or set) a named on-chip register",
	cmdPeek:   "Inspect memory addresses (address, optional word count)",
	cmdPoke:   "Modify an individual memory address",
	cmdInt:    "Request (or clear) an interrupt by name",
	cmdTimers: "Display the state of the timer unit",

	cmdBreak: "Cause emulation to halt when the address is reached",
	cmdClear: "Remove a breakpoint",
	cmdList:  "List current breakpoints",

	cmdLog:   "Print (or clear) the log",
	cmdStats: "Launch the statistics server",
}

var debuggerCommands commandline.Commands

func init() {
	var err error
	debuggerCommands, err = commandline.CompileCommandTemplate(commandTemplate, cmdHelp)
	if err != nil {
		panic(fmt.Errorf("error compiling command template: %v", err))
	}
}

// findRegister returns the declaration for a named on-chip register.
func findRegister(name string) (sh4reg.Decl, bool) {
	name = strings.ToUpper(name)
	for _, decl := range sh4reg.Declarations {
		if decl.Name == name {
			return decl, true
		}
	}
	return sh4reg.Decl{}, false
}

// parseCommand tokenises the input, validates it against the commands
// template and acts upon it. the interactive flag controls echoing of the
// input back to the terminal.
func (dbg *Debugger) parseCommand(cmd string, interactive bool) error {
	tokens := commandline.TokeniseInput(cmd)

	// check validity of tokenised input. this normalises the command and any
	// keyword arguments to upper case
	if err := debuggerCommands.ValidateTokens(tokens); err != nil {
		return err
	}

	// input is echoed when it did not come from an interactive session.
	// echoing interactive input would repeat what the user has already seen
	if !interactive {
		dbg.printLine(terminal.StyleEcho, tokens.String())
	}

	command, ok := tokens.Get()
	if !ok {
		return nil
	}

	switch command {
	case cmdHelp:
		kw, ok := tokens.Get()
		if ok {
			dbg.printLine(terminal.StyleHelp, fmt.Sprintf("%s%s", kw, debuggerCommands[kw]))
			if txt, prs := help[kw]; prs {
				dbg.printLine(terminal.StyleHelp, fmt.Sprintf("  %s", txt))
			}
		} else {
			for _, k := range debuggerCommands.List() {
				dbg.printLine(terminal.StyleHelp, fmt.Sprintf("%s%s", k, debuggerCommands[k]))
			}
		}

	case cmdQuit:
		dbg.running = false

	case cmdReset:
		dbg.dc.Reset()
		dbg.printLine(terminal.StyleFeedback, "machine reset")

	case cmdRun:
		ms := int64(16)
		if s, ok := tokens.Get(); ok {
			n, err := strconv.ParseInt(s, 0, 64)
			if err != nil || n < 1 {
				return curated.Errorf("cannot run for %s milliseconds", s)
			}
			ms = n
		}
		dbg.runMachine(ms * 1000000)
		dbg.printLine(terminal.StyleCPUStep, dbg.dc.CPU.Context.String())

	case cmdStep:
		dbg.trapped = false
		dbg.dc.CPU.Step()
		dbg.printLine(terminal.StyleCPUStep, dbg.dc.CPU.Context.String())

	case cmdTick:
		s, _ := tokens.Get()
		ns, err := strconv.ParseInt(s, 0, 64)
		if err != nil || ns < 1 {
			return curated.Errorf("cannot tick %s nanoseconds", s)
		}
		dbg.dc.Scheduler.Tick(ns)
		dbg.printLine(terminal.StyleFeedback, "scheduler now at %dns", dbg.dc.Scheduler.Now())

	case cmdScript:
		option, _ := tokens.Get()
		switch strings.ToUpper(option) {
		case "RECORD":
			scriptfile, ok := tokens.Get()
			if !ok {
				return curated.Errorf("a script filename is required for recording")
			}
			if err := dbg.scriptScribe.StartSession(scriptfile); err != nil {
				return err
			}
			dbg.printLine(terminal.StyleFeedback, "recording to %s", scriptfile)

		case "END":
			if !dbg.scriptScribe.IsActive() {
				return curated.Errorf("no script is being recorded")
			}

			// the END command would otherwise be recorded as the last line
			// of the script
			dbg.scriptScribe.Rollback()
			scriptfile := dbg.scriptScribe.ScriptFile()
			if err := dbg.scriptScribe.EndSession(); err != nil {
				return err
			}
			dbg.printLine(terminal.StyleFeedback, "recording of %s ended", scriptfile)

		default:
			if err := dbg.processScript(option); err != nil {
				return err
			}
		}

	case cmdRegs:
		s := strings.Builder{}
		for i := 0; i < sh4.NumDebugRegisters; i++ {
			v, _ := dbg.dc.CPU.DebugRegister(i)
			s.WriteString(fmt.Sprintf("%9s=%08x", sh4.DebugRegisterName(i), v))
			if (i+1)%4 == 0 {
				s.WriteString("\n")
			} else {
				s.WriteString(" ")
			}
		}
		dbg.printLine(terminal.StyleMachineInfo, s.String())

	case cmdReg:
		name, _ := tokens.Get()
		decl, ok := findRegister(name)
		if !ok {
			return curated.Errorf("no such on-chip register (%s)", name)
		}

		if s, ok := tokens.Get(); ok {
			v, err := strconv.ParseUint(s, 0, 32)
			if err != nil {
				return curated.Errorf("cannot set %s to %s", decl.Name, s)
			}
			dbg.dc.Bus.W32(decl.Addr, uint32(v))
		}

		dbg.printLine(terminal.StyleMachineInfo, "%s=%08x", decl.Name, dbg.dc.Bus.R32(decl.Addr))

	case cmdPeek:
		s, _ := tokens.Get()
		addr, err := strconv.ParseUint(s, 0, 32)
		if err != nil {
			return curated.Errorf("cannot peek address (%s)", s)
		}

		ct := uint64(1)
		if s, ok := tokens.Get(); ok {
			ct, err = strconv.ParseUint(s, 0, 32)
			if err != nil || ct < 1 {
				return curated.Errorf("cannot peek %s words", s)
			}
		}

		b := strings.Builder{}
		for i := uint64(0); i < ct; i++ {
			a := uint32(addr) + uint32(i)*4
			b.WriteString(fmt.Sprintf("%08x: %08x\n", a, dbg.dc.Bus.R32(a)))
		}
		dbg.printLine(terminal.StyleMachineInfo, b.String())

	case cmdPoke:
		s, _ := tokens.Get()
		addr, err := strconv.ParseUint(s, 0, 32)
		if err != nil {
			return curated.Errorf("cannot poke address (%s)", s)
		}

		s, _ = tokens.Get()
		v, err := strconv.ParseUint(s, 0, 32)
		if err != nil {
			return curated.Errorf("cannot poke value (%s)", s)
		}

		dbg.dc.Bus.W32(uint32(addr), uint32(v))
		dbg.printLine(terminal.StyleFeedback, "poked %08x with %08x", uint32(addr), uint32(v))

	case cmdInt:
		name, _ := tokens.Get()
		intr, ok := sh4.InterruptByName(strings.ToUpper(name))
		if !ok {
			return curated.Errorf("no such interrupt (%s)", name)
		}

		if _, ok := tokens.Get(); ok {
			dbg.dc.CPU.UnrequestInterrupt(intr)
		} else {
			dbg.dc.CPU.RequestInterrupt(intr)
		}

		dbg.printLine(terminal.StyleMachineInfo, "requested: %v", dbg.dc.CPU.RequestedInterrupts())
		dbg.printLine(terminal.StyleMachineInfo, "pending: %v", dbg.dc.CPU.PendingInterrupts())

	case cmdTimers:
		tstr, _ := findRegister("TSTR")
		dbg.printLine(terminal.StyleMachineInfo, "TSTR=%02x", dbg.dc.Bus.R8(tstr.Addr))

		for n := 0; n < 3; n++ {
			tcor, _ := findRegister(fmt.Sprintf("TCOR%d", n))
			tcnt, _ := findRegister(fmt.Sprintf("TCNT%d", n))
			tcr, _ := findRegister(fmt.Sprintf("TCR%d", n))

			s := fmt.Sprintf("timer %d: TCOR=%08x TCNT=%08x TCR=%04x", n,
				dbg.dc.Bus.R32(tcor.Addr), dbg.dc.Bus.R32(tcnt.Addr), dbg.dc.Bus.R16(tcr.Addr))

			if ns := dbg.dc.CPU.TimerDeadline(n); ns >= 0 {
				s = fmt.Sprintf("%s (underflow in %dns)", s, ns)
			} else {
				s = fmt.Sprintf("%s (stopped)", s)
			}

			dbg.printLine(terminal.StyleMachineInfo, s)
		}

	case cmdBreak:
		s, _ := tokens.Get()
		addr, err := strconv.ParseUint(s, 0, 32)
		if err != nil {
			return curated.Errorf("cannot break at %s", s)
		}
		if err := dbg.dc.CPU.AddBreakpoint(uint32(addr)); err != nil {
			return err
		}
		dbg.printLine(terminal.StyleFeedback, "breakpoint added at %#08x", uint32(addr))

	case cmdClear:
		s, _ := tokens.Get()
		addr, err := strconv.ParseUint(s, 0, 32)
		if err != nil {
			return curated.Errorf("cannot clear breakpoint at %s", s)
		}
		if err := dbg.dc.CPU.RemoveBreakpoint(uint32(addr)); err != nil {
			return err
		}
		dbg.printLine(terminal.StyleFeedback, "breakpoint removed from %#08x", uint32(addr))

	case cmdList:
		bps := dbg.dc.CPU.Breakpoints()
		if len(bps) == 0 {
			dbg.printLine(terminal.StyleFeedback, "no breakpoints")
		}
		for _, addr := range bps {
			dbg.printLine(terminal.StyleMachineInfo, "breakpoint at %#08x", addr)
		}

	case cmdLog:
		if _, ok := tokens.Get(); ok {
			logger.Clear()
			dbg.printLine(terminal.StyleFeedback, "log cleared")
		} else {
			logger.Write(dbg.printStyle(terminal.StyleLog))
		}

	case cmdStats:
		if !statsview.Available() {
			return curated.Errorf("statistics server is not available in this build")
		}
		if dbg.statsLaunched {
			dbg.printLine(terminal.StyleFeedback, "statistics server already running")
		} else {
			statsview.Launch(dbg.printStyle(terminal.StyleEmulatorInfo))
			dbg.statsLaunched = true
		}
	}

	return nil
}
