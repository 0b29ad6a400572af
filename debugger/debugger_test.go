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

package debugger_test

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jetsetilly/katana/debugger"
	"github.com/jetsetilly/katana/debugger/terminal"
)

type mockTerm struct {
	t      *testing.T
	inp    chan string
	out    chan string
	output []string

	// the file used by the script recording sequence
	scriptfile string
}

func newMockTerm(t *testing.T) *mockTerm {
	trm := &mockTerm{
		t:   t,
		inp: make(chan string),
		out: make(chan string, 100),
	}
	return trm
}

func (trm *mockTerm) Initialise() error {
	return nil
}

func (trm *mockTerm) CleanUp() {
}

func (trm *mockTerm) RegisterTabCompletion(_ terminal.TabCompletion) {
}

func (trm *mockTerm) Silence(silenced bool) {
}

func (trm *mockTerm) TermRead(buffer []byte, _ terminal.Prompt, _ *terminal.ReadEvents) (int, error) {
	s := <-trm.inp
	n := copy(buffer, s)
	return n, nil
}

func (trm *mockTerm) TermReadCheck() bool {
	return false
}

func (trm *mockTerm) IsInteractive() bool {
	return false
}

func (trm *mockTerm) TermPrintLine(sty terminal.Style, s string) {
	if sty == terminal.StyleEcho {
		return
	}

	trm.out <- s
}

func (trm *mockTerm) sndInput(s string) {
	trm.output = make([]string, 0, 10)
	trm.inp <- s
}

func (trm *mockTerm) rcvOutput() {
	empty := false
	for !empty {
		select {
		case s := <-trm.out:
			trm.output = append(trm.output, s)

		// the amount of output sent by the debugger is unpredictable so a
		// timeout is necessary. a matter of milliseconds should be sufficient
		case <-time.After(10 * time.Millisecond):
			empty = true
		}
	}
}

// cmpOutput compares the string argument with the *last line* of the most
// recent output. it can easily be adapted to compare the whole output if
// necessary.
func (trm *mockTerm) cmpOutput(s string) {
	trm.rcvOutput()

	if len(trm.output) == 0 {
		if len(s) != 0 {
			trm.t.Errorf(fmt.Sprintf("unexpected debugger output (nothing) should be (%s)", s))
			return
		}
		return
	}

	l := len(trm.output) - 1

	if trm.output[l] == s {
		return
	}

	trm.t.Errorf(fmt.Sprintf("unexpected debugger output (%s) should be (%s)", trm.output[l], s))
}

// cntOutput is a looser version of cmpOutput. the last line of the most
// recent output need only contain, rather than equal, the string argument.
func (trm *mockTerm) cntOutput(s string) {
	trm.rcvOutput()

	if len(trm.output) == 0 {
		trm.t.Errorf(fmt.Sprintf("unexpected debugger output (nothing) should contain (%s)", s))
		return
	}

	l := len(trm.output) - 1

	if strings.Contains(trm.output[l], s) {
		return
	}

	trm.t.Errorf(fmt.Sprintf("unexpected debugger output (%s) should contain (%s)", trm.output[l], s))
}

func (trm *mockTerm) testBasics() {
	// the HELP list is sorted so the last command listed is predictable
	trm.sndInput("HELP")
	trm.cmpOutput("TIMERS")

	trm.sndInput("HELP STEP")
	trm.cmpOutput("  Step forward one instruction")

	trm.sndInput("NOSUCHCOMMAND")
	trm.cmpOutput("NOSUCHCOMMAND is not a debugging command")

	trm.sndInput("RESET")
	trm.cmpOutput("machine reset")
}

func (trm *mockTerm) testSequence() {
	defer func() { trm.sndInput("QUIT") }()
	trm.testBasics()
	trm.testBreakpoints()
	trm.testMemory()
	trm.testMachine()
	trm.testScript()
}

func TestDebugger(t *testing.T) {
	trm := newMockTerm(t)
	trm.scriptfile = filepath.Join(t.TempDir(), "test_script")

	dbg, err := debugger.NewDebugger(trm)
	if err != nil {
		t.Fatalf(err.Error())
	}

	go trm.testSequence()

	if err := dbg.Start("", "", 0); err != nil {
		t.Fatalf(err.Error())
	}
}

func TestDebugger_withNonExistantInitScript(t *testing.T) {
	trm := newMockTerm(t)

	dbg, err := debugger.NewDebugger(trm)
	if err != nil {
		t.Fatalf(err.Error())
	}

	go func() { trm.sndInput("QUIT") }()

	if err := dbg.Start("non_existent_script", "", 0); err != nil {
		t.Fatalf(err.Error())
	}
}
