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

package script

import (
	"io"
	"os"
	"strings"

	"github.com/jetsetilly/katana/curated"
	"github.com/jetsetilly/katana/debugger/terminal"
)

// sentinal errors returned by the Rescribe type.
const (
	// ScriptEnd is returned by TermRead() when the end of the script has been
	// reached. it should be treated as a polite end of input rather than a
	// genuine error.
	ScriptEnd = "end of script (%s)"
)

const commentLine = "#"

// check if line is prepended with commentLine (ignoring leading spaces).
func isOutputLine(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), commentLine)
}

// Rescribe represents a previously scribed script. The type implements the
// terminal.Input interface and can be used as the input source for the
// debugger input loop.
type Rescribe struct {
	scriptFile string
	lines      []string
	lineCt     int
}

// RescribeScript is the preferred method of initialisation for the Rescribe
// type.
func RescribeScript(scriptfile string) (*Rescribe, error) {
	// open script and defer closing
	f, err := os.Open(scriptfile)
	if err != nil {
		return nil, curated.Errorf("script: %v", err)
	}
	defer func() {
		_ = f.Close()
	}()

	buffer, err := io.ReadAll(f)
	if err != nil {
		return nil, curated.Errorf("script: %v", err)
	}

	scr := &Rescribe{scriptFile: scriptfile}

	// convert buffer to an array of lines
	scr.lines = strings.Split(string(buffer), "\n")

	// pass over any lines starting with the commentLine, leaving the line
	// counter at the first input line.
	for isOutputLine(scr.lines[scr.lineCt]) {
		scr.lineCt++
		if scr.lineCt > len(scr.lines)-1 {
			// we've reached the end of the file but that's okay. subsequent
			// calls to TermRead() will return the ScriptEnd error, as would
			// be expected.
			return scr, nil
		}
	}

	return scr, nil
}

// IsInteractive implements the terminal.Input interface.
func (scr *Rescribe) IsInteractive() bool {
	return false
}

// TermReadCheck implements the terminal.Input interface.
func (scr *Rescribe) TermReadCheck() bool {
	return false
}

// TermRead implements the terminal.Input interface.
func (scr *Rescribe) TermRead(buffer []byte, _ terminal.Prompt, _ *terminal.ReadEvents) (int, error) {
	if scr.lineCt > len(scr.lines)-1 {
		return -1, curated.Errorf(ScriptEnd, scr.scriptFile)
	}

	n := len(scr.lines[scr.lineCt])
	copy(buffer, []byte(scr.lines[scr.lineCt]))
	scr.lineCt++

	// pass over any lines starting with the commentLine
	for scr.lineCt < len(scr.lines) && isOutputLine(scr.lines[scr.lineCt]) {
		scr.lineCt++
	}

	return n, nil
}
