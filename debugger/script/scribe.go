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
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jetsetilly/katana/curated"
)

// Scribe can be used again after a StartSession()/EndSession() cycle.
// IsActive() can be used to detect if a script is currently being captured
// but it is safe not to because most functions silently fail if there is no
// active session.
type Scribe struct {
	file       *os.File
	scriptfile string

	// the depth of script openings during the writing of a new script
	playbackDepth int

	inputLine  string
	outputLine string
}

// IsActive returns true if a script is currently being captured.
func (scr Scribe) IsActive() bool {
	return scr.file != nil
}

// ScriptFile returns the name of the file being written to, or the empty
// string if the scribe is not active.
func (scr Scribe) ScriptFile() string {
	return scr.scriptfile
}

// StartSession begins a new scribe session.
func (scr *Scribe) StartSession(scriptfile string) error {
	if scr.IsActive() {
		return curated.Errorf("script: scribe session already active")
	}

	scr.scriptfile = scriptfile

	_, err := os.Stat(scriptfile)
	if os.IsNotExist(err) {
		scr.file, err = os.Create(scriptfile)
		if err != nil {
			return curated.Errorf("script: cannot create script file (%s)", scriptfile)
		}
	} else {
		return curated.Errorf("script: file already exists (%s)", scriptfile)
	}

	return nil
}

// EndSession closes the current scribe session.
func (scr *Scribe) EndSession() error {
	if !scr.IsActive() {
		return nil
	}

	defer func() {
		scr.file = nil
		scr.scriptfile = ""
		scr.playbackDepth = 0
		scr.inputLine = ""
		scr.outputLine = ""
	}()

	// make sure everything has been written to the output file
	err := scr.Commit()

	// if Commit() causes an error, continue with the Close() operation and
	// return the Commit() error if the close succeeds

	errClose := scr.file.Close()
	if errClose != nil {
		return curated.Errorf("script: %v", errClose)
	}

	return err
}

// StartPlayback indicates that a replayed script has begun.
func (scr *Scribe) StartPlayback() {
	if !scr.IsActive() {
		return
	}
	scr.Commit()
	scr.playbackDepth++
}

// EndPlayback indicates that a replayed script has finished.
func (scr *Scribe) EndPlayback() {
	if !scr.IsActive() {
		return
	}
	scr.Commit()
	scr.playbackDepth--
}

// Rollback undoes calls to WriteInput() and WriteOutput() since the last
// Commit().
func (scr *Scribe) Rollback() {
	if !scr.IsActive() {
		return
	}

	scr.inputLine = ""
	scr.outputLine = ""
}

// WriteInput writes user-input to the open script file.
func (scr *Scribe) WriteInput(command string) {
	if !scr.IsActive() || scr.playbackDepth > 0 {
		return
	}

	scr.Commit()
	if command != "" {
		scr.inputLine = fmt.Sprintf("%s\n", command)
	}
}

// WriteOutput writes emulator-output to the open script file. output is
// written as comment lines and is ignored when the script is replayed.
func (scr *Scribe) WriteOutput(result string, args ...interface{}) {
	if !scr.IsActive() || scr.playbackDepth > 0 {
		return
	}

	if result == "" {
		return
	}

	result = fmt.Sprintf(result, args...)

	lines := strings.Split(result, "\n")
	for i := range lines {
		scr.outputLine = fmt.Sprintf("%s%s %s\n", scr.outputLine, commentLine, lines[i])
	}
}

// Commit the most recent calls to WriteInput() and WriteOutput().
func (scr *Scribe) Commit() error {
	if !scr.IsActive() {
		return nil
	}

	defer func() {
		scr.inputLine = ""
		scr.outputLine = ""
	}()

	if scr.inputLine != "" {
		n, err := io.WriteString(scr.file, scr.inputLine)
		if err != nil {
			return curated.Errorf("script: %v", err)
		}
		if n != len(scr.inputLine) {
			return curated.Errorf("script: commit truncated")
		}
	}

	if scr.outputLine != "" {
		n, err := io.WriteString(scr.file, scr.outputLine)
		if err != nil {
			return curated.Errorf("script: %v", err)
		}
		if n != len(scr.outputLine) {
			return curated.Errorf("script: commit truncated")
		}
	}

	return nil
}
