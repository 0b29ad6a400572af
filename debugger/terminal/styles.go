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

package terminal

// Style is used to identify the category of text being sent to the
// Terminal.TermPrintLine() function. The terminal implementation can interpret
// this how it sees fit - the most likely treatment is to print different
// styles in different colours.
type Style int

// List of terminal styles.
const (
	// input entered by the user, echoed back to the output. echoing is
	// important when the input originated from a script
	StyleEcho Style = iota

	// help information
	StyleHelp

	// terse and occasional feedback for the user's commands
	StyleFeedback

	// the instruction address line printed after every step of the emulation
	StyleCPUStep

	// information about the state of the emulated machine
	StyleMachineInfo

	// information from the emulator rather than the emulated machine
	StyleEmulatorInfo

	// an error message
	StyleError

	// a line from the log
	StyleLog
)

// IncludeInScriptOutput returns true if lines of the style should be written
// to any script being recorded. Echoed input is excluded because the script
// already contains the input; help and log output is excluded because it is
// not a product of the emulation.
func (sty Style) IncludeInScriptOutput() bool {
	switch sty {
	case StyleEcho:
		return false
	case StyleHelp:
		return false
	case StyleLog:
		return false
	}
	return true
}
