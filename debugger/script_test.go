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
)

// testScript records a short session and plays it back again.
func (trm *mockTerm) testScript() {
	trm.sndInput(fmt.Sprintf("SCRIPT RECORD %s", trm.scriptfile))
	trm.cmpOutput(fmt.Sprintf("recording to %s", trm.scriptfile))

	trm.sndInput("POKE 0x8c000100 0xff")
	trm.cmpOutput("poked 8c000100 with 000000ff")

	trm.sndInput("SCRIPT END")
	trm.cmpOutput(fmt.Sprintf("recording of %s ended", trm.scriptfile))

	// undo the poke so that playback visibly redoes it
	trm.sndInput("POKE 0x8c000100 0")
	trm.cmpOutput("poked 8c000100 with 00000000")

	trm.sndInput(fmt.Sprintf("SCRIPT %s", trm.scriptfile))
	trm.cmpOutput(fmt.Sprintf("end of script (%s)", trm.scriptfile))

	trm.sndInput("PEEK 0x8c000100")
	trm.cmpOutput("8c000100: 000000ff")

	trm.sndInput("SCRIPT END")
	trm.cmpOutput("no script is being recorded")

	trm.sndInput("SCRIPT not_a_real_script_file")
	trm.cntOutput("not_a_real_script_file")
}
