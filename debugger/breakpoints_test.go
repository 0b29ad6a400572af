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

func (trm *mockTerm) testBreakpoints() {
	trm.sndInput("LIST")
	trm.cmpOutput("no breakpoints")

	trm.sndInput("BREAK 0x8c000010")
	trm.cmpOutput("breakpoint added at 0x8c000010")

	// planting the same breakpoint twice is an error
	trm.sndInput("BREAK 0x8c000010")
	trm.cmpOutput("sh4: breakpoint already set at 0x8c000010")

	trm.sndInput("LIST")
	trm.cmpOutput("breakpoint at 0x8c000010")

	trm.sndInput("CLEAR 0x8c000010")
	trm.cmpOutput("breakpoint removed from 0x8c000010")

	trm.sndInput("CLEAR 0x8c000010")
	trm.cmpOutput("sh4: no breakpoint at 0x8c000010")

	trm.sndInput("LIST")
	trm.cmpOutput("no breakpoints")
}
