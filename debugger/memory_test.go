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

func (trm *mockTerm) testMemory() {
	trm.sndInput("PEEK 0x8c000000")
	trm.cmpOutput("8c000000: 00000000")

	trm.sndInput("POKE 0x8c000000 0xdeadbeef")
	trm.cmpOutput("poked 8c000000 with deadbeef")

	// the P2 window is an uncached view of the same physical memory
	trm.sndInput("PEEK 0xac000000")
	trm.cmpOutput("ac000000: deadbeef")

	trm.sndInput("PEEK 0x8c000000 2")
	trm.cmpOutput("8c000000: deadbeef\n8c000004: 00000000")

	trm.sndInput("POKE 0x8c000000 0")
	trm.cmpOutput("poked 8c000000 with 00000000")

	trm.sndInput("REGS")
	trm.cntOutput("pc=a0000000")

	trm.sndInput("REG TSTR")
	trm.cmpOutput("TSTR=00000000")

	// starting and stopping timer 0 through the register write path
	trm.sndInput("REG TSTR 1")
	trm.cmpOutput("TSTR=00000001")

	trm.sndInput("REG TSTR 0")
	trm.cmpOutput("TSTR=00000000")

	trm.sndInput("REG BOGUS")
	trm.cmpOutput("no such on-chip register (BOGUS)")
}
