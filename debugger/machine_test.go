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

// the context line reported after STEP and RUN. without a translation
// backend attached nothing can execute, so the power-on values never change.
const resetContext = "PC=a0000000 SR=700000f0 PR=00000000 GBR=00000000 VBR=00000000 MACH=00000000 MACL=00000000"

func (trm *mockTerm) testMachine() {
	// no translation backend is attached so stepping and running trap
	// immediately, leaving PC where it was
	trm.sndInput("STEP")
	trm.cmpOutput(resetContext)

	trm.sndInput("RUN")
	trm.cmpOutput(resetContext)

	// the default RUN span is 16ms and the whole of the first slice is
	// accounted to the scheduler, trap or no trap
	trm.sndInput("TICK 100")
	trm.cmpOutput("scheduler now at 16000100ns")

	trm.sndInput("TIMERS")
	trm.cmpOutput("timer 2: TCOR=ffffffff TCNT=ffffffff TCR=0000 (stopped)")

	// SR.BL is set at reset so a requested interrupt is never pending
	trm.sndInput("INT TUNI0")
	trm.cmpOutput("pending: []")

	trm.sndInput("INT TUNI0 CLEAR")
	trm.cmpOutput("pending: []")

	trm.sndInput("INT BOGUS")
	trm.cmpOutput("no such interrupt (BOGUS)")

	trm.sndInput("LOG")
	trm.cntOutput("no translation backend for block at 0xa0000000")

	trm.sndInput("LOG CLEAR")
	trm.cmpOutput("log cleared")
}
