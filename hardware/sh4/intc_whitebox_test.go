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

package sh4

import (
	"math/bits"
	"testing"

	"github.com/jetsetilly/katana/hardware/memory"
	"github.com/jetsetilly/katana/hardware/scheduler"
	"github.com/jetsetilly/katana/test"
)

func createCore(t *testing.T) *SH4 {
	t.Helper()

	sh, err := NewSH4(memory.NewBus(), scheduler.NewScheduler())
	if err != nil {
		t.Fatalf(err.Error())
	}
	return sh
}

func openInterruptMask(sh *SH4) {
	old := sh.Context.SR
	sh.Context.SR = old &^ (FlagBL | MaskI)
	sh.srUpdated(old)
}

func TestInterruptTable(t *testing.T) {
	test.Equate(t, int(numInterrupts), 41)

	names := make(map[string]bool)
	codes := make(map[uint32]bool)
	for i := Interrupt(0); i < numInterrupts; i++ {
		def := interruptDefs[i]
		if names[def.name] {
			t.Errorf("duplicate interrupt name %s", def.name)
		}
		names[def.name] = true
		if codes[def.intevt] {
			t.Errorf("duplicate interrupt code %#03x (%s)", def.intevt, def.name)
		}
		codes[def.intevt] = true

		// only NMI and the IRL levels have a fixed priority
		if def.ipr < 0 {
			if i != IntNMI && (i < IntIRL0 || i > IntIRL14) {
				t.Errorf("%s has no IPR register", def.name)
			}
		}
	}
}

func TestPrioritySorting(t *testing.T) {
	sh := createCore(t)

	// with the IPR registers at their reset value of zero the programmable
	// sources occupy the low bits, the IRL levels the bits above them and
	// NMI the topmost bit
	test.Equate(t, sh.sortID[IntSCIFTXI], uint64(1)<<0)
	test.Equate(t, sh.sortID[IntTUNI0], uint64(1)<<24)
	test.Equate(t, sh.sortID[IntIRL14], uint64(1)<<25)
	test.Equate(t, sh.sortID[IntIRL0], uint64(1)<<39)
	test.Equate(t, sh.sortID[IntNMI], uint64(1)<<40)

	test.Equate(t, int(sh.sorted[0]), int(IntSCIFTXI))
	test.Equate(t, int(sh.sorted[40]), int(IntNMI))

	test.Equate(t, sh.priorityMask[0], (uint64(1)<<25)-1)
	test.Equate(t, sh.priorityMask[15], (uint64(1)<<40)-1)
	test.Equate(t, sh.priorityMask[16], (uint64(1)<<41)-1)
}

func TestPriorityZeroNeverPending(t *testing.T) {
	sh := createCore(t)
	openInterruptMask(sh)

	// a source whose IPR nibble is zero is requestable but never pending
	sh.RequestInterrupt(IntTUNI0)
	test.Equate(t, sh.requested != 0, true)
	test.Equate(t, sh.pending, 0)
}

func TestRequestCarriedAcrossReprioritisation(t *testing.T) {
	sh := createCore(t)
	openInterruptMask(sh)

	// TUNI0 at priority 1
	sh.writeRegister(0xffd00004, 0x1000)
	sh.RequestInterrupt(IntTUNI0)
	test.Equate(t, sh.pending&sh.sortID[IntTUNI0] != 0, true)
	before := sh.sortID[IntTUNI0]

	// moving it to priority 15 renumbers the whole set. the request must
	// follow the source to its new position
	sh.writeRegister(0xffd00004, 0xf000)
	if sh.sortID[IntTUNI0] == before {
		t.Errorf("expected TUNI0 to move in the sort order")
	}
	test.Equate(t, sh.requested&sh.sortID[IntTUNI0] != 0, true)
	test.Equate(t, sh.pending&sh.sortID[IntTUNI0] != 0, true)

	// and back down to disabled
	sh.writeRegister(0xffd00004, 0x0000)
	test.Equate(t, sh.requested&sh.sortID[IntTUNI0] != 0, true)
	test.Equate(t, sh.pending, 0)
}

func TestSharedPriorityOrder(t *testing.T) {
	sh := createCore(t)
	openInterruptMask(sh)

	// TUNI2 and TICPI2 share an IPR nibble. TUNI2 resolves first
	sh.writeRegister(0xffd00004, 0x00f0)
	sh.RequestInterrupt(IntTICPI2)
	sh.RequestInterrupt(IntTUNI2)

	n := 63 - bits.LeadingZeros64(sh.pending)
	test.Equate(t, int(sh.sorted[n]), int(IntTUNI2))

	// NMI outranks any programmable priority
	sh.RequestInterrupt(IntNMI)
	n = 63 - bits.LeadingZeros64(sh.pending)
	test.Equate(t, int(sh.sorted[n]), int(IntNMI))
}

func TestBlockBitHoldsEverything(t *testing.T) {
	sh := createCore(t)

	// SR at power-on has the block bit set. not even NMI gets through
	sh.RequestInterrupt(IntNMI)
	test.Equate(t, sh.pending, 0)

	// NMI does not answer to the interrupt mask, so clearing the block bit
	// alone releases it
	old := sh.Context.SR
	sh.Context.SR = old &^ FlagBL
	sh.srUpdated(old)
	test.Equate(t, sh.pending != 0, true)
}
