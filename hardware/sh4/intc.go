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
	"fmt"
	"math/bits"

	"github.com/jetsetilly/katana/hardware/sh4/sh4reg"
)

// Interrupt identifies one of the interrupt sources recognised by the
// interrupt controller.
type Interrupt int

// List of interrupt sources. Sources that share a priority are delivered in
// declaration order, which follows the order the hardware resolves them.
const (
	IntNMI Interrupt = iota

	// external requests encoded on the IRL pins
	IntIRL0
	IntIRL1
	IntIRL2
	IntIRL3
	IntIRL4
	IntIRL5
	IntIRL6
	IntIRL7
	IntIRL8
	IntIRL9
	IntIRL10
	IntIRL11
	IntIRL12
	IntIRL13
	IntIRL14

	// timer unit
	IntTUNI0
	IntTUNI1
	IntTUNI2
	IntTICPI2

	// realtime clock
	IntATI
	IntPRI
	IntCUI

	// serial interface
	IntSCIERI
	IntSCIRXI
	IntSCITXI
	IntSCITEI

	// watchdog
	IntITI

	// memory refresh
	IntRCMI
	IntROVI

	// user debug interface
	IntHUDI

	// io ports
	IntGPIO

	// DMA controller
	IntDMTE0
	IntDMTE1
	IntDMTE2
	IntDMTE3
	IntDMAE

	// serial interface with FIFO
	IntSCIFERI
	IntSCIFRXI
	IntSCIFBRI
	IntSCIFTXI

	numInterrupts
)

// the NMI priority sits above the programmable range of 0 to 15
const maxInterruptPriority = 16

// interruptDef describes how one interrupt source is coded and prioritised.
// sources with a programmable priority name the IPR register and the nibble
// within it. sources without one use the fixed priority field.
type interruptDef struct {
	name     string
	intevt   uint32
	priority int
	ipr      int
	iprShift int
}

var interruptDefs = [numInterrupts]interruptDef{
	IntNMI: {name: "NMI", intevt: 0x1c0, priority: 16, ipr: -1},

	IntIRL0:  {name: "IRL0", intevt: 0x200, priority: 15, ipr: -1},
	IntIRL1:  {name: "IRL1", intevt: 0x220, priority: 14, ipr: -1},
	IntIRL2:  {name: "IRL2", intevt: 0x240, priority: 13, ipr: -1},
	IntIRL3:  {name: "IRL3", intevt: 0x260, priority: 12, ipr: -1},
	IntIRL4:  {name: "IRL4", intevt: 0x280, priority: 11, ipr: -1},
	IntIRL5:  {name: "IRL5", intevt: 0x2a0, priority: 10, ipr: -1},
	IntIRL6:  {name: "IRL6", intevt: 0x2c0, priority: 9, ipr: -1},
	IntIRL7:  {name: "IRL7", intevt: 0x2e0, priority: 8, ipr: -1},
	IntIRL8:  {name: "IRL8", intevt: 0x300, priority: 7, ipr: -1},
	IntIRL9:  {name: "IRL9", intevt: 0x320, priority: 6, ipr: -1},
	IntIRL10: {name: "IRL10", intevt: 0x340, priority: 5, ipr: -1},
	IntIRL11: {name: "IRL11", intevt: 0x360, priority: 4, ipr: -1},
	IntIRL12: {name: "IRL12", intevt: 0x380, priority: 3, ipr: -1},
	IntIRL13: {name: "IRL13", intevt: 0x3a0, priority: 2, ipr: -1},
	IntIRL14: {name: "IRL14", intevt: 0x3c0, priority: 1, ipr: -1},

	IntTUNI0:  {name: "TUNI0", intevt: 0x400, ipr: sh4reg.IPRA, iprShift: 12},
	IntTUNI1:  {name: "TUNI1", intevt: 0x420, ipr: sh4reg.IPRA, iprShift: 8},
	IntTUNI2:  {name: "TUNI2", intevt: 0x440, ipr: sh4reg.IPRA, iprShift: 4},
	IntTICPI2: {name: "TICPI2", intevt: 0x460, ipr: sh4reg.IPRA, iprShift: 4},

	IntATI: {name: "ATI", intevt: 0x480, ipr: sh4reg.IPRA},
	IntPRI: {name: "PRI", intevt: 0x4a0, ipr: sh4reg.IPRA},
	IntCUI: {name: "CUI", intevt: 0x4c0, ipr: sh4reg.IPRA},

	IntSCIERI: {name: "SCIERI", intevt: 0x4e0, ipr: sh4reg.IPRB, iprShift: 4},
	IntSCIRXI: {name: "SCIRXI", intevt: 0x500, ipr: sh4reg.IPRB, iprShift: 4},
	IntSCITXI: {name: "SCITXI", intevt: 0x520, ipr: sh4reg.IPRB, iprShift: 4},
	IntSCITEI: {name: "SCITEI", intevt: 0x540, ipr: sh4reg.IPRB, iprShift: 4},

	IntITI: {name: "ITI", intevt: 0x560, ipr: sh4reg.IPRB, iprShift: 12},

	IntRCMI: {name: "RCMI", intevt: 0x580, ipr: sh4reg.IPRB, iprShift: 8},
	IntROVI: {name: "ROVI", intevt: 0x5a0, ipr: sh4reg.IPRB, iprShift: 8},

	IntHUDI: {name: "HUDI", intevt: 0x600, ipr: sh4reg.IPRC},

	IntGPIO: {name: "GPIO", intevt: 0x620, ipr: sh4reg.IPRC, iprShift: 12},

	IntDMTE0: {name: "DMTE0", intevt: 0x640, ipr: sh4reg.IPRC, iprShift: 8},
	IntDMTE1: {name: "DMTE1", intevt: 0x660, ipr: sh4reg.IPRC, iprShift: 8},
	IntDMTE2: {name: "DMTE2", intevt: 0x680, ipr: sh4reg.IPRC, iprShift: 8},
	IntDMTE3: {name: "DMTE3", intevt: 0x6a0, ipr: sh4reg.IPRC, iprShift: 8},
	IntDMAE:  {name: "DMAE", intevt: 0x6c0, ipr: sh4reg.IPRC, iprShift: 8},

	IntSCIFERI: {name: "SCIFERI", intevt: 0x700, ipr: sh4reg.IPRC, iprShift: 4},
	IntSCIFRXI: {name: "SCIFRXI", intevt: 0x720, ipr: sh4reg.IPRC, iprShift: 4},
	IntSCIFBRI: {name: "SCIFBRI", intevt: 0x740, ipr: sh4reg.IPRC, iprShift: 4},
	IntSCIFTXI: {name: "SCIFTXI", intevt: 0x760, ipr: sh4reg.IPRC, iprShift: 4},
}

func (i Interrupt) String() string {
	if i < 0 || i >= numInterrupts {
		return fmt.Sprintf("interrupt %d", int(i))
	}
	return interruptDefs[i].name
}

// InterruptByName returns the interrupt source with the given name. Names
// are as listed by InterruptNames.
func InterruptByName(name string) (Interrupt, bool) {
	for i := Interrupt(0); i < numInterrupts; i++ {
		if interruptDefs[i].name == name {
			return i, true
		}
	}
	return 0, false
}

// InterruptNames returns the names of all interrupt sources.
func InterruptNames() []string {
	names := make([]string, numInterrupts)
	for i := Interrupt(0); i < numInterrupts; i++ {
		names[i] = interruptDefs[i].name
	}
	return names
}

// reprioritizeInterrupts renumbers every interrupt source according to its
// current priority. sources are assigned bits in a 64bit set, lowest
// priority first, so that delivery can pick the highest pending source with
// a single leading-zero count. the requested set is carried across the
// renumbering and a mask of "priority or lower" is recorded for every
// priority level.
//
// called at creation and whenever an IPR register is written.
func (sh *SH4) reprioritizeInterrupts() {
	var requested uint64
	n := 0

	for level := 0; level <= maxInterruptPriority; level++ {
		for j := int(numInterrupts) - 1; j >= 0; j-- {
			def := &interruptDefs[j]

			priority := def.priority
			if def.ipr >= 0 {
				priority = int(((sh.regs[def.ipr].value & 0xffff) >> def.iprShift) & 0xf)
			}
			if priority != level {
				continue
			}

			if sh.requested&sh.sortID[j] != 0 {
				requested |= uint64(1) << n
			}

			sh.sorted[n] = Interrupt(j)
			sh.sortID[j] = uint64(1) << n
			n++
		}
		sh.priorityMask[level] = (uint64(1) << n) - 1
	}

	sh.requested = requested
	sh.updatePendingInterrupts()
}

// updatePendingInterrupts narrows the requested set to those sources that
// can actually be delivered under the current SR. called whenever the
// requested set, the block bit or the interrupt mask changes.
func (sh *SH4) updatePendingInterrupts() {
	if sh.Context.SR&FlagBL == FlagBL {
		sh.pending = 0
		return
	}
	minPriority := (sh.Context.SR & MaskI) >> 4
	sh.pending = sh.requested &^ sh.priorityMask[minPriority]
}

// RequestInterrupt marks an interrupt source as requested. The request
// holds until withdrawn with UnrequestInterrupt. Delivery happens between
// blocks, subject to the SR block bit and interrupt mask.
func (sh *SH4) RequestInterrupt(intr Interrupt) {
	sh.requested |= sh.sortID[intr]
	sh.updatePendingInterrupts()
}

// UnrequestInterrupt withdraws an interrupt request.
func (sh *SH4) UnrequestInterrupt(intr Interrupt) {
	sh.requested &^= sh.sortID[intr]
	sh.updatePendingInterrupts()
}

// RequestedInterrupts returns the sources currently requested.
func (sh *SH4) RequestedInterrupts() []Interrupt {
	return sh.gatherInterrupts(sh.requested)
}

// PendingInterrupts returns the sources that would be considered for
// delivery at the next block boundary.
func (sh *SH4) PendingInterrupts() []Interrupt {
	return sh.gatherInterrupts(sh.pending)
}

func (sh *SH4) gatherInterrupts(set uint64) []Interrupt {
	var l []Interrupt
	for i := Interrupt(0); i < numInterrupts; i++ {
		if set&sh.sortID[i] != 0 {
			l = append(l, i)
		}
	}
	return l
}

// checkPendingInterrupts delivers the highest priority pending interrupt, if
// there is one. called between blocks by the run loop.
func (sh *SH4) checkPendingInterrupts() {
	if sh.pending == 0 {
		return
	}

	n := 63 - bits.LeadingZeros64(sh.pending)
	intr := sh.sorted[n]
	sh.regs[sh4reg.INTEVT].value = interruptDefs[intr].intevt

	ctx := &sh.Context
	old := ctx.SR
	ctx.SSR = old
	ctx.SPC = ctx.PC
	ctx.SGR = ctx.R[15]
	ctx.SR |= FlagBL | FlagMD | FlagRB
	ctx.PC = ctx.VBR + 0x600
	sh.srUpdated(old)
}

// writeIPR is the write delegate for the three IPR registers.
func (sh *SH4) writeIPR(_ *register, _ uint32) {
	sh.reprioritizeInterrupts()
}
