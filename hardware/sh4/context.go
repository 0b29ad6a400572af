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
)

// Status register fields. The interrupt mask occupies bits 4 to 7 and is
// compared against interrupt priorities rather than tested as a flag.
const (
	FlagT  = uint32(0x00000001)
	FlagS  = uint32(0x00000002)
	MaskI  = uint32(0x000000f0)
	FlagQ  = uint32(0x00000100)
	FlagM  = uint32(0x00000200)
	FlagFD = uint32(0x00008000)
	FlagBL = uint32(0x10000000)
	FlagRB = uint32(0x20000000)
	FlagMD = uint32(0x40000000)
)

// Floating point status register fields.
const (
	FPSCRDN = uint32(0x00040000)
	FPSCRPR = uint32(0x00080000)
	FPSCRSZ = uint32(0x00100000)
	FPSCRFR = uint32(0x00200000)
)

// Values loaded on power-on and manual reset.
const (
	resetPC    = uint32(0xa0000000)
	resetSR    = uint32(0x700000f0)
	resetFPSCR = uint32(0x00040001)
)

// Context is the flat execution context shared with translated code. Blocks
// produced by a translation backend read and mutate these fields directly so
// the layout favours plain exported fields over accessor functions.
//
// The R array always holds the bank selected by SR.RB and the FR array the
// bank selected by FPSCR.FR. The inactive banks live in RAlt and FRAlt and
// are exchanged by the SRUpdated and FPSCRUpdated callbacks.
type Context struct {
	PC    uint32
	PR    uint32
	SR    uint32
	SSR   uint32
	SPC   uint32
	SGR   uint32
	GBR   uint32
	VBR   uint32
	MACH  uint32
	MACL  uint32
	FPUL  uint32
	FPSCR uint32

	R    [16]uint32
	RAlt [8]uint32

	FR    [16]uint32
	FRAlt [16]uint32

	// the two store queues. filled by 32bit stores to the store queue area
	// and burst-written to memory by the Prefetch callback
	SQ [2][8]uint32

	// cycle budget for the current run slice. blocks decrement this as they
	// execute and the run loop ends the slice when it reaches zero. setting
	// it to zero from a callback is the canonical way of breaking out of the
	// loop early
	NumCycles int64

	// instruction count for MIPS reporting
	NumInstrs int64

	// callbacks invoked by translated code. installed by the core on
	// creation and on Reset()
	InvalidInstruction func(addr uint32)
	Prefetch           func(addr uint32)
	SRUpdated          func(old uint32)
	FPSCRUpdated       func(old uint32)
}

// String returns a one line summary of the control registers. The general
// purpose registers are not included.
func (ctx *Context) String() string {
	return fmt.Sprintf("PC=%08x SR=%08x PR=%08x GBR=%08x VBR=%08x MACH=%08x MACL=%08x",
		ctx.PC, ctx.SR, ctx.PR, ctx.GBR, ctx.VBR, ctx.MACH, ctx.MACL)
}

// swapGeneralBank exchanges R0-R7 with the inactive bank. called whenever a
// write to SR flips the RB bit.
func (ctx *Context) swapGeneralBank() {
	for i := 0; i < 8; i++ {
		ctx.R[i], ctx.RAlt[i] = ctx.RAlt[i], ctx.R[i]
	}
}

// swapFloatBank exchanges FR0-FR15 with the inactive bank. called whenever a
// write to FPSCR flips the FR bit.
func (ctx *Context) swapFloatBank() {
	for i := 0; i < 16; i++ {
		ctx.FR[i], ctx.FRAlt[i] = ctx.FRAlt[i], ctx.FR[i]
	}
}
