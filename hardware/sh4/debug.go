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
	"sort"

	"github.com/jetsetilly/katana/curated"
)

// breakpoints work by replacing the instruction word at the address with
// zero, an illegal encoding, and discarding any block compiled for it. the
// next attempt to execute the address compiles a block that raises the
// invalid-instruction callback, which recognises the address and traps.

// sentinel errors from the breakpoint functions.
const (
	BreakpointExists  = "sh4: breakpoint already set at %#08x"
	BreakpointMissing = "sh4: no breakpoint at %#08x"
)

// AddBreakpoint plants a breakpoint at the address. The displaced
// instruction word is kept for when the breakpoint is removed.
func (sh *SH4) AddBreakpoint(addr uint32) error {
	if _, ok := sh.breakpoints[addr]; ok {
		return curated.Errorf(BreakpointExists, addr)
	}

	sh.breakpoints[addr] = sh.bus.R16(addr)
	sh.bus.W16(addr, 0)
	sh.cache.RemoveBlocks(addr)

	return nil
}

// RemoveBreakpoint restores the instruction word displaced by an earlier
// AddBreakpoint.
func (sh *SH4) RemoveBreakpoint(addr uint32) error {
	instr, ok := sh.breakpoints[addr]
	if !ok {
		return curated.Errorf(BreakpointMissing, addr)
	}

	sh.bus.W16(addr, instr)
	delete(sh.breakpoints, addr)
	sh.cache.RemoveBlocks(addr)

	return nil
}

// Breakpoints returns the addresses of all current breakpoints, lowest
// first.
func (sh *SH4) Breakpoints() []uint32 {
	l := make([]uint32, 0, len(sh.breakpoints))
	for addr := range sh.breakpoints {
		l = append(l, addr)
	}
	sort.Slice(l, func(i, j int) bool { return l[i] < l[j] })
	return l
}

// invalidInstruction is the callback raised by translated code on an
// illegal encoding. the only legitimate source of an illegal encoding is a
// planted breakpoint. anything else means guest code has wandered somewhere
// it should not be.
func (sh *SH4) invalidInstruction(addr uint32) {
	if _, ok := sh.breakpoints[addr]; !ok {
		panic(fmt.Sprintf("sh4: invalid instruction at %#08x", addr))
	}

	sh.Context.NumCycles = 0
	if sh.debugger != nil {
		sh.debugger.Trap()
	}
}

// NumDebugRegisters is the size of the flat register file presented to
// debugging frontends.
const NumDebugRegisters = 59

// debug register numbering
const (
	debugRegR     = 0
	debugRegPC    = 16
	debugRegPR    = 17
	debugRegGBR   = 18
	debugRegVBR   = 19
	debugRegMACH  = 20
	debugRegMACL  = 21
	debugRegSR    = 22
	debugRegFPUL  = 23
	debugRegFPSCR = 24
	debugRegFR    = 25
	debugRegSSR   = 41
	debugRegSPC   = 42
	debugRegBank0 = 43
	debugRegBank1 = 51
)

// DebugRegister returns the value and width in bytes of one register in the
// flat file presented to debugging frontends. The file runs R0-R15, the
// control and system registers, the floating point bank and finally both
// general register banks regardless of which is live.
func (sh *SH4) DebugRegister(n int) (uint32, int) {
	ctx := &sh.Context

	var v uint32
	switch {
	case n >= debugRegR && n < debugRegPC:
		v = ctx.R[n-debugRegR]
	case n == debugRegPC:
		v = ctx.PC
	case n == debugRegPR:
		v = ctx.PR
	case n == debugRegGBR:
		v = ctx.GBR
	case n == debugRegVBR:
		v = ctx.VBR
	case n == debugRegMACH:
		v = ctx.MACH
	case n == debugRegMACL:
		v = ctx.MACL
	case n == debugRegSR:
		v = ctx.SR
	case n == debugRegFPUL:
		v = ctx.FPUL
	case n == debugRegFPSCR:
		v = ctx.FPSCR
	case n >= debugRegFR && n < debugRegSSR:
		v = ctx.FR[n-debugRegFR]
	case n == debugRegSSR:
		v = ctx.SSR
	case n == debugRegSPC:
		v = ctx.SPC
	case n >= debugRegBank0 && n < debugRegBank1:
		if ctx.SR&FlagRB == FlagRB {
			v = ctx.RAlt[n-debugRegBank0]
		} else {
			v = ctx.R[n-debugRegBank0]
		}
	case n >= debugRegBank1 && n < NumDebugRegisters:
		if ctx.SR&FlagRB == FlagRB {
			v = ctx.R[n-debugRegBank1]
		} else {
			v = ctx.RAlt[n-debugRegBank1]
		}
	default:
		return 0, 0
	}

	return v, 4
}

// DebugRegisterName returns the name of one register in the flat file.
func DebugRegisterName(n int) string {
	switch {
	case n >= debugRegR && n < debugRegPC:
		return fmt.Sprintf("r%d", n-debugRegR)
	case n == debugRegPC:
		return "pc"
	case n == debugRegPR:
		return "pr"
	case n == debugRegGBR:
		return "gbr"
	case n == debugRegVBR:
		return "vbr"
	case n == debugRegMACH:
		return "mach"
	case n == debugRegMACL:
		return "macl"
	case n == debugRegSR:
		return "sr"
	case n == debugRegFPUL:
		return "fpul"
	case n == debugRegFPSCR:
		return "fpscr"
	case n >= debugRegFR && n < debugRegSSR:
		return fmt.Sprintf("fr%d", n-debugRegFR)
	case n == debugRegSSR:
		return "ssr"
	case n == debugRegSPC:
		return "spc"
	case n >= debugRegBank0 && n < debugRegBank1:
		return fmt.Sprintf("r%d_bank0", n-debugRegBank0)
	case n >= debugRegBank1 && n < NumDebugRegisters:
		return fmt.Sprintf("r%d_bank1", n-debugRegBank1)
	}
	return ""
}
