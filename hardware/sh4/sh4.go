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
	"time"

	"github.com/jetsetilly/katana/curated"
	"github.com/jetsetilly/katana/hardware/memory"
	"github.com/jetsetilly/katana/hardware/scheduler"
	"github.com/jetsetilly/katana/hardware/sh4/sh4reg"
)

// clock rates as wired in the Dreamcast. peripheral modules, the timer unit
// among them, run at a quarter of the CPU clock.
const (
	clockFreq           = 200000000
	peripheralClockFreq = clockFreq / 4
	nsPerSec            = 1000000000
)

// SH4 implements the SH7750 processor found in the Dreamcast. Instruction
// execution itself is delegated to a translation backend through the
// CodeCache interface. The core supplies everything around it: the
// execution context, the memory map, the control registers and the on-chip
// peripherals that games cannot boot without.
type SH4 struct {
	// Context is the register state shared with translated code.
	Context Context

	bus   *memory.Bus
	sched *scheduler.Scheduler

	cache    CodeCache
	debugger Debugger

	// the on-chip register file, indexed by sh4reg offsets
	regs [sh4reg.NumRegs]register

	// half of the operand cache, addressable as scratch RAM
	cacheRAM [cacheRAMSize]byte

	// displaced instruction words, keyed by breakpoint address
	breakpoints map[uint32]uint16

	// interrupt state. sources are renumbered into a 64bit set ordered by
	// priority. see reprioritizeInterrupts()
	requested    uint64
	pending      uint64
	sorted       [numInterrupts]Interrupt
	sortID       [numInterrupts]uint64
	priorityMask [maxInterruptPriority + 1]uint64

	// deadline handles for the three timer channels
	tmu [numTimers]*scheduler.Timer

	// instruction rate over the last sampling window
	lastMIPS time.Time
	mips     float32
}

// NewSH4 is the preferred method of initialisation for the SH4 type. The
// supplied bus gains the full SH4 address space layout. Without an attached
// code cache the core falls back to blocks that trap immediately.
func NewSH4(bus *memory.Bus, sched *scheduler.Scheduler) (*SH4, error) {
	sh := &SH4{
		bus:         bus,
		sched:       sched,
		breakpoints: make(map[uint32]uint16),
	}
	sh.cache = &nullCache{sh: sh}

	sh.buildRegisterFile()
	if err := sh.installMemoryMap(); err != nil {
		return nil, curated.Errorf("sh4: %v", err)
	}

	sh.Reset()

	return sh, nil
}

// Reset the core to its power-on state. Registers declared as held and any
// planted breakpoints survive the reset.
func (sh *SH4) Reset() {
	sh.cancelTimers()
	sh.resetRegisterFile()

	sh.Context = Context{
		PC:    resetPC,
		SR:    resetSR,
		FPSCR: resetFPSCR,
	}
	sh.installCallbacks()

	sh.requested = 0
	sh.pending = 0
	sh.reprioritizeInterrupts()

	sh.Context.NumInstrs = 0
	sh.lastMIPS = time.Time{}
	sh.mips = 0.0
}

func (sh *SH4) installCallbacks() {
	sh.Context.InvalidInstruction = sh.invalidInstruction
	sh.Context.Prefetch = sh.prefetch
	sh.Context.SRUpdated = sh.srUpdated
	sh.Context.FPSCRUpdated = sh.fpscrUpdated
}

// srUpdated is the callback raised after every replacement of SR. the
// superseded value tells it which side effects apply.
func (sh *SH4) srUpdated(old uint32) {
	ctx := &sh.Context
	if (ctx.SR^old)&FlagRB != 0 {
		ctx.swapGeneralBank()
	}
	if (ctx.SR^old)&(MaskI|FlagBL) != 0 {
		sh.updatePendingInterrupts()
	}
}

// fpscrUpdated is the callback raised after every replacement of FPSCR.
func (sh *SH4) fpscrUpdated(old uint32) {
	ctx := &sh.Context
	if (ctx.FPSCR^old)&FPSCRFR != 0 {
		ctx.swapFloatBank()
	}
}

// AttachCodeCache connects a translation backend to the core. Attaching nil
// reverts to the null cache.
func (sh *SH4) AttachCodeCache(cache CodeCache) {
	if cache == nil {
		sh.cache = &nullCache{sh: sh}
		return
	}
	sh.cache = cache
}

// AttachDebugger registers the receiver of Trap() calls. Attaching nil
// means breakpoints and stepping end the run slice but go unreported.
func (sh *SH4) AttachDebugger(d Debugger) {
	sh.debugger = d
}

func (sh *SH4) compileFlags() CompileFlags {
	var flags CompileFlags
	if sh.Context.FPSCR&FPSCRPR == FPSCRPR {
		flags |= CompileDoublePR
	}
	if sh.Context.FPSCR&FPSCRSZ == FPSCRSZ {
		flags |= CompileDoubleSZ
	}
	return flags
}

// CompileCurrentPC asks the code cache to translate the code at the current
// PC, compiled for the current floating point mode. Code caches call this
// when GetBlock misses.
func (sh *SH4) CompileCurrentPC() Block {
	pc := sh.Context.PC
	return sh.cache.CompileBlock(pc, sh.bus.TranslateVirtual(pc), sh.compileFlags())
}

// Run executes blocks for a slice of guest time, expressed in nanoseconds.
// Pending interrupts are delivered at block boundaries. A slice always runs
// at least one block, however short.
func (sh *SH4) Run(delta int64) {
	cycles := delta * clockFreq / nsPerSec
	if cycles < 1 {
		cycles = 1
	}
	sh.Context.NumCycles = cycles

	for sh.Context.NumCycles > 0 {
		b := sh.cache.GetBlock(sh.Context.PC)
		sh.Context.PC = b.Run()
		sh.checkPendingInterrupts()
	}

	sh.updateMIPS()
}

// Step executes the single instruction at the current PC and traps to the
// debugger. Any block already compiled for the address is discarded so that
// the single instruction form is used.
func (sh *SH4) Step() {
	pc := sh.Context.PC
	sh.cache.RemoveBlocks(pc)

	b := sh.cache.CompileBlock(pc, sh.bus.TranslateVirtual(pc), sh.compileFlags()|CompileSingleInstr)
	sh.Context.PC = b.Run()
	sh.checkPendingInterrupts()

	if sh.debugger != nil {
		sh.debugger.Trap()
	}
}

func (sh *SH4) updateMIPS() {
	now := time.Now()
	if sh.lastMIPS.IsZero() {
		sh.lastMIPS = now
		sh.Context.NumInstrs = 0
		return
	}

	elapsed := now.Sub(sh.lastMIPS)
	if elapsed < time.Second {
		return
	}

	sh.mips = float32(float64(sh.Context.NumInstrs) / elapsed.Seconds() / 1000000)
	sh.Context.NumInstrs = 0
	sh.lastMIPS = now
}

// MIPS returns the instruction rate, in millions per second of wall clock
// time, over the most recent sampling window. Zero until a full window has
// elapsed.
func (sh *SH4) MIPS() float32 {
	return sh.mips
}
