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

package sh4_test

import (
	"testing"

	"github.com/jetsetilly/katana/hardware/memory"
	"github.com/jetsetilly/katana/hardware/scheduler"
	"github.com/jetsetilly/katana/hardware/sh4"
	"github.com/jetsetilly/katana/test"
)

func createTestCore(t *testing.T) (*sh4.SH4, *memory.Bus, *scheduler.Scheduler) {
	t.Helper()

	bus := memory.NewBus()
	sched := scheduler.NewScheduler()
	sh, err := sh4.NewSH4(bus, sched)
	if err != nil {
		t.Fatalf(err.Error())
	}

	return sh, bus, sched
}

// enableInterrupts updates SR the way translated code would, clearing the
// block bit and opening the interrupt mask.
func enableInterrupts(sh *sh4.SH4) {
	old := sh.Context.SR
	sh.Context.SR = old &^ (sh4.FlagBL | sh4.MaskI)
	sh.Context.SRUpdated(old)
}

// funcBlock makes a block out of a bare function.
type funcBlock func() uint32

func (b funcBlock) Run() uint32 {
	return b()
}

type compilation struct {
	pc    uint32
	host  []byte
	flags sh4.CompileFlags
}

// fakeCache records what the core asks of its code cache. blocks advance PC
// by one instruction and consume the whole cycle budget unless a getBlock
// hook says otherwise.
type fakeCache struct {
	sh       *sh4.SH4
	getBlock func(pc uint32) sh4.Block

	compiled []compilation
	removed  []uint32
	unlinked int
}

func (c *fakeCache) GetBlock(pc uint32) sh4.Block {
	if c.getBlock != nil {
		return c.getBlock(pc)
	}
	return c.defaultBlock(pc)
}

func (c *fakeCache) CompileBlock(pc uint32, host []byte, flags sh4.CompileFlags) sh4.Block {
	c.compiled = append(c.compiled, compilation{pc: pc, host: host, flags: flags})
	return c.defaultBlock(pc)
}

func (c *fakeCache) RemoveBlocks(pc uint32) {
	c.removed = append(c.removed, pc)
}

func (c *fakeCache) UnlinkBlocks() {
	c.unlinked++
}

func (c *fakeCache) defaultBlock(pc uint32) sh4.Block {
	return funcBlock(func() uint32 {
		c.sh.Context.NumCycles = 0
		c.sh.Context.NumInstrs++
		return pc + 2
	})
}

type fakeDebugger struct {
	traps int
}

func (d *fakeDebugger) Trap() {
	d.traps++
}

func TestPowerOnState(t *testing.T) {
	sh, bus, _ := createTestCore(t)

	test.Equate(t, sh.Context.PC, 0xa0000000)
	test.Equate(t, sh.Context.SR, 0x700000f0)
	test.Equate(t, sh.Context.FPSCR, 0x00040001)

	// exception and interrupt codes clear at power-on
	test.Equate(t, bus.R32(0xff000024), 0)
	test.Equate(t, bus.R32(0xff000028), 0)

	// a spread of documented register defaults
	test.Equate(t, bus.R32(0xff800004), 0x3ffc)     // BCR2
	test.Equate(t, bus.R32(0xff800008), 0x77777777) // WCR1
	test.Equate(t, bus.R32(0xffd80008), 0xffffffff) // TCOR0
	test.Equate(t, bus.R32(0xffd8000c), 0xffffffff) // TCNT0
}

func TestReset(t *testing.T) {
	sh, bus, _ := createTestCore(t)

	bus.W32(0xffd80008, 0x00000064) // TCOR0
	bus.W32(0xffa00000, 0x0c001000) // SAR0, held across resets
	sh.Context.PC = 0x8c010000
	sh.Context.R[4] = 100

	sh.Reset()

	test.Equate(t, sh.Context.PC, 0xa0000000)
	test.Equate(t, sh.Context.R[4], 0)
	test.Equate(t, bus.R32(0xffd80008), 0xffffffff)
	test.Equate(t, bus.R32(0xffa00000), 0x0c001000)
}

func TestResetCancelsTimers(t *testing.T) {
	sh, bus, sched := createTestCore(t)

	// start channel 0 with an imminent deadline
	bus.W32(0xffd80008, 100)  // TCOR0
	bus.W32(0xffd8000c, 100)  // TCNT0
	bus.W32(0xffd80010, 0x20) // TCR0, interrupt on underflow
	bus.W32(0xffd80004, 0x1)  // TSTR

	sh.Reset()
	sched.Tick(10000000)

	test.Equate(t, bus.R32(0xffd80010)&0x100, 0)
	test.Equate(t, len(sh.RequestedInterrupts()), 0)
}

func TestRunBudget(t *testing.T) {
	sh, _, _ := createTestCore(t)

	blocks := 0
	c := &fakeCache{sh: sh}
	c.getBlock = func(pc uint32) sh4.Block {
		return funcBlock(func() uint32 {
			blocks++
			sh.Context.NumCycles -= 100
			return pc + 2
		})
	}
	sh.AttachCodeCache(c)

	// 1000ns at 200MHz is 200 cycles, or two of the fake blocks
	sh.Run(1000)
	test.Equate(t, blocks, 2)

	// a slice too short for a single cycle still runs one block
	blocks = 0
	sh.Run(0)
	test.Equate(t, blocks, 1)
}

func TestRunWithoutBackend(t *testing.T) {
	sh, _, _ := createTestCore(t)

	d := &fakeDebugger{}
	sh.AttachDebugger(d)

	// without a code cache the run slice ends at the first block, leaving
	// PC where it was
	sh.Run(1000000)
	test.Equate(t, sh.Context.PC, 0xa0000000)
	test.Equate(t, d.traps, 1)
}

func TestInterruptEntry(t *testing.T) {
	sh, bus, _ := createTestCore(t)

	c := &fakeCache{sh: sh}
	sh.AttachCodeCache(c)

	// run from a known PC with banked sentinels in place. RB is clear so
	// entering the exception must swap the general register banks
	old := sh.Context.SR
	sh.Context.SR = sh4.FlagMD
	sh.Context.SRUpdated(old)

	sh.Context.PC = 0x8c010000
	sh.Context.VBR = 0x8c000000
	sh.Context.R[15] = 0x8c00fffc
	sh.Context.R[0] = 0x11
	sh.Context.RAlt[0] = 0x22

	preSR := sh.Context.SR
	sh.RequestInterrupt(sh4.IntIRL2)
	sh.Run(1)

	test.Equate(t, bus.R32(0xff000028), 0x240) // INTEVT
	test.Equate(t, sh.Context.SSR, preSR)
	test.Equate(t, sh.Context.SPC, 0x8c010002)
	test.Equate(t, sh.Context.SGR, 0x8c00fffc)
	test.Equate(t, sh.Context.SR, preSR|sh4.FlagBL|sh4.FlagMD|sh4.FlagRB)
	test.Equate(t, sh.Context.PC, 0x8c000600)

	// the other bank is live now
	test.Equate(t, sh.Context.R[0], 0x22)
	test.Equate(t, sh.Context.RAlt[0], 0x11)

	// the request holds but the block bit keeps it out of the pending set
	test.Equate(t, len(sh.RequestedInterrupts()), 1)
	test.Equate(t, len(sh.PendingInterrupts()), 0)
}

func TestInterruptMasking(t *testing.T) {
	sh, _, _ := createTestCore(t)
	enableInterrupts(sh)

	// IRL5 has priority 10. a mask of 10 or above holds it back
	sh.RequestInterrupt(sh4.IntIRL5)
	test.Equate(t, len(sh.PendingInterrupts()), 1)

	old := sh.Context.SR
	sh.Context.SR = old | (10 << 4)
	sh.Context.SRUpdated(old)
	test.Equate(t, len(sh.PendingInterrupts()), 0)

	old = sh.Context.SR
	sh.Context.SR = (old &^ sh4.MaskI) | (9 << 4)
	sh.Context.SRUpdated(old)
	test.Equate(t, len(sh.PendingInterrupts()), 1)

	sh.UnrequestInterrupt(sh4.IntIRL5)
	test.Equate(t, len(sh.PendingInterrupts()), 0)
}

func TestGeneralBankSwap(t *testing.T) {
	sh, _, _ := createTestCore(t)

	for i := 0; i < 8; i++ {
		sh.Context.R[i] = uint32(0x100 + i)
		sh.Context.RAlt[i] = uint32(0x200 + i)
	}
	sh.Context.R[8] = 0x999

	// RB is set after power-on. clearing it swaps the banks
	old := sh.Context.SR
	sh.Context.SR = old &^ sh4.FlagRB
	sh.Context.SRUpdated(old)

	for i := 0; i < 8; i++ {
		test.Equate(t, sh.Context.R[i], 0x200+i)
		test.Equate(t, sh.Context.RAlt[i], 0x100+i)
	}

	// the upper half of the general registers is not banked
	test.Equate(t, sh.Context.R[8], 0x999)

	// writing SR without changing RB leaves the banks alone
	old = sh.Context.SR
	sh.Context.SR = old | sh4.FlagS
	sh.Context.SRUpdated(old)
	test.Equate(t, sh.Context.R[0], 0x200)
}

func TestFloatBankSwap(t *testing.T) {
	sh, _, _ := createTestCore(t)

	for i := 0; i < 16; i++ {
		sh.Context.FR[i] = uint32(0x100 + i)
		sh.Context.FRAlt[i] = uint32(0x200 + i)
	}

	old := sh.Context.FPSCR
	sh.Context.FPSCR = old | sh4.FPSCRFR
	sh.Context.FPSCRUpdated(old)

	for i := 0; i < 16; i++ {
		test.Equate(t, sh.Context.FR[i], 0x200+i)
		test.Equate(t, sh.Context.FRAlt[i], 0x100+i)
	}

	// precision and transfer size changes do not touch the banks
	old = sh.Context.FPSCR
	sh.Context.FPSCR = old | sh4.FPSCRPR
	sh.Context.FPSCRUpdated(old)
	test.Equate(t, sh.Context.FR[0], 0x200)
}

func TestStep(t *testing.T) {
	sh, _, _ := createTestCore(t)

	c := &fakeCache{sh: sh}
	d := &fakeDebugger{}
	sh.AttachCodeCache(c)
	sh.AttachDebugger(d)

	sh.Context.PC = 0x8c010000
	sh.Step()

	test.Equate(t, len(c.removed), 1)
	test.Equate(t, c.removed[0], 0x8c010000)
	test.Equate(t, len(c.compiled), 1)
	test.Equate(t, c.compiled[0].pc, 0x8c010000)
	test.Equate(t, int(c.compiled[0].flags&sh4.CompileSingleInstr), int(sh4.CompileSingleInstr))
	test.Equate(t, sh.Context.PC, 0x8c010002)
	test.Equate(t, d.traps, 1)
}

func TestCompileFlags(t *testing.T) {
	sh, bus, _ := createTestCore(t)

	c := &fakeCache{sh: sh}
	sh.AttachCodeCache(c)

	bus.W32(0x0c010000, 0xdeadbeef)
	sh.Context.PC = 0x0c010000
	sh.Context.FPSCR |= sh4.FPSCRPR | sh4.FPSCRSZ

	sh.CompileCurrentPC()

	test.Equate(t, len(c.compiled), 1)
	test.Equate(t, int(c.compiled[0].flags&sh4.CompileDoublePR), int(sh4.CompileDoublePR))
	test.Equate(t, int(c.compiled[0].flags&sh4.CompileDoubleSZ), int(sh4.CompileDoubleSZ))
	test.Equate(t, int(c.compiled[0].flags&sh4.CompileSingleInstr), 0)

	// code in RAM compiles from its backing bytes
	if c.compiled[0].host == nil {
		t.Errorf("expected backing bytes for code in RAM")
	}
	test.Equate(t, c.compiled[0].host[0], 0xef)

	// code in an MMIO area has no backing bytes
	sh.Context.PC = 0xff000000
	sh.CompileCurrentPC()
	if c.compiled[1].host != nil {
		t.Errorf("expected no backing bytes for code in an MMIO area")
	}
}
