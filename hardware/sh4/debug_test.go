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

	"github.com/jetsetilly/katana/curated"
	"github.com/jetsetilly/katana/hardware/sh4"
	"github.com/jetsetilly/katana/test"
)

func TestBreakpoints(t *testing.T) {
	sh, bus, _ := createTestCore(t)

	c := &fakeCache{sh: sh}
	sh.AttachCodeCache(c)

	bus.W16(0x8c010000, 0x1234)

	// planting the breakpoint displaces the instruction word and discards
	// any block compiled for the address
	err := sh.AddBreakpoint(0x8c010000)
	if !test.ExpectedSuccess(t, err) {
		return
	}
	test.Equate(t, bus.R16(0x8c010000), 0)
	test.Equate(t, len(c.removed), 1)
	test.Equate(t, c.removed[0], 0x8c010000)

	err = sh.AddBreakpoint(0x8c010000)
	test.ExpectedFailure(t, err)
	if !curated.Is(err, sh4.BreakpointExists) {
		t.Errorf("unexpected error: %v", err)
	}

	bps := sh.Breakpoints()
	test.Equate(t, len(bps), 1)
	test.Equate(t, bps[0], 0x8c010000)

	// removal restores the word
	err = sh.RemoveBreakpoint(0x8c010000)
	if !test.ExpectedSuccess(t, err) {
		return
	}
	test.Equate(t, bus.R16(0x8c010000), 0x1234)
	test.Equate(t, len(sh.Breakpoints()), 0)

	err = sh.RemoveBreakpoint(0x8c010000)
	test.ExpectedFailure(t, err)
	if !curated.Is(err, sh4.BreakpointMissing) {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestBreakpointOrdering(t *testing.T) {
	sh, _, _ := createTestCore(t)

	_ = sh.AddBreakpoint(0x8c010010)
	_ = sh.AddBreakpoint(0x8c010000)
	_ = sh.AddBreakpoint(0x8c010020)

	bps := sh.Breakpoints()
	test.Equate(t, len(bps), 3)
	test.Equate(t, bps[0], 0x8c010000)
	test.Equate(t, bps[1], 0x8c010010)
	test.Equate(t, bps[2], 0x8c010020)
}

func TestBreakpointTrap(t *testing.T) {
	sh, _, _ := createTestCore(t)

	d := &fakeDebugger{}
	sh.AttachDebugger(d)

	_ = sh.AddBreakpoint(0x8c010000)

	// the invalid-instruction callback recognises the breakpoint, ends the
	// run slice and traps
	sh.Context.NumCycles = 1000
	sh.Context.InvalidInstruction(0x8c010000)
	test.Equate(t, sh.Context.NumCycles, int64(0))
	test.Equate(t, d.traps, 1)
}

func TestInvalidInstructionWithoutBreakpoint(t *testing.T) {
	sh, _, _ := createTestCore(t)

	defer test.ExpectPanic(t)
	sh.Context.InvalidInstruction(0x8c010000)
}

func TestDebugRegisters(t *testing.T) {
	sh, _, _ := createTestCore(t)

	sh.Context.R[0] = 0x100
	sh.Context.R[15] = 0x10f
	sh.Context.RAlt[0] = 0x200
	sh.Context.PC = 0x8c010000
	sh.Context.PR = 0x8c010004
	sh.Context.FR[2] = 0x3f800000
	sh.Context.SSR = 0x700000f0
	sh.Context.SPC = 0x8c010008

	for n, want := range map[int]uint32{
		0:  0x100,
		15: 0x10f,
		16: 0x8c010000,
		17: 0x8c010004,
		22: sh.Context.SR,
		27: 0x3f800000,
		41: 0x700000f0,
		42: 0x8c010008,
	} {
		v, size := sh.DebugRegister(n)
		test.Equate(t, v, int(want))
		test.Equate(t, size, 4)
	}

	// every register in the file has a name and a width
	for n := 0; n < sh4.NumDebugRegisters; n++ {
		if sh4.DebugRegisterName(n) == "" {
			t.Errorf("debug register %d has no name", n)
		}
		_, size := sh.DebugRegister(n)
		test.Equate(t, size, 4)
	}

	test.Equate(t, sh4.DebugRegisterName(0), "r0")
	test.Equate(t, sh4.DebugRegisterName(16), "pc")
	test.Equate(t, sh4.DebugRegisterName(24), "fpscr")
	test.Equate(t, sh4.DebugRegisterName(43), "r0_bank0")
	test.Equate(t, sh4.DebugRegisterName(58), "r7_bank1")
}

func TestDebugRegisterBanks(t *testing.T) {
	sh, _, _ := createTestCore(t)

	// RB is set after power-on, so the live registers are bank 1 and the
	// alternates hold bank 0
	sh.Context.R[3] = 0xb1
	sh.Context.RAlt[3] = 0xb0

	v, _ := sh.DebugRegister(43 + 3) // r3_bank0
	test.Equate(t, v, 0xb0)
	v, _ = sh.DebugRegister(51 + 3) // r3_bank1
	test.Equate(t, v, 0xb1)

	// clearing RB swaps the banks under the debug view. the numbered
	// registers keep their meaning
	old := sh.Context.SR
	sh.Context.SR = old &^ sh4.FlagRB
	sh.Context.SRUpdated(old)

	v, _ = sh.DebugRegister(43 + 3)
	test.Equate(t, v, 0xb0)
	v, _ = sh.DebugRegister(51 + 3)
	test.Equate(t, v, 0xb1)
}
