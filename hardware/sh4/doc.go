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

// Package sh4 emulates the SH7750 processor at the heart of the Dreamcast.
//
// The package does not interpret SH4 instructions. Instruction execution
// belongs to a translation backend attached through the CodeCache
// interface, which turns spans of guest code into Block values that run
// against the exported Context. What the package does provide is everything
// such a backend needs to be a processor:
//
// The execution driver. Run() converts a slice of guest time into a cycle
// budget and executes blocks until the budget is spent, delivering pending
// interrupts at block boundaries. Step() runs a single instruction and
// traps to the attached debugger.
//
// The memory map. On creation the core populates a memory.Bus with the
// external areas of the physical space, the main RAM and its mirrors, the
// virtual windows that alias all of it, and the MMIO regions for the
// on-chip registers, the store queues and the operand cache in RAM mode.
//
// The on-chip peripherals. The interrupt controller, the timer unit and the
// on-demand mode of the DMA controller are modelled fully. The remaining
// peripheral registers accept reads and writes so that boot code runs, with
// anything surprising noted in the log.
//
// Debugging support. Breakpoints are planted by patching the instruction
// word at an address with an illegal encoding, and a flat register file
// suitable for remote debugging frontends is exposed through
// DebugRegister().
package sh4
