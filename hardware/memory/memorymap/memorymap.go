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

// Package memorymap is the canonical description of the Dreamcast address
// space as seen by the SH-4. The constants here are used by the memory
// package when wiring regions and mirrors, and by anything else that needs
// to name an address, rather than having magic numbers scattered throughout
// the emulation.
//
// The 29-bit external address space is divided into eight 64MB areas. Area 7
// is reserved for the SH-4's own control registers. Main RAM lives in area 3
// and appears there four times.
//
// The upper three bits of the 32-bit virtual address select a privileged or
// user window onto the external space: P0 (four aliases), P1, P2, P3 and P4.
// The store queue and on-chip register regions are carved out of the P4
// window.
package memorymap

// The origin of each of the eight external areas. Areas 2 and 4 are not
// mapped by this emulation, matching the behaviour of the real machine's
// boot sequence. Each area is SizeArea bytes.
const (
	OriginArea0 = uint32(0x00000000) // boot rom, flash, system devices
	OriginArea1 = uint32(0x04000000) // video ram
	OriginArea2 = uint32(0x08000000) // unused
	OriginArea3 = uint32(0x0c000000) // main ram
	OriginArea4 = uint32(0x10000000) // tile accelerator
	OriginArea5 = uint32(0x14000000) // expansion
	OriginArea6 = uint32(0x18000000) // expansion
	OriginArea7 = uint32(0x1c000000) // sh4 control registers

	SizeArea = uint32(0x04000000)
)

// Main RAM is 16MB, mirrored four times across area 3.
const (
	OriginRAM     = OriginArea3
	SizeRAM       = uint32(0x01000000)
	NumRAMMirrors = 4
)

// The virtual windows onto the external address space. P0 occupies the lower
// half of the virtual space and so appears four times. Each window is
// SizeWindow bytes.
const (
	OriginP0_1 = uint32(0x00000000)
	OriginP0_2 = uint32(0x20000000)
	OriginP0_3 = uint32(0x40000000)
	OriginP0_4 = uint32(0x60000000)
	OriginP1   = uint32(0x80000000)
	OriginP2   = uint32(0xa0000000)
	OriginP3   = uint32(0xc0000000)
	OriginP4   = uint32(0xe0000000)

	SizeWindow = uint32(0x20000000)
)

// The SH-4 on-chip register region. The region nominally lives at the top of
// the P4 window (0xff000000) but the same registers are visible through the
// area 7 image in every other window. Accesses are dispatched through the
// register fabric in the sh4 package.
const (
	OriginReg = uint32(0x1f000000)
	SizeReg   = uint32(0x01000000)
)

// The store queue region of the P4 window.
const (
	OriginSQ = uint32(0xe0000000)
	SizeSQ   = uint32(0x04000000)
	MemtopSQ = uint32(0xe3ffffff)
)

// The operand cache in RAM mode. Addressing within the region is decoded by
// the sh4 package according to the CCR index mode.
const (
	OriginCache = uint32(0x7c000000)
	SizeCache   = uint32(0x04000000)
)

// MaskPhysical reduces a virtual address to its 29-bit external form.
// Because every window is wired as a mirror by the memory package, the bus
// itself never needs this mask, but it is useful when comparing addresses
// that may have arrived through different windows:
//
//	memorymap.MaskPhysical & addr
const MaskPhysical = uint32(0x1fffffff)
