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
	"github.com/jetsetilly/katana/hardware/memory"
	"github.com/jetsetilly/katana/hardware/memory/memorymap"
)

// installMemoryMap builds the SH4 view of the address space. the physical
// external areas and the on-chip register image are mounted first, then the
// virtual windows are created by mirroring the whole physical range. the
// store queue and cache RAM areas are mounted last, on top of the windows
// they puncture.
func (sh *SH4) installMemoryMap() error {
	b := sh.bus

	// physical external areas. area 3 is the main RAM, a quarter of the
	// area's range, mirrored across the rest of it. areas 2 and 4 are not
	// populated in the Dreamcast
	for _, m := range []struct {
		name string
		addr uint32
	}{
		{"area0", memorymap.OriginArea0},
		{"area1", memorymap.OriginArea1},
		{"area5", memorymap.OriginArea5},
		{"area6", memorymap.OriginArea6},
		{"area7", memorymap.OriginArea7},
	} {
		r := b.AllocRegion(m.name, memorymap.SizeArea)
		if err := b.Mount(r, memorymap.SizeArea, m.addr); err != nil {
			return err
		}
	}

	ram := b.AllocRegion("main ram", memorymap.SizeRAM)
	if err := b.Mount(ram, memorymap.SizeRAM, memorymap.OriginRAM); err != nil {
		return err
	}
	for i := uint32(1); i < memorymap.NumRAMMirrors; i++ {
		if err := b.Mirror(memorymap.OriginRAM, memorymap.SizeRAM, memorymap.OriginRAM+i*memorymap.SizeRAM); err != nil {
			return err
		}
	}

	// the on-chip register image replaces the top of area 7
	regs := b.AllocMMIORegion("sh4 reg", memorymap.SizeReg, memory.Handlers{
		R8:  sh.regRead8,
		R16: sh.regRead16,
		R32: sh.regRead32,
		W8:  sh.regWrite8,
		W16: sh.regWrite16,
		W32: sh.regWrite32,
	})
	if err := b.Mount(regs, memorymap.SizeReg, memorymap.OriginReg); err != nil {
		return err
	}

	// virtual windows onto the physical range. P0 is large enough to hold
	// four images of it
	for _, origin := range []uint32{
		memorymap.OriginP0_2,
		memorymap.OriginP0_3,
		memorymap.OriginP0_4,
		memorymap.OriginP1,
		memorymap.OriginP2,
		memorymap.OriginP3,
		memorymap.OriginP4,
	} {
		if err := b.Mirror(memorymap.OriginP0_1, memorymap.SizeWindow, origin); err != nil {
			return err
		}
	}

	sq := b.AllocMMIORegion("sh4 sq", memorymap.SizeSQ, memory.Handlers{
		R8:  sh.sqRead8,
		R16: sh.sqRead16,
		R32: sh.sqRead32,
		W8:  sh.sqWrite8,
		W16: sh.sqWrite16,
		W32: sh.sqWrite32,
	})
	if err := b.Mount(sq, memorymap.SizeSQ, memorymap.OriginSQ); err != nil {
		return err
	}

	cache := b.AllocMMIORegion("sh4 cache", memorymap.SizeCache, memory.Handlers{
		R8:  sh.cacheRead8,
		R16: sh.cacheRead16,
		R32: sh.cacheRead32,
		R64: sh.cacheRead64,
		W8:  sh.cacheWrite8,
		W16: sh.cacheWrite16,
		W32: sh.cacheWrite32,
		W64: sh.cacheWrite64,
	})
	if err := b.Mount(cache, memorymap.SizeCache, memorymap.OriginCache); err != nil {
		return err
	}

	return nil
}
