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
	"encoding/binary"
	"fmt"

	"github.com/jetsetilly/katana/hardware/memory/memorymap"
	"github.com/jetsetilly/katana/hardware/sh4/sh4reg"
)

// CCR fields
const (
	ccrORA = uint32(0x020)
	ccrOIX = uint32(0x080)
	ccrICI = uint32(0x800)
)

// cacheRAMSize is half of the 16KB operand cache, the half that can be
// mapped as scratch RAM when CCR.ORA is set.
const cacheRAMSize = 0x2000

// sqSelect picks the store queue and the word within it from an address in
// the store queue area.
func sqSelect(addr uint32) (int, int) {
	return int((addr >> 5) & 1), int((addr >> 2) & 7)
}

// narrow accesses to a store queue operate on the low bits of the stored
// 32bit word. writes zero-extend.

func (sh *SH4) sqRead8(addr uint32) uint8 {
	sqi, idx := sqSelect(addr)
	return uint8(sh.Context.SQ[sqi][idx])
}

func (sh *SH4) sqRead16(addr uint32) uint16 {
	sqi, idx := sqSelect(addr)
	return uint16(sh.Context.SQ[sqi][idx])
}

func (sh *SH4) sqRead32(addr uint32) uint32 {
	sqi, idx := sqSelect(addr)
	return sh.Context.SQ[sqi][idx]
}

func (sh *SH4) sqWrite8(addr uint32, data uint8) {
	sqi, idx := sqSelect(addr)
	sh.Context.SQ[sqi][idx] = uint32(data)
}

func (sh *SH4) sqWrite16(addr uint32, data uint16) {
	sqi, idx := sqSelect(addr)
	sh.Context.SQ[sqi][idx] = uint32(data)
}

func (sh *SH4) sqWrite32(addr uint32, data uint32) {
	sqi, idx := sqSelect(addr)
	sh.Context.SQ[sqi][idx] = data
}

// prefetch implements the PREF instruction for addresses in the store queue
// area, bursting the selected queue to memory. the top bits of the
// destination come from the queue's QACR register. prefetches outside the
// store queue area are cache hints and do nothing here.
func (sh *SH4) prefetch(addr uint32) {
	if addr < memorymap.OriginSQ || addr > memorymap.MemtopSQ {
		return
	}

	sqi, _ := sqSelect(addr)
	qacr := sh.regs[sh4reg.QACR0].value
	if sqi == 1 {
		qacr = sh.regs[sh4reg.QACR1].value
	}

	dest := (addr & 0x03ffffe0) | ((qacr & 0x1c) << 24)
	for i := 0; i < 8; i++ {
		sh.bus.W32(dest+uint32(i*4), sh.Context.SQ[sqi][i])
	}
}

// cacheRAMOffset maps an address in the cache RAM area to an offset into
// the backing array. the index bit comes from a different part of the
// address depending on CCR.OIX. the area is only addressable while the
// cache is in RAM mode.
func (sh *SH4) cacheRAMOffset(addr uint32) uint32 {
	ccr := sh.regs[sh4reg.CCR].value
	if ccr&ccrORA != ccrORA {
		panic(fmt.Sprintf("sh4: cache RAM access at %#08x with ORA disabled", addr))
	}

	if ccr&ccrOIX == ccrOIX {
		return ((addr & 0x02000000) >> 13) | (addr & 0xfff)
	}
	return ((addr & 0x2000) >> 1) | (addr & 0xfff)
}

func (sh *SH4) cacheRead8(addr uint32) uint8 {
	return sh.cacheRAM[sh.cacheRAMOffset(addr)]
}

func (sh *SH4) cacheRead16(addr uint32) uint16 {
	return binary.LittleEndian.Uint16(sh.cacheRAM[sh.cacheRAMOffset(addr):])
}

func (sh *SH4) cacheRead32(addr uint32) uint32 {
	return binary.LittleEndian.Uint32(sh.cacheRAM[sh.cacheRAMOffset(addr):])
}

func (sh *SH4) cacheRead64(addr uint32) uint64 {
	return binary.LittleEndian.Uint64(sh.cacheRAM[sh.cacheRAMOffset(addr):])
}

func (sh *SH4) cacheWrite8(addr uint32, data uint8) {
	sh.cacheRAM[sh.cacheRAMOffset(addr)] = data
}

func (sh *SH4) cacheWrite16(addr uint32, data uint16) {
	binary.LittleEndian.PutUint16(sh.cacheRAM[sh.cacheRAMOffset(addr):], data)
}

func (sh *SH4) cacheWrite32(addr uint32, data uint32) {
	binary.LittleEndian.PutUint32(sh.cacheRAM[sh.cacheRAMOffset(addr):], data)
}

func (sh *SH4) cacheWrite64(addr uint32, data uint64) {
	binary.LittleEndian.PutUint64(sh.cacheRAM[sh.cacheRAMOffset(addr):], data)
}
