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

package memory

import (
	"encoding/binary"

	"github.com/jetsetilly/katana/logger"
)

const (
	pageShift = 16
	pageSize  = 1 << pageShift
	pageMask  = pageSize - 1
	numPages  = 1 << (32 - pageShift)
)

// page resolves one 64KB window of the guest address space to an installed
// region. base is the offset into the region of the first byte of the page.
type page struct {
	r    *Region
	base uint32
}

// Bus is the guest address bus. All guest memory accesses made by the
// emulation go through one of the width-specific access functions.
type Bus struct {
	pages   []page
	regions []*Region
}

// NewBus is the preferred method of initialisation for the Bus type. The bus
// starts with every page unmapped.
func NewBus() *Bus {
	return &Bus{
		pages: make([]page, numPages),
	}
}

// resolve is the common lookup for the access functions. A nil region return
// means the access has already been logged and should read as zero.
func (b *Bus) resolve(addr uint32, width int, write bool) *Region {
	p := b.pages[addr>>pageShift]
	if p.r == nil {
		if write {
			logger.Logf("memory", "%d-bit write to unmapped address %#08x", width, addr)
		} else {
			logger.Logf("memory", "%d-bit read of unmapped address %#08x", width, addr)
		}
		return nil
	}
	return p.r
}

// offset of addr in the region mounted at its page. only meaningful for
// plain regions.
func (b *Bus) offset(addr uint32) uint32 {
	p := b.pages[addr>>pageShift]
	return p.base + (addr & pageMask)
}

// R8 reads a byte from the guest address space.
func (b *Bus) R8(addr uint32) uint8 {
	r := b.resolve(addr, 8, false)
	if r == nil {
		return 0
	}
	if r.h != nil {
		if r.h.R8 == nil {
			logger.Logf("memory", "8-bit read of %s (%#08x) unsupported", r.name, addr)
			return 0
		}
		return r.h.R8(addr)
	}
	return r.data[b.offset(addr)]
}

// R16 reads a 16-bit word from the guest address space.
func (b *Bus) R16(addr uint32) uint16 {
	r := b.resolve(addr, 16, false)
	if r == nil {
		return 0
	}
	if r.h != nil {
		if r.h.R16 == nil {
			logger.Logf("memory", "16-bit read of %s (%#08x) unsupported", r.name, addr)
			return 0
		}
		return r.h.R16(addr)
	}
	return binary.LittleEndian.Uint16(r.data[b.offset(addr):])
}

// R32 reads a 32-bit word from the guest address space.
func (b *Bus) R32(addr uint32) uint32 {
	r := b.resolve(addr, 32, false)
	if r == nil {
		return 0
	}
	if r.h != nil {
		if r.h.R32 == nil {
			logger.Logf("memory", "32-bit read of %s (%#08x) unsupported", r.name, addr)
			return 0
		}
		return r.h.R32(addr)
	}
	return binary.LittleEndian.Uint32(r.data[b.offset(addr):])
}

// R64 reads a 64-bit word from the guest address space.
func (b *Bus) R64(addr uint32) uint64 {
	r := b.resolve(addr, 64, false)
	if r == nil {
		return 0
	}
	if r.h != nil {
		if r.h.R64 == nil {
			logger.Logf("memory", "64-bit read of %s (%#08x) unsupported", r.name, addr)
			return 0
		}
		return r.h.R64(addr)
	}
	return binary.LittleEndian.Uint64(r.data[b.offset(addr):])
}

// W8 writes a byte to the guest address space.
func (b *Bus) W8(addr uint32, data uint8) {
	r := b.resolve(addr, 8, true)
	if r == nil {
		return
	}
	if r.h != nil {
		if r.h.W8 == nil {
			logger.Logf("memory", "8-bit write to %s (%#08x) unsupported", r.name, addr)
			return
		}
		r.h.W8(addr, data)
		return
	}
	r.data[b.offset(addr)] = data
}

// W16 writes a 16-bit word to the guest address space.
func (b *Bus) W16(addr uint32, data uint16) {
	r := b.resolve(addr, 16, true)
	if r == nil {
		return
	}
	if r.h != nil {
		if r.h.W16 == nil {
			logger.Logf("memory", "16-bit write to %s (%#08x) unsupported", r.name, addr)
			return
		}
		r.h.W16(addr, data)
		return
	}
	binary.LittleEndian.PutUint16(r.data[b.offset(addr):], data)
}

// W32 writes a 32-bit word to the guest address space.
func (b *Bus) W32(addr uint32, data uint32) {
	r := b.resolve(addr, 32, true)
	if r == nil {
		return
	}
	if r.h != nil {
		if r.h.W32 == nil {
			logger.Logf("memory", "32-bit write to %s (%#08x) unsupported", r.name, addr)
			return
		}
		r.h.W32(addr, data)
		return
	}
	binary.LittleEndian.PutUint32(r.data[b.offset(addr):], data)
}

// W64 writes a 64-bit word to the guest address space.
func (b *Bus) W64(addr uint32, data uint64) {
	r := b.resolve(addr, 64, true)
	if r == nil {
		return
	}
	if r.h != nil {
		if r.h.W64 == nil {
			logger.Logf("memory", "64-bit write to %s (%#08x) unsupported", r.name, addr)
			return
		}
		r.h.W64(addr, data)
		return
	}
	binary.LittleEndian.PutUint64(r.data[b.offset(addr):], data)
}

// Memcpy copies n bytes between two guest addresses. When both ends of the
// copy are plain memory the copy is made directly between the backing
// stores; otherwise the copy is routed through the access functions so that
// MMIO regions see every word.
func (b *Bus) Memcpy(dst uint32, src uint32, n int) {
	d := b.TranslateVirtual(dst)
	s := b.TranslateVirtual(src)
	if d != nil && s != nil && len(d) >= n && len(s) >= n {
		copy(d[:n], s[:n])
		return
	}

	for n >= 4 {
		b.W32(dst, b.R32(src))
		dst += 4
		src += 4
		n -= 4
	}
	for n > 0 {
		b.W8(dst, b.R8(src))
		dst++
		src++
		n--
	}
}

// MemcpyToHost copies n bytes from a guest address into a host buffer.
func (b *Bus) MemcpyToHost(dst []byte, src uint32, n int) {
	s := b.TranslateVirtual(src)
	if s != nil && len(s) >= n {
		copy(dst[:n], s[:n])
		return
	}

	i := 0
	for ; n-i >= 4; i += 4 {
		binary.LittleEndian.PutUint32(dst[i:], b.R32(src+uint32(i)))
	}
	for ; i < n; i++ {
		dst[i] = b.R8(src + uint32(i))
	}
}

// MemcpyFromHost copies n bytes from a host buffer to a guest address.
func (b *Bus) MemcpyFromHost(dst uint32, src []byte, n int) {
	d := b.TranslateVirtual(dst)
	if d != nil && len(d) >= n {
		copy(d[:n], src[:n])
		return
	}

	i := 0
	for ; n-i >= 4; i += 4 {
		b.W32(dst+uint32(i), binary.LittleEndian.Uint32(src[i:]))
	}
	for ; i < n; i++ {
		b.W8(dst+uint32(i), src[i])
	}
}
