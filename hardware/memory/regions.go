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
	"github.com/jetsetilly/katana/curated"
)

// Handlers gathers the access functions for an MMIO region. Handlers receive
// the full guest address of the access, not an offset into the region. A nil
// handler means the region does not support that access width.
type Handlers struct {
	R8  func(addr uint32) uint8
	R16 func(addr uint32) uint16
	R32 func(addr uint32) uint32
	R64 func(addr uint32) uint64
	W8  func(addr uint32, data uint8)
	W16 func(addr uint32, data uint16)
	W32 func(addr uint32, data uint32)
	W64 func(addr uint32, data uint64)
}

// Region is an opaque handle to an allocated area of the guest address
// space. Regions are created with the Bus Alloc functions and installed with
// Mount().
type Region struct {
	name string
	size uint32

	// data is the backing store for a plain region. nil for MMIO regions.
	data []byte

	// handlers for an MMIO region. nil for plain regions.
	h *Handlers
}

// Name of the region as it was allocated.
func (r *Region) Name() string {
	return r.name
}

// AllocRegion allocates a plain region backed by host memory. The region is
// not visible on the bus until it has been mounted.
func (b *Bus) AllocRegion(name string, size uint32) *Region {
	r := &Region{
		name: name,
		size: size,
		data: make([]byte, size),
	}
	b.regions = append(b.regions, r)
	return r
}

// AllocMMIORegion allocates a region whose accesses dispatch to the supplied
// handlers. The region is not visible on the bus until it has been mounted.
func (b *Bus) AllocMMIORegion(name string, size uint32, h Handlers) *Region {
	r := &Region{
		name: name,
		size: size,
		h:    &h,
	}
	b.regions = append(b.regions, r)
	return r
}

// Mount installs the first size bytes of a region at the specified guest
// address. Pages already occupied are replaced. Address and size must fall
// on page boundaries.
func (b *Bus) Mount(r *Region, size uint32, addr uint32) error {
	if addr&pageMask != 0 {
		return curated.Errorf("memory: mount of %s: address %#08x not page aligned", r.name, addr)
	}
	if size&pageMask != 0 || size == 0 {
		return curated.Errorf("memory: mount of %s: size %#08x not page aligned", r.name, size)
	}
	if size > r.size {
		return curated.Errorf("memory: mount of %s: size %#08x larger than region", r.name, size)
	}

	start := int(addr >> pageShift)
	count := int(size >> pageShift)
	if start+count > numPages {
		return curated.Errorf("memory: mount of %s: extends beyond address space", r.name)
	}

	for i := 0; i < count; i++ {
		b.pages[start+i] = page{r: r, base: uint32(i) << pageShift}
	}

	return nil
}

// Mirror aliases the window of pages beginning at lo so that the same pages
// appear again at the specified address. Backing storage and handlers are
// shared with the original. Pages already occupied at the destination are
// replaced. Mirroring an unmapped page produces an unmapped page.
func (b *Bus) Mirror(lo uint32, size uint32, addr uint32) error {
	if lo&pageMask != 0 || addr&pageMask != 0 {
		return curated.Errorf("memory: mirror: address not page aligned")
	}
	if size&pageMask != 0 || size == 0 {
		return curated.Errorf("memory: mirror: size %#08x not page aligned", size)
	}

	src := int(lo >> pageShift)
	dst := int(addr >> pageShift)
	count := int(size >> pageShift)
	if src+count > numPages || dst+count > numPages {
		return curated.Errorf("memory: mirror: extends beyond address space")
	}

	for i := 0; i < count; i++ {
		b.pages[dst+i] = b.pages[src+i]
	}

	return nil
}

// TranslateVirtual returns the backing bytes for the guest address, from the
// addressed byte to the end of the region. MMIO regions and unmapped
// addresses return nil.
func (b *Bus) TranslateVirtual(addr uint32) []byte {
	p := b.pages[addr>>pageShift]
	if p.r == nil || p.r.data == nil {
		return nil
	}
	return p.r.data[p.base+(addr&pageMask):]
}
