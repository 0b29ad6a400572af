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

package memory_test

import (
	"testing"

	"github.com/jetsetilly/katana/hardware/memory"
	"github.com/jetsetilly/katana/test"
)

func TestMountAndAccess(t *testing.T) {
	bus := memory.NewBus()

	ram := bus.AllocRegion("ram", 0x20000)
	err := bus.Mount(ram, 0x20000, 0x00100000)
	test.ExpectedSuccess(t, err)

	bus.W32(0x00100000, 0x12345678)
	test.Equate(t, bus.R32(0x00100000), 0x12345678)

	// little-endian byte order
	test.Equate(t, bus.R8(0x00100000), 0x78)
	test.Equate(t, bus.R8(0x00100003), 0x12)
	test.Equate(t, bus.R16(0x00100002), 0x1234)

	// offsets that cross the page boundary within the region
	bus.W16(0x00110000, 0xbeef)
	test.Equate(t, bus.R16(0x00110000), 0xbeef)

	// 64-bit access of plain memory
	bus.W64(0x00100008, 0x0123456789abcdef)
	test.Equate(t, bus.R64(0x00100008), uint64(0x0123456789abcdef))
	test.Equate(t, bus.R32(0x0010000c), 0x01234567)
}

func TestUnmapped(t *testing.T) {
	bus := memory.NewBus()

	test.Equate(t, bus.R32(0xdeadbee0), 0)
	test.Equate(t, bus.R8(0x00000000), 0)

	// writes to unmapped memory are dropped without a crash
	bus.W32(0xdeadbee0, 0xffffffff)
	test.Equate(t, bus.R32(0xdeadbee0), 0)
}

func TestMirror(t *testing.T) {
	bus := memory.NewBus()

	ram := bus.AllocRegion("ram", 0x10000)
	err := bus.Mount(ram, 0x10000, 0x00000000)
	test.ExpectedSuccess(t, err)
	err = bus.Mirror(0x00000000, 0x10000, 0x20000000)
	test.ExpectedSuccess(t, err)

	// a write through the original window is visible through the mirror and
	// vice versa
	bus.W32(0x00000100, 0xcafe0000)
	test.Equate(t, bus.R32(0x20000100), 0xcafe0000)

	bus.W32(0x20000104, 0x0000cafe)
	test.Equate(t, bus.R32(0x00000104), 0x0000cafe)
}

func TestMountErrors(t *testing.T) {
	bus := memory.NewBus()
	ram := bus.AllocRegion("ram", 0x10000)

	// unaligned address
	test.ExpectedFailure(t, bus.Mount(ram, 0x10000, 0x00000100))

	// unaligned size
	test.ExpectedFailure(t, bus.Mount(ram, 0x100, 0x00000000))

	// size larger than the region
	test.ExpectedFailure(t, bus.Mount(ram, 0x20000, 0x00000000))

	// beyond the end of the address space
	big := bus.AllocRegion("big", 0x20000000)
	test.ExpectedFailure(t, bus.Mount(big, 0x20000000, 0xf0000000))

	test.ExpectedFailure(t, bus.Mirror(0x00000000, 0x10000, 0x00000010))
}

// mmio region that records accesses and provides only 32-bit handlers
type recordingMMIO struct {
	addrs  []uint32
	values []uint32
	store  map[uint32]uint32
}

func (m *recordingMMIO) handlers() memory.Handlers {
	m.store = make(map[uint32]uint32)
	return memory.Handlers{
		R32: func(addr uint32) uint32 {
			return m.store[addr]
		},
		W32: func(addr uint32, data uint32) {
			m.addrs = append(m.addrs, addr)
			m.values = append(m.values, data)
			m.store[addr] = data
		},
	}
}

func TestMMIODispatch(t *testing.T) {
	bus := memory.NewBus()

	mmio := &recordingMMIO{}
	reg := bus.AllocMMIORegion("device", 0x10000, mmio.handlers())
	err := bus.Mount(reg, 0x10000, 0x1f000000)
	test.ExpectedSuccess(t, err)

	// handler receives the full guest address
	bus.W32(0x1f000038, 0x00000005)
	test.Equate(t, len(mmio.addrs), 1)
	test.Equate(t, mmio.addrs[0], 0x1f000038)
	test.Equate(t, mmio.values[0], 5)
	test.Equate(t, bus.R32(0x1f000038), 5)

	// widths without a handler read as zero and drop writes
	bus.W16(0x1f000038, 0xffff)
	test.Equate(t, bus.R16(0x1f000038), 0)
	test.Equate(t, bus.R64(0x1f000038), uint64(0))

	// MMIO regions have no backing store to translate
	if bus.TranslateVirtual(0x1f000000) != nil {
		t.Errorf("expected nil translation for MMIO region")
	}
}

func TestMemcpy(t *testing.T) {
	bus := memory.NewBus()

	ram := bus.AllocRegion("ram", 0x10000)
	err := bus.Mount(ram, 0x10000, 0x00000000)
	test.ExpectedSuccess(t, err)

	for i := uint32(0); i < 32; i += 4 {
		bus.W32(i, 0xab000000|i)
	}

	// plain to plain
	bus.Memcpy(0x1000, 0x0000, 32)
	for i := uint32(0); i < 32; i += 4 {
		test.Equate(t, bus.R32(0x1000+i), 0xab000000|i)
	}

	// plain to MMIO goes through the handlers a word at a time
	mmio := &recordingMMIO{}
	dev := bus.AllocMMIORegion("device", 0x10000, mmio.handlers())
	err = bus.Mount(dev, 0x10000, 0x00100000)
	test.ExpectedSuccess(t, err)

	bus.Memcpy(0x00100000, 0x0000, 32)
	test.Equate(t, len(mmio.addrs), 8)
	test.Equate(t, mmio.addrs[0], 0x00100000)
	test.Equate(t, mmio.values[7], 0xab00001c)
}

func TestMemcpyHostForms(t *testing.T) {
	bus := memory.NewBus()

	ram := bus.AllocRegion("ram", 0x10000)
	err := bus.Mount(ram, 0x10000, 0x00000000)
	test.ExpectedSuccess(t, err)

	src := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}
	bus.MemcpyFromHost(0x2000, src, len(src))
	test.Equate(t, bus.R32(0x2000), 0x04030201)
	test.Equate(t, bus.R32(0x2004), 0x08070605)

	dst := make([]byte, 8)
	bus.MemcpyToHost(dst, 0x2000, len(dst))
	for i := range src {
		test.Equate(t, dst[i], src[i])
	}
}

func TestTranslateVirtual(t *testing.T) {
	bus := memory.NewBus()

	ram := bus.AllocRegion("ram", 0x20000)
	err := bus.Mount(ram, 0x20000, 0x00000000)
	test.ExpectedSuccess(t, err)
	err = bus.Mirror(0x00000000, 0x20000, 0x40000000)
	test.ExpectedSuccess(t, err)

	bus.W32(0x00010000, 0x00c0ffee)

	// translation reflects the written data, including through a mirror, and
	// including pages beyond the first page of the region
	h := bus.TranslateVirtual(0x40010000)
	if h == nil {
		t.Fatalf("expected non-nil translation")
	}
	test.Equate(t, h[0], 0xee)
	test.Equate(t, h[3], 0x00)

	// unmapped addresses do not translate
	if bus.TranslateVirtual(0x90000000) != nil {
		t.Errorf("expected nil translation for unmapped address")
	}
}
