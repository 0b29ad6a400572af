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

	"github.com/jetsetilly/katana/test"
)

const (
	addrCCR   = 0xff00001c
	addrQACR0 = 0xff000038
	addrQACR1 = 0xff00003c
)

func TestStoreQueues(t *testing.T) {
	sh, bus, _ := createTestCore(t)

	bus.W32(0xe0000000, 0x11111111)
	bus.W32(0xe0000004, 0x22222222)
	bus.W32(0xe0000020, 0x33333333)

	test.Equate(t, bus.R32(0xe0000000), 0x11111111)
	test.Equate(t, sh.Context.SQ[0][0], 0x11111111)
	test.Equate(t, sh.Context.SQ[0][1], 0x22222222)
	test.Equate(t, sh.Context.SQ[1][0], 0x33333333)

	// the pair of queues repeats through the whole area
	bus.W32(0xe3ffffc0, 0x44444444)
	test.Equate(t, sh.Context.SQ[0][0], 0x44444444)

	// narrow accesses work on the stored word, zero extended
	bus.W8(0xe0000004, 0x55)
	test.Equate(t, bus.R32(0xe0000004), 0x55)
	test.Equate(t, bus.R16(0xe0000004), 0x55)
}

func TestPrefetchBurst(t *testing.T) {
	sh, bus, _ := createTestCore(t)

	for i := uint32(0); i < 8; i++ {
		bus.W32(0xe0000000+i*4, 0x01010101*(i+1))
	}

	// QACR0 supplies the top bits of the destination, pointed at main RAM
	bus.W32(addrQACR0, 0x0c)
	sh.Context.Prefetch(0xe0000000)

	for i := uint32(0); i < 8; i++ {
		test.Equate(t, bus.R32(0x0c000000+i*4), int(0x01010101*(i+1)))
	}

	// the second queue goes through QACR1. the low destination bits come
	// from the prefetch address
	for i := uint32(0); i < 8; i++ {
		bus.W32(0xe0000020+i*4, 0x10101010+i)
	}
	bus.W32(addrQACR1, 0x0c)
	sh.Context.Prefetch(0xe1000020)

	for i := uint32(0); i < 8; i++ {
		test.Equate(t, bus.R32(0x0d000020+i*4), int(0x10101010+i))
	}

	// a prefetch outside the store queue area is a plain cache hint
	canary := bus.R32(0x0c000000)
	sh.Context.Prefetch(0x8c001000)
	test.Equate(t, bus.R32(0x0c000000), int(canary))
}

func TestCacheRAM(t *testing.T) {
	_, bus, _ := createTestCore(t)

	bus.W32(addrCCR, 0x20) // operand cache in RAM mode

	bus.W32(0x7c000000, 0xcafef00d)
	test.Equate(t, bus.R32(0x7c000000), 0xcafef00d)

	// address bit 13 picks the second page
	bus.W32(0x7c002000, 0x12345678)
	test.Equate(t, bus.R32(0x7c002000), 0x12345678)
	test.Equate(t, bus.R32(0x7c000000), 0xcafef00d)

	// address bit 12 does not take part
	test.Equate(t, bus.R32(0x7c001000), 0xcafef00d)

	// narrow and wide views, little endian
	test.Equate(t, bus.R16(0x7c000000), 0xf00d)
	test.Equate(t, bus.R8(0x7c000003), 0xca)
	bus.W64(0x7c000100, 0x1122334455667788)
	test.Equate(t, bus.R64(0x7c000100), 0x1122334455667788)
	test.Equate(t, bus.R32(0x7c000100), 0x55667788)
}

func TestCacheRAMIndexMode(t *testing.T) {
	_, bus, _ := createTestCore(t)

	bus.W32(addrCCR, 0x20|0x80) // RAM mode with index mode set

	// in index mode the page select moves to address bit 25
	bus.W32(0x7c000000, 0xaa)
	bus.W32(0x7e000000, 0xbb)
	test.Equate(t, bus.R32(0x7c000000), 0xaa)
	test.Equate(t, bus.R32(0x7e000000), 0xbb)

	// and address bit 13 no longer takes part
	test.Equate(t, bus.R32(0x7c002000), 0xaa)
}

func TestCacheRAMRequiresRAMMode(t *testing.T) {
	_, bus, _ := createTestCore(t)

	defer test.ExpectPanic(t)
	_ = bus.R32(0x7c000000)
}

func TestInstructionCacheInvalidation(t *testing.T) {
	sh, bus, _ := createTestCore(t)

	c := &fakeCache{sh: sh}
	sh.AttachCodeCache(c)

	// writing CCR with the invalidation bit unlinks translated blocks
	bus.W32(addrCCR, 0x800|0x100)
	test.Equate(t, c.unlinked, 1)

	// a write without the bit leaves the code cache alone
	bus.W32(addrCCR, 0x100)
	test.Equate(t, c.unlinked, 1)
}
