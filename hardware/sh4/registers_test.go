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

func TestRegisterAccessFlags(t *testing.T) {
	_, bus, _ := createTestCore(t)

	// R64CNT is read-only. the write is dropped
	bus.W8(0xffc80000, 0x55)
	test.Equate(t, bus.R8(0xffc80000), 0)

	// SCFTDR2 is write-only. the write lands but reads return zero
	bus.W8(0xffe8000c, 0x41)
	test.Equate(t, bus.R8(0xffe8000c), 0)

	// an address with no register behind it reads zero and swallows writes
	bus.W32(0xff000060, 0x12345678)
	test.Equate(t, bus.R32(0xff000060), 0)
}

func TestRegisterAccessWidths(t *testing.T) {
	_, bus, _ := createTestCore(t)

	// a narrow write replaces the whole register, zero extended
	bus.W32(0xffd80008, 0xaabbccdd) // TCOR0
	bus.W16(0xffd80008, 0x1234)
	test.Equate(t, bus.R32(0xffd80008), 0x1234)

	bus.W8(0xffd80008, 0x56)
	test.Equate(t, bus.R32(0xffd80008), 0x56)

	// narrow reads take the low bits
	bus.W32(0xffd80008, 0xaabbccdd)
	test.Equate(t, bus.R16(0xffd80008), 0xccdd)
	test.Equate(t, bus.R8(0xffd80008), 0xdd)
}

func TestRegisterWindows(t *testing.T) {
	_, bus, _ := createTestCore(t)

	// the register file is reachable through the physical area 7 image and
	// any of the virtual windows onto it
	bus.W32(0x1fd80008, 77)
	test.Equate(t, bus.R32(0xffd80008), 77)
	test.Equate(t, bus.R32(0xbfd80008), 77)

	bus.W32(0xffd80008, 88)
	test.Equate(t, bus.R32(0x1fd80008), 88)
}

func TestMMUCR(t *testing.T) {
	_, bus, _ := createTestCore(t)

	// writing zero, as boot code does to disable translation, is fine
	bus.W32(0xff000010, 0)

	defer test.ExpectPanic(t)
	bus.W32(0xff000010, 0x101)
}

func TestPDTRAHandshake(t *testing.T) {
	_, bus, _ := createTestCore(t)

	// the port A levels the boot ROM expects to see after each of its
	// direction register settings. only the low nibbles take part
	bus.W32(0xff80002c, 0xffff0008)
	test.Equate(t, bus.R16(0xff800030), 3)

	bus.W32(0xff80002c, 0xb)
	bus.W32(0xff800030, 0x0)
	test.Equate(t, bus.R16(0xff800030), 3)
	bus.W32(0xff800030, 0x2)
	test.Equate(t, bus.R16(0xff800030), 0)

	bus.W32(0xff80002c, 0xc)
	test.Equate(t, bus.R16(0xff800030), 3)
	bus.W32(0xff800030, 0x1)
	test.Equate(t, bus.R16(0xff800030), 0)

	bus.W32(0xff80002c, 0x0)
	test.Equate(t, bus.R16(0xff800030), 0)
}
