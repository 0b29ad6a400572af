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

	"github.com/jetsetilly/katana/hardware/sh4"
	"github.com/jetsetilly/katana/test"
)

// timer channel 0 register addresses
const (
	addrTSTR  = 0xffd80004
	addrTCOR0 = 0xffd80008
	addrTCNT0 = 0xffd8000c
	addrTCR0  = 0xffd80010
	addrTCNT1 = 0xffd80018
	addrTCR1  = 0xffd8001c
)

// with the clock select at zero a timer channel counts at the peripheral
// clock over four, or 12.5MHz. one hundred ticks is 8000ns.

func TestTimerUnderflow(t *testing.T) {
	sh, bus, sched := createTestCore(t)

	bus.W32(addrTCOR0, 100)
	bus.W32(addrTCNT0, 100)
	bus.W32(addrTCR0, 0x20) // underflow interrupt enabled
	bus.W32(addrTSTR, 0x1)

	// halfway there
	sched.Tick(4000)
	test.Equate(t, bus.R32(addrTCNT0), 50)
	test.Equate(t, bus.R32(addrTCR0)&0x100, 0)

	// underflow. the flag is raised, the interrupt requested and the
	// channel reloads from its constant register
	sched.Tick(4000)
	test.Equate(t, bus.R32(addrTCR0)&0x100, 0x100)
	test.Equate(t, bus.R32(addrTCNT0), 100)

	reqs := sh.RequestedInterrupts()
	test.Equate(t, len(reqs), 1)
	test.Equate(t, int(reqs[0]), int(sh4.IntTUNI0))

	// writing the flag away withdraws the request
	bus.W32(addrTCR0, 0x20)
	test.Equate(t, len(sh.RequestedInterrupts()), 0)
}

func TestTimerInterruptDisabled(t *testing.T) {
	sh, bus, sched := createTestCore(t)

	bus.W32(addrTCOR0, 10)
	bus.W32(addrTCNT0, 10)
	bus.W32(addrTCR0, 0x0)
	bus.W32(addrTSTR, 0x1)

	sched.Tick(800)
	test.Equate(t, bus.R32(addrTCR0)&0x100, 0x100)
	test.Equate(t, len(sh.RequestedInterrupts()), 0)
}

func TestTimerStop(t *testing.T) {
	sh, bus, sched := createTestCore(t)

	bus.W32(addrTCOR0, 100)
	bus.W32(addrTCNT0, 100)
	bus.W32(addrTCR0, 0x20)
	bus.W32(addrTSTR, 0x1)

	sched.Tick(4000)
	bus.W32(addrTSTR, 0x0)

	// the deadline is gone. nothing fires however long we wait
	sched.Tick(1000000)
	test.Equate(t, bus.R32(addrTCR0)&0x100, 0)
	test.Equate(t, len(sh.RequestedInterrupts()), 0)
}

func TestTimerCountWrite(t *testing.T) {
	_, bus, sched := createTestCore(t)

	bus.W32(addrTCOR0, 100)
	bus.W32(addrTCNT0, 100)
	bus.W32(addrTCR0, 0x0)
	bus.W32(addrTSTR, 0x1)

	sched.Tick(2000)
	test.Equate(t, bus.R32(addrTCNT0), 75)

	// a write to the count while running moves the deadline
	bus.W32(addrTCNT0, 200)
	sched.Tick(8000)
	test.Equate(t, bus.R32(addrTCNT0), 100)
}

func TestTimerClockSelect(t *testing.T) {
	_, bus, sched := createTestCore(t)

	// divider of 16, or 3.125MHz
	bus.W32(addrTCOR0, 100)
	bus.W32(addrTCNT0, 100)
	bus.W32(addrTCR0, 0x1)
	bus.W32(addrTSTR, 0x1)

	sched.Tick(16000)
	test.Equate(t, bus.R32(addrTCNT0), 50)

	// switching the divider keeps the projected count and changes the rate
	bus.W32(addrTCR0, 0x0)
	sched.Tick(2000)
	test.Equate(t, bus.R32(addrTCNT0), 25)

	sched.Tick(2000)
	test.Equate(t, bus.R32(addrTCR0)&0x100, 0x100)
}

func TestTimerReservedClockSelect(t *testing.T) {
	_, bus, sched := createTestCore(t)

	// the reserved selects count at the undivided peripheral clock
	bus.W32(addrTCOR0, 100)
	bus.W32(addrTCNT0, 100)
	bus.W32(addrTCR0, 0x5)
	bus.W32(addrTSTR, 0x1)

	sched.Tick(1000)
	test.Equate(t, bus.R32(addrTCNT0), 50)
}

func TestTimerChannelsIndependent(t *testing.T) {
	sh, bus, sched := createTestCore(t)

	bus.W32(addrTCOR0, 100)
	bus.W32(addrTCNT0, 100)
	bus.W32(addrTCR0, 0x20)

	bus.W32(0xffd80014, 50) // TCOR1
	bus.W32(addrTCNT1, 50)
	bus.W32(addrTCR1, 0x20)

	bus.W32(addrTSTR, 0x3)

	// channel 1 underflows first
	sched.Tick(4000)
	test.Equate(t, bus.R32(addrTCR1)&0x100, 0x100)
	test.Equate(t, bus.R32(addrTCR0)&0x100, 0)

	reqs := sh.RequestedInterrupts()
	test.Equate(t, len(reqs), 1)
	test.Equate(t, int(reqs[0]), int(sh4.IntTUNI1))

	// stopping channel 1 leaves channel 0 running
	bus.W32(addrTSTR, 0x1)
	sched.Tick(4000)
	test.Equate(t, bus.R32(addrTCR0)&0x100, 0x100)
}
