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

package hardware

import (
	"time"

	"github.com/jetsetilly/katana/curated"
	"github.com/jetsetilly/katana/hardware/memory"
	"github.com/jetsetilly/katana/hardware/memory/memorymap"
	"github.com/jetsetilly/katana/hardware/scheduler"
	"github.com/jetsetilly/katana/hardware/sh4"
)

// Dreamcast is the root of the emulated machine.
type Dreamcast struct {
	Bus       *memory.Bus
	Scheduler *scheduler.Scheduler
	CPU       *sh4.SH4
}

// NewDreamcast is the preferred method of initialisation for the Dreamcast
// type.
func NewDreamcast() (*Dreamcast, error) {
	dc := &Dreamcast{
		Bus:       memory.NewBus(),
		Scheduler: scheduler.NewScheduler(),
	}

	var err error
	dc.CPU, err = sh4.NewSH4(dc.Bus, dc.Scheduler)
	if err != nil {
		return nil, curated.Errorf("dreamcast: %v", err)
	}

	return dc, nil
}

// Reset the machine. Memory contents are not cleared, matching what a
// manual reset does to the real machine.
func (dc *Dreamcast) Reset() {
	dc.CPU.Reset()
}

// RunForDuration advances the machine by a span of guest time. Time is
// sliced at hardware deadlines so that the CPU never runs past the point
// where a timer would have fired.
func (dc *Dreamcast) RunForDuration(d time.Duration) {
	remaining := d.Nanoseconds()
	for remaining > 0 {
		slice := remaining
		if next := dc.Scheduler.NextDeadline(); next >= 0 && next < slice {
			slice = next
		}
		if slice < 1 {
			slice = 1
		}

		dc.CPU.Run(slice)
		dc.Scheduler.Tick(slice)
		remaining -= slice
	}
}

// Load copies a program image into main RAM, offset bytes from its base.
// The returned address is the location of the image through the uncached
// window, suitable for pointing PC at.
func (dc *Dreamcast) Load(data []byte, offset uint32) (uint32, error) {
	if uint64(offset)+uint64(len(data)) > uint64(memorymap.SizeRAM) {
		return 0, curated.Errorf("dreamcast: image of %d bytes does not fit in RAM at offset %#08x", len(data), offset)
	}

	dc.Bus.MemcpyFromHost(memorymap.OriginRAM+offset, data, len(data))

	return memorymap.OriginP2 + memorymap.OriginRAM + offset, nil
}
