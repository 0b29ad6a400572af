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
	"fmt"

	"github.com/jetsetilly/katana/hardware/sh4/sh4reg"
)

// the DMA controller is only modelled in its on-demand data transfer mode,
// where an external device supplies the transfer parameters and the transfer
// completes instantly. the holly chipset in the Dreamcast drives all of its
// DMA this way.

// CHCR fields
const (
	chcrDE = uint32(0x1)
	chcrTE = uint32(0x2)
	chcrIE = uint32(0x4)
)

// DMAOR fields
const (
	dmaorDME = uint32(0x0001)
	dmaorDDT = uint32(0x8000)
)

const numDMAChannels = 4

var dmaSAR = [numDMAChannels]uint32{sh4reg.SAR0, sh4reg.SAR1, sh4reg.SAR2, sh4reg.SAR3}
var dmaDAR = [numDMAChannels]uint32{sh4reg.DAR0, sh4reg.DAR1, sh4reg.DAR2, sh4reg.DAR3}
var dmaDMATCR = [numDMAChannels]uint32{sh4reg.DMATCR0, sh4reg.DMATCR1, sh4reg.DMATCR2, sh4reg.DMATCR3}
var dmaCHCR = [numDMAChannels]uint32{sh4reg.CHCR0, sh4reg.CHCR1, sh4reg.CHCR2, sh4reg.CHCR3}

var dmaInterrupt = [numDMAChannels]Interrupt{IntDMTE0, IntDMTE1, IntDMTE2, IntDMTE3}

// DTR is an on-demand transfer request made by an external device.
//
// With Data set the transfer is single-address. the device supplies or
// receives the data itself and only the guest Addr takes part, with Write
// giving the direction relative to guest memory.
//
// With Data unset the transfer is dual-address between Addr and the
// channel's programmed address, for the channel's programmed length.
type DTR struct {
	Channel int
	Write   bool
	Addr    uint32
	Data    []byte
	Size    int
}

// DDT performs an on-demand data transfer.
func (sh *SH4) DDT(dtr DTR) {
	if dtr.Data != nil {
		if dtr.Write {
			sh.bus.MemcpyFromHost(dtr.Addr, dtr.Data, dtr.Size)
		} else {
			sh.bus.MemcpyToHost(dtr.Data, dtr.Addr, dtr.Size)
		}
		return
	}

	if dtr.Channel < 0 || dtr.Channel >= numDMAChannels {
		panic(fmt.Sprintf("sh4: dma transfer on unknown channel %d", dtr.Channel))
	}

	sar := &sh.regs[dmaSAR[dtr.Channel]]
	dar := &sh.regs[dmaDAR[dtr.Channel]]
	tcr := &sh.regs[dmaDMATCR[dtr.Channel]]
	chcr := &sh.regs[dmaCHCR[dtr.Channel]]

	var src, dst uint32
	if dtr.Write {
		src = dtr.Addr
		dst = dar.value
	} else {
		src = sar.value
		dst = dtr.Addr
	}

	// transfers are counted in 32 byte units
	size := tcr.value * 32
	sh.bus.Memcpy(dst, src, int(size))

	sar.value += size
	dar.value += size
	tcr.value = 0
	chcr.value |= chcrTE

	if chcr.value&chcrIE == chcrIE {
		sh.RequestInterrupt(dmaInterrupt[dtr.Channel])
	}
}

// validateDMA asserts that the guest has not programmed a transfer that
// would need the full controller. a channel may only be enabled when the
// controller is in on-demand mode or disabled outright.
func (sh *SH4) validateDMA() {
	dmaor := sh.regs[sh4reg.DMAOR].value
	for n := 0; n < numDMAChannels; n++ {
		chcr := sh.regs[dmaCHCR[n]].value
		if dmaor&dmaorDDT == dmaorDDT || dmaor&dmaorDME != dmaorDME || chcr&chcrDE != chcrDE {
			continue
		}
		panic(fmt.Sprintf("sh4: dma channel %d enabled outside on-demand mode (DMAOR=%#08x CHCR=%#08x)", n, dmaor, chcr))
	}
}

func (sh *SH4) writeCHCR(_ *register, _ uint32) {
	sh.validateDMA()
}

func (sh *SH4) writeDMAOR(_ *register, _ uint32) {
	sh.validateDMA()
}
