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
	"github.com/jetsetilly/katana/logger"
)

// register is one slot in the on-chip register file. the read delegate, when
// present, supersedes the stored value. the write delegate runs after the
// stored value has been replaced and receives the superseded value.
type register struct {
	name  string
	flags sh4reg.Flags
	value uint32
	read  func(r *register) uint32
	write func(r *register, old uint32)
}

// buildRegisterFile prepares the register table from the full list of
// declarations and attaches the delegates that give individual registers
// their behaviour.
func (sh *SH4) buildRegisterFile() {
	for i := range sh.regs {
		sh.regs[i] = register{}
	}

	for _, d := range sh4reg.Declarations {
		r := &sh.regs[d.Offset]
		r.name = d.Name
		r.flags = d.Flags
		r.value = d.Init
	}

	sh.regs[sh4reg.MMUCR].write = sh.writeMMUCR
	sh.regs[sh4reg.CCR].write = sh.writeCCR
	sh.regs[sh4reg.PDTRA].read = sh.readPDTRA

	sh.regs[sh4reg.IPRA].write = sh.writeIPR
	sh.regs[sh4reg.IPRB].write = sh.writeIPR
	sh.regs[sh4reg.IPRC].write = sh.writeIPR

	sh.regs[sh4reg.CHCR0].write = sh.writeCHCR
	sh.regs[sh4reg.CHCR1].write = sh.writeCHCR
	sh.regs[sh4reg.CHCR2].write = sh.writeCHCR
	sh.regs[sh4reg.CHCR3].write = sh.writeCHCR
	sh.regs[sh4reg.DMAOR].write = sh.writeDMAOR

	sh.regs[sh4reg.TSTR].write = sh.writeTSTR
	for n := 0; n < numTimers; n++ {
		timer := n
		sh.regs[tmuTCR[n]].write = func(r *register, old uint32) {
			sh.writeTCR(timer, r, old)
		}
		sh.regs[tmuTCNT[n]].write = func(r *register, old uint32) {
			sh.writeTCNT(timer, r, old)
		}
		sh.regs[tmuTCNT[n]].read = func(r *register) uint32 {
			return sh.timerCount(timer)
		}
	}
}

// resetRegisterFile returns every register to its declared initial value.
// registers declared as held keep whatever value they have, matching the
// on-chip registers that are unaffected by a manual reset.
func (sh *SH4) resetRegisterFile() {
	for _, d := range sh4reg.Declarations {
		if d.Held {
			continue
		}
		sh.regs[d.Offset].value = d.Init
	}
}

// readRegister is the access path shared by all read widths.
func (sh *SH4) readRegister(addr uint32) uint32 {
	r := &sh.regs[sh4reg.OffsetOf(addr)]
	if r.flags&sh4reg.R != sh4reg.R {
		if r.name == "" {
			logger.Log("sh4", fmt.Sprintf("read of unknown register %#08x", addr))
		} else {
			logger.Log("sh4", fmt.Sprintf("read of write-only register %s", r.name))
		}
		return 0
	}
	if r.read != nil {
		return r.read(r)
	}
	return r.value
}

// writeRegister is the access path shared by all write widths. narrow writes
// replace the whole register with the zero-extended data.
func (sh *SH4) writeRegister(addr uint32, data uint32) {
	r := &sh.regs[sh4reg.OffsetOf(addr)]
	if r.flags&sh4reg.W != sh4reg.W {
		if r.name == "" {
			logger.Log("sh4", fmt.Sprintf("write of unknown register %#08x (%#08x)", addr, data))
		} else {
			logger.Log("sh4", fmt.Sprintf("write of read-only register %s (%#08x)", r.name, data))
		}
		return
	}
	old := r.value
	r.value = data
	if r.write != nil {
		r.write(r, old)
	}
}

func (sh *SH4) regRead8(addr uint32) uint8 {
	return uint8(sh.readRegister(addr))
}

func (sh *SH4) regRead16(addr uint32) uint16 {
	return uint16(sh.readRegister(addr))
}

func (sh *SH4) regRead32(addr uint32) uint32 {
	return sh.readRegister(addr)
}

func (sh *SH4) regWrite8(addr uint32, data uint8) {
	sh.writeRegister(addr, uint32(data))
}

func (sh *SH4) regWrite16(addr uint32, data uint16) {
	sh.writeRegister(addr, uint32(data))
}

func (sh *SH4) regWrite32(addr uint32, data uint32) {
	sh.writeRegister(addr, data)
}

// writeMMUCR rejects any attempt to enable the MMU. address translation is
// not part of this core.
func (sh *SH4) writeMMUCR(r *register, _ uint32) {
	if r.value != 0 {
		panic(fmt.Sprintf("sh4: MMU is not supported (MMUCR=%#08x)", r.value))
	}
}

// writeCCR reacts to instruction cache invalidation. the stored value also
// governs operand cache RAM mode, tested on every cache RAM access.
func (sh *SH4) writeCCR(r *register, _ uint32) {
	if r.value&ccrICI == ccrICI {
		sh.cache.UnlinkBlocks()
	}
}

// readPDTRA answers the port A handshake performed by the boot ROM. the
// sequence of PCTRA/PDTRA writes expects to read back specific levels on the
// low port bits before it will continue.
func (sh *SH4) readPDTRA(r *register) uint32 {
	pctra := sh.regs[sh4reg.PCTRA].value
	pdtra := r.value & 0xf

	switch pctra & 0xf {
	case 0x8:
		return 3
	case 0xb:
		if pdtra != 2 {
			return 3
		}
	case 0xc:
		if pdtra == 2 {
			return 3
		}
	}

	return 0
}
