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

// Package sh4reg declares the on-chip control registers of the SH7750 as a
// single table, from which the sh4 package builds its dense register file at
// power-on. The Declarations table is the one source of truth for a
// register's address, reset value and access flags; the named constants are
// the table indices used by the register handlers.
//
// The on-chip registers are sparse across the top of the P4 window
// (0xff000000 and up, one block of registers per peripheral module) so the
// raw address is folded into a dense table index by OffsetOf(). The folding
// uses address bits 19-23 (which select the peripheral module) and bits 2-7
// (which select the register within its block):
//
//	offset = ((addr & 0x00f80000) >> 13) | ((addr & 0xfc) >> 2)
//
// The same folding works for an access made through the area 7 image at
// 0x1f000000 because only bits below bit 24 take part. A test in this
// package asserts that every declaration agrees with OffsetOf() and that no
// two declarations collide.
package sh4reg

// Flags describes how a register may be legally accessed. A register lacking
// the R or W flag logs a warning when read or written and the access has no
// effect.
type Flags uint8

// Valid Flags values. Most registers are R|W.
const (
	R Flags = 1 << iota
	W
)

// NumRegs is the size of the dense register table. Table indices are the
// product of OffsetOf() which yields 11 significant bits.
const NumRegs = 0x800

// OffsetOf folds a guest address into an index into the register table. The
// address may be in its 0xff000000 form or its area 7 equivalent.
func OffsetOf(addr uint32) uint32 {
	return ((addr & 0x00f80000) >> 13) | ((addr & 0xfc) >> 2)
}

// Decl describes one on-chip register.
type Decl struct {
	Addr   uint32
	Offset uint32
	Name   string
	Flags  Flags

	// the value the register takes at power-on. registers marked Held are
	// not initialised by a reset and keep whatever value they already have
	Init uint32
	Held bool
}

// Table indices for every declared register, grouped by peripheral module.
const (
	// CCN (cache and TLB controller)
	PTEH   = 0x000
	PTEL   = 0x001
	TTB    = 0x002
	TEA    = 0x003
	MMUCR  = 0x004
	BASRA  = 0x005
	BASRB  = 0x006
	CCR    = 0x007
	TRA    = 0x008
	EXPEVT = 0x009
	INTEVT = 0x00a
	PTEA   = 0x00d
	QACR0  = 0x00e
	QACR1  = 0x00f

	// UBC (user break controller)
	BARA  = 0x100
	BAMRA = 0x101
	BBRA  = 0x102
	BARB  = 0x103
	BAMRB = 0x104
	BBRB  = 0x105
	BDRB  = 0x106
	BDMRB = 0x107
	BRCR  = 0x108

	// BSC (bus state controller)
	BCR1   = 0x400
	BCR2   = 0x401
	WCR1   = 0x402
	WCR2   = 0x403
	WCR3   = 0x404
	MCR    = 0x405
	PCR    = 0x406
	RTCSR  = 0x407
	RTCNT  = 0x408
	RTCOR  = 0x409
	RFCR   = 0x40a
	PCTRA  = 0x40b
	PDTRA  = 0x40c
	PCTRB  = 0x410
	PDTRB  = 0x411
	GPIOIC = 0x412

	// DMAC (direct memory access controller)
	SAR0    = 0x500
	DAR0    = 0x501
	DMATCR0 = 0x502
	CHCR0   = 0x503
	SAR1    = 0x504
	DAR1    = 0x505
	DMATCR1 = 0x506
	CHCR1   = 0x507
	SAR2    = 0x508
	DAR2    = 0x509
	DMATCR2 = 0x50a
	CHCR2   = 0x50b
	SAR3    = 0x50c
	DAR3    = 0x50d
	DMATCR3 = 0x50e
	CHCR3   = 0x50f
	DMAOR   = 0x510

	// CPG (clock pulse generator)
	FRQCR  = 0x600
	STBCR  = 0x601
	WTCNT  = 0x602
	WTCSR  = 0x603
	STBCR2 = 0x604

	// RTC (realtime clock)
	R64CNT  = 0x640
	RSECCNT = 0x641
	RMINCNT = 0x642
	RHRCNT  = 0x643
	RWKCNT  = 0x644
	RDAYCNT = 0x645
	RMONCNT = 0x646
	RYRCNT  = 0x647
	RSECAR  = 0x648
	RMINAR  = 0x649
	RHRAR   = 0x64a
	RWKAR   = 0x64b
	RDAYAR  = 0x64c
	RMONAR  = 0x64d
	RCR1    = 0x64e
	RCR2    = 0x64f

	// INTC (interrupt controller)
	ICR  = 0x680
	IPRA = 0x681
	IPRB = 0x682
	IPRC = 0x683

	// TMU (timer unit)
	TOCR  = 0x6c0
	TSTR  = 0x6c1
	TCOR0 = 0x6c2
	TCNT0 = 0x6c3
	TCR0  = 0x6c4
	TCOR1 = 0x6c5
	TCNT1 = 0x6c6
	TCR1  = 0x6c7
	TCOR2 = 0x6c8
	TCNT2 = 0x6c9
	TCR2  = 0x6ca
	TCPR2 = 0x6cb

	// SCI (serial communication interface)
	SCSMR1  = 0x700
	SCBRR1  = 0x701
	SCSCR1  = 0x702
	SCTDR1  = 0x703
	SCSSR1  = 0x704
	SCRDR1  = 0x705
	SCSCMR1 = 0x706
	SCSPTR1 = 0x707

	// SCIF (serial communication interface with FIFO)
	SCSMR2  = 0x740
	SCBRR2  = 0x741
	SCSCR2  = 0x742
	SCFTDR2 = 0x743
	SCFSR2  = 0x744
	SCFRDR2 = 0x745
	SCFCR2  = 0x746
	SCFDR2  = 0x747
	SCSPTR2 = 0x748
	SCLSR2  = 0x749

	// HUDI (user debugging interface)
	SDIR = 0x780
	SDDR = 0x782
)

// Declarations is every on-chip register known to the emulation. Access to
// an address that folds to an undeclared table entry is logged and reads as
// zero.
var Declarations = []Decl{
	// CCN
	{Addr: 0xff000000, Offset: PTEH, Name: "PTEH", Flags: R | W, Held: true},
	{Addr: 0xff000004, Offset: PTEL, Name: "PTEL", Flags: R | W, Held: true},
	{Addr: 0xff000008, Offset: TTB, Name: "TTB", Flags: R | W, Held: true},
	{Addr: 0xff00000c, Offset: TEA, Name: "TEA", Flags: R | W, Held: true},
	{Addr: 0xff000010, Offset: MMUCR, Name: "MMUCR", Flags: R | W},
	{Addr: 0xff000014, Offset: BASRA, Name: "BASRA", Flags: R | W, Held: true},
	{Addr: 0xff000018, Offset: BASRB, Name: "BASRB", Flags: R | W, Held: true},
	{Addr: 0xff00001c, Offset: CCR, Name: "CCR", Flags: R | W},
	{Addr: 0xff000020, Offset: TRA, Name: "TRA", Flags: R | W},
	{Addr: 0xff000024, Offset: EXPEVT, Name: "EXPEVT", Flags: R | W},
	{Addr: 0xff000028, Offset: INTEVT, Name: "INTEVT", Flags: R | W},
	{Addr: 0xff000034, Offset: PTEA, Name: "PTEA", Flags: R | W, Held: true},
	{Addr: 0xff000038, Offset: QACR0, Name: "QACR0", Flags: R | W, Held: true},
	{Addr: 0xff00003c, Offset: QACR1, Name: "QACR1", Flags: R | W, Held: true},

	// UBC
	{Addr: 0xff200000, Offset: BARA, Name: "BARA", Flags: R | W, Held: true},
	{Addr: 0xff200004, Offset: BAMRA, Name: "BAMRA", Flags: R | W, Held: true},
	{Addr: 0xff200008, Offset: BBRA, Name: "BBRA", Flags: R | W},
	{Addr: 0xff20000c, Offset: BARB, Name: "BARB", Flags: R | W, Held: true},
	{Addr: 0xff200010, Offset: BAMRB, Name: "BAMRB", Flags: R | W, Held: true},
	{Addr: 0xff200014, Offset: BBRB, Name: "BBRB", Flags: R | W},
	{Addr: 0xff200018, Offset: BDRB, Name: "BDRB", Flags: R | W, Held: true},
	{Addr: 0xff20001c, Offset: BDMRB, Name: "BDMRB", Flags: R | W, Held: true},
	{Addr: 0xff200020, Offset: BRCR, Name: "BRCR", Flags: R | W},

	// BSC
	{Addr: 0xff800000, Offset: BCR1, Name: "BCR1", Flags: R | W},
	{Addr: 0xff800004, Offset: BCR2, Name: "BCR2", Flags: R | W, Init: 0x3ffc},
	{Addr: 0xff800008, Offset: WCR1, Name: "WCR1", Flags: R | W, Init: 0x77777777},
	{Addr: 0xff80000c, Offset: WCR2, Name: "WCR2", Flags: R | W, Init: 0xfffeefff},
	{Addr: 0xff800010, Offset: WCR3, Name: "WCR3", Flags: R | W, Init: 0x07777777},
	{Addr: 0xff800014, Offset: MCR, Name: "MCR", Flags: R | W},
	{Addr: 0xff800018, Offset: PCR, Name: "PCR", Flags: R | W},
	{Addr: 0xff80001c, Offset: RTCSR, Name: "RTCSR", Flags: R | W},
	{Addr: 0xff800020, Offset: RTCNT, Name: "RTCNT", Flags: R | W},
	{Addr: 0xff800024, Offset: RTCOR, Name: "RTCOR", Flags: R | W},
	{Addr: 0xff800028, Offset: RFCR, Name: "RFCR", Flags: R | W},
	{Addr: 0xff80002c, Offset: PCTRA, Name: "PCTRA", Flags: R | W},
	{Addr: 0xff800030, Offset: PDTRA, Name: "PDTRA", Flags: R | W, Held: true},
	{Addr: 0xff800040, Offset: PCTRB, Name: "PCTRB", Flags: R | W},
	{Addr: 0xff800044, Offset: PDTRB, Name: "PDTRB", Flags: R | W, Held: true},
	{Addr: 0xff800048, Offset: GPIOIC, Name: "GPIOIC", Flags: R | W},

	// DMAC
	{Addr: 0xffa00000, Offset: SAR0, Name: "SAR0", Flags: R | W, Held: true},
	{Addr: 0xffa00004, Offset: DAR0, Name: "DAR0", Flags: R | W, Held: true},
	{Addr: 0xffa00008, Offset: DMATCR0, Name: "DMATCR0", Flags: R | W, Held: true},
	{Addr: 0xffa0000c, Offset: CHCR0, Name: "CHCR0", Flags: R | W},
	{Addr: 0xffa00010, Offset: SAR1, Name: "SAR1", Flags: R | W, Held: true},
	{Addr: 0xffa00014, Offset: DAR1, Name: "DAR1", Flags: R | W, Held: true},
	{Addr: 0xffa00018, Offset: DMATCR1, Name: "DMATCR1", Flags: R | W, Held: true},
	{Addr: 0xffa0001c, Offset: CHCR1, Name: "CHCR1", Flags: R | W},
	{Addr: 0xffa00020, Offset: SAR2, Name: "SAR2", Flags: R | W, Held: true},
	{Addr: 0xffa00024, Offset: DAR2, Name: "DAR2", Flags: R | W, Held: true},
	{Addr: 0xffa00028, Offset: DMATCR2, Name: "DMATCR2", Flags: R | W, Held: true},
	{Addr: 0xffa0002c, Offset: CHCR2, Name: "CHCR2", Flags: R | W},
	{Addr: 0xffa00030, Offset: SAR3, Name: "SAR3", Flags: R | W, Held: true},
	{Addr: 0xffa00034, Offset: DAR3, Name: "DAR3", Flags: R | W, Held: true},
	{Addr: 0xffa00038, Offset: DMATCR3, Name: "DMATCR3", Flags: R | W, Held: true},
	{Addr: 0xffa0003c, Offset: CHCR3, Name: "CHCR3", Flags: R | W},
	{Addr: 0xffa00040, Offset: DMAOR, Name: "DMAOR", Flags: R | W},

	// CPG
	{Addr: 0xffc00000, Offset: FRQCR, Name: "FRQCR", Flags: R | W, Held: true},
	{Addr: 0xffc00004, Offset: STBCR, Name: "STBCR", Flags: R | W},
	{Addr: 0xffc00008, Offset: WTCNT, Name: "WTCNT", Flags: R | W},
	{Addr: 0xffc0000c, Offset: WTCSR, Name: "WTCSR", Flags: R | W},
	{Addr: 0xffc00010, Offset: STBCR2, Name: "STBCR2", Flags: R | W},

	// RTC
	{Addr: 0xffc80000, Offset: R64CNT, Name: "R64CNT", Flags: R, Held: true},
	{Addr: 0xffc80004, Offset: RSECCNT, Name: "RSECCNT", Flags: R | W, Held: true},
	{Addr: 0xffc80008, Offset: RMINCNT, Name: "RMINCNT", Flags: R | W, Held: true},
	{Addr: 0xffc8000c, Offset: RHRCNT, Name: "RHRCNT", Flags: R | W, Held: true},
	{Addr: 0xffc80010, Offset: RWKCNT, Name: "RWKCNT", Flags: R | W, Held: true},
	{Addr: 0xffc80014, Offset: RDAYCNT, Name: "RDAYCNT", Flags: R | W, Held: true},
	{Addr: 0xffc80018, Offset: RMONCNT, Name: "RMONCNT", Flags: R | W, Held: true},
	{Addr: 0xffc8001c, Offset: RYRCNT, Name: "RYRCNT", Flags: R | W, Held: true},
	{Addr: 0xffc80020, Offset: RSECAR, Name: "RSECAR", Flags: R | W, Held: true},
	{Addr: 0xffc80024, Offset: RMINAR, Name: "RMINAR", Flags: R | W, Held: true},
	{Addr: 0xffc80028, Offset: RHRAR, Name: "RHRAR", Flags: R | W, Held: true},
	{Addr: 0xffc8002c, Offset: RWKAR, Name: "RWKAR", Flags: R | W, Held: true},
	{Addr: 0xffc80030, Offset: RDAYAR, Name: "RDAYAR", Flags: R | W, Held: true},
	{Addr: 0xffc80034, Offset: RMONAR, Name: "RMONAR", Flags: R | W, Held: true},
	{Addr: 0xffc80038, Offset: RCR1, Name: "RCR1", Flags: R | W},
	{Addr: 0xffc8003c, Offset: RCR2, Name: "RCR2", Flags: R | W, Init: 0x09},

	// INTC
	{Addr: 0xffd00000, Offset: ICR, Name: "ICR", Flags: R | W},
	{Addr: 0xffd00004, Offset: IPRA, Name: "IPRA", Flags: R | W},
	{Addr: 0xffd00008, Offset: IPRB, Name: "IPRB", Flags: R | W},
	{Addr: 0xffd0000c, Offset: IPRC, Name: "IPRC", Flags: R | W},

	// TMU
	{Addr: 0xffd80000, Offset: TOCR, Name: "TOCR", Flags: R | W},
	{Addr: 0xffd80004, Offset: TSTR, Name: "TSTR", Flags: R | W},
	{Addr: 0xffd80008, Offset: TCOR0, Name: "TCOR0", Flags: R | W, Init: 0xffffffff},
	{Addr: 0xffd8000c, Offset: TCNT0, Name: "TCNT0", Flags: R | W, Init: 0xffffffff},
	{Addr: 0xffd80010, Offset: TCR0, Name: "TCR0", Flags: R | W},
	{Addr: 0xffd80014, Offset: TCOR1, Name: "TCOR1", Flags: R | W, Init: 0xffffffff},
	{Addr: 0xffd80018, Offset: TCNT1, Name: "TCNT1", Flags: R | W, Init: 0xffffffff},
	{Addr: 0xffd8001c, Offset: TCR1, Name: "TCR1", Flags: R | W},
	{Addr: 0xffd80020, Offset: TCOR2, Name: "TCOR2", Flags: R | W, Init: 0xffffffff},
	{Addr: 0xffd80024, Offset: TCNT2, Name: "TCNT2", Flags: R | W, Init: 0xffffffff},
	{Addr: 0xffd80028, Offset: TCR2, Name: "TCR2", Flags: R | W},
	{Addr: 0xffd8002c, Offset: TCPR2, Name: "TCPR2", Flags: R | W, Held: true},

	// SCI
	{Addr: 0xffe00000, Offset: SCSMR1, Name: "SCSMR1", Flags: R | W},
	{Addr: 0xffe00004, Offset: SCBRR1, Name: "SCBRR1", Flags: R | W, Init: 0xff},
	{Addr: 0xffe00008, Offset: SCSCR1, Name: "SCSCR1", Flags: R | W},
	{Addr: 0xffe0000c, Offset: SCTDR1, Name: "SCTDR1", Flags: R | W, Init: 0xff},
	{Addr: 0xffe00010, Offset: SCSSR1, Name: "SCSSR1", Flags: R | W, Init: 0x84},
	{Addr: 0xffe00014, Offset: SCRDR1, Name: "SCRDR1", Flags: R, Init: 0xff},
	{Addr: 0xffe00018, Offset: SCSCMR1, Name: "SCSCMR1", Flags: R | W},
	{Addr: 0xffe0001c, Offset: SCSPTR1, Name: "SCSPTR1", Flags: R | W},

	// SCIF
	{Addr: 0xffe80000, Offset: SCSMR2, Name: "SCSMR2", Flags: R | W},
	{Addr: 0xffe80004, Offset: SCBRR2, Name: "SCBRR2", Flags: R | W, Init: 0xff},
	{Addr: 0xffe80008, Offset: SCSCR2, Name: "SCSCR2", Flags: R | W},
	{Addr: 0xffe8000c, Offset: SCFTDR2, Name: "SCFTDR2", Flags: W, Held: true},
	{Addr: 0xffe80010, Offset: SCFSR2, Name: "SCFSR2", Flags: R | W, Init: 0x60},
	{Addr: 0xffe80014, Offset: SCFRDR2, Name: "SCFRDR2", Flags: R, Held: true},
	{Addr: 0xffe80018, Offset: SCFCR2, Name: "SCFCR2", Flags: R | W},
	{Addr: 0xffe8001c, Offset: SCFDR2, Name: "SCFDR2", Flags: R},
	{Addr: 0xffe80020, Offset: SCSPTR2, Name: "SCSPTR2", Flags: R | W},
	{Addr: 0xffe80024, Offset: SCLSR2, Name: "SCLSR2", Flags: R | W},

	// HUDI
	{Addr: 0xfff00000, Offset: SDIR, Name: "SDIR", Flags: R, Init: 0xffff},
	{Addr: 0xfff00008, Offset: SDDR, Name: "SDDR", Flags: R | W, Held: true},
}
