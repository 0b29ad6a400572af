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
	"github.com/jetsetilly/katana/logger"
)

// CompileFlags qualify how a translation backend should compile a block.
type CompileFlags int

// List of valid CompileFlags values. The floating point flags mirror the
// FPSCR precision and transfer-size bits at the time of compilation, meaning
// a single guest address can map to up to four distinct blocks.
const (
	CompileDoublePR CompileFlags = 1 << iota
	CompileDoubleSZ
	CompileSingleInstr
)

// Block is a unit of translated code. Run executes the block against the
// context it was compiled for and returns the guest address of the next
// block.
type Block interface {
	Run() uint32
}

// CodeCache is the interface between the core and a translation backend.
// Implementations are expected to call CompileCurrentPC() on the owning core
// when GetBlock misses.
type CodeCache interface {
	// GetBlock returns the block for the guest address, compiling it first
	// if necessary
	GetBlock(pc uint32) Block

	// CompileBlock translates the code at the guest address. host is the
	// backing memory for the address, or nil if the address is not backed by
	// allocated memory
	CompileBlock(pc uint32, host []byte, flags CompileFlags) Block

	// RemoveBlocks discards any blocks compiled for the guest address
	RemoveBlocks(pc uint32)

	// UnlinkBlocks severs direct block-to-block jumps, forcing every block
	// transition back through GetBlock
	UnlinkBlocks()
}

// Debugger is how the core hands control back to whatever is supervising
// execution. Trap is called when a breakpoint is hit and whenever single
// stepping completes.
type Debugger interface {
	Trap()
}

// nullCache is the code cache used when no translation backend has been
// attached. Blocks from the null cache cannot execute anything. They end the
// current run slice and trap to the debugger, leaving PC where it was.
type nullCache struct {
	sh *SH4
}

func (c *nullCache) GetBlock(pc uint32) Block {
	return &nullBlock{sh: c.sh, pc: pc}
}

func (c *nullCache) CompileBlock(pc uint32, _ []byte, _ CompileFlags) Block {
	return &nullBlock{sh: c.sh, pc: pc}
}

func (c *nullCache) RemoveBlocks(_ uint32) {
}

func (c *nullCache) UnlinkBlocks() {
}

type nullBlock struct {
	sh *SH4
	pc uint32
}

func (b *nullBlock) Run() uint32 {
	logger.Logf("sh4", "no translation backend for block at %#08x", b.pc)
	b.sh.Context.NumCycles = 0
	if b.sh.debugger != nil {
		b.sh.debugger.Trap()
	}
	return b.pc
}
