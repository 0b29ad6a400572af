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

// Package memory implements the guest address bus. The 32-bit guest address
// space is covered by a table of 64KB pages, each page resolving to a region
// installed by one of the hardware packages.
//
// Regions come in two flavours. A plain region is backed by host memory and
// reads and writes go straight to the backing bytes. An MMIO region
// dispatches every access to a set of width-specific handler functions; a
// handler left nil means the device does not support that access width and
// the access is logged and dropped.
//
// Regions are allocated with AllocRegion() or AllocMMIORegion() and then
// installed at one or more guest addresses with Mount(). Mirror() aliases a
// window of already-mounted pages at another address; the alias shares
// backing storage and handlers with the original. Mounting or mirroring over
// occupied pages replaces them, which is how the store queue and cache
// regions are stacked on top of the wider privileged-window mirrors.
//
// All multi-byte accesses are little-endian, as seen by the SH-4 in the
// Dreamcast.
package memory
