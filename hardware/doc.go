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

// Package hardware is the base package for the Dreamcast emulation. It and
// its sub-packages contain everything required for a headless emulation.
//
// The Dreamcast type is the root of the emulation and contains external
// references to the machine's sub-systems. From here, the emulation is
// advanced in spans of guest time with RunForDuration(), which interleaves
// CPU execution with expiring hardware deadlines.
package hardware
