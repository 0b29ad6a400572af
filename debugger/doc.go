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

// Package debugger implements an interactive monitor for the emulated
// machine. Features include:
//
//	memory peek and poke
//	hardware register inspection by name
//	instruction stepping and timed runs
//	breakpoints
//	interrupt and timer inspection
//	basic scripting
//
// Initialisation of the debugger is done with the NewDebugger() function
//
//	dbg, _ := debugger.NewDebugger(term)
//
// The term argument must be an instance of a type that satisfies the
// Terminal interface, defined in the terminal package. The colorterm and
// plainterm sub-packages provide good reference implementations.
//
// Once initialised, the debugger can be started with the Start() function.
//
//	dbg.Start(initScript, image, origin)
//
// The initScript is a script previously created either by the script.Scribe
// type or by hand. The image argument is the path of a program file to copy
// into main RAM before the input loop begins.
//
// Interaction with the debugger, for both users and programs that use the
// debugger, is through the Terminal interface.
package debugger
