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

//go:build !windows
// +build !windows

package colorterm

import (
	"unicode"
	"unicode/utf8"

	"github.com/jetsetilly/katana/curated"
	"github.com/jetsetilly/katana/debugger/terminal"
	"github.com/jetsetilly/katana/debugger/terminal/colorterm/easyterm"
	"github.com/jetsetilly/katana/debugger/terminal/colorterm/easyterm/ansi"
)

// nextRune returns the next rune from the input stream, while also checking
// for interrupt signals.
func (ct *ColorTerminal) nextRune(events *terminal.ReadEvents) (rune, error) {
	if events != nil {
		select {
		case rr := <-ct.reader.runes:
			return rr.r, rr.err
		case <-events.IntEvents:
			return 0, curated.Errorf(terminal.UserInterrupt)
		}
	}

	rr := <-ct.reader.runes
	return rr.r, rr.err
}

// TermRead implements the terminal.Input interface.
func (ct *ColorTerminal) TermRead(buffer []byte, prompt terminal.Prompt, events *terminal.ReadEvents) (int, error) {
	if ct.silenced {
		return 0, nil
	}

	ct.RawMode()
	defer ct.CanonicalMode()

	// er is used to store encoded runes (length of 4 should be enough)
	er := make([]byte, 4)

	p := prompt.String()

	n := 0
	cursor := 0
	history := len(ct.commandHistory)

	// buffInput is used to store the latest input when we scroll through
	// history - we don't want to lose what we've typed in case the user wants
	// to resume where we left off
	buffInput := make([]byte, cap(buffer))
	buffN := 0

	// the method for cursor placement is as follows:
	//	1. for each iteration of the loop
	//	2. store current cursor position
	//	3. clear the current line
	//	4. output the prompt
	//	5. output the input buffer
	//	6. restore the cursor position
	//
	// for this to work we need to place the cursor in its initial position
	ct.EasyTerm.TermPrint("\r%s", ansi.CursorMove(len(p)))

	for {
		ct.EasyTerm.TermPrint(ansi.CursorStore)
		ct.EasyTerm.TermPrint("%s\r%s", ansi.ClearLine, ansi.PenStyles["bold"])
		ct.EasyTerm.TermPrint(p)
		ct.EasyTerm.TermPrint(ansi.NormalPen)
		ct.EasyTerm.TermPrint(string(buffer[:n]))
		ct.EasyTerm.TermPrint(ansi.CursorRestore)

		r, err := ct.nextRune(events)
		if err != nil {
			ct.EasyTerm.TermPrint("\n")
			return 0, err
		}

		switch r {
		case easyterm.KeyTab:
			if ct.tabCompletion != nil {
				s := ct.tabCompletion.Complete(string(buffer[:cursor]))

				// the difference in length between the new input and the old
				// input
				d := len(s) - cursor

				if n+d <= len(buffer) {
					// append everything after the cursor to the new string
					// and copy into the input buffer
					s += string(buffer[cursor:n])
					copy(buffer, []byte(s))

					// advance cursor to the end of the completed word
					ct.EasyTerm.TermPrint(ansi.CursorMove(d))
					cursor += d
					n += d
				}
			}

		case easyterm.KeyInterrupt:
			ct.EasyTerm.TermPrint("\n")
			return 0, curated.Errorf(terminal.UserInterrupt)

		case easyterm.KeySuspend:
			// the terminal must be in canonical mode before the process is
			// suspended. raw mode is restored on resumption
			ct.CanonicalMode()
			easyterm.SuspendProcess()
			ct.RawMode()

		case easyterm.KeyCarriageReturn:
			// check to see if input is the same as the last history entry
			newEntry := false
			if n > 0 {
				newEntry = true
				if len(ct.commandHistory) > 0 {
					lastHistoryEntry := ct.commandHistory[len(ct.commandHistory)-1].input
					if len(lastHistoryEntry) == n {
						newEntry = false
						for i := 0; i < n; i++ {
							if buffer[i] != lastHistoryEntry[i] {
								newEntry = true
								break
							}
						}
					}
				}
			}

			// if input is not the same as the last history entry then append
			// a new entry to the history list
			if newEntry {
				nh := make([]byte, n)
				copy(nh, buffer[:n])
				ct.commandHistory = append(ct.commandHistory, command{input: nh})
			}

			ct.EasyTerm.TermPrint("\n")
			return n, nil

		case easyterm.KeyEsc:
			r, err = ct.nextRune(events)
			if err != nil {
				return 0, err
			}

			switch r {
			case easyterm.EscCursor:
				r, err = ct.nextRune(events)
				if err != nil {
					return 0, err
				}

				switch r {
				case easyterm.CursorUp:
					// move up through command history
					if len(ct.commandHistory) > 0 {
						// if we're at the end of the command history then
						// store the current input in buffInput for possible
						// later editing
						if history == len(ct.commandHistory) {
							copy(buffInput, buffer[:n])
							buffN = n
						}

						if history > 0 {
							history--
							copy(buffer, ct.commandHistory[history].input)
							n = len(ct.commandHistory[history].input)
							ct.EasyTerm.TermPrint(ansi.CursorMove(n - cursor))
							cursor = n
						}
					}

				case easyterm.CursorDown:
					// move down through command history
					if len(ct.commandHistory) > 0 {
						if history < len(ct.commandHistory)-1 {
							history++
							copy(buffer, ct.commandHistory[history].input)
							n = len(ct.commandHistory[history].input)
							ct.EasyTerm.TermPrint(ansi.CursorMove(n - cursor))
							cursor = n
						} else if history == len(ct.commandHistory)-1 {
							history++
							copy(buffer, buffInput)
							n = buffN
							ct.EasyTerm.TermPrint(ansi.CursorMove(n - cursor))
							cursor = n
						}
					}

				case easyterm.CursorForward:
					// move forward through current command input
					if cursor < n {
						ct.EasyTerm.TermPrint(ansi.CursorForwardOne)
						cursor++
					}

				case easyterm.CursorBackward:
					// move backward through current command input
					if cursor > 0 {
						ct.EasyTerm.TermPrint(ansi.CursorBackwardOne)
						cursor--
					}

				case easyterm.CursorHome:
					ct.EasyTerm.TermPrint(ansi.CursorMove(-cursor))
					cursor = 0

				case easyterm.CursorEnd:
					ct.EasyTerm.TermPrint(ansi.CursorMove(n - cursor))
					cursor = n

				case easyterm.EscDelete:
					// the delete key sends a closing tilde that we should
					// swallow
					_, _ = ct.nextRune(events)

					if cursor < n {
						copy(buffer[cursor:], buffer[cursor+1:n])
						n--
						history = len(ct.commandHistory)
					}
				}
			}

		case easyterm.KeyBackspace, easyterm.KeyCtrlH:
			if cursor > 0 {
				copy(buffer[cursor-1:], buffer[cursor:n])
				ct.EasyTerm.TermPrint(ansi.CursorBackwardOne)
				cursor--
				n--
				history = len(ct.commandHistory)
			}

		default:
			if unicode.IsPrint(r) {
				m := utf8.EncodeRune(er, r)
				if n+m <= len(buffer) {
					ct.EasyTerm.TermPrint("%c", r)
					copy(buffer[cursor+m:], buffer[cursor:n])
					copy(buffer[cursor:], er[:m])
					cursor += m
					n += m
					history = len(ct.commandHistory)
				}
			}
		}
	}
}
