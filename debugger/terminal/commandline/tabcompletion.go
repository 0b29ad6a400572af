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

package commandline

import (
	"sort"
	"strings"
	"time"
)

// a second call to Complete() within this duration cycles to the next
// completion option rather than starting a new completion session.
const cycleDuration = 500 * time.Millisecond

// TabCompletion keeps track of the most recent tab completion attempt.
type TabCompletion struct {
	commands Commands

	options    []string
	lastOption int

	// lastGuess is the last string generated and returned by the Complete
	// function. we use it to help decide whether to start a new completion
	// session
	lastGuess string

	lastCompletionTime time.Time
}

// NewTabCompletion initialises a new TabCompletion instance.
func NewTabCompletion(commands Commands) *TabCompletion {
	tc := new(TabCompletion)
	tc.commands = commands
	tc.options = make([]string, 0, len(tc.commands))
	return tc
}

// Complete transforms the input such that the last word in the input is
// expanded to meet the closest match in the list of allowed strings.
func (tc *TabCompletion) Complete(input string) string {
	p := tokeniseInput(input)
	if len(p) == 0 {
		return input
	}

	// if input string is the same as the string last returned by this
	// function AND it is within a duration of cycleDuration then return the
	// next option
	if input == tc.lastGuess && time.Since(tc.lastCompletionTime) < cycleDuration {
		// if there was only one option in the option list then return
		// immediately
		if len(tc.options) <= 1 {
			return input
		}

		// there is more than one completion option, so shorten the input by
		// one word (getting rid of the last completion effort) and step to
		// next option
		p = p[:len(p)-1]
		tc.lastOption++
		if tc.lastOption >= len(tc.options) {
			tc.lastOption = 0
		}
	} else {
		if strings.HasSuffix(input, " ") {
			return input
		}

		// this is a new tab completion session
		tc.options = tc.options[:0]
		tc.lastOption = 0

		// decide which argument the final word corresponds to. if it doesn't
		// correspond to any, complete against the list of commands
		var arg commandArg

		argList, ok := tc.commands[strings.ToUpper(p[0])]
		if ok && len(p) > 1 && len(argList) != 0 && len(argList) > len(p)-2 {
			arg = argList[len(p)-2]
		} else {
			arg.typ = argKeyword
			arg.values = &tc.commands
		}

		switch arg.typ {
		case argKeyword:
			// trigger is the word we're trying to complete on
			trigger := strings.ToUpper(p[len(p)-1])
			p = p[:len(p)-1]

			switch kw := arg.values.(type) {
			case *Commands:
				for k := range *kw {
					if strings.HasPrefix(k, trigger) {
						tc.options = append(tc.options, k)
					}
				}
			case []string:
				for _, k := range kw {
					if strings.HasPrefix(k, trigger) {
						tc.options = append(tc.options, k)
					}
				}
			}

			// sorting the options means cycling overs them is predictable
			sort.Strings(tc.options)

		default:
			// no completion for other argument types
		}

		// no completion options - return input unchanged
		if len(tc.options) == 0 {
			return input
		}
	}

	// add guessed word to end of input-list and rejoin to form the output
	p = append(p, tc.options[tc.lastOption])
	tc.lastGuess = strings.Join(p, " ") + " "

	// note current time. we'll use this to help decide whether to cycle
	// through a list of options or to begin a new completion session
	tc.lastCompletionTime = time.Now()

	return tc.lastGuess
}

// Reset closes the current completion session. The next call to Complete()
// will begin a new session.
func (tc *TabCompletion) Reset() {
	tc.options = tc.options[:0]
	tc.lastOption = 0
	tc.lastGuess = ""
	tc.lastCompletionTime = time.Time{}
}
