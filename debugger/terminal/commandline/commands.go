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
	"fmt"
	"sort"
	"strings"
)

// Commands is the root of the compiled command tree. Keys are the command
// keywords in upper case.
type Commands map[string]commandArgList

// List returns the command keywords in alphabetical order.
func (cmds Commands) List() []string {
	l := make([]string, 0, len(cmds))
	for k := range cmds {
		l = append(l, k)
	}
	sort.Strings(l)
	return l
}

// calling String() on Commands reproduces a normalised form of the template
// from which the commands were compiled.
func (cmds Commands) String() string {
	s := strings.Builder{}
	for _, k := range cmds.List() {
		s.WriteString(k)
		s.WriteString(cmds[k].String())
		s.WriteString("\n")
	}
	return s.String()
}

// commandArgList is the list of arguments for a single command.
type commandArgList []commandArg

func (a commandArgList) String() string {
	s := strings.Builder{}
	for i := range a {
		s.WriteString(fmt.Sprintf(" %s", a[i]))
	}
	return s.String()
}

// maximumLen returns the maximum number of arguments allowed for a given
// command.
func (a commandArgList) maximumLen() int {
	if len(a) == 0 {
		return 0
	}
	if a[len(a)-1].typ == argIndeterminate {
		// to indicate indeterminancy, return the maximum value allowed for an
		// integer
		return int(^uint(0) >> 1)
	}
	return len(a)
}

// requiredLen returns the number of arguments required for a given command.
// in other words, the command may allow more but it must have at least the
// returned number.
func (a commandArgList) requiredLen() (m int) {
	for i := 0; i < len(a); i++ {
		if !a[i].required {
			return
		}
		m++
	}
	return
}

// argType defines the expected argument type.
type argType int

// the possible values for argType.
const (
	argKeyword argType = iota
	argFile
	argValue
	argString
	argIndeterminate
)

// commandArg specifies the type and properties of an individual argument.
type commandArg struct {
	typ      argType
	required bool

	// for keyword arguments, values is either a []string of the allowed
	// keywords or a *Commands. the latter is only used for the automatically
	// added help command
	values interface{}
}

func (c commandArg) String() string {
	switch c.typ {
	case argKeyword:
		s := strings.Builder{}
		s.WriteString("[")
		if !c.required {
			s.WriteString("|")
		}
		switch values := c.values.(type) {
		case []string:
			s.WriteString(strings.Join(values, "|"))
		case *Commands:
			s.WriteString("<commands>")
		default:
			s.WriteString(fmt.Sprintf("%T", values))
		}
		s.WriteString("]")
		return s.String()
	case argFile:
		if !c.required {
			return "[%F]"
		}
		return "%F"
	case argValue:
		if !c.required {
			return "[%V]"
		}
		return "%V"
	case argString:
		if !c.required {
			return "[%S]"
		}
		return "%S"
	case argIndeterminate:
		return "%*"
	}
	return "!!"
}
