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
	"strings"
)

// CommandTemplate maps command keywords to a pattern describing the command's
// arguments. See the package documentation for the pattern syntax.
type CommandTemplate map[string]string

// CompileCommandTemplate creates a new instance of Commands from an instance
// of CommandTemplate. if no help command is required, use the empty string
// for the helpKeyword argument.
func CompileCommandTemplate(template CommandTemplate, helpKeyword string) (Commands, error) {
	commands := Commands{}

	for k, v := range template {
		k = strings.ToUpper(k)
		commands[k] = commandArgList{}

		i := 0
		for i < len(v) {
			switch v[i] {
			case '%':
				if i+1 >= len(v) {
					return nil, fmt.Errorf("orphaned placeholder directive (%s)", k)
				}

				i++
				switch v[i] {
				case 'F':
					commands[k] = append(commands[k], commandArg{typ: argFile, required: true})
				case 'S':
					commands[k] = append(commands[k], commandArg{typ: argString, required: true})
				case 'V':
					commands[k] = append(commands[k], commandArg{typ: argValue, required: true})
				case '*':
					commands[k] = append(commands[k], commandArg{typ: argIndeterminate, required: true})
				default:
					return nil, fmt.Errorf("unknown placeholder directive (%%%c) in %s", v[i], k)
				}

			case '[':
				// find end of keyword list
				j := strings.Index(v[i:], "]")
				if j == -1 {
					return nil, fmt.Errorf("unclosed keyword list (%s)", k)
				}

				options := strings.Split(v[i+1:i+j], "|")
				if len(options) == 1 {
					// note: Split() returns a slice of the input string if the
					// separator cannot be found. a single bracketed entry is
					// not a keyword list; the only thing it can legally hold
					// is a placeholder directive, which the brackets mark as
					// optional
					var typ argType
					switch options[0] {
					case "%F":
						typ = argFile
					case "%S":
						typ = argString
					case "%V":
						typ = argValue
					default:
						return nil, fmt.Errorf("empty keyword list (%s)", k)
					}

					commands[k] = append(commands[k], commandArg{typ: typ, required: false})
					i += j
					break
				}

				// an empty entry in the list means the argument as a whole is
				// not required
				req := true
				values := make([]string, 0, len(options))
				for _, opt := range options {
					if opt == "" {
						req = false
						continue
					}
					values = append(values, strings.ToUpper(opt))
				}

				commands[k] = append(commands[k], commandArg{typ: argKeyword, required: req, values: values})

				// continue from the end of the keyword list
				i += j

			}
			i++
		}
	}

	if helpKeyword != "" {
		commands[strings.ToUpper(helpKeyword)] = commandArgList{
			commandArg{typ: argKeyword, required: false, values: &commands},
		}
	}

	return commands, nil
}
