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
	"strconv"
	"strings"

	"github.com/jetsetilly/katana/curated"
)

// Validate input string against the command definitions.
func (cmds Commands) Validate(input string) error {
	return cmds.ValidateTokens(TokeniseInput(input))
}

// ValidateTokens is like Validate, but works on tokens rather than an input
// string.
//
// Tokens that match the template are normalised in place: the command keyword
// and any keyword arguments are converted to upper case. This means the
// caller does not need to worry about case when examining tokens that have
// passed validation.
func (cmds Commands) ValidateTokens(tokens *Tokens) error {
	toks := tokens.tokens

	// empty input is never an error
	if len(toks) == 0 {
		return nil
	}

	toks[0] = strings.ToUpper(toks[0])

	// basic check for whether command is recognised
	args, ok := cmds[toks[0]]
	if !ok {
		return curated.Errorf("%s is not a debugging command", toks[0])
	}

	// too *many* arguments have been supplied
	if len(toks)-1 > args.maximumLen() {
		return curated.Errorf("too many arguments for %s", toks[0])
	}

	// too *few* arguments have been supplied
	if len(toks)-1 < args.requiredLen() {
		switch args[len(toks)-1].typ {
		case argKeyword:
			return curated.Errorf("keyword required for %s", toks[0])
		case argFile:
			return curated.Errorf("filename required for %s", toks[0])
		case argValue:
			return curated.Errorf("numeric argument required for %s", toks[0])
		case argString:
			return curated.Errorf("string argument required for %s", toks[0])
		default:
			return curated.Errorf("too few arguments for %s", toks[0])
		}
	}

	// check each supplied argument against its definition
	for i := 1; i < len(toks); i++ {
		if i-1 >= len(args) {
			// arguments beyond the end of the definition list have been
			// allowed by a trailing indeterminate argument
			break
		}

		arg := args[i-1]

		switch arg.typ {
		case argKeyword:
			kw := strings.ToUpper(toks[i])

			switch values := arg.values.(type) {
			case []string:
				match := false
				for _, v := range values {
					if kw == v {
						match = true
						break
					}
				}
				if !match {
					return curated.Errorf("unrecognised argument (%s) for %s", toks[i], toks[0])
				}
				toks[i] = kw

			case *Commands:
				// the only keyword argument backed by the command list is the
				// help command itself
				if _, ok := (*values)[kw]; !ok {
					return curated.Errorf("no help for %s", kw)
				}
				toks[i] = kw
			}

		case argValue:
			if _, err := strconv.ParseUint(toks[i], 0, 64); err != nil {
				return curated.Errorf("numeric argument required for %s (%s)", toks[0], toks[i])
			}

		case argIndeterminate:
			// anything goes, including every subsequent argument
			return nil
		}
	}

	return nil
}
