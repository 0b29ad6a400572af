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

// Package commandline facilitates parsing of command line input. Given a
// command template, it can be used to tokenise and validate user input. It
// also functions as a tab-completion engine, implementing the
// terminal.TabCompletion interface.
//
// The Commands type is the base product of the package. To create an instance
// of Commands, use CompileCommandTemplate() with a suitable template. A
// template maps each command to a pattern describing its arguments:
//
//	template := CommandTemplate{
//		"LIST":  "",
//		"PRINT": "%S",
//		"SORT":  "[RISING|FALLING]",
//	}
//
// The pattern directives are: %F for a filename, %V for a numeric value, %S
// for an arbitrary string and %* for an indeterminate number of arguments. A
// list of keywords is written in square brackets, with the individual
// keywords separated by pipes. A list that begins with an empty keyword, eg.
// [|RISING|FALLING], indicates that the argument can be omitted entirely. A
// single directive in square brackets, eg. [%V], is the optional form of the
// directive.
//
// Once compiled, the resulting Commands instance can be used to validate
// input:
//
//	cmds, _ := CompileCommandTemplate(template, "HELP")
//	toks := TokeniseInput("sort rising")
//	err := cmds.ValidateTokens(toks)
//
// Note that all validation is case-insensitive. Once validated the tokens can
// be processed and acted upon with the Get() function, safe in the knowledge
// that every token has already matched the template.
//
// The TabCompletion type is used to transform input such that it more
// closely resembles a valid command according to the supplied template. The
// NewTabCompletion() function expects an instance of Commands.
//
//	tbc := NewTabCompletion(cmds)
//
// The Complete() function can then be used to transform user input:
//
//	inp := "LIS"
//	inp = tbc.Complete(inp)
//
// In this instance the value of inp will be "LIST " (note the trailing
// space). Given a number of options to use for the completion, the first
// option will be returned first followed by the second, third, etc. on
// subsequent calls to Complete(). A tab completion session can be terminated
// with a call to Reset().
package commandline
