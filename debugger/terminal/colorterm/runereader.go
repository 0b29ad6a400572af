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
	"bufio"
	"io"
)

// runeReader pulls runes from the input stream in its own goroutine. this
// allows the TermRead() loop to select over terminal input and debugger
// events at the same time.
type runeReader struct {
	runes chan readRune
}

type readRune struct {
	r   rune
	err error
}

func initRuneReader(input io.Reader) runeReader {
	rr := runeReader{
		runes: make(chan readRune),
	}

	br := bufio.NewReader(input)

	go func() {
		for {
			r, _, err := br.ReadRune()
			rr.runes <- readRune{r: r, err: err}
			if err != nil {
				return
			}
		}
	}()

	return rr
}
