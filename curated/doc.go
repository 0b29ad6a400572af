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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface.
//
// Curated errors are created with the Errorf() function. Like the Errorf()
// function in the fmt package it takes a formatting pattern and placeholder
// values, but the pattern doubles as the identity of the error. The Is()
// function tests whether an error was created from a specific pattern:
//
//	e := curated.Errorf("fabric: %v", innerError)
//
//	if curated.Is(e, "fabric: %v") {
//		...
//	}
//
// The Has() function is similar but checks for the pattern anywhere in the
// error chain, which is useful when an error has been wrapped by an
// intermediate layer. IsAny() says whether the error is curated at all,
// which for our purposes is the difference between an expected error and an
// unexpected one.
//
// The Error() function normalises the message chain so that adjacent
// duplicate parts are removed. Wrapping an error with the same message
// pattern at several levels therefore does not produce stuttering messages
// like "store queue: store queue: bad address".
//
// Sentinel errors are achieved by storing the pattern as a const string near
// the point of use and testing with Is() or Has().
package curated
