// The MIT License (MIT)
//
// # Copyright (c) 2016 xtaci
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Package prng implements the two deterministic, non-cryptographic pseudo
// random generators the obfuscation pipeline relies on for reproducible
// shuffles. Neither is meant to resist prediction: they exist so that the
// same (password, word, version) always selects the same transform
// sequence, on any host, forever. Do not substitute a "better" RNG here;
// doing so silently breaks every previously issued ciphertext.
package prng

// Rand produces uniform floats in [0,1), matching the JavaScript
// Math.random()-shaped contract the reference implementation was built
// against. Callers turn a draw into an index with Index.
type Rand interface {
	Next() float64
}

// Factory builds a Rand seeded deterministically from a string. Both
// Mulberry32 and ChaCha satisfy this shape so the rest of the pipeline can
// stay agnostic of which generator a version selects.
type Factory func(seed string) Rand

// Index converts a draw in [0,1) into an integer index in [0,n).
func Index(f float64, n int) int {
	idx := int(f * float64(n))
	if idx >= n {
		idx = n - 1
	}
	if idx < 0 {
		idx = 0
	}
	return idx
}

func rotl32(x uint32, n uint) uint32 {
	return (x << n) | (x >> (32 - n))
}
