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

// Package pipeline applies a planned step list to a single word, forward to
// obfuscate or backward to recover the original bytes.
package pipeline

import (
	"strconv"

	"darkstar/internal/obfuscate"
	"darkstar/internal/prng"
)

// checksumModulus bounds the per-word checksum folded into every seeded
// transform's key material.
const checksumModulus = 997

// checksum sums the first 12 recorded step indices mod 997. V3 step lists
// can run longer than 12, but the checksum only ever depends on the first
// cycle, so decrypt can recompute it without needing the full list.
func checksum(steps []int) int {
	n := len(steps)
	if n > 12 {
		n = 12
	}
	sum := 0
	for _, s := range steps[:n] {
		sum += s
	}
	return sum % checksumModulus
}

func combinedSeed(password string, steps []int) []byte {
	c := checksum(steps)
	return []byte(password + strconv.Itoa(c))
}

// Forward obfuscates word's bytes by applying steps left to right.
func Forward(password string, word []byte, steps []int, factory prng.Factory) ([]byte, error) {
	seed := combinedSeed(password, steps)
	current := word
	for _, idx := range steps {
		var s []byte
		if obfuscate.IsSeeded(idx) {
			s = seed
		}
		next, err := obfuscate.Apply(idx, current, s, factory)
		if err != nil {
			return nil, err
		}
		current = next
	}
	return current, nil
}

// Reverse recovers a word's original bytes from its obfuscated form by
// applying the recorded steps' inverses right to left.
func Reverse(password string, obfuscated []byte, steps []int, factory prng.Factory) ([]byte, error) {
	seed := combinedSeed(password, steps)
	current := obfuscated
	for i := len(steps) - 1; i >= 0; i-- {
		idx := steps[i]
		var s []byte
		if obfuscate.IsSeeded(idx) {
			s = seed
		}
		prev, err := obfuscate.Unapply(idx, current, s, factory)
		if err != nil {
			return nil, err
		}
		current = prev
	}
	return current, nil
}
