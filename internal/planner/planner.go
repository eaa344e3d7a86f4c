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

// Package planner derives, for a given (password, word, version), the
// ordered sequence of obfuscation transform indices to apply. Planning is a
// pure function: the same inputs always produce the same step list, on any
// host, which is what lets decrypt recompute a word's pipeline from the
// recorded reverse key alone.
package planner

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"

	"darkstar/internal/obfuscate"
	"darkstar/internal/prng"
)

// remappedIndices are the transforms whose output changes shape (length or
// composition) in ways that make unbounded repetition brittle; V3 rotates
// them away on any cycle beyond the first twelve.
var remappedIndices = map[int]bool{2: true, 3: true, 8: true, 9: true}

// Plan computes the step list for one word under the given version. factory
// must be the PRNG factory matching version (Mulberry32 for V1/V2, ChaCha
// for V3); cycleDepth must already reflect the version's rule (see
// CycleDepth).
func Plan(password, word string, factory prng.Factory, cycleDepth int, v3Remap bool) []int {
	seedForSelection := password + word

	selected := make([]int, obfuscate.Count)
	for i := range selected {
		selected[i] = i
	}
	rng := factory(seedForSelection)
	for i := obfuscate.Count - 1; i >= 1; i-- {
		j := prng.Index(rng.Next(), i+1)
		selected[i], selected[j] = selected[j], selected[i]
	}

	steps := make([]int, cycleDepth)
	for i := 0; i < cycleDepth; i++ {
		idx := selected[i%obfuscate.Count]
		if v3Remap && i >= obfuscate.Count && remappedIndices[idx] {
			idx = (idx + 2) % obfuscate.Count
		}
		steps[i] = idx
	}
	return steps
}

// CycleDepthV3 computes the V3 step-list length: 12 + (d mod 53), where d is
// the first two bytes of SHA-256(password||word) read as a big-endian
// 16-bit integer.
func CycleDepthV3(password, word string) int {
	seedForSelection := password + word
	sum := sha256.Sum256([]byte(seedForSelection))
	digest := hex.EncodeToString(sum[:])
	d, _ := strconv.ParseUint(digest[:4], 16, 16)
	return 12 + int(d%53)
}
