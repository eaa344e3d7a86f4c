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

// Package obfuscate holds the twelve byte->byte transforms and their
// inverses that make up the obfuscation library. The table below is a
// wire contract: reordering it, or changing what any index means,
// silently breaks every ciphertext ever produced. Index selection is the
// planner's job (see internal/planner); this package only knows how to run
// a given index forward or backward.
package obfuscate

import "darkstar/internal/prng"

// Count is the number of transforms in the fixed-order library.
const Count = 12

// SeededFrom is the first index whose forward/inverse needs a seed; see
// §4.2 of the design notes. Indices below this run on input bytes alone.
const SeededFrom = 6

// Fn is the shape shared by every forward and inverse transform. seed is
// nil for the six unseeded transforms; factory builds the version-correct
// PRNG for the four transforms that need one beyond a raw keystream.
type Fn func(input []byte, seed []byte, factory prng.Factory) ([]byte, error)

// Transform pairs a transform's forward and inverse implementation.
type Transform struct {
	Name    string
	Forward Fn
	Inverse Fn
}

// Table is the fixed-order library of all twelve transforms, indexed 0..11.
var Table = [Count]Transform{
	{Name: "reverse", Forward: reverseBytes, Inverse: reverseBytes},
	{Name: "atbash", Forward: atbash, Inverse: atbash},
	{Name: "decimal", Forward: decimalEncode, Inverse: decimalDecode},
	{Name: "binary", Forward: binaryEncode, Inverse: binaryDecode},
	{Name: "rot13", Forward: rot13, Inverse: rot13},
	{Name: "adjacent-swap", Forward: swapAdjacent, Inverse: swapAdjacent},
	{Name: "shuffle", Forward: shuffleForward, Inverse: shuffleInverse},
	{Name: "xor", Forward: xorRepeating, Inverse: xorRepeating},
	{Name: "interleave", Forward: interleaveForward, Inverse: interleaveInverse},
	{Name: "vigenere", Forward: vigenereEncode, Inverse: vigenereDecode},
	{Name: "block-reversal", Forward: seededBlockReversal, Inverse: seededBlockReversal},
	{Name: "substitution", Forward: substitutionForward, Inverse: substitutionInverse},
}

// IsSeeded reports whether transform idx requires the combined seed.
func IsSeeded(idx int) bool { return idx >= SeededFrom }

// Apply runs the forward transform at idx.
func Apply(idx int, input []byte, seed []byte, factory prng.Factory) ([]byte, error) {
	return Table[idx].Forward(input, seed, factory)
}

// Unapply runs the inverse transform at idx.
func Unapply(idx int, input []byte, seed []byte, factory prng.Factory) ([]byte, error) {
	return Table[idx].Inverse(input, seed, factory)
}
