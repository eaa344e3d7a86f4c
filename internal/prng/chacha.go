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

package prng

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
)

// ChaCha is the V3 generator. It is not real ChaCha20: it borrows the
// quarter-round shape (add, xor, rotate, twice) over an 8-word state
// indexed by a slowly-walking counter, seeded from SHA-256 of the seed
// string. The name describes its lineage, not a claim of interoperability
// with the ChaCha stream cipher.
type ChaCha struct {
	state   [8]uint32
	counter uint32
}

// NewChaCha seeds a ChaCha PRNG by hex-encoding SHA-256(seedStr) and
// parsing each 8-hex-character chunk as a big-endian uint32.
func NewChaCha(seedStr string) *ChaCha {
	sum := sha256.Sum256([]byte(seedStr))
	digest := hex.EncodeToString(sum[:])

	c := &ChaCha{}
	for i := 0; i < 8; i++ {
		chunk := digest[i*8 : i*8+8]
		v, _ := strconv.ParseUint(chunk, 16, 32)
		c.state[i] = uint32(v)
	}
	return c
}

func rotl16(x uint32) uint32 { return rotl32(x, 16) }
func rotl12(x uint32) uint32 { return rotl32(x, 12) }

// Next advances the internal counter and state by one quarter-round-like
// step and returns the next float in [0,1). See Mulberry32.Next for why
// the final fold is not actually zero despite looking like t^=t.
func (c *ChaCha) Next() float64 {
	c.counter++
	counter := c.counter

	i0 := counter % 8
	i3 := (counter + 3) % 8
	i5 := (counter + 5) % 8

	x := c.state[i0]
	y := c.state[i3]
	z := c.state[i5]

	x = x + y + counter
	z = z ^ x
	z = rotl16(z)

	y = y + z + 3*counter
	x = x ^ y
	x = rotl12(x)

	c.state[i0] = x
	c.state[i3] = y
	c.state[i5] = z

	t := x + y + z
	t = (t ^ (t >> 15)) * (1 | t)
	term := (t ^ (t >> 7)) * (61 | t)
	folded := (t + term) ^ t
	result := folded ^ (folded >> 14)
	return float64(result) / 4294967296.0
}

// ChaChaFactory adapts NewChaCha to the Factory shape.
func ChaChaFactory(seed string) Rand {
	return NewChaCha(seed)
}
