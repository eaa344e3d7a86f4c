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

// Mulberry32 is the V1/V2 generator: a 32-bit state seeded from a string by
// folding codepoints through a rotate-multiply mix, then advanced by the
// well known mulberry32 step. Every operation below wraps modulo 2^32 the
// way the reference implementation's u32 arithmetic does; Go's uint32
// already wraps on overflow so no explicit masking is needed.
type Mulberry32 struct {
	state uint32
}

// NewMulberry32 seeds a Mulberry32 from seedStr, one Unicode codepoint at a
// time (not bytes) to match the reference's string iteration.
func NewMulberry32(seedStr string) *Mulberry32 {
	var h uint32
	for _, c := range seedStr {
		h = (h ^ uint32(c)) * 3432918353
		h = rotl32(h, 13)
	}
	h = (h ^ (h >> 16)) * 2246822507
	h = (h ^ (h >> 13)) * 3266489909
	h ^= h >> 16
	return &Mulberry32{state: h}
}

// Next returns the next float in [0,1). The expression below intentionally
// mirrors the reference's XOR-with-pre-update-value quirk: the value
// folded in on the last line is the post-multiply t, not zero, because the
// assignment happens only after the right-hand side is fully evaluated.
func (m *Mulberry32) Next() float64 {
	m.state += 0x6d2b79f5
	t := m.state ^ (m.state >> 15)
	t *= 1 | m.state
	term := (t ^ (t >> 7)) * (61 | t)
	folded := (t + term) ^ t
	result := folded ^ (folded >> 14)
	return float64(result) / 4294967296.0
}

// MulberryFactory adapts NewMulberry32 to the Factory shape.
func MulberryFactory(seed string) Rand {
	return NewMulberry32(seed)
}
