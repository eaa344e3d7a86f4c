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

package obfuscate

import (
	"strconv"
	"strings"

	"darkstar/internal/crypterr"
	"darkstar/internal/prng"
)

const interleaveAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// --- 0: reverse bytes (self-inverse) ---

func reverseBytes(input []byte, _ []byte, _ prng.Factory) ([]byte, error) {
	out := make([]byte, len(input))
	for i, b := range input {
		out[len(input)-1-i] = b
	}
	return out, nil
}

// --- 1: Atbash on ASCII letters (self-inverse) ---

func atbash(input []byte, _ []byte, _ prng.Factory) ([]byte, error) {
	out := make([]byte, len(input))
	for i, b := range input {
		switch {
		case b >= 'A' && b <= 'Z':
			out[i] = 'Z' - (b - 'A')
		case b >= 'a' && b <= 'z':
			out[i] = 'z' - (b - 'a')
		default:
			out[i] = b
		}
	}
	return out, nil
}

// --- 2: decimal comma-joined byte values ---

func decimalEncode(input []byte, _ []byte, _ prng.Factory) ([]byte, error) {
	parts := make([]string, len(input))
	for i, b := range input {
		parts[i] = strconv.Itoa(int(b))
	}
	return []byte(strings.Join(parts, ",")), nil
}

func decimalDecode(input []byte, _ []byte, _ prng.Factory) ([]byte, error) {
	s := string(input)
	if s == "" {
		return []byte{}, nil
	}
	parts := strings.Split(s, ",")
	out := make([]byte, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		v, err := strconv.ParseUint(p, 10, 8)
		if err != nil {
			return nil, crypterr.Wrap(crypterr.KindPipelineError, "obfuscate.decimalDecode", err)
		}
		out = append(out, byte(v))
	}
	return out, nil
}

// --- 3: unpadded binary comma-joined byte values ---

func binaryEncode(input []byte, _ []byte, _ prng.Factory) ([]byte, error) {
	parts := make([]string, len(input))
	for i, b := range input {
		parts[i] = strconv.FormatUint(uint64(b), 2)
	}
	return []byte(strings.Join(parts, ",")), nil
}

func binaryDecode(input []byte, _ []byte, _ prng.Factory) ([]byte, error) {
	s := string(input)
	if s == "" {
		return []byte{}, nil
	}
	parts := strings.Split(s, ",")
	out := make([]byte, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		v, err := strconv.ParseUint(p, 2, 8)
		if err != nil {
			return nil, crypterr.Wrap(crypterr.KindPipelineError, "obfuscate.binaryDecode", err)
		}
		out = append(out, byte(v))
	}
	return out, nil
}

// --- 4: ROT13 on ASCII letters (self-inverse) ---

func rot13(input []byte, _ []byte, _ prng.Factory) ([]byte, error) {
	out := make([]byte, len(input))
	for i, b := range input {
		switch {
		case b >= 'A' && b <= 'Z':
			out[i] = (b-'A'+13)%26 + 'A'
		case b >= 'a' && b <= 'z':
			out[i] = (b-'a'+13)%26 + 'a'
		default:
			out[i] = b
		}
	}
	return out, nil
}

// --- 5: swap adjacent byte pairs (self-inverse) ---

func swapAdjacent(input []byte, _ []byte, _ prng.Factory) ([]byte, error) {
	out := append([]byte(nil), input...)
	for i := 0; i+1 < len(out); i += 2 {
		out[i], out[i+1] = out[i+1], out[i]
	}
	return out, nil
}

// --- 6: seeded Fisher-Yates shuffle ---

func shuffleForward(input []byte, seed []byte, factory prng.Factory) ([]byte, error) {
	out := append([]byte(nil), input...)
	rng := factory(string(seed))
	for i := len(out) - 1; i >= 1; i-- {
		j := prng.Index(rng.Next(), i+1)
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

// shuffleInverse does not invert the permutation algebraically: it replays
// the identical sequence of Fisher-Yates swaps against an index array, then
// scatters each input byte to the position it originally occupied. This
// only works because the PRNG call sequence is identical to the forward
// pass; see the design notes' discussion of this transform.
func shuffleInverse(input []byte, seed []byte, factory prng.Factory) ([]byte, error) {
	n := len(input)
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	rng := factory(string(seed))
	for i := n - 1; i >= 1; i-- {
		j := prng.Index(rng.Next(), i+1)
		indices[i], indices[j] = indices[j], indices[i]
	}
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[indices[i]] = input[i]
	}
	return out, nil
}

// --- 7: repeating-XOR with seed bytes (self-inverse) ---

func xorRepeating(input []byte, seed []byte, _ prng.Factory) ([]byte, error) {
	if len(seed) == 0 {
		return append([]byte(nil), input...), nil
	}
	out := make([]byte, len(input))
	for i, b := range input {
		out[i] = b ^ seed[i%len(seed)]
	}
	return out, nil
}

// --- 8: interleave a PRNG-selected byte after each input byte ---

func interleaveForward(input []byte, seed []byte, factory prng.Factory) ([]byte, error) {
	rng := factory(string(seed))
	out := make([]byte, 0, len(input)*2)
	for _, b := range input {
		out = append(out, b)
		idx := prng.Index(rng.Next(), len(interleaveAlphabet))
		out = append(out, interleaveAlphabet[idx])
	}
	return out, nil
}

func interleaveInverse(input []byte, _ []byte, _ prng.Factory) ([]byte, error) {
	out := make([]byte, 0, len(input)/2+1)
	for i := 0; i < len(input); i += 2 {
		out = append(out, input[i])
	}
	return out, nil
}

// --- 9: Vigenere-as-decimal-numbers ---

func vigenereEncode(input []byte, seed []byte, _ prng.Factory) ([]byte, error) {
	if len(seed) == 0 {
		return append([]byte(nil), input...), nil
	}
	parts := make([]string, len(input))
	for i, b := range input {
		keyCode := seed[i%len(seed)]
		val := uint16(b) + uint16(keyCode)
		parts[i] = strconv.Itoa(int(val))
	}
	return []byte(strings.Join(parts, ",")), nil
}

func vigenereDecode(input []byte, seed []byte, _ prng.Factory) ([]byte, error) {
	if len(seed) == 0 {
		return append([]byte(nil), input...), nil
	}
	s := string(input)
	if s == "" {
		return []byte{}, nil
	}
	parts := strings.Split(s, ",")
	out := make([]byte, 0, len(parts))
	for i, p := range parts {
		if p == "" {
			out = append(out, 0)
			continue
		}
		val, err := strconv.ParseUint(p, 10, 32)
		if err != nil {
			return nil, crypterr.Wrap(crypterr.KindPipelineError, "obfuscate.vigenereDecode", err)
		}
		keyCode := uint64(seed[i%len(seed)])
		if uint64(val) < keyCode || uint64(val)-keyCode > 255 {
			return nil, crypterr.New(crypterr.KindPipelineError, "obfuscate.vigenereDecode", "intermediate value does not fit in a byte")
		}
		out = append(out, byte(uint64(val)-keyCode))
	}
	return out, nil
}

// --- 10: seeded chunked block reversal (self-inverse) ---

func seededBlockReversal(input []byte, seed []byte, factory prng.Factory) ([]byte, error) {
	rng := factory(string(seed))
	half := len(input) / 2
	blockSize := int(rng.Next()*float64(half)) + 2
	out := append([]byte(nil), input...)
	for start := 0; start < len(out); start += blockSize {
		end := start + blockSize
		if end > len(out) {
			end = len(out)
		}
		for i, j := start, end-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out, nil
}

// --- 11: seeded byte-permutation substitution ---

func buildSubstitutionPermutation(seed []byte, factory prng.Factory) [256]byte {
	var perm [256]byte
	for i := range perm {
		perm[i] = byte(i)
	}
	rng := factory(string(seed))
	for i := 255; i >= 1; i-- {
		j := prng.Index(rng.Next(), i+1)
		perm[i], perm[j] = perm[j], perm[i]
	}
	return perm
}

func substitutionForward(input []byte, seed []byte, factory prng.Factory) ([]byte, error) {
	perm := buildSubstitutionPermutation(seed, factory)
	out := make([]byte, len(input))
	for i, b := range input {
		out[i] = perm[b]
	}
	return out, nil
}

func substitutionInverse(input []byte, seed []byte, factory prng.Factory) ([]byte, error) {
	perm := buildSubstitutionPermutation(seed, factory)
	var inverse [256]byte
	for i, v := range perm {
		inverse[v] = byte(i)
	}
	out := make([]byte, len(input))
	for i, b := range input {
		out[i] = inverse[b]
	}
	return out, nil
}
