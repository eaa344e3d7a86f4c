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

// Package reversekey packs and unpacks the per-word step-index lists that
// make decryption possible. V1 uses a legacy JSON-then-base64 form; V2/V3
// use a compact packed-nibble binary form, fixed-length for V2 and
// length-prefixed for V3's variable-length cycles.
package reversekey

import (
	"encoding/base64"
	"encoding/json"

	"darkstar/internal/crypterr"
	"darkstar/internal/obfuscate"
)

// fixedStepCount is the per-word step-list length V2 always uses.
const fixedStepCount = 12

// EncodeLegacy base64-encodes the JSON array-of-arrays form used by V1.
func EncodeLegacy(steps [][]int) (string, error) {
	j, err := json.Marshal(steps)
	if err != nil {
		return "", crypterr.Wrap(crypterr.KindInvalidReverseKey, "reversekey.EncodeLegacy", err)
	}
	return base64.StdEncoding.EncodeToString(j), nil
}

// EncodeV2 packs each word's exactly-12-entry step list into 6 nibble-packed
// bytes and base64s the concatenation.
func EncodeV2(steps [][]int) (string, error) {
	buf := make([]byte, 0, len(steps)*6)
	for _, word := range steps {
		if len(word) != fixedStepCount {
			return "", crypterr.New(crypterr.KindInvalidReverseKey, "reversekey.EncodeV2", "V2 step list must have exactly 12 entries")
		}
		packed, err := packNibbles(word)
		if err != nil {
			return "", err
		}
		buf = append(buf, packed...)
	}
	return base64.StdEncoding.EncodeToString(buf), nil
}

// EncodeV3 packs each word's variable-length step list as a length byte
// followed by ceil(len/2) nibble-packed bytes, and base64s the result.
func EncodeV3(steps [][]int) (string, error) {
	buf := make([]byte, 0, len(steps)*8)
	for _, word := range steps {
		if len(word) > 255 {
			return "", crypterr.New(crypterr.KindInvalidReverseKey, "reversekey.EncodeV3", "step list too long to encode its length in one byte")
		}
		buf = append(buf, byte(len(word)))
		packed, err := packNibbles(word)
		if err != nil {
			return "", err
		}
		buf = append(buf, packed...)
	}
	return base64.StdEncoding.EncodeToString(buf), nil
}

func packNibbles(indices []int) ([]byte, error) {
	out := make([]byte, 0, (len(indices)+1)/2)
	for i := 0; i < len(indices); i += 2 {
		high, err := nibble(indices[i])
		if err != nil {
			return nil, err
		}
		low := byte(0)
		if i+1 < len(indices) {
			low, err = nibble(indices[i+1])
			if err != nil {
				return nil, err
			}
		}
		out = append(out, (high<<4)|low)
	}
	return out, nil
}

func nibble(idx int) (byte, error) {
	if idx < 0 || idx >= obfuscate.Count {
		return 0, crypterr.New(crypterr.KindInvalidReverseKey, "reversekey.packNibbles", "step index outside [0,11]")
	}
	return byte(idx) & 0x0F, nil
}

func unpackNibbles(b []byte, count int) []int {
	out := make([]int, 0, count)
	for _, by := range b {
		out = append(out, int(by>>4))
		if len(out) < count {
			out = append(out, int(by&0x0F))
		}
	}
	return out[:count]
}

// Decode auto-detects the wire form: it base64-decodes reverseKeyB64, then
// tries to JSON-parse the result as a legacy array-of-arrays. If that
// fails, it falls back to the packed binary form, fixed-length for V2 and
// length-prefixed for V3, per packedVersion.
func Decode(reverseKeyB64 string, packedVersion int) ([][]int, error) {
	raw, err := base64.StdEncoding.DecodeString(reverseKeyB64)
	if err != nil {
		return nil, crypterr.Wrap(crypterr.KindInvalidReverseKey, "reversekey.Decode", err)
	}

	var legacy [][]int
	if json.Unmarshal(raw, &legacy) == nil {
		if err := validate(legacy); err != nil {
			return nil, err
		}
		return legacy, nil
	}

	switch packedVersion {
	case 2:
		return decodeV2(raw)
	case 3:
		return decodeV3(raw)
	default:
		return nil, crypterr.New(crypterr.KindInvalidReverseKey, "reversekey.Decode", "unknown packed reverse-key version")
	}
}

func decodeV2(raw []byte) ([][]int, error) {
	if len(raw)%6 != 0 {
		return nil, crypterr.New(crypterr.KindInvalidReverseKey, "reversekey.decodeV2", "packed length must be a multiple of 6")
	}
	steps := make([][]int, 0, len(raw)/6)
	for offset := 0; offset < len(raw); offset += 6 {
		word := unpackNibbles(raw[offset:offset+6], fixedStepCount)
		if err := validateWord(word); err != nil {
			return nil, err
		}
		steps = append(steps, word)
	}
	return steps, nil
}

func decodeV3(raw []byte) ([][]int, error) {
	var steps [][]int
	offset := 0
	for offset < len(raw) {
		length := int(raw[offset])
		offset++
		need := (length + 1) / 2
		if offset+need > len(raw) {
			return nil, crypterr.New(crypterr.KindInvalidReverseKey, "reversekey.decodeV3", "truncated packed record")
		}
		word := unpackNibbles(raw[offset:offset+need], length)
		if err := validateWord(word); err != nil {
			return nil, err
		}
		steps = append(steps, word)
		offset += need
	}
	return steps, nil
}

func validate(steps [][]int) error {
	for _, word := range steps {
		if err := validateWord(word); err != nil {
			return err
		}
	}
	return nil
}

func validateWord(word []int) error {
	for _, idx := range word {
		if idx < 0 || idx >= obfuscate.Count {
			return crypterr.New(crypterr.KindInvalidReverseKey, "reversekey.validate", "step index outside [0,11]")
		}
	}
	return nil
}
