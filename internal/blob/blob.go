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

// Package blob concatenates per-word obfuscated byte sequences into a single
// length-prefixed wire blob, and splits one back apart on decrypt. The wire
// layout is bit-exact across versions: no framing beyond the length prefix
// itself, so a blob produced by any conforming implementation decodes here.
package blob

import (
	"encoding/binary"

	"darkstar/internal/crypterr"
)

// MaxWordLen is the largest obfuscated length a single word may produce;
// it is what fits in the u16-big-endian length prefix.
const MaxWordLen = 65535

// Encode concatenates u16-be-length-prefixed records for each word's
// obfuscated bytes, in order.
func Encode(words [][]byte) ([]byte, error) {
	out := make([]byte, 0, 64*len(words))
	for _, w := range words {
		if len(w) > MaxWordLen {
			return nil, crypterr.New(crypterr.KindInvalidFormat, "blob.Encode",
				"word produced an obfuscated length over 65535 bytes")
		}
		var lenBuf [2]byte
		binary.BigEndian.PutUint16(lenBuf[:], uint16(len(w)))
		out = append(out, lenBuf[:]...)
		out = append(out, w...)
	}
	return out, nil
}

// Decode splits a blob back into per-word obfuscated byte sequences. It
// consumes records until the input is exhausted or wordCount records have
// been read, stopping gracefully (not erroring) on a truncated tail record.
func Decode(data []byte, wordCount int) ([][]byte, error) {
	words := make([][]byte, 0, wordCount)
	offset := 0
	for offset < len(data) && len(words) < wordCount {
		if offset+2 > len(data) {
			break
		}
		length := int(binary.BigEndian.Uint16(data[offset : offset+2]))
		offset += 2
		if offset+length > len(data) {
			break
		}
		words = append(words, data[offset:offset+length])
		offset += length
	}
	return words, nil
}
