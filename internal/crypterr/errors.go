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

// Package crypterr defines the domain-level error taxonomy shared by every
// layer of the obfuscation/envelope pipeline, so callers can errors.Is /
// errors.As against a stable kind instead of matching error strings.
package crypterr

import "fmt"

// Kind classifies a failure by which contract was violated.
type Kind int

const (
	// KindInvalidFormat covers malformed envelopes, hex/base64 decode
	// failures, and non-UTF-8 where text is expected.
	KindInvalidFormat Kind = iota
	// KindInvalidReverseKey covers a reverse key that is neither legacy
	// JSON nor packed binary, has the wrong length, or names a step index
	// outside [0,11].
	KindInvalidReverseKey
	// KindAuthenticationFailed covers a GCM tag mismatch (V3 only).
	KindAuthenticationFailed
	// KindPaddingError covers a CBC padding byte outside [1,16] or an
	// inconsistent PKCS#7 pad.
	KindPaddingError
	// KindVersionMismatch covers an envelope naming a version the
	// decoder refuses.
	KindVersionMismatch
	// KindPipelineError covers an inverse transform failing on malformed
	// bytes, e.g. non-numeric text where a decimal encoding is expected.
	KindPipelineError
)

func (k Kind) String() string {
	switch k {
	case KindInvalidFormat:
		return "InvalidFormat"
	case KindInvalidReverseKey:
		return "InvalidReverseKey"
	case KindAuthenticationFailed:
		return "AuthenticationFailed"
	case KindPaddingError:
		return "PaddingError"
	case KindVersionMismatch:
		return "VersionMismatch"
	case KindPipelineError:
		return "PipelineError"
	default:
		return "Unknown"
	}
}

// Error is the concrete error type returned by every package in this
// module. Op names the failing operation (e.g. "envelope.Decrypt") so a
// wrapped chain reads like a stack trace without needing one.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an *Error with no wrapped cause.
func New(kind Kind, op, msg string) *Error {
	return &Error{Kind: kind, Op: op, Err: fmt.Errorf("%s", msg)}
}

// Wrap builds an *Error around an existing cause.
func Wrap(kind Kind, op string, err error) *Error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Err: err}
}

// Is reports whether err carries the given Kind, unwrapping as needed.
func Is(err error, kind Kind) bool {
	for err != nil {
		if ce, ok := err.(*Error); ok {
			return ce.Kind == kind
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
