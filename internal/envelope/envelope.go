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

// Package envelope implements the password-based authenticated cipher that
// wraps the obfuscated blob: PBKDF2-HMAC-SHA256 key derivation feeding
// AES-256 in CBC (legacy) or GCM (current) mode, laid out as
// hex(salt) || hex(iv) || base64(body).
package envelope

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"

	"golang.org/x/crypto/pbkdf2"

	"darkstar/internal/crypterr"
)

// Mode selects the block-cipher mode the envelope uses.
type Mode int

const (
	// ModeCBC is the legacy V1/V2 mode: no authentication tag.
	ModeCBC Mode = iota
	// ModeGCM is the current V3 mode: authenticated.
	ModeGCM
)

const (
	pbkdf2Iterations = 600_000
	keySize          = 32
	saltSize         = 16
	ivSizeCBC        = 16
	ivSizeGCM        = 12
)

func deriveKey(password string, salt []byte) []byte {
	return pbkdf2.Key([]byte(password), salt, pbkdf2Iterations, keySize, sha256.New)
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// Encrypt wraps plaintext under password using mode, returning the textual
// envelope hex(salt) || hex(iv) || base64(body).
func Encrypt(plaintext []byte, password string, mode Mode) (string, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return "", crypterr.Wrap(crypterr.KindInvalidFormat, "envelope.Encrypt", err)
	}

	key := deriveKey(password, salt)
	defer wipe(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", crypterr.Wrap(crypterr.KindInvalidFormat, "envelope.Encrypt", err)
	}

	switch mode {
	case ModeCBC:
		iv := make([]byte, ivSizeCBC)
		if _, err := rand.Read(iv); err != nil {
			return "", crypterr.Wrap(crypterr.KindInvalidFormat, "envelope.Encrypt", err)
		}
		padded := pkcs7Pad(plaintext, aes.BlockSize)
		ciphertext := make([]byte, len(padded))
		cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)
		return hex.EncodeToString(salt) + hex.EncodeToString(iv) + base64.StdEncoding.EncodeToString(ciphertext), nil

	case ModeGCM:
		iv := make([]byte, ivSizeGCM)
		if _, err := rand.Read(iv); err != nil {
			return "", crypterr.Wrap(crypterr.KindInvalidFormat, "envelope.Encrypt", err)
		}
		gcm, err := cipher.NewGCMWithNonceSize(block, ivSizeGCM)
		if err != nil {
			return "", crypterr.Wrap(crypterr.KindInvalidFormat, "envelope.Encrypt", err)
		}
		ciphertext := gcm.Seal(nil, iv, plaintext, nil)
		return hex.EncodeToString(salt) + hex.EncodeToString(iv) + base64.StdEncoding.EncodeToString(ciphertext), nil

	default:
		return "", crypterr.New(crypterr.KindVersionMismatch, "envelope.Encrypt", "unknown cipher mode")
	}
}

// Decrypt parses a textual envelope and recovers the plaintext under
// password using mode (which fixes the IV width).
func Decrypt(envelopeText string, password string, mode Mode) ([]byte, error) {
	ivHexLen := ivSizeCBC * 2
	if mode == ModeGCM {
		ivHexLen = ivSizeGCM * 2
	}
	saltHexLen := saltSize * 2

	if len(envelopeText) < saltHexLen+ivHexLen {
		return nil, crypterr.New(crypterr.KindInvalidFormat, "envelope.Decrypt", "envelope too short")
	}

	saltHex := envelopeText[:saltHexLen]
	ivHex := envelopeText[saltHexLen : saltHexLen+ivHexLen]
	bodyB64 := envelopeText[saltHexLen+ivHexLen:]

	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		return nil, crypterr.Wrap(crypterr.KindInvalidFormat, "envelope.Decrypt", err)
	}
	iv, err := hex.DecodeString(ivHex)
	if err != nil {
		return nil, crypterr.Wrap(crypterr.KindInvalidFormat, "envelope.Decrypt", err)
	}
	body, err := base64.StdEncoding.DecodeString(bodyB64)
	if err != nil {
		return nil, crypterr.Wrap(crypterr.KindInvalidFormat, "envelope.Decrypt", err)
	}

	key := deriveKey(password, salt)
	defer wipe(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, crypterr.Wrap(crypterr.KindInvalidFormat, "envelope.Decrypt", err)
	}

	switch mode {
	case ModeCBC:
		if len(body)%aes.BlockSize != 0 || len(body) == 0 {
			return nil, crypterr.New(crypterr.KindInvalidFormat, "envelope.Decrypt", "ciphertext is not a multiple of the block size")
		}
		plainPadded := make([]byte, len(body))
		cipher.NewCBCDecrypter(block, iv).CryptBlocks(plainPadded, body)
		return pkcs7Unpad(plainPadded)

	case ModeGCM:
		gcm, err := cipher.NewGCMWithNonceSize(block, ivSizeGCM)
		if err != nil {
			return nil, crypterr.Wrap(crypterr.KindInvalidFormat, "envelope.Decrypt", err)
		}
		plaintext, err := gcm.Open(nil, iv, body, nil)
		if err != nil {
			return nil, crypterr.Wrap(crypterr.KindAuthenticationFailed, "envelope.Decrypt", err)
		}
		return plaintext, nil

	default:
		return nil, crypterr.New(crypterr.KindVersionMismatch, "envelope.Decrypt", "unknown cipher mode")
	}
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	padding := blockSize - len(data)%blockSize
	out := make([]byte, len(data)+padding)
	copy(out, data)
	for i := len(data); i < len(out); i++ {
		out[i] = byte(padding)
	}
	return out
}

func pkcs7Unpad(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, crypterr.New(crypterr.KindPaddingError, "envelope.pkcs7Unpad", "empty ciphertext")
	}
	padding := int(data[len(data)-1])
	if padding < 1 || padding > aes.BlockSize || padding > len(data) {
		return nil, crypterr.New(crypterr.KindPaddingError, "envelope.pkcs7Unpad", "padding byte out of range")
	}
	for _, b := range data[len(data)-padding:] {
		if int(b) != padding {
			return nil, crypterr.New(crypterr.KindPaddingError, "envelope.pkcs7Unpad", "inconsistent padding")
		}
	}
	return data[:len(data)-padding], nil
}
