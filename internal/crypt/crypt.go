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

// Package crypt is the version dispatcher and top-level entry point: it
// wires the PRNG, obfuscation pipeline, blob codec, reverse-key codec, and
// envelope together into Encrypt/Decrypt over whole mnemonics, and picks
// the right combination of all of the above for V1, V2, or V3.
package crypt

import (
	"encoding/base64"
	"encoding/json"
	"strings"

	"darkstar/internal/blob"
	"darkstar/internal/crypterr"
	"darkstar/internal/envelope"
	"darkstar/internal/pipeline"
	"darkstar/internal/planner"
	"darkstar/internal/prng"
	"darkstar/internal/reversekey"
)

// base64Std and base64Decode wrap the blob in base64 before it is handed
// to envelope.Encrypt, matching the textual plaintext layout the original
// implementation feeds into its AES step.
func base64Std(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

func base64Decode(s string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, crypterr.Wrap(crypterr.KindInvalidFormat, "crypt.base64Decode", err)
	}
	return data, nil
}

// Version selects the PRNG, cipher mode, reverse-key format, and
// step-cycle rule used throughout the pipeline.
type Version int

const (
	// V1 is the legacy format: Mulberry32, 12-step cycles, JSON reverse
	// key, AES-256-CBC, bare envelope as encryptedData.
	V1 Version = 1
	// V2 keeps V1's PRNG and cipher mode but packs the reverse key and
	// wraps encryptedData in {"v":2,"data":...}.
	V2 Version = 2
	// V3 is the default: ChaCha-flavored PRNG, 12..64-step cycles,
	// variable-length packed reverse key, AES-256-GCM.
	V3 Version = 3
)

// Default is the version used when the caller does not force one.
const Default = V3

func (v Version) prngFactory() prng.Factory {
	if v == V3 {
		return prng.ChaChaFactory
	}
	return prng.MulberryFactory
}

func (v Version) cipherMode() envelope.Mode {
	if v == V3 {
		return envelope.ModeGCM
	}
	return envelope.ModeCBC
}

type versionedEnvelope struct {
	V    int    `json:"v"`
	Data string `json:"data"`
}

type outerPayload struct {
	EncryptedData string `json:"encryptedData"`
	ReverseKey    string `json:"reverseKey"`
}

// Encrypt obfuscates and encrypts mnemonic under password, returning the
// outer JSON object `{"encryptedData","reverseKey"}` specified in §6.
func Encrypt(mnemonic, password string, version Version) (string, error) {
	words := strings.Split(mnemonic, " ")
	factory := version.prngFactory()

	obfuscatedWords := make([][]byte, len(words))
	stepLists := make([][]int, len(words))

	for i, word := range words {
		var steps []int
		if version == V3 {
			depth := planner.CycleDepthV3(password, word)
			steps = planner.Plan(password, word, factory, depth, true)
		} else {
			steps = planner.Plan(password, word, factory, 12, false)
		}

		obfuscated, err := pipeline.Forward(password, []byte(word), steps, factory)
		if err != nil {
			return "", crypterr.Wrap(crypterr.KindPipelineError, "crypt.Encrypt", err)
		}
		obfuscatedWords[i] = obfuscated
		stepLists[i] = steps
	}

	blobBytes, err := blob.Encode(obfuscatedWords)
	if err != nil {
		return "", err
	}
	base64Content := base64Std(blobBytes)

	env, err := envelope.Encrypt([]byte(base64Content), password, version.cipherMode())
	if err != nil {
		return "", err
	}

	var encryptedData string
	switch version {
	case V1:
		encryptedData = env
	default:
		j, err := json.Marshal(versionedEnvelope{V: int(version), Data: env})
		if err != nil {
			return "", crypterr.Wrap(crypterr.KindInvalidFormat, "crypt.Encrypt", err)
		}
		encryptedData = string(j)
	}

	var reverseKey string
	switch version {
	case V1:
		reverseKey, err = reversekey.EncodeLegacy(stepLists)
	case V2:
		reverseKey, err = reversekey.EncodeV2(stepLists)
	default:
		reverseKey, err = reversekey.EncodeV3(stepLists)
	}
	if err != nil {
		return "", err
	}

	out, err := json.Marshal(outerPayload{EncryptedData: encryptedData, ReverseKey: reverseKey})
	if err != nil {
		return "", crypterr.Wrap(crypterr.KindInvalidFormat, "crypt.Encrypt", err)
	}
	return string(out), nil
}

// detectVersion inspects encryptedData for a `{"v": N, "data": "..."}`
// wrapper. Its absence means legacy V1.
func detectVersion(encryptedData string) (Version, string) {
	var ve versionedEnvelope
	if err := json.Unmarshal([]byte(encryptedData), &ve); err == nil && (ve.V == 2 || ve.V == 3) {
		return Version(ve.V), ve.Data
	}
	return V1, encryptedData
}

// Decrypt recovers the mnemonic from encryptedData and reverseKeyB64 (the
// two fields of the outer JSON Encrypt produces) under password.
func Decrypt(encryptedData, reverseKeyB64, password string) (string, error) {
	version, envelopeText := detectVersion(encryptedData)
	factory := version.prngFactory()

	steps, err := reversekey.Decode(reverseKeyB64, int(version))
	if err != nil {
		return "", err
	}

	plain, err := envelope.Decrypt(envelopeText, password, version.cipherMode())
	if err != nil {
		return "", err
	}

	blobBytes, err := base64Decode(string(plain))
	if err != nil {
		return "", err
	}
	obfuscatedWords, err := blob.Decode(blobBytes, len(steps))
	if err != nil {
		return "", err
	}

	words := make([]string, 0, len(obfuscatedWords))
	for i, ob := range obfuscatedWords {
		if i >= len(steps) {
			break
		}
		wordBytes, err := pipeline.Reverse(password, ob, steps[i], factory)
		if err != nil {
			return "", crypterr.Wrap(crypterr.KindPipelineError, "crypt.Decrypt", err)
		}
		words = append(words, string(wordBytes))
	}
	return strings.Join(words, " "), nil
}

// SelfTest runs the canonical encrypt/decrypt round trip
// (mnemonic="cat dog fish bird", password="MySecre!Password123") under
// version and reports whether the decrypted text matches the plaintext.
// This mirrors the embedded self-test the original implementation exposes
// as its own "test" command (see DESIGN.md).
func SelfTest(version Version) (mnemonic, encrypted, decrypted string, ok bool, err error) {
	mnemonic = "cat dog fish bird"
	password := "MySecre!Password123"

	encrypted, err = Encrypt(mnemonic, password, version)
	if err != nil {
		return mnemonic, "", "", false, err
	}

	var outer outerPayload
	if err = json.Unmarshal([]byte(encrypted), &outer); err != nil {
		return mnemonic, encrypted, "", false, crypterr.Wrap(crypterr.KindInvalidFormat, "crypt.SelfTest", err)
	}

	decrypted, err = Decrypt(outer.EncryptedData, outer.ReverseKey, password)
	if err != nil {
		return mnemonic, encrypted, "", false, err
	}

	return mnemonic, encrypted, decrypted, decrypted == mnemonic, nil
}
