package envelope

import (
	"bytes"
	"testing"

	"darkstar/internal/crypterr"
)

func TestCBCRoundTrip(t *testing.T) {
	plaintext := []byte("the quick brown fox jumps over the lazy dog")
	env, err := Encrypt(plaintext, "hunter2", ModeCBC)
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	got, err := Decrypt(env, "hunter2", ModeCBC)
	if err != nil {
		t.Fatalf("decrypt: %v", err)
	}
	if !bytes.Equal(got, plaintext) {
		t.Fatalf("round-trip mismatch: got %q want %q", got, plaintext)
	}
}

func TestGCMRoundTrip(t *testing.T) {
	plaintext := []byte("cat dog fish bird")
	env, err := Encrypt(plaintext, "MySecre!Password123", ModeGCM)
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	got, err := Decrypt(env, "MySecre!Password123", ModeGCM)
	if err != nil {
		t.Fatalf("decrypt: %v", err)
	}
	if !bytes.Equal(got, plaintext) {
		t.Fatalf("round-trip mismatch: got %q want %q", got, plaintext)
	}
}

func TestGCMTamperDetected(t *testing.T) {
	plaintext := []byte("cat dog fish bird")
	env, err := Encrypt(plaintext, "pw", ModeGCM)
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	tampered := []rune(env)
	// Flip a character deep in the base64 body, leaving the hex header intact.
	idx := len(tampered) - 1
	if tampered[idx] == 'A' {
		tampered[idx] = 'B'
	} else {
		tampered[idx] = 'A'
	}
	_, err = Decrypt(string(tampered), "pw", ModeGCM)
	if err == nil {
		t.Fatalf("expected authentication failure on tampered ciphertext")
	}
	if !crypterr.Is(err, crypterr.KindAuthenticationFailed) {
		t.Fatalf("expected KindAuthenticationFailed, got %v", err)
	}
}

func TestWrongPasswordFailsGCM(t *testing.T) {
	env, err := Encrypt([]byte("secret payload"), "correct-horse", ModeGCM)
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	if _, err := Decrypt(env, "wrong-password", ModeGCM); err == nil {
		t.Fatalf("expected decrypt failure with wrong password")
	}
}

func TestEncryptionIsRandomizedButDecryptsSame(t *testing.T) {
	plaintext := []byte("cat dog fish bird")
	a, err := Encrypt(plaintext, "pw", ModeGCM)
	if err != nil {
		t.Fatalf("encrypt a: %v", err)
	}
	b, err := Encrypt(plaintext, "pw", ModeGCM)
	if err != nil {
		t.Fatalf("encrypt b: %v", err)
	}
	if a == b {
		t.Fatalf("two encryptions of the same plaintext produced identical envelopes")
	}
	da, err := Decrypt(a, "pw", ModeGCM)
	if err != nil {
		t.Fatalf("decrypt a: %v", err)
	}
	db, err := Decrypt(b, "pw", ModeGCM)
	if err != nil {
		t.Fatalf("decrypt b: %v", err)
	}
	if !bytes.Equal(da, db) {
		t.Fatalf("decrypted plaintexts differ: %q vs %q", da, db)
	}
}

func TestPKCS7UnpadRejectsBadPadding(t *testing.T) {
	if _, err := pkcs7Unpad([]byte{1, 2, 3, 0}); err == nil {
		t.Fatalf("expected error for zero padding byte")
	}
	if _, err := pkcs7Unpad([]byte{1, 2, 3, 17}); err == nil {
		t.Fatalf("expected error for padding byte over block size")
	}
}
