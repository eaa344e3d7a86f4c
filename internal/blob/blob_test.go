package blob

import (
	"bytes"
	"testing"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	words := [][]byte{[]byte("one"), []byte("two-longer"), {}, []byte("four")}
	encoded, err := Encode(words)
	if err != nil {
		t.Fatalf("encode error: %v", err)
	}
	decoded, err := Decode(encoded, len(words))
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if len(decoded) != len(words) {
		t.Fatalf("expected %d words, got %d", len(words), len(decoded))
	}
	for i := range words {
		if !bytes.Equal(decoded[i], words[i]) {
			t.Fatalf("word %d mismatch: got %q want %q", i, decoded[i], words[i])
		}
	}
}

func TestDecodeStopsGracefullyOnTruncatedTail(t *testing.T) {
	words := [][]byte{[]byte("alpha"), []byte("beta")}
	encoded, err := Encode(words)
	if err != nil {
		t.Fatalf("encode error: %v", err)
	}
	truncated := encoded[:len(encoded)-1]
	decoded, err := Decode(truncated, len(words))
	if err != nil {
		t.Fatalf("expected graceful stop, got error: %v", err)
	}
	if len(decoded) != 1 {
		t.Fatalf("expected 1 complete word before truncation, got %d", len(decoded))
	}
}

func TestEncodeRejectsOversizedWord(t *testing.T) {
	big := make([]byte, MaxWordLen+1)
	_, err := Encode([][]byte{big})
	if err == nil {
		t.Fatalf("expected error for oversized word")
	}
}
