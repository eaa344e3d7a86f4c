package obfuscate

import (
	"bytes"
	"testing"

	"darkstar/internal/prng"
)

func TestTransformRoundTrip(t *testing.T) {
	factory := prng.MulberryFactory
	seeds := [][]byte{
		nil,
		[]byte("s"),
		[]byte("password123"),
		[]byte("a much longer seed string used for combined seeds"),
	}
	lengths := []int{0, 1, 2, 3, 7, 16, 64, 257, 1024}

	for idx := 0; idx < Count; idx++ {
		for _, seed := range seeds {
			for _, n := range lengths {
				input := make([]byte, n)
				for i := range input {
					input[i] = byte((i*31 + idx*7 + len(seed)) % 256)
				}

				var s []byte
				if IsSeeded(idx) {
					s = seed
				}

				fwd, err := Apply(idx, input, s, factory)
				if err != nil {
					t.Fatalf("idx=%d len=%d: forward error: %v", idx, n, err)
				}
				back, err := Unapply(idx, fwd, s, factory)
				if err != nil {
					t.Fatalf("idx=%d len=%d: inverse error: %v", idx, n, err)
				}
				if !bytes.Equal(back, input) {
					t.Fatalf("idx=%d (%s) len=%d seed=%q: round-trip mismatch\n in: %v\nout: %v", idx, Table[idx].Name, n, seed, input, back)
				}
			}
		}
	}
}

func TestAtbashSelfInverse(t *testing.T) {
	in := []byte("Hello, World! 123")
	out, _ := atbash(in, nil, nil)
	back, _ := atbash(out, nil, nil)
	if !bytes.Equal(back, in) {
		t.Fatalf("atbash not self-inverse: %q -> %q -> %q", in, out, back)
	}
}

func TestROT13SelfInverse(t *testing.T) {
	in := []byte("The Quick Brown Fox")
	out, _ := rot13(in, nil, nil)
	if bytes.Equal(out, in) && len(in) > 0 {
		t.Fatalf("rot13 should change ascii letters")
	}
	back, _ := rot13(out, nil, nil)
	if !bytes.Equal(back, in) {
		t.Fatalf("rot13 not self-inverse")
	}
}

func TestDecimalRoundTripEmpty(t *testing.T) {
	out, err := decimalEncode(nil, nil, nil)
	if err != nil || len(out) != 0 {
		t.Fatalf("expected empty encode, got %q err=%v", out, err)
	}
	back, err := decimalDecode(out, nil, nil)
	if err != nil || len(back) != 0 {
		t.Fatalf("expected empty decode, got %v err=%v", back, err)
	}
}

func TestVigenereRejectsOutOfRangeIntermediate(t *testing.T) {
	seed := []byte("k")
	// A value smaller than the key code cannot have come from a valid
	// forward pass and must be rejected rather than wrapped.
	_, err := vigenereDecode([]byte("0"), seed, nil)
	if err == nil {
		t.Fatalf("expected PipelineError for out-of-range intermediate")
	}
}

func TestShuffleInverseIsNotNaiveFisherYatesInversion(t *testing.T) {
	input := []byte("shuffle-me-please")
	seed := []byte("shuffle-seed")
	factory := prng.MulberryFactory

	fwd, err := shuffleForward(input, seed, factory)
	if err != nil {
		t.Fatalf("forward: %v", err)
	}
	back, err := shuffleInverse(fwd, seed, factory)
	if err != nil {
		t.Fatalf("inverse: %v", err)
	}
	if !bytes.Equal(back, input) {
		t.Fatalf("shuffle round-trip mismatch: %q -> %q -> %q", input, fwd, back)
	}
}
