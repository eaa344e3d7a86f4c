package pipeline

import (
	"bytes"
	"testing"

	"darkstar/internal/planner"
	"darkstar/internal/prng"
)

func TestPipelineRoundTripV1V2(t *testing.T) {
	words := []string{"cat", "dog", "fish", "bird", "x", "café"}
	password := "MySecre!Password123"
	for _, w := range words {
		steps := planner.Plan(password, w, prng.MulberryFactory, 12, false)
		fwd, err := Forward(password, []byte(w), steps, prng.MulberryFactory)
		if err != nil {
			t.Fatalf("word %q: forward error: %v", w, err)
		}
		back, err := Reverse(password, fwd, steps, prng.MulberryFactory)
		if err != nil {
			t.Fatalf("word %q: reverse error: %v", w, err)
		}
		if !bytes.Equal(back, []byte(w)) {
			t.Fatalf("word %q: round-trip mismatch, got %q", w, back)
		}
	}
}

func TestPipelineRoundTripV3(t *testing.T) {
	words := []string{"cat", "dog", "fish", "bird", "hello", "café"}
	password := "MySecre!Password123"
	for _, w := range words {
		depth := planner.CycleDepthV3(password, w)
		steps := planner.Plan(password, w, prng.ChaChaFactory, depth, true)
		fwd, err := Forward(password, []byte(w), steps, prng.ChaChaFactory)
		if err != nil {
			t.Fatalf("word %q: forward error: %v", w, err)
		}
		back, err := Reverse(password, fwd, steps, prng.ChaChaFactory)
		if err != nil {
			t.Fatalf("word %q: reverse error: %v", w, err)
		}
		if !bytes.Equal(back, []byte(w)) {
			t.Fatalf("word %q: round-trip mismatch, got %q", w, back)
		}
	}
}

func TestChecksumUsesOnlyFirstTwelveSteps(t *testing.T) {
	short := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 0}
	long := append(append([]int{}, short...), 1, 1, 1, 1, 1)
	if checksum(short) != checksum(long) {
		t.Fatalf("checksum should ignore entries beyond the first 12: %d vs %d", checksum(short), checksum(long))
	}
}
