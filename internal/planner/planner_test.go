package planner

import (
	"reflect"
	"testing"

	"darkstar/internal/prng"
)

func TestPlanIsPure(t *testing.T) {
	a := Plan("hunter2", "apple", prng.MulberryFactory, 12, false)
	b := Plan("hunter2", "apple", prng.MulberryFactory, 12, false)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("planning the same inputs twice diverged: %v vs %v", a, b)
	}
}

func TestPlanV1V2LengthTwelve(t *testing.T) {
	steps := Plan("pw", "word", prng.MulberryFactory, 12, false)
	if len(steps) != 12 {
		t.Fatalf("expected 12 steps, got %d", len(steps))
	}
	seen := make(map[int]bool)
	for _, s := range steps {
		if s < 0 || s > 11 {
			t.Fatalf("step index %d out of range", s)
		}
		seen[s] = true
	}
	if len(seen) != 12 {
		t.Fatalf("expected a permutation of 0..11, got %v", steps)
	}
}

func TestCycleDepthV3InRange(t *testing.T) {
	words := []string{"cat", "dog", "fish", "bird", "a", ""}
	for _, w := range words {
		d := CycleDepthV3("MySecre!Password123", w)
		if d < 12 || d > 64 {
			t.Fatalf("cycle depth %d for word %q out of [12,64]", d, w)
		}
	}
}

func TestPlanV3NoRemappedIndexBeyondTwelve(t *testing.T) {
	password := "MySecre!Password123"
	for _, word := range []string{"cat", "dog", "fish", "bird"} {
		depth := CycleDepthV3(password, word)
		steps := Plan(password, word, prng.ChaChaFactory, depth, true)
		if len(steps) != depth {
			t.Fatalf("word %q: expected %d steps, got %d", word, depth, len(steps))
		}
		for i := 12; i < len(steps); i++ {
			switch steps[i] {
			case 2, 3, 8, 9:
				t.Fatalf("word %q: step %d at position %d should have been remapped", word, steps[i], i)
			}
		}
	}
}

func TestPlanDiffersByWordAndPassword(t *testing.T) {
	a := Plan("pw", "alpha", prng.MulberryFactory, 12, false)
	b := Plan("pw", "beta", prng.MulberryFactory, 12, false)
	if reflect.DeepEqual(a, b) {
		t.Fatalf("different words produced identical step lists (vanishingly unlikely): %v", a)
	}
}
