package prng

import "testing"

// TestChaChaReferenceVectors pins the first eight outputs of the V3
// generator seeded by SHA-256("abc").
func TestChaChaReferenceVectors(t *testing.T) {
	want := []float64{
		0.9876848713029176,
		0.3320674553979188,
		0.02001589327119291,
		0.9652736424468458,
		0.11943974927999079,
		0.5141633483581245,
		0.6492044639308006,
		0.648659419035539,
	}

	c := NewChaCha("abc")
	for i, w := range want {
		got := c.Next()
		if got != w {
			t.Fatalf("output %d: got %v, want %v", i, got, w)
		}
	}
}

func TestChaChaDeterministic(t *testing.T) {
	a := NewChaCha("seed-value")
	b := NewChaCha("seed-value")
	for i := 0; i < 50; i++ {
		if a.Next() != b.Next() {
			t.Fatalf("draw %d diverged between identically seeded generators", i)
		}
	}
}

func TestChaChaRange(t *testing.T) {
	c := NewChaCha("range-check")
	for i := 0; i < 1000; i++ {
		v := c.Next()
		if v < 0 || v >= 1 {
			t.Fatalf("draw %d out of [0,1): %v", i, v)
		}
	}
}
