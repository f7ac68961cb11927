package road

import "testing"

func TestSeededSourceDeterminism(t *testing.T) {
	a := NewSeededSource(42)
	b := NewSeededSource(42)

	for i := 0; i < 100; i++ {
		if a.Float64() != b.Float64() {
			t.Fatalf("seeded sources diverged at draw %d", i)
		}
		if a.Intn(3) != b.Intn(3) {
			t.Fatalf("seeded Intn diverged at draw %d", i)
		}
	}
}

func TestSourceForSeed(t *testing.T) {
	if SourceForSeed(0) == nil || SourceForSeed(7) == nil {
		t.Fatal("SourceForSeed should always return a source")
	}
	a, b := SourceForSeed(7), SourceForSeed(7)
	if a.Float64() != b.Float64() {
		t.Error("non-zero seed should be deterministic")
	}
}

func TestChoice(t *testing.T) {
	src := &scriptedSource{ints: []int{2, 0}}
	items := []string{"a", "b", "c"}

	if got := Choice(src, items); got != "c" {
		t.Errorf("Choice() = %q, expected c", got)
	}
	if got := Choice(src, items); got != "a" {
		t.Errorf("Choice() = %q, expected a", got)
	}
}
