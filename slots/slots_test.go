package slots

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func newTestEngine(t *testing.T, words, constraints Pool) *Engine {
	t.Helper()

	e, err := New(words, constraints, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatalf("error: %v\n", err)
	}

	return e
}

func TestNew_EmptyPool(t *testing.T) {
	tests := []struct {
		description string
		words       Pool
		constraints Pool
	}{
		{description: "empty word pool", words: Pool{}, constraints: Pool{"c"}},
		{description: "empty constraint pool", words: Pool{"w"}, constraints: Pool{}},
		{description: "both pools empty", words: Pool{}, constraints: Pool{}},
	}

	for _, tc := range tests {
		_, err := New(tc.words, tc.constraints, rand.New(rand.NewSource(1)))
		if err != ErrEmptyPool {
			t.Errorf("(%s) got = %v, expected = %v\n", tc.description, err, ErrEmptyPool)
		}
	}
}

func TestNew_FillsEverySlot(t *testing.T) {
	e := newTestEngine(t, DefaultWords, DefaultConstraints)

	for _, slot := range []Slot{WordA, WordB, Constraint} {
		if e.Value(slot) == "" {
			t.Errorf("slot %v empty after New\n", slot)
		}
	}
}

func TestPick_EmptyPool(t *testing.T) {
	e := newTestEngine(t, Pool{"a"}, Pool{"c"})

	_, err := e.Pick(Pool{})
	if err != ErrEmptyPool {
		t.Errorf("got = %v, expected = %v\n", err, ErrEmptyPool)
	}
}

func TestPick_MemberOfPool(t *testing.T) {
	e := newTestEngine(t, Pool{"a"}, Pool{"c"})
	pool := Pool{"x", "y", "z"}

	for i := 0; i < 100; i++ {
		got, err := e.Pick(pool)
		if err != nil {
			t.Fatalf("error: %v\n", err)
		}

		if got != "x" && got != "y" && got != "z" {
			t.Errorf("got = %v, expected a member of %v\n", got, pool)
		}
	}
}

// TestReshuffle_AlwaysChanges verifies that a reshuffle over a pool with more
// than one element never returns the current value.
func TestReshuffle_AlwaysChanges(t *testing.T) {
	e := newTestEngine(t, Pool{"a"}, Pool{"c"})
	pool := Pool{"a", "b", "c", "d"}

	current := "a"
	for i := 0; i < 500; i++ {
		next := e.Reshuffle(pool, current)
		if next == current {
			t.Fatalf("reshuffle returned the current value %q on iteration %d\n", current, i)
		}
		current = next
	}
}

// TestReshuffle_TwoElements pins the example from the pool contract:
// reshuffling ["a","b"] away from "a" always lands on "b".
func TestReshuffle_TwoElements(t *testing.T) {
	e := newTestEngine(t, Pool{"a"}, Pool{"c"})

	for i := 0; i < 100; i++ {
		got := e.Reshuffle(Pool{"a", "b"}, "a")
		want := "b"

		if got != want {
			t.Errorf("got = %v, expected = %v\n", got, want)
		}
	}
}

func TestReshuffle_SingleElement(t *testing.T) {
	e := newTestEngine(t, Pool{"a"}, Pool{"c"})

	// Must terminate and return the only element, even though it matches
	// the current value.
	got := e.Reshuffle(Pool{"only"}, "only")
	want := "only"

	if got != want {
		t.Errorf("got = %v, expected = %v\n", got, want)
	}
}

func TestShuffle_UsesConstraintPool(t *testing.T) {
	e := newTestEngine(t, Pool{"w1", "w2"}, Pool{"c1", "c2"})

	for i := 0; i < 50; i++ {
		e.Shuffle(Constraint)
		got := e.Value(Constraint)
		if got != "c1" && got != "c2" {
			t.Errorf("got = %v, expected a constraint pool member\n", got)
		}
	}
}

func TestSetManual(t *testing.T) {
	e := newTestEngine(t, Pool{"w1", "w2"}, Pool{"c1", "c2"})

	// Manual text does not have to be a pool member.
	e.SetManual(WordA, "custom text")

	got := e.Value(WordA)
	want := "custom text"

	if got != want {
		t.Errorf("got = %v, expected = %v\n", got, want)
	}

	// A later shuffle draws from the pool again, and visibly changes the value.
	e.Shuffle(WordA)
	got = e.Value(WordA)
	if got != "w1" && got != "w2" {
		t.Errorf("got = %v, expected a word pool member\n", got)
	}
}

func TestValues_SlotOrder(t *testing.T) {
	e := newTestEngine(t, Pool{"w"}, Pool{"c"})

	e.SetManual(WordA, "first")
	e.SetManual(WordB, "second")
	e.SetManual(Constraint, "third")

	a, b, c := e.Values()

	got := []string{a, b, c}
	want := []string{"first", "second", "third"}

	if !cmp.Equal(got, want) {
		t.Errorf("got != want; diff = %v\n", cmp.Diff(got, want))
	}
}

// TestNew_CopiesPools verifies that mutating the caller's slice after New does
// not leak into the engine.
func TestNew_CopiesPools(t *testing.T) {
	words := Pool{"w1", "w2"}
	e := newTestEngine(t, words, Pool{"c"})

	words[0] = "mutated"
	words[1] = "mutated"

	for i := 0; i < 50; i++ {
		e.Shuffle(WordA)
		if e.Value(WordA) == "mutated" {
			t.Fatal("engine observed caller mutation of the word pool")
		}
	}
}
