package slots

import (
	"errors"
	"math/rand"
	"time"
)

// Slot identifies one of the three prompt slots.
type Slot int

const (
	WordA Slot = iota
	WordB
	Constraint
)

var ErrEmptyPool = errors.New("empty pool")

// Pool is an immutable ordered list of candidate strings.
// Engines copy pools at construction and never write to them.
type Pool []string

func (p Pool) clone() Pool {
	out := make(Pool, len(p))
	copy(out, p)
	return out
}

// Engine holds the current value of each prompt slot and draws new ones
// from its pools. Word slots draw from the word pool, the constraint slot
// from the constraint pool.
type Engine struct {
	rng         *rand.Rand
	words       Pool
	constraints Pool
	values      [3]string
}

// New returns an engine with all three slots filled. A nil rng gets a
// time-based seed; tests pass a seeded one.
func New(words, constraints Pool, rng *rand.Rand) (*Engine, error) {
	if len(words) == 0 || len(constraints) == 0 {
		return nil, ErrEmptyPool
	}

	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	e := &Engine{
		rng:         rng,
		words:       words.clone(),
		constraints: constraints.clone(),
	}
	e.ShuffleAll()

	return e, nil
}

// Pick returns a uniformly random element of the pool.
func (e *Engine) Pick(pool Pool) (string, error) {
	if len(pool) == 0 {
		return "", ErrEmptyPool
	}

	return pool[e.rng.Intn(len(pool))], nil
}

// Reshuffle picks from the pool until the value changes, so a shuffle is
// always visible. A single-element pool is degenerate: its only element is
// returned immediately instead of looping forever.
func (e *Engine) Reshuffle(pool Pool, current string) string {
	if len(pool) == 0 {
		return current
	}

	if len(pool) == 1 {
		return pool[0]
	}

	for {
		next := pool[e.rng.Intn(len(pool))]
		if next != current {
			return next
		}
	}
}

// Shuffle replaces the slot's value with a fresh draw from its pool.
func (e *Engine) Shuffle(slot Slot) {
	e.values[slot] = e.Reshuffle(e.pool(slot), e.values[slot])
}

// ShuffleAll reshuffles every slot.
func (e *Engine) ShuffleAll() {
	for _, slot := range []Slot{WordA, WordB, Constraint} {
		e.Shuffle(slot)
	}
}

// SetManual overwrites a slot with arbitrary text. The text is not checked
// against the pool; a later Shuffle draws from the pool again.
func (e *Engine) SetManual(slot Slot, text string) {
	e.values[slot] = text
}

// Value returns the slot's current value.
func (e *Engine) Value(slot Slot) string {
	return e.values[slot]
}

// Values returns the three slot values in slot order.
func (e *Engine) Values() (wordA, wordB, constraint string) {
	return e.values[WordA], e.values[WordB], e.values[Constraint]
}

func (e *Engine) pool(slot Slot) Pool {
	if slot == Constraint {
		return e.constraints
	}
	return e.words
}
