// Package study implements the study-session engine: the shuffle bag that
// randomizes card order without repeats, the course registry that owns course
// and bag state, and the session state machine driven by the host.
//
// The package is not safe for concurrent use. Every operation is synchronous
// and runs to completion; a host embedding the engine in a multi-threaded
// environment must serialize all calls to a given Session/Registry pair.
package study

import "math/rand/v2"

// ShuffleBag yields each index in [0, deckSize) exactly once, in uniformly
// random order, before reshuffling. A bag starts empty and is lazily
// populated on the first draw after creation, exhaustion, or invalidation.
type ShuffleBag struct {
	remaining []int
	deckSize  int
	seen      int
}

// NewShuffleBag returns an empty bag. The first Draw populates it.
func NewShuffleBag() *ShuffleBag {
	return &ShuffleBag{}
}

// Draw removes and returns one index from the bag, regenerating a fresh
// uniformly random permutation of [0, deckSize) first if the bag is empty.
//
// Across deckSize consecutive draws with no intervening Invalidate, every
// index appears exactly once. deckSize must be positive; the caller is
// responsible for never drawing from an empty course.
func (b *ShuffleBag) Draw(deckSize int) int {
	if deckSize <= 0 {
		// ALLOW-PANIC: caller contract violation; the session guards
		// against empty courses before drawing.
		panic("study: Draw requires a positive deck size")
	}

	if len(b.remaining) == 0 {
		b.remaining = rand.Perm(deckSize)
		b.deckSize = deckSize
		b.seen = 0
	}

	last := len(b.remaining) - 1
	index := b.remaining[last]
	b.remaining = b.remaining[:last]
	b.seen++

	return index
}

// Invalidate clears the bag, forcing regeneration on the next draw. Must be
// called whenever the course's card sequence shrinks or the course is freshly
// selected for study.
func (b *ShuffleBag) Invalidate() {
	b.remaining = nil
	b.deckSize = 0
	b.seen = 0
}

// Progress reports how many cards of the current pass have been seen and the
// deck size as of the last regeneration. The size is frozen for the duration
// of a pass even if the course grows mid-pass. Both counters are zero before
// the first draw and after invalidation.
func (b *ShuffleBag) Progress() (seen, deckSize int) {
	return b.seen, b.deckSize
}
