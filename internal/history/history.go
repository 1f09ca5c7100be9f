// Package history keeps a linear undo/redo log of whole-state snapshots.
// Recording a new state after an undo discards the states that could have
// been redone.
package history

import "slices"

// History manages undo/redo over snapshots of T. Snapshots are stored as
// given; callers must not mutate a state after handing it over.
type History[T any] struct {
	states  []T // states[0] is the initial state
	current int // index of the visible state
	max     int // maximum number of states to keep, 0 for no limit

	// evicted holds the states the last commit pushed out of a full
	// history, so that Revert can put them back.
	evicted []T
}

// Option configures a History.
type Option func(*config)

type config struct {
	max int
}

// WithLimit caps the number of stored states. The oldest states are dropped
// first. n <= 0 means unbounded.
func WithLimit(n int) Option {
	return func(c *config) { c.max = n }
}

// New creates a history whose only state is initial.
func New[T any](initial T, opts ...Option) *History[T] {
	var cfg config
	for _, o := range opts {
		o(&cfg)
	}
	return &History[T]{
		states: []T{initial},
		max:    max(cfg.max, 0),
	}
}

// Set records state. With overwrite the current state is replaced in place
// and no undo step is created; otherwise everything after the current
// state is discarded and state becomes a new step.
func (h *History[T]) Set(state T, overwrite bool) {
	if overwrite {
		h.states[h.current] = state
		return
	}

	// The redo tail is unreachable once a new step exists.
	if h.current < len(h.states)-1 {
		clear(h.states[h.current+1:])
		h.states = h.states[:h.current+1]
	}

	h.states = append(h.states, state)
	h.current++
	h.evicted = nil

	if h.max > 0 && len(h.states) > h.max {
		drop := len(h.states) - h.max
		h.evicted = slices.Clone(h.states[:drop])
		h.states = append(h.states[:0], h.states[drop:]...)
		h.current -= drop
	}
}

// Commit records state as a new undo step.
func (h *History[T]) Commit(state T) { h.Set(state, false) }

// Amend replaces the current state without creating an undo step.
func (h *History[T]) Amend(state T) { h.Set(state, true) }

// Revert discards the current state, along with anything redoable, and
// steps back to the previous one. States the discarded step's commit
// evicted under the limit are restored. It is a no-op on the oldest state.
func (h *History[T]) Revert() {
	if h.current == 0 {
		return
	}
	clear(h.states[h.current:])
	h.states = h.states[:h.current]
	h.current--

	if len(h.evicted) > 0 {
		h.states = slices.Concat(h.evicted, h.states)
		h.current += len(h.evicted)
		h.evicted = nil
	}
}

// Current returns the visible state.
func (h *History[T]) Current() T {
	return h.states[h.current]
}

// CanUndo reports whether an older state is available.
func (h *History[T]) CanUndo() bool {
	return h.current > 0
}

// CanRedo reports whether an undone state is waiting to be redone.
func (h *History[T]) CanRedo() bool {
	return h.current < len(h.states)-1
}

// Undo steps back one state. At the oldest state it does nothing.
func (h *History[T]) Undo() T {
	if h.CanUndo() {
		h.current--
		h.evicted = nil
	}
	return h.states[h.current]
}

// Redo steps forward one state. At the newest state it does nothing.
func (h *History[T]) Redo() T {
	if h.CanRedo() {
		h.current++
		h.evicted = nil
	}
	return h.states[h.current]
}

// Index returns the position of the visible state.
func (h *History[T]) Index() int { return h.current }

// Len returns the number of stored states.
func (h *History[T]) Len() int { return len(h.states) }

// Reset drops every state and starts over from initial.
func (h *History[T]) Reset(initial T) {
	clear(h.states)
	h.states = append(h.states[:0], initial)
	h.current = 0
	h.evicted = nil
}
