package core

import (
	"sync"
	"time"
)

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionFlap           // Space, Up, W, mouse press - primary action
	ActionStart          // Enter - leave the intro screen
	ActionRestart        // R - start a new run after game over
	ActionQuit           // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionFlap:
		return "Flap"
	case ActionStart:
		return "Start"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame is the input consumed by one simulation tick: the edge-triggered
// actions that arrived since the previous tick plus the sampled lift level.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool

	// Lift is true while a hold input (key autorepeat or pointer) is down.
	Lift bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// InputBuffer collects input events delivered asynchronously to the frame
// loop. Edges are coalesced until the next Drain; the lift level is sampled
// at Drain time. Safe for concurrent use.
//
// Terminals report key presses but never releases, so a keyboard hold is
// inferred from autorepeat. The first repeat of a held key arrives after the
// OS repeat delay, later ones every few tens of milliseconds:
//
//   - a press sooner than keyHold after the initial press is a new tap;
//   - the first press between keyHold and repeatDelay after it is the start
//     of autorepeat and continues the hold;
//   - once repeating, a press within keyHold of the previous one continues
//     the hold; a longer gap starts a new one.
//
// Lift is held for keyHold after every press or repeat. Pointer input
// reports both press and release and needs no timeout.
type InputBuffer struct {
	mu          sync.Mutex
	edges       map[Action]bool
	keyHold     time.Duration
	repeatDelay time.Duration
	keyDown     bool
	keyFirst    time.Time // Initial press of the current key hold
	keySeen     time.Time // Last press or repeat
	repeating   bool
	pointer     bool
}

// NewInputBuffer creates a buffer whose keyboard lift lasts keyHold after
// each key event and which waits up to repeatDelay for autorepeat to begin.
func NewInputBuffer(keyHold, repeatDelay time.Duration) *InputBuffer {
	return &InputBuffer{
		edges:       make(map[Action]bool),
		keyHold:     keyHold,
		repeatDelay: max(repeatDelay, keyHold),
	}
}

// Trigger records a discrete action for the next tick.
func (b *InputBuffer) Trigger(a Action) {
	if a == ActionNone {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.edges[a] = true
}

// PressKey records a press (or autorepeat) of the hold key. Only the first
// press of a hold produces a flap edge. Returns true when it did.
func (b *InputBuffer) PressKey(now time.Time) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	repeat := b.isRepeat(now)
	b.keySeen = now
	b.keyDown = true
	if repeat {
		b.repeating = true
		return false
	}

	b.keyFirst = now
	b.repeating = false
	if b.pointer {
		return false
	}
	b.edges[ActionFlap] = true
	return true
}

// isRepeat reports whether a press at now continues the current key hold.
// Caller must hold b.mu.
func (b *InputBuffer) isRepeat(now time.Time) bool {
	if b.keyFirst.IsZero() {
		return false
	}
	if b.repeating {
		return now.Sub(b.keySeen) <= b.keyHold
	}
	since := now.Sub(b.keyFirst)
	return since >= b.keyHold && since <= b.repeatDelay
}

// ReleaseKey ends a keyboard hold immediately, for hosts that do report
// key release.
func (b *InputBuffer) ReleaseKey() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.releaseKey()
}

// PressPointer records a pointer or touch press. Returns true when it
// produced a flap edge.
func (b *InputBuffer) PressPointer(now time.Time) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.expireKey(now)
	if b.pointer || b.keyDown {
		b.pointer = true
		return false
	}
	b.pointer = true
	b.edges[ActionFlap] = true
	return true
}

// ReleasePointer ends a pointer hold.
func (b *InputBuffer) ReleasePointer() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pointer = false
}

// Held reports whether any hold input is down at the given time.
func (b *InputBuffer) Held(now time.Time) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.expireKey(now)
	return b.keyDown || b.pointer
}

// Drain returns the pending edges plus the current lift level and clears
// the edges. Each edge is delivered to exactly one tick.
func (b *InputBuffer) Drain(now time.Time) InputFrame {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.expireKey(now)
	frame := NewInputFrame()
	for a := range b.edges {
		frame.Actions[a] = true
		delete(b.edges, a)
	}
	frame.Lift = b.keyDown || b.pointer
	return frame
}

// Reset drops pending edges and all hold state.
func (b *InputBuffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	clear(b.edges)
	b.releaseKey()
	b.pointer = false
}

// expireKey drops the keyboard lift once no press or repeat arrived for
// keyHold. The hold itself may still continue if autorepeat starts later.
// Caller must hold b.mu.
func (b *InputBuffer) expireKey(now time.Time) {
	if b.keyDown && now.Sub(b.keySeen) > b.keyHold {
		b.keyDown = false
	}
}

// releaseKey forgets the keyboard hold. Caller must hold b.mu.
func (b *InputBuffer) releaseKey() {
	b.keyDown = false
	b.keyFirst = time.Time{}
	b.keySeen = time.Time{}
	b.repeating = false
}
