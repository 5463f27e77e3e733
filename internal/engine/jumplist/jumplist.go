package jumplist

import (
	"sync"

	"github.com/quarzedit/quarz/internal/engine/buffer"
)

// Default configuration values.
const (
	// DefaultMaxEntries is the default cap on the backward stack.
	DefaultMaxEntries = 30

	// DefaultMinDistance is the default merge threshold in bytes.
	// Locations closer than this within one buffer coalesce into a
	// single history point.
	DefaultMinDistance = 1000
)

// Entry is a single recorded location: a buffer identity and a byte
// offset within it. Entries are immutable values; the jumplist replaces
// entries rather than mutating them.
type Entry struct {
	Buffer buffer.BufferID
	Offset buffer.ByteOffset
}

// Resolver answers liveness and size queries for buffer references.
// The buffer registry implements this.
type Resolver interface {
	// IsLive reports whether the buffer is still open.
	IsLive(id buffer.BufferID) bool

	// ContentLen returns the buffer's current byte length.
	ContentLen(id buffer.BufferID) buffer.ByteOffset
}

// Navigator performs the host-side jump to a recorded location.
// Implementations must not re-record the jump as a new visit; it is a
// replay, not user motion.
type Navigator interface {
	JumpTo(e Entry) error
}

// NavigatorFunc adapts a function to the Navigator interface.
type NavigatorFunc func(e Entry) error

// JumpTo calls f(e).
func (f NavigatorFunc) JumpTo(e Entry) error { return f(e) }

// Status is a read-only summary of the history stacks.
type Status struct {
	Past   int
	Future int
}

// List is the location history manager. It holds the backward (past)
// and forward (future) stacks and applies the merge, prune, and
// traversal rules. The forward stack is populated only by backward
// steps, mirroring an undo/redo pair.
type List struct {
	mu sync.Mutex

	resolver Resolver
	nav      Navigator

	// Both stacks keep their head at the last element.
	past   []Entry
	future []Entry

	maxEntries  int
	minDistance int64
	eligible    func(Entry) bool
	logger      Logger
}

// Logger is the minimal logging surface the jumplist uses.
type Logger interface {
	Debug(msg string, args ...any)
}

// New creates a jumplist backed by the given resolver and navigator.
func New(resolver Resolver, nav Navigator, opts ...Option) *List {
	l := &List{
		resolver:    resolver,
		nav:         nav,
		maxEntries:  DefaultMaxEntries,
		minDistance: DefaultMinDistance,
		eligible:    func(Entry) bool { return true },
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Record registers a visited location.
//
// If the new location is in the same buffer as the most recent entry
// and within minDistance bytes of it, the entry is replaced in place.
// Otherwise the location is appended and the forward stack is cleared:
// new motion invalidates the forward path.
func (l *List) Record(id buffer.BufferID, offset buffer.ByteOffset) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.pruneLocked()
	l.recordLocked(Entry{Buffer: id, Offset: offset})
}

// recordLocked applies the merge-or-append policy.
// Callers must hold the lock and have pruned first.
func (l *List) recordLocked(e Entry) {
	n := len(l.past)
	if n > 0 {
		top := l.past[n-1]
		if top.Buffer == e.Buffer && absDelta(top.Offset, e.Offset) < l.minDistance {
			// Nearby motion in the same buffer: replace the head.
			l.past[n-1] = e
			return
		}

		// Genuinely new location: append and invalidate forward.
		l.past = append(l.past, e)
		l.future = nil
	} else {
		// Empty history: first entry, forward stack untouched.
		l.past = append(l.past, e)
	}

	if len(l.past) > l.maxEntries {
		excess := len(l.past) - l.maxEntries
		l.past = l.past[excess:]
	}
}

// Back moves to the previous recorded location.
//
// current is the editor's live position. When the forward stack is
// empty and current passes the eligibility predicate, current is
// recorded first so Forward can later return to it. When the user is
// already sitting at the most recent history point, Back looks one
// entry deeper; with nothing deeper it is a no-op.
//
// Returns the destination and whether a jump occurred.
func (l *List) Back(current Entry) (Entry, bool) {
	l.mu.Lock()

	l.pruneLocked()

	if len(l.future) == 0 && l.eligible(current) {
		l.recordLocked(current)
	}

	if len(l.past) == 0 {
		l.mu.Unlock()
		return Entry{}, false
	}

	candidate := l.past[len(l.past)-1]
	l.past = l.past[:len(l.past)-1]

	var dest Entry
	jumped := false

	if candidate == current {
		if len(l.past) > 0 {
			// Already at the top history point: hand it to the
			// forward stack and go one deeper.
			l.future = append(l.future, candidate)
			dest = l.past[len(l.past)-1]
			jumped = true
		} else {
			// Nothing further back; restore and stay put.
			l.past = append(l.past, candidate)
		}
	} else {
		// Ordinary case: jump to the most recent recorded point,
		// which stays on the past stack.
		l.past = append(l.past, candidate)
		dest = candidate
		jumped = true
	}

	l.mu.Unlock()

	if jumped {
		l.jump(dest)
	}
	return dest, jumped
}

// Forward moves toward the location the user most recently came back
// from. A no-op when the forward stack is empty.
//
// Returns the destination and whether a jump occurred.
func (l *List) Forward() (Entry, bool) {
	l.mu.Lock()

	l.pruneLocked()

	if len(l.future) == 0 {
		l.mu.Unlock()
		return Entry{}, false
	}

	dest := l.future[len(l.future)-1]
	l.future = l.future[:len(l.future)-1]

	l.past = append(l.past, dest)
	if len(l.past) > l.maxEntries {
		excess := len(l.past) - l.maxEntries
		l.past = l.past[excess:]
	}

	l.mu.Unlock()

	l.jump(dest)
	return dest, true
}

// Clear empties both stacks.
func (l *List) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.past = nil
	l.future = nil
}

// Status returns the entry counts of both stacks after pruning.
func (l *List) Status() Status {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.pruneLocked()
	return Status{Past: len(l.past), Future: len(l.future)}
}

// PastEntries returns a copy of the past stack, most recent first.
// No pruning is applied; use Status for pruned counts.
func (l *List) PastEntries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	entries := make([]Entry, len(l.past))
	for i, e := range l.past {
		entries[len(l.past)-1-i] = e
	}
	return entries
}

// FutureEntries returns a copy of the future stack, next destination first.
func (l *List) FutureEntries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	entries := make([]Entry, len(l.future))
	for i, e := range l.future {
		entries[len(l.future)-1-i] = e
	}
	return entries
}

// jump invokes the navigator for a replay destination.
func (l *List) jump(dest Entry) {
	if l.nav == nil {
		return
	}
	if err := l.nav.JumpTo(dest); err != nil && l.logger != nil {
		l.logger.Debug("jump failed: %v", err)
	}
}

// pruneLocked removes entries whose buffer has closed, clamps offsets
// to current buffer bounds, and truncates the past stack to maxEntries.
// Callers must hold the lock.
func (l *List) pruneLocked() {
	if l.resolver == nil {
		return
	}

	// Past: walk from the head (most recent), examining at most
	// maxEntries entries. Anything older is dropped even if live.
	kept := make([]Entry, 0, len(l.past))
	examined := 0
	for i := len(l.past) - 1; i >= 0 && examined < l.maxEntries; i-- {
		examined++
		e, ok := l.clampLive(l.past[i])
		if !ok {
			continue
		}
		kept = append(kept, e)
	}
	// kept is most-recent-first; restore oldest-first storage order.
	reverse(kept)
	l.past = kept

	// Future: liveness and clamp only, no cap.
	future := l.future[:0]
	for _, e := range l.future {
		if ce, ok := l.clampLive(e); ok {
			future = append(future, ce)
		}
	}
	l.future = future
}

// clampLive filters a dead entry and clamps a live one to buffer bounds.
func (l *List) clampLive(e Entry) (Entry, bool) {
	if !l.resolver.IsLive(e.Buffer) {
		return Entry{}, false
	}
	if max := l.resolver.ContentLen(e.Buffer) + 1; e.Offset > max {
		e.Offset = max
	}
	return e, true
}

// absDelta returns |a-b| for byte offsets.
func absDelta(a, b buffer.ByteOffset) int64 {
	if a > b {
		return int64(a - b)
	}
	return int64(b - a)
}

// reverse reverses a slice of entries in place.
func reverse(entries []Entry) {
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
}
