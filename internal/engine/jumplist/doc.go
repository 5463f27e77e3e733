// Package jumplist provides browser-style location history for the editor.
//
// The jumplist records where the user has been — a buffer identity plus
// a byte offset — and lets the user move backward and forward through
// those locations like a browser's back/forward stack.
//
// # Recording
//
// Record applies a merge-or-append policy: a new location in the same
// buffer within minDistance bytes of the most recent entry replaces it,
// so ordinary typing collapses into a single history point. A genuinely
// new location appends an entry and invalidates the forward stack, the
// same way a new page visit clears a browser's forward history.
//
// # Navigation
//
// Back and Forward move through the recorded locations:
//
//	list := jumplist.New(registry, navigator)
//	list.Record(id, 120)
//	list.Back(current)    // jump to the previous location
//	list.Forward()        // return toward where you came from
//
// On the first backward step the current location is captured first, so
// Forward can return to the exact starting point.
//
// # Stale references
//
// The jumplist holds non-owning BufferID references. Entries whose
// buffer has been closed are pruned lazily before every operation, and
// offsets are clamped to the buffer's current length. Operating on an
// empty history is a silent no-op, never an error.
package jumplist
