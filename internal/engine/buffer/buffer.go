package buffer

import (
	"errors"
	"strings"
	"sync"
)

// Errors returned by buffer operations.
var (
	ErrOffsetOutOfRange = errors.New("offset out of range")
	ErrRangeInvalid     = errors.New("invalid range")
	ErrReadOnly         = errors.New("buffer is read-only")
)

// Buffer is a single open unit of editable text.
// All methods are thread-safe.
type Buffer struct {
	mu         sync.RWMutex
	id         BufferID
	name       string
	path       string
	content    string
	revisionID RevisionID
	readOnly   bool
}

// newBuffer creates a buffer with the given display name and content.
// Buffers are created through the Registry, not directly.
func newBuffer(name string, opts ...Option) *Buffer {
	b := &Buffer{
		id:         NewBufferID(),
		name:       name,
		revisionID: NewRevisionID(),
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// ID returns the buffer's stable identity.
func (b *Buffer) ID() BufferID {
	return b.id
}

// Name returns the display name (filename or a scratch title).
func (b *Buffer) Name() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.name
}

// Path returns the absolute file path (empty for scratch buffers).
func (b *Buffer) Path() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.path
}

// IsScratch returns true if this buffer is not backed by a file.
func (b *Buffer) IsScratch() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.path == ""
}

// IsReadOnly returns true if the buffer cannot be edited.
func (b *Buffer) IsReadOnly() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.readOnly
}

// Text returns the full buffer content.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.content
}

// Len returns the total byte length of the buffer.
func (b *Buffer) Len() ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return ByteOffset(len(b.content))
}

// LineCount returns the number of lines.
// An empty buffer has one (empty) line.
func (b *Buffer) LineCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return strings.Count(b.content, "\n") + 1
}

// LineText returns the text of a specific 0-indexed line (without newline).
// Returns an empty string if the line does not exist.
func (b *Buffer) LineText(line int) string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	rest := b.content
	for i := 0; i < line; i++ {
		idx := strings.IndexByte(rest, '\n')
		if idx < 0 {
			return ""
		}
		rest = rest[idx+1:]
	}
	if idx := strings.IndexByte(rest, '\n'); idx >= 0 {
		return rest[:idx]
	}
	return rest
}

// OffsetToPoint converts a byte offset to line/column.
// Offsets beyond the end of the buffer map to the last position.
func (b *Buffer) OffsetToPoint(offset ByteOffset) Point {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if offset > ByteOffset(len(b.content)) {
		offset = ByteOffset(len(b.content))
	}
	if offset < 0 {
		offset = 0
	}

	prefix := b.content[:offset]
	line := strings.Count(prefix, "\n")
	col := len(prefix)
	if idx := strings.LastIndexByte(prefix, '\n'); idx >= 0 {
		col = len(prefix) - idx - 1
	}
	return Point{Line: uint32(line), Column: uint32(col)}
}

// RevisionID returns the current revision ID.
func (b *Buffer) RevisionID() RevisionID {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.revisionID
}

// Insert inserts text at the given offset.
// Returns the end position of the inserted text.
func (b *Buffer) Insert(offset ByteOffset, text string) (ByteOffset, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.readOnly {
		return 0, ErrReadOnly
	}
	if offset < 0 || offset > ByteOffset(len(b.content)) {
		return 0, ErrOffsetOutOfRange
	}

	b.content = b.content[:offset] + text + b.content[offset:]
	b.revisionID = NewRevisionID()

	return offset + ByteOffset(len(text)), nil
}

// Delete removes text in the given range.
func (b *Buffer) Delete(start, end ByteOffset) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.readOnly {
		return ErrReadOnly
	}
	if start < 0 || start > end || end > ByteOffset(len(b.content)) {
		return ErrRangeInvalid
	}

	b.content = b.content[:start] + b.content[end:]
	b.revisionID = NewRevisionID()

	return nil
}

// SetText replaces the entire buffer content.
func (b *Buffer) SetText(text string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.readOnly {
		return ErrReadOnly
	}

	b.content = text
	b.revisionID = NewRevisionID()
	return nil
}
