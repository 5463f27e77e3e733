package buffer

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
)

// Errors returned by registry operations.
var (
	ErrBufferNotFound = errors.New("buffer not found")
)

// Registry manages all open buffers.
// It tracks open order and the active buffer, and answers the liveness
// and size queries other components use to resolve BufferID references.
type Registry struct {
	mu      sync.RWMutex
	buffers map[BufferID]*Buffer
	order   []BufferID // open order, for Next/Previous navigation
	active  BufferID
	counter int // for generating scratch buffer names
}

// NewRegistry creates an empty buffer registry.
func NewRegistry() *Registry {
	return &Registry{
		buffers: make(map[BufferID]*Buffer),
	}
}

// Open opens a buffer from a file and makes it active.
// Returns the existing buffer if the file is already open.
func (r *Registry) Open(path string) (*Buffer, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range r.order {
		if buf := r.buffers[id]; buf != nil && buf.Path() == absPath {
			r.active = id
			return buf, nil
		}
	}

	content, err := os.ReadFile(absPath)
	if err != nil {
		return nil, err
	}

	buf := newBuffer(filepath.Base(absPath), WithPath(absPath), WithContent(string(content)))
	r.addLocked(buf)
	return buf, nil
}

// OpenScratch creates a new scratch buffer and makes it active.
// An empty name yields "*scratch*", "*scratch-2*", and so on.
func (r *Registry) OpenScratch(name string) *Buffer {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.counter++
	if name == "" {
		name = "*scratch*"
		if r.counter > 1 {
			name = "*scratch-" + itoa(r.counter) + "*"
		}
	}

	buf := newBuffer(name)
	r.addLocked(buf)
	return buf
}

// addLocked registers a buffer and makes it active.
func (r *Registry) addLocked(buf *Buffer) {
	r.buffers[buf.ID()] = buf
	r.order = append(r.order, buf.ID())
	r.active = buf.ID()
}

// Close closes a buffer by ID.
// Components holding the ID discover the closure lazily via IsLive.
func (r *Registry) Close(id BufferID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.buffers[id]; !exists {
		return ErrBufferNotFound
	}

	delete(r.buffers, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	if r.active == id {
		r.active = ""
		if len(r.order) > 0 {
			r.active = r.order[len(r.order)-1]
		}
	}

	return nil
}

// Get returns a buffer by ID.
func (r *Registry) Get(id BufferID) (*Buffer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	buf, exists := r.buffers[id]
	return buf, exists
}

// Active returns the currently active buffer, or nil if none is open.
func (r *Registry) Active() *Buffer {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.buffers[r.active]
}

// SetActive makes the buffer with the given ID active.
func (r *Registry) SetActive(id BufferID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.buffers[id]; !exists {
		return ErrBufferNotFound
	}
	r.active = id
	return nil
}

// Next makes the next buffer in open order active and returns it.
// Wraps around at the end. Returns nil if no buffers are open.
func (r *Registry) Next() *Buffer {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.order) == 0 {
		return nil
	}

	idx := 0
	for i, id := range r.order {
		if id == r.active {
			idx = (i + 1) % len(r.order)
			break
		}
	}
	r.active = r.order[idx]
	return r.buffers[r.active]
}

// All returns all open buffers in open order.
func (r *Registry) All() []*Buffer {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bufs := make([]*Buffer, 0, len(r.order))
	for _, id := range r.order {
		if buf, exists := r.buffers[id]; exists {
			bufs = append(bufs, buf)
		}
	}
	return bufs
}

// Count returns the number of open buffers.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.buffers)
}

// IsLive reports whether the buffer with the given ID is still open.
func (r *Registry) IsLive(id BufferID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, exists := r.buffers[id]
	return exists
}

// ContentLen returns the byte length of the buffer with the given ID.
// Returns 0 if the buffer is not open.
func (r *Registry) ContentLen(id BufferID) ByteOffset {
	r.mu.RLock()
	buf, exists := r.buffers[id]
	r.mu.RUnlock()

	if !exists {
		return 0
	}
	return buf.Len()
}

// itoa converts an int to a string without fmt.
func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}
