package buffer

// Option is a functional option for configuring a Buffer.
type Option func(*Buffer)

// WithContent sets the buffer's initial content.
func WithContent(text string) Option {
	return func(b *Buffer) {
		b.content = text
	}
}

// WithPath sets the buffer's backing file path.
func WithPath(path string) Option {
	return func(b *Buffer) {
		b.path = path
	}
}

// WithReadOnly marks the buffer as read-only.
func WithReadOnly() Option {
	return func(b *Buffer) {
		b.readOnly = true
	}
}
