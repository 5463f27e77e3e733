package event

import "github.com/quarzedit/quarz/internal/engine/buffer"

// Editor activity topics.
const (
	// TopicCommandDone is published after an editing command completes.
	TopicCommandDone Topic = "command.done"

	// TopicBufferSwitched is published after the active buffer changes.
	TopicBufferSwitched Topic = "buffer.switched"

	// TopicBufferClosed is published after a buffer is closed.
	TopicBufferClosed Topic = "buffer.closed"

	// TopicMarkSet is published after an explicit mark is placed.
	TopicMarkSet Topic = "mark.set"
)

// CommandDone is published after an editing command completes.
type CommandDone struct {
	// Command is the command name (e.g. "insert", "delete", "paste").
	Command string

	// BufferID identifies the buffer the command ran in.
	BufferID buffer.BufferID

	// Offset is the cursor position after the command.
	Offset buffer.ByteOffset
}

// BufferSwitched is published after the active buffer changes.
type BufferSwitched struct {
	// BufferID identifies the newly active buffer.
	BufferID buffer.BufferID

	// Offset is the cursor position in the new buffer.
	Offset buffer.ByteOffset
}

// BufferClosed is published after a buffer is closed.
type BufferClosed struct {
	// BufferID identifies the closed buffer. The ID no longer
	// resolves through the registry.
	BufferID buffer.BufferID
}

// MarkSet is published after an explicit mark is placed.
type MarkSet struct {
	// BufferID identifies the buffer the mark was set in.
	BufferID buffer.BufferID

	// Offset is the marked position.
	Offset buffer.ByteOffset
}
