// Package buffer provides text buffers and the registry of open buffers.
//
// A Buffer holds editable text content and is identified by an opaque
// BufferID. The Registry tracks every open buffer, which one is active,
// and answers liveness and size queries for components that hold
// non-owning references to buffers (such as the jumplist).
//
// # Buffers
//
// Buffers are created through the Registry, either from a file or as a
// scratch buffer:
//
//	reg := buffer.NewRegistry()
//	buf, err := reg.Open("main.go")
//	scratch := reg.OpenScratch("notes")
//
// # Identity
//
// BufferID values are stable for the lifetime of a buffer and are never
// reused. Holding a BufferID does not keep the buffer alive; resolve it
// through the Registry before use:
//
//	if reg.IsLive(id) {
//		n := reg.ContentLen(id)
//		...
//	}
package buffer
