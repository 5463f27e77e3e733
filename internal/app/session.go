// Package app wires the editor pieces together: the buffer registry,
// the location history, the event bus, and configuration.
package app

import (
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/quarzedit/quarz/internal/config"
	"github.com/quarzedit/quarz/internal/engine/buffer"
	"github.com/quarzedit/quarz/internal/engine/jumplist"
	"github.com/quarzedit/quarz/internal/event"
)

// Session owns the state of one editor instance.
//
// It subscribes to the trigger topics on the bus and records eligible
// cursor positions into the jumplist, and it implements the jumplist's
// Navigator so backward/forward jumps switch the active buffer without
// re-recording the replayed motion.
type Session struct {
	registry *buffer.Registry
	history  *jumplist.List
	bus      *event.Bus
	logger   *Logger

	mu       sync.Mutex
	cursors  map[buffer.BufferID]buffer.ByteOffset
	cfg      config.Config
	triggers map[string]bool
	subs     []event.Subscription

	// replaying suppresses recording while a history jump replays a
	// buffer switch.
	replaying atomic.Bool
}

// NewSession creates a session with the given configuration.
// A nil logger disables logging.
func NewSession(cfg config.Config, logger *Logger) *Session {
	if logger == nil {
		logger = NullLogger
	}

	s := &Session{
		registry: buffer.NewRegistry(),
		bus:      event.NewBus(),
		logger:   logger,
		cursors:  make(map[buffer.BufferID]buffer.ByteOffset),
		cfg:      cfg,
	}

	s.history = jumplist.New(s.registry, s,
		jumplist.WithMaxEntries(cfg.History.MaxEntries),
		jumplist.WithMinDistance(cfg.History.MinDistance),
		jumplist.WithEligibility(s.entryEligible),
		jumplist.WithLogger(logger.WithComponent("jumplist")),
	)
	s.triggers = triggerSet(cfg.History.TriggerCommands)
	s.subscribe()

	return s
}

// subscribe wires the recording triggers to the jumplist.
func (s *Session) subscribe() {
	add := func(pattern event.Topic, h event.Handler) {
		sub, err := s.bus.Subscribe(pattern, h)
		if err != nil {
			s.logger.Error("subscribing %s: %v", pattern, err)
			return
		}
		s.subs = append(s.subs, sub)
	}

	add(event.TopicCommandDone, s.handleCommandDone)
	add(event.TopicBufferSwitched, s.handleBufferSwitched)
	add(event.TopicMarkSet, s.handleMarkSet)
	add(event.TopicBufferClosed, s.handleBufferClosed)
}

// Registry returns the buffer registry.
func (s *Session) Registry() *buffer.Registry {
	return s.registry
}

// History returns the location history.
func (s *Session) History() *jumplist.List {
	return s.history
}

// Bus returns the event bus.
func (s *Session) Bus() *event.Bus {
	return s.bus
}

// Logger returns the session logger.
func (s *Session) Logger() *Logger {
	return s.logger
}

// Close drops the session's bus subscriptions.
func (s *Session) Close() {
	s.mu.Lock()
	subs := s.subs
	s.subs = nil
	s.mu.Unlock()

	for _, sub := range subs {
		_ = s.bus.Unsubscribe(sub)
	}
}

// Cursor management

// SetCursor updates the tracked cursor position for a buffer.
func (s *Session) SetCursor(id buffer.BufferID, offset buffer.ByteOffset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursors[id] = offset
}

// Cursor returns the tracked cursor position for a buffer.
func (s *Session) Cursor(id buffer.BufferID) buffer.ByteOffset {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursors[id]
}

// CurrentEntry returns the active buffer and its cursor as a history
// entry. Returns false if no buffer is open.
func (s *Session) CurrentEntry() (jumplist.Entry, bool) {
	buf := s.registry.Active()
	if buf == nil {
		return jumplist.Entry{}, false
	}
	return jumplist.Entry{Buffer: buf.ID(), Offset: s.Cursor(buf.ID())}, true
}

// Buffer operations

// OpenFile opens a file, makes it active, and publishes the switch.
func (s *Session) OpenFile(path string) (*buffer.Buffer, error) {
	buf, err := s.registry.Open(path)
	if err != nil {
		return nil, err
	}
	s.publishSwitch(buf)
	return buf, nil
}

// OpenScratch opens a scratch buffer, makes it active, and publishes
// the switch.
func (s *Session) OpenScratch(name string) *buffer.Buffer {
	buf := s.registry.OpenScratch(name)
	s.publishSwitch(buf)
	return buf
}

// SwitchTo makes the buffer active and publishes the switch.
func (s *Session) SwitchTo(id buffer.BufferID) error {
	if err := s.registry.SetActive(id); err != nil {
		return err
	}
	if buf, ok := s.registry.Get(id); ok {
		s.publishSwitch(buf)
	}
	return nil
}

// NextBuffer cycles to the next buffer in open order.
func (s *Session) NextBuffer() *buffer.Buffer {
	buf := s.registry.Next()
	if buf != nil {
		s.publishSwitch(buf)
	}
	return buf
}

// CloseBuffer closes a buffer. History entries pointing at it are
// pruned lazily on the next history operation.
func (s *Session) CloseBuffer(id buffer.BufferID) error {
	if err := s.registry.Close(id); err != nil {
		return err
	}

	s.mu.Lock()
	delete(s.cursors, id)
	s.mu.Unlock()

	s.bus.Publish(event.TopicBufferClosed, event.BufferClosed{BufferID: id})
	return nil
}

// publishSwitch announces the new active buffer on the bus.
func (s *Session) publishSwitch(buf *buffer.Buffer) {
	s.bus.Publish(event.TopicBufferSwitched, event.BufferSwitched{
		BufferID: buf.ID(),
		Offset:   s.Cursor(buf.ID()),
	})
}

// NotifyCommandDone publishes completion of a named editing command in
// the active buffer. The frontend calls this after applying an edit.
func (s *Session) NotifyCommandDone(command string) {
	cur, ok := s.CurrentEntry()
	if !ok {
		return
	}
	s.bus.Publish(event.TopicCommandDone, event.CommandDone{
		Command:  command,
		BufferID: cur.Buffer,
		Offset:   cur.Offset,
	})
}

// SetMark publishes an explicit mark at the current position.
func (s *Session) SetMark() {
	cur, ok := s.CurrentEntry()
	if !ok {
		return
	}
	s.bus.Publish(event.TopicMarkSet, event.MarkSet{
		BufferID: cur.Buffer,
		Offset:   cur.Offset,
	})
}

// History operations, bindable as user actions.

// JumpBack moves to the previous location in history.
// Returns true if a jump occurred.
func (s *Session) JumpBack() bool {
	cur, ok := s.CurrentEntry()
	if !ok {
		return false
	}
	_, jumped := s.history.Back(cur)
	return jumped
}

// JumpForward moves forward through backward-traversed locations.
// Returns true if a jump occurred.
func (s *Session) JumpForward() bool {
	_, jumped := s.history.Forward()
	return jumped
}

// ClearHistory empties the location history.
func (s *Session) ClearHistory() {
	s.history.Clear()
}

// HistoryStatus returns the pruned past/future counts.
func (s *Session) HistoryStatus() jumplist.Status {
	return s.history.Status()
}

// StatusLine renders the history counts for the status line.
func (s *Session) StatusLine() string {
	st := s.history.Status()
	return fmt.Sprintf("[%d|%d]", st.Past, st.Future)
}

// JumpTo implements jumplist.Navigator. It activates the target buffer
// and moves the cursor with recording suppressed: the replayed switch
// must not pollute the history it is replaying.
func (s *Session) JumpTo(e jumplist.Entry) error {
	if err := s.registry.SetActive(e.Buffer); err != nil {
		return err
	}
	s.SetCursor(e.Buffer, e.Offset)

	s.replaying.Store(true)
	defer s.replaying.Store(false)

	s.bus.Publish(event.TopicBufferSwitched, event.BufferSwitched{
		BufferID: e.Buffer,
		Offset:   e.Offset,
	})
	return nil
}

// Configuration

// Config returns the current configuration.
func (s *Session) Config() config.Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}

// ApplyConfig re-applies configuration, typically after a live reload.
func (s *Session) ApplyConfig(cfg config.Config) {
	s.mu.Lock()
	s.cfg = cfg
	s.triggers = triggerSet(cfg.History.TriggerCommands)
	s.mu.Unlock()

	s.history.SetMaxEntries(cfg.History.MaxEntries)
	s.history.SetMinDistance(cfg.History.MinDistance)
	s.logger.Info("configuration applied: min_distance=%d max_entries=%d",
		cfg.History.MinDistance, cfg.History.MaxEntries)
}

// Event handlers

// handleCommandDone records the position after a trigger command.
func (s *Session) handleCommandDone(_ event.Topic, payload any) {
	done, ok := payload.(event.CommandDone)
	if !ok || s.replaying.Load() {
		return
	}
	if !s.isTrigger(done.Command) {
		return
	}
	s.SetCursor(done.BufferID, done.Offset)
	s.record(done.BufferID, done.Offset)
}

// handleBufferSwitched records the position after a buffer switch.
func (s *Session) handleBufferSwitched(_ event.Topic, payload any) {
	switched, ok := payload.(event.BufferSwitched)
	if !ok || s.replaying.Load() {
		return
	}
	s.record(switched.BufferID, switched.Offset)
}

// handleMarkSet records an explicitly marked position.
func (s *Session) handleMarkSet(_ event.Topic, payload any) {
	mark, ok := payload.(event.MarkSet)
	if !ok || s.replaying.Load() {
		return
	}
	s.record(mark.BufferID, mark.Offset)
}

// handleBufferClosed logs the closure; pruning is lazy.
func (s *Session) handleBufferClosed(_ event.Topic, payload any) {
	if closed, ok := payload.(event.BufferClosed); ok {
		s.logger.Debug("buffer closed: %s", closed.BufferID)
	}
}

// record adds an eligible location to the history.
func (s *Session) record(id buffer.BufferID, offset buffer.ByteOffset) {
	if !s.bufferEligible(id) {
		return
	}
	s.history.Record(id, offset)
}

// Eligibility

// entryEligible is the jumplist's capture predicate.
func (s *Session) entryEligible(e jumplist.Entry) bool {
	return s.bufferEligible(e.Buffer)
}

// bufferEligible reports whether positions in the buffer may be
// recorded: the buffer is live and its name matches no exclude pattern.
func (s *Session) bufferEligible(id buffer.BufferID) bool {
	buf, ok := s.registry.Get(id)
	if !ok {
		return false
	}

	name := buf.Name()
	s.mu.Lock()
	patterns := s.cfg.History.ExcludePatterns
	s.mu.Unlock()

	for _, pattern := range patterns {
		if matched, err := filepath.Match(pattern, name); err == nil && matched {
			return false
		}
	}
	return true
}

// isTrigger reports whether the command records history.
func (s *Session) isTrigger(command string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.triggers[command]
}

// triggerSet builds a lookup set from the configured command list.
func triggerSet(commands []string) map[string]bool {
	set := make(map[string]bool, len(commands))
	for _, cmd := range commands {
		set[cmd] = true
	}
	return set
}
