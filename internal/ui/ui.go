// Package ui renders the editor in a terminal using tcell.
//
// The frontend is deliberately small: it draws the active buffer with a
// status line, applies basic edits, and publishes the command and switch
// events the session records history from.
package ui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/quarzedit/quarz/internal/app"
	"github.com/quarzedit/quarz/internal/engine/buffer"
)

// UI drives the terminal frontend for one session.
type UI struct {
	screen  tcell.Screen
	session *app.Session
	logger  *app.Logger
	message string
}

// New creates a UI on a real terminal screen.
func New(session *app.Session) (*UI, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewWithScreen(screen, session), nil
}

// NewWithScreen creates a UI on the given screen. Tests pass a
// tcell simulation screen.
func NewWithScreen(screen tcell.Screen, session *app.Session) *UI {
	return &UI{
		screen:  screen,
		session: session,
		logger:  session.Logger().WithComponent("ui"),
	}
}

// Run initializes the screen and processes events until quit.
func (u *UI) Run() error {
	if err := u.screen.Init(); err != nil {
		return err
	}
	defer u.screen.Fini()

	u.Draw()
	for {
		ev := u.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if err := u.HandleEvent(ev); err != nil {
			if err == app.ErrQuit {
				return nil
			}
			return err
		}
		u.Draw()
	}
}

// HandleEvent applies a single terminal event.
func (u *UI) HandleEvent(ev tcell.Event) error {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		u.screen.Sync()
	case *tcell.EventKey:
		return u.handleKey(ev)
	}
	return nil
}

func (u *UI) handleKey(ev *tcell.EventKey) error {
	switch ev.Key() {
	case tcell.KeyCtrlQ:
		return app.ErrQuit
	case tcell.KeyCtrlO:
		u.jump(u.session.JumpBack, "back")
	case tcell.KeyTab:
		u.jump(u.session.JumpForward, "forward")
	case tcell.KeyCtrlN:
		u.session.NextBuffer()
	case tcell.KeyCtrlG:
		u.session.ClearHistory()
		u.message = "history cleared"
	case tcell.KeyF2:
		u.session.SetMark()
		u.message = "mark set"
	case tcell.KeyLeft:
		u.moveCursor(0, -1)
	case tcell.KeyRight:
		u.moveCursor(0, 1)
	case tcell.KeyUp:
		u.moveCursor(-1, 0)
	case tcell.KeyDown:
		u.moveCursor(1, 0)
	case tcell.KeyHome:
		u.moveLineEdge(false)
	case tcell.KeyEnd:
		u.moveLineEdge(true)
	case tcell.KeyEnter:
		u.insert("\n")
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		u.deleteBack()
	case tcell.KeyRune:
		u.insert(string(ev.Rune()))
	}
	return nil
}

// jump runs a history navigation and reports the result.
func (u *UI) jump(nav func() bool, direction string) {
	if nav() {
		u.logger.Debug("jumped %s, history %s", direction, u.session.StatusLine())
		u.message = "jumped " + direction
		return
	}
	u.message = "no more history " + direction
}

// insert puts text at the cursor and records the edit.
func (u *UI) insert(text string) {
	buf := u.session.Registry().Active()
	if buf == nil {
		return
	}
	offset := u.clampedCursor(buf)
	end, err := buf.Insert(offset, text)
	if err != nil {
		u.message = err.Error()
		return
	}
	u.session.SetCursor(buf.ID(), end)
	u.session.NotifyCommandDone("insert")
}

// deleteBack removes the rune before the cursor and records the edit.
func (u *UI) deleteBack() {
	buf := u.session.Registry().Active()
	if buf == nil {
		return
	}
	offset := u.clampedCursor(buf)
	if offset == 0 {
		return
	}
	content := buf.Text()
	start := offset - 1
	for start > 0 && !isRuneStart(content[start]) {
		start--
	}
	if err := buf.Delete(start, offset); err != nil {
		u.message = err.Error()
		return
	}
	u.session.SetCursor(buf.ID(), start)
	u.session.NotifyCommandDone("delete")
}

// moveCursor moves by whole lines or by one rune horizontally.
func (u *UI) moveCursor(dLine, dCol int) {
	buf := u.session.Registry().Active()
	if buf == nil {
		return
	}
	content := buf.Text()
	offset := int(u.clampedCursor(buf))

	if dCol != 0 {
		if dCol > 0 && offset < len(content) {
			offset++
			for offset < len(content) && !isRuneStart(content[offset]) {
				offset++
			}
		} else if dCol < 0 && offset > 0 {
			offset--
			for offset > 0 && !isRuneStart(content[offset]) {
				offset--
			}
		}
		u.session.SetCursor(buf.ID(), buffer.ByteOffset(offset))
		return
	}

	starts := lineStarts(content)
	line, col := locate(starts, offset)
	line += dLine
	if line < 0 || line >= len(starts) {
		return
	}
	target := starts[line] + col
	if end := lineEnd(content, starts, line); target > end {
		target = end
	}
	u.session.SetCursor(buf.ID(), buffer.ByteOffset(target))
}

// moveLineEdge jumps to the start or end of the current line.
func (u *UI) moveLineEdge(end bool) {
	buf := u.session.Registry().Active()
	if buf == nil {
		return
	}
	content := buf.Text()
	starts := lineStarts(content)
	line, _ := locate(starts, int(u.clampedCursor(buf)))

	target := starts[line]
	if end {
		target = lineEnd(content, starts, line)
	}
	u.session.SetCursor(buf.ID(), buffer.ByteOffset(target))
}

// Draw renders the active buffer and the status line.
func (u *UI) Draw() {
	u.screen.Clear()
	width, height := u.screen.Size()
	if height < 2 {
		u.screen.Show()
		return
	}

	buf := u.session.Registry().Active()
	if buf != nil {
		content := buf.Text()
		starts := lineStarts(content)
		for y := 0; y < height-1 && y < len(starts); y++ {
			text := content[starts[y]:lineEnd(content, starts, y)]
			drawText(u.screen, 0, y, width, text, tcell.StyleDefault)
		}

		line, col := locate(starts, int(u.clampedCursor(buf)))
		u.screen.ShowCursor(col, line)
	}

	u.drawStatus(width, height-1, buf)
	u.screen.Show()
}

// drawStatus renders the bottom status bar.
func (u *UI) drawStatus(width, y int, buf *buffer.Buffer) {
	style := tcell.StyleDefault.Reverse(true)

	name := "no buffer"
	pos := ""
	if buf != nil {
		name = buf.Name()
		point := buf.OffsetToPoint(u.clampedCursor(buf))
		pos = fmt.Sprintf("Ln %d, Col %d", point.Line+1, point.Column+1)
	}

	status := fmt.Sprintf(" %s  %s  %s", name, pos, u.session.StatusLine())
	if u.message != "" {
		status += "  " + u.message
	}
	if len(status) < width {
		status += strings.Repeat(" ", width-len(status))
	}
	drawText(u.screen, 0, y, width, status, style)
}

// clampedCursor returns the tracked cursor bounded to the buffer.
func (u *UI) clampedCursor(buf *buffer.Buffer) buffer.ByteOffset {
	offset := u.session.Cursor(buf.ID())
	if max := buf.Len(); offset > max {
		offset = max
	}
	if offset < 0 {
		offset = 0
	}
	return offset
}

func drawText(screen tcell.Screen, x, y, width int, text string, style tcell.Style) {
	col := x
	for _, r := range text {
		if col >= width {
			return
		}
		screen.SetContent(col, y, r, nil, style)
		col++
	}
}

// lineStarts returns the byte offset of each line start.
func lineStarts(content string) []int {
	starts := []int{0}
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// lineEnd returns the offset just before the line's newline, or the
// content end for the last line.
func lineEnd(content string, starts []int, line int) int {
	if line+1 < len(starts) {
		return starts[line+1] - 1
	}
	return len(content)
}

// locate maps a byte offset to (line, column within line).
func locate(starts []int, offset int) (int, int) {
	line := 0
	for line+1 < len(starts) && starts[line+1] <= offset {
		line++
	}
	return line, offset - starts[line]
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
