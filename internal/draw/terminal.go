package draw

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// Screen control sequences.
const (
	seqClear        = "\033[H\033[2J"
	seqHideCursor   = "\033[?25l"
	seqShowCursor   = "\033[?25h"
	seqAltScreenOn  = "\033[?1049h"
	seqAltScreenOff = "\033[?1049l"
)

// EnterScreen switches to the alternate screen, hides the cursor and clears it,
// so a session leaves the player's scrollback untouched.
func EnterScreen(w io.Writer) {
	io.WriteString(w, seqAltScreenOn+seqHideCursor+seqClear)
}

// LeaveScreen undoes EnterScreen.
func LeaveScreen(w io.Writer) {
	io.WriteString(w, seqClear+seqShowCursor+seqAltScreenOff)
}

// ClearScreen clears the terminal and moves the cursor home.
func ClearScreen(w io.Writer) {
	io.WriteString(w, seqClear)
}

// ChunkWriter collects one frame of HUD text and flushes it in chunks sized
// for SSH. Coordinates passed to it are relative to the render area; the
// offset centring that area in a larger terminal is added on write.
type ChunkWriter struct {
	buf    strings.Builder
	bufw   *bufio.Writer
	numBuf [20]byte
	offCol int
	offRow int
}

// NewChunkWriter creates a ChunkWriter on w with the given render area offset.
func NewChunkWriter(w io.Writer, offsetCol, offsetRow int) *ChunkWriter {
	return &ChunkWriter{
		bufw:   bufio.NewWriterSize(w, 8192),
		offCol: offsetCol,
		offRow: offsetRow,
	}
}

// SetOffset updates the render area offset after a resize.
func (cw *ChunkWriter) SetOffset(offsetCol, offsetRow int) {
	cw.offCol = offsetCol
	cw.offRow = offsetRow
}

// MoveCursor appends a cursor position sequence for 1-based area coordinates.
func (cw *ChunkWriter) MoveCursor(col, row int) {
	cw.buf.WriteString("\033[")
	cw.buf.Write(strconv.AppendInt(cw.numBuf[:0], int64(row+cw.offRow), 10))
	cw.buf.WriteByte(';')
	cw.buf.Write(strconv.AppendInt(cw.numBuf[:0], int64(col+cw.offCol), 10))
	cw.buf.WriteByte('H')
}

// Write implements io.Writer so the canvas can render into the same frame.
func (cw *ChunkWriter) Write(p []byte) (n int, err error) {
	return cw.buf.Write(p)
}

// WriteString appends s unchanged.
func (cw *ChunkWriter) WriteString(s string) {
	cw.buf.WriteString(s)
}

// WriteAt writes s starting at 1-based area coordinates.
func (cw *ChunkWriter) WriteAt(col, row int, s string) {
	cw.MoveCursor(col, row)
	cw.buf.WriteString(s)
}

// WriteStyledAt writes s in the given SGR style and resets the style after it.
func (cw *ChunkWriter) WriteStyledAt(col, row int, style, s string) {
	cw.MoveCursor(col, row)
	cw.buf.WriteString(style)
	cw.buf.WriteString(s)
	cw.buf.WriteString(ColorReset)
}

// Clear queues a full screen clear ahead of the rest of the frame.
func (cw *ChunkWriter) Clear() {
	cw.buf.WriteString(seqClear)
}

var _ io.Writer = (*ChunkWriter)(nil)

// Flush writes the frame in maxChunkSize pieces and resets the buffer.
func (cw *ChunkWriter) Flush() error {
	data := cw.buf.String()
	cw.buf.Reset()
	for len(data) > 0 {
		chunk := data[:min(len(data), maxChunkSize)]
		if _, err := cw.bufw.WriteString(chunk); err != nil {
			return err
		}
		data = data[len(chunk):]
	}
	return cw.bufw.Flush()
}

// TermSizeFunc returns the terminal size in cells. SSH sessions supply one
// fed by window change events.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc reads the size of the local terminal on stdout.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}
