// Package input turns raw terminal bytes into pointer and key input.
//
// Pointer tracking relies on xterm SGR mouse reports (ESC [ < b ; x ; y M/m)
// with any-motion tracking, and focus reports (ESC [ I / ESC [ O).
package input

import (
	"bufio"
	"io"
	"strconv"
)

// Terminal mode sequences for pointer tracking.
const (
	enableSeq  = "\033[?1003h\033[?1006h\033[?1004h"
	disableSeq = "\033[?1004l\033[?1006l\033[?1003l"
)

// EnableMouse turns on any-motion mouse tracking, SGR encoding and focus reports.
func EnableMouse(w io.Writer) {
	io.WriteString(w, enableSeq)
}

// DisableMouse restores the terminal's default mouse and focus reporting.
func DisableMouse(w io.Writer) {
	io.WriteString(w, disableSeq)
}

// Input represents the current frame's input state.
type Input struct {
	Quit   bool
	Click  bool // primary button pressed, or space/enter
	Moved  bool // at least one pointer report arrived
	Col    int  // last reported pointer column (1-based, absolute)
	Row    int  // last reported pointer row (1-based, absolute)
	Blur   bool // terminal lost focus and did not regain it in this batch
	Closed bool // the underlying reader is gone

	Pressed []byte
}

// Active reports whether the frame carried anything a player did.
func (in Input) Active() bool {
	return in.Click || in.Moved || in.Quit || len(in.Pressed) > 0
}

// Stream delivers input bytes via a channel and keeps partial escape
// sequences between frames.
type Stream struct {
	ch      chan byte
	pending []byte
	closed  bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{ch: make(chan byte, 512)}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// ReadInput drains all available bytes from the stream (non-blocking).
func ReadInput(s *Stream) Input {
	buf := s.pending
	s.pending = nil

drain:
	for !s.closed {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	in, rest := Parse(buf)
	if len(rest) > 0 && !s.closed {
		s.pending = append([]byte(nil), rest...)
	}
	in.Closed = s.closed
	return in
}

// Parse decodes buf into an Input. An incomplete escape sequence at the end of
// buf is returned as rest so it can be completed by later bytes.
func Parse(buf []byte) (in Input, rest []byte) {
	for i := 0; i < len(buf); {
		b := buf[i]
		if b != '\x1b' {
			applyKey(&in, b)
			in.Pressed = append(in.Pressed, b)
			i++
			continue
		}

		n, complete := parseEscape(&in, buf[i:])
		if !complete {
			return in, buf[i:]
		}
		i += n
	}
	return in, nil
}

// applyKey handles a plain key byte.
func applyKey(in *Input, b byte) {
	switch b {
	case 'q', 'Q', '\x03':
		in.Quit = true
	case ' ', '\n', '\r':
		in.Click = true
	}
}

// parseEscape decodes one escape sequence at the start of seq and returns the
// number of bytes it used. complete is false if seq ends mid-sequence.
func parseEscape(in *Input, seq []byte) (n int, complete bool) {
	if len(seq) < 2 {
		return 0, false
	}
	if seq[1] != '[' {
		// Lone ESC or an Alt-modified key.
		return 1, true
	}
	if len(seq) < 3 {
		return 0, false
	}

	switch seq[2] {
	case 'I':
		// Regaining focus is not re-entry; the next pointer report inside
		// the play area is.
		in.Blur = false
		return 3, true
	case 'O':
		in.Blur = true
		return 3, true
	case '<':
		return parseSGRMouse(in, seq)
	}

	// Other CSI sequences (arrow keys etc.) end with a byte in 0x40..0x7e.
	for j := 2; j < len(seq); j++ {
		if seq[j] >= 0x40 && seq[j] <= 0x7e {
			return j + 1, true
		}
	}
	return 0, false
}

// Button bits of an SGR mouse report.
const (
	buttonMask   = 0x03
	buttonLeft   = 0
	motionFlag   = 32
	wheelFlag    = 64
	maxReportLen = 32
)

// parseSGRMouse decodes ESC [ < b ; x ; y (M|m).
func parseSGRMouse(in *Input, seq []byte) (n int, complete bool) {
	end := -1
	for j := 3; j < len(seq); j++ {
		if seq[j] == 'M' || seq[j] == 'm' {
			end = j
			break
		}
	}
	if end < 0 {
		if len(seq) > maxReportLen {
			// Garbage; drop the introducer and resync.
			return 3, true
		}
		return 0, false
	}

	fields := splitFields(seq[3:end])
	if len(fields) != 3 {
		return end + 1, true
	}
	button, err1 := strconv.Atoi(fields[0])
	col, err2 := strconv.Atoi(fields[1])
	row, err3 := strconv.Atoi(fields[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return end + 1, true
	}

	in.Moved = true
	in.Col = col
	in.Row = row

	pressed := seq[end] == 'M'
	if pressed && button&motionFlag == 0 && button&wheelFlag == 0 && button&buttonMask == buttonLeft {
		in.Click = true
	}
	return end + 1, true
}

func splitFields(b []byte) []string {
	var fields []string
	start := 0
	for i, c := range b {
		if c == ';' {
			fields = append(fields, string(b[start:i]))
			start = i + 1
		}
	}
	return append(fields, string(b[start:]))
}
