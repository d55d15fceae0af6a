package input

import (
	"bufio"
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		check func(t *testing.T, in Input)
	}{
		{"motion report", "\x1b[<35;12;7M", func(t *testing.T, in Input) {
			if !in.Moved || in.Col != 12 || in.Row != 7 {
				t.Fatalf("got moved=%v col=%d row=%d", in.Moved, in.Col, in.Row)
			}
			if in.Click {
				t.Fatal("motion report counted as click")
			}
		}},
		{"left press", "\x1b[<0;3;4M", func(t *testing.T, in Input) {
			if !in.Click || in.Col != 3 || in.Row != 4 {
				t.Fatalf("got click=%v col=%d row=%d", in.Click, in.Col, in.Row)
			}
		}},
		{"left release", "\x1b[<0;3;4m", func(t *testing.T, in Input) {
			if in.Click {
				t.Fatal("release counted as click")
			}
		}},
		{"right press", "\x1b[<2;3;4M", func(t *testing.T, in Input) {
			if in.Click {
				t.Fatal("right button counted as click")
			}
		}},
		{"wheel", "\x1b[<64;3;4M", func(t *testing.T, in Input) {
			if in.Click {
				t.Fatal("wheel counted as click")
			}
		}},
		{"last position wins", "\x1b[<35;1;1M\x1b[<35;9;8M", func(t *testing.T, in Input) {
			if in.Col != 9 || in.Row != 8 {
				t.Fatalf("got col=%d row=%d", in.Col, in.Row)
			}
		}},
		{"focus out then in", "\x1b[O\x1b[I", func(t *testing.T, in Input) {
			if in.Blur {
				t.Fatal("focus regained in the same batch still reported as lost")
			}
		}},
		{"focus lost", "\x1b[O", func(t *testing.T, in Input) {
			if !in.Blur {
				t.Fatal("focus loss not reported")
			}
		}},
		{"quit", "q", func(t *testing.T, in Input) {
			if !in.Quit {
				t.Fatal("q did not quit")
			}
		}},
		{"ctrl-c", "\x03", func(t *testing.T, in Input) {
			if !in.Quit {
				t.Fatal("ctrl-c did not quit")
			}
		}},
		{"space clicks", " ", func(t *testing.T, in Input) {
			if !in.Click {
				t.Fatal("space did not click")
			}
		}},
		{"arrow key ignored", "\x1b[A", func(t *testing.T, in Input) {
			if in.Click || in.Moved || in.Quit {
				t.Fatalf("arrow key produced %+v", in)
			}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, rest := Parse([]byte(tt.in))
			if len(rest) != 0 {
				t.Fatalf("unexpected leftover %q", rest)
			}
			tt.check(t, in)
		})
	}
}

func TestParseKeepsPartialSequence(t *testing.T) {
	in, rest := Parse([]byte("x\x1b[<35;10"))
	if string(rest) != "\x1b[<35;10" {
		t.Fatalf("rest = %q", rest)
	}
	if in.Moved {
		t.Fatal("partial report applied")
	}

	in, rest = Parse(append(rest, []byte(";5M")...))
	if len(rest) != 0 || !in.Moved || in.Col != 10 || in.Row != 5 {
		t.Fatalf("completed report: %+v rest=%q", in, rest)
	}
}

func TestParseDropsGarbageReport(t *testing.T) {
	in, rest := Parse([]byte("\x1b[<" + strings.Repeat("9", 40) + "q"))
	if len(rest) != 0 {
		t.Fatalf("rest = %q", rest)
	}
	if !in.Quit {
		t.Fatal("key after garbage was not parsed")
	}
}

func TestStreamReportsClose(t *testing.T) {
	s := StartStream(bufio.NewReader(strings.NewReader("\x1b[<0;2;3M")))

	var got Input
	deadline := time.Now().Add(time.Second)
	for !got.Closed && time.Now().Before(deadline) {
		in := ReadInput(s)
		if in.Click {
			got.Click = true
		}
		got.Closed = in.Closed
		time.Sleep(time.Millisecond)
	}
	if !got.Click {
		t.Error("click from stream was lost")
	}
	if !got.Closed {
		t.Error("stream close was not reported")
	}
}

func TestEnableDisableMouse(t *testing.T) {
	var buf bytes.Buffer
	EnableMouse(&buf)
	DisableMouse(&buf)
	out := buf.String()
	for _, want := range []string{"\x1b[?1003h", "\x1b[?1006h", "\x1b[?1004h", "\x1b[?1003l"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}
