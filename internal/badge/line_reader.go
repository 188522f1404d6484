package badge

import (
	"bufio"
	"context"
	"io"
	"strings"
	"time"
)

// LineReader reads one badge tag per line.  Keyboard-wedge RFID readers
// emit the tag followed by a newline, so this covers both real wedge
// hardware on stdin and piped input in tests and simulations.
type LineReader struct {
	lines chan string
	now   func() time.Time
}

func NewLineReader(r io.Reader) *LineReader {
	lr := &LineReader{
		lines: make(chan string),
		now:   time.Now,
	}
	go func() {
		defer close(lr.lines)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			line := strings.TrimSpace(sc.Text())
			if line == "" {
				continue
			}
			lr.lines <- line
		}
	}()
	return lr
}

func (r *LineReader) Read(ctx context.Context) (Scan, error) {
	select {
	case <-ctx.Done():
		return Scan{}, ctx.Err()
	case line, ok := <-r.lines:
		if !ok {
			return Scan{}, io.EOF
		}
		return Scan{Tag: strings.ToUpper(line), At: r.now().UTC()}, nil
	}
}
