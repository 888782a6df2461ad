package digest

import (
	"io"
	"time"
	"unicode/utf8"
)

// typewriterSleep is the pause between runes. Tests override it.
var typewriterSleep = time.Sleep

// TypewriterWriter passes writes through one rune at a time with a pause
// after each, for a typed-out effect on a terminal.
type TypewriterWriter struct {
	w     io.Writer
	delay time.Duration
}

// NewTypewriter wraps w. A non-positive delay returns w unchanged.
func NewTypewriter(w io.Writer, delay time.Duration) io.Writer {
	if delay <= 0 {
		return w
	}
	return &TypewriterWriter{w: w, delay: delay}
}

func (t *TypewriterWriter) Write(p []byte) (int, error) {
	written := 0
	for len(p) > 0 {
		_, size := utf8.DecodeRune(p)
		n, err := t.w.Write(p[:size])
		written += n
		if err != nil {
			return written, err
		}
		p = p[size:]
		typewriterSleep(t.delay)
	}
	return written, nil
}
