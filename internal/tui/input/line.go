package input

import (
	"errors"
	"unicode/utf8"
)

// ReadLine collects one line of prompt input. Backspace drops the last
// character and bytes below space are ignored. CR or LF end the line.
// Timeouts are skipped. On ErrInterrupted, abort decides whether to give
// up; a false result keeps reading. The second result is false on EOF,
// a read error or an abort.
func ReadLine(r ByteReader, abort func() bool) (string, bool) {
	buf := make([]byte, 0, 64)
	for {
		b, err := r.ReadByte()
		switch {
		case err == nil:
		case errors.Is(err, ErrTimeout):
			continue
		case errors.Is(err, ErrInterrupted):
			if abort != nil && !abort() {
				continue
			}
			return "", false
		default:
			return "", false
		}

		switch {
		case b == '\r' || b == '\n':
			return string(buf), true
		case b == 0x08 || b == 0x7f:
			if len(buf) > 0 {
				_, size := utf8.DecodeLastRune(buf)
				buf = buf[:len(buf)-size]
			}
		case b >= ' ':
			buf = append(buf, b)
		}
	}
}
