package feed

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
)

const readBufferSize = 64 * 1024

type LoadOptions struct {
	Lazy       bool
	Classifier Classifier
}

// Load reads every record from r in file order. In lazy mode only offsets
// and the new/read classification are kept.
func Load(r io.Reader, opts LoadOptions) ([]Item, error) {
	items := make([]Item, 0, 64)
	err := scanLines(r, func(line string, off int64) {
		if opts.Lazy {
			ts, link := peekLine(line)
			it := Item{Offset: off}
			it.Time, it.TimeOK = ParseTime(ts)
			it.New = opts.Classifier.IsNew(link, it.Time, it.TimeOK)
			items = append(items, it)
			return
		}
		it := NewItem(line, off)
		it.New = opts.Classifier.IsNew(it.Link(), it.Time, it.TimeOK)
		items = append(items, it)
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Count walks r and counts the records without retaining them.
func Count(r io.Reader, cls Classifier) (total, newCount int, err error) {
	err = scanLines(r, func(line string, _ int64) {
		total++
		ts, link := peekLine(line)
		t, ok := ParseTime(ts)
		if cls.IsNew(link, t, ok) {
			newCount++
		}
	})
	if err != nil {
		return 0, 0, err
	}
	return total, newCount, nil
}

// ReadLineAt returns the line starting at byte offset off, without the
// trailing newline.
func ReadLineAt(r io.ReaderAt, off int64) (string, error) {
	br := bufio.NewReader(io.NewSectionReader(r, off, math.MaxInt64-off))
	line, err := br.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	if line == "" {
		return "", io.ErrUnexpectedEOF
	}
	return strings.TrimSuffix(line, "\n"), nil
}

func scanLines(r io.Reader, fn func(line string, off int64)) error {
	br := bufio.NewReaderSize(r, readBufferSize)
	var off int64
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			fn(strings.TrimSuffix(line, "\n"), off)
			off += int64(len(line))
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read line at offset %d: %w", off, err)
		}
	}
}
