package feed

import (
	"fmt"
	"io"
	"path/filepath"
	"time"
)

// Feed is one record file shown in the sidebar. An empty Path means the
// feed is read from standard input.
type Feed struct {
	Name  string
	Path  string
	Total int
	New   int
}

func FromPath(path string) *Feed {
	return &Feed{Name: filepath.Base(path), Path: path}
}

func Stdin() *Feed {
	return &Feed{Name: "stdin"}
}

func (f *Feed) IsStdin() bool {
	return f.Path == ""
}

// Item is one record of a feed. Fields are substrings of Line.
//
// In lazy mode an item starts out with only Offset, Time and New set; its
// fields are filled in by Materialize the first time it is displayed. The
// feed file must not shrink or be reordered while such items are alive.
type Item struct {
	Line   string
	Fields Fields
	Time   time.Time
	TimeOK bool
	Offset int64
	New    bool
	parsed bool
}

func NewItem(line string, offset int64) Item {
	it := Item{Offset: offset}
	it.setLine(line)
	return it
}

func (it *Item) setLine(line string) {
	it.Line = line
	it.Fields = ParseLine(line)
	it.Time, it.TimeOK = ParseTime(it.Fields[FieldUnixTimestamp])
	it.parsed = true
}

func (it *Item) Parsed() bool { return it.parsed }

func (it *Item) Title() string { return it.Fields[FieldTitle] }

func (it *Item) Link() string { return it.Fields[FieldLink] }

func (it *Item) Enclosure() string { return it.Fields[FieldEnclosure] }

// Materialize reads and parses the item's line from r if it has not been
// parsed yet.
func (it *Item) Materialize(r io.ReaderAt) error {
	if it.parsed {
		return nil
	}
	line, err := ReadLineAt(r, it.Offset)
	if err != nil {
		return fmt.Errorf("read record at offset %d: %w", it.Offset, err)
	}
	it.setLine(line)
	return nil
}

// Classifier decides whether an item is new. With a seen list an item is
// new when its link is absent from the list, otherwise when its timestamp
// is at or after Cutoff.
type Classifier struct {
	Seen   *SeenList
	Cutoff time.Time
}

func (c Classifier) IsNew(link string, t time.Time, timeOK bool) bool {
	if c.Seen != nil {
		return !c.Seen.Has(link)
	}
	return timeOK && !t.Before(c.Cutoff)
}

// Tally counts the total and new items.
func Tally(items []Item) (total, newCount int) {
	for i := range items {
		if items[i].New {
			newCount++
		}
	}
	return len(items), newCount
}
