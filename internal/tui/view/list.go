package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/glabrego/feeddash/internal/feed"
)

const (
	ellipsis   = "…"
	dateLayout = "2006-01-02 15:04"
	appName    = "feeddash"
)

// Pad fits s into exactly width cells: control characters are dropped,
// overlong text is cut with an ellipsis and short text is padded with
// spaces.
func Pad(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = stripControl(s)
	if runewidth.StringWidth(s) > width {
		s = runewidth.Truncate(s, width, ellipsis)
	}
	return runewidth.FillRight(s, width)
}

// ItemLine is the item list row: an enclosure marker, the local date and
// the title.
func ItemLine(it *feed.Item, loc *time.Location) string {
	marker := ' '
	if it.Enclosure() != "" {
		marker = '@'
	}
	if !it.TimeOK {
		return fmt.Sprintf("%c %16s %s", marker, "", it.Title())
	}
	if loc == nil {
		loc = time.Local
	}
	return fmt.Sprintf("%c %s %s", marker, it.Time.In(loc).Format(dateLayout), it.Title())
}

func counts(f *feed.Feed) string {
	return fmt.Sprintf("(%d/%d)", f.New, f.Total)
}

// FeedLabelWidth is the natural width of a feed's sidebar label.
func FeedLabelWidth(f *feed.Feed) int {
	return runewidth.StringWidth(stripControl(f.Name)) + 1 + len(counts(f))
}

// FeedLabel renders "name (new/total)" with the counts right aligned to
// width.
func FeedLabel(f *feed.Feed, width int) string {
	c := counts(f)
	return Pad(f.Name, width-len(c)) + c
}

// Title is the window title for the given totals.
func Title(newCount, total int) string {
	return fmt.Sprintf("(%d/%d) - %s", newCount, total, appName)
}

func stripControl(s string) string {
	if !strings.ContainsFunc(s, isControl) {
		return s
	}
	return strings.Map(func(r rune) rune {
		if isControl(r) {
			return -1
		}
		return r
	}, s)
}

func isControl(r rune) bool {
	return r < 0x20 || r == 0x7f || (r >= 0x80 && r < 0xa0)
}
