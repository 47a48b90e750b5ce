package sidebar

import (
	"github.com/glabrego/feeddash/internal/feed"
	"github.com/glabrego/feeddash/internal/tui/view"
)

// Visible returns the feeds listed in the sidebar, in their original
// order. With onlyNew, feeds without new items are left out.
func Visible(feeds []*feed.Feed, onlyNew bool) []*feed.Feed {
	out := make([]*feed.Feed, 0, len(feeds))
	for _, f := range feeds {
		if onlyNew && f.New == 0 {
			continue
		}
		out = append(out, f)
	}
	return out
}

// Width is the widest label of feeds, which is the sidebar width.
func Width(feeds []*feed.Feed) int {
	width := 0
	for _, f := range feeds {
		width = max(width, view.FeedLabelWidth(f))
	}
	return width
}

// IndexOf returns the position of f in feeds or -1.
func IndexOf(feeds []*feed.Feed, f *feed.Feed) int {
	for i, candidate := range feeds {
		if candidate == f {
			return i
		}
	}
	return -1
}
