package layout

// Rect is a screen region in 0-based cells.
type Rect struct {
	X, Y, W, H int
}

func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

type Input struct {
	Cols, Rows    int
	SidebarHidden bool
	// SidebarWidth is the widest visible feed label, in cells.
	SidebarWidth int
}

// Layout places the sidebar (Feeds), the item list and their one column
// scrollbars side by side above a one row status bar.
type Layout struct {
	Feeds    Rect
	FeedsBar Rect
	Items    Rect
	ItemsBar Rect
	Status   Rect
	// TooSmall means nothing should be drawn at this size.
	TooSmall bool
}

func Compute(in Input) Layout {
	h := max(in.Rows-1, 0)
	var l Layout

	l.Feeds = Rect{X: 0, Y: 0, W: in.SidebarWidth, H: h}
	l.FeedsBar = Rect{X: in.SidebarWidth, Y: 0, W: 1, H: h}

	x, w := 0, in.Cols
	if !in.SidebarHidden {
		x = in.SidebarWidth + 1
		w = in.Cols - in.SidebarWidth - 1
	}
	itemsW := max(w-1, 0)
	l.Items = Rect{X: x, Y: 0, W: itemsW, H: h}
	l.ItemsBar = Rect{X: x + itemsW, Y: 0, W: 1, H: h}
	l.Status = Rect{X: 0, Y: max(in.Rows-1, 0), W: in.Cols, H: 1}

	l.TooSmall = in.Cols < 2 || in.Rows < 2 ||
		(!in.SidebarHidden && in.Cols <= in.SidebarWidth+2)
	return l
}

func ClampCursor(cursor, size int) int {
	if size <= 0 {
		return 0
	}
	if cursor >= size {
		return size - 1
	}
	if cursor < 0 {
		return 0
	}
	return cursor
}

// PageStart returns the first row of the page that contains pos.
func PageStart(pos, height int) int {
	if height <= 0 {
		return 0
	}
	return pos - pos%height
}
