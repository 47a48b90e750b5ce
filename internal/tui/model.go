package tui

import (
	"context"
	"log/slog"
	"time"

	"github.com/glabrego/feeddash/internal/feed"
	"github.com/glabrego/feeddash/internal/tui/actions"
	"github.com/glabrego/feeddash/internal/tui/input"
	"github.com/glabrego/feeddash/internal/tui/layout"
	"github.com/glabrego/feeddash/internal/tui/pane"
	"github.com/glabrego/feeddash/internal/tui/sidebar"
	"github.com/glabrego/feeddash/internal/tui/term"
	"github.com/glabrego/feeddash/internal/tui/view"
)

type Service interface {
	Feeds() []*feed.Feed
	Items() []feed.Item
	Load(f *feed.Feed) error
	ReloadAll(ctx context.Context) error
	MarkRead(ctx context.Context, from, to int, read bool) (int, error)
	Ensure(it *feed.Item)
	Err() error
	Totals() (newCount, total int)
}

// Console is the input side of the terminal.
type Console interface {
	input.ByteReader
	Save() error
	Restore() error
	Raw() error
	Cooked() error
	Size() (cols, rows int, err error)
}

type Options struct {
	Plumber string
	Piper   string
	Yanker  string
	Mouse   bool
	// AutoCmd is fed to the key dispatcher before any terminal input.
	AutoCmd  string
	Location *time.Location
	Logger   *slog.Logger
	Signals  *Mailbox
}

const (
	paneFeeds = iota
	paneItems
	paneCount
)

type feedRow struct {
	f *feed.Feed
}

func (r feedRow) Text() string { return view.FeedLabel(r.f, view.FeedLabelWidth(r.f)) }
func (r feedRow) Bold() bool   { return r.f.New > 0 }

type itemRow struct {
	it  *feed.Item
	loc *time.Location
}

func (r itemRow) Text() string { return view.ItemLine(r.it, r.loc) }
func (r itemRow) Bold() bool   { return r.it.New }

// list is the part of a pane the dispatcher works with regardless of the
// row type.
type list interface {
	Len() int
	Pos() int
	SetPos(pos int)
	ScrollBy(n int)
	ScrollPages(k int)
	SetStart()
	SetEnd()
	Search(query string, dir pane.Direction) bool
	Contains(x, y int) bool
	RowAtY(y int) int
	Hidden() bool
}

type Model struct {
	svc     Service
	term    term.Terminal
	console Console
	dec     *input.Decoder
	runner  actions.Runner
	opts    Options
	log     *slog.Logger
	signals *Mailbox

	feeds    *pane.Pane[feedRow]
	items    *pane.Pane[itemRow]
	feedsBar *pane.Scrollbar
	itemsBar *pane.Scrollbar
	status   *pane.StatusBar

	layout        layout.Layout
	cols, rows    int
	sidebarWidth  int
	selected      int
	sidebarHidden bool
	onlyNew       bool
	mouse         bool
	lastQuery     string
	message       string
	title         string
	clear         bool

	armed    bool
	quit     bool
	exitCode int
	err      error
}

// New builds the dashboard over a started service. Reading from standard
// input hides the sidebar and focuses the item list.
func New(svc Service, t term.Terminal, console Console, runner actions.Runner, opts Options) *Model {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.Signals == nil {
		opts.Signals = &Mailbox{}
	}
	m := &Model{
		svc:      svc,
		term:     t,
		console:  console,
		dec:      input.NewDecoder(console),
		runner:   runner,
		opts:     opts,
		log:      opts.Logger,
		signals:  opts.Signals,
		feeds:    pane.New[feedRow](t),
		items:    pane.New[itemRow](t),
		feedsBar: pane.NewScrollbar(t),
		itemsBar: pane.NewScrollbar(t),
		status:   pane.NewStatusBar(t),
		mouse:    opts.Mouse,
	}
	m.feeds.Format = func(r feedRow) string {
		return view.FeedLabel(r.f, m.feeds.Bounds().W)
	}
	m.feeds.Match = func(r feedRow, query string) bool {
		return pane.ContainsFold(r.f.Name, query)
	}
	m.items.Format = func(r itemRow) string {
		m.svc.Ensure(r.it)
		return r.Text()
	}

	fromStdin := len(svc.Feeds()) == 1 && svc.Feeds()[0].IsStdin()
	m.sidebarHidden = fromStdin
	m.feeds.SetHidden(fromStdin)
	m.feedsBar.SetHidden(fromStdin)

	m.feeds.Reset(m.feedRows())
	m.items.Reset(m.itemRows())
	m.sidebarWidth = sidebar.Width(sidebar.Visible(svc.Feeds(), m.onlyNew))
	if fromStdin {
		m.focus(paneItems)
	} else {
		m.focus(paneFeeds)
	}
	return m
}

// Signals is the mailbox the loop polls. Other goroutines may post to it.
func (m *Model) Signals() *Mailbox { return m.signals }

func (m *Model) feedRows() []feedRow {
	visible := sidebar.Visible(m.svc.Feeds(), m.onlyNew)
	rows := make([]feedRow, len(visible))
	for i, f := range visible {
		rows[i] = feedRow{f: f}
	}
	return rows
}

func (m *Model) itemRows() []itemRow {
	items := m.svc.Items()
	rows := make([]itemRow, len(items))
	for i := range items {
		rows[i] = itemRow{it: &items[i], loc: m.opts.Location}
	}
	return rows
}

// refreshFeeds rebuilds the sidebar after counts changed, keeping the
// selected feed when it is still listed.
func (m *Model) refreshFeeds() {
	var selected *feed.Feed
	if row, ok := m.feeds.Current(); ok {
		selected = row.f
	}
	rows := m.feedRows()
	m.feeds.SetRows(rows)
	visible := make([]*feed.Feed, len(rows))
	for i, r := range rows {
		visible[i] = r.f
	}
	if i := sidebar.IndexOf(visible, selected); i >= 0 {
		m.feeds.SetPos(i)
	}
	m.updateSidebarWidth(visible)
}

func (m *Model) updateSidebarWidth(visible []*feed.Feed) {
	if w := sidebar.Width(visible); w != m.sidebarWidth {
		m.sidebarWidth = w
		m.relayout()
	}
}

func (m *Model) paneAt(i int) list {
	if i == paneFeeds {
		return m.feeds
	}
	return m.items
}

func (m *Model) active() list { return m.paneAt(m.selected) }

func (m *Model) focus(i int) {
	m.selected = i
	m.feeds.SetFocus(i == paneFeeds)
	m.feedsBar.SetFocus(i == paneFeeds)
	m.items.SetFocus(i == paneItems)
	m.itemsBar.SetFocus(i == paneItems)
}

// cyclePane moves the focus by dir, skipping hidden panes. Without wrap it
// stops at the first and last pane.
func (m *Model) cyclePane(dir int, wrap bool) {
	p := m.selected
	for range paneCount - 1 {
		p += dir
		if wrap {
			p = (p + paneCount) % paneCount
		} else if p < 0 || p >= paneCount {
			return
		}
		if !m.paneAt(p).Hidden() {
			m.focus(p)
			return
		}
	}
}

func (m *Model) currentItem() (*feed.Item, bool) {
	row, ok := m.items.Current()
	if !ok {
		return nil, false
	}
	m.svc.Ensure(row.it)
	return row.it, true
}

func (m *Model) loadSelectedFeed() {
	row, ok := m.feeds.Current()
	if !ok {
		return
	}
	if err := m.svc.Load(row.f); err != nil {
		m.err = err
		return
	}
	m.items.Reset(m.itemRows())
	m.refreshFeeds()
}

func (m *Model) allDirty() {
	m.feeds.MarkDirty()
	m.items.MarkDirty()
	m.feedsBar.MarkDirty()
	m.itemsBar.MarkDirty()
	m.status.MarkDirty()
}

// relayout recomputes the geometry and marks everything dirty.
func (m *Model) relayout() {
	l := layout.Compute(layout.Input{
		Cols:          m.cols,
		Rows:          m.rows,
		SidebarHidden: m.sidebarHidden,
		SidebarWidth:  m.sidebarWidth,
	})
	m.layout = l

	m.feeds.SetBounds(l.Feeds)
	m.feedsBar.SetBounds(l.FeedsBar)
	m.items.SetBounds(l.Items)
	m.itemsBar.SetBounds(l.ItemsBar)
	m.status.SetBounds(l.Status)

	m.feeds.SetSuppressed(l.TooSmall)
	m.feedsBar.SetSuppressed(l.TooSmall)
	m.items.SetSuppressed(l.TooSmall)
	m.itemsBar.SetSuppressed(l.TooSmall)
	m.status.SetSuppressed(l.TooSmall)

	m.allDirty()
	m.clear = true
}

// resize re-reads the window size and lays the screen out again.
func (m *Model) resize() error {
	cols, rows, err := m.console.Size()
	if err != nil {
		return err
	}
	m.cols, m.rows = cols, rows
	m.relayout()
	return nil
}
