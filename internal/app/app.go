package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/glabrego/feeddash/internal/feed"
)

// RecentWindow is how far back an item counts as new when no seen list is
// configured.
const RecentWindow = 24 * time.Hour

// ErrNoSeenList is returned by MarkRead when there is nowhere to record
// read state.
var ErrNoSeenList = errors.New("marking requires SFEED_URL_FILE")

type SeenSource interface {
	SeenURLs(ctx context.Context) (*feed.SeenList, error)
}

// Marker records links as read or unread. An error means nothing may be
// assumed to have changed.
type Marker interface {
	Mark(ctx context.Context, urls []string, read bool) error
}

type Options struct {
	Feeds  []*feed.Feed
	Stdin  io.Reader
	Seen   SeenSource
	Marker Marker
	Lazy   bool
	NowFn  func() time.Time
	Logger *slog.Logger
}

// Service owns the feed list, the items of the current feed and the open
// handle of the current feed file.
type Service struct {
	feeds  []*feed.Feed
	stdin  io.Reader
	seen   SeenSource
	marker Marker
	lazy   bool
	nowFn  func() time.Time
	log    *slog.Logger

	cls         feed.Classifier
	current     *feed.Feed
	file        *os.File
	items       []feed.Item
	stdinLoaded bool
	lazyErr     error
}

func NewService(opts Options) *Service {
	s := &Service{
		feeds:  opts.Feeds,
		stdin:  opts.Stdin,
		seen:   opts.Seen,
		marker: opts.Marker,
		lazy:   opts.Lazy,
		nowFn:  opts.NowFn,
		log:    opts.Logger,
	}
	if s.nowFn == nil {
		s.nowFn = time.Now
	}
	if s.log == nil {
		s.log = slog.New(slog.DiscardHandler)
	}
	if s.stdin == nil {
		s.stdin = os.Stdin
	}
	return s
}

func (s *Service) Feeds() []*feed.Feed { return s.feeds }

func (s *Service) Current() *feed.Feed { return s.current }

// Items returns the items of the current feed. The slice is replaced on
// every load.
func (s *Service) Items() []feed.Item { return s.items }

// Start reads the seen list, loads the first feed and counts the others.
func (s *Service) Start(ctx context.Context) error {
	if len(s.feeds) == 0 {
		return errors.New("no feeds")
	}
	if err := s.refreshClassifier(ctx); err != nil {
		return err
	}
	if err := s.Load(s.feeds[0]); err != nil {
		return err
	}
	for _, f := range s.feeds[1:] {
		if err := s.Count(f); err != nil {
			return err
		}
	}
	return nil
}

// Load makes f the current feed and reads all of its items.
func (s *Service) Load(f *feed.Feed) error {
	start := s.nowFn()
	if f.IsStdin() && s.stdinLoaded && s.current == f {
		return nil
	}

	s.items = nil
	s.lazyErr = nil
	r, err := s.open(f)
	if err != nil {
		return err
	}
	lazy := s.lazy && !f.IsStdin()
	items, err := feed.Load(r, feed.LoadOptions{Lazy: lazy, Classifier: s.cls})
	if err != nil {
		return fmt.Errorf("read feed %s: %w", f.Name, err)
	}
	if f.IsStdin() {
		s.stdinLoaded = true
	}
	s.items = items
	f.Total, f.New = feed.Tally(items)
	s.log.Debug("feed loaded", "feed", f.Name, "total", f.Total, "new", f.New, "lazy", lazy, "took", s.nowFn().Sub(start))
	return nil
}

// Count refreshes the counters of f without keeping its items.
func (s *Service) Count(f *feed.Feed) error {
	if f == s.current {
		f.Total, f.New = feed.Tally(s.items)
		return nil
	}
	if f.IsStdin() {
		return nil
	}
	fh, err := os.Open(f.Path)
	if err != nil {
		return fmt.Errorf("open feed %s: %w", f.Name, err)
	}
	defer fh.Close()

	total, newCount, err := feed.Count(fh, s.cls)
	if err != nil {
		return fmt.Errorf("read feed %s: %w", f.Name, err)
	}
	f.Total, f.New = total, newCount
	return nil
}

// ReloadAll re-reads the seen list, reloads the current feed and recounts
// every other feed. Items read from standard input are reclassified but
// not re-read.
func (s *Service) ReloadAll(ctx context.Context) error {
	if err := s.refreshClassifier(ctx); err != nil {
		return err
	}
	for _, f := range s.feeds {
		if f != s.current {
			if err := s.Count(f); err != nil {
				return err
			}
			continue
		}
		if f.IsStdin() {
			s.reclassify()
			continue
		}
		if err := s.Load(f); err != nil {
			return err
		}
	}
	return nil
}

// MarkRead marks the items in [from, to] read or unread. Only items whose
// state differs are passed to the marker, in a single call. Item and feed
// state change only when the marker succeeds. It returns the number of
// items changed.
func (s *Service) MarkRead(ctx context.Context, from, to int, read bool) (int, error) {
	if s.seen == nil || s.marker == nil {
		return 0, ErrNoSeenList
	}
	if len(s.items) == 0 {
		return 0, nil
	}
	if from > to {
		from, to = to, from
	}
	from = max(from, 0)
	to = min(to, len(s.items)-1)

	var urls []string
	var changed []int
	for i := from; i <= to; i++ {
		it := &s.items[i]
		if it.New != read {
			continue
		}
		if err := s.Materialize(it); err != nil {
			return 0, err
		}
		urls = append(urls, it.Link())
		changed = append(changed, i)
	}
	if len(urls) == 0 {
		return 0, nil
	}

	if err := s.marker.Mark(ctx, urls, read); err != nil {
		return 0, fmt.Errorf("mark items: %w", err)
	}
	for _, i := range changed {
		s.items[i].New = !read
	}
	if s.current != nil {
		s.current.Total, s.current.New = feed.Tally(s.items)
	}
	s.log.Debug("items marked", "count", len(changed), "read", read)
	return len(changed), nil
}

// Materialize parses a lazily loaded item from the current feed file.
func (s *Service) Materialize(it *feed.Item) error {
	if it.Parsed() {
		return nil
	}
	if s.file == nil {
		return errors.New("no open feed file")
	}
	return it.Materialize(s.file)
}

// Ensure is Materialize for display paths that cannot return an error.
// The first failure is kept and reported by Err.
func (s *Service) Ensure(it *feed.Item) {
	if err := s.Materialize(it); err != nil && s.lazyErr == nil {
		s.lazyErr = err
	}
}

func (s *Service) Err() error { return s.lazyErr }

// Totals sums the counters of all feeds.
func (s *Service) Totals() (newCount, total int) {
	for _, f := range s.feeds {
		newCount += f.New
		total += f.Total
	}
	return newCount, total
}

func (s *Service) Close() error {
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}

func (s *Service) open(f *feed.Feed) (io.Reader, error) {
	if f.IsStdin() {
		if err := s.Close(); err != nil {
			return nil, fmt.Errorf("close feed: %w", err)
		}
		s.current = f
		return s.stdin, nil
	}
	// Always reopen by path: feed updaters replace the file by rename.
	if err := s.Close(); err != nil {
		return nil, fmt.Errorf("close feed: %w", err)
	}
	fh, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("open feed %s: %w", f.Name, err)
	}
	s.file = fh
	s.current = f
	return fh, nil
}

func (s *Service) refreshClassifier(ctx context.Context) error {
	s.cls = feed.Classifier{Cutoff: s.nowFn().Add(-RecentWindow)}
	if s.seen == nil {
		return nil
	}
	list, err := s.seen.SeenURLs(ctx)
	if err != nil {
		return fmt.Errorf("load seen list: %w", err)
	}
	s.cls.Seen = list
	return nil
}

func (s *Service) reclassify() {
	for i := range s.items {
		it := &s.items[i]
		it.New = s.cls.IsNew(it.Link(), it.Time, it.TimeOK)
	}
	if s.current != nil {
		s.current.Total, s.current.New = feed.Tally(s.items)
	}
}
