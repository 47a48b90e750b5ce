package feed

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sort"
	"strings"
)

// SeenList is the sorted set of links that were marked read.
type SeenList struct {
	urls []string
}

// NewSeenList takes ownership of urls and sorts them.
func NewSeenList(urls []string) *SeenList {
	sort.Strings(urls)
	return &SeenList{urls: urls}
}

func ReadSeenList(r io.Reader) (*SeenList, error) {
	urls := make([]string, 0, 256)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, readBufferSize), 1<<20)
	for sc.Scan() {
		if line := strings.TrimSuffix(sc.Text(), "\r"); line != "" {
			urls = append(urls, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read seen list: %w", err)
	}
	return NewSeenList(urls), nil
}

func (s *SeenList) Has(url string) bool {
	if s == nil {
		return false
	}
	i := sort.SearchStrings(s.urls, url)
	return i < len(s.urls) && s.urls[i] == url
}

func (s *SeenList) Len() int {
	if s == nil {
		return 0
	}
	return len(s.urls)
}

// SeenFile is a newline-separated seen list on disk. A missing file is an
// empty list.
type SeenFile struct {
	Path string
}

func (f SeenFile) SeenURLs(ctx context.Context) (*SeenList, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fh, err := os.Open(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewSeenList(nil), nil
	}
	if err != nil {
		return nil, fmt.Errorf("open seen list: %w", err)
	}
	defer fh.Close()
	return ReadSeenList(fh)
}
