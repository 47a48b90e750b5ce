package feed

import (
	"strconv"
	"strings"
	"time"
)

// Field positions of a tab-separated record.
const (
	FieldUnixTimestamp = iota
	FieldTitle
	FieldLink
	FieldContent
	FieldContentType
	FieldID
	FieldAuthor
	FieldEnclosure
	FieldLast
)

// Fields is the fixed-arity field vector of one record.
type Fields [FieldLast]string

// ParseLine splits a record line into its fields. Missing trailing fields
// are empty and the last field keeps any remaining tabs.
func ParseLine(line string) Fields {
	var fields Fields
	line = strings.TrimSuffix(line, "\n")
	for i := 0; i < FieldLast-1; i++ {
		head, tail, ok := strings.Cut(line, "\t")
		fields[i] = head
		if !ok {
			return fields
		}
		line = tail
	}
	fields[FieldLast-1] = line
	return fields
}

// ParseTime parses a UNIX timestamp field. The whole field must be a
// decimal integer.
func ParseTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.Unix(n, 0), true
}

// peekLine extracts the timestamp and link of a line without keeping a
// field vector around.
func peekLine(line string) (timestamp, link string) {
	line = strings.TrimSuffix(line, "\n")
	timestamp, rest, ok := strings.Cut(line, "\t")
	if !ok {
		return timestamp, ""
	}
	_, rest, ok = strings.Cut(rest, "\t")
	if !ok {
		return timestamp, ""
	}
	link, _, _ = strings.Cut(rest, "\t")
	return timestamp, link
}
