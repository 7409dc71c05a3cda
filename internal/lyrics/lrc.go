// Package lyrics provides LRC parsing and position-to-line synchronization.
package lyrics

import (
	"bufio"
	"io"
	"maps"
	"math"
	"regexp"
	"slices"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Line represents a single timestamped lyric line.
type Line struct {
	Time time.Duration
	Text string
}

// Index holds parsed lyrics ordered by timestamp, one line per timestamp.
// A line's display index is its rank in that order, so repeated text at
// different timestamps keeps distinct positions.
type Index struct {
	lines []Line

	Title  string
	Artist string
	Album  string
}

// Empty returns an index with no lines.
func Empty() *Index {
	return &Index{}
}

// Resolve returns the display index of the line active at pos: the last
// line whose timestamp is at or before pos. Returns -1 if pos precedes the
// first line or the index is empty.
func (x *Index) Resolve(pos time.Duration) int {
	if x == nil {
		return -1
	}
	// first line strictly after pos
	i := sort.Search(len(x.lines), func(i int) bool {
		return x.lines[i].Time > pos
	})
	return i - 1
}

// Len returns the number of lines.
func (x *Index) Len() int {
	if x == nil {
		return 0
	}
	return len(x.lines)
}

// IsEmpty returns true if the index holds no lines.
func (x *Index) IsEmpty() bool {
	return x.Len() == 0
}

// Line returns the line at display index i.
func (x *Index) Line(i int) (Line, bool) {
	if i < 0 || i >= x.Len() {
		return Line{}, false
	}
	return x.lines[i], true
}

// Lines returns a copy of all lines in timestamp order.
func (x *Index) Lines() []Line {
	if x == nil {
		return nil
	}
	return slices.Clone(x.lines)
}

// Texts returns the line texts in timestamp order.
func (x *Index) Texts() []string {
	texts := make([]string, x.Len())
	for i := range texts {
		texts[i] = x.lines[i].Text
	}
	return texts
}

// Text returns the text stored at exactly the given timestamp.
func (x *Index) Text(at time.Duration) (string, bool) {
	if x == nil {
		return "", false
	}
	i, found := slices.BinarySearchFunc(x.lines, at, func(l Line, t time.Duration) int {
		switch {
		case l.Time < t:
			return -1
		case l.Time > t:
			return 1
		}
		return 0
	})
	if !found {
		return "", false
	}
	return x.lines[i].Text, true
}

var (
	// Matches [mm:ss.ff] followed by the line text, anywhere in the line
	timestampRe = regexp.MustCompile(`\[(\d+):(\d+\.\d+)\](.*)`)

	// Matches metadata tags like [ar:Artist Name]
	metadataRe = regexp.MustCompile(`(?i)^\[([a-z]+):(.+)\]$`)
)

// Parse reads LRC lyrics line by line. Lines that do not carry a
// [mm:ss.ff] tag are skipped, as are tagged lines with empty text. When two
// lines share a timestamp, the later one wins.
func Parse(r io.Reader) (*Index, error) {
	idx := &Index{}
	byTime := make(map[time.Duration]string)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()

		if meta := metadataRe.FindStringSubmatch(strings.TrimSpace(line)); meta != nil {
			value := strings.TrimSpace(meta[2])
			switch strings.ToLower(meta[1]) {
			case "ar":
				idx.Artist = value
			case "ti":
				idx.Title = value
			case "al":
				idx.Album = value
			}
			continue
		}

		m := timestampRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		text := strings.TrimSpace(m[3])
		if text == "" {
			continue
		}
		ts, ok := parseTimestamp(m[1], m[2])
		if !ok {
			continue
		}
		byTime[ts] = text
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	for _, ts := range slices.Sorted(maps.Keys(byTime)) {
		idx.lines = append(idx.lines, Line{Time: ts, Text: byTime[ts]})
	}
	return idx, nil
}

// ParseString parses LRC content held in memory.
func ParseString(content string) *Index {
	// strings.Reader never fails; the only error left is an overlong line
	idx, err := Parse(strings.NewReader(content))
	if err != nil {
		return Empty()
	}
	return idx
}

const maxStampMillis = float64(math.MaxInt64 / int64(time.Millisecond))

// parseTimestamp converts minutes and fractional seconds to a whole
// millisecond duration.
func parseTimestamp(mins, secs string) (time.Duration, bool) {
	minutes, err := strconv.ParseInt(mins, 10, 64)
	if err != nil {
		return 0, false
	}
	seconds, err := strconv.ParseFloat(secs, 64)
	if err != nil {
		return 0, false
	}
	// Stamps past the range of time.Duration would wrap negative.
	ms := float64(minutes)*60000 + math.Round(seconds*1000)
	if ms >= maxStampMillis {
		return 0, false
	}
	return time.Duration(ms) * time.Millisecond, true
}
