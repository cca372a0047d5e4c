// Package loader writes the payloads of decoded Intel HEX data records into
// a memory.
package loader

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/d21d3q/goihex/internal/memory"
	"github.com/d21d3q/goihex/internal/options"
	"github.com/d21d3q/goihex/internal/record"
)

var (
	ErrOutOfRange  = errors.New("record does not fit in memory")
	ErrNoEndOfFile = errors.New("no end of file record")
)

// Lines is a finite sequence of text lines, such as *source.Scanner.
type Lines interface {
	Next() bool
	Text() string
	Line() int
	Err() error
}

// LineError ties a load failure to the input line it came from.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string { return fmt.Sprintf("line %d: %v", e.Line, e.Err) }

func (e *LineError) Unwrap() error { return e.Err }

// Segment is a contiguous range of written addresses.
type Segment struct {
	Address int
	Length  int
}

func (s Segment) End() int { return s.Address + s.Length }

// Stats summarises a load.
type Stats struct {
	Lines       int
	DataRecords int
	Bytes       int
	Skipped     int
	Segments    []Segment
}

type Option func(*Loader)

// WithVerifyChecksum toggles checksum verification (enabled by default).
func WithVerifyChecksum(verify bool) Option {
	return func(l *Loader) { l.verify = verify }
}

// WithSkipInvalid makes the loader log and skip lines that fail instead of
// aborting on the first one.
func WithSkipInvalid(skip bool) Option {
	return func(l *Loader) { l.skipInvalid = skip }
}

// WithLogger overrides the logger taken from the load context.
func WithLogger(log *logrus.Entry) Option {
	return func(l *Loader) { l.log = log }
}

type Loader struct {
	mem         memory.Memory
	verify      bool
	skipInvalid bool
	log         *logrus.Entry
}

func New(mem memory.Memory, opts ...Option) *Loader {
	l := &Loader{mem: mem, verify: true}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load consumes src until an end of file record or the end of input and
// writes every data record into the loader's memory.
func (l *Loader) Load(ctx context.Context, src Lines) (Stats, error) {
	log := l.log
	if log == nil {
		log = options.Logger(ctx)
	}
	decode := record.Decode
	if l.verify {
		decode = record.DecodeVerified
	}

	var stats Stats
	for src.Next() {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		stats.Lines++
		text := src.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		lineLog := log.WithField("line", src.Line())

		rec, err := decode(text)
		if err == nil {
			err = l.apply(rec, &stats, lineLog)
		}
		if err != nil {
			if l.skipInvalid {
				lineLog.WithError(err).Warn("skipping invalid record")
				stats.Skipped++
				continue
			}
			return stats, &LineError{Line: src.Line(), Err: err}
		}
		if rec.Type == record.EndOfFile {
			lineLog.Debug("end of file record")
			return stats, nil
		}
	}
	if err := src.Err(); err != nil {
		return stats, err
	}
	return stats, &LineError{Line: src.Line(), Err: ErrNoEndOfFile}
}

func (l *Loader) apply(rec record.Record, stats *Stats, log *logrus.Entry) error {
	if rec.Type != record.Data {
		return nil
	}
	if rec.End() > l.mem.Size() {
		return fmt.Errorf("%w: 0x%04X+%d exceeds size 0x%X", ErrOutOfRange, rec.Address, len(rec.Data), l.mem.Size())
	}
	stats.DataRecords++
	if len(rec.Data) == 0 {
		return nil
	}
	seg := Segment{Address: int(rec.Address), Length: len(rec.Data)}
	if overlaps(stats.Segments, seg) {
		log.WithField("address", fmt.Sprintf("0x%04X", rec.Address)).Warn("data overlaps previously loaded segment")
	}
	l.mem.WriteRange(seg.Address, rec.Data)
	stats.Bytes += seg.Length
	stats.Segments = addSegment(stats.Segments, seg)
	log.WithFields(logrus.Fields{
		"address": fmt.Sprintf("0x%04X", rec.Address),
		"bytes":   seg.Length,
	}).Debug("data record loaded")
	return nil
}

func overlaps(segs []Segment, s Segment) bool {
	for _, seg := range segs {
		if s.Address < seg.End() && seg.Address < s.End() {
			return true
		}
	}
	return false
}

// addSegment inserts s and coalesces touching or overlapping segments,
// keeping the result sorted by address.
func addSegment(segs []Segment, s Segment) []Segment {
	segs = append(segs, s)
	sort.Slice(segs, func(i, j int) bool { return segs[i].Address < segs[j].Address })
	merged := segs[:1]
	for _, seg := range segs[1:] {
		last := &merged[len(merged)-1]
		if seg.Address <= last.End() {
			if end := seg.End(); end > last.End() {
				last.Length = end - last.Address
			}
			continue
		}
		merged = append(merged, seg)
	}
	return merged
}
