package goihex

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/d21d3q/goihex/internal/loader"
	"github.com/d21d3q/goihex/internal/memory"
	"github.com/d21d3q/goihex/internal/record"
	"github.com/d21d3q/goihex/internal/source"
)

// Result captures the outcome of DecodeLine.
type Result struct {
	Line   int
	Record record.Record
}

// String renders a human-readable representation of the result.
func (r Result) String() string {
	summary := map[string]any{
		"type":       r.Record.Type.String(),
		"byte_count": r.Record.ByteCount,
		"address":    fmt.Sprintf("0x%04X", r.Record.Address),
		"data":       fmt.Sprintf("%X", r.Record.Data),
		"checksum":   fmt.Sprintf("0x%02X", r.Record.Checksum),
	}
	if r.Line > 0 {
		summary["line"] = r.Line
	}
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Sprintf("type: %s address:0x%04X bytes:%d (marshal error: %v)", r.Record.Type, r.Record.Address, r.Record.ByteCount, err)
	}
	return string(data)
}

// LoadResult captures the outcome of Load.
type LoadResult struct {
	Memory memory.Memory
	Stats  loader.Stats
}

// String renders the load statistics.
func (r LoadResult) String() string {
	segments := make([]string, 0, len(r.Stats.Segments))
	for _, s := range r.Stats.Segments {
		segments = append(segments, fmt.Sprintf("0x%04X-0x%04X", s.Address, s.End()-1))
	}
	summary := map[string]any{
		"lines":        r.Stats.Lines,
		"data_records": r.Stats.DataRecords,
		"bytes":        r.Stats.Bytes,
		"skipped":      r.Stats.Skipped,
		"segments":     segments,
	}
	if r.Memory != nil {
		summary["memory_size"] = r.Memory.Size()
	}
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Sprintf("lines:%d records:%d bytes:%d (marshal error: %v)", r.Stats.Lines, r.Stats.DataRecords, r.Stats.Bytes, err)
	}
	return string(data)
}

// DecodeLine decodes one Intel HEX record without verifying its checksum.
func DecodeLine(line string) (Result, error) {
	return DecodeLineWithOptions(line, DecodeOptions{})
}

// DecodeLineWithOptions decodes one record with custom options. Surrounding
// whitespace is ignored.
func DecodeLineWithOptions(line string, opts DecodeOptions) (Result, error) {
	decode := record.Decode
	if opts.VerifyChecksum {
		decode = record.DecodeVerified
	}
	rec, err := decode(strings.TrimSpace(line))
	if err != nil {
		return Result{}, err
	}
	return Result{Record: rec}, nil
}

// Load reads Intel HEX text from r into a new memory.
func Load(ctx context.Context, r io.Reader, opts LoadOptions) (LoadResult, error) {
	ctx, cfg, err := opts.toInternal(ctx)
	if err != nil {
		return LoadResult{}, err
	}
	var mem memory.Memory
	if opts.Sparse {
		mem = memory.NewSparse(cfg.size)
	} else {
		mem = memory.NewFlat(cfg.size)
	}
	stats, err := loader.New(mem, cfg.loaderOpts...).Load(ctx, source.New(r))
	result := LoadResult{Memory: mem, Stats: stats}
	if err != nil {
		return result, fmt.Errorf("load intel hex: %w", err)
	}
	return result, nil
}
