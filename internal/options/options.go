package options

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/sirupsen/logrus"
)

// DefaultSize covers the full 16-bit record address space.
const DefaultSize = 0x10000

type contextKey struct{}

// WithLogger stores the provided log entry inside the context.
func WithLogger(ctx context.Context, log *logrus.Entry) context.Context {
	if log == nil {
		return ctx
	}
	return context.WithValue(ctx, contextKey{}, log)
}

// Logger retrieves the log entry from context, falling back to the standard
// logger.
func Logger(ctx context.Context) *logrus.Entry {
	if v := ctx.Value(contextKey{}); v != nil {
		if log, ok := v.(*logrus.Entry); ok {
			return log
		}
	}
	return logrus.NewEntry(logrus.StandardLogger())
}

// ParseSize parses a memory size given as decimal, 0x-prefixed hex, or with
// a K/M suffix (1024-based). An empty input yields DefaultSize.
func ParseSize(input string) (int, error) {
	clean := strings.ToUpper(stripWhitespace(input))
	if clean == "" {
		return DefaultSize, nil
	}
	multiplier := 1
	switch {
	case strings.HasSuffix(clean, "K"):
		multiplier, clean = 1024, strings.TrimSuffix(clean, "K")
	case strings.HasSuffix(clean, "M"):
		multiplier, clean = 1024*1024, strings.TrimSuffix(clean, "M")
	}
	base := 10
	if strings.HasPrefix(clean, "0X") {
		base, clean = 16, clean[2:]
	}
	n, err := strconv.ParseUint(clean, base, 31)
	if err != nil {
		return 0, fmt.Errorf("invalid memory size %q: %w", input, err)
	}
	size := int(n) * multiplier
	if size <= 0 || size/multiplier != int(n) {
		return 0, fmt.Errorf("memory size %q out of range", input)
	}
	return size, nil
}

func stripWhitespace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
