package goihex

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/d21d3q/goihex/internal/loader"
	internalopts "github.com/d21d3q/goihex/internal/options"
)

// DecodeOptions configures DecodeLineWithOptions.
type DecodeOptions struct {
	VerifyChecksum bool
}

// LoadOptions configures Load.
type LoadOptions struct {
	// Size of the target memory, e.g. "65536", "0x8000" or "64K". Empty
	// means the full 16-bit address space.
	Size         string
	Sparse       bool
	SkipChecksum bool
	SkipInvalid  bool
	Logger       *logrus.Entry
}

type loadConfig struct {
	size       int
	loaderOpts []loader.Option
}

func (opts LoadOptions) toInternal(ctx context.Context) (context.Context, loadConfig, error) {
	size, err := internalopts.ParseSize(opts.Size)
	if err != nil {
		return ctx, loadConfig{}, err
	}
	ctx = internalopts.WithLogger(ctx, opts.Logger)
	return ctx, loadConfig{
		size: size,
		loaderOpts: []loader.Option{
			loader.WithVerifyChecksum(!opts.SkipChecksum),
			loader.WithSkipInvalid(opts.SkipInvalid),
		},
	}, nil
}
