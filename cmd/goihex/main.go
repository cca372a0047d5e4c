package main

import (
	"bufio"
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/d21d3q/goihex/internal/source"
	"github.com/d21d3q/goihex/pkg/goihex"
)

var (
	rootCmd = &cobra.Command{
		Use:   "goihex [file]",
		Short: "Decode Intel HEX records",
		Long:  "goihex decodes Intel HEX files record by record, or loads them into memory and dumps a range.",
		Args:  cobra.MaximumNArgs(1),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if debug {
				logrus.SetLevel(logrus.DebugLevel)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if len(args) == 0 {
				return runInteractive(ctx, cmd.OutOrStdout(), cmd.InOrStdin())
			}
			file, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer file.Close()
			if load {
				return runLoad(ctx, cmd.OutOrStdout(), file)
			}
			return runDecode(ctx, cmd.OutOrStdout(), file)
		},
	}

	verifyChecksum bool
	skipInvalid    bool
	load           bool
	sparse         bool
	size           string
	dumpStart      int
	dumpLen        int
	debug          bool
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVar(&verifyChecksum, "verify-checksum", true, "reject records whose checksum does not match")
	flags.BoolVar(&skipInvalid, "skip-invalid", false, "log invalid records and continue instead of stopping")
	flags.BoolVar(&load, "load", false, "load the file into memory and dump a range instead of printing records")
	flags.BoolVar(&sparse, "sparse", false, "use paged memory that only allocates written pages")
	flags.StringVar(&size, "size", "", "memory size, e.g. 65536, 0x8000 or 64K (default full 16-bit space)")
	flags.IntVar(&dumpStart, "dump-start", 0, "first address to dump after --load")
	flags.IntVar(&dumpLen, "dump-len", 256, "number of bytes to dump after --load")
	flags.BoolVar(&debug, "debug", false, "enable debug logging")
}

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	ctx := context.Background()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logrus.Fatal(err)
	}
}

func runInteractive(ctx context.Context, out io.Writer, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	logrus.Info("goihex decode mode. Paste a record and press Enter (Ctrl+D to exit).")
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		result, err := goihex.DecodeLineWithOptions(line, goihex.DecodeOptions{VerifyChecksum: verifyChecksum})
		if err != nil {
			logrus.WithError(err).Error("failed to decode record")
			continue
		}
		fmt.Fprintln(out, result.String())
	}
	return scanner.Err()
}

func runDecode(ctx context.Context, out io.Writer, in io.Reader) error {
	lines := source.New(in)
	var failed int
	for lines.Next() {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if strings.TrimSpace(lines.Text()) == "" {
			continue
		}
		result, err := goihex.DecodeLineWithOptions(lines.Text(), goihex.DecodeOptions{VerifyChecksum: verifyChecksum})
		if err != nil {
			logrus.WithError(err).WithField("line", lines.Line()).Error("failed to decode record")
			if !skipInvalid {
				return fmt.Errorf("line %d: %w", lines.Line(), err)
			}
			failed++
			continue
		}
		result.Line = lines.Line()
		fmt.Fprintln(out, result.String())
	}
	if err := lines.Err(); err != nil {
		return err
	}
	if failed > 0 {
		logrus.WithField("failed", failed).Warn("some records could not be decoded")
	}
	return nil
}

func runLoad(ctx context.Context, out io.Writer, in io.Reader) error {
	result, err := goihex.Load(ctx, in, goihex.LoadOptions{
		Size:         size,
		Sparse:       sparse,
		SkipChecksum: !verifyChecksum,
		SkipInvalid:  skipInvalid,
		Logger:       logrus.NewEntry(logrus.StandardLogger()),
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(out, result.String())

	memSize := result.Memory.Size()
	if dumpStart < 0 || dumpStart > memSize {
		return fmt.Errorf("dump start 0x%X outside memory of size 0x%X", dumpStart, memSize)
	}
	n := min(max(dumpLen, 0), memSize-dumpStart)
	fmt.Fprintf(out, "dump 0x%04X+%d (offsets relative):\n", dumpStart, n)
	dumper := hex.Dumper(out)
	defer dumper.Close()
	_, err = dumper.Write(result.Memory.ReadRange(dumpStart, n))
	return err
}
