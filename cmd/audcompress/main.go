// SPDX-License-Identifier: EPL-2.0

// Command audcompress shrinks an audio file to MP3 using one of the fixed
// presets.
//
//	audcompress [flags] [input_file] [profile]
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/ik5/audcompress"
	"github.com/ik5/audcompress/encoder"
	"github.com/ik5/audcompress/internal/console"
	"github.com/ik5/audcompress/profile"
	"github.com/ik5/audcompress/report"
)

// deps holds what run takes from the environment, so tests can swap it.
type deps struct {
	newEncoder func() (encoder.Encoder, error)
	getenv     func(string) string
}

func defaultDeps() deps {
	return deps{
		newEncoder: func() (encoder.Encoder, error) { return encoder.Detect(exec.LookPath) },
		getenv:     os.Getenv,
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr, defaultDeps())
	stop()

	if err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			if exitErr.Message != "" {
				fmt.Fprintln(os.Stderr, exitErr.Message)
			}
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger(verbose bool, w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// exitCode maps a compression failure to the process exit status.
func exitCode(err error) int {
	kind, _ := audcompress.KindOf(err)
	switch kind {
	case audcompress.KindDecode, audcompress.KindTransform:
		return 2
	case audcompress.KindEncode:
		return 3
	case audcompress.KindIO:
		return 4
	default:
		return 1
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer, d deps) error {
	cli, exit, err := parse(args, stdout, stderr)
	if err != nil || exit {
		return err
	}

	logger := newLogger(cli.Verbose, stderr)
	out := console.New(stdout, console.ColorEnabled(stdout, cli.NoColor, d.getenv))

	out.Progress("🎵 Audio Compression Utility")
	out.Progress("============================")

	enc, err := d.newEncoder()
	if err != nil {
		logger.Debug("no encoder", "err", err)
		printMissingEncoder(out)
		return &ExitError{Code: 1}
	}
	logger.Debug("encoder selected", "name", enc.Name())

	if _, err := os.Stat(cli.Input); err != nil {
		logger.Debug("input stat failed", "err", err)
		out.Error("❌ Input file not found: %s", cli.Input)
		out.Highlight("Usage: audcompress [input_file] [profile]")
		out.Detail("Profiles: %s", strings.Join(profile.Names(), ", "))
		return &ExitError{Code: 1}
	}

	p, err := profile.Lookup(cli.Profile)
	if err != nil {
		out.Error("❌ Unknown profile: %s", cli.Profile)
		out.Highlight("Available profiles: %s", strings.Join(profile.Names(), ", "))
		return &ExitError{Code: 1}
	}

	outputPath := audcompress.OutputPath(cli.Input, p.Name)

	out.Blank()
	out.Progress("Using %s profile", p.Title)
	out.Detail("%s", p.Description)
	out.Detail("Settings: %s bitrate, %d Hz, %dch", p.Bitrate, p.SampleRate, p.Channels)

	c := audcompress.New(enc, logger)
	c.Progress = func(ev audcompress.Event) { printStage(out, ev) }

	res, err := c.Compress(ctx, cli.Input, outputPath, p)
	if err != nil {
		out.Error("❌ Compression failed: %v", err)
		if kind, _ := audcompress.KindOf(err); kind == audcompress.KindDependency {
			printMissingEncoder(out)
		}
		return &ExitError{Code: exitCode(err)}
	}

	out.Success("✅ Compression complete!")
	out.Success("Compressed size: %s", report.FormatBytes(res.CompressedSize))
	out.Success("Reduction: %s", report.FormatReduction(res.OriginalSize, res.CompressedSize))
	out.Success("Saved: %s", report.FormatBytes(report.Saved(res.OriginalSize, res.CompressedSize)))
	out.Detail("Encoded %s at %d Hz, %dch with %s", res.Duration.Round(10*time.Millisecond), res.SampleRate, res.Channels, res.Encoder)

	out.Blank()
	out.Success("💡 Output saved to: %s", res.Output)
	out.Blank()
	out.Highlight("📱 For mobile app optimization:")
	out.Detail("1. Replace the original file with the compressed version")
	out.Detail("2. The 'voice' profile is recommended for affirmations (90%% size reduction)")

	return nil
}

func printStage(out *console.Printer, ev audcompress.Event) {
	switch ev.Stage {
	case audcompress.StageLoad:
		out.Progress("Loading audio file...")
		out.Highlight("Original size: %s", report.FormatBytes(ev.Size))
	case audcompress.StageDecoded:
		out.Detail("Source: %d Hz, %dch", ev.SampleRate, ev.Channels)
	case audcompress.StageSampleRate:
		out.Plain("Setting sample rate to %d Hz", ev.SampleRate)
	case audcompress.StageChannels:
		out.Plain("Setting channels to %d", ev.Channels)
	case audcompress.StageEncode:
		out.Highlight("Compressing with bitrate %s...", ev.Bitrate)
	}
}

func printMissingEncoder(out *console.Printer) {
	out.Error("❌ No MP3 encoder found: install %s (or %s as a fallback)", encoder.FFmpegBinary, encoder.LameBinary)
	out.Blank()
	out.Plain("To install:")
	out.Plain("  brew install ffmpeg  # macOS")
	out.Plain("  sudo apt install ffmpeg  # Ubuntu/Debian")
	out.Plain("  sudo apt install lame  # fallback encoder")
}
