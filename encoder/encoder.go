// SPDX-License-Identifier: EPL-2.0

package encoder

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"strings"
)

// Encoder turns a WAV stream into an MP3 file.
type Encoder interface {
	// Name is the binary's short name, e.g. "ffmpeg".
	Name() string
	// Encode reads WAV data from wav and writes outPath at bitrate ("64k").
	// A partial outPath is removed on failure.
	Encode(ctx context.Context, wav io.Reader, outPath, bitrate string) error
}

// LookPathFunc resolves a binary name, like exec.LookPath.
type LookPathFunc func(file string) (string, error)

// Detect returns the first available encoder, preferring ffmpeg over lame.
// A nil lookPath means exec.LookPath.
func Detect(lookPath LookPathFunc) (Encoder, error) {
	if lookPath == nil {
		lookPath = exec.LookPath
	}

	if path, err := lookPath(FFmpegBinary); err == nil {
		return &FFmpeg{Path: path}, nil
	}

	if path, err := lookPath(LameBinary); err == nil {
		return &Lame{Path: path}, nil
	}

	return nil, fmt.Errorf("%s or %s: %w", FFmpegBinary, LameBinary, ErrNotFound)
}

// run executes path with args, feeding stdin. stderr output is folded into
// the returned error.
func run(ctx context.Context, name, path string, args []string, stdin io.Reader, outPath string) error {
	var stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdin = stdin
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%s: %w: %w", name, ErrNotFound, err)
		}
		return fmt.Errorf("%s: %w", name, err)
	}

	if err := cmd.Wait(); err != nil {
		_ = os.Remove(outPath)

		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%s: %w", name, ctxErr)
		}

		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return fmt.Errorf("%s: %w: %w", name, ErrEncodeFailed, err)
		}
		return fmt.Errorf("%s: %w: %w: %s", name, ErrEncodeFailed, err, msg)
	}

	info, err := os.Stat(outPath)
	if err != nil {
		return fmt.Errorf("%s: output not created: %w", name, err)
	}
	if info.Size() == 0 {
		_ = os.Remove(outPath)
		return fmt.Errorf("%s: %w", name, ErrEmptyOutput)
	}

	return nil
}
