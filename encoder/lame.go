// SPDX-License-Identifier: EPL-2.0

package encoder

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/ik5/audcompress/profile"
)

// LameBinary is the executable name looked up on PATH.
const LameBinary = "lame"

// Lame encodes with the lame CLI. lame reads the WAV header from stdin, so
// rate and channels come from the stream itself.
type Lame struct {
	// Path to the binary. Empty means LameBinary on PATH.
	Path string
}

func (*Lame) Name() string { return LameBinary }

// Args returns the lame command line, without the binary, for one encode.
func (*Lame) Args(outPath, bitrate string) ([]string, error) {
	kbps, err := profile.ParseBitrate(bitrate)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", LameBinary, err)
	}

	return []string{"--quiet", "-b", strconv.Itoa(kbps), "-", outPath}, nil
}

func (l *Lame) Encode(ctx context.Context, wav io.Reader, outPath, bitrate string) error {
	args, err := l.Args(outPath, bitrate)
	if err != nil {
		return err
	}

	path := l.Path
	if path == "" {
		path = LameBinary
	}

	return run(ctx, l.Name(), path, args, wav, outPath)
}
