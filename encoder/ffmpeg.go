// SPDX-License-Identifier: EPL-2.0

package encoder

import (
	"context"
	"io"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// FFmpegBinary is the executable name looked up on PATH.
const FFmpegBinary = "ffmpeg"

// FFmpeg encodes with ffmpeg's libmp3lame, reading WAV from stdin.
type FFmpeg struct {
	// Path to the binary. Empty means FFmpegBinary on PATH.
	Path string
}

func (*FFmpeg) Name() string { return FFmpegBinary }

// Args returns the ffmpeg command line, without the binary, for one encode.
func (*FFmpeg) Args(outPath, bitrate string) []string {
	return ffmpeg.Input("pipe:0", ffmpeg.KwArgs{"f": "wav"}).
		Output(outPath, ffmpeg.KwArgs{
			"codec:a": "libmp3lame",
			"b:a":     bitrate,
			"f":       "mp3",
		}).
		GlobalArgs("-hide_banner", "-loglevel", "error").
		OverWriteOutput().
		GetArgs()
}

func (f *FFmpeg) Encode(ctx context.Context, wav io.Reader, outPath, bitrate string) error {
	path := f.Path
	if path == "" {
		path = FFmpegBinary
	}

	return run(ctx, f.Name(), path, f.Args(outPath, bitrate), wav, outPath)
}
