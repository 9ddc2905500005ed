// SPDX-License-Identifier: EPL-2.0

// Package encoder runs an external MP3 codec.
//
// Two backends exist. FFmpeg builds its command line with
// github.com/u2takey/ffmpeg-go and Lame calls the lame CLI directly. Both
// take a WAV stream on stdin, so decoding and resampling stay in Go and the
// child process only encodes.
//
//	enc, err := encoder.Detect(nil)
//	if errors.Is(err, encoder.ErrNotFound) {
//		// tell the user to install ffmpeg or lame
//	}
//	err = enc.Encode(ctx, wavStream, "out.mp3", "64k")
//
// Cancelling ctx kills the child and removes the partial output.
package encoder
