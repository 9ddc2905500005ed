// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MP3 input through github.com/hajimehoshi/go-mp3.
//
// go-mp3 always produces 16-bit stereo, so Channels reports 2 even for mono
// files; a mono recording comes out as two identical channels and the
// compressor folds it back when the preset asks for mono.
//
//	src, err := mp3.Decoder{}.Decode(file)
//	buf := make([]float32, 4096)
//	n, err := src.ReadSamples(buf)
package mp3
