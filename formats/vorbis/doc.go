// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis input through
// github.com/jfreymuth/oggvorbis.
//
// oggvorbis already yields interleaved float32 in [-1,1], so the source
// decodes directly into the caller's buffer without conversion.
//
//	src, err := vorbis.Decoder{}.Decode(file)
//	buf := make([]float32, 4096)
//	n, err := src.ReadSamples(buf)
package vorbis
