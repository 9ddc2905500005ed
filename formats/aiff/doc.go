// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF input through github.com/go-audio/aiff.
//
// Signed integer PCM at 8, 16, 24 and 32 bits is supported, in any channel
// count and sample rate. AIFF-C compressed variants are rejected by go-audio.
//
//	src, err := aiff.Decoder{}.Decode(file)
//	buf := make([]float32, 4096)
//	n, err := src.ReadSamples(buf)
//
// go-audio needs an io.ReadSeeker; other readers are buffered in memory first.
package aiff
