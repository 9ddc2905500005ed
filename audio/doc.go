// SPDX-License-Identifier: EPL-2.0

// Package audio provides the streaming primitives the compressor is built on.
//
//   - Source interface for decoded audio
//   - Registry mapping file extensions to decoders
//   - Resampler (cubic) and PolyphaseResampler for sample rate conversion
//   - ChannelMixer for downmix and upmix
//   - Transform to chain the above from a Target description
//   - ReadAllInt16 to collect a stream as 16-bit PCM
//
// # Source Interface
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// Decoders and processors all implement Source, so they chain:
//
//	src, _ := mp3.Decoder{}.Decode(file)
//	out, _ := audio.Transform(src, audio.Target{SampleRate: 22050, Channels: 1})
//	pcm, _ := audio.ReadAllInt16(out, 4096)
//
// # Sample Format
//
// Samples are interleaved float32 values in [-1.0, 1.0]. ReadSamples returns
// the number of float32 values written, not frames, and io.EOF once the
// stream is done. It may return n > 0 together with io.EOF.
//
// # Resampling
//
// Resampler interpolates with a Catmull-Rom spline and adds a one-pole
// low-pass when downsampling. It is cheap and good enough for speech.
// PolyphaseResampler runs github.com/tphakala/go-audio-resampler per channel
// and is used when fidelity matters more than speed.
//
// # Channel Mixing
//
// ChannelMixer folds input channel i onto output channel i%out, averaging
// when narrowing and repeating when widening.
package audio
