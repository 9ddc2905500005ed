// SPDX-License-Identifier: EPL-2.0

// Package audcompress shrinks audio files with a fixed set of presets.
//
// A Compressor decodes the input in Go (WAV, MP3, Ogg Vorbis and AIFF via the
// formats subpackages), downmixes and resamples it with the audio package to
// match a profile.Profile, and streams the result as WAV into an external MP3
// encoder (see the encoder package).
//
//	enc, err := encoder.Detect(nil)
//	if err != nil {
//		// neither ffmpeg nor lame on PATH
//	}
//
//	p, _ := profile.Lookup("voice")
//	out := audcompress.OutputPath("talk.mp3", p.Name) // talk-voice.mp3
//
//	res, err := audcompress.New(enc, slog.Default()).Compress(ctx, "talk.mp3", out, p)
//	if kind, ok := audcompress.KindOf(err); ok && kind == audcompress.KindEncode {
//		// the codec rejected the stream
//	}
//	fmt.Println(report.FormatReduction(res.OriginalSize, res.CompressedSize))
//
// # Presets
//
//   - voice: 32k, 22050 Hz, mono
//   - balanced: 64k, 44100 Hz, mono
//   - quality: 96k, 44100 Hz, stereo, polyphase resampling
//
// # Errors
//
// Compress returns *Error values carrying a Kind: KindDependency when the
// encoder binary is missing, KindDecode and KindTransform for input problems,
// KindEncode when the codec fails and KindIO for file system errors.
package audcompress
