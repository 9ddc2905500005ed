// SPDX-License-Identifier: EPL-2.0

// Package wav decodes WAV files and writes 16-bit PCM WAV streams.
//
// Decoding goes through github.com/go-audio/wav, so any chunk order is
// accepted (LIST, fact and other chunks before "data" are skipped). Integer
// PCM at 8, 16, 24 and 32 bits is supported; IEEE float and compressed WAV
// are rejected with ErrOnlyPCMSupported.
//
//	src, err := wav.Decoder{}.Decode(file)
//	buf := make([]float32, 4096)
//	n, err := src.ReadSamples(buf)
//
// WriteWAV16 produces the canonical 44-byte header followed by interleaved
// samples. It never seeks, which is what the MP3 encoder pipe needs:
//
//	var stdin bytes.Buffer
//	wav.WriteWAV16(&stdin, 22050, 1, pcm)
package wav
