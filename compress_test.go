// SPDX-License-Identifier: EPL-2.0

package audcompress

import (
	"bytes"
	"context"
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ik5/audcompress/audio"
	"github.com/ik5/audcompress/encoder"
	"github.com/ik5/audcompress/formats/wav"
	"github.com/ik5/audcompress/internal/audiotest"
	"github.com/ik5/audcompress/profile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEncoder checks the WAV stream it receives and writes a tenth of it.
type fakeEncoder struct {
	err error

	rate     int
	channels int
	bytes    int
	bitrate  string
}

func (*fakeEncoder) Name() string { return "fake" }

func (f *fakeEncoder) Encode(_ context.Context, r io.Reader, outPath, bitrate string) error {
	if f.err != nil {
		return f.err
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}

	src, err := wav.Decoder{}.Decode(bytes.NewReader(data))
	if err != nil {
		return err
	}

	f.rate = src.SampleRate()
	f.channels = src.Channels()
	f.bytes = len(data)
	f.bitrate = bitrate

	return os.WriteFile(outPath, data[:len(data)/10], 0o644)
}

// writeSineWAV writes seconds of a 440 Hz tone and returns the path.
func writeSineWAV(t *testing.T, dir, name string, rate, channels int, seconds float64) string {
	t.Helper()

	frames := int(float64(rate) * seconds)
	samples := make([]int16, 0, frames*channels)
	for i := range frames {
		v := int16(0.6 * 32767 * math.Sin(2*math.Pi*440*float64(i)/float64(rate)))
		for range channels {
			samples = append(samples, v)
		}
	}

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	require.NoError(t, wav.WriteWAV16(f, rate, channels, samples))

	return path
}

func TestCompress_Profiles(t *testing.T) {
	t.Parallel()

	for _, p := range profile.All() {
		t.Run(p.Name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			in := writeSineWAV(t, dir, "affirmations.wav", 44100, 2, 1)
			out := OutputPath(in, p.Name)

			enc := &fakeEncoder{}
			res, err := New(enc, nil).Compress(context.Background(), in, out, p)
			require.NoError(t, err)

			assert.Equal(t, filepath.Join(dir, "affirmations-"+p.Name+".wav"), res.Output)
			assert.FileExists(t, out)

			assert.Equal(t, p.SampleRate, enc.rate)
			assert.Equal(t, p.Channels, enc.channels)
			assert.Equal(t, p.Bitrate, enc.bitrate)

			assert.Equal(t, 44100, res.SourceRate)
			assert.Equal(t, 2, res.SourceChannels)
			assert.Equal(t, p.SampleRate, res.SampleRate)
			assert.Equal(t, p.Channels, res.Channels)
			assert.Equal(t, "fake", res.Encoder)
			assert.InDelta(t, time.Second.Seconds(), res.Duration.Seconds(), 0.02)

			info, err := os.Stat(in)
			require.NoError(t, err)
			assert.Equal(t, info.Size(), res.OriginalSize)
			assert.Positive(t, res.CompressedSize)
			assert.Less(t, res.CompressedSize, res.OriginalSize)
		})
	}
}

func TestCompress_VoiceSampleCount(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := writeSineWAV(t, dir, "talk.wav", 44100, 2, 2)

	p, err := profile.Lookup("voice")
	require.NoError(t, err)

	enc := &fakeEncoder{}
	_, err = New(enc, nil).Compress(context.Background(), in, OutputPath(in, p.Name), p)
	require.NoError(t, err)

	// 2 s at 22050 Hz mono, 16-bit, behind a 44 byte header
	assert.Equal(t, 44+2*22050*2, enc.bytes)
}

func TestCompress_Progress(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := writeSineWAV(t, dir, "a.wav", 8000, 1, 0.5)

	p, err := profile.Lookup("balanced")
	require.NoError(t, err)

	var stages []Stage
	var decoded Event

	c := New(&fakeEncoder{}, nil)
	c.Progress = func(ev Event) {
		stages = append(stages, ev.Stage)
		if ev.Stage == StageDecoded {
			decoded = ev
		}
	}

	_, err = c.Compress(context.Background(), in, OutputPath(in, p.Name), p)
	require.NoError(t, err)

	assert.Equal(t, []Stage{StageLoad, StageDecoded, StageSampleRate, StageChannels, StageEncode}, stages)
	assert.Equal(t, 8000, decoded.SampleRate)
	assert.Equal(t, 1, decoded.Channels)
}

func TestCompress_Errors(t *testing.T) {
	t.Parallel()

	voice, err := profile.Lookup("voice")
	require.NoError(t, err)

	errCodec := errors.New("codec exploded")

	tests := []struct {
		name      string
		setup     func(t *testing.T, dir string) string
		prof      func(p profile.Profile) profile.Profile
		enc       encoder.Encoder
		noEncoder bool
		kind      Kind
		wantErr   error
	}{
		{
			name:    "missing input",
			setup:   func(_ *testing.T, dir string) string { return filepath.Join(dir, "nope.wav") },
			kind:    KindIO,
			wantErr: os.ErrNotExist,
		},
		{
			name: "unsupported extension",
			setup: func(t *testing.T, dir string) string {
				path := filepath.Join(dir, "song.flac")
				require.NoError(t, os.WriteFile(path, []byte("fLaC"), 0o644))
				return path
			},
			kind:    KindDecode,
			wantErr: audio.ErrUnsupportedFormat,
		},
		{
			name: "corrupt wav",
			setup: func(t *testing.T, dir string) string {
				path := filepath.Join(dir, "broken.wav")
				require.NoError(t, os.WriteFile(path, []byte("this is not riff data at all, sorry"), 0o644))
				return path
			},
			kind: KindDecode,
		},
		{
			name:  "invalid target",
			setup: func(t *testing.T, dir string) string { return writeSineWAV(t, dir, "a.wav", 8000, 1, 0.1) },
			prof: func(p profile.Profile) profile.Profile {
				p.SampleRate = -1
				return p
			},
			kind:    KindTransform,
			wantErr: audio.ErrInvalidSampleRate,
		},
		{
			name:    "encoder failure",
			setup:   func(t *testing.T, dir string) string { return writeSineWAV(t, dir, "a.wav", 8000, 1, 0.1) },
			enc:     &fakeEncoder{err: errCodec},
			kind:    KindEncode,
			wantErr: errCodec,
		},
		{
			name:    "encoder vanished",
			setup:   func(t *testing.T, dir string) string { return writeSineWAV(t, dir, "a.wav", 8000, 1, 0.1) },
			enc:     &fakeEncoder{err: encoder.ErrNotFound},
			kind:    KindDependency,
			wantErr: encoder.ErrNotFound,
		},
		{
			name:      "no encoder",
			setup:     func(t *testing.T, dir string) string { return writeSineWAV(t, dir, "a.wav", 8000, 1, 0.1) },
			noEncoder: true,
			kind:      KindDependency,
			wantErr:   encoder.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			in := tt.setup(t, dir)

			p := voice
			if tt.prof != nil {
				p = tt.prof(p)
			}

			enc := tt.enc
			if enc == nil && !tt.noEncoder {
				enc = &fakeEncoder{}
			}

			out := OutputPath(in, p.Name)
			_, err := (&Compressor{Registry: DefaultRegistry(), Encoder: enc}).Compress(context.Background(), in, out, p)
			require.Error(t, err)

			kind, ok := KindOf(err)
			require.True(t, ok, "error %v is not an *Error", err)
			assert.Equal(t, tt.kind, kind, "error: %v", err)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}

			assert.NoFileExists(t, out)
		})
	}
}

// failingDecoder decodes to a source that breaks mid-stream.
type failingDecoder struct{ err error }

func (d failingDecoder) Decode(io.Reader) (audio.Source, error) {
	return audiotest.NewFailingSource(8000, 1, 4000, d.err), nil
}

func TestCompress_ReadFailure(t *testing.T) {
	t.Parallel()

	errDisk := errors.New("sector not found")

	dir := t.TempDir()
	in := filepath.Join(dir, "clip.raw")
	require.NoError(t, os.WriteFile(in, []byte{0}, 0o644))

	reg := audio.NewRegistry()
	reg.Register("raw", failingDecoder{err: errDisk})

	p, err := profile.Lookup("balanced")
	require.NoError(t, err)

	c := &Compressor{Registry: reg, Encoder: &fakeEncoder{}}
	_, err = c.Compress(context.Background(), in, OutputPath(in, p.Name), p)

	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, KindDecode, kind)
	assert.ErrorIs(t, err, errDisk)
}

func TestKindOf(t *testing.T) {
	t.Parallel()

	_, ok := KindOf(errors.New("plain"))
	assert.False(t, ok)

	_, ok = KindOf(nil)
	assert.False(t, ok)

	wrapped := errors.Join(errors.New("ctx"), newError(KindEncode, "encode", "x.mp3", errors.New("bad")))
	kind, ok := KindOf(wrapped)
	assert.True(t, ok)
	assert.Equal(t, KindEncode, kind)
}

func TestError_Message(t *testing.T) {
	t.Parallel()

	err := newError(KindIO, "stat", "in.mp3", os.ErrNotExist)
	assert.Equal(t, "stat in.mp3: file does not exist", err.Error())

	err = newError(KindDependency, "detect", "", encoder.ErrNotFound)
	assert.Equal(t, "detect: encoder binary not found", err.Error())

	assert.Equal(t, "transform", KindTransform.String())
	assert.Equal(t, "Kind(42)", Kind(42).String())
}
