// SPDX-License-Identifier: EPL-2.0

package audcompress

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/ik5/audcompress/audio"
	"github.com/ik5/audcompress/encoder"
	"github.com/ik5/audcompress/formats/wav"
	"github.com/ik5/audcompress/profile"
)

const defaultBufSize = 4096

// Stage identifies a step reported through Compressor.Progress.
type Stage int

const (
	StageLoad Stage = iota
	StageDecoded
	StageSampleRate
	StageChannels
	StageEncode
)

// Event is passed to Compressor.Progress. Only the fields relevant to Stage
// are set.
type Event struct {
	Stage      Stage
	SampleRate int
	Channels   int
	Duration   time.Duration
	Bitrate    string
	Size       int64
}

// Compressor decodes an input file, fits it to a profile and hands the PCM
// to an external encoder.
type Compressor struct {
	Registry *audio.Registry
	Encoder  encoder.Encoder
	Logger   *slog.Logger

	// BufSize is the read chunk in samples. Zero uses the source's BufSize.
	BufSize int

	// Progress, when set, is called synchronously at each stage.
	Progress func(Event)
}

// New returns a Compressor using DefaultRegistry and enc.
func New(enc encoder.Encoder, logger *slog.Logger) *Compressor {
	return &Compressor{
		Registry: DefaultRegistry(),
		Encoder:  enc,
		Logger:   logger,
	}
}

func (c *Compressor) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger
}

func (c *Compressor) emit(ev Event) {
	if c.Progress != nil {
		c.Progress(ev)
	}
}

// pcm is the fully transformed input, ready for WAV serialization.
type pcm struct {
	samples        []int16
	sampleRate     int
	channels       int
	sourceRate     int
	sourceChannels int
}

func (p pcm) duration() time.Duration {
	if p.sampleRate <= 0 || p.channels <= 0 {
		return 0
	}
	frames := int64(len(p.samples) / p.channels)
	return time.Duration(frames) * time.Second / time.Duration(p.sampleRate)
}

// Compress writes an MP3 of inputPath to outputPath using p. Every failure
// is an *Error; use KindOf to tell them apart.
func (c *Compressor) Compress(ctx context.Context, inputPath, outputPath string, p profile.Profile) (Result, error) {
	log := c.logger().With("input", inputPath, "profile", p.Name)

	res := Result{Input: inputPath, Output: outputPath}
	if c.Encoder == nil {
		return res, newError(KindDependency, "encode", outputPath, encoder.ErrNotFound)
	}
	res.Encoder = c.Encoder.Name()

	info, err := os.Stat(inputPath)
	if err != nil {
		return res, newError(KindIO, "stat", inputPath, err)
	}
	res.OriginalSize = info.Size()
	log.Debug("input found", "bytes", res.OriginalSize)

	c.emit(Event{Stage: StageLoad, Size: res.OriginalSize})

	data, err := c.load(inputPath, p, log)
	if err != nil {
		return res, err
	}

	res.SourceRate = data.sourceRate
	res.SourceChannels = data.sourceChannels
	res.SampleRate = data.sampleRate
	res.Channels = data.channels
	res.Duration = data.duration()

	var stream bytes.Buffer
	if err := wav.WriteWAV16(&stream, data.sampleRate, data.channels, data.samples); err != nil {
		return res, newError(KindEncode, "serialize", outputPath, err)
	}

	c.emit(Event{Stage: StageEncode, Bitrate: p.Bitrate})
	log.Debug("encoding", "encoder", res.Encoder, "bitrate", p.Bitrate, "wav_bytes", stream.Len(), "output", outputPath)

	if err := c.Encoder.Encode(ctx, &stream, outputPath, p.Bitrate); err != nil {
		kind := KindEncode
		if errors.Is(err, encoder.ErrNotFound) {
			kind = KindDependency
		}
		return res, newError(kind, "encode", outputPath, err)
	}

	out, err := os.Stat(outputPath)
	if err != nil {
		return res, newError(KindIO, "stat", outputPath, err)
	}
	res.CompressedSize = out.Size()
	log.Debug("done", "bytes", res.CompressedSize, "duration", res.Duration)

	return res, nil
}

// load decodes inputPath and runs it through the profile's transform. The
// file and every source are closed before it returns.
func (c *Compressor) load(inputPath string, p profile.Profile, log *slog.Logger) (pcm, error) {
	registry := c.Registry
	if registry == nil {
		registry = DefaultRegistry()
	}

	dec, err := registry.ForPath(inputPath)
	if err != nil {
		return pcm{}, newError(KindDecode, "select decoder", inputPath, err)
	}

	f, err := os.Open(inputPath)
	if err != nil {
		return pcm{}, newError(KindIO, "open", inputPath, err)
	}
	defer f.Close()

	src, err := dec.Decode(f)
	if err != nil {
		return pcm{}, newError(KindDecode, "decode", inputPath, err)
	}

	data := pcm{sourceRate: src.SampleRate(), sourceChannels: src.Channels()}
	log.Debug("decoded", "sample_rate", data.sourceRate, "channels", data.sourceChannels)

	c.emit(Event{Stage: StageDecoded, SampleRate: data.sourceRate, Channels: data.sourceChannels})
	c.emit(Event{Stage: StageSampleRate, SampleRate: p.SampleRate})
	c.emit(Event{Stage: StageChannels, Channels: p.Channels})

	out, err := audio.Transform(src, audio.Target{
		SampleRate: p.SampleRate,
		Channels:   p.Channels,
		Quality:    p.Resampling,
	})
	if err != nil {
		_ = src.Close()
		return pcm{}, newError(KindTransform, "transform", inputPath, err)
	}
	defer out.Close()

	log.Debug("transform",
		"sample_rate", out.SampleRate(), "channels", out.Channels(), "resampler", p.Resampling.String())

	bufSize := c.BufSize
	if bufSize <= 0 {
		bufSize = max(out.BufSize(), defaultBufSize)
	}

	samples, err := audio.ReadAllInt16(out, bufSize)
	if err != nil {
		return pcm{}, newError(KindDecode, "read samples", inputPath, fmt.Errorf("after %d samples: %w", len(samples), err))
	}

	data.samples = samples
	data.sampleRate = out.SampleRate()
	data.channels = out.Channels()

	return data, nil
}
