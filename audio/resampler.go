// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	"github.com/ik5/audcompress/utils"
)

const (
	// framesPerRead is how many source frames are pulled per ReadSamples call.
	framesPerRead = 1024

	// maxEmptyReads bounds how often a source may return (0, nil) in a row.
	maxEmptyReads = 64

	// lowpassAlpha is the one-pole smoothing factor used when downsampling.
	lowpassAlpha = 0.5
)

// Resampler streams from src to a target sample rate using cubic
// (Catmull-Rom) interpolation. Works on interleaved samples and preserves the
// channel count. When downsampling, frames pass through a one-pole low-pass
// first to soften aliasing.
//
// Output frame k sits at source position k*srcRate/dstRate. The position is
// computed with integers so the output length is exactly
// ceil(frames*dstRate/srcRate) regardless of stream length.
type Resampler struct {
	src      Source
	srcRate  int64
	dstRate  int64
	channels int

	// window holds source frames base-1, base, base+1, base+2. Frames before
	// the start or past the end repeat the nearest real frame.
	window [4][]float32
	base   int64
	k      int64 // next output frame index

	fetched int64 // real frames pulled from src so far
	primed  bool
	done    bool

	buf      []float32
	off, end int
	drained  bool

	smooth  bool
	warm    bool
	lowpass []float32
}

func NewResampler(src Source, dstRate int) *Resampler {
	channels := src.Channels()

	r := &Resampler{
		src:      src,
		srcRate:  int64(src.SampleRate()),
		dstRate:  int64(dstRate),
		channels: channels,
		buf:      make([]float32, framesPerRead*channels),
		smooth:   src.SampleRate() > dstRate,
		lowpass:  make([]float32, channels),
	}

	for i := range r.window {
		r.window[i] = make([]float32, channels)
	}

	return r
}

func (r *Resampler) SampleRate() int { return int(r.dstRate) }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	err := r.src.Close()
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// next copies the next source frame into dst and reports false once src is
// exhausted.
func (r *Resampler) next(dst []float32) (bool, error) {
	empty := 0
	for r.off >= r.end {
		if r.drained {
			return false, nil
		}

		n, err := r.src.ReadSamples(r.buf)
		r.off, r.end = 0, n-n%r.channels

		switch {
		case err == io.EOF:
			r.drained = true
		case err != nil:
			return false, fmt.Errorf("%w", err)
		case n == 0:
			empty++
			if empty > maxEmptyReads {
				return false, ErrNoProgress
			}
		}
	}

	copy(dst, r.buf[r.off:r.off+r.channels])
	r.off += r.channels
	r.fetched++

	if r.smooth {
		if !r.warm {
			copy(r.lowpass, dst)
			r.warm = true
		}
		for c := range dst {
			dst[c] = lowpassAlpha*dst[c] + (1-lowpassAlpha)*r.lowpass[c]
			r.lowpass[c] = dst[c]
		}
	}

	return true, nil
}

// fill loads window[i], repeating window[i-1] past the end of the stream.
func (r *Resampler) fill(i int) error {
	ok, err := r.next(r.window[i])
	if err != nil {
		return err
	}
	if !ok {
		copy(r.window[i], r.window[i-1])
	}
	return nil
}

func (r *Resampler) prime() error {
	ok, err := r.next(r.window[1])
	if err != nil {
		return err
	}
	if !ok {
		return io.EOF
	}

	copy(r.window[0], r.window[1])
	for i := 2; i < len(r.window); i++ {
		if err := r.fill(i); err != nil {
			return err
		}
	}

	r.primed = true
	return nil
}

// advance slides the window one source frame forward.
func (r *Resampler) advance() error {
	oldest := r.window[0]
	r.window[0], r.window[1], r.window[2] = r.window[1], r.window[2], r.window[3]
	r.window[3] = oldest
	r.base++

	return r.fill(3)
}

// ReadSamples produces dst samples at the target rate.
// dst length must be a multiple of the channel count.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if r.done {
		return 0, io.EOF
	}

	if !r.primed {
		if err := r.prime(); err != nil {
			if err == io.EOF {
				r.done = true
			}
			return 0, err
		}
	}

	frames := len(dst) / r.channels
	written := 0

	for written < frames {
		pos := r.k * r.srcRate
		target := pos / r.dstRate

		for r.base < target {
			if err := r.advance(); err != nil {
				return written * r.channels, err
			}
		}

		if r.base >= r.fetched {
			r.done = true
			return written * r.channels, io.EOF
		}

		x := float32(pos%r.dstRate) / float32(r.dstRate)
		out := dst[written*r.channels : (written+1)*r.channels]
		for c := range out {
			out[c] = utils.CubicInterpolate(r.window[0][c], r.window[1][c], r.window[2][c], r.window[3][c], x)
		}

		written++
		r.k++
	}

	return written * r.channels, nil
}
