// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	resampler "github.com/tphakala/go-audio-resampler"
)

// PolyphaseResampler converts the sample rate with a Kaiser-windowed
// polyphase filter bank, one engine per channel. It is slower than Resampler
// but keeps the passband flat and rejects aliases properly.
type PolyphaseResampler struct {
	src      Source
	dstRate  int
	channels int
	engines  []*resampler.SimpleResamplerFloat32

	in      []float32
	plane   []float32
	outs    [][]float32
	pending []float32
	off     int
	drained bool
}

func NewPolyphaseResampler(src Source, dstRate int) (*PolyphaseResampler, error) {
	if dstRate <= 0 {
		return nil, fmt.Errorf("%d: %w", dstRate, ErrInvalidSampleRate)
	}

	channels := src.Channels()
	p := &PolyphaseResampler{
		src:      src,
		dstRate:  dstRate,
		channels: channels,
		engines:  make([]*resampler.SimpleResamplerFloat32, channels),
		in:       make([]float32, framesPerRead*channels),
		plane:    make([]float32, framesPerRead),
		outs:     make([][]float32, channels),
	}

	for c := range p.engines {
		e, err := resampler.NewEngineFloat32(float64(src.SampleRate()), float64(dstRate), resampler.QualityHigh)
		if err != nil {
			return nil, fmt.Errorf("polyphase engine: %w", err)
		}
		p.engines[c] = e
	}

	return p, nil
}

func (p *PolyphaseResampler) SampleRate() int { return p.dstRate }
func (p *PolyphaseResampler) Channels() int   { return p.channels }
func (p *PolyphaseResampler) BufSize() int    { return p.src.BufSize() }

func (p *PolyphaseResampler) Close() error {
	err := p.src.Close()
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// pull reads one chunk from src, runs every channel through its engine and
// appends the interleaved result to pending.
func (p *PolyphaseResampler) pull() error {
	n, err := p.src.ReadSamples(p.in)
	if err != nil && err != io.EOF {
		return fmt.Errorf("%w", err)
	}

	frames := n / p.channels
	for c, e := range p.engines {
		var out []float32
		if frames > 0 {
			for f := range frames {
				p.plane[f] = p.in[f*p.channels+c]
			}

			var perr error
			out, perr = e.Process(p.plane[:frames])
			if perr != nil {
				return fmt.Errorf("polyphase process: %w", perr)
			}
		}
		p.outs[c] = out

		if err == io.EOF {
			tail, ferr := e.Flush()
			if ferr != nil {
				return fmt.Errorf("polyphase flush: %w", ferr)
			}
			p.outs[c] = append(append([]float32(nil), out...), tail...)
		}
	}

	if err == io.EOF {
		p.drained = true
	}

	p.interleave()
	return nil
}

func (p *PolyphaseResampler) interleave() {
	frames := len(p.outs[0])
	for _, out := range p.outs[1:] {
		frames = min(frames, len(out))
	}

	// drop what has already been handed out before growing
	if p.off > 0 {
		p.pending = append(p.pending[:0], p.pending[p.off:]...)
		p.off = 0
	}

	for f := range frames {
		for _, out := range p.outs {
			p.pending = append(p.pending, out[f])
		}
	}
}

// ReadSamples fills dst with resampled interleaved audio.
// dst length must be a multiple of the channel count.
func (p *PolyphaseResampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%p.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	empty := 0
	for len(p.pending)-p.off < len(dst) && !p.drained {
		before := len(p.pending) - p.off
		if err := p.pull(); err != nil {
			return 0, err
		}
		if len(p.pending)-p.off == before {
			empty++
			if empty > maxEmptyReads {
				return 0, ErrNoProgress
			}
		}
	}

	n := copy(dst, p.pending[p.off:])
	p.off += n

	if p.drained && p.off >= len(p.pending) {
		return n, io.EOF
	}
	return n, nil
}
