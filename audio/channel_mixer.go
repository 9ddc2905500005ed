// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// ChannelMixer changes the channel count of a stream.
//
// Input channel i feeds output channel i%out. When narrowing, each output is
// the average of the inputs that fold onto it (stereo to mono averages L and
// R). When widening, outputs repeat the inputs cyclically (mono to stereo
// duplicates the channel).
type ChannelMixer struct {
	src     Source
	in, out int
	weight  []float32 // 1/number of inputs folded into each output
	tmp     []float32
}

func NewChannelMixer(src Source, channels int) (*ChannelMixer, error) {
	if channels < 1 {
		return nil, fmt.Errorf("%d: %w", channels, ErrInvalidChannels)
	}

	in := src.Channels()
	m := &ChannelMixer{
		src:    src,
		in:     in,
		out:    channels,
		weight: make([]float32, channels),
		tmp:    make([]float32, 4096),
	}

	if in >= channels {
		counts := make([]int, channels)
		for i := range in {
			counts[i%channels]++
		}
		for c, n := range counts {
			m.weight[c] = 1 / float32(n)
		}
	}

	return m, nil
}

// NewMonoMixer downmixes src to a single channel by averaging.
func NewMonoMixer(src Source) *ChannelMixer {
	m, _ := NewChannelMixer(src, 1)
	return m
}

func (m *ChannelMixer) SampleRate() int { return m.src.SampleRate() }
func (m *ChannelMixer) Channels() int   { return m.out }
func (m *ChannelMixer) BufSize() int    { return m.src.BufSize() }
func (m *ChannelMixer) Close() error {
	err := m.src.Close()
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

func (m *ChannelMixer) ReadSamples(dst []float32) (int, error) {
	if len(dst)%m.out != 0 {
		return 0, ErrInvalidDstSize
	}
	if len(dst) == 0 {
		return 0, nil
	}
	if m.in == m.out {
		return m.src.ReadSamples(dst)
	}

	frames := len(dst) / m.out
	need := frames * m.in

	// grow but never shrink
	if cap(m.tmp) < need {
		m.tmp = make([]float32, max(need, 8192))
	}
	m.tmp = m.tmp[:need]

	n, err := m.src.ReadSamples(m.tmp)
	got := n / m.in
	if got == 0 {
		return 0, err
	}

	switch {
	case m.out == 1 && m.in == 2:
		for f := range got {
			dst[f] = (m.tmp[2*f] + m.tmp[2*f+1]) * 0.5
		}
	case m.in == 1:
		for f := range got {
			v := m.tmp[f]
			for c := range m.out {
				dst[f*m.out+c] = v
			}
		}
	case m.in > m.out:
		for f := range got {
			frame := dst[f*m.out : (f+1)*m.out]
			clear(frame)
			for i, v := range m.tmp[f*m.in : (f+1)*m.in] {
				frame[i%m.out] += v
			}
			for c := range frame {
				frame[c] *= m.weight[c]
			}
		}
	default:
		for f := range got {
			src := m.tmp[f*m.in : (f+1)*m.in]
			for c := range m.out {
				dst[f*m.out+c] = src[c%m.in]
			}
		}
	}

	return got * m.out, err
}
