// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// Quality selects the sample-rate converter used by Transform.
type Quality int

const (
	// QualityCubic uses the streaming Catmull-Rom Resampler.
	QualityCubic Quality = iota
	// QualityPolyphase uses the Kaiser-windowed PolyphaseResampler.
	QualityPolyphase
)

func (q Quality) String() string {
	switch q {
	case QualityCubic:
		return "cubic"
	case QualityPolyphase:
		return "polyphase"
	default:
		return fmt.Sprintf("Quality(%d)", int(q))
	}
}

// Target describes the stream Transform should produce. Zero fields keep the
// source value.
type Target struct {
	SampleRate int
	Channels   int
	Quality    Quality
}

// Transform wraps src so it yields t.SampleRate and t.Channels. Stages that
// would not change anything are skipped, so an already matching source is
// returned as is. Narrowing the channel count happens before rate conversion
// and widening after it, so the resampler always sees the fewer channels.
func Transform(src Source, t Target) (Source, error) {
	if t.SampleRate < 0 {
		return nil, fmt.Errorf("%d: %w", t.SampleRate, ErrInvalidSampleRate)
	}
	if t.Channels < 0 {
		return nil, fmt.Errorf("%d: %w", t.Channels, ErrInvalidChannels)
	}

	out := src
	var err error

	narrow := t.Channels > 0 && t.Channels < out.Channels()
	if narrow {
		if out, err = NewChannelMixer(out, t.Channels); err != nil {
			return nil, err
		}
	}

	if t.SampleRate > 0 && t.SampleRate != out.SampleRate() {
		switch t.Quality {
		case QualityPolyphase:
			if out, err = NewPolyphaseResampler(out, t.SampleRate); err != nil {
				return nil, err
			}
		default:
			out = NewResampler(out, t.SampleRate)
		}
	}

	if !narrow && t.Channels > 0 && t.Channels != out.Channels() {
		if out, err = NewChannelMixer(out, t.Channels); err != nil {
			return nil, err
		}
	}

	return out, nil
}
