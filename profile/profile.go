// SPDX-License-Identifier: EPL-2.0

package profile

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ik5/audcompress/audio"
)

// Profile is a named set of encoding parameters.
type Profile struct {
	Name        string
	Title       string
	Bitrate     string // ffmpeg style, e.g. "64k"
	SampleRate  int    // 0 keeps the source rate
	Channels    int    // 0 keeps the source layout
	Description string
	Resampling  audio.Quality
}

// presets is never mutated; callers receive copies.
var presets = [...]Profile{
	{
		Name:        "voice",
		Title:       "Voice (Meditation/Affirmations)",
		Bitrate:     "32k",
		SampleRate:  22050,
		Channels:    1,
		Description: "Optimized for voice content, maximum compression",
		Resampling:  audio.QualityCubic,
	},
	{
		Name:        "balanced",
		Title:       "Balanced",
		Bitrate:     "64k",
		SampleRate:  44100,
		Channels:    1,
		Description: "Good balance between quality and size",
		Resampling:  audio.QualityCubic,
	},
	{
		Name:        "quality",
		Title:       "Quality",
		Bitrate:     "96k",
		SampleRate:  44100,
		Channels:    2,
		Description: "Higher quality, larger file size",
		Resampling:  audio.QualityPolyphase,
	},
}

// Default is the profile used when none is given.
const Default = "voice"

// Lookup returns the profile registered under name. Names are case sensitive.
func Lookup(name string) (Profile, error) {
	for _, p := range presets {
		if p.Name == name {
			return p, nil
		}
	}

	return Profile{}, fmt.Errorf("%q: %w", name, ErrUnknown)
}

// Names lists profile names in table order.
func Names() []string {
	names := make([]string, len(presets))
	for i, p := range presets {
		names[i] = p.Name
	}
	return names
}

// All returns a copy of every profile in table order.
func All() []Profile {
	out := make([]Profile, len(presets))
	copy(out, presets[:])
	return out
}

// BitrateKbps parses Bitrate ("32k") into kilobits per second.
func (p Profile) BitrateKbps() (int, error) {
	return ParseBitrate(p.Bitrate)
}

// ParseBitrate accepts "96k", "96K" or a bare "96" and returns kbps.
func ParseBitrate(s string) (int, error) {
	v := strings.TrimSuffix(strings.TrimSuffix(strings.TrimSpace(s), "k"), "K")

	kbps, err := strconv.Atoi(v)
	if err != nil || kbps <= 0 {
		return 0, fmt.Errorf("%q: %w", s, ErrInvalidBitrate)
	}

	return kbps, nil
}

func (p Profile) String() string {
	return fmt.Sprintf("%s (%s, %d Hz, %d ch)", p.Name, p.Bitrate, p.SampleRate, p.Channels)
}
