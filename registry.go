// SPDX-License-Identifier: EPL-2.0

package audcompress

import (
	"github.com/ik5/audcompress/audio"
	"github.com/ik5/audcompress/formats/aiff"
	"github.com/ik5/audcompress/formats/mp3"
	"github.com/ik5/audcompress/formats/vorbis"
	"github.com/ik5/audcompress/formats/wav"
)

// DefaultRegistry returns a registry with every bundled decoder.
func DefaultRegistry() *audio.Registry {
	r := audio.NewRegistry()
	r.Register("wav", wav.Decoder{}, "wave")
	r.Register("mp3", mp3.Decoder{})
	r.Register("ogg", vorbis.Decoder{}, "oga")
	r.Register("aiff", aiff.Decoder{}, "aif")

	return r
}
