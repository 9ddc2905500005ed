// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	"github.com/ik5/audcompress/utils"
)

// ReadAllInt16 drains src and returns every sample as interleaved 16-bit
// PCM. bufferSize is the read chunk in samples; it is rounded down to a whole
// number of frames (and never below one frame).
//
// Reaching the end of the stream is not an error: a nil error means src was
// read to io.EOF.
func ReadAllInt16(src Source, bufferSize int) ([]int16, error) {
	channels := max(src.Channels(), 1)
	bufferSize = max(bufferSize-bufferSize%channels, channels)

	// start with ~2 seconds and let append grow it
	pcm16 := make([]int16, 0, src.SampleRate()*channels*2)
	buf := make([]float32, bufferSize)

	empty := 0
	for {
		n, err := src.ReadSamples(buf)
		for _, v := range buf[:n] {
			pcm16 = append(pcm16, utils.Float32ToInt16(v))
		}

		if err == io.EOF {
			return pcm16, nil
		}
		if err != nil {
			return pcm16, fmt.Errorf("%w", err)
		}

		if n == 0 {
			empty++
			if empty > maxEmptyReads {
				return pcm16, ErrNoProgress
			}
		} else {
			empty = 0
		}
	}
}
