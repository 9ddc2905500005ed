// SPDX-License-Identifier: EPL-2.0

package audcompress

import (
	"errors"
	"fmt"
	"time"
)

// Result describes one successful compression.
type Result struct {
	Input  string
	Output string

	OriginalSize   int64
	CompressedSize int64

	SourceRate     int
	SourceChannels int
	SampleRate     int
	Channels       int
	Duration       time.Duration

	// Encoder is the codec binary used, e.g. "ffmpeg".
	Encoder string
}

// Kind groups failures by the stage that produced them.
type Kind int

const (
	KindDependency Kind = iota + 1
	KindDecode
	KindTransform
	KindEncode
	KindIO
)

func (k Kind) String() string {
	switch k {
	case KindDependency:
		return "dependency"
	case KindDecode:
		return "decode"
	case KindTransform:
		return "transform"
	case KindEncode:
		return "encode"
	case KindIO:
		return "io"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error is returned by Compress for every failure.
type Error struct {
	Kind Kind
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind Kind, op, path string, err error) *Error {
	return &Error{Kind: kind, Op: op, Path: path, Err: err}
}

// KindOf returns the Kind of the first *Error in err's chain.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}
