// SPDX-License-Identifier: EPL-2.0

package encoder

import "errors"

var (
	// ErrNotFound indicates no usable encoder binary
	ErrNotFound = errors.New("encoder binary not found")

	// ErrEncodeFailed indicates the encoder exited with an error
	ErrEncodeFailed = errors.New("encoding failed")

	// ErrEmptyOutput indicates the encoder succeeded but wrote nothing
	ErrEmptyOutput = errors.New("encoder produced an empty file")
)
