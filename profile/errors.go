// SPDX-License-Identifier: EPL-2.0

package profile

import "errors"

var (
	// ErrUnknown indicates a profile name outside the preset table
	ErrUnknown = errors.New("unknown profile")

	// ErrInvalidBitrate indicates a bitrate that is not a positive kbps value
	ErrInvalidBitrate = errors.New("invalid bitrate")
)
