// SPDX-License-Identifier: EPL-2.0

// Package console prints the CLI's human readable status lines.
//
// Color comes from github.com/gookit/color and is applied only when the
// destination is a terminal (golang.org/x/term), NO_COLOR is unset and the
// user did not pass --no-color. Message text never depends on color.
package console
