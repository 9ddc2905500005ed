// SPDX-License-Identifier: EPL-2.0

// Package profile holds the fixed compression presets.
//
// There are exactly three: voice, balanced and quality. They are plain values,
// so a caller may copy and tweak one without affecting the table.
package profile
