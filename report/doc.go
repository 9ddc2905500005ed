// SPDX-License-Identifier: EPL-2.0

// Package report formats file sizes and size reductions for display.
package report
