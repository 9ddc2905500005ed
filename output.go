// SPDX-License-Identifier: EPL-2.0

package audcompress

import (
	"path/filepath"
	"strings"
)

// OutputPath returns dir(input)/<stem>-<profileName><ext>, keeping the
// input's extension as is. An existing file at that path gets overwritten.
func OutputPath(input, profileName string) string {
	dir, base := filepath.Split(input)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	return filepath.Join(dir, stem+"-"+profileName+ext)
}
