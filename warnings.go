package slidewise

import (
	"strings"

	"github.com/slidewise/slidewise/pptx"
)

// Warning describes a non-fatal issue encountered while processing a
// presentation. Extraction succeeded but results may be incomplete.
type Warning = pptx.Warning

// FormatWarnings renders warnings as a single human-readable string, one
// warning per line.
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	lines := make([]string, 0, len(warnings))
	for _, w := range warnings {
		lines = append(lines, string(w.Code)+": "+w.Message)
	}
	return strings.Join(lines, "\n")
}
