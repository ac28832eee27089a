package encodings

import (
	"fmt"

	"github.com/saintfish/chardet"
)

// hintSampleSize caps how much of a file the detector looks at.
const hintSampleSize = 64 * 1024

// Hint guesses the charset of b for diagnostics, e.g. "GB-18030 (zh, 100%)".
// It returns "" when no guess can be made.
func Hint(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	if len(b) > hintSampleSize {
		b = b[:hintSampleSize]
	}
	result, err := chardet.NewTextDetector().DetectBest(b)
	if err != nil || result == nil {
		return ""
	}
	if result.Language == "" {
		return fmt.Sprintf("%s (%d%%)", result.Charset, result.Confidence)
	}
	return fmt.Sprintf("%s (%s, %d%%)", result.Charset, result.Language, result.Confidence)
}
