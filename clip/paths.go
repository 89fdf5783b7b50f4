package clip

import (
	"fmt"
	"path/filepath"
	"strings"
)

// OutputPath computes where segment number n of inputPath is written.
// The file sits next to the input: {dir}/{base}_segment_{n}{ext}. The path is
// deterministic, so re-cutting the same segment number overwrites the file.
func OutputPath(inputPath string, n int) string {
	dir := filepath.Dir(inputPath)
	ext := filepath.Ext(inputPath)
	base := strings.TrimSuffix(filepath.Base(inputPath), ext)
	return filepath.Join(dir, fmt.Sprintf("%s_segment_%d%s", base, n, ext))
}
