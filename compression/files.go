package compression

import (
	"fmt"
	"sort"
)

// ElisionMarker is the inline text inserted where file content was omitted.
func ElisionMarker(omitted int) string {
	return fmt.Sprintf("\n\n[... Content truncated - %d characters omitted ...]\n\n", omitted)
}

// CompressFiles truncates every file whose content exceeds cfg.MaxFileSize
// characters, keeping the first and last third of the limit with an elision
// marker in between. Files at or below the threshold pass through unchanged.
//
// The function is pure: the same input and config always produce the same
// output, and the input map is never mutated.
func CompressFiles(files map[string]string, cfg Config) map[string]string {
	compressed := make(map[string]string, len(files))
	for name, content := range files {
		compressed[name] = compressContent(content, cfg.MaxFileSize)
	}
	return compressed
}

// OversizedFiles returns the sorted names of files that CompressFiles would
// truncate.
func OversizedFiles(files map[string]string, cfg Config) []string {
	var names []string
	for name, content := range files {
		if len([]rune(content)) > cfg.MaxFileSize {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func compressContent(content string, maxFileSize int) string {
	runes := []rune(content)
	if len(runes) <= maxFileSize {
		return content
	}
	keep := maxFileSize / 3
	omitted := len(runes) - 2*keep
	return string(runes[:keep]) + ElisionMarker(omitted) + string(runes[len(runes)-keep:])
}
