package compression

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
)

func TestCompressFiles(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxFileSize = 9000

	big := strings.Repeat("a", 12000)
	files := map[string]string{
		"big.txt":   big,
		"small.txt": "fits fine",
	}

	compressed := CompressFiles(files, cfg)

	if compressed["small.txt"] != "fits fine" {
		t.Errorf("small file altered: %q", compressed["small.txt"])
	}

	got := compressed["big.txt"]
	// keep = 9000/3 = 3000 per end; 12000 - 6000 = 6000 omitted.
	marker := ElisionMarker(6000)
	if !strings.Contains(got, marker) {
		t.Fatalf("compressed content lacks elision marker %q", marker)
	}
	if !strings.HasPrefix(got, strings.Repeat("a", 3000)) {
		t.Error("compressed content does not start with the file head")
	}
	if !strings.HasSuffix(got, strings.Repeat("a", 3000)) {
		t.Error("compressed content does not end with the file tail")
	}
	if len(got) != 3000+len(marker)+3000 {
		t.Errorf("compressed length = %d, want %d", len(got), 6000+len(marker))
	}
}

func TestCompressFilesExactLimitPassesThrough(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxFileSize = 100

	content := strings.Repeat("x", 100)
	compressed := CompressFiles(map[string]string{"edge.txt": content}, cfg)
	if compressed["edge.txt"] != content {
		t.Error("file at exactly the limit was truncated")
	}
}

func TestCompressFilesPure(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxFileSize = 30

	original := strings.Repeat("b", 100)
	files := map[string]string{"f.txt": original}

	first := CompressFiles(files, cfg)
	second := CompressFiles(files, cfg)

	if files["f.txt"] != original {
		t.Error("CompressFiles mutated its input")
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("CompressFiles is not deterministic")
	}
}

func TestCompressFilesIdempotent(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxFileSize = 9000

	files := map[string]string{"big.txt": strings.Repeat("c", 50000)}
	once := CompressFiles(files, cfg)

	// Truncated output is well under the threshold, so a second pass must
	// change nothing.
	if len([]rune(once["big.txt"])) > cfg.MaxFileSize {
		t.Fatalf("output length %d exceeds threshold", len([]rune(once["big.txt"])))
	}
	twice := CompressFiles(once, cfg)
	if !reflect.DeepEqual(once, twice) {
		t.Error("second compression pass changed already-compressed content")
	}
}

func TestCompressFilesRuneSafe(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxFileSize = 30

	content := strings.Repeat("日", 100) // 3-byte runes
	compressed := CompressFiles(map[string]string{"cjk.txt": content}, cfg)

	got := compressed["cjk.txt"]
	if !strings.HasPrefix(got, strings.Repeat("日", 10)) {
		t.Error("truncation split the content at a byte rather than a rune boundary")
	}
	if !strings.Contains(got, fmt.Sprintf("%d characters omitted", 80)) {
		t.Errorf("omitted count should be in runes, got %q", got)
	}
}

func TestOversizedFiles(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxFileSize = 10

	files := map[string]string{
		"zeta.txt":  strings.Repeat("z", 11),
		"alpha.txt": strings.Repeat("a", 11),
		"ok.txt":    "short",
	}

	got := OversizedFiles(files, cfg)
	want := []string{"alpha.txt", "zeta.txt"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("OversizedFiles() = %v, want %v (sorted)", got, want)
	}
}
