package tools

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/youssefsiam38/deepagent/state"
)

func fileState(files map[string]string) *state.State {
	st := state.New()
	st.Files = files
	return st
}

func mustExecute(t *testing.T, tool Tool, input string, st *state.State) (string, *state.Patch) {
	t.Helper()
	result, patch, err := tool.Execute(context.Background(), json.RawMessage(input), st)
	if err != nil {
		t.Fatalf("%s.Execute() error = %v", tool.Name(), err)
	}
	return result, patch
}

func TestLsTool(t *testing.T) {
	st := fileState(map[string]string{
		"zeta.txt":  "z",
		"alpha.txt": "a",
	})

	result, patch := mustExecute(t, LsTool{}, `{}`, st)
	if patch != nil {
		t.Error("ls returned a patch")
	}
	if result != `["alpha.txt","zeta.txt"]` {
		t.Errorf("ls = %s, want sorted JSON array", result)
	}
}

func TestReadFileTool(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
		input string
		want  string
	}{
		{
			name:  "missing file",
			files: map[string]string{},
			input: `{"file_path":"nope.txt"}`,
			want:  "Error: File 'nope.txt' not found",
		},
		{
			name:  "empty file",
			files: map[string]string{"empty.txt": "   "},
			input: `{"file_path":"empty.txt"}`,
			want:  "System reminder: File exists but has empty contents",
		},
		{
			name:  "numbered lines",
			files: map[string]string{"a.txt": "first\nsecond"},
			input: `{"file_path":"a.txt"}`,
			want:  "     1\tfirst\n     2\tsecond",
		},
		{
			name:  "offset and limit",
			files: map[string]string{"a.txt": "one\ntwo\nthree\nfour"},
			input: `{"file_path":"a.txt","offset":1,"limit":2}`,
			want:  "     2\ttwo\n     3\tthree",
		},
		{
			name:  "offset past end",
			files: map[string]string{"a.txt": "one\ntwo"},
			input: `{"file_path":"a.txt","offset":9}`,
			want:  "Error: Line offset 9 exceeds file length (2 lines)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, patch := mustExecute(t, ReadFileTool{}, tt.input, fileState(tt.files))
			if patch != nil {
				t.Error("read_file returned a patch")
			}
			if result != tt.want {
				t.Errorf("read_file = %q, want %q", result, tt.want)
			}
		})
	}
}

func TestReadFileToolTruncatesLongLines(t *testing.T) {
	st := fileState(map[string]string{"long.txt": strings.Repeat("x", 5000)})

	result, _ := mustExecute(t, ReadFileTool{}, `{"file_path":"long.txt"}`, st)
	if len(result) > 8+readFileMaxLineLength {
		t.Errorf("line not truncated, length %d", len(result))
	}
}

func TestWriteFileTool(t *testing.T) {
	st := fileState(map[string]string{"existing.txt": "keep me"})

	result, patch := mustExecute(t, WriteFileTool{},
		`{"file_path":"new.txt","content":"hello"}`, st)

	if result != "Updated file new.txt" {
		t.Errorf("result = %q", result)
	}
	if patch == nil || patch.Files["new.txt"] != "hello" {
		t.Fatal("patch missing the written file")
	}
	if patch.Files["existing.txt"] != "keep me" {
		t.Error("patch dropped the other files")
	}
	if _, ok := st.Files["new.txt"]; ok {
		t.Error("tool mutated the state snapshot")
	}
}

func TestEditFileTool(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		input       string
		wantResult  string
		wantContent string
	}{
		{
			name:        "unique replacement",
			content:     "hello world",
			input:       `{"file_path":"a.txt","old_string":"world","new_string":"there"}`,
			wantResult:  "Successfully replaced string in 'a.txt'",
			wantContent: "hello there",
		},
		{
			name:       "ambiguous without replace_all",
			content:    "dup dup",
			input:      `{"file_path":"a.txt","old_string":"dup","new_string":"uniq"}`,
			wantResult: "Error: String 'dup' appears 2 times in file. Use replace_all to replace all instances, or provide a more specific string with surrounding context.",
		},
		{
			name:        "replace all",
			content:     "dup dup",
			input:       `{"file_path":"a.txt","old_string":"dup","new_string":"uniq","replace_all":true}`,
			wantResult:  "Successfully replaced 2 instance(s) of the string in 'a.txt'",
			wantContent: "uniq uniq",
		},
		{
			name:       "string not found",
			content:    "hello",
			input:      `{"file_path":"a.txt","old_string":"missing","new_string":"x"}`,
			wantResult: "Error: String not found in file: 'missing'",
		},
		{
			name:       "missing file",
			content:    "",
			input:      `{"file_path":"other.txt","old_string":"a","new_string":"b"}`,
			wantResult: "Error: File 'other.txt' not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := fileState(map[string]string{"a.txt": tt.content})
			result, patch := mustExecute(t, EditFileTool{}, tt.input, st)

			if result != tt.wantResult {
				t.Errorf("result = %q, want %q", result, tt.wantResult)
			}
			if tt.wantContent == "" {
				if patch != nil {
					t.Errorf("failed edit returned a patch: %+v", patch)
				}
				return
			}
			if patch == nil || patch.Files["a.txt"] != tt.wantContent {
				t.Errorf("patched content = %q, want %q", patch.Files["a.txt"], tt.wantContent)
			}
			if st.Files["a.txt"] != tt.content {
				t.Error("tool mutated the state snapshot")
			}
		})
	}
}
