package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/youssefsiam38/deepagent/state"
)

const (
	// readFileDefaultLimit is the number of lines read when no limit is given.
	readFileDefaultLimit = 2000

	// readFileMaxLineLength truncates pathologically long lines.
	readFileMaxLineLength = 2000
)

// LsTool lists the files in the agent's virtual file store.
type LsTool struct{}

// Name implements Tool
func (LsTool) Name() string { return "ls" }

// Description implements Tool
func (LsTool) Description() string {
	return "List all files in the virtual filesystem."
}

// InputSchema implements Tool
func (LsTool) InputSchema() ToolSchema {
	return ToolSchema{Type: "object", Properties: map[string]PropertyDef{}}
}

// Execute implements Tool
func (LsTool) Execute(_ context.Context, _ json.RawMessage, st *state.State) (string, *state.Patch, error) {
	names := make([]string, 0, len(st.Files))
	for name := range st.Files {
		names = append(names, name)
	}
	sort.Strings(names)
	out, err := json.Marshal(names)
	if err != nil {
		return "", nil, err
	}
	return string(out), nil, nil
}

// ReadFileTool reads a file from the virtual file store with cat -n style
// line numbers, supporting an optional line offset and limit.
type ReadFileTool struct{}

type readFileInput struct {
	FilePath string `json:"file_path"`
	Offset   int    `json:"offset"`
	Limit    int    `json:"limit"`
}

// Name implements Tool
func (ReadFileTool) Name() string { return "read_file" }

// Description implements Tool
func (ReadFileTool) Description() string {
	return "Read a file from the virtual filesystem. Output is numbered like cat -n. " +
		"Use offset and limit to page through large files."
}

// InputSchema implements Tool
func (ReadFileTool) InputSchema() ToolSchema {
	return ToolSchema{
		Type: "object",
		Properties: map[string]PropertyDef{
			"file_path": {Type: "string", Description: "Path of the file to read"},
			"offset":    {Type: "integer", Description: "Line number to start reading from (0-based)"},
			"limit":     {Type: "integer", Description: "Maximum number of lines to read (default 2000)"},
		},
		Required: []string{"file_path"},
	}
}

// Execute implements Tool
func (ReadFileTool) Execute(_ context.Context, input json.RawMessage, st *state.State) (string, *state.Patch, error) {
	var in readFileInput
	if err := json.Unmarshal(input, &in); err != nil {
		return "", nil, fmt.Errorf("read_file: %w", err)
	}
	content, ok := st.Files[in.FilePath]
	if !ok {
		return fmt.Sprintf("Error: File '%s' not found", in.FilePath), nil, nil
	}
	if strings.TrimSpace(content) == "" {
		return "System reminder: File exists but has empty contents", nil, nil
	}

	lines := strings.Split(content, "\n")
	limit := in.Limit
	if limit <= 0 {
		limit = readFileDefaultLimit
	}
	start := in.Offset
	if start >= len(lines) {
		return fmt.Sprintf("Error: Line offset %d exceeds file length (%d lines)", in.Offset, len(lines)), nil, nil
	}
	end := start + limit
	if end > len(lines) {
		end = len(lines)
	}

	result := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		line := lines[i]
		if len(line) > readFileMaxLineLength {
			line = line[:readFileMaxLineLength]
		}
		result = append(result, fmt.Sprintf("%6d\t%s", i+1, line))
	}
	return strings.Join(result, "\n"), nil, nil
}

// WriteFileTool creates or overwrites a file in the virtual file store.
type WriteFileTool struct{}

type writeFileInput struct {
	FilePath string `json:"file_path"`
	Content  string `json:"content"`
}

// Name implements Tool
func (WriteFileTool) Name() string { return "write_file" }

// Description implements Tool
func (WriteFileTool) Description() string {
	return "Write content to a file in the virtual filesystem, creating or overwriting it."
}

// InputSchema implements Tool
func (WriteFileTool) InputSchema() ToolSchema {
	return ToolSchema{
		Type: "object",
		Properties: map[string]PropertyDef{
			"file_path": {Type: "string", Description: "Path of the file to write"},
			"content":   {Type: "string", Description: "Full content to write"},
		},
		Required: []string{"file_path", "content"},
	}
}

// Execute implements Tool
func (WriteFileTool) Execute(_ context.Context, input json.RawMessage, st *state.State) (string, *state.Patch, error) {
	var in writeFileInput
	if err := json.Unmarshal(input, &in); err != nil {
		return "", nil, fmt.Errorf("write_file: %w", err)
	}
	files := copyFiles(st.Files)
	files[in.FilePath] = in.Content
	return fmt.Sprintf("Updated file %s", in.FilePath), &state.Patch{Files: files}, nil
}

// EditFileTool replaces a string occurrence in a file. Without replace_all
// the target string must occur exactly once.
type EditFileTool struct{}

type editFileInput struct {
	FilePath   string `json:"file_path"`
	OldString  string `json:"old_string"`
	NewString  string `json:"new_string"`
	ReplaceAll bool   `json:"replace_all"`
}

// Name implements Tool
func (EditFileTool) Name() string { return "edit_file" }

// Description implements Tool
func (EditFileTool) Description() string {
	return "Replace old_string with new_string in a file. old_string must be unique " +
		"unless replace_all is set; include surrounding context to disambiguate."
}

// InputSchema implements Tool
func (EditFileTool) InputSchema() ToolSchema {
	return ToolSchema{
		Type: "object",
		Properties: map[string]PropertyDef{
			"file_path":   {Type: "string", Description: "Path of the file to edit"},
			"old_string":  {Type: "string", Description: "Exact text to replace"},
			"new_string":  {Type: "string", Description: "Replacement text"},
			"replace_all": {Type: "boolean", Description: "Replace every occurrence instead of requiring uniqueness"},
		},
		Required: []string{"file_path", "old_string", "new_string"},
	}
}

// Execute implements Tool
func (EditFileTool) Execute(_ context.Context, input json.RawMessage, st *state.State) (string, *state.Patch, error) {
	var in editFileInput
	if err := json.Unmarshal(input, &in); err != nil {
		return "", nil, fmt.Errorf("edit_file: %w", err)
	}
	content, ok := st.Files[in.FilePath]
	if !ok {
		return fmt.Sprintf("Error: File '%s' not found", in.FilePath), nil, nil
	}
	occurrences := strings.Count(content, in.OldString)
	if occurrences == 0 {
		return fmt.Sprintf("Error: String not found in file: '%s'", in.OldString), nil, nil
	}

	var newContent, resultMsg string
	if in.ReplaceAll {
		newContent = strings.ReplaceAll(content, in.OldString, in.NewString)
		resultMsg = fmt.Sprintf("Successfully replaced %d instance(s) of the string in '%s'", occurrences, in.FilePath)
	} else {
		if occurrences > 1 {
			return fmt.Sprintf(
				"Error: String '%s' appears %d times in file. Use replace_all to replace all instances, "+
					"or provide a more specific string with surrounding context.",
				in.OldString, occurrences,
			), nil, nil
		}
		newContent = strings.Replace(content, in.OldString, in.NewString, 1)
		resultMsg = fmt.Sprintf("Successfully replaced string in '%s'", in.FilePath)
	}

	files := copyFiles(st.Files)
	files[in.FilePath] = newContent
	return resultMsg, &state.Patch{Files: files}, nil
}

func copyFiles(files map[string]string) map[string]string {
	out := make(map[string]string, len(files)+1)
	for k, v := range files {
		out[k] = v
	}
	return out
}
