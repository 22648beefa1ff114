// Package functions declares the demo tools exposed to the model. The
// file tools take a "path" argument on purpose: path-bearing bundles
// are exactly what the interceptor rewrites, so these tools always see
// a canonical absolute path.
package functions

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Aviv972/introgit-hub/internal/agent"
)

const maxReadBytes = 64 * 1024

// NewReadFile returns a tool that reads a file's contents.
func NewReadFile() *agent.FunctionDeclaration {
	return &agent.FunctionDeclaration{
		Name:        "read_file",
		Description: "Reads the contents of a text file at the given path.",
		ParametersSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"path": map[string]any{
					"type":        "string",
					"description": "Path to the file to read. Relative paths are resolved against the server working directory.",
				},
			},
			"required": []string{"path"},
		},
		ResponseSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"path": map[string]any{
					"type":        "string",
					"description": "The absolute path that was read",
				},
				"content": map[string]any{
					"type":        "string",
					"description": "File contents, truncated to 64KiB",
				},
			},
		},
		FunctionCall: func(ctx context.Context, callArgs map[string]any) (map[string]any, error) {
			path, ok := callArgs["path"].(string)
			if !ok || path == "" {
				return nil, fmt.Errorf("read_file: path argument is required")
			}

			data, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("read_file: %w", err)
			}
			if len(data) > maxReadBytes {
				data = data[:maxReadBytes]
			}

			return map[string]any{
				"path":    path,
				"content": string(data),
			}, nil
		},
	}
}

// NewListDir returns a tool that lists a directory.
func NewListDir() *agent.FunctionDeclaration {
	return &agent.FunctionDeclaration{
		Name:        "list_dir",
		Description: "Lists the entries of a directory at the given path.",
		ParametersSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"path": map[string]any{
					"type":        "string",
					"description": "Path to the directory to list",
				},
			},
			"required": []string{"path"},
		},
		ResponseSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"path": map[string]any{
					"type":        "string",
					"description": "The absolute path that was listed",
				},
				"entries": map[string]any{
					"type":        "array",
					"description": "Directory entry names; directories carry a trailing separator",
					"items":       map[string]any{"type": "string"},
				},
			},
		},
		FunctionCall: func(ctx context.Context, callArgs map[string]any) (map[string]any, error) {
			path, ok := callArgs["path"].(string)
			if !ok || path == "" {
				return nil, fmt.Errorf("list_dir: path argument is required")
			}

			entries, err := os.ReadDir(path)
			if err != nil {
				return nil, fmt.Errorf("list_dir: %w", err)
			}

			names := make([]any, 0, len(entries))
			for _, entry := range entries {
				name := entry.Name()
				if entry.IsDir() {
					name += string(filepath.Separator)
				}
				names = append(names, name)
			}

			return map[string]any{
				"path":    path,
				"entries": names,
			}, nil
		},
	}
}
