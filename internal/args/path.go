package args

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ValidatePath extracts and resolves a filesystem path argument.
//
// Accepted inputs: a string, a Path, or a mapping carrying a "path" key
// whose value is extracted first. The result is an absolute, lexically
// cleaned path resolved against the process working directory. The
// target is never required to exist, so resolution of "." and ".."
// segments is purely lexical and stable for already-absolute inputs.
func ValidatePath(v any) (string, error) {
	if m, ok := v.(map[string]any); ok {
		nested, ok := m["path"]
		if !ok {
			return "", ErrMissingPathKey
		}
		v = nested
	}

	var raw string
	switch pv := v.(type) {
	case string:
		raw = pv
	case Path:
		raw = string(pv)
	case nil:
		return "", fmt.Errorf("%w: value is nil", ErrInvalidPathArgument)
	default:
		return "", fmt.Errorf("%w: unsupported path type %T", ErrInvalidPathArgument, v)
	}

	// Empty and whitespace-only strings are rejected rather than being
	// resolved to the working directory.
	if strings.TrimSpace(raw) == "" {
		return "", fmt.Errorf("%w: empty path", ErrInvalidPathArgument)
	}

	abs, err := filepath.Abs(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidPathArgument, err)
	}

	return abs, nil
}
