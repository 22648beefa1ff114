package args

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel error kinds surfaced by Normalize and ValidatePath.
// Callers match them with errors.Is; they are never retried internally.
var (
	// ErrMalformedInput reports an argument string that is not valid JSON.
	ErrMalformedInput = errors.New("malformed argument encoding")

	// ErrUnsupportedArgumentType reports a bundle that is neither a string
	// nor a mapping (including valid JSON that decodes to a non-object).
	ErrUnsupportedArgumentType = errors.New("unsupported argument type")

	// ErrMissingPathKey reports a mapping passed as a path value that has
	// no "path" key to extract.
	ErrMissingPathKey = errors.New(`mapping must contain "path" key`)

	// ErrInvalidPathArgument reports a path value that is absent, empty,
	// or of a kind that cannot name a filesystem path.
	ErrInvalidPathArgument = errors.New("invalid path argument")
)

// NormalizationError wraps any failure raised while normalizing a bundle.
// It records where in the bundle the failure happened so a rejected
// request can be traced back to the offending field.
type NormalizationError struct {
	// KeyPath is the chain of mapping keys leading to the failed value.
	// Empty for failures at the bundle root (e.g. a decode error).
	KeyPath []string

	// Err is the underlying error, one of the sentinel kinds above or a
	// decode error wrapped by one of them.
	Err error
}

func (e *NormalizationError) Error() string {
	if len(e.KeyPath) == 0 {
		return fmt.Sprintf("normalization failed: %v", e.Err)
	}
	return fmt.Sprintf("normalization failed at %q: %v", strings.Join(e.KeyPath, "."), e.Err)
}

func (e *NormalizationError) Unwrap() error { return e.Err }

// failed wraps err into a NormalizationError unless it already is one,
// in which case the outer key is prepended to its key path.
func failed(err error, keyPath ...string) error {
	var ne *NormalizationError
	if errors.As(err, &ne) {
		ne.KeyPath = append(keyPath, ne.KeyPath...)
		return ne
	}
	return &NormalizationError{KeyPath: keyPath, Err: err}
}
