// Package args normalizes function-call argument bundles into the
// nested key/value form the Gemini API accepts.
//
// The API rejects function-call arguments that arrive as raw
// JSON-encoded strings instead of structured objects (an HTTP 400
// against the google.protobuf.Struct field). Normalize takes either
// shape, resolves path arguments to canonical absolute form, and
// coerces every leaf into a wire-safe kind.
package args

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
)

// Normalizer converts argument bundles into canonical wire-safe form.
// The zero-value-equivalent returned by New is ready to use and safe
// for concurrent callers; it holds no mutable state beyond its logger.
type Normalizer struct {
	log *zap.Logger
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithLogger routes diagnostics to the given logger. Without it the
// Normalizer stays silent.
func WithLogger(log *zap.Logger) Option {
	return func(n *Normalizer) {
		if log != nil {
			n.log = log
		}
	}
}

// New creates a Normalizer.
func New(opts ...Option) *Normalizer {
	n := &Normalizer{log: zap.NewNop()}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize converts an argument bundle into its canonical form.
//
// The input is either a JSON-encoded string or a mapping already in
// structural form. A top-level "path" key is resolved to an absolute
// path; every value is then coerced to a wire-safe kind. The input is
// never mutated. On failure the result is nil and the error is a
// *NormalizationError wrapping one of the sentinel kinds; partial
// results are never returned.
func (n *Normalizer) Normalize(input any) (map[string]any, error) {
	bundle, err := n.decode(input)
	if err != nil {
		return nil, failed(err)
	}

	if rawPath, ok := bundle["path"]; ok {
		resolved, err := ValidatePath(rawPath)
		if err != nil {
			return nil, failed(err, "path")
		}
		n.log.Debug("resolved path argument",
			zap.Any("from", rawPath),
			zap.String("to", resolved))
		bundle["path"] = resolved
	}

	out := make(map[string]any, len(bundle))
	for key, val := range bundle {
		cv, err := n.coerce(val, key)
		if err != nil {
			return nil, failed(err)
		}
		out[key] = cv
	}

	return out, nil
}

// decode produces a fresh mutable mapping from the raw bundle input.
func (n *Normalizer) decode(input any) (map[string]any, error) {
	switch in := input.(type) {
	case string:
		var decoded any
		if err := json.Unmarshal([]byte(in), &decoded); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
		}
		m, ok := decoded.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: encoded bundle is %T, not an object", ErrUnsupportedArgumentType, decoded)
		}
		n.log.Debug("decoded string-form argument bundle", zap.Int("keys", len(m)))
		return m, nil

	case map[string]any:
		m := make(map[string]any, len(in))
		for k, v := range in {
			m[k] = v
		}
		return m, nil

	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedArgumentType, input)
	}
}

// Normalize is a convenience for one-off use without diagnostics.
func Normalize(input any) (map[string]any, error) {
	return New().Normalize(input)
}
