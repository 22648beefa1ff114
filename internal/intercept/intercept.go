// Package intercept rewrites function-call argument bundles in message
// contents immediately before they are dispatched to the Gemini API.
//
// It wraps the send operation as a plain function value with the same
// calling convention, so a caller opts in by holding the wrapped
// function. No global state is patched.
package intercept

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/Aviv972/introgit-hub/internal/args"
	"github.com/Aviv972/introgit-hub/internal/model"
)

// SendFunc is the signature of the operation that delivers prepared
// contents to the Gemini API and returns the model response.
type SendFunc func(ctx context.Context, contents []*model.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)

// Option configures the interceptor returned by Wrap.
type Option func(*interceptor)

// WithLogger routes interceptor and normalizer diagnostics to log.
func WithLogger(log *zap.Logger) Option {
	return func(ic *interceptor) {
		if log != nil {
			ic.log = log
		}
	}
}

// WithNormalizer substitutes the argument normalizer. Mainly useful in
// tests; by default a normalizer sharing the interceptor logger is built.
func WithNormalizer(n *args.Normalizer) Option {
	return func(ic *interceptor) { ic.norm = n }
}

type interceptor struct {
	send SendFunc
	norm *args.Normalizer
	log  *zap.Logger
}

// Wrap returns a SendFunc that normalizes every function-call argument
// bundle found in the contents and then invokes send with the rewritten
// contents. All other arguments and the results pass through verbatim.
//
// Contents without function calls are forwarded untouched. If any
// bundle fails to normalize the call is not sent and the failure is
// returned, so un-normalized data never reaches the wire. Re-applying
// the wrapped function to already-canonical content is a no-op.
func Wrap(send SendFunc, opts ...Option) SendFunc {
	ic := &interceptor{send: send, log: zap.NewNop()}
	for _, opt := range opts {
		opt(ic)
	}
	if ic.norm == nil {
		ic.norm = args.New(args.WithLogger(ic.log))
	}

	return func(ctx context.Context, contents []*model.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
		rewritten, err := ic.rewrite(contents)
		if err != nil {
			return nil, err
		}
		return ic.send(ctx, rewritten, config)
	}
}

// rewrite returns contents with every function-call bundle normalized.
// When no part carries a function call the original slice is returned
// as-is and the normalizer is never invoked. Otherwise the affected
// contents and parts are rebuilt copy-on-write, preserving part order
// and leaving text and function-response parts verbatim.
func (ic *interceptor) rewrite(contents []*model.Content) ([]*model.Content, error) {
	if !model.HasFunctionCalls(contents) {
		return contents, nil
	}

	out := make([]*model.Content, len(contents))
	for ci, c := range contents {
		if c == nil || !model.HasFunctionCalls([]*model.Content{c}) {
			out[ci] = c
			continue
		}

		rc := &model.Content{Role: c.Role, Parts: make([]model.Part, len(c.Parts))}
		copy(rc.Parts, c.Parts)

		for pi := range rc.Parts {
			fc := rc.Parts[pi].FunctionCall
			// Calls that carry no arguments at all pass through as-is.
			if fc == nil || fc.Args == nil {
				continue
			}

			normalized, err := ic.norm.Normalize(fc.Args)
			if err != nil {
				return nil, fmt.Errorf("intercept: content[%d].parts[%d] function call %q: %w", ci, pi, fc.Name, err)
			}

			rc.Parts[pi].FunctionCall = &model.FunctionCall{
				ID:   fc.ID,
				Name: fc.Name,
				Args: normalized,
			}
			ic.log.Debug("normalized function call arguments",
				zap.String("function", fc.Name),
				zap.Int("content_index", ci),
				zap.Int("part_index", pi))
		}

		out[ci] = rc
	}

	return out, nil
}
