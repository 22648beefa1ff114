// Command check verifies a local installation: configuration loads,
// credentials are present, and the argument-normalization pipeline
// behaves on a set of canned bundles. It exits non-zero if any check
// that must pass fails, so it can gate deployments.
package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/Aviv972/introgit-hub/internal/args"
	"github.com/Aviv972/introgit-hub/internal/config"
	"github.com/Aviv972/introgit-hub/internal/intercept"
	"github.com/Aviv972/introgit-hub/internal/model"
)

func main() {
	ok := true

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("FAIL config: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("ok   config loaded (model=%s)\n", cfg.Model)

	if cfg.APIKey == "" {
		fmt.Println("warn GOOGLE_API_KEY not set; live API calls will fail")
	} else {
		fmt.Println("ok   GOOGLE_API_KEY present")
	}

	if !runNormalizerChecks() {
		ok = false
	}
	if !runInterceptorCheck() {
		ok = false
	}

	if !ok {
		fmt.Println("self-check FAILED")
		os.Exit(1)
	}
	fmt.Println("self-check passed")
}

// runNormalizerChecks feeds the normalizer the bundle shapes that
// historically broke the upstream API and a few that must be rejected.
func runNormalizerChecks() bool {
	norm := args.New(args.WithLogger(zap.NewNop()))
	ok := true

	valid := []any{
		`{"path": "/home/daytona/introgit_hub"}`,
		map[string]any{"path": "/home/daytona/introgit_hub"},
		map[string]any{"path": "/home/daytona/introgit_hub", "mode": "read"},
		`{"path": "relative/path", "recursive": true}`,
		map[string]any{"count": 42, "enabled": true, "items": []any{"a", "b"}},
	}
	for _, in := range valid {
		out, err := norm.Normalize(in)
		if err != nil {
			fmt.Printf("FAIL normalize %v: %v\n", in, err)
			ok = false
			continue
		}
		fmt.Printf("ok   normalize %v -> %v\n", in, out)
	}

	invalid := []any{
		`{"path": truncated`,
		42,
		nil,
		map[string]any{"path": nil},
	}
	for _, in := range invalid {
		if _, err := norm.Normalize(in); err == nil {
			fmt.Printf("FAIL normalize %v: expected an error\n", in)
			ok = false
		} else {
			fmt.Printf("ok   normalize %v rejected: %v\n", in, err)
		}
	}

	return ok
}

// runInterceptorCheck routes a string-form function-call bundle through
// a wrapped stub send and verifies the stub saw the canonical form.
func runInterceptorCheck() bool {
	var got []*model.Content
	stub := func(ctx context.Context, contents []*model.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
		got = contents
		return &genai.GenerateContentResponse{}, nil
	}

	send := intercept.Wrap(stub)
	contents := []*model.Content{{
		Role: genai.RoleUser,
		Parts: []model.Part{
			{Text: "read the project directory"},
			{FunctionCall: &model.FunctionCall{
				Name: "read_file",
				Args: `{"path": "relative/path"}`,
			}},
		},
	}}

	if _, err := send(context.Background(), contents, nil); err != nil {
		fmt.Printf("FAIL intercept: %v\n", err)
		return false
	}

	fc := got[0].Parts[1].FunctionCall
	argsMap, isMap := fc.Args.(map[string]any)
	if !isMap {
		fmt.Printf("FAIL intercept: args still %T after rewrite\n", fc.Args)
		return false
	}

	fmt.Printf("ok   intercept rewrote args to %v\n", argsMap)
	return true
}
