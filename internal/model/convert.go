package model

import (
	"fmt"

	"google.golang.org/genai"
)

// ToGenAI converts contents to the upstream SDK types.
//
// Conversion is strict about function-call arguments: the SDK field is
// a typed map, and a bundle that is still in string form at this point
// has bypassed the interceptor. Such content is rejected rather than
// silently forwarded in a shape the API would refuse.
func ToGenAI(contents []*Content) ([]*genai.Content, error) {
	result := make([]*genai.Content, 0, len(contents))
	for ci, c := range contents {
		if c == nil {
			continue
		}
		gc := &genai.Content{Role: c.Role, Parts: make([]*genai.Part, 0, len(c.Parts))}
		for pi, p := range c.Parts {
			gp := &genai.Part{Text: p.Text}
			if p.FunctionCall != nil {
				argsMap, err := canonicalArgs(p.FunctionCall.Args)
				if err != nil {
					return nil, fmt.Errorf("content[%d].parts[%d] %q: %w", ci, pi, p.FunctionCall.Name, err)
				}
				gp.FunctionCall = &genai.FunctionCall{
					ID:   p.FunctionCall.ID,
					Name: p.FunctionCall.Name,
					Args: argsMap,
				}
			}
			if p.FunctionResponse != nil {
				gp.FunctionResponse = &genai.FunctionResponse{
					ID:       p.FunctionResponse.ID,
					Name:     p.FunctionResponse.Name,
					Response: p.FunctionResponse.Response,
				}
			}
			gc.Parts = append(gc.Parts, gp)
		}
		result = append(result, gc)
	}
	return result, nil
}

func canonicalArgs(v any) (map[string]any, error) {
	if v == nil {
		return nil, nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("function call args are %T, not a canonical mapping", v)
	}
	return m, nil
}

// FromGenAI converts upstream SDK contents back to the local model,
// e.g. for persisting response candidates into session history.
func FromGenAI(contents []*genai.Content) []*Content {
	result := make([]*Content, 0, len(contents))
	for _, c := range contents {
		if c == nil {
			continue
		}
		mc := &Content{Role: c.Role, Parts: make([]Part, 0, len(c.Parts))}
		for _, p := range c.Parts {
			mp := Part{Text: p.Text}
			if p.FunctionCall != nil {
				mp.FunctionCall = &FunctionCall{
					ID:   p.FunctionCall.ID,
					Name: p.FunctionCall.Name,
					Args: p.FunctionCall.Args,
				}
			}
			if p.FunctionResponse != nil {
				mp.FunctionResponse = &FunctionResponse{
					ID:       p.FunctionResponse.ID,
					Name:     p.FunctionResponse.Name,
					Response: p.FunctionResponse.Response,
				}
			}
			mc.Parts = append(mc.Parts, mp)
		}
		result = append(result, mc)
	}
	return result
}
