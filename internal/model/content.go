package model

// FunctionCall represents a function invocation requested by the model.
//
// Args is deliberately untyped: before normalization a bundle may be a
// JSON-encoded string rather than a structured object, which is the
// exact shape the interceptor exists to rewrite. After normalization it
// is always a map[string]any of wire-safe values.
type FunctionCall struct {
	ID   string `json:"id,omitempty" bson:"id,omitempty"`
	Name string `json:"name" bson:"name"`
	Args any    `json:"args,omitempty" bson:"args,omitempty"`
}

// FunctionResponse represents the result of a function invocation.
type FunctionResponse struct {
	ID       string         `json:"id,omitempty" bson:"id,omitempty"`
	Name     string         `json:"name" bson:"name"`
	Response map[string]any `json:"response,omitempty" bson:"response,omitempty"`
}

// Part is a single piece of a conversation turn.
type Part struct {
	Text             string            `json:"text,omitempty" bson:"text,omitempty"`
	FunctionCall     *FunctionCall     `json:"function_call,omitempty" bson:"function_call,omitempty"`
	FunctionResponse *FunctionResponse `json:"function_response,omitempty" bson:"function_response,omitempty"`
}

// Content is a single conversation turn, composed of one or more parts.
type Content struct {
	Parts []Part `json:"parts" bson:"parts"`
	Role  string `json:"role" bson:"role"`
}

// HasFunctionCalls reports whether any part of any content carries a
// function call.
func HasFunctionCalls(contents []*Content) bool {
	for _, c := range contents {
		if c == nil {
			continue
		}
		for i := range c.Parts {
			if c.Parts[i].FunctionCall != nil {
				return true
			}
		}
	}
	return false
}
