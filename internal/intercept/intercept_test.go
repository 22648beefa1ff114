package intercept

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/Aviv972/introgit-hub/internal/args"
	"github.com/Aviv972/introgit-hub/internal/model"
)

// stubSend records what reaches the send operation.
type stubSend struct {
	calls    int
	contents []*model.Content
	config   *genai.GenerateContentConfig
	resp     *genai.GenerateContentResponse
	err      error
}

func (s *stubSend) fn(ctx context.Context, contents []*model.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	s.calls++
	s.contents = contents
	s.config = config
	return s.resp, s.err
}

func textPart(text string) model.Part {
	return model.Part{Text: text}
}

func callPart(name string, callArgs any) model.Part {
	return model.Part{FunctionCall: &model.FunctionCall{Name: name, Args: callArgs}}
}

func TestWrapRewritesStringFormArguments(t *testing.T) {
	tmp := t.TempDir()
	t.Chdir(tmp)

	cwd, err := os.Getwd()
	require.NoError(t, err)

	stub := &stubSend{resp: &genai.GenerateContentResponse{}}
	send := Wrap(stub.fn)

	contents := []*model.Content{{
		Role: genai.RoleUser,
		Parts: []model.Part{
			textPart("please read the file"),
			callPart("read_file", `{"path": "relative/path"}`),
		},
	}}

	resp, err := send(context.Background(), contents, nil)
	require.NoError(t, err)
	assert.Same(t, stub.resp, resp)

	require.Equal(t, 1, stub.calls)
	got := stub.contents[0]

	// Text part untouched, order preserved.
	assert.Equal(t, "please read the file", got.Parts[0].Text)
	assert.Nil(t, got.Parts[0].FunctionCall)

	fc := got.Parts[1].FunctionCall
	require.NotNil(t, fc)
	assert.Equal(t, "read_file", fc.Name)
	assert.Equal(t, map[string]any{"path": filepath.Join(cwd, "relative", "path")}, fc.Args)

	// The caller's contents are not mutated.
	assert.Equal(t, `{"path": "relative/path"}`, contents[0].Parts[1].FunctionCall.Args)
}

func TestWrapForwardsContentWithoutFunctionCalls(t *testing.T) {
	stub := &stubSend{resp: &genai.GenerateContentResponse{}}
	send := Wrap(stub.fn)

	contents := []*model.Content{
		{Role: genai.RoleUser, Parts: []model.Part{textPart("just text")}},
		{Role: genai.RoleModel, Parts: []model.Part{textPart("reply")}},
	}
	config := &genai.GenerateContentConfig{}

	_, err := send(context.Background(), contents, config)
	require.NoError(t, err)

	// Identity: the very same slice and elements, no rebuild.
	assert.Same(t, contents[0], stub.contents[0])
	assert.Same(t, contents[1], stub.contents[1])
	assert.Same(t, config, stub.config)
}

func TestWrapFailsClosedOnBadBundle(t *testing.T) {
	stub := &stubSend{resp: &genai.GenerateContentResponse{}}
	send := Wrap(stub.fn)

	contents := []*model.Content{{
		Role:  genai.RoleUser,
		Parts: []model.Part{callPart("read_file", `{"path": truncated`)},
	}}

	_, err := send(context.Background(), contents, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, args.ErrMalformedInput)
	assert.Contains(t, err.Error(), "content[0].parts[0]")
	assert.Contains(t, err.Error(), "read_file")

	assert.Equal(t, 0, stub.calls, "nothing may be sent after a normalization failure")
}

func TestWrapAbortsOnAnyFailingPart(t *testing.T) {
	stub := &stubSend{resp: &genai.GenerateContentResponse{}}
	send := Wrap(stub.fn)

	contents := []*model.Content{
		{Role: genai.RoleUser, Parts: []model.Part{callPart("ok_tool", map[string]any{"query": "x"})}},
		{Role: genai.RoleUser, Parts: []model.Part{callPart("bad_tool", 42)}},
	}

	_, err := send(context.Background(), contents, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, args.ErrUnsupportedArgumentType)
	assert.Equal(t, 0, stub.calls)
}

func TestWrapIsIdempotent(t *testing.T) {
	stub := &stubSend{resp: &genai.GenerateContentResponse{}}
	// Double wrapping must behave like single wrapping.
	send := Wrap(Wrap(stub.fn))

	contents := []*model.Content{{
		Role: genai.RoleUser,
		Parts: []model.Part{
			callPart("read_file", map[string]any{"path": "/abs/file", "n": 2}),
		},
	}}

	_, err := send(context.Background(), contents, nil)
	require.NoError(t, err)
	first := stub.contents[0].Parts[0].FunctionCall.Args

	// Feeding the already-canonical output back in changes nothing.
	_, err = send(context.Background(), stub.contents, nil)
	require.NoError(t, err)
	second := stub.contents[0].Parts[0].FunctionCall.Args

	assert.Equal(t, first, second)
	assert.Equal(t, map[string]any{"path": "/abs/file", "n": 2}, second)
}

func TestWrapPassesThroughArglessCalls(t *testing.T) {
	stub := &stubSend{resp: &genai.GenerateContentResponse{}}
	send := Wrap(stub.fn)

	contents := []*model.Content{{
		Role:  genai.RoleUser,
		Parts: []model.Part{callPart("no_args_tool", nil)},
	}}

	_, err := send(context.Background(), contents, nil)
	require.NoError(t, err)

	fc := stub.contents[0].Parts[0].FunctionCall
	assert.Equal(t, "no_args_tool", fc.Name)
	assert.Nil(t, fc.Args)
}

func TestWrapPreservesUntouchedContents(t *testing.T) {
	stub := &stubSend{resp: &genai.GenerateContentResponse{}}
	send := Wrap(stub.fn)

	plain := &model.Content{Role: genai.RoleModel, Parts: []model.Part{textPart("hello")}}
	contents := []*model.Content{
		plain,
		{Role: genai.RoleUser, Parts: []model.Part{callPart("t", map[string]any{"a": 1})}},
	}

	_, err := send(context.Background(), contents, nil)
	require.NoError(t, err)

	// Contents without function calls are carried over by reference.
	assert.Same(t, plain, stub.contents[0])
	assert.NotSame(t, contents[1], stub.contents[1])
}
