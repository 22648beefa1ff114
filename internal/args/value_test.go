package args

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestKindOf(t *testing.T) {
	cases := []struct {
		value any
		want  Kind
	}{
		{"s", KindString},
		{42, KindInt},
		{int64(7), KindInt},
		{uint8(1), KindInt},
		{3.14, KindFloat},
		{float32(1), KindFloat},
		{true, KindBool},
		{Path("/x"), KindPath},
		{[]any{1}, KindSequence},
		{map[string]any{}, KindMapping},
		{json.Number("12"), KindInt},
		{json.Number("1.5"), KindFloat},
		{nil, KindOther},
		{struct{}{}, KindOther},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, kindOf(tc.value), "%#v", tc.value)
	}
}

func TestCoercePathValuesStringified(t *testing.T) {
	out, err := Normalize(map[string]any{
		"dir":   Path("/opt/app"),
		"files": []any{Path("/a"), "b", 3},
	})
	require.NoError(t, err)

	assert.Equal(t, "/opt/app", out["dir"])
	assert.Equal(t, []any{"/a", "b", 3}, out["files"])
}

func TestCoerceNestedMappingRecurses(t *testing.T) {
	out, err := Normalize(map[string]any{
		"opts": map[string]any{
			"dir":  Path("/data"),
			"deep": map[string]any{"also": Path("/deep")},
		},
	})
	require.NoError(t, err)

	opts := out["opts"].(map[string]any)
	assert.Equal(t, "/data", opts["dir"])
	assert.Equal(t, "/deep", opts["deep"].(map[string]any)["also"])
}

// Mappings inside sequences are intentionally left alone: sequence
// elements get the shallow coercion only. This pins the compatibility
// behavior rather than the recursive form.
func TestCoerceSequenceElementsAreShallow(t *testing.T) {
	inner := map[string]any{"dir": Path("/inside/list")}

	out, err := Normalize(map[string]any{"items": []any{inner, "x"}})
	require.NoError(t, err)

	items := out["items"].([]any)
	require.Len(t, items, 2)
	assert.Equal(t, Path("/inside/list"), items[0].(map[string]any)["dir"])
	assert.Equal(t, "x", items[1])
}

func TestCoerceFallbackStringifiesAndWarns(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	norm := New(WithLogger(zap.New(core)))

	out, err := norm.Normalize(map[string]any{
		"weird": struct{ A int }{A: 1},
		"none":  nil,
	})
	require.NoError(t, err)

	assert.IsType(t, "", out["weird"])
	assert.Equal(t, "<nil>", out["none"])

	warned := logs.FilterMessage("coerced non-wire-safe value to string")
	assert.Equal(t, 2, warned.Len(), "each lossy coercion must be observable")
}

func TestCoerceFallbackSilentWithoutLogger(t *testing.T) {
	out, err := Normalize(map[string]any{"ch": complex(1, 2)})
	require.NoError(t, err)
	assert.IsType(t, "", out["ch"])
}
