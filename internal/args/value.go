package args

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
)

// Path marks a value as a filesystem path. During coercion a Path is
// stringified; everywhere else it behaves like its underlying string.
type Path string

func (p Path) String() string { return string(p) }

// Kind is the wire-safety classification of a bundle value. The
// downstream structured-argument encoding accepts exactly the kinds
// below; everything else must be coerced before dispatch.
type Kind int

const (
	KindOther Kind = iota
	KindString
	KindInt
	KindFloat
	KindBool
	KindPath
	KindSequence
	KindMapping
)

// kindOf classifies a runtime value. JSON decoding only ever produces
// string/float64/bool/[]any/map[string]any, but bundles are also built
// programmatically, so the full set of Go numeric widths is accepted.
func kindOf(v any) Kind {
	switch v.(type) {
	case string:
		return KindString
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return KindInt
	case float32, float64:
		return KindFloat
	case bool:
		return KindBool
	case Path:
		return KindPath
	case []any:
		return KindSequence
	case map[string]any:
		return KindMapping
	case json.Number:
		return kindOfNumber(v.(json.Number))
	default:
		return KindOther
	}
}

func kindOfNumber(n json.Number) Kind {
	if _, err := n.Int64(); err == nil {
		return KindInt
	}
	return KindFloat
}

// coerce rewrites a single bundle value into its wire-safe form.
//
// Sequences are coerced element-wise only: a mapping inside a sequence
// passes through unmodified, while a mapping met directly as a value is
// descended into. The upstream API has only ever been fed the shallow
// form for sequence elements, so that shape is kept as-is.
func (n *Normalizer) coerce(v any, keyPath ...string) (any, error) {
	switch kindOf(v) {
	case KindString, KindInt, KindFloat, KindBool:
		return v, nil

	case KindPath:
		return string(v.(Path)), nil

	case KindSequence:
		seq := v.([]any)
		out := make([]any, len(seq))
		for i, elem := range seq {
			if kindOf(elem) == KindPath {
				out[i] = string(elem.(Path))
				continue
			}
			out[i] = elem
		}
		return out, nil

	case KindMapping:
		m := v.(map[string]any)
		out := make(map[string]any, len(m))
		for key, val := range m {
			kp := make([]string, 0, len(keyPath)+1)
			kp = append(append(kp, keyPath...), key)
			cv, err := n.coerce(val, kp...)
			if err != nil {
				return nil, err
			}
			out[key] = cv
		}
		return out, nil

	default:
		// Lossy fallback: anything outside the wire-safe kind set is
		// flattened to its string representation. Logged at Warn so the
		// information loss is visible in diagnostics.
		s := fmt.Sprint(v)
		n.log.Warn("coerced non-wire-safe value to string",
			zap.Strings("key_path", keyPath),
			zap.String("go_type", fmt.Sprintf("%T", v)),
			zap.String("value", s))
		return s, nil
	}
}
