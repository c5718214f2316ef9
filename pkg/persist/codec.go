package persist

import (
	"fmt"
	"math"

	"github.com/fxamacker/cbor/v2"

	"github.com/go-drift/lite/pkg/core"
)

var encMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("persist: failed to create CBOR enc mode: %v", err))
	}
	encMode = em
}

// Encode serialises a state value.
func Encode(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

// Decode deserialises a state value. Integers come back as int when they
// fit, maps as map[string]any, and arrays of maps as core.List.
func Decode(data []byte) (any, error) {
	var v any
	if err := cbor.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return normalize(v), nil
}

func normalize(v any) any {
	switch v := v.(type) {
	case uint64:
		if v <= math.MaxInt {
			return int(v)
		}
		return v
	case int64:
		if v >= math.MinInt && v <= math.MaxInt {
			return int(v)
		}
		return v
	case map[any]any:
		m := make(map[string]any, len(v))
		for k, e := range v {
			m[fmt.Sprint(k)] = normalize(e)
		}
		return m
	case map[string]any:
		m := make(map[string]any, len(v))
		for k, e := range v {
			m[k] = normalize(e)
		}
		return m
	case []any:
		return normalizeSlice(v)
	}
	return v
}

func normalizeSlice(s []any) any {
	out := make([]any, len(s))
	items := len(s) > 0
	for i, e := range s {
		out[i] = normalize(e)
		if _, ok := out[i].(map[string]any); !ok {
			items = false
		}
	}
	if !items {
		return out
	}
	list := make(core.List, len(out))
	for i, e := range out {
		list[i] = core.Item(e.(map[string]any))
	}
	return list
}
