package persist

import (
	"github.com/go-drift/lite/pkg/core"
	"github.com/go-drift/lite/pkg/errors"
)

// Bind restores the stored value of each key into c and saves every later
// value of those keys to st. Keys must already be declared on c. A value
// that cannot be decoded is skipped; the first load error is returned.
func Bind(c *core.Component, st Store, keys ...string) error {
	tag := c.Tag()
	var firstErr error
	for _, key := range keys {
		data, ok, err := st.Load(tag, key)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if ok {
			v, err := Decode(data)
			if err != nil {
				c.Runtime().Logger().Warn("stored value skipped", "component", tag, "key", key, "error", err)
			} else {
				prev, _ := c.Get(key)
				c.Set(key, conform(prev, v))
			}
		}

		core.UseEffect(c, func(v any) {
			data, err := Encode(v)
			if err == nil {
				err = st.Save(tag, key, data)
			}
			if err == nil {
				return
			}
			le, ok := err.(*errors.LiteError)
			if !ok {
				le = &errors.LiteError{Op: "persist.Bind", Kind: errors.KindStorage, Component: tag, Err: err}
			}
			errors.Report(le)
		}, key)
	}
	return firstErr
}

// conform keeps a restored value in the shape of the declared one. An
// empty or nil array decodes without a hint that it held items, so a key
// declared as a core.List gets an empty core.List back.
func conform(declared, restored any) any {
	if _, ok := declared.(core.List); !ok {
		return restored
	}
	switch v := restored.(type) {
	case nil:
		return core.List{}
	case []any:
		if len(v) == 0 {
			return core.List{}
		}
	}
	return restored
}
