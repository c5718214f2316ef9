// Package persist keeps selected state keys across runs.
//
// Values are encoded as CBOR and stored per component tag and state key.
// [Bind] restores stored values into a mounted component and saves every
// later value from an effect:
//
//	st, err := persist.OpenBolt("lite.db")
//	...
//	defer st.Close()
//	persist.Bind(comp, st, "count", "users")
package persist
