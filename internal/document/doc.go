// Package document implements the generic tree that native live files and
// opaque provider settings are handled as, and the merge engine that writes
// canonical fields into an existing live file without disturbing keys the
// canonical model does not own.
//
// A [Document] is a map[string]any whose leaves are JSON/TOML-shaped values:
// nested maps, []any, strings, bools, int64/float64 and nil. Decoders in this
// package normalise whole JSON numbers to int64 so a tree can move between
// the JSON and TOML codecs without 8080 turning into 8080.0.
//
// Key order is not preserved; the encoders emit keys in sorted order.
package document
