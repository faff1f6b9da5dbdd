package document

import (
	"reflect"

	"github.com/mohae/deepcopy"
)

// Document is a JSON/TOML-shaped tree.
type Document = map[string]any

// Clone deep-copies d. Clone(nil) is nil.
func Clone(d Document) Document {
	if d == nil {
		return nil
	}
	return deepcopy.Copy(d).(Document)
}

// Merge returns existing with patch applied. Every key named by patch is
// written: maps recurse into the same-named map in existing (created when
// absent or not a map) and any other value replaces. Keys of existing that
// patch does not name are kept verbatim at every depth. Neither input is
// modified.
func Merge(existing, patch Document) Document {
	out := Clone(existing)
	if out == nil {
		out = Document{}
	}
	mergeInto(out, patch)
	return out
}

func mergeInto(dst, patch Document) {
	for k, pv := range patch {
		pm, patchIsMap := pv.(Document)
		if !patchIsMap {
			dst[k] = deepcopy.Copy(pv)
			continue
		}
		dm, dstIsMap := dst[k].(Document)
		if !dstIsMap {
			dm = Document{}
		}
		mergeInto(dm, pm)
		dst[k] = dm
	}
}

// Strip returns target without the values it shares with common: a leaf is
// removed when common holds an equal value at the same path, and a map left
// empty by stripping is removed too. Maps that were already empty in target
// are kept. Neither input is modified.
func Strip(target, common Document) Document {
	out := Clone(target)
	if out == nil {
		return nil
	}
	stripInto(out, common)
	return out
}

func stripInto(dst, common Document) {
	for k, cv := range common {
		dv, ok := dst[k]
		if !ok {
			continue
		}
		dm, dstIsMap := dv.(Document)
		cm, commonIsMap := cv.(Document)
		if dstIsMap && commonIsMap {
			if len(dm) == 0 {
				continue
			}
			stripInto(dm, cm)
			if len(dm) == 0 {
				delete(dst, k)
			}
			continue
		}
		if Equal(dv, cv) {
			delete(dst, k)
		}
	}
}

// Equal compares two document values, treating numerically equal int64 and
// float64 leaves as equal.
func Equal(a, b any) bool {
	return reflect.DeepEqual(normalize(a), normalize(b))
}

func normalize(v any) any {
	switch val := v.(type) {
	case Document:
		out := make(Document, len(val))
		for k, item := range val {
			out[k] = normalize(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = normalize(item)
		}
		return out
	case []string:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = item
		}
		return out
	case map[string]string:
		out := make(Document, len(val))
		for k, item := range val {
			out[k] = item
		}
		return out
	case int:
		return float64(val)
	case int32:
		return float64(val)
	case int64:
		return float64(val)
	case float32:
		return float64(val)
	case uint64:
		return float64(val)
	default:
		return v
	}
}
