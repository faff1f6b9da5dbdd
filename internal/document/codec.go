package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/thoreinstein/switchboard/internal/errors"
	"github.com/thoreinstein/switchboard/pkg/fileutil"
)

// DecodeJSON parses data as a JSON object. Empty or whitespace-only input
// decodes to an empty document. name labels FormatErrors.
func DecodeJSON(data []byte, name string) (Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Document{}, nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, errors.Format(err, name)
	}
	doc, ok := v.(Document)
	if !ok {
		return nil, errors.Format(errors.Newf("expected a JSON object, got %T", v), name)
	}
	return NormalizeNumbers(doc), nil
}

// NormalizeNumbers converts json.Number leaves to int64 when integral and
// float64 otherwise. It is applied in place and returns doc.
func NormalizeNumbers(doc Document) Document {
	for k, v := range doc {
		doc[k] = normalizeNumber(v)
	}
	return doc
}

func normalizeNumber(v any) any {
	switch val := v.(type) {
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i
		}
		f, _ := val.Float64()
		return f
	case Document:
		return NormalizeNumbers(val)
	case []any:
		for i := range val {
			val[i] = normalizeNumber(val[i])
		}
		return val
	default:
		return v
	}
}

// EncodeJSON renders doc with 2-space indentation and a trailing newline.
func EncodeJSON(doc Document) ([]byte, error) {
	if doc == nil {
		doc = Document{}
	}
	return fileutil.MarshalJSON(doc)
}

// DecodeTOML parses data as a TOML document.
func DecodeTOML(data []byte, name string) (Document, error) {
	doc := Document{}
	if len(bytes.TrimSpace(data)) == 0 {
		return doc, nil
	}
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Format(err, name)
	}
	return doc, nil
}

// EncodeTOML renders doc as TOML.
func EncodeTOML(doc Document) ([]byte, error) {
	if len(doc) == 0 {
		return []byte{}, nil
	}
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(false)
	if err := enc.Encode(doc); err != nil {
		return nil, errors.Wrap(err, "marshaling TOML")
	}
	return buf.Bytes(), nil
}

// DecodeEnv parses a dotenv file into a document of string values.
func DecodeEnv(data []byte, name string) (Document, error) {
	vars, err := godotenv.UnmarshalBytes(data)
	if err != nil {
		return nil, errors.Format(err, name)
	}
	doc := make(Document, len(vars))
	for k, v := range vars {
		doc[k] = v
	}
	return doc, nil
}

// EncodeEnv renders doc as a dotenv file with sorted keys. Non-string
// values are formatted with fmt; nested maps are rejected.
func EncodeEnv(doc Document) ([]byte, error) {
	vars := make(map[string]string, len(doc))
	for k, v := range doc {
		switch val := v.(type) {
		case Document, []any:
			return nil, errors.Invalidf("env key %q must be a scalar, got %T", k, v)
		case nil:
			continue
		case string:
			vars[k] = val
		default:
			vars[k] = fmt.Sprint(val)
		}
	}
	if len(vars) == 0 {
		return []byte{}, nil
	}
	out, err := godotenv.Marshal(vars)
	if err != nil {
		return nil, errors.Wrap(err, "marshaling env")
	}
	return []byte(out + "\n"), nil
}

// Lookup returns the value at a dotted path such as "env.ANTHROPIC_BASE_URL".
func Lookup(doc Document, path string) (any, bool) {
	var cur any = doc
	for _, part := range strings.Split(path, ".") {
		m, ok := cur.(Document)
		if !ok {
			return nil, false
		}
		cur, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// LookupString returns the trimmed string at path, or "".
func LookupString(doc Document, path string) string {
	v, ok := Lookup(doc, path)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

// LookupMap returns the map at path, or nil.
func LookupMap(doc Document, path string) Document {
	v, ok := Lookup(doc, path)
	if !ok {
		return nil
	}
	m, _ := v.(Document)
	return m
}

// Keys returns the keys of doc in sorted order.
func Keys(doc Document) []string {
	keys := make([]string, 0, len(doc))
	for k := range doc {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
