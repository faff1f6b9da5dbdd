package mcp

import (
	"math"
	"slices"

	"github.com/thoreinstein/switchboard/internal/document"
	"github.com/thoreinstein/switchboard/internal/errors"
	"github.com/thoreinstein/switchboard/internal/paths"
)

// dialect describes how one application spells server records.
type dialect struct {
	// plainURL is the transport a bare "url" key means.
	plainURL Kind
	// headersKey is the native name of the HTTP headers map.
	headersKey string
	// defaultTag reports whether the type field is written when the server
	// carries no TagMode of its own.
	defaultTag bool
}

var dialects = map[paths.App]dialect{
	// Claude Code requires "type" for remote servers and writes it for stdio.
	paths.AppClaude: {plainURL: KindHTTP, headersKey: "headers", defaultTag: true},
	// Codex only speaks stdio and streamable HTTP; a bare url is HTTP.
	paths.AppCodex: {plainURL: KindHTTP, headersKey: "http_headers"},
	// Gemini CLI distinguishes transports by key: httpUrl vs url (SSE).
	paths.AppGemini: {plainURL: KindSSE, headersKey: "headers"},
}

// FromNative converts one native server record of app into a canonical
// server enabled for that app. Unmodelled keys are kept in Extra.
func FromNative(app paths.App, id string, rec document.Document) (*Server, error) {
	d, ok := dialects[app]
	if !ok {
		return nil, errors.Invalidf("unknown app %q", app)
	}
	kind, err := Classify(rec, d.plainURL)
	if err != nil {
		return nil, errors.Wrapf(err, "server %q", id)
	}

	rest := document.Clone(rec)
	s := &Server{ID: id, Name: id, Apps: Apps{}.With(app, true)}
	s.Transport.Kind = kind

	if _, tagged := rest["type"]; tagged {
		s.Transport.Tag = TagAlways
	} else if _, tagged := rest["transport"]; tagged {
		s.Transport.Tag = TagAlways
	} else {
		s.Transport.Tag = TagNever
	}
	delete(rest, "type")
	delete(rest, "transport")

	var fieldErr error
	take := func(key string) any {
		v := rest[key]
		delete(rest, key)
		return v
	}
	str := func(key string) string {
		v := take(key)
		if v == nil {
			return ""
		}
		sv, isString := v.(string)
		if !isString && fieldErr == nil {
			fieldErr = errors.Newf("%q must be a string, got %T", key, v)
		}
		return sv
	}
	strMap := func(key string) map[string]string {
		m, err := toStringMap(take(key))
		if err != nil && fieldErr == nil {
			fieldErr = errors.Wrapf(err, "%q", key)
		}
		return m
	}

	switch kind {
	case KindStdio:
		s.Transport.Command = str("command")
		args, err := toStringSlice(take("args"))
		if err != nil && fieldErr == nil {
			fieldErr = errors.Wrap(err, `"args"`)
		}
		s.Transport.Args = args
		s.Transport.Env = strMap("env")
		s.Transport.Cwd = str("cwd")
	default:
		url := str("url")
		if httpURL := str("httpUrl"); httpURL != "" {
			url = httpURL
		}
		s.Transport.URL = url
		s.Transport.Headers = strMap(d.headersKey)
	}

	switch app {
	case paths.AppCodex:
		s.Transport.StartupMS = takeDuration(rest, "startup_timeout_sec", "startup_timeout_ms", &fieldErr)
		s.Transport.ToolMS = takeDuration(rest, "tool_timeout_sec", "tool_timeout_ms", &fieldErr)
	case paths.AppGemini:
		if v, ok := rest["timeout"]; ok {
			ms, err := toMillis(v, 1)
			if err != nil && fieldErr == nil {
				fieldErr = errors.Wrap(err, `"timeout"`)
			}
			s.Transport.ToolMS = ms
			delete(rest, "timeout")
		}
	}

	if fieldErr != nil {
		return nil, errors.Mark(errors.Wrapf(fieldErr, "server %q", id), errors.ErrFormat)
	}
	if err := Validate(s); err != nil {
		return nil, errors.Mark(err, errors.ErrFormat)
	}
	if len(rest) > 0 {
		s.Extra = rest
	}
	return s, nil
}

// ToNative renders s in app's native record shape.
func ToNative(app paths.App, s *Server) (document.Document, error) {
	d, ok := dialects[app]
	if !ok {
		return nil, errors.Invalidf("unknown app %q", app)
	}
	rec := document.Clone(s.Extra)
	if rec == nil {
		rec = document.Document{}
	}
	t := s.Transport

	writeTag := t.Tag == TagAlways || (t.Tag == TagDefault && d.defaultTag)

	switch t.Kind {
	case KindStdio:
		rec["command"] = t.Command
		if len(t.Args) > 0 {
			rec["args"] = toAnySlice(t.Args)
		}
		if len(t.Env) > 0 {
			rec["env"] = toAnyMap(t.Env)
		}
		if t.Cwd != "" {
			rec["cwd"] = t.Cwd
		}
	case KindHTTP, KindSSE:
		urlKey := "url"
		if app == paths.AppGemini && t.Kind == KindHTTP {
			urlKey = "httpUrl"
		}
		rec[urlKey] = t.URL
		if len(t.Headers) > 0 {
			rec[d.headersKey] = toAnyMap(t.Headers)
		}
		// Claude cannot express a remote server without its type.
		if app == paths.AppClaude {
			writeTag = true
		}
	default:
		return nil, errors.Invalidf("server %q has no transport type", s.ID)
	}

	if writeTag {
		kind := t.Kind
		if app == paths.AppCodex && kind == KindSSE {
			kind = KindHTTP
		}
		rec["type"] = string(kind)
	}

	switch app {
	case paths.AppCodex:
		putSeconds(rec, "startup_timeout_sec", t.StartupMS)
		putSeconds(rec, "tool_timeout_sec", t.ToolMS)
	case paths.AppGemini:
		if t.ToolMS > 0 {
			rec["timeout"] = t.ToolMS
		}
	}
	return rec, nil
}

// putSeconds writes a millisecond duration as whole seconds when exact and
// as fractional seconds otherwise.
func putSeconds(rec document.Document, key string, ms int64) {
	if ms <= 0 {
		return
	}
	if ms%1000 == 0 {
		rec[key] = ms / 1000
		return
	}
	rec[key] = float64(ms) / 1000
}

func takeDuration(rest document.Document, secKey, msKey string, fieldErr *error) int64 {
	var ms int64
	if v, ok := rest[secKey]; ok {
		n, err := toMillis(v, 1000)
		if err != nil && *fieldErr == nil {
			*fieldErr = errors.Wrapf(err, "%q", secKey)
		}
		ms = n
		delete(rest, secKey)
	}
	if v, ok := rest[msKey]; ok {
		n, err := toMillis(v, 1)
		if err != nil && *fieldErr == nil {
			*fieldErr = errors.Wrapf(err, "%q", msKey)
		}
		if ms == 0 {
			ms = n
		}
		delete(rest, msKey)
	}
	return ms
}

// toMillis converts a numeric value in units of scale milliseconds.
func toMillis(v any, scale float64) (int64, error) {
	var f float64
	switch n := v.(type) {
	case int64:
		f = float64(n)
	case int:
		f = float64(n)
	case float64:
		f = n
	default:
		return 0, errors.Newf("must be a number, got %T", v)
	}
	if f < 0 {
		return 0, errors.Newf("must not be negative, got %v", f)
	}
	return int64(math.Round(f * scale)), nil
}

func toStringSlice(v any) ([]string, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case []string:
		return slices.Clone(val), nil
	case []any:
		out := make([]string, 0, len(val))
		for i, item := range val {
			s, ok := item.(string)
			if !ok {
				return nil, errors.Newf("element %d must be a string, got %T", i, item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, errors.Newf("must be a list of strings, got %T", v)
	}
}

func toStringMap(v any) (map[string]string, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case map[string]string:
		return val, nil
	case document.Document:
		out := make(map[string]string, len(val))
		for k, item := range val {
			s, ok := item.(string)
			if !ok {
				return nil, errors.Newf("value of %q must be a string, got %T", k, item)
			}
			out[k] = s
		}
		return out, nil
	default:
		return nil, errors.Newf("must be a map of strings, got %T", v)
	}
}

func toAnySlice(in []string) []any {
	out := make([]any, len(in))
	for i, s := range in {
		out[i] = s
	}
	return out
}

func toAnyMap(in map[string]string) document.Document {
	out := make(document.Document, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
