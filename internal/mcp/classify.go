package mcp

import (
	"strings"

	"github.com/thoreinstein/switchboard/internal/document"
	"github.com/thoreinstein/switchboard/internal/errors"
)

// ParseKind normalises a transport tag. The streamable-HTTP spellings used
// by various clients all map to KindHTTP.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "stdio", "local":
		return KindStdio, nil
	case "http", "streamable-http", "streamable_http", "streamablehttp":
		return KindHTTP, nil
	case "sse":
		return KindSSE, nil
	default:
		return "", errors.Invalidf("unknown transport type %q", s)
	}
}

// Classify infers the transport of a native server record. Priority:
//
//  1. an explicit "type" (or "transport") field is authoritative
//  2. a non-empty "command" means stdio
//  3. an "httpUrl" field means http
//  4. a "url" field means plainURL, the format's meaning of a bare url
//
// A record matching none of these is a FormatError.
func Classify(rec document.Document, plainURL Kind) (Kind, error) {
	for _, key := range []string{"type", "transport"} {
		if v, ok := rec[key]; ok {
			s, isString := v.(string)
			if !isString {
				return "", errors.Mark(errors.Newf("%q must be a string, got %T", key, v), errors.ErrFormat)
			}
			kind, err := ParseKind(s)
			if err != nil {
				return "", errors.Mark(err, errors.ErrFormat)
			}
			return kind, nil
		}
	}
	if document.LookupString(rec, "command") != "" {
		return KindStdio, nil
	}
	if document.LookupString(rec, "httpUrl") != "" {
		return KindHTTP, nil
	}
	if document.LookupString(rec, "url") != "" {
		return plainURL, nil
	}
	return "", errors.Mark(errors.New("cannot infer transport: no type, command or url"), errors.ErrFormat)
}
