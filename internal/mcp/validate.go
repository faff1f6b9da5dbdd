package mcp

import (
	"net/url"
	"strings"

	"github.com/thoreinstein/switchboard/internal/errors"
)

// Validate checks that s is complete enough to render for any application.
func Validate(s *Server) error {
	if s == nil {
		return errors.Invalidf("server is nil")
	}
	if strings.TrimSpace(s.ID) == "" {
		return errors.Invalidf("server id is required")
	}
	t := s.Transport
	switch t.Kind {
	case KindStdio:
		if strings.TrimSpace(t.Command) == "" {
			return errors.Invalidf("server %q: stdio transport requires a command", s.ID)
		}
	case KindHTTP, KindSSE:
		if strings.TrimSpace(t.URL) == "" {
			return errors.Invalidf("server %q: %s transport requires a url", s.ID, t.Kind)
		}
		u, err := url.Parse(t.URL)
		if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
			return errors.Invalidf("server %q: invalid url %q", s.ID, t.URL)
		}
	case "":
		return errors.Invalidf("server %q: transport type is required", s.ID)
	default:
		return errors.Invalidf("server %q: unknown transport type %q", s.ID, t.Kind)
	}
	if t.StartupMS < 0 || t.ToolMS < 0 {
		return errors.Invalidf("server %q: timeouts must not be negative", s.ID)
	}
	return nil
}
