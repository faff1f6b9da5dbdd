package platform

import (
	"slices"

	"github.com/thoreinstein/switchboard/internal/document"
	"github.com/thoreinstein/switchboard/internal/errors"
	"github.com/thoreinstein/switchboard/internal/mcp"
	"github.com/thoreinstein/switchboard/internal/paths"
)

// RenderServers writes servers into doc[key] in app's dialect and deletes the
// ids in removed. Every other entry of doc[key] is kept. Each rendered entry
// replaces the native entry of the same id wholesale; fields the canonical
// server does not model survive through Server.Extra.
func RenderServers(app paths.App, doc document.Document, key string, servers map[string]*mcp.Server, removed []string) error {
	raw, present := doc[key]
	native, ok := raw.(document.Document)
	if present && !ok && raw != nil {
		return errors.Format(errors.Newf("%s is %T, want an object", key, raw), key)
	}
	if native == nil {
		native = document.Document{}
	}

	for _, id := range removed {
		delete(native, id)
	}

	ids := make([]string, 0, len(servers))
	for id := range servers {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	for _, id := range ids {
		rec, err := mcp.ToNative(app, servers[id])
		if err != nil {
			return errors.Wrapf(err, "rendering MCP server %q for %s", id, app)
		}
		native[id] = rec
	}

	if len(native) == 0 && !present {
		return nil
	}
	doc[key] = native
	return nil
}

// ParseServers imports doc[key] in app's dialect. Each returned server has
// app enabled. An entry that cannot be imported becomes an ImportError.
func ParseServers(app paths.App, doc document.Document, key string) ([]*mcp.Server, []ImportError) {
	raw, present := doc[key]
	if !present || raw == nil {
		return nil, nil
	}
	native, ok := raw.(document.Document)
	if !ok {
		return nil, []ImportError{{
			ID:  key,
			Err: errors.Format(errors.Newf("%s is %T, want an object", key, raw), key),
		}}
	}

	var (
		servers []*mcp.Server
		failed  []ImportError
	)
	for _, id := range document.Keys(native) {
		rec, ok := native[id].(document.Document)
		if !ok {
			failed = append(failed, ImportError{
				ID:  id,
				Err: errors.Format(errors.Newf("entry is %T, want an object", native[id]), key+"."+id),
			})
			continue
		}
		s, err := mcp.FromNative(app, id, rec)
		if err != nil {
			failed = append(failed, ImportError{ID: id, Err: err})
			continue
		}
		s.Apps = s.Apps.With(app, true)
		servers = append(servers, s)
	}
	return servers, failed
}
