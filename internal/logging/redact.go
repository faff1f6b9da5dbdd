package logging

import (
	"fmt"
	"log/slog"

	"github.com/thoreinstein/switchboard/internal/doctor"
)

// redactValue masks v when the key looks secret or the value carries a known
// token prefix. Only string-like leaf values are inspected.
func redactValue(key string, v slog.Value) (slog.Value, bool) {
	if v.Kind() == slog.KindGroup {
		return v, false
	}
	if doctor.ShouldMask(key) {
		return slog.StringValue(doctor.MaskValue(fmt.Sprint(v.Any()))), true
	}
	if v.Kind() == slog.KindString && doctor.ContainsTokenPrefix(v.String()) {
		return slog.StringValue(doctor.MaskValue(v.String())), true
	}
	return v, false
}

// redactAttr is a slog.HandlerOptions.ReplaceAttr hook for the JSON handler.
func redactAttr(groups []string, a slog.Attr) slog.Attr {
	if len(groups) == 0 && (a.Key == slog.TimeKey || a.Key == slog.LevelKey || a.Key == slog.MessageKey) {
		return a
	}
	if v, ok := redactValue(a.Key, a.Value.Resolve()); ok {
		a.Value = v
	}
	return a
}
