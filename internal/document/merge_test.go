package document

import (
	"testing"
)

func TestMerge(t *testing.T) {
	tests := []struct {
		name     string
		existing Document
		patch    Document
		want     Document
	}{
		{
			name:     "nil existing",
			existing: nil,
			patch:    Document{"model": "opus"},
			want:     Document{"model": "opus"},
		},
		{
			name:     "scalar replaces scalar",
			existing: Document{"model": "sonnet", "other": int64(1)},
			patch:    Document{"model": "opus"},
			want:     Document{"model": "opus", "other": int64(1)},
		},
		{
			name: "unowned top-level keys survive",
			existing: Document{
				"mcpServers": Document{"keep": Document{"command": "npx"}},
				"other":      int64(1),
			},
			patch: Document{"security": Document{"auth": Document{"selectedType": "gemini-api-key"}}},
			want: Document{
				"mcpServers": Document{"keep": Document{"command": "npx"}},
				"other":      int64(1),
				"security":   Document{"auth": Document{"selectedType": "gemini-api-key"}},
			},
		},
		{
			name: "nested map recursion keeps siblings",
			existing: Document{
				"mcpServers": Document{
					"a": Document{"command": "old"},
					"b": Document{"command": "untouched"},
				},
			},
			patch: Document{"mcpServers": Document{"a": Document{"command": "new"}}},
			want: Document{
				"mcpServers": Document{
					"a": Document{"command": "new"},
					"b": Document{"command": "untouched"},
				},
			},
		},
		{
			name:     "map replaces scalar",
			existing: Document{"env": "broken"},
			patch:    Document{"env": Document{"K": "v"}},
			want:     Document{"env": Document{"K": "v"}},
		},
		{
			name:     "lists replace wholesale",
			existing: Document{"args": []any{"a", "b", "c"}},
			patch:    Document{"args": []any{"x"}},
			want:     Document{"args": []any{"x"}},
		},
		{
			name:     "empty patch map creates key",
			existing: Document{},
			patch:    Document{"env": Document{}},
			want:     Document{"env": Document{}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Merge(tt.existing, tt.patch)
			if !Equal(got, tt.want) {
				t.Errorf("Merge() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestMerge_DoesNotMutateInputs(t *testing.T) {
	existing := Document{"env": Document{"A": "1"}}
	patch := Document{"env": Document{"B": "2"}}

	out := Merge(existing, patch)
	out["env"].(Document)["C"] = "3"

	if len(existing["env"].(Document)) != 1 {
		t.Errorf("existing was mutated: %v", existing)
	}
	if len(patch["env"].(Document)) != 1 {
		t.Errorf("patch was mutated: %v", patch)
	}
}

func TestStrip(t *testing.T) {
	tests := []struct {
		name   string
		target Document
		common Document
		want   Document
	}{
		{
			name:   "equal leaf removed",
			target: Document{"env": Document{"TOKEN": "t", "DISABLE_TELEMETRY": "1"}},
			common: Document{"env": Document{"DISABLE_TELEMETRY": "1"}},
			want:   Document{"env": Document{"TOKEN": "t"}},
		},
		{
			name:   "different value kept",
			target: Document{"includeCoAuthoredBy": true},
			common: Document{"includeCoAuthoredBy": false},
			want:   Document{"includeCoAuthoredBy": true},
		},
		{
			name:   "map emptied by strip removed",
			target: Document{"permissions": Document{"allow": []any{"Bash"}}, "model": "x"},
			common: Document{"permissions": Document{"allow": []any{"Bash"}}},
			want:   Document{"model": "x"},
		},
		{
			name:   "already empty map kept",
			target: Document{"env": Document{}},
			common: Document{"env": Document{"A": "1"}},
			want:   Document{"env": Document{}},
		},
		{
			name:   "int and float compare equal",
			target: Document{"timeout": int64(30)},
			common: Document{"timeout": float64(30)},
			want:   Document{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Strip(tt.target, tt.common)
			if !Equal(got, tt.want) {
				t.Errorf("Strip() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestMergeThenStrip_RecoversProvider(t *testing.T) {
	provider := Document{"env": Document{"ANTHROPIC_AUTH_TOKEN": "sk-1", "ANTHROPIC_BASE_URL": "https://r"}}
	common := Document{"env": Document{"DISABLE_AUTOUPDATER": "1"}}

	live := Merge(provider, common)
	captured := Strip(live, common)

	if !Equal(captured, provider) {
		t.Errorf("Strip(Merge(p, c), c) = %#v, want %#v", captured, provider)
	}
}

func TestClone(t *testing.T) {
	if Clone(nil) != nil {
		t.Error("Clone(nil) should be nil")
	}
	src := Document{"a": Document{"b": []any{"c"}}}
	dst := Clone(src)
	dst["a"].(Document)["b"].([]any)[0] = "changed"
	if src["a"].(Document)["b"].([]any)[0] != "c" {
		t.Error("Clone shares nested storage")
	}
}
