package prompt

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

var threeItems = []Item{
	{Label: "official (https://api.anthropic.com)"},
	{Label: "relay (https://relay.example.com)"},
	{Label: "local (http://localhost:8080)"},
}

func TestSelector_EmptyList(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	s := NewSelectorWithIO(strings.NewReader(""), &buf)

	if _, err := s.Pick("Providers", nil); !errors.Is(err, ErrNoItems) {
		t.Errorf("expected ErrNoItems, got: %v", err)
	}
}

func TestSelector_SingleItem(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	s := NewSelectorWithIO(strings.NewReader(""), &buf)

	idx, err := s.Pick("Providers", threeItems[:1])
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if idx != 0 {
		t.Errorf("idx = %d, want 0", idx)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no prompt output, got: %q", buf.String())
	}
}

func TestSelector_Pick(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    int
		wantErr error
	}{
		{name: "explicit choice", input: "2\n", want: 1},
		{name: "last choice", input: "3\n", want: 2},
		{name: "empty defaults to first", input: "\n", want: 0},
		{name: "choice without newline", input: "3", want: 2},
		{name: "not a number", input: "abc\n", wantErr: ErrInvalidSelection},
		{name: "out of range", input: "4\n", wantErr: ErrInvalidSelection},
		{name: "zero", input: "0\n", wantErr: ErrInvalidSelection},
		{name: "eof", input: "", wantErr: ErrSelectionCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			s := NewSelectorWithIO(strings.NewReader(tt.input), &buf)

			idx, err := s.Pick("Providers", threeItems)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if idx != tt.want {
				t.Errorf("idx = %d, want %d", idx, tt.want)
			}
			if !strings.Contains(buf.String(), "[2] relay") {
				t.Errorf("prompt missing numbered entry: %q", buf.String())
			}
		})
	}
}

func TestNewPicker_NonTerminal(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	p := NewPicker(strings.NewReader(""), &buf)
	if _, ok := p.(*Selector); !ok {
		t.Errorf("NewPicker() = %T, want *Selector", p)
	}
}
