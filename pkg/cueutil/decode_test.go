// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"reflect"
	"strings"
	"testing"
)

const testSchema = `
#Config: {
	name?:  string
	debug?: bool
}
`

func TestDecodeMap(t *testing.T) {
	t.Parallel()

	data := []byte(`
// a comment
DB: Connections: Default: {
	host: "localhost"
	user: "typo3"
}
BE: debug: true
`)

	got, err := DecodeMap(data, WithFilename("settings.cue"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := map[string]any{
		"DB": map[string]any{
			"Connections": map[string]any{
				"Default": map[string]any{"host": "localhost", "user": "typo3"},
			},
		},
		"BE": map[string]any{"debug": true},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DecodeMap() = %#v, want %#v", got, want)
	}
}

func TestDecodeMap_CommentsOnly(t *testing.T) {
	t.Parallel()

	got, err := DecodeMap([]byte("// nothing here\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("DecodeMap() = %#v, want empty map", got)
	}
}

func TestDecodeMap_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    string
		opts    []Option
		wantMsg string
	}{
		{
			name:    "syntax error names the file",
			data:    "a: {",
			opts:    []Option{WithFilename("broken.cue")},
			wantMsg: "broken.cue",
		},
		{
			name:    "schema violation",
			data:    `name: 42`,
			opts:    []Option{WithFilename("tool.cue"), WithSchema(testSchema, "#Config"), WithConcrete(false)},
			wantMsg: "name",
		},
		{
			name:    "closed schema rejects unknown fields",
			data:    `unknown: "x"`,
			opts:    []Option{WithSchema(testSchema, "#Config"), WithConcrete(false)},
			wantMsg: "unknown",
		},
		{
			name:    "size limit",
			data:    `name: "abcdef"`,
			opts:    []Option{WithMaxFileSize(4)},
			wantMsg: "exceeds maximum",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := DecodeMap([]byte(tt.data), tt.opts...)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q should contain %q", err, tt.wantMsg)
			}
		})
	}
}

func TestDecodeMap_SchemaAcceptsPartialConfig(t *testing.T) {
	t.Parallel()

	got, err := DecodeMap([]byte(`debug: true`), WithSchema(testSchema, "#Config"), WithConcrete(false))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got["debug"] != true {
		t.Errorf("debug = %v, want true", got["debug"])
	}
}

func TestEncodeFile_RoundTrip(t *testing.T) {
	t.Parallel()

	in := map[string]any{
		"SYS": map[string]any{
			"sitename":      "My site",
			"displayErrors": false,
		},
		"EXTENSIONS": map[string]any{
			"news": map[string]any{"label": "with \"quotes\""},
		},
	}

	out, err := EncodeFile(in, "Auto generated\nDo not edit")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(string(out), "// Auto generated\n// Do not edit\n") {
		t.Errorf("header missing:\n%s", out)
	}

	back, err := DecodeMap(out)
	if err != nil {
		t.Fatalf("re-decode failed: %v\n%s", err, out)
	}
	if !reflect.DeepEqual(back, in) {
		t.Errorf("round trip = %#v, want %#v", back, in)
	}
}

func TestEncodeFile_Empty(t *testing.T) {
	t.Parallel()

	out, err := EncodeFile(map[string]any{}, "marker")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	back, err := DecodeMap(out)
	if err != nil {
		t.Fatalf("re-decode failed: %v", err)
	}
	if len(back) != 0 {
		t.Errorf("round trip of empty map = %#v", back)
	}
}
