// SPDX-License-Identifier: MPL-2.0

package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"typo3-setup-cli/internal/settings"
	"typo3-setup-cli/pkg/cueutil"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cast"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

const (
	// FormatCUE is the CUE settings format.
	FormatCUE Format = "cue"
	// FormatYAML is the YAML settings format.
	FormatYAML Format = "yaml"
	// FormatTOML is the TOML settings format.
	FormatTOML Format = "toml"
	// FormatJSON is the JSON (with comments) settings format.
	FormatJSON Format = "json"
)

type (
	// Format names a settings file format.
	Format string

	// Codec converts between settings file content and a Tree.
	Codec interface {
		// Decode parses content. The filename is used in error messages.
		Decode(data []byte, filename string) (settings.Tree, error)
		// Encode renders tree with header as a leading comment block.
		Encode(tree settings.Tree, header string) ([]byte, error)
	}

	cueCodec  struct{}
	yamlCodec struct{}
	tomlCodec struct{}
	jsonCodec struct{}
)

var (
	codecs = map[Format]Codec{
		FormatCUE:  cueCodec{},
		FormatYAML: yamlCodec{},
		FormatTOML: tomlCodec{},
		FormatJSON: jsonCodec{},
	}

	extensions = map[string]Format{
		".cue":   FormatCUE,
		".yaml":  FormatYAML,
		".yml":   FormatYAML,
		".toml":  FormatTOML,
		".json":  FormatJSON,
		".jsonc": FormatJSON,
	}
)

// Formats returns the supported format names, sorted.
func Formats() []Format {
	out := make([]Format, 0, len(codecs))
	for f := range codecs {
		out = append(out, f)
	}
	slices.Sort(out)
	return out
}

// CodecFor returns the codec for a format name.
func CodecFor(format Format) (Codec, error) {
	c, ok := codecs[Format(strings.ToLower(string(format)))]
	if !ok {
		return nil, fmt.Errorf("%w: %q (supported: %v)", ErrUnsupportedFormat, format, Formats())
	}
	return c, nil
}

// FormatOf returns the format implied by the extension of path.
func FormatOf(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	f, ok := extensions[ext]
	if !ok {
		return "", fmt.Errorf("%w: %s has extension %q", ErrUnsupportedFormat, path, ext)
	}
	return f, nil
}

// CodecForPath returns the codec for the extension of path.
func CodecForPath(path string) (Codec, error) {
	f, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	return CodecFor(f)
}

func (cueCodec) Decode(data []byte, filename string) (settings.Tree, error) {
	m, err := cueutil.DecodeMap(data, cueutil.WithFilename(filename))
	if err != nil {
		return nil, err
	}
	return normalizeTree(m), nil
}

func (cueCodec) Encode(tree settings.Tree, header string) ([]byte, error) {
	return cueutil.EncodeFile(map[string]any(tree), header)
}

func (yamlCodec) Decode(data []byte, filename string) (settings.Tree, error) {
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return normalizeTree(m), nil
}

func (yamlCodec) Encode(tree settings.Tree, header string) ([]byte, error) {
	var buf bytes.Buffer
	writeHeader(&buf, "# ", header)

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(map[string]any(tree)); err != nil {
		return nil, fmt.Errorf("failed to encode YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode YAML: %w", err)
	}
	return buf.Bytes(), nil
}

func (tomlCodec) Decode(data []byte, filename string) (settings.Tree, error) {
	var m map[string]any
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return normalizeTree(m), nil
}

func (tomlCodec) Encode(tree settings.Tree, header string) ([]byte, error) {
	if path, ok := findNull(map[string]any(tree), ""); ok {
		return nil, fmt.Errorf("%w: TOML has no null value (at %s)", ErrUnsupportedFormat, path)
	}

	var buf bytes.Buffer
	writeHeader(&buf, "# ", header)

	body, err := toml.Marshal(map[string]any(tree))
	if err != nil {
		return nil, fmt.Errorf("failed to encode TOML: %w", err)
	}
	buf.Write(body)
	return buf.Bytes(), nil
}

// findNull returns the path of the first nil leaf in v, in key order.
func findNull(v any, path string) (string, bool) {
	switch v := v.(type) {
	case nil:
		return path, true
	case settings.Tree:
		return findNull(map[string]any(v), path)
	case map[string]any:
		for _, k := range slices.Sorted(maps.Keys(v)) {
			child := k
			if path != "" {
				child = path + "." + k
			}
			if p, ok := findNull(v[k], child); ok {
				return p, true
			}
		}
	case []any:
		for i, item := range v {
			if p, ok := findNull(item, fmt.Sprintf("%s[%d]", path, i)); ok {
				return p, true
			}
		}
	}
	return "", false
}

func (jsonCodec) Decode(data []byte, filename string) (settings.Tree, error) {
	plain := jsonc.ToJSON(data)
	if len(bytes.TrimSpace(plain)) == 0 {
		return settings.Tree{}, nil
	}

	var m map[string]any
	if err := json.Unmarshal(plain, &m); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return normalizeTree(m), nil
}

func (jsonCodec) Encode(tree settings.Tree, header string) ([]byte, error) {
	var buf bytes.Buffer
	writeHeader(&buf, "// ", header)

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(map[string]any(tree)); err != nil {
		return nil, fmt.Errorf("failed to encode JSON: %w", err)
	}
	return buf.Bytes(), nil
}

func writeHeader(buf *bytes.Buffer, commentPrefix, header string) {
	if header == "" {
		return
	}
	for line := range strings.SplitSeq(strings.TrimRight(header, "\n"), "\n") {
		buf.WriteString(commentPrefix)
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
	buf.WriteByte('\n')
}

// normalizeTree converts decoder output into a Tree whose nested mappings are all
// map[string]any. Non-string mapping keys (YAML allows them) are stringified.
func normalizeTree(m map[string]any) settings.Tree {
	out := make(settings.Tree, len(m))
	for k, v := range m {
		out[k] = normalizeValue(v)
	}
	return out
}

func normalizeValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return map[string]any(normalizeTree(val))
	case map[any]any:
		m := make(map[string]any, len(val))
		for k, item := range val {
			m[cast.ToString(k)] = normalizeValue(item)
		}
		return m
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = normalizeValue(item)
		}
		return out
	default:
		return v
	}
}
