// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// DecodeMap compiles a CUE document and decodes its top-level struct into a map.
// A document holding only comments decodes to an empty, non-nil map.
func DecodeMap(data []byte, opts ...Option) (map[string]any, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	filename := o.filename
	if filename == "" {
		filename = "<input>"
	}

	if err := CheckFileSize(data, o.maxFileSize, filename); err != nil {
		return nil, err
	}

	ctx := cuecontext.New()

	value := ctx.CompileBytes(data, cue.Filename(filename))
	if value.Err() != nil {
		return nil, FormatError(value.Err(), filename)
	}

	if o.schema != "" {
		schemaValue := ctx.CompileString(o.schema)
		if schemaValue.Err() != nil {
			return nil, fmt.Errorf("internal error: failed to compile schema: %w", schemaValue.Err())
		}
		root := schemaValue.LookupPath(cue.ParsePath(o.schemaPath))
		if root.Err() != nil {
			return nil, fmt.Errorf("internal error: schema definition %s not found: %w", o.schemaPath, root.Err())
		}
		value = root.Unify(value)
	}

	if err := value.Validate(cue.Concrete(o.concrete)); err != nil {
		return nil, FormatError(err, filename)
	}

	var out map[string]any
	if err := value.Decode(&out); err != nil {
		return nil, FormatError(err, filename)
	}
	if out == nil {
		out = map[string]any{}
	}

	return out, nil
}
