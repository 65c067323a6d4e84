// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/ast"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/format"
)

// EncodeFile renders v (a map or struct) as a formatted CUE file. Every line of
// header is emitted as a leading "//" comment.
func EncodeFile(v any, header string) ([]byte, error) {
	value := cuecontext.New().Encode(v)
	if value.Err() != nil {
		return nil, fmt.Errorf("failed to encode value as CUE: %w", value.Err())
	}

	var file *ast.File
	switch node := value.Syntax(cue.Final(), cue.Concrete(true)).(type) {
	case *ast.File:
		file = node
	case *ast.StructLit:
		file = &ast.File{Decls: node.Elts}
	default:
		return nil, fmt.Errorf("failed to encode value as CUE: top-level value is %T, not a struct", node)
	}

	body, err := format.Node(file)
	if err != nil {
		return nil, fmt.Errorf("failed to format CUE: %w", err)
	}

	var sb strings.Builder
	if header != "" {
		for line := range strings.SplitSeq(strings.TrimRight(header, "\n"), "\n") {
			sb.WriteString("// ")
			sb.WriteString(line)
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}
	sb.Write(body)

	return []byte(sb.String()), nil
}
