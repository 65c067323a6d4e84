// SPDX-License-Identifier: MPL-2.0

package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/huh"
)

type (
	// AccessiblePrompter asks through a huh form in accessible mode, which
	// writes plain lines without cursor movement.
	AccessiblePrompter struct {
		in  *byteReader
		out io.Writer
	}

	// byteReader hands out at most one byte per Read so the form's line
	// scanner never consumes the answers to later questions. It remembers
	// whether the underlying reader reached EOF.
	byteReader struct {
		r   io.Reader
		eof bool
	}
)

// NewAccessiblePrompter creates an AccessiblePrompter reading in and writing out.
func NewAccessiblePrompter(in io.Reader, out io.Writer) *AccessiblePrompter {
	return &AccessiblePrompter{in: &byteReader{r: in}, out: out}
}

// Ask implements Prompter. End of input without an answer returns ErrAborted.
func (p *AccessiblePrompter) Ask(ctx context.Context, question, def string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	title := question
	if def != "" {
		title += " [" + def + "]"
	}

	var answer string
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title(title).
			Placeholder(def).
			Value(&answer),
	)).
		WithTheme(huh.ThemeBase()).
		WithAccessible(true).
		WithInput(p.in).
		WithOutput(p.out)

	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) || p.in.eof {
			return "", ErrAborted
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", fmt.Errorf("failed to read answer: %w", err)
	}

	answer = strings.TrimRight(answer, "\r\n")
	if strings.TrimSpace(answer) == "" {
		if p.in.eof {
			return "", ErrAborted
		}
		return def, nil
	}
	return answer, nil
}

// Read implements io.Reader.
func (r *byteReader) Read(b []byte) (int, error) {
	if len(b) == 0 {
		return 0, nil
	}
	n, err := r.r.Read(b[:1])
	if errors.Is(err, io.EOF) {
		r.eof = true
	}
	return n, err
}
