// SPDX-License-Identifier: MPL-2.0

package prompt

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestNonInteractive_Ask(t *testing.T) {
	t.Parallel()

	got, err := NonInteractive{}.Ask(context.Background(), "Site name?", "Demo")
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if got != "Demo" {
		t.Errorf("Ask() = %q, want %q", got, "Demo")
	}

	if _, err := (NonInteractive{}).Ask(context.Background(), "Site name?", ""); !errors.Is(err, ErrNoAnswer) {
		t.Errorf("Ask() without default error = %v, want ErrNoAnswer", err)
	}
}

func TestNew_SelectsImplementation(t *testing.T) {
	t.Parallel()

	if _, ok := New(Config{NoInteraction: true, Accessible: true}).(NonInteractive); !ok {
		t.Error("NoInteraction should select NonInteractive")
	}
	if _, ok := New(Config{Accessible: true}).(*AccessiblePrompter); !ok {
		t.Error("Accessible should select *AccessiblePrompter")
	}
	if _, ok := New(Config{}).(*TUIPrompter); !ok {
		t.Error("default should select *TUIPrompter")
	}
}

func TestAccessiblePrompter_Ask(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		def     string
		want    string
		wantErr error
	}{
		{name: "answer", input: "hello\n", want: "hello"},
		{name: "crlf", input: "hello\r\n", want: "hello"},
		{name: "empty takes default", input: "\n", def: "fallback", want: "fallback"},
		{name: "empty without default", input: "\n", want: ""},
		{name: "eof aborts", input: "", def: "fallback", wantErr: ErrAborted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var out bytes.Buffer
			p := NewAccessiblePrompter(strings.NewReader(tt.input), &out)

			got, err := p.Ask(context.Background(), "Database host", tt.def)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Ask() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Ask() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Ask() = %q, want %q", got, tt.want)
			}
			if !strings.Contains(out.String(), "Database host") {
				t.Errorf("question not written, output = %q", out.String())
			}
			if tt.def != "" && !strings.Contains(out.String(), "["+tt.def+"]") {
				t.Errorf("default not shown, output = %q", out.String())
			}
		})
	}
}

func TestAccessiblePrompter_SequentialQuestions(t *testing.T) {
	t.Parallel()

	p := NewAccessiblePrompter(strings.NewReader("first\n\nthird\n"), io.Discard)
	ctx := context.Background()

	var answers []string
	for _, def := range []string{"", "second", ""} {
		got, err := p.Ask(ctx, "q", def)
		if err != nil {
			t.Fatalf("Ask() error = %v", err)
		}
		answers = append(answers, got)
	}

	want := []string{"first", "second", "third"}
	for i := range want {
		if answers[i] != want[i] {
			t.Errorf("answer %d = %q, want %q", i, answers[i], want[i])
		}
	}
}

func TestAccessiblePrompter_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewAccessiblePrompter(strings.NewReader("x\n"), io.Discard).Ask(ctx, "q", "")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Ask() error = %v, want context.Canceled", err)
	}
}

func TestByteReader_ReadsOneByteAndTracksEOF(t *testing.T) {
	t.Parallel()

	r := &byteReader{r: strings.NewReader("ab")}
	buf := make([]byte, 8)

	for _, want := range []string{"a", "b"} {
		n, err := r.Read(buf)
		if err != nil {
			t.Fatalf("Read() error = %v", err)
		}
		if got := string(buf[:n]); got != want {
			t.Errorf("Read() = %q, want %q", got, want)
		}
	}
	if r.eof {
		t.Error("eof set before the end of input")
	}

	if _, err := r.Read(buf); !errors.Is(err, io.EOF) {
		t.Errorf("Read() error = %v, want io.EOF", err)
	}
	if !r.eof {
		t.Error("eof not recorded")
	}
}

func TestInputModel_Submit(t *testing.T) {
	t.Parallel()

	m := newInputModel("Site name", "")
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("My Site")})
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if cmd == nil {
		t.Error("enter should return a quit command")
	}
	got, err := updated.(*inputModel).Answer()
	if err != nil {
		t.Fatalf("Answer() error = %v", err)
	}
	if got != "My Site" {
		t.Errorf("Answer() = %q, want %q", got, "My Site")
	}
	if m.View() != "" {
		t.Error("View() should be empty once done")
	}
}

func TestInputModel_SubmitEmptyUsesDefault(t *testing.T) {
	t.Parallel()

	m := newInputModel("Site name", "Demo")
	if !strings.Contains(m.View(), "default: Demo") {
		t.Errorf("View() should show the default, got %q", m.View())
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	got, err := m.Answer()
	if err != nil {
		t.Fatalf("Answer() error = %v", err)
	}
	if got != "Demo" {
		t.Errorf("Answer() = %q, want %q", got, "Demo")
	}
}

func TestInputModel_Cancel(t *testing.T) {
	t.Parallel()

	for _, key := range []tea.KeyMsg{{Type: tea.KeyEsc}, {Type: tea.KeyCtrlC}} {
		m := newInputModel("Site name", "Demo")
		m.Update(key)

		if !m.cancelled || !m.done {
			t.Errorf("%s should cancel", key.String())
		}
		if _, err := m.Answer(); !errors.Is(err, ErrAborted) {
			t.Errorf("Answer() after %s error = %v, want ErrAborted", key.String(), err)
		}
	}
}

func TestInputModel_NotDone(t *testing.T) {
	t.Parallel()

	m := newInputModel("q", "")
	if _, err := m.Answer(); !errors.Is(err, ErrAborted) {
		t.Errorf("Answer() before submit error = %v, want ErrAborted", err)
	}
	m.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	if m.input.Width != 40-len(m.input.Prompt)-1 {
		t.Errorf("input width = %d", m.input.Width)
	}
}
