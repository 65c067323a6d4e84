// SPDX-License-Identifier: MPL-2.0

package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const keyCtrlC = "ctrl+c"

type (
	// TUIPrompter asks through a bubbletea text input.
	TUIPrompter struct {
		input  io.Reader
		output io.Writer
	}

	// inputModel is the bubbletea model for a single question.
	inputModel struct {
		input     textinput.Model
		question  string
		def       string
		result    string
		done      bool
		cancelled bool
	}
)

// newInputModel creates a focused input model. The default is shown as placeholder.
func newInputModel(question, def string) *inputModel {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = def
	ti.Focus()

	return &inputModel{
		input:    ti,
		question: question,
		def:      def,
	}
}

// Init implements tea.Model.
func (m *inputModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case keyCtrlC, "esc":
			m.done = true
			m.cancelled = true
			return m, tea.Quit
		case "enter":
			m.result = m.input.Value()
			if strings.TrimSpace(m.result) == "" {
				m.result = m.def
			}
			m.done = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.input.Width = max(1, msg.Width-len(m.input.Prompt)-1)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m *inputModel) View() string {
	if m.done {
		return ""
	}

	lines := []string{questionStyle.Render(m.question)}
	if m.def != "" {
		lines = append(lines, defaultStyle.Render("default: "+m.def))
	}
	lines = append(lines,
		m.input.View(),
		helpStyle.Render("enter submit • esc cancel"),
	)

	return strings.Join(lines, "\n") + "\n"
}

// Answer returns the submitted answer or ErrAborted.
func (m *inputModel) Answer() (string, error) {
	if m.cancelled || !m.done {
		return "", ErrAborted
	}
	return m.result, nil
}

// Ask implements Prompter.
func (p *TUIPrompter) Ask(ctx context.Context, question, def string) (string, error) {
	model := newInputModel(question, def)
	prog := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithInput(p.input),
		tea.WithOutput(p.output),
	)

	finalModel, err := prog.Run()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		if errors.Is(err, tea.ErrInterrupted) {
			return "", ErrAborted
		}
		return "", fmt.Errorf("failed to run prompt: %w", err)
	}

	m, ok := finalModel.(*inputModel)
	if !ok {
		return "", fmt.Errorf("unexpected prompt model %T", finalModel)
	}
	return m.Answer()
}
