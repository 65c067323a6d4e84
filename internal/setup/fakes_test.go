// SPDX-License-Identifier: MPL-2.0

package setup

import (
	"context"

	"typo3-setup-cli/internal/dispatch"
	"typo3-setup-cli/internal/prompt"
)

type (
	question struct {
		text string
		def  string
	}

	// scriptedPrompter returns queued answers in order and records every question.
	scriptedPrompter struct {
		answers   []string
		err       error
		questions []question
	}

	dispatchCall struct {
		command string
		opts    dispatch.Options
	}

	recordingDispatcher struct {
		calls []dispatchCall
		err   error
	}

	recordingUI struct {
		events []string
	}
)

func (p *scriptedPrompter) Ask(_ context.Context, text, def string) (string, error) {
	p.questions = append(p.questions, question{text: text, def: def})
	if p.err != nil {
		return "", p.err
	}
	if len(p.answers) == 0 {
		return "", prompt.ErrAborted
	}
	answer := p.answers[0]
	p.answers = p.answers[1:]
	return answer, nil
}

func (d *recordingDispatcher) Execute(_ context.Context, command string, opts dispatch.Options) error {
	d.calls = append(d.calls, dispatchCall{command: command, opts: opts})
	return d.err
}

func (u *recordingUI) Start()          { u.events = append(u.events, "start") }
func (u *recordingUI) PromptIntro()    { u.events = append(u.events, "intro") }
func (u *recordingUI) Step(msg string) { u.events = append(u.events, msg) }
func (u *recordingUI) Done(*Result)    { u.events = append(u.events, "done") }
