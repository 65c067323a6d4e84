// SPDX-License-Identifier: MPL-2.0

package setup

// UI receives progress notifications from Resolver.Run.
type UI interface {
	// Start is called before anything is read.
	Start()
	// PromptIntro is called before the first question when the prompt file has entries.
	PromptIntro()
	// Step announces a phase such as generating the env file.
	Step(msg string)
	// Done is called after a successful run.
	Done(result *Result)
}

// NopUI discards all notifications.
type NopUI struct{}

func (NopUI) Start()       {}
func (NopUI) PromptIntro() {}
func (NopUI) Step(string)  {}
func (NopUI) Done(*Result) {}
