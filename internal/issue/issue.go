// SPDX-License-Identifier: EPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/slices"
)

type Id int

const (
	DistFileMissingId Id = iota + 1
	SettingsFileMissingId
	SettingsParseFailedId
	WriteFailedId
	PromptAbortedId
	NoAnswerId
	CommandFailedId
	ConfigLoadFailedId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // documentation for the failure class
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n"
		extraMd += "## See also:\n"
		for _, link := range i.docLinks {
			extraMd += "- <" + string(link) + ">\n"
		}
		for _, link := range i.extLinks {
			extraMd += "- <" + string(link) + ">\n"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	distFileMissingIssue = &Issue{
		id: DistFileMissingId,
		mdMsg: `
# The env template is missing!

Setup reads the distribution template ` + "`.env.dist`" + ` from the composer root
and refuses to continue without it. Nothing has been written.

## Things you can try:
- Check that you are in the project root, or point to it:
~~~
$ TYPO3_PATH_COMPOSER_ROOT=/path/to/project typo3-setup run
~~~
- Restore the template from version control:
~~~
$ git checkout -- .env.dist
~~~
- Use a different file name in ` + "`typo3-setup.cue`" + `:
~~~cue
dist_file: ".env.template"
~~~`,
		docLinks: []HttpLink{"https://github.com/helhum/dotenv-connector"},
	}

	settingsFileMissingIssue = &Issue{
		id: SettingsFileMissingId,
		mdMsg: `
# No project settings found!

The canonical settings file (by default ` + "`conf/settings.cue`" + `) must exist
before setup can fill the env file from it.

## Things you can try:
- Create an empty settings file:
~~~
$ mkdir -p conf && touch conf/settings.cue
~~~
- Point ` + "`settings_file`" + ` in ` + "`typo3-setup.cue`" + ` to an existing
  .cue, .yaml, .toml or .json file`,
	}

	settingsParseFailedIssue = &Issue{
		id: SettingsParseFailedId,
		mdMsg: `
# Failed to parse the settings!

One of the settings files could not be decoded. The format follows the file
extension: .cue, .yaml/.yml, .toml or .json/.jsonc.

## Things you can try:
- Inspect what typo3-setup reads:
~~~
$ typo3-setup settings show --verbose
~~~
- Validate a CUE file:
~~~
$ cue vet conf/settings.cue
~~~`,
		extLinks: []HttpLink{"https://cuelang.org/docs/"},
	}

	writeFailedIssue = &Issue{
		id: WriteFailedId,
		mdMsg: `
# Failed to write the results!

Setup could not write the env file or the settings file. Files written before
the failure are kept as they are; re-running setup is safe.

## Things you can try:
- Check permissions of the project directory:
~~~
$ ls -la .env conf/
~~~
- Check that the disk is not full`,
	}

	promptAbortedIssue = &Issue{
		id: PromptAbortedId,
		mdMsg: `
# Setup was canceled!

A required setting was not answered. Nothing has been written.

## Things you can try:
- Run setup again and answer every question
- Provide defaults for unattended runs, one ` + "`<NAME>_DEFAULT`" + ` per prompt:
~~~
$ TYPO3_INSTALL_PROMPT_SITE_NAME_DEFAULT="My Site" typo3-setup run --no-interaction
~~~`,
	}

	noAnswerIssue = &Issue{
		id: NoAnswerId,
		mdMsg: `
# A required setting has no value!

Setup runs without interaction and one of the prompts in ` + "`.env.install`" + `
has no default.

## Things you can try:
- Export a default for the prompt:
~~~
$ export TYPO3_INSTALL_PROMPT_DB_PASSWORD_DEFAULT=secret
~~~
- Add the default to ` + "`.env.install`" + `:
~~~
TYPO3_INSTALL_PROMPT_DB_PASSWORD_DEFAULT="secret"
~~~
- Run setup in a terminal without ` + "`--no-interaction`",
	}

	commandFailedIssue = &Issue{
		id: CommandFailedId,
		mdMsg: `
# A TYPO3 console command failed!

The env and settings files were written, but a follow-up console command
(` + "`settings:extract`" + ` or ` + "`settings:dump`" + `) did not succeed.

## Things you can try:
- Check that the console is installed:
~~~
$ composer require helhum/typo3-console
~~~
- Run the command yourself to see its output:
~~~
$ vendor/bin/typo3cms settings:dump --no-dev
~~~`,
		docLinks: []HttpLink{"https://github.com/TYPO3-Console/TYPO3-Console"},
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

The typo3-setup configuration file could not be loaded.

## Things you can try:
- Check ` + "`typo3-setup.cue`" + ` for syntax errors
- Print the effective configuration:
~~~
$ typo3-setup config show
~~~
- Remove the file to fall back to the defaults`,
	}

	issues = map[Id]*Issue{
		distFileMissingIssue.Id():     distFileMissingIssue,
		settingsFileMissingIssue.Id(): settingsFileMissingIssue,
		settingsParseFailedIssue.Id(): settingsParseFailedIssue,
		writeFailedIssue.Id():         writeFailedIssue,
		promptAbortedIssue.Id():       promptAbortedIssue,
		noAnswerIssue.Id():            noAnswerIssue,
		commandFailedIssue.Id():       commandFailedIssue,
		configLoadFailedIssue.Id():    configLoadFailedIssue,
	}
)

// Values returns every catalog issue ordered by Id.
func Values() []*Issue {
	out := make([]*Issue, 0, len(issues))
	for _, i := range issues {
		out = append(out, i)
	}
	slices.SortFunc(out, func(a, b *Issue) int {
		return int(a.id) - int(b.id)
	})
	return out
}

func Get(id Id) *Issue {
	return issues[id]
}
