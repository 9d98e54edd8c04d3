package apps

import (
	"sort"
	"strings"
	"time"

	"github.com/c-bata/go-prompt"
	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
	"github.com/samber/lo"

	"github.com/cligram-io/cligram/common"
	"github.com/cligram-io/cligram/grammar"
	"github.com/cligram-io/cligram/history"
)

// PromptApp is the go-prompt front end with live suggestions derived from the
// grammar table and persisted input history.
type PromptApp struct {
	base
	exiting        bool
	suggestHistory bool
}

// NewPromptApp creates the suggestion-enabled prompt application.
func NewPromptApp(table *grammar.Table, policy grammar.Policy, opts ...AppOption) *PromptApp {
	return &PromptApp{base: newBase(table, policy, opts...)}
}

// Run starts the interactive loop. It returns after the user enters "exit".
func (a *PromptApp) Run() {
	p := prompt.New(a.promptExecute, a.complete,
		prompt.OptionTitle("cligram"),
		prompt.OptionPrefix("cligram > "),
		prompt.OptionHistory(a.historyLines()),
		prompt.OptionPrefixTextColor(prompt.Yellow),
		prompt.OptionPreviewSuggestionTextColor(prompt.Blue),
		prompt.OptionSelectedSuggestionBGColor(prompt.LightGray),
		prompt.OptionSuggestionBGColor(prompt.DarkGray),
		prompt.OptionAddKeyBind(prompt.KeyBind{
			Key: prompt.ControlR,
			Fn: func(buffer *prompt.Buffer) {
				a.suggestHistory = !a.suggestHistory
			},
		}),
		prompt.OptionSetExitCheckerOnInput(func(in string, breakline bool) bool {
			return a.exiting
		}))
	p.Run()
}

func (a *PromptApp) historyLines() []string {
	if a.opt.hist == nil {
		return []string{""}
	}
	return append(a.opt.hist.Commands(), "")
}

// promptExecute is the actual execution logic entry.
func (a *PromptApp) promptExecute(in string) {
	a.suggestHistory = false

	err := a.execute(in)
	if err == nil {
		return
	}
	if errors.Is(err, common.ExitErr) {
		a.exiting = true
		return
	}
	printMatchErr(err)
}

// complete suggests verbs, then objects for the typed verb, then the candidate
// rules of the selected bucket. While the ctrl-r toggle is active it serves
// matching history lines instead.
func (a *PromptApp) complete(d prompt.Document) []prompt.Suggest {
	input := d.CurrentLineBeforeCursor()
	if a.suggestHistory {
		return a.historySuggestions(input)
	}
	if strings.TrimSpace(input) == "" {
		return nil
	}
	endBlank := strings.HasSuffix(input, " ")
	words := strings.Fields(input)

	var s []prompt.Suggest
	switch {
	case len(words) == 1 && !endBlank:
		for _, verb := range a.table.Verbs() {
			s = append(s, prompt.Suggest{Text: verb})
		}
	case (len(words) == 1 && endBlank) || (len(words) == 2 && !endBlank):
		for _, object := range a.table.Objects(words[0]) {
			s = append(s, prompt.Suggest{Text: object, Description: words[0] + " " + object})
		}
	default:
		for _, m := range a.table.Lookup(words[0], words[1]) {
			s = append(s, prompt.Suggest{Text: m.Template, Description: m.Rule()})
		}
		return s
	}
	return prompt.FilterHasPrefix(s, d.GetWordBeforeCursor(), true)
}

// historySuggestions returns stored lines starting with input, newest first.
func (a *PromptApp) historySuggestions(input string) []prompt.Suggest {
	if a.opt.hist == nil {
		return nil
	}
	items := a.opt.hist.List(input)
	sort.Slice(items, func(i, j int) bool {
		return items[i].Ts > items[j].Ts
	})

	lastIdx := strings.LastIndex(input, " ") + 1
	return lo.Map(items, func(item history.Item, _ int) prompt.Suggest {
		t := time.Unix(item.Ts, 0)
		return prompt.Suggest{
			Text:        item.Cmd[lastIdx:],
			Description: t.Format("2006-01-02 15:04:05"),
		}
	})
}

func printMatchErr(err error) {
	color.Red(err.Error())
	var noMatch *grammar.NoMatchError
	if errors.As(err, &noMatch) {
		for _, rule := range noMatch.Attempted {
			color.Yellow("  candidate: %s", rule)
		}
	}
}
