package apps

import (
	"github.com/cockroachdb/errors"
	"github.com/manifoldco/promptui"

	"github.com/cligram-io/cligram/common"
	"github.com/cligram-io/cligram/grammar"
)

// SimpleApp is the promptui front end without suggestion support, for
// terminals where go-prompt misbehaves.
type SimpleApp struct {
	base
}

// NewSimpleApp creates the plain prompt application.
func NewSimpleApp(table *grammar.Table, policy grammar.Policy, opts ...AppOption) *SimpleApp {
	return &SimpleApp{base: newBase(table, policy, opts...)}
}

// Run starts the interactive loop. It returns on "exit" or prompt error
// (ctrl-c / ctrl-d).
func (a *SimpleApp) Run() {
	for {
		p := promptui.Prompt{
			Label: "cligram",
			Validate: func(input string) error {
				return nil
			},
		}

		line, err := p.Run()
		if err != nil {
			return
		}
		if err := a.execute(line); err != nil {
			if errors.Is(err, common.ExitErr) {
				return
			}
			printMatchErr(err)
		}
	}
}
