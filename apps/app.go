package apps

import (
	"fmt"
	"strings"

	"github.com/cligram-io/cligram/common"
	"github.com/cligram-io/cligram/framework"
	"github.com/cligram-io/cligram/grammar"
	"github.com/cligram-io/cligram/history"
)

// App is an interactive front end over a compiled grammar table.
type App interface {
	Run()
}

// AppOption is an application setup option function.
type AppOption func(*appOption)

type appOption struct {
	hist   *history.Helper
	format framework.Format
}

// WithHistory persists executed lines through the provided helper.
func WithHistory(hist *history.Helper) AppOption {
	return func(opt *appOption) {
		opt.hist = hist
	}
}

// WithFormat sets the output format for match results.
func WithFormat(format framework.Format) AppOption {
	return func(opt *appOption) {
		opt.format = format
	}
}

type base struct {
	table  *grammar.Table
	policy grammar.Policy
	opt    appOption
}

func newBase(table *grammar.Table, policy grammar.Policy, opts ...AppOption) base {
	opt := appOption{format: framework.FormatJSON}
	for _, o := range opts {
		o(&opt)
	}
	return base{table: table, policy: policy, opt: opt}
}

// execute matches one prompt line against the table and prints the result.
// It returns common.ExitErr when the user asks to leave; front ends compare
// with errors.Is and stop their loop.
func (b *base) execute(line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	if strings.EqualFold(line, "exit") || strings.EqualFold(line, "quit") {
		return common.ExitErr
	}
	if b.opt.hist != nil {
		b.opt.hist.AddLog(line)
	}

	result, err := grammar.Match(line, b.table, b.policy)
	if err != nil {
		return err
	}
	fmt.Println(framework.NewPresetResultSet(result, b.opt.format).String())
	return nil
}
