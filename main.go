package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/expr-lang/expr"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cligram-io/cligram/apps"
	"github.com/cligram-io/cligram/common"
	"github.com/cligram-io/cligram/configs"
	"github.com/cligram-io/cligram/framework"
	"github.com/cligram-io/cligram/grammar"
	"github.com/cligram-io/cligram/history"
	"github.com/cligram-io/cligram/source"
)

var (
	flagGrammar string
	flagFormat  string
	flagConfig  string
	flagVerbose bool
	flagSimple  bool
	flagExpr    string
	flagVerify  bool
)

func main() {
	root := &cobra.Command{
		Use:     "cligram",
		Short:   "Compile a command grammar sheet and classify command lines against it",
		Version: common.Version,
		Run: func(cmd *cobra.Command, args []string) {
			runInteractive()
		},
	}
	root.PersistentFlags().StringVar(&flagGrammar, "grammar", "", "grammar source path (.csv or .yaml), overrides config")
	root.PersistentFlags().StringVar(&flagFormat, "format", "", "output format, one of "+strings.Join(framework.FormatNames(), "/"))
	root.PersistentFlags().StringVar(&flagConfig, "config", configs.DefaultConfigPath(), "config directory")
	root.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "log grammar compile diagnostics")
	root.Flags().BoolVar(&flagSimple, "simple", false, "use simple ui without suggestion and history")

	parseCmd := &cobra.Command{
		Use:   "parse <command line>",
		Short: "classify one command line and print the structured result",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			runParse(strings.Join(args, " "))
		},
	}

	batchCmd := &cobra.Command{
		Use:   "batch <file>",
		Short: "classify every command line of a log file, one JSON object per line",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			runBatch(args[0])
		},
	}
	batchCmd.Flags().StringVar(&flagExpr, "expr", "", "filter expression over {verb, object, args, raw}")
	batchCmd.Flags().BoolVar(&flagVerify, "verify", false, "check that each result reassembles into its input line")

	syntaxCmd := &cobra.Command{
		Use:   "syntax",
		Short: "list the normalized grammar rules",
		Run: func(cmd *cobra.Command, args []string) {
			runSyntax()
		},
	}

	interactiveCmd := &cobra.Command{
		Use:   "interactive",
		Short: "start the interactive prompt",
		Run: func(cmd *cobra.Command, args []string) {
			runInteractive()
		},
	}
	interactiveCmd.Flags().BoolVar(&flagSimple, "simple", false, "use simple ui without suggestion and history")

	root.AddCommand(parseCmd, batchCmd, syntaxCmd, interactiveCmd)
	if err := root.Execute(); err != nil {
		os.Exit(common.ExitGenericErr)
	}
}

// env bundles everything a subcommand needs after grammar loading.
type env struct {
	rows   []source.Row
	table  *grammar.Table
	policy grammar.Policy
	format framework.Format
}

func setup() (*env, error) {
	cfg, err := configs.NewConfig(flagConfig)
	if err != nil {
		// run with defaults, just print a warning
		fmt.Println("[WARN] load config failed, running with default config:", err.Error())
		cfg = &configs.Config{}
	}

	grammarPath := flagGrammar
	if grammarPath == "" {
		grammarPath = cfg.GrammarPath
	}
	if grammarPath == "" {
		return nil, errors.Wrap(common.ErrGrammarNotFound, "no grammar source configured, set --grammar or GrammarPath")
	}

	policy := cfg.Policy()
	rows, err := source.Load(grammarPath)
	if err != nil {
		return nil, errors.Mark(err, common.ErrGrammarNotFound)
	}
	rows = source.Normalize(rows, policy)

	logger := zap.NewNop()
	if flagVerbose {
		logger, _ = zap.NewDevelopment()
	}
	tbl, rowErrs, err := source.Build(rows, policy, logger)
	if err != nil {
		return nil, err
	}
	if !flagVerbose {
		for _, rowErr := range rowErrs {
			color.Yellow("[WARN] %s", rowErr.Error())
		}
	}

	formatName := flagFormat
	if formatName == "" {
		formatName = cfg.Format
	}
	return &env{
		rows:   rows,
		table:  tbl,
		policy: policy,
		format: framework.NameFormat(formatName),
	}, nil
}

func fail(err error) {
	color.Red(err.Error())
	os.Exit(common.CodeFor(err))
}

func runParse(line string) {
	e, err := setup()
	if err != nil {
		fail(err)
	}

	result, err := grammar.Match(line, e.table, e.policy)
	if err != nil {
		var noMatch *grammar.NoMatchError
		if errors.As(err, &noMatch) {
			for _, rule := range noMatch.Attempted {
				color.Yellow("  candidate: %s", rule)
			}
		}
		fail(err)
	}
	fmt.Println(framework.NewPresetResultSet(result, e.format).String())
}

func runBatch(path string) {
	e, err := setup()
	if err != nil {
		fail(err)
	}

	f, err := os.Open(path)
	if err != nil {
		fail(errors.Wrapf(err, "failed to open command log %q", path))
	}
	defer f.Close()

	var total, matched, mismatched int
	scanner := bufio.NewScanner(f)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "##") {
			continue
		}
		total++

		result, err := grammar.Match(line, e.table, e.policy)
		if err != nil {
			fmt.Fprintf(os.Stderr, "line %d: %s\n", lineNo, err.Error())
			continue
		}
		matched++

		if flagExpr != "" {
			keep, err := evalFilter(flagExpr, result)
			if err != nil {
				fmt.Fprintf(os.Stderr, "line %d: filter: %s\n", lineNo, err.Error())
				continue
			}
			if !keep {
				continue
			}
		}

		if flagVerify {
			if reassembled, ok := result.Reassemble(); ok &&
				!strings.EqualFold(normalizeSpace(line), reassembled) {
				mismatched++
				fmt.Fprintf(os.Stderr, "line %d: round-trip mismatch\n  raw        : %s\n  reassembled: %s\n",
					lineNo, normalizeSpace(line), reassembled)
			}
		}

		bs, err := json.Marshal(result)
		if err != nil {
			fmt.Fprintf(os.Stderr, "line %d: %s\n", lineNo, err.Error())
			continue
		}
		fmt.Println(string(bs))
	}
	if err := scanner.Err(); err != nil {
		fail(errors.Wrapf(err, "failed to read command log %q", path))
	}

	if flagVerify {
		fmt.Fprintf(os.Stderr, "verified %d/%d line(s), %d mismatch(es)\n", matched, total, mismatched)
	}
	if matched == 0 && total > 0 {
		os.Exit(common.ExitNoMatchingVariant)
	}
}

func evalFilter(expression string, result *grammar.MatchResult) (bool, error) {
	filterEnv := map[string]any{
		"verb":   result.Verb,
		"object": result.Object,
		"args":   result.ArgMap(),
		"raw":    result.Raw,
	}
	program, err := expr.Compile(expression, expr.Env(filterEnv))
	if err != nil {
		return false, err
	}
	output, err := expr.Run(program, filterEnv)
	if err != nil {
		return false, err
	}
	keep, ok := output.(bool)
	if !ok {
		return false, errors.New("filter expression did not return a bool")
	}
	return keep, nil
}

func runSyntax() {
	e, err := setup()
	if err != nil {
		fail(err)
	}

	if e.format == framework.FormatTable {
		t := table.NewWriter()
		t.AppendHeader(table.Row{"Row", "Verb", "Object", "Template"})
		for _, row := range e.rows {
			t.AppendRow(table.Row{row.Line, row.Verb, row.Object, row.Template})
		}
		fmt.Println(t.Render())
		return
	}
	for _, line := range source.SyntaxLines(e.rows) {
		fmt.Println(line)
	}
}

func runInteractive() {
	e, err := setup()
	if err != nil {
		fail(err)
	}

	hist := history.NewHelper(flagConfig)
	defer hist.Close()

	var app apps.App
	if flagSimple {
		app = apps.NewSimpleApp(e.table, e.policy, apps.WithFormat(e.format))
	} else {
		app = apps.NewPromptApp(e.table, e.policy,
			apps.WithFormat(e.format),
			apps.WithHistory(hist))
	}
	app.Run()
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
