package source

import (
	"go.uber.org/zap"

	"github.com/cligram-io/cligram/common"
	"github.com/cligram-io/cligram/grammar"
)

// Build compiles normalized rows into a sealed grammar table. Row-level
// compile failures do not abort the build; they come back in the second
// return value for reporting. The build fails outright only when not a
// single row compiled.
func Build(rows []Row, policy grammar.Policy, logger *zap.Logger) (*grammar.Table, []error, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	table := grammar.NewTable()
	var rowErrs []error
	for _, row := range rows {
		m, err := grammar.Compile(row.ID(), row.Verb, row.Object, row.Template, policy)
		if err != nil {
			logger.Warn("skipping grammar row",
				zap.String("row", row.ID()),
				zap.Error(err))
			rowErrs = append(rowErrs, err)
			continue
		}
		if err := table.Register(m); err != nil {
			return nil, rowErrs, err
		}
		logger.Debug("registered matcher",
			zap.String("row", row.ID()),
			zap.String("rule", m.Rule()))
	}

	if table.Len() == 0 {
		return nil, rowErrs, common.ErrGrammarNotFound
	}
	table.Seal()
	return table, rowErrs, nil
}
