package source

import (
	"os"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

type yamlRule struct {
	Verb     string `yaml:"verb"`
	Object   string `yaml:"object"`
	Template string `yaml:"template"`
}

type yamlDoc struct {
	Rules []yamlRule `yaml:"rules"`
}

// LoadYAML reads a rule document of the form:
//
//	rules:
//	  - verb: add
//	    object: syslog
//	    template: host <ip> <port>
//	  - template: host <ip>
//
// Omitted verb/object fields inherit the preceding rule via Normalize, the
// same way merged sheet cells do.
func LoadYAML(path string) ([]Row, error) {
	bs, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open grammar source %q", path)
	}

	var doc yamlDoc
	if err := yaml.Unmarshal(bs, &doc); err != nil {
		return nil, errors.Wrapf(err, "failed to decode grammar source %q", path)
	}

	rows := make([]Row, 0, len(doc.Rules))
	for i, rule := range doc.Rules {
		rows = append(rows, Row{
			Verb:     rule.Verb,
			Object:   rule.Object,
			Template: rule.Template,
			Line:     i + 1,
		})
	}
	return rows, nil
}
