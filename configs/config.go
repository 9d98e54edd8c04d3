package configs

import (
	"fmt"
	"os"
	"path"

	"github.com/cockroachdb/errors"
	homedir "github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"

	"github.com/cligram-io/cligram/grammar"
)

const (
	configFileName   = `cligram.yaml`
	defaultConfigDir = `.cligram`
)

var (
	errConfigPathNotExist = errors.New("config path not exist")
	errConfigPathIsFile   = errors.New("config path is file")
)

// Config stores cligram config items.
type Config struct {
	// cligram configuration folder path, default $HOME/.cligram
	ConfigPath string `yaml:"-"`
	// GrammarPath is the grammar source consulted when --grammar is not set.
	GrammarPath string `yaml:"GrammarPath"`
	// Format is the default output format name.
	Format string `yaml:"Format"`
	// SkipVerbs lists verbs suppressed while loading the grammar source.
	SkipVerbs []string `yaml:"SkipVerbs"`
	// PaddingKey overrides the result key holding matched literal words.
	PaddingKey string `yaml:"PaddingKey"`
}

// Policy derives the grammar policy from the configured overrides.
func (c *Config) Policy() grammar.Policy {
	policy := grammar.DefaultPolicy()
	if len(c.SkipVerbs) > 0 {
		policy.SkipVerbs = c.SkipVerbs
	}
	if c.PaddingKey != "" {
		policy.PaddingKey = c.PaddingKey
	}
	return policy
}

func (c *Config) load() error {
	err := c.checkConfigPath()
	if err != nil {
		return err
	}

	bs, err := os.ReadFile(c.getConfigPath())
	if err != nil {
		return err
	}

	return yaml.Unmarshal(bs, c)
}

func (c *Config) getConfigPath() string {
	return path.Join(c.ConfigPath, configFileName)
}

// checkConfigPath exists and is a directory.
func (c *Config) checkConfigPath() error {
	info, err := os.Stat(c.ConfigPath)
	if err != nil {
		// not exist, return specified type to handle
		if os.IsNotExist(err) {
			return errConfigPathNotExist
		}
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%w(%s)", errConfigPathIsFile, c.ConfigPath)
	}

	return nil
}

func (c *Config) createDefault() error {
	err := os.MkdirAll(c.ConfigPath, os.ModePerm)
	if err != nil {
		return err
	}

	file, err := os.Create(c.getConfigPath())
	if err != nil {
		return err
	}
	defer file.Close()

	// setup default values
	c.Format = "json"
	c.SkipVerbs = []string{"show"}

	bs, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "failed to marshal default config")
	}

	_, err = file.Write(bs)
	return err
}

// DefaultConfigPath resolves the per-user config directory, falling back to
// the working directory when the home directory cannot be determined.
func DefaultConfigPath() string {
	home, err := homedir.Dir()
	if err != nil {
		return defaultConfigDir
	}
	return path.Join(home, defaultConfigDir)
}

// NewConfig loads the config under configPath, creating a default file on
// first run.
func NewConfig(configPath string) (*Config, error) {
	config := &Config{
		ConfigPath: configPath,
	}
	err := config.load()
	// config path not exist, may be the first run
	if errors.Is(err, errConfigPathNotExist) {
		return config, config.createDefault()
	}

	return config, err
}
