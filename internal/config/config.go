package config

import (
	"bytes"
	"io"
	"log/slog"
	"os"

	"github.com/pingcap/errors"
	"github.com/yashagw/craneqe/internal/record"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPageSize        = record.PageSize
	DefaultJoinBufferPages = 10
	DefaultLogLevel        = "info"
)

// Config describes one run: the relations to load and the operator tree
// to evaluate over them.
type Config struct {
	// PageSize is the capacity of the tuple buffer the runner hands to
	// the root operator.
	PageSize int `yaml:"page_size"`
	// JoinBufferPages is the memory budget passed to every join.
	JoinBufferPages int     `yaml:"join_buffer_pages"`
	Log             Log     `yaml:"log"`
	Tables          []Table `yaml:"tables"`
	Query           *Node   `yaml:"query"`
}

type Log struct {
	Level string `yaml:"level"`
	// SeqURL enables the Seq sink when set, e.g. http://localhost:5341.
	SeqURL string `yaml:"seq_url"`
}

// SlogLevel parses Level.
func (l Log) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, errors.Annotatef(err, "log level %q", l.Level)
	}
	return level, nil
}

func Default() *Config {
	return &Config{
		PageSize:        DefaultPageSize,
		JoinBufferPages: DefaultJoinBufferPages,
		Log:             Log{Level: DefaultLogLevel},
	}
}

// Load reads the YAML file at path over the defaults and validates the
// result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Trace(err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, errors.Annotatef(err, "config %s", path)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result. Unknown
// keys are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return nil, errors.Trace(err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks sizes, the log level, every table and the query tree.
func (c *Config) Validate() error {
	if c.PageSize <= 0 {
		return errors.Errorf("page_size must be positive, got %d", c.PageSize)
	}
	if c.JoinBufferPages <= 0 {
		return errors.Errorf("join_buffer_pages must be positive, got %d", c.JoinBufferPages)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}

	tables := make(map[string]bool, len(c.Tables))
	for i := range c.Tables {
		t := &c.Tables[i]
		if tables[t.Name] {
			return errors.Errorf("table %q defined twice", t.Name)
		}
		if err := t.Validate(); err != nil {
			return err
		}
		tables[t.Name] = true
	}

	if c.Query == nil {
		return nil
	}
	return c.Query.validate("query", tables)
}
