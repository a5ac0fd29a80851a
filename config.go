package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the settings of a command line run, as read from a YAML file
// and overridden by flags.
type Config struct {
	Trace     bool          `yaml:"trace"`
	Timeout   time.Duration `yaml:"timeout"`
	HeapLimit uint          `yaml:"heap_limit"`
	CallLimit uint          `yaml:"call_limit"`
	Strict    bool          `yaml:"strict"`
	Dump      bool          `yaml:"dump"`
}

// LoadConfig reads a config file; unknown keys are an error, an empty file
// is the zero Config.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("config: empty path")
	}
	file, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer file.Close()
	if err := cfg.decode(file); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

func (cfg *Config) decode(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// bindFlags registers a flag for every setting, defaulting to its current
// value.
func (cfg *Config) bindFlags(fs *flag.FlagSet) {
	fs.BoolVar(&cfg.Trace, "trace", cfg.Trace, "enable trace logging")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "specify a time limit")
	fs.UintVar(&cfg.HeapLimit, "heap-limit", cfg.HeapLimit, "limit the number of heap cells; 0 for unlimited")
	fs.UintVar(&cfg.CallLimit, "call-limit", cfg.CallLimit, "limit the call stack depth; 0 for unlimited")
	fs.BoolVar(&cfg.Strict, "strict", cfg.Strict, "reject duplicate labels and unparsable instructions")
	fs.BoolVar(&cfg.Dump, "dump", cfg.Dump, "dump VM state to stderr after a fault")
}

// override copies every setting whose flag was set on fs from flags.
func (cfg *Config) override(fs *flag.FlagSet, flags Config) {
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "trace":
			cfg.Trace = flags.Trace
		case "timeout":
			cfg.Timeout = flags.Timeout
		case "heap-limit":
			cfg.HeapLimit = flags.HeapLimit
		case "call-limit":
			cfg.CallLimit = flags.CallLimit
		case "strict":
			cfg.Strict = flags.Strict
		case "dump":
			cfg.Dump = flags.Dump
		}
	})
}

// options returns the VM options implied by the config.
func (cfg Config) options() []VMOption {
	return []VMOption{
		WithHeapLimit(cfg.HeapLimit),
		WithCallLimit(cfg.CallLimit),
	}
}
