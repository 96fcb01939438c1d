// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/walteh/docxlate/pkg/charset"
	"github.com/walteh/docxlate/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// DefaultRoot is the documentation root used when none is configured
var DefaultRoot = filepath.Join("docs", "ja")

//go:embed defaults/ferrite-ja.yaml
var defaultTable []byte

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 🔄 Rule is one find/replace pair. Exactly one of Find and Pattern is set.
type Rule struct {
	Find      string `json:"find,omitempty" yaml:"find,omitempty"`           // Literal text to replace
	Pattern   string `json:"pattern,omitempty" yaml:"pattern,omitempty"`     // Regular expression to replace
	Replace   string `json:"replace" yaml:"replace"`                         // Replacement text or template
	Global    bool   `json:"global,omitempty" yaml:"global,omitempty"`       // Replace every occurrence
	Multiline bool   `json:"multiline,omitempty" yaml:"multiline,omitempty"` // '.' in Pattern also matches '\n'
}

// ReplacementRule converts the rule for the text engine
func (r Rule) ReplacementRule() text.ReplacementRule {
	return text.ReplacementRule{
		FromText:  r.Find,
		Pattern:   r.Pattern,
		ToText:    r.Replace,
		Global:    r.Global,
		Multiline: r.Multiline,
	}
}

// 📄 Job is one target file and the rules applied to it, in order
type Job struct {
	Path  string `json:"path" yaml:"path"`   // Path relative to the documentation root
	Rules []Rule `json:"rules" yaml:"rules"` // Rules in application order
}

// ReplacementRules converts the job's rules for the text engine
func (j Job) ReplacementRules() []text.ReplacementRule {
	rules := make([]text.ReplacementRule, len(j.Rules))
	for i, r := range j.Rules {
		rules[i] = r.ReplacementRule()
	}
	return rules
}

// 📚 Config is the complete job table
type Config struct {
	Root     string `json:"root,omitempty" yaml:"root,omitempty"`         // Documentation root
	Encoding string `json:"encoding,omitempty" yaml:"encoding,omitempty"` // Text encoding for reads and writes
	Jobs     []Job  `json:"jobs" yaml:"jobs"`                             // Jobs in execution order

	location string
}

// Location returns the file the config was loaded from, or "" for the embedded table
func (cfg *Config) Location() string {
	return cfg.location
}

// 🎯 Load loads the job table from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}
	cfg.location = path

	logger.Debug().Str("path", path).Int("jobs", len(cfg.Jobs)).Msg("configuration loaded")
	return cfg, nil
}

// 🎯 Default returns the job table compiled into the binary
func Default(ctx context.Context) (*Config, error) {
	cfg, err := (&YAMLParser{}).Parse(ctx, defaultTable)
	if err != nil {
		return nil, errors.Errorf("parsing embedded table: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating embedded table: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Int("jobs", len(cfg.Jobs)).Msg("using embedded table")
	return cfg, nil
}

// 🔍 Validate checks the table, normalizes paths and sets defaults
func (cfg *Config) Validate() error {
	if len(cfg.Jobs) == 0 {
		return errors.Errorf("at least one job is required")
	}

	if cfg.Root == "" {
		cfg.Root = DefaultRoot
	}
	cfg.Root = filepath.Clean(cfg.Root)

	enc, err := charset.Canonical(cfg.Encoding)
	if err != nil {
		return errors.Errorf("encoding: %w", err)
	}
	cfg.Encoding = enc

	replacer := text.NewRuleReplacer()
	seen := make(map[string]bool, len(cfg.Jobs))
	for i := range cfg.Jobs {
		job := &cfg.Jobs[i]

		if job.Path == "" {
			return errors.Errorf("job %d: path is required", i)
		}
		if filepath.IsAbs(job.Path) || !filepath.IsLocal(job.Path) {
			return errors.Errorf("job %d: path %q must be relative to the root", i, job.Path)
		}
		job.Path = filepath.Clean(job.Path)

		if seen[job.Path] {
			return errors.Errorf("job %d: duplicate path %q", i, job.Path)
		}
		seen[job.Path] = true

		if len(job.Rules) == 0 {
			return errors.Errorf("job %q: at least one rule is required", job.Path)
		}
		if err := replacer.ValidateRules(job.ReplacementRules()); err != nil {
			return errors.Errorf("job %q: %w", job.Path, err)
		}
	}

	return nil
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	return fmt.Sprintf("%s (%s): %d jobs", cfg.Root, cfg.Encoding, len(cfg.Jobs))
}
