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

package opts

import (
	"context"
	"io"
	"path/filepath"

	"github.com/walteh/docxlate/pkg/config"
	"gitlab.com/tozd/go/errors"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	ConfigFile string    // Job table file; empty uses the embedded table
	Root       string    // Overrides the table's documentation root
	Debug      bool      // Enable debug logging
	DryRun     bool      // Skip writing files
	Diff       bool      // Print a diff for each modified file
	Stdout     io.Writer // Console output
}

// 🎯 LoadConfig loads the job table and makes its root absolute
func (o *RootOpts) LoadConfig(ctx context.Context) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if o.ConfigFile == "" {
		cfg, err = config.Default(ctx)
	} else {
		cfg, err = config.Load(ctx, o.ConfigFile)
	}
	if err != nil {
		return nil, errors.Errorf("loading config: %w", err)
	}

	if o.Root != "" {
		cfg.Root = o.Root
	}

	abs, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, errors.Errorf("getting absolute root path: %w", err)
	}
	cfg.Root = abs

	return cfg, nil
}
