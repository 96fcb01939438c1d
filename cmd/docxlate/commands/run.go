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

package commands

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/docxlate/cmd/docxlate/opts"
	"github.com/walteh/docxlate/pkg/log"
	"github.com/walteh/docxlate/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// NewRunCmd creates the run command, which is also the root command's default action
func NewRunCmd(o *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Translate the documentation files in place",
		Long: `Run applies the job table to the documentation root.
For each job, in order, it will:
1. Announce the file
2. Read it and apply every rule to the result of the previous one
3. Overwrite the file with the result

The first file that cannot be read or written stops the run.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return Run(cmd, o)
		},
	}

	return cmd
}

// Run executes the job table with the given options
func Run(cmd *cobra.Command, o *opts.RootOpts) error {
	ctx := cmd.Context()
	ctx = zerolog.Ctx(ctx).With().Str("command", "run").Logger().WithContext(ctx)

	cfg, err := o.LoadConfig(ctx)
	if err != nil {
		return err
	}

	logger := log.NewWithLogger(o.Stdout, *zerolog.Ctx(ctx))
	ctx = log.NewContext(ctx, logger)

	logger.Header(cfg.String())
	if o.DryRun {
		logger.Infof("dry run: %d files will be read but not written", len(cfg.Jobs))
	}

	rw, err := operation.New(operation.Options{
		Config: cfg,
		Logger: logger,
		DryRun: o.DryRun,
		Diff:   o.Diff,
	})
	if err != nil {
		return errors.Errorf("creating rewriter: %w", err)
	}

	if err := rw.Run(ctx); err != nil {
		logger.LogNewline()
		logger.Errorf("stopped after %d of %d files", len(logger.Operations()), len(cfg.Jobs))
		return errors.Errorf("running jobs: %w", err)
	}

	summarize(ctx, len(cfg.Jobs), o.DryRun)

	return nil
}

// summarize prints the totals of a completed run
func summarize(ctx context.Context, files int, dryRun bool) {
	logger := log.FromContext(ctx)
	logger.LogNewline()

	replacements, unmatched := 0, 0
	for _, op := range logger.Operations() {
		replacements += op.Replacements
		unmatched += op.Unmatched
	}

	if unmatched > 0 {
		logger.Warningf("%d rules matched nothing (see docxlate check)", unmatched)
	}

	if dryRun {
		logger.Successf("checked %d files (%d replacements, nothing written)", files, replacements)
		return
	}
	logger.Successf("translated %d files (%d replacements)", files, replacements)
}
