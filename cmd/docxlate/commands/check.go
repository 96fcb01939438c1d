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
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/docxlate/cmd/docxlate/opts"
	"github.com/walteh/docxlate/pkg/log"
	"github.com/walteh/docxlate/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// NewCheckCmd creates the check command
func NewCheckCmd(o *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Report how often each rule matches, without writing",
		Long: `Check loads and validates the job table, then runs every job against
the documentation root without writing anything back. It reports the
number of matches for each rule and warns about rules that match nothing.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "check").Logger().WithContext(ctx)

			user := log.NewUserLoggerTo(ctx, o.Stdout)

			cfg, err := o.LoadConfig(ctx)
			if err != nil {
				user.LogValidation(false, "Job table is invalid", err)
				return err
			}
			user.LogValidation(true, fmt.Sprintf("Job table is valid: %s", cfg), nil)

			logger := log.NewWithLogger(io.Discard, *zerolog.Ctx(ctx))
			rw, err := operation.New(operation.Options{
				Config: cfg,
				Logger: logger,
				DryRun: true,
			})
			if err != nil {
				return errors.Errorf("creating rewriter: %w", err)
			}

			unmatched := 0
			for _, job := range cfg.Jobs {
				result, err := rw.RewriteFile(ctx, job)
				if err != nil {
					user.LogValidation(false, fmt.Sprintf("Cannot check %s", job.Path), err)
					return err
				}

				for i, rule := range job.Rules {
					user.LogRuleMatch(job.Path, i, rule.ReplacementRule().Matcher(), result.RuleCounts[i])
				}
				unmatched += len(result.UnmatchedRules())
			}

			if unmatched > 0 {
				user.LogValidation(false, fmt.Sprintf("%d rules matched nothing", unmatched), nil)
			} else {
				user.LogValidation(true, "Every rule matched", nil)
			}

			return nil
		},
	}

	return cmd
}
