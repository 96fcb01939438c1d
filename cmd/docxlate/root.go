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
package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/docxlate/cmd/docxlate/commands"
	"github.com/walteh/docxlate/cmd/docxlate/opts"
)

// newRootOpts creates root options writing to stdout
func newRootOpts() *opts.RootOpts {
	return &opts.RootOpts{Stdout: os.Stdout}
}

// newRootCmd creates the root command. Without a subcommand it runs the job table.
func newRootCmd(o *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docxlate",
		Short: "Apply translation tables to pre-rendered documentation",
		Long: `docxlate rewrites pre-rendered HTML documentation in place by applying
an ordered table of find/replace rules to each listed file.

Without --config, the table compiled into the binary is used.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(setupLogging(cmd.Context(), o.Debug))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.Run(cmd, o)
		},
	}

	addRootFlags(cmd, o)

	cmd.AddCommand(
		commands.NewRunCmd(o),
		commands.NewCheckCmd(o),
		commands.NewVersionCmd(o),
	)

	return cmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, o *opts.RootOpts) {
	cmd.PersistentFlags().StringVarP(&o.ConfigFile, "config", "c", "", "job table file (.yaml, .json or .hcl); defaults to the embedded table")
	cmd.PersistentFlags().StringVarP(&o.Root, "root", "r", "", "override the documentation root")
	cmd.PersistentFlags().BoolVarP(&o.Debug, "debug", "d", false, "enable debug logging")
	cmd.PersistentFlags().BoolVar(&o.DryRun, "dry-run", false, "apply rules without writing files")
	cmd.PersistentFlags().BoolVar(&o.Diff, "diff", false, "print a diff for each modified file")
}

// setupLogging sets the level of the context logger based on flags
func setupLogging(ctx context.Context, debug bool) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}

	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}

	return zerolog.Ctx(ctx).Level(level).WithContext(ctx)
}
