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

package operation

import (
	"context"
	"path/filepath"
	"slices"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/docxlate/pkg/charset"
	"github.com/walteh/docxlate/pkg/config"
	"github.com/walteh/docxlate/pkg/log"
	"github.com/walteh/docxlate/pkg/text"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/text/encoding"
)

// 🔧 Options contains configuration for the rewriter
type Options struct {
	// Config is the validated job table
	Config *config.Config
	// Root overrides Config.Root when set
	Root string
	// Logger receives progress and per-file lines
	Logger *log.Logger
	// Replacer applies rules; defaults to text.NewRuleReplacer()
	Replacer text.TextReplacer
	// FS reads and writes target files; defaults to OSFileSystem
	FS FileSystem
	// DryRun skips the write-back
	DryRun bool
	// Diff prints a line diff for every modified file
	Diff bool
}

// 🎮 Rewriter applies a job table to files on disk, one job at a time
type Rewriter struct {
	root     string
	jobs     []config.Job
	enc      encoding.Encoding
	logger   *log.Logger
	replacer text.TextReplacer
	fs       FileSystem
	dryRun   bool
	diff     bool
}

// 🏭 New creates a rewriter with the given options
func New(opts Options) (*Rewriter, error) {
	if opts.Config == nil {
		return nil, errors.Errorf("config is required")
	}
	if opts.Logger == nil {
		return nil, errors.Errorf("logger is required")
	}

	enc, err := charset.Lookup(opts.Config.Encoding)
	if err != nil {
		return nil, errors.Errorf("resolving encoding: %w", err)
	}

	root := opts.Config.Root
	if opts.Root != "" {
		root = opts.Root
	}
	if root == "" {
		root = config.DefaultRoot
	}

	// the rewriter owns its copy of the table
	jobs := make([]config.Job, len(opts.Config.Jobs))
	for i, job := range opts.Config.Jobs {
		jobs[i] = config.Job{Path: job.Path, Rules: slices.Clone(job.Rules)}
	}

	r := &Rewriter{
		root:     root,
		jobs:     jobs,
		enc:      enc,
		logger:   opts.Logger,
		replacer: opts.Replacer,
		fs:       opts.FS,
		dryRun:   opts.DryRun,
		diff:     opts.Diff,
	}
	if r.replacer == nil {
		r.replacer = text.NewRuleReplacer()
	}
	if r.fs == nil {
		r.fs = OSFileSystem{}
	}

	return r, nil
}

// Path resolves a job's file under the documentation root
func (r *Rewriter) Path(job config.Job) string {
	return filepath.Join(r.root, job.Path)
}

// 🏃 Run processes every job in order and stops at the first failure.
// Files already written stay written.
func (r *Rewriter) Run(ctx context.Context) error {
	zerolog.Ctx(ctx).Debug().
		Str("root", r.root).
		Int("jobs", len(r.jobs)).
		Bool("dry_run", r.dryRun).
		Msg("starting rewrite")

	for _, job := range r.jobs {
		if err := ctx.Err(); err != nil {
			return errors.Errorf("rewriting %s: %w", r.Path(job), err)
		}

		if _, err := r.RewriteFile(ctx, job); err != nil {
			return err
		}
	}

	return nil
}

// 📝 RewriteFile reads one job's file, applies its rules and writes the
// result back in place
func (r *Rewriter) RewriteFile(ctx context.Context, job config.Job) (*text.ReplacementResult, error) {
	path := r.Path(job)
	r.logger.StartFile(ctx, path)

	raw, err := r.fs.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading %s: %w", path, err)
	}

	doc, err := charset.Decode(r.enc, raw)
	if err != nil {
		return nil, errors.Errorf("reading %s: %w", path, err)
	}

	result, err := r.replacer.ReplaceText(ctx, strings.NewReader(doc), job.ReplacementRules())
	if err != nil {
		return nil, errors.Errorf("rewriting %s: %w", path, err)
	}

	out, err := charset.Encode(r.enc, string(result.ModifiedContent))
	if err != nil {
		return nil, errors.Errorf("writing %s: %w", path, err)
	}

	if r.diff && result.WasModified {
		r.logger.Raw(Diff(path, doc, string(result.ModifiedContent)))
	}

	if !r.dryRun {
		if err := r.fs.WriteFile(path, out); err != nil {
			return nil, errors.Errorf("writing %s: %w", path, err)
		}
	}

	op := log.FileOperation{
		Path:         path,
		IsModified:   result.WasModified,
		IsDryRun:     r.dryRun,
		Rules:        len(job.Rules),
		Replacements: result.ReplacementCount,
		Unmatched:    len(result.UnmatchedRules()),
	}
	switch {
	case r.dryRun:
		op.Status = log.StatusDryRun
	case result.WasModified:
		op.Status = log.StatusTranslated
	default:
		op.Status = log.StatusUnchanged
	}
	r.logger.LogFileOperation(ctx, op)

	return result, nil
}
