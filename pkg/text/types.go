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

package text

import (
	"context"
	"io"
)

// ReplacementRule defines a single text substitution.
// Exactly one of FromText and Pattern is set.
type ReplacementRule struct {
	// FromText is a literal, case-sensitive substring to replace
	FromText string

	// Pattern is an RE2 expression to replace
	Pattern string

	// ToText is the replacement. For Pattern rules it is a template where
	// $1, ${1} and ${name} refer to captured groups.
	ToText string

	// Global replaces every occurrence instead of only the first one
	Global bool

	// Multiline lets '.' in Pattern match '\n'
	Multiline bool
}

// IsPattern reports whether the rule matches with a regular expression
func (r ReplacementRule) IsPattern() bool {
	return r.Pattern != ""
}

// Matcher returns the literal or pattern the rule searches for
func (r ReplacementRule) Matcher() string {
	if r.IsPattern() {
		return r.Pattern
	}
	return r.FromText
}

// ReplacementResult contains the results of a text replacement operation
type ReplacementResult struct {
	// WasModified indicates if the content changed
	WasModified bool

	// ReplacementCount is the number of replacements made across all rules
	ReplacementCount int

	// RuleCounts holds the replacements made by each rule, in rule order
	RuleCounts []int

	// OriginalContent is the content before replacements
	OriginalContent []byte

	// ModifiedContent is the content after replacements
	ModifiedContent []byte
}

// UnmatchedRules returns the indexes of rules that replaced nothing
func (r *ReplacementResult) UnmatchedRules() []int {
	var idx []int
	for i, n := range r.RuleCounts {
		if n == 0 {
			idx = append(idx, i)
		}
	}
	return idx
}

// TextReplacer defines the interface for text replacement operations
type TextReplacer interface {
	// ReplaceText applies the rules in order, each one to the output of the
	// previous one
	ReplaceText(ctx context.Context, content io.Reader, rules []ReplacementRule) (*ReplacementResult, error)

	// ValidateRules checks that all rules are valid
	ValidateRules(rules []ReplacementRule) error
}
