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
	"regexp"
	"strings"
	"sync"

	"gitlab.com/tozd/go/errors"
)

// 🔄 RuleReplacer implements TextReplacer for literal and pattern rules
type RuleReplacer struct {
	mu       sync.Mutex
	compiled map[string]*regexp.Regexp
}

var _ TextReplacer = (*RuleReplacer)(nil)

// 🏭 NewRuleReplacer creates a new RuleReplacer
func NewRuleReplacer() *RuleReplacer {
	return &RuleReplacer{
		compiled: make(map[string]*regexp.Regexp),
	}
}

// 📝 ReplaceText implements TextReplacer.ReplaceText
func (r *RuleReplacer) ReplaceText(ctx context.Context, content io.Reader, rules []ReplacementRule) (*ReplacementResult, error) {
	originalContent, err := io.ReadAll(content)
	if err != nil {
		return nil, errors.Errorf("reading content: %w", err)
	}

	return r.ReplaceString(ctx, string(originalContent), rules)
}

// 📝 ReplaceString applies the rules to an in-memory document
func (r *RuleReplacer) ReplaceString(ctx context.Context, content string, rules []ReplacementRule) (*ReplacementResult, error) {
	if err := r.ValidateRules(rules); err != nil {
		return nil, err
	}

	result := &ReplacementResult{
		OriginalContent: []byte(content),
		RuleCounts:      make([]int, len(rules)),
	}

	current := content
	for i, rule := range rules {
		if err := ctx.Err(); err != nil {
			return nil, errors.Errorf("applying rule %d: %w", i, err)
		}

		var n int
		if rule.IsPattern() {
			re, err := r.compile(rule)
			if err != nil {
				return nil, errors.Errorf("rule %d: %w", i, err)
			}
			current, n = replacePattern(current, re, rule)
		} else {
			current, n = replaceLiteral(current, rule)
		}

		result.RuleCounts[i] = n
		result.ReplacementCount += n
	}

	result.ModifiedContent = []byte(current)
	result.WasModified = current != content
	return result, nil
}

// 🔍 ValidateRules implements TextReplacer.ValidateRules
func (r *RuleReplacer) ValidateRules(rules []ReplacementRule) error {
	for i, rule := range rules {
		switch {
		case rule.FromText == "" && rule.Pattern == "":
			return errors.Errorf("rule %d: one of find or pattern is required", i)
		case rule.FromText != "" && rule.Pattern != "":
			return errors.Errorf("rule %d: find and pattern are mutually exclusive", i)
		case rule.Multiline && !rule.IsPattern():
			return errors.Errorf("rule %d: multiline only applies to pattern rules", i)
		}

		if rule.IsPattern() {
			if _, err := r.compile(rule); err != nil {
				return errors.Errorf("rule %d: %w", i, err)
			}
		}
	}
	return nil
}

func (r *RuleReplacer) compile(rule ReplacementRule) (*regexp.Regexp, error) {
	expr := rule.Pattern
	if rule.Multiline {
		expr = "(?s)" + expr
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if re, ok := r.compiled[expr]; ok {
		return re, nil
	}

	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, errors.Errorf("compiling pattern %q: %w", rule.Pattern, err)
	}
	r.compiled[expr] = re
	return re, nil
}

func replaceLiteral(s string, rule ReplacementRule) (string, int) {
	n := strings.Count(s, rule.FromText)
	if n == 0 {
		return s, 0
	}
	if rule.Global {
		return strings.ReplaceAll(s, rule.FromText, rule.ToText), n
	}
	return strings.Replace(s, rule.FromText, rule.ToText, 1), 1
}

func replacePattern(s string, re *regexp.Regexp, rule ReplacementRule) (string, int) {
	if rule.Global {
		n := len(re.FindAllStringIndex(s, -1))
		if n == 0 {
			return s, 0
		}
		return re.ReplaceAllString(s, rule.ToText), n
	}

	m := re.FindStringSubmatchIndex(s)
	if m == nil {
		return s, 0
	}

	out := make([]byte, 0, len(s)+len(rule.ToText))
	out = append(out, s[:m[0]]...)
	out = re.ExpandString(out, rule.ToText, s, m)
	out = append(out, s[m[1]:]...)
	return string(out), 1
}
