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

package log

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

// maxMatcherWidth caps how much of a matcher is echoed in rule reports
const maxMatcherWidth = 60

// 📢 UserLogger provides user-friendly feedback for validation and rule reports
type UserLogger struct {
	log zerolog.Logger // for debug/error logging
	out io.Writer
}

// 🎯 NewUserLoggerTo creates a new user logger writing to out
func NewUserLoggerTo(ctx context.Context, out io.Writer) *UserLogger {
	return &UserLogger{
		log: *zerolog.Ctx(ctx),
		out: out,
	}
}

// 🔍 LogValidation logs validation results
func (u *UserLogger) LogValidation(valid bool, description string, err error) {
	if valid {
		pterm.Success.WithWriter(u.out).WithPrefix(pterm.Prefix{Text: "✅"}).Println(description)
		u.log.Info().Msg(description)
		return
	}

	if err != nil {
		pterm.Error.WithWriter(u.out).WithPrefix(pterm.Prefix{Text: "❌"}).Println(description)
		pterm.Error.WithWriter(u.out).Println(err.Error())
		u.log.Error().Err(err).Msg(description)
		return
	}

	pterm.Warning.WithWriter(u.out).WithPrefix(pterm.Prefix{Text: "⚠️"}).Println(description)
	u.log.Warn().Msg(description)
}

// 📊 LogRuleMatch reports how often one rule of a job matched
func (u *UserLogger) LogRuleMatch(path string, index int, matcher string, count int) {
	msg := fmt.Sprintf("%s rule %d %q: %d", path, index, shorten(matcher), count)

	if count == 0 {
		pterm.Warning.WithWriter(u.out).WithPrefix(pterm.Prefix{Text: "⏭️"}).Println(msg)
		u.log.Warn().Str("file", path).Int("rule", index).Msg("rule matched nothing")
		return
	}

	pterm.Info.WithWriter(u.out).WithPrefix(pterm.Prefix{Text: "🔄"}).Println(msg)
	u.log.Debug().Str("file", path).Int("rule", index).Int("count", count).Msg("rule matched")
}

func shorten(s string) string {
	s = strings.ReplaceAll(s, "\n", `\n`)
	r := []rune(s)
	if len(r) <= maxMatcherWidth {
		return s
	}
	return string(r[:maxMatcherWidth-1]) + "…"
}
