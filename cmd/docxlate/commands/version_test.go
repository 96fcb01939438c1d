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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatVersion(t *testing.T) {
	tests := []struct {
		name     string
		info     *VersionInfo
		contains []string
		excludes []string
	}{
		{
			name: "release",
			info: &VersionInfo{Version: "v1.2.0", Revision: "abc123", GoVersion: "go1.23.5", Platform: "linux/amd64"},
			contains: []string{
				"docxlate version info",
				"Version:   v1.2.0",
				"Revision:  abc123\n",
				"Platform:  linux/amd64",
			},
			excludes: []string{"(modified)"},
		},
		{
			name:     "modified_tree",
			info:     &VersionInfo{Version: "dev", Revision: "abc123", Modified: true},
			contains: []string{"Revision:  abc123 (modified)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := FormatVersion(tt.info)
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestGetVersionInfo(t *testing.T) {
	info := GetVersionInfo()
	assert.NotEmpty(t, info.Version)
	assert.NotEmpty(t, info.GoVersion)
	assert.Contains(t, info.Platform, "/")
}
