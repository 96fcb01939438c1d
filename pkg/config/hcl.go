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
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".hcl")
}

// 📝 Parse parses the config from HCL.
//
//	root     = "docs/ja"
//	encoding = "utf-8"
//
//	job "ferrite/index.html" {
//	  rule {
//	    find    = "Compile Options"
//	    replace = "コンパイルオプション"
//	  }
//	}
//
// Templates are evaluated, so a capture reference is written as $${1}.
func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "config.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	type hclRule struct {
		Find      string `hcl:"find,optional"`
		Pattern   string `hcl:"pattern,optional"`
		Replace   string `hcl:"replace,optional"`
		Global    bool   `hcl:"global,optional"`
		Multiline bool   `hcl:"multiline,optional"`
	}

	type hclConfig struct {
		Root     string `hcl:"root,optional"`
		Encoding string `hcl:"encoding,optional"`
		Jobs     []struct {
			Path  string    `hcl:"path,label"`
			Rules []hclRule `hcl:"rule,block"`
		} `hcl:"job,block"`
	}

	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	cfg := &Config{
		Root:     hclCfg.Root,
		Encoding: hclCfg.Encoding,
	}
	for _, j := range hclCfg.Jobs {
		job := Job{Path: j.Path}
		for _, r := range j.Rules {
			job.Rules = append(job.Rules, Rule{
				Find:      r.Find,
				Pattern:   r.Pattern,
				Replace:   r.Replace,
				Global:    r.Global,
				Multiline: r.Multiline,
			})
		}
		cfg.Jobs = append(cfg.Jobs, job)
	}

	return cfg, nil
}
