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

// Package charset converts document bytes to and from text in a named encoding.
package charset

import (
	"strings"

	"gitlab.com/tozd/go/errors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

// Default is the encoding used when none is configured
const Default = "utf-8"

// 🔍 Lookup resolves an encoding by its WHATWG name or alias
func Lookup(name string) (encoding.Encoding, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = Default
	}

	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, errors.Errorf("unknown encoding %q: %w", name, err)
	}
	return enc, nil
}

// Canonical returns the canonical name for an encoding name
func Canonical(name string) (string, error) {
	enc, err := Lookup(name)
	if err != nil {
		return "", err
	}
	canonical, err := htmlindex.Name(enc)
	if err != nil {
		return "", errors.Errorf("naming encoding %q: %w", name, err)
	}
	return canonical, nil
}

// 📖 Decode converts raw file bytes into document text
func Decode(enc encoding.Encoding, data []byte) (string, error) {
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", errors.Errorf("decoding: %w", err)
	}
	return string(out), nil
}

// 📝 Encode converts document text back into file bytes
func Encode(enc encoding.Encoding, text string) ([]byte, error) {
	out, err := enc.NewEncoder().Bytes([]byte(text))
	if err != nil {
		return nil, errors.Errorf("encoding: %w", err)
	}
	return out, nil
}
