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
	"os"
)

// FileSystem abstracts whole-file reads and in-place overwrites
type FileSystem interface {
	// ReadFile reads the entire contents of a file
	ReadFile(path string) ([]byte, error)

	// WriteFile replaces the contents of an existing file
	WriteFile(path string, data []byte) error
}

// OSFileSystem implements FileSystem using the os package
type OSFileSystem struct{}

var _ FileSystem = OSFileSystem{}

// ReadFile reads the entire contents of a file
func (OSFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// WriteFile replaces the contents of an existing file and keeps its mode.
// Missing files are an error; nothing is created.
func (OSFileSystem) WriteFile(path string, data []byte) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, info.Mode().Perm())
}
