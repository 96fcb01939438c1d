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

package operation_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/walteh/docxlate/pkg/charset"
	"github.com/walteh/docxlate/pkg/config"
	"github.com/walteh/docxlate/pkg/log"
	"github.com/walteh/docxlate/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

const attachmentDescription = `<h1>Possible Values</h1>
<p>The contents within the render area will be cleared to a uniform value,
which is specified when a render pass instance is begun.</p>
<p>Both values require <code>VK_IMAGE_USAGE_X</code></p>
<p><code>VK_A</code> requires <code>VK_B</code></p>
<h2>Possible Values</h2>
<p>No flags</p><p>No flags</p>
`

const attachmentDescriptionJa = `<h1>適用可能な値</h1>
<p>特定の値(RenderPass を開始する際に指定)でクリアされることを表す</p>
<p>どちらの値も<code>VK_IMAGE_USAGE_X</code>を必要とする</p>
<p><code>VK_A</code>は<code>VK_B</code>を必要とする</p>
<h2>適用可能な値</h2>
<p>指定なし</p><p>No flags</p>
`

// 🧪 testEnv holds a temporary documentation root seeded for the embedded table
type testEnv struct {
	ctx     context.Context
	root    string
	cfg     *config.Config
	console *bytes.Buffer
	logger  *log.Logger
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })

	zlog := zerolog.New(zerolog.NewTestWriter(t))
	ctx := zlog.WithContext(context.Background())

	cfg, err := config.Default(ctx)
	require.NoError(t, err)

	root := t.TempDir()
	console := &bytes.Buffer{}

	env := &testEnv{
		ctx:     ctx,
		root:    root,
		cfg:     cfg,
		console: console,
		logger:  log.NewWithLogger(console, zlog),
	}

	env.write(t, "ferrite/index.html", "Compile Options")
	env.write(t, "ferrite/vk/struct.VkAttachmentDescription.html", attachmentDescription)
	env.write(t, "ferrite/struct.SubpassDescription.html", "How <em>input attachments</em> work")

	return env
}

func (e *testEnv) path(rel string) string {
	return filepath.Join(e.root, filepath.FromSlash(rel))
}

func (e *testEnv) write(t *testing.T, rel, content string) {
	t.Helper()
	p := e.path(rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
}

func (e *testEnv) read(t *testing.T, rel string) string {
	t.Helper()
	data, err := os.ReadFile(e.path(rel))
	require.NoError(t, err)
	return string(data)
}

func (e *testEnv) rewriter(t *testing.T, mutate func(*operation.Options)) *operation.Rewriter {
	t.Helper()
	opts := operation.Options{
		Config: e.cfg,
		Root:   e.root,
		Logger: e.logger,
	}
	if mutate != nil {
		mutate(&opts)
	}
	r, err := operation.New(opts)
	require.NoError(t, err)
	return r
}

func TestRewriter_Run(t *testing.T) {
	env := newTestEnv(t)

	err := env.rewriter(t, nil).Run(env.ctx)
	require.NoError(t, err)

	assert.Equal(t, "コンパイルオプション", env.read(t, "ferrite/index.html"))
	assert.Equal(t, attachmentDescriptionJa, env.read(t, "ferrite/vk/struct.VkAttachmentDescription.html"))
	assert.Equal(t, "<em>入力アタッチメント</em>の挙動", env.read(t, "ferrite/struct.SubpassDescription.html"))
}

func TestRewriter_ProgressLinesInDeclaredOrder(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.rewriter(t, nil).Run(env.ctx))

	var progress []string
	for _, line := range strings.Split(env.console.String(), "\n") {
		if strings.HasPrefix(line, "Translating ") {
			progress = append(progress, line)
		}
	}

	assert.Equal(t, []string{
		"Translating " + env.path("ferrite/index.html") + "...",
		"Translating " + env.path("ferrite/vk/struct.VkAttachmentDescription.html") + "...",
		"Translating " + env.path("ferrite/struct.SubpassDescription.html") + "...",
	}, progress)

	ops := env.logger.Operations()
	require.Len(t, ops, 3)
	assert.Equal(t, log.StatusTranslated, ops[0].Status)
	assert.Equal(t, 1, ops[0].Replacements)
	assert.Equal(t, 8, ops[0].Unmatched)
}

func TestRewriter_Deterministic(t *testing.T) {
	var outputs []string
	for i := 0; i < 2; i++ {
		env := newTestEnv(t)
		require.NoError(t, env.rewriter(t, nil).Run(env.ctx))
		outputs = append(outputs, env.read(t, "ferrite/vk/struct.VkAttachmentDescription.html"))
	}
	assert.Equal(t, outputs[0], outputs[1])
}

func TestRewriter_NoMatchLeavesContentUnchanged(t *testing.T) {
	env := newTestEnv(t)
	content := "<html>\n<body>nothing to translate here</body>\n</html>\n"
	env.write(t, "ferrite/index.html", content)

	result, err := env.rewriter(t, nil).RewriteFile(env.ctx, env.cfg.Jobs[0])
	require.NoError(t, err)

	assert.False(t, result.WasModified)
	assert.Equal(t, 0, result.ReplacementCount)
	assert.Equal(t, content, env.read(t, "ferrite/index.html"))
	assert.Equal(t, log.StatusUnchanged, env.logger.Operations()[0].Status)
}

func TestRewriter_StopsAtFirstMissingFile(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, os.Remove(env.path("ferrite/vk/struct.VkAttachmentDescription.html")))

	err := env.rewriter(t, nil).Run(env.ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "reading "+env.path("ferrite/vk/struct.VkAttachmentDescription.html"))

	assert.Equal(t, "コンパイルオプション", env.read(t, "ferrite/index.html"), "earlier job stays written")
	assert.Equal(t, "How <em>input attachments</em> work", env.read(t, "ferrite/struct.SubpassDescription.html"), "later job is not run")
	assert.Equal(t, 2, strings.Count(env.console.String(), "Translating "))
}

func TestRewriter_UnwritableFile(t *testing.T) {
	env := newTestEnv(t)

	fs := &mockFileSystem{}
	fs.On("ReadFile", env.path("ferrite/index.html")).Return([]byte("Compile Options"), nil)
	fs.On("WriteFile", env.path("ferrite/index.html"), []byte("コンパイルオプション")).Return(os.ErrPermission)

	err := env.rewriter(t, func(o *operation.Options) { o.FS = fs }).Run(env.ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrPermission)
	assert.Contains(t, err.Error(), "writing "+env.path("ferrite/index.html"))

	fs.AssertExpectations(t)
	fs.AssertNumberOfCalls(t, "ReadFile", 1)
}

func TestRewriter_DryRun(t *testing.T) {
	env := newTestEnv(t)

	err := env.rewriter(t, func(o *operation.Options) {
		o.DryRun = true
		o.Diff = true
	}).Run(env.ctx)
	require.NoError(t, err)

	assert.Equal(t, "Compile Options", env.read(t, "ferrite/index.html"))
	assert.Equal(t, attachmentDescription, env.read(t, "ferrite/vk/struct.VkAttachmentDescription.html"))

	out := env.console.String()
	assert.Contains(t, out, "--- "+env.path("ferrite/index.html"))
	assert.Contains(t, out, "-Compile Options\n+コンパイルオプション\n")

	for _, op := range env.logger.Operations() {
		assert.Equal(t, log.StatusDryRun, op.Status)
		assert.True(t, op.IsDryRun)
	}
}

func TestRewriter_CancelledContext(t *testing.T) {
	env := newTestEnv(t)
	ctx, cancel := context.WithCancel(env.ctx)
	cancel()

	err := env.rewriter(t, nil).Run(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, "Compile Options", env.read(t, "ferrite/index.html"))
	assert.Empty(t, env.console.String())
}

func TestRewriter_ShiftJIS(t *testing.T) {
	env := newTestEnv(t)
	env.cfg.Encoding = "shift_jis"

	enc, err := charset.Lookup("shift_jis")
	require.NoError(t, err)
	input, err := charset.Encode(enc, "<p>説明: No flags</p>")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(env.path("ferrite/vk/struct.VkAttachmentDescription.html"), input, 0644))

	_, err = env.rewriter(t, nil).RewriteFile(env.ctx, env.cfg.Jobs[1])
	require.NoError(t, err)

	raw, err := os.ReadFile(env.path("ferrite/vk/struct.VkAttachmentDescription.html"))
	require.NoError(t, err)
	got, err := charset.Decode(enc, raw)
	require.NoError(t, err)
	assert.Equal(t, "<p>説明: 指定なし</p>", got)
}

func TestRewriter_KeepsFileMode(t *testing.T) {
	env := newTestEnv(t)
	p := env.path("ferrite/index.html")
	require.NoError(t, os.Chmod(p, 0600))

	_, err := env.rewriter(t, nil).RewriteFile(env.ctx, env.cfg.Jobs[0])
	require.NoError(t, err)

	info, err := os.Stat(p)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestRewriter_OwnsItsJobTable(t *testing.T) {
	env := newTestEnv(t)
	r := env.rewriter(t, nil)

	env.cfg.Jobs[0].Rules[6].Replace = "changed"

	require.NoError(t, r.Run(env.ctx))
	assert.Equal(t, "コンパイルオプション", env.read(t, "ferrite/index.html"))
}

func TestNew(t *testing.T) {
	cfg, err := config.Default(context.Background())
	require.NoError(t, err)
	logger := log.NewWithLogger(&bytes.Buffer{}, zerolog.Nop())

	tests := []struct {
		name      string
		opts      operation.Options
		wantError string
		wantRoot  string
	}{
		{
			name:      "missing_config",
			opts:      operation.Options{Logger: logger},
			wantError: "config is required",
		},
		{
			name:      "missing_logger",
			opts:      operation.Options{Config: cfg},
			wantError: "logger is required",
		},
		{
			name:      "bad_encoding",
			opts:      operation.Options{Config: &config.Config{Encoding: "klingon"}, Logger: logger},
			wantError: "resolving encoding",
		},
		{
			name:     "config_root",
			opts:     operation.Options{Config: cfg, Logger: logger},
			wantRoot: config.DefaultRoot,
		},
		{
			name:     "root_override",
			opts:     operation.Options{Config: cfg, Logger: logger, Root: "/srv/docs"},
			wantRoot: "/srv/docs",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := operation.New(tt.opts)
			if tt.wantError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(tt.wantRoot, "ferrite", "index.html"), r.Path(cfg.Jobs[0]))
		})
	}
}

// 🧪 mockFileSystem is a testify mock of operation.FileSystem
type mockFileSystem struct {
	mock.Mock
}

func (m *mockFileSystem) ReadFile(path string) ([]byte, error) {
	args := m.Called(path)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

func (m *mockFileSystem) WriteFile(path string, data []byte) error {
	args := m.Called(path, data)
	if err := args.Error(0); err != nil {
		return errors.WithStack(err)
	}
	return nil
}
