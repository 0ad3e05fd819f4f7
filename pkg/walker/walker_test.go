package walker

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sonemaro/treepp/pkg/filter"
	"github.com/sonemaro/treepp/pkg/logger"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockLogger implements logger.Logger interface for testing
type mockLogger struct {
	logs []string
}

func (m *mockLogger) Info(msg string)                               { m.logs = append(m.logs, "INFO: "+msg) }
func (m *mockLogger) Debug(msg string)                              { m.logs = append(m.logs, "DEBUG: "+msg) }
func (m *mockLogger) Error(msg string)                              { m.logs = append(m.logs, "ERROR: "+msg) }
func (m *mockLogger) Warn(msg string)                               { m.logs = append(m.logs, "WARN: "+msg) }
func (m *mockLogger) Trace(msg string)                              { m.logs = append(m.logs, "TRACE: "+msg) }
func (m *mockLogger) WithFields(fields logger.Fields) logger.Logger { return m }

// failingFs refuses to open the listed paths
type failingFs struct {
	afero.Fs
	fail map[string]bool
}

func (f *failingFs) Open(name string) (afero.File, error) {
	if f.fail[name] {
		return nil, &os.PathError{Op: "open", Path: name, Err: os.ErrPermission}
	}
	return f.Fs.Open(name)
}

// failingWriter fails every write after the first n bytes
type failingWriter struct {
	n int
}

func (w *failingWriter) Write(p []byte) (int, error) {
	if len(p) > w.n {
		return 0, errors.New("disk full")
	}
	w.n -= len(p)
	return len(p), nil
}

func setupTestFS(t *testing.T, files map[string][]byte, dirs ...string) afero.Fs {
	t.Helper()

	fs := afero.NewMemMapFs()
	for _, dir := range dirs {
		require.NoError(t, fs.MkdirAll(dir, 0755))
	}
	for path, content := range files {
		require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, afero.WriteFile(fs, path, content, 0644))
	}
	return fs
}

func projectFS(t *testing.T) afero.Fs {
	return setupTestFS(t, map[string][]byte{
		"/root/b.txt":                  []byte("bbb"),
		"/root/a.txt":                  []byte("aaa"),
		"/root/empty.txt":              {},
		"/root/zero.bin":               make([]byte, 1024),
		"/root/main.o":                 []byte("object"),
		"/root/src/main.cpp":           []byte("int main() {}\n"),
		"/root/src/util/helper.h":      []byte("#pragma once\n"),
		"/root/build/out.txt":          []byte("build output"),
		"/root/CMakeFiles_extra/y.txt": []byte("cmake"),
	}, "/root/docs")
}

func TestWalkerRun(t *testing.T) {
	fs := projectFS(t)
	log := &mockLogger{}

	var out bytes.Buffer
	result, err := New(fs, filter.Default(), log).Run(&out, "/root")
	require.NoError(t, err)

	expected := "" +
		"├─[DIR] docs\n" +
		"├─[DIR] src\n" +
		"│  ├─[DIR] util\n" +
		"│  │  └─helper.h\n" +
		"│  └─main.cpp\n" +
		"├─a.txt\n" +
		"├─b.txt\n" +
		"├─empty.txt\n" +
		"└─zero.bin\n"
	assert.Equal(t, expected, out.String())

	assert.Equal(t, []string{
		"/root/src/util/helper.h",
		"/root/src/main.cpp",
		"/root/a.txt",
		"/root/b.txt",
		"/root/empty.txt",
	}, result.TextFiles)

	assert.Equal(t, Stats{
		Directories: 3,
		Files:       6,
		TextFiles:   5,
		Ignored:     3,
	}, result.Stats)
	assert.Empty(t, result.Errors)
	assert.Contains(t, log.logs, "INFO: Walk completed")
}

func TestWalkerOrdering(t *testing.T) {
	tests := []struct {
		name     string
		files    map[string][]byte
		dirs     []string
		expected string
	}{
		{
			name: "files are sorted alphabetically",
			files: map[string][]byte{
				"/r/b.txt": []byte("b"),
				"/r/a.txt": []byte("a"),
			},
			expected: "├─a.txt\n└─b.txt\n",
		},
		{
			name: "directories precede files regardless of name",
			files: map[string][]byte{
				"/r/a.txt": []byte("a"),
			},
			dirs:     []string{"/r/zdir"},
			expected: "├─[DIR] zdir\n└─a.txt\n",
		},
		{
			name: "last directory is terminal when there are no files",
			files: map[string][]byte{
				"/r/y/f": []byte("f"),
			},
			dirs:     []string{"/r/x"},
			expected: "├─[DIR] x\n└─[DIR] y\n   └─f\n",
		},
		{
			name: "ordering is case sensitive byte order",
			files: map[string][]byte{
				"/r/b":   []byte("b"),
				"/r/B":   []byte("B"),
				"/r/a":   []byte("a"),
				"/r/_":   []byte("_"),
				"/r/Zed": []byte("z"),
			},
			expected: "├─B\n├─Zed\n├─_\n├─a\n└─b\n",
		},
		{
			name:     "empty directory produces no lines",
			dirs:     []string{"/r"},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := setupTestFS(t, tt.files, tt.dirs...)

			var out bytes.Buffer
			_, err := New(fs, filter.Default(), &mockLogger{}).Run(&out, "/r")
			require.NoError(t, err)
			assert.Equal(t, tt.expected, out.String())
		})
	}
}

func TestWalkerIgnoredEntries(t *testing.T) {
	fs := setupTestFS(t, map[string][]byte{
		"/r/build/nested/deep.txt":     []byte("deep"),
		"/r/CMakeFiles_extra/file.txt": []byte("x"),
		"/r/lib.o":                     []byte("obj"),
		"/r/keep.txt":                  []byte("keep"),
	})

	var out bytes.Buffer
	result, err := New(fs, filter.Default(), &mockLogger{}).Run(&out, "/r")
	require.NoError(t, err)

	assert.Equal(t, "└─keep.txt\n", out.String())
	assert.Equal(t, []string{"/r/keep.txt"}, result.TextFiles)
	assert.Equal(t, 3, result.Stats.Ignored)
}

func TestWalkerUnreadableSubdirectory(t *testing.T) {
	base := setupTestFS(t, map[string][]byte{
		"/r/a/secret.txt": []byte("secret"),
		"/r/b/open.txt":   []byte("open"),
		"/r/z.txt":        []byte("z"),
	})
	fs := &failingFs{Fs: base, fail: map[string]bool{"/r/a": true}}
	log := &mockLogger{}

	var out bytes.Buffer
	result, err := New(fs, filter.Default(), log).Run(&out, "/r")
	require.NoError(t, err)

	expected := "" +
		"├─[DIR] a\n" +
		"├─[DIR] b\n" +
		"│  └─open.txt\n" +
		"└─z.txt\n"
	assert.Equal(t, expected, out.String())
	assert.Equal(t, []string{"/r/b/open.txt", "/r/z.txt"}, result.TextFiles)

	require.Len(t, result.Errors, 1)
	assert.Equal(t, "/r/a", result.Errors[0].Path)
	assert.Equal(t, OpReadDir, result.Errors[0].Op)
	assert.ErrorIs(t, result.Errors[0], os.ErrPermission)
	assert.Contains(t, log.logs, "WARN: Skipping unreadable directory")
}

func TestWalkerUnopenableFileIsListedButNotText(t *testing.T) {
	base := setupTestFS(t, map[string][]byte{
		"/r/locked.txt": []byte("text"),
	})
	fs := &failingFs{Fs: base, fail: map[string]bool{"/r/locked.txt": true}}

	var out bytes.Buffer
	result, err := New(fs, filter.Default(), &mockLogger{}).Run(&out, "/r")
	require.NoError(t, err)

	assert.Equal(t, "└─locked.txt\n", out.String())
	assert.Empty(t, result.TextFiles)
}

func TestWalkerUnreadableRoot(t *testing.T) {
	fs := afero.NewMemMapFs()

	var out bytes.Buffer
	_, err := New(fs, filter.Default(), &mockLogger{}).Run(&out, "/missing")
	require.Error(t, err)

	var pathErr *PathError
	require.ErrorAs(t, err, &pathErr)
	assert.Equal(t, OpReadDir, pathErr.Op)
	assert.Equal(t, "/missing", pathErr.Path)
}

func TestWalkerWriteFailureIsFatal(t *testing.T) {
	fs := setupTestFS(t, map[string][]byte{
		"/r/a/one.txt": []byte("1"),
		"/r/b.txt":     []byte("2"),
	})

	_, err := New(fs, filter.Default(), &mockLogger{}).Run(&failingWriter{n: 5}, "/r")
	require.Error(t, err)

	var pathErr *PathError
	require.ErrorAs(t, err, &pathErr)
	assert.Equal(t, OpWrite, pathErr.Op)
}

func TestWalkerObserver(t *testing.T) {
	fs := projectFS(t)

	var seen []string
	w := New(fs, filter.Default(), &mockLogger{}, WithObserver(func(dir string, stats Stats) {
		seen = append(seen, dir)
	}))

	_, err := w.Run(&bytes.Buffer{}, "/root")
	require.NoError(t, err)

	assert.Equal(t, []string{"/root", "/root/docs", "/root/src", "/root/src/util"}, seen)
}

func TestWalkerRunResetsState(t *testing.T) {
	fs := projectFS(t)
	w := New(fs, filter.Default(), &mockLogger{})

	var first, second bytes.Buffer
	r1, err := w.Run(&first, "/root")
	require.NoError(t, err)
	r2, err := w.Run(&second, "/root")
	require.NoError(t, err)

	assert.Equal(t, first.String(), second.String())
	assert.Equal(t, r1, r2)
}

func TestWalkWithPrefix(t *testing.T) {
	fs := setupTestFS(t, map[string][]byte{
		"/r/a.txt": []byte("a"),
	})

	var out bytes.Buffer
	var acc []string
	err := New(fs, filter.Default(), &mockLogger{}).Walk(&out, "/r", "│  ", &acc)
	require.NoError(t, err)

	assert.Equal(t, "│  └─a.txt\n", out.String())
	assert.Equal(t, []string{"/r/a.txt"}, acc)
}

func TestWalkerSymlinksAreNotFollowed(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("a"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(root, "sub"), 0755))
	if err := os.Symlink(root, filepath.Join(root, "sub", "loop")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}
	require.NoError(t, os.Symlink(filepath.Join(root, "nowhere"), filepath.Join(root, "dangling")))

	var out bytes.Buffer
	result, err := New(afero.NewOsFs(), filter.Default(), &mockLogger{}).Run(&out, root)
	require.NoError(t, err)

	expected := "" +
		"├─[DIR] sub\n" +
		"│  └─loop\n" +
		"├─a.txt\n" +
		"└─dangling\n"
	assert.Equal(t, expected, out.String())
	assert.Equal(t, []string{filepath.Join(root, "a.txt")}, result.TextFiles)
	assert.Equal(t, Stats{Directories: 1, Files: 3, TextFiles: 1}, result.Stats)
	assert.Empty(t, result.Errors)
}

func TestWalkerKeepsRootAsGiven(t *testing.T) {
	sep := string(filepath.Separator)

	t.Run("relative root", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "b.txt"), []byte("b"), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("a"), 0644))
		chdir(t, dir)

		var seen []string
		w := New(afero.NewOsFs(), filter.Default(), &mockLogger{}, WithObserver(func(dir string, stats Stats) {
			seen = append(seen, dir)
		}))
		result, err := w.Run(&bytes.Buffer{}, ".")
		require.NoError(t, err)

		assert.Equal(t, []string{"." + sep + "sub" + sep + "b.txt", "." + sep + "a.txt"}, result.TextFiles)
		assert.Equal(t, []string{".", "." + sep + "sub"}, seen)
	})

	t.Run("trailing separator", func(t *testing.T) {
		fs := setupTestFS(t, map[string][]byte{
			"/r/a.txt": []byte("a"),
		})

		result, err := New(fs, filter.Default(), &mockLogger{}).Run(&bytes.Buffer{}, "/r/")
		require.NoError(t, err)
		assert.Equal(t, []string{"/r/a.txt"}, result.TextFiles)
	})
}

func TestChildPath(t *testing.T) {
	sep := string(filepath.Separator)
	tests := []struct {
		dir, name, expected string
	}{
		{dir: ".", name: "a", expected: "." + sep + "a"},
		{dir: "src", name: "a", expected: "src" + sep + "a"},
		{dir: sep, name: "a", expected: sep + "a"},
		{dir: "src" + sep, name: "a", expected: "src" + sep + "a"},
		{dir: "", name: "a", expected: "a"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, childPath(tt.dir, tt.name), "childPath(%q, %q)", tt.dir, tt.name)
	}
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, added in Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { require.NoError(t, os.Chdir(old)) })
}
