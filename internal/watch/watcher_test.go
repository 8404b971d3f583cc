package watch

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCountingWatcher(t *testing.T, path string) (*FileWatcher, *atomic.Int32) {
	t.Helper()
	var count atomic.Int32
	fw, err := NewFileWatcher(path, func() { count.Add(1) }, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = fw.Stop() })
	return fw, &count
}

func TestFileWatcher_Write(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chezmoi.toml")
	require.NoError(t, os.WriteFile(path, []byte("a = 1\n"), 0644))

	fw, count := newCountingWatcher(t, path)
	require.NoError(t, fw.Start())

	require.NoError(t, os.WriteFile(path, []byte("a = 2\n"), 0644))

	assert.Eventually(t, func() bool { return count.Load() > 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestFileWatcher_ReplacedByRename(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chezmoi.toml")
	require.NoError(t, os.WriteFile(path, []byte("a = 1\n"), 0644))

	fw, count := newCountingWatcher(t, path)
	require.NoError(t, fw.Start())

	tmp := filepath.Join(dir, ".chezmoi.toml.tmp")
	require.NoError(t, os.WriteFile(tmp, []byte("a = 2\n"), 0644))
	require.NoError(t, os.Rename(tmp, path))

	assert.Eventually(t, func() bool { return count.Load() > 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestFileWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chezmoi.toml")

	fw, count := newCountingWatcher(t, path)
	require.NoError(t, fw.Start())

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.toml"), []byte("x"), 0644))
	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, int32(0), count.Load())
}

func TestFileWatcher_StartStopIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chezmoi.toml")

	fw, _ := newCountingWatcher(t, path)
	require.NoError(t, fw.Start())
	require.NoError(t, fw.Start())
	require.NoError(t, fw.Stop())
	require.NoError(t, fw.Stop())
	assert.NoError(t, fw.Start(), "start after stop is a no-op")
	assert.Equal(t, path, fw.Path())
}

func TestFileWatcher_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "chezmoi.toml")

	fw, _ := newCountingWatcher(t, path)
	assert.Error(t, fw.Start())
}
