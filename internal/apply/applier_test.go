package apply

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/cheztheme/internal/config"
	"github.com/jmylchreest/cheztheme/internal/theme"
)

type fakeRunner struct {
	mu      sync.Mutex
	calls   []string
	outputs map[string]string
	errs    map[string]error
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{outputs: make(map[string]string), errs: make(map[string]error)}
}

func (r *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	call := strings.Join(append([]string{name}, args...), " ")
	r.calls = append(r.calls, call)
	return []byte(r.outputs[call]), r.errs[call]
}

func (r *fakeRunner) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

type fakeNotifier struct {
	summaries []string
	levels    []NotificationLevel
	err       error
}

func (n *fakeNotifier) Notify(_ context.Context, summary, _ string, level NotificationLevel) error {
	n.summaries = append(n.summaries, summary)
	n.levels = append(n.levels, level)
	return n.err
}

type signalRecorder struct {
	pids []int
	sigs []syscall.Signal
	fail map[int]bool
}

func (s *signalRecorder) Signal(pid int, sig syscall.Signal) error {
	if s.fail[pid] {
		return errors.New("no such process")
	}
	s.pids = append(s.pids, pid)
	s.sigs = append(s.sigs, sig)
	return nil
}

type testEnv struct {
	applier  *Applier
	runner   *fakeRunner
	signals  *signalRecorder
	notifier *fakeNotifier
	config   string
	backups  string
}

func newTestEnv(t *testing.T, opts Options) *testEnv {
	t.Helper()
	dir := t.TempDir()
	if opts.ChezmoiConfig == "" {
		opts.ChezmoiConfig = filepath.Join(dir, "chezmoi", "chezmoi.toml")
	}

	env := &testEnv{
		runner:   newFakeRunner(),
		signals:  &signalRecorder{fail: make(map[int]bool)},
		notifier: &fakeNotifier{},
		config:   opts.ChezmoiConfig,
		backups:  opts.BackupDir,
	}
	env.applier = New(theme.NewCatalog(filepath.Join(dir, "themes"), nil), opts, nil)
	env.applier.SetRunner(env.runner)
	env.applier.SetSignaler(env.signals.Signal)
	env.applier.SetNotifier(env.notifier)
	return env
}

func TestApply_WritesThemeAndRunsChezmoi(t *testing.T) {
	env := newTestEnv(t, Options{})

	require.NoError(t, env.applier.Apply(context.Background(), "nord"))

	doc, err := config.LoadChezmoi(env.config)
	require.NoError(t, err)
	cfg, err := doc.ThemeConfig()
	require.NoError(t, err)
	assert.Equal(t, "nord", cfg.ThemeName)
	assert.Equal(t, "#2E3440", cfg.Theme.Base00)

	assert.Equal(t, []string{"chezmoi apply"}, env.runner.Calls())
	assert.Equal(t, []string{"Theme applied"}, env.notifier.summaries)
}

func TestApply_UnknownThemeWritesNothing(t *testing.T) {
	env := newTestEnv(t, Options{})

	err := env.applier.Apply(context.Background(), "does-not-exist")
	require.Error(t, err)
	assert.ErrorIs(t, err, theme.ErrThemeNotFound)

	_, statErr := os.Stat(env.config)
	assert.True(t, os.IsNotExist(statErr))
	assert.Empty(t, env.runner.Calls())
	assert.Empty(t, env.notifier.summaries)
}

func TestApply_PreservesOtherKeys(t *testing.T) {
	env := newTestEnv(t, Options{})
	require.NoError(t, os.MkdirAll(filepath.Dir(env.config), 0755))
	require.NoError(t, os.WriteFile(env.config, []byte("[data]\nemail = \"me@example.com\"\n"), 0644))

	require.NoError(t, env.applier.Apply(context.Background(), "dracula"))

	raw, err := os.ReadFile(env.config)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "me@example.com")
	assert.Contains(t, string(raw), "dracula")
}

func TestApply_MalformedConfigFails(t *testing.T) {
	env := newTestEnv(t, Options{})
	require.NoError(t, os.MkdirAll(filepath.Dir(env.config), 0755))
	require.NoError(t, os.WriteFile(env.config, []byte("not = [valid"), 0644))

	err := env.applier.Apply(context.Background(), "nord")
	require.Error(t, err)
	assert.Empty(t, env.runner.Calls())
}

func TestApply_BackupAndPrune(t *testing.T) {
	backups := filepath.Join(t.TempDir(), "backups")
	env := newTestEnv(t, Options{BackupDir: backups, KeepBackups: 2})

	// First apply has nothing to back up.
	require.NoError(t, env.applier.Apply(context.Background(), "nord"))
	list, err := ListBackups(backups)
	require.NoError(t, err)
	assert.Empty(t, list)

	for _, name := range []string{"dracula", "one-dark", "tokyo-night"} {
		require.NoError(t, env.applier.Apply(context.Background(), name))
	}

	list, err = ListBackups(backups)
	require.NoError(t, err)
	require.Len(t, list, 2)

	// Newest backup holds the config written by the previous apply.
	raw, err := os.ReadFile(list[0].Path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "one-dark")
}

func TestApply_ChezmoiFailure(t *testing.T) {
	env := newTestEnv(t, Options{ReloadKitty: true})
	env.runner.outputs["chezmoi apply"] = "template error\n"
	env.runner.errs["chezmoi apply"] = errors.New("exit status 1")

	err := env.applier.Apply(context.Background(), "nord")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "template error")

	// The theme is already written; reload hooks are skipped.
	_, statErr := os.Stat(env.config)
	assert.NoError(t, statErr)
	assert.Equal(t, []string{"chezmoi apply"}, env.runner.Calls())
	assert.Equal(t, []NotificationLevel{NotificationLevelError}, env.notifier.levels)
}

func TestApply_ReloadKitty(t *testing.T) {
	env := newTestEnv(t, Options{ReloadKitty: true})
	env.runner.outputs["pgrep kitty"] = "101\n202\n303\n"
	env.signals.fail[202] = true

	require.NoError(t, env.applier.Apply(context.Background(), "nord"))

	assert.Equal(t, []int{101, 303}, env.signals.pids)
	for _, sig := range env.signals.sigs {
		assert.Equal(t, syscall.SIGUSR1, sig)
	}
}

func TestApply_NoKittyRunning(t *testing.T) {
	env := newTestEnv(t, Options{ReloadKitty: true})
	env.runner.errs["pgrep kitty"] = errors.New("exit status 1")

	require.NoError(t, env.applier.Apply(context.Background(), "nord"))
	assert.Empty(t, env.signals.pids)
}

func TestApply_ReloadCommands(t *testing.T) {
	env := newTestEnv(t, Options{
		ChezmoiBinary:  "/opt/chezmoi",
		ReloadCommands: []string{"pkill -USR2 waybar", "false"},
	})
	env.runner.errs["sh -c false"] = errors.New("exit status 1")

	require.NoError(t, env.applier.Apply(context.Background(), "nord"), "reload failures are not fatal")
	assert.Equal(t, []string{
		"/opt/chezmoi apply",
		"sh -c pkill -USR2 waybar",
		"sh -c false",
	}, env.runner.Calls())
}

func TestApply_NotifierErrorIgnored(t *testing.T) {
	env := newTestEnv(t, Options{})
	env.notifier.err = errors.New("no bus")

	assert.NoError(t, env.applier.Apply(context.Background(), "nord"))
}

func TestRestore(t *testing.T) {
	backups := filepath.Join(t.TempDir(), "backups")
	env := newTestEnv(t, Options{BackupDir: backups})

	require.NoError(t, env.applier.Apply(context.Background(), "nord"))
	require.NoError(t, env.applier.Apply(context.Background(), "dracula"))

	list, err := ListBackups(backups)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, env.applier.Restore(context.Background(), list[0]))

	doc, err := config.LoadChezmoi(env.config)
	require.NoError(t, err)
	cfg, err := doc.ThemeConfig()
	require.NoError(t, err)
	assert.Equal(t, "nord", cfg.ThemeName)

	list, err = ListBackups(backups)
	require.NoError(t, err)
	assert.Len(t, list, 2, "restore backs up the replaced file")
}

func TestApply_IDsAreUniqueAndOrdered(t *testing.T) {
	env := newTestEnv(t, Options{})
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	env.applier.now = func() time.Time { return fixed }

	a := env.applier.newID()
	b := env.applier.newID()
	assert.Equal(t, -1, a.Compare(b))
}

func TestOptionsFromConfig(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	cfg := config.DefaultConfig()
	cfg.Chezmoi.Config = "/tmp/chezmoi.toml"

	opts := OptionsFromConfig(cfg)
	assert.Equal(t, "/tmp/chezmoi.toml", opts.ChezmoiConfig)
	assert.Equal(t, config.BackupPath(), opts.BackupDir)
	assert.True(t, opts.ReloadKitty)

	cfg.Apply.Backup = false
	assert.Empty(t, OptionsFromConfig(cfg).BackupDir)
}

func TestParsePIDs(t *testing.T) {
	assert.Equal(t, []int{12, 34}, ParsePIDs("12\n34\n"))
	assert.Empty(t, ParsePIDs(""))
	assert.Equal(t, []int{7}, ParsePIDs("abc\n7\n-1\n"))
}
