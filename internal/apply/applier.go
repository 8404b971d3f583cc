package apply

import (
	"bytes"
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/natefinch/atomic"
	"github.com/oklog/ulid/v2"

	"github.com/jmylchreest/cheztheme/internal/config"
	"github.com/jmylchreest/cheztheme/internal/theme"
)

// ThemeLoader resolves a theme name. theme.Catalog implements it.
type ThemeLoader interface {
	Load(name string) (*theme.Theme, theme.Kind, error)
}

// Options control the apply pipeline.
type Options struct {
	ChezmoiConfig  string   // Path to chezmoi.toml
	ChezmoiBinary  string   // chezmoi executable
	BackupDir      string   // Empty disables backups
	KeepBackups    int      // 0 keeps every backup
	ReloadKitty    bool     // Send SIGUSR1 to kitty
	ReloadCommands []string // Run with "sh -c" after chezmoi apply
}

// OptionsFromConfig builds Options from the application config.
func OptionsFromConfig(cfg *config.Config) Options {
	opts := Options{
		ChezmoiConfig:  cfg.ChezmoiConfigPath(),
		ChezmoiBinary:  cfg.Chezmoi.Binary,
		KeepBackups:    cfg.Apply.KeepBackups,
		ReloadKitty:    cfg.Apply.ReloadKitty,
		ReloadCommands: cfg.Apply.ReloadCommands,
	}
	if cfg.Apply.Backup {
		opts.BackupDir = config.BackupPath()
	}
	return opts
}

// Applier runs the apply pipeline.
type Applier struct {
	loader   ThemeLoader
	opts     Options
	runner   Runner
	signal   Signaler
	notifier Notifier
	logger   *slog.Logger
	now      func() time.Time

	idMu    sync.Mutex
	entropy io.Reader
}

// New creates an Applier that runs real commands and signals real processes.
func New(loader ThemeLoader, opts Options, logger *slog.Logger) *Applier {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.ChezmoiBinary == "" {
		opts.ChezmoiBinary = config.DefaultChezmoiBinary
	}
	return &Applier{
		loader:  loader,
		opts:    opts,
		runner:  ExecRunner{},
		signal:  KillSignaler,
		logger:  logger,
		now:     time.Now,
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

// SetRunner replaces the command runner.
func (a *Applier) SetRunner(r Runner) {
	a.runner = r
}

// SetSignaler replaces the process signaler.
func (a *Applier) SetSignaler(s Signaler) {
	a.signal = s
}

// SetNotifier enables desktop notifications. nil disables them.
func (a *Applier) SetNotifier(n Notifier) {
	a.notifier = n
}

// Options returns the pipeline options.
func (a *Applier) Options() Options {
	return a.opts
}

// Apply writes theme name into chezmoi.toml and propagates it.
// An unknown theme writes nothing.
func (a *Applier) Apply(ctx context.Context, name string) error {
	id := a.newID()
	logger := a.logger.With("apply_id", id.String(), "theme", name)

	t, kind, err := a.loader.Load(name)
	if err != nil {
		return fmt.Errorf("failed to load theme %s: %w", name, err)
	}
	logger.Debug("theme loaded", "kind", kind)

	doc, existing, err := a.loadDocument()
	if err != nil {
		return err
	}

	if existing != nil && a.opts.BackupDir != "" {
		path, err := writeBackup(a.opts.BackupDir, id, existing)
		if err != nil {
			return err
		}
		logger.Debug("backed up chezmoi config", "backup", path)

		removed, err := PruneBackups(a.opts.BackupDir, a.opts.KeepBackups)
		if err != nil {
			logger.Warn("failed to prune backups", "error", err)
		} else if removed > 0 {
			logger.Debug("pruned backups", "removed", removed)
		}
	}

	if err := doc.SetTheme(name, t.Palette); err != nil {
		return err
	}
	if err := doc.Save(); err != nil {
		return err
	}
	logger.Info("theme written", "config", doc.Path())

	if err := a.chezmoiApply(ctx); err != nil {
		a.notify(ctx, logger, "Theme apply failed", err.Error(), NotificationLevelError)
		return err
	}

	a.reload(ctx, logger)
	a.notify(ctx, logger, "Theme applied", name, NotificationLevelInfo)
	return nil
}

// Restore copies a backup over chezmoi.toml and runs chezmoi apply.
// The file being replaced is itself backed up first.
func (a *Applier) Restore(ctx context.Context, b Backup) error {
	id := a.newID()
	logger := a.logger.With("apply_id", id.String(), "backup", b.ID.String())

	data, err := os.ReadFile(b.Path)
	if err != nil {
		return fmt.Errorf("failed to read backup: %w", err)
	}

	path := a.opts.ChezmoiConfig
	existing, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if existing != nil && a.opts.BackupDir != "" {
		if _, err := writeBackup(a.opts.BackupDir, id, existing); err != nil {
			return err
		}
		if _, err := PruneBackups(a.opts.BackupDir, a.opts.KeepBackups); err != nil {
			logger.Warn("failed to prune backups", "error", err)
		}
	}

	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	logger.Info("backup restored", "config", path)

	if err := a.chezmoiApply(ctx); err != nil {
		return err
	}
	a.reload(ctx, logger)
	return nil
}

// loadDocument parses chezmoi.toml and returns its raw bytes.
// A missing file yields an empty document and nil bytes.
func (a *Applier) loadDocument() (*config.ChezmoiDocument, []byte, error) {
	doc, err := config.LoadChezmoi(a.opts.ChezmoiConfig)
	if errors.Is(err, config.ErrChezmoiNotFound) {
		return config.NewChezmoiDocument(a.opts.ChezmoiConfig), nil, nil
	}
	if err != nil {
		return nil, nil, err
	}

	existing, err := os.ReadFile(a.opts.ChezmoiConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read %s: %w", a.opts.ChezmoiConfig, err)
	}
	return doc, existing, nil
}

func (a *Applier) chezmoiApply(ctx context.Context) error {
	out, err := a.runner.Run(ctx, a.opts.ChezmoiBinary, "apply")
	if err != nil {
		if msg := strings.TrimSpace(string(out)); msg != "" {
			return fmt.Errorf("chezmoi apply failed: %w: %s", err, msg)
		}
		return fmt.Errorf("chezmoi apply failed: %w", err)
	}
	return nil
}

// reload runs the post-apply hooks. Failures are logged, never returned.
func (a *Applier) reload(ctx context.Context, logger *slog.Logger) {
	if a.opts.ReloadKitty {
		a.reloadKitty(ctx, logger)
	}

	for _, cmd := range a.opts.ReloadCommands {
		if out, err := a.runner.Run(ctx, "sh", "-c", cmd); err != nil {
			logger.Warn("reload command failed", "command", cmd, "error", err, "output", strings.TrimSpace(string(out)))
		}
	}
}

func (a *Applier) reloadKitty(ctx context.Context, logger *slog.Logger) {
	out, err := a.runner.Run(ctx, "pgrep", "kitty")
	if err != nil {
		// pgrep exits 1 when nothing matches.
		logger.Debug("no kitty processes found", "error", err)
		return
	}

	for _, pid := range ParsePIDs(string(out)) {
		if err := a.signal(pid, syscall.SIGUSR1); err != nil {
			logger.Warn("failed to signal kitty", "pid", pid, "error", err)
			continue
		}
		logger.Debug("signalled kitty", "pid", pid)
	}
}

func (a *Applier) notify(ctx context.Context, logger *slog.Logger, summary, body string, level NotificationLevel) {
	if a.notifier == nil {
		return
	}
	if err := a.notifier.Notify(ctx, summary, body, level); err != nil {
		logger.Warn("failed to send notification", "error", err)
	}
}

func (a *Applier) newID() ulid.ULID {
	a.idMu.Lock()
	defer a.idMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(a.now()), a.entropy)
}

// ParsePIDs extracts one PID per line from pgrep output, skipping anything unparsable.
func ParsePIDs(out string) []int {
	var pids []int
	for _, field := range strings.Fields(out) {
		pid, err := strconv.Atoi(field)
		if err != nil || pid <= 0 {
			continue
		}
		pids = append(pids, pid)
	}
	return pids
}
