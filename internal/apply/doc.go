// Package apply writes a theme into chezmoi.toml and propagates it: it
// backs up the previous file, runs "chezmoi apply", reloads terminals and
// optionally sends a desktop notification.
package apply
