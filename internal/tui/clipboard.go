package tui

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/cheztheme/internal/theme"
)

// copyText copies text to the system clipboard.
func copyText(text, configured string) error {
	cmd := detectClipboardCommand(configured)
	if cmd == "" {
		return fmt.Errorf("no clipboard command available")
	}

	parts := strings.Fields(cmd)
	if len(parts) == 0 {
		return fmt.Errorf("invalid clipboard command")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	c := exec.CommandContext(ctx, parts[0], parts[1:]...)
	c.Stdin = strings.NewReader(text)

	return c.Run()
}

// detectClipboardCommand returns the clipboard command to use.
func detectClipboardCommand(configured string) string {
	if configured != "" {
		return configured
	}

	// Wayland
	if _, err := exec.LookPath("wl-copy"); err == nil {
		return "wl-copy"
	}

	// X11
	if _, err := exec.LookPath("xclip"); err == nil {
		return "xclip -selection clipboard"
	}

	if _, err := exec.LookPath("xsel"); err == nil {
		return "xsel --clipboard --input"
	}

	return ""
}

// schemeYAML renders d as a base16 scheme file that can be saved as a custom theme.
func schemeYAML(d theme.Descriptor) (string, error) {
	data, err := yaml.Marshal(theme.Theme{
		System:  "base16",
		Name:    d.Name,
		Palette: d.Palette,
	})
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// descriptorJSON renders d as the JSON shown by "cheztheme list --format json".
func descriptorJSON(d theme.Descriptor) (string, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
