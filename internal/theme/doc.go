// Package theme loads base16 color schemes. Presets are embedded in the
// binary; custom schemes are read from a directory of YAML files.
package theme
