// Package palette defines the base16 palette and converts its hex colors into
// the "R G B" triplets the display layer reads from --color-* properties.
package palette

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Slots lists the 16 base16 slot names in canonical order.
var Slots = []string{
	"base00", "base01", "base02", "base03",
	"base04", "base05", "base06", "base07",
	"base08", "base09", "base0A", "base0B",
	"base0C", "base0D", "base0E", "base0F",
}

// hexRegex matches a 6-digit hex color with an optional leading '#'.
var hexRegex = regexp.MustCompile(`(?i)^#?([0-9a-f]{2})([0-9a-f]{2})([0-9a-f]{2})$`)

// Palette is a base16 palette. Every slot holds a "#rrggbb" string.
type Palette struct {
	Base00 string `yaml:"base00" toml:"base00" json:"base00"`
	Base01 string `yaml:"base01" toml:"base01" json:"base01"`
	Base02 string `yaml:"base02" toml:"base02" json:"base02"`
	Base03 string `yaml:"base03" toml:"base03" json:"base03"`
	Base04 string `yaml:"base04" toml:"base04" json:"base04"`
	Base05 string `yaml:"base05" toml:"base05" json:"base05"`
	Base06 string `yaml:"base06" toml:"base06" json:"base06"`
	Base07 string `yaml:"base07" toml:"base07" json:"base07"`
	Base08 string `yaml:"base08" toml:"base08" json:"base08"`
	Base09 string `yaml:"base09" toml:"base09" json:"base09"`
	Base0A string `yaml:"base0A" toml:"base0A" json:"base0A"`
	Base0B string `yaml:"base0B" toml:"base0B" json:"base0B"`
	Base0C string `yaml:"base0C" toml:"base0C" json:"base0C"`
	Base0D string `yaml:"base0D" toml:"base0D" json:"base0D"`
	Base0E string `yaml:"base0E" toml:"base0E" json:"base0E"`
	Base0F string `yaml:"base0F" toml:"base0F" json:"base0F"`
}

// Config is the active theme as recorded in the chezmoi configuration.
type Config struct {
	ThemeName string  `json:"themeName"`
	Theme     Palette `json:"theme"`
}

// Colors returns the slot values in canonical order.
func (p Palette) Colors() []string {
	return []string{
		p.Base00, p.Base01, p.Base02, p.Base03,
		p.Base04, p.Base05, p.Base06, p.Base07,
		p.Base08, p.Base09, p.Base0A, p.Base0B,
		p.Base0C, p.Base0D, p.Base0E, p.Base0F,
	}
}

// Get returns the value of a slot by name.
func (p Palette) Get(slot string) (string, bool) {
	ptr := (&p).field(slot)
	if ptr == nil {
		return "", false
	}
	return *ptr, true
}

// Set assigns a slot by name. It returns false for unknown slots.
func (p *Palette) Set(slot, value string) bool {
	ptr := p.field(slot)
	if ptr == nil {
		return false
	}
	*ptr = value
	return true
}

func (p *Palette) field(slot string) *string {
	switch slot {
	case "base00":
		return &p.Base00
	case "base01":
		return &p.Base01
	case "base02":
		return &p.Base02
	case "base03":
		return &p.Base03
	case "base04":
		return &p.Base04
	case "base05":
		return &p.Base05
	case "base06":
		return &p.Base06
	case "base07":
		return &p.Base07
	case "base08":
		return &p.Base08
	case "base09":
		return &p.Base09
	case "base0A":
		return &p.Base0A
	case "base0B":
		return &p.Base0B
	case "base0C":
		return &p.Base0C
	case "base0D":
		return &p.Base0D
	case "base0E":
		return &p.Base0E
	case "base0F":
		return &p.Base0F
	default:
		return nil
	}
}

// Validate reports every slot whose value is not a 6-digit hex color.
func (p Palette) Validate() error {
	var bad []string
	for i, value := range p.Colors() {
		if _, ok := HexToRGB(value); !ok {
			bad = append(bad, fmt.Sprintf("%s=%q", Slots[i], value))
		}
	}
	if len(bad) > 0 {
		return fmt.Errorf("invalid palette colors: %s", strings.Join(bad, ", "))
	}
	return nil
}

// ParseHex splits a hex color into its components.
func ParseHex(hex string) (r, g, b uint8, ok bool) {
	if len(hex) < 4 {
		return 0, 0, 0, false
	}
	m := hexRegex.FindStringSubmatch(hex)
	if m == nil {
		return 0, 0, 0, false
	}
	var c [3]uint8
	for i := range c {
		v, err := strconv.ParseUint(m[i+1], 16, 8)
		if err != nil {
			return 0, 0, 0, false
		}
		c[i] = uint8(v)
	}
	return c[0], c[1], c[2], true
}

// HexToRGB converts "#rrggbb" (or "rrggbb") into "r g b" with decimal
// components. Shorthand and alpha forms are rejected.
func HexToRGB(hex string) (string, bool) {
	r, g, b, ok := ParseHex(hex)
	if !ok {
		return "", false
	}
	return fmt.Sprintf("%d %d %d", r, g, b), true
}

// PropertyPrefix starts every display property name.
const PropertyPrefix = "--color-"

// PropertyName returns the display property for a slot, e.g. "--color-base00".
func PropertyName(slot string) string {
	return PropertyPrefix + slot
}
