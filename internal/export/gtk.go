package export

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/jmylchreest/cheztheme/internal/palette"
)

// RenderGTK formats properties as a GTK stylesheet. Every --color-<slot>
// property also becomes an @define-color <slot> rule so widget CSS can
// reference @base00 and friends. Properties outside the palette keep their
// custom property form only.
func RenderGTK(props map[string]string) string {
	names := slices.Sorted(maps.Keys(props))

	var b strings.Builder
	for _, name := range names {
		slot, ok := strings.CutPrefix(name, palette.PropertyPrefix)
		if !ok {
			continue
		}
		fields := strings.Fields(props[name])
		if len(fields) != 3 {
			continue
		}
		fmt.Fprintf(&b, "@define-color %s rgb(%s);\n", slot, strings.Join(fields, ","))
	}

	b.WriteString(":root {\n")
	for _, name := range names {
		fmt.Fprintf(&b, "  %s: %s;\n", name, props[name])
	}
	b.WriteString("}\n")
	return b.String()
}
