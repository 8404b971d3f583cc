package output

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/jmylchreest/cheztheme/internal/panel"
)

// DmenuFormatter formats entries for dmenu/rofi/fuzzel pickers.
type DmenuFormatter struct {
	opts     FormatterOptions
	template *template.Template
}

// NewDmenuFormatter creates a new dmenu formatter.
func NewDmenuFormatter(opts FormatterOptions) *DmenuFormatter {
	f := &DmenuFormatter{opts: opts}

	if opts.Template != "" {
		tmpl, err := template.New("dmenu").Funcs(templateFuncs()).Parse(opts.Template)
		if err == nil {
			f.template = tmpl
		}
	}

	return f
}

// Format writes one line per entry. The active theme is marked with "*".
func (f *DmenuFormatter) Format(w io.Writer, entries []panel.Entry) error {
	for i, e := range entries {
		if _, err := fmt.Fprintln(w, f.formatLine(i+1, e)); err != nil {
			return err
		}
	}
	return nil
}

func (f *DmenuFormatter) formatLine(index int, e panel.Entry) string {
	if f.template != nil {
		var buf strings.Builder
		data := templateData{Index: index, Entry: e}
		if err := f.template.Execute(&buf, data); err == nil {
			return buf.String()
		}
	}

	line := e.Name
	if f.opts.ShowKind {
		line += " (" + string(e.Kind) + ")"
	}
	if e.Current {
		line = "* " + line
	}
	return line
}

// templateData provides data for custom templates.
type templateData struct {
	Index int
	panel.Entry
}

// templateFuncs returns template helper functions.
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"upper": strings.ToUpper,
		"truncate": func(s string, maxLen int) string {
			if maxLen <= 0 || len(s) <= maxLen {
				return s
			}
			if maxLen <= 3 {
				return s[:maxLen]
			}
			return s[:maxLen-3] + "..."
		},
		"current": func(current bool) string {
			if current {
				return "*"
			}
			return " "
		},
	}
}
