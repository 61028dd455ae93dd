package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/example/doodle/internal/style"
	"github.com/example/doodle/internal/theme"
)

// Canvas holds the [canvas] section. Zero values mean "use the default".
type Canvas struct {
	Width   int
	Height  int
	History int
}

// Tools holds the [tools] section.
type Tools struct {
	PolygonSides int
	Default      string
}

// Notify holds notification settings.
type Notify struct {
	Export bool
	Copy   bool
}

// Config holds the application configuration.
type Config struct {
	Theme     string
	ExportDir string
	Canvas    Canvas
	Style     style.Partial
	Tools     Tools
	Notify    Notify
	Themes    map[string]*theme.Theme
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		Theme:  "", // empty falls back to env, then the default theme
		Themes: make(map[string]*theme.Theme),
	}
}

// ResolveTheme returns the named theme from the config's own [theme.NAME]
// sections, falling back to l.
func (c *Config) ResolveTheme(name string, l *theme.Loader) (*theme.Theme, error) {
	if t, ok := c.Themes[name]; ok {
		return t, nil
	}
	return l.Load(name)
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	if c.ExportDir != "" {
		fmt.Fprintf(&sb, "export_dir = %s\n", c.ExportDir)
	}
	sb.WriteString("\n")

	if c.Canvas != (Canvas{}) {
		sb.WriteString("[canvas]\n")
		writeInt(&sb, "width", c.Canvas.Width)
		writeInt(&sb, "height", c.Canvas.Height)
		writeInt(&sb, "history", c.Canvas.History)
		sb.WriteString("\n")
	}

	if lines := styleLines(c.Style); len(lines) > 0 {
		sb.WriteString("[style]\n")
		for _, l := range lines {
			sb.WriteString(l)
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	if c.Tools != (Tools{}) {
		sb.WriteString("[tools]\n")
		writeInt(&sb, "polygon_sides", c.Tools.PolygonSides)
		if c.Tools.Default != "" {
			fmt.Fprintf(&sb, "default = %s\n", c.Tools.Default)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "export = %v\n", c.Notify.Export)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	sb.WriteString("\n")

	// sorted for deterministic output
	var themeNames []string
	for name := range c.Themes {
		themeNames = append(themeNames, name)
	}
	sort.Strings(themeNames)

	for _, name := range themeNames {
		t := c.Themes[name]
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		fmt.Fprintf(&sb, "Name: %s\n", t.Name)
		for _, f := range theme.Fields(t) {
			fmt.Fprintf(&sb, "%s: %s\n", f.Name, style.FormatColor(f.Color))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func writeInt(sb *strings.Builder, key string, v int) {
	if v != 0 {
		fmt.Fprintf(sb, "%s = %d\n", key, v)
	}
}

func styleLines(p style.Partial) []string {
	var out []string
	if p.StrokeColor != nil {
		out = append(out, "stroke = "+style.FormatColor(*p.StrokeColor))
	}
	if p.FillColor != nil {
		out = append(out, "fill = "+style.FormatColor(*p.FillColor))
	}
	if p.LineWidth != nil {
		out = append(out, fmt.Sprintf("width = %g", *p.LineWidth))
	}
	if p.Alpha != nil {
		out = append(out, fmt.Sprintf("alpha = %g", *p.Alpha))
	}
	if p.Font != nil {
		out = append(out, "font = "+p.Font.String())
	}
	if p.LineCap != nil {
		out = append(out, "cap = "+p.LineCap.String())
	}
	if p.LineJoin != nil {
		out = append(out, "join = "+p.LineJoin.String())
	}
	if p.MiterLimit != nil {
		out = append(out, fmt.Sprintf("miter = %g", *p.MiterLimit))
	}
	if p.Composite != nil {
		out = append(out, "composite = "+p.Composite.String())
	}
	return out
}
