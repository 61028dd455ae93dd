package main

import (
	"flag"
	"fmt"
	"strings"

	"github.com/example/doodle/internal/tools"
)

type toolsCmd struct {
	*root
	fs *flag.FlagSet
}

func parseToolsCmd(args []string, r *root) (*toolsCmd, error) {
	fs := flag.NewFlagSet("tools", flag.ExitOnError)
	c := &toolsCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

func (c *toolsCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *toolsCmd) Run() error {
	fmt.Fprintln(c.stdout, "available tools (keys select them in the window):")
	for _, info := range tools.All() {
		fmt.Fprintf(c.stdout, "  %-10s %-4s %s\n", info.Name, keyList(info.Keys), info.Summary)
	}
	fmt.Fprintf(c.stdout, "  %-10s %-4s %s\n", tools.ImageToolName, keyList([]rune{tools.ImageToolKey}), "place an image from the clipboard or -image")
	return nil
}

func keyList(keys []rune) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = string(k)
	}
	return strings.Join(parts, ",")
}
