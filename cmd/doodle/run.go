package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/example/doodle/internal/script"
)

type runCmd struct {
	*root
	fs     *flag.FlagSet
	width  int
	height int
	tool   string
	output string
}

func parseRunCmd(args []string, r *root) (*runCmd, error) {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	c := &runCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	fs.IntVar(&c.width, "width", 0, "canvas width in pixels")
	fs.IntVar(&c.height, "height", 0, "canvas height in pixels")
	fs.StringVar(&c.tool, "tool", "", "initial tool")
	fs.StringVar(&c.output, "o", "", "write the final drawing as PNG to this file")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() < 1 {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

func (c *runCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

// Run executes each script in turn on one board. "-" reads stdin.
func (c *runCmd) Run() error {
	opts, err := c.boardOptions(c.width, c.height, c.tool)
	if err != nil {
		return err
	}
	runner := script.New(c.stdout, opts...)
	runner.SetLogger(c.logger)
	defer runner.Close()

	for _, name := range c.fs.Args() {
		if err := c.runFile(runner, name); err != nil {
			return err
		}
	}
	if c.output == "" {
		return nil
	}
	if err := runner.Exec("export " + c.output); err != nil {
		return err
	}
	c.notifier.Export(c.output)
	return nil
}

func (c *runCmd) runFile(runner *script.Runner, name string) error {
	var in io.Reader = c.stdin
	if name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return fmt.Errorf("open script: %w", err)
		}
		defer f.Close()
		in = f
	}
	if err := runner.Run(in); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}
