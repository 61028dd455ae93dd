package main

import (
	"bufio"
	"flag"
	"fmt"
	"strings"

	"github.com/example/doodle/internal/script"
)

type commandList []string

func (c *commandList) String() string {
	return strings.Join(*c, ";")
}

func (c *commandList) Set(value string) error {
	*c = append(*c, value)
	return nil
}

type interactiveCmd struct {
	*root
	fs     *flag.FlagSet
	width  int
	height int
	execs  commandList
}

func parseInteractiveCmd(args []string, r *root) (*interactiveCmd, error) {
	fs := flag.NewFlagSet("interactive", flag.ExitOnError)
	c := &interactiveCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	fs.IntVar(&c.width, "width", 0, "canvas width in pixels")
	fs.IntVar(&c.height, "height", 0, "canvas height in pixels")
	fs.Var(&c.execs, "e", "execute command in immediate mode (may be specified multiple times)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *interactiveCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

// Run reads commands until exit. With -e the given commands run and the
// first error ends the session.
func (c *interactiveCmd) Run() error {
	opts, err := c.boardOptions(c.width, c.height, "")
	if err != nil {
		return err
	}
	runner := script.New(c.stdout, opts...)
	runner.SetLogger(c.logger)
	defer runner.Close()

	if len(c.execs) > 0 {
		for _, line := range c.execs {
			if err := runner.Exec(line); err != nil {
				return err
			}
		}
		return nil
	}

	fmt.Fprintln(c.stdout, "Enter commands (type 'help' for a list, 'exit' to quit)")
	scanner := bufio.NewScanner(c.stdin)
	for {
		fmt.Fprint(c.stdout, "> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "exit", "quit":
			return nil
		case "help":
			for _, u := range script.Commands() {
				fmt.Fprintln(c.stdout, "  "+u)
			}
			continue
		}
		if err := runner.Exec(line); err != nil {
			fmt.Fprintln(c.stderr, err)
		}
	}
	return scanner.Err()
}
