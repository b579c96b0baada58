package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/example/sketchpad/internal/appstate"
	"github.com/example/sketchpad/internal/theme"
	"github.com/example/sketchpad/internal/tool"
)

type toolsCmd struct {
	*root
	fs *flag.FlagSet
}

func (c *toolsCmd) Program() string {
	return c.subcommand("tools")
}

func (c *toolsCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parseToolsCmd(args []string, r *root) (*toolsCmd, error) {
	fs := flag.NewFlagSet("tools", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	c := &toolsCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	if err := fs.Parse(args); err != nil {
		return nil, &UsageError{of: c, err: err}
	}
	if fs.NArg() > 0 {
		return nil, &UsageError{of: c, err: errors.New("tools takes no arguments")}
	}
	return c, nil
}

func (c *toolsCmd) Run() error {
	w := tabwriter.NewWriter(c.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TOOLS")
	for _, k := range tool.Kinds() {
		fmt.Fprintf(w, "  %s\n", k)
	}
	fmt.Fprintln(w, "PEN TYPES")
	for _, p := range tool.PenTypes() {
		fmt.Fprintf(w, "  %s\n", p)
	}
	fmt.Fprintln(w, "COLOURS")
	for _, p := range appstate.Palette() {
		fmt.Fprintf(w, "  %s\t%s\n", p.Name, theme.FormatColor(p.Color))
	}
	fmt.Fprintln(w, "KEYS")
	for _, b := range appstate.Bindings() {
		fmt.Fprintf(w, "  %s\t%s\n", b.Keys, b.Help)
	}
	return w.Flush()
}
