package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/scott-cotton/cli"

	"github.com/simonhull/cratemeta"
)

type sectionsConfig struct {
	*cli.Command

	Offsets bool `cli:"name=offsets aliases=o desc='show the byte offset of each section'"`
}

// SectionsCommand returns the sections subcommand.
func SectionsCommand() *cli.Command {
	cfg := &sectionsConfig{}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Command, "sections").
		WithAliases("s").
		WithSynopsis("sections [opts] file").
		WithDescription("print the decoded section tree of a crate file").
		WithOpts(opts...).
		WithRun(cfg.run)
}

func (cfg *sectionsConfig) run(cc *cli.Context, args []string) error {
	args, err := cfg.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: sections takes exactly one file", cli.ErrUsage)
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	nodes, err := cratemeta.DumpSections(data, filepath.Base(args[0]))
	if err != nil {
		return err
	}
	writeNodes(cc.Out, nodes, 0, cfg.Offsets)
	return nil
}

func writeNodes(w io.Writer, nodes []*cratemeta.SectionNode, depth int, offsets bool) {
	indent := strings.Repeat("  ", depth)
	for _, n := range nodes {
		at := ""
		if offsets {
			at = fmt.Sprintf(" @%d", n.Offset)
		}
		if n.IsContainer() {
			fmt.Fprintf(w, "%s%s%s\n", indent, n.Tag, at)
			writeNodes(w, n.Children, depth+1, offsets)
			continue
		}
		fmt.Fprintf(w, "%s%s%s = %s\n", indent, n.Tag, at, n.Value)
	}
}
