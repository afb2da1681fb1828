package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/scott-cotton/cli"

	"github.com/simonhull/cratemeta"
)

type crateConfig struct {
	*cli.Command

	YAML    bool `cli:"name=yaml aliases=y desc='print crates as yaml'"`
	Color   bool `cli:"name=color desc='force color output'"`
	NoColor bool `cli:"name=no-color desc='disable color output'"`
}

// CrateCommand returns the crate subcommand.
func CrateCommand() *cli.Command {
	cfg := &crateConfig{}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Command, "crate").
		WithAliases("c").
		WithSynopsis("crate [opts] files...").
		WithDescription("print the name and track list of crate files").
		WithOpts(opts...).
		WithRun(cfg.run)
}

func (cfg *crateConfig) run(cc *cli.Context, args []string) error {
	args, err := cfg.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: crate requires at least one file", cli.ErrUsage)
	}
	setupColor(cc.Out, cfg.Color, cfg.NoColor)

	for i, file := range args {
		c, err := cratemeta.OpenCrate(file)
		if err != nil {
			return fmt.Errorf("error processing %s: %w", file, err)
		}

		if cfg.YAML {
			if i > 0 {
				fmt.Fprintln(cc.Out, "---")
			}
			if err := writeYAML(cc.Out, c); err != nil {
				return err
			}
			continue
		}
		writeCrate(cc.Out, c)
	}
	return nil
}

func writeCrate(w io.Writer, c *cratemeta.Crate) {
	var folders []string
	for _, f := range c.FolderPath() {
		folders = append(folders, folderColor("%s", f))
	}
	prefix := ""
	if len(folders) > 0 {
		prefix = strings.Join(folders, " / ") + " / "
	}

	fmt.Fprintf(w, "%s%s %s\n", prefix, playlistColor("%s", c.PlaylistName()), countColor("(%d)", len(c.Tracks)))
	for _, t := range c.Tracks {
		fmt.Fprintf(w, "  %s\n", t.Path)
	}
}
