package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/simonhull/cratemeta"
)

// VersionCommand returns the version subcommand.
func VersionCommand() *cli.Command {
	return cli.NewCommand("version").
		WithSynopsis("version").
		WithDescription("print build information").
		WithRun(func(cc *cli.Context, args []string) error {
			if len(args) != 0 {
				return fmt.Errorf("%w: version takes no arguments", cli.ErrUsage)
			}
			info := cratemeta.GetVersionInfo()
			fmt.Fprintf(cc.Out, "cratemeta %s\n", info.Version)
			fmt.Fprintf(cc.Out, "  commit: %s\n", info.GitCommit)
			fmt.Fprintf(cc.Out, "  built:  %s\n", info.BuildTime)
			fmt.Fprintf(cc.Out, "  go:     %s\n", info.GoVersion)
			return nil
		})
}
