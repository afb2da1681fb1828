package main

import (
	"context"

	"github.com/scott-cotton/cli"

	"github.com/simonhull/cratemeta"
)

const usageText = `cratemeta - inspect a DJ library's crates and track markers

Settings are read from cratemeta.yaml under the user config directory
(serato_dir, mount_root, concurrency, log_level). Flags override them.

Examples:
  cratemeta tree -dir /Volumes/USB/_Serato_
  cratemeta tree -tracks -mount /Volumes/USB
  cratemeta crate "Subcrates/House%%Deep.crate"
  cratemeta track -yaml Music/song.mp3
  cratemeta sections Subcrates/Broken.crate`

func main() {
	cli.MainContext(context.Background(), MainCommand())
}

// MainCommand returns the root command.
func MainCommand() *cli.Command {
	return cli.NewCommand("cratemeta").
		WithSynopsis("cratemeta <command> [opts] [args]").
		WithDescription(usageText + "\n\nversion " + cratemeta.Version).
		WithSubs(
			TreeCommand(),
			CrateCommand(),
			TrackCommand(),
			SectionsCommand(),
			VersionCommand(),
		)
}
