package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/scott-cotton/cli"

	"github.com/simonhull/cratemeta"
	"github.com/simonhull/cratemeta/internal/config"
)

type treeConfig struct {
	*cli.Command

	ConfigFile string `cli:"name=config desc='config file (default: user config dir)'"`
	Dir        string `cli:"name=dir desc='library directory holding Subcrates/'"`
	Mount      string `cli:"name=mount desc='mount root joined to track paths'"`
	Jobs       int    `cli:"name=j desc='parallel crate decodes (default: number of CPUs)'"`
	LogLevel   string `cli:"name=log desc='log level: debug, info, warn or error'"`
	Strict     bool   `cli:"name=strict desc='fail if any crate fails to parse'"`
	Tracks     bool   `cli:"name=tracks aliases=t desc='list the tracks of each playlist'"`
	YAML       bool   `cli:"name=yaml aliases=y desc='print the library as yaml'"`
	Color      bool   `cli:"name=color desc='force color output'"`
	NoColor    bool   `cli:"name=no-color desc='disable color output'"`
}

// TreeCommand returns the tree subcommand.
func TreeCommand() *cli.Command {
	cfg := &treeConfig{}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Command, "tree").
		WithSynopsis("tree [opts] [dir]").
		WithDescription("print the folder and playlist tree built from a library's crates").
		WithOpts(opts...).
		WithRun(cfg.run)
}

// libraryDoc is the yaml form of a library.
type libraryDoc struct {
	Tracks []string           `yaml:"tracks"`
	Root   *cratemeta.Folder  `yaml:"root"`
	Failed []failedCrateEntry `yaml:"failed,omitempty"`
}

type failedCrateEntry struct {
	Source string `yaml:"source"`
	Error  string `yaml:"error"`
}

func (cfg *treeConfig) run(cc *cli.Context, args []string) error {
	args, err := cfg.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) > 1 {
		return fmt.Errorf("%w: tree takes at most one directory", cli.ErrUsage)
	}

	flags := config.Config{
		SeratoDir:   cfg.Dir,
		MountRoot:   cfg.Mount,
		Concurrency: cfg.Jobs,
		LogLevel:    cfg.LogLevel,
	}
	if len(args) == 1 {
		flags.SeratoDir = args[0]
	}
	settings, err := loadSettings(cfg.ConfigFile, flags)
	if err != nil {
		return err
	}
	if settings.SeratoDir == "" {
		return fmt.Errorf("%w: no library directory (pass -dir or set serato_dir)", cli.ErrUsage)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	lib, err := cratemeta.OpenLibrary(ctx, settings.SeratoDir, libraryOptions(settings, cfg.Strict)...)
	if err != nil {
		return err
	}

	if cfg.YAML {
		return writeYAML(cc.Out, newLibraryDoc(lib, settings.MountRoot))
	}

	setupColor(cc.Out, cfg.Color, cfg.NoColor)
	p := &treePrinter{w: cc.Out, lib: lib, mount: settings.MountRoot, tracks: cfg.Tracks}
	p.folder(lib.Root, 0)

	for _, o := range lib.Failed() {
		fmt.Fprintf(cc.Out, "%s %s: %v\n", failColor("skipped"), o.Source, o.Err)
	}
	return nil
}

func newLibraryDoc(lib *cratemeta.Library, mount string) *libraryDoc {
	doc := &libraryDoc{Root: lib.Root}
	for i := range lib.Tracks.Len() {
		doc.Tracks = append(doc.Tracks, trackPath(lib, mount, i))
	}
	for _, o := range lib.Failed() {
		doc.Failed = append(doc.Failed, failedCrateEntry{Source: o.Source, Error: o.Err.Error()})
	}
	return doc
}

// trackPath returns the track's path, resolved against mount when set.
func trackPath(lib *cratemeta.Library, mount string, idx int) string {
	if mount != "" {
		p, _ := lib.Resolve(mount, idx)
		return p
	}
	p, _ := lib.Tracks.Path(idx)
	return p
}

type treePrinter struct {
	w      io.Writer
	lib    *cratemeta.Library
	mount  string
	tracks bool
}

func (p *treePrinter) folder(f *cratemeta.Folder, depth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(p.w, "%s%s/\n", indent, folderColor("%s", f.Name))

	for _, child := range f.Children {
		switch n := child.(type) {
		case *cratemeta.Folder:
			p.folder(n, depth+1)
		case *cratemeta.Playlist:
			p.playlist(n, depth+1)
		}
	}
}

func (p *treePrinter) playlist(pl *cratemeta.Playlist, depth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(p.w, "%s%s %s\n", indent, playlistColor("%s", pl.Name), countColor("(%d)", len(pl.Tracks)))

	if !p.tracks {
		return
	}
	for _, idx := range pl.Tracks {
		fmt.Fprintf(p.w, "%s  %s\n", indent, trackPath(p.lib, p.mount, idx))
	}
}
