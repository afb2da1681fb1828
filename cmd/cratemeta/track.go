package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/scott-cotton/cli"

	"github.com/simonhull/cratemeta"
	"github.com/simonhull/cratemeta/internal/config"
)

type trackConfig struct {
	*cli.Command

	ConfigFile string `cli:"name=config desc='config file (default: user config dir)'"`
	Jobs       int    `cli:"name=j desc='parallel track reads (default: number of CPUs)'"`
	LogLevel   string `cli:"name=log desc='log level: debug, info, warn or error'"`
	Strict     bool   `cli:"name=strict desc='fail on the first payload that does not decode'"`
	Grid       bool   `cli:"name=grid aliases=g desc='list every beat grid marker'"`
	YAML       bool   `cli:"name=yaml aliases=y desc='print tracks as yaml'"`
	Color      bool   `cli:"name=color desc='force color output'"`
	NoColor    bool   `cli:"name=no-color desc='disable color output'"`
}

// TrackCommand returns the track subcommand.
func TrackCommand() *cli.Command {
	cfg := &trackConfig{}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Command, "track").
		WithAliases("t").
		WithSynopsis("track [opts] files...").
		WithDescription("print the cue points, loops and beat grid stored in audio files").
		WithOpts(opts...).
		WithRun(cfg.run)
}

// trackDoc adds warnings to the yaml form of a track.
type trackDoc struct {
	cratemeta.Track `yaml:",inline"`
	Problems        []string `yaml:"warnings,omitempty"`
}

func (cfg *trackConfig) run(cc *cli.Context, args []string) error {
	args, err := cfg.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: track requires at least one file", cli.ErrUsage)
	}

	settings, err := loadSettings(cfg.ConfigFile, config.Config{
		Concurrency: cfg.Jobs,
		LogLevel:    cfg.LogLevel,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	tracks, err := cratemeta.OpenTracksWith(ctx, args, libraryOptions(settings, cfg.Strict)...)
	if err != nil {
		return err
	}

	if cfg.YAML {
		docs := make([]trackDoc, len(tracks))
		for i, t := range tracks {
			docs[i].Track = *t
			for _, w := range t.Warnings {
				docs[i].Problems = append(docs[i].Problems, w.String())
			}
		}
		return writeYAML(cc.Out, docs)
	}

	setupColor(cc.Out, cfg.Color, cfg.NoColor)
	for i, t := range tracks {
		if i > 0 {
			fmt.Fprintln(cc.Out)
		}
		writeTrack(cc.Out, t, cfg.Grid)
	}
	return nil
}

func writeTrack(w io.Writer, t *cratemeta.Track, grid bool) {
	fmt.Fprintln(w, playlistColor("%s", t.Path))
	if t.Title != "" || t.Artist != "" {
		fmt.Fprintf(w, "  %s - %s\n", t.Artist, t.Title)
	}
	if t.Key != "" {
		fmt.Fprintf(w, "  key:   %s\n", t.Key)
	}
	if t.BPM != "" {
		lock := ""
		if t.BPMLock {
			lock = " (locked)"
		}
		fmt.Fprintf(w, "  bpm:   %s%s\n", t.BPM, lock)
	}
	if t.Color != nil {
		c := t.Color
		fmt.Fprintf(w, "  color: %s\n", color.RGB(int(c.R), int(c.G), int(c.B)).Sprint(c.Hex()))
	}

	for _, cue := range t.CuePoints {
		swatch := color.RGB(int(cue.Color.R), int(cue.Color.G), int(cue.Color.B)).SprintfFunc()
		fmt.Fprintf(w, "  cue %d  %s  %s %s\n", cue.Index, formatMillis(cue.Position), swatch("%s", cue.Color.Hex()), cue.Name)
	}
	for _, l := range t.Loops {
		lock := ""
		if l.Locked {
			lock = " locked"
		}
		fmt.Fprintf(w, "  loop %d %s-%s%s %s\n", l.Index, formatMillis(l.Start), formatMillis(l.End), lock, l.Name)
	}

	if n := len(t.BeatGrid); n > 0 {
		last := t.BeatGrid[n-1]
		bpm := float32(0)
		if last.BPM != nil {
			bpm = *last.BPM
		}
		fmt.Fprintf(w, "  grid:  %s, last %.2f bpm\n", countColor("%d markers", n), bpm)
		if grid {
			for _, m := range t.BeatGrid {
				if m.IsTerminal() {
					fmt.Fprintf(w, "    %9.3fs  %.2f bpm\n", m.Position, *m.BPM)
				} else {
					fmt.Fprintf(w, "    %9.3fs  %d beats\n", m.Position, *m.BeatsToNext)
				}
			}
		}
	}

	writeWarnings(w, t.Warnings)
}

// formatMillis renders a position as m:ss.mmm.
func formatMillis(ms uint32) string {
	return fmt.Sprintf("%d:%02d.%03d", ms/60000, ms/1000%60, ms%1000)
}
