// Package cratemeta reads a DJ library's crates and per-track markers and
// turns them into a playlist tree.
//
// A Serato library keeps each crate as a file under Subcrates/. The crate's
// filename encodes its place in the folder hierarchy ("House%%Deep%%Late.crate"
// is the playlist "Late" inside folder "Deep" inside folder "House"), and its
// body lists the tracks it contains. Cue points, loops and the beat grid are
// stored inside each audio file as embedded binary payloads.
//
// # Quick Start
//
// Loading a whole library:
//
//	lib, err := cratemeta.OpenLibrary(ctx, "/Volumes/USB/_Serato_")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	lib.Root.Walk(func(path []string, n cratemeta.PlaylistNode) bool {
//		fmt.Println(strings.Join(append(path, n.NodeName()), " / "))
//		return true
//	})
//
// Reading markers from one track:
//
//	track, err := cratemeta.OpenTrack("Music/song.mp3")
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, cue := range track.CuePoints {
//		fmt.Printf("%d %dms %s\n", cue.Index, cue.Position, cue.Name)
//	}
//
// # Decoders
//
// Each format has its own decoder, usable on raw bytes:
//
//   - ParseCrate: a crate file's nested tag/length/value sections
//   - DecodeMarkers2: the base64-wrapped cue, loop and color payload
//   - DecodeBeatGrid: the fixed-width beat grid payload
//   - BuildTree: crates into a folder/playlist tree with a shared track index
//
// # Error Handling
//
// Decoders return typed errors that can be matched with errors.As:
//
//	var trunc *cratemeta.TruncatedSectionError
//	if errors.As(err, &trunc) {
//		log.Printf("%s is cut short at offset %d", trunc.Path, trunc.Offset)
//	}
//
// Library and track loading degrade instead of failing. A crate that does not
// parse is recorded in Library.Outcomes and skipped; a marker payload that
// does not decode becomes a Warning on its Track while the other payloads
// still apply. WithStrictParsing turns both into errors.
//
// # Logging
//
// Pass a *slog.Logger with WithLogger to see skipped crates and unknown
// marker elements. By default nothing is logged.
package cratemeta
