// Package library wires the catalog client's pieces into one session.
//
// # Library
//
// The Library owns:
//
//  1. The three rendered collections (artists, albums, songs)
//  2. One submission controller per entity kind
//  3. The reconciler that refetches a collection after a mutation
//
// # Basic Usage
//
//	lib, err := library.Open(settings, func(event library.Event) {
//	    fmt.Println(event.Message)
//	}, library.WithLogger(logger))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := lib.Load(ctx); err != nil {
//	    // sections that failed render an error state
//	}
//
//	lib.Controller(model.KindArtist).Form().SetField("firstName", "Ada")
//	lib.Controller(model.KindArtist).Form().SetField("lastName", "Lovelace")
//	err = lib.Add(ctx, model.KindArtist)
//
// # Events
//
// Outcomes are reported through a callback that receives Event:
//
//	type Event struct {
//	    Message string
//	    Level   Level // Info, Verbose, Warning, Error, Success
//	}
package library
