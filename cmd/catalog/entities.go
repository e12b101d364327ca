package main

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/handiism/music-catalog/internal/crud"
	"github.com/handiism/music-catalog/internal/library"
	"github.com/handiism/music-catalog/internal/model"
)

// fieldFlags maps draft fields onto command-line flag names.
var fieldFlags = map[string]string{
	model.FieldFirstName:   "first-name",
	model.FieldLastName:    "last-name",
	model.FieldArtistID:    "artist-id",
	model.FieldAlbumID:     "album-id",
	model.FieldName:        "name",
	model.FieldReleaseDate: "release-date",
	model.FieldTitle:       "title",
}

var fieldUsage = map[string]string{
	model.FieldFirstName:   "artist first name",
	model.FieldLastName:    "artist last name",
	model.FieldArtistID:    "id of the artist",
	model.FieldAlbumID:     "id of an album by the artist",
	model.FieldName:        "album name",
	model.FieldReleaseDate: "release date (YYYY-MM-DD)",
	model.FieldTitle:       "song title",
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func newEntityCmd(a *app, kind model.Kind) *cobra.Command {
	cmd := &cobra.Command{
		Use:     kind.Plural(),
		Aliases: []string{kind.String()},
		Short:   fmt.Sprintf("List, add, update and delete %s", kind.Plural()),
	}
	cmd.AddCommand(
		newListCmd(a, kind),
		newAddCmd(a, kind),
		newUpdateCmd(a, kind),
		newDeleteCmd(a, kind),
	)
	return cmd
}

func newListCmd(a *app, kind model.Kind) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: fmt.Sprintf("List all %s", kind.Plural()),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			lib, err := a.open(a.printEvent)
			if err != nil {
				return err
			}
			if err := lib.Load(cmd.Context(), kind); err != nil {
				return err
			}
			if asJSON {
				return writeJSON(a, lib, kind)
			}
			fmt.Fprintln(a.out, renderTable(lib, kind))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}

func newAddCmd(a *app, kind model.Kind) *cobra.Command {
	schema, _ := crud.SchemaFor(kind)
	values := make(map[string]*string, len(schema.CreateFields))

	cmd := &cobra.Command{
		Use:   "add",
		Short: fmt.Sprintf("Add a new %s", kind),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			lib, err := a.open(a.printEvent)
			if err != nil {
				return err
			}
			if err := lib.Load(cmd.Context(), createDeps(kind)...); err != nil {
				return err
			}
			if err := fillCreateDraft(lib, schema, values); err != nil {
				return err
			}
			return lib.Add(cmd.Context(), kind)
		},
	}
	for _, field := range schema.CreateFields {
		values[field] = cmd.Flags().String(fieldFlags[field], "", fieldUsage[field])
	}
	return cmd
}

// createDeps lists the collections an add of kind reads. Songs check their
// album against the loaded albums.
func createDeps(kind model.Kind) []model.Kind {
	if kind == model.KindSong {
		return []model.Kind{model.KindSong, model.KindAlbum}
	}
	return []model.Kind{kind}
}

// fillCreateDraft copies flag values into the create draft. Song relations
// go through the album filter so an album by another artist is refused.
func fillCreateDraft(lib *library.Library, schema crud.Schema, values map[string]*string) error {
	form := lib.Controller(schema.Kind).Form()
	for _, field := range schema.CreateFields {
		v := *values[field]
		var err error
		switch {
		case schema.Kind == model.KindSong && field == model.FieldArtistID:
			err = lib.SelectSongArtist(v)
		case schema.Kind == model.KindSong && field == model.FieldAlbumID:
			err = lib.SelectSongAlbum(v)
		default:
			err = form.SetNewField(field, v)
		}
		if err != nil {
			return fmt.Errorf("--%s: %w", fieldFlags[field], err)
		}
	}
	return nil
}

func newUpdateCmd(a *app, kind model.Kind) *cobra.Command {
	schema, _ := crud.SchemaFor(kind)
	values := make(map[string]*string, len(schema.EditFields))

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: fmt.Sprintf("Update an existing %s; unset flags keep their current value", kind),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := a.open(a.printEvent)
			if err != nil {
				return err
			}
			if err := lib.Load(cmd.Context(), kind); err != nil {
				return err
			}
			if err := lib.BeginEdit(kind, args[0]); err != nil {
				return err
			}
			form := lib.Controller(kind).Form()
			for _, field := range schema.EditFields {
				if cmd.Flags().Changed(fieldFlags[field]) {
					if err := form.SetEditField(field, *values[field]); err != nil {
						return err
					}
				}
			}
			return lib.Save(cmd.Context(), kind)
		},
	}
	for _, field := range schema.EditFields {
		values[field] = cmd.Flags().String(fieldFlags[field], "", fieldUsage[field])
	}
	return cmd
}

func newDeleteCmd(a *app, kind model.Kind) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   fmt.Sprintf("Delete a %s", kind),
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := a.open(a.printEvent)
			if err != nil {
				return err
			}
			return lib.Remove(cmd.Context(), kind, args[0])
		},
	}
}

func renderTable(lib *library.Library, kind model.Kind) *table.Table {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	switch kind {
	case model.KindArtist:
		t.Headers("ID", "FIRST NAME", "LAST NAME")
		for _, a := range lib.Artists() {
			t.Row(a.ID, a.FirstName, a.LastName)
		}
	case model.KindAlbum:
		t.Headers("ID", "NAME", "RELEASED", "ARTIST")
		for _, a := range lib.Albums() {
			t.Row(a.ID, a.Name, a.ReleaseDate, a.Artist.FirstName)
		}
	case model.KindSong:
		t.Headers("ID", "TITLE", "ALBUM", "ARTIST")
		for _, s := range lib.Songs() {
			t.Row(s.ID, s.Title, s.Album.Name, s.Artist.FirstName)
		}
	}
	return t
}

func writeJSON(a *app, lib *library.Library, kind model.Kind) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	switch kind {
	case model.KindArtist:
		return enc.Encode(lib.Artists())
	case model.KindAlbum:
		return enc.Encode(lib.Albums())
	default:
		return enc.Encode(lib.Songs())
	}
}
