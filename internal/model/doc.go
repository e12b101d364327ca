// Package model defines the catalog entities shared by every other package.
//
// # Entities
//
// The catalog is a two level hierarchy, Artist 1-* Album 1-* Song:
//
//	artist := model.Artist{ID: "1", FirstName: "Ada", LastName: "Lovelace"}
//	album := model.Album{ID: "42", Name: "Notes", ReleaseDate: "1843-01-01", Artist: artist.Ref()}
//	song := model.Song{ID: "7", Title: "Engine", Album: album.Ref(), Artist: artist.Ref()}
//
// Identifiers are opaque strings assigned by the server. The client never
// mutates these values directly; it proposes mutations and re-reads the
// authoritative lists afterwards.
//
// # Kinds and fields
//
// Kind names the entity type and the Field* constants name the editable
// fields. Field names match the GraphQL argument names exactly.
//
// # Dates
//
// Album release dates travel as YYYY-MM-DD strings. ParseDate and
// NormalizeDate accept a few other common layouts.
package model
