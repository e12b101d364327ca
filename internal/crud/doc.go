// Package crud implements the entity-agnostic submission logic of the
// catalog client.
//
// One Controller is instantiated per entity kind from a Schema. A controller
// validates the kind's drafts, runs the create, update or delete mutation,
// and then asks a Refresher to refetch the kind's collection. Nothing is
// ever patched locally: after a successful submission the collection shown
// is whatever the server returned on the refetch.
//
// # Errors
//
// Outcomes are reported as distinct types so callers can tell them apart
// with errors.As:
//
//   - *ValidationError: a required field was empty; no mutation was sent
//   - *RemoteError: the mutation was rejected or failed in transit
//   - *RefetchError: the mutation succeeded but the refetch did not
//
// # Reconciliation
//
// Reconciler owns the per-kind fetch functions and the Collection each one
// feeds. Post-mutation refetches always hit the network. A failed refetch
// leaves the previous collection in place.
//
// # Album filter
//
// FilterAlbums, SelectSongArtist and SelectSongAlbum keep the song create
// form's album choices restricted to the selected artist.
package crud
