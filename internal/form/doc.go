// Package form holds the local, unpersisted form state of the catalog client.
//
// Each entity kind owns one State with two drafts:
//
//   - the create draft, initially all-empty, reset after a successful add
//   - the edit draft, nil until BeginEdit, cleared by CancelEdit or a
//     successful save
//
// No validation happens here. Required-field checks belong to the
// submission controllers in package crud.
package form
