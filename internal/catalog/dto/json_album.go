package dto

import "github.com/handiism/music-catalog/internal/model"

// JSONAlbum is an album as selected by the albums query.
type JSONAlbum struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	ReleaseDate *Date          `json:"releaseDate"`
	Artist      *JSONArtistRef `json:"artist"`
}

// JSONAlbumRef is the nested album selection on songs.
type JSONAlbumRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ToAlbum converts JSONAlbum to a model.Album.
func (ja *JSONAlbum) ToAlbum() model.Album {
	var releaseDate string
	if ja.ReleaseDate != nil {
		releaseDate = ja.ReleaseDate.Value
	}
	return model.Album{
		ID:          ja.ID,
		Name:        ja.Name,
		ReleaseDate: releaseDate,
		Artist:      ja.Artist.ToRef(),
	}
}

// ToRef converts a nested album selection.
func (jr *JSONAlbumRef) ToRef() model.AlbumRef {
	if jr == nil {
		return model.AlbumRef{}
	}
	return model.AlbumRef{ID: jr.ID, Name: jr.Name}
}

// AlbumsData is the data member of the albums query.
type AlbumsData struct {
	Albums []JSONAlbum `json:"albums"`
}

// ToAlbums converts the query result, preserving server order.
func (d *AlbumsData) ToAlbums() []model.Album {
	albums := make([]model.Album, 0, len(d.Albums))
	for i := range d.Albums {
		albums = append(albums, d.Albums[i].ToAlbum())
	}
	return albums
}

// AlbumPayload wraps the album returned by create/update mutations.
type AlbumPayload struct {
	Album *JSONAlbum `json:"album"`
}

// CreateAlbumData is the data member of createAlbum.
type CreateAlbumData struct {
	CreateAlbum *AlbumPayload `json:"createAlbum"`
}

// UpdateAlbumData is the data member of updateAlbum.
type UpdateAlbumData struct {
	UpdateAlbum *AlbumPayload `json:"updateAlbum"`
}

// DeleteAlbumData is the data member of deleteAlbum.
type DeleteAlbumData struct {
	DeleteAlbum *DeletePayload `json:"deleteAlbum"`
}
