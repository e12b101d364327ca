package dto

import "github.com/handiism/music-catalog/internal/model"

// JSONArtist is an artist as selected by the artists query and the artist
// mutations.
type JSONArtist struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// JSONArtistRef is the nested artist selection on albums and songs.
type JSONArtistRef struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
}

// ToArtist converts JSONArtist to a model.Artist.
func (ja *JSONArtist) ToArtist() model.Artist {
	return model.Artist{ID: ja.ID, FirstName: ja.FirstName, LastName: ja.LastName}
}

// ToRef converts a nested artist selection. A nil selection yields the zero
// reference.
func (jr *JSONArtistRef) ToRef() model.ArtistRef {
	if jr == nil {
		return model.ArtistRef{}
	}
	return model.ArtistRef{ID: jr.ID, FirstName: jr.FirstName}
}

// ArtistsData is the data member of the artists query.
type ArtistsData struct {
	Artists []JSONArtist `json:"artists"`
}

// ToArtists converts the query result, preserving server order.
func (d *ArtistsData) ToArtists() []model.Artist {
	artists := make([]model.Artist, 0, len(d.Artists))
	for i := range d.Artists {
		artists = append(artists, d.Artists[i].ToArtist())
	}
	return artists
}

// ArtistPayload wraps the artist returned by create/update mutations.
type ArtistPayload struct {
	Artist *JSONArtist `json:"artist"`
}

// CreateArtistData is the data member of createArtist.
type CreateArtistData struct {
	CreateArtist *ArtistPayload `json:"createArtist"`
}

// UpdateArtistData is the data member of updateArtist.
type UpdateArtistData struct {
	UpdateArtist *ArtistPayload `json:"updateArtist"`
}

// DeleteArtistData is the data member of deleteArtist.
type DeleteArtistData struct {
	DeleteArtist *DeletePayload `json:"deleteArtist"`
}
