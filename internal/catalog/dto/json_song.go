package dto

import "github.com/handiism/music-catalog/internal/model"

// JSONSong is a song as selected by the songs query.
type JSONSong struct {
	ID     string         `json:"id"`
	Title  string         `json:"title"`
	Album  *JSONAlbumRef  `json:"album"`
	Artist *JSONArtistRef `json:"artist"`
}

// ToSong converts JSONSong to a model.Song.
func (js *JSONSong) ToSong() model.Song {
	return model.Song{
		ID:     js.ID,
		Title:  js.Title,
		Album:  js.Album.ToRef(),
		Artist: js.Artist.ToRef(),
	}
}

// SongsData is the data member of the songs query.
type SongsData struct {
	Songs []JSONSong `json:"songs"`
}

// ToSongs converts the query result, preserving server order.
func (d *SongsData) ToSongs() []model.Song {
	songs := make([]model.Song, 0, len(d.Songs))
	for i := range d.Songs {
		songs = append(songs, d.Songs[i].ToSong())
	}
	return songs
}

// SongPayload wraps the song returned by create/update mutations.
type SongPayload struct {
	Song *JSONSong `json:"song"`
}

// CreateSongData is the data member of createSong.
type CreateSongData struct {
	CreateSong *SongPayload `json:"createSong"`
}

// UpdateSongData is the data member of updateSong.
type UpdateSongData struct {
	UpdateSong *SongPayload `json:"updateSong"`
}

// DeleteSongData is the data member of deleteSong.
type DeleteSongData struct {
	DeleteSong *DeletePayload `json:"deleteSong"`
}

// DeletePayload acknowledges a delete mutation.
type DeletePayload struct {
	OK bool `json:"ok"`
}

// Acknowledged reports whether the server confirmed the delete.
func (p *DeletePayload) Acknowledged() bool {
	return p != nil && p.OK
}
