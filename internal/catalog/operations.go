package catalog

// Read operations.
const (
	artistsQuery = `query Artists { artists { id firstName lastName } }`
	albumsQuery  = `query Albums { albums { id name releaseDate artist { id firstName } } }`
	songsQuery   = `query Songs { songs { id title album { id name } artist { id firstName } } }`
)

// Artist mutations.
const (
	createArtistMutation = `mutation CreateArtist($firstName: String!, $lastName: String!) { createArtist(firstName: $firstName, lastName: $lastName) { artist { id firstName lastName } } }`
	updateArtistMutation = `mutation UpdateArtist($id: ID!, $firstName: String, $lastName: String) { updateArtist(id: $id, firstName: $firstName, lastName: $lastName) { artist { id firstName lastName } } }`
	deleteArtistMutation = `mutation DeleteArtist($id: ID!) { deleteArtist(id: $id) { ok } }`
)

// Album mutations.
const (
	createAlbumMutation = `mutation CreateAlbum($artistId: ID!, $name: String!, $releaseDate: Date!) { createAlbum(artistId: $artistId, name: $name, releaseDate: $releaseDate) { album { id name } } }`
	updateAlbumMutation = `mutation UpdateAlbum($id: ID!, $name: String, $releaseDate: Date) { updateAlbum(id: $id, name: $name, releaseDate: $releaseDate) { album { id name releaseDate } } }`
	deleteAlbumMutation = `mutation DeleteAlbum($id: ID!) { deleteAlbum(id: $id) { ok } }`
)

// Song mutations.
const (
	createSongMutation = `mutation CreateSong($artistId: ID!, $albumId: ID!, $title: String!) { createSong(artistId: $artistId, albumId: $albumId, title: $title) { song { id title } } }`
	updateSongMutation = `mutation UpdateSong($id: ID!, $title: String) { updateSong(id: $id, title: $title) { song { id title } } }`
	deleteSongMutation = `mutation DeleteSong($id: ID!) { deleteSong(id: $id) { ok } }`
)
