package model

import (
	"testing"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"1999-01-01", "1999-01-01", false},
		{"1999-01-01T00:00:00Z", "1999-01-01", false},
		{"1999-01-01T10:30:00", "1999-01-01", false},
		{"01 Jan 1999", "1999-01-01", false},
		{" 2023-05-15 ", "2023-05-15", false},
		{"not a date", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseDate(%q) expected error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDate(%q) unexpected error: %v", tt.input, err)
			}
			if got.Format(DateLayout) != tt.want {
				t.Errorf("ParseDate(%q) = %q, want %q", tt.input, got.Format(DateLayout), tt.want)
			}
		})
	}
}

func TestNormalizeDate(t *testing.T) {
	if got := NormalizeDate("1999-01-01T00:00:00Z"); got != "1999-01-01" {
		t.Errorf("NormalizeDate = %q, want %q", got, "1999-01-01")
	}
	if got := NormalizeDate("someday"); got != "someday" {
		t.Errorf("NormalizeDate should leave unparseable input alone, got %q", got)
	}
}

func TestAlbum_Helpers(t *testing.T) {
	album := Album{
		ID:          "42",
		Name:        "Abbey Road",
		ReleaseDate: "1969-09-26",
		Artist:      ArtistRef{ID: "1", FirstName: "John"},
	}

	if got := album.Label(); got != "Abbey Road (1969-09-26) by John" {
		t.Errorf("Label() = %q", got)
	}
	if !album.BelongsTo("1") || album.BelongsTo("2") {
		t.Error("BelongsTo should match only the owning artist")
	}
	if ref := album.Ref(); ref.ID != "42" || ref.Name != "Abbey Road" {
		t.Errorf("Ref() = %+v", ref)
	}
}

func TestArtist_FullName(t *testing.T) {
	tests := []struct {
		artist Artist
		want   string
	}{
		{Artist{FirstName: "Ada", LastName: "Lovelace"}, "Ada Lovelace"},
		{Artist{FirstName: "Cher"}, "Cher"},
		{Artist{LastName: "Prince"}, "Prince"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.artist.FullName(); got != tt.want {
				t.Errorf("FullName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSong_Label(t *testing.T) {
	song := Song{
		Title:  "Come Together",
		Album:  AlbumRef{ID: "42", Name: "Abbey Road"},
		Artist: ArtistRef{ID: "1", FirstName: "John"},
	}
	if got := song.Label(); got != "Come Together - Abbey Road by John" {
		t.Errorf("Label() = %q", got)
	}
}

func TestKind_Names(t *testing.T) {
	tests := []struct {
		kind   Kind
		plural string
		title  string
	}{
		{KindArtist, "artists", "Artists"},
		{KindAlbum, "albums", "Albums"},
		{KindSong, "songs", "Songs"},
	}

	for _, tt := range tests {
		t.Run(tt.plural, func(t *testing.T) {
			if got := tt.kind.Plural(); got != tt.plural {
				t.Errorf("Plural() = %q, want %q", got, tt.plural)
			}
			if got := tt.kind.Title(); got != tt.title {
				t.Errorf("Title() = %q, want %q", got, tt.title)
			}
		})
	}
}
