package library

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
)

// fakeServer is an in-memory catalog GraphQL endpoint keyed by operation
// name.
type fakeServer struct {
	mu      sync.Mutex
	artists []map[string]any
	albums  []map[string]any
	songs   []map[string]any
	nextID  int
	ops     []string
	vars    []map[string]any
	fail    map[string]string
}

type fakeRequest struct {
	Query         string         `json:"query"`
	OperationName string         `json:"operationName"`
	Variables     map[string]any `json:"variables"`
}

func newFakeServer(t *testing.T) (*fakeServer, *httptest.Server) {
	t.Helper()
	fs := &fakeServer{nextID: 100, fail: map[string]string{}}
	srv := httptest.NewServer(http.HandlerFunc(fs.serve))
	t.Cleanup(srv.Close)
	return fs, srv
}

func (fs *fakeServer) seed() {
	fs.artists = []map[string]any{
		{"id": "1", "firstName": "Ada", "lastName": "Lovelace"},
		{"id": "2", "firstName": "Grace", "lastName": "Hopper"},
	}
	fs.albums = []map[string]any{
		{"id": "42", "name": "Engines", "releaseDate": "1843-10-01", "artist": map[string]any{"id": "1", "firstName": "Ada"}},
		{"id": "43", "name": "Notes", "releaseDate": "1843-11-01", "artist": map[string]any{"id": "1", "firstName": "Ada"}},
		{"id": "44", "name": "Cobol", "releaseDate": "1959-05-28", "artist": map[string]any{"id": "2", "firstName": "Grace"}},
	}
	fs.songs = []map[string]any{
		{"id": "7", "title": "Bernoulli", "album": map[string]any{"id": "43", "name": "Notes"}, "artist": map[string]any{"id": "1", "firstName": "Ada"}},
	}
}

func (fs *fakeServer) count(op string) int {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	n := 0
	for _, o := range fs.ops {
		if o == op {
			n++
		}
	}
	return n
}

func (fs *fakeServer) lastVars(op string) map[string]any {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	for i := len(fs.ops) - 1; i >= 0; i-- {
		if fs.ops[i] == op {
			return fs.vars[i]
		}
	}
	return nil
}

func (fs *fakeServer) failOp(op, message string) {
	fs.mu.Lock()
	fs.fail[op] = message
	fs.mu.Unlock()
}

func (fs *fakeServer) serve(w http.ResponseWriter, r *http.Request) {
	var req fakeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.ops = append(fs.ops, req.OperationName)
	fs.vars = append(fs.vars, req.Variables)

	w.Header().Set("Content-Type", "application/json")
	if msg, ok := fs.fail[req.OperationName]; ok {
		_ = json.NewEncoder(w).Encode(map[string]any{"errors": []map[string]any{{"message": msg}}})
		return
	}

	data, err := fs.execute(req)
	if err != nil {
		_ = json.NewEncoder(w).Encode(map[string]any{"errors": []map[string]any{{"message": err.Error()}}})
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"data": data})
}

func (fs *fakeServer) newID() string {
	fs.nextID++
	return strconv.Itoa(fs.nextID)
}

func (fs *fakeServer) execute(req fakeRequest) (map[string]any, error) {
	v := req.Variables
	str := func(k string) string { s, _ := v[k].(string); return s }

	switch req.OperationName {
	case "Artists":
		return map[string]any{"artists": fs.artists}, nil
	case "Albums":
		return map[string]any{"albums": fs.albums}, nil
	case "Songs":
		return map[string]any{"songs": fs.songs}, nil

	case "CreateArtist":
		a := map[string]any{"id": fs.newID(), "firstName": str("firstName"), "lastName": str("lastName")}
		fs.artists = append(fs.artists, a)
		return map[string]any{"createArtist": map[string]any{"artist": a}}, nil
	case "UpdateArtist":
		a := find(fs.artists, str("id"))
		if a == nil {
			return nil, fmt.Errorf("artist %s not found", str("id"))
		}
		for _, k := range []string{"firstName", "lastName"} {
			if s, ok := v[k].(string); ok {
				a[k] = s
			}
		}
		return map[string]any{"updateArtist": map[string]any{"artist": a}}, nil
	case "DeleteArtist":
		var ok bool
		fs.artists, ok = remove(fs.artists, str("id"))
		return map[string]any{"deleteArtist": map[string]any{"ok": ok}}, nil

	case "CreateAlbum":
		artist := find(fs.artists, str("artistId"))
		if artist == nil {
			return nil, fmt.Errorf("artist %s not found", str("artistId"))
		}
		a := map[string]any{"id": fs.newID(), "name": str("name"), "releaseDate": str("releaseDate"),
			"artist": map[string]any{"id": artist["id"], "firstName": artist["firstName"]}}
		fs.albums = append(fs.albums, a)
		return map[string]any{"createAlbum": map[string]any{"album": a}}, nil
	case "UpdateAlbum":
		a := find(fs.albums, str("id"))
		if a == nil {
			return nil, fmt.Errorf("album %s not found", str("id"))
		}
		for _, k := range []string{"name", "releaseDate"} {
			if s, ok := v[k].(string); ok {
				a[k] = s
			}
		}
		return map[string]any{"updateAlbum": map[string]any{"album": a}}, nil
	case "DeleteAlbum":
		var ok bool
		fs.albums, ok = remove(fs.albums, str("id"))
		return map[string]any{"deleteAlbum": map[string]any{"ok": ok}}, nil

	case "CreateSong":
		artist, album := find(fs.artists, str("artistId")), find(fs.albums, str("albumId"))
		if artist == nil || album == nil {
			return nil, fmt.Errorf("artist or album not found")
		}
		s := map[string]any{"id": fs.newID(), "title": str("title"),
			"album":  map[string]any{"id": album["id"], "name": album["name"]},
			"artist": map[string]any{"id": artist["id"], "firstName": artist["firstName"]}}
		fs.songs = append(fs.songs, s)
		return map[string]any{"createSong": map[string]any{"song": s}}, nil
	case "UpdateSong":
		s := find(fs.songs, str("id"))
		if s == nil {
			return nil, fmt.Errorf("song %s not found", str("id"))
		}
		if t, ok := v["title"].(string); ok {
			s["title"] = t
		}
		return map[string]any{"updateSong": map[string]any{"song": s}}, nil
	case "DeleteSong":
		var ok bool
		fs.songs, ok = remove(fs.songs, str("id"))
		return map[string]any{"deleteSong": map[string]any{"ok": ok}}, nil
	}
	return nil, fmt.Errorf("unknown operation %q", req.OperationName)
}

func find(items []map[string]any, id string) map[string]any {
	for _, it := range items {
		if it["id"] == id {
			return it
		}
	}
	return nil
}

func remove(items []map[string]any, id string) ([]map[string]any, bool) {
	for i, it := range items {
		if it["id"] == id {
			return append(items[:i:i], items[i+1:]...), true
		}
	}
	return items, false
}
