package library

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/handiism/music-catalog/internal/catalog"
	"github.com/handiism/music-catalog/internal/config"
	"github.com/handiism/music-catalog/internal/crud"
	"github.com/handiism/music-catalog/internal/graphql"
	"github.com/handiism/music-catalog/internal/model"
)

// Level indicates the severity/type of an event.
type Level int

const (
	LevelInfo Level = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// Event is a user-facing status update.
type Event struct {
	Message string
	Level   Level
}

// ErrNotFound is returned when an id is not in the loaded collection.
var ErrNotFound = errors.New("not in the loaded collection")

// Section is a snapshot of one collection's render state.
type Section struct {
	Kind   model.Kind
	Loaded bool
	Err    error
	Count  int
}

// Library coordinates one catalog session.
type Library struct {
	api        *catalog.API
	reconciler *crud.Reconciler

	artists *crud.Collection[model.Artist]
	albums  *crud.Collection[model.Album]
	songs   *crud.Collection[model.Song]

	controllers map[model.Kind]*crud.Controller

	logger   *zap.Logger
	metrics  crud.Metrics
	onEvent  func(Event)
	eventsMu sync.Mutex
}

// Option configures a Library.
type Option func(*Library)

// WithLogger sets the logger shared by the library's components.
func WithLogger(l *zap.Logger) Option {
	return func(lib *Library) {
		if l != nil {
			lib.logger = l
		}
	}
}

// WithMetrics sets the outcome recorder shared by controllers and reconciler.
func WithMetrics(m crud.Metrics) Option {
	return func(lib *Library) {
		lib.metrics = m
	}
}

// New creates a library over transport. onEvent may be nil.
func New(transport catalog.Transport, onEvent func(Event), opts ...Option) *Library {
	lib := newLibrary(onEvent, opts)
	lib.bind(transport)
	return lib
}

// Open builds the GraphQL client from settings and returns a library over it.
func Open(settings *config.Settings, onEvent func(Event), opts ...Option) (*Library, error) {
	lib := newLibrary(onEvent, opts)
	client, err := graphql.NewClient(settings.ToClientConfig(), graphql.WithLogger(lib.logger.Named("graphql")))
	if err != nil {
		return nil, fmt.Errorf("open library: %w", err)
	}
	lib.bind(client)
	return lib, nil
}

func newLibrary(onEvent func(Event), opts []Option) *Library {
	lib := &Library{
		artists:     crud.NewCollection[model.Artist](),
		albums:      crud.NewCollection[model.Album](),
		songs:       crud.NewCollection[model.Song](),
		controllers: make(map[model.Kind]*crud.Controller, len(model.Kinds)),
		logger:      zap.NewNop(),
		onEvent:     onEvent,
	}
	for _, opt := range opts {
		opt(lib)
	}
	return lib
}

// bind wires the API, reconciler and controllers over transport.
func (l *Library) bind(transport catalog.Transport) {
	l.api = catalog.NewAPI(transport)

	l.reconciler = crud.NewReconciler(l.logger.Named("reconcile"), l.metrics)
	crud.Register(l.reconciler, model.KindArtist, l.artists, l.api.ListArtists)
	crud.Register(l.reconciler, model.KindAlbum, l.albums, l.api.ListAlbums)
	crud.Register(l.reconciler, model.KindSong, l.songs, l.api.ListSongs)

	for _, kind := range model.Kinds {
		schema, _ := crud.SchemaFor(kind)
		l.controllers[kind] = crud.NewController(schema, l.api.MutationsFor(kind), l.reconciler,
			crud.WithLogger(l.logger.Named("crud")),
			crud.WithMetrics(l.metrics))
	}
}

// Load fetches the given kinds, or all three when none are given, in
// parallel. A failed kind keeps its error in its Section; the others load
// normally. The returned error joins every failure.
func (l *Library) Load(ctx context.Context, kinds ...model.Kind) error {
	if len(kinds) == 0 {
		kinds = model.Kinds
	}

	var g errgroup.Group
	errs := make([]error, len(kinds))
	for i, kind := range kinds {
		g.Go(func() error {
			l.emit(Event{Message: fmt.Sprintf("Fetching %s", kind.Plural()), Level: LevelVerbose})
			if err := l.reconciler.Load(ctx, kind); err != nil {
				l.emit(Event{Message: fmt.Sprintf("Error loading %s: %v", kind.Plural(), err), Level: LevelError})
				errs[i] = fmt.Errorf("load %s: %w", kind.Plural(), err)
				return errs[i]
			}
			l.emit(Event{Message: fmt.Sprintf("Loaded %d %s", l.Section(kind).Count, kind.Plural()), Level: LevelInfo})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return errors.Join(errs...)
	}
	return nil
}

// Refresh reloads kind from the server on demand.
func (l *Library) Refresh(ctx context.Context, kind model.Kind) error {
	err := l.reconciler.Refresh(ctx, kind)
	if err != nil {
		l.emit(Event{Message: crud.UserMessage(err), Level: LevelError})
		return err
	}
	l.emit(Event{Message: fmt.Sprintf("Reloaded %s", kind.Plural()), Level: LevelVerbose})
	return nil
}

// Controller returns the submission controller of kind.
func (l *Library) Controller(kind model.Kind) *crud.Controller {
	return l.controllers[kind]
}

// Add submits kind's create draft.
func (l *Library) Add(ctx context.Context, kind model.Kind) error {
	err := l.controllers[kind].Add(ctx)
	l.report(kind, crud.OpAdd, "", err)
	return err
}

// Save submits kind's edit draft.
func (l *Library) Save(ctx context.Context, kind model.Kind) error {
	id := l.controllers[kind].Form().EditingID()
	err := l.controllers[kind].Save(ctx)
	l.report(kind, crud.OpSave, id, err)
	return err
}

// Remove deletes the entity id of kind.
func (l *Library) Remove(ctx context.Context, kind model.Kind, id string) error {
	err := l.controllers[kind].Remove(ctx, id)
	l.report(kind, crud.OpRemove, id, err)
	return err
}

// BeginEdit opens kind's edit draft on the loaded entity id.
func (l *Library) BeginEdit(kind model.Kind, id string) error {
	values, err := l.editValues(kind, id)
	if err != nil {
		return err
	}
	return l.controllers[kind].Form().BeginEdit(id, values)
}

// CancelEdit closes kind's edit draft.
func (l *Library) CancelEdit(kind model.Kind) {
	l.controllers[kind].Form().CancelEdit()
}

// SelectSongArtist sets the song form's artist and resets its album.
func (l *Library) SelectSongArtist(artistID string) error {
	return crud.SelectSongArtist(l.controllers[model.KindSong].Form(), artistID, l.albums.Items())
}

// SelectSongAlbum sets the song form's album among the artist's albums.
func (l *Library) SelectSongAlbum(albumID string) error {
	return crud.SelectSongAlbum(l.controllers[model.KindSong].Form(), albumID, l.albums.Items())
}

// SongAlbumChoices returns the albums selectable in the song form.
func (l *Library) SongAlbumChoices() []model.Album {
	artistID := l.controllers[model.KindSong].Form().New().Get(model.FieldArtistID)
	return crud.FilterAlbums(l.albums.Items(), artistID)
}

// Artists returns the rendered artists.
func (l *Library) Artists() []model.Artist {
	return l.artists.Items()
}

// Albums returns the rendered albums.
func (l *Library) Albums() []model.Album {
	return l.albums.Items()
}

// Songs returns the rendered songs.
func (l *Library) Songs() []model.Song {
	return l.songs.Items()
}

// Section returns the render state of kind.
func (l *Library) Section(kind model.Kind) Section {
	s := Section{Kind: kind}
	switch kind {
	case model.KindArtist:
		s.Loaded, s.Err, s.Count = l.artists.Loaded(), l.artists.Err(), l.artists.Len()
	case model.KindAlbum:
		s.Loaded, s.Err, s.Count = l.albums.Loaded(), l.albums.Err(), l.albums.Len()
	case model.KindSong:
		s.Loaded, s.Err, s.Count = l.songs.Loaded(), l.songs.Err(), l.songs.Len()
	}
	return s
}

func (l *Library) editValues(kind model.Kind, id string) (map[string]string, error) {
	switch kind {
	case model.KindArtist:
		for _, a := range l.artists.Items() {
			if a.ID == id {
				return map[string]string{model.FieldFirstName: a.FirstName, model.FieldLastName: a.LastName}, nil
			}
		}
	case model.KindAlbum:
		for _, a := range l.albums.Items() {
			if a.ID == id {
				return map[string]string{model.FieldName: a.Name, model.FieldReleaseDate: model.NormalizeDate(a.ReleaseDate)}, nil
			}
		}
	case model.KindSong:
		for _, s := range l.songs.Items() {
			if s.ID == id {
				return map[string]string{model.FieldTitle: s.Title}, nil
			}
		}
	}
	return nil, fmt.Errorf("%s %s: %w", kind, id, ErrNotFound)
}

func (l *Library) report(kind model.Kind, op crud.Op, id string, err error) {
	if err == nil {
		l.emit(Event{Message: successMessage(kind, op, id), Level: LevelSuccess})
		return
	}

	var verr *crud.ValidationError
	level := LevelError
	if errors.As(err, &verr) || errors.Is(err, crud.ErrSubmissionInFlight) {
		level = LevelWarning
	}
	l.emit(Event{Message: crud.UserMessage(err), Level: level})
}

func successMessage(kind model.Kind, op crud.Op, id string) string {
	switch op {
	case crud.OpAdd:
		return fmt.Sprintf("Added %s", kind)
	case crud.OpSave:
		return fmt.Sprintf("Saved %s %s", kind, id)
	default:
		return fmt.Sprintf("Removed %s %s", kind, id)
	}
}

func (l *Library) emit(e Event) {
	if l.onEvent == nil {
		return
	}
	l.eventsMu.Lock()
	defer l.eventsMu.Unlock()
	l.onEvent(e)
}
