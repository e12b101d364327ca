package graphql

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
	)
}

type artistsData struct {
	Artists []struct {
		ID        string `json:"id"`
		FirstName string `json:"firstName"`
	} `json:"artists"`
}

func newTestClient(t *testing.T, handler http.HandlerFunc, cacheSize int) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(&Config{
		Endpoint:  srv.URL,
		Timeout:   5 * time.Second,
		UserAgent: "catalog-test",
		Headers:   map[string]string{"Authorization": "Bearer token"},
		CacheSize: cacheSize,
	})
	require.NoError(t, err)
	t.Cleanup(func() { client.httpClient.CloseIdleConnections() })
	return client, srv
}

func TestClient_SendsRequestEnvelope(t *testing.T) {
	var got Request
	var headers http.Header
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		headers = r.Header.Clone()
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &got)
		_, _ = w.Write([]byte(`{"data":{"createArtist":{"artist":{"id":"1"}}}}`))
	}, 0)

	req := Request{
		Query:         "mutation($firstName: String!) { createArtist(firstName: $firstName) { artist { id } } }",
		OperationName: "CreateArtist",
		Variables:     map[string]any{"firstName": "Ada"},
	}
	require.NoError(t, client.Mutate(context.Background(), req, nil))

	assert.Equal(t, req.Query, got.Query)
	assert.Equal(t, "CreateArtist", got.OperationName)
	assert.Equal(t, "Ada", got.Variables["firstName"])
	assert.Equal(t, "application/json", headers.Get("Content-Type"))
	assert.Equal(t, "catalog-test", headers.Get("User-Agent"))
	assert.Equal(t, "Bearer token", headers.Get("Authorization"))
	assert.NotEmpty(t, headers.Get("X-Request-ID"))
}

func TestClient_DecodesData(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"artists":[{"id":"1","firstName":"Ada"},{"id":"2","firstName":"Grace"}]}}`))
	}, 0)

	var out artistsData
	require.NoError(t, client.Query(context.Background(), Request{Query: "query { artists { id firstName } }"}, &out))
	require.Len(t, out.Artists, 2)
	assert.Equal(t, "Grace", out.Artists[1].FirstName)
}

func TestClient_GraphQLErrors(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":null,"errors":[{"message":"Artist matching query does not exist."},{"message":"second"}]}`))
	}, 0)

	err := client.Mutate(context.Background(), Request{Query: "mutation { x }", OperationName: "DeleteArtist"}, nil)

	var rerr *RemoteError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, []string{"Artist matching query does not exist.", "second"}, rerr.Messages)
	assert.Equal(t, "Artist matching query does not exist.", rerr.Message())
	assert.Contains(t, rerr.Error(), "DeleteArtist")
}

func TestClient_HTTPStatusError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream down"))
	}, 0)

	err := client.Query(context.Background(), Request{Query: "query { artists { id } }"}, nil)

	var rerr *RemoteError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, http.StatusBadGateway, rerr.Status)
	assert.Empty(t, rerr.Messages)
	assert.Equal(t, "HTTP 502", rerr.Message())
}

func TestClient_TransportError(t *testing.T) {
	client, srv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {}, 0)
	srv.Close()

	err := client.Query(context.Background(), Request{Query: "query { artists { id } }"}, nil)

	var rerr *RemoteError
	require.ErrorAs(t, err, &rerr)
	assert.Error(t, rerr.Unwrap())
	assert.Zero(t, rerr.Status)
}

func TestClient_ContextCancelled(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{}}`))
	}, 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := client.Query(ctx, Request{Query: "query { artists { id } }"}, nil)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestClient_QueryIsCacheFirst(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{"data":{"artists":[{"id":"1","firstName":"Ada"}]}}`))
	}, 4)

	req := Request{Query: "query { artists { id firstName } }"}
	var first, second artistsData
	require.NoError(t, client.Query(context.Background(), req, &first))
	require.NoError(t, client.Query(context.Background(), req, &second))

	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, first, second)
	assert.Equal(t, 1, client.cache.Len())
}

func TestClient_RefetchBypassesAndRefreshesCache(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			_, _ = w.Write([]byte(`{"data":{"artists":[{"id":"1","firstName":"Ada"}]}}`))
			return
		}
		_, _ = w.Write([]byte(`{"data":{"artists":[{"id":"1","firstName":"Ada"},{"id":"2","firstName":"Grace"}]}}`))
	}, 4)

	req := Request{Query: "query { artists { id firstName } }"}
	var out artistsData
	require.NoError(t, client.Query(context.Background(), req, &out))
	require.Len(t, out.Artists, 1)

	require.NoError(t, client.Refetch(context.Background(), req, &out))
	require.Len(t, out.Artists, 2)

	// The cache now answers with the refetched list.
	var cached artistsData
	require.NoError(t, client.Query(context.Background(), req, &cached))
	assert.Len(t, cached.Artists, 2)
	assert.Equal(t, int32(2), calls.Load())
}

func TestClient_FailedRefetchKeepsCache(t *testing.T) {
	var fail atomic.Bool
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`{"data":{"artists":[{"id":"1","firstName":"Ada"}]}}`))
	}, 4)

	req := Request{Query: "query { artists { id firstName } }"}
	require.NoError(t, client.Query(context.Background(), req, nil))

	fail.Store(true)
	require.Error(t, client.Refetch(context.Background(), req, nil))

	var out artistsData
	require.NoError(t, client.Query(context.Background(), req, &out))
	assert.Len(t, out.Artists, 1)
}

func TestClient_MutationsAreNotCached(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{"data":{"deleteSong":{"ok":true}}}`))
	}, 4)

	req := Request{Query: "mutation($id: ID!) { deleteSong(id: $id) { ok } }", Variables: map[string]any{"id": "7"}}
	require.NoError(t, client.Mutate(context.Background(), req, nil))
	require.NoError(t, client.Mutate(context.Background(), req, nil))

	assert.Equal(t, int32(2), calls.Load())
	assert.Zero(t, client.cache.Len())
}

func TestClient_CacheKeyIncludesVariables(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{"data":{}}`))
	}, 4)

	q := "query($id: ID!) { album(id: $id) { id } }"
	require.NoError(t, client.Query(context.Background(), Request{Query: q, Variables: map[string]any{"id": "1"}}, nil))
	require.NoError(t, client.Query(context.Background(), Request{Query: q, Variables: map[string]any{"id": "2"}}, nil))
	require.NoError(t, client.Query(context.Background(), Request{Query: q, Variables: map[string]any{"id": "1"}}, nil))

	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, 2, client.cache.Len())
}

func TestNewClient_RequiresEndpoint(t *testing.T) {
	_, err := NewClient(&Config{})
	assert.Error(t, err)
}
