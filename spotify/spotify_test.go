package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSpotify struct {
	mux        *http.ServeMux
	batchSizes []int
	failBatch  int // 1-based batch to 500, 0 for none
}

func newFakeSpotify() *fakeSpotify {
	fake := &fakeSpotify{mux: http.NewServeMux()}

	fake.mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"access_token": "test-token",
			"token_type":   "Bearer",
			"expires_in":   3600,
		})
	})

	fake.mux.HandleFunc("/audio-features", func(w http.ResponseWriter, r *http.Request) {
		ids := strings.Split(r.URL.Query().Get("ids"), ",")
		fake.batchSizes = append(fake.batchSizes, len(ids))
		if fake.failBatch == len(fake.batchSizes) {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		features := make([]map[string]any, len(ids))
		for i, id := range ids {
			features[i] = map[string]any{"id": id, "valence": 0.5}
		}
		json.NewEncoder(w).Encode(map[string]any{"audio_features": features})
	})

	fake.mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") == "year:1901" {
			json.NewEncoder(w).Encode(map[string]any{"tracks": map[string]any{"items": []any{}}})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"tracks": map[string]any{
				"items": []map[string]any{{
					"id":   "abc",
					"name": "Sol",
					"artists": []map[string]any{
						{"id": "a1", "name": "A"},
					},
					"album": map[string]any{"id": "al1", "release_date": "2020-03-01"},
				}},
			},
		})
	})

	return fake
}

func testClient(t *testing.T, fake *fakeSpotify) *Client {
	t.Helper()
	srv := httptest.NewServer(fake.mux)
	t.Cleanup(srv.Close)

	spo := New("id", "secret")
	spo.apiURL = srv.URL
	spo.accountsURL = srv.URL + "/token"
	return spo
}

func TestFetchAudioFeaturesBatching(t *testing.T) {
	fake := newFakeSpotify()
	spo := testClient(t, fake)

	ids := make([]string, 250)
	for i := range ids {
		ids[i] = fmt.Sprintf("id-%d", i)
	}

	tracks, err := spo.FetchAudioFeatures(context.Background(), ids)
	require.NoError(t, err)

	// ceil(250/100) requests, sized 100/100/50
	assert.Equal(t, []int{100, 100, 50}, fake.batchSizes)
	assert.Len(t, tracks, 250)
	assert.Equal(t, "id-0", tracks[0].TrackID)
	assert.Equal(t, 0.5, tracks[0].Valence)
}

func TestFetchAudioFeaturesFailedBatchContinues(t *testing.T) {
	fake := newFakeSpotify()
	fake.failBatch = 2
	spo := testClient(t, fake)

	ids := make([]string, 250)
	for i := range ids {
		ids[i] = fmt.Sprintf("id-%d", i)
	}

	tracks, err := spo.FetchAudioFeatures(context.Background(), ids)
	require.NoError(t, err)

	// the failing middle batch is dropped, its neighbors still contribute
	assert.Equal(t, []int{100, 100, 50}, fake.batchSizes)
	assert.Len(t, tracks, 150)
	assert.Equal(t, "id-0", tracks[0].TrackID)
	assert.Equal(t, "id-200", tracks[100].TrackID)
}

func TestSearchTracksByYear(t *testing.T) {
	fake := newFakeSpotify()
	spo := testClient(t, fake)

	tracks, err := spo.SearchTracksByYear(context.Background(), 2020, "US", 50)
	require.NoError(t, err)
	require.Len(t, tracks, 1)
	assert.Equal(t, "abc", tracks[0].TrackID)
	assert.Equal(t, "Sol", tracks[0].TrackName)
	assert.Equal(t, "A", tracks[0].ArtistName)
	assert.Equal(t, "2020-03-01", tracks[0].ReleaseDate)
}

func TestSearchTracksByYearEmptyIsNotAnError(t *testing.T) {
	fake := newFakeSpotify()
	spo := testClient(t, fake)

	tracks, err := spo.SearchTracksByYear(context.Background(), 1901, "US", 50)
	require.NoError(t, err)
	assert.Empty(t, tracks)
}

func TestMissingCredentialsFailFast(t *testing.T) {
	fake := newFakeSpotify()
	spo := testClient(t, fake)
	spo.clientID = ""

	_, err := spo.SearchTracksByYear(context.Background(), 2020, "US", 50)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing spotify credentials")
}
