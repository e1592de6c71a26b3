// Package spotify is a minimal client for the two Spotify Web API calls the
// pipeline needs: track search by release year, and batched audio-feature
// lookup. It authenticates with the client-credentials flow and respects
// Spotify's documented rate limiter, checking for a Retry-After header when
// it receives a 429 response.
package spotify

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/nkoz/moodcharts/data"
	"github.com/nkoz/moodcharts/limiter"
	"github.com/nkoz/moodcharts/request"
)

// FeatureBatchSize is the maximum number of track ids the audio-features
// endpoint accepts per request.
const FeatureBatchSize = 100

const nextReqFilename = "spotify-next-req"

// New creates a new Spotify client with the given clientID and clientSecret.
// The credentials are not exchanged for a token until the first request.
func New(clientID, clientSecret string) *Client {
	lim := limiter.New(nextReqFilename, time.Second/10)
	if err := lim.Load(); err != nil {
		log.Printf("ignoring unreadable limiter state: %v", err)
	}

	return &Client{
		clientID:     clientID,
		clientSecret: clientSecret,
		lim:          lim,

		apiURL:      "https://api.spotify.com/v1",
		accountsURL: "https://accounts.spotify.com/api/token",
	}
}

type Client struct {
	mu sync.Mutex

	clientID     string
	clientSecret string
	lim          *limiter.Limiter

	apiURL      string
	accountsURL string

	accessToken string
	expiresAt   time.Time
}

// SearchTracksByYear issues a single search request for tracks released in
// the given year, scoped to a market, and returns up to limit results. An
// empty result list is a valid, non-error outcome.
func (spo *Client) SearchTracksByYear(ctx context.Context, year int, market string, limit int) ([]data.SearchedTrack, error) {
	query := url.Values{}
	query.Add("q", fmt.Sprintf("year:%d", year))
	query.Add("type", "track")
	query.Add("limit", strconv.Itoa(limit))
	query.Add("market", market)

	resp, err := spo.get(ctx, spo.apiURL+"/search", query)
	if err != nil {
		return nil, err
	}
	defer resp.Close()

	var results searchResultsPage
	dec := json.NewDecoder(resp)
	if err := dec.Decode(&results); err != nil {
		return nil, fmt.Errorf("search decode error: %w", err)
	}

	var tracks []data.SearchedTrack
	for _, item := range results.Tracks.Items {
		track := data.SearchedTrack{
			TrackID:     item.ID,
			TrackName:   item.Name,
			ReleaseDate: item.Album.ReleaseDate,
		}
		if len(item.Artists) > 0 {
			track.ArtistID = item.Artists[0].ID
			track.ArtistName = item.Artists[0].Name
		}
		tracks = append(tracks, track)
	}
	return tracks, nil
}

type searchResultsPage struct {
	Tracks struct {
		Limit  int
		Offset int
		Total  int

		Items []struct {
			ID      string
			Name    string
			Artists []struct {
				ID   string
				Name string
			}
			Album struct {
				ID          string
				Name        string
				ReleaseDate string `json:"release_date"`
			}
		}
	}
}

// FetchAudioFeatures partitions ids into batches of at most FeatureBatchSize,
// issues one request per batch, and merges the successful results. A failed
// batch is logged and skipped; it must not abort the remaining batches.
// Entries the API returns as null (unknown tracks) are dropped.
func (spo *Client) FetchAudioFeatures(ctx context.Context, ids []string) ([]data.Track, error) {
	var all []data.Track
	for start := 0; start < len(ids); start += FeatureBatchSize {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		end := start + FeatureBatchSize
		if end > len(ids) {
			end = len(ids)
		}
		batch := ids[start:end]
		batchNum := start/FeatureBatchSize + 1

		tracks, err := spo.fetchFeatureBatch(ctx, batch)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			log.Printf("error in features batch %d (%d tracks): %v", batchNum, len(batch), err)
			continue
		}

		all = append(all, tracks...)
		log.Printf("batch %d: fetched %d of %d features", batchNum, len(tracks), len(batch))
	}
	return all, nil
}

func (spo *Client) fetchFeatureBatch(ctx context.Context, ids []string) ([]data.Track, error) {
	query := url.Values{}
	query.Set("ids", strings.Join(ids, ","))

	resp, err := spo.get(ctx, spo.apiURL+"/audio-features", query)
	if err != nil {
		return nil, err
	}
	defer resp.Close()

	var results audioFeaturesResults
	dec := json.NewDecoder(resp)
	if err := dec.Decode(&results); err != nil {
		return nil, fmt.Errorf("audio features decode error: %w", err)
	}

	var tracks []data.Track
	for _, feat := range results.AudioFeatures {
		if feat.ID == "" {
			continue
		}
		tracks = append(tracks, data.Track{
			TrackID:    feat.ID,
			DurationMS: feat.DurationMS,

			Key:           feat.Key,
			Mode:          feat.Mode,
			Tempo:         feat.Tempo,
			TimeSignature: feat.TimeSignature,

			Acousticness:     feat.Acousticness,
			Danceability:     feat.Danceability,
			Energy:           feat.Energy,
			Instrumentalness: feat.Instrumentalness,
			Liveness:         feat.Liveness,
			Loudness:         feat.Loudness,
			Speechiness:      feat.Speechiness,
			Valence:          feat.Valence,
		})
	}
	return tracks, nil
}

type audioFeaturesResults struct {
	AudioFeatures []struct {
		ID         string
		DurationMS int64 `json:"duration_ms"`

		Key           int64
		Mode          int64
		Tempo         float64
		TimeSignature int64 `json:"time_signature"`

		Acousticness     float64
		Danceability     float64
		Energy           float64
		Instrumentalness float64
		Liveness         float64
		Loudness         float64
		Speechiness      float64
		Valence          float64
	} `json:"audio_features"`
}

func (spo *Client) get(ctx context.Context, baseURL string, query url.Values) (io.ReadCloser, error) {
	spo.mu.Lock()
	defer spo.mu.Unlock()

retry:
	if err := spo.lim.Wait(ctx); err != nil {
		return nil, err
	}

	u, _ := url.Parse(baseURL)
	u.RawQuery = query.Encode()
	req, err := http.NewRequestWithContext(ctx, "GET", u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("request error: %w", err)
	}

	token, err := spo.token(ctx)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request error: %w", err)
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		resp.Body.Close()
		retryAfter := resp.Header.Get("Retry-After")
		if retryAfter == "" {
			log.Printf("no retry-after header on 429; retrying in 1 minute")
		} else {
			log.Printf("429; retrying in %ss", retryAfter)
		}
		if err := spo.lim.SetNextAt(retryAfter); err != nil {
			return nil, err
		}
		goto retry
	}
	if err := request.Error(resp); err != nil {
		resp.Body.Close()
		return nil, fmt.Errorf("fetch error: %w", err)
	}

	spo.lim.Delay()

	return resp.Body, nil
}

type tokenResult struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

func (spo *Client) token(ctx context.Context) (string, error) {
	if spo.accessToken == "" || spo.expiresAt.Before(time.Now().Add(time.Second)) {
		if err := spo.fetchToken(ctx); err != nil {
			return "", err
		}
	}
	return fmt.Sprintf("Bearer %s", spo.accessToken), nil
}

// fetchToken exchanges the client credentials for a bearer token. Failure
// here is fatal for the whole pipeline: no stage can proceed without it, so
// the error propagates instead of being swallowed.
func (spo *Client) fetchToken(ctx context.Context) error {
	if spo.clientID == "" || spo.clientSecret == "" {
		return fmt.Errorf("missing spotify credentials")
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	req, err := http.NewRequestWithContext(ctx, "POST", spo.accountsURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("token request error: %w", err)
	}
	up := fmt.Sprintf("%s:%s", spo.clientID, spo.clientSecret)
	credential := base64.StdEncoding.EncodeToString([]byte(up))
	req.Header.Set("Authorization", fmt.Sprintf("Basic %s", credential))
	req.Header.Set("Content-type", "application/x-www-form-urlencoded")

	requestAt := time.Now()
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("token request error: %w", err)
	}
	defer resp.Body.Close()
	if err := request.Error(resp); err != nil {
		return fmt.Errorf("token fetch error: %w", err)
	}

	var result tokenResult
	dec := json.NewDecoder(resp.Body)
	if err := dec.Decode(&result); err != nil {
		return fmt.Errorf("token decode error: %w", err)
	}

	spo.accessToken = result.AccessToken
	spo.expiresAt = requestAt.Add(time.Duration(result.ExpiresIn) * time.Second)

	return nil
}
