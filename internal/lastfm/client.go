// Package lastfm implements the last.fm broadcast service: now-playing
// updates and scrobbles driven by playback events, and the signed HTTP client
// for the last.fm web API.
package lastfm

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/AJMerr/playcore/internal/session"
)

const (
	DefaultEndpoint = "https://ws.audioscrobbler.com/2.0/"
	authURL         = "https://www.last.fm/api/auth/"
)

// Track is what last.fm needs to know about a play.
type Track struct {
	Artist      string
	Title       string
	Album       string
	AlbumArtist string
	TrackNumber uint64
	Duration    time.Duration
	StartedAt   time.Time
}

// Client is the subset of the last.fm API the scrobbler uses.
type Client interface {
	UpdateNowPlaying(ctx context.Context, t Track) error
	Scrobble(ctx context.Context, t Track) error
}

// APIError is an error payload returned by last.fm.
type APIError struct {
	Code    int    `json:"error"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("last.fm error %d: %s", e.Code, e.Message)
}

// HTTPClient talks to the last.fm web API.
type HTTPClient struct {
	apiKey     string
	secret     string
	endpoint   string
	sessionKey string
	http       *http.Client
}

type Option func(*HTTPClient)

// WithEndpoint overrides the API root.
func WithEndpoint(endpoint string) Option {
	return func(c *HTTPClient) { c.endpoint = endpoint }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) { c.http.Timeout = d }
}

func NewHTTPClient(apiKey, secret string, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		apiKey:   apiKey,
		secret:   secret,
		endpoint: DefaultEndpoint,
		http:     &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithSession returns a copy of c that authenticates as the session key.
func (c *HTTPClient) WithSession(key string) *HTTPClient {
	cp := *c
	cp.sessionKey = key
	return &cp
}

// GetToken requests an unauthorized request token (auth.getToken).
func (c *HTTPClient) GetToken(ctx context.Context) (string, error) {
	var out struct {
		Token string `json:"token"`
	}
	if err := c.call(ctx, http.MethodGet, "auth.getToken", nil, &out); err != nil {
		return "", err
	}
	return out.Token, nil
}

// AuthURL is the page where the user authorizes token.
func (c *HTTPClient) AuthURL(token string) string {
	q := url.Values{"api_key": {c.apiKey}, "token": {token}}
	return authURL + "?" + q.Encode()
}

// GetSession exchanges an authorized token for a session (auth.getSession).
func (c *HTTPClient) GetSession(ctx context.Context, token string) (session.Session, error) {
	var out struct {
		Session struct {
			Name       string `json:"name"`
			Key        string `json:"key"`
			Subscriber int    `json:"subscriber"`
		} `json:"session"`
	}
	if err := c.call(ctx, http.MethodGet, "auth.getSession", url.Values{"token": {token}}, &out); err != nil {
		return session.Session{}, err
	}
	return session.Session{
		Name:       out.Session.Name,
		Key:        out.Session.Key,
		Subscriber: out.Session.Subscriber != 0,
	}, nil
}

// UpdateNowPlaying implements Client.
func (c *HTTPClient) UpdateNowPlaying(ctx context.Context, t Track) error {
	return c.call(ctx, http.MethodPost, "track.updateNowPlaying", c.trackParams(t), nil)
}

// Scrobble implements Client.
func (c *HTTPClient) Scrobble(ctx context.Context, t Track) error {
	params := c.trackParams(t)
	params.Set("timestamp", strconv.FormatInt(t.StartedAt.Unix(), 10))
	return c.call(ctx, http.MethodPost, "track.scrobble", params, nil)
}

func (c *HTTPClient) trackParams(t Track) url.Values {
	params := url.Values{
		"artist": {t.Artist},
		"track":  {t.Title},
		"sk":     {c.sessionKey},
	}
	if t.Album != "" {
		params.Set("album", t.Album)
	}
	if t.AlbumArtist != "" {
		params.Set("albumArtist", t.AlbumArtist)
	}
	if t.TrackNumber != 0 {
		params.Set("trackNumber", strconv.FormatUint(t.TrackNumber, 10))
	}
	if t.Duration > 0 {
		params.Set("duration", strconv.Itoa(int(t.Duration.Seconds())))
	}
	return params
}

// sign computes api_sig: every parameter except format and callback, sorted
// by name, concatenated as name+value, followed by the secret, md5 hex.
func sign(params url.Values, secret string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		if k == "format" || k == "callback" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteString(k)
		b.WriteString(params.Get(k))
	}
	b.WriteString(secret)
	sum := md5.Sum([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

func (c *HTTPClient) call(ctx context.Context, method, apiMethod string, params url.Values, out any) error {
	if params == nil {
		params = url.Values{}
	}
	params.Set("method", apiMethod)
	params.Set("api_key", c.apiKey)
	params.Set("api_sig", sign(params, c.secret))
	params.Set("format", "json")

	var req *http.Request
	var err error
	if method == http.MethodPost {
		req, err = http.NewRequestWithContext(ctx, method, c.endpoint, strings.NewReader(params.Encode()))
		if err == nil {
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		}
	} else {
		req, err = http.NewRequestWithContext(ctx, method, c.endpoint+"?"+params.Encode(), nil)
	}
	if err != nil {
		return fmt.Errorf("build %s request: %w", apiMethod, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", apiMethod, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read %s response: %w", apiMethod, err)
	}

	var apiErr APIError
	if json.Unmarshal(body, &apiErr) == nil && apiErr.Code != 0 {
		return &apiErr
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: unexpected status %s", apiMethod, resp.Status)
	}
	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("decode %s response: %w", apiMethod, err)
		}
	}
	return nil
}
