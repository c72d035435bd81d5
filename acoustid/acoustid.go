// Package acoustid is a client for the AcoustID web service. It looks up
// audio fingerprints produced by Chromaprint and resolves them to MusicBrainz
// recordings.
package acoustid

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-stack/stack"
	"github.com/karlmutch/errors"
	log "github.com/mgutz/logxi/v1"
)

const (
	DefaultBaseURL = "https://api.acoustid.org/v2"

	// The service asks clients to stay under three requests per second.
	minRequestInterval = 333 * time.Millisecond

	defaultMeta = "recordings releasegroups"
)

// Client talks to the AcoustID API. All requests share a rate limiter, so a
// single Client is safe to use from multiple goroutines.
type Client struct {
	APIKey  string
	BaseURL string

	httpClient *http.Client
	logger     log.Logger

	mu   sync.Mutex
	last time.Time
}

func NewClient(apiKey string) *Client {
	return &Client{
		APIKey:     apiKey,
		BaseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     log.New("acoustid"),
	}
}

// throttle blocks until the minimum interval since the previous request has
// passed.
func (c *Client) throttle() {
	c.mu.Lock()
	wait := minRequestInterval - time.Since(c.last)
	if wait > 0 {
		time.Sleep(wait)
	}
	c.last = time.Now()
	c.mu.Unlock()
}

// post sends a gzip compressed form encoded request and decodes the JSON
// reply into out.
func (c *Client) post(endpoint string, form url.Values, out interface{}) errors.Error {
	form.Set("client", c.APIKey)
	form.Set("format", "json")

	var body bytes.Buffer
	gz := gzip.NewWriter(&body)
	if _, errGo := gz.Write([]byte(form.Encode())); errGo != nil {
		return errors.Wrap(errGo).With("stack", stack.Trace().TrimRuntime())
	}
	if errGo := gz.Close(); errGo != nil {
		return errors.Wrap(errGo).With("stack", stack.Trace().TrimRuntime())
	}

	uri := strings.TrimRight(c.BaseURL, "/") + "/" + endpoint
	req, errGo := http.NewRequest(http.MethodPost, uri, &body)
	if errGo != nil {
		return errors.Wrap(errGo).With("url", uri).With("stack", stack.Trace().TrimRuntime())
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Content-Encoding", "gzip")

	c.throttle()
	c.logger.Debug("request", "endpoint", endpoint)

	resp, errGo := c.httpClient.Do(req)
	if errGo != nil {
		return errors.Wrap(errGo).With("url", uri).With("stack", stack.Trace().TrimRuntime())
	}
	defer resp.Body.Close()

	// A reply that cannot be parsed counts as no match rather than an
	// error, the caller's result stays empty.
	var reply struct {
		Status string `json:"status"`
		Error  *Error `json:"error"`
	}
	raw := json.RawMessage{}
	if errGo := json.NewDecoder(resp.Body).Decode(&raw); errGo != nil {
		c.logger.Warn("malformed reply", "url", uri, "error", errGo.Error())
		return nil
	}
	if errGo := json.Unmarshal(raw, &reply); errGo != nil {
		c.logger.Warn("malformed reply", "url", uri, "error", errGo.Error())
		return nil
	}
	if reply.Status != "ok" {
		err := errors.New("request rejected").With("url", uri).
			With("status", reply.Status).With("stack", stack.Trace().TrimRuntime())
		if reply.Error != nil {
			err = err.With("code", reply.Error.Code).With("message", reply.Error.Message)
		}
		return err
	}
	if out != nil {
		if errGo := json.Unmarshal(raw, out); errGo != nil {
			c.logger.Warn("malformed reply", "url", uri, "error", errGo.Error())
		}
	}
	return nil
}

// LookupFingerprint resolves a Chromaprint fingerprint of the given duration
// in seconds to scored matches.
func (c *Client) LookupFingerprint(fingerprint string, duration int) (*LookupResponse, errors.Error) {
	form := url.Values{}
	form.Set("fingerprint", fingerprint)
	form.Set("duration", strconv.Itoa(duration))
	form.Set("meta", defaultMeta)

	out := &LookupResponse{}
	if err := c.post("lookup", form, out); err != nil {
		return nil, err
	}
	return out, nil
}

// LookupTrackID fetches the recordings attached to a known AcoustID track.
func (c *Client) LookupTrackID(trackID string) (*LookupResponse, errors.Error) {
	form := url.Values{}
	form.Set("trackid", trackID)
	form.Set("meta", defaultMeta)

	out := &LookupResponse{}
	if err := c.post("lookup", form, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Submission describes one fingerprint to submit, optionally annotated with
// known metadata.
type Submission struct {
	Fingerprint string
	Duration    int
	MBID        string
	Title       string
	Artist      string
}

// Submit sends fingerprints for inclusion in the database. userKey is the
// submitting user's API key, distinct from the application key.
func (c *Client) Submit(userKey string, subs ...Submission) (*SubmitResponse, errors.Error) {
	if len(subs) == 0 {
		return nil, errors.New("nothing to submit").With("stack", stack.Trace().TrimRuntime())
	}

	form := url.Values{}
	form.Set("user", userKey)
	for i, sub := range subs {
		suffix := "." + strconv.Itoa(i)
		form.Set("fingerprint"+suffix, sub.Fingerprint)
		form.Set("duration"+suffix, strconv.Itoa(sub.Duration))
		if sub.MBID != "" {
			form.Set("mbid"+suffix, sub.MBID)
		}
		if sub.Title != "" {
			form.Set("track"+suffix, sub.Title)
		}
		if sub.Artist != "" {
			form.Set("artist"+suffix, sub.Artist)
		}
	}

	out := &SubmitResponse{}
	if err := c.post("submit", form, out); err != nil {
		return nil, err
	}
	return out, nil
}

// SubmissionStatus polls whether a submission has been imported yet.
func (c *Client) SubmissionStatus(id int) (*SubmitResponse, errors.Error) {
	form := url.Values{}
	form.Set("id", strconv.Itoa(id))

	out := &SubmitResponse{}
	if err := c.post("submission_status", form, out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByMBID lists the AcoustID tracks linked to a MusicBrainz recording.
func (c *Client) ListByMBID(mbid string) (*TrackListResponse, errors.Error) {
	form := url.Values{}
	form.Set("mbid", mbid)

	out := &TrackListResponse{}
	if err := c.post("track/list_by_mbid", form, out); err != nil {
		return nil, err
	}
	return out, nil
}

// SongInfo is the flattened best match of a lookup.
type SongInfo struct {
	TrackID string
	Title   string
	Artist  string
	Album   string
	Score   float64
}

func (s *SongInfo) String() string {
	if s == nil {
		return "no match"
	}
	line := fmt.Sprintf("%s - %s", s.Artist, s.Title)
	if s.Album != "" {
		line += fmt.Sprintf(" (%s)", s.Album)
	}
	return fmt.Sprintf("%s [score %.2f]", line, s.Score)
}

// BestMatch picks the highest scored result that carries recording metadata,
// or nil when the lookup came back empty.
func (r *LookupResponse) BestMatch() *SongInfo {
	for _, result := range r.Results {
		if len(result.Recordings) == 0 {
			continue
		}
		rec := result.Recordings[0]

		info := &SongInfo{
			TrackID: result.ID,
			Title:   rec.Title,
			Score:   result.Score,
		}
		names := make([]string, 0, len(rec.Artists))
		for _, a := range rec.Artists {
			names = append(names, a.Name)
		}
		info.Artist = strings.Join(names, "; ")
		if len(rec.ReleaseGroups) > 0 {
			info.Album = rec.ReleaseGroups[0].Title
		}
		return info
	}
	return nil
}
