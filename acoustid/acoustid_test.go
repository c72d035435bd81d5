package acoustid

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

// decodeForm unpacks the gzip compressed form body of a request.
func decodeForm(t *testing.T, r *http.Request) url.Values {
	t.Helper()

	gz, err := gzip.NewReader(r.Body)
	if err != nil {
		t.Fatalf("request body is not gzip: %v", err)
	}
	raw, err := io.ReadAll(gz)
	if err != nil {
		t.Fatalf("reading request body: %v", err)
	}
	form, err := url.ParseQuery(string(raw))
	if err != nil {
		t.Fatalf("parsing form: %v", err)
	}
	return form
}

func newTestClient(srv *httptest.Server) *Client {
	c := NewClient("testkey")
	c.BaseURL = srv.URL
	return c
}

func TestLookupFingerprint(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/lookup" {
			t.Errorf("path = %q, want /lookup", r.URL.Path)
		}
		form := decodeForm(t, r)
		if form.Get("client") != "testkey" {
			t.Errorf("client = %q, want testkey", form.Get("client"))
		}
		if form.Get("fingerprint") != "AQAA_test" {
			t.Errorf("fingerprint = %q", form.Get("fingerprint"))
		}
		if form.Get("duration") != "15" {
			t.Errorf("duration = %q, want 15", form.Get("duration"))
		}

		io.WriteString(w, `{
			"status": "ok",
			"results": [{
				"id": "track-1",
				"score": 0.97,
				"recordings": [{
					"id": "rec-1",
					"title": "Test Song",
					"duration": 182,
					"artists": [{"id": "a1", "name": "Test Artist"}],
					"releasegroups": [{"id": "rg1", "title": "Test Album", "type": "Album"}]
				}]
			}]
		}`)
	}))
	defer srv.Close()

	resp, err := newTestClient(srv).LookupFingerprint("AQAA_test", 15)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}

	match := resp.BestMatch()
	if match == nil {
		t.Fatal("expected a match")
	}
	if match.Title != "Test Song" {
		t.Errorf("title = %q, want Test Song", match.Title)
	}
	if match.Artist != "Test Artist" {
		t.Errorf("artist = %q, want Test Artist", match.Artist)
	}
	if match.Album != "Test Album" {
		t.Errorf("album = %q, want Test Album", match.Album)
	}
	if match.Score != 0.97 {
		t.Errorf("score = %v, want 0.97", match.Score)
	}
}

func TestLookupNoRecordings(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"status": "ok", "results": [{"id": "track-1", "score": 0.5}]}`)
	}))
	defer srv.Close()

	resp, err := newTestClient(srv).LookupFingerprint("AQAA_test", 15)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if match := resp.BestMatch(); match != nil {
		t.Errorf("expected no match, got %v", match)
	}
}

func TestLookupErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"status": "error", "error": {"code": 4, "message": "invalid API key"}}`)
	}))
	defer srv.Close()

	if _, err := newTestClient(srv).LookupFingerprint("AQAA_test", 15); err == nil {
		t.Fatal("expected error for status=error reply")
	}
}

// A reply the client cannot parse yields no match, not an error.
func TestLookupMalformedReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `not json`)
	}))
	defer srv.Close()

	resp, err := newTestClient(srv).LookupFingerprint("AQAA_test", 15)
	if err != nil {
		t.Fatalf("malformed reply must not fail the lookup: %v", err)
	}
	if match := resp.BestMatch(); match != nil {
		t.Errorf("expected no match, got %v", match)
	}
}

func TestSubmit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/submit" {
			t.Errorf("path = %q, want /submit", r.URL.Path)
		}
		form := decodeForm(t, r)
		if form.Get("user") != "userkey" {
			t.Errorf("user = %q, want userkey", form.Get("user"))
		}
		if form.Get("fingerprint.0") != "AQAA_test" {
			t.Errorf("fingerprint.0 = %q", form.Get("fingerprint.0"))
		}
		if form.Get("track.0") != "Test Song" {
			t.Errorf("track.0 = %q", form.Get("track.0"))
		}

		io.WriteString(w, `{"status": "ok", "submissions": [{"id": 42, "status": "pending"}]}`)
	}))
	defer srv.Close()

	resp, err := newTestClient(srv).Submit("userkey", Submission{
		Fingerprint: "AQAA_test",
		Duration:    15,
		Title:       "Test Song",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if len(resp.Submissions) != 1 || resp.Submissions[0].ID != 42 {
		t.Errorf("submissions = %+v", resp.Submissions)
	}
}

func TestSubmitEmpty(t *testing.T) {
	if _, err := NewClient("testkey").Submit("userkey"); err == nil {
		t.Fatal("expected error for empty submission")
	}
}

func TestListByMBID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/track/list_by_mbid" {
			t.Errorf("path = %q, want /track/list_by_mbid", r.URL.Path)
		}
		io.WriteString(w, `{"status": "ok", "tracks": [{"id": "track-1"}, {"id": "track-2"}]}`)
	}))
	defer srv.Close()

	resp, err := newTestClient(srv).ListByMBID("mbid-1")
	if err != nil {
		t.Fatalf("list_by_mbid: %v", err)
	}
	if len(resp.Tracks) != 2 {
		t.Errorf("tracks = %+v, want 2 entries", resp.Tracks)
	}
}
