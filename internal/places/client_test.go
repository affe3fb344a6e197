// Tests for the Places API client.

package places

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(h)
	t.Cleanup(server.Close)
	return NewClient(Options{APIKey: "k", BaseURL: server.URL, Region: "Bali, Indonesia"})
}

func TestFindCoordinates(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/places:searchText" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("X-Goog-Api-Key"); got != "k" {
			t.Errorf("api key header = %q", got)
		}
		if got := r.Header.Get("X-Goog-FieldMask"); got != coordinatesMask {
			t.Errorf("field mask = %q", got)
		}
		var req searchTextRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode: %v", err)
		}
		if req.TextQuery != "Test Cafe, Canggu, Bali, Indonesia" || req.MaxResultCount != 1 {
			t.Errorf("request = %+v", req)
		}
		_, _ = w.Write([]byte(`{"places":[
			{"id":"p1","displayName":{"text":"Test Cafe"},"location":{"latitude":-8.123,"longitude":115.456}},
			{"id":"p2","location":{"latitude":1,"longitude":2}}]}`))
	})
	loc := c.FindCoordinates(t.Context(), "Test Cafe", "Canggu")
	if loc == nil {
		t.Fatal("FindCoordinates() = nil")
	}
	if loc.Lat != -8.123 || loc.Lng != 115.456 || loc.PlaceName != "Test Cafe" {
		t.Errorf("FindCoordinates() = %+v", loc)
	}
}

func TestFindCoordinates_Absent(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"no results", http.StatusOK, `{}`},
		{"no location", http.StatusOK, `{"places":[{"id":"p1"}]}`},
		{"api error", http.StatusForbidden, `{"error":{"code":403,"message":"denied","status":"PERMISSION_DENIED"}}`},
		{"server error", http.StatusInternalServerError, `oops`},
		{"malformed", http.StatusOK, `{"places":`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})
			if loc := c.FindCoordinates(t.Context(), "X", "Y"); loc != nil {
				t.Errorf("FindCoordinates() = %+v, want nil", loc)
			}
		})
	}
}

func TestFindCoordinates_TransportError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()
	c := NewClient(Options{BaseURL: server.URL})
	if loc := c.FindCoordinates(t.Context(), "X", ""); loc != nil {
		t.Errorf("FindCoordinates() = %+v, want nil", loc)
	}
}

func TestSearchText_APIError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":400,"message":"bad query","status":"INVALID_ARGUMENT"}}`))
	})
	_, err := c.searchText(t.Context(), "q", photosMask)
	apiErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("error = %T %v, want *Error", err, err)
	}
	if apiErr.Code != 400 || apiErr.Status != "INVALID_ARGUMENT" {
		t.Errorf("error = %+v", apiErr)
	}
}

func TestFindPhotos(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-Goog-FieldMask"); got != photosMask {
			t.Errorf("field mask = %q", got)
		}
		_, _ = w.Write([]byte(`{"places":[{"id":"p1","photos":[
			{"name":"places/p1/photos/a","widthPx":800},
			{"name":"places/p1/photos/b"},
			{"name":"places/p1/photos/c"}]}]}`))
	})
	photos := c.FindPhotos(t.Context(), "Test Cafe", "")
	var names []string
	for _, p := range photos {
		names = append(names, p.Name)
	}
	if got := strings.Join(names, ","); got != "places/p1/photos/a,places/p1/photos/b,places/p1/photos/c" {
		t.Errorf("FindPhotos() = %s", got)
	}
}

func TestFindPhotos_None(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"places":[{"id":"p1"}]}`))
	})
	if photos := c.FindPhotos(t.Context(), "X", ""); photos != nil {
		t.Errorf("FindPhotos() = %v, want nil", photos)
	}
}

func TestQuery(t *testing.T) {
	tests := []struct {
		region, name, group, want string
	}{
		{"Bali, Indonesia", "Avli", "Uluwatu", "Avli, Uluwatu, Bali, Indonesia"},
		{"", "Avli", "Uluwatu", "Avli, Uluwatu"},
		{"Bali", "Avli", "", "Avli, Bali"},
	}
	for _, tt := range tests {
		c := NewClient(Options{Region: tt.region})
		if got := c.Query(tt.name, tt.group); got != tt.want {
			t.Errorf("Query(%q, %q) = %q, want %q", tt.name, tt.group, got, tt.want)
		}
	}
}

func TestMediaURL(t *testing.T) {
	c := NewClient(Options{APIKey: "secret", BaseURL: "https://example.com/v1/", MaxWidth: 400})
	want := "https://example.com/v1/places/p1/photos/a/media?key=secret&maxWidthPx=400"
	if got := c.MediaURL("places/p1/photos/a"); got != want {
		t.Errorf("MediaURL() = %q, want %q", got, want)
	}
}

func TestPacer(t *testing.T) {
	p := NewPacer(40 * time.Millisecond)
	start := time.Now()
	for range 3 {
		if err := p.Wait(t.Context()); err != nil {
			t.Fatal(err)
		}
	}
	if elapsed := time.Since(start); elapsed < 75*time.Millisecond {
		t.Errorf("3 paced calls took %v, want at least 80ms", elapsed)
	}
}

func TestPacer_Disabled(t *testing.T) {
	p := NewPacer(0)
	start := time.Now()
	for range 100 {
		if err := p.Wait(t.Context()); err != nil {
			t.Fatal(err)
		}
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("unpaced calls took %v", elapsed)
	}
}

func TestPacer_Canceled(t *testing.T) {
	p := NewPacer(time.Hour)
	if err := p.Wait(t.Context()); err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	if err := p.Wait(ctx); err == nil {
		t.Error("Wait() on canceled context succeeded")
	}
}
