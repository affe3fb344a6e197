package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/maruel/venuefill/internal/assets"
	"github.com/maruel/venuefill/internal/places"
)

func TestLoad_Missing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "venuefill.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.MaxGallery != 5 || cfg.MinAssetSize != 1000 || cfg.Interval.D() != 300*time.Millisecond {
		t.Errorf("Load() = %+v, want defaults", cfg)
	}
}

func TestDefault_MatchesPackages(t *testing.T) {
	cfg := Default()
	if cfg.Interval.D() != places.DefaultInterval || cfg.Timeout.D() != places.DefaultTimeout {
		t.Errorf("Interval = %v, Timeout = %v", cfg.Interval.D(), cfg.Timeout.D())
	}
	if cfg.PhotoMaxWidth != places.DefaultMaxWidth {
		t.Errorf("PhotoMaxWidth = %d, want %d", cfg.PhotoMaxWidth, places.DefaultMaxWidth)
	}
	if cfg.MinAssetSize != assets.DefaultMinSize || cfg.MaxGallery != assets.DefaultMaxGallery {
		t.Errorf("MinAssetSize = %d, MaxGallery = %d", cfg.MinAssetSize, cfg.MaxGallery)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestParse(t *testing.T) {
	data := `
catalog: data/venues.js
photos_dir: /srv/photos
index: photo-map.json
index_var: BAMBA_PHOTOS
interval: 1s
download_interval: 0s
max_gallery: 3
handles:
  ulu-001: avlibali
  ulu-002: null
git:
  commit: true
  author_name: Robot
  author_email: robot@example.com
`
	cfg, err := Parse([]byte(data), "/base")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.Catalog != filepath.Join("/base", "data", "venues.js") {
		t.Errorf("Catalog = %q", cfg.Catalog)
	}
	if cfg.PhotosDir != "/srv/photos" {
		t.Errorf("PhotosDir = %q", cfg.PhotosDir)
	}
	if cfg.CoordsCheckpoint != filepath.Join("/base", "coords.json") {
		t.Errorf("CoordsCheckpoint = %q, want default resolved against base", cfg.CoordsCheckpoint)
	}
	if cfg.Interval.D() != time.Second || cfg.DownloadInterval.D() != 0 {
		t.Errorf("intervals = %v, %v", cfg.Interval.D(), cfg.DownloadInterval.D())
	}
	if cfg.MaxGallery != 3 || cfg.PhotoMaxWidth != 800 {
		t.Errorf("MaxGallery = %d, PhotoMaxWidth = %d", cfg.MaxGallery, cfg.PhotoMaxWidth)
	}
	if h := cfg.Handles["ulu-001"]; h == nil || *h != "avlibali" {
		t.Errorf("handle ulu-001 = %v", h)
	}
	if h, ok := cfg.Handles["ulu-002"]; !ok || h != nil {
		t.Errorf("handle ulu-002 = %v, %v, want explicit null", h, ok)
	}
	if !cfg.Git.Commit || cfg.Git.AuthorName != "Robot" {
		t.Errorf("Git = %+v", cfg.Git)
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"bad yaml", "catalog: [\n"},
		{"bad duration", "interval: soon\n"},
		{"zero min size", "min_asset_size: 0\n"},
		{"gallery too large", "max_gallery: 100\n"},
		{"bad index var", "index_var: 2photos\n"},
		{"bad extension", "photo_ext: jpg\n"},
		{"bad email", "git:\n  author_email: nope\n"},
		{"missing author", "git:\n  commit: true\n  author_name: \"\"\n"},
		{"empty handle", "handles:\n  a: \"\"\n"},
		{"zero timeout", "timeout: 0s\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.data), "."); err == nil {
				t.Error("Parse() succeeded")
			}
		})
	}
}

func TestParse_HandlesFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "handles.yaml"), []byte("a: from-file\nb: bee\nc: null\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfgPath := filepath.Join(dir, "venuefill.yaml")
	if err := os.WriteFile(cfgPath, []byte("handles_file: handles.yaml\nhandles:\n  a: inline\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := *cfg.Handles["a"]; got != "inline" {
		t.Errorf("a = %q, inline must win", got)
	}
	if got := *cfg.Handles["b"]; got != "bee" {
		t.Errorf("b = %q", got)
	}
	if h, ok := cfg.Handles["c"]; !ok || h != nil {
		t.Errorf("c = %v, %v", h, ok)
	}
}

func TestSchema(t *testing.T) {
	b, err := Schema()
	if err != nil {
		t.Fatal(err)
	}
	var s struct {
		Properties map[string]struct {
			Type        string `json:"type"`
			Description string `json:"description"`
		} `json:"properties"`
	}
	if err := json.Unmarshal(b, &s); err != nil {
		t.Fatalf("schema is not JSON: %v", err)
	}
	for _, name := range []string{"catalog", "photos_dir", "interval", "handles", "git"} {
		if _, ok := s.Properties[name]; !ok {
			t.Errorf("schema lacks %q", name)
		}
	}
	if got := s.Properties["interval"].Type; got != "string" {
		t.Errorf("interval type = %q, want string", got)
	}
	if !strings.Contains(s.Properties["catalog"].Description, "catalog") {
		t.Errorf("catalog description = %q", s.Properties["catalog"].Description)
	}
}
