// Package config loads the venuefill configuration file.
//
// The file is YAML. Every field has a default, so the file itself is optional.
// Relative paths are resolved against the directory holding the file. Secrets
// such as the API key are not part of it; they come from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/maruel/venuefill/internal/assets"
	"github.com/maruel/venuefill/internal/places"
)

// APIKeyEnv is the environment variable holding the Places API key.
const APIKeyEnv = "PLACES_API_KEY"

// Config is the configuration of a run.
type Config struct {
	Catalog           string `yaml:"catalog" validate:"required" jsonschema:"description=Path of the venue catalog source file"`
	CoordsCheckpoint  string `yaml:"coords_checkpoint" validate:"required" jsonschema:"description=Checkpoint of coordinate lookups"`
	GalleryCheckpoint string `yaml:"gallery_checkpoint" validate:"required" jsonschema:"description=Checkpoint of gallery lookups"`
	PhotosDir         string `yaml:"photos_dir" validate:"required" jsonschema:"description=Directory holding downloaded photos"`
	PhotosPrefix      string `yaml:"photos_prefix" jsonschema:"description=Photo directory as referenced from the index"`
	PhotoExt          string `yaml:"photo_ext" validate:"required,startswith=." jsonschema:"description=Photo file extension"`
	Index             string `yaml:"index" validate:"required" jsonschema:"description=Generated photo index; .json for plain JSON"`
	IndexVar          string `yaml:"index_var" validate:"required,jsident" jsonschema:"description=Variable declared by a script index"`

	Region       string `yaml:"region" jsonschema:"description=Free text appended to every search query"`
	DefaultGroup string `yaml:"default_group" jsonschema:"description=Group used for records without an area"`

	Interval         Duration `yaml:"interval" validate:"gte=0" jsonschema:"description=Pause between two lookups"`
	DownloadInterval Duration `yaml:"download_interval" validate:"gte=0" jsonschema:"description=Pause between two gallery downloads"`
	Timeout          Duration `yaml:"timeout" validate:"gt=0" jsonschema:"description=HTTP request timeout"`

	MinAssetSize  int64 `yaml:"min_asset_size" validate:"gte=1" jsonschema:"description=Smallest file in bytes accepted as a photo"`
	MaxGallery    int   `yaml:"max_gallery" validate:"gte=0,lte=20" jsonschema:"description=Gallery photos per venue"`
	PhotoMaxWidth int   `yaml:"photo_max_width" validate:"gte=1,lte=4800" jsonschema:"description=Requested photo width in pixels"`

	// Handles maps record ids to social handles. A null handle means the
	// venue has none.
	Handles     map[string]*string `yaml:"handles" jsonschema:"description=Social handle per record id"`
	HandlesFile string             `yaml:"handles_file" jsonschema:"description=YAML file with more handles"`

	Git Git `yaml:"git"`
}

// Git configures committing the artifacts after a run.
type Git struct {
	Commit      bool   `yaml:"commit" jsonschema:"description=Commit changed artifacts"`
	AuthorName  string `yaml:"author_name" validate:"required_if=Commit true" jsonschema:"description=Commit author name"`
	AuthorEmail string `yaml:"author_email" validate:"omitempty,email" jsonschema:"description=Commit author email"`
}

// Default returns the default configuration, with paths relative to the
// current directory.
func Default() *Config {
	return &Config{
		Catalog:           "venues.js",
		CoordsCheckpoint:  "coords.json",
		GalleryCheckpoint: "gallery-progress.json",
		PhotosDir:         "photos",
		PhotosPrefix:      "photos",
		PhotoExt:          ".jpg",
		Index:             "photo-map.js",
		IndexVar:          "VENUE_PHOTOS",
		Region:            "Bali, Indonesia",
		DefaultGroup:      "Bali",
		Interval:          Duration(places.DefaultInterval),
		DownloadInterval:  Duration(150 * time.Millisecond),
		Timeout:           Duration(places.DefaultTimeout),
		MinAssetSize:      assets.DefaultMinSize,
		MaxGallery:        assets.DefaultMaxGallery,
		PhotoMaxWidth:     places.DefaultMaxWidth,
		Git:               Git{AuthorName: "venuefill", AuthorEmail: "venuefill@example.com"},
	}
}

// Load reads the configuration at path. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path) //nolint:gosec // User-specified config path
	if errors.Is(err, fs.ErrNotExist) {
		cfg := Default()
		return cfg, cfg.Validate()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(b, filepath.Dir(path))
}

// Parse parses a configuration on top of the defaults and resolves relative
// paths against baseDir.
func Parse(data []byte, baseDir string) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.resolve(baseDir)
	if cfg.HandlesFile != "" {
		if err := cfg.loadHandles(); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

var (
	validate = newValidator()
	jsIdent  = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("jsident", func(fl validator.FieldLevel) bool {
		return jsIdent.MatchString(fl.Field().String())
	})
	return v
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			errs := make([]error, 0, len(verrs))
			for _, fe := range verrs {
				errs = append(errs, fmt.Errorf("%s: failed %q check", fe.Namespace(), fe.Tag()))
			}
			return errors.Join(errs...)
		}
		return err
	}
	for id, h := range c.Handles {
		if id == "" {
			return errors.New("handles: empty record id")
		}
		if h != nil && *h == "" {
			return fmt.Errorf("handles: %s: empty handle, use null for none", id)
		}
	}
	return nil
}

// resolve makes relative paths relative to baseDir.
func (c *Config) resolve(baseDir string) {
	for _, p := range []*string{&c.Catalog, &c.CoordsCheckpoint, &c.GalleryCheckpoint, &c.PhotosDir, &c.Index, &c.HandlesFile} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(baseDir, *p)
		}
	}
}

// loadHandles merges the handles file. Inline handles win.
func (c *Config) loadHandles() error {
	b, err := os.ReadFile(c.HandlesFile)
	if err != nil {
		return fmt.Errorf("failed to read handles file: %w", err)
	}
	var extra map[string]*string
	if err := yaml.Unmarshal(b, &extra); err != nil {
		return fmt.Errorf("failed to parse handles file: %w", err)
	}
	if c.Handles == nil {
		c.Handles = make(map[string]*string, len(extra))
	}
	for id, h := range extra {
		if _, ok := c.Handles[id]; !ok {
			c.Handles[id] = h
		}
	}
	return nil
}
