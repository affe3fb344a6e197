// Downloads single photos to their deterministic path.

package assets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/maruel/venuefill/internal/fileutil"
)

// ErrAssetInvalid is returned when the downloaded content is below the
// minimum size.
var ErrAssetInvalid = errors.New("asset below minimum size")

// Result is the outcome of a successful Fetch.
type Result int

const (
	// Downloaded means the asset was fetched and written.
	Downloaded Result = iota + 1
	// AlreadyValid means a valid file was already present; nothing was fetched.
	AlreadyValid
)

// Downloader fetches photos by reference.
type Downloader struct {
	client  *http.Client
	resolve func(ref string) string
	minSize int64
}

// NewDownloader creates a downloader. resolve maps an opaque photo reference
// to the URL serving its bytes.
func NewDownloader(resolve func(ref string) string, minSize int64, timeout time.Duration) *Downloader {
	return &Downloader{
		client:  &http.Client{Timeout: timeout},
		resolve: resolve,
		minSize: minSize,
	}
}

// Fetch downloads ref to dest.
//
// An existing file of at least the minimum size is kept as is without any
// network call. On any failure no file is left at dest.
func (d *Downloader) Fetch(ctx context.Context, ref, dest string) (Result, error) {
	if fileutil.SizeAtLeast(dest, d.minSize) {
		return AlreadyValid, nil
	}
	if err := d.fetch(ctx, ref, dest); err != nil {
		if rmErr := os.Remove(dest); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
			return 0, errors.Join(err, rmErr)
		}
		return 0, err
	}
	return Downloaded, nil
}

func (d *Downloader) fetch(ctx context.Context, ref, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.resolve(ref), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := d.client.Do(req)
	if err != nil {
		// The URL may embed an API key; report the reference only.
		var uerr *url.Error
		if errors.As(err, &uerr) {
			err = uerr.Err
		}
		return fmt.Errorf("failed to download %s: %w", ref, err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download of %s failed: status %d", ref, resp.StatusCode)
	}
	return fileutil.WriteFrom(dest, 0o644, func(w io.Writer) error {
		n, err := io.Copy(w, resp.Body)
		if err != nil {
			return fmt.Errorf("failed to write file: %w", err)
		}
		if n < d.minSize {
			return fmt.Errorf("%w: %d bytes", ErrAssetInvalid, n)
		}
		return nil
	})
}
