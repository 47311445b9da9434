package services

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/disintegration/imaging"

	"github.com/hivaasboutique/hivaas-catalogue/internal/models"
)

const (
	// Display images are bounded to this dimension and re-encoded as JPEG.
	imageMaxDim  = 800
	imageQuality = 80
)

// ImageFetcher is the external image-loading collaborator: it resolves an
// image reference to raw bytes.
type ImageFetcher interface {
	Fetch(ref string) ([]byte, error)
}

// FileImageFetcher resolves image references against a base directory.
type FileImageFetcher struct {
	baseDir string
}

// NewFileImageFetcher creates a fetcher rooted at baseDir.
func NewFileImageFetcher(baseDir string) *FileImageFetcher {
	return &FileImageFetcher{baseDir: baseDir}
}

// Fetch reads the referenced image from disk. References may not escape
// the base directory.
func (f *FileImageFetcher) Fetch(ref string) ([]byte, error) {
	clean := filepath.Clean(ref)
	if strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return nil, fmt.Errorf("image reference %q escapes base directory: %w", ref, models.ErrImageFetch)
	}
	data, err := os.ReadFile(filepath.Join(f.baseDir, clean))
	if err != nil {
		return nil, fmt.Errorf("read image %q: %v: %w", ref, err, models.ErrImageFetch)
	}
	return data, nil
}

// DefaultPlaceholder renders a plain tile in the storefront's sidebar
// colour, used when no placeholder asset is configured.
func DefaultPlaceholder() []byte {
	img := imaging.New(imageMaxDim/2, imageMaxDim/2, color.NRGBA{R: 0xf2, G: 0xe6, B: 0xff, A: 0xff})
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(imageQuality)); err != nil {
		return nil
	}
	return buf.Bytes()
}

// ImageService serves display-ready product images. Processed images are
// memoized by reference so repeated requests never re-fetch; there is no
// eviction at catalogue scale. Failed fetches are not cached, so a
// transient failure can recover on the next request.
type ImageService struct {
	fetcher     ImageFetcher
	placeholder []byte

	mu    sync.Mutex
	cache map[string][]byte
}

// NewImageService creates a new ImageService. placeholder is served when a
// fetch or decode fails.
func NewImageService(fetcher ImageFetcher, placeholder []byte) *ImageService {
	return &ImageService{
		fetcher:     fetcher,
		placeholder: placeholder,
		cache:       make(map[string][]byte),
	}
}

// Placeholder returns the degraded-render image bytes.
func (s *ImageService) Placeholder() []byte {
	return s.placeholder
}

// Get returns the processed image for ref. On failure the error wraps
// models.ErrImageFetch and the caller should degrade to Placeholder
// instead of failing the page.
func (s *ImageService) Get(ref string) ([]byte, error) {
	s.mu.Lock()
	cached, ok := s.cache[ref]
	s.mu.Unlock()
	if ok {
		return cached, nil
	}

	raw, err := s.fetcher.Fetch(ref)
	if err != nil {
		if !errors.Is(err, models.ErrImageFetch) {
			err = fmt.Errorf("%v: %w", err, models.ErrImageFetch)
		}
		return nil, err
	}

	processed, err := optimize(raw)
	if err != nil {
		return nil, fmt.Errorf("process image %q: %v: %w", ref, err, models.ErrImageFetch)
	}

	s.mu.Lock()
	s.cache[ref] = processed
	s.mu.Unlock()
	return processed, nil
}

// optimize decodes with EXIF orientation applied, bounds the image to the
// display dimension and re-encodes as JPEG.
func optimize(raw []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(raw), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > imageMaxDim || bounds.Dy() > imageMaxDim {
		img = imaging.Fit(img, imageMaxDim, imageMaxDim, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(imageQuality)); err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return buf.Bytes(), nil
}
