package loaders

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/spaghettifunk/facecube/engine/core"
	"github.com/spaghettifunk/facecube/engine/resources"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

const uploadsPrefix = "/uploads/"

// ImageLoader loads the picture behind an image reference. References under
// /uploads/ resolve into UploadsDir, http(s) URLs are fetched, anything else
// is a path relative to BaseDir.
type ImageLoader struct {
	UploadsDir string
	BaseDir    string
	Client     *http.Client
}

// Resolve maps an image reference onto a file path or URL.
func (il *ImageLoader) Resolve(ref string) string {
	switch {
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		return ref
	case strings.HasPrefix(ref, uploadsPrefix):
		rel := filepath.FromSlash(strings.TrimPrefix(ref, uploadsPrefix))
		return filepath.Join(il.UploadsDir, filepath.Clean(string(filepath.Separator)+rel))
	case filepath.IsAbs(ref):
		return ref
	default:
		return filepath.Join(il.BaseDir, filepath.FromSlash(ref))
	}
}

func (il *ImageLoader) Load(path string, assetType resources.ResourceType, params interface{}) (*resources.Resource, error) {
	var p resources.ImageResourceParams
	switch typed := params.(type) {
	case *resources.ImageResourceParams:
		if typed != nil {
			p = *typed
		}
	case resources.ImageResourceParams:
		p = typed
	}

	full := il.Resolve(path)
	rc, err := il.open(full)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	src, format, err := image.Decode(rc)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", core.ErrUnsupportedFormat, path, err)
	}

	img := Fit(src, p.MaxWidth, p.MaxHeight)
	b := img.Bounds()
	return &resources.Resource{
		Type:     resources.ResourceTypeImage,
		Name:     path,
		FullPath: full,
		DataSize: uint64(b.Dx() * b.Dy() * 4),
		Data: &resources.ImageResourceData{
			Format: format,
			Width:  uint32(b.Dx()),
			Height: uint32(b.Dy()),
			Image:  img,
		},
	}, nil
}

func (il *ImageLoader) Unload(*resources.Resource) error {
	return nil
}

func (il *ImageLoader) open(full string) (io.ReadCloser, error) {
	if !strings.HasPrefix(full, "http://") && !strings.HasPrefix(full, "https://") {
		f, err := os.Open(full)
		if err != nil {
			return nil, fmt.Errorf("failed to open image: %w", err)
		}
		return f, nil
	}

	client := il.Client
	if client == nil {
		client = http.DefaultClient
	}
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, full, nil)
	if err != nil {
		cancel()
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to fetch image: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		resp.Body.Close()
		cancel()
		return nil, fmt.Errorf("%w: %s (status code = %d)", ErrUnexpectedStatus, full, resp.StatusCode)
	}
	return &cancelOnClose{ReadCloser: resp.Body, cancel: cancel}, nil
}

type cancelOnClose struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (c *cancelOnClose) Close() error {
	defer c.cancel()
	return c.ReadCloser.Close()
}

// Fit scales src down to fit inside maxW x maxH keeping its aspect ratio.
// Images that already fit, and zero bounds, are returned unchanged.
func Fit(src image.Image, maxW, maxH int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 || maxW <= 0 || maxH <= 0 || (w <= maxW && h <= maxH) {
		return src
	}

	scale := float64(maxW) / float64(w)
	if s := float64(maxH) / float64(h); s < scale {
		scale = s
	}
	dw, dh := int(float64(w)*scale), int(float64(h)*scale)
	if dw < 1 {
		dw = 1
	}
	if dh < 1 {
		dh = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}
