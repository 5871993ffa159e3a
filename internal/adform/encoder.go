package adform

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// DefaultMaxImageBytes bounds a single encoded image
const DefaultMaxImageBytes = 10 * 1024 * 1024

var (
	// ErrImageTooLarge is returned when a file exceeds the encoder limit
	ErrImageTooLarge = errors.New("image too large")

	// ErrNotAnImage is returned when the file content is not an image
	ErrNotAnImage = errors.New("file is not an image")
)

// OpenFunc opens the user-selected file. A nil OpenFunc means no file was selected.
type OpenFunc func() (io.ReadCloser, error)

// ImageEncoder turns a selected file into a value the page can use
// directly as an image source
type ImageEncoder interface {
	Encode(ctx context.Context, open OpenFunc) (string, error)
}

// DataURIEncoder encodes images as base64 data URIs after sniffing their type
type DataURIEncoder struct {
	MaxBytes int64
}

// NewDataURIEncoder creates an encoder rejecting files above maxBytes
func NewDataURIEncoder(maxBytes int64) *DataURIEncoder {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxImageBytes
	}
	return &DataURIEncoder{MaxBytes: maxBytes}
}

// Encode reads the file and returns data:<mime>;base64,<payload>
func (e *DataURIEncoder) Encode(ctx context.Context, open OpenFunc) (string, error) {
	if open == nil {
		return "", ErrNoFile
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	r, err := open()
	if err != nil {
		return "", fmt.Errorf("failed to open image: %w", err)
	}
	defer r.Close()

	data, err := io.ReadAll(io.LimitReader(r, e.MaxBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}
	if len(data) == 0 {
		return "", ErrNoFile
	}
	if int64(len(data)) > e.MaxBytes {
		return "", fmt.Errorf("%d bytes max: %w", e.MaxBytes, ErrImageTooLarge)
	}

	mime := mimetype.Detect(data)
	if !strings.HasPrefix(mime.String(), "image/") {
		return "", fmt.Errorf("%s: %w", mime.String(), ErrNotAnImage)
	}

	return "data:" + mime.String() + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}
