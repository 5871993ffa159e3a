package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/postad/postad-api/internal/adform"
	pkgerrors "github.com/postad/postad-api/pkg/errors"
)

// bufferUpload reads an uploaded file into memory. The request's temporary
// files are removed when the handler returns, while encoding runs later.
func bufferUpload(fh *multipart.FileHeader) (adform.OpenFunc, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload %q: %w", fh.Filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read upload %q: %w", fh.Filename, err)
	}

	return func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(data)), nil
	}, nil
}

// multipartError classifies a failed multipart parse
func multipartError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return pkgerrors.TooLargeError("request body", tooLarge.Limit)
	}
	return fmt.Errorf("parse multipart form: %w: %w", pkgerrors.ErrInvalidInput, err)
}
