package services_test

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/postad/postad-api/internal/services"
	"github.com/postad/postad-api/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormFactory_RecordsUploads(t *testing.T) {
	newForm := services.NewFormFactory(services.FormOptions{
		MaxImageBytes:        1024,
		NotificationInterval: time.Second,
	})
	form := newForm()

	failed := testutil.ToFloat64(metrics.ImageUploads.WithLabelValues("error"))
	succeeded := testutil.ToFloat64(metrics.ImageUploads.WithLabelValues("success"))

	require.NoError(t, form.UploadImage(context.Background(), 1, func() (io.ReadCloser, error) {
		return io.NopCloser(strings.NewReader("plain text, not an image")), nil
	}))
	require.NoError(t, form.UploadImage(context.Background(), 0, func() (io.ReadCloser, error) {
		return io.NopCloser(strings.NewReader(string(pngFile))), nil
	}))
	form.Wait()

	assert.Equal(t, failed+1, testutil.ToFloat64(metrics.ImageUploads.WithLabelValues("error")))
	assert.Equal(t, succeeded+1, testutil.ToFloat64(metrics.ImageUploads.WithLabelValues("success")))

	snap := form.Snapshot()
	assert.Empty(t, snap.Draft.Images[1])
	assert.True(t, strings.HasPrefix(snap.Draft.Images[0], "data:image/png;base64,"))
}

func TestFormFactory_FreshFormPerSession(t *testing.T) {
	newForm := services.NewFormFactory(services.FormOptions{MaxImageBytes: 1024})

	a, b := newForm(), newForm()

	assert.NotSame(t, a, b)
}
