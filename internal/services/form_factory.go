package services

import (
	"time"

	"github.com/postad/postad-api/internal/adform"
	"github.com/postad/postad-api/pkg/logger"
	"github.com/postad/postad-api/pkg/metrics"
	"go.uber.org/zap"
)

// FormOptions configures the forms created for new sessions
type FormOptions struct {
	Clock                adform.Clock
	MaxImageBytes        int64
	NotificationInterval time.Duration
}

// NewFormFactory returns a constructor for session forms. All forms share
// one encoder and report finished uploads to the image upload metrics.
func NewFormFactory(opts FormOptions) func() *adform.Form {
	encoder := adform.NewDataURIEncoder(opts.MaxImageBytes)

	return func() *adform.Form {
		return adform.New(adform.Config{
			Clock:                opts.Clock,
			Encoder:              encoder,
			NotificationInterval: opts.NotificationInterval,
			OnUpload:             recordUpload,
		})
	}
}

func recordUpload(slot int, err error) {
	metrics.ImageUploads.WithLabelValues(metrics.Status(err)).Inc()
	if err != nil {
		logger.Debug("Image upload discarded", zap.Int("slot", slot), zap.Error(err))
	}
}
